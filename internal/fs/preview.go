package fs

import (
	"errors"
	"io"
	"os"
	"strings"
	"unicode/utf8"
)

// PreviewLimit is the maximum number of bytes read for a preview.
const PreviewLimit = 2048

// RedactionMarker replaces the content of binary files in previews.
const RedactionMarker = "[binary content redacted]"

// Preview is a bounded read of a file's head, with binary detection.
type Preview struct {
	Content   string
	BytesRead int
	IsBinary  bool
}

// ReadPreview reads at most PreviewLimit bytes from path. Files holding
// control bytes outside \t \n \r (NUL included) are flagged binary and
// their content is replaced with RedactionMarker.
func ReadPreview(path string) (*Preview, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, errors.New("path is a directory")
	}

	buf := make([]byte, PreviewLimit)
	n, err := io.ReadFull(f, buf)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return nil, err
	}
	buf = buf[:n]

	p := &Preview{BytesRead: n}
	if isBinary(buf) {
		p.IsBinary = true
		p.Content = RedactionMarker
		return p, nil
	}

	p.Content = strings.ToValidUTF8(string(buf), string(utf8.RuneError))
	return p, nil
}

// isBinary reports whether data holds control bytes outside tab,
// newline and carriage return.
func isBinary(data []byte) bool {
	for _, b := range data {
		if b == '\t' || b == '\n' || b == '\r' {
			continue
		}
		if b < 0x20 || b == 0x7f {
			return true
		}
	}
	return false
}
