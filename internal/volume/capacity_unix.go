//go:build unix

package volume

import "golang.org/x/sys/unix"

// osCapacity reports total and free bytes via statfs.
func osCapacity(path string) (total, free uint64, err error) {
	var st unix.Statfs_t
	if err := unix.Statfs(path, &st); err != nil {
		return 0, 0, err
	}
	bsize := uint64(st.Bsize)
	return st.Blocks * bsize, st.Bavail * bsize, nil
}
