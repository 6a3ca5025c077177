package hidden

import (
	"path/filepath"

	"residue/internal/model"
)

// knownPath is one entry of the fixed sensitive-path table.
type knownPath struct {
	path     string
	category model.ArtifactCategory
}

// knownSensitivePaths returns the fixed per-OS table of well-known
// sensitive locations, resolved against the user's home directory.
// Paths that do not exist are skipped at scan time.
func knownSensitivePaths(goos, home string) []knownPath {
	switch goos {
	case "windows":
		return []knownPath{
			{filepath.Join(home, "NTUSER.DAT"), model.CategoryRegistry},
			{filepath.Join(home, "AppData", "Local", "Microsoft", "Windows", "Explorer"), model.CategoryCache},
			{filepath.Join(home, "AppData", "Roaming", "Microsoft", "Windows", "Recent"), model.CategoryHistory},
			{filepath.Join(home, "AppData", "Roaming", "Microsoft", "Credentials"), model.CategoryConfig},
			{filepath.Join(home, ".ssh"), model.CategorySSH},
			{`C:\Windows\Prefetch`, model.CategoryCache},
			{`C:\pagefile.sys`, model.CategorySwap},
			{`C:\hiberfil.sys`, model.CategorySwap},
		}
	case "darwin":
		return []knownPath{
			{filepath.Join(home, ".ssh"), model.CategorySSH},
			{filepath.Join(home, ".bash_history"), model.CategoryHistory},
			{filepath.Join(home, ".zsh_history"), model.CategoryHistory},
			{filepath.Join(home, "Library", "Keychains"), model.CategoryConfig},
			{filepath.Join(home, "Library", "Caches"), model.CategoryCache},
			{filepath.Join(home, "Library", "Application Support"), model.CategoryConfig},
			{"/private/var/vm/swapfile0", model.CategorySwap},
		}
	default: // linux and other unixes
		return []knownPath{
			{filepath.Join(home, ".ssh"), model.CategorySSH},
			{filepath.Join(home, ".gnupg"), model.CategoryConfig},
			{filepath.Join(home, ".bash_history"), model.CategoryHistory},
			{filepath.Join(home, ".zsh_history"), model.CategoryHistory},
			{filepath.Join(home, ".config"), model.CategoryConfig},
			{filepath.Join(home, ".cache"), model.CategoryCache},
			{filepath.Join(home, ".local", "share", "Trash"), model.CategoryCache},
			{"/swapfile", model.CategorySwap},
			{"/var/log/auth.log", model.CategoryHistory},
		}
	}
}
