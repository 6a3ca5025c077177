package browser

import "path/filepath"

// family describes one supported browser family: where its profiles
// live on each OS and how profile directories are named.
type family struct {
	Name string
	// Roots are profile-root directories, relative to home.
	Roots map[string][]string // goos -> relative roots
	// FirefoxStyle profiles match "*.default*"; otherwise the
	// chromium convention ("Default", "Profile N") applies.
	FirefoxStyle bool
}

// families is the fixed per-OS path table. Paths are never guessed
// beyond this table.
var families = []family{
	{
		Name: "Chrome",
		Roots: map[string][]string{
			"windows": {filepath.Join("AppData", "Local", "Google", "Chrome", "User Data")},
			"darwin":  {filepath.Join("Library", "Application Support", "Google", "Chrome")},
			"linux":   {filepath.Join(".config", "google-chrome")},
		},
	},
	{
		Name: "Chromium",
		Roots: map[string][]string{
			"linux":  {filepath.Join(".config", "chromium"), filepath.Join("snap", "chromium", "common", "chromium")},
			"darwin": {filepath.Join("Library", "Application Support", "Chromium")},
		},
	},
	{
		Name: "Edge",
		Roots: map[string][]string{
			"windows": {filepath.Join("AppData", "Local", "Microsoft", "Edge", "User Data")},
			"darwin":  {filepath.Join("Library", "Application Support", "Microsoft Edge")},
			"linux":   {filepath.Join(".config", "microsoft-edge")},
		},
	},
	{
		Name: "Brave",
		Roots: map[string][]string{
			"windows": {filepath.Join("AppData", "Local", "BraveSoftware", "Brave-Browser", "User Data")},
			"darwin":  {filepath.Join("Library", "Application Support", "BraveSoftware", "Brave-Browser")},
			"linux":   {filepath.Join(".config", "BraveSoftware", "Brave-Browser")},
		},
	},
	{
		Name:         "Firefox",
		FirefoxStyle: true,
		Roots: map[string][]string{
			"windows": {filepath.Join("AppData", "Roaming", "Mozilla", "Firefox", "Profiles")},
			"darwin":  {filepath.Join("Library", "Application Support", "Firefox", "Profiles")},
			"linux":   {filepath.Join(".mozilla", "firefox"), filepath.Join("snap", "firefox", "common", ".mozilla", "firefox")},
		},
	},
}

// artifactAllowlist maps known credential/history/cookie store
// filenames to their semantic type. Only these names are probed, and
// only their metadata is read.
var artifactAllowlist = map[string]string{
	// Chromium family
	"Login Data":      "credentials",
	"Cookies":         "cookies",
	"History":         "history",
	"Web Data":        "autofill",
	"Local State":     "config",
	"Bookmarks":       "history",
	// Firefox
	"logins.json":         "credentials",
	"key4.db":             "keys",
	"cookies.sqlite":      "cookies",
	"places.sqlite":       "history",
	"formhistory.sqlite":  "autofill",
	"signons.sqlite":      "credentials",
}
