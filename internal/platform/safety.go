package platform

import (
	"os"
	"path/filepath"
	"strings"
)

// DefaultFile is the notes file name used when a path names no file.
const DefaultFile = "notes.json"

// IsDevRun checks if the current process is running via `go run` or `go test`.
// It relies on the fact that these commands build binaries in temporary directories.
func IsDevRun() bool {
	exe, err := os.Executable()
	if err != nil {
		return false
	}

	if strings.HasPrefix(strings.ToLower(exe), strings.ToLower(os.TempDir())) {
		return true
	}

	return strings.HasSuffix(exe, ".test") || strings.HasSuffix(exe, ".test.exe")
}

// ResolvePath determines the actual notes file based on safety rules.
// With forceTemp, a path outside the system temp directory is re-rooted
// into a scrawl-dev directory there, keeping only its file name.
func ResolvePath(userPath string, forceTemp bool) string {
	if !forceTemp {
		if userPath == "" {
			return DefaultFile
		}
		return userPath
	}

	clean := filepath.Clean(userPath)

	// A path already inside the temp directory (t.TempDir()) is trusted.
	rel, err := filepath.Rel(os.TempDir(), clean)
	if userPath != "" && err == nil && !strings.HasPrefix(rel, "..") && filepath.IsAbs(clean) {
		return clean
	}

	name := filepath.Base(clean)
	if userPath == "" || name == "." || name == ".." || name == string(os.PathSeparator) {
		name = DefaultFile
	}
	return filepath.Join(os.TempDir(), "scrawl-dev", name)
}
