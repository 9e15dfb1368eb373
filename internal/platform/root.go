package platform

import (
	"fmt"
	"os"
	"path/filepath"
)

// SystemDir marks a directory holding a project-local notebook.
const SystemDir = ".scrawl"

// FindRoot walks upwards from startDir looking for a SystemDir directory.
// It returns the absolute path of the directory containing it, or an error
// when the filesystem root is reached first.
func FindRoot(startDir string) (string, error) {
	abs, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	dir := abs
	for {
		if isDir(filepath.Join(dir, SystemDir)) {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return "", fmt.Errorf("no %s directory above %s", SystemDir, abs)
}

// LocalPath is the notes file of the project rooted at root.
func LocalPath(root string) string {
	return filepath.Join(root, SystemDir, DefaultFile)
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
