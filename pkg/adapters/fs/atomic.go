package fs

import (
	"bytes"
	"fmt"
	"os"

	"github.com/natefinch/atomic"
)

// writeFileAtomic writes data to a temp file in the same directory and
// renames it over filename, so readers never observe a partial write.
// The parent directory must exist.
func writeFileAtomic(filename string, data []byte, perm os.FileMode) error {
	if err := atomic.WriteFile(filename, bytes.NewReader(data)); err != nil {
		return err
	}

	// The temp file behind atomic.WriteFile is created 0600.
	if err := os.Chmod(filename, perm); err != nil {
		return fmt.Errorf("failed to chmod %s: %w", filename, err)
	}
	return nil
}
