package outputters

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// EnsureOutputDir makes sure dir exists and is usable before any network
// call happens. A missing directory is created; a path occupied by a
// regular file is a configuration error, not something to silently work
// around.
func EnsureOutputDir(dir string) error {
	info, err := os.Stat(dir)
	switch {
	case os.IsNotExist(err):
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory %s: %w", dir, err)
		}
		return nil
	case err != nil:
		return fmt.Errorf("failed to stat output directory %s: %w", dir, err)
	case !info.IsDir():
		return fmt.Errorf("output path %s exists and is not a directory", dir)
	}
	return nil
}

// TimestampedFilename builds "<timestamp>-<name>.<ext>" under dir.
func TimestampedFilename(dir, name, ext string) string {
	ts := time.Now().UTC().Format("20060102150405")
	return filepath.Join(dir, fmt.Sprintf("%s-%s.%s", ts, name, ext))
}
