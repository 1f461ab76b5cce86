package pathutil

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// SanitizeOutputPath resolves path to a clean absolute path that is safe to
// write a formatted document to. The target may be an existing regular file
// or a new file in an existing directory; symlinks and directories are
// rejected.
func SanitizeOutputPath(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("pathutil: cannot resolve absolute path: %w", err)
	}

	info, err := os.Lstat(abs)
	if errors.Is(err, fs.ErrNotExist) {
		dir := filepath.Dir(abs)
		if st, derr := os.Stat(dir); derr != nil || !st.IsDir() {
			return "", fmt.Errorf("pathutil: output directory does not exist: %s", dir)
		}
		return abs, nil
	}
	if err != nil {
		return "", fmt.Errorf("pathutil: cannot stat path: %w", err)
	}

	switch mode := info.Mode(); {
	case mode&fs.ModeSymlink != 0:
		return "", fmt.Errorf("pathutil: refusing to write to symlink: %s", abs)
	case mode.IsDir():
		return "", fmt.Errorf("pathutil: output path is a directory: %s", abs)
	}
	return abs, nil
}
