package utils

import (
	"os"
)

// Exists reports whether path exists and whether it is a directory.
func Exists(path string) (isDir bool, exists bool, err error) {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return false, false, nil
	}
	if err != nil {
		return false, false, err
	}
	return info.IsDir(), true, nil
}

// CreateDir creates path and any missing parents with mode 0755.
// An existing directory is not an error; an existing file is.
func CreateDir(path string) error {
	return os.MkdirAll(path, 0o755)
}
