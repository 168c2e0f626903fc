//go:build !windows

package client

import "os"

// setDirPermissions restricts a directory to its owner
func setDirPermissions(dir string) error {
	return os.Chmod(dir, 0700)
}

// setFilePermissions restricts a file to its owner
func setFilePermissions(path string) error {
	return os.Chmod(path, 0600)
}
