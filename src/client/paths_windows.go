//go:build windows

package client

// setDirPermissions is a no-op on Windows: %APPDATA% and %LOCALAPPDATA%
// already carry user-only ACLs that new directories inherit.
func setDirPermissions(dir string) error {
	return nil
}

// setFilePermissions is a no-op on Windows; files inherit the directory ACL.
func setFilePermissions(path string) error {
	return nil
}
