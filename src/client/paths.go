package client

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// Platform-specific directory paths for CLI state

const (
	projectOrg  = "apimgr"
	projectName = "weather"
)

// CLIConfigDir returns the CLI config directory:
// ~/.config/apimgr/weather (Unix) or %APPDATA%\apimgr\weather (Windows)
func CLIConfigDir() string {
	if runtime.GOOS == "windows" {
		return filepath.Join(os.Getenv("APPDATA"), projectOrg, projectName)
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", projectOrg, projectName)
}

// CLILogDir returns the CLI log directory:
// ~/.local/log/apimgr/weather (Unix) or %LOCALAPPDATA%\apimgr\weather\log (Windows)
func CLILogDir() string {
	if runtime.GOOS == "windows" {
		return filepath.Join(os.Getenv("LOCALAPPDATA"), projectOrg, projectName, "log")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "log", projectOrg, projectName)
}

// CLIConfigFile returns the CLI config file path
func CLIConfigFile() string {
	return filepath.Join(CLIConfigDir(), "cli.yml")
}

// CLILogFile returns the default CLI log file path
func CLILogFile() string {
	return filepath.Join(CLILogDir(), "cli.log")
}

// CLITokenFile returns the default session token file path
func CLITokenFile() string {
	return filepath.Join(CLIConfigDir(), "token.json")
}

// ResolveConfigPath maps the --config value to a file. A bare name selects a
// profile in the config directory ("work" -> {config_dir}/work.yml); anything
// that looks like a path is used as is.
func ResolveConfigPath(value string) string {
	if value == "" {
		return CLIConfigFile()
	}
	if filepath.IsAbs(value) || strings.ContainsRune(value, filepath.Separator) || strings.ContainsRune(value, '/') {
		return value
	}
	if !strings.HasSuffix(value, ".yml") && !strings.HasSuffix(value, ".yaml") {
		value += ".yml"
	}
	return filepath.Join(CLIConfigDir(), value)
}

// EnsureFile creates the parent directory of path with user-only access
func EnsureFile(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("create parent dir: %w", err)
	}
	if err := setDirPermissions(dir); err != nil {
		return fmt.Errorf("set permissions on %s: %w", dir, err)
	}
	return nil
}
