package client

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"
)

// isolateHome points the config directory at a temp dir
func isolateHome(t *testing.T) string {
	t.Helper()

	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("APPDATA", home)
	t.Setenv("LOCALAPPDATA", home)
	for _, v := range []string{
		"API_BASE_URL",
		"WEATHER_SERVER_PRIMARY",
		"WEATHER_SERVER_TIMEOUT",
		"WEATHER_AUTH_TOKEN_FILE",
		"WEATHER_OUTPUT_FORMAT",
		"WEATHER_OUTPUT_COLOR",
		"WEATHER_LOGGING_LEVEL",
		"WEATHER_LOGGING_FILE",
		"WEATHER_DEBUG",
	} {
		t.Setenv(v, "")
		os.Unsetenv(v)
	}
	return home
}

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	if config.Server.Primary != "http://localhost:3005" {
		t.Errorf("Expected default server to be http://localhost:3005, got %s", config.Server.Primary)
	}
	if config.Output.Format != "plain" {
		t.Errorf("Expected default output to be plain, got %s", config.Output.Format)
	}
	if config.Timeout() != 30*time.Second {
		t.Errorf("Expected default timeout to be 30s, got %s", config.Timeout())
	}
	if config.Debug {
		t.Error("Expected default Debug to be false")
	}
}

func TestConfigPaths(t *testing.T) {
	isolateHome(t)

	if !filepath.IsAbs(CLIConfigFile()) {
		t.Errorf("Expected absolute path, got %s", CLIConfigFile())
	}
	if filepath.Base(CLIConfigFile()) != "cli.yml" {
		t.Errorf("Expected filename to be cli.yml, got %s", filepath.Base(CLIConfigFile()))
	}
	if filepath.Base(CLITokenFile()) != "token.json" {
		t.Errorf("Expected token file to be token.json, got %s", filepath.Base(CLITokenFile()))
	}
	if DefaultConfig().TokenFile() != CLITokenFile() {
		t.Error("Expected default token file in the config directory")
	}
}

func TestResolveConfigPath(t *testing.T) {
	isolateHome(t)

	tests := map[string]string{
		"":               CLIConfigFile(),
		"work":           filepath.Join(CLIConfigDir(), "work.yml"),
		"work.yaml":      filepath.Join(CLIConfigDir(), "work.yaml"),
		"./custom.yml":   "./custom.yml",
		"/tmp/other.yml": "/tmp/other.yml",
	}
	for in, want := range tests {
		if got := ResolveConfigPath(in); got != want {
			t.Errorf("ResolveConfigPath(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestLoadConfigNonExistent(t *testing.T) {
	isolateHome(t)

	config, err := LoadConfig(CLIConfigFile())
	if err != nil {
		t.Fatalf("LoadConfig() failed: %v", err)
	}
	if config.Server.Primary != DefaultServer {
		t.Errorf("Expected default server, got %s", config.Server.Primary)
	}
}

func TestSaveAndLoadConfig(t *testing.T) {
	isolateHome(t)
	path := CLIConfigFile()

	config := DefaultConfig()
	config.Server.Primary = "http://test.example.com"
	config.Server.Timeout = "5s"
	config.Output.Format = "json"
	config.Auth.TokenFile = "/tmp/token.json"
	config.Debug = true

	if err := SaveConfig(path, config); err != nil {
		t.Fatalf("SaveConfig() failed: %v", err)
	}

	if runtime.GOOS != "windows" {
		info, err := os.Stat(path)
		if err != nil {
			t.Fatalf("stat: %v", err)
		}
		if info.Mode().Perm() != 0600 {
			t.Errorf("Expected config permissions 0600, got %o", info.Mode().Perm())
		}
	}

	loaded, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() failed: %v", err)
	}

	if loaded.Server.Primary != config.Server.Primary {
		t.Errorf("Expected server %s, got %s", config.Server.Primary, loaded.Server.Primary)
	}
	if loaded.Timeout() != 5*time.Second {
		t.Errorf("Expected timeout 5s, got %s", loaded.Timeout())
	}
	if loaded.Output.Format != "json" {
		t.Errorf("Expected output json, got %s", loaded.Output.Format)
	}
	if loaded.TokenFile() != "/tmp/token.json" {
		t.Errorf("Expected token file /tmp/token.json, got %s", loaded.TokenFile())
	}
	if !loaded.Debug {
		t.Error("Expected Debug to be true")
	}
	if loaded.Logging.Level != "warn" {
		t.Errorf("Expected default logging level to survive, got %s", loaded.Logging.Level)
	}
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	isolateHome(t)
	path := CLIConfigFile()

	config := DefaultConfig()
	config.Server.Primary = "http://from-file"
	if err := SaveConfig(path, config); err != nil {
		t.Fatalf("SaveConfig() failed: %v", err)
	}

	t.Setenv("API_BASE_URL", "http://from-legacy")
	loaded, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() failed: %v", err)
	}
	if loaded.Server.Primary != "http://from-legacy" {
		t.Errorf("Expected API_BASE_URL to override the file, got %s", loaded.Server.Primary)
	}

	t.Setenv("WEATHER_SERVER_PRIMARY", "http://from-env")
	t.Setenv("WEATHER_AUTH_TOKEN_FILE", "/tmp/env-token.json")
	t.Setenv("WEATHER_OUTPUT_FORMAT", "table")
	t.Setenv("WEATHER_DEBUG", "true")
	t.Setenv("WEATHER_UNRELATED_THING", "ignored")

	loaded, err = LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() failed: %v", err)
	}
	if loaded.Server.Primary != "http://from-env" {
		t.Errorf("Expected WEATHER_SERVER_PRIMARY to win, got %s", loaded.Server.Primary)
	}
	if loaded.TokenFile() != "/tmp/env-token.json" {
		t.Errorf("Expected env token file, got %s", loaded.TokenFile())
	}
	if loaded.Output.Format != "table" {
		t.Errorf("Expected output table, got %s", loaded.Output.Format)
	}
	if !loaded.Debug {
		t.Error("Expected Debug from WEATHER_DEBUG")
	}
}

func TestLoadConfigEnvDebugSpellings(t *testing.T) {
	tests := []struct {
		value string
		want  bool
	}{
		{"true", true},
		{"yes", true},
		{"on", true},
		{"enable", true},
		{"1", true},
		{"no", false},
		{"off", false},
		{"garbage", false},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			isolateHome(t)
			t.Setenv("WEATHER_DEBUG", tt.value)

			loaded, err := LoadConfig(CLIConfigFile())
			if err != nil {
				t.Fatalf("LoadConfig() failed: %v", err)
			}
			if loaded.Debug != tt.want {
				t.Errorf("WEATHER_DEBUG=%s: expected debug %v, got %v", tt.value, tt.want, loaded.Debug)
			}
		})
	}
}

func TestLoadConfigMalformed(t *testing.T) {
	isolateHome(t)
	path := CLIConfigFile()

	if err := EnsureFile(path); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("server: [unclosed"), 0600); err != nil {
		t.Fatal(err)
	}

	_, err := LoadConfig(path)
	exitErr, ok := err.(*ExitError)
	if !ok {
		t.Fatalf("Expected *ExitError, got %T", err)
	}
	if exitErr.Code != ExitConfigError {
		t.Errorf("Expected ExitConfigError, got exit code %d", exitErr.Code)
	}
}

func TestEnvKey(t *testing.T) {
	tests := map[string]string{
		"WEATHER_SERVER_PRIMARY":  "server.primary",
		"WEATHER_AUTH_TOKEN_FILE": "auth.token_file",
		"WEATHER_LOGGING_LEVEL":   "logging.level",
		"WEATHER_DEBUG":           "debug",
		"WEATHER_API_KEY":         "",
		"WEATHER_SERVER":          "",
	}
	for in, want := range tests {
		if got := envKey(in); got != want {
			t.Errorf("envKey(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestInitConfig(t *testing.T) {
	isolateHome(t)
	path := CLIConfigFile()

	var out nopWriter
	if err := InitConfig(path, &out); err != nil {
		t.Fatalf("InitConfig() failed: %v", err)
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Error("Config file was not created")
	}

	err := InitConfig(path, &out)
	if err == nil {
		t.Fatal("Expected error when initializing existing config")
	}
	if exitErr, ok := err.(*ExitError); ok {
		if exitErr.Code != ExitConfigError {
			t.Errorf("Expected ExitConfigError, got exit code %d", exitErr.Code)
		}
	} else {
		t.Error("Expected ExitError type")
	}
}

func TestSetAndGetConfigValue(t *testing.T) {
	isolateHome(t)
	path := CLIConfigFile()

	tests := []struct {
		key   string
		value string
	}{
		{"server.primary", "http://new.example.com"},
		{"server.timeout", "45s"},
		{"auth.token_file", "/tmp/t.json"},
		{"output.format", "json"},
		{"output.color", "never"},
		{"logging.level", "debug"},
		{"logging.file", "/tmp/cli.log"},
		{"debug", "true"},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			if err := SetConfigValue(path, tt.key, tt.value); err != nil {
				t.Fatalf("SetConfigValue(%s, %s) failed: %v", tt.key, tt.value, err)
			}

			config, err := LoadConfig(path)
			if err != nil {
				t.Fatalf("LoadConfig() failed: %v", err)
			}
			value, err := GetConfigValue(config, tt.key)
			if err != nil {
				t.Fatalf("GetConfigValue(%s) failed: %v", tt.key, err)
			}
			if value != tt.value {
				t.Errorf("Expected %s, got %s", tt.value, value)
			}
		})
	}

	if _, err := GetConfigValue(DefaultConfig(), "invalid_key"); err == nil {
		t.Error("Expected error for invalid key")
	}
}

func TestSetConfigValueValidation(t *testing.T) {
	isolateHome(t)
	path := CLIConfigFile()

	invalid := []struct{ key, value string }{
		{"output.format", "yaml"},
		{"output.color", "sometimes"},
		{"server.timeout", "soon"},
		{"logging.level", "loud"},
		{"nope", "x"},
	}
	for _, tt := range invalid {
		if err := SetConfigValue(path, tt.key, tt.value); err == nil {
			t.Errorf("Expected error for %s=%s", tt.key, tt.value)
		}
	}
}

func TestSetConfigValueTrimsServerSlash(t *testing.T) {
	isolateHome(t)
	path := CLIConfigFile()

	if err := SetConfigValue(path, "server.primary", "http://host:3005/"); err != nil {
		t.Fatal(err)
	}
	config, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if config.Server.Primary != "http://host:3005" {
		t.Errorf("Expected trailing slash trimmed, got %s", config.Server.Primary)
	}
}

func TestParseBoolValue(t *testing.T) {
	for _, v := range []string{"true", "YES", "1", "on", " enabled "} {
		if !parseBoolValue(v) {
			t.Errorf("Expected %q to parse as true", v)
		}
	}
	for _, v := range []string{"false", "no", "0", "", "maybe"} {
		if parseBoolValue(v) {
			t.Errorf("Expected %q to parse as false", v)
		}
	}
}

type nopWriter struct{}

func (*nopWriter) Write(p []byte) (int, error) { return len(p), nil }
