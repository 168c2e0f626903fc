package client

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"

	"github.com/apimgr/weather-cli/src/api"
	"github.com/apimgr/weather-cli/src/renderer"
)

const (
	// envPrefix prefixes every WEATHER_{SECTION}_{KEY} override
	envPrefix = "WEATHER_"
	// legacyBaseURLEnv is the variable older installs used for the server
	legacyBaseURLEnv = "API_BASE_URL"
	// DefaultServer is where the account service listens out of the box
	DefaultServer = "http://localhost:3005"
)

// CLIConfig represents the CLI client configuration
type CLIConfig struct {
	// Server connection settings
	Server ServerConfig `yaml:"server"`
	// Authentication
	Auth AuthConfig `yaml:"auth,omitempty"`
	// Output preferences
	Output OutputConfig `yaml:"output"`
	// Logging
	Logging LoggingConfig `yaml:"logging"`
	// Debug mode
	Debug bool `yaml:"debug,omitempty"`
}

// ServerConfig holds server connection settings
type ServerConfig struct {
	Primary string `yaml:"primary,omitempty"`
	Timeout string `yaml:"timeout,omitempty"`
}

// AuthConfig holds authentication settings
type AuthConfig struct {
	TokenFile string `yaml:"token_file,omitempty"`
}

// OutputConfig holds output preferences
type OutputConfig struct {
	Format string `yaml:"format,omitempty"`
	Color  string `yaml:"color,omitempty"`
}

// LoggingConfig holds logging settings
type LoggingConfig struct {
	Level string `yaml:"level,omitempty"`
	File  string `yaml:"file,omitempty"`
}

// configKeys lists every settable key; env overrides outside it are ignored
var configKeys = []string{
	"server.primary",
	"server.timeout",
	"auth.token_file",
	"output.format",
	"output.color",
	"logging.level",
	"logging.file",
	"debug",
}

// DefaultConfig returns the default configuration
func DefaultConfig() *CLIConfig {
	return &CLIConfig{
		Server: ServerConfig{
			Primary: DefaultServer,
			Timeout: "30s",
		},
		Output: OutputConfig{
			Format: renderer.FormatPlain,
			Color:  "auto",
		},
		Logging: LoggingConfig{
			Level: "warn",
		},
	}
}

// Timeout returns the HTTP timeout, falling back to the client default when
// the configured value does not parse
func (c *CLIConfig) Timeout() time.Duration {
	d, err := time.ParseDuration(c.Server.Timeout)
	if err != nil || d <= 0 {
		return api.DefaultTimeout
	}
	return d
}

// TokenFile returns the session token file path
func (c *CLIConfig) TokenFile() string {
	if c.Auth.TokenFile != "" {
		return c.Auth.TokenFile
	}
	return CLITokenFile()
}

// defaultLogFile is the logging.file value selecting CLILogFile
const defaultLogFile = "default"

// LogFile returns the log file path, or "" when records go to stderr
func (c *CLIConfig) LogFile() string {
	if c.Logging.File == defaultLogFile {
		return CLILogFile()
	}
	return c.Logging.File
}

// LoadConfig loads the configuration at path on top of the defaults, then
// applies API_BASE_URL and WEATHER_* environment overrides. A missing file
// is not an error.
func LoadConfig(path string) (*CLIConfig, error) {
	k := koanf.New(".")

	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, NewConfigError(fmt.Sprintf("failed to parse config: %v", err))
		}
	} else if !errors.Is(err, fs.ErrNotExist) {
		return nil, NewConfigError(fmt.Sprintf("failed to read config: %v", err))
	}

	if v := os.Getenv(legacyBaseURLEnv); v != "" {
		if err := k.Set("server.primary", v); err != nil {
			return nil, NewConfigError(fmt.Sprintf("failed to apply %s: %v", legacyBaseURLEnv, err))
		}
	}

	if err := k.Load(env.ProviderWithValue(envPrefix, ".", envValue), nil); err != nil {
		return nil, NewConfigError(fmt.Sprintf("failed to read environment: %v", err))
	}

	config := DefaultConfig()
	if err := k.UnmarshalWithConf("", config, koanf.UnmarshalConf{Tag: "yaml"}); err != nil {
		return nil, NewConfigError(fmt.Sprintf("failed to parse config: %v", err))
	}

	return config, nil
}

// envKey maps WEATHER_SERVER_PRIMARY to server.primary and
// WEATHER_AUTH_TOKEN_FILE to auth.token_file. Unknown variables map to "".
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, envPrefix))
	key = strings.Replace(key, "_", ".", 1)
	for _, known := range configKeys {
		if key == known {
			return key
		}
	}
	return ""
}

// envValue maps a WEATHER_* variable to its key. WEATHER_DEBUG accepts the
// same spellings as "config set debug".
func envValue(name, value string) (string, any) {
	key := envKey(name)
	if key == "debug" {
		return key, parseBoolValue(value)
	}
	return key, value
}

// SaveConfig writes the configuration to path with owner-only permissions
func SaveConfig(path string, config *CLIConfig) error {
	if err := EnsureFile(path); err != nil {
		return NewConfigError(fmt.Sprintf("failed to create config directory: %v", err))
	}

	data, err := yamlv3.Marshal(config)
	if err != nil {
		return NewConfigError(fmt.Sprintf("failed to marshal config: %v", err))
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return NewConfigError(fmt.Sprintf("failed to write config: %v", err))
	}
	if err := setFilePermissions(path); err != nil {
		return NewConfigError(fmt.Sprintf("failed to set config permissions: %v", err))
	}

	return nil
}

// InitConfig writes a default configuration file at path
func InitConfig(path string, w io.Writer) error {
	if _, err := os.Stat(path); err == nil {
		return NewConfigError("config file already exists")
	}

	if err := SaveConfig(path, DefaultConfig()); err != nil {
		return err
	}

	fmt.Fprintf(w, "Configuration file created at: %s\n", path)
	return nil
}

// GetConfigValue returns a specific configuration value
// Supports dot notation: server.primary, output.format, etc.
func GetConfigValue(config *CLIConfig, key string) (string, error) {
	switch key {
	case "server.primary":
		return config.Server.Primary, nil
	case "server.timeout":
		return config.Server.Timeout, nil
	case "auth.token_file":
		return config.TokenFile(), nil
	case "output.format":
		return config.Output.Format, nil
	case "output.color":
		return config.Output.Color, nil
	case "logging.level":
		return config.Logging.Level, nil
	case "logging.file":
		return config.Logging.File, nil
	case "debug":
		return fmt.Sprintf("%t", config.Debug), nil
	default:
		return "", NewConfigError(fmt.Sprintf("unknown config key: %s", key))
	}
}

// SetConfigValue sets a specific configuration value in the file at path.
// Only the file is read back, so environment overrides are not persisted.
func SetConfigValue(path, key, value string) error {
	config, err := loadFileOnly(path)
	if err != nil {
		return err
	}

	switch key {
	case "server.primary":
		config.Server.Primary = strings.TrimSuffix(value, "/")
	case "server.timeout":
		if d, err := time.ParseDuration(value); err != nil || d <= 0 {
			return NewConfigError("server.timeout must be a positive duration such as 30s")
		}
		config.Server.Timeout = value
	case "auth.token_file":
		config.Auth.TokenFile = value
	case "output.format":
		if !renderer.ValidFormat(value) {
			return NewConfigError("output.format must be plain, table, json, or oneline")
		}
		config.Output.Format = value
	case "output.color":
		if value != "auto" && value != "always" && value != "never" {
			return NewConfigError("output.color must be auto, always, or never")
		}
		config.Output.Color = value
	case "logging.level":
		if _, err := parseLevel(value); err != nil {
			return NewConfigError(err.Error())
		}
		config.Logging.Level = value
	case "logging.file":
		config.Logging.File = value
	case "debug":
		config.Debug = parseBoolValue(value)
	default:
		return NewConfigError(fmt.Sprintf("unknown config key: %s", key))
	}

	return SaveConfig(path, config)
}

// loadFileOnly reads path over the defaults without environment overrides
func loadFileOnly(path string) (*CLIConfig, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return config, nil
	}
	if err != nil {
		return nil, NewConfigError(fmt.Sprintf("failed to read config: %v", err))
	}

	if err := yamlv3.Unmarshal(data, config); err != nil {
		return nil, NewConfigError(fmt.Sprintf("failed to parse config: %v", err))
	}
	return config, nil
}

// parseBoolValue parses a boolean string value
// Supports: true/false, yes/no, 1/0, on/off, enable/disable
func parseBoolValue(value string) bool {
	v := strings.ToLower(strings.TrimSpace(value))
	switch v {
	case "true", "yes", "1", "on", "enable", "enabled":
		return true
	default:
		return false
	}
}
