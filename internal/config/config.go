package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const appName = "skillpath"

type Config struct {
	Provider string        `mapstructure:"provider" yaml:"provider"`   // "gemini" or "mock"
	LogLevel string        `mapstructure:"log_level" yaml:"log_level"` // debug, info, warn, error
	Gemini   GeminiConfig  `mapstructure:"gemini" yaml:"gemini"`
	Retry    RetryConfig   `mapstructure:"retry" yaml:"retry"`
	Advisor  AdvisorConfig `mapstructure:"advisor" yaml:"advisor"`
	Roadmap  RoadmapConfig `mapstructure:"roadmap" yaml:"roadmap"`
	Tutor    TutorConfig   `mapstructure:"tutor" yaml:"tutor"`
	Serve    ServeConfig   `mapstructure:"serve" yaml:"serve"`
	Store    StoreConfig   `mapstructure:"store" yaml:"store"`
	Theme    ThemeConfig   `mapstructure:"theme" yaml:"theme"`
}

type GeminiConfig struct {
	APIKey string `mapstructure:"api_key" yaml:"api_key"`
	Model  string `mapstructure:"model" yaml:"model"`
}

type RetryConfig struct {
	MaxAttempts int           `mapstructure:"max_attempts" yaml:"max_attempts"`
	BaseBackoff time.Duration `mapstructure:"base_backoff" yaml:"base_backoff"`
	MaxBackoff  time.Duration `mapstructure:"max_backoff" yaml:"max_backoff"`
}

type AdvisorConfig struct {
	Model       string  `mapstructure:"model" yaml:"model"` // Override gemini.model for advice
	Temperature float32 `mapstructure:"temperature" yaml:"temperature"`
}

type RoadmapConfig struct {
	Model       string  `mapstructure:"model" yaml:"model"` // Override gemini.model for roadmaps
	Temperature float32 `mapstructure:"temperature" yaml:"temperature"`
}

type TutorConfig struct {
	Model        string `mapstructure:"model" yaml:"model"`
	Instructions string `mapstructure:"instructions" yaml:"instructions"`   // Replaces the built-in tutor persona
	HeadingLevel int    `mapstructure:"heading_level" yaml:"heading_level"` // HTML level for "# " headings in the web UI
}

type ServeConfig struct {
	Host        string   `mapstructure:"host" yaml:"host"`
	Port        int      `mapstructure:"port" yaml:"port"`
	Token       string   `mapstructure:"token" yaml:"token"`
	CORSOrigins []string `mapstructure:"cors_origins" yaml:"cors_origins"`
}

type StoreConfig struct {
	Path string `mapstructure:"path" yaml:"path"` // Empty means $XDG_DATA_HOME/skillpath/skillpath.db
}

// ThemeConfig allows customization of terminal colors.
// Colors can be ANSI color numbers (0-255) or hex codes (#RRGGBB)
type ThemeConfig struct {
	Preset    string `mapstructure:"preset" yaml:"preset"`
	Primary   string `mapstructure:"primary" yaml:"primary"`
	Secondary string `mapstructure:"secondary" yaml:"secondary"`
	Success   string `mapstructure:"success" yaml:"success"`
	Error     string `mapstructure:"error" yaml:"error"`
	Warning   string `mapstructure:"warning" yaml:"warning"`
	Muted     string `mapstructure:"muted" yaml:"muted"`
	Text      string `mapstructure:"text" yaml:"text"`
	Spinner   string `mapstructure:"spinner" yaml:"spinner"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("provider", "gemini")
	v.SetDefault("log_level", "warn")
	v.SetDefault("gemini.api_key", "")
	v.SetDefault("gemini.model", "gemini-2.5-flash")
	v.SetDefault("retry.max_attempts", 3)
	v.SetDefault("retry.base_backoff", "1s")
	v.SetDefault("retry.max_backoff", "20s")
	v.SetDefault("advisor.model", "")
	v.SetDefault("advisor.temperature", 0.5)
	v.SetDefault("roadmap.model", "")
	v.SetDefault("roadmap.temperature", 0.3)
	v.SetDefault("tutor.model", "")
	v.SetDefault("tutor.instructions", "")
	v.SetDefault("tutor.heading_level", 3)
	v.SetDefault("serve.host", "127.0.0.1")
	v.SetDefault("serve.port", 8080)
	v.SetDefault("serve.token", "")
	v.SetDefault("serve.cors_origins", []string{})
	v.SetDefault("store.path", "")
	for _, key := range []string{"preset", "primary", "secondary", "success", "error", "warning", "muted", "text", "spinner"} {
		v.SetDefault("theme."+key, "")
	}
}

// Load reads the config file at path, or config.yaml in the config
// directory when path is empty. A missing default file is not an error.
// SKILLPATH_* environment variables override file values.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(strings.ToUpper(appName))
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		configDir, err := GetConfigDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get config dir: %w", err)
		}
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(configDir)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	resolveGeminiCredentials(&cfg.Gemini)
	cfg.Store.Path = expandEnv(cfg.Store.Path)

	return &cfg, nil
}

// Default returns the built-in configuration with credentials resolved
// from the environment.
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	var cfg Config
	_ = v.Unmarshal(&cfg) // defaults always decode
	resolveGeminiCredentials(&cfg.Gemini)
	return &cfg
}

// ModelFor returns the model override if set, otherwise the gemini model.
func (c *Config) ModelFor(override string) string {
	if override != "" {
		return override
	}
	return c.Gemini.Model
}

// Validate checks settings that cannot be caught by decoding.
func (c *Config) Validate() error {
	switch c.Provider {
	case "gemini", "mock":
	default:
		return fmt.Errorf("unknown provider %q (want gemini or mock)", c.Provider)
	}
	if c.Serve.Port < 0 || c.Serve.Port > 65535 {
		return fmt.Errorf("serve.port %d out of range", c.Serve.Port)
	}
	if c.Tutor.HeadingLevel < 1 || c.Tutor.HeadingLevel > 5 {
		return fmt.Errorf("tutor.heading_level %d out of range 1-5", c.Tutor.HeadingLevel)
	}
	return nil
}

// resolveGeminiCredentials uses the config value, then GEMINI_API_KEY,
// then API_KEY.
func resolveGeminiCredentials(cfg *GeminiConfig) {
	cfg.APIKey = expandEnv(cfg.APIKey)
	if cfg.APIKey == "" {
		cfg.APIKey = os.Getenv("GEMINI_API_KEY")
	}
	if cfg.APIKey == "" {
		cfg.APIKey = os.Getenv("API_KEY")
	}
}

// expandEnv expands ${VAR} or $VAR in a string
func expandEnv(s string) string {
	if strings.HasPrefix(s, "${") && strings.HasSuffix(s, "}") {
		return os.Getenv(s[2 : len(s)-1])
	}
	if strings.HasPrefix(s, "$") {
		return os.Getenv(s[1:])
	}
	return s
}

// GetConfigDir returns the XDG config directory for skillpath.
// Uses $XDG_CONFIG_HOME if set, otherwise ~/.config
func GetConfigDir() (string, error) {
	if xdgHome := os.Getenv("XDG_CONFIG_HOME"); xdgHome != "" {
		return filepath.Join(xdgHome, appName), nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".config", appName), nil
}

// GetConfigPath returns the path where the config file should be located
func GetConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.yaml"), nil
}

// GetDataDir returns the XDG data directory for skillpath.
// Uses $XDG_DATA_HOME if set, otherwise ~/.local/share
func GetDataDir() (string, error) {
	if xdgData := os.Getenv("XDG_DATA_HOME"); xdgData != "" {
		return filepath.Join(xdgData, appName), nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".local", "share", appName), nil
}

// Exists returns true if a config file exists
func Exists() bool {
	path, err := GetConfigPath()
	if err != nil {
		return false
	}
	_, err = os.Stat(path)
	return err == nil
}

// DefaultYAML renders the default settings as a YAML document.
func DefaultYAML() ([]byte, error) {
	v := viper.New()
	setDefaults(v)
	out, err := yaml.Marshal(v.AllSettings())
	if err != nil {
		return nil, fmt.Errorf("marshal defaults: %w", err)
	}
	return out, nil
}

// WriteDefault writes the default config to path, refusing to overwrite
// an existing file unless force is set.
func WriteDefault(path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists", path)
		}
	}
	data, err := DefaultYAML()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	header := "# skillpath configuration\n# API key: set gemini.api_key, or export GEMINI_API_KEY\n\n"
	return os.WriteFile(path, append([]byte(header), data...), 0600)
}
