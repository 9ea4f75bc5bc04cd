package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	UI   UIConfig
	Keys map[string][]string
	Log  LogConfig
}

// UIConfig holds presentation settings.
type UIConfig struct {
	Locale       string
	DisplayWidth int `mapstructure:"display_width"`
	Theme        string
	Mouse        bool
}

// LogConfig holds logging settings. An empty Path disables logging.
type LogConfig struct {
	Path  string
	Level string
}

// Path is the config file Load reads and Save writes.
func Path() string {
	if p := os.Getenv("KEYPAD_CONFIG"); p != "" {
		return p
	}
	return filepath.Join(os.Getenv("HOME"), ".config", "keypad", "config.toml")
}

var flagKeys = map[string]string{
	"ui.locale": "locale",
	"ui.theme":  "theme",
	"ui.mouse":  "mouse",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ui.locale", "en")
	v.SetDefault("ui.display_width", 23)
	v.SetDefault("ui.theme", "mocha")
	v.SetDefault("ui.mouse", true)
	v.SetDefault("log.path", "")
	v.SetDefault("log.level", "info")
}

// Load reads configuration from file and env. Env var overrides use prefix KEYPAD_.
func Load() (Config, error) {
	return LoadWithFlags(nil)
}

// LoadWithFlags is Load with command line flags layered on top. Flags named
// "locale", "theme" and "mouse" override the ui settings when set.
func LoadWithFlags(fs *pflag.FlagSet) (Config, error) {
	v := viper.New()
	setDefaults(v)
	if fs != nil {
		for key, name := range flagKeys {
			if f := fs.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return Config{}, fmt.Errorf("bind flag %s: %w", name, err)
				}
			}
		}
	}

	v.SetConfigType("toml")

	if cfgPath := os.Getenv("KEYPAD_CONFIG"); cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "keypad"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("KEYPAD")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// read config file if present
	_ = v.ReadInConfig()

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if c.UI.DisplayWidth < 4 {
		c.UI.DisplayWidth = 4
	}
	return c, nil
}

// Save writes every field of cfg to the config file, creating the config
// directory if needed.
func Save(cfg Config) error {
	path := Path()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("ui.locale", cfg.UI.Locale)
	v.Set("ui.display_width", cfg.UI.DisplayWidth)
	v.Set("ui.theme", cfg.UI.Theme)
	v.Set("ui.mouse", cfg.UI.Mouse)
	v.Set("log.path", cfg.Log.Path)
	v.Set("log.level", cfg.Log.Level)
	for action, keys := range cfg.Keys {
		v.Set("keys."+action, keys)
	}

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
