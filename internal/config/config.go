package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/agentx-labs/metaregistry/internal/branding"
	"github.com/spf13/viper"
)

const (
	fileName = "config"
	fileType = "yaml"
)

// Setting keys.
const (
	KeyPresetDirs = "preset_dirs"
	KeyOutput     = "output"
	KeyDebug      = "debug"
)

// Dir returns the path to the config directory (~/.metaregistry/).
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", branding.HomeDir())
	}
	return filepath.Join(home, branding.HomeDir())
}

// FilePath returns the full path to the config file (~/.metaregistry/config.yaml).
func FilePath() string {
	return filepath.Join(Dir(), fileName+"."+fileType)
}

// DefaultPresetDir returns ~/.metaregistry/presets, which is always searched
// after any configured preset directories.
func DefaultPresetDir() string {
	return filepath.Join(Dir(), "presets")
}

// EnsureDir creates the config directory if it does not exist.
func EnsureDir() error {
	dir := Dir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}
	return nil
}

// Load initializes Viper to read from the config file and environment.
func Load() {
	viper.SetConfigFile(FilePath())
	viper.SetConfigType(fileType)
	viper.SetEnvPrefix(branding.EnvPrefix())
	viper.AutomaticEnv()
	viper.SetDefault(KeyOutput, "json")

	// Ignore error if config file doesn't exist yet.
	_ = viper.ReadInConfig()
}

// Get returns a config value by key. Returns empty string if not set.
func Get(key string) string {
	return viper.GetString(key)
}

// PresetDirs returns the configured preset directories followed by the
// default one. A string value (from `config set` or the environment) is
// split like $PATH.
func PresetDirs() []string {
	var dirs []string
	switch v := viper.Get(KeyPresetDirs).(type) {
	case nil:
	case string:
		dirs = filepath.SplitList(v)
	default:
		dirs = viper.GetStringSlice(KeyPresetDirs)
	}

	out := make([]string, 0, len(dirs)+1)
	for _, d := range dirs {
		if d != "" {
			out = append(out, d)
		}
	}
	return append(out, DefaultPresetDir())
}

// Output returns the default output format for registry documents.
func Output() string {
	return viper.GetString(KeyOutput)
}

// Debug reports whether debug logging is enabled in config or environment.
func Debug() bool {
	return viper.GetBool(KeyDebug)
}

// Set writes a config key-value pair and saves the config file.
func Set(key, value string) error {
	if err := EnsureDir(); err != nil {
		return err
	}

	viper.Set(key, value)

	configFile := FilePath()

	// Create the file if it doesn't exist.
	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		f, err := os.Create(configFile)
		if err != nil {
			return fmt.Errorf("creating config file %s: %w", configFile, err)
		}
		f.Close()
	}

	if err := viper.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}
