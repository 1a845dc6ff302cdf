package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/goccy/go-yaml"
	"github.com/k1LoW/expand"
)

const appName = "oeuvres"

var (
	homePath       string
	configHomePath string
	stateHomePath  string
)

type Config struct {
	// Base URL of the remote font stylesheet service
	FontsURL string `yaml:"fontsURL,omitempty" json:"fontsURL,omitempty"`
	// Fonts assumed to be installed on readers' devices, in addition to the built-in ones
	SystemFonts []string `yaml:"systemFonts,omitempty" json:"systemFonts,omitempty"`
	// Fonts known to render well, in addition to the built-in ones
	AllowedFonts []string `yaml:"allowedFonts,omitempty" json:"allowedFonts,omitempty"`
	// CSS class of the rendered container
	Class string `yaml:"class,omitempty" json:"class,omitempty"`
	// Whether to sanitize rendered HTML (default true)
	Sanitize *bool `yaml:"sanitize,omitempty" json:"sanitize,omitempty"`
	// Settings for the export command
	Export Export `yaml:"export,omitempty" json:"export,omitempty"`
}

type Export struct {
	If          string `yaml:"if,omitempty" json:"if,omitempty"`                   // condition a file must satisfy to be exported
	Concurrency int    `yaml:"concurrency,omitempty" json:"concurrency,omitempty"` // number of files rendered in parallel
}

func init() {
	var err error
	homePath, err = os.UserHomeDir()
	if err != nil {
		panic(fmt.Sprintf("failed to get home directory: %v", err))
	}
}

// SanitizeEnabled reports whether rendered HTML should be sanitized.
func (c *Config) SanitizeEnabled() bool {
	return c.Sanitize == nil || *c.Sanitize
}

// Load loads the configuration from the config file.
// It searches for config files in the following order:
// 1. $XDG_CONFIG_HOME/oeuvres/config-{profile}.yml
// 2. $XDG_CONFIG_HOME/oeuvres/config.yml
// Environment variables in the file are expanded.
// If no config file is found, it returns an empty Config struct.
func Load(profile string) (*Config, error) {
	var configBasePaths []string
	if profile != "" {
		configBasePaths = append(configBasePaths, filepath.Join(configPath(), fmt.Sprintf("config-%s", profile)))
	}
	configBasePaths = append(configBasePaths, filepath.Join(configPath(), "config"))
	cfg := &Config{}
	for _, basePath := range configBasePaths {
		for _, ext := range []string{".yml", ".yaml"} {
			configPath := basePath + ext
			if b, err := os.ReadFile(configPath); err == nil {
				if err := yaml.Unmarshal(expand.ExpandenvYAMLBytes(b), cfg); err != nil {
					return nil, fmt.Errorf("failed to unmarshal config: %w", err)
				}
				return cfg, nil
			}
		}
	}
	// If no config file is found, return an empty config
	return cfg, nil
}

// Path returns the path of the config file Load would read, or an empty string.
func Path(profile string) string {
	var configBasePaths []string
	if profile != "" {
		configBasePaths = append(configBasePaths, filepath.Join(configPath(), fmt.Sprintf("config-%s", profile)))
	}
	configBasePaths = append(configBasePaths, filepath.Join(configPath(), "config"))
	for _, basePath := range configBasePaths {
		for _, ext := range []string{".yml", ".yaml"} {
			if _, err := os.Stat(basePath + ext); err == nil {
				return basePath + ext
			}
		}
	}
	return ""
}

// configPath returns the path to the configuration directory.
func configPath() string {
	if configHomePath != "" {
		return configHomePath
	}
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		configHomePath = filepath.Join(v, appName)
	} else {
		configHomePath = filepath.Join(homePath, ".config", appName)
	}
	return configHomePath
}

func StateHomePath() string {
	if stateHomePath != "" {
		return stateHomePath
	}
	if v := os.Getenv("XDG_STATE_HOME"); v != "" {
		stateHomePath = filepath.Join(v, appName)
	} else {
		stateHomePath = filepath.Join(homePath, ".local", "state", appName)
	}
	return stateHomePath
}
