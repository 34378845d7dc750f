// Package config loads CLI settings from a YAML file and BUNDLE_ADVISOR_*
// environment variables.
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

const (
	// EnvPrefix is prepended to every environment override
	EnvPrefix = "BUNDLE_ADVISOR"
	// DefaultDir holds the default config file
	DefaultDir = "~/.bundle-advisor"
)

// Settings is the decoded configuration
type Settings struct {
	Output      OutputSettings `mapstructure:"output" yaml:"output"`
	Bundle      BundleSettings `mapstructure:"bundle" yaml:"bundle"`
	Detect      DetectSettings `mapstructure:"detect" yaml:"detect"`
	Concurrency int            `mapstructure:"concurrency" yaml:"concurrency"`
}

// OutputSettings control rendering and report files
type OutputSettings struct {
	Format string `mapstructure:"format" yaml:"format"`
	Dir    string `mapstructure:"dir" yaml:"dir"`
	Write  bool   `mapstructure:"write" yaml:"write"`
}

// BundleSettings are the size thresholds in bytes
type BundleSettings struct {
	JSThreshold     uint64 `mapstructure:"jsThreshold" yaml:"jsThreshold"`
	CSSThreshold    uint64 `mapstructure:"cssThreshold" yaml:"cssThreshold"`
	ImageThreshold  uint64 `mapstructure:"imageThreshold" yaml:"imageThreshold"`
	VendorThreshold uint64 `mapstructure:"vendorThreshold" yaml:"vendorThreshold"`
	Probe           bool   `mapstructure:"probe" yaml:"probe"`
}

// DetectSettings tune config detection
type DetectSettings struct {
	ExtraPatterns []string `mapstructure:"extraPatterns" yaml:"extraPatterns"`
}

// New returns a viper instance with defaults and env overrides registered
func New() *viper.Viper {
	v := viper.New()

	v.SetDefault("output.format", "table")
	v.SetDefault("output.dir", "bundle-analysis")
	v.SetDefault("output.write", false)
	v.SetDefault("bundle.jsThreshold", 500*1024)
	v.SetDefault("bundle.cssThreshold", 100*1024)
	v.SetDefault("bundle.imageThreshold", 1024*1024)
	v.SetDefault("bundle.vendorThreshold", 250*1024)
	v.SetDefault("bundle.probe", false)
	v.SetDefault("detect.extraPatterns", []string{})
	v.SetDefault("concurrency", runtime.NumCPU())

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return v
}

// DefaultConfigDir returns the expanded default config directory
func DefaultConfigDir() (string, error) {
	dir, err := homedir.Expand(DefaultDir)
	if err != nil {
		return "", fmt.Errorf("failed to expand %s: %w", DefaultDir, err)
	}
	return dir, nil
}

// Load reads cfgFile, or config.yaml from the default directory when cfgFile
// is empty, and decodes the result. Only an explicit file has to exist.
func Load(v *viper.Viper, cfgFile string) (*Settings, error) {
	if cfgFile != "" {
		path, err := homedir.Expand(cfgFile)
		if err != nil {
			return nil, fmt.Errorf("failed to expand config path %s: %w", cfgFile, err)
		}
		v.SetConfigFile(path)
	} else {
		dir, err := DefaultConfigDir()
		if err != nil {
			return nil, err
		}
		v.AddConfigPath(dir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if s.Concurrency < 1 {
		s.Concurrency = 1
	}
	if s.Output.Dir != "" {
		s.Output.Dir = filepath.Clean(s.Output.Dir)
	}
	return &s, nil
}
