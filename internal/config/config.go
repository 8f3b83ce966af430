// SPDX-FileCopyrightText: 2026 ts2openapi
// SPDX-License-Identifier: FSL-1.1-MIT

// Package config provides configuration loading and validation for ts2openapi.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Config represents the ts2openapi configuration.
type Config struct {
	// PathList is the ordered list of source files (or directories, or globs) to scan
	PathList []string `mapstructure:"pathList" yaml:"pathList" json:"pathList" validate:"dive,required"`

	// APIName becomes info.title
	APIName string `mapstructure:"apiName" yaml:"apiName" json:"apiName" validate:"required"`

	// Version becomes info.version
	Version string `mapstructure:"version" yaml:"version" json:"version" validate:"required"`

	// Description becomes info.description
	Description string `mapstructure:"description" yaml:"description,omitempty" json:"description,omitempty"`

	// Servers is copied verbatim into the document
	Servers []ServerConfig `mapstructure:"servers" yaml:"servers,omitempty" json:"servers,omitempty" validate:"dive"`

	// Output is the file the document is written to; empty means no file
	Output string `mapstructure:"output" yaml:"output,omitempty" json:"output,omitempty"`

	// Format is the output format (json, yaml)
	Format string `mapstructure:"format" yaml:"format,omitempty" json:"format,omitempty" validate:"omitempty,oneof=json yaml"`

	// Exclude lists glob patterns skipped when a pathList entry is a directory
	Exclude []string `mapstructure:"exclude" yaml:"exclude,omitempty" json:"exclude,omitempty"`

	// Watch contains file watching configuration
	Watch WatchConfig `mapstructure:"watch" yaml:"watch,omitempty" json:"watch,omitempty"`

	// Serve contains preview server configuration
	Serve ServeConfig `mapstructure:"serve" yaml:"serve,omitempty" json:"serve,omitempty"`

	// keys holds the keys present in the loaded file; nil when built in code
	keys map[string]bool
}

// ServerConfig contains server configuration.
type ServerConfig struct {
	// URL is the server URL
	URL string `mapstructure:"url" yaml:"url" json:"url" validate:"required"`

	// Description is the server description
	Description string `mapstructure:"description" yaml:"description,omitempty" json:"description,omitempty"`
}

// WatchConfig contains file watching configuration.
type WatchConfig struct {
	// Debounce is the debounce duration in milliseconds
	Debounce int `mapstructure:"debounce" yaml:"debounce,omitempty" json:"debounce,omitempty" validate:"gte=0"`
}

// ServeConfig contains preview server configuration.
type ServeConfig struct {
	// Address is the listen address (e.g., ":8080")
	Address string `mapstructure:"address" yaml:"address,omitempty" json:"address,omitempty"`
}

// configFileNames is the list of config file names to search for (in order).
var configFileNames = []string{
	"ts2openapi.json",
	"ts2openapi.yaml",
	".ts2openapi.json",
	".ts2openapi.yaml",
}

// requiredKeys must be present in every config file.
var requiredKeys = []string{"pathList", "apiName", "version"}

// Defaults applied to optional keys.
const (
	DefaultFormat   = "json"
	DefaultDebounce = 500
	DefaultAddress  = ":8080"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report fields by their config key rather than the Go field name.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("mapstructure"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Load loads the configuration from a file.
// If configPath is empty, it searches the working directory for
// ts2openapi.json, ts2openapi.yaml, .ts2openapi.json, .ts2openapi.yaml.
func Load(configPath string) (*Config, error) {
	if configPath == "" {
		configPath = ConfigFilePath()
		if configPath == "" {
			return nil, &ConfigPathError{Path: configFileNames[0], Err: os.ErrNotExist}
		}
	}

	v := viper.New()
	setDefaults(v)
	v.SetConfigFile(configPath)

	if err := v.ReadInConfig(); err != nil {
		return nil, &ConfigPathError{Path: configPath, Err: err}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, &ConfigPathError{Path: configPath, Err: fmt.Errorf("failed to unmarshal config: %w", err)}
	}

	cfg.keys = make(map[string]bool, len(requiredKeys))
	for _, key := range requiredKeys {
		cfg.keys[key] = v.InConfig(key)
	}

	return &cfg, nil
}

// setDefaults sets the default values for optional keys.
// Required keys get no default so their absence stays visible.
func setDefaults(v *viper.Viper) {
	v.SetDefault("format", DefaultFormat)
	v.SetDefault("watch.debounce", DefaultDebounce)
	v.SetDefault("serve.address", DefaultAddress)
	v.SetDefault("exclude", []string{"node_modules/**", "**/*.d.ts", "dist/**", "build/**"})
}

// Validate checks required keys, value rules and source path existence,
// in that order, stopping at the first failing stage.
func (c *Config) Validate() error {
	for _, key := range requiredKeys {
		if !c.hasKey(key) {
			return &ConfigFieldError{Field: key, Message: "required key is missing"}
		}
	}

	if err := c.validateValues(); err != nil {
		return err
	}

	for _, path := range c.PathList {
		if !pathExists(path) {
			return &SourcePathError{Path: path}
		}
	}

	return nil
}

// SetPathList replaces the path list, as a command-line override does, and
// counts the pathList key as present for Validate.
func (c *Config) SetPathList(paths []string) {
	c.PathList = paths
	if c.keys != nil {
		c.keys["pathList"] = true
	}
}

// hasKey reports whether a required key was present in the loaded file.
// Configs built in code fall back to checking for a non-zero value.
func (c *Config) hasKey(key string) bool {
	if c.keys != nil {
		return c.keys[key]
	}
	switch key {
	case "pathList":
		return c.PathList != nil
	case "apiName":
		return c.APIName != ""
	case "version":
		return c.Version != ""
	}
	return false
}

func (c *Config) validateValues() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("failed to validate config: %w", err)
	}

	errs := make(ConfigFieldErrors, 0, len(verrs))
	for _, fe := range verrs {
		errs = append(errs, ConfigFieldError{
			Field:   strings.TrimPrefix(fe.Namespace(), "Config."),
			Message: fieldMessage(fe),
		})
	}
	return errs
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "must not be empty"
	case "oneof":
		return fmt.Sprintf("unsupported value %q, must be one of: %s", fe.Value(), strings.ReplaceAll(fe.Param(), " ", ", "))
	case "gte":
		return fmt.Sprintf("must be at least %s", fe.Param())
	default:
		return fmt.Sprintf("failed %q rule", fe.Tag())
	}
}

// pathExists reports whether path names an existing file or directory,
// or, for a glob pattern, matches at least one file.
func pathExists(path string) bool {
	if IsGlob(path) {
		matches, err := doublestar.FilepathGlob(path, doublestar.WithFilesOnly())
		return err == nil && len(matches) > 0
	}
	_, err := os.Stat(path)
	return err == nil
}

// IsGlob reports whether path contains glob metacharacters.
func IsGlob(path string) bool {
	return strings.ContainsAny(filepath.ToSlash(path), "*?[{")
}

// ConfigFilePath returns the first config file found in the working directory, if any.
func ConfigFilePath() string {
	for _, name := range configFileNames {
		if _, err := os.Stat(name); err == nil {
			return name
		}
	}
	return ""
}

// FileNames returns the config file names searched by Load, in order.
func FileNames() []string {
	return append([]string(nil), configFileNames...)
}
