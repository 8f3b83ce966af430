// SPDX-FileCopyrightText: 2026 ts2openapi
// SPDX-License-Identifier: FSL-1.1-MIT

package config

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors matched with errors.Is.
var (
	// ErrInvalidConfigPath is returned when the config file cannot be read or decoded.
	ErrInvalidConfigPath = errors.New("Invalid JSON Path")

	// ErrInvalidConfigFile is returned when a required config key is missing or invalid.
	ErrInvalidConfigFile = errors.New("Invalid JSON file")

	// ErrInvalidAPIPath is returned when a pathList entry does not exist.
	ErrInvalidAPIPath = errors.New("Invalid API Path")
)

// ConfigPathError reports a config file that is missing, unreadable, or not valid JSON/YAML.
type ConfigPathError struct {
	Path string
	Err  error
}

func (e *ConfigPathError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", ErrInvalidConfigPath, e.Path, e.Err)
	}
	return fmt.Sprintf("%s: %s", ErrInvalidConfigPath, e.Path)
}

func (e *ConfigPathError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrInvalidConfigPath}
	}
	return []error{ErrInvalidConfigPath, e.Err}
}

// ConfigFieldError reports a missing or invalid config key.
type ConfigFieldError struct {
	Field   string
	Message string
}

func (e *ConfigFieldError) Error() string {
	return fmt.Sprintf("%s: %s: %s", ErrInvalidConfigFile, e.Field, e.Message)
}

func (e *ConfigFieldError) Unwrap() error {
	return ErrInvalidConfigFile
}

// ConfigFieldErrors collects every invalid value found by the value rules.
type ConfigFieldErrors []ConfigFieldError

func (e ConfigFieldErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	if len(e) == 1 {
		return e[0].Error()
	}
	var sb strings.Builder
	sb.WriteString(ErrInvalidConfigFile.Error())
	sb.WriteString(":\n")
	for _, err := range e {
		sb.WriteString("  - ")
		sb.WriteString(err.Field)
		sb.WriteString(": ")
		sb.WriteString(err.Message)
		sb.WriteString("\n")
	}
	return sb.String()
}

// Unwrap exposes each entry as a *ConfigFieldError, so errors.As finds the
// first invalid field.
func (e ConfigFieldErrors) Unwrap() []error {
	errs := make([]error, 0, len(e)+1)
	for i := range e {
		errs = append(errs, &e[i])
	}
	return append(errs, ErrInvalidConfigFile)
}

// SourcePathError reports a pathList entry that does not exist on disk.
type SourcePathError struct {
	Path string
}

func (e *SourcePathError) Error() string {
	return fmt.Sprintf("%s: %s", ErrInvalidAPIPath, e.Path)
}

func (e *SourcePathError) Unwrap() error {
	return ErrInvalidAPIPath
}
