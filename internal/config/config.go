// Package config holds apache-php settings and the install layout derived
// from the located executables.
//
// Settings start from compiled-in defaults, then an optional YAML file, then
// environment variables. Command-line flags are applied last by the CLI.
//
// Environment variables:
//   - APACHE_PHP_CONFIG: settings file to load
//   - APACHE_PHP_SEARCH_ROOT: where the long search starts
//   - APACHE_PHP_INI_TEMPLATE: local php.ini template
//   - APACHE_PHP_INI_URL: fallback php.ini template URL
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultIniURL serves the development php.ini used when the local
	// template is missing.
	DefaultIniURL = "https://raw.githubusercontent.com/thiagodp/apache-php/refs/heads/main/php.ini-development"

	// IniTemplateName is the template file shipped next to the executable.
	IniTemplateName = "php.ini-development"

	// DefaultFetchTimeout bounds the fallback download.
	DefaultFetchTimeout = 30 * time.Second

	envConfig      = "APACHE_PHP_CONFIG"
	envSearchRoot  = "APACHE_PHP_SEARCH_ROOT"
	envIniTemplate = "APACHE_PHP_INI_TEMPLATE"
	envIniURL      = "APACHE_PHP_INI_URL"
)

// Settings configures one integration run.
type Settings struct {
	// SearchRoot is where the long executable search starts.
	SearchRoot string `yaml:"search_root"`

	// IniTemplate is the local php.ini template copied over php.ini.
	IniTemplate string `yaml:"ini_template"`

	// IniURL is fetched when IniTemplate cannot be copied.
	IniURL string `yaml:"ini_url"`

	// FetchTimeout bounds the IniURL download.
	FetchTimeout time.Duration `yaml:"fetch_timeout"`

	// OptionalModules are Apache modules offered for enabling, by short
	// name (rewrite for mod_rewrite).
	OptionalModules []string `yaml:"optional_modules"`
}

// Default returns the compiled-in settings. exeDir is the directory of the
// running executable, where the ini template is expected.
func Default(exeDir string) *Settings {
	return &Settings{
		SearchRoot:      defaultSearchRoot(runtime.GOOS),
		IniTemplate:     filepath.Join(exeDir, IniTemplateName),
		IniURL:          DefaultIniURL,
		FetchTimeout:    DefaultFetchTimeout,
		OptionalModules: []string{"headers", "rewrite", "ssl"},
	}
}

func defaultSearchRoot(goos string) string {
	if goos == "windows" {
		return `C:\`
	}
	return "/"
}

// Load builds settings from defaults, the settings file and the
// environment. path overrides APACHE_PHP_CONFIG; when both are empty no
// file is read.
func Load(path, exeDir string, getenv func(string) string) (*Settings, error) {
	s := Default(exeDir)

	if path == "" {
		path = getenv(envConfig)
	}
	if path != "" {
		if err := s.loadFile(path); err != nil {
			return nil, err
		}
	}

	s.applyEnv(getenv)

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// loadFile overlays the keys present in a YAML settings file.
func (s *Settings) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read settings file: %w", err)
	}
	if err := yaml.Unmarshal(data, s); err != nil {
		return fmt.Errorf("failed to parse settings file %s: %w", path, err)
	}
	return nil
}

func (s *Settings) applyEnv(getenv func(string) string) {
	if v := getenv(envSearchRoot); v != "" {
		s.SearchRoot = v
	}
	if v := getenv(envIniTemplate); v != "" {
		s.IniTemplate = v
	}
	if v := getenv(envIniURL); v != "" {
		s.IniURL = v
	}
}

// Validate rejects settings a run cannot work with.
func (s *Settings) Validate() error {
	if s.SearchRoot == "" {
		return fmt.Errorf("invalid settings: search_root is empty")
	}
	if s.IniURL == "" {
		return fmt.Errorf("invalid settings: ini_url is empty")
	}
	if s.FetchTimeout <= 0 {
		return fmt.Errorf("invalid settings: fetch_timeout must be positive, got %v", s.FetchTimeout)
	}
	return nil
}

// ExecutableDir returns the directory of the running binary, or the working
// directory when it cannot be determined.
func ExecutableDir() string {
	exe, err := os.Executable()
	if err != nil {
		if wd, err := os.Getwd(); err == nil {
			return wd
		}
		return "."
	}
	return filepath.Dir(exe)
}
