package config

import (
	"path/filepath"
	"strings"
)

// Layout holds the install paths derived from the located executables.
type Layout struct {
	ApacheExe string
	PhpExe    string

	// ApacheRoot is two directories above httpd (<root>/bin/httpd.exe).
	ApacheRoot string

	// HttpdConf is <ApacheRoot>/conf/httpd.conf.
	HttpdConf string

	// PhpRoot is the directory holding php.
	PhpRoot string

	// PhpIni is <PhpRoot>/php.ini.
	PhpIni string

	// PhpModule is the Apache 2.4 module DLL shipped with PHP 8.
	PhpModule string

	// ExtensionDir is <PhpRoot>/ext.
	ExtensionDir string
}

// NewLayout derives the install layout from the httpd and php paths.
func NewLayout(apacheExe, phpExe string) Layout {
	apacheRoot := filepath.Dir(filepath.Dir(apacheExe))
	phpRoot := filepath.Dir(phpExe)

	return Layout{
		ApacheExe:    apacheExe,
		PhpExe:       phpExe,
		ApacheRoot:   apacheRoot,
		HttpdConf:    filepath.Join(apacheRoot, "conf", "httpd.conf"),
		PhpRoot:      phpRoot,
		PhpIni:       filepath.Join(phpRoot, "php.ini"),
		PhpModule:    filepath.Join(phpRoot, "php8apache2_4.dll"),
		ExtensionDir: filepath.Join(phpRoot, "ext"),
	}
}

// SlashPath converts Windows separators to forward slashes, the form
// httpd.conf expects.
func SlashPath(path string) string {
	return strings.ReplaceAll(path, `\`, "/")
}
