package integrate

import "errors"

var (
	// ErrNotInstalled indicates a required program was not found.
	ErrNotInstalled = errors.New("not installed")

	// ErrHttpdConf indicates httpd.conf could not be patched. The run
	// continues with php.ini and reports this at the end.
	ErrHttpdConf = errors.New("httpd.conf was not updated")

	// ErrIniFetch indicates neither the local template nor the remote one
	// could be obtained.
	ErrIniFetch = errors.New("could not get the php.ini template")

	// ErrIniWrite indicates the downloaded template could not be written.
	ErrIniWrite = errors.New("could not write php.ini")

	// ErrExtensionDir indicates php.ini was installed but extension_dir
	// could not be set.
	ErrExtensionDir = errors.New("extension_dir could not be updated, please update it manually")
)
