package patch

import "errors"

var (
	// ErrRead indicates the file to patch could not be read.
	ErrRead = errors.New("could not read the file")

	// ErrWrite indicates the patched content could not be written back.
	ErrWrite = errors.New("could not write the file")
)
