package disk

import (
	"errors"

	"github.com/ezrec/cocoasm/translate"
)

var f = translate.From

var (
	// Image errors
	ErrDiskFull     = errors.New(f("virtual disk full"))
	ErrImageSize    = errors.New(f("disk image size invalid"))
	ErrGranuleChain = errors.New(f("granule chain invalid"))

	// Directory errors
	ErrFileNameTooLong = errors.New(f("file name too long"))
	ErrFileNameInvalid = errors.New(f("file name invalid"))
	ErrFileTypeInvalid = errors.New(f("file type invalid"))
	ErrFileExists      = errors.New(f("file exists"))
	ErrFileNotFound    = errors.New(f("file not found"))

	// Envelope errors
	ErrEnvelope     = errors.New(f("binary envelope invalid"))
	ErrEnvelopeSize = errors.New(f("binary envelope too large"))
)

// ErrFile names the disk file an error is about.
type ErrFile struct {
	Name string
	Err  error
}

func (err ErrFile) Error() string {
	return f("%v: %v", err.Name, err.Err)
}

func (err ErrFile) Unwrap() error {
	return err.Err
}
