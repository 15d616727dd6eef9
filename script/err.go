package script

import (
	"errors"

	"github.com/ezrec/cocoasm/translate"
)

var f = translate.From

var (
	ErrArgument = errors.New(f("argument invalid"))
	ErrDefine   = errors.New(f("define out of range"))
)

// ErrPath names the file an error is about.
type ErrPath struct {
	Path string
	Err  error
}

func (err ErrPath) Error() string {
	return f("%v: %v", err.Path, err.Err)
}

func (err ErrPath) Unwrap() error {
	return err.Err
}

// ErrArgumentValue reports an unusable value for a builtin argument.
// Err, if set, is the reason the value was refused.
type ErrArgumentValue struct {
	Builtin  string
	Argument string
	Value    string
	Err      error
}

func (err ErrArgumentValue) Error() string {
	if err.Err != nil {
		return f("%v: %v %v: %v", err.Builtin, err.Argument, err.Value, err.Err)
	}
	return f("%v: %v %v: %v", err.Builtin, ErrArgument, err.Argument, err.Value)
}

func (err ErrArgumentValue) Is(target error) bool {
	return target == ErrArgument
}

func (err ErrArgumentValue) Unwrap() error {
	return err.Err
}
