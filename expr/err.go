package expr

import (
	"errors"

	"github.com/ezrec/cocoasm/translate"
)

var f = translate.From

var (
	ErrMalformed = errors.New(f("malformed expression"))
	ErrUndefined = errors.New(f("label undefined"))
)

// ErrExpression reports the expression text that could not be evaluated.
type ErrExpression struct {
	Text string
	Err  error
}

func (err ErrExpression) Error() string {
	return f("'%v' %v", err.Text, err.Err)
}

func (err ErrExpression) Unwrap() error {
	return err.Err
}

// ErrSymbol reports a symbol name that could not be resolved.
type ErrSymbol struct {
	Name string
	Err  error
}

func (err ErrSymbol) Error() string {
	return f("%v %v", err.Err, err.Name)
}

func (err ErrSymbol) Unwrap() error {
	return err.Err
}
