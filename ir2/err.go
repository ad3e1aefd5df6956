package ir2

import (
	"errors"

	"github.com/freedreno-zz/freedreno-sub001/translate"
)

var f = translate.From

var (
	ErrCFMismatch = errors.New(f("explicit CF value disagrees with computed value"))
)

// ErrCF locates a control flow failure at a CF entry.
type ErrCF struct {
	Index int   // CF index in program order.
	Err   error // Underlying failure.
}

func (err *ErrCF) Error() string {
	return f("cf %d: %v", err.Index, err.Err)
}

func (err *ErrCF) Unwrap() error {
	return err.Err
}
