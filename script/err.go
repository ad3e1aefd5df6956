package script

import (
	"errors"

	"github.com/freedreno-zz/freedreno-sub001/translate"
)

var f = translate.From

var (
	ErrOpcodeInvalid   = errors.New(f("opcode invalid"))
	ErrTypeInvalid     = errors.New(f("type invalid"))
	ErrRegisterInvalid = errors.New(f("register invalid"))
	ErrOptionInvalid   = errors.New(f("option invalid"))
	ErrUnhashable      = errors.New(f("unhashable"))
)

// ErrOption is a keyword argument a builtin does not take, or one with a
// value of the wrong type.
type ErrOption struct {
	Builtin string
	Name    string
}

func (err *ErrOption) Error() string {
	return f("%v: option '%v' invalid", err.Builtin, err.Name)
}

func (err *ErrOption) Is(target error) bool {
	return target == ErrOptionInvalid
}
