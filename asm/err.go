package asm

import (
	"errors"

	"github.com/freedreno-zz/freedreno-sub001/translate"
)

var f = translate.From

var (
	// Assembly error kinds
	ErrMalformed   = errors.New(f("malformed instruction"))
	ErrCapacity    = errors.New(f("capacity exceeded"))
	ErrEncodeRange = errors.New(f("encode range violation"))

	// IR construction errors
	ErrDuplicate = errors.New(f("duplicate name"))
	ErrSealed    = errors.New(f("shader sealed"))
)

// ErrInstruction locates an assembly failure at an IR instruction.
type ErrInstruction struct {
	LineNo int   // Source line recorded in the IR, 0 if unknown.
	Index  int   // Instruction index in program order.
	Err    error // Underlying failure.
}

func (err *ErrInstruction) Error() string {
	if err.LineNo > 0 {
		return f("line %d instruction %d %v", err.LineNo, err.Index, err.Err)
	}
	return f("instruction %d %v", err.Index, err.Err)
}

func (err *ErrInstruction) Unwrap() error {
	return err.Err
}

// ErrField is a value which does not fit in its encoding field.
type ErrField struct {
	Field string
	Value int64
	Width uint
}

func (err *ErrField) Error() string {
	return f("%v: value %v does not fit %v bits", err.Field, err.Value, err.Width)
}

func (err *ErrField) Is(target error) bool {
	return target == ErrEncodeRange
}

// ErrLimit is a fixed capacity that has been exhausted.
type ErrLimit struct {
	What  string
	Limit int
}

func (err *ErrLimit) Error() string {
	return f("%v: limit of %v reached", err.What, err.Limit)
}

func (err *ErrLimit) Is(target error) bool {
	return target == ErrCapacity
}

// ErrName is a rejected metadata table entry.
type ErrName struct {
	Table string
	Name  string
	Err   error
}

func (err *ErrName) Error() string {
	return f("%v '%v' %v", err.Table, err.Name, err.Err)
}

func (err *ErrName) Unwrap() error {
	return err.Err
}

// Is reports duplicates as a capacity condition as well.
func (err *ErrName) Is(target error) bool {
	return target == ErrCapacity && errors.Is(err.Err, ErrDuplicate)
}

// Malformed returns an ErrMalformed wrapped with a reason.
func Malformed(format string, args ...any) error {
	return &errMalformed{reason: f(format, args...)}
}

type errMalformed struct {
	reason string
}

func (err *errMalformed) Error() string {
	return f("%v: %v", ErrMalformed, err.reason)
}

func (err *errMalformed) Unwrap() error {
	return ErrMalformed
}
