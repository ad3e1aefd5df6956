package asm

// Fields packs values into bit fields of a machine word, remembering the
// first value that did not fit.
type Fields struct {
	err error
}

// Unsigned places value at shift after checking it fits in width bits.
func (fs *Fields) Unsigned(field string, value int, width, shift uint) uint32 {
	if value < 0 || uint64(value) >= (uint64(1)<<width) {
		fs.fail(field, int64(value), width)
		return 0
	}

	return uint32(value) << shift
}

// Signed places a two's complement value at shift after checking it fits in width bits.
func (fs *Fields) Signed(field string, value int, width, shift uint) uint32 {
	lo := -(int64(1) << (width - 1))
	hi := (int64(1) << (width - 1)) - 1
	if int64(value) < lo || int64(value) > hi {
		fs.fail(field, int64(value), width)
		return 0
	}

	mask := uint32((uint64(1) << width) - 1)

	return (uint32(int32(value)) & mask) << shift
}

// Bit places a single flag at shift.
func (fs *Fields) Bit(flag bool, shift uint) uint32 {
	if flag {
		return 1 << shift
	}
	return 0
}

// Err returns the first field overflow.
func (fs *Fields) Err() error {
	return fs.err
}

func (fs *Fields) fail(field string, value int64, width uint) {
	if fs.err == nil {
		fs.err = &ErrField{Field: field, Value: value, Width: width}
	}
}
