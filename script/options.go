package script

import (
	"go.starlark.net/starlark"
)

// options consumes the keyword arguments of a builtin, remembering the first
// failure.
type options struct {
	builtin string
	kw      map[string]starlark.Value
	err     error
}

func newOptions(builtin string, kwargs []starlark.Tuple) (opts *options) {
	opts = &options{
		builtin: builtin,
		kw:      map[string]starlark.Value{},
	}
	for _, kv := range kwargs {
		name, _ := starlark.AsString(kv[0])
		opts.kw[name] = kv[1]
	}
	return
}

func (opts *options) fail(name string) {
	if opts.err == nil {
		opts.err = &ErrOption{Builtin: opts.builtin, Name: name}
	}
}

// take removes and returns an option, or nil if not given.
func (opts *options) take(name string) (value starlark.Value) {
	value, ok := opts.kw[name]
	if !ok || value == starlark.None {
		return nil
	}
	delete(opts.kw, name)
	return
}

// Bool returns a boolean option, false if not given.
func (opts *options) Bool(name string) bool {
	value := opts.take(name)
	if value == nil {
		return false
	}
	b, ok := value.(starlark.Bool)
	if !ok {
		opts.fail(name)
	}
	return bool(b)
}

// Int returns an integer option, or def if not given.
func (opts *options) Int(name string, def int) int {
	value := opts.take(name)
	if value == nil {
		return def
	}
	var n int
	if err := starlark.AsInt(value, &n); err != nil {
		opts.fail(name)
	}
	return n
}

// String returns a string option, or def if not given.
func (opts *options) String(name string, def string) string {
	value := opts.take(name)
	if value == nil {
		return def
	}
	s, ok := starlark.AsString(value)
	if !ok {
		opts.fail(name)
	}
	return s
}

// Done reports the first bad option, or the first option nobody took.
func (opts *options) Done() error {
	for name := range opts.kw {
		if opts.kw[name] != starlark.None {
			opts.fail(name)
			break
		}
	}
	return opts.err
}
