// Copyright 2025, fdre authors

package script

import (
	"log"
	"math"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/freedreno-zz/freedreno-sub001/asm"
)

// Builder runs shader scripts.
type Builder struct {
	Verbose bool // If set, log each IR object created.

	predefine map[string]int
}

// Predefine declares an integer global visible to scripts.
func (b *Builder) Predefine(name string, value int) {
	if b.predefine == nil {
		b.predefine = map[string]int{name: value}
	} else {
		b.predefine[name] = value
	}
}

// builtinFunc is the signature of a Starlark builtin.
type builtinFunc = func(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error)

// callerLine returns the script line of the builtin call in progress.
func callerLine(thread *starlark.Thread) int {
	if thread.CallStackDepth() < 2 {
		return 0
	}
	return int(thread.CallFrame(1).Pos.Line)
}

func (b *Builder) logf(thread *starlark.Thread, format string, args ...any) {
	if b.Verbose {
		log.Printf("%v:%d: "+format, append([]any{thread.Name, callerLine(thread)}, args...)...)
	}
}

// exec runs the script with the given builtins and the predefines.
func (b *Builder) exec(filename string, src any, builtins map[string]builtinFunc) (err error) {
	thread := &starlark.Thread{
		Name: filename,
		Print: func(thread *starlark.Thread, msg string) {
			log.Printf("%v:%d: %v", filename, callerLine(thread), msg)
		},
	}

	predeclared := starlark.StringDict{}
	for name, fn := range builtins {
		predeclared[name] = starlark.NewBuiltin(name, fn)
	}
	for name, value := range b.predefine {
		predeclared[name] = starlark.MakeInt(value)
	}

	_, err = starlark.ExecFileOptions(&syntax.FileOptions{}, thread, filename, src, predeclared)

	return
}

// constValues converts a list of ints and floats to raw words.
func constValues(list *starlark.List) (values []uint32, err error) {
	for n := range list.Len() {
		switch v := list.Index(n).(type) {
		case starlark.Int:
			i, ok := v.Int64()
			if !ok || i < math.MinInt32 || i > math.MaxUint32 {
				err = &ErrOption{Builtin: "const", Name: f("values[%d]", n)}
				return
			}
			values = append(values, uint32(i))
		case starlark.Float:
			values = append(values, math.Float32bits(float32(v)))
		default:
			err = &ErrOption{Builtin: "const", Name: f("values[%d]", n)}
			return
		}
	}
	return
}

// metadataBuiltins binds the metadata tables shared by both generations.
func (b *Builder) metadataBuiltins(meta *asm.Metadata) map[string]builtinFunc {
	return map[string]builtinFunc{
		"attribute": func(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
			var name string
			var rstart, num int
			if err := starlark.UnpackArgs(fn.Name(), args, kwargs, "name", &name, "rstart", &rstart, "num", &num); err != nil {
				return nil, err
			}
			b.logf(thread, "attribute %v r%d/%d", name, rstart, num)
			_, err := meta.CreateAttribute(rstart, num, name)
			return starlark.None, err
		},
		"const": func(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
			var cstart int
			var list *starlark.List
			if err := starlark.UnpackArgs(fn.Name(), args, kwargs, "cstart", &cstart, "values", &list); err != nil {
				return nil, err
			}
			values, err := constValues(list)
			if err != nil {
				return nil, err
			}
			b.logf(thread, "const c%d %x", cstart, values)
			_, err = meta.CreateConst(cstart, values)
			return starlark.None, err
		},
		"sampler": func(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
			var name string
			var idx int
			if err := starlark.UnpackArgs(fn.Name(), args, kwargs, "name", &name, "idx", &idx); err != nil {
				return nil, err
			}
			_, err := meta.CreateSampler(idx, name)
			return starlark.None, err
		},
		"uniform": func(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
			var name string
			var cstart, num int
			if err := starlark.UnpackArgs(fn.Name(), args, kwargs, "name", &name, "cstart", &cstart, "num", &num); err != nil {
				return nil, err
			}
			_, err := meta.CreateUniform(cstart, num, name)
			return starlark.None, err
		},
		"varying": func(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
			var name string
			var rstart, num int
			if err := starlark.UnpackArgs(fn.Name(), args, kwargs, "name", &name, "rstart", &rstart, "num", &num); err != nil {
				return nil, err
			}
			_, err := meta.CreateVarying(rstart, num, name)
			return starlark.None, err
		},
		"buffer": func(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
			var name string
			var size, cstart int
			if err := starlark.UnpackArgs(fn.Name(), args, kwargs, "name", &name, "size", &size, "cstart?", &cstart); err != nil {
				return nil, err
			}
			_, err := meta.CreateBuffer(size, cstart, name)
			return starlark.None, err
		},
		"output": func(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
			var name string
			var rstart, num int
			if err := starlark.UnpackArgs(fn.Name(), args, kwargs, "name", &name, "rstart", &rstart, "num", &num); err != nil {
				return nil, err
			}
			_, err := meta.CreateOutput(rstart, num, name)
			return starlark.None, err
		},
	}
}
