package script

import (
	"fmt"
	"strings"

	"go.starlark.net/starlark"

	"github.com/freedreno-zz/freedreno-sub001/ir2"
)

// register2 is an a2xx operand under construction.
type register2 struct {
	num     int
	swizzle string
	flags   ir2.RegFlag
}

func (reg *register2) String() string {
	prefix := "R"
	switch {
	case reg.flags&ir2.REG_CONST != 0:
		prefix = "C"
	case reg.flags&ir2.REG_EXPORT != 0:
		prefix = "export"
	}
	if reg.swizzle == "" {
		return fmt.Sprintf("%s%d", prefix, reg.num)
	}
	return fmt.Sprintf("%s%d.%s", prefix, reg.num, reg.swizzle)
}

func (reg *register2) Type() string          { return "a2xx_register" }
func (reg *register2) Freeze()               {}
func (reg *register2) Truth() starlark.Bool  { return starlark.True }
func (reg *register2) Hash() (uint32, error) { return 0, ErrUnhashable }

// cfValue is a CF record handle returned to the script.
type cfValue struct {
	cf *ir2.CF
}

func (cv *cfValue) String() string        { return fmt.Sprintf("<cf %v>", cv.cf.Type) }
func (cv *cfValue) Type() string          { return "a2xx_cf" }
func (cv *cfValue) Freeze()               {}
func (cv *cfValue) Truth() starlark.Bool  { return starlark.True }
func (cv *cfValue) Hash() (uint32, error) { return 0, ErrUnhashable }

var allocTypes = map[string]ir2.AllocType{
	"POSITION":    ir2.SQ_POSITION,
	"PARAM/PIXEL": ir2.SQ_PARAMETER_PIXEL,
	"PARAM":       ir2.SQ_PARAMETER_PIXEL,
	"PIXEL":       ir2.SQ_PARAMETER_PIXEL,
}

var fetchKinds = map[string]ir2.FetchOpc{
	"VERTEX": ir2.VTX_FETCH,
	"SAMPLE": ir2.TEX_FETCH,
}

var preds = map[string]ir2.Pred{
	"":   ir2.PRED_NONE,
	"EQ": ir2.PRED_EQ,
	"NE": ir2.PRED_NE,
}

// instrOptions applies the options shared by FETCH and ALU.
func instrOptions(instr *ir2.Instruction, opts *options) (err error) {
	instr.Sync = opts.Bool("sync")

	pred, ok := preds[strings.ToUpper(opts.String("pred", ""))]
	if !ok {
		opts.fail("pred")
	}
	instr.Pred = pred

	return
}

// operands2 appends the register arguments to instr.
func operands2(instr *ir2.Instruction, args starlark.Tuple) (err error) {
	for _, arg := range args {
		reg, ok := arg.(*register2)
		if !ok {
			err = fmt.Errorf("%w: %v", ErrRegisterInvalid, arg)
			return
		}
		if _, err = instr.CreateRegister(reg.num, reg.swizzle, reg.flags); err != nil {
			return
		}
	}
	return
}

// cfArg returns the EXEC handle passed as first argument.
func cfArg(fn *starlark.Builtin, args starlark.Tuple) (cf *ir2.CF, err error) {
	if len(args) < 1 {
		err = fmt.Errorf("%v: missing cf", fn.Name())
		return
	}
	cv, ok := args[0].(*cfValue)
	if !ok {
		err = fmt.Errorf("%v: %v is not a cf", fn.Name(), args[0])
		return
	}
	cf = cv.cf
	return
}

// a2xxBuiltins binds the a2xx IR construction API to sh.
func (b *Builder) a2xxBuiltins(sh *ir2.Shader) map[string]builtinFunc {
	builtins := b.metadataBuiltins(&sh.Metadata)

	builtins["reg"] = func(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		var num int
		var swizzle string
		if err := starlark.UnpackPositionalArgs(fn.Name(), args, nil, 1, &num, &swizzle); err != nil {
			return nil, err
		}

		opts := newOptions(fn.Name(), kwargs)
		var flags ir2.RegFlag
		for name, flag := range map[string]ir2.RegFlag{
			"const":  ir2.REG_CONST,
			"export": ir2.REG_EXPORT,
			"neg":    ir2.REG_NEGATE,
			"abs":    ir2.REG_ABS,
		} {
			if opts.Bool(name) {
				flags |= flag
			}
		}

		return &register2{num: num, swizzle: swizzle, flags: flags}, opts.Done()
	}

	builtins["exec"] = func(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		var end bool
		addr, cnt := -1, -1
		if err := starlark.UnpackArgs(fn.Name(), args, kwargs, "end?", &end, "addr?", &addr, "cnt?", &cnt); err != nil {
			return nil, err
		}

		cfType := ir2.CF_EXEC
		if end {
			cfType = ir2.CF_EXEC_END
		}

		cf, err := sh.CreateCF(cfType)
		if err != nil {
			return nil, err
		}
		cf.LineNo = callerLine(thread)

		if addr >= 0 || cnt >= 0 {
			exec := cf.Exec()
			exec.Explicit = true
			exec.Addr = addr
			exec.Cnt = cnt
		}

		b.logf(thread, "%v", cfType)

		return &cfValue{cf: cf}, nil
	}

	builtins["alloc"] = func(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		var kind string
		var size int
		if err := starlark.UnpackArgs(fn.Name(), args, kwargs, "type", &kind, "size", &size); err != nil {
			return nil, err
		}

		allocType, ok := allocTypes[strings.ToUpper(kind)]
		if !ok {
			return nil, &ErrOption{Builtin: fn.Name(), Name: kind}
		}

		cf, err := sh.CreateCF(ir2.CF_ALLOC)
		if err != nil {
			return nil, err
		}
		cf.LineNo = callerLine(thread)
		*cf.Alloc() = ir2.Alloc{Type: allocType, Size: size}

		return &cfValue{cf: cf}, nil
	}

	builtins["nop"] = func(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		if err := starlark.UnpackArgs(fn.Name(), args, kwargs); err != nil {
			return nil, err
		}

		cf, err := sh.CreateCF(ir2.CF_NOP)
		if err != nil {
			return nil, err
		}
		cf.LineNo = callerLine(thread)

		return &cfValue{cf: cf}, nil
	}

	builtins["fetch"] = func(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		cf, err := cfArg(fn, args)
		if err != nil {
			return nil, err
		}
		if len(args) < 2 {
			return nil, fmt.Errorf("%v: missing fetch kind", fn.Name())
		}
		kind, _ := starlark.AsString(args[1])
		opc, ok := fetchKinds[strings.ToUpper(kind)]
		if !ok {
			return nil, fmt.Errorf("%w: fetch %v", ErrOpcodeInvalid, args[1])
		}

		opts := newOptions(fn.Name(), kwargs)

		format := ir2.FMT_1_REVERSE
		if name := opts.String("fmt", ""); name != "" {
			if format, ok = ir2.LookupFormat(name); !ok {
				return nil, fmt.Errorf("%w: %v", ErrTypeInvalid, name)
			}
		}

		instr, err := cf.CreateInstruction(ir2.FETCH)
		if err != nil {
			return nil, err
		}
		instr.LineNo = callerLine(thread)

		*instr.Fetch() = ir2.Fetch{
			Opc:          opc,
			ConstIdx:     opts.Int("const_idx", 0),
			ConstIdxSel:  opts.Int("const_idx_sel", 0),
			Fmt:          format,
			IsSigned:     opts.Bool("signed"),
			IsNormalized: opts.Bool("normalized"),
			Stride:       opts.Int("stride", 0),
			Offset:       opts.Int("offset", 0),
			IsCube:       opts.Bool("cube"),
		}
		if err = instrOptions(instr, opts); err != nil {
			return nil, err
		}
		if err = opts.Done(); err != nil {
			return nil, err
		}

		if err = operands2(instr, args[2:]); err != nil {
			return nil, err
		}

		b.logf(thread, "FETCH %v %v", opc, args[2:])

		return starlark.None, nil
	}

	builtins["alu"] = func(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		cf, err := cfArg(fn, args)
		if err != nil {
			return nil, err
		}
		if len(args) < 2 {
			return nil, fmt.Errorf("%v: missing vector operation", fn.Name())
		}

		vector := ir2.VECTOR_NONE
		if args[1] != starlark.None {
			name, _ := starlark.AsString(args[1])
			var ok bool
			if vector, ok = ir2.LookupVector(name); !ok {
				return nil, fmt.Errorf("%w: %v", ErrOpcodeInvalid, args[1])
			}
		}

		opts := newOptions(fn.Name(), kwargs)

		scalar := ir2.SCALAR_NONE
		if name := opts.String("scalar", ""); name != "" {
			var ok bool
			if scalar, ok = ir2.LookupScalar(name); !ok {
				return nil, fmt.Errorf("%w: %v", ErrOpcodeInvalid, name)
			}
		}

		instr, err := cf.CreateInstruction(ir2.ALU)
		if err != nil {
			return nil, err
		}
		instr.LineNo = callerLine(thread)

		*instr.Alu() = ir2.Alu{
			VectorOpc:   vector,
			ScalarOpc:   scalar,
			VectorClamp: opts.Bool("vclamp"),
			ScalarClamp: opts.Bool("sclamp"),
		}
		if err = instrOptions(instr, opts); err != nil {
			return nil, err
		}
		if err = opts.Done(); err != nil {
			return nil, err
		}

		if err = operands2(instr, args[2:]); err != nil {
			return nil, err
		}

		b.logf(thread, "ALU %v %v %v", vector, scalar, args[2:])

		return starlark.None, nil
	}

	return builtins
}

// BuildA2xx runs an a2xx script, returning the shader it built.
func (b *Builder) BuildA2xx(filename string, src any) (sh *ir2.Shader, err error) {
	sh = ir2.NewShader()

	err = b.exec(filename, src, b.a2xxBuiltins(sh))
	if err != nil {
		sh.Free()
		sh = nil
	}

	return
}
