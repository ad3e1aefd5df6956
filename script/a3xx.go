package script

import (
	"fmt"
	"strings"

	"go.starlark.net/starlark"

	"github.com/freedreno-zz/freedreno-sub001/ir3"
)

// register3 is an a3xx operand under construction.
type register3 struct {
	value  ir3.Value
	flags  ir3.RegFlag
	wrmask uint8
}

var _ starlark.Value = (*register3)(nil)

func (reg *register3) String() string {
	var file string
	switch {
	case reg.flags&ir3.REG_CONST != 0:
		file = "c"
	case reg.flags&ir3.REG_HALF != 0:
		file = "hr"
	default:
		file = "r"
	}

	switch v := reg.value.(type) {
	case ir3.Index:
		return fmt.Sprintf("%s%d.%c", file, v.Slot(), "xyzw"[v.Comp()])
	case ir3.Relative:
		return fmt.Sprintf("%s<a0.x + %d>", file, int(v))
	case ir3.Immediate:
		return fmt.Sprintf("%d", int(v))
	}
	return "?"
}

func (reg *register3) Type() string          { return "a3xx_register" }
func (reg *register3) Freeze()               {}
func (reg *register3) Truth() starlark.Bool  { return starlark.True }
func (reg *register3) Hash() (uint32, error) { return 0, ErrUnhashable }

// parseComp accepts a component letter.
func parseComp(comp string) (n int, err error) {
	n = strings.Index("xyzw", comp)
	if len(comp) != 1 || n < 0 {
		err = fmt.Errorf("%w: component %q", ErrRegisterInvalid, comp)
	}
	return
}

// regFlags collects the operand modifiers common to every register kind.
func regFlags(opts *options) (flags ir3.RegFlag) {
	for name, flag := range map[string]ir3.RegFlag{
		"half":    ir3.REG_HALF,
		"neg":     ir3.REG_NEGATE,
		"abs":     ir3.REG_ABS,
		"r":       ir3.REG_R,
		"even":    ir3.REG_EVEN,
		"pos_inf": ir3.REG_POS_INF,
		"ei":      ir3.REG_EI,
	} {
		if opts.Bool(name) {
			flags |= flag
		}
	}
	return
}

// registerBuiltin returns a builtin creating indexed registers in the bank
// selected by flags.
func registerBuiltin(bank ir3.RegFlag) builtinFunc {
	return func(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		var slot int
		comp := "x"
		if err := starlark.UnpackPositionalArgs(fn.Name(), args, nil, 1, &slot, &comp); err != nil {
			return nil, err
		}
		n, err := parseComp(comp)
		if err != nil {
			return nil, err
		}

		opts := newOptions(fn.Name(), kwargs)
		reg := &register3{
			value:  ir3.Regid(slot, n),
			flags:  bank | regFlags(opts),
			wrmask: uint8(opts.Int("wrmask", 0x1)),
		}
		if err := opts.Done(); err != nil {
			return nil, err
		}

		return reg, nil
	}
}

// parseOpcode splits an instruction name into its opcode and type suffix:
// "add.f", "mov.f32f16", "sam.f32", "ldg.u32".
func parseOpcode(name string) (op ir3.Opcode, types []ir3.Type, err error) {
	op, ok := ir3.LookupOpcode(name)
	if ok {
		return
	}

	dot := strings.LastIndexByte(name, '.')
	if dot < 0 {
		err = fmt.Errorf("%w: %v", ErrOpcodeInvalid, name)
		return
	}

	op, ok = ir3.LookupOpcode(name[:dot])
	if !ok {
		err = fmt.Errorf("%w: %v", ErrOpcodeInvalid, name)
		return
	}

	suffix := name[dot+1:]
	if op.Category == ir3.CAT1 {
		for split := 1; split < len(suffix); split++ {
			src, srcOk := ir3.LookupType(suffix[:split])
			dst, dstOk := ir3.LookupType(suffix[split:])
			if srcOk && dstOk {
				types = []ir3.Type{src, dst}
				return
			}
		}
	} else if t, ok := ir3.LookupType(suffix); ok {
		types = []ir3.Type{t}
		return
	}

	err = fmt.Errorf("%w: %v", ErrTypeInvalid, name)

	return
}

// parseCond accepts a comparison condition name.
func parseCond(name string) (cond ir3.Cond, err error) {
	for cond = ir3.COND_LT; cond <= ir3.COND_NE; cond++ {
		if cond.String() == name {
			return
		}
	}
	err = fmt.Errorf("%w: condition %q", ErrOpcodeInvalid, name)
	return
}

var instrFlags = map[string]ir3.InstrFlag{
	"sy":   ir3.INSTR_SY,
	"ss":   ir3.INSTR_SS,
	"jp":   ir3.INSTR_JP,
	"ul":   ir3.INSTR_UL,
	"is3d": ir3.INSTR_3D,
	"a":    ir3.INSTR_A,
	"o":    ir3.INSTR_O,
	"p":    ir3.INSTR_P,
	"s":    ir3.INSTR_S,
	"s2en": ir3.INSTR_S2EN,
	"g":    ir3.INSTR_G,
}

// payload builds the category fields of an instruction from its options.
func payload(op ir3.Opcode, types []ir3.Type, opts *options) (p ir3.Payload, err error) {
	typ := func(n int, def ir3.Type) ir3.Type {
		if n < len(types) {
			return types[n]
		}
		return def
	}

	switch op.Category {
	case ir3.CAT0:
		p = ir3.Cat0{
			Immed: opts.Int("immed", 0),
			Inv:   opts.Bool("inv"),
			Comp:  opts.Int("comp", 0),
		}
	case ir3.CAT1:
		p = ir3.Cat1{
			SrcType: typ(0, ir3.TYPE_F32),
			DstType: typ(1, ir3.TYPE_F32),
		}
	case ir3.CAT2:
		var cond ir3.Cond
		if name := opts.String("cond", ""); name != "" {
			if cond, err = parseCond(name); err != nil {
				return
			}
		}
		p = ir3.Cat2{Cond: cond}
	case ir3.CAT5:
		p = ir3.Cat5{
			Samp: opts.Int("samp", 0),
			Tex:  opts.Int("tex", 0),
			Type: typ(0, ir3.TYPE_F32),
		}
	case ir3.CAT6:
		p = ir3.Cat6{
			Type:      typ(0, ir3.TYPE_U32),
			SrcOffset: opts.Int("src_offset", 0),
			DstOffset: opts.Int("dst_offset", 0),
		}
	}

	return
}

// a3xxBuiltins binds the a3xx IR construction API to sh.
func (b *Builder) a3xxBuiltins(sh *ir3.Shader) map[string]builtinFunc {
	builtins := b.metadataBuiltins(&sh.Metadata)

	builtins["r"] = registerBuiltin(0)
	builtins["c"] = registerBuiltin(ir3.REG_CONST)

	builtins["imm"] = func(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		var value int
		if err := starlark.UnpackPositionalArgs(fn.Name(), args, nil, 1, &value); err != nil {
			return nil, err
		}
		opts := newOptions(fn.Name(), kwargs)
		reg := &register3{
			value:  ir3.Immediate(int32(value)),
			flags:  ir3.REG_IMMED | regFlags(opts),
			wrmask: 0x1,
		}
		return reg, opts.Done()
	}

	builtins["rel"] = func(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		var offset int
		if err := starlark.UnpackPositionalArgs(fn.Name(), args, nil, 1, &offset); err != nil {
			return nil, err
		}
		opts := newOptions(fn.Name(), kwargs)
		flags := ir3.REG_RELATIV | regFlags(opts)
		if opts.Bool("const") {
			flags |= ir3.REG_CONST
		}
		reg := &register3{
			value:  ir3.Relative(offset),
			flags:  flags,
			wrmask: 0x1,
		}
		return reg, opts.Done()
	}

	builtins["instr"] = func(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		if len(args) < 1 {
			return nil, fmt.Errorf("%v: missing instruction name", fn.Name())
		}
		name, ok := starlark.AsString(args[0])
		if !ok {
			return nil, fmt.Errorf("%w: %v", ErrOpcodeInvalid, args[0])
		}

		op, types, err := parseOpcode(name)
		if err != nil {
			return nil, err
		}

		opts := newOptions(fn.Name(), kwargs)

		var flags ir3.InstrFlag
		for key, flag := range instrFlags {
			if opts.Bool(key) {
				flags |= flag
			}
		}
		repeat := opts.Int("repeat", 0)

		p, err := payload(op, types, opts)
		if err != nil {
			return nil, err
		}
		if err = opts.Done(); err != nil {
			return nil, err
		}

		instr, err := sh.CreateInstruction(op.Category, op.Opc)
		if err != nil {
			return nil, err
		}
		instr.LineNo = callerLine(thread)
		instr.Flags = flags
		instr.Repeat = repeat
		if p != nil {
			instr.Payload = p
		}

		for _, arg := range args[1:] {
			reg, ok := arg.(*register3)
			if !ok {
				return nil, fmt.Errorf("%w: %v", ErrRegisterInvalid, arg)
			}

			var created *ir3.Register
			switch v := reg.value.(type) {
			case ir3.Index:
				created, err = instr.CreateRegister(v, reg.flags)
			case ir3.Immediate:
				created, err = instr.CreateImmediate(int32(v), reg.flags)
			case ir3.Relative:
				created, err = instr.CreateRelative(int(v), reg.flags)
			}
			if err != nil {
				return nil, err
			}
			created.WrMask = reg.wrmask
		}

		b.logf(thread, "%v %v", name, args[1:])

		return starlark.None, nil
	}

	return builtins
}

// BuildA3xx runs an a3xx script, returning the shader it built.
func (b *Builder) BuildA3xx(filename string, src any) (sh *ir3.Shader, err error) {
	sh = ir3.NewShader()

	err = b.exec(filename, src, b.a3xxBuiltins(sh))
	if err != nil {
		sh.Free()
		sh = nil
	}

	return
}
