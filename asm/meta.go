package asm

import (
	"encoding/binary"
	"fmt"
	"unsafe"
)

// Table capacities.
const (
	MAX_ATTRIBUTES = 32
	MAX_CONSTS     = 32
	MAX_SAMPLERS   = 32
	MAX_UNIFORMS   = 32
	MAX_VARYINGS   = 32
	MAX_BUFFERS    = 32
	MAX_OUTPUTS    = 32
)

// Arena footprint of each entry record.
const (
	sizeofAttribute = unsafe.Sizeof(Attribute{})
	sizeofConst     = unsafe.Sizeof(Const{})
	sizeofSampler   = unsafe.Sizeof(Sampler{})
	sizeofUniform   = unsafe.Sizeof(Uniform{})
	sizeofVarying   = unsafe.Sizeof(Varying{})
	sizeofBuffer    = unsafe.Sizeof(Buffer{})
	sizeofOutput    = unsafe.Sizeof(Output{})
)

// Attribute is a vertex input occupying Num components from register Rstart.
type Attribute struct {
	name   []byte
	Rstart int
	Num    int
}

func (a *Attribute) Name() string { return string(a.name) }
func (a *Attribute) Key() string  { return a.Name() }

// Const is an immediate block uploaded to the constant bank at Cstart.
type Const struct {
	Cstart int
	Num    int
	values []byte
}

func (c *Const) Key() string { return fmt.Sprintf("c%d", c.Cstart) }

// Values returns the constant payload.
func (c *Const) Values() (values []uint32) {
	values = make([]uint32, len(c.values)/4)
	for n := range values {
		values[n] = binary.LittleEndian.Uint32(c.values[4*n:])
	}
	return
}

// Sampler binds a sampler name to a texture unit.
type Sampler struct {
	name []byte
	Idx  int
}

func (s *Sampler) Name() string { return string(s.name) }
func (s *Sampler) Key() string  { return s.Name() }

// Uniform is a named range of the constant bank.
type Uniform struct {
	name   []byte
	Cstart int
	Num    int
}

func (u *Uniform) Name() string { return string(u.name) }
func (u *Uniform) Key() string  { return u.Name() }

// Varying is a named range of interpolated registers.
type Varying struct {
	name   []byte
	Rstart int
	Num    int
}

func (v *Varying) Name() string { return string(v.name) }
func (v *Varying) Key() string  { return v.Name() }

// Buffer is a named memory buffer whose address is uploaded at Cstart.
type Buffer struct {
	name   []byte
	Size   int
	Cstart int
}

func (b *Buffer) Name() string { return string(b.name) }
func (b *Buffer) Key() string  { return b.Name() }

// Output is a named range of registers exported by the shader.
type Output struct {
	name   []byte
	Rstart int
	Num    int
}

func (o *Output) Name() string { return string(o.name) }
func (o *Output) Key() string  { return o.Name() }

// Metadata is the set of named tables owned by a shader.
type Metadata struct {
	Arena *Arena

	Attributes Table[*Attribute]
	Consts     Table[*Const]
	Samplers   Table[*Sampler]
	Uniforms   Table[*Uniform]
	Varyings   Table[*Varying]
	Buffers    Table[*Buffer]
	Outputs    Table[*Output]

	sealed bool
}

// NewMetadata creates empty tables backed by arena.
func NewMetadata(arena *Arena) (meta Metadata) {
	meta = Metadata{
		Arena:      arena,
		Attributes: Table[*Attribute]{Name: f("attribute"), Limit: MAX_ATTRIBUTES},
		Consts:     Table[*Const]{Name: f("const"), Limit: MAX_CONSTS},
		Samplers:   Table[*Sampler]{Name: f("sampler"), Limit: MAX_SAMPLERS},
		Uniforms:   Table[*Uniform]{Name: f("uniform"), Limit: MAX_UNIFORMS},
		Varyings:   Table[*Varying]{Name: f("varying"), Limit: MAX_VARYINGS},
		Buffers:    Table[*Buffer]{Name: f("buffer"), Limit: MAX_BUFFERS},
		Outputs:    Table[*Output]{Name: f("output"), Limit: MAX_OUTPUTS},
	}

	return
}

// Seal rejects any further creation.
func (meta *Metadata) Seal() {
	meta.sealed = true
}

// Sealed is true once the owning shader has been handed to an assembler.
func (meta *Metadata) Sealed() bool {
	return meta.sealed
}

// Charge carves an object record of size bytes from the arena.
func (meta *Metadata) Charge(size uintptr) (err error) {
	if meta.sealed {
		err = ErrSealed
		return
	}
	_, err = meta.Arena.Alloc(int(size))
	return
}

func (meta *Metadata) name(name string, size uintptr) (dup []byte, err error) {
	err = meta.Charge(size)
	if err != nil {
		return
	}
	dup, err = meta.Arena.Strdup(name)
	return
}

// CreateAttribute records a vertex attribute.
func (meta *Metadata) CreateAttribute(rstart, num int, name string) (a *Attribute, err error) {
	a = &Attribute{Rstart: rstart, Num: num}
	if a.name, err = meta.name(name, sizeofAttribute); err != nil {
		return nil, err
	}
	if err = meta.Attributes.Add(a); err != nil {
		return nil, err
	}
	return
}

// CreateConst records a constant block.
func (meta *Metadata) CreateConst(cstart int, values []uint32) (c *Const, err error) {
	if err = meta.Charge(sizeofConst); err != nil {
		return
	}
	c = &Const{Cstart: cstart, Num: len(values)}
	if c.values, err = meta.Arena.Words(values); err != nil {
		return nil, err
	}
	if err = meta.Consts.Add(c); err != nil {
		return nil, err
	}
	return
}

// CreateSampler records a sampler binding.
func (meta *Metadata) CreateSampler(idx int, name string) (s *Sampler, err error) {
	s = &Sampler{Idx: idx}
	if s.name, err = meta.name(name, sizeofSampler); err != nil {
		return nil, err
	}
	if err = meta.Samplers.Add(s); err != nil {
		return nil, err
	}
	return
}

// CreateUniform records a uniform range.
func (meta *Metadata) CreateUniform(cstart, num int, name string) (u *Uniform, err error) {
	u = &Uniform{Cstart: cstart, Num: num}
	if u.name, err = meta.name(name, sizeofUniform); err != nil {
		return nil, err
	}
	if err = meta.Uniforms.Add(u); err != nil {
		return nil, err
	}
	return
}

// CreateVarying records a varying range.
func (meta *Metadata) CreateVarying(rstart, num int, name string) (v *Varying, err error) {
	v = &Varying{Rstart: rstart, Num: num}
	if v.name, err = meta.name(name, sizeofVarying); err != nil {
		return nil, err
	}
	if err = meta.Varyings.Add(v); err != nil {
		return nil, err
	}
	return
}

// CreateBuffer records a memory buffer.
func (meta *Metadata) CreateBuffer(size, cstart int, name string) (b *Buffer, err error) {
	b = &Buffer{Size: size, Cstart: cstart}
	if b.name, err = meta.name(name, sizeofBuffer); err != nil {
		return nil, err
	}
	if err = meta.Buffers.Add(b); err != nil {
		return nil, err
	}
	return
}

// CreateOutput records an output range.
func (meta *Metadata) CreateOutput(rstart, num int, name string) (o *Output, err error) {
	o = &Output{Rstart: rstart, Num: num}
	if o.name, err = meta.name(name, sizeofOutput); err != nil {
		return nil, err
	}
	if err = meta.Outputs.Add(o); err != nil {
		return nil, err
	}
	return
}
