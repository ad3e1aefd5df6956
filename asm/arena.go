package asm

import (
	"encoding/binary"
)

const (
	ARENA_ALIGN        = 4          // Alignment of every arena region.
	DEFAULT_ARENA_SIZE = 512 * 1024 // Pool size of a new shader arena.
)

// Arena is a bump allocator over a fixed pool. Regions are never freed
// individually; Reset reclaims the whole pool at once.
type Arena struct {
	pool   []byte
	cursor int
}

// NewArena creates an arena with a pool of size bytes.
func NewArena(size int) (arena *Arena) {
	arena = &Arena{
		pool: make([]byte, size),
	}

	return
}

// Alloc returns a zeroed, 4-byte aligned region of size bytes.
func (arena *Arena) Alloc(size int) (region []byte, err error) {
	if size < 0 {
		size = 0
	}

	start := (arena.cursor + ARENA_ALIGN - 1) &^ (ARENA_ALIGN - 1)
	end := start + size
	if end > len(arena.pool) {
		err = &ErrLimit{What: f("arena"), Limit: len(arena.pool)}
		return
	}

	arena.cursor = end
	region = arena.pool[start:end:end]
	clear(region)

	return
}

// Strdup copies a name into the arena.
func (arena *Arena) Strdup(name string) (region []byte, err error) {
	region, err = arena.Alloc(len(name))
	if err != nil {
		return
	}

	copy(region, name)

	return
}

// Words copies 32-bit values into the arena, little-endian.
func (arena *Arena) Words(values []uint32) (region []byte, err error) {
	region, err = arena.Alloc(4 * len(values))
	if err != nil {
		return
	}

	for n, value := range values {
		binary.LittleEndian.PutUint32(region[4*n:], value)
	}

	return
}

// Used returns the number of bytes carved so far.
func (arena *Arena) Used() int {
	return arena.cursor
}

// Size returns the capacity of the pool.
func (arena *Arena) Size() int {
	return len(arena.pool)
}

// Reset reclaims every region. Regions handed out earlier must no longer be used.
func (arena *Arena) Reset() {
	arena.cursor = 0
}
