package asm

import (
	"iter"
	"slices"

	"github.com/samber/lo"
)

// Named is an entry that can be looked up by name.
type Named interface {
	Key() string
}

// Table is a bounded, creation-ordered list of named entries.
type Table[T Named] struct {
	Name  string // Table name used in diagnostics.
	Limit int    // Maximum entry count.
	Data  []T
}

// Add appends an entry, rejecting duplicates and overflow.
func (tbl *Table[T]) Add(item T) (err error) {
	if _, ok := tbl.Lookup(item.Key()); ok {
		err = &ErrName{Table: tbl.Name, Name: item.Key(), Err: ErrDuplicate}
		return
	}

	if tbl.Full() {
		err = &ErrName{Table: tbl.Name, Name: item.Key(), Err: &ErrLimit{What: tbl.Name, Limit: tbl.Limit}}
		return
	}

	tbl.Data = append(tbl.Data, item)

	return
}

// Lookup finds the first entry with the given name.
func (tbl *Table[T]) Lookup(name string) (item T, ok bool) {
	item, _, ok = lo.FindIndexOf(tbl.Data, func(entry T) bool {
		return entry.Key() == name
	})

	return
}

// Len returns the entry count.
func (tbl *Table[T]) Len() int {
	return len(tbl.Data)
}

// Empty is true when no entries have been added.
func (tbl *Table[T]) Empty() bool {
	return len(tbl.Data) == 0
}

// Full is true when no more entries can be added.
func (tbl *Table[T]) Full() bool {
	return len(tbl.Data) >= tbl.Limit
}

// All iterates the entries in creation order.
func (tbl *Table[T]) All() iter.Seq[T] {
	return slices.Values(tbl.Data)
}
