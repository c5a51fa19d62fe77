// Package bitset provides an interface for fixed-length bit-strings and a
// memory-efficient dense implementation used as chromosome storage.
package bitset

import (
	"fmt"
	"strings"
)

const pow uint = 6
const mod uint = 63

type bitSet struct {
	len   int
	array []uint64
}

// BitSet provides an interface for manipulating bit-strings by accessing individual
// bits and exchanging bits with other bit-strings of the same length.
type BitSet interface {
	// Has tests whether the bit at pos has been set.
	Has(pos int) bool
	// Set sets the bit at pos to one.
	Set(pos int)
	// Clear sets the bit at pos to zero.
	Clear(pos int)
	// SetTo sets the bit at pos to one when v is true and to zero otherwise.
	SetTo(pos int, v bool)
	// Flip inverts the bit at pos.
	Flip(pos int)
	// Swap exchanges the bit at pos with the bit at pos in other.
	Swap(other BitSet, pos int)
	// Clone returns an independent copy of the bit-string.
	Clone() BitSet
	// Len returns the length of the bit-string.
	Len() int
}

func (bs *bitSet) Len() int {
	return bs.len
}

func (bs *bitSet) Set(pos int) {
	bs.array[pos>>pow] |= (1 << (uint(pos) & mod))
}

func (bs *bitSet) Clear(pos int) {
	bs.array[pos>>pow] &^= (1 << (uint(pos) & mod))
}

func (bs *bitSet) SetTo(pos int, v bool) {
	if v {
		bs.Set(pos)
	} else {
		bs.Clear(pos)
	}
}

func (bs *bitSet) Flip(pos int) {
	bs.array[pos>>pow] ^= (1 << (uint(pos) & mod))
}

func (bs *bitSet) Swap(other BitSet, pos int) {
	mine, theirs := bs.Has(pos), other.Has(pos)
	if mine == theirs {
		return
	}
	bs.SetTo(pos, theirs)
	other.SetTo(pos, mine)
}

func (bs *bitSet) Has(pos int) bool {
	return (bs.array[pos>>pow]&(1<<(uint(pos)&mod)) != 0)
}

func (bs *bitSet) Clone() BitSet {
	array := make([]uint64, len(bs.array))
	copy(array, bs.array)
	return &bitSet{bs.len, array}
}

// String prints the bit-string with bit 0 first.
func (bs *bitSet) String() string {
	var b strings.Builder
	b.Grow(bs.len)
	for i := 0; i < bs.len; i++ {
		if bs.Has(i) {
			b.WriteByte('1')
		} else {
			b.WriteByte('0')
		}
	}
	return b.String()
}

// New returns an interface to the dense bit-string implementation with all bits cleared.
func New(len int) BitSet {
	return &bitSet{len, make([]uint64, (len+63)/64)}
}

// FromString converts a string of '0' and '1' characters to a new bit-set,
// character i becoming bit i.
func FromString(s string) (BitSet, error) {
	b := New(len(s))
	for i, c := range s {
		if c == '1' {
			b.Set(i)
		} else if c != '0' {
			format := "bitset: invalid character %q in string encoding"
			return nil, fmt.Errorf(format, c)
		}
	}
	return b, nil
}

// FromBools converts a slice of booleans to a new bit-set.
func FromBools(bits []bool) BitSet {
	b := New(len(bits))
	for i, v := range bits {
		if v {
			b.Set(i)
		}
	}
	return b
}
