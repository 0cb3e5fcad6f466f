// Package symbol implements the immutable byte-string value used
// throughout turingo for tape cells, clause inputs, and identifiers.
package symbol

import (
	"fmt"

	"github.com/asphodex/turingo/turingerr"
)

// Blank is the distinguished value returned by any tape cell that has
// never been written, and produced by the "blank" keyword in program
// source.
const Blank byte = ' '

// Symbol is an immutable byte string. Values are copied, never aliased;
// callers never hold a pointer into another Symbol's backing array.
type Symbol struct {
	bytes []byte
}

// New copies the given bytes into a new Symbol.
func New(b []byte) Symbol {
	cp := make([]byte, len(b))
	copy(cp, b)
	return Symbol{bytes: cp}
}

// FromString copies the given string into a new Symbol.
func FromString(s string) Symbol {
	return New([]byte(s))
}

// FromByte builds a single-byte Symbol.
func FromByte(b byte) Symbol {
	return Symbol{bytes: []byte{b}}
}

// BlankSymbol is the single-byte blank Symbol.
func BlankSymbol() Symbol {
	return FromByte(Blank)
}

// Len returns the number of bytes in the symbol.
func (s Symbol) Len() int {
	return len(s.bytes)
}

// At returns the byte at index i. It panics with turingerr.ErrOutOfRange
// if i is negative or past the end of the symbol, per the fatal
// out-of-bounds contract.
func (s Symbol) At(i int) byte {
	if i < 0 || i >= len(s.bytes) {
		panic(fmt.Errorf("%w: index %d, length %d", turingerr.ErrOutOfRange, i, len(s.bytes)))
	}
	return s.bytes[i]
}

// Bytes returns a fresh copy of the symbol's bytes.
func (s Symbol) Bytes() []byte {
	cp := make([]byte, len(s.bytes))
	copy(cp, s.bytes)
	return cp
}

// String returns the symbol's contents as a string.
func (s Symbol) String() string {
	return string(s.bytes)
}

// Equal reports whether s holds exactly the same bytes as raw.
func (s Symbol) Equal(raw []byte) bool {
	if len(s.bytes) != len(raw) {
		return false
	}
	for i, b := range s.bytes {
		if b != raw[i] {
			return false
		}
	}
	return true
}

// EqualSymbol reports byte-for-byte equality between two symbols.
func (s Symbol) EqualSymbol(o Symbol) bool {
	return s.Equal(o.bytes)
}

// EqualFold reports whether s equals raw under ASCII case folding.
func (s Symbol) EqualFold(raw []byte) bool {
	if len(s.bytes) != len(raw) {
		return false
	}
	for i, b := range s.bytes {
		if foldASCII(b) != foldASCII(raw[i]) {
			return false
		}
	}
	return true
}

// EqualFoldSymbol reports ASCII case-insensitive equality between two
// symbols.
func (s Symbol) EqualFoldSymbol(o Symbol) bool {
	return s.EqualFold(o.bytes)
}

func foldASCII(b byte) byte {
	if b >= 'A' && b <= 'Z' {
		return b - 'A' + 'a'
	}
	return b
}

// ParseInt parses the symbol as a signed decimal integer. A leading '-'
// is permitted. Any non-digit byte after the optional sign is reported
// as turingerr.ErrBadLiteral.
func (s Symbol) ParseInt() (int, error) {
	if len(s.bytes) == 0 {
		return 0, fmt.Errorf("%w: empty literal", turingerr.ErrBadLiteral)
	}

	neg := false
	i := 0
	if s.bytes[0] == '-' {
		neg = true
		i = 1
	}
	if i >= len(s.bytes) {
		return 0, fmt.Errorf("%w: %q: no digits after sign", turingerr.ErrBadLiteral, s.String())
	}

	n := 0
	for ; i < len(s.bytes); i++ {
		d := s.bytes[i]
		if d < '0' || d > '9' {
			return 0, fmt.Errorf("%w: %q: non-digit byte %q", turingerr.ErrBadLiteral, s.String(), d)
		}
		n = n*10 + int(d-'0')
	}

	if neg {
		n = -n
	}
	return n, nil
}
