// Package charset holds the closed list of character set presets that the enumeration can walk over.
package charset

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

var ErrUnknownSet = errors.New("unknown character set")

// Preset names
const (
	Demo         = "demo"
	Alpha        = "alpha"
	Numeric      = "numeric"
	Alphanumeric = "alphanumeric"
)

// Set is an ordered list of distinct symbols. Index in Symbols is the digit value of that symbol
type Set struct {
	Name    string
	Symbols []rune
}

var presets = []Set{
	{Name: Demo, Symbols: []rune("ABC")},
	{Name: Alpha, Symbols: []rune("ABCDEFGHIJKLMNOPQRSTUVWXYZ")},
	{Name: Numeric, Symbols: []rune("0123456789")},
	{Name: Alphanumeric, Symbols: []rune("ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789")},
}

// Names returns the preset names in display order
func Names() []string {
	names := make([]string, len(presets))
	for i, set := range presets {
		names[i] = set.Name
	}

	return names
}

// Lookup finds a preset by name, case insensitive
func Lookup(name string) (Set, error) {
	name = strings.ToLower(strings.TrimSpace(name))

	for _, set := range presets {
		if set.Name == name {
			// Hand out a copy so nobody can scribble over the preset table
			return Set{Name: set.Name, Symbols: slices.Clone(set.Symbols)}, nil
		}
	}

	return Set{}, fmt.Errorf("%w \"%s\", expected one of [%s]", ErrUnknownSet, name, strings.Join(Names(), ", "))
}

func (set Set) Len() int {
	return len(set.Symbols)
}

// Symbol maps a digit to its symbol
func (set Set) Symbol(digit int) rune {
	return set.Symbols[digit]
}

// Index maps a symbol back to its digit, or -1 if the symbol isn't in the set
func (set Set) Index(symbol rune) int {
	return slices.Index(set.Symbols, symbol)
}

func (set Set) String() string {
	return string(set.Symbols)
}
