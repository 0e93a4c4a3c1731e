// Package engine walks an attempt counter through every string of a fixed length over a
// character set, in base-N counting order.
//
// The counter is a big.Int. Position 0 of the digit array is the least significant digit and
// lines up with the rightmost character of the candidate, so counter value v always produces the
// candidate whose characters, read left to right as base-|set| digits, equal v.
package engine

import (
	"errors"
	"fmt"
	"math/big"
	"strings"
	"unicode/utf8"

	"github.com/regginator/bruteviz/charset"
	"github.com/regginator/bruteviz/util"
)

// MaxTargetLen is the longest target accepted, longer input is truncated
const MaxTargetLen = 10

var ErrIndexOutOfRange = errors.New("index out of range")

var one = big.NewInt(1)

// Engine owns the attempt counter. It is not safe for concurrent use, the runner is its only
// mutator.
type Engine struct {
	set    charset.Set
	target string
	length int

	counter *big.Int
	total   *big.Int
}

// New returns an engine configured for target over set
func New(target string, set charset.Set) *Engine {
	e := new(Engine)
	e.Configure(target, set)
	return e
}

// Configure swaps in a new target and set. The target is truncated to MaxTargetLen runes and
// upper-cased to match the presets; symbols outside the set are allowed and simply never match.
// The counter goes back to 0.
func (e *Engine) Configure(target string, set charset.Set) {
	target = normalizeTarget(target)

	e.set = set
	e.target = target
	e.length = utf8.RuneCountInString(target)
	e.total = util.Power(big.NewInt(int64(set.Len())), e.length)
	e.counter = new(big.Int)
}

func normalizeTarget(target string) string {
	target = strings.ToUpper(target)

	if utf8.RuneCountInString(target) > MaxTargetLen {
		target = string([]rune(target)[:MaxTargetLen])
	}

	return target
}

func (e *Engine) Set() charset.Set {
	return e.set
}

func (e *Engine) Target() string {
	return e.target
}

// TargetLen is the number of positions (gears) being enumerated
func (e *Engine) TargetLen() int {
	return e.length
}

// Attempts returns a copy of the counter
func (e *Engine) Attempts() *big.Int {
	return new(big.Int).Set(e.counter)
}

// Total returns a copy of |set|^|target|
func (e *Engine) Total() *big.Int {
	return new(big.Int).Set(e.total)
}

// Remaining is total - counter, floored at 0
func (e *Engine) Remaining() *big.Int {
	remaining := new(big.Int).Sub(e.total, e.counter)
	if remaining.Sign() < 0 {
		remaining.SetInt64(0)
	}

	return remaining
}

// Digits returns the counter's digits, least significant first
func (e *Engine) Digits() []int {
	return util.ToDigits(e.counter, e.set.Len(), e.length)
}

// Candidate renders the counter as a string, most significant digit first
func (e *Engine) Candidate() string {
	digits := e.Digits()

	var sb strings.Builder
	for i := len(digits) - 1; i >= 0; i-- {
		sb.WriteRune(e.set.Symbol(digits[i]))
	}

	return sb.String()
}

// IsExhausted reports whether every candidate has been produced
func (e *Engine) IsExhausted() bool {
	return e.counter.Cmp(e.total) >= 0
}

// IsMatch reports whether the current candidate is the target. Past exhaustion there is no
// candidate, so it's always false there.
func (e *Engine) IsMatch() bool {
	if e.IsExhausted() {
		return false
	}

	return e.Candidate() == e.target
}

// Advance moves to the next candidate. Once exhausted it does nothing, the counter never wraps.
func (e *Engine) Advance() {
	if e.IsExhausted() {
		return
	}

	e.counter.Add(e.counter, one)
}

// Reset puts the counter back to 0 without touching the target or set
func (e *Engine) Reset() {
	e.counter.SetInt64(0)
}

// Seek jumps the counter to index, which must be in [0, total)
func (e *Engine) Seek(index *big.Int) error {
	if index.Sign() < 0 || index.Cmp(e.total) >= 0 {
		return fmt.Errorf("seek to %s with %s total combinations: %w", index, e.total, ErrIndexOutOfRange)
	}

	e.counter.Set(index)
	return nil
}

// ProgressPercent is floor(counter*100/total). It only reads 100 once the counter reaches total.
func (e *Engine) ProgressPercent() int {
	if e.total.Sign() == 0 {
		return 0
	}

	scaled := new(big.Int).Mul(e.counter, big.NewInt(100))
	scaled.Quo(scaled, e.total)

	return int(scaled.Int64())
}

// TargetIndex is the counter value at which the target comes up, or nil if the target uses a
// symbol that isn't in the set
func (e *Engine) TargetIndex() *big.Int {
	runes := []rune(e.target)
	digits := make([]int, len(runes))

	for i, r := range runes {
		digit := e.set.Index(r)
		if digit < 0 {
			return nil
		}

		digits[len(runes)-1-i] = digit
	}

	return util.FromDigits(digits, e.set.Len())
}

// GearAngles gives each position's rotation in degrees, in [0, 360). Neighbouring gears mesh, so
// odd positions turn the other way.
func (e *Engine) GearAngles() []float64 {
	digits := e.Digits()
	angles := make([]float64, len(digits))
	step := 360.0 / float64(e.set.Len())

	for i, digit := range digits {
		// digit < |set| keeps this in [0, 360) already
		angle := float64(digit) * step
		if i%2 == 1 && angle != 0 {
			angle = 360 - angle
		}

		angles[i] = angle
	}

	return angles
}
