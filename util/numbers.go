package util

import (
	"errors"
	"fmt"
	"math/big"
	"strconv"
	"strings"
)

var ErrInvalidSpeed = errors.New("speed must be a positive integer")

// Power returns base^exponent. Everything stays in big.Int, a float anywhere in here would
// corrupt the totals for anything past ~15 digit combination counts
func Power(base *big.Int, exponent int) *big.Int {
	if exponent < 0 {
		panic(fmt.Sprintf("util.Power: negative exponent %d", exponent))
	}

	return new(big.Int).Exp(base, big.NewInt(int64(exponent)), nil)
}

// ToDigits splits value into numDigits base-`base` digits, least significant first. Digits above
// numDigits are dropped, so values >= base^numDigits wrap
func ToDigits(value *big.Int, base int, numDigits int) []int {
	digits := make([]int, numDigits)
	if numDigits == 0 {
		return digits
	}

	b := big.NewInt(int64(base))
	rest := new(big.Int).Set(value)
	mod := new(big.Int)

	for i := 0; i < numDigits && rest.Sign() > 0; i++ {
		rest.DivMod(rest, b, mod)
		digits[i] = int(mod.Int64())
	}

	return digits
}

// FromDigits is the inverse of ToDigits (digits least significant first)
func FromDigits(digits []int, base int) *big.Int {
	b := big.NewInt(int64(base))
	out := new(big.Int)

	for i := len(digits) - 1; i >= 0; i-- {
		out.Mul(out, b)
		out.Add(out, big.NewInt(int64(digits[i])))
	}

	return out
}

func ParseSpeed(speedStr string) (int, error) {
	speedStr = strings.TrimSpace(speedStr)
	if speedStr == "" {
		return 0, fmt.Errorf("speed is empty: %w", ErrInvalidSpeed)
	}

	speed, err := strconv.ParseInt(speedStr, 0, 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse speed \"%s\": %w", speedStr, ErrInvalidSpeed)
	} else if speed < 1 {
		return 0, fmt.Errorf("speed (%d) is below 1: %w", speed, ErrInvalidSpeed)
	}

	return int(speed), nil
}
