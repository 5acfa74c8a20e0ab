// Package units converts balances between the base unit of an EVM chain (wei) and its display
// unit (ether), related by a fixed scale of 10^18.
package units

import (
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common/math"
	"github.com/ethereum/go-ethereum/params"
	"github.com/shopspring/decimal"
)

// Decimals is the base-10 exponent between the base unit and the display unit.
const Decimals = 18

var (
	errNilAmount      = errors.New("amount is nil")
	errNegativeAmount = errors.New("amount must not be negative")
	errOutOfRange     = errors.New("amount exceeds 2^256-1 base units")
	errSubBaseUnit    = fmt.Errorf("amount has more than %d decimal places", Decimals)

	// maxDisplayIntegerDigits is the number of integer digits of (2^256-1) / 10^Decimals.
	maxDisplayIntegerDigits = int64(len(math.MaxBig256.String()) - Decimals)

	// oneDisplayUnit is the number of base units in one display unit.
	oneDisplayUnit = big.NewInt(params.Ether)
)

// ConversionError is returned when an amount cannot be scaled between units.
type ConversionError struct {
	Cause error
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("unit conversion failed: %v", e.Cause)
}

func (e *ConversionError) Unwrap() error {
	return e.Cause
}

// ToDisplayUnit converts an amount of base units into display units, e.g. wei to ether.
func ToDisplayUnit(base *big.Int) (decimal.Decimal, error) {
	if err := checkBaseRange(base); err != nil {
		return decimal.Zero, &ConversionError{Cause: err}
	}

	return decimal.NewFromBigInt(base, -Decimals), nil
}

// ToBaseUnit converts an amount of display units into base units, e.g. ether to wei. The amount
// must be representable exactly: fractions of a base unit are rejected rather than truncated.
func ToBaseUnit(display decimal.Decimal) (*big.Int, error) {
	switch display.Sign() {
	case -1:
		return nil, &ConversionError{Cause: errNegativeAmount}
	case 0:
		return new(big.Int), nil
	}

	// An amount with more integer digits than the largest one cannot be in range. Checked on the
	// digit count so huge exponents are never expanded.
	if int64(display.NumDigits())+int64(display.Exponent()) > maxDisplayIntegerDigits {
		return nil, &ConversionError{Cause: errOutOfRange}
	}

	scaled := display.Shift(Decimals)
	if !scaled.IsInteger() {
		return nil, &ConversionError{Cause: errSubBaseUnit}
	}

	base := scaled.BigInt()
	if err := checkBaseRange(base); err != nil {
		return nil, &ConversionError{Cause: err}
	}

	return base, nil
}

// ParseDisplayUnit parses a decimal string such as "1.5" expressed in display units.
func ParseDisplayUnit(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero, &ConversionError{Cause: err}
	}
	if d.Sign() < 0 {
		return decimal.Zero, &ConversionError{Cause: errNegativeAmount}
	}

	return d, nil
}

// ParseBaseUnit parses a base-10 (or 0x prefixed hex) integer string expressed in base units.
func ParseBaseUnit(s string) (*big.Int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, &ConversionError{Cause: errors.New("empty base unit amount")}
	}
	base, ok := math.ParseBig256(s)
	if !ok {
		return nil, &ConversionError{Cause: fmt.Errorf("invalid base unit amount %q", s)}
	}
	if err := checkBaseRange(base); err != nil {
		return nil, &ConversionError{Cause: err}
	}

	return base, nil
}

// OneDisplayUnit returns the number of base units in one display unit.
func OneDisplayUnit() *big.Int {
	return new(big.Int).Set(oneDisplayUnit)
}

func checkBaseRange(base *big.Int) error {
	switch {
	case base == nil:
		return errNilAmount
	case base.Sign() < 0:
		return errNegativeAmount
	case base.Cmp(math.MaxBig256) > 0:
		return errOutOfRange
	}

	return nil
}
