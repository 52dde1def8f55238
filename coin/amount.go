/*
Package coin implements the fixed-point unsigned arithmetic used by the vault:
amounts of the base asset and of ledger claims, per second interest rates and
the linear accrual formula.

All values are 256 bit unsigned integers. None of the operations wraps around.
Every overflow or underflow is reported as errors.ErrOverflow.
*/
package coin

import (
	"encoding/json"
	"fmt"

	"github.com/holiman/uint256"
	"github.com/iov-one/accrual/errors"
)

// Amount is a non negative quantity of the base asset or of ledger claims,
// expressed in the smallest indivisible unit.
//
// The zero value is a valid zero amount.
type Amount struct {
	v uint256.Int
}

// NewAmount returns an amount of n units.
func NewAmount(n uint64) Amount {
	var a Amount
	a.v.SetUint64(n)
	return a
}

// ParseAmount decodes a base 10 representation of an amount.
func ParseAmount(s string) (Amount, error) {
	v, err := parseDecimal(s)
	if err != nil {
		return Amount{}, errors.Wrapf(errors.ErrAmount, "cannot parse %q: %s", s, err)
	}
	return Amount{v: *v}, nil
}

// parseDecimal accepts only the canonical base 10 form, as produced by the
// String methods. A sign or leading zeros are not allowed.
func parseDecimal(s string) (*uint256.Int, error) {
	switch {
	case s == "":
		return nil, errors.ErrEmpty
	case s[0] == '+':
		return nil, errors.Wrap(errors.ErrInput, "sign not allowed")
	case len(s) > 1 && s[0] == '0':
		return nil, errors.Wrap(errors.ErrInput, "leading zero")
	}
	return uint256.FromDecimal(s)
}

// MustParseAmount is like ParseAmount but panics on an invalid input. Use it
// only for constant declarations and in tests.
func MustParseAmount(s string) Amount {
	a, err := ParseAmount(s)
	if err != nil {
		panic(err)
	}
	return a
}

// AmountFromBytes decodes the big endian representation of an amount, as
// returned by the Bytes method.
func AmountFromBytes(raw []byte) (Amount, error) {
	if len(raw) > 32 {
		return Amount{}, errors.Wrapf(errors.ErrOverflow, "%d bytes long amount", len(raw))
	}
	var a Amount
	a.v.SetBytes(raw)
	return a, nil
}

// Bytes returns the minimal big endian representation of this amount. Zero
// is represented by a single zero byte, so that a stored zero is never an
// empty value.
func (a Amount) Bytes() []byte {
	if a.v.IsZero() {
		return []byte{0}
	}
	return a.v.Bytes()
}

// Add returns the sum of both amounts.
func (a Amount) Add(b Amount) (Amount, error) {
	var res Amount
	if _, overflow := res.v.AddOverflow(&a.v, &b.v); overflow {
		return Amount{}, errors.Wrapf(errors.ErrOverflow, "%s + %s", a, b)
	}
	return res, nil
}

// Sub returns the difference of both amounts. Amounts are never negative, so
// subtracting a bigger value fails.
func (a Amount) Sub(b Amount) (Amount, error) {
	var res Amount
	if _, underflow := res.v.SubOverflow(&a.v, &b.v); underflow {
		return Amount{}, errors.Wrapf(errors.ErrOverflow, "%s - %s", a, b)
	}
	return res, nil
}

// Compare returns 1 if a is larger, -1 if b is larger and 0 if both are equal.
func (a Amount) Compare(b Amount) int {
	return a.v.Cmp(&b.v)
}

// Equals returns true if both amounts represent the same value.
func (a Amount) Equals(b Amount) bool {
	return a.v.Eq(&b.v)
}

// IsZero returns true if this amount is zero.
func (a Amount) IsZero() bool {
	return a.v.IsZero()
}

// Uint64 returns the value of this amount if it can be represented by the
// uint64 type.
func (a Amount) Uint64() (uint64, bool) {
	return a.v.Uint64(), a.v.IsUint64()
}

// String returns the base 10 representation.
func (a Amount) String() string {
	return a.v.Dec()
}

// MarshalJSON serializes an amount as a base 10 string, so that big values
// are not mangled by JSON number handling.
func (a Amount) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.String())
}

// UnmarshalJSON accepts both a base 10 string and a JSON number.
func (a *Amount) UnmarshalJSON(raw []byte) error {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		var n json.Number
		if err := json.Unmarshal(raw, &n); err != nil {
			return errors.Wrapf(errors.ErrAmount, "cannot decode %s", raw)
		}
		s = n.String()
	}
	v, err := ParseAmount(s)
	if err != nil {
		return err
	}
	*a = v
	return nil
}

// Format implements fmt.Formatter so that amounts print the same with %s, %v
// and %d verbs.
func (a Amount) Format(s fmt.State, verb rune) {
	fmt.Fprint(s, a.String())
}
