package coin

import (
	"encoding/json"
	"fmt"

	"github.com/holiman/uint256"
	"github.com/iov-one/accrual/errors"
)

// RateScale is the fixed-point unit of an interest rate. A rate equal to
// RateScale accrues 100% of the principal every second.
const RateScale uint64 = 1e18

var rateScale = uint256.NewInt(RateScale)

// Rate is a per second interest rate, expressed in RateScale units.
//
// For example a rate of 5e10 is 5e-8 per second which is about 158% per year.
type Rate struct {
	v uint256.Int
}

// NewRate returns a rate of n scaled units.
func NewRate(n uint64) Rate {
	var r Rate
	r.v.SetUint64(n)
	return r
}

// ParseRate decodes a base 10 representation of a rate, in scaled units.
func ParseRate(s string) (Rate, error) {
	v, err := parseDecimal(s)
	if err != nil {
		return Rate{}, errors.Wrapf(errors.ErrInput, "cannot parse rate %q: %s", s, err)
	}
	return Rate{v: *v}, nil
}

// MustParseRate is like ParseRate but panics on an invalid input.
func MustParseRate(s string) Rate {
	r, err := ParseRate(s)
	if err != nil {
		panic(err)
	}
	return r
}

// RateFromBytes decodes the big endian representation of a rate.
func RateFromBytes(raw []byte) (Rate, error) {
	if len(raw) > 32 {
		return Rate{}, errors.Wrapf(errors.ErrOverflow, "%d bytes long rate", len(raw))
	}
	var r Rate
	r.v.SetBytes(raw)
	return r, nil
}

// Bytes returns the minimal big endian representation of this rate. Zero is
// a single zero byte.
func (r Rate) Bytes() []byte {
	if r.v.IsZero() {
		return []byte{0}
	}
	return r.v.Bytes()
}

// Compare returns 1 if r is larger, -1 if o is larger and 0 if both are equal.
func (r Rate) Compare(o Rate) int {
	return r.v.Cmp(&o.v)
}

// Equals returns true if both rates are the same.
func (r Rate) Equals(o Rate) bool {
	return r.v.Eq(&o.v)
}

// IsZero returns true if this rate does not accrue any interest.
func (r Rate) IsZero() bool {
	return r.v.IsZero()
}

// String returns the base 10 representation in scaled units.
func (r Rate) String() string {
	return r.v.Dec()
}

func (r Rate) Format(s fmt.State, verb rune) {
	fmt.Fprint(s, r.String())
}

func (r Rate) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.String())
}

func (r *Rate) UnmarshalJSON(raw []byte) error {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		var n json.Number
		if err := json.Unmarshal(raw, &n); err != nil {
			return errors.Wrapf(errors.ErrInput, "cannot decode rate %s", raw)
		}
		s = n.String()
	}
	v, err := ParseRate(s)
	if err != nil {
		return err
	}
	*r = v
	return nil
}

// Accrue returns the value of principal after elapsed seconds of linear
// (not compounding) interest at given rate.
//
//   principal * (RateScale + rate * elapsed) / RateScale
//
// The result is rounded down. Zero elapsed time always yields exactly the
// principal.
func Accrue(principal Amount, rate Rate, elapsed uint64) (Amount, error) {
	if elapsed == 0 || rate.IsZero() || principal.IsZero() {
		return principal, nil
	}

	var factor uint256.Int
	if _, overflow := factor.MulOverflow(&rate.v, uint256.NewInt(elapsed)); overflow {
		return Amount{}, errors.Wrapf(errors.ErrOverflow, "rate %s for %d seconds", rate, elapsed)
	}
	if _, overflow := factor.AddOverflow(&factor, rateScale); overflow {
		return Amount{}, errors.Wrapf(errors.ErrOverflow, "rate %s for %d seconds", rate, elapsed)
	}

	var res Amount
	if _, overflow := res.v.MulDivOverflow(&principal.v, &factor, rateScale); overflow {
		return Amount{}, errors.Wrapf(errors.ErrOverflow, "accrue %s", principal)
	}
	return res, nil
}
