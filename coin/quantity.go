package coin

import (
	"encoding/json"

	"github.com/iov-one/accrual/errors"
)

// Quantity is an amount argument of an operation that is either an exact
// value or everything that is available. It is resolved once, at the entry of
// the operation, against the balance that the operation is drawing from.
//
// The zero value is an exact zero.
type Quantity struct {
	all    bool
	amount Amount
}

// Exactly returns a quantity of the given amount.
func Exactly(a Amount) Quantity {
	return Quantity{amount: a}
}

// All is a quantity that resolves to the whole available balance.
var All = Quantity{all: true}

// IsAll returns true if this quantity resolves to the whole balance.
func (q Quantity) IsAll() bool {
	return q.all
}

// Resolve returns the amount this quantity stands for, given the balance it
// is drawing from. An exact quantity is returned as is, even if it exceeds the
// balance.
func (q Quantity) Resolve(balance Amount) Amount {
	if q.all {
		return balance
	}
	return q.amount
}

func (q Quantity) String() string {
	if q.all {
		return "all"
	}
	return q.amount.String()
}

// Validate returns an error if this quantity is an exact zero.
func (q Quantity) Validate() error {
	if !q.all && q.amount.IsZero() {
		return errors.Wrap(errors.ErrAmount, "must be greater than zero")
	}
	return nil
}

// MarshalJSON encodes All as the "all" string and an exact quantity as an
// amount.
func (q Quantity) MarshalJSON() ([]byte, error) {
	if q.all {
		return json.Marshal("all")
	}
	return q.amount.MarshalJSON()
}

func (q *Quantity) UnmarshalJSON(raw []byte) error {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil && s == "all" {
		*q = All
		return nil
	}
	var a Amount
	if err := a.UnmarshalJSON(raw); err != nil {
		return err
	}
	*q = Exactly(a)
	return nil
}

// ParseQuantity decodes "all" or a base 10 amount.
func ParseQuantity(s string) (Quantity, error) {
	if s == "all" {
		return All, nil
	}
	a, err := ParseAmount(s)
	if err != nil {
		return Quantity{}, err
	}
	return Exactly(a), nil
}
