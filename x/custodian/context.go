package custodian

import (
	"context"

	"github.com/iov-one/accrual"
	"github.com/iov-one/accrual/x"
)

type contextKey int // local to the custodian module

const (
	contextKeyCustodian contextKey = iota
)

// vaultCondition is the identity of the custodian.
var vaultCondition = accrual.NewCondition("custody", "vault", []byte("accrual"))

// Condition returns the condition the custodian authenticates with.
func Condition() accrual.Condition {
	return vaultCondition
}

// withCustodian is a private method, as only this module can act as the
// custodian.
func withCustodian(ctx accrual.Context) accrual.Context {
	return context.WithValue(ctx, contextKeyCustodian, true)
}

// Authenticate recognizes the custodian when it calls other extensions.
type Authenticate struct{}

var _ x.Authenticator = Authenticate{}

// GetConditions returns the custodian condition if the custodian is the
// caller.
func (Authenticate) GetConditions(ctx accrual.Context) []accrual.Condition {
	if ok, _ := ctx.Value(contextKeyCustodian).(bool); ok {
		return []accrual.Condition{vaultCondition}
	}
	return nil
}

// HasAddress returns true if the custodian is the caller and the address
// is its own.
func (a Authenticate) HasAddress(ctx accrual.Context, addr accrual.Address) bool {
	for _, c := range a.GetConditions(ctx) {
		if addr.Equals(c.Address()) {
			return true
		}
	}
	return false
}
