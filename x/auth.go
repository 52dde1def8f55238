package x

import (
	"github.com/iov-one/accrual"
)

// Authenticator tells which conditions signed the current operation.
// Ledger, custodian and access control are constructed with one, so the
// vault identity can be granted next to the ed25519 signers.
type Authenticator interface {
	// GetConditions returns every condition fulfilled in the context.
	GetConditions(accrual.Context) []accrual.Condition
	// HasAddress reports whether the address of any fulfilled condition
	// equals addr.
	HasAddress(accrual.Context, accrual.Address) bool
}

// ChainAuth returns an authenticator that accepts a condition fulfilled by
// any of the given ones. Duplicated conditions are reported once.
func ChainAuth(impls ...Authenticator) Authenticator {
	return authChain(impls)
}

type authChain []Authenticator

func (c authChain) GetConditions(ctx accrual.Context) []accrual.Condition {
	var res []accrual.Condition
	for _, impl := range c {
		for _, cond := range impl.GetConditions(ctx) {
			if !containsCondition(res, cond) {
				res = append(res, cond)
			}
		}
	}
	return res
}

func (c authChain) HasAddress(ctx accrual.Context, addr accrual.Address) bool {
	for _, impl := range c {
		if impl.HasAddress(ctx, addr) {
			return true
		}
	}
	return false
}

func containsCondition(conds []accrual.Condition, want accrual.Condition) bool {
	for _, c := range conds {
		if c.Equals(want) {
			return true
		}
	}
	return false
}
