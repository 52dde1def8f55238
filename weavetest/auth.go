package weavetest

import (
	"context"
	"fmt"

	"github.com/iov-one/accrual"
)

// Auth authenticates a fixed set of conditions, regardless of the context.
// Signer and Signers are both reported, Signers first.
type Auth struct {
	Signer  accrual.Condition
	Signers []accrual.Condition
}

func (a *Auth) GetConditions(accrual.Context) []accrual.Condition {
	if a.Signer == nil {
		return a.Signers
	}
	conds := make([]accrual.Condition, 0, len(a.Signers)+1)
	conds = append(conds, a.Signers...)
	return append(conds, a.Signer)
}

func (a *Auth) HasAddress(ctx accrual.Context, addr accrual.Address) bool {
	return anyHasAddress(a.GetConditions(ctx), addr)
}

// CtxAuth authenticates the conditions stored in the context with
// SetConditions. Authenticators with different keys do not see each other
// conditions, so a test can combine several of them.
type CtxAuth struct {
	Key string
}

type ctxAuthKey string

// SetConditions returns a context in which given conditions are
// authenticated.
func (a *CtxAuth) SetConditions(ctx accrual.Context, conds ...accrual.Condition) accrual.Context {
	return context.WithValue(ctx, ctxAuthKey(a.Key), conds)
}

func (a *CtxAuth) GetConditions(ctx accrual.Context) []accrual.Condition {
	switch v := ctx.Value(ctxAuthKey(a.Key)).(type) {
	case nil:
		return nil
	case []accrual.Condition:
		return v
	default:
		panic(fmt.Sprintf("unexpected %T value under %q", v, a.Key))
	}
}

func (a *CtxAuth) HasAddress(ctx accrual.Context, addr accrual.Address) bool {
	return anyHasAddress(a.GetConditions(ctx), addr)
}

func anyHasAddress(conds []accrual.Condition, addr accrual.Address) bool {
	for _, c := range conds {
		if addr.Equals(c.Address()) {
			return true
		}
	}
	return false
}
