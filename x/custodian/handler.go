package custodian

import (
	"github.com/iov-one/accrual"
	"github.com/iov-one/accrual/coin"
	"github.com/iov-one/accrual/errors"
)

// RegisterRoutes registers handlers for all custodian messages.
func RegisterRoutes(r accrual.Registry, c *Custodian) {
	r.Handle(&DepositMsg{}, &depositHandler{custodian: c})
	r.Handle(&RedeemMsg{}, &redeemHandler{custodian: c})
	r.Handle(&FundMsg{}, &fundHandler{custodian: c})
}

// cacheable returns the store as a cacheable one. All stores provided by
// the executor are cacheable.
func cacheable(db accrual.KVStore) (accrual.CacheableKVStore, error) {
	cdb, ok := db.(accrual.CacheableKVStore)
	if !ok {
		return nil, errors.Wrapf(errors.ErrHuman, "%T store is not cacheable", db)
	}
	return cdb, nil
}

type depositHandler struct {
	custodian *Custodian
}

func (h *depositHandler) Deliver(ctx accrual.Context, db accrual.KVStore, tx accrual.Tx) (*accrual.DeliverResult, error) {
	var msg DepositMsg
	if err := accrual.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	cdb, err := cacheable(db)
	if err != nil {
		return nil, err
	}
	deposit, err := h.custodian.Deposit(ctx, cdb, msg.Payer, msg.Amount)
	if err != nil {
		return nil, err
	}
	return &accrual.DeliverResult{
		Data: []byte(deposit.UUID().String()),
	}, nil
}

type redeemHandler struct {
	custodian *Custodian
}

func (h *redeemHandler) Deliver(ctx accrual.Context, db accrual.KVStore, tx accrual.Tx) (*accrual.DeliverResult, error) {
	var msg RedeemMsg
	if err := accrual.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	cdb, err := cacheable(db)
	if err != nil {
		return nil, err
	}
	payout, err := h.custodian.Redeem(ctx, cdb, msg.Account, msg.Amount)
	if err != nil {
		return nil, err
	}
	amount, err := coin.AmountFromBytes(payout.Amount)
	if err != nil {
		return nil, errors.Wrap(err, "payout amount")
	}
	return &accrual.DeliverResult{
		Data: []byte(payout.UUID().String()),
		Log:  "paid out " + amount.String(),
	}, nil
}

type fundHandler struct {
	custodian *Custodian
}

func (h *fundHandler) Deliver(ctx accrual.Context, db accrual.KVStore, tx accrual.Tx) (*accrual.DeliverResult, error) {
	var msg FundMsg
	if err := accrual.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if err := h.custodian.Fund(ctx, db, msg.From, msg.Amount); err != nil {
		return nil, err
	}
	return &accrual.DeliverResult{}, nil
}
