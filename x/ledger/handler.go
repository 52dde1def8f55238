package ledger

import (
	"github.com/iov-one/accrual"
	"github.com/iov-one/accrual/coin"
	"github.com/iov-one/accrual/errors"
)

// RegisterRoutes registers handlers for all ledger messages.
func RegisterRoutes(r accrual.Registry, l *Ledger) {
	r.Handle(&IssueMsg{}, &issueHandler{ledger: l})
	r.Handle(&RedeemMsg{}, &redeemHandler{ledger: l})
	r.Handle(&TransferMsg{}, &transferHandler{ledger: l})
	r.Handle(&TransferFromMsg{}, &transferFromHandler{ledger: l})
	r.Handle(&ApproveMsg{}, &approveHandler{ledger: l})
	r.Handle(&SetRateMsg{}, &setRateHandler{ledger: l})
}

// amountResult returns a result carrying the decimal representation of an
// amount.
func amountResult(a coin.Amount) *accrual.DeliverResult {
	return &accrual.DeliverResult{
		Data: []byte(a.String()),
	}
}

type issueHandler struct {
	ledger *Ledger
}

func (h *issueHandler) Deliver(ctx accrual.Context, db accrual.KVStore, tx accrual.Tx) (*accrual.DeliverResult, error) {
	var msg IssueMsg
	if err := accrual.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if err := h.ledger.Issue(ctx, db, msg.Account, msg.Amount, msg.Rate); err != nil {
		return nil, err
	}
	return amountResult(msg.Amount), nil
}

type redeemHandler struct {
	ledger *Ledger
}

func (h *redeemHandler) Deliver(ctx accrual.Context, db accrual.KVStore, tx accrual.Tx) (*accrual.DeliverResult, error) {
	var msg RedeemMsg
	if err := accrual.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	amount, err := h.ledger.Redeem(ctx, db, msg.Account, msg.Amount)
	if err != nil {
		return nil, err
	}
	return amountResult(amount), nil
}

type transferHandler struct {
	ledger *Ledger
}

func (h *transferHandler) Deliver(ctx accrual.Context, db accrual.KVStore, tx accrual.Tx) (*accrual.DeliverResult, error) {
	var msg TransferMsg
	if err := accrual.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	amount, err := h.ledger.Transfer(ctx, db, msg.From, msg.To, msg.Amount)
	if err != nil {
		return nil, err
	}
	return amountResult(amount), nil
}

type transferFromHandler struct {
	ledger *Ledger
}

func (h *transferFromHandler) Deliver(ctx accrual.Context, db accrual.KVStore, tx accrual.Tx) (*accrual.DeliverResult, error) {
	var msg TransferFromMsg
	if err := accrual.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	amount, err := h.ledger.TransferFrom(ctx, db, msg.Spender, msg.From, msg.To, msg.Amount)
	if err != nil {
		return nil, err
	}
	return amountResult(amount), nil
}

type approveHandler struct {
	ledger *Ledger
}

func (h *approveHandler) Deliver(ctx accrual.Context, db accrual.KVStore, tx accrual.Tx) (*accrual.DeliverResult, error) {
	var msg ApproveMsg
	if err := accrual.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if err := h.ledger.Approve(ctx, db, msg.Owner, msg.Spender, msg.Amount); err != nil {
		return nil, err
	}
	return &accrual.DeliverResult{}, nil
}

type setRateHandler struct {
	ledger *Ledger
}

func (h *setRateHandler) Deliver(ctx accrual.Context, db accrual.KVStore, tx accrual.Tx) (*accrual.DeliverResult, error) {
	var msg SetRateMsg
	if err := accrual.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if err := h.ledger.SetGlobalRate(ctx, db, msg.Rate); err != nil {
		return nil, err
	}
	return &accrual.DeliverResult{}, nil
}
