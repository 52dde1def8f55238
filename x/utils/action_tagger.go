package utils

import (
	"github.com/iov-one/accrual"
)

// ActionKey is the logger key under which ActionTagger records the message
// path.
const ActionKey = "action"

// ActionTagger will inspect the message being executed and add the message
// path to the logger of the context, so that all entries logged while
// executing the message can be filtered by the action.
type ActionTagger struct{}

var _ accrual.Decorator = ActionTagger{}

// NewActionTagger creates a ActionTagger decorator
func NewActionTagger() ActionTagger {
	return ActionTagger{}
}

// Deliver tags the logger with the path of the message.
func (ActionTagger) Deliver(ctx accrual.Context, db accrual.KVStore, tx accrual.Tx, next accrual.Handler) (*accrual.DeliverResult, error) {
	// if we error in reporting, let's do so early before dispatching
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, err
	}
	ctx = accrual.WithLogInfo(ctx, ActionKey, msg.Path())
	return next.Deliver(ctx, db, tx)
}
