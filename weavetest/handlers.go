package weavetest

import "github.com/iov-one/accrual"

// Handler is a mock implementation of the accrual.Handler interface.
//
// Set DeliverErr to force error response. Set Write to write a key value pair
// to the store before returning, which is useful to test atomicity.
type Handler struct {
	deliverCall   int
	DeliverResult accrual.DeliverResult
	DeliverErr    error

	// Write if not nil is written to the store on each call.
	Write *KV
	// Event if not nil is emitted on each call.
	Event accrual.Event
}

// KV is a key value pair.
type KV struct {
	Key, Value []byte
}

var _ accrual.Handler = (*Handler)(nil)

func (h *Handler) Deliver(ctx accrual.Context, db accrual.KVStore, tx accrual.Tx) (*accrual.DeliverResult, error) {
	h.deliverCall++
	if h.Write != nil {
		if err := db.Set(h.Write.Key, h.Write.Value); err != nil {
			return nil, err
		}
	}
	if h.Event != nil {
		accrual.Emit(ctx, h.Event)
	}
	// Copy the result so that the caller cannot modify the template.
	res := h.DeliverResult
	return &res, h.DeliverErr
}

func (h *Handler) CallCount() int {
	return h.deliverCall
}

// PanicHandler panics on each call.
type PanicHandler struct {
	Msg string
}

func (h PanicHandler) Deliver(accrual.Context, accrual.KVStore, accrual.Tx) (*accrual.DeliverResult, error) {
	panic(h.Msg)
}
