package utils

import (
	"time"

	"github.com/iov-one/accrual"
)

// Logging writes one entry per delivered transaction. A failure is logged
// at the error level together with the error, a success at the info level
// with the log returned by the handler.
type Logging struct{}

var _ accrual.Decorator = Logging{}

func NewLogging() Logging {
	return Logging{}
}

func (Logging) Deliver(ctx accrual.Context, db accrual.KVStore, tx accrual.Tx, next accrual.Handler) (*accrual.DeliverResult, error) {
	start := time.Now()
	res, err := next.Deliver(ctx, db, tx)

	logger := accrual.GetLogger(ctx).With("duration", time.Since(start)/time.Microsecond)
	switch {
	case err != nil:
		logger.Error("delivery failed", "err", err)
	case res != nil && res.Log != "":
		logger.Info(res.Log)
	default:
		logger.Info("delivered")
	}
	return res, err
}
