package acl

import (
	"github.com/iov-one/accrual"
	"github.com/iov-one/accrual/errors"
	"github.com/iov-one/accrual/gconf"
	"github.com/iov-one/accrual/x"
)

// RegisterRoutes registers handlers for all acl messages.
func RegisterRoutes(r accrual.Registry, auth x.Authenticator) {
	r.Handle(&GrantMsg{}, &grantHandler{auth: auth})
	r.Handle(&RevokeMsg{}, &revokeHandler{auth: auth})
	r.Handle(&UpdateConfigurationMsg{}, NewConfigHandler(auth))
}

// NewConfigHandler returns a handler of the UpdateConfigurationMsg. Only the
// owner can change the configuration.
func NewConfigHandler(auth x.Authenticator) accrual.Handler {
	var conf Configuration
	return gconf.NewUpdateConfigurationHandler(confPkg, &conf, auth)
}

type grantHandler struct {
	auth x.Authenticator
}

func (h *grantHandler) Deliver(ctx accrual.Context, db accrual.KVStore, tx accrual.Tx) (*accrual.DeliverResult, error) {
	var msg GrantMsg
	if err := accrual.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if err := Grant(ctx, db, h.auth, msg.Role, msg.Holder); err != nil {
		return nil, err
	}
	return &accrual.DeliverResult{}, nil
}

type revokeHandler struct {
	auth x.Authenticator
}

func (h *revokeHandler) Deliver(ctx accrual.Context, db accrual.KVStore, tx accrual.Tx) (*accrual.DeliverResult, error) {
	var msg RevokeMsg
	if err := accrual.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if err := Revoke(ctx, db, h.auth, msg.Role); err != nil {
		return nil, err
	}
	return &accrual.DeliverResult{}, nil
}
