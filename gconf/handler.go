package gconf

import (
	"reflect"

	"github.com/iov-one/accrual"
	"github.com/iov-one/accrual/errors"
	"github.com/iov-one/accrual/x"
)

// OwnedConfig must have an Owner field. A configuration update message must be
// signed by an owner in order to be authorized to apply the change.
type OwnedConfig interface {
	Configuration
	GetOwner() accrual.Address
}

// UpdateConfigurationHandler applies a patch to a stored configuration.
type UpdateConfigurationHandler struct {
	pkg string
	// We require this type to load the data.
	config OwnedConfig
	auth   x.Authenticator
}

var _ accrual.Handler = UpdateConfigurationHandler{}

// NewUpdateConfigurationHandler returns a message handler that process
// configuration patch message.
//
// Each message must carry a "Patch" field of the same type as the
// configuration and must be signed by the current configuration owner.
// Configuration that was not created via genesis cannot be updated.
func NewUpdateConfigurationHandler(pkg string, config OwnedConfig, auth x.Authenticator) UpdateConfigurationHandler {
	return UpdateConfigurationHandler{
		pkg:    pkg,
		config: config,
		auth:   auth,
	}
}

func (h UpdateConfigurationHandler) Deliver(ctx accrual.Context, db accrual.KVStore, tx accrual.Tx) (*accrual.DeliverResult, error) {
	// Handlers are shared, so never modify the template instance.
	config := reflect.New(reflect.TypeOf(h.config).Elem()).Interface().(OwnedConfig)

	if err := Load(db, h.pkg, config); err != nil {
		return nil, errors.Wrap(err, "load current configuration")
	}
	owner := config.GetOwner()
	if owner == nil {
		return nil, errors.Wrap(errors.ErrUnauthorized, "owner signature required")
	}
	if !h.auth.HasAddress(ctx, owner) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "owner did not sign transaction")
	}

	payload, err := patchPayload(tx)
	if err != nil {
		return nil, errors.Wrap(err, "cannot get message payload")
	}
	if err := patch(config, payload); err != nil {
		return nil, errors.Wrap(err, "cannot patch config with message payload")
	}
	if err := Save(db, h.pkg, config); err != nil {
		return nil, errors.Wrap(err, "cannot save updated config")
	}
	return &accrual.DeliverResult{}, nil
}

// patch copies all non zero fields of the payload into the configuration.
func patch(config OwnedConfig, payload OwnedConfig) error {
	if reflect.TypeOf(payload) != reflect.TypeOf(config) {
		return errors.Wrap(errors.ErrMsg, "config in message doesn't match store")
	}

	cval := reflect.ValueOf(config).Elem()
	pval := reflect.ValueOf(payload).Elem()
	for i := 0; i < cval.NumField(); i++ {
		got := pval.Field(i)
		// Zero values do not update the original configuration.
		if isZero(got) {
			continue
		}
		cval.Field(i).Set(got)
	}
	return nil
}

// isZero returns true if given value represents a zero value of a given type.
func isZero(val reflect.Value) bool {
	zero := reflect.Zero(val.Type()).Interface()
	return reflect.DeepEqual(val.Interface(), zero)
}

// patchPayload expects the transaction to have a message with "Patch" field of
// the same type as the configuration. Content of this field is extracted and
// returned.
func patchPayload(tx accrual.Tx) (OwnedConfig, error) {
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, err
	}
	if err := msg.Validate(); err != nil {
		return nil, err
	}

	pval := reflect.ValueOf(msg)
	if pval.Kind() != reflect.Ptr || pval.Elem().Kind() != reflect.Struct {
		return nil, errors.Wrapf(errors.ErrInput, "invalid message container value: %T", msg)
	}
	field := pval.Elem().FieldByName("Patch")
	if !field.IsValid() {
		return nil, errors.Wrapf(errors.ErrInput, `%T has no "Patch" field`, msg)
	}
	if field.Kind() != reflect.Ptr || field.IsNil() {
		return nil, errors.Wrap(errors.ErrState, `"Patch" field is required`)
	}
	payload, ok := field.Interface().(OwnedConfig)
	if !ok {
		return nil, errors.Wrap(errors.ErrInput, `"Patch" field is of a wrong type`)
	}
	return payload, nil
}
