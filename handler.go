package accrual

import (
	"encoding/json"
	"reflect"

	"github.com/iov-one/accrual/errors"
)

// Msg is a request to take an action (make a state transition). It is just
// the request, and must be validated by the Handlers. All authentication
// information is carried by the context.
type Msg interface {
	// Return the message path.
	// This is used by the Router to locate the proper Handler.
	// Msg should be created alongside the Handler that corresponds to them.
	//
	// Must be alphanumeric [0-9A-Za-z_\-/]+
	Path() string

	// Validate performs a sanity check of the message content. It does not
	// access the state.
	Validate() error
}

// Tx represent the data sent from the user to the ledger.
type Tx interface {
	// GetMsg returns the action we wish to communicate
	GetMsg() (Msg, error)
}

// GetPath returns the path of the message, or (missing) if no message
func GetPath(tx Tx) string {
	msg, err := tx.GetMsg()
	if err == nil && msg != nil {
		return msg.Path()
	}
	return "(missing)"
}

// LoadMsg extracts the message represented by given transaction into given
// destination. Before returning message validation method is called.
func LoadMsg(tx Tx, destination interface{}) error {
	msg, err := tx.GetMsg()
	if err != nil {
		return errors.Wrap(err, "cannot get transaction message")
	}
	if msg == nil {
		return errors.Wrap(errors.ErrMsg, "no message")
	}

	// This is needed to avoid panic when reflecting.
	if reflect.ValueOf(destination).Kind() != reflect.Ptr {
		return errors.Wrap(errors.ErrType, "destination must be a pointer")
	}

	// Unpack messages if destination is a pointer to a value.
	msgVal := reflect.ValueOf(msg)
	if msgVal.Kind() == reflect.Ptr {
		msgVal = msgVal.Elem()
	}
	dstVal := reflect.ValueOf(destination).Elem()

	if !msgVal.Type().AssignableTo(dstVal.Type()) {
		return errors.Wrapf(errors.ErrType, "want %T message, got %T", destination, msg)
	}
	dstVal.Set(msgVal)

	if m, ok := destination.(Msg); ok {
		if err := m.Validate(); err != nil {
			return errors.Wrap(err, "invalid message")
		}
	}
	return nil
}

// Handler is a core engine that can process a few specific messages.
// This could represent "deposit into the vault", or "lower the global rate".
type Handler interface {
	Deliver(ctx Context, db KVStore, tx Tx) (*DeliverResult, error)
}

// Decorator wraps a Handler to provide common functionality like
// authentication or logging. It may modify the context before passing the
// call down the stack.
type Decorator interface {
	Deliver(ctx Context, db KVStore, tx Tx, next Handler) (*DeliverResult, error)
}

// DeliverResult captures any non-error results of a message execution.
type DeliverResult struct {
	// Data is a machine-parseable return value, like the id of a new
	// record or a resolved amount.
	Data []byte
	// Log is human-readable informational string
	Log string
	// Events are all notifications emitted while executing the message.
	// They are filled by the executor.
	Events []Event
}

// Registry is an interface to register your handler,
// the setup side of a Router
type Registry interface {
	Handle(m Msg, h Handler)
}

// Options are the app options
// Each extension can look up it's key and parse the json as desired
type Options map[string]json.RawMessage

// ReadOptions reads the values stored under a given key,
// and parses the json into the given obj.
// Returns an error if it cannot parse.
// Noop and no error if key is missing
func (o Options) ReadOptions(key string, obj interface{}) error {
	msg := o[key]
	if len(msg) == 0 {
		return nil
	}
	if err := json.Unmarshal(msg, obj); err != nil {
		return errors.Wrapf(errors.ErrInput, "cannot parse %q options: %s", key, err)
	}
	return nil
}

// Initializer implementations are used to initialize
// extensions from genesis file contents
type Initializer interface {
	FromGenesis(Options, KVStore) error
}
