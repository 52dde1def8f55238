package app

import (
	"fmt"
	"reflect"
	"regexp"

	"github.com/iov-one/accrual"
	"github.com/iov-one/accrual/errors"
)

// isPath is the RegExp to ensure the routes make sense
var isPath = regexp.MustCompile(`^[a-z0-9_]+/[a-z0-9_]+$`).MatchString

// Router allows us to register many handlers with different paths and then
// direct each message to the proper handler.
//
// Minimal interface modeled after net/http.ServeMux
type Router struct {
	routes map[string]route
}

type route struct {
	handler accrual.Handler
	// msgType is used to create a new message instance for a path.
	msgType reflect.Type
}

var _ accrual.Registry = (*Router)(nil)
var _ accrual.Handler = (*Router)(nil)

// NewRouter returns a new empty router instance.
func NewRouter() *Router {
	return &Router{
		routes: make(map[string]route),
	}
}

// Handle adds a new Handler for the given message path. Registering an
// invalid or an already used path causes a panic.
func (r *Router) Handle(msg accrual.Msg, h accrual.Handler) {
	path := msg.Path()
	if !isPath(path) {
		panic(fmt.Sprintf("invalid path: %q", path))
	}
	if _, ok := r.routes[path]; ok {
		panic(fmt.Sprintf("re-registering route: %q", path))
	}
	t := reflect.TypeOf(msg)
	if t.Kind() != reflect.Ptr {
		panic(fmt.Sprintf("%T message must be registered as a pointer", msg))
	}
	r.routes[path] = route{handler: h, msgType: t.Elem()}
}

// Handler returns the registered Handler for this path. If no path is found,
// returns a noSuchPath Handler. Always returns a non-nil Handler.
func (r *Router) Handler(path string) accrual.Handler {
	if rt, ok := r.routes[path]; ok {
		return rt.handler
	}
	return noSuchPathHandler{path: path}
}

// NewMsg returns a new, empty instance of the message registered for given
// path.
func (r *Router) NewMsg(path string) (accrual.Msg, error) {
	rt, ok := r.routes[path]
	if !ok {
		return nil, errors.Wrapf(errors.ErrNotFound, "no message for path %q", path)
	}
	return reflect.New(rt.msgType).Interface().(accrual.Msg), nil
}

// Deliver dispatches to the handler registered for the path of the message.
func (r *Router) Deliver(ctx accrual.Context, store accrual.KVStore, tx accrual.Tx) (*accrual.DeliverResult, error) {
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, errors.Wrap(err, "cannot load msg")
	}
	if msg == nil {
		return nil, errors.Wrap(errors.ErrMsg, "no message")
	}
	return r.Handler(msg.Path()).Deliver(ctx, store, tx)
}

type noSuchPathHandler struct {
	path string
}

var _ accrual.Handler = noSuchPathHandler{}

func (h noSuchPathHandler) Deliver(accrual.Context, accrual.KVStore, accrual.Tx) (*accrual.DeliverResult, error) {
	return nil, errors.Wrapf(errors.ErrNotFound, "no handler for message path %q", h.path)
}
