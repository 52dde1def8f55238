/*
Package app links together all the various components
to construct the accruald application.
*/
package app

import (
	"os"
	"path/filepath"

	"github.com/iov-one/accrual"
	"github.com/iov-one/accrual/app"
	"github.com/iov-one/accrual/errors"
	"github.com/iov-one/accrual/store/iavl"
	"github.com/iov-one/accrual/x"
	"github.com/iov-one/accrual/x/acl"
	"github.com/iov-one/accrual/x/auth"
	"github.com/iov-one/accrual/x/bridge"
	"github.com/iov-one/accrual/x/cash"
	"github.com/iov-one/accrual/x/custodian"
	"github.com/iov-one/accrual/x/ledger"
	"github.com/iov-one/accrual/x/utils"
	"github.com/tendermint/tendermint/libs/log"
)

// Name is used for the database directory.
const Name = "accrual"

// Authenticator returns the authentication used by user facing
// extensions, just using public key signatures.
func Authenticator() x.Authenticator {
	return auth.Authenticate{}
}

// LedgerAuthenticator extends the user authentication with the custodian
// identity, so the custodian can mint and burn claims.
func LedgerAuthenticator() x.Authenticator {
	return x.ChainAuth(auth.Authenticate{}, custodian.Authenticate{})
}

// Chain returns a chain of decorators, to handle authentication, logging,
// and recovery.
func Chain() app.Decorators {
	return app.ChainDecorators(
		utils.NewLogging(),
		utils.NewRecovery(),
		utils.NewActionTagger(),
		auth.NewDecorator(),
		// a failed message still increments the signer nonce
		utils.NewSavepoint(),
	)
}

// Extensions holds the controllers shared by the handlers and the queries.
type Extensions struct {
	Ledger    *ledger.Ledger
	Custodian *custodian.Custodian
	Cash      cash.Controller
}

// NewExtensions builds all controllers with the default authentication.
func NewExtensions() *Extensions {
	authFn := Authenticator()
	cashctrl := cash.NewController()
	l := ledger.New(LedgerAuthenticator())
	return &Extensions{
		Ledger:    l,
		Custodian: custodian.New(authFn, l, cashctrl),
		Cash:      cashctrl,
	}
}

// Router returns a router dispatching to all extensions.
func Router(ext *Extensions) *app.Router {
	authFn := Authenticator()
	r := app.NewRouter()
	acl.RegisterRoutes(r, authFn)
	cash.RegisterRoutes(r, authFn, ext.Cash)
	ledger.RegisterRoutes(r, ext.Ledger)
	custodian.RegisterRoutes(r, ext.Custodian)
	bridge.RegisterRoutes(r, authFn)
	return r
}

// Stack wires up the router with the decorator chain.
func Stack(r *app.Router) accrual.Handler {
	return Chain().WithHandler(r)
}

// Initializer returns the genesis initializer of all extensions.
func Initializer() accrual.Initializer {
	return app.ChainInitializers(
		acl.Initializer{},
		cash.Initializer{},
		ledger.Initializer{},
		bridge.Initializer{},
	)
}

// Application is a running instance of the executor together with the
// extensions it dispatches to.
type Application struct {
	*app.Executor
	Extensions *Extensions

	kv *iavl.CommitStore
}

// New returns an application operating on given store.
func New(kv *iavl.CommitStore, logger log.Logger) (*Application, error) {
	cs, err := app.NewCommitStore(kv)
	if err != nil {
		return nil, err
	}
	ext := NewExtensions()
	r := Router(ext)
	e, err := app.NewExecutor(cs, Stack(r), app.NewTxDecoder(r), logger)
	if err != nil {
		return nil, err
	}
	return &Application{Executor: e, Extensions: ext, kv: kv}, nil
}

// Open returns an application persisting its state under the home
// directory. Close must be called to release the database.
func Open(home string, logger log.Logger) (*Application, error) {
	dir := filepath.Join(home, "data")
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, errors.Wrapf(errors.ErrDatabase, "create data directory: %s", err)
	}
	kv, err := iavl.NewCommitStore(dir, Name)
	if err != nil {
		return nil, err
	}
	a, err := New(kv, logger)
	if err != nil {
		kv.Close()
		return nil, err
	}
	return a, nil
}

// Close releases the underlying database.
func (a *Application) Close() {
	a.kv.Close()
}
