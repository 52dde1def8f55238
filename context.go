/*
We pass context through context.Context between the executor, extensions and
controllers. To do so, accrual defines some common keys to store info, such as
the block time and chain id. Each extension, such as the custodian, may add
its own keys to enrich the context with specific data.

There should exist two functions for every XYZ of type T that we want to
support in Context:

  WithXYZ(Context, T) Context
  GetXYZ(Context) (val T, ok bool)

WithXYZ may panic if the value was previously set to avoid lower-level modules
overwriting the value (eg. block time, chain id).
*/
package accrual

import (
	"context"
	"regexp"
	"time"

	"github.com/iov-one/accrual/errors"
	"github.com/tendermint/tendermint/libs/log"
)

type contextKey int // local to this package

const (
	contextKeyTime contextKey = iota
	contextKeyChainID
	contextKeyLogger
	contextKeyEvents
)

var (
	// DefaultLogger is used for all context that have not
	// set anything themselves
	DefaultLogger = log.NewNopLogger()

	// IsValidChainID is the RegExp to ensure valid chain IDs
	IsValidChainID = regexp.MustCompile(`^[a-zA-Z0-9_\-]{6,20}$`).MatchString
)

// Context is just an alias for the standard implementation.
// We use functions to extend it to our domain.
type Context = context.Context

// WithBlockTime sets the block time for the context. Block time is the only
// clock that the ledger is allowed to use. It must never run backwards.
//
// Setting the block time twice is a programming error and causes a panic.
func WithBlockTime(ctx Context, t time.Time) Context {
	if _, ok := ctx.Value(contextKeyTime).(time.Time); ok {
		panic("block time already set")
	}
	return context.WithValue(ctx, contextKeyTime, t.UTC())
}

// BlockTime returns current block wall clock time as declared in the context.
// An error is returned if a block time is not present in the context or if the
// zero time value is found.
func BlockTime(ctx Context) (time.Time, error) {
	t, ok := ctx.Value(contextKeyTime).(time.Time)
	if !ok {
		return time.Time{}, errors.Wrap(errors.ErrHuman, "block time not present in the context")
	}
	if t.IsZero() {
		return t, errors.Wrap(errors.ErrHuman, "zero block time")
	}
	return t, nil
}

// BlockUnixTime returns the block time in seconds precision.
func BlockUnixTime(ctx Context) (UnixTime, error) {
	t, err := BlockTime(ctx)
	if err != nil {
		return 0, err
	}
	return AsUnixTime(t), nil
}

// WithChainID sets the chain id for the context. Setting the chain id twice
// or setting an invalid value causes a panic.
func WithChainID(ctx Context, chainID string) Context {
	if ctx.Value(contextKeyChainID) != nil {
		panic("Tried to change chain id")
	}
	if !IsValidChainID(chainID) {
		panic("Invalid chain id")
	}
	return context.WithValue(ctx, contextKeyChainID, chainID)
}

// GetChainID returns the current chain id. Panics if chain id not already set
// (should never happen).
func GetChainID(ctx Context) string {
	if x := ctx.Value(contextKeyChainID); x == nil {
		panic("Must have chain id set")
	}
	return ctx.Value(contextKeyChainID).(string)
}

// WithLogger sets the logger for this context.
func WithLogger(ctx Context, logger log.Logger) Context {
	return context.WithValue(ctx, contextKeyLogger, logger)
}

// WithLogInfo accepts keyvalue pairs, and returns another context like this,
// after passing all the keyvals to the Logger.
func WithLogInfo(ctx Context, keyvals ...interface{}) Context {
	logger := GetLogger(ctx).With(keyvals...)
	return WithLogger(ctx, logger)
}

// GetLogger returns the currently set logger, or DefaultLogger if none was
// set.
func GetLogger(ctx Context) log.Logger {
	val, ok := ctx.Value(contextKeyLogger).(log.Logger)
	if !ok {
		return DefaultLogger
	}
	return val
}
