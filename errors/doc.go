/*
Package errors implements custom error interfaces for the ledger.

The idea is to reuse as many errors from this package as possible and define
custom errors only when absolutely necessary. All errors that the ledger and
the custodian can return to a caller are declared here, so that a client can
categorize a failure by its code:

	ErrUnauthorized         the caller lacks the required role or signature
	ErrRateIncrease         a proposed rate exceeds the current ceiling
	ErrInsufficientBalance  an amount exceeds the settled balance
	ErrOverflow             a fixed-point computation would overflow
	ErrPayout               the base asset release did not complete

If you want to register a custom error - use Register(code, description).
To create an error instance at runtime use Wrap(ErrXyz, "...") or
Wrapf(ErrXyz, "...", args...). Test for an error kind with ErrXyz.Is(err).

There is also support for stacktraces. A stacktrace is attached at the first
wrap only. Once you have an error, you can use `fmt.Printf/Sprintf` to get
more context for the error

	%s is just the error message
	%+v is the full stack trace
*/
package errors
