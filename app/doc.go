/*
Package app contains the building blocks of an application: a router that
dispatches messages to handlers, a decorator chain, the transaction format,
the genesis file and the executor that applies transactions to a committed
store one at a time.
*/
package app
