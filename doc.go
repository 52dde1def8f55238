/*
Package accrual defines the interfaces used throughout the vault ledger, such
as storage, transactions, handlers and events. It also contains helpers to work
with context, addresses and time.

Look into this package to get a brief overview of the design decisions made
around interfaces and extension building blocks. Interest bearing balances are
implemented by the x/ledger extension, the base asset exchange by x/custodian.
*/
package accrual
