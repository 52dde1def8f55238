/*
Package x contains the extensions of the vault ledger.

Extensions implement a single piece of the functionality (the ledger, the
custodian, access control) and are combined together by the app package.

This package declares what is shared between extensions: the Authenticator
interface and helpers to query it.
*/
package x
