/*
Package auth provides basic authentication middleware to verify the ed25519
signatures on the transaction, and maintain nonces for replay protection.

A signer is identified by the condition "sigs/ed25519/<public key>". The
address of that condition is the account address used by all extensions.
*/
package auth
