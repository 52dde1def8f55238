/*
Package custodian exchanges the base asset for ledger claims and back.

Deposited base asset is collected into the custodian wallet and the same
amount of claims is issued to the payer at the current global rate. On
redemption the claims are burned and exactly the burned amount of base asset
is paid out. Burn and payout are applied together or not at all.

The custodian calls the ledger with its own identity, which must hold the
mint and burn role. Use Authenticate in the ledger authenticator chain to
recognize it.
*/
package custodian
