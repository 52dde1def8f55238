/*
Package cash keeps the balances of the base asset held outside of the vault.

There is no logic in the base asset, except that the balance of any wallet may
never go below zero. The custodian collects deposits into its own wallet and
pays out redemptions from it.
*/
package cash
