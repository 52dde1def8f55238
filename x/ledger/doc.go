/*
Package ledger implements an interest bearing balance ledger.

Each account holds a principal and a locked rate. The redeemable value of an
account grows linearly with the time elapsed since the last settlement:

	principal * (F + lockedRate * elapsed) / F

where F is coin.RateScale. Interest is never pushed. It is settled into the
principal at the beginning of every operation that modifies an account.

The locked rate is taken from the issue call, or inherited from the sender of
a transfer, whenever an account balance goes from zero to non-zero. It never
changes while the balance stays positive. The global rate is the ceiling for
newly locked rates and it can only go down.
*/
package ledger
