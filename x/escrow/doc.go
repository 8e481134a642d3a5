/*
Package escrow implements time-locked escrows.

An escrow holds funds deposited by a payer for a beneficiary until a
maturity time. The configured owner is the only principal allowed to open
an escrow. Once the block time reaches maturity anyone may release it, which
marks the escrow as settled and emits one settlement directive per
denomination. Released escrows are kept forever, so an escrow id can never
be reused.

Components, leaf first:

	Ledger    keyed storage of escrow records
	Machine   lifecycle checks and state transitions
	Emit      settlement directives for a release
	handlers  request dispatch, receipts and tags
*/
package escrow
