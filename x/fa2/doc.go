/*
Package fa2 implements a multi-asset token contract.

Balances are kept per owner and token id. The transfer entrypoint takes a
batch of transfers, each moving tokens of one owner to a list of
destinations. The caller must either be the owner or an operator the owner
registered for that token id through update_operators.

The whole batch is applied or none of it is.
*/
package fa2
