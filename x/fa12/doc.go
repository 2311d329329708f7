/*
Package fa12 implements a single-asset fungible token contract.

The contract exposes two entrypoints:

	transfer(from, to, value)
	approve(spender, value)

A transfer where the caller is not the owner of the tokens (from) consumes
the allowance the owner granted to the caller. This is how a vault pulls
tokens from a swap initiator: the initiator approves the vault first, then
calls the vault, which in turn schedules a transfer from the initiator to
itself.

Changing a non-zero allowance directly to another non-zero value is
rejected. Reset it to zero first.
*/
package fa12
