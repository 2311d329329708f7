/*
Package vault implements atomic swap escrow vaults.

A vault holds value in trust until a secret is revealed or a timeout
elapses. Funds of a swap are locked by a hash lock, the double sha256 digest
of a 32 byte secret. Anyone who knows the secret can redeem the swap before
its refund time: the participant receives the principal minus the payoff and
the initiator receives the payoff, which rewards whoever funded the swap for
relaying. Once the refund time is reached only a refund is possible and the
initiator gets the whole principal back. At any moment exactly one of redeem
and refund is allowed.

The same state machine serves three asset variants. What differs between
them is captured by an Adapter:

	NativeAdapter  coins attached to the call
	FA12Adapter    single-asset token, moved with transfer(from, to, value)
	FA2Adapter     multi-asset token, moved with a one-element batch transfer

The vault never moves value itself. Every entrypoint returns the ordered list
of operations the host must apply together with the state change. A redeem
with a payoff returns the participant payout first and the payoff second.

Every violated rule is reported as errors.ErrPrecondition.

A hash lock can be used only once per vault. After a swap is redeemed or
refunded its hash lock is remembered and initiating it again fails just like
a collision with an active swap.
*/
package vault
