/*
Package errors implements the error taxonomy of swapvault.

Every error returned by a contract or by the host wraps exactly one root
error declared with Register. The root error decides how the failure is
reported. Contracts reuse the root errors declared here; an extension may
register its own only when none of these fits.

The vault state machine knows a single failure kind, ErrPrecondition. Any
violated rule (unknown or reused hash lock, wrong time window, wrong attached
value, self-trade, payoff above the principal, wrong secret) wraps it with a
description of what was violated. The host reverts the whole call on any
error, so there is no other recovery path.

Create errors at the point of failure with ErrXyz.New or Wrap to attach a
stacktrace. Printing with %+v shows it.
*/
package errors
