/*
Package swapvault defines the common interfaces shared by the atomic swap
vaults, the token contracts they talk to and the host ledger that executes
them.

A contract is called with a CallInfo describing the current invocation: the
immediate caller, the origin that signed the transaction, the native value
attached to the call and the host clock. A contract never moves value
directly. Instead it returns an ordered list of Operations that the host
applies together with the store writes of the call, so that a call either
fully commits or leaves no trace.

Extensions live under x/ and follow the same layout: msg.go declares the
messages (entrypoints) with stateless validation, model.go declares the
persisted records, handler.go or contract.go implements the entrypoints.
*/
package swapvault
