/*
Package bank keeps the native coin balances of the host ledger.

There is no logic in the coin, except that a balance may not go below zero
and may not overflow. The host uses it to move the value attached to a call
into the called contract and to execute Payment operations emitted by
contracts.
*/
package bank
