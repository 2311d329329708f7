/*
Package app is a minimal host ledger for swap vaults and the token contracts
they move.

A Ledger keeps native coin balances, a registry of originated contracts and
the state of each contract under its own key prefix. A transaction calls one
contract. The operations returned by that call are applied in the order they
were emitted, and operations emitted by nested calls are queued after them:

	tx -> vault.Initiate -> [fa12.transfer(payer -> vault)]
	                          \-> fa12.Token.Call -> []

All state changes of a transaction, including the coins attached to it, are
made in a cache. The cache is written only when the call and every queued
operation succeeded, otherwise it is dropped and the ledger is unchanged.
*/
package app
