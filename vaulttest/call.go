package vaulttest

import (
	"github.com/iov-one/swapvault"
)

// Call describes a contract invocation in tests. Zero values are fine: an
// unset Sender means the call was not relayed.
type Call struct {
	Sender swapvault.Address
	Source swapvault.Address
	Self   swapvault.Address
	Amount uint64
	Now    swapvault.UnixTime
}

// Info builds the CallInfo the host would pass to the contract.
func (c Call) Info() swapvault.CallInfo {
	return swapvault.NewCallInfo(c.Sender, c.Source, c.Self, c.Amount, c.Now, nil)
}
