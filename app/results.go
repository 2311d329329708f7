package app

import (
	"github.com/iov-one/swapvault"
)

// Receipt lists what a transaction did, in execution order.
type Receipt struct {
	Operations []AppliedOperation
}

// AppliedOperation is an operation emitted by Source and applied by the
// ledger.
type AppliedOperation struct {
	Source    swapvault.Address
	Operation swapvault.Operation
}

// Payments returns all coin payments of the transaction in order.
func (r *Receipt) Payments() []swapvault.Payment {
	var res []swapvault.Payment
	for _, o := range r.Operations {
		if p, ok := o.Operation.(swapvault.Payment); ok {
			res = append(res, p)
		}
	}
	return res
}

// Invocations returns all contract calls of the transaction in order.
func (r *Receipt) Invocations() []swapvault.Invocation {
	var res []swapvault.Invocation
	for _, o := range r.Operations {
		if i, ok := o.Operation.(swapvault.Invocation); ok {
			res = append(res, i)
		}
	}
	return res
}
