package swapvault

import (
	"context"
	"fmt"
)

// Msg is a call to a contract entrypoint together with its parameters.
type Msg interface {
	// Path returns the name of the entrypoint this message is routed to.
	Path() string

	// Validate performs stateless checks of the parameters.
	Validate() error
}

// Contract is a program deployed at an address of the host ledger.
//
// A call either succeeds, returning the operations to be applied by the host
// in the given order, or fails and the host reverts everything the call did.
type Contract interface {
	Call(ctx context.Context, call CallInfo, db KVStore, msg Msg) ([]Operation, error)
}

// Operation is an outbound ledger operation scheduled by a contract call.
// The host executes it on behalf of the contract that emitted it.
type Operation interface {
	// Destination returns the address that receives the operation.
	Destination() Address
}

// Payment moves native coins from the emitting contract to an address.
type Payment struct {
	To     Address
	Amount uint64
}

var _ Operation = Payment{}

func (p Payment) Destination() Address {
	return p.To
}

func (p Payment) String() string {
	return fmt.Sprintf("pay %d to %s", p.Amount, p.To)
}

// Invocation calls an entrypoint of another contract. The emitting contract
// becomes the caller of that call. No native value is attached.
type Invocation struct {
	Contract Address
	Msg      Msg
}

var _ Operation = Invocation{}

func (i Invocation) Destination() Address {
	return i.Contract
}

func (i Invocation) String() string {
	return fmt.Sprintf("call %s on %s", i.Msg.Path(), i.Contract)
}
