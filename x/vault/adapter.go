package vault

import (
	"github.com/iov-one/swapvault"
	"github.com/iov-one/swapvault/errors"
	"github.com/iov-one/swapvault/x/fa12"
	"github.com/iov-one/swapvault/x/fa2"
)

// Asset identifies what a swap escrows. The native variant leaves it empty.
type Asset struct {
	TokenAddress swapvault.Address
	TokenID      uint64
}

// Adapter abstracts moving an asset in and out of a vault.
type Adapter interface {
	// Kind names the asset variant.
	Kind() string

	// ValidateAsset checks that the asset identifiers fit this variant.
	ValidateAsset(a Asset) error

	// Fund checks how a funding call carries amount into the vault and
	// returns the operations that pull it in from the payer.
	Fund(call swapvault.CallInfo, a Asset, payer swapvault.Address, amount uint64) ([]swapvault.Operation, error)

	// Pay returns the operation moving amount out of the vault to the
	// recipient.
	Pay(call swapvault.CallInfo, a Asset, to swapvault.Address, amount uint64) swapvault.Operation
}

// NativeAdapter moves the native coin of the host. Incoming value is the
// value attached to the call, so no operation is needed to pull it in.
type NativeAdapter struct{}

var _ Adapter = NativeAdapter{}

func (NativeAdapter) Kind() string {
	return "vault/native"
}

func (NativeAdapter) ValidateAsset(a Asset) error {
	if len(a.TokenAddress) != 0 || a.TokenID != 0 {
		return errors.Wrap(errors.ErrPrecondition, "native vault takes no token")
	}
	return nil
}

func (NativeAdapter) Fund(call swapvault.CallInfo, a Asset, payer swapvault.Address, amount uint64) ([]swapvault.Operation, error) {
	if call.Amount() == 0 {
		return nil, errors.Wrap(errors.ErrPrecondition, "no value attached")
	}
	if call.Amount() != amount {
		return nil, errors.Wrapf(errors.ErrPrecondition, "attached %d, expected %d", call.Amount(), amount)
	}
	return nil, nil
}

func (NativeAdapter) Pay(call swapvault.CallInfo, a Asset, to swapvault.Address, amount uint64) swapvault.Operation {
	return swapvault.Payment{To: to, Amount: amount}
}

// FA12Adapter moves single-asset tokens by calling the transfer entrypoint of
// the token contract.
type FA12Adapter struct{}

var _ Adapter = FA12Adapter{}

func (FA12Adapter) Kind() string {
	return "vault/fa12"
}

func (FA12Adapter) ValidateAsset(a Asset) error {
	if err := a.TokenAddress.Validate(); err != nil {
		return errors.Wrapf(errors.ErrPrecondition, "token address: %s", err)
	}
	if a.TokenID != 0 {
		return errors.Wrap(errors.ErrPrecondition, "single-asset token takes no token id")
	}
	return nil
}

func (FA12Adapter) Fund(call swapvault.CallInfo, a Asset, payer swapvault.Address, amount uint64) ([]swapvault.Operation, error) {
	if call.Amount() != 0 {
		return nil, errors.Wrap(errors.ErrPrecondition, "token vault does not accept native value")
	}
	op := fa12Transfer(a, payer, call.Self(), amount)
	return []swapvault.Operation{op}, nil
}

func (FA12Adapter) Pay(call swapvault.CallInfo, a Asset, to swapvault.Address, amount uint64) swapvault.Operation {
	return fa12Transfer(a, call.Self(), to, amount)
}

func fa12Transfer(a Asset, from, to swapvault.Address, amount uint64) swapvault.Operation {
	return swapvault.Invocation{
		Contract: a.TokenAddress,
		Msg: &fa12.TransferMsg{
			From:  from,
			To:    to,
			Value: amount,
		},
	}
}

// FA2Adapter moves multi-asset tokens by calling the batched transfer
// entrypoint of the token contract with exactly one transfer.
type FA2Adapter struct{}

var _ Adapter = FA2Adapter{}

func (FA2Adapter) Kind() string {
	return "vault/fa2"
}

func (FA2Adapter) ValidateAsset(a Asset) error {
	if err := a.TokenAddress.Validate(); err != nil {
		return errors.Wrapf(errors.ErrPrecondition, "token address: %s", err)
	}
	return nil
}

func (FA2Adapter) Fund(call swapvault.CallInfo, a Asset, payer swapvault.Address, amount uint64) ([]swapvault.Operation, error) {
	if call.Amount() != 0 {
		return nil, errors.Wrap(errors.ErrPrecondition, "token vault does not accept native value")
	}
	op := fa2Transfer(a, payer, call.Self(), amount)
	return []swapvault.Operation{op}, nil
}

func (FA2Adapter) Pay(call swapvault.CallInfo, a Asset, to swapvault.Address, amount uint64) swapvault.Operation {
	return fa2Transfer(a, call.Self(), to, amount)
}

func fa2Transfer(a Asset, from, to swapvault.Address, amount uint64) swapvault.Operation {
	return swapvault.Invocation{
		Contract: a.TokenAddress,
		Msg: &fa2.TransferMsg{
			Batches: []fa2.TransferBatch{{
				From: from,
				Txs: []fa2.TransferTx{{
					To:      to,
					TokenID: a.TokenID,
					Amount:  amount,
				}},
			}},
		},
	}
}

// AdapterByKind returns the adapter of given variant.
func AdapterByKind(kind string) (Adapter, error) {
	for _, a := range []Adapter{NativeAdapter{}, FA12Adapter{}, FA2Adapter{}} {
		if a.Kind() == kind {
			return a, nil
		}
	}
	return nil, errors.Wrapf(errors.ErrInput, "unknown vault kind %q", kind)
}
