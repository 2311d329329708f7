package app

import (
	"github.com/iov-one/swapvault"
	"github.com/iov-one/swapvault/x/fa12"
	"github.com/iov-one/swapvault/x/fa2"
	"github.com/iov-one/swapvault/x/vault"
	amino "github.com/tendermint/go-amino"
)

// NewCodec returns a codec that knows every message of the contracts a
// ledger can originate. Messages are encoded as {"type": path, "value": msg}.
func NewCodec() *amino.Codec {
	cdc := amino.NewCodec()
	RegisterCodec(cdc)
	cdc.Seal()
	return cdc
}

// RegisterCodec registers all messages under their paths.
func RegisterCodec(cdc *amino.Codec) {
	cdc.RegisterInterface((*swapvault.Msg)(nil), nil)
	for _, m := range []swapvault.Msg{
		&vault.InitiateMsg{},
		&vault.AddMsg{},
		&vault.RedeemMsg{},
		&vault.RefundMsg{},
		&fa12.TransferMsg{},
		&fa12.ApproveMsg{},
		&fa2.TransferMsg{},
		&fa2.UpdateOperatorsMsg{},
	} {
		cdc.RegisterConcrete(m, m.Path(), nil)
	}
}
