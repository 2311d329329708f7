package fa2

import (
	"github.com/iov-one/swapvault"
	"github.com/iov-one/swapvault/errors"
)

const (
	pathTransfer        = "fa2/transfer"
	pathUpdateOperators = "fa2/update_operators"
)

// TransferMsg is a batch of transfers, applied in order.
type TransferMsg struct {
	Batches []TransferBatch `json:"batches"`
}

// TransferBatch moves tokens owned by From.
type TransferBatch struct {
	From swapvault.Address `json:"from"`
	Txs  []TransferTx      `json:"txs"`
}

// TransferTx is a single destination of a batch.
type TransferTx struct {
	To      swapvault.Address `json:"to"`
	TokenID uint64            `json:"token_id"`
	Amount  uint64            `json:"amount"`
}

var _ swapvault.Msg = (*TransferMsg)(nil)

func (TransferMsg) Path() string {
	return pathTransfer
}

func (m *TransferMsg) Validate() error {
	if len(m.Batches) == 0 {
		return errors.Wrap(errors.ErrInput, "empty transfer")
	}
	for i, b := range m.Batches {
		if err := b.From.Validate(); err != nil {
			return errors.Wrapf(err, "batch %d: from", i)
		}
		for j, tx := range b.Txs {
			if err := tx.To.Validate(); err != nil {
				return errors.Wrapf(err, "batch %d: tx %d: to", i, j)
			}
		}
	}
	return nil
}

// UpdateOperatorsMsg adds or removes operators of the caller tokens.
type UpdateOperatorsMsg struct {
	Updates []OperatorUpdate `json:"updates"`
}

// OperatorUpdate grants (Add) or revokes the right of Operator to transfer
// TokenID tokens owned by Owner.
type OperatorUpdate struct {
	Add      bool              `json:"add"`
	Owner    swapvault.Address `json:"owner"`
	Operator swapvault.Address `json:"operator"`
	TokenID  uint64            `json:"token_id"`
}

var _ swapvault.Msg = (*UpdateOperatorsMsg)(nil)

func (UpdateOperatorsMsg) Path() string {
	return pathUpdateOperators
}

func (m *UpdateOperatorsMsg) Validate() error {
	for i, u := range m.Updates {
		if err := u.Owner.Validate(); err != nil {
			return errors.Wrapf(err, "update %d: owner", i)
		}
		if err := u.Operator.Validate(); err != nil {
			return errors.Wrapf(err, "update %d: operator", i)
		}
	}
	return nil
}
