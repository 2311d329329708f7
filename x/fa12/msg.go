package fa12

import (
	"github.com/iov-one/swapvault"
	"github.com/iov-one/swapvault/errors"
)

const (
	pathTransfer = "fa12/transfer"
	pathApprove  = "fa12/approve"
)

// TransferMsg moves Value tokens owned by From to To.
type TransferMsg struct {
	From  swapvault.Address `json:"from"`
	To    swapvault.Address `json:"to"`
	Value uint64            `json:"value"`
}

var _ swapvault.Msg = (*TransferMsg)(nil)

func (TransferMsg) Path() string {
	return pathTransfer
}

func (m *TransferMsg) Validate() error {
	if err := m.From.Validate(); err != nil {
		return errors.Wrap(err, "from")
	}
	if err := m.To.Validate(); err != nil {
		return errors.Wrap(err, "to")
	}
	return nil
}

// ApproveMsg allows Spender to transfer up to Value tokens of the caller.
type ApproveMsg struct {
	Spender swapvault.Address `json:"spender"`
	Value   uint64            `json:"value"`
}

var _ swapvault.Msg = (*ApproveMsg)(nil)

func (ApproveMsg) Path() string {
	return pathApprove
}

func (m *ApproveMsg) Validate() error {
	return errors.Wrap(m.Spender.Validate(), "spender")
}
