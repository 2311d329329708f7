package vault

import (
	"github.com/iov-one/swapvault"
	"github.com/iov-one/swapvault/errors"
)

const (
	pathInitiate = "vault/initiate"
	pathAdd      = "vault/add"
	pathRedeem   = "vault/redeem"
	pathRefund   = "vault/refund"
)

// InitiateMsg creates a new swap locked by HashLock.
type InitiateMsg struct {
	HashLock     []byte             `json:"hash_lock"`
	Participant  swapvault.Address  `json:"participant"`
	RefundTime   swapvault.UnixTime `json:"refund_time"`
	TotalAmount  uint64             `json:"total_amount"`
	PayoffAmount uint64             `json:"payoff_amount"`
	// TokenAddress and TokenID are required by the token variants only.
	TokenAddress swapvault.Address `json:"token_address,omitempty"`
	TokenID      uint64            `json:"token_id,omitempty"`
}

// AddMsg tops up the principal of an active swap.
type AddMsg struct {
	HashLock  []byte `json:"hash_lock"`
	AddAmount uint64 `json:"add_amount"`
}

// RedeemMsg reveals the secret of a swap.
type RedeemMsg struct {
	Secret []byte `json:"secret"`
}

// RefundMsg returns the principal of an expired swap to its initiator.
type RefundMsg struct {
	HashLock []byte `json:"hash_lock"`
}

var (
	_ swapvault.Msg = (*InitiateMsg)(nil)
	_ swapvault.Msg = (*AddMsg)(nil)
	_ swapvault.Msg = (*RedeemMsg)(nil)
	_ swapvault.Msg = (*RefundMsg)(nil)
)

// ROUTING, Path method fulfills swapvault.Msg interface to allow routing

func (InitiateMsg) Path() string {
	return pathInitiate
}

func (AddMsg) Path() string {
	return pathAdd
}

func (RedeemMsg) Path() string {
	return pathRedeem
}

func (RefundMsg) Path() string {
	return pathRefund
}

// VALIDATION, Validate method makes sure basic rules are enforced upon input
// data. Any failure is a precondition violation.

func (m *InitiateMsg) Validate() error {
	if err := validateHashLock(m.HashLock); err != nil {
		return err
	}
	if err := m.Participant.Validate(); err != nil {
		return errors.Wrapf(errors.ErrPrecondition, "participant: %s", err)
	}
	if err := m.RefundTime.Validate(); err != nil {
		return errors.Wrapf(errors.ErrPrecondition, "refund time: %s", err)
	}
	if m.PayoffAmount > m.TotalAmount {
		return errors.Wrapf(errors.ErrPrecondition, "payoff %d exceeds total amount %d", m.PayoffAmount, m.TotalAmount)
	}
	return nil
}

func (m *AddMsg) Validate() error {
	return validateHashLock(m.HashLock)
}

func (m *RedeemMsg) Validate() error {
	if len(m.Secret) != SecretSize {
		return errors.Wrapf(errors.ErrPrecondition, "secret must be exactly %d bytes", SecretSize)
	}
	return nil
}

func (m *RefundMsg) Validate() error {
	return validateHashLock(m.HashLock)
}

func validateHashLock(hashLock []byte) error {
	if len(hashLock) != HashLockSize {
		return errors.Wrapf(errors.ErrPrecondition, "hash lock must be exactly %d bytes", HashLockSize)
	}
	return nil
}
