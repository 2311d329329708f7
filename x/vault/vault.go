package vault

import (
	"context"
	"math"

	"github.com/iov-one/swapvault"
	"github.com/iov-one/swapvault/errors"
)

// Vault is the swap state machine of one vault instance. The asset specific
// part of every entrypoint is delegated to the adapter.
type Vault struct {
	adapter Adapter
	bucket  Bucket
}

var _ swapvault.Contract = Vault{}

// NewVault returns a vault escrowing the asset kind handled by given adapter.
func NewVault(adapter Adapter) Vault {
	return Vault{
		adapter: adapter,
		bucket:  NewBucket(),
	}
}

// Kind returns the asset variant of this vault.
func (v Vault) Kind() string {
	return v.adapter.Kind()
}

// Call dispatches the message to the matching entrypoint. Any returned error
// must abort the whole call.
func (v Vault) Call(ctx context.Context, call swapvault.CallInfo, db swapvault.KVStore, msg swapvault.Msg) ([]swapvault.Operation, error) {
	call = call.WithLogInfo("vault", v.adapter.Kind(), "entrypoint", msg.Path())

	switch m := msg.(type) {
	case *InitiateMsg:
		return v.Initiate(call, db, m)
	case *AddMsg:
		return v.Add(call, db, m)
	case *RedeemMsg:
		return v.Redeem(call, db, m)
	case *RefundMsg:
		return v.Refund(call, db, m)
	default:
		return nil, errors.Wrapf(errors.ErrInput, "unknown entrypoint %q", msg.Path())
	}
}

// EffectivePayer returns the identity funding a call. A relayed call is
// paid by the relaying sender, otherwise caller and origin are the same
// account.
func EffectivePayer(call swapvault.CallInfo) swapvault.Address {
	return call.Caller()
}

// Initiate creates a new swap funded by the effective payer of the call.
func (v Vault) Initiate(call swapvault.CallInfo, db swapvault.KVStore, msg *InitiateMsg) ([]swapvault.Operation, error) {
	if err := msg.Validate(); err != nil {
		return nil, err
	}

	used, err := v.bucket.IsUsed(db, msg.HashLock)
	if err != nil {
		return nil, err
	}
	if used {
		return nil, errors.Wrapf(errors.ErrPrecondition, "hash lock %X already used", msg.HashLock)
	}
	if call.IsExpired(msg.RefundTime) {
		return nil, errors.Wrapf(errors.ErrPrecondition, "refund time %s is not in the future", msg.RefundTime)
	}

	payer := EffectivePayer(call)
	if msg.Participant.Equals(payer) || msg.Participant.Equals(call.Origin()) {
		return nil, errors.Wrap(errors.ErrPrecondition, "participant cannot fund its own swap")
	}
	if msg.TotalAmount == 0 {
		return nil, errors.Wrap(errors.ErrPrecondition, "total amount must be positive")
	}

	asset := Asset{TokenAddress: msg.TokenAddress, TokenID: msg.TokenID}
	if err := v.adapter.ValidateAsset(asset); err != nil {
		return nil, err
	}
	ops, err := v.adapter.Fund(call, asset, payer, msg.TotalAmount)
	if err != nil {
		return nil, err
	}

	swap := &Swap{
		Initiator:    payer,
		Participant:  msg.Participant,
		RefundTime:   msg.RefundTime,
		TotalAmount:  msg.TotalAmount,
		PayoffAmount: msg.PayoffAmount,
		TokenAddress: msg.TokenAddress,
		TokenID:      msg.TokenID,
	}
	if err := v.bucket.Create(db, msg.HashLock, swap); err != nil {
		return nil, err
	}

	call.Logger().Info("swap initiated",
		"hash_lock", hexLock(msg.HashLock),
		"initiator", payer,
		"participant", msg.Participant,
		"total", msg.TotalAmount)
	return ops, nil
}

// Add increases the principal of an active swap. Anyone can add.
func (v Vault) Add(call swapvault.CallInfo, db swapvault.KVStore, msg *AddMsg) ([]swapvault.Operation, error) {
	if err := msg.Validate(); err != nil {
		return nil, err
	}

	swap, err := v.load(db, msg.HashLock)
	if err != nil {
		return nil, err
	}
	if call.IsExpired(swap.RefundTime) {
		return nil, errors.Wrap(errors.ErrPrecondition, "swap is expired")
	}
	if msg.AddAmount == 0 {
		return nil, errors.Wrap(errors.ErrPrecondition, "add amount must be positive")
	}
	if swap.TotalAmount > math.MaxUint64-msg.AddAmount {
		return nil, errors.Wrap(errors.ErrPrecondition, "total amount overflow")
	}

	ops, err := v.adapter.Fund(call, swap.Asset(), call.Caller(), msg.AddAmount)
	if err != nil {
		return nil, err
	}

	swap.TotalAmount += msg.AddAmount
	if err := v.bucket.Save(db, msg.HashLock, swap); err != nil {
		return nil, err
	}

	call.Logger().Info("swap topped up",
		"hash_lock", hexLock(msg.HashLock),
		"added", msg.AddAmount,
		"total", swap.TotalAmount)
	return ops, nil
}

// Redeem releases the swap committed to by the secret. The participant is
// paid first and the payoff, if any, goes to the initiator second.
func (v Vault) Redeem(call swapvault.CallInfo, db swapvault.KVStore, msg *RedeemMsg) ([]swapvault.Operation, error) {
	if err := msg.Validate(); err != nil {
		return nil, err
	}
	if call.Amount() != 0 {
		return nil, errors.Wrap(errors.ErrPrecondition, "redeem does not accept value")
	}

	hashLock := HashSecret(msg.Secret)
	swap, err := v.load(db, hashLock)
	if err != nil {
		return nil, err
	}
	if call.IsExpired(swap.RefundTime) {
		return nil, errors.Wrap(errors.ErrPrecondition, "swap is expired")
	}

	if err := v.bucket.Settle(db, hashLock); err != nil {
		return nil, err
	}

	asset := swap.Asset()
	ops := []swapvault.Operation{
		v.adapter.Pay(call, asset, swap.Participant, swap.Payout()),
	}
	if swap.PayoffAmount > 0 {
		ops = append(ops, v.adapter.Pay(call, asset, swap.Initiator, swap.PayoffAmount))
	}

	call.Logger().Info("swap redeemed",
		"hash_lock", hexLock(hashLock),
		"payout", swap.Payout(),
		"payoff", swap.PayoffAmount)
	return ops, nil
}

// Refund returns the whole principal of an expired swap to its initiator.
// Anyone can refund.
func (v Vault) Refund(call swapvault.CallInfo, db swapvault.KVStore, msg *RefundMsg) ([]swapvault.Operation, error) {
	if err := msg.Validate(); err != nil {
		return nil, err
	}
	if call.Amount() != 0 {
		return nil, errors.Wrap(errors.ErrPrecondition, "refund does not accept value")
	}

	swap, err := v.load(db, msg.HashLock)
	if err != nil {
		return nil, err
	}
	if !call.IsExpired(swap.RefundTime) {
		return nil, errors.Wrapf(errors.ErrPrecondition, "swap not expired until %s", swap.RefundTime)
	}

	if err := v.bucket.Settle(db, msg.HashLock); err != nil {
		return nil, err
	}

	call.Logger().Info("swap refunded",
		"hash_lock", hexLock(msg.HashLock),
		"total", swap.TotalAmount)
	op := v.adapter.Pay(call, swap.Asset(), swap.Initiator, swap.TotalAmount)
	return []swapvault.Operation{op}, nil
}

// Swap returns the active swap locked by hashLock or ErrNotFound.
func (v Vault) Swap(db swapvault.ReadOnlyKVStore, hashLock []byte) (*Swap, error) {
	swap, err := v.bucket.Get(db, hashLock)
	if err != nil {
		return nil, err
	}
	if swap == nil {
		return nil, errors.Wrapf(errors.ErrNotFound, "swap %X", hashLock)
	}
	return swap, nil
}

// load returns the active swap or a precondition error if there is none.
func (v Vault) load(db swapvault.ReadOnlyKVStore, hashLock []byte) (*Swap, error) {
	swap, err := v.bucket.Get(db, hashLock)
	if err != nil {
		return nil, err
	}
	if swap == nil {
		return nil, errors.Wrapf(errors.ErrPrecondition, "no active swap for hash lock %X", hashLock)
	}
	return swap, nil
}
