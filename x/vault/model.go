package vault

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/swapvault"
	"github.com/iov-one/swapvault/errors"
)

// Swap is a single entry of the swap ledger, keyed by its hash lock.
type Swap struct {
	// Initiator funded the swap and receives the refund or the payoff.
	Initiator swapvault.Address `protobuf:"bytes,1,opt,name=initiator,proto3" json:"initiator"`
	// Participant receives the payout when the secret is revealed.
	Participant swapvault.Address `protobuf:"bytes,2,opt,name=participant,proto3" json:"participant"`
	// RefundTime is the first moment at which only a refund is possible.
	RefundTime   swapvault.UnixTime `protobuf:"varint,3,opt,name=refund_time,json=refundTime,proto3" json:"refund_time"`
	TotalAmount  uint64             `protobuf:"varint,4,opt,name=total_amount,json=totalAmount,proto3" json:"total_amount"`
	PayoffAmount uint64             `protobuf:"varint,5,opt,name=payoff_amount,json=payoffAmount,proto3" json:"payoff_amount"`
	// TokenAddress is set by the token variants only.
	TokenAddress swapvault.Address `protobuf:"bytes,6,opt,name=token_address,json=tokenAddress,proto3" json:"token_address,omitempty"`
	// TokenID is used by the multi-asset variant only.
	TokenID uint64 `protobuf:"varint,7,opt,name=token_id,json=tokenId,proto3" json:"token_id,omitempty"`
}

func (m *Swap) Reset()         { *m = Swap{} }
func (m *Swap) String() string { return proto.CompactTextString(m) }
func (*Swap) ProtoMessage()    {}

// Validate ensures the Swap is valid.
func (s *Swap) Validate() error {
	if err := s.Initiator.Validate(); err != nil {
		return errors.Wrap(err, "initiator")
	}
	if err := s.Participant.Validate(); err != nil {
		return errors.Wrap(err, "participant")
	}
	if err := s.RefundTime.Validate(); err != nil {
		return errors.Wrap(err, "refund time")
	}
	if s.PayoffAmount > s.TotalAmount {
		return errors.Wrap(errors.ErrInput, "payoff exceeds total amount")
	}
	return nil
}

// Copy makes a new swap that does not share memory with this one.
func (s *Swap) Copy() *Swap {
	return &Swap{
		Initiator:    s.Initiator.Clone(),
		Participant:  s.Participant.Clone(),
		RefundTime:   s.RefundTime,
		TotalAmount:  s.TotalAmount,
		PayoffAmount: s.PayoffAmount,
		TokenAddress: s.TokenAddress.Clone(),
		TokenID:      s.TokenID,
	}
}

// Payout returns the part of the principal the participant receives on
// redeem.
func (s *Swap) Payout() uint64 {
	return s.TotalAmount - s.PayoffAmount
}

// Asset returns the escrowed asset identifiers.
func (s *Swap) Asset() Asset {
	return Asset{TokenAddress: s.TokenAddress, TokenID: s.TokenID}
}

var (
	swapPrefix = []byte("swap:")
	usedPrefix = []byte("used:")
)

// Bucket is the swap ledger: a mapping from hash lock to Swap. Settled hash
// locks are kept as tombstones so that they are never used again.
type Bucket struct{}

// NewBucket returns the swap ledger of the store passed to every method.
func NewBucket() Bucket {
	return Bucket{}
}

func key(prefix, hashLock []byte) []byte {
	return append(append([]byte{}, prefix...), hashLock...)
}

// Get returns the active swap locked by hashLock, or nil if there is none.
func (Bucket) Get(db swapvault.ReadOnlyKVStore, hashLock []byte) (*Swap, error) {
	raw, err := db.Get(key(swapPrefix, hashLock))
	if err != nil {
		return nil, errors.Wrap(err, "load swap")
	}
	if raw == nil {
		return nil, nil
	}
	var s Swap
	if err := proto.Unmarshal(raw, &s); err != nil {
		return nil, errors.Wrapf(errors.ErrDatabase, "unmarshal swap: %s", err)
	}
	return &s, nil
}

// IsUsed returns true if hashLock belongs to an active swap or to a swap
// that was already settled.
func (Bucket) IsUsed(db swapvault.ReadOnlyKVStore, hashLock []byte) (bool, error) {
	for _, prefix := range [][]byte{swapPrefix, usedPrefix} {
		ok, err := db.Has(key(prefix, hashLock))
		if err != nil {
			return false, errors.Wrap(err, "check hash lock")
		}
		if ok {
			return true, nil
		}
	}
	return false, nil
}

// Create stores a new swap. It fails if the hash lock was ever used.
func (b Bucket) Create(db swapvault.KVStore, hashLock []byte, s *Swap) error {
	used, err := b.IsUsed(db, hashLock)
	if err != nil {
		return err
	}
	if used {
		return errors.Wrapf(errors.ErrDuplicate, "hash lock %X", hashLock)
	}
	return b.Save(db, hashLock, s)
}

// Save overwrites the swap stored under hashLock.
func (Bucket) Save(db swapvault.KVStore, hashLock []byte, s *Swap) error {
	if err := s.Validate(); err != nil {
		return errors.Wrap(err, "invalid swap")
	}
	raw, err := proto.Marshal(s)
	if err != nil {
		return errors.Wrapf(errors.ErrHuman, "marshal swap: %s", err)
	}
	return db.Set(key(swapPrefix, hashLock), raw)
}

// Settle removes the swap and retires its hash lock.
func (Bucket) Settle(db swapvault.KVStore, hashLock []byte) error {
	if err := db.Delete(key(swapPrefix, hashLock)); err != nil {
		return errors.Wrap(err, "delete swap")
	}
	return db.Set(key(usedPrefix, hashLock), []byte{1})
}
