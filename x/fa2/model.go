package fa2

import (
	"encoding/binary"

	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/swapvault"
	"github.com/iov-one/swapvault/errors"
)

var (
	ledgerPrefix   = []byte("ledger:")
	operatorPrefix = []byte("operator:")
)

// Balance is the persisted amount of one token id held by one owner.
type Balance struct {
	Amount uint64 `protobuf:"varint,1,opt,name=amount,proto3" json:"amount,omitempty"`
}

func (m *Balance) Reset()         { *m = Balance{} }
func (m *Balance) String() string { return proto.CompactTextString(m) }
func (*Balance) ProtoMessage()    {}

func tokenKey(id uint64) []byte {
	raw := make([]byte, 8)
	binary.BigEndian.PutUint64(raw, id)
	return raw
}

func ledgerKey(owner swapvault.Address, id uint64) []byte {
	key := append(append([]byte{}, ledgerPrefix...), owner...)
	return append(key, tokenKey(id)...)
}

func operatorKey(owner, operator swapvault.Address, id uint64) []byte {
	key := append(append([]byte{}, operatorPrefix...), owner...)
	key = append(key, operator...)
	return append(key, tokenKey(id)...)
}

func loadBalance(db swapvault.ReadOnlyKVStore, owner swapvault.Address, id uint64) (uint64, error) {
	raw, err := db.Get(ledgerKey(owner, id))
	if err != nil {
		return 0, errors.Wrap(err, "load balance")
	}
	if raw == nil {
		return 0, nil
	}
	var b Balance
	if err := proto.Unmarshal(raw, &b); err != nil {
		return 0, errors.Wrapf(errors.ErrDatabase, "unmarshal balance: %s", err)
	}
	return b.Amount, nil
}

func saveBalance(db swapvault.KVStore, owner swapvault.Address, id uint64, amount uint64) error {
	if amount == 0 {
		return db.Delete(ledgerKey(owner, id))
	}
	raw, err := proto.Marshal(&Balance{Amount: amount})
	if err != nil {
		return errors.Wrapf(errors.ErrHuman, "marshal balance: %s", err)
	}
	return db.Set(ledgerKey(owner, id), raw)
}
