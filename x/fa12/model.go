package fa12

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/swapvault"
	"github.com/iov-one/swapvault/errors"
)

var (
	balancePrefix   = []byte("balance:")
	allowancePrefix = []byte("allowance:")
)

// Amount is the persisted form of both balances and allowances.
type Amount struct {
	Value uint64 `protobuf:"varint,1,opt,name=value,proto3" json:"value,omitempty"`
}

func (m *Amount) Reset()         { *m = Amount{} }
func (m *Amount) String() string { return proto.CompactTextString(m) }
func (*Amount) ProtoMessage()    {}

func balanceKey(owner swapvault.Address) []byte {
	return join(balancePrefix, owner)
}

func allowanceKey(owner, spender swapvault.Address) []byte {
	return join(allowancePrefix, owner, spender)
}

func join(parts ...[]byte) []byte {
	var res []byte
	for _, p := range parts {
		res = append(res, p...)
	}
	return res
}

func loadAmount(db swapvault.ReadOnlyKVStore, key []byte) (uint64, error) {
	raw, err := db.Get(key)
	if err != nil {
		return 0, errors.Wrap(err, "load")
	}
	if raw == nil {
		return 0, nil
	}
	var a Amount
	if err := proto.Unmarshal(raw, &a); err != nil {
		return 0, errors.Wrapf(errors.ErrDatabase, "unmarshal amount: %s", err)
	}
	return a.Value, nil
}

func saveAmount(db swapvault.KVStore, key []byte, value uint64) error {
	if value == 0 {
		return db.Delete(key)
	}
	raw, err := proto.Marshal(&Amount{Value: value})
	if err != nil {
		return errors.Wrapf(errors.ErrHuman, "marshal amount: %s", err)
	}
	return db.Set(key, raw)
}
