package app

import (
	"regexp"

	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/swapvault"
	"github.com/iov-one/swapvault/errors"
	"github.com/iov-one/swapvault/store"
	"github.com/iov-one/swapvault/x/fa12"
	"github.com/iov-one/swapvault/x/fa2"
	"github.com/iov-one/swapvault/x/vault"
)

// Kinds of the token contracts a ledger can originate. Vault kinds are
// defined by the vault adapters.
const (
	KindFA12 = "token/fa12"
	KindFA2  = "token/fa2"
)

var isName = regexp.MustCompile(`^[a-zA-Z0-9_\-]{1,64}$`).MatchString

var registryPrefix = []byte("registry:")

// ContractInfo is the registry record of an originated contract.
type ContractInfo struct {
	Kind string `protobuf:"bytes,1,opt,name=kind,proto3" json:"kind"`
	Name string `protobuf:"bytes,2,opt,name=name,proto3" json:"name"`
}

func (m *ContractInfo) Reset()         { *m = ContractInfo{} }
func (m *ContractInfo) String() string { return proto.CompactTextString(m) }
func (*ContractInfo) ProtoMessage()    {}

// Contract is an originated contract together with its implementation.
type Contract struct {
	ContractInfo
	Address swapvault.Address

	impl swapvault.Contract
}

// newContract returns the implementation of given contract kind.
func newContract(kind string) (swapvault.Contract, error) {
	switch kind {
	case KindFA12:
		return fa12.NewToken(), nil
	case KindFA2:
		return fa2.NewToken(), nil
	}
	adapter, err := vault.AdapterByKind(kind)
	if err != nil {
		return nil, err
	}
	return vault.NewVault(adapter), nil
}

// router keeps all originated contracts, both by address and by name.
type router struct {
	byAddr map[string]*Contract
	byName map[string]*Contract
}

func newRouter() *router {
	return &router{
		byAddr: make(map[string]*Contract),
		byName: make(map[string]*Contract),
	}
}

// clone returns a router with the same contracts. Contracts added to the
// clone are not visible in r.
func (r *router) clone() *router {
	c := newRouter()
	for k, v := range r.byAddr {
		c.byAddr[k] = v
	}
	for k, v := range r.byName {
		c.byName[k] = v
	}
	return c
}

// add registers a contract. Names are unique in the whole ledger.
func (r *router) add(info ContractInfo) (*Contract, error) {
	c, err := r.build(info)
	if err != nil {
		return nil, err
	}
	r.insert(c)
	return c, nil
}

// build returns the contract described by info, without registering it.
func (r *router) build(info ContractInfo) (*Contract, error) {
	if !isName(info.Name) {
		return nil, errors.Wrapf(errors.ErrInput, "invalid contract name %q", info.Name)
	}
	if _, ok := r.byName[info.Name]; ok {
		return nil, errors.Wrapf(errors.ErrDuplicate, "contract %q", info.Name)
	}
	impl, err := newContract(info.Kind)
	if err != nil {
		return nil, err
	}
	return &Contract{
		ContractInfo: info,
		Address:      swapvault.ContractAddress(info.Kind, info.Name),
		impl:         impl,
	}, nil
}

func (r *router) insert(c *Contract) {
	r.byAddr[string(c.Address)] = c
	r.byName[c.Name] = c
}

func (r *router) route(addr swapvault.Address) (*Contract, error) {
	c, ok := r.byAddr[string(addr)]
	if !ok {
		return nil, errors.Wrapf(errors.ErrNotFound, "no contract at %s", addr)
	}
	return c, nil
}

func (r *router) lookup(name string) (*Contract, error) {
	c, ok := r.byName[name]
	if !ok {
		return nil, errors.Wrapf(errors.ErrNotFound, "no contract named %q", name)
	}
	return c, nil
}

func saveContract(db swapvault.KVStore, c *Contract) error {
	raw, err := proto.Marshal(&c.ContractInfo)
	if err != nil {
		return errors.Wrapf(errors.ErrHuman, "marshal contract: %s", err)
	}
	return db.Set(append(append([]byte{}, registryPrefix...), c.Address...), raw)
}

// loadContracts registers every contract recorded in db.
func (r *router) loadContracts(db swapvault.ReadOnlyKVStore) error {
	iter, err := db.Iterator(registryPrefix, store.PrefixEnd(registryPrefix))
	if err != nil {
		return errors.Wrap(err, "registry iterator")
	}
	models, err := store.ReadAll(iter)
	if err != nil {
		return errors.Wrap(err, "read registry")
	}
	for _, m := range models {
		var info ContractInfo
		if err := proto.Unmarshal(m.Value, &info); err != nil {
			return errors.Wrapf(errors.ErrDatabase, "unmarshal contract: %s", err)
		}
		c, err := r.add(info)
		if err != nil {
			return errors.Wrapf(err, "load contract %q", info.Name)
		}
		if !c.Address.Equals(m.Key[len(registryPrefix):]) {
			return errors.Wrapf(errors.ErrDatabase, "contract %q stored under wrong address", info.Name)
		}
	}
	return nil
}
