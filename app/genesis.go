package app

import (
	"encoding/json"
	"io/ioutil"

	"github.com/iov-one/swapvault"
	"github.com/iov-one/swapvault/errors"
	"github.com/iov-one/swapvault/x/fa12"
	"github.com/iov-one/swapvault/x/fa2"
)

// Genesis file format.
type Genesis struct {
	ChainID  string  `json:"chain_id"`
	AppState Options `json:"app_state"`
}

// LoadGenesis tries to load a given file into a Genesis struct.
func LoadGenesis(filePath string) (Genesis, error) {
	var gen Genesis

	bytes, err := ioutil.ReadFile(filePath)
	if err != nil {
		return gen, errors.Wrapf(errors.ErrInput, "loading genesis file: %s", err)
	}
	if err := json.Unmarshal(bytes, &gen); err != nil {
		return gen, errors.Wrapf(errors.ErrInput, "unmarshaling genesis file: %s", err)
	}
	return gen, nil
}

// Options are the app options. Each part of the initial state is stored
// under its own key.
type Options map[string]json.RawMessage

// ReadOptions reads the values stored under a given key, and parses the json
// into the given obj. Returns an error if it cannot parse. Noop and no error
// if key is missing.
func (o Options) ReadOptions(key string, obj interface{}) error {
	msg := o[key]
	if len(msg) == 0 {
		return nil
	}
	if err := json.Unmarshal([]byte(msg), obj); err != nil {
		return errors.Wrapf(errors.ErrInput, "parse %q: %s", key, err)
	}
	return nil
}

// GenesisWallet funds an account with native coins.
type GenesisWallet struct {
	Address swapvault.Address `json:"address"`
	Amount  uint64            `json:"amount"`
}

// GenesisHolder is a token balance.
type GenesisHolder struct {
	Address swapvault.Address `json:"address"`
	TokenID uint64            `json:"token_id,omitempty"`
	Amount  uint64            `json:"amount"`
}

// GenesisToken originates a token contract and mints the holder balances.
type GenesisToken struct {
	Name    string          `json:"name"`
	Holders []GenesisHolder `json:"holders"`
}

// GenesisContract originates a contract of any kind.
type GenesisContract struct {
	Kind string `json:"kind"`
	Name string `json:"name"`
}

// InitState loads the genesis into an empty ledger. Either the whole
// genesis is loaded or the ledger is left unchanged.
//
// Reads "wallets", "fa12", "fa2" and "contracts" from the app state.
func (l *Ledger) InitState(gen Genesis) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.chainID != "" {
		return errors.Wrapf(errors.ErrPrecondition, "ledger already initialized for %q", l.chainID)
	}
	if gen.ChainID == "" {
		return errors.Wrap(errors.ErrInput, "missing chain id")
	}

	db := l.store.deliver.CacheWrap()
	r := l.router.clone()
	if err := l.initState(db, r, gen); err != nil {
		db.Discard()
		return err
	}
	if err := db.Write(); err != nil {
		return errors.Wrap(err, "write genesis")
	}
	l.router = r
	l.chainID = gen.ChainID
	return nil
}

func (l *Ledger) initState(db swapvault.KVStore, r *router, gen Genesis) error {
	var wallets []GenesisWallet
	if err := gen.AppState.ReadOptions("wallets", &wallets); err != nil {
		return err
	}
	for i, w := range wallets {
		if err := l.bank.IssueCoins(db, w.Address, w.Amount); err != nil {
			return errors.Wrapf(err, "wallet #%d", i)
		}
	}

	var fa12Tokens []GenesisToken
	if err := gen.AppState.ReadOptions("fa12", &fa12Tokens); err != nil {
		return err
	}
	for _, t := range fa12Tokens {
		c, err := l.originate(db, r, KindFA12, t.Name)
		if err != nil {
			return errors.Wrapf(err, "token %q", t.Name)
		}
		token := c.impl.(fa12.Token)
		for _, h := range t.Holders {
			if h.TokenID != 0 {
				return errors.Wrapf(errors.ErrInput, "token %q has no token ids", t.Name)
			}
			if err := token.Mint(contractStore(db, c.Address), h.Address, h.Amount); err != nil {
				return errors.Wrapf(err, "token %q", t.Name)
			}
		}
	}

	var fa2Tokens []GenesisToken
	if err := gen.AppState.ReadOptions("fa2", &fa2Tokens); err != nil {
		return err
	}
	for _, t := range fa2Tokens {
		c, err := l.originate(db, r, KindFA2, t.Name)
		if err != nil {
			return errors.Wrapf(err, "token %q", t.Name)
		}
		token := c.impl.(fa2.Token)
		for _, h := range t.Holders {
			if err := token.Mint(contractStore(db, c.Address), h.Address, h.TokenID, h.Amount); err != nil {
				return errors.Wrapf(err, "token %q", t.Name)
			}
		}
	}

	var contracts []GenesisContract
	if err := gen.AppState.ReadOptions("contracts", &contracts); err != nil {
		return err
	}
	for _, c := range contracts {
		if _, err := l.originate(db, r, c.Kind, c.Name); err != nil {
			return errors.Wrapf(err, "contract %q", c.Name)
		}
	}

	return db.Set(chainIDKey, []byte(gen.ChainID))
}
