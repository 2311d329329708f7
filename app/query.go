package app

import (
	"encoding/hex"

	"github.com/iov-one/swapvault"
	"github.com/iov-one/swapvault/errors"
	"github.com/iov-one/swapvault/x/fa12"
	"github.com/iov-one/swapvault/x/fa2"
	"github.com/iov-one/swapvault/x/vault"
)

// Queries read the current state, including transactions that are not
// committed yet.

// Balance returns the native coins held by addr.
func (l *Ledger) Balance(addr swapvault.Address) (uint64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.bank.Balance(l.store.deliver, addr)
}

// Swap returns the active swap of a vault.
func (l *Ledger) Swap(vaultAddr swapvault.Address, hashLock []byte) (*vault.Swap, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	c, err := l.router.route(vaultAddr)
	if err != nil {
		return nil, err
	}
	v, ok := c.impl.(vault.Vault)
	if !ok {
		return nil, errors.Wrapf(errors.ErrInput, "%q is not a vault", c.Name)
	}
	return v.Swap(contractStore(l.store.deliver, vaultAddr), hashLock)
}

// FA12Balance returns the single-asset token balance of owner.
func (l *Ledger) FA12Balance(token, owner swapvault.Address) (uint64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	c, err := l.router.route(token)
	if err != nil {
		return 0, err
	}
	t, ok := c.impl.(fa12.Token)
	if !ok {
		return 0, errors.Wrapf(errors.ErrInput, "%q is not a single-asset token", c.Name)
	}
	return t.Balance(contractStore(l.store.deliver, token), owner)
}

// FA2Balance returns the multi-asset token balance of owner.
func (l *Ledger) FA2Balance(token, owner swapvault.Address, tokenID uint64) (uint64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	c, err := l.router.route(token)
	if err != nil {
		return 0, err
	}
	t, ok := c.impl.(fa2.Token)
	if !ok {
		return 0, errors.Wrapf(errors.ErrInput, "%q is not a multi-asset token", c.Name)
	}
	return t.Balance(contractStore(l.store.deliver, token), owner, tokenID)
}

func hexHash(h []byte) string {
	return hex.EncodeToString(h)
}
