package bank

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/swapvault"
	"github.com/iov-one/swapvault/errors"
)

var walletPrefix = []byte("wallet:")

// Controller is the functionality needed by the host to move native coins.
type Controller interface {
	Balance(db swapvault.ReadOnlyKVStore, addr swapvault.Address) (uint64, error)
	MoveCoins(db swapvault.KVStore, src, dest swapvault.Address, amount uint64) error
	IssueCoins(db swapvault.KVStore, dest swapvault.Address, amount uint64) error
}

// BaseController is the default Controller implementation.
type BaseController struct{}

var _ Controller = BaseController{}

// NewController returns the default coin controller.
func NewController() BaseController {
	return BaseController{}
}

// Balance returns the amount held by addr. Unknown addresses hold nothing.
func (BaseController) Balance(db swapvault.ReadOnlyKVStore, addr swapvault.Address) (uint64, error) {
	w, err := loadWallet(db, addr)
	if err != nil {
		return 0, err
	}
	return w.Amount, nil
}

// MoveCoins moves the given amount from src to dest.
// If src doesn't have sufficient coins, it fails.
func (BaseController) MoveCoins(db swapvault.KVStore, src, dest swapvault.Address, amount uint64) error {
	if err := src.Validate(); err != nil {
		return errors.Wrap(err, "source")
	}
	if err := dest.Validate(); err != nil {
		return errors.Wrap(err, "destination")
	}
	if amount == 0 || src.Equals(dest) {
		return nil
	}

	sender, err := loadWallet(db, src)
	if err != nil {
		return err
	}
	if sender.Amount < amount {
		return errors.Wrapf(errors.ErrInsufficientAmount, "%s holds %d, needs %d", src, sender.Amount, amount)
	}
	recipient, err := loadWallet(db, dest)
	if err != nil {
		return err
	}
	if recipient.Amount+amount < recipient.Amount {
		return errors.Wrapf(errors.ErrOverflow, "balance of %s", dest)
	}

	sender.Amount -= amount
	recipient.Amount += amount
	if err := saveWallet(db, src, sender); err != nil {
		return err
	}
	return saveWallet(db, dest, recipient)
}

// IssueCoins attempts to add the given amount of coins to the destination
// address. Fails if it overflows the wallet.
func (BaseController) IssueCoins(db swapvault.KVStore, dest swapvault.Address, amount uint64) error {
	if err := dest.Validate(); err != nil {
		return errors.Wrap(err, "destination")
	}
	recipient, err := loadWallet(db, dest)
	if err != nil {
		return err
	}
	if recipient.Amount+amount < recipient.Amount {
		return errors.Wrapf(errors.ErrOverflow, "balance of %s", dest)
	}
	recipient.Amount += amount
	return saveWallet(db, dest, recipient)
}

func walletKey(addr swapvault.Address) []byte {
	return append(append([]byte{}, walletPrefix...), addr...)
}

func loadWallet(db swapvault.ReadOnlyKVStore, addr swapvault.Address) (*Wallet, error) {
	raw, err := db.Get(walletKey(addr))
	if err != nil {
		return nil, errors.Wrap(err, "load wallet")
	}
	var w Wallet
	if raw == nil {
		return &w, nil
	}
	if err := proto.Unmarshal(raw, &w); err != nil {
		return nil, errors.Wrapf(errors.ErrDatabase, "unmarshal wallet: %s", err)
	}
	return &w, nil
}

func saveWallet(db swapvault.KVStore, addr swapvault.Address, w *Wallet) error {
	if w.Amount == 0 {
		return db.Delete(walletKey(addr))
	}
	raw, err := proto.Marshal(w)
	if err != nil {
		return errors.Wrapf(errors.ErrHuman, "marshal wallet: %s", err)
	}
	return db.Set(walletKey(addr), raw)
}
