package fa12

import (
	"context"

	"github.com/iov-one/swapvault"
	"github.com/iov-one/swapvault/errors"
)

// Token is a single-asset fungible token contract.
type Token struct{}

var _ swapvault.Contract = Token{}

// NewToken returns the token contract. Its state lives entirely in the store
// the host passes to every call.
func NewToken() Token {
	return Token{}
}

// Call dispatches the message to the matching entrypoint.
func (t Token) Call(ctx context.Context, call swapvault.CallInfo, db swapvault.KVStore, msg swapvault.Msg) ([]swapvault.Operation, error) {
	if call.Amount() != 0 {
		return nil, errors.Wrap(errors.ErrInput, "token entrypoints are not payable")
	}
	if err := msg.Validate(); err != nil {
		return nil, err
	}
	switch m := msg.(type) {
	case *TransferMsg:
		return nil, t.transfer(call, db, m)
	case *ApproveMsg:
		return nil, t.approve(call, db, m)
	default:
		return nil, errors.Wrapf(errors.ErrInput, "unknown entrypoint %q", msg.Path())
	}
}

func (t Token) transfer(call swapvault.CallInfo, db swapvault.KVStore, msg *TransferMsg) error {
	spender := call.Caller()
	if !spender.Equals(msg.From) {
		key := allowanceKey(msg.From, spender)
		allowed, err := loadAmount(db, key)
		if err != nil {
			return err
		}
		if allowed < msg.Value {
			return errors.Wrapf(errors.ErrUnauthorized, "not enough allowance: %d < %d", allowed, msg.Value)
		}
		if err := saveAmount(db, key, allowed-msg.Value); err != nil {
			return err
		}
	}

	balance, err := loadAmount(db, balanceKey(msg.From))
	if err != nil {
		return err
	}
	if balance < msg.Value {
		return errors.Wrapf(errors.ErrInsufficientAmount, "not enough balance: %d < %d", balance, msg.Value)
	}
	if err := saveAmount(db, balanceKey(msg.From), balance-msg.Value); err != nil {
		return err
	}
	return t.credit(db, msg.To, msg.Value)
}

func (t Token) approve(call swapvault.CallInfo, db swapvault.KVStore, msg *ApproveMsg) error {
	key := allowanceKey(call.Caller(), msg.Spender)
	current, err := loadAmount(db, key)
	if err != nil {
		return err
	}
	if current > 0 && msg.Value > 0 {
		return errors.Wrap(errors.ErrUnauthorized, "unsafe allowance change")
	}
	call.Logger().Debug("allowance set", "owner", call.Caller(), "spender", msg.Spender, "value", msg.Value)
	return saveAmount(db, key, msg.Value)
}

func (t Token) credit(db swapvault.KVStore, to swapvault.Address, value uint64) error {
	balance, err := loadAmount(db, balanceKey(to))
	if err != nil {
		return err
	}
	if balance+value < balance {
		return errors.Wrapf(errors.ErrOverflow, "balance of %s", to)
	}
	return saveAmount(db, balanceKey(to), balance+value)
}

// Mint creates new tokens for the owner. It is used when loading genesis and
// is not reachable through any entrypoint.
func (t Token) Mint(db swapvault.KVStore, owner swapvault.Address, value uint64) error {
	if err := owner.Validate(); err != nil {
		return errors.Wrap(err, "owner")
	}
	return t.credit(db, owner, value)
}

// Balance returns the amount of tokens held by the owner.
func (Token) Balance(db swapvault.ReadOnlyKVStore, owner swapvault.Address) (uint64, error) {
	return loadAmount(db, balanceKey(owner))
}

// Allowance returns how many tokens of the owner the spender may transfer.
func (Token) Allowance(db swapvault.ReadOnlyKVStore, owner, spender swapvault.Address) (uint64, error) {
	return loadAmount(db, allowanceKey(owner, spender))
}
