package fa2

import (
	"context"

	"github.com/iov-one/swapvault"
	"github.com/iov-one/swapvault/errors"
)

// Token is a multi-asset token contract.
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
	case *UpdateOperatorsMsg:
		return nil, t.updateOperators(call, db, m)
	default:
		return nil, errors.Wrapf(errors.ErrInput, "unknown entrypoint %q", msg.Path())
	}
}

func (t Token) transfer(call swapvault.CallInfo, db swapvault.KVStore, msg *TransferMsg) error {
	for _, batch := range msg.Batches {
		for _, tx := range batch.Txs {
			if err := t.checkOperator(call, db, batch.From, tx.TokenID); err != nil {
				return err
			}
			if err := t.move(db, batch.From, tx.To, tx.TokenID, tx.Amount); err != nil {
				return err
			}
		}
	}
	return nil
}

func (t Token) checkOperator(call swapvault.CallInfo, db swapvault.KVStore, owner swapvault.Address, id uint64) error {
	if call.Caller().Equals(owner) {
		return nil
	}
	ok, err := db.Has(operatorKey(owner, call.Caller(), id))
	if err != nil {
		return errors.Wrap(err, "load operator")
	}
	if !ok {
		return errors.Wrapf(errors.ErrUnauthorized, "%s is not an operator of token %d", call.Caller(), id)
	}
	return nil
}

func (t Token) move(db swapvault.KVStore, from, to swapvault.Address, id uint64, amount uint64) error {
	balance, err := loadBalance(db, from, id)
	if err != nil {
		return err
	}
	if balance < amount {
		return errors.Wrapf(errors.ErrInsufficientAmount, "token %d: %d < %d", id, balance, amount)
	}
	if err := saveBalance(db, from, id, balance-amount); err != nil {
		return err
	}
	return t.credit(db, to, id, amount)
}

func (t Token) credit(db swapvault.KVStore, to swapvault.Address, id uint64, amount uint64) error {
	balance, err := loadBalance(db, to, id)
	if err != nil {
		return err
	}
	if balance+amount < balance {
		return errors.Wrapf(errors.ErrOverflow, "token %d balance of %s", id, to)
	}
	return saveBalance(db, to, id, balance+amount)
}

func (t Token) updateOperators(call swapvault.CallInfo, db swapvault.KVStore, msg *UpdateOperatorsMsg) error {
	for _, u := range msg.Updates {
		if !u.Owner.Equals(call.Caller()) {
			return errors.Wrap(errors.ErrUnauthorized, "only the owner can update operators")
		}
		key := operatorKey(u.Owner, u.Operator, u.TokenID)
		var err error
		if u.Add {
			err = db.Set(key, []byte{1})
		} else {
			err = db.Delete(key)
		}
		if err != nil {
			return errors.Wrap(err, "save operator")
		}
	}
	return nil
}

// Mint creates new tokens of the given id for the owner. It is used when
// loading genesis and is not reachable through any entrypoint.
func (t Token) Mint(db swapvault.KVStore, owner swapvault.Address, id uint64, amount uint64) error {
	if err := owner.Validate(); err != nil {
		return errors.Wrap(err, "owner")
	}
	return t.credit(db, owner, id, amount)
}

// Balance returns the amount of tokens of given id held by the owner.
func (Token) Balance(db swapvault.ReadOnlyKVStore, owner swapvault.Address, id uint64) (uint64, error) {
	return loadBalance(db, owner, id)
}

// IsOperator returns true if the operator may transfer the owner tokens of
// given id.
func (Token) IsOperator(db swapvault.ReadOnlyKVStore, owner, operator swapvault.Address, id uint64) (bool, error) {
	return db.Has(operatorKey(owner, operator, id))
}
