package app

import (
	"context"
	"encoding/binary"
	"sync"

	"github.com/iov-one/swapvault"
	"github.com/iov-one/swapvault/errors"
	"github.com/iov-one/swapvault/store"
	"github.com/iov-one/swapvault/x/bank"
	"github.com/tendermint/tendermint/libs/log"
)

// MaxOperations limits the number of operations a single transaction can
// apply, including the operations of nested calls.
const MaxOperations = 1000

var (
	contractPrefix = []byte("contract:")
	chainIDKey     = []byte("_chain_id")
	lastTimeKey    = []byte("_last_time")
)

// Tx is a single contract call submitted to the ledger.
type Tx struct {
	// Source signed the transaction.
	Source swapvault.Address
	// Sender is the relaying account, if the call was relayed. Attached
	// coins are paid by the sender of the call.
	Sender swapvault.Address
	// Destination is the address of the called contract.
	Destination swapvault.Address
	// Amount of native coins attached to the call.
	Amount uint64
	Msg    swapvault.Msg
	Time   swapvault.UnixTime
}

// Validate performs stateless checks of the transaction.
func (tx Tx) Validate() error {
	if err := tx.Source.Validate(); err != nil {
		return errors.Wrap(err, "source")
	}
	if len(tx.Sender) != 0 {
		if err := tx.Sender.Validate(); err != nil {
			return errors.Wrap(err, "sender")
		}
	}
	if err := tx.Destination.Validate(); err != nil {
		return errors.Wrap(err, "destination")
	}
	if tx.Msg == nil {
		return errors.Wrap(errors.ErrInput, "missing message")
	}
	return tx.Time.Validate()
}

// Ledger hosts contracts and executes transactions against them.
type Ledger struct {
	mu sync.Mutex

	logger  log.Logger
	chainID string
	store   *CommitStore
	bank    bank.Controller
	router  *router

	// now is the time of the last executed transaction.
	now swapvault.UnixTime
}

// NewLedger loads the ledger state from kv. All contracts found in the
// store are registered.
func NewLedger(kv swapvault.CommitKVStore, logger log.Logger) (*Ledger, error) {
	if logger == nil {
		logger = log.NewNopLogger()
	}
	cs, err := NewCommitStore(kv)
	if err != nil {
		return nil, err
	}
	l := &Ledger{
		logger: logger.With("module", "ledger"),
		store:  cs,
		bank:   bank.NewController(),
		router: newRouter(),
	}
	if err := l.router.loadContracts(cs.deliver); err != nil {
		return nil, err
	}
	raw, err := cs.deliver.Get(chainIDKey)
	if err != nil {
		return nil, errors.Wrap(err, "load chain id")
	}
	l.chainID = string(raw)

	if l.now, err = loadLastTime(cs.deliver); err != nil {
		return nil, err
	}
	return l, nil
}

// loadLastTime returns the time of the last executed transaction, or zero
// if none was executed yet.
func loadLastTime(db swapvault.ReadOnlyKVStore) (swapvault.UnixTime, error) {
	raw, err := db.Get(lastTimeKey)
	if err != nil {
		return 0, errors.Wrap(err, "load last time")
	}
	if raw == nil {
		return 0, nil
	}
	if len(raw) != 8 {
		return 0, errors.Wrapf(errors.ErrDatabase, "last time of %d bytes", len(raw))
	}
	return swapvault.UnixTime(binary.BigEndian.Uint64(raw)), nil
}

func saveLastTime(db swapvault.KVStore, t swapvault.UnixTime) error {
	raw := make([]byte, 8)
	binary.BigEndian.PutUint64(raw, uint64(t))
	return db.Set(lastTimeKey, raw)
}

// ChainID returns the chain id set by the genesis, if any.
func (l *Ledger) ChainID() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.chainID
}

// Originate deploys a new contract of given kind. The address is derived
// from the kind and the name, so the same name always gives the same
// address.
func (l *Ledger) Originate(kind, name string) (swapvault.Address, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	c, err := l.originate(l.store.deliver, l.router, kind, name)
	if err != nil {
		return nil, err
	}
	return c.Address, nil
}

// originate saves the contract in db and only then registers it in r.
func (l *Ledger) originate(db swapvault.KVStore, r *router, kind, name string) (*Contract, error) {
	c, err := r.build(ContractInfo{Kind: kind, Name: name})
	if err != nil {
		return nil, err
	}
	if err := saveContract(db, c); err != nil {
		return nil, err
	}
	r.insert(c)
	l.logger.Info("contract originated", "kind", kind, "name", name, "address", c.Address)
	return c, nil
}

// Contract returns the contract registered at given address.
func (l *Ledger) Contract(addr swapvault.Address) (*Contract, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.router.route(addr)
}

// Lookup returns the contract originated with given name.
func (l *Ledger) Lookup(name string) (*Contract, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.router.lookup(name)
}

// Execute runs a transaction. Either the whole transaction succeeds and all
// of its effects are applied or it fails and nothing changes.
func (l *Ledger) Execute(ctx context.Context, tx Tx) (*Receipt, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := tx.Validate(); err != nil {
		return nil, err
	}
	if tx.Time < l.now {
		return nil, errors.Wrapf(errors.ErrInput, "time %s is before %s", tx.Time, l.now)
	}

	ctx = swapvault.WithChainID(ctx, l.chainID)
	db := l.store.deliver.CacheWrap()
	receipt, err := l.execute(ctx, db, tx)
	if err != nil {
		db.Discard()
		l.logger.Info("transaction failed",
			"destination", tx.Destination,
			"path", tx.Msg.Path(),
			"err", err)
		return nil, err
	}
	if err := saveLastTime(db, tx.Time); err != nil {
		db.Discard()
		return nil, errors.Wrap(err, "save time")
	}
	if err := db.Write(); err != nil {
		return nil, errors.Wrap(err, "write transaction")
	}
	l.now = tx.Time
	l.logger.Debug("transaction executed",
		"destination", tx.Destination,
		"path", tx.Msg.Path(),
		"operations", len(receipt.Operations))
	return receipt, nil
}

type pending struct {
	source swapvault.Address
	op     swapvault.Operation
}

func (l *Ledger) execute(ctx context.Context, db swapvault.KVStore, tx Tx) (*Receipt, error) {
	caller := tx.Sender
	if len(caller) == 0 {
		caller = tx.Source
	}
	ops, err := l.call(ctx, db, caller, tx.Source, tx.Destination, tx.Amount, tx.Msg, tx.Time)
	if err != nil {
		return nil, err
	}

	queue := enqueue(nil, tx.Destination, ops)
	receipt := &Receipt{}
	for len(queue) > 0 {
		next := queue[0]
		queue = queue[1:]

		if len(receipt.Operations) == MaxOperations {
			return nil, errors.Wrapf(errors.ErrInput, "more than %d operations", MaxOperations)
		}
		receipt.Operations = append(receipt.Operations, AppliedOperation{
			Source:    next.source,
			Operation: next.op,
		})

		switch op := next.op.(type) {
		case swapvault.Payment:
			if err := l.bank.MoveCoins(db, next.source, op.To, op.Amount); err != nil {
				return nil, errors.Wrapf(err, "payment from %s", next.source)
			}
			l.logger.Debug("payment applied", "from", next.source, "to", op.To, "amount", op.Amount)
		case swapvault.Invocation:
			res, err := l.call(ctx, db, next.source, tx.Source, op.Contract, 0, op.Msg, tx.Time)
			if err != nil {
				return nil, errors.Wrapf(err, "call %s from %s", op.Msg.Path(), next.source)
			}
			queue = enqueue(queue, op.Contract, res)
		default:
			return nil, errors.Wrapf(errors.ErrHuman, "unknown operation %T", next.op)
		}
	}
	return receipt, nil
}

func enqueue(queue []pending, source swapvault.Address, ops []swapvault.Operation) []pending {
	for _, op := range ops {
		queue = append(queue, pending{source: source, op: op})
	}
	return queue
}

// call moves the attached coins to the contract and runs it.
func (l *Ledger) call(
	ctx context.Context,
	db swapvault.KVStore,
	caller, origin, dest swapvault.Address,
	amount uint64,
	msg swapvault.Msg,
	now swapvault.UnixTime,
) ([]swapvault.Operation, error) {
	c, err := l.router.route(dest)
	if err != nil {
		return nil, err
	}
	if err := l.bank.MoveCoins(db, caller, dest, amount); err != nil {
		return nil, errors.Wrap(err, "attached amount")
	}
	info := swapvault.NewCallInfo(caller, origin, dest, amount, now,
		l.logger.With("contract", c.Name))
	return safeCall(ctx, c.impl, info, contractStore(db, dest), msg)
}

func contractStore(db swapvault.KVStore, addr swapvault.Address) store.PrefixStore {
	prefix := make([]byte, 0, len(contractPrefix)+len(addr))
	prefix = append(prefix, contractPrefix...)
	prefix = append(prefix, addr...)
	return store.NewPrefixStore(prefix, db)
}

// Commit persists all executed transactions.
func (l *Ledger) Commit() (swapvault.CommitID, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	id, err := l.store.Commit()
	if err != nil {
		return id, err
	}
	l.logger.Info("committed", "version", id.Version, "hash", hexHash(id.Hash))
	return id, nil
}

// CommitInfo returns the last committed version.
func (l *Ledger) CommitInfo() swapvault.CommitID {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.store.CommitInfo()
}
