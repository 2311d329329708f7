package swapvault

import (
	"context"

	"github.com/tendermint/tendermint/libs/log"
)

// DefaultLogger is used for all calls that have not set anything themselves.
var DefaultLogger = log.NewNopLogger()

// CallInfo carries the facts the host knows about the current contract
// invocation. It is read-only for the contract.
//
// The caller is the immediate invoker and may be a relaying contract or
// account. The origin is the account that signed the transaction. Both are
// the same when the call was not relayed.
type CallInfo struct {
	caller Address
	origin Address
	self   Address
	amount uint64
	now    UnixTime
	logger log.Logger
}

// NewCallInfo creates a CallInfo for a call to the contract at self.
func NewCallInfo(caller, origin, self Address, amount uint64, now UnixTime, logger log.Logger) CallInfo {
	if logger == nil {
		logger = DefaultLogger
	}
	if len(caller) == 0 {
		caller = origin
	}
	return CallInfo{
		caller: caller,
		origin: origin,
		self:   self,
		amount: amount,
		now:    now,
		logger: logger,
	}
}

// Caller returns the immediate invoker of the call.
func (c CallInfo) Caller() Address {
	return c.caller
}

// Origin returns the account that signed the transaction.
func (c CallInfo) Origin() Address {
	return c.origin
}

// Self returns the address of the called contract.
func (c CallInfo) Self() Address {
	return c.self
}

// Amount returns the native value attached to the call.
func (c CallInfo) Amount() uint64 {
	return c.amount
}

// Now returns the host time of the call.
func (c CallInfo) Now() UnixTime {
	return c.now
}

// IsRelayed returns true if the call was issued by someone other than the
// transaction signer.
func (c CallInfo) IsRelayed() bool {
	return !c.caller.Equals(c.origin)
}

func (c CallInfo) Logger() log.Logger {
	return c.logger
}

// WithLogInfo accepts keyvalue pairs, and returns another call info like
// this, after passing all the keyvals to the Logger.
func (c CallInfo) WithLogInfo(keyvals ...interface{}) CallInfo {
	c.logger = c.logger.With(keyvals...)
	return c
}

// IsExpired returns true if given time is in the past as compared to the
// "now" of the call. Expiration is inclusive, meaning that if current time is
// equal to the expiration time than this function returns true.
func (c CallInfo) IsExpired(t UnixTime) bool {
	return t <= c.now
}

type contextKey int

const (
	contextKeyChainID contextKey = iota
)

// WithChainID sets the chain id of the host ledger in the context.
func WithChainID(ctx context.Context, chainID string) context.Context {
	return context.WithValue(ctx, contextKeyChainID, chainID)
}

// GetChainID returns the chain id set in the context, or an empty string.
func GetChainID(ctx context.Context) string {
	val, _ := ctx.Value(contextKeyChainID).(string)
	return val
}
