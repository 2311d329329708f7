package app

import (
	"context"

	"github.com/iov-one/swapvault"
	"github.com/iov-one/swapvault/errors"
)

// safeCall turns a panic of the contract into an error, so that it aborts
// the transaction like any other failure.
func safeCall(ctx context.Context, c swapvault.Contract, call swapvault.CallInfo, db swapvault.KVStore, msg swapvault.Msg) (ops []swapvault.Operation, err error) {
	defer errors.Recover(&err)
	return c.Call(ctx, call, db, msg)
}
