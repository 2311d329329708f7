package bank

import (
	"math"
	"testing"

	"github.com/iov-one/swapvault/errors"
	"github.com/iov-one/swapvault/store"
	"github.com/iov-one/swapvault/vaulttest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueCoins(t *testing.T) {
	db := store.MemStore()
	ctrl := NewController()
	alice := vaulttest.NewAddress()

	balance, err := ctrl.Balance(db, alice)
	require.NoError(t, err)
	assert.EqualValues(t, 0, balance)

	require.NoError(t, ctrl.IssueCoins(db, alice, 500))
	require.NoError(t, ctrl.IssueCoins(db, alice, 250))
	balance, err = ctrl.Balance(db, alice)
	require.NoError(t, err)
	assert.EqualValues(t, 750, balance)

	err = ctrl.IssueCoins(db, alice, math.MaxUint64)
	assert.True(t, errors.ErrOverflow.Is(err), "%+v", err)

	err = ctrl.IssueCoins(db, nil, 1)
	assert.True(t, errors.ErrInput.Is(err), "%+v", err)
}

func TestMoveCoins(t *testing.T) {
	alice := vaulttest.NewAddress()
	bob := vaulttest.NewAddress()

	cases := map[string]struct {
		amount    uint64
		wantErr   *errors.Error
		wantAlice uint64
		wantBob   uint64
	}{
		"move part": {
			amount:    400,
			wantAlice: 600,
			wantBob:   400,
		},
		"move everything": {
			amount:    1000,
			wantAlice: 0,
			wantBob:   1000,
		},
		"move nothing": {
			amount:    0,
			wantAlice: 1000,
			wantBob:   0,
		},
		"insufficient funds": {
			amount:    1001,
			wantErr:   errors.ErrInsufficientAmount,
			wantAlice: 1000,
			wantBob:   0,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			ctrl := NewController()
			require.NoError(t, ctrl.IssueCoins(db, alice, 1000))

			err := ctrl.MoveCoins(db, alice, bob, tc.amount)
			if !tc.wantErr.Is(err) {
				t.Fatalf("want %+v error, got %+v", tc.wantErr, err)
			}

			got, err := ctrl.Balance(db, alice)
			require.NoError(t, err)
			assert.Equal(t, tc.wantAlice, got)
			got, err = ctrl.Balance(db, bob)
			require.NoError(t, err)
			assert.Equal(t, tc.wantBob, got)
		})
	}
}
