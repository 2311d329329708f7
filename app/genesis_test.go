package app

import (
	"fmt"
	"io/ioutil"
	"path/filepath"
	"testing"

	"github.com/iov-one/swapvault/errors"
	"github.com/iov-one/swapvault/vaulttest"
	"github.com/iov-one/swapvault/x/vault"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadGenesis(t *testing.T) {
	alice := vaulttest.NewAddress()
	content := fmt.Sprintf(`{
		"chain_id": "local",
		"app_state": {
			"wallets": [{"address": %q, "amount": 42}],
			"fa12": [{"name": "tzbtc", "holders": [{"address": %q, "amount": 7}]}],
			"contracts": [{"kind": %q, "name": "vault"}]
		}
	}`, alice, alice, vault.FA12Adapter{}.Kind())

	path := filepath.Join(t.TempDir(), "genesis.json")
	require.NoError(t, ioutil.WriteFile(path, []byte(content), 0600))

	gen, err := LoadGenesis(path)
	require.NoError(t, err)
	assert.Equal(t, "local", gen.ChainID)

	l := newLedger(t)
	require.NoError(t, l.InitState(gen))
	assertBalance(t, l, alice, 42)

	token, err := l.Lookup("tzbtc")
	require.NoError(t, err)
	got, err := l.FA12Balance(token.Address, alice)
	require.NoError(t, err)
	assert.Equal(t, uint64(7), got)

	_, err = l.Lookup("vault")
	assert.NoError(t, err)
}

func TestInvalidGenesis(t *testing.T) {
	cases := map[string]struct {
		gen     Genesis
		wantErr *errors.Error
	}{
		"missing chain id": {
			gen:     Genesis{},
			wantErr: errors.ErrInput,
		},
		"malformed wallets": {
			gen:     Genesis{ChainID: "x", AppState: Options{"wallets": []byte(`{"address": 1}`)}},
			wantErr: errors.ErrInput,
		},
		"token id of a single-asset token": {
			gen: Genesis{ChainID: "x", AppState: Options{
				"fa12": []byte(fmt.Sprintf(`[{"name": "t", "holders": [{"address": %q, "token_id": 1, "amount": 1}]}]`, vaulttest.NewAddress())),
			}},
			wantErr: errors.ErrInput,
		},
		"unknown contract kind": {
			gen: Genesis{ChainID: "x", AppState: Options{
				"contracts": []byte(`[{"kind": "vault/gold", "name": "v"}]`),
			}},
			wantErr: errors.ErrInput,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			l := newLedger(t)
			err := l.InitState(tc.gen)
			if !tc.wantErr.Is(err) {
				t.Fatalf("want %q error, got %+v", tc.wantErr, err)
			}
		})
	}

	_, err := LoadGenesis(filepath.Join(t.TempDir(), "missing.json"))
	assert.True(t, errors.ErrInput.Is(err))
}
