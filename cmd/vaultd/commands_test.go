package main

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"io/ioutil"
	"path/filepath"
	"strings"
	"testing"

	"github.com/iov-one/swapvault"
	"github.com/iov-one/swapvault/vaulttest"
	"github.com/iov-one/swapvault/x/vault"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out, logs bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&logs)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestHashCmd(t *testing.T) {
	out, err := execute(t, "hash", "dca15ce0c01f61ab03139b4673f4bd902203dc3b898a89a5d35bad794e5cfd4f")
	require.NoError(t, err)
	assert.Contains(t, out, "hash_lock: 05bce5c12071fbca95b13d49cb5ef45323e0216d618bb4575c519b74be75e3da")

	out, err = execute(t, "hash")
	require.NoError(t, err)
	assert.Contains(t, out, "secret:")

	_, err = execute(t, "hash", "abcd")
	assert.Error(t, err)
}

func TestVersionCmd(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, swapvault.Version(), strings.TrimSpace(out))
}

func TestAddressCmd(t *testing.T) {
	out, err := execute(t, "address", "vault/native", "tez_vault")
	require.NoError(t, err)
	want := swapvault.ContractAddress("vault/native", "tez_vault")
	assert.Equal(t, want.String(), strings.TrimSpace(out))
}

func TestInitAndRun(t *testing.T) {
	var (
		home     = t.TempDir()
		alice    = vaulttest.NewAddress()
		bob      = vaulttest.NewAddress()
		secret   = vaulttest.NewSecret(t)
		hashLock = vault.HashSecret(secret)
		b64      = base64.StdEncoding.EncodeToString
	)

	genesis := fmt.Sprintf(`{
		"chain_id": "vaultd-test",
		"app_state": {
			"wallets": [{"address": %q, "amount": 500}],
			"contracts": [{"kind": "vault/native", "name": "tez_vault"}]
		}
	}`, alice)
	require.NoError(t, ioutil.WriteFile(filepath.Join(home, "genesis.json"), []byte(genesis), 0600))

	_, err := execute(t, "run", "--home", home, filepath.Join(home, "missing.json"))
	require.Error(t, err)

	out, err := execute(t, "init", "--home", home, "--log_level", "error")
	require.NoError(t, err)
	assert.Contains(t, out, "initialized vaultd-test at version 1")

	_, err = execute(t, "init", "--home", home)
	assert.Error(t, err, "genesis can be loaded once")

	scenario := fmt.Sprintf(`{"steps": [{
		"source": %q,
		"contract": "tez_vault",
		"amount": "500",
		"time": "0",
		"msg": {"type": "vault/initiate", "value": {
			"hash_lock": %q,
			"participant": %q,
			"refund_time": "3600",
			"total_amount": "500",
			"payoff_amount": "0"
		}}
	}]}`, alice, b64(hashLock), bob)
	scenarioPath := filepath.Join(home, "scenario.json")
	require.NoError(t, ioutil.WriteFile(scenarioPath, []byte(scenario), 0600))

	out, err = execute(t, "run", "--home", home, scenarioPath)
	require.NoError(t, err)
	assert.Contains(t, out, "step 0: ok")
	assert.Contains(t, out, "committed version 2")

	out, err = execute(t, "balance", "--home", home, alice.String())
	require.NoError(t, err)
	assert.Equal(t, "0", strings.TrimSpace(out))

	out, err = execute(t, "swap", "--home", home, "tez_vault", fmt.Sprintf("%x", hashLock))
	require.NoError(t, err)
	assert.Contains(t, out, "participant: "+bob.String())
	assert.Contains(t, out, "total:       500")
}

func TestInvalidLogLevel(t *testing.T) {
	_, err := execute(t, "init", "--home", t.TempDir(), "--log_level", "loud")
	assert.Error(t, err)
}
