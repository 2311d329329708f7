package swapvault

import (
	"encoding/json"
	"testing"

	"github.com/iov-one/swapvault/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddressTextForm(t *testing.T) {
	addr := NewAddress([]byte("alice"))
	require.NoError(t, addr.Validate())

	parsed, err := ParseAddress(addr.String())
	require.NoError(t, err)
	assert.True(t, addr.Equals(parsed))

	raw, err := json.Marshal(addr)
	require.NoError(t, err)
	var fromJSON Address
	require.NoError(t, json.Unmarshal(raw, &fromJSON))
	assert.True(t, addr.Equals(fromJSON))

	hexForm, err := ParseAddress("hex:0102030405060708090A0B0C0D0E0F1011121314")
	require.NoError(t, err)
	assert.Len(t, hexForm, AddressLength)
}

func TestParseAddressErrors(t *testing.T) {
	cases := map[string]string{
		"not bech32":   "not-an-address",
		"short hex":    "hex:0102",
		"invalid hex":  "hex:zz",
		"empty string": "",
	}
	for name, enc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ParseAddress(enc)
			if !errors.ErrInput.Is(err) {
				t.Fatalf("want input error, got %+v", err)
			}
		})
	}
}

func TestContractAddress(t *testing.T) {
	a := ContractAddress("vault/native", "main")
	b := ContractAddress("vault/native", "main")
	c := ContractAddress("vault/fa12", "main")

	assert.Len(t, a, AddressLength)
	assert.True(t, a.Equals(b))
	assert.False(t, a.Equals(c))
}
