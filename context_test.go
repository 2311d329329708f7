package swapvault

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCallInfo(t *testing.T) {
	origin := NewAddress([]byte("origin"))
	proxy := NewAddress([]byte("proxy"))
	self := ContractAddress("vault/native", "main")

	direct := NewCallInfo(nil, origin, self, 10, 100, nil)
	assert.True(t, direct.Caller().Equals(origin))
	assert.False(t, direct.IsRelayed())
	assert.NotNil(t, direct.Logger())
	assert.EqualValues(t, 10, direct.Amount())

	relayed := NewCallInfo(proxy, origin, self, 0, 100, nil)
	assert.True(t, relayed.Caller().Equals(proxy))
	assert.True(t, relayed.Origin().Equals(origin))
	assert.True(t, relayed.IsRelayed())
}

func TestCallInfoIsExpired(t *testing.T) {
	call := NewCallInfo(nil, NewAddress([]byte("a")), nil, 0, 60, nil)

	assert.True(t, call.IsExpired(59))
	assert.True(t, call.IsExpired(60), "expiration is inclusive")
	assert.False(t, call.IsExpired(61))
}

func TestChainID(t *testing.T) {
	ctx := context.Background()
	assert.Equal(t, "", GetChainID(ctx))
	ctx = WithChainID(ctx, "test-chain")
	assert.Equal(t, "test-chain", GetChainID(ctx))
}
