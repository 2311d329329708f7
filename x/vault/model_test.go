package vault

import (
	"bytes"
	"encoding/hex"
	"strings"
	"testing"

	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/swapvault"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Swap records are stored in the protobuf wire format. The layout must not
// change, or stored swaps become unreadable.
func TestSwapWireFormat(t *testing.T) {
	swap := &Swap{
		Initiator:    swapvault.Address(bytes.Repeat([]byte{1}, 20)),
		Participant:  swapvault.Address(bytes.Repeat([]byte{2}, 20)),
		RefundTime:   60,
		TotalAmount:  100,
		PayoffAmount: 2,
		TokenID:      7,
	}
	want := "0a14" + strings.Repeat("01", 20) +
		"1214" + strings.Repeat("02", 20) +
		"183c" + "2064" + "2802" + "3807"

	raw, err := proto.Marshal(swap)
	require.NoError(t, err)
	assert.Equal(t, want, hex.EncodeToString(raw))

	var got Swap
	require.NoError(t, proto.Unmarshal(raw, &got))
	assert.Equal(t, swap, &got)
}
