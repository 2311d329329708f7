package vaulttest

import (
	"encoding/binary"
	"sync/atomic"
	"testing"

	"github.com/iov-one/swapvault"
)

var addressSeq uint64

// NewAddress returns a new, unique account address. Addresses are derived
// from a process wide counter so that they differ between calls.
func NewAddress() swapvault.Address {
	raw := make([]byte, 8)
	binary.BigEndian.PutUint64(raw, atomic.AddUint64(&addressSeq, 1))
	return swapvault.NewAddress(append([]byte("vaulttest/"), raw...))
}

// ParseAddress takes an address in a human readable format and returns its
// binary representation. It fails the test if the address is invalid.
func ParseAddress(t testing.TB, encodedAddress string) swapvault.Address {
	t.Helper()

	addr, err := swapvault.ParseAddress(encodedAddress)
	if err != nil {
		t.Fatalf("cannot parse %q address: %s", encodedAddress, err)
	}
	return addr
}
