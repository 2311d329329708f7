package swapvault

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strings"

	"github.com/btcsuite/btcutil/bech32"
	"github.com/iov-one/swapvault/errors"
	"golang.org/x/crypto/blake2b"
)

const (
	// AddressLength is the length of all addresses.
	AddressLength = 20

	// AddressHRP is the human readable part of the bech32 address form.
	AddressHRP = "swap"
)

// Address identifies an account or a contract on the host ledger.
//
// It will be of size AddressLength.
type Address []byte

// NewAddress hashes and truncates into the proper size.
func NewAddress(data []byte) Address {
	if data == nil {
		return nil
	}
	h := sha256.Sum256(data)
	return Address(h[:AddressLength])
}

// ContractAddress derives the address of an originated contract from its
// kind and a name unique among contracts of that kind.
func ContractAddress(kind, name string) Address {
	h, err := blake2b.New(AddressLength, nil)
	if err != nil {
		// Only returned for invalid size or key.
		panic(err)
	}
	h.Write([]byte(kind))
	h.Write([]byte{'/'})
	h.Write([]byte(name))
	return Address(h.Sum(nil))
}

// Equals checks if two addresses are the same.
func (a Address) Equals(b Address) bool {
	return bytes.Equal(a, b)
}

// Clone returns a copy that does not share the underlying array.
func (a Address) Clone() Address {
	if a == nil {
		return nil
	}
	cpy := make(Address, len(a))
	copy(cpy, a)
	return cpy
}

// Validate returns an error if the address is not the proper size.
func (a Address) Validate() error {
	if len(a) == 0 {
		return errors.Wrap(errors.ErrInput, "empty address")
	}
	if len(a) != AddressLength {
		return errors.Wrapf(errors.ErrInput, "address length %d", len(a))
	}
	return nil
}

// String returns the bech32 representation.
func (a Address) String() string {
	if len(a) == 0 {
		return "(nil)"
	}
	conv, err := bech32.ConvertBits(a, 8, 5, true)
	if err != nil {
		return strings.ToUpper(hex.EncodeToString(a))
	}
	s, err := bech32.Encode(AddressHRP, conv)
	if err != nil {
		return strings.ToUpper(hex.EncodeToString(a))
	}
	return s
}

// ParseAddress decodes either the bech32 form or a hex form prefixed with
// "hex:".
func ParseAddress(enc string) (Address, error) {
	if raw := strings.TrimPrefix(enc, "hex:"); raw != enc {
		val, err := hex.DecodeString(raw)
		if err != nil {
			return nil, errors.Wrap(errors.ErrInput, "cannot decode hex")
		}
		addr := Address(val)
		return addr, addr.Validate()
	}

	hrp, payload, err := bech32.Decode(enc)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "bech32 decode: %s", err)
	}
	if hrp != AddressHRP {
		return nil, errors.Wrapf(errors.ErrInput, "unexpected prefix %q", hrp)
	}
	payload, err = bech32.ConvertBits(payload, 5, 8, false)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "convert bits: %s", err)
	}
	addr := Address(payload)
	return addr, addr.Validate()
}

// MarshalJSON provides the bech32 representation for JSON, to override the
// standard base64 []byte encoding.
func (a Address) MarshalJSON() ([]byte, error) {
	if len(a) == 0 {
		return json.Marshal("")
	}
	return json.Marshal(a.String())
}

func (a *Address) UnmarshalJSON(raw []byte) error {
	var enc string
	if err := json.Unmarshal(raw, &enc); err != nil {
		return errors.Wrap(errors.ErrInput, "cannot decode json")
	}
	// No value zero the address.
	if len(enc) == 0 {
		*a = nil
		return nil
	}
	addr, err := ParseAddress(enc)
	if err != nil {
		return err
	}
	*a = addr
	return nil
}
