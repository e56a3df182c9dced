package sdk

import (
	"bytes"

	"github.com/mr-tron/base58"
	"github.com/pkg/errors"
)

// AddressSize is the width of every address on the ledger: player keys,
// channels and game records all share it.
const AddressSize = 32

// Address identifies an account. Its text form is base58.
type Address [AddressSize]byte

// ErrInvalidAddress is returned when a string does not decode to 32 bytes.
var ErrInvalidAddress = errors.New("invalid address")

// ParseAddress decodes a base58 address.
func ParseAddress(s string) (Address, error) {
	var a Address
	raw, err := base58.Decode(s)
	if err != nil {
		return a, errors.Wrapf(ErrInvalidAddress, "%q: %v", s, err)
	}
	if len(raw) != AddressSize {
		return a, errors.Wrapf(ErrInvalidAddress, "%q: want %d bytes, got %d", s, AddressSize, len(raw))
	}
	copy(a[:], raw)
	return a, nil
}

// MustParseAddress is ParseAddress for trusted constants.
func MustParseAddress(s string) Address {
	a, err := ParseAddress(s)
	if err != nil {
		panic(err)
	}
	return a
}

// AddressFromBytes copies b into an Address.
func AddressFromBytes(b []byte) (Address, error) {
	var a Address
	if len(b) != AddressSize {
		return a, errors.Wrapf(ErrInvalidAddress, "want %d bytes, got %d", AddressSize, len(b))
	}
	copy(a[:], b)
	return a, nil
}

func (a Address) String() string { return base58.Encode(a[:]) }

// IsZero reports whether a is the all-zero address.
func (a Address) IsZero() bool { return a == Address{} }

// Equal compares two addresses.
func (a Address) Equal(b Address) bool { return bytes.Equal(a[:], b[:]) }
