// Package common holds the small value types shared by every rule package:
// account addresses and hashes. The registry never touches the wire codec or
// the state trie directly, so these are plain fixed-size byte arrays rather
// than the richer RLP/trie-aware types an execution client would use.
package common

import (
	"encoding/hex"
	"fmt"
	"strings"
)

// AddressLength is the number of bytes in an Ethereum account address.
const AddressLength = 20

// HashLength is the number of bytes in a Keccak256 hash.
const HashLength = 32

// Address is a 20-byte account address.
type Address [AddressLength]byte

// Hash is a 32-byte hash.
type Hash [HashLength]byte

// HexToAddress parses a hex string (with or without 0x prefix) into an
// Address. Panics on malformed input; only ever called on compiled-in
// constants or already-validated asset data.
func HexToAddress(s string) Address {
	var a Address
	b := mustDecodeHex(s)
	copy(a[AddressLength-len(b):], b)
	return a
}

// HexToHash parses a hex string into a Hash.
func HexToHash(s string) Hash {
	var h Hash
	b := mustDecodeHex(s)
	copy(h[HashLength-len(b):], b)
	return h
}

func mustDecodeHex(s string) []byte {
	s = strings.TrimPrefix(s, "0x")
	s = strings.TrimPrefix(s, "0X")
	if len(s)%2 == 1 {
		s = "0" + s
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		panic(fmt.Sprintf("common: invalid hex string %q: %v", s, err))
	}
	return b
}

func (a Address) String() string {
	return "0x" + hex.EncodeToString(a[:])
}

func (h Hash) String() string {
	return "0x" + hex.EncodeToString(h[:])
}

// IsZero reports whether the address is the all-zero address.
func (a Address) IsZero() bool {
	return a == Address{}
}
