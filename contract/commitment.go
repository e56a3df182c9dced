package contract

import (
	"crypto/subtle"

	"golang.org/x/crypto/sha3"
)

// keccak256 hashes the concatenation of parts with legacy Keccak-256
// (the pre-NIST padding used by Solana's and Ethereum's keccak syscalls).
func keccak256(parts ...[]byte) Hash {
	h := sha3.NewLegacyKeccak256()
	for _, p := range parts {
		h.Write(p)
	}
	var out Hash
	h.Sum(out[:0])
	return out
}

// Commit returns the commitment a player publishes before revealing:
// keccak256(choice || nonce).
func Commit(choice Choice, nonce Hash) Hash {
	return keccak256([]byte{byte(choice)}, nonce[:])
}

// VerifyCommitment checks a reveal against a stored commitment. Only an exact
// 32-byte match passes; anything else is ErrInvalidCommitment.
func VerifyCommitment(commitment Hash, choice Choice, nonce Hash) error {
	computed := Commit(choice, nonce)
	if subtle.ConstantTimeCompare(computed[:], commitment[:]) != 1 {
		return ErrInvalidCommitment
	}
	return nil
}
