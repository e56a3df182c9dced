// Package sdk is the surface a contract call sees of the ledger it runs on.
package sdk

import "errors"

// Ledger errors surfaced by Escrow implementations.
var (
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrBalanceOverflow   = errors.New("balance overflow")
	ErrNotFound          = errors.New("state key not found")
	ErrReadOnly          = errors.New("state is read-only in a query")
)

// Env describes the call currently executing.
type Env struct {
	Sender    Address // authenticated caller
	TxID      string
	Timestamp int64 // block time, unix seconds
}

// Event is a structured record of something a contract did.
// Each event has a type and a set of key/value attributes.
type Event struct {
	Type       string            `json:"type"`
	Attributes map[string]string `json:"attributes"`
}

// Escrow moves value between a party and the custody account of one record.
// Implementations must apply both sides of a move together or not at all.
type Escrow interface {
	// Debit moves amount from party's balance into custody.
	Debit(party Address, amount uint64) error
	// Credit moves amount from custody to party's balance.
	Credit(party Address, amount uint64) error
	// Custody returns the value currently held.
	Custody() (uint64, error)
}

// Chain is everything a contract call can see of the ledger. One Chain value
// is scoped to exactly one call; nothing it writes survives if the call fails.
type Chain interface {
	Env() Env
	// StateGet returns ErrNotFound for a missing key.
	StateGet(key string) ([]byte, error)
	StateSet(key string, value []byte) error
	// Escrow returns the custody handle for the record at custody.
	Escrow(custody Address) Escrow
	Emit(ev Event)
}
