package contract

import (
	"testing"

	"okinoko-arcade/sdk"

	"github.com/holiman/uint256"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

// fake chain for testing

type FakeChain struct {
	state    map[string][]byte
	balances map[sdk.Address]uint64
	env      sdk.Env
	events   []sdk.Event
}

func NewFakeChain(sender sdk.Address, txid string) *FakeChain {
	return &FakeChain{
		state:    make(map[string][]byte),
		balances: make(map[sdk.Address]uint64),
		env:      sdk.Env{Sender: sender, TxID: txid, Timestamp: 1_700_000_000},
	}
}

func (f *FakeChain) Env() sdk.Env { return f.env }

func (f *FakeChain) StateGet(key string) ([]byte, error) {
	v, ok := f.state[key]
	if !ok {
		return nil, sdk.ErrNotFound
	}
	return append([]byte(nil), v...), nil
}

func (f *FakeChain) StateSet(key string, value []byte) error {
	f.state[key] = append([]byte(nil), value...)
	return nil
}

func (f *FakeChain) Escrow(custody sdk.Address) sdk.Escrow {
	return fakeEscrow{f: f, custody: custody}
}

func (f *FakeChain) Emit(ev sdk.Event) { f.events = append(f.events, ev) }

// as switches the sender for the next call.
func (f *FakeChain) as(sender sdk.Address) *FakeChain {
	f.env.Sender = sender
	return f
}

func (f *FakeChain) fund(addr sdk.Address, amount uint64) { f.balances[addr] += amount }

// total sums every balance, custody included.
func (f *FakeChain) total() uint64 {
	var t uint64
	for _, b := range f.balances {
		t += b
	}
	return t
}

// snapshot copies state and balances for before/after comparisons.
func (f *FakeChain) snapshot() (map[string][]byte, map[sdk.Address]uint64) {
	st := make(map[string][]byte, len(f.state))
	for k, v := range f.state {
		st[k] = append([]byte(nil), v...)
	}
	bal := make(map[sdk.Address]uint64, len(f.balances))
	for k, v := range f.balances {
		bal[k] = v
	}
	return st, bal
}

// requireUnchanged fails when fn altered state or balances.
func requireUnchanged(t *testing.T, f *FakeChain, fn func() error) error {
	t.Helper()
	st, bal := f.snapshot()
	evs := len(f.events)
	err := fn()
	st2, bal2 := f.snapshot()
	require.Equal(t, st, st2, "state changed")
	require.Equal(t, bal, bal2, "balances changed")
	require.Len(t, f.events, evs, "events emitted")
	return err
}

type fakeEscrow struct {
	f       *FakeChain
	custody sdk.Address
}

func (e fakeEscrow) move(from, to sdk.Address, amount uint64) error {
	if e.f.balances[from] < amount {
		return errors.Wrapf(sdk.ErrInsufficientFunds, "%s", from)
	}
	if _, overflow := new(uint256.Int).AddOverflow(uint256.NewInt(e.f.balances[to]), uint256.NewInt(amount)); overflow {
		return sdk.ErrBalanceOverflow
	}
	e.f.balances[from] -= amount
	e.f.balances[to] += amount
	return nil
}

func (e fakeEscrow) Debit(party sdk.Address, amount uint64) error {
	return e.move(party, e.custody, amount)
}

func (e fakeEscrow) Credit(party sdk.Address, amount uint64) error {
	return e.move(e.custody, party, amount)
}

func (e fakeEscrow) Custody() (uint64, error) { return e.f.balances[e.custody], nil }

// addr builds a deterministic test address from a label.
func addr(label string) sdk.Address {
	var a sdk.Address
	copy(a[:], label)
	return a
}

func nonceOf(b byte) Hash {
	var h Hash
	for i := range h {
		h[i] = b
	}
	return h
}

func eventTypes(f *FakeChain) []string {
	out := make([]string, len(f.events))
	for i, ev := range f.events {
		out[i] = ev.Type
	}
	return out
}
