package runtime

import (
	"encoding/binary"

	"okinoko-arcade/sdk"

	"github.com/dgraph-io/badger/v2"
	"github.com/holiman/uint256"
	"github.com/pkg/errors"
)

// Key prefixes inside badger.
const (
	statePrefix   = "s/"
	balancePrefix = "b/"
)

func stateKey(key string) []byte { return []byte(statePrefix + key) }

func balanceKey(addr sdk.Address) []byte {
	return append([]byte(balancePrefix), addr[:]...)
}

// getBalance returns 0 for accounts that were never written.
func getBalance(txn *badger.Txn, addr sdk.Address) (uint64, error) {
	item, err := txn.Get(balanceKey(addr))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, errors.Wrapf(err, "read balance %s", addr)
	}
	raw, err := item.ValueCopy(nil)
	if err != nil {
		return 0, errors.Wrapf(err, "copy balance %s", addr)
	}
	if len(raw) != 8 {
		return 0, errors.Errorf("balance %s is %d bytes", addr, len(raw))
	}
	return binary.BigEndian.Uint64(raw), nil
}

func setBalance(txn *badger.Txn, addr sdk.Address, v uint64) error {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], v)
	return errors.Wrapf(txn.Set(balanceKey(addr), buf[:]), "write balance %s", addr)
}

// addBalance credits amount to addr, refusing to wrap.
func addBalance(txn *badger.Txn, addr sdk.Address, amount uint64) error {
	bal, err := getBalance(txn, addr)
	if err != nil {
		return err
	}
	sum, overflow := new(uint256.Int).AddOverflow(uint256.NewInt(bal), uint256.NewInt(amount))
	if overflow || !sum.IsUint64() {
		return errors.Wrapf(sdk.ErrBalanceOverflow, "%s holds %d, adding %d", addr, bal, amount)
	}
	return setBalance(txn, addr, sum.Uint64())
}

// transfer moves amount between two accounts inside one transaction. Both
// sides land together or the caller's transaction is discarded.
func transfer(txn *badger.Txn, from, to sdk.Address, amount uint64) error {
	bal, err := getBalance(txn, from)
	if err != nil {
		return err
	}
	if bal < amount {
		return errors.Wrapf(sdk.ErrInsufficientFunds, "%s holds %d, needs %d", from, bal, amount)
	}
	if from == to || amount == 0 {
		return nil
	}
	if err := setBalance(txn, from, bal-amount); err != nil {
		return err
	}
	return addBalance(txn, to, amount)
}

// flow is one committed escrow movement, reported to metrics after commit.
type flow struct {
	debit  bool
	amount uint64
}

// txnChain is the sdk.Chain handed to one contract call. It lives exactly as
// long as the badger transaction under it.
type txnChain struct {
	txn      *badger.Txn
	env      sdk.Env
	readOnly bool
	events   []sdk.Event
	flows    []flow
}

var _ sdk.Chain = (*txnChain)(nil)

func (c *txnChain) Env() sdk.Env { return c.env }

func (c *txnChain) StateGet(key string) ([]byte, error) {
	item, err := c.txn.Get(stateKey(key))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, sdk.ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrapf(err, "get %s", key)
	}
	return item.ValueCopy(nil)
}

func (c *txnChain) StateSet(key string, value []byte) error {
	if c.readOnly {
		return sdk.ErrReadOnly
	}
	return errors.Wrapf(c.txn.Set(stateKey(key), value), "set %s", key)
}

func (c *txnChain) Escrow(custody sdk.Address) sdk.Escrow {
	return &escrow{chain: c, custody: custody}
}

func (c *txnChain) Emit(ev sdk.Event) { c.events = append(c.events, ev) }

// escrow is the custody account of one record, held as an ordinary ledger
// balance at the record's address.
type escrow struct {
	chain   *txnChain
	custody sdk.Address
}

func (e *escrow) Debit(party sdk.Address, amount uint64) error {
	if e.chain.readOnly {
		return sdk.ErrReadOnly
	}
	if err := transfer(e.chain.txn, party, e.custody, amount); err != nil {
		return err
	}
	e.chain.flows = append(e.chain.flows, flow{debit: true, amount: amount})
	return nil
}

func (e *escrow) Credit(party sdk.Address, amount uint64) error {
	if e.chain.readOnly {
		return sdk.ErrReadOnly
	}
	if err := transfer(e.chain.txn, e.custody, party, amount); err != nil {
		return err
	}
	e.chain.flows = append(e.chain.flows, flow{debit: false, amount: amount})
	return nil
}

func (e *escrow) Custody() (uint64, error) {
	return getBalance(e.chain.txn, e.custody)
}
