package contract

import (
	"encoding/binary"

	"okinoko-arcade/sdk"

	"github.com/pkg/errors"
)

// ---------- Binary State Codec ----------

// codecVersion increments when storage encoding changes.
// Used to detect incompatible stored state.
const codecVersion uint8 = 1

// Encoded record sizes. Every optional value is stored as flag + full-width
// payload whether set or not, so a record's size is fixed at creation.
const (
	optAddrSize   = 1 + sdk.AddressSize
	optHashSize   = 1 + HashSize
	optChoiceSize = 1 + 1

	// version | channel | creator | joiner? | wager | commitment_creator | commitment_joiner? |
	// choice_creator? | nonce_creator? | choice_joiner? | nonce_joiner? | winner? | state | created_at | claimed
	CoinflipRecordSize = 1 + sdk.AddressSize + sdk.AddressSize + optAddrSize + 8 + HashSize + optHashSize +
		optChoiceSize + optHashSize + optChoiceSize + optHashSize + optAddrSize + 1 + 8 + 1

	// version | channel | creator | joiner? | wager | board | move_count | winner? | state | created_at | claim bits
	TicTacToeRecordSize = 1 + sdk.AddressSize + sdk.AddressSize + optAddrSize + 8 + 9 + 1 + optAddrSize + 1 + 8 + 1
)

// Claim bits packed into the last tic-tac-toe byte.
const (
	claimBitAll byte = 1 << 0
	claimBitX   byte = 1 << 1
	claimBitO   byte = 1 << 2
)

// wr appends fixed-width big-endian fields to a pre-sized buffer.
type wr struct {
	out []byte
}

func (w *wr) u8(x byte) { w.out = append(w.out, x) }

func (w *wr) u64(x uint64) {
	var tmp [8]byte
	binary.BigEndian.PutUint64(tmp[:], x)
	w.out = append(w.out, tmp[:]...)
}

func (w *wr) raw(b []byte) { w.out = append(w.out, b...) }

func (w *wr) flag(b bool) {
	if b {
		w.u8(1)
	} else {
		w.u8(0)
	}
}

// optAddr writes flag + 32 bytes; the payload is zeroed when absent.
func (w *wr) optAddr(a *sdk.Address) {
	var zero sdk.Address
	if a != nil {
		w.u8(1)
		w.raw(a[:])
		return
	}
	w.u8(0)
	w.raw(zero[:])
}

func (w *wr) optHash(h *Hash) {
	var zero Hash
	if h != nil {
		w.u8(1)
		w.raw(h[:])
		return
	}
	w.u8(0)
	w.raw(zero[:])
}

func (w *wr) optChoice(c *Choice) {
	if c != nil {
		w.u8(1)
		w.u8(byte(*c))
		return
	}
	w.u8(0)
	w.u8(0)
}

// rd is a binary reader over a byte slice. The first short read or bad
// flag sticks in err and every later read returns zero values.
type rd struct {
	b   []byte // raw buffer
	i   int    // current read index
	err error
}

func (r *rd) need(n int) bool {
	if r.err != nil {
		return false
	}
	if r.i+n > len(r.b) {
		r.err = errors.Wrapf(ErrCorruptRecord, "decode overflow at %d", r.i)
		return false
	}
	return true
}

func (r *rd) u8() byte {
	if !r.need(1) {
		return 0
	}
	v := r.b[r.i]
	r.i++
	return v
}

func (r *rd) u64() uint64 {
	if !r.need(8) {
		return 0
	}
	v := binary.BigEndian.Uint64(r.b[r.i : r.i+8])
	r.i += 8
	return v
}

func (r *rd) bytes(dst []byte) {
	if !r.need(len(dst)) {
		return
	}
	copy(dst, r.b[r.i:r.i+len(dst)])
	r.i += len(dst)
}

func (r *rd) flag() bool {
	f := r.u8()
	if f > 1 && r.err == nil {
		r.err = errors.Wrapf(ErrCorruptRecord, "bad option flag %d at %d", f, r.i-1)
	}
	return f == 1
}

func (r *rd) addr() sdk.Address {
	var a sdk.Address
	r.bytes(a[:])
	return a
}

func (r *rd) hash() Hash {
	var h Hash
	r.bytes(h[:])
	return h
}

func (r *rd) optAddr() *sdk.Address {
	set := r.flag()
	a := r.addr()
	if !set {
		return nil
	}
	return &a
}

func (r *rd) optHash() *Hash {
	set := r.flag()
	h := r.hash()
	if !set {
		return nil
	}
	return &h
}

func (r *rd) optChoice() *Choice {
	set := r.flag()
	c := Choice(r.u8())
	if !set {
		return nil
	}
	return &c
}

// end verifies that the reader consumed all bytes exactly.
func (r *rd) end() error {
	if r.err == nil && r.i != len(r.b) {
		r.err = errors.Wrapf(ErrCorruptRecord, "%d trailing bytes", len(r.b)-r.i)
	}
	return r.err
}

func (r *rd) version() {
	if v := r.u8(); r.err == nil && v != codecVersion {
		r.err = errors.Wrapf(ErrCorruptRecord, "unsupported version %d", v)
	}
}

// encodeCoinflip serializes a coinflip record. The address is the storage
// key and is not part of the payload.
func encodeCoinflip(g *CoinflipGame) []byte {
	w := &wr{out: make([]byte, 0, CoinflipRecordSize)}
	w.u8(codecVersion)
	w.raw(g.Channel[:])
	w.raw(g.Creator[:])
	w.optAddr(g.Joiner)
	w.u64(g.Wager)
	w.raw(g.CommitmentCreator[:])
	w.optHash(g.CommitmentJoiner)
	w.optChoice(g.ChoiceCreator)
	w.optHash(g.NonceCreator)
	w.optChoice(g.ChoiceJoiner)
	w.optHash(g.NonceJoiner)
	w.optAddr(g.Winner)
	w.u8(byte(g.State))
	w.u64(uint64(g.CreatedAt))
	w.flag(g.Claimed)
	return w.out
}

func decodeCoinflip(addr sdk.Address, b []byte) (*CoinflipGame, error) {
	if len(b) != CoinflipRecordSize {
		return nil, errors.Wrapf(ErrCorruptRecord, "coinflip record is %d bytes, want %d", len(b), CoinflipRecordSize)
	}
	r := &rd{b: b}
	r.version()
	g := &CoinflipGame{Address: addr}
	g.Channel = r.addr()
	g.Creator = r.addr()
	g.Joiner = r.optAddr()
	g.Wager = r.u64()
	g.CommitmentCreator = r.hash()
	g.CommitmentJoiner = r.optHash()
	g.ChoiceCreator = r.optChoice()
	g.NonceCreator = r.optHash()
	g.ChoiceJoiner = r.optChoice()
	g.NonceJoiner = r.optHash()
	g.Winner = r.optAddr()
	g.State = CoinflipState(r.u8())
	g.CreatedAt = int64(r.u64())
	g.Claimed = r.flag()
	if err := r.end(); err != nil {
		return nil, err
	}
	if !g.State.valid() {
		return nil, errors.Wrapf(ErrCorruptRecord, "coinflip state %d", g.State)
	}
	return g, nil
}

func encodeTicTacToe(g *TicTacToeGame) []byte {
	w := &wr{out: make([]byte, 0, TicTacToeRecordSize)}
	w.u8(codecVersion)
	w.raw(g.Channel[:])
	w.raw(g.Creator[:])
	w.optAddr(g.Joiner)
	w.u64(g.Wager)
	for _, c := range g.Board {
		w.u8(byte(c))
	}
	w.u8(g.MoveCount)
	w.optAddr(g.Winner)
	w.u8(byte(g.State))
	w.u64(uint64(g.CreatedAt))

	var bits byte
	if g.Claimed {
		bits |= claimBitAll
	}
	if g.ClaimedX {
		bits |= claimBitX
	}
	if g.ClaimedO {
		bits |= claimBitO
	}
	w.u8(bits)
	return w.out
}

func decodeTicTacToe(addr sdk.Address, b []byte) (*TicTacToeGame, error) {
	if len(b) != TicTacToeRecordSize {
		return nil, errors.Wrapf(ErrCorruptRecord, "tictactoe record is %d bytes, want %d", len(b), TicTacToeRecordSize)
	}
	r := &rd{b: b}
	r.version()
	g := &TicTacToeGame{Address: addr}
	g.Channel = r.addr()
	g.Creator = r.addr()
	g.Joiner = r.optAddr()
	g.Wager = r.u64()
	for i := range g.Board {
		c := Cell(r.u8())
		if c > O && r.err == nil {
			r.err = errors.Wrapf(ErrCorruptRecord, "cell %d holds %d", i, c)
		}
		g.Board[i] = c
	}
	g.MoveCount = r.u8()
	g.Winner = r.optAddr()
	g.State = TicTacToeState(r.u8())
	g.CreatedAt = int64(r.u64())
	bits := r.u8()
	if err := r.end(); err != nil {
		return nil, err
	}
	if !g.State.valid() || g.MoveCount > 9 {
		return nil, errors.Wrapf(ErrCorruptRecord, "tictactoe state %d, moves %d", g.State, g.MoveCount)
	}
	g.Claimed = bits&claimBitAll != 0
	g.ClaimedX = bits&claimBitX != 0
	g.ClaimedO = bits&claimBitO != 0
	return g, nil
}
