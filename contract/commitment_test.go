package contract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommitGolden(t *testing.T) {
	// keccak256 of the empty input, the usual legacy-Keccak check value.
	empty := keccak256()
	assert.Equal(t, "c5d2460186f7233c927e7db2dcc703c0e500b653ca82273b7bfad8045d85a470", HashHex(empty))

	a := Commit(Heads, nonceOf(7))
	b := Commit(Heads, nonceOf(7))
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, Commit(Tails, nonceOf(7)))
}

func TestVerifyCommitmentAcceptsExactReveal(t *testing.T) {
	for _, nonce := range []Hash{nonceOf(0x00), nonceOf(0xff), nonceOf(0x5a)} {
		for _, choice := range []Choice{Heads, Tails} {
			c := Commit(choice, nonce)
			require.NoError(t, VerifyCommitment(c, choice, nonce))
		}
	}
}

func TestVerifyCommitmentRejectsSingleBitMutations(t *testing.T) {
	for _, nonce := range []Hash{nonceOf(0x00), nonceOf(0xff)} {
		c := Commit(Tails, nonce)

		require.ErrorIs(t, VerifyCommitment(c, Heads, nonce), ErrInvalidCommitment)

		for bit := 0; bit < HashSize*8; bit++ {
			n := nonce
			n[bit/8] ^= 1 << (bit % 8)
			require.ErrorIs(t, VerifyCommitment(c, Tails, n), ErrInvalidCommitment, "nonce bit %d", bit)

			mc := c
			mc[bit/8] ^= 1 << (bit % 8)
			require.ErrorIs(t, VerifyCommitment(mc, Tails, nonce), ErrInvalidCommitment, "commitment bit %d", bit)
		}
	}
}

func TestDeriveAddress(t *testing.T) {
	ch, alice := addr("channel"), addr("alice")

	assert.Equal(t, CoinflipAddress(ch, alice, 1), CoinflipAddress(ch, alice, 1))
	assert.NotEqual(t, CoinflipAddress(ch, alice, 1), CoinflipAddress(ch, alice, 2))
	assert.NotEqual(t, CoinflipAddress(ch, alice, 1), CoinflipAddress(ch, addr("bob"), 1))
	assert.NotEqual(t, CoinflipAddress(ch, alice, 1), CoinflipAddress(addr("other"), alice, 1))
	// variants never share an address
	assert.NotEqual(t, CoinflipAddress(ch, alice, 1), TicTacToeAddress(ch, alice, 1))
}

func TestErrorClassification(t *testing.T) {
	assert.Equal(t, KindIntegrity, KindOf(ErrInvalidCommitment))
	assert.Equal(t, KindValidation, KindOf(ErrInvalidWager))
	assert.Equal(t, KindState, KindOf(ErrAlreadyClaimed))
	assert.Equal(t, KindAuthorization, KindOf(ErrNotYourTurn))
	assert.Equal(t, KindArithmetic, KindOf(ErrOverflow))
	assert.Equal(t, "funds", KindOf(ErrInsufficientFunds).String())
	assert.Equal(t, "InsufficientFunds", CodeOf(ErrInsufficientFunds))
	assert.Equal(t, "NotGameWinner", CodeOf(ErrNotGameWinner))
	assert.Equal(t, Kind(0), KindOf(assert.AnError))
	assert.Equal(t, "", CodeOf(assert.AnError))
}
