package contract

import (
	"testing"

	"okinoko-arcade/sdk"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// startTicTacToe returns a joined game with alice as X and bob as O.
func startTicTacToe(t *testing.T, f *FakeChain) *TicTacToeGame {
	t.Helper()
	g, err := CreateTicTacToe(f.as(alice), CreateTicTacToeArgs{Channel: channel, Wager: wager, Nonce: 7})
	require.NoError(t, err)
	g, err = JoinTicTacToe(f.as(bob), g.Address)
	require.NoError(t, err)
	return g
}

// play alternates X and O starting with X and returns the last state.
func play(t *testing.T, f *FakeChain, game sdk.Address, positions ...uint8) *TicTacToeGame {
	t.Helper()
	var g *TicTacToeGame
	for i, pos := range positions {
		who := alice
		if i%2 == 1 {
			who = bob
		}
		var err error
		g, err = MakeMove(f.as(who), game, pos)
		require.NoError(t, err, "move %d at %d", i, pos)
	}
	return g
}

// filler picks n cells outside line that hold no winning line of their own.
func filler(line [3]int, n int) []int {
	in := map[int]bool{line[0]: true, line[1]: true, line[2]: true}
	var free []int
	for i := 0; i < BoardCells; i++ {
		if !in[i] {
			free = append(free, i)
		}
	}
	var pick func(start int, acc []int) []int
	pick = func(start int, acc []int) []int {
		if len(acc) == n {
			var b [BoardCells]Cell
			for _, c := range acc {
				b[c] = X
			}
			if checkWinner(b) == Empty {
				return acc
			}
			return nil
		}
		for i := start; i < len(free); i++ {
			if got := pick(i+1, append(append([]int(nil), acc...), free[i])); got != nil {
				return got
			}
		}
		return nil
	}
	return pick(0, nil)
}

func TestCreateAndJoinTicTacToe(t *testing.T) {
	f := newFunded()
	g, err := CreateTicTacToe(f.as(alice), CreateTicTacToeArgs{Channel: channel, Wager: wager, Nonce: 7})
	require.NoError(t, err)
	assert.Equal(t, TicTacToeAddress(channel, alice, 7), g.Address)
	assert.Equal(t, TicTacToeWaitingForPlayer, g.State)

	_, err = CreateTicTacToe(f.as(alice), CreateTicTacToeArgs{Channel: channel, Wager: wager, Nonce: 7})
	require.ErrorIs(t, err, ErrGameExists)
	_, err = CreateTicTacToe(f.as(alice), CreateTicTacToeArgs{Channel: channel, Wager: 1, Nonce: 8})
	require.ErrorIs(t, err, ErrInvalidWager)

	_, err = MakeMove(f.as(alice), g.Address, 4)
	require.ErrorIs(t, err, ErrGameNotInProgress)
	_, err = JoinTicTacToe(f.as(alice), g.Address)
	require.ErrorIs(t, err, ErrCannotJoinOwnGame)

	g, err = JoinTicTacToe(f.as(bob), g.Address)
	require.NoError(t, err)
	assert.Equal(t, TicTacToePlayerXTurn, g.State)
	assert.Equal(t, X, g.CurrentMarker())
	assert.True(t, g.IsPlayersTurn(alice))
	assert.False(t, g.IsPlayersTurn(bob))
	assert.Equal(t, uint64(2*wager), f.balances[g.Address])

	_, err = JoinTicTacToe(f.as(carol), g.Address)
	require.ErrorIs(t, err, ErrInvalidGameState)
}

func TestMakeMoveRejects(t *testing.T) {
	f := newFunded()
	g := startTicTacToe(t, f)

	cases := []struct {
		name   string
		sender sdk.Address
		pos    uint8
		want   error
	}{
		{"O moves first", bob, 0, ErrNotYourTurn},
		{"outsider", carol, 0, ErrNotYourTurn},
		{"off the board", alice, 9, ErrInvalidPosition},
		{"way off the board", alice, 255, ErrInvalidPosition},
	}
	for _, tc := range cases {
		err := requireUnchanged(t, f, func() error {
			_, err := MakeMove(f.as(tc.sender), g.Address, tc.pos)
			return err
		})
		require.ErrorIs(t, err, tc.want, tc.name)
	}

	play(t, f, g.Address, 4)
	err := requireUnchanged(t, f, func() error {
		_, err := MakeMove(f.as(alice), g.Address, 0)
		return err
	})
	require.ErrorIs(t, err, ErrNotYourTurn, "X moves twice")

	err = requireUnchanged(t, f, func() error {
		_, err := MakeMove(f.as(bob), g.Address, 4)
		return err
	})
	require.ErrorIs(t, err, ErrPositionOccupied)
}

func TestTurnAlternation(t *testing.T) {
	f := newFunded()
	g := startTicTacToe(t, f)

	g = play(t, f, g.Address, 0)
	assert.Equal(t, TicTacToePlayerOTurn, g.State)
	assert.Equal(t, X, g.Board[0])
	assert.Equal(t, uint8(1), g.MoveCount)

	g, err := MakeMove(f.as(bob), g.Address, 8)
	require.NoError(t, err)
	assert.Equal(t, TicTacToePlayerXTurn, g.State)
	assert.Equal(t, O, g.Board[8])
	assert.Equal(t, uint8(2), g.MoveCount)
}

func TestAllWinLines(t *testing.T) {
	for _, line := range WinLines() {
		t.Run("X "+asciiFromBoard(lineBoard(line)), func(t *testing.T) {
			f := newFunded()
			g := startTicTacToe(t, f)
			o := filler(line, 2)
			require.Len(t, o, 2)
			got := play(t, f, g.Address, u8(line[0]), u8(o[0]), u8(line[1]), u8(o[1]), u8(line[2]))
			assert.Equal(t, TicTacToeXWins, got.State)
			assert.Equal(t, alice, *got.Winner)
			assert.Contains(t, eventTypes(f), EventGameWon)

			_, err := MakeMove(f.as(bob), g.Address, u8(o[1]))
			require.ErrorIs(t, err, ErrGameNotInProgress)
		})
		t.Run("O "+asciiFromBoard(lineBoard(line)), func(t *testing.T) {
			f := newFunded()
			g := startTicTacToe(t, f)
			x := filler(line, 3)
			require.Len(t, x, 3)
			got := play(t, f, g.Address, u8(x[0]), u8(line[0]), u8(x[1]), u8(line[1]), u8(x[2]), u8(line[2]))
			assert.Equal(t, TicTacToeOWins, got.State)
			assert.Equal(t, bob, *got.Winner)
		})
	}
}

// drawMoves fills the board without a line:
//
//	X O X
//	X O O
//	O X X
var drawMoves = []uint8{0, 1, 2, 4, 3, 5, 7, 6, 8}

func TestDraw(t *testing.T) {
	f := newFunded()
	g := startTicTacToe(t, f)
	got := play(t, f, g.Address, drawMoves...)

	assert.Equal(t, TicTacToeDraw, got.State)
	assert.Nil(t, got.Winner)
	assert.Equal(t, uint8(9), got.MoveCount)
	assert.Equal(t, "121122211", asciiFromBoard(got.Board))
	assert.Equal(t, EventGameDraw, eventTypes(f)[len(f.events)-1])
}

func TestClaimTicTacToeWin(t *testing.T) {
	f := newFunded()
	before := f.total()
	g := startTicTacToe(t, f)

	_, err := ClaimTicTacToe(f.as(alice), g.Address)
	require.ErrorIs(t, err, ErrGameNotFinished)

	play(t, f, g.Address, 0, 3, 1, 4, 2)

	_, err = ClaimTicTacToe(f.as(carol), g.Address)
	require.ErrorIs(t, err, ErrNotPlayer)
	_, err = ClaimTicTacToe(f.as(bob), g.Address)
	require.ErrorIs(t, err, ErrNotGameWinner)

	paid, err := ClaimTicTacToe(f.as(alice), g.Address)
	require.NoError(t, err)
	assert.Equal(t, uint64(2*wager), paid)
	assert.Zero(t, f.balances[g.Address])
	assert.Equal(t, before, f.total())

	err = requireUnchanged(t, f, func() error {
		_, err := ClaimTicTacToe(f.as(alice), g.Address)
		return err
	})
	require.ErrorIs(t, err, ErrAlreadyClaimed)

	stored, err := GetTicTacToe(f, g.Address)
	require.NoError(t, err)
	assert.True(t, stored.Claimed)
	assert.Equal(t, "111220000", asciiFromBoard(stored.Board))
}

func TestClaimTicTacToeDrawRefunds(t *testing.T) {
	f := newFunded()
	g := startTicTacToe(t, f)
	play(t, f, g.Address, drawMoves...)

	refund, err := ClaimTicTacToe(f.as(bob), g.Address)
	require.NoError(t, err)
	assert.Equal(t, uint64(wager), refund)
	assert.Equal(t, uint64(100*wager), f.balances[bob])

	err = requireUnchanged(t, f, func() error {
		_, err := ClaimTicTacToe(f.as(bob), g.Address)
		return err
	})
	require.ErrorIs(t, err, ErrAlreadyClaimed)

	mid, err := GetTicTacToe(f, g.Address)
	require.NoError(t, err)
	assert.False(t, mid.Claimed)
	assert.True(t, mid.ClaimedO)

	refund, err = ClaimTicTacToe(f.as(alice), g.Address)
	require.NoError(t, err)
	assert.Equal(t, uint64(wager), refund)
	assert.Equal(t, uint64(100*wager), f.balances[alice])
	assert.Zero(t, f.balances[g.Address])

	done, err := GetTicTacToe(f, g.Address)
	require.NoError(t, err)
	assert.True(t, done.Claimed)
	assert.Equal(t, TicTacToeDraw, done.State)

	_, err = ClaimTicTacToe(f.as(alice), g.Address)
	require.ErrorIs(t, err, ErrAlreadyClaimed)
}

func TestCancelTicTacToe(t *testing.T) {
	f := newFunded()
	g, err := CreateTicTacToe(f.as(alice), CreateTicTacToeArgs{Channel: channel, Wager: wager, Nonce: 1})
	require.NoError(t, err)

	_, err = CancelTicTacToe(f.as(bob), g.Address)
	require.ErrorIs(t, err, ErrNotGameCreator)

	refund, err := CancelTicTacToe(f.as(alice), g.Address)
	require.NoError(t, err)
	assert.Equal(t, uint64(wager), refund)
	assert.Equal(t, uint64(100*wager), f.balances[alice])

	_, err = CancelTicTacToe(f.as(alice), g.Address)
	require.ErrorIs(t, err, ErrInvalidGameState)

	started := startTicTacToe(t, f)
	_, err = CancelTicTacToe(f.as(alice), started.Address)
	require.ErrorIs(t, err, ErrGameAlreadyStarted)
}

func lineBoard(line [3]int) [BoardCells]Cell {
	var b [BoardCells]Cell
	for _, c := range line {
		b[c] = X
	}
	return b
}

func u8(i int) uint8 { return uint8(i) }
