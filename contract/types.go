// Package contract implements escrow-backed coinflip and tic-tac-toe games.
package contract

import "okinoko-arcade/sdk"

// MinWager is the smallest stake a game accepts, in the smallest currency
// unit (0.001 SOL). Keeps dust games out of the ledger.
const MinWager uint64 = 1_000_000

// HashSize is the width of commitments and nonces.
const HashSize = 32

// Hash is a 32-byte commitment or reveal nonce.
type Hash [HashSize]byte

// Choice is one revealed coinflip bit: 0 heads, 1 tails.
type Choice uint8

const (
	Heads Choice = 0
	Tails Choice = 1
)

// Valid reports whether c is a single bit.
func (c Choice) Valid() bool { return c <= Tails }

// Cell is one tic-tac-toe square.
type Cell uint8

const (
	Empty Cell = 0 // Empty cell
	X     Cell = 1 // Mark of the creator
	O     Cell = 2 // Mark of the joiner
)

func (c Cell) String() string {
	switch c {
	case X:
		return "X"
	case O:
		return "O"
	default:
		return "-"
	}
}

// CoinflipState is the lifecycle phase of a coinflip record.
type CoinflipState uint8

const (
	CoinflipWaitingForPlayer CoinflipState = 0 // Created and awaiting a joiner
	CoinflipWaitingForReveal CoinflipState = 1 // Both staked, reveals outstanding
	CoinflipCompleted        CoinflipState = 2 // Both revealed, winner known
	CoinflipCancelled        CoinflipState = 3 // Refunded before anyone joined
)

func (s CoinflipState) String() string {
	switch s {
	case CoinflipWaitingForPlayer:
		return "WaitingForPlayer"
	case CoinflipWaitingForReveal:
		return "WaitingForReveal"
	case CoinflipCompleted:
		return "Completed"
	case CoinflipCancelled:
		return "Cancelled"
	default:
		return "Unknown"
	}
}

func (s CoinflipState) valid() bool { return s <= CoinflipCancelled }

// TicTacToeState is the lifecycle phase of a tic-tac-toe record.
type TicTacToeState uint8

const (
	TicTacToeWaitingForPlayer TicTacToeState = 0
	TicTacToePlayerXTurn      TicTacToeState = 1
	TicTacToePlayerOTurn      TicTacToeState = 2
	TicTacToeXWins            TicTacToeState = 3
	TicTacToeOWins            TicTacToeState = 4
	TicTacToeDraw             TicTacToeState = 5
	TicTacToeCancelled        TicTacToeState = 6
)

func (s TicTacToeState) String() string {
	switch s {
	case TicTacToeWaitingForPlayer:
		return "WaitingForPlayer"
	case TicTacToePlayerXTurn:
		return "PlayerXTurn"
	case TicTacToePlayerOTurn:
		return "PlayerOTurn"
	case TicTacToeXWins:
		return "XWins"
	case TicTacToeOWins:
		return "OWins"
	case TicTacToeDraw:
		return "Draw"
	case TicTacToeCancelled:
		return "Cancelled"
	default:
		return "Unknown"
	}
}

func (s TicTacToeState) valid() bool { return s <= TicTacToeCancelled }

// ---------- Records (runtime structs; storage is binary) ----------

// CoinflipGame is a commit-reveal coinflip between a creator and a joiner.
//
// Optional fields are pointers and stay nil until the operation that fills
// them: Joiner and CommitmentJoiner at join, the choice/nonce pairs at each
// party's reveal, Winner when both have revealed.
type CoinflipGame struct {
	Address           sdk.Address // record and custody address
	Channel           sdk.Address
	Creator           sdk.Address
	Joiner            *sdk.Address
	Wager             uint64
	CommitmentCreator Hash
	CommitmentJoiner  *Hash
	ChoiceCreator     *Choice
	NonceCreator      *Hash
	ChoiceJoiner      *Choice
	NonceJoiner       *Hash
	Winner            *sdk.Address
	State             CoinflipState
	CreatedAt         int64
	Claimed           bool
}

func (g *CoinflipGame) IsWaitingForPlayer() bool { return g.State == CoinflipWaitingForPlayer }
func (g *CoinflipGame) IsWaitingForReveal() bool { return g.State == CoinflipWaitingForReveal }
func (g *CoinflipGame) IsCompleted() bool        { return g.State == CoinflipCompleted }

// BothRevealed reports whether the completion guard should fire.
func (g *CoinflipGame) BothRevealed() bool {
	return g.ChoiceCreator != nil && g.ChoiceJoiner != nil
}

// TicTacToeGame is a 3x3 game; the creator plays X and moves first.
//
// Board layout:
//
//	0 | 1 | 2
//	3 | 4 | 5
//	6 | 7 | 8
type TicTacToeGame struct {
	Address   sdk.Address
	Channel   sdk.Address
	Creator   sdk.Address // player X
	Joiner    *sdk.Address // player O
	Wager     uint64
	Board     [9]Cell
	MoveCount uint8
	Winner    *sdk.Address
	State     TicTacToeState
	CreatedAt int64
	Claimed   bool
	ClaimedX  bool // draw refund taken by X
	ClaimedO  bool // draw refund taken by O
}

func (g *TicTacToeGame) IsWaitingForPlayer() bool { return g.State == TicTacToeWaitingForPlayer }

// IsInProgress reports whether a move is currently expected.
func (g *TicTacToeGame) IsInProgress() bool {
	return g.State == TicTacToePlayerXTurn || g.State == TicTacToePlayerOTurn
}

// IsFinished reports whether the game reached a win or a draw.
func (g *TicTacToeGame) IsFinished() bool {
	return g.State == TicTacToeXWins || g.State == TicTacToeOWins || g.State == TicTacToeDraw
}

// IsPlayersTurn reports whether player is the one expected to move.
func (g *TicTacToeGame) IsPlayersTurn(player sdk.Address) bool {
	switch g.State {
	case TicTacToePlayerXTurn:
		return player == g.Creator
	case TicTacToePlayerOTurn:
		return g.Joiner != nil && player == *g.Joiner
	default:
		return false
	}
}

// CurrentMarker returns the mark for the player to move, or Empty.
func (g *TicTacToeGame) CurrentMarker() Cell {
	switch g.State {
	case TicTacToePlayerXTurn:
		return X
	case TicTacToePlayerOTurn:
		return O
	default:
		return Empty
	}
}

// markOf returns the mark a participant plays, or Empty for outsiders.
func (g *TicTacToeGame) markOf(addr sdk.Address) Cell {
	if addr == g.Creator {
		return X
	}
	if g.Joiner != nil && addr == *g.Joiner {
		return O
	}
	return Empty
}
