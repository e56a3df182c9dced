package contract

import (
	"okinoko-arcade/sdk"

	"github.com/pkg/errors"
)

// Kind groups errors by how a caller should react to them.
type Kind uint8

const (
	// KindValidation: bad input, retry with corrected arguments.
	KindValidation Kind = iota + 1
	// KindState: the record is not in a phase that allows the call.
	KindState
	// KindAuthorization: the caller is not allowed to do this.
	KindAuthorization
	// KindIntegrity: a reveal did not match its commitment. Possible cheating.
	KindIntegrity
	// KindArithmetic: checked arithmetic failed before any funds moved.
	KindArithmetic
	// KindFunds: the ledger refused a move.
	KindFunds
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindState:
		return "state"
	case KindAuthorization:
		return "authorization"
	case KindIntegrity:
		return "integrity"
	case KindArithmetic:
		return "arithmetic"
	case KindFunds:
		return "funds"
	default:
		return "unknown"
	}
}

// Error is a contract failure. Values are package sentinels; compare with errors.Is.
type Error struct {
	Code string
	Kind Kind
	Msg  string
}

func (e *Error) Error() string { return e.Code + ": " + e.Msg }

func newError(kind Kind, code, msg string) *Error {
	return &Error{Code: code, Kind: kind, Msg: msg}
}

// Game errors
var (
	ErrInvalidWager       = newError(KindValidation, "InvalidWager", "invalid wager amount (minimum 0.001 SOL)")
	ErrInvalidChoice      = newError(KindValidation, "InvalidChoice", "choice must be 0 (heads) or 1 (tails)")
	ErrInvalidPosition    = newError(KindValidation, "InvalidPosition", "invalid board position (must be 0-8)")
	ErrInvalidArguments   = newError(KindValidation, "InvalidArguments", "malformed call payload")
	ErrUnknownMethod      = newError(KindValidation, "UnknownMethod", "no such entry point")
	ErrGameExists         = newError(KindState, "GameExists", "game already exists")
	ErrGameNotFound       = newError(KindState, "GameNotFound", "game not found")
	ErrInvalidGameState   = newError(KindState, "InvalidGameState", "game is not in the correct state for this action")
	ErrGameAlreadyStarted = newError(KindState, "GameAlreadyStarted", "game already started, cannot cancel")
	ErrAlreadyRevealed    = newError(KindState, "AlreadyRevealed", "already revealed your choice")
	ErrAlreadyClaimed     = newError(KindState, "AlreadyClaimed", "winnings already claimed")
	ErrPositionOccupied   = newError(KindState, "PositionOccupied", "position already occupied")
	ErrGameNotInProgress  = newError(KindState, "GameNotInProgress", "game is not in progress")
	ErrGameNotFinished    = newError(KindState, "GameNotFinished", "game has not finished yet")
	ErrCorruptRecord      = newError(KindState, "CorruptRecord", "stored record does not decode")
	ErrCannotJoinOwnGame  = newError(KindAuthorization, "CannotJoinOwnGame", "cannot join your own game")
	ErrNotGameCreator     = newError(KindAuthorization, "NotGameCreator", "only the game creator can cancel")
	ErrNotParticipant     = newError(KindAuthorization, "NotParticipant", "only game participants can reveal")
	ErrNotGameWinner      = newError(KindAuthorization, "NotGameWinner", "only the winner can claim winnings")
	ErrNotYourTurn        = newError(KindAuthorization, "NotYourTurn", "not your turn")
	ErrNotPlayer          = newError(KindAuthorization, "NotPlayer", "only players can claim winnings")
	ErrInvalidCommitment  = newError(KindIntegrity, "InvalidCommitment", "commitment does not match revealed choice and nonce")
	ErrOverflow           = newError(KindArithmetic, "Overflow", "arithmetic overflow")
)

// ErrInsufficientFunds is the ledger's refusal, re-exported for callers that
// only import contract.
var ErrInsufficientFunds = sdk.ErrInsufficientFunds

// KindOf classifies err. Ledger refusals are KindFunds; anything else that is
// not a contract Error returns 0.
func KindOf(err error) Kind {
	var ce *Error
	if errors.As(err, &ce) {
		return ce.Kind
	}
	if errors.Is(err, sdk.ErrInsufficientFunds) || errors.Is(err, sdk.ErrBalanceOverflow) {
		return KindFunds
	}
	return 0
}

// CodeOf returns the stable code of a contract error, or "" for others.
func CodeOf(err error) string {
	var ce *Error
	if errors.As(err, &ce) {
		return ce.Code
	}
	if errors.Is(err, sdk.ErrInsufficientFunds) {
		return "InsufficientFunds"
	}
	return ""
}
