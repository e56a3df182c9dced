package contract

import (
	"encoding/hex"
	"strconv"
	"strings"

	"okinoko-arcade/sdk"

	"github.com/pkg/errors"
)

// ---------- Parsing Helpers ----------

// fields splits a pipe-separated payload and insists on exactly n fields.
func fields(payload string, n int) ([]string, error) {
	parts := strings.Split(payload, "|")
	if len(parts) != n {
		return nil, errors.Wrapf(ErrInvalidArguments, "want %d fields, got %d", n, len(parts))
	}
	return parts, nil
}

func parseAddress(s, what string) (sdk.Address, error) {
	a, err := sdk.ParseAddress(s)
	if err != nil {
		return a, errors.Wrapf(ErrInvalidArguments, "%s: %v", what, err)
	}
	return a, nil
}

// parseHash decodes 64 hex characters.
func parseHash(s, what string) (Hash, error) {
	var h Hash
	raw, err := hex.DecodeString(s)
	if err != nil || len(raw) != HashSize {
		return h, errors.Wrapf(ErrInvalidArguments, "%s must be %d hex bytes", what, HashSize)
	}
	copy(h[:], raw)
	return h, nil
}

func parseU64(s, what string) (uint64, error) {
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, errors.Wrapf(ErrInvalidArguments, "%s: %v", what, err)
	}
	return v, nil
}

// parseU8 accepts any decimal that fits a byte; range rules belong to the game.
func parseU8(s, what string) (uint8, error) {
	v, err := strconv.ParseUint(s, 10, 8)
	if err != nil {
		return 0, errors.Wrapf(ErrInvalidArguments, "%s: %v", what, err)
	}
	return uint8(v), nil
}

// HashHex is the payload form of a commitment or nonce.
func HashHex(h Hash) string { return hex.EncodeToString(h[:]) }

// ---------- Views ----------

func optString(a *sdk.Address) string {
	if a == nil {
		return ""
	}
	return a.String()
}

func flagString(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

// coinflipView renders a record for get_game:
//
//	id|channel|creator|joiner|wager|state|winner|createdAt|claimed|revealedCreator|revealedJoiner
func coinflipView(g *CoinflipGame) string {
	return strings.Join([]string{
		g.Address.String(),
		g.Channel.String(),
		g.Creator.String(),
		optString(g.Joiner),
		u64s(g.Wager),
		g.State.String(),
		optString(g.Winner),
		strconv.FormatInt(g.CreatedAt, 10),
		flagString(g.Claimed),
		flagString(g.ChoiceCreator != nil),
		flagString(g.ChoiceJoiner != nil),
	}, "|")
}

// tictactoeView renders a record for get_ttt_game:
//
//	id|channel|playerX|playerO|wager|state|winner|createdAt|claimed|moves|board
func tictactoeView(g *TicTacToeGame) string {
	return strings.Join([]string{
		g.Address.String(),
		g.Channel.String(),
		g.Creator.String(),
		optString(g.Joiner),
		u64s(g.Wager),
		g.State.String(),
		optString(g.Winner),
		strconv.FormatInt(g.CreatedAt, 10),
		flagString(g.Claimed),
		strconv.Itoa(int(g.MoveCount)),
		asciiFromBoard(g.Board),
	}, "|")
}
