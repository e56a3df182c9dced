package contract

import (
	"sort"

	"okinoko-arcade/sdk"

	"github.com/pkg/errors"
)

// Entry point names.
const (
	MethodCreateGame       = "create_game"
	MethodJoinGame         = "join_game"
	MethodRevealChoice     = "reveal_choice"
	MethodClaimWinnings    = "claim_winnings"
	MethodCancelGame       = "cancel_game"
	MethodGetGame          = "get_game"
	MethodCreateTTTGame    = "create_ttt_game"
	MethodJoinTTTGame      = "join_ttt_game"
	MethodMakeMove         = "make_move"
	MethodClaimTTTWinnings = "claim_ttt_winnings"
	MethodCancelTTTGame    = "cancel_ttt_game"
	MethodGetTTTGame       = "get_ttt_game"
)

// Handler runs one entry point against a call-scoped chain and returns the
// call's textual result.
type Handler func(chain sdk.Chain, payload string) (string, error)

// Entry is a dispatchable entry point.
type Entry struct {
	Name     string
	Handler  Handler
	ReadOnly bool // queries never write state
}

var entries = map[string]Entry{
	MethodCreateGame:       {Name: MethodCreateGame, Handler: createGameEntry},
	MethodJoinGame:         {Name: MethodJoinGame, Handler: joinGameEntry},
	MethodRevealChoice:     {Name: MethodRevealChoice, Handler: revealChoiceEntry},
	MethodClaimWinnings:    {Name: MethodClaimWinnings, Handler: claimWinningsEntry},
	MethodCancelGame:       {Name: MethodCancelGame, Handler: cancelGameEntry},
	MethodGetGame:          {Name: MethodGetGame, Handler: getGameEntry, ReadOnly: true},
	MethodCreateTTTGame:    {Name: MethodCreateTTTGame, Handler: createTTTGameEntry},
	MethodJoinTTTGame:      {Name: MethodJoinTTTGame, Handler: joinTTTGameEntry},
	MethodMakeMove:         {Name: MethodMakeMove, Handler: makeMoveEntry},
	MethodClaimTTTWinnings: {Name: MethodClaimTTTWinnings, Handler: claimTTTWinningsEntry},
	MethodCancelTTTGame:    {Name: MethodCancelTTTGame, Handler: cancelTTTGameEntry},
	MethodGetTTTGame:       {Name: MethodGetTTTGame, Handler: getTTTGameEntry, ReadOnly: true},
}

// Lookup finds the entry point called method.
func Lookup(method string) (Entry, error) {
	e, ok := entries[method]
	if !ok {
		return Entry{}, errors.Wrapf(ErrUnknownMethod, "%q", method)
	}
	return e, nil
}

// Methods lists every entry point name in sorted order.
func Methods() []string {
	out := make([]string, 0, len(entries))
	for name := range entries {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// gameArg parses a payload that is a single game address.
func gameArg(payload string) (sdk.Address, error) {
	f, err := fields(payload, 1)
	if err != nil {
		return sdk.Address{}, err
	}
	return parseAddress(f[0], "game")
}

// ---------- Entry: Coinflip ----------

// create_game: channel|wager|commitment|nonce
func createGameEntry(chain sdk.Chain, payload string) (string, error) {
	f, err := fields(payload, 4)
	if err != nil {
		return "", err
	}
	var in CreateCoinflipArgs
	if in.Channel, err = parseAddress(f[0], "channel"); err != nil {
		return "", err
	}
	if in.Wager, err = parseU64(f[1], "wager"); err != nil {
		return "", err
	}
	if in.Commitment, err = parseHash(f[2], "commitment"); err != nil {
		return "", err
	}
	if in.Nonce, err = parseU64(f[3], "nonce"); err != nil {
		return "", err
	}
	g, err := CreateCoinflip(chain, in)
	if err != nil {
		return "", err
	}
	return g.Address.String(), nil
}

// join_game: game|commitment
func joinGameEntry(chain sdk.Chain, payload string) (string, error) {
	f, err := fields(payload, 2)
	if err != nil {
		return "", err
	}
	game, err := parseAddress(f[0], "game")
	if err != nil {
		return "", err
	}
	commitment, err := parseHash(f[1], "commitment")
	if err != nil {
		return "", err
	}
	_, err = JoinCoinflip(chain, game, commitment)
	return "", err
}

// reveal_choice: game|choice|nonce
func revealChoiceEntry(chain sdk.Chain, payload string) (string, error) {
	f, err := fields(payload, 3)
	if err != nil {
		return "", err
	}
	game, err := parseAddress(f[0], "game")
	if err != nil {
		return "", err
	}
	choice, err := parseU8(f[1], "choice")
	if err != nil {
		return "", err
	}
	nonce, err := parseHash(f[2], "nonce")
	if err != nil {
		return "", err
	}
	g, err := RevealChoice(chain, game, Choice(choice), nonce)
	if err != nil {
		return "", err
	}
	return g.State.String(), nil
}

func claimWinningsEntry(chain sdk.Chain, payload string) (string, error) {
	game, err := gameArg(payload)
	if err != nil {
		return "", err
	}
	paid, err := ClaimCoinflip(chain, game)
	if err != nil {
		return "", err
	}
	return u64s(paid), nil
}

func cancelGameEntry(chain sdk.Chain, payload string) (string, error) {
	game, err := gameArg(payload)
	if err != nil {
		return "", err
	}
	refund, err := CancelCoinflip(chain, game)
	if err != nil {
		return "", err
	}
	return u64s(refund), nil
}

func getGameEntry(chain sdk.Chain, payload string) (string, error) {
	game, err := gameArg(payload)
	if err != nil {
		return "", err
	}
	g, err := GetCoinflip(chain, game)
	if err != nil {
		return "", err
	}
	return coinflipView(g), nil
}

// ---------- Entry: Tic-tac-toe ----------

// create_ttt_game: channel|wager|nonce
func createTTTGameEntry(chain sdk.Chain, payload string) (string, error) {
	f, err := fields(payload, 3)
	if err != nil {
		return "", err
	}
	var in CreateTicTacToeArgs
	if in.Channel, err = parseAddress(f[0], "channel"); err != nil {
		return "", err
	}
	if in.Wager, err = parseU64(f[1], "wager"); err != nil {
		return "", err
	}
	if in.Nonce, err = parseU64(f[2], "nonce"); err != nil {
		return "", err
	}
	g, err := CreateTicTacToe(chain, in)
	if err != nil {
		return "", err
	}
	return g.Address.String(), nil
}

func joinTTTGameEntry(chain sdk.Chain, payload string) (string, error) {
	game, err := gameArg(payload)
	if err != nil {
		return "", err
	}
	_, err = JoinTicTacToe(chain, game)
	return "", err
}

// make_move: game|position
func makeMoveEntry(chain sdk.Chain, payload string) (string, error) {
	f, err := fields(payload, 2)
	if err != nil {
		return "", err
	}
	game, err := parseAddress(f[0], "game")
	if err != nil {
		return "", err
	}
	pos, err := parseU8(f[1], "position")
	if err != nil {
		return "", err
	}
	g, err := MakeMove(chain, game, pos)
	if err != nil {
		return "", err
	}
	return g.State.String(), nil
}

func claimTTTWinningsEntry(chain sdk.Chain, payload string) (string, error) {
	game, err := gameArg(payload)
	if err != nil {
		return "", err
	}
	paid, err := ClaimTicTacToe(chain, game)
	if err != nil {
		return "", err
	}
	return u64s(paid), nil
}

func cancelTTTGameEntry(chain sdk.Chain, payload string) (string, error) {
	game, err := gameArg(payload)
	if err != nil {
		return "", err
	}
	refund, err := CancelTicTacToe(chain, game)
	if err != nil {
		return "", err
	}
	return u64s(refund), nil
}

func getTTTGameEntry(chain sdk.Chain, payload string) (string, error) {
	game, err := gameArg(payload)
	if err != nil {
		return "", err
	}
	g, err := GetTicTacToe(chain, game)
	if err != nil {
		return "", err
	}
	return tictactoeView(g), nil
}
