package contract

import (
	"strconv"

	"okinoko-arcade/sdk"
)

// Event types emitted by the games.
const (
	EventGameCreated     = "gameCreated"
	EventGameJoined      = "gameJoined"
	EventChoiceRevealed  = "choiceRevealed"
	EventGameCompleted   = "gameCompleted"
	EventMoveMade        = "moveMade"
	EventGameWon         = "gameWon"
	EventGameDraw        = "gameDraw"
	EventGameCancelled   = "gameCancelled"
	EventWinningsClaimed = "winningsClaimed"
	EventDrawRefunded    = "drawRefunded"
)

// emitEvent hands a typed event to the chain.
func emitEvent(chain sdk.Chain, eventType string, attributes map[string]string) {
	chain.Emit(sdk.Event{Type: eventType, Attributes: attributes})
}

func u64s(v uint64) string { return strconv.FormatUint(v, 10) }

// EmitGameCreated emits an event when a new game is created.
func EmitGameCreated(chain sdk.Chain, kind string, game, creator sdk.Address, wager uint64) {
	emitEvent(chain, EventGameCreated, map[string]string{
		"kind":  kind,
		"id":    game.String(),
		"by":    creator.String(),
		"wager": u64s(wager),
	})
}

// EmitGameJoined emits an event when a player joins an existing game.
func EmitGameJoined(chain sdk.Chain, game, joiner sdk.Address) {
	emitEvent(chain, EventGameJoined, map[string]string{
		"id":     game.String(),
		"joined": joiner.String(),
	})
}

// EmitChoiceRevealed emits an event when one coinflip party reveals.
func EmitChoiceRevealed(chain sdk.Chain, game, revealer sdk.Address, choice Choice) {
	emitEvent(chain, EventChoiceRevealed, map[string]string{
		"id":     game.String(),
		"by":     revealer.String(),
		"choice": strconv.Itoa(int(choice)),
	})
}

// EmitGameCompleted emits an event once both coinflip reveals are in.
func EmitGameCompleted(chain sdk.Chain, game, winner sdk.Address) {
	emitEvent(chain, EventGameCompleted, map[string]string{
		"id":     game.String(),
		"winner": winner.String(),
	})
}

// EmitMoveMade emits an event when a player makes a move in a game.
// Includes the cell index of the move.
func EmitMoveMade(chain sdk.Chain, game, by sdk.Address, pos uint8, mark Cell, moveNo uint8) {
	emitEvent(chain, EventMoveMade, map[string]string{
		"id":     game.String(),
		"moveBy": by.String(),
		"cell":   strconv.Itoa(int(pos)),
		"mark":   mark.String(),
		"move":   strconv.Itoa(int(moveNo)),
	})
}

// EmitGameWon emits an event when a tic-tac-toe game is won.
func EmitGameWon(chain sdk.Chain, game, winner sdk.Address) {
	emitEvent(chain, EventGameWon, map[string]string{
		"id":     game.String(),
		"winner": winner.String(),
	})
}

// EmitGameDraw emits an event when a game ends in a draw.
func EmitGameDraw(chain sdk.Chain, game sdk.Address) {
	emitEvent(chain, EventGameDraw, map[string]string{
		"id": game.String(),
	})
}

func EmitGameCancelled(chain sdk.Chain, game, creator sdk.Address, refund uint64) {
	emitEvent(chain, EventGameCancelled, map[string]string{
		"id":     game.String(),
		"by":     creator.String(),
		"refund": u64s(refund),
	})
}

func EmitWinningsClaimed(chain sdk.Chain, game, winner sdk.Address, amount uint64) {
	emitEvent(chain, EventWinningsClaimed, map[string]string{
		"id":     game.String(),
		"winner": winner.String(),
		"amount": u64s(amount),
	})
}

func EmitDrawRefunded(chain sdk.Chain, game, player sdk.Address, amount uint64) {
	emitEvent(chain, EventDrawRefunded, map[string]string{
		"id":     game.String(),
		"player": player.String(),
		"amount": u64s(amount),
	})
}
