package contract

import "okinoko-arcade/sdk"

// CreateTicTacToeArgs are the inputs of create_ttt_game.
type CreateTicTacToeArgs struct {
	Channel sdk.Address
	Wager   uint64
	Nonce   uint64 // addressing seed
}

// CreateTicTacToe opens a game with the sender as X and escrows the wager.
func CreateTicTacToe(chain sdk.Chain, in CreateTicTacToeArgs) (*TicTacToeGame, error) {
	if in.Wager < MinWager {
		return nil, ErrInvalidWager
	}
	env := chain.Env()
	addr := TicTacToeAddress(in.Channel, env.Sender, in.Nonce)
	if err := requireVacant(chain, tictactoeKey(addr)); err != nil {
		return nil, err
	}

	if err := stake(chain, addr, env.Sender, in.Wager); err != nil {
		return nil, err
	}
	g := &TicTacToeGame{
		Address:   addr,
		Channel:   in.Channel,
		Creator:   env.Sender,
		Wager:     in.Wager,
		State:     TicTacToeWaitingForPlayer,
		CreatedAt: env.Timestamp,
	}
	if err := saveTicTacToe(chain, g); err != nil {
		return nil, err
	}
	EmitGameCreated(chain, tictactoeSeed, addr, env.Sender, in.Wager)
	return g, nil
}

// JoinTicTacToe seats the sender as O with a matching wager. X moves first.
func JoinTicTacToe(chain sdk.Chain, game sdk.Address) (*TicTacToeGame, error) {
	g, err := loadTicTacToe(chain, game)
	if err != nil {
		return nil, err
	}
	joiner := chain.Env().Sender
	if !g.IsWaitingForPlayer() {
		return nil, ErrInvalidGameState
	}
	if joiner == g.Creator {
		return nil, ErrCannotJoinOwnGame
	}

	if err := stake(chain, g.Address, joiner, g.Wager); err != nil {
		return nil, err
	}
	g.Joiner = &joiner
	g.State = TicTacToePlayerXTurn
	if err := saveTicTacToe(chain, g); err != nil {
		return nil, err
	}
	EmitGameJoined(chain, g.Address, joiner)
	return g, nil
}

// MakeMove places the caller's mark at position and advances the game:
// a completed line wins, a ninth move without one draws, anything else
// passes the turn.
func MakeMove(chain sdk.Chain, game sdk.Address, position uint8) (*TicTacToeGame, error) {
	g, err := loadTicTacToe(chain, game)
	if err != nil {
		return nil, err
	}
	player := chain.Env().Sender
	if !g.IsInProgress() {
		return nil, ErrGameNotInProgress
	}
	if !g.IsPlayersTurn(player) {
		return nil, ErrNotYourTurn
	}
	if position >= BoardCells {
		return nil, ErrInvalidPosition
	}
	if g.Board[position] != Empty {
		return nil, ErrPositionOccupied
	}

	mark := g.CurrentMarker()
	g.Board[position] = mark
	g.MoveCount++
	EmitMoveMade(chain, g.Address, player, position, mark, g.MoveCount)

	switch winner := checkWinner(g.Board); {
	case winner == X:
		w := g.Creator
		g.Winner = &w
		g.State = TicTacToeXWins
		EmitGameWon(chain, g.Address, w)
	case winner == O:
		w := *g.Joiner
		g.Winner = &w
		g.State = TicTacToeOWins
		EmitGameWon(chain, g.Address, w)
	case g.MoveCount >= BoardCells:
		g.State = TicTacToeDraw
		EmitGameDraw(chain, g.Address)
	case g.State == TicTacToePlayerXTurn:
		g.State = TicTacToePlayerOTurn
	default:
		g.State = TicTacToePlayerXTurn
	}

	if err := saveTicTacToe(chain, g); err != nil {
		return nil, err
	}
	return g, nil
}

// CancelTicTacToe refunds X when nobody has joined.
func CancelTicTacToe(chain sdk.Chain, game sdk.Address) (uint64, error) {
	g, err := loadTicTacToe(chain, game)
	if err != nil {
		return 0, err
	}
	if chain.Env().Sender != g.Creator {
		return 0, ErrNotGameCreator
	}
	if !g.IsWaitingForPlayer() {
		if g.Joiner != nil {
			return 0, ErrGameAlreadyStarted
		}
		return 0, ErrInvalidGameState
	}

	if err := payout(chain, g.Address, g.Creator, g.Wager); err != nil {
		return 0, err
	}
	g.State = TicTacToeCancelled
	if err := saveTicTacToe(chain, g); err != nil {
		return 0, err
	}
	EmitGameCancelled(chain, g.Address, g.Creator, g.Wager)
	return g.Wager, nil
}

// GetTicTacToe loads a tic-tac-toe record without touching it.
func GetTicTacToe(chain sdk.Chain, game sdk.Address) (*TicTacToeGame, error) {
	return loadTicTacToe(chain, game)
}
