package contract

import "okinoko-arcade/sdk"

//
// Settlement.
//
// Pots leave custody only here. Single-winner outcomes pay 2x wager once and
// flip Claimed in the same call; a draw refunds each player their own wager
// and tracks each refund with its own bit.
//

// ClaimCoinflip pays the full pot of a completed coinflip to its winner.
func ClaimCoinflip(chain sdk.Chain, game sdk.Address) (uint64, error) {
	g, err := loadCoinflip(chain, game)
	if err != nil {
		return 0, err
	}
	if !g.IsCompleted() {
		return 0, ErrInvalidGameState
	}
	claimer := chain.Env().Sender
	if g.Winner == nil || *g.Winner != claimer {
		return 0, ErrNotGameWinner
	}
	if g.Claimed {
		return 0, ErrAlreadyClaimed
	}
	pot, err := potFor(g.Wager)
	if err != nil {
		return 0, err
	}

	if err := payout(chain, g.Address, claimer, pot); err != nil {
		return 0, err
	}
	g.Claimed = true
	if err := saveCoinflip(chain, g); err != nil {
		return 0, err
	}
	EmitWinningsClaimed(chain, g.Address, claimer, pot)
	return pot, nil
}

// ClaimTicTacToe settles a finished tic-tac-toe game for the caller: the pot
// for the winner, or the caller's own wager back on a draw.
func ClaimTicTacToe(chain sdk.Chain, game sdk.Address) (uint64, error) {
	g, err := loadTicTacToe(chain, game)
	if err != nil {
		return 0, err
	}
	if !g.IsFinished() {
		return 0, ErrGameNotFinished
	}
	claimer := chain.Env().Sender
	mark := g.markOf(claimer)
	if mark == Empty {
		return 0, ErrNotPlayer
	}

	if g.State == TicTacToeDraw {
		return claimDrawRefund(chain, g, claimer, mark)
	}

	if g.Winner == nil || *g.Winner != claimer {
		return 0, ErrNotGameWinner
	}
	if g.Claimed {
		return 0, ErrAlreadyClaimed
	}
	pot, err := potFor(g.Wager)
	if err != nil {
		return 0, err
	}
	if err := payout(chain, g.Address, claimer, pot); err != nil {
		return 0, err
	}
	g.Claimed = true
	if err := saveTicTacToe(chain, g); err != nil {
		return 0, err
	}
	EmitWinningsClaimed(chain, g.Address, claimer, pot)
	return pot, nil
}

// claimDrawRefund returns one player's stake. Claimed flips once both
// refunds are out.
func claimDrawRefund(chain sdk.Chain, g *TicTacToeGame, claimer sdk.Address, mark Cell) (uint64, error) {
	taken := &g.ClaimedX
	if mark == O {
		taken = &g.ClaimedO
	}
	if *taken {
		return 0, ErrAlreadyClaimed
	}

	if err := payout(chain, g.Address, claimer, g.Wager); err != nil {
		return 0, err
	}
	*taken = true
	g.Claimed = g.ClaimedX && g.ClaimedO
	if err := saveTicTacToe(chain, g); err != nil {
		return 0, err
	}
	EmitDrawRefunded(chain, g.Address, claimer, g.Wager)
	return g.Wager, nil
}
