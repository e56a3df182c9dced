package contract

import "okinoko-arcade/sdk"

//
// Commit-reveal coinflip.
//
// Both players commit to keccak256(choice || nonce) before either reveals.
// Equal choices pay the creator, different choices pay the joiner, so no
// single party can steer the parity once the other has committed.
//

// CreateCoinflipArgs are the inputs of create_game.
type CreateCoinflipArgs struct {
	Channel    sdk.Address
	Wager      uint64
	Commitment Hash
	Nonce      uint64 // addressing seed
}

// CreateCoinflip opens a coinflip and escrows the creator's wager.
func CreateCoinflip(chain sdk.Chain, in CreateCoinflipArgs) (*CoinflipGame, error) {
	if in.Wager < MinWager {
		return nil, ErrInvalidWager
	}
	env := chain.Env()
	addr := CoinflipAddress(in.Channel, env.Sender, in.Nonce)
	if err := requireVacant(chain, coinflipKey(addr)); err != nil {
		return nil, err
	}

	if err := stake(chain, addr, env.Sender, in.Wager); err != nil {
		return nil, err
	}
	g := &CoinflipGame{
		Address:           addr,
		Channel:           in.Channel,
		Creator:           env.Sender,
		Wager:             in.Wager,
		CommitmentCreator: in.Commitment,
		State:             CoinflipWaitingForPlayer,
		CreatedAt:         env.Timestamp,
	}
	if err := saveCoinflip(chain, g); err != nil {
		return nil, err
	}
	EmitGameCreated(chain, coinflipSeed, addr, env.Sender, in.Wager)
	return g, nil
}

// JoinCoinflip stakes a matching wager and records the joiner's commitment.
func JoinCoinflip(chain sdk.Chain, game sdk.Address, commitment Hash) (*CoinflipGame, error) {
	g, err := loadCoinflip(chain, game)
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
	g.CommitmentJoiner = &commitment
	g.State = CoinflipWaitingForReveal
	if err := saveCoinflip(chain, g); err != nil {
		return nil, err
	}
	EmitGameJoined(chain, g.Address, joiner)
	return g, nil
}

// RevealChoice discloses the caller's choice and nonce. The reveal that
// completes the pair also decides the winner in the same call.
func RevealChoice(chain sdk.Chain, game sdk.Address, choice Choice, nonce Hash) (*CoinflipGame, error) {
	g, err := loadCoinflip(chain, game)
	if err != nil {
		return nil, err
	}
	if !g.IsWaitingForReveal() {
		return nil, ErrInvalidGameState
	}
	if !choice.Valid() {
		return nil, ErrInvalidChoice
	}

	revealer := chain.Env().Sender
	switch {
	case revealer == g.Creator:
		if g.ChoiceCreator != nil {
			return nil, ErrAlreadyRevealed
		}
		if err := VerifyCommitment(g.CommitmentCreator, choice, nonce); err != nil {
			return nil, err
		}
		g.ChoiceCreator, g.NonceCreator = &choice, &nonce
	case g.Joiner != nil && revealer == *g.Joiner:
		if g.ChoiceJoiner != nil {
			return nil, ErrAlreadyRevealed
		}
		if g.CommitmentJoiner == nil {
			return nil, ErrCorruptRecord
		}
		if err := VerifyCommitment(*g.CommitmentJoiner, choice, nonce); err != nil {
			return nil, err
		}
		g.ChoiceJoiner, g.NonceJoiner = &choice, &nonce
	default:
		return nil, ErrNotParticipant
	}
	EmitChoiceRevealed(chain, g.Address, revealer, choice)

	if g.BothRevealed() {
		winner := coinflipWinner(g)
		g.Winner = &winner
		g.State = CoinflipCompleted
		EmitGameCompleted(chain, g.Address, winner)
	}
	if err := saveCoinflip(chain, g); err != nil {
		return nil, err
	}
	return g, nil
}

// coinflipWinner applies the parity rule to a fully revealed record:
// same bits pay the creator, different bits pay the joiner.
func coinflipWinner(g *CoinflipGame) sdk.Address {
	if *g.ChoiceCreator == *g.ChoiceJoiner {
		return g.Creator
	}
	return *g.Joiner
}

// CancelCoinflip refunds the creator of a game nobody joined.
func CancelCoinflip(chain sdk.Chain, game sdk.Address) (uint64, error) {
	g, err := loadCoinflip(chain, game)
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
	g.State = CoinflipCancelled
	if err := saveCoinflip(chain, g); err != nil {
		return 0, err
	}
	EmitGameCancelled(chain, g.Address, g.Creator, g.Wager)
	return g.Wager, nil
}

// GetCoinflip loads a coinflip record without touching it.
func GetCoinflip(chain sdk.Chain, game sdk.Address) (*CoinflipGame, error) {
	return loadCoinflip(chain, game)
}
