package contract

import (
	"okinoko-arcade/sdk"

	"github.com/holiman/uint256"
	"github.com/pkg/errors"
)

// ---------- Storage keys ----------

func coinflipKey(addr sdk.Address) string  { return "cf_" + addr.String() }
func tictactoeKey(addr sdk.Address) string { return "ttt_" + addr.String() }

// ---------- Load / save ----------

// loadCoinflip reads and decodes the coinflip record at addr.
func loadCoinflip(chain sdk.Chain, addr sdk.Address) (*CoinflipGame, error) {
	raw, err := chain.StateGet(coinflipKey(addr))
	if errors.Is(err, sdk.ErrNotFound) {
		return nil, ErrGameNotFound
	}
	if err != nil {
		return nil, errors.Wrapf(err, "load coinflip %s", addr)
	}
	return decodeCoinflip(addr, raw)
}

func saveCoinflip(chain sdk.Chain, g *CoinflipGame) error {
	return errors.Wrapf(chain.StateSet(coinflipKey(g.Address), encodeCoinflip(g)), "save coinflip %s", g.Address)
}

func loadTicTacToe(chain sdk.Chain, addr sdk.Address) (*TicTacToeGame, error) {
	raw, err := chain.StateGet(tictactoeKey(addr))
	if errors.Is(err, sdk.ErrNotFound) {
		return nil, ErrGameNotFound
	}
	if err != nil {
		return nil, errors.Wrapf(err, "load tictactoe %s", addr)
	}
	return decodeTicTacToe(addr, raw)
}

func saveTicTacToe(chain sdk.Chain, g *TicTacToeGame) error {
	return errors.Wrapf(chain.StateSet(tictactoeKey(g.Address), encodeTicTacToe(g)), "save tictactoe %s", g.Address)
}

// requireVacant fails with ErrGameExists when key already holds a record.
func requireVacant(chain sdk.Chain, key string) error {
	_, err := chain.StateGet(key)
	switch {
	case err == nil:
		return ErrGameExists
	case errors.Is(err, sdk.ErrNotFound):
		return nil
	default:
		return errors.Wrapf(err, "probe %s", key)
	}
}

// ---------- Escrow ----------

// potFor returns wager*2, refusing to wrap.
func potFor(wager uint64) (uint64, error) {
	pot, overflow := new(uint256.Int).MulOverflow(uint256.NewInt(wager), uint256.NewInt(2))
	if overflow || !pot.IsUint64() {
		return 0, ErrOverflow
	}
	return pot.Uint64(), nil
}

// stake pulls wager from party into the record's custody.
func stake(chain sdk.Chain, record, party sdk.Address, wager uint64) error {
	if err := chain.Escrow(record).Debit(party, wager); err != nil {
		return errors.Wrapf(err, "stake %d from %s", wager, party)
	}
	return nil
}

// payout releases amount from the record's custody to party.
func payout(chain sdk.Chain, record, party sdk.Address, amount uint64) error {
	if err := chain.Escrow(record).Credit(party, amount); err != nil {
		return errors.Wrapf(err, "pay %d to %s", amount, party)
	}
	return nil
}
