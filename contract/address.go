package contract

import (
	"encoding/binary"

	"okinoko-arcade/sdk"
)

// Seeds that namespace record addresses per game variant.
const (
	coinflipSeed  = "coinflip"
	tictactoeSeed = "tictactoe"
)

// deriveAddress maps (seed, channel, creator, nonce) to a record address.
// Same inputs always give the same record; a fresh nonce lets the same
// creator open any number of concurrent games in one channel.
func deriveAddress(seed string, channel, creator sdk.Address, nonce uint64) sdk.Address {
	var n [8]byte
	binary.LittleEndian.PutUint64(n[:], nonce)
	return sdk.Address(keccak256([]byte(seed), channel[:], creator[:], n[:]))
}

// CoinflipAddress returns the address a coinflip created with these seeds lives at.
func CoinflipAddress(channel, creator sdk.Address, nonce uint64) sdk.Address {
	return deriveAddress(coinflipSeed, channel, creator, nonce)
}

// TicTacToeAddress returns the address a tic-tac-toe game created with these seeds lives at.
func TicTacToeAddress(channel, creator sdk.Address, nonce uint64) sdk.Address {
	return deriveAddress(tictactoeSeed, channel, creator, nonce)
}
