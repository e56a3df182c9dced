package contract

//
// Board helpers for the 3x3 game.
//

// BoardCells is the number of squares on the board.
const BoardCells = 9

// winLines lists every row, column and diagonal that wins.
var winLines = [8][3]int{
	{0, 1, 2}, {3, 4, 5}, {6, 7, 8}, // rows
	{0, 3, 6}, {1, 4, 7}, {2, 5, 8}, // columns
	{0, 4, 8}, {2, 4, 6}, // diagonals
}

// WinLines returns a copy of the eight winning lines.
func WinLines() [8][3]int { return winLines }

// checkWinner returns the mark holding a complete line, or Empty.
func checkWinner(board [BoardCells]Cell) Cell {
	for _, w := range winLines {
		a, b, c := w[0], w[1], w[2]
		if board[a] != Empty && board[a] == board[b] && board[b] == board[c] {
			return board[a]
		}
	}
	return Empty
}

// asciiFromBoard flattens a board to a compact string: each cell becomes
// '0', '1' or '2'.
func asciiFromBoard(board [BoardCells]Cell) string {
	out := make([]byte, BoardCells)
	for i, c := range board {
		out[i] = byte('0' + c)
	}
	return string(out)
}
