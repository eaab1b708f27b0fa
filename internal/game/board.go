package game

// PlayerMark represents the mark of a player (X, O) or an empty cell.
type PlayerMark string

const (
	None    PlayerMark = ""
	PlayerX PlayerMark = "X"
	PlayerO PlayerMark = "O"
)

// BoardSize is the number of cells on the board.
const BoardSize = 9

// Board holds the 9 cells in row-major order: row = index/3, col = index%3.
type Board [BoardSize]PlayerMark

// Line is a triple of board indices that wins when uniformly marked.
type Line [3]int

// Lines lists every winning line in the order they are checked.
var Lines = [8]Line{
	// Rows
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	// Columns
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	// Diagonals
	{0, 4, 8},
	{2, 4, 6},
}

// Contains reports whether index is one of the line's cells.
func (l Line) Contains(index int) bool {
	return l[0] == index || l[1] == index || l[2] == index
}

// CheckWinner returns the mark and line of the first uniformly marked line.
// ok is false when no line is complete.
func CheckWinner(b Board) (winner PlayerMark, line Line, ok bool) {
	for _, l := range Lines {
		a := b[l[0]]
		if a != None && a == b[l[1]] && a == b[l[2]] {
			return a, l, true
		}
	}
	return None, Line{}, false
}

// IsBoardFull reports whether every cell is occupied.
func IsBoardFull(b Board) bool {
	for _, cell := range b {
		if cell == None {
			return false
		}
	}
	return true
}

// Count returns how many cells carry mark.
func (b Board) Count(mark PlayerMark) int {
	n := 0
	for _, cell := range b {
		if cell == mark {
			n++
		}
	}
	return n
}

// Opponent returns the other player's mark.
func Opponent(mark PlayerMark) PlayerMark {
	if mark == PlayerX {
		return PlayerO
	}
	return PlayerX
}
