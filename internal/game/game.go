package game

// State is the phase a game is in.
type State string

const (
	InProgress State = "in_progress"
	Won        State = "won"
	Draw       State = "draw"
)

// Result is derived from a board on demand and never stored.
type Result struct {
	State  State
	Winner PlayerMark
	Line   Line
}

// Concluded reports whether the game has reached a terminal state.
func (r Result) Concluded() bool {
	return r.State != InProgress
}

// Evaluate derives the result of a board. A full board with a complete line
// is a win, not a draw.
func Evaluate(b Board) Result {
	if winner, line, ok := CheckWinner(b); ok {
		return Result{State: Won, Winner: winner, Line: line}
	}
	if IsBoardFull(b) {
		return Result{State: Draw}
	}
	return Result{State: InProgress}
}

// Game is a single two-player game. It is not safe for concurrent use.
type Game struct {
	board Board
	turn  PlayerMark
}

// NewGame returns a game with an empty board and X to move.
func NewGame() *Game {
	return &Game{turn: PlayerX}
}

// Board returns a copy of the current board.
func (g *Game) Board() Board {
	return g.board
}

// CurrentTurn returns the mark that moves next.
func (g *Game) CurrentTurn() PlayerMark {
	return g.turn
}

// Result derives the current result from the board.
func (g *Game) Result() Result {
	return Evaluate(g.board)
}

// Move places the current player's mark at index. Moves on a concluded game,
// on an occupied cell or outside the board are ignored. It reports whether
// the move was applied.
func (g *Game) Move(index int) bool {
	if index < 0 || index >= BoardSize {
		return false
	}
	if g.Result().Concluded() || g.board[index] != None {
		return false
	}

	g.board[index] = g.turn
	if !g.Result().Concluded() {
		g.turn = Opponent(g.turn)
	}
	return true
}

// Reset returns the game to its initial state.
func (g *Game) Reset() {
	g.board = Board{}
	g.turn = PlayerX
}
