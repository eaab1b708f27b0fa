package view

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"strings"

	"ctchen222/Tic-Tac-Toe-Page/internal/game"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.tmpl"))

// Template names.
const (
	PageTemplate = "page"
	CardTemplate = "card"
)

const drawText = "It's a draw!"

// Cell is the presentation of one board cell.
type Cell struct {
	Index    int
	Mark     game.PlayerMark
	Disabled bool
	Winning  bool
	Label    string
	Classes  string
}

// Model is everything the page needs, derived from a board, turn and result.
type Model struct {
	Title       string
	Status      string
	StatusClass string
	Cells       [game.BoardSize]Cell
	Concluded   bool
}

// New derives the view model. It never looks at anything besides its inputs.
func New(board game.Board, turn game.PlayerMark, result game.Result) Model {
	m := Model{
		Title:     "Tic Tac Toe",
		Status:    StatusText(turn, result),
		Concluded: result.Concluded(),
	}

	switch result.State {
	case game.Won:
		m.StatusClass = "is-winner"
	case game.Draw:
		m.StatusClass = "is-draw"
	}

	for i, mark := range board {
		disabled := result.State == game.Won || result.State == game.Draw || mark != game.None
		winning := result.State == game.Won && result.Line.Contains(i)
		m.Cells[i] = Cell{
			Index:    i,
			Mark:     mark,
			Disabled: disabled,
			Winning:  winning,
			Label:    cellLabel(i, mark, disabled),
			Classes:  cellClasses(mark, winning),
		}
	}

	return m
}

// StatusText returns the line shown above the board.
func StatusText(turn game.PlayerMark, result game.Result) string {
	switch result.State {
	case game.Won:
		return fmt.Sprintf("Winner: %s", result.Winner)
	case game.Draw:
		return drawText
	default:
		return fmt.Sprintf("Turn: %s", turn)
	}
}

func cellLabel(index int, mark game.PlayerMark, disabled bool) string {
	label := fmt.Sprintf("Cell %d", index+1)
	if mark != game.None {
		label += ", " + string(mark)
	}
	if !disabled {
		label += ", empty"
	}
	return label
}

func cellClasses(mark game.PlayerMark, winning bool) string {
	classes := []string{"ttt-cell"}
	if mark != game.None {
		classes = append(classes, "is-filled")
	}
	switch mark {
	case game.PlayerX:
		classes = append(classes, "is-x")
	case game.PlayerO:
		classes = append(classes, "is-o")
	}
	if winning {
		classes = append(classes, "is-winning")
	}
	return strings.Join(classes, " ")
}

// Render writes the named template for m.
func Render(w io.Writer, name string, m Model) error {
	if err := templates.ExecuteTemplate(w, name, m); err != nil {
		return fmt.Errorf("failed to render %s: %w", name, err)
	}
	return nil
}

// RenderString renders the named template into a string.
func RenderString(name string, m Model) (string, error) {
	var sb strings.Builder
	if err := Render(&sb, name, m); err != nil {
		return "", err
	}
	return sb.String(), nil
}
