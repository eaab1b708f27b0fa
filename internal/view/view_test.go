package view

import (
	"testing"

	"ctchen222/Tic-Tac-Toe-Page/internal/game"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func modelFor(moves ...int) Model {
	g := game.NewGame()
	for _, idx := range moves {
		g.Move(idx)
	}
	return New(g.Board(), g.CurrentTurn(), g.Result())
}

func TestStatusText(t *testing.T) {
	tests := []struct {
		name   string
		turn   game.PlayerMark
		result game.Result
		want   string
	}{
		{name: "In progress", turn: game.PlayerO, result: game.Result{State: game.InProgress}, want: "Turn: O"},
		{name: "Won", turn: game.PlayerX, result: game.Result{State: game.Won, Winner: game.PlayerX}, want: "Winner: X"},
		{name: "Draw", turn: game.PlayerX, result: game.Result{State: game.Draw}, want: "It's a draw!"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StatusText(tt.turn, tt.result))
		})
	}
}

func TestNew_InitialBoard(t *testing.T) {
	m := modelFor()

	assert.Equal(t, "Turn: X", m.Status)
	assert.Empty(t, m.StatusClass)
	assert.False(t, m.Concluded)
	for i, c := range m.Cells {
		assert.Equal(t, i, c.Index)
		assert.False(t, c.Disabled)
		assert.False(t, c.Winning)
		assert.Equal(t, "ttt-cell", c.Classes)
	}
	assert.Equal(t, "Cell 1, empty", m.Cells[0].Label)
}

func TestNew_OccupiedCells(t *testing.T) {
	m := modelFor(0, 4)

	assert.Equal(t, "Turn: X", m.Status)
	assert.True(t, m.Cells[0].Disabled)
	assert.Equal(t, "Cell 1, X", m.Cells[0].Label)
	assert.Equal(t, "ttt-cell is-filled is-x", m.Cells[0].Classes)
	assert.Equal(t, "Cell 5, O", m.Cells[4].Label)
	assert.Equal(t, "ttt-cell is-filled is-o", m.Cells[4].Classes)
	assert.False(t, m.Cells[8].Disabled)
}

func TestNew_Won(t *testing.T) {
	m := modelFor(0, 4, 1, 5, 2)

	assert.Equal(t, "Winner: X", m.Status)
	assert.Equal(t, "is-winner", m.StatusClass)
	assert.True(t, m.Concluded)
	for i, c := range m.Cells {
		assert.True(t, c.Disabled, "cell %d", i)
		assert.Equal(t, i <= 2, c.Winning, "cell %d", i)
	}
	assert.Equal(t, "ttt-cell is-filled is-x is-winning", m.Cells[1].Classes)
	// Empty cells of a finished game are disabled, so they lose the "empty" suffix.
	assert.Equal(t, "Cell 9", m.Cells[8].Label)
}

func TestNew_Draw(t *testing.T) {
	m := modelFor(0, 1, 2, 4, 3, 5, 7, 6, 8)

	assert.Equal(t, "It's a draw!", m.Status)
	assert.Equal(t, "is-draw", m.StatusClass)
	for _, c := range m.Cells {
		assert.True(t, c.Disabled)
		assert.False(t, c.Winning)
	}
}

func TestRender(t *testing.T) {
	t.Run("Page includes card and script", func(t *testing.T) {
		html, err := RenderString(PageTemplate, modelFor(0))
		require.NoError(t, err)

		assert.Contains(t, html, "<h1 class=\"ttt-title\">Tic Tac Toe</h1>")
		assert.Contains(t, html, "Turn: O")
		assert.Contains(t, html, "aria-live=\"polite\"")
		assert.Contains(t, html, "new WebSocket")
		assert.Contains(t, html, "class=\"ttt-reset\"")
	})

	t.Run("Live updates keep the status region in place", func(t *testing.T) {
		html, err := RenderString(PageTemplate, modelFor())
		require.NoError(t, err)

		assert.NotContains(t, html, "root.innerHTML")
		assert.Contains(t, html, "status.textContent = nextStatus.textContent")
		assert.Contains(t, html, "board.replaceWith(nextBoard)")
	})

	t.Run("Card marks winning cells and disables the board", func(t *testing.T) {
		html, err := RenderString(CardTemplate, modelFor(0, 4, 1, 5, 2))
		require.NoError(t, err)

		assert.Contains(t, html, "Winner: X")
		assert.Contains(t, html, "ttt-status is-winner")
		assert.Contains(t, html, "is-winning")
		assert.Contains(t, html, "aria-label=\"Cell 9\" disabled")
		assert.NotContains(t, html, "new WebSocket")
	})

	t.Run("Unknown template", func(t *testing.T) {
		_, err := RenderString("missing", modelFor())
		assert.Error(t, err)
	})
}
