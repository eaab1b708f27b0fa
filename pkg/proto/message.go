package proto

import "ctchen222/Tic-Tac-Toe-Page/internal/game"

// Client message types.
const (
	TypeMove  = "move"
	TypeReset = "reset"
	TypeSync  = "sync"
)

// Server message types.
const (
	TypeState = "state"
	TypeError = "error"
)

// ClientToServerMessage represents a message from the browser to the server.
type ClientToServerMessage struct {
	Type  string `json:"type" validate:"required,oneof=move reset sync"`
	Index *int   `json:"index,omitempty" validate:"omitempty,min=0,max=8"`
}

// ServerToClientMessage represents a message from the server to the browser.
type ServerToClientMessage struct {
	Type   string     `json:"type" validate:"required"`
	Reason string     `json:"reason,omitempty"`
	State  *GameState `json:"state,omitempty"`
	HTML   string     `json:"html,omitempty"`
}

// GameState is the JSON form of a game snapshot.
type GameState struct {
	Board   []game.PlayerMark `json:"board"`
	Turn    game.PlayerMark   `json:"turn"`
	Status  string            `json:"status"`
	Result  game.State        `json:"result"`
	Winner  game.PlayerMark   `json:"winner,omitempty"`
	Line    []int             `json:"line,omitempty"`
	Applied bool              `json:"applied"`
}

// MoveRequest is the body of a JSON move request.
type MoveRequest struct {
	Index *int `json:"index" form:"index" binding:"required,min=0,max=8"`
}
