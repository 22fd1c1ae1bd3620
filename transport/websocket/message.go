package websocket

import (
	"encoding/json"

	"github.com/rocketscienceinc/tictactoe-ai/internal/entity"
)

const (
	ActionModeSelect = "mode:select"
	ActionCellClick  = "cell:click"
	ActionRestart    = "game:restart"

	ActionState = "game:state"
	ActionError = "error"
)

// Message represents a WebSocket message with an action type and a payload.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type RequestPayload struct {
	Mode string `json:"mode,omitempty"`
	Cell *int   `json:"cell,omitempty"`
}

type ResponsePayload struct {
	SessionID string           `json:"session_id,omitempty"`
	Game      *entity.Snapshot `json:"game,omitempty"`
	Action    string           `json:"action,omitempty"`
	Error     string           `json:"error,omitempty"`
}

func newMessage(action string, payload ResponsePayload) (Message, error) {
	payloadJSON, err := json.Marshal(payload)
	if err != nil {
		return Message{}, err
	}

	return Message{Action: action, Payload: payloadJSON}, nil
}
