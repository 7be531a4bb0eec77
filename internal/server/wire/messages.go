// Package wire defines the WebSocket protocol for the render channel.
package wire

import (
	"encoding/json"

	"github.com/gridworks/dataview/internal/field"
	"github.com/gridworks/dataview/internal/table"
)

// ── Client → Server messages ────────────────────────────────────────────────

// ClientMessage is the envelope for all client-to-server WebSocket messages.
type ClientMessage struct {
	Type string          `json:"type"` // "table", "cell", "ping"
	ID   string          `json:"id"`   // Client-assigned request ID
	Data json.RawMessage `json:"data,omitempty"`
}

// CellData is the payload for "cell" messages.
type CellData struct {
	Schema   string    `json:"schema"`
	Field    string    `json:"field"`
	Value    any       `json:"value"`
	Row      field.Row `json:"row"`
	Language string    `json:"language,omitempty"`
}

// ── Server → Client messages ────────────────────────────────────────────────

// ServerMessage is the envelope for all server-to-client WebSocket messages.
type ServerMessage struct {
	Type      string `json:"type"`                 // "table", "cell", "error", "pong"
	RequestID string `json:"request_id,omitempty"` // Echoes client ID
	Data      any    `json:"data,omitempty"`
}

// ErrorData carries an error message.
type ErrorData struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// TableData wraps a rendered table with its timing.
type TableData struct {
	Table   *table.Response `json:"table"`
	Elapsed string          `json:"elapsed"`
}
