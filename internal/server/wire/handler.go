package wire

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	"github.com/gridworks/dataview/internal/catalog"
	"github.com/gridworks/dataview/internal/table"
)

// Handler manages WebSocket connections for the render channel.
type Handler struct {
	catalog *catalog.Catalog
	logger  *slog.Logger
}

// NewHandler creates a WebSocket handler.
func NewHandler(cat *catalog.Catalog, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{catalog: cat, logger: logger}
}

// ServeHTTP upgrades to WebSocket and runs the message loop.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: []string{"*"},
	})
	if err != nil {
		h.logger.Error("websocket accept", "error", err)
		return
	}
	defer conn.CloseNow()

	ctx := r.Context()
	for {
		var msg ClientMessage
		err := wsjson.Read(ctx, conn, &msg)
		if err != nil {
			if websocket.CloseStatus(err) != -1 {
				h.logger.Debug("connection closed", "status", websocket.CloseStatus(err))
			}
			return
		}

		switch msg.Type {
		case "table":
			h.handleTable(ctx, conn, msg)
		case "cell":
			h.handleCell(ctx, conn, msg)
		case "ping":
			h.send(ctx, conn, ServerMessage{Type: "pong", RequestID: msg.ID})
		default:
			h.sendError(ctx, conn, msg.ID, "unknown_type", fmt.Sprintf("unknown message type: %s", msg.Type))
		}
	}
}

func (h *Handler) handleTable(ctx context.Context, conn *websocket.Conn, msg ClientMessage) {
	start := time.Now()

	var req table.Request
	if err := json.Unmarshal(msg.Data, &req); err != nil {
		h.sendError(ctx, conn, msg.ID, "invalid_data", "invalid table request")
		return
	}
	resp, err := table.Build(h.catalog, req)
	if err != nil {
		h.sendError(ctx, conn, msg.ID, "schema_not_found", err.Error())
		return
	}
	h.send(ctx, conn, ServerMessage{
		Type:      "table",
		RequestID: msg.ID,
		Data: TableData{
			Table:   resp,
			Elapsed: time.Since(start).String(),
		},
	})
}

func (h *Handler) handleCell(ctx context.Context, conn *websocket.Conn, msg ClientMessage) {
	var req CellData
	if err := json.Unmarshal(msg.Data, &req); err != nil {
		h.sendError(ctx, conn, msg.ID, "invalid_data", "invalid cell request")
		return
	}
	spec, err := table.Cell(h.catalog, req.Schema, req.Field, req.Value, req.Row, req.Language)
	if err != nil {
		h.sendError(ctx, conn, msg.ID, "not_found", err.Error())
		return
	}
	h.send(ctx, conn, ServerMessage{Type: "cell", RequestID: msg.ID, Data: spec})
}

func (h *Handler) send(ctx context.Context, conn *websocket.Conn, msg ServerMessage) {
	if err := wsjson.Write(ctx, conn, msg); err != nil {
		h.logger.Error("websocket write", "error", err)
	}
}

func (h *Handler) sendError(ctx context.Context, conn *websocket.Conn, requestID, code, message string) {
	h.send(ctx, conn, ServerMessage{
		Type:      "error",
		RequestID: requestID,
		Data:      ErrorData{Code: code, Message: message},
	})
}
