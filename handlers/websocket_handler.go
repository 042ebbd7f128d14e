package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/Sabbir999/Team-budget/aggregator"
	"github.com/Sabbir999/Team-budget/live"
	"github.com/Sabbir999/Team-budget/middleware"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Auth happens via the token, not the Origin header.
		return true
	},
}

type WebSocketHandler struct {
	hub      *live.Hub
	sessions *aggregator.Manager
}

func NewWebSocketHandler(hub *live.Hub, sessions *aggregator.Manager) *WebSocketHandler {
	return &WebSocketHandler{
		hub:      hub,
		sessions: sessions,
	}
}

// ServeWs upgrades the connection and attaches it to the owner's live
// session. The client immediately receives a full snapshot of every
// collection, then one snapshot per change.
func (h *WebSocketHandler) ServeWs(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	session, err := h.sessions.Acquire(r.Context(), userID)
	if err != nil {
		slog.Error("failed to open live session", "user", userID, "error", err)
		http.Error(w, "failed to open live session", http.StatusInternalServerError)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.sessions.Release(userID)
		slog.Error("websocket upgrade failed", "user", userID, "error", err)
		return
	}

	client := &live.Client{
		Hub:    h.hub,
		Conn:   conn,
		Send:   make(chan []byte, 256),
		UserID: userID,
	}
	h.hub.Register <- client

	// Queue the initial snapshots before the pumps start, so the client
	// sees current state ahead of any change events.
	for _, msg := range session.InitialMessages(r.Context()) {
		data, marshalErr := json.Marshal(msg)
		if marshalErr != nil {
			slog.Error("failed to marshal initial snapshot", "user", userID, "error", marshalErr)
			continue
		}
		select {
		case client.Send <- data:
		default:
		}
	}

	go func() {
		client.WritePump()
	}()
	go func() {
		client.ReadPump()
		h.sessions.Release(userID)
	}()
}
