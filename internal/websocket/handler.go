package websocket

import (
	"net/http"

	ws "github.com/coder/websocket"

	"github.com/checklistia/checklistia/internal/auth"
)

// HandleWebSocket returns an HTTP handler that upgrades connections to
// WebSocket and runs them as Hub clients watching the caller's active
// list. Must run behind the auth middleware.
func HandleWebSocket(hub *Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		listID := auth.ListID(r.Context())
		if listID == 0 {
			http.Error(w, "not authenticated", http.StatusUnauthorized)
			return
		}

		conn, err := ws.Accept(w, r, &ws.AcceptOptions{
			InsecureSkipVerify: true, // Client origin varies (PWA, mobile webview)
		})
		if err != nil {
			hub.logger.Warn("websocket accept", "error", err)
			return
		}

		client := NewClient(hub, conn, listID)
		client.Run(r.Context())
	}
}
