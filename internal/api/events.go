package api

import (
	"net/http"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"folio/internal/auth"
	"folio/internal/ws"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The dashboard is served from its own origin during development.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// events upgrades the connection and streams the caller's resource-change
// feed. The token was already checked by the auth middleware.
func (d Dependencies) events(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		d.Log.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	c := ws.NewConn(conn, d.Hub, userID)
	d.Hub.Register(c)

	go c.WritePump()
	go c.ReadPump()
}
