package web

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

const (
	// writeTimeout is the deadline for a single write to a client.
	writeTimeout = 10 * time.Second

	// keepaliveInterval paces ping frames so idle connections are not cut by
	// proxies between update events.
	keepaliveInterval = 15 * time.Second

	// pongWait is how long to wait for a pong response before treating the
	// connection as dead.
	pongWait = 60 * time.Second
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Origin checks happen at the reverse proxy.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// wsUpdates upgrades the connection and forwards hub events for the requested
// game ids as JSON frames. With no game_ids the client gets keepalives only.
// Blocks until the client disconnects or the write side fails.
func (h *Handler) wsUpdates(w http.ResponseWriter, r *http.Request) {
	gameIDs := splitIDs(r.URL.Query().Get("game_ids"))

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// upgrader has already written the error response.
		return
	}
	defer conn.Close()

	sub := h.subs.Subscribe(gameIDs)
	defer h.subs.Unsubscribe(sub.ID)

	h.logger.Debug("websocket client connected",
		"subscription_id", sub.ID,
		"game_ids", gameIDs,
	)

	done := make(chan struct{})
	go readPump(conn, done)

	ticker := time.NewTicker(keepaliveInterval)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case ev := <-sub.Events():
			conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := conn.WriteJSON(ev); err != nil {
				return
			}
		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// readPump drains the connection to process control frames and detect
// disconnects; clients are not expected to send data frames.
func readPump(conn *websocket.Conn, done chan<- struct{}) {
	defer close(done)
	conn.SetReadLimit(512)
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
