package main

import (
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/alittlebrighter/rcswitch/util"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// hub fans switch events out to every connected websocket.
type hub struct {
	mu      sync.Mutex
	sockets map[*websocket.Conn]chan *util.EventLog
}

func newHub() *hub {
	return &hub{sockets: map[*websocket.Conn]chan *util.EventLog{}}
}

// broadcast never blocks; a socket that can't keep up misses events.
func (h *hub) broadcast(event *util.EventLog) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, out := range h.sockets {
		select {
		case out <- event:
		default:
		}
	}
}

func (h *hub) remove(conn *websocket.Conn) {
	h.mu.Lock()
	if out, ok := h.sockets[conn]; ok {
		delete(h.sockets, conn)
		close(out)
	}
	h.mu.Unlock()
	conn.Close()
}

func (h *hub) count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.sockets)
}

func (h *hub) serveWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logrus.WithError(err).Warn("could not upgrade connection to websocket")
		return
	}

	out := make(chan *util.EventLog, 8)
	h.mu.Lock()
	h.sockets[conn] = out
	h.mu.Unlock()
	logrus.WithField("remote", r.RemoteAddr).Debug("websocket connected")

	go func() {
		for event := range out {
			if err := conn.WriteJSON(event); err != nil {
				h.remove(conn)
				return
			}
		}
	}()

	// drain incoming frames so close messages are seen
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			logrus.WithField("remote", r.RemoteAddr).Debug("websocket disconnected")
			h.remove(conn)
			return
		}
	}
}
