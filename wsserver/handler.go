package wsserver

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/mo-shahab/duel-pong/client"
	"github.com/mo-shahab/duel-pong/protocol"
	"github.com/mo-shahab/duel-pong/room"
)

// WebSocketHandler upgrades /ws requests and pumps frames between each
// client and the room manager.
type WebSocketHandler struct {
	Upgrader  websocket.Upgrader
	Rooms     *room.Manager
	QueueSize int
	logger    *slog.Logger
}

func NewWebSocketHandler(rooms *room.Manager, logger *slog.Logger) *WebSocketHandler {
	return &WebSocketHandler{
		Upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		Rooms:     rooms,
		QueueSize: client.DefaultQueueSize,
		logger:    logger,
	}
}

func (wsh *WebSocketHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := wsh.Upgrader.Upgrade(w, r, nil)
	if err != nil {
		wsh.logger.Warn("upgrade failed", "remote", r.RemoteAddr, "error", err)
		return
	}

	c := client.New(conn, wsh.QueueSize, wsh.logger)
	wsh.logger.Info("client connected", "conn", c.ID(), "remote", r.RemoteAddr)

	go c.WritePump()

	c.ReadLoop(func(data []byte, f protocol.Format) {
		c.SetFormat(f)
		msg, err := protocol.Decode(data, f)
		if err != nil {
			wsh.logger.Debug("bad frame", "conn", c.ID(), "error", err)
			if err := c.Send(protocol.Error("invalid message")); err != nil {
				wsh.logger.Warn("dropping reply", "conn", c.ID(), "error", err)
			}
			return
		}
		wsh.Rooms.Dispatch(c, msg)
	})

	wsh.Rooms.Disconnect(c.ID())
	c.Close()
	wsh.logger.Info("client disconnected", "conn", c.ID())
}
