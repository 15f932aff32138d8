package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/aljaz-ferenc/budget-app/logger"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Auth already happened in the middleware; the mobile client has no
		// meaningful origin to check.
		return true
	},
}

const (
	pongWait  = 60 * time.Second
	writeWait = 10 * time.Second
)

// pingPeriod must be shorter than pongWait so a healthy client always gets a
// ping to answer before its read deadline lapses.
var pingPeriod = (pongWait * 9) / 10

// HandleWebSocket registers the session with the event hub and keeps the
// connection alive until the client goes away. Events are written by the hub;
// the read loop services pongs and detects closure, and a ticker pings the
// client so an idle but healthy connection keeps extending its deadline.
func HandleWebSocket(c *gin.Context) {
	claims, ok := userClaims(c)
	if !ok {
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Get().Warn("failed to upgrade connection", zap.Error(err))
		return
	}

	Hub.Register(claims.UserID, conn)
	logger.Get().Info("websocket session established",
		zap.String("user_id", claims.UserID),
		zap.String("remote_addr", c.Request.RemoteAddr))

	defer func() {
		Hub.Unregister(claims.UserID, conn)
		conn.Close()
	}()

	conn.SetReadLimit(512)
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	stop := make(chan struct{})
	defer close(stop)
	go ping(conn, stop)

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

// ping sends periodic pings until stop closes or a write fails. WriteControl
// is safe alongside the hub's event writes.
func ping(conn *websocket.Conn, stop chan struct{}) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return
			}
		}
	}
}
