package handlers

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/aljaz-ferenc/budget-app/events"
	"github.com/aljaz-ferenc/budget-app/middleware"
	"github.com/aljaz-ferenc/budget-app/models"
)

// An idle connection only survives its read deadline if the server actually
// pings, so the client's pong can extend it.
func TestHandleWebSocket_ServerPingsIdleConnections(t *testing.T) {
	gin.SetMode(gin.TestMode)

	old := pingPeriod
	pingPeriod = 20 * time.Millisecond
	defer func() { pingPeriod = old }()

	Hub = events.NewHub()

	router := gin.New()
	router.GET("/ws", func(c *gin.Context) {
		c.Set(middleware.ContextUserKey, &models.Claims{UserID: "u1"})
	}, HandleWebSocket)

	server := httptest.NewServer(router)
	defer server.Close()

	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws"
	client, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer client.Close()

	pings := make(chan struct{}, 1)
	client.SetPingHandler(func(string) error {
		select {
		case pings <- struct{}{}:
		default:
		}
		return client.WriteControl(websocket.PongMessage, nil, time.Now().Add(time.Second))
	})
	go func() {
		for {
			if _, _, err := client.ReadMessage(); err != nil {
				return
			}
		}
	}()

	select {
	case <-pings:
	case <-time.After(2 * time.Second):
		t.Fatal("server never pinged; an idle connection would hit the read deadline")
	}
}
