package flakproxy

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"
)

func TestBridgeBroadcastsToConnectedClients(t *testing.T) {
	bridge := NewBridge()
	srv := httptest.NewServer(http.HandlerFunc(bridge.HandleWebSocket))
	defer srv.Close()
	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http")

	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool { return bridge.NumClients() == 1 }, time.Second, 10*time.Millisecond)

	bridge.Broadcast([]byte("tick-buffer"))

	_, msg, err := conn.ReadMessage()
	require.NoError(t, err)
	require.Equal(t, "tick-buffer", string(msg))
}
