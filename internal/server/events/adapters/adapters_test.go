package adapters

import (
	"bufio"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/signlib/internal/server/events"
	"github.com/agentstation/signlib/internal/server/sse"
	ws "github.com/agentstation/signlib/internal/server/websocket"
)

func TestStreamForwardsEvents(t *testing.T) {
	logger := zerolog.Nop()
	b := sse.NewBroadcaster(&logger)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go b.Run(ctx)

	srv := httptest.NewServer(b)
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	reader := bufio.NewReader(resp.Body)
	require.Eventually(t, func() bool { return b.ClientCount() == 1 }, time.Second, 5*time.Millisecond)

	sub := Stream(b)
	require.NoError(t, sub.Send(events.Event{
		Seq:       41,
		Type:      events.CatalogChanged,
		Timestamp: time.Now(),
		Data:      map[string]any{"revision": 4},
	}))

	var got []string
	for len(got) < 3 {
		line, err := reader.ReadString('\n')
		require.NoError(t, err)
		if strings.HasPrefix(line, "event: "+string(events.CatalogChanged)) || len(got) > 0 {
			got = append(got, strings.TrimSpace(line))
		}
	}
	assert.Equal(t, "id: 41", got[1])
	assert.Equal(t, `data: {"revision":4}`, got[2])
	assert.NoError(t, sub.Close())
}

func TestHubForwardsEvents(t *testing.T) {
	logger := zerolog.Nop()
	hub := ws.NewHub(&logger)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Run(ctx)

	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		c := ws.NewClient("c1", hub, conn)
		hub.Register(c)
		go c.WritePump()
		go c.ReadPump()
	}))
	defer srv.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	require.NoError(t, err)
	defer conn.Close()
	require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, time.Second, 5*time.Millisecond)

	sub := Hub(hub)
	require.NoError(t, sub.Send(events.Event{
		Type:      events.NoticePosted,
		Timestamp: time.Now(),
		Data:      map[string]any{"message": "All videos removed"},
	}))

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)

	var msg struct {
		Type string         `json:"type"`
		Data map[string]any `json:"data"`
	}
	require.NoError(t, json.Unmarshal(data, &msg))
	assert.Equal(t, "notice", msg.Type)
	assert.Equal(t, "All videos removed", msg.Data["message"])
	assert.NoError(t, sub.Close())
}
