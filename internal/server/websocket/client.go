package websocket

import (
	"time"

	"github.com/gorilla/websocket"

	"github.com/agentstation/signlib/pkg/constants"
)

const (
	writeWait = 10 * time.Second
	pongWait  = constants.WebSocketPingInterval * 2

	// Clients only listen; anything larger than a control frame is an error.
	maxInbound = 512
)

// Client is one WebSocket connection attached to a Hub.
type Client struct {
	id   string
	hub  *Hub
	conn *websocket.Conn
	send chan Message
}

// NewClient wraps conn. It does not register with hub.
func NewClient(id string, hub *Hub, conn *websocket.Conn) *Client {
	return &Client{
		id:   id,
		hub:  hub,
		conn: conn,
		send: make(chan Message, constants.ChannelBufferSize),
	}
}

// ID returns the client id.
func (c *Client) ID() string { return c.id }

// Send queues m for this client only and reports false when the queue is
// full. It must not be called after the hub has dropped the client.
func (c *Client) Send(m Message) bool {
	select {
	case c.send <- m:
		return true
	default:
		return false
	}
}

// ReadPump discards inbound frames until the peer goes away, then
// unregisters the client.
func (c *Client) ReadPump() {
	defer func() {
		c.hub.Unregister(c)
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(maxInbound)
	extend := func(string) error { return c.conn.SetReadDeadline(time.Now().Add(pongWait)) }
	_ = extend("")
	c.conn.SetPongHandler(extend)

	for {
		_, _, err := c.conn.NextReader()
		if err == nil {
			continue
		}
		if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
			c.hub.logger.Warn().Err(err).Str("client_id", c.id).Msg("WebSocket read failed")
		}
		return
	}
}

// WritePump sends queued messages as JSON text frames and pings the peer
// on an interval. It returns when the queue is closed or a write fails.
func (c *Client) WritePump() {
	ping := time.NewTicker(constants.WebSocketPingInterval)
	defer func() {
		ping.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case m, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"))
				return
			}
			if err := c.conn.WriteJSON(m); err != nil {
				c.hub.logger.Debug().Err(err).Str("client_id", c.id).Msg("WebSocket write failed")
				return
			}
		case <-ping.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
