package ws

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// subscribeRequest is the only client-to-server frame.
type subscribeRequest struct {
	Type    string `json:"type"`
	MatchID string `json:"matchId"`
}

// Client is one websocket connection for an authenticated user.
type Client struct {
	hub    *Hub
	conn   *websocket.Conn
	send   chan []byte
	userID string

	// matchID and closed are owned by the hub goroutine.
	matchID string
	closed  bool
}

// ServeWS upgrades the request and starts the connection pumps. The user id
// must already be set on the gin context by the auth middleware.
func ServeWS(hub *Hub, c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "authentication required"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logrus.WithError(err).Error("websocket upgrade failed")
		return
	}

	client := &Client{
		hub:    hub,
		conn:   conn,
		send:   make(chan []byte, 256),
		userID: userID,
	}

	go client.writePump()
	go client.readPump()
}

// readPump consumes subscribe frames until the connection drops.
// Unauthorized or malformed frames are logged and ignored; the connection
// stays open.
func (c *Client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logrus.WithError(err).Debug("websocket read error")
			}
			return
		}

		var req subscribeRequest
		if err := json.Unmarshal(raw, &req); err != nil || req.Type != "subscribe" || req.MatchID == "" {
			logrus.WithField("user_id", c.userID).Debug("ignoring malformed websocket frame")
			continue
		}

		ok, err := c.hub.auth.IsParticipant(context.Background(), req.MatchID, c.userID)
		if err != nil {
			logrus.WithError(err).WithField("match_id", req.MatchID).Warn("subscription authorization failed")
			continue
		}
		if !ok {
			logrus.WithFields(logrus.Fields{
				"user_id":  c.userID,
				"match_id": req.MatchID,
			}).Warn("rejected subscription to foreign match")
			continue
		}

		c.hub.register <- subscription{client: c, matchID: req.MatchID}
	}
}

// writePump pushes hub events to the peer and keeps the connection alive
// with pings.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case payload, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
