// Package notify maintains the realtime notification socket. The backend
// fans out project and employee events over a single WebSocket per client;
// duplicates are the server's problem, so the client guards against opening
// a second socket for the same session.
package notify

import (
	"context"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/gorilla/websocket"
	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"

	"github.com/anandv/hrms-dashboard/internal/observability"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Notification event types pushed by the backend.
const (
	TypeProject        = "project"
	TypeEmployeeAdd    = "employee_add"
	TypeEmployeeRemove = "employee_remove"
	TypeNewProject     = "new_project"
)

// Message is one notification frame.
type Message struct {
	Type     string `json:"type"`
	Title    string `json:"title"`
	Message  string `json:"message"`
	Priority string `json:"priority,omitempty"`
	Datetime string `json:"datetime,omitempty"`
}

// Handler receives each decoded notification.
type Handler func(Message)

// Client connects to the notification endpoint and dispatches incoming
// messages to a handler. At most one socket is open at a time.
type Client struct {
	url     string
	handler Handler
	log     *logrus.Logger

	mu      sync.Mutex
	running bool
}

// NewClient builds a notification client for the given ws:// URL.
func NewClient(url string, handler Handler, log *logrus.Logger) *Client {
	return &Client{url: url, handler: handler, log: log}
}

// Run connects and reads until ctx is cancelled, reconnecting with
// exponential backoff on any failure. A second concurrent Run on the same
// client is a no-op: the notification stream is single-socket.
func (c *Client) Run(ctx context.Context) error {
	c.mu.Lock()
	if c.running {
		c.mu.Unlock()
		c.log.Debug("notification socket already open, ignoring duplicate connect")
		return nil
	}
	c.running = true
	c.mu.Unlock()
	defer func() {
		c.mu.Lock()
		c.running = false
		c.mu.Unlock()
	}()

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = time.Second
	policy.MaxInterval = 30 * time.Second

	for {
		err := c.readLoop(ctx, policy)
		if ctx.Err() != nil {
			return ctx.Err()
		}
		wait := policy.NextBackOff()
		c.log.WithError(err).WithField("retry_in", wait).Warn("notification socket dropped")
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
	}
}

func (c *Client) readLoop(ctx context.Context, policy *backoff.ExponentialBackOff) error {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, c.url, nil)
	if err != nil {
		return err
	}
	defer conn.Close()

	// Identify ourselves so the server registers this socket for fanout.
	hello := map[string]string{"type": "hello", "source": "frontend"}
	if err := conn.WriteJSON(hello); err != nil {
		return err
	}
	c.log.WithField("url", c.url).Info("notification socket connected")
	policy.Reset()

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			conn.Close()
		case <-done:
		}
	}()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return err
		}
		var msg Message
		if err := json.Unmarshal(data, &msg); err != nil {
			c.log.WithError(err).Debug("discarding malformed notification frame")
			continue
		}
		observability.NotificationsReceived.Inc()
		if c.handler != nil {
			c.handler(msg)
		}
	}
}
