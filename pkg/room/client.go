package room

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
	"twentyone-server/internal/util"
	"twentyone-server/pkg/playable"
)

// Client is a client connected to the server via websockets
type Client struct {
	// Conn is the underlying websocket connection
	Conn *websocket.Conn

	// send is a channel for sending messages to the client
	send chan interface{}

	// Close is a channel for closing the client
	Close chan string

	// CloseError contains the reason why the connection was closed
	CloseError error

	id     string
	name   string
	dealer *Dealer
}

// NewClient returns a new client object
func NewClient(conn *websocket.Conn) *Client {
	return &Client{
		send:  make(chan interface{}, 256),
		Close: make(chan string, 1),
		Conn:  conn,
		id:    uuid.New().String(),
		name:  util.GetRandomName(),
	}
}

// Name is the display name other clients see
func (c *Client) Name() string {
	return c.name
}

// Send send a message to the web client
func (c *Client) Send(msg interface{}) bool {
	select {
	case c.send <- msg:
		return true
	default:
		return false
	}
}

// SendChan returns a read-only channel
func (c *Client) SendChan() <-chan interface{} {
	return c.send
}

// String returns a traceable identifier for the client and table
func (c *Client) String() string {
	if c.dealer == nil {
		return c.id
	}

	return fmt.Sprintf("%s:%s", c.id, c.dealer.UUID)
}

// ReceivedMessage is called when the server receives a message from a connected client
func (c *Client) ReceivedMessage(msg *playable.PayloadIn) {
	if c.dealer == nil {
		logrus.WithField("msg", msg).Warn("received message, but dealer not found")
		return
	}

	c.dealer.ReceivedMessage(c, msg)
}

// requestClose asks the write loop to close the connection
func (c *Client) requestClose(reason string) {
	select {
	case c.Close <- reason:
	default:
	}
}
