package server

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/gorilla/websocket"

	"github.com/lox/holdem-engine/room"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer
	maxMessageSize = 8192
)

// ErrConnectionClosed is returned by Send on a closed connection
var ErrConnectionClosed = websocket.ErrCloseSent

// Connection wraps one websocket client. It owns a read pump dispatching
// requests to the server and a write pump draining the send queue with
// keepalive pings on the server's clock.
type Connection struct {
	conn   *websocket.Conn
	send   chan *Message
	server *Server
	logger *log.Logger
	clock  quartz.Clock

	ctx       context.Context
	cancel    context.CancelFunc
	closeOnce sync.Once

	mu       sync.RWMutex
	playerID string
	session  *Session
}

func newConnection(conn *websocket.Conn, server *Server) *Connection {
	ctx, cancel := context.WithCancel(context.Background())

	return &Connection{
		conn:   conn,
		send:   make(chan *Message, 256),
		server: server,
		logger: server.logger.WithPrefix("conn"),
		clock:  server.clock,
		ctx:    ctx,
		cancel: cancel,
	}
}

func (c *Connection) start() {
	go c.writePump()
	go c.readPump()
}

// Close tears the connection down; safe to call more than once
func (c *Connection) Close() error {
	var err error
	c.closeOnce.Do(func() {
		c.cancel()
		if session := c.Session(); session != nil {
			session.detach(c)
		}
		err = c.conn.Close()
	})
	return err
}

// Send queues a message for the client. A full send buffer closes the
// connection rather than blocking the caller.
func (c *Connection) Send(msg *Message) error {
	select {
	case <-c.ctx.Done():
		return ErrConnectionClosed
	default:
	}

	select {
	case c.send <- msg:
		return nil
	default:
		c.logger.Warn("Connection send buffer full, closing connection")
		_ = c.Close()
		return ErrConnectionClosed
	}
}

// PlayerID returns the player this connection is seated as, or ""
func (c *Connection) PlayerID() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.playerID
}

// Session returns the session the connection has joined, or nil
func (c *Connection) Session() *Session {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.session
}

func (c *Connection) setSeat(session *Session, playerID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.session = session
	c.playerID = playerID
}

func (c *Connection) readPump() {
	defer func() { _ = c.Close() }()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		select {
		case <-c.ctx.Done():
			return
		default:
		}

		var msg Message
		if err := c.conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.logger.Error("WebSocket error", "error", err)
			}
			return
		}

		c.handleMessage(&msg)
	}
}

func (c *Connection) writePump() {
	ticker := c.clock.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.Close()
	}()

	for {
		select {
		case msg := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteJSON(msg); err != nil {
				c.logger.Debug("Failed to write message", "error", err)
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-c.ctx.Done():
			_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
			return
		}
	}
}

func (c *Connection) handleMessage(msg *Message) {
	c.logger.Debug("Received message", "type", msg.Type, "player", c.PlayerID())

	var err error
	switch msg.Type {
	case MessageTypeCreateRoom:
		err = c.handleCreateRoom(msg.Data)
	case MessageTypeJoinRoom:
		err = c.handleJoinRoom(msg.Data)
	case MessageTypeDealCards:
		err = c.handleDealCards()
	case MessageTypeFold:
		err = c.act(func(r *room.Room, playerID string) error {
			return r.Fold(c.ctx, playerID)
		})
	case MessageTypeCheck:
		err = c.act(func(r *room.Room, playerID string) error {
			return r.Check(c.ctx, playerID)
		})
	case MessageTypeCall:
		err = c.act(func(r *room.Room, playerID string) error {
			return r.Call(c.ctx, playerID)
		})
	case MessageTypeRaise:
		var data RaiseData
		if err = json.Unmarshal(msg.Data, &data); err == nil {
			err = c.act(func(r *room.Room, playerID string) error {
				return r.Raise(c.ctx, playerID, data.Amount)
			})
		}
	case MessageTypeAllIn:
		err = c.act(func(r *room.Room, playerID string) error {
			return r.AllIn(c.ctx, playerID)
		})
	default:
		err = errors.New("unknown message type")
	}

	if err != nil {
		c.sendError(err)
	}
}

func (c *Connection) handleCreateRoom(raw json.RawMessage) error {
	var data CreateRoomData
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &data); err != nil {
			return err
		}
	}

	session, err := c.server.CreateRoom(c.ctx, data.BaseBet)
	if err != nil {
		return err
	}

	msg, err := NewMessage(MessageTypeRoomCreated, RoomCreatedData{RoomID: session.id})
	if err != nil {
		return err
	}
	return c.Send(msg)
}

func (c *Connection) handleJoinRoom(raw json.RawMessage) error {
	var data JoinRoomData
	if err := json.Unmarshal(raw, &data); err != nil {
		return err
	}
	if data.PlayerID == "" {
		return errors.New("player_id is required")
	}

	session, err := c.server.Session(data.RoomID)
	if err != nil {
		return err
	}

	balance := data.Balance
	if balance == 0 {
		balance = c.server.defaultBalance
	}

	if err := session.do(func(r *room.Room) error {
		_, err := r.AddPlayer(c.ctx, data.PlayerID, balance, nil)
		return err
	}); err != nil {
		return err
	}

	c.setSeat(session, data.PlayerID)
	session.attach(c)

	msg, err := NewMessage(MessageTypeJoined, JoinedData{
		RoomID:   data.RoomID,
		PlayerID: data.PlayerID,
		Balance:  balance,
	})
	if err != nil {
		return err
	}
	return c.Send(msg)
}

func (c *Connection) handleDealCards() error {
	session := c.Session()
	if session == nil {
		return errors.New("join a room first")
	}

	// hole cards go out from the session's nextDeal subscriber
	return session.do(func(r *room.Room) error {
		return r.DealCards(c.ctx)
	})
}

func (c *Connection) act(fn func(r *room.Room, playerID string) error) error {
	session := c.Session()
	if session == nil {
		return errors.New("join a room first")
	}

	playerID := c.PlayerID()
	return session.do(func(r *room.Room) error {
		return fn(r, playerID)
	})
}

func (c *Connection) sendError(err error) {
	data := ErrorData{Code: "internal", Message: err.Error()}
	if code := room.CodeOf(err); code != "" {
		data.Code = string(code)
	} else if errors.Is(err, room.ErrNotFound) {
		data.Code = "not_found"
	}

	msg, merr := NewMessage(MessageTypeError, data)
	if merr != nil {
		c.logger.Error("Failed to encode error", "error", merr)
		return
	}
	if serr := c.Send(msg); serr != nil {
		c.logger.Debug("Failed to send error", "error", serr)
	}
}
