package server

import (
	"sync"

	"github.com/charmbracelet/log"

	"github.com/lox/holdem-engine/room"
)

// Session binds one room to the connections playing in it. The room itself
// is not safe for concurrent use, so every room call goes through do, which
// serializes actions behind a mutex. Events published during an action are
// fanned out to every attached connection.
type Session struct {
	id     string
	logger *log.Logger

	// mu serializes all room access
	mu   sync.Mutex
	room *room.Room

	connsMu sync.RWMutex
	conns   map[*Connection]bool
}

func newSession(id string, r *room.Room, logger *log.Logger) *Session {
	s := &Session{
		id:     id,
		room:   r,
		logger: logger.WithPrefix("session"),
		conns:  make(map[*Connection]bool),
	}

	r.Events().Subscribe(room.SubscriberFunc(func(event room.Event) {
		msg, err := eventMessage(event)
		if err != nil {
			s.logger.Error("Failed to encode event", "room", id, "error", err)
			return
		}
		s.broadcast(msg)

		// deals chain automatically after a showdown, so fresh hole cards
		// go out on every nextDeal, not only on an explicit request
		if _, ok := event.(room.NextDealEvent); ok {
			s.sendHoleCards()
		}
	}))

	return s
}

// do runs fn with exclusive access to the session's room
func (s *Session) do(fn func(r *room.Room) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.room)
}

func (s *Session) attach(c *Connection) {
	s.connsMu.Lock()
	defer s.connsMu.Unlock()
	s.conns[c] = true
}

func (s *Session) detach(c *Connection) {
	s.connsMu.Lock()
	defer s.connsMu.Unlock()
	delete(s.conns, c)
}

func (s *Session) broadcast(msg *Message) {
	s.connsMu.RLock()
	defer s.connsMu.RUnlock()

	for c := range s.conns {
		if err := c.Send(msg); err != nil {
			s.logger.Debug("Failed to send to client", "room", s.id, "error", err)
		}
	}
}

// sendHoleCards pushes each seated connection its own two cards. Hole cards
// never go through broadcast; every other player only learns them at
// showdown through their own client logic.
// sendHoleCards is only called from inside the emitting action, while the
// session mutex is already held, so it reads the room without locking.
func (s *Session) sendHoleCards() {
	byPlayer := make(map[string]HoleCardsData, len(s.room.Players))
	for _, p := range s.room.Players {
		byPlayer[p.ID] = HoleCardsData{
			Cards:   cardNames(p.Cards),
			Balance: p.Balance,
			BaseBet: s.room.BaseBetAmount(),
		}
	}

	s.connsMu.RLock()
	defer s.connsMu.RUnlock()

	for c := range s.conns {
		data, ok := byPlayer[c.PlayerID()]
		if !ok {
			continue
		}
		msg, err := NewMessage(MessageTypeHoleCards, data)
		if err != nil {
			s.logger.Error("Failed to encode hole cards", "room", s.id, "error", err)
			continue
		}
		if err := c.Send(msg); err != nil {
			s.logger.Debug("Failed to send hole cards", "room", s.id, "error", err)
		}
	}
}
