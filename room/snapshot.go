package room

import (
	"context"
	"encoding/json"

	"github.com/lox/holdem-engine/poker"
)

// Store is the persistence collaborator a room depends on. Any backing that
// can hold JSON-serializable snapshots satisfies it; see store/memstore and
// store/redisstore. Get returns ErrNotFound when no snapshot exists.
type Store interface {
	Get(ctx context.Context, id string) (*Snapshot, error)
	Set(ctx context.Context, id string, snapshot *Snapshot) error
	Delete(ctx context.Context, id string) error
}

// Snapshot is the serializable form of a room: every attribute needed to
// rehydrate the state machine mid-game.
type Snapshot struct {
	ID                 string           `json:"id"`
	Cards              []poker.Card     `json:"cards"`
	Street             Street           `json:"street"`
	DealsCount         int              `json:"deals_count"`
	DealerIndex        int              `json:"dealer_index"`
	CurrentPlayerIndex int              `json:"current_player_index"`
	Players            []PlayerSnapshot `json:"players"`
	Payload            json.RawMessage  `json:"payload,omitempty"`
}

// PlayerSnapshot is the serializable form of a seat
type PlayerSnapshot struct {
	ID        string          `json:"id"`
	Cards     []poker.Card    `json:"cards"`
	Balance   int             `json:"balance"`
	BetAmount int             `json:"bet_amount"`
	HasFolded bool            `json:"has_folded"`
	HasLost   bool            `json:"has_lost"`
	HasTurned bool            `json:"has_turned"`
	Payload   json.RawMessage `json:"payload,omitempty"`
}

// Clone returns a deep copy so stores can hand out snapshots without
// aliasing the caller's slices.
func (s *Snapshot) Clone() *Snapshot {
	if s == nil {
		return nil
	}

	out := *s
	out.Cards = append([]poker.Card(nil), s.Cards...)
	out.Payload = append(json.RawMessage(nil), s.Payload...)
	out.Players = make([]PlayerSnapshot, len(s.Players))
	for i, p := range s.Players {
		out.Players[i] = p
		out.Players[i].Cards = append([]poker.Card(nil), p.Cards...)
		out.Players[i].Payload = append(json.RawMessage(nil), p.Payload...)
	}

	return &out
}

// snapshot captures the room's current state
func (r *Room) snapshot() *Snapshot {
	snap := &Snapshot{
		ID:                 r.ID,
		Cards:              append([]poker.Card(nil), r.Cards...),
		Street:             r.Street,
		DealsCount:         r.DealsCount,
		DealerIndex:        r.DealerIndex,
		CurrentPlayerIndex: r.CurrentPlayerIndex,
		Players:            make([]PlayerSnapshot, len(r.Players)),
		Payload:            append(json.RawMessage(nil), r.Payload...),
	}

	for i, p := range r.Players {
		snap.Players[i] = PlayerSnapshot{
			ID:        p.ID,
			Cards:     append([]poker.Card(nil), p.Cards...),
			Balance:   p.Balance,
			BetAmount: p.BetAmount,
			HasFolded: p.HasFolded,
			HasLost:   p.HasLost,
			HasTurned: p.HasTurned,
			Payload:   append(json.RawMessage(nil), p.Payload...),
		}
	}

	return snap
}

// restore replaces the room's state with the snapshot's
func (r *Room) restore(snap *Snapshot) {
	r.ID = snap.ID
	r.Cards = append([]poker.Card(nil), snap.Cards...)
	r.Street = snap.Street
	r.DealsCount = snap.DealsCount
	r.DealerIndex = snap.DealerIndex
	r.CurrentPlayerIndex = snap.CurrentPlayerIndex
	r.Payload = append(json.RawMessage(nil), snap.Payload...)

	r.Players = make([]*Player, len(snap.Players))
	for i, p := range snap.Players {
		r.Players[i] = &Player{
			room:      r,
			ID:        p.ID,
			Cards:     append([]poker.Card(nil), p.Cards...),
			Balance:   p.Balance,
			BetAmount: p.BetAmount,
			HasFolded: p.HasFolded,
			HasLost:   p.HasLost,
			HasTurned: p.HasTurned,
			Payload:   append(json.RawMessage(nil), p.Payload...),
		}
	}
}
