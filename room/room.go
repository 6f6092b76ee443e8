package room

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	rand "math/rand/v2"
	"time"

	"github.com/charmbracelet/log"

	"github.com/lox/holdem-engine/internal/randutil"
	"github.com/lox/holdem-engine/poker"
)

// Config carries a room's collaborators. Store and StartingBaseBet are
// required; Logger and Rand default to a discarding logger and a
// time-seeded RNG.
type Config struct {
	// Store persists room snapshots between actions
	Store Store
	// StartingBaseBet is the big-blind size of the first deal; it escalates
	// every four deals
	StartingBaseBet int
	// Logger receives debug logs; nil discards them
	Logger *log.Logger
	// Rand drives the deck shuffle; nil uses a time-based seed. Tests
	// inject a seeded RNG for deterministic deals.
	Rand *rand.Rand
}

// Room is the authoritative state machine for one table. It owns seating,
// dealing, turn sequencing, betting legality, round advancement and
// showdown settlement.
//
// Rooms are not safe for concurrent use: callers must serialize action
// invocations per room. Store calls are the only suspension points; a store
// failure aborts the action and leaves in-memory state ahead of the
// persisted copy.
type Room struct {
	store           Store
	logger          *log.Logger
	rng             *rand.Rand
	events          Emitter
	startingBaseBet int

	// ID is the room's stable identity
	ID string
	// Cards are the five community cards, empty between deals
	Cards []poker.Card
	// Street is the current betting round
	Street Street
	// DealsCount counts deals dealt; it drives blind escalation
	DealsCount int
	// DealerIndex is the dealer seat for the current deal
	DealerIndex int
	// CurrentPlayerIndex is the seat whose turn is pending
	CurrentPlayerIndex int
	// Players is the ordered seat list
	Players []*Player
	// Payload is opaque application data, stored and forwarded untouched
	Payload json.RawMessage
}

func newRoom(cfg Config) (*Room, error) {
	if cfg.Store == nil {
		return nil, errors.New("room: Config.Store is required")
	}
	if cfg.StartingBaseBet <= 0 {
		return nil, errors.New("room: Config.StartingBaseBet must be positive")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	rng := cfg.Rand
	if rng == nil {
		rng = randutil.New(time.Now().UnixNano())
	}

	return &Room{
		store:           cfg.Store,
		logger:          logger,
		rng:             rng,
		startingBaseBet: cfg.StartingBaseBet,
	}, nil
}

// Create makes an empty room with the given id and persists it. Players
// join afterwards, before the first deal.
func Create(ctx context.Context, cfg Config, id string) (*Room, error) {
	r, err := newRoom(cfg)
	if err != nil {
		return nil, err
	}

	r.ID = id
	if err := r.save(ctx); err != nil {
		return nil, err
	}

	r.logger.Debug("room created", "room", id)
	return r, nil
}

// Load rehydrates a room from its persisted snapshot
func Load(ctx context.Context, cfg Config, id string) (*Room, error) {
	r, err := newRoom(cfg)
	if err != nil {
		return nil, err
	}

	snap, err := cfg.Store.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	r.restore(snap)
	return r, nil
}

// Events exposes the room's event emitter for subscriptions
func (r *Room) Events() *Emitter {
	return &r.events
}

// PotAmount is the sum of all live bets this deal
func (r *Room) PotAmount() int {
	total := 0
	for _, p := range r.Players {
		total += p.BetAmount
	}
	return total
}

// BaseBetAmount is the current big-blind-equivalent: the starting base bet
// escalated once every four deals.
func (r *Room) BaseBetAmount() int {
	return (r.DealsCount/4 + 1) * r.startingBaseBet
}

// RequiredBetAmount is the highest bet on the table, what every live player
// must match to stay in the round.
func (r *Room) RequiredBetAmount() int {
	required := 0
	for _, p := range r.Players {
		if p.BetAmount > required {
			required = p.BetAmount
		}
	}
	return required
}

// CurrentPlayer is the seat whose turn is pending, or nil when the room is
// empty.
func (r *Room) CurrentPlayer() *Player {
	if r.CurrentPlayerIndex < 0 || r.CurrentPlayerIndex >= len(r.Players) {
		return nil
	}
	return r.Players[r.CurrentPlayerIndex]
}

// AddPlayer seats a new player with the given balance and opaque payload,
// then persists the room.
func (r *Room) AddPlayer(ctx context.Context, id string, balance int, payload json.RawMessage) (*Player, error) {
	p := &Player{
		room:    r,
		ID:      id,
		Balance: balance,
		Payload: payload,
	}
	r.Players = append(r.Players, p)

	if err := r.save(ctx); err != nil {
		return nil, err
	}

	r.logger.Debug("player joined", "room", r.ID, "player", id, "balance", balance)
	return p, nil
}

// DealCards starts the next deal: fresh shuffled deck, five community cards,
// two hole cards per seat, blinds posted, turn set past the big blind. The
// caller must guarantee at least two eligible seats.
func (r *Room) DealCards(ctx context.Context) error {
	deck := poker.NewDeck(r.rng)

	r.DealsCount++
	r.Street = Preflop
	r.Cards = deck.Deal(5)

	for _, p := range r.Players {
		p.BetAmount = 0
		p.Cards = deck.Deal(2)
		p.HasFolded = false
		p.HasTurned = false
	}

	r.DealerIndex = r.nextPlayerIndex(r.DealerIndex)
	smallBlind := r.nextPlayerIndex(r.DealerIndex)
	bigBlind := r.nextPlayerIndex(smallBlind)
	r.CurrentPlayerIndex = bigBlind

	r.Players[smallBlind].IncreaseBet(r.BaseBetAmount() / 2)
	r.Players[bigBlind].IncreaseBet(r.BaseBetAmount())

	if err := r.save(ctx); err != nil {
		return err
	}

	r.logger.Debug("dealt cards",
		"room", r.ID,
		"deal", r.DealsCount,
		"baseBet", r.BaseBetAmount(),
		"dealer", r.Players[r.DealerIndex].ID)

	r.events.publish(NextDealEvent{
		DealerID:     r.Players[r.DealerIndex].ID,
		SmallBlindID: r.Players[smallBlind].ID,
		BigBlindID:   r.Players[bigBlind].ID,
	})

	return r.nextTurn(ctx)
}

// Fold folds the acting player's hand
func (r *Room) Fold(ctx context.Context, playerID string) error {
	p, err := r.turnOf(playerID)
	if err != nil {
		return err
	}
	if !p.CanFold() {
		return ErrFoldNotAllowed
	}

	p.HasFolded = true
	p.HasTurned = true
	r.events.publish(FoldEvent{PlayerID: playerID})

	return r.nextTurn(ctx)
}

// Check passes the action without betting
func (r *Room) Check(ctx context.Context, playerID string) error {
	p, err := r.turnOf(playerID)
	if err != nil {
		return err
	}
	if !p.CanCheck() {
		return ErrCheckNotAllowed
	}

	p.HasTurned = true
	r.events.publish(CheckEvent{PlayerID: playerID})

	return r.nextTurn(ctx)
}

// Call matches the outstanding bet
func (r *Room) Call(ctx context.Context, playerID string) error {
	p, err := r.turnOf(playerID)
	if err != nil {
		return err
	}
	if !p.CanCall() {
		return ErrCallNotAllowed
	}

	p.IncreaseBet(p.CallAmount())
	p.HasTurned = true
	r.events.publish(CallEvent{PlayerID: playerID})

	return r.nextTurn(ctx)
}

// Raise matches the outstanding bet and raises by amount on top. amount
// must lie within [MinRaiseAmount, MaxRaiseAmount].
func (r *Room) Raise(ctx context.Context, playerID string, amount int) error {
	p, err := r.turnOf(playerID)
	if err != nil {
		return err
	}
	if !p.CanRaise() {
		return ErrRaiseNotAllowed
	}
	if amount < p.MinRaiseAmount() {
		return ErrRaiseAmountTooSmall
	}
	if amount > p.MaxRaiseAmount() {
		return ErrRaiseAmountTooBig
	}

	p.IncreaseBet(p.CallAmount() + amount)
	p.HasTurned = true
	r.events.publish(RaiseEvent{PlayerID: playerID, Amount: amount})

	return r.nextTurn(ctx)
}

// AllIn moves the acting player's entire balance into the pot
func (r *Room) AllIn(ctx context.Context, playerID string) error {
	p, err := r.turnOf(playerID)
	if err != nil {
		return err
	}
	if !p.CanAllIn() {
		return ErrAllInNotAllowed
	}

	p.IncreaseBet(p.Balance)
	p.HasTurned = true
	r.events.publish(AllInEvent{PlayerID: playerID})

	return r.nextTurn(ctx)
}

// turnOf validates that playerID is the seat whose turn is pending
func (r *Room) turnOf(playerID string) (*Player, error) {
	p := r.CurrentPlayer()
	if p == nil || p.ID != playerID {
		return nil, ErrWrongTurn
	}
	return p, nil
}

// nextTurn advances the game after an action: it ends the deal when fewer
// than two live players remain, advances the street when the betting round
// is complete, and moves the turn pointer to the next eligible seat. A
// street nobody can act on (everyone remaining is all-in) completes
// immediately so the board runs out to showdown.
func (r *Room) nextTurn(ctx context.Context) error {
	for {
		if r.liveCount() < 2 {
			return r.endDeal(ctx)
		}

		if !r.roundComplete() {
			break
		}

		if r.Street == River {
			return r.endDeal(ctx)
		}

		for _, p := range r.Players {
			p.HasTurned = false
		}
		r.Street = r.Street.Next()
		r.CurrentPlayerIndex = r.DealerIndex

		r.logger.Debug("street advanced", "room", r.ID, "street", r.Street)

		if r.anyEligible() {
			break
		}
	}

	r.CurrentPlayerIndex = r.nextPlayerIndex(r.CurrentPlayerIndex)

	if err := r.save(ctx); err != nil {
		return err
	}

	r.events.publish(NextTurnEvent{PlayerID: r.CurrentPlayer().ID})
	return nil
}

// roundComplete reports whether the betting round is settled: every seat is
// out of the deal, out of chips, or has acted since the last bet-size
// change and matched the required bet. A player with no balance counts as
// done regardless of HasTurned: an all-in player is never asked to act.
func (r *Room) roundComplete() bool {
	required := r.RequiredBetAmount()
	for _, p := range r.Players {
		if p.HasLost || p.HasFolded || p.Balance == 0 {
			continue
		}
		if !p.HasTurned || p.BetAmount != required {
			return false
		}
	}
	return true
}

// liveCount counts seats still contesting the deal
func (r *Room) liveCount() int {
	n := 0
	for _, p := range r.Players {
		if !p.HasLost && !p.HasFolded {
			n++
		}
	}
	return n
}

// anyEligible reports whether any seat can still act
func (r *Room) anyEligible() bool {
	for _, p := range r.Players {
		if !p.HasLost && !p.HasFolded && p.Balance > 0 {
			return true
		}
	}
	return false
}

// nextPlayerIndex returns the next seat after index that can act, wrapping
// around the table. It loops forever if no seat qualifies; callers
// guarantee at least one eligible seat.
func (r *Room) nextPlayerIndex(index int) int {
	for {
		index = (index + 1) % len(r.Players)
		p := r.Players[index]
		if !p.HasLost && !p.HasFolded && p.Balance > 0 {
			return index
		}
	}
}

// endDeal settles the pot layer by layer, credits winners, marks busted
// players, and either chains into the next deal or ends the game.
func (r *Room) endDeal(ctx context.Context) error {
	winners := r.settlePot()

	for _, p := range r.Players {
		p.Balance += winners[p.ID]
		if p.Balance == 0 {
			p.HasLost = true
		}
	}

	r.logger.Debug("deal ended", "room", r.ID, "deal", r.DealsCount, "winners", winners)
	r.events.publish(DealEndedEvent{Winners: winners})

	remaining := 0
	for _, p := range r.Players {
		if !p.HasLost {
			remaining++
		}
	}
	if remaining < 2 {
		return r.endGame(ctx)
	}

	return r.DealCards(ctx)
}

// settlePot distributes the pot iteratively: each pass takes the smallest
// outstanding bet as a layer, pays that layer's pot to the best live hands
// among its bettors, and subtracts the layer from every bettor. Unequal
// all-ins thereby form side pots resolved on later passes. When a layer's
// winnings split unevenly, the remainder is handed out one chip at a time
// in seat order starting after the dealer.
func (r *Room) settlePot() map[string]int {
	winners := make(map[string]int)

	for r.PotAmount() > 0 {
		minBet := 0
		bettors := 0
		bestWeight := int64(0)
		var layerWinners []int

		for i, p := range r.Players {
			if p.BetAmount == 0 {
				continue
			}

			bettors++
			if minBet == 0 || p.BetAmount < minBet {
				minBet = p.BetAmount
			}

			if p.HasLost || p.HasFolded {
				continue
			}

			var weight int64
			if combination, ok := p.BestCombination(); ok {
				weight = combination.Weight()
			}

			if weight > bestWeight {
				bestWeight = weight
				layerWinners = layerWinners[:0]
				layerWinners = append(layerWinners, i)
			} else if weight == bestWeight {
				layerWinners = append(layerWinners, i)
			}
		}

		for _, p := range r.Players {
			if p.BetAmount > 0 {
				p.BetAmount -= minBet
			}
		}

		if len(layerWinners) == 0 {
			// every bettor in this layer folded or is out; nobody to pay
			continue
		}

		pot := minBet * bettors
		share := pot / len(layerWinners)
		remainder := pot % len(layerWinners)

		isWinner := make(map[int]bool, len(layerWinners))
		for _, i := range layerWinners {
			winners[r.Players[i].ID] += share
			isWinner[i] = true
		}

		for offset := 1; remainder > 0 && offset <= len(r.Players); offset++ {
			idx := (r.DealerIndex + offset) % len(r.Players)
			if isWinner[idx] {
				winners[r.Players[idx].ID]++
				remainder--
			}
		}
	}

	return winners
}

// endGame tears the room down: the persisted record is removed and the
// gameEnded event notifies the embedding application.
func (r *Room) endGame(ctx context.Context) error {
	r.logger.Debug("game ended", "room", r.ID)
	r.events.publish(GameEndedEvent{})

	return r.store.Delete(ctx, r.ID)
}

func (r *Room) save(ctx context.Context) error {
	return r.store.Set(ctx, r.ID, r.snapshot())
}
