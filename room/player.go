package room

import (
	"encoding/json"

	"github.com/lox/holdem-engine/poker"
)

// Player is one seat at the table. All legality predicates and sizing bounds
// are derived from current room state, never stored. Eliminated players stay
// seated with HasLost set until the game ends.
type Player struct {
	room *Room

	// ID is the stable identity supplied by the embedding application
	ID string
	// Cards holds the two hole cards while a deal is running
	Cards []poker.Card
	// Balance is the chip stack, never negative
	Balance int
	// BetAmount is the cumulative bet this deal, reset when cards are dealt
	BetAmount int
	// HasFolded marks the player out of the current deal
	HasFolded bool
	// HasLost marks a busted player, permanent for the game
	HasLost bool
	// HasTurned marks that the player acted since the last bet-size change
	HasTurned bool
	// Payload is opaque application data, stored and forwarded untouched
	Payload json.RawMessage
}

// CallAmount is what the player owes to match the table's required bet
func (p *Player) CallAmount() int {
	return p.room.RequiredBetAmount() - p.BetAmount
}

// MinRaiseAmount is the smallest legal raise on top of the call
func (p *Player) MinRaiseAmount() int {
	return p.room.BaseBetAmount()
}

// MaxRaiseAmount is the largest legal raise on top of the call
func (p *Player) MaxRaiseAmount() int {
	return p.Balance - p.CallAmount()
}

// CanFold reports whether the player is still live in this deal with chips
func (p *Player) CanFold() bool {
	return !p.HasLost && !p.HasFolded && p.Balance > 0
}

// CanCheck reports whether the player may pass without betting
func (p *Player) CanCheck() bool {
	return p.CanFold() && p.CallAmount() == 0
}

// CanCall reports whether the player can cover the outstanding call
func (p *Player) CanCall() bool {
	return !p.HasLost && !p.HasFolded && p.CallAmount() <= p.Balance
}

// CanRaise reports whether a legal raise amount exists
func (p *Player) CanRaise() bool {
	return !p.HasLost && !p.HasFolded && p.MinRaiseAmount() <= p.MaxRaiseAmount()
}

// CanAllIn reports whether the player may move their whole stack in
func (p *Player) CanAllIn() bool {
	return p.CanFold()
}

// IncreaseBet moves amount from balance to the player's bet, clamping to the
// available balance. It never errors; overshooting is all-in semantics.
func (p *Player) IncreaseBet(amount int) {
	if amount > p.Balance {
		amount = p.Balance
	}
	p.BetAmount += amount
	p.Balance -= amount
}

// BestCombination evaluates the player's best hand over community plus hole
// cards. ok is false before a deal, when fewer than five cards are visible.
func (p *Player) BestCombination() (poker.Combination, bool) {
	pool := make([]poker.Card, 0, len(p.room.Cards)+len(p.Cards))
	pool = append(pool, p.room.Cards...)
	pool = append(pool, p.Cards...)
	return poker.Best(pool)
}
