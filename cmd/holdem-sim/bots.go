package main

import (
	"context"
	rand "math/rand/v2"

	"github.com/lox/holdem-engine/room"
)

// bot picks one legal action per turn. The caller policy checks or calls its
// way to showdown; the random policy spreads over every legal action so
// raises, all-ins and folds all get exercised.
type bot struct {
	id     string
	policy string
	rng    *rand.Rand
}

func newBot(id, policy string, rng *rand.Rand) *bot {
	return &bot{id: id, policy: policy, rng: rng}
}

func (b *bot) act(ctx context.Context, r *room.Room, p *room.Player) error {
	if b.policy == "random" {
		return b.actRandom(ctx, r, p)
	}
	return b.actCaller(ctx, r, p)
}

func (b *bot) actCaller(ctx context.Context, r *room.Room, p *room.Player) error {
	switch {
	case p.CanCheck():
		return r.Check(ctx, b.id)
	case p.CanCall():
		return r.Call(ctx, b.id)
	case p.CanAllIn():
		return r.AllIn(ctx, b.id)
	default:
		return r.Fold(ctx, b.id)
	}
}

func (b *bot) actRandom(ctx context.Context, r *room.Room, p *room.Player) error {
	type action func() error
	var actions []action

	if p.CanCheck() {
		actions = append(actions, func() error { return r.Check(ctx, b.id) })
	}
	if p.CanCall() && p.CallAmount() > 0 {
		actions = append(actions, func() error { return r.Call(ctx, b.id) })
	}
	if p.CanRaise() {
		actions = append(actions, func() error {
			span := p.MaxRaiseAmount() - p.MinRaiseAmount()
			amount := p.MinRaiseAmount()
			if span > 0 {
				amount += b.rng.IntN(span + 1)
			}
			return r.Raise(ctx, b.id, amount)
		})
	}
	if p.CanFold() {
		actions = append(actions, func() error { return r.Fold(ctx, b.id) })
	}
	if p.CanAllIn() {
		actions = append(actions, func() error { return r.AllIn(ctx, b.id) })
	}

	if len(actions) == 0 {
		// the engine never hands the turn to a player with no legal action
		return r.Fold(ctx, b.id)
	}
	return actions[b.rng.IntN(len(actions))]()
}
