package server

import (
	"encoding/json"
	"fmt"

	"github.com/lox/holdem-engine/poker"
	"github.com/lox/holdem-engine/room"
)

// MessageType identifies a websocket message. Client requests use imperative
// names; server pushes reuse the room's event names verbatim.
type MessageType string

const (
	// client -> server
	MessageTypeCreateRoom MessageType = "createRoom"
	MessageTypeJoinRoom   MessageType = "joinRoom"
	MessageTypeDealCards  MessageType = "dealCards"
	MessageTypeFold       MessageType = "fold"
	MessageTypeCheck      MessageType = "check"
	MessageTypeCall       MessageType = "call"
	MessageTypeRaise      MessageType = "raise"
	MessageTypeAllIn      MessageType = "allIn"

	// server -> client
	MessageTypeRoomCreated MessageType = "roomCreated"
	MessageTypeJoined      MessageType = "joined"
	MessageTypeHoleCards   MessageType = "holeCards"
	MessageTypeError       MessageType = "error"
)

// Message is the envelope for every websocket frame
type Message struct {
	Type MessageType     `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}

// NewMessage builds a message, marshalling data into the envelope
func NewMessage(msgType MessageType, data any) (*Message, error) {
	msg := &Message{Type: msgType}
	if data != nil {
		raw, err := json.Marshal(data)
		if err != nil {
			return nil, fmt.Errorf("marshal %s data: %w", msgType, err)
		}
		msg.Data = raw
	}
	return msg, nil
}

// CreateRoomData asks for a new room; a zero BaseBet uses the server default
type CreateRoomData struct {
	BaseBet int `json:"base_bet,omitempty"`
}

// RoomCreatedData answers a createRoom request
type RoomCreatedData struct {
	RoomID string `json:"room_id"`
}

// JoinRoomData seats the connection's player in a room. A zero Balance uses
// the server default.
type JoinRoomData struct {
	RoomID   string `json:"room_id"`
	PlayerID string `json:"player_id"`
	Balance  int    `json:"balance,omitempty"`
}

// JoinedData answers a joinRoom request
type JoinedData struct {
	RoomID   string `json:"room_id"`
	PlayerID string `json:"player_id"`
	Balance  int    `json:"balance"`
}

// RaiseData carries the raise amount on top of the call
type RaiseData struct {
	Amount int `json:"amount"`
}

// HoleCardsData is sent privately to each seated connection when a deal
// starts.
type HoleCardsData struct {
	Cards   []string `json:"cards"`
	Balance int      `json:"balance"`
	BaseBet int      `json:"base_bet"`
}

// ErrorData reports a rejected request. Code holds the room's action code
// when the rejection came from the engine.
type ErrorData struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Event payloads pushed to every connection in a room

type nextDealData struct {
	Dealer     string `json:"dealer"`
	SmallBlind string `json:"small_blind"`
	BigBlind   string `json:"big_blind"`
}

type dealEndedData struct {
	Winners map[string]int `json:"winners"`
}

type playerData struct {
	PlayerID string `json:"player_id"`
}

type raiseEventData struct {
	PlayerID string `json:"player_id"`
	Amount   int    `json:"amount"`
}

// eventMessage converts a room event into its wire form. The message type is
// the event's name, so clients can switch on it directly.
func eventMessage(event room.Event) (*Message, error) {
	msgType := MessageType(event.EventType().String())

	switch e := event.(type) {
	case room.NextDealEvent:
		return NewMessage(msgType, nextDealData{
			Dealer:     e.DealerID,
			SmallBlind: e.SmallBlindID,
			BigBlind:   e.BigBlindID,
		})
	case room.DealEndedEvent:
		return NewMessage(msgType, dealEndedData{Winners: e.Winners})
	case room.NextTurnEvent:
		return NewMessage(msgType, playerData{PlayerID: e.PlayerID})
	case room.GameEndedEvent:
		return NewMessage(msgType, nil)
	case room.FoldEvent:
		return NewMessage(msgType, playerData{PlayerID: e.PlayerID})
	case room.CheckEvent:
		return NewMessage(msgType, playerData{PlayerID: e.PlayerID})
	case room.CallEvent:
		return NewMessage(msgType, playerData{PlayerID: e.PlayerID})
	case room.RaiseEvent:
		return NewMessage(msgType, raiseEventData{PlayerID: e.PlayerID, Amount: e.Amount})
	case room.AllInEvent:
		return NewMessage(msgType, playerData{PlayerID: e.PlayerID})
	default:
		return nil, fmt.Errorf("unknown event type %T", event)
	}
}

func cardNames(cards []poker.Card) []string {
	out := make([]string, len(cards))
	for i, c := range cards {
		out[i] = c.String()
	}
	return out
}
