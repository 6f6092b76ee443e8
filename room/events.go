package room

// EventType names a room event. The names and payload shapes are the public
// contract with embedding applications.
type EventType string

const (
	EventNextDeal  EventType = "nextDeal"
	EventDealEnded EventType = "dealEnded"
	EventNextTurn  EventType = "nextTurn"
	EventGameEnded EventType = "gameEnded"
	EventFold      EventType = "fold"
	EventCheck     EventType = "check"
	EventCall      EventType = "call"
	EventRaise     EventType = "raise"
	EventAllIn     EventType = "allIn"
)

// String returns the string representation of the event type
func (et EventType) String() string {
	return string(et)
}

// Event is any notification emitted by a room
type Event interface {
	EventType() EventType
}

// NextDealEvent is emitted when a new deal starts
type NextDealEvent struct {
	DealerID     string
	SmallBlindID string
	BigBlindID   string
}

func (NextDealEvent) EventType() EventType { return EventNextDeal }

// DealEndedEvent is emitted after pot settlement with the full winners
// ledger: player id to total amount won across all pot layers.
type DealEndedEvent struct {
	Winners map[string]int
}

func (DealEndedEvent) EventType() EventType { return EventDealEnded }

// NextTurnEvent is emitted when the turn moves to a player
type NextTurnEvent struct {
	PlayerID string
}

func (NextTurnEvent) EventType() EventType { return EventNextTurn }

// GameEndedEvent is emitted when fewer than two players remain and the room
// is torn down.
type GameEndedEvent struct{}

func (GameEndedEvent) EventType() EventType { return EventGameEnded }

// FoldEvent is emitted when a player folds
type FoldEvent struct {
	PlayerID string
}

func (FoldEvent) EventType() EventType { return EventFold }

// CheckEvent is emitted when a player checks
type CheckEvent struct {
	PlayerID string
}

func (CheckEvent) EventType() EventType { return EventCheck }

// CallEvent is emitted when a player calls
type CallEvent struct {
	PlayerID string
}

func (CallEvent) EventType() EventType { return EventCall }

// RaiseEvent is emitted when a player raises by Amount on top of the call
type RaiseEvent struct {
	PlayerID string
	Amount   int
}

func (RaiseEvent) EventType() EventType { return EventRaise }

// AllInEvent is emitted when a player moves their whole balance in
type AllInEvent struct {
	PlayerID string
}

func (AllInEvent) EventType() EventType { return EventAllIn }

// Subscriber receives room events
type Subscriber interface {
	OnEvent(event Event)
}

// SubscriberFunc adapts a function to the Subscriber interface. Func values
// are not comparable, so a SubscriberFunc cannot be passed to Unsubscribe;
// use a struct subscriber when removal is needed.
type SubscriberFunc func(event Event)

// OnEvent calls f(event)
func (f SubscriberFunc) OnEvent(event Event) { f(event) }

// Emitter delivers events synchronously to registered subscribers, in
// registration order, with no queueing. Subscribers must not block.
type Emitter struct {
	subscribers []Subscriber
}

// Subscribe registers a subscriber
func (e *Emitter) Subscribe(subscriber Subscriber) {
	e.subscribers = append(e.subscribers, subscriber)
}

// Unsubscribe removes a previously registered subscriber
func (e *Emitter) Unsubscribe(subscriber Subscriber) {
	for i, sub := range e.subscribers {
		if sub == subscriber {
			e.subscribers = append(e.subscribers[:i], e.subscribers[i+1:]...)
			break
		}
	}
}

func (e *Emitter) publish(event Event) {
	for _, subscriber := range e.subscribers {
		subscriber.OnEvent(event)
	}
}
