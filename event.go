package holdemtable

type EventKind string

const (
	EventKind_TableCreated   EventKind = "TableCreated"
	EventKind_CardsShuffled  EventKind = "CardsShuffled"
	EventKind_HandDealt      EventKind = "HandDealt"
	EventKind_PlayerChecked  EventKind = "PlayerChecked"
	EventKind_PlayerCalled   EventKind = "PlayerCalled"
	EventKind_PlayerFolded   EventKind = "PlayerFolded"
	EventKind_PlayerRaised   EventKind = "PlayerRaised"
	EventKind_RoundCompleted EventKind = "RoundCompleted"
	EventKind_FlopCardsDealt EventKind = "FlopCardsDealt"
	EventKind_TurnCardDealt  EventKind = "TurnCardDealt"
	EventKind_RiverCardDealt EventKind = "RiverCardDealt"
	EventKind_HandCompleted  EventKind = "HandCompleted"
)

// Event is the closed set of table events. Only types in this package implement it.
type Event interface {
	Header() EventHeader
	Kind() EventKind
	isEvent()
}

type EventHeader struct {
	TableID string `json:"table_id"`
	GameID  string `json:"game_id"`
	Version int    `json:"version"`
}

func (h EventHeader) Header() EventHeader {
	return h
}

type TableCreatedEvent struct {
	EventHeader
	SeatMap               []string         `json:"seat_map"`
	StartingNumberOfChips int64            `json:"starting_number_of_chips"`
	ChipsInBack           map[string]int64 `json:"chips_in_back"`
}

type CardsShuffledEvent struct {
	EventHeader
	HandID string   `json:"hand_id"`
	Deck   []string `json:"deck"`
}

// HandDealtEvent snapshots the whole starting state of a hand.
type HandDealtEvent struct {
	EventHeader
	Hand Hand `json:"hand"`
}

type PlayerCheckedEvent struct {
	EventHeader
	HandID   string `json:"hand_id"`
	PlayerID string `json:"player_id"`
}

type PlayerCalledEvent struct {
	EventHeader
	HandID   string `json:"hand_id"`
	PlayerID string `json:"player_id"`
	Amount   int64  `json:"amount"`
}

type PlayerFoldedEvent struct {
	EventHeader
	HandID   string `json:"hand_id"`
	PlayerID string `json:"player_id"`
}

type PlayerRaisedEvent struct {
	EventHeader
	HandID        string `json:"hand_id"`
	PlayerID      string `json:"player_id"`
	RaiseToAmount int64  `json:"raise_to_amount"`
}

type RoundCompletedEvent struct {
	EventHeader
	HandID      string      `json:"hand_id"`
	DealerState DealerState `json:"dealer_state"`
	Pots        []Pot       `json:"pots"`
}

type FlopCardsDealtEvent struct {
	EventHeader
	HandID    string   `json:"hand_id"`
	FlopCards []string `json:"flop_cards"`
}

type TurnCardDealtEvent struct {
	EventHeader
	HandID   string `json:"hand_id"`
	TurnCard string `json:"turn_card"`
}

type RiverCardDealtEvent struct {
	EventHeader
	HandID    string `json:"hand_id"`
	RiverCard string `json:"river_card"`
}

type HandCompletedEvent struct {
	EventHeader
	HandID   string     `json:"hand_id"`
	Showdown bool       `json:"showdown"`
	Awards   []PotAward `json:"awards"`
}

func (TableCreatedEvent) Kind() EventKind   { return EventKind_TableCreated }
func (CardsShuffledEvent) Kind() EventKind  { return EventKind_CardsShuffled }
func (HandDealtEvent) Kind() EventKind      { return EventKind_HandDealt }
func (PlayerCheckedEvent) Kind() EventKind  { return EventKind_PlayerChecked }
func (PlayerCalledEvent) Kind() EventKind   { return EventKind_PlayerCalled }
func (PlayerFoldedEvent) Kind() EventKind   { return EventKind_PlayerFolded }
func (PlayerRaisedEvent) Kind() EventKind   { return EventKind_PlayerRaised }
func (RoundCompletedEvent) Kind() EventKind { return EventKind_RoundCompleted }
func (FlopCardsDealtEvent) Kind() EventKind { return EventKind_FlopCardsDealt }
func (TurnCardDealtEvent) Kind() EventKind  { return EventKind_TurnCardDealt }
func (RiverCardDealtEvent) Kind() EventKind { return EventKind_RiverCardDealt }
func (HandCompletedEvent) Kind() EventKind  { return EventKind_HandCompleted }

func (TableCreatedEvent) isEvent()   {}
func (CardsShuffledEvent) isEvent()  {}
func (HandDealtEvent) isEvent()      {}
func (PlayerCheckedEvent) isEvent()  {}
func (PlayerCalledEvent) isEvent()   {}
func (PlayerFoldedEvent) isEvent()   {}
func (PlayerRaisedEvent) isEvent()   {}
func (RoundCompletedEvent) isEvent() {}
func (FlopCardsDealtEvent) isEvent() {}
func (TurnCardDealtEvent) isEvent()  {}
func (RiverCardDealtEvent) isEvent() {}
func (HandCompletedEvent) isEvent()  {}
