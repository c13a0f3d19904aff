package holdemtable

import (
	"encoding/json"
	"fmt"
)

// EventEnvelope is the wire form of an event: header fields plus the raw payload.
type EventEnvelope struct {
	TableID string          `json:"table_id"`
	Version int             `json:"version"`
	Kind    EventKind       `json:"kind"`
	Payload json.RawMessage `json:"payload"`
}

var eventDecoders = map[EventKind]func(data []byte) (Event, error){
	EventKind_TableCreated:   decodeEvent[TableCreatedEvent],
	EventKind_CardsShuffled:  decodeEvent[CardsShuffledEvent],
	EventKind_HandDealt:      decodeEvent[HandDealtEvent],
	EventKind_PlayerChecked:  decodeEvent[PlayerCheckedEvent],
	EventKind_PlayerCalled:   decodeEvent[PlayerCalledEvent],
	EventKind_PlayerFolded:   decodeEvent[PlayerFoldedEvent],
	EventKind_PlayerRaised:   decodeEvent[PlayerRaisedEvent],
	EventKind_RoundCompleted: decodeEvent[RoundCompletedEvent],
	EventKind_FlopCardsDealt: decodeEvent[FlopCardsDealtEvent],
	EventKind_TurnCardDealt:  decodeEvent[TurnCardDealtEvent],
	EventKind_RiverCardDealt: decodeEvent[RiverCardDealtEvent],
	EventKind_HandCompleted:  decodeEvent[HandCompletedEvent],
}

func decodeEvent[T Event](data []byte) (Event, error) {
	var e T
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, err
	}
	return e, nil
}

// EncodeEvent returns the kind and JSON payload of an event.
func EncodeEvent(e Event) (EventKind, []byte, error) {
	payload, err := json.Marshal(e)
	if err != nil {
		return "", nil, fmt.Errorf("encode event %s: %w", e.Kind(), err)
	}
	return e.Kind(), payload, nil
}

// DecodeEvent rebuilds an event from its kind and payload. Unknown kinds fail with ErrReplayUnknownEvent.
func DecodeEvent(kind EventKind, payload []byte) (Event, error) {
	decoder, exist := eventDecoders[kind]
	if !exist {
		return nil, fmt.Errorf("%w: %s", ErrReplayUnknownEvent, kind)
	}

	e, err := decoder(payload)
	if err != nil {
		return nil, fmt.Errorf("decode event %s: %w", kind, err)
	}
	return e, nil
}

func MarshalEvent(e Event) ([]byte, error) {
	kind, payload, err := EncodeEvent(e)
	if err != nil {
		return nil, err
	}

	header := e.Header()
	return json.Marshal(EventEnvelope{
		TableID: header.TableID,
		Version: header.Version,
		Kind:    kind,
		Payload: payload,
	})
}

func UnmarshalEvent(data []byte) (Event, error) {
	var envelope EventEnvelope
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, fmt.Errorf("decode event envelope: %w", err)
	}
	return DecodeEvent(envelope.Kind, envelope.Payload)
}
