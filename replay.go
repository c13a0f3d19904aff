package holdemtable

import (
	"encoding/json"
	"errors"
	"fmt"
)

var (
	ErrReplayUnknownEvent  = errors.New("replay: unknown event kind")
	ErrReplayVersionGap    = errors.New("replay: event sequence gap")
	ErrReplayTableMismatch = errors.New("replay: event belongs to another table")
	ErrReplayHandMismatch  = errors.New("replay: event does not match the current hand")
)

// Replay folds an ordered event history into a table, starting from the empty table.
func Replay(events []Event) (*Table, error) {
	t := &Table{
		ChipsInBack: make(map[string]int64),
	}

	for _, e := range events {
		if err := t.apply(e); err != nil {
			return nil, err
		}
	}
	return t, nil
}

func (t *Table) apply(e Event) error {
	if e == nil {
		return fmt.Errorf("%w: nil event", ErrReplayUnknownEvent)
	}

	header := e.Header()
	if header.Version != t.Version+1 {
		return fmt.Errorf("%w: expected %d got %d", ErrReplayVersionGap, t.Version+1, header.Version)
	}

	if t.ID != "" && header.TableID != t.ID {
		return fmt.Errorf("%w: %s", ErrReplayTableMismatch, header.TableID)
	}

	switch ev := e.(type) {
	case TableCreatedEvent:
		t.applyTableCreated(ev)
	case CardsShuffledEvent:
		// 洗牌結果同時記錄在 HandDealt 的手牌與公牌中
	case HandDealtEvent:
		if err := t.applyHandDealt(ev); err != nil {
			return err
		}
	case PlayerCheckedEvent:
		if err := t.withHand(ev.HandID, func(h *Hand) { h.applyChecked(ev) }); err != nil {
			return err
		}
	case PlayerCalledEvent:
		if err := t.withHand(ev.HandID, func(h *Hand) { h.applyCalled(ev) }); err != nil {
			return err
		}
	case PlayerFoldedEvent:
		if err := t.withHand(ev.HandID, func(h *Hand) { h.applyFolded(ev) }); err != nil {
			return err
		}
	case PlayerRaisedEvent:
		if err := t.withHand(ev.HandID, func(h *Hand) { h.applyRaised(ev) }); err != nil {
			return err
		}
	case RoundCompletedEvent:
		if err := t.withHand(ev.HandID, func(h *Hand) { h.applyRoundCompleted(ev) }); err != nil {
			return err
		}
	case FlopCardsDealtEvent:
		if err := t.withHand(ev.HandID, func(h *Hand) {
			h.FlopCards = append([]string{}, ev.FlopCards...)
			h.applyStreetDealt(DealerState_FlopDealt)
		}); err != nil {
			return err
		}
	case TurnCardDealtEvent:
		if err := t.withHand(ev.HandID, func(h *Hand) {
			h.TurnCard = ev.TurnCard
			h.applyStreetDealt(DealerState_TurnDealt)
		}); err != nil {
			return err
		}
	case RiverCardDealtEvent:
		if err := t.withHand(ev.HandID, func(h *Hand) {
			h.RiverCard = ev.RiverCard
			h.applyStreetDealt(DealerState_RiverDealt)
		}); err != nil {
			return err
		}
	case HandCompletedEvent:
		if err := t.applyHandCompleted(ev); err != nil {
			return err
		}
	default:
		return fmt.Errorf("%w: %T", ErrReplayUnknownEvent, e)
	}

	t.Version = header.Version
	return nil
}

func (t *Table) applyTableCreated(e TableCreatedEvent) {
	t.ID = e.TableID
	t.GameID = e.GameID
	t.SeatMap = append([]string{}, e.SeatMap...)
	t.StartingChips = e.StartingNumberOfChips
	t.ChipsInBack = make(map[string]int64)
	for playerID, chips := range e.ChipsInBack {
		t.ChipsInBack[playerID] = chips
	}
}

func (t *Table) applyHandDealt(e HandDealtEvent) error {
	if t.CurrentHand != nil {
		return fmt.Errorf("%w: hand %s dealt while %s in progress", ErrReplayHandMismatch, e.Hand.ID, t.CurrentHand.ID)
	}

	hand, err := cloneHand(e.Hand)
	if err != nil {
		return err
	}
	t.CurrentHand = hand
	return nil
}

func (t *Table) applyHandCompleted(e HandCompletedEvent) error {
	return t.withHand(e.HandID, func(h *Hand) {
		h.applyAwards(e.Awards)
		if e.Showdown {
			h.DealerState = DealerState_Showdown
		}

		for playerID, chips := range h.ChipsInBack {
			t.ChipsInBack[playerID] = chips
		}
		t.CurrentHand = nil
		t.HandsPlayed++
	})
}

func (t *Table) withHand(handID string, fn func(h *Hand)) error {
	if t.CurrentHand == nil || t.CurrentHand.ID != handID {
		return fmt.Errorf("%w: %s", ErrReplayHandMismatch, handID)
	}
	fn(t.CurrentHand)
	return nil
}

func cloneHand(h Hand) (*Hand, error) {
	data, err := json.Marshal(h)
	if err != nil {
		return nil, err
	}

	var cloned Hand
	if err := json.Unmarshal(data, &cloned); err != nil {
		return nil, err
	}
	return &cloned, nil
}
