package holdemtable

// decision folds newly emitted events into a private working copy, so later
// events in the same command see the state produced by earlier ones.
type decision struct {
	table  *Table
	events []Event
}

func newDecision(t Table) (*decision, error) {
	working, err := t.Clone()
	if err != nil {
		return nil, err
	}

	return &decision{
		table:  working,
		events: make([]Event, 0),
	}, nil
}

func (d *decision) header() EventHeader {
	return EventHeader{
		TableID: d.table.ID,
		GameID:  d.table.GameID,
		Version: d.table.Version + 1,
	}
}

func (d *decision) emit(e Event) error {
	if err := d.table.apply(e); err != nil {
		return err
	}
	d.events = append(d.events, e)
	return nil
}

/*
progressHand 本輪結束後推進牌局
  - 收池
  - 只剩一位玩家時直接結束
  - 河牌圈結束時攤牌
  - 否則發下一條街, 若沒有人能再行動則繼續發到攤牌
*/
func (d *decision) progressHand() error {
	for {
		hand := d.table.CurrentHand
		if hand == nil || hand.RoundState != RoundState_Complete {
			return nil
		}

		if err := d.emit(RoundCompletedEvent{
			EventHeader: d.header(),
			HandID:      hand.ID,
			DealerState: hand.DealerState,
			Pots:        hand.calculatePots(),
		}); err != nil {
			return err
		}

		hand = d.table.CurrentHand
		if len(hand.PlayersStillInHand) == 1 {
			return d.emit(HandCompletedEvent{
				EventHeader: d.header(),
				HandID:      hand.ID,
				Showdown:    false,
				Awards:      hand.lastPlayerAwards(),
			})
		}

		var next Event
		switch hand.DealerState {
		case DealerState_PocketCardsDealt:
			next = FlopCardsDealtEvent{EventHeader: d.header(), HandID: hand.ID, FlopCards: append([]string{}, hand.Board[:3]...)}
		case DealerState_FlopDealt:
			next = TurnCardDealtEvent{EventHeader: d.header(), HandID: hand.ID, TurnCard: hand.Board[3]}
		case DealerState_TurnDealt:
			next = RiverCardDealtEvent{EventHeader: d.header(), HandID: hand.ID, RiverCard: hand.Board[4]}
		default:
			return d.emit(HandCompletedEvent{
				EventHeader: d.header(),
				HandID:      hand.ID,
				Showdown:    true,
				Awards:      hand.showdownAwards(),
			})
		}

		if err := d.emit(next); err != nil {
			return err
		}
	}
}
