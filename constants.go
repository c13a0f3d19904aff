package holdemtable

const (
	// General
	UnsetValue = -1

	// Table
	DefaultNumberOfSeats = 6
	DefaultStartingChips = int64(1500)
	DefaultSmallBlind    = int64(10)
	DefaultBigBlind      = int64(20)

	// Player Action
	Action_Check = "check"
	Action_Call  = "call"
	Action_Fold  = "fold"
	Action_Raise = "raise"

	// Hole cards per player
	PocketCardsCount = 2
)

type DealerState string

const (
	DealerState_None             DealerState = "none"
	DealerState_PocketCardsDealt DealerState = "pocket_cards_dealt"
	DealerState_FlopDealt        DealerState = "flop_dealt"
	DealerState_TurnDealt        DealerState = "turn_dealt"
	DealerState_RiverDealt       DealerState = "river_dealt"
	DealerState_Showdown         DealerState = "showdown"
)

type RoundState string

const (
	RoundState_InProgress RoundState = "round_in_progress"
	RoundState_Complete   RoundState = "round_complete"
)
