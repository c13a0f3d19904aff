package holdemtable

import (
	"github.com/thoas/go-funk"
	"github.com/weedbox/holdemtable/position"
	"github.com/weedbox/holdemtable/seat_manager"
)

type handSetup struct {
	HandID      string
	TableID     string
	GameID      string
	SeatMap     []string
	Blinds      Blinds
	Positions   seat_manager.Positions
	ChipsInBack map[string]int64
	PocketCards map[string][]string
	Board       []string
	Evaluations map[string]HandRank
}

func newHand(setup handSetup) *Hand {
	sm := seat_manager.NewSeatManagerFromSeats(setup.SeatMap)

	h := &Hand{
		ID:                 setup.HandID,
		TableID:            setup.TableID,
		GameID:             setup.GameID,
		SeatMap:            sm.Seats(),
		Blinds:             setup.Blinds,
		ButtonOnPosition:   setup.Positions.DealerSeatID,
		SmallBlindPosition: setup.Positions.SBSeatID,
		BigBlindPosition:   setup.Positions.BBSeatID,
		ActionOnPosition:   UnsetValue,
		LastToActPosition:  UnsetValue,
		Positions:          position.GetPlayerPositionMap(sm.ListPlayerIDsFrom(setup.Positions.DealerSeatID)),
		PocketCards:        setup.PocketCards,
		Board:              append([]string{}, setup.Board...),
		FlopCards:          []string{},
		HandEvaluations:    setup.Evaluations,
		DealerState:        DealerState_PocketCardsDealt,
		RoundState:         RoundState_InProgress,
		PlayersStillInHand: sm.ListPlayerIDsFrom(0),
		ChipsInBack:        make(map[string]int64),
		ChipsInFront:       make(map[string]int64),
		Contributions:      make(map[string]int64),
		MinimumIncrement:   setup.Blinds.BigBlind,
	}

	for _, playerID := range h.PlayersStillInHand {
		h.ChipsInBack[playerID] = setup.ChipsInBack[playerID]
		h.ChipsInFront[playerID] = 0
		h.Contributions[playerID] = 0
	}

	h.postBlind(h.SeatMap[h.SmallBlindPosition], setup.Blinds.SmallBlind)
	h.postBlind(h.SeatMap[h.BigBlindPosition], setup.Blinds.BigBlind)
	for _, chips := range h.ChipsInFront {
		if chips > h.CurrentBet {
			h.CurrentBet = chips
		}
	}

	h.Pots = []Pot{{Amount: 0, EligiblePlayers: append([]string{}, h.PlayersStillInHand...)}}

	// 翻牌前從 BB 下家開始行動
	h.startBettingRound(h.BigBlindPosition)
	return h
}

// postBlind posts up to the player's stack.
func (h *Hand) postBlind(playerID string, amount int64) {
	if amount > h.ChipsInBack[playerID] {
		amount = h.ChipsInBack[playerID]
	}
	h.moveChipsToFront(playerID, amount)
}

func (h *Hand) moveChipsToFront(playerID string, amount int64) {
	h.ChipsInBack[playerID] -= amount
	h.ChipsInFront[playerID] += amount
	h.Contributions[playerID] += amount
}

func (h *Hand) actablePlayers() []string {
	players := make([]string, 0)
	for _, playerID := range h.SeatMap {
		if playerID != seat_manager.EmptySeat && h.CanAct(playerID) {
			players = append(players, playerID)
		}
	}
	return players
}

/*
startBettingRound 開始新的一輪下注
  - 第一位行動玩家為 afterSeatID 之後第一位可行動玩家
  - 最後行動玩家為第一位行動玩家之前的可行動玩家
*/
func (h *Hand) startBettingRound(afterSeatID int) {
	sm := h.seatManager()
	canAct := func(playerID string) bool { return h.CanAct(playerID) }

	h.RoundState = RoundState_InProgress
	h.ActionOnPosition = sm.NextSeatID(afterSeatID, canAct)
	h.LastToActPosition = UnsetValue
	if h.ActionOnPosition != UnsetValue {
		h.LastToActPosition = sm.PreviousSeatID(h.ActionOnPosition, canAct)
	}

	if h.shouldCompleteRound() {
		h.completeRound()
	}

	h.refreshPossibleActions()
}

// shouldCompleteRound is true when nobody is left who could still change the betting.
func (h *Hand) shouldCompleteRound() bool {
	if len(h.PlayersStillInHand) <= 1 {
		return true
	}

	actable := h.actablePlayers()
	if len(actable) == 0 {
		return true
	}
	return len(actable) == 1 && h.owes(actable[0]) == 0
}

func (h *Hand) completeRound() {
	h.RoundState = RoundState_Complete
	h.ActionOnPosition = UnsetValue
	h.LastToActPosition = UnsetValue
}

/*
advanceAction 行動後決定下一位行動玩家
  - 最後行動玩家 check/call/fold 後本輪結束
  - 加注後由加注者下家繼續
*/
func (h *Hand) advanceAction(playerID string, raised bool) {
	seatID := h.seatOf(playerID)

	if (!raised && seatID == h.LastToActPosition) || h.shouldCompleteRound() {
		h.completeRound()
		h.refreshPossibleActions()
		return
	}

	canAct := func(playerID string) bool { return h.CanAct(playerID) }
	next := h.seatManager().NextSeatID(seatID, canAct)
	if next == UnsetValue {
		h.completeRound()
	} else {
		h.ActionOnPosition = next
	}

	h.refreshPossibleActions()
}

func (h *Hand) refreshPossibleActions() {
	h.PossibleActions = make(map[string][]string)
	h.CallAmounts = make(map[string]int64)
	h.RaiseToAmounts = make(map[string]int64)

	if h.RoundState != RoundState_InProgress {
		return
	}

	actable := h.actablePlayers()
	minRaiseTo := h.CurrentBet + h.MinimumIncrement

	for _, playerID := range actable {
		owes := h.owes(playerID)
		stack := h.ChipsInBack[playerID]

		actions := make([]string, 0, 3)
		if owes == 0 {
			actions = append(actions, Action_Check)
			h.CallAmounts[playerID] = 0
		} else {
			actions = append(actions, Action_Call, Action_Fold)
			if owes > stack {
				h.CallAmounts[playerID] = stack
			} else {
				h.CallAmounts[playerID] = owes
			}
		}

		if len(actable) > 1 && h.ChipsInFront[playerID]+stack >= minRaiseTo {
			actions = append(actions, Action_Raise)
			h.RaiseToAmounts[playerID] = minRaiseTo
		}

		h.PossibleActions[playerID] = actions
	}
}

func (h *Hand) applyChecked(e PlayerCheckedEvent) {
	h.advanceAction(e.PlayerID, false)
}

func (h *Hand) applyCalled(e PlayerCalledEvent) {
	h.moveChipsToFront(e.PlayerID, e.Amount)
	h.advanceAction(e.PlayerID, false)
}

func (h *Hand) applyFolded(e PlayerFoldedEvent) {
	h.PlayersStillInHand = funk.Filter(h.PlayersStillInHand, func(playerID string) bool {
		return playerID != e.PlayerID
	}).([]string)
	h.advanceAction(e.PlayerID, false)
}

func (h *Hand) applyRaised(e PlayerRaisedEvent) {
	h.moveChipsToFront(e.PlayerID, e.RaiseToAmount-h.ChipsInFront[e.PlayerID])

	if increment := e.RaiseToAmount - h.CurrentBet; increment > h.MinimumIncrement {
		h.MinimumIncrement = increment
	}
	h.CurrentBet = e.RaiseToAmount

	// 加注後最後行動玩家改為加注者的上一位可行動玩家
	h.LastToActPosition = h.seatManager().PreviousSeatID(h.seatOf(e.PlayerID), func(playerID string) bool {
		return playerID != e.PlayerID && h.CanAct(playerID)
	})

	h.advanceAction(e.PlayerID, true)
}

func (h *Hand) applyRoundCompleted(e RoundCompletedEvent) {
	h.Pots = clonePots(e.Pots)
	for playerID := range h.ChipsInFront {
		h.ChipsInFront[playerID] = 0
	}
	h.CurrentBet = 0
	h.completeRound()
	h.refreshPossibleActions()
}

// applyStreetDealt opens the next betting round, starting after the button.
func (h *Hand) applyStreetDealt(state DealerState) {
	h.DealerState = state
	h.CurrentBet = 0
	h.MinimumIncrement = h.Blinds.BigBlind
	h.startBettingRound(h.ButtonOnPosition)
}

func (h *Hand) applyAwards(awards []PotAward) {
	for _, award := range awards {
		for playerID, share := range award.Shares {
			h.ChipsInBack[playerID] += share
		}
	}

	h.Pots = []Pot{}
	h.completeRound()
	h.refreshPossibleActions()
}

func clonePots(pots []Pot) []Pot {
	cloned := make([]Pot, 0, len(pots))
	for _, pot := range pots {
		cloned = append(cloned, Pot{
			Amount:          pot.Amount,
			EligiblePlayers: append([]string{}, pot.EligiblePlayers...),
		})
	}
	return cloned
}
