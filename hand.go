package holdemtable

import (
	"errors"
	"fmt"

	"github.com/thoas/go-funk"
	"github.com/weedbox/holdemtable/seat_manager"
)

var (
	ErrHandNotPlayersTurn     = errors.New("hand: action is not on player")
	ErrHandIllegalAction      = errors.New("hand: action is not allowed")
	ErrHandRaiseBelowMinimum  = errors.New("hand: raise is below the minimum raise")
	ErrHandInsufficientChips  = errors.New("hand: insufficient chips")
	ErrHandRoundNotInProgress = errors.New("hand: betting round is not in progress")
	ErrInvalidBlinds          = errors.New("hand: invalid blinds")
)

type Blinds struct {
	SmallBlind int64 `json:"small_blind"`
	BigBlind   int64 `json:"big_blind"`
}

func (b Blinds) Validate() error {
	if b.SmallBlind <= 0 || b.BigBlind < b.SmallBlind {
		return fmt.Errorf("%w: %d/%d", ErrInvalidBlinds, b.SmallBlind, b.BigBlind)
	}
	return nil
}

type Pot struct {
	Amount          int64    `json:"amount"`
	EligiblePlayers []string `json:"eligible_players"`
}

type PotAward struct {
	PotIndex int              `json:"pot_index"`
	Amount   int64            `json:"amount"`
	Winners  []string         `json:"winners"`
	Shares   map[string]int64 `json:"shares"`
}

/*
Hand 一手牌的狀態
  - SeatMap 只包含本手發牌的玩家, 沒籌碼的玩家視為空位
  - ChipsInBack 為玩家手上剩餘籌碼, ChipsInFront 為本輪下注
  - Contributions 為本手累計投入, 用來計算邊池
*/
type Hand struct {
	ID      string   `json:"id"`
	TableID string   `json:"table_id"`
	GameID  string   `json:"game_id"`
	SeatMap []string `json:"seat_map"`
	Blinds  Blinds   `json:"blinds"`

	ButtonOnPosition   int `json:"button_on_position"`
	SmallBlindPosition int `json:"small_blind_position"`
	BigBlindPosition   int `json:"big_blind_position"`
	ActionOnPosition   int `json:"action_on_position"`
	LastToActPosition  int `json:"last_to_act_position"`

	Positions       map[string][]string `json:"positions"`
	PocketCards     map[string][]string `json:"pocket_cards"`
	Board           []string            `json:"board"` // 發牌時決定的五張公牌, 依街道逐步公開
	FlopCards       []string            `json:"flop_cards"`
	TurnCard        string              `json:"turn_card"`
	RiverCard       string              `json:"river_card"`
	HandEvaluations map[string]HandRank `json:"hand_evaluations"`

	DealerState DealerState `json:"dealer_state"`
	RoundState  RoundState  `json:"round_state"`

	PlayersStillInHand []string            `json:"players_still_in_hand"`
	ChipsInBack        map[string]int64    `json:"chips_in_back"`
	ChipsInFront       map[string]int64    `json:"chips_in_front"`
	Contributions      map[string]int64    `json:"contributions"`
	CallAmounts        map[string]int64    `json:"call_amounts"`
	RaiseToAmounts     map[string]int64    `json:"raise_to_amounts"`
	PossibleActions    map[string][]string `json:"possible_actions"`
	CurrentBet         int64               `json:"current_bet"`
	MinimumIncrement   int64               `json:"minimum_increment"`
	Pots               []Pot               `json:"pots"`
}

func (h Hand) ActionOnPlayerID() string {
	if h.ActionOnPosition == UnsetValue {
		return ""
	}
	return h.SeatMap[h.ActionOnPosition]
}

func (h Hand) PossibleActionsOf(playerID string) []string {
	return h.PossibleActions[playerID]
}

func (h Hand) IsStillInHand(playerID string) bool {
	return funk.Contains(h.PlayersStillInHand, playerID)
}

func (h Hand) IsAllIn(playerID string) bool {
	return h.IsStillInHand(playerID) && h.ChipsInBack[playerID] == 0
}

// CanAct reports whether the player can still take betting actions in this hand.
func (h Hand) CanAct(playerID string) bool {
	return h.IsStillInHand(playerID) && h.ChipsInBack[playerID] > 0
}

func (h Hand) PotTotal() int64 {
	total := int64(0)
	for _, pot := range h.Pots {
		total += pot.Amount
	}
	return total
}

// CommunityCards returns the board cards dealt so far.
func (h Hand) CommunityCards() []string {
	cards := make([]string, 0, 5)
	cards = append(cards, h.FlopCards...)
	if h.TurnCard != "" {
		cards = append(cards, h.TurnCard)
	}
	if h.RiverCard != "" {
		cards = append(cards, h.RiverCard)
	}
	return cards
}

func (h Hand) seatManager() seat_manager.SeatManager {
	return seat_manager.NewSeatManagerFromSeats(h.SeatMap)
}

func (h Hand) seatOf(playerID string) int {
	for seatID, seatPlayerID := range h.SeatMap {
		if seatPlayerID != seat_manager.EmptySeat && seatPlayerID == playerID {
			return seatID
		}
	}
	return UnsetValue
}

func (h Hand) owes(playerID string) int64 {
	owes := h.CurrentBet - h.ChipsInFront[playerID]
	if owes < 0 {
		return 0
	}
	return owes
}

/*
validateAction 檢查玩家行動是否合法
  - 必須輪到該玩家
  - 行動必須在玩家目前可執行的動作中
  - 加注不得低於最小加注, 也不得超過玩家所有籌碼
*/
func (h Hand) validateAction(playerID string, action string, raiseToAmount int64) error {
	if h.RoundState != RoundState_InProgress {
		return ErrHandRoundNotInProgress
	}

	if h.ActionOnPlayerID() != playerID {
		return fmt.Errorf("%w: %s", ErrHandNotPlayersTurn, playerID)
	}

	if !funk.Contains(h.PossibleActions[playerID], action) {
		return fmt.Errorf("%w: %s cannot %s", ErrHandIllegalAction, playerID, action)
	}

	if action == Action_Raise {
		if raiseToAmount < h.RaiseToAmounts[playerID] {
			return fmt.Errorf("%w: %d < %d", ErrHandRaiseBelowMinimum, raiseToAmount, h.RaiseToAmounts[playerID])
		}

		if raiseToAmount > h.ChipsInFront[playerID]+h.ChipsInBack[playerID] {
			return fmt.Errorf("%w: raise to %d", ErrHandInsufficientChips, raiseToAmount)
		}
	}

	return nil
}
