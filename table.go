package holdemtable

import (
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"

	"github.com/google/uuid"
	"github.com/weedbox/holdemtable/seat_manager"
)

var (
	ErrTableNotCreated             = errors.New("table: table has not been created")
	ErrTableAlreadyCreated         = errors.New("table: table already created")
	ErrTableInvalidID              = errors.New("table: invalid table id")
	ErrTableAlreadyHasPlayers      = errors.New("table: seat map already contains players")
	ErrTableNotEnoughPlayers       = errors.New("table: must have at least two players")
	ErrTableTooManyPlayers         = errors.New("table: player list can't be larger than seat map")
	ErrTableHandAlreadyPlayed      = errors.New("table: can't create a table that already has a hand played")
	ErrTableInvalidStartingChips   = errors.New("table: invalid starting chips")
	ErrTableHandInProgress         = errors.New("table: hand already in progress")
	ErrTableNoHandInProgress       = errors.New("table: no hand in progress")
	ErrTableMissingRandomSource    = errors.New("table: missing random source")
	ErrTableMissingCardSource      = errors.New("table: missing card source")
	ErrTableMissingHandEvaluator   = errors.New("table: missing hand evaluator")
	ErrTableInconsistentHandSeeded = errors.New("table: hand seeded with inconsistent data")
)

type JoinPlayer struct {
	PlayerID    string `json:"player_id"`
	RedeemChips int64  `json:"redeem_chips"` // 0 表示使用桌子起始籌碼
}

type Table struct {
	ID            string           `json:"id"`
	GameID        string           `json:"game_id"`
	Version       int              `json:"version"`
	SeatMap       []string         `json:"seat_map"`
	StartingChips int64            `json:"starting_chips"`
	ChipsInBack   map[string]int64 `json:"chips_in_back"`
	HandsPlayed   int              `json:"hands_played"`
	CurrentHand   *Hand            `json:"current_hand"`
}

func NewTable(tableID string, gameID string, numberOfSeats int) *Table {
	return &Table{
		ID:          tableID,
		GameID:      gameID,
		SeatMap:     seat_manager.NewSeatManager(numberOfSeats).Seats(),
		ChipsInBack: make(map[string]int64),
	}
}

func (t Table) Clone() (*Table, error) {
	data, err := json.Marshal(t)
	if err != nil {
		return nil, err
	}

	var cloned Table
	if err := json.Unmarshal(data, &cloned); err != nil {
		return nil, err
	}
	return &cloned, nil
}

func (t Table) GetJSON() (string, error) {
	encoded, err := json.Marshal(t)
	if err != nil {
		return "", err
	}
	return string(encoded), nil
}

func (t Table) IsHandInProgress() bool {
	return t.CurrentHand != nil
}

// Chips returns the live stack of a player, including an ongoing hand.
func (t Table) Chips(playerID string) int64 {
	if t.CurrentHand != nil {
		if chips, exist := t.CurrentHand.ChipsInBack[playerID]; exist {
			return chips
		}
	}
	return t.ChipsInBack[playerID]
}

func (t Table) PlayerIDs() []string {
	return seat_manager.NewSeatManagerFromSeats(t.SeatMap).ListPlayerIDsFrom(0)
}

// Apply returns a new table with the events folded in. The receiver is left untouched.
func (t Table) Apply(events ...Event) (*Table, error) {
	next, err := t.Clone()
	if err != nil {
		return nil, err
	}

	for _, e := range events {
		if err := next.apply(e); err != nil {
			return nil, err
		}
	}
	return next, nil
}

func (t Table) CreateNewTable(playerIDs []string, startingChips int64, r *rand.Rand) ([]Event, error) {
	return t.CreateNewTableWithPlayers(NewJoinPlayers(playerIDs), startingChips, r)
}

/*
CreateNewTableWithPlayers 建立桌子並安排座位
  - r 為 nil 時依序入座, 否則隨機入座
  - RedeemChips 為 0 的玩家使用 startingChips
*/
func (t Table) CreateNewTableWithPlayers(players []JoinPlayer, startingChips int64, r *rand.Rand) ([]Event, error) {
	if t.ID == "" {
		return nil, ErrTableInvalidID
	}

	if t.Version > 0 {
		return nil, ErrTableAlreadyCreated
	}

	sm := seat_manager.NewSeatManagerFromSeats(t.SeatMap)
	if sm.OccupiedCount() > 0 {
		return nil, ErrTableAlreadyHasPlayers
	}

	if len(players) < 2 {
		return nil, ErrTableNotEnoughPlayers
	}

	if len(players) > sm.MaxSeat() {
		return nil, ErrTableTooManyPlayers
	}

	if t.HandsPlayed > 0 || t.CurrentHand != nil {
		return nil, ErrTableHandAlreadyPlayed
	}

	if startingChips <= 0 {
		return nil, ErrTableInvalidStartingChips
	}

	playerIDs := make([]string, 0, len(players))
	chipsInBack := make(map[string]int64)
	for _, player := range players {
		if player.RedeemChips < 0 {
			return nil, ErrTableInvalidStartingChips
		}

		playerIDs = append(playerIDs, player.PlayerID)
		chipsInBack[player.PlayerID] = startingChips
		if player.RedeemChips > 0 {
			chipsInBack[player.PlayerID] = player.RedeemChips
		}
	}

	var err error
	if r == nil {
		err = sm.AssignSeats(playerIDs)
	} else {
		err = sm.RandomAssignSeats(playerIDs, r)
	}
	if err != nil {
		return nil, fmt.Errorf("table: %w", err)
	}

	d, err := newDecision(t)
	if err != nil {
		return nil, err
	}

	if err := d.emit(TableCreatedEvent{
		EventHeader:           d.header(),
		SeatMap:               sm.Seats(),
		StartingNumberOfChips: startingChips,
		ChipsInBack:           chipsInBack,
	}); err != nil {
		return nil, err
	}

	return d.events, nil
}

/*
StartNewHand 開始新的一手牌
  - 隨機選出 Button, 推導 SB、BB 與第一位行動玩家
  - 從 Button 下家開始發手牌
  - 所有牌與牌力評估都記錄在事件中, 重播時不需要再次取得
*/
func (t Table) StartNewHand(blinds Blinds, cards CardSource, evaluator HandEvaluator, r *rand.Rand) ([]Event, error) {
	if t.Version == 0 {
		return nil, ErrTableNotCreated
	}

	if t.CurrentHand != nil {
		return nil, ErrTableHandInProgress
	}

	if err := blinds.Validate(); err != nil {
		return nil, err
	}

	switch {
	case r == nil:
		return nil, ErrTableMissingRandomSource
	case cards == nil:
		return nil, ErrTableMissingCardSource
	case evaluator == nil:
		return nil, ErrTableMissingHandEvaluator
	}

	// 沒籌碼的玩家不參與本手
	handSeats := make([]string, len(t.SeatMap))
	for seatID, playerID := range t.SeatMap {
		handSeats[seatID] = seat_manager.EmptySeat
		if playerID != seat_manager.EmptySeat && t.ChipsInBack[playerID] > 0 {
			handSeats[seatID] = playerID
		}
	}

	sm := seat_manager.NewSeatManagerFromSeats(handSeats)
	if sm.OccupiedCount() < 2 {
		return nil, ErrTableNotEnoughPlayers
	}

	handID, err := uuid.NewRandomFromReader(r)
	if err != nil {
		return nil, err
	}

	deck, err := cards.Shuffle(t.ID)
	if err != nil {
		return nil, err
	}

	positions, err := sm.InitPositions(r)
	if err != nil {
		return nil, fmt.Errorf("table: %w", err)
	}

	dealt, err := dealHandCards(t.ID, sm.ListPlayerIDsFrom(sm.NextOccupiedSeatID(positions.DealerSeatID)), deck, cards)
	if err != nil {
		return nil, err
	}

	community := append(append([]string{}, dealt.FlopCards...), dealt.TurnCard, dealt.RiverCard)
	possibleHands, err := evaluator.PossibleHands(community)
	if err != nil {
		return nil, err
	}

	evaluations := make(map[string]HandRank)
	for playerID, pocketCards := range dealt.PocketCards {
		rank, err := evaluator.Evaluate(community, pocketCards, possibleHands)
		if err != nil {
			return nil, err
		}
		evaluations[playerID] = rank
	}

	hand := newHand(handSetup{
		HandID:      handID.String(),
		TableID:     t.ID,
		GameID:      t.GameID,
		SeatMap:     handSeats,
		Blinds:      blinds,
		Positions:   positions,
		ChipsInBack: t.ChipsInBack,
		PocketCards: dealt.PocketCards,
		Board:       community,
		Evaluations: evaluations,
	})

	d, err := newDecision(t)
	if err != nil {
		return nil, err
	}

	if err := d.emit(CardsShuffledEvent{
		EventHeader: d.header(),
		HandID:      hand.ID,
		Deck:        deck,
	}); err != nil {
		return nil, err
	}

	if err := d.emit(HandDealtEvent{
		EventHeader: d.header(),
		Hand:        *hand,
	}); err != nil {
		return nil, err
	}

	if err := d.progressHand(); err != nil {
		return nil, err
	}

	return d.events, nil
}

func (t Table) Check(playerID string) ([]Event, error) {
	return t.playerAction(playerID, Action_Check, 0)
}

func (t Table) Call(playerID string) ([]Event, error) {
	return t.playerAction(playerID, Action_Call, 0)
}

func (t Table) Fold(playerID string) ([]Event, error) {
	return t.playerAction(playerID, Action_Fold, 0)
}

func (t Table) Raise(playerID string, raiseToAmount int64) ([]Event, error) {
	return t.playerAction(playerID, Action_Raise, raiseToAmount)
}

func (t Table) playerAction(playerID string, action string, raiseToAmount int64) ([]Event, error) {
	if t.CurrentHand == nil {
		return nil, ErrTableNoHandInProgress
	}

	hand := t.CurrentHand
	if err := hand.validateAction(playerID, action, raiseToAmount); err != nil {
		return nil, err
	}

	d, err := newDecision(t)
	if err != nil {
		return nil, err
	}

	var e Event
	switch action {
	case Action_Check:
		e = PlayerCheckedEvent{EventHeader: d.header(), HandID: hand.ID, PlayerID: playerID}
	case Action_Call:
		e = PlayerCalledEvent{EventHeader: d.header(), HandID: hand.ID, PlayerID: playerID, Amount: hand.CallAmounts[playerID]}
	case Action_Fold:
		e = PlayerFoldedEvent{EventHeader: d.header(), HandID: hand.ID, PlayerID: playerID}
	case Action_Raise:
		e = PlayerRaisedEvent{EventHeader: d.header(), HandID: hand.ID, PlayerID: playerID, RaiseToAmount: raiseToAmount}
	}

	if err := d.emit(e); err != nil {
		return nil, err
	}

	if err := d.progressHand(); err != nil {
		return nil, err
	}

	return d.events, nil
}
