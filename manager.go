package holdemtable

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/weedbox/holdemtable/blind"
	"github.com/weedbox/holdemtable/open_hand_manager"
	"github.com/weedbox/holdemtable/seat_manager"
	"go.uber.org/zap"
)

var (
	ErrManagerTableNotFound  = errors.New("manager: table not found")
	ErrManagerInvalidTableID = errors.New("manager: invalid table id")
	ErrManagerNoReadyGate    = errors.New("manager: table is not waiting for ready players")
)

// Manager serializes commands per table: load, replay, decide, save, then publish.
type Manager interface {
	Close()

	// Table Actions
	GetTable(ctx context.Context, tableID string) (*Table, error)
	CreateTable(ctx context.Context, cmd CreateTable) (*Table, error)
	StartNewHand(ctx context.Context, cmd StartNewHand) (*Table, error)

	// Player Actions
	PlayerReady(ctx context.Context, tableID, playerID string) error
	PlayerCheck(ctx context.Context, tableID, playerID string) (*Table, error)
	PlayerCall(ctx context.Context, tableID, playerID string) (*Table, error)
	PlayerFold(ctx context.Context, tableID, playerID string) (*Table, error)
	PlayerRaise(ctx context.Context, tableID, playerID string, raiseToAmount int64) (*Table, error)
}

type manager struct {
	logger    *zap.Logger
	eventLog  EventLog
	publisher Publisher
	cards     CardSource
	evaluator HandEvaluator
	blind     blind.Blind
	callbacks *ManagerCallbacks

	rngMu sync.Mutex
	rng   *rand.Rand

	actionTimeout     time.Duration
	actionTimer       *actionTimer
	autoStartNextHand bool
	readyTimeoutSec   int

	tableLocks sync.Map // key: table id, value: *sync.Mutex
	openHands  sync.Map // key: table id, value: open_hand_manager.OpenHandManager
}

func NewManager(opts ...ManagerOpt) Manager {
	defaultBlind, _ := blind.NewFixedBlind(DefaultSmallBlind, DefaultBigBlind)

	m := &manager{
		logger:      zap.NewNop(),
		eventLog:    NewNativeEventLog(),
		publisher:   nopPublisher{},
		evaluator:   NewNativeHandEvaluator(),
		blind:       defaultBlind,
		callbacks:   NewManagerCallbacks(),
		actionTimer: newActionTimer(),
	}

	for _, opt := range opts {
		opt(m)
	}

	if m.rng == nil {
		m.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	if m.cards == nil {
		m.cards = NewNativeCardSource(m.newRand())
	}

	return m
}

func (m *manager) Close() {
	m.actionTimer.cancelAll()
	m.openHands.Range(func(key, value any) bool {
		value.(open_hand_manager.OpenHandManager).Stop()
		return true
	})
}

func (m *manager) GetTable(ctx context.Context, tableID string) (*Table, error) {
	events, err := m.eventLog.FetchAll(ctx, tableID)
	if err != nil {
		return nil, err
	}

	if len(events) == 0 {
		return nil, ErrManagerTableNotFound
	}

	return Replay(events)
}

func (m *manager) CreateTable(ctx context.Context, cmd CreateTable) (*Table, error) {
	if cmd.TableID == "" {
		return nil, ErrManagerInvalidTableID
	}

	return m.execute(ctx, cmd.TableID, true, func(t Table) ([]Event, error) {
		if t.Version > 0 {
			return nil, ErrTableAlreadyCreated
		}

		numberOfSeats := cmd.NumberOfSeats
		if numberOfSeats <= 0 {
			numberOfSeats = DefaultNumberOfSeats
		}

		startingChips := cmd.StartingChips
		if startingChips == 0 {
			startingChips = DefaultStartingChips
		}

		var r *rand.Rand
		if cmd.RandomSeats {
			r = m.newRand()
		}

		return NewTable(cmd.TableID, cmd.GameID, numberOfSeats).CreateNewTableWithPlayers(cmd.Players, startingChips, r)
	})
}

func (m *manager) StartNewHand(ctx context.Context, cmd StartNewHand) (*Table, error) {
	return m.execute(ctx, cmd.TableID, false, func(t Table) ([]Event, error) {
		blinds := cmd.Blinds
		if blinds == (Blinds{}) {
			level := m.blind.CurrentLevel(t.HandsPlayed)
			blinds = Blinds{SmallBlind: level.SB, BigBlind: level.BB}
		}

		return t.StartNewHand(blinds, m.cards, m.evaluator, m.newRand())
	})
}

func (m *manager) PlayerReady(ctx context.Context, tableID, playerID string) error {
	value, exist := m.openHands.Load(tableID)
	if !exist || !value.(open_hand_manager.OpenHandManager).IsWaiting() {
		return ErrManagerNoReadyGate
	}

	if err := value.(open_hand_manager.OpenHandManager).Ready(playerID); err != nil {
		return fmt.Errorf("manager: %w", err)
	}
	return nil
}

func (m *manager) PlayerCheck(ctx context.Context, tableID, playerID string) (*Table, error) {
	return m.execute(ctx, tableID, false, func(t Table) ([]Event, error) {
		return t.Check(playerID)
	})
}

func (m *manager) PlayerCall(ctx context.Context, tableID, playerID string) (*Table, error) {
	return m.execute(ctx, tableID, false, func(t Table) ([]Event, error) {
		return t.Call(playerID)
	})
}

func (m *manager) PlayerFold(ctx context.Context, tableID, playerID string) (*Table, error) {
	return m.execute(ctx, tableID, false, func(t Table) ([]Event, error) {
		return t.Fold(playerID)
	})
}

func (m *manager) PlayerRaise(ctx context.Context, tableID, playerID string, raiseToAmount int64) (*Table, error) {
	return m.execute(ctx, tableID, false, func(t Table) ([]Event, error) {
		return t.Raise(playerID, raiseToAmount)
	})
}

/*
execute 執行一個指令
  - 同一張桌子的指令依序執行
  - 讀取事件並重播, 決策後寫入事件, 寫入成功才發布
  - 決策沒有產生事件時不寫入也不通知
*/
func (m *manager) execute(ctx context.Context, tableID string, allowNew bool, decide func(t Table) ([]Event, error)) (*Table, error) {
	lock := m.tableLock(tableID)
	lock.Lock()

	current, err := m.load(ctx, tableID)
	if err != nil {
		lock.Unlock()
		return nil, err
	}

	if !allowNew && current.Version == 0 {
		lock.Unlock()
		return nil, ErrManagerTableNotFound
	}

	events, err := decide(*current)
	if err != nil {
		lock.Unlock()
		m.logger.Warn("command rejected",
			zap.String("table_id", tableID),
			zap.Int("version", current.Version),
			zap.Error(err),
		)
		m.callbacks.OnTableErrorUpdated(current, err)
		return nil, err
	}

	if len(events) == 0 {
		lock.Unlock()
		return current, nil
	}

	if err := m.eventLog.Save(ctx, events...); err != nil {
		lock.Unlock()
		m.logger.Error("failed to save events",
			zap.String("table_id", tableID),
			zap.Error(err),
		)
		return nil, err
	}

	next, err := current.Apply(events...)
	lock.Unlock()
	if err != nil {
		return nil, err
	}

	m.logger.Debug("events committed",
		zap.String("table_id", tableID),
		zap.Int("from_version", events[0].Header().Version),
		zap.Int("to_version", events[len(events)-1].Header().Version),
		zap.Strings("kinds", eventKinds(events)),
	)

	if err := m.publisher.Publish(ctx, events); err != nil {
		m.logger.Error("failed to publish events",
			zap.String("table_id", tableID),
			zap.Error(err),
		)
	}

	m.afterCommit(next, events)
	m.callbacks.OnTableUpdated(next)

	return next, nil
}

func (m *manager) load(ctx context.Context, tableID string) (*Table, error) {
	history, err := m.eventLog.FetchAll(ctx, tableID)
	if err != nil {
		return nil, err
	}
	return Replay(history)
}

func (m *manager) tableLock(tableID string) *sync.Mutex {
	lock, _ := m.tableLocks.LoadOrStore(tableID, &sync.Mutex{})
	return lock.(*sync.Mutex)
}

// newRand derives an independent random source per command.
func (m *manager) newRand() *rand.Rand {
	m.rngMu.Lock()
	defer m.rngMu.Unlock()
	return rand.New(rand.NewSource(m.rng.Int63()))
}

func (m *manager) afterCommit(t *Table, events []Event) {
	m.scheduleActionTimeout(t)

	if !m.autoStartNextHand || t.CurrentHand != nil {
		return
	}

	for _, e := range events {
		switch e.Kind() {
		case EventKind_TableCreated, EventKind_HandCompleted:
			m.waitForReadyPlayers(t)
			return
		}
	}
}

// waitForReadyPlayers opens the ready gate for players who still have chips.
func (m *manager) waitForReadyPlayers(t *Table) {
	participants := make(map[string]int)
	for seatID, playerID := range t.SeatMap {
		if playerID != seat_manager.EmptySeat && t.ChipsInBack[playerID] > 0 {
			participants[playerID] = seatID
		}
	}

	if len(participants) < 2 {
		m.logger.Info("not enough players to continue",
			zap.String("table_id", t.ID),
			zap.Int("hands_played", t.HandsPlayed),
		)
		return
	}

	tableID := t.ID
	value, _ := m.openHands.LoadOrStore(tableID, open_hand_manager.NewOpenHandManager(open_hand_manager.OpenHandOption{
		Timeout: m.readyTimeoutSec,
		OnOpenHandReady: func(state open_hand_manager.OpenHandState) {
			go m.startNextHand(tableID)
		},
	}))
	value.(open_hand_manager.OpenHandManager).Setup(t.HandsPlayed, participants)
}

func (m *manager) startNextHand(tableID string) {
	if _, err := m.StartNewHand(context.Background(), StartNewHand{TableID: tableID}); err != nil {
		m.logger.Error("failed to start next hand",
			zap.String("table_id", tableID),
			zap.Error(err),
		)
	}
}

func eventKinds(events []Event) []string {
	kinds := make([]string, 0, len(events))
	for _, e := range events {
		kinds = append(kinds, string(e.Kind()))
	}
	return kinds
}
