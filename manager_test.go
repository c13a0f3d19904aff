package holdemtable

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/weedbox/holdemtable/blind"
	"go.uber.org/zap"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []Event
}

func (p *recordingPublisher) Publish(ctx context.Context, events []Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, events...)
	return nil
}

func (p *recordingPublisher) versions() []int {
	p.mu.Lock()
	defer p.mu.Unlock()

	versions := make([]int, 0, len(p.events))
	for _, e := range p.events {
		versions = append(versions, e.Header().Version)
	}
	return versions
}

func newTestManager(t *testing.T, playerIDs []string, opts ...ManagerOpt) (Manager, *recordingPublisher) {
	cards := newScriptedCardSource(playerIDs...)
	publisher := &recordingPublisher{}

	defaults := []ManagerOpt{
		WithLogger(zap.NewNop()),
		WithRandom(newTestRand(1)),
		WithCardSource(cards),
		WithHandEvaluator(newFixedEvaluator(cards, nil)),
		WithPublisher(publisher),
	}

	m := NewManager(append(defaults, opts...)...)
	t.Cleanup(m.Close)
	return m, publisher
}

func TestManager_CommandFlow(t *testing.T) {
	ctx := context.Background()
	playerIDs := []string{"Jeffrey", "Chuck", "Fred"}

	var updated int32
	callbacks := NewManagerCallbacks()
	callbacks.OnTableUpdated = func(table *Table) {
		atomic.AddInt32(&updated, 1)
	}

	m, publisher := newTestManager(t, playerIDs, WithCallbacks(callbacks))

	_, err := m.GetTable(ctx, "table-1")
	assert.ErrorIs(t, err, ErrManagerTableNotFound)

	_, err = m.StartNewHand(ctx, StartNewHand{TableID: "table-1"})
	assert.ErrorIs(t, err, ErrManagerTableNotFound)

	table, err := m.CreateTable(ctx, CreateTable{
		TableID: "table-1",
		GameID:  "game-1",
		Players: NewJoinPlayers(playerIDs),
	})
	require.NoError(t, err)
	assert.Equal(t, 1, table.Version)
	assert.Equal(t, DefaultNumberOfSeats, len(table.SeatMap))
	assert.Equal(t, DefaultStartingChips, table.Chips("Jeffrey"))

	_, err = m.CreateTable(ctx, CreateTable{TableID: "table-1", Players: NewJoinPlayers(playerIDs)})
	assert.ErrorIs(t, err, ErrTableAlreadyCreated)

	table, err = m.StartNewHand(ctx, StartNewHand{TableID: "table-1"})
	require.NoError(t, err)
	require.NotNil(t, table.CurrentHand)
	assert.Equal(t, Blinds{SmallBlind: DefaultSmallBlind, BigBlind: DefaultBigBlind}, table.CurrentHand.Blinds)

	utg := table.CurrentHand.ActionOnPlayerID()
	table, err = m.PlayerRaise(ctx, "table-1", utg, 60)
	require.NoError(t, err)
	assert.Equal(t, int64(60), table.CurrentHand.CurrentBet)

	loaded, err := m.GetTable(ctx, "table-1")
	require.NoError(t, err)
	assert.Equal(t, table, loaded)

	versions := publisher.versions()
	require.Len(t, versions, table.Version)
	for idx, version := range versions {
		assert.Equal(t, idx+1, version)
	}
	assert.Equal(t, int32(3), atomic.LoadInt32(&updated))
}

func TestManager_RejectedCommand(t *testing.T) {
	ctx := context.Background()
	playerIDs := []string{"Jeffrey", "Chuck"}

	var rejected error
	callbacks := NewManagerCallbacks()
	callbacks.OnTableErrorUpdated = func(table *Table, err error) {
		rejected = err
	}

	m, publisher := newTestManager(t, playerIDs, WithCallbacks(callbacks))

	_, err := m.CreateTable(ctx, CreateTable{TableID: "table-1", Players: NewJoinPlayers(playerIDs)})
	require.NoError(t, err)

	table, err := m.StartNewHand(ctx, StartNewHand{TableID: "table-1", Blinds: Blinds{SmallBlind: 50, BigBlind: 100}})
	require.NoError(t, err)

	bb := table.CurrentHand.SeatMap[table.CurrentHand.BigBlindPosition]
	_, err = m.PlayerCheck(ctx, "table-1", bb)
	assert.ErrorIs(t, err, ErrHandNotPlayersTurn)
	assert.ErrorIs(t, rejected, ErrHandNotPlayersTurn)

	loaded, err := m.GetTable(ctx, "table-1")
	require.NoError(t, err)
	assert.Equal(t, table.Version, loaded.Version)
	assert.Len(t, publisher.versions(), table.Version)

	_, err = m.CreateTable(ctx, CreateTable{})
	assert.ErrorIs(t, err, ErrManagerInvalidTableID)
}

func TestManager_BlindSchedule(t *testing.T) {
	ctx := context.Background()
	playerIDs := []string{"Jeffrey", "Chuck"}

	schedule, err := blind.NewBlind([]blind.BlindLevel{
		{Level: 1, SB: 10, BB: 20, Hands: 1},
		{Level: 2, SB: 25, BB: 50, Hands: 1},
	})
	require.NoError(t, err)

	m, _ := newTestManager(t, playerIDs, WithBlind(schedule))
	_, err = m.CreateTable(ctx, CreateTable{TableID: "table-1", Players: NewJoinPlayers(playerIDs)})
	require.NoError(t, err)

	table, err := m.StartNewHand(ctx, StartNewHand{TableID: "table-1"})
	require.NoError(t, err)
	assert.Equal(t, int64(20), table.CurrentHand.Blinds.BigBlind)

	table, err = m.PlayerFold(ctx, "table-1", table.CurrentHand.ActionOnPlayerID())
	require.NoError(t, err)
	assert.Equal(t, 1, table.HandsPlayed)

	table, err = m.StartNewHand(ctx, StartNewHand{TableID: "table-1"})
	require.NoError(t, err)
	assert.Equal(t, int64(50), table.CurrentHand.Blinds.BigBlind)
}

func TestManager_ConcurrentCommandsAreSerialized(t *testing.T) {
	ctx := context.Background()
	playerIDs := []string{"Jeffrey", "Chuck", "Fred"}
	m, publisher := newTestManager(t, playerIDs)

	_, err := m.CreateTable(ctx, CreateTable{TableID: "table-1", Players: NewJoinPlayers(playerIDs)})
	require.NoError(t, err)
	table, err := m.StartNewHand(ctx, StartNewHand{TableID: "table-1"})
	require.NoError(t, err)

	utg := table.CurrentHand.ActionOnPlayerID()

	var wg sync.WaitGroup
	var succeeded int32
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := m.PlayerCall(ctx, "table-1", utg)
			if err == nil {
				atomic.AddInt32(&succeeded, 1)
				return
			}
			assert.True(t, errors.Is(err, ErrHandNotPlayersTurn), err)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&succeeded))

	versions := publisher.versions()
	for idx, version := range versions {
		assert.Equal(t, idx+1, version)
	}
}

func TestManager_ActionTimeout(t *testing.T) {
	ctx := context.Background()
	playerIDs := []string{"Jeffrey", "Chuck", "Fred"}
	m, _ := newTestManager(t, playerIDs, WithActionTimeout(50*time.Millisecond))

	_, err := m.CreateTable(ctx, CreateTable{TableID: "table-1", Players: NewJoinPlayers(playerIDs)})
	require.NoError(t, err)
	_, err = m.StartNewHand(ctx, StartNewHand{TableID: "table-1"})
	require.NoError(t, err)

	// UTG 與小盲逾時棄牌, 大盲直接贏得底池
	assert.Eventually(t, func() bool {
		table, err := m.GetTable(ctx, "table-1")
		return err == nil && table.CurrentHand == nil && table.HandsPlayed == 1
	}, 3*time.Second, 20*time.Millisecond)

	table, err := m.GetTable(ctx, "table-1")
	require.NoError(t, err)
	completed := 0
	for _, playerID := range playerIDs {
		if table.Chips(playerID) == DefaultStartingChips+DefaultSmallBlind {
			completed++
		}
	}
	assert.Equal(t, 1, completed)
}

func TestManager_AutoStartNextHand(t *testing.T) {
	ctx := context.Background()
	playerIDs := []string{"Jeffrey", "Chuck"}
	m, _ := newTestManager(t, playerIDs, WithAutoStartNextHand(0))

	_, err := m.CreateTable(ctx, CreateTable{TableID: "table-1", Players: NewJoinPlayers(playerIDs)})
	require.NoError(t, err)

	assert.ErrorIs(t, m.PlayerReady(ctx, "table-2", "Jeffrey"), ErrManagerNoReadyGate)

	require.NoError(t, m.PlayerReady(ctx, "table-1", "Jeffrey"))

	table, err := m.GetTable(ctx, "table-1")
	require.NoError(t, err)
	assert.Nil(t, table.CurrentHand)

	require.NoError(t, m.PlayerReady(ctx, "table-1", "Chuck"))

	assert.Eventually(t, func() bool {
		table, err := m.GetTable(ctx, "table-1")
		return err == nil && table.CurrentHand != nil
	}, 2*time.Second, 10*time.Millisecond)

	table, err = m.GetTable(ctx, "table-1")
	require.NoError(t, err)
	_, err = m.PlayerFold(ctx, "table-1", table.CurrentHand.ActionOnPlayerID())
	require.NoError(t, err)

	// 下一手等待玩家 ready
	require.NoError(t, m.PlayerReady(ctx, "table-1", "Jeffrey"))
	require.NoError(t, m.PlayerReady(ctx, "table-1", "Chuck"))

	assert.Eventually(t, func() bool {
		table, err := m.GetTable(ctx, "table-1")
		return err == nil && table.CurrentHand != nil && table.HandsPlayed == 1
	}, 2*time.Second, 10*time.Millisecond)
}
