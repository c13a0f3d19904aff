package actor

import (
	"context"
	"math/rand"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/weedbox/holdemtable"
)

func TestActor_BotRunner_PlaysHands(t *testing.T) {
	var mu sync.Mutex
	var latest *holdemtable.Table
	bots := make([]*BotRunner, 0)

	callbacks := holdemtable.NewManagerCallbacks()
	callbacks.OnTableUpdated = func(table *holdemtable.Table) {
		mu.Lock()
		if latest == nil || table.Version > latest.Version {
			latest = table
		}
		mu.Unlock()

		for _, bot := range bots {
			_ = bot.UpdateTableState(table)
		}
	}

	manager := holdemtable.NewManager(
		holdemtable.WithRandom(rand.New(rand.NewSource(7))),
		holdemtable.WithCallbacks(callbacks),
		holdemtable.WithAutoStartNextHand(0),
	)
	defer manager.Close()

	playerIDs := []string{"Jeffrey", "Chuck", "Fred"}
	for idx, playerID := range playerIDs {
		bots = append(bots, NewBotRunner(manager, "table-1", playerID, rand.New(rand.NewSource(int64(idx)))))
	}

	_, err := manager.CreateTable(context.Background(), holdemtable.CreateTable{
		TableID:       "table-1",
		StartingChips: 1000,
		Players:       holdemtable.NewJoinPlayers(playerIDs),
	})
	require.NoError(t, err)

	assert.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return latest != nil && latest.HandsPlayed >= 3
	}, 10*time.Second, 20*time.Millisecond)

	table, err := manager.GetTable(context.Background(), "table-1")
	require.NoError(t, err)

	total := int64(0)
	for _, playerID := range playerIDs {
		total += table.Chips(playerID)
	}
	if table.CurrentHand != nil {
		for _, chips := range table.CurrentHand.ChipsInFront {
			total += chips
		}
		total += table.CurrentHand.PotTotal()
	}
	assert.Equal(t, int64(3000), total)
}

func TestActor_CalcActionProbabilities(t *testing.T) {
	probabilities := calcActionProbabilities([]string{holdemtable.Action_Call, holdemtable.Action_Fold})
	assert.Len(t, probabilities, 2)
	assert.Equal(t, holdemtable.Action_Call, probabilities[0].Action)
	assert.InDelta(t, 0.8, probabilities[0].Weight, 0.0001)
	assert.Equal(t, holdemtable.Action_Fold, probabilities[1].Action)
	assert.InDelta(t, 1.0, probabilities[1].Weight, 0.0001)

	assert.Empty(t, calcActionProbabilities([]string{"allin"}))
}

func TestActor_CalcAction(t *testing.T) {
	bot := NewBotRunner(nil, "table-1", "Jeffrey", rand.New(rand.NewSource(1)))

	assert.Equal(t, holdemtable.Action_Check, bot.calcAction([]string{holdemtable.Action_Check, holdemtable.Action_Raise}))
	assert.Equal(t, holdemtable.Action_Call, bot.calcAction([]string{holdemtable.Action_Call, holdemtable.Action_Fold}))

	bot.Humanized(true, 0)
	for i := 0; i < 20; i++ {
		action := bot.calcAction([]string{holdemtable.Action_Call, holdemtable.Action_Fold, holdemtable.Action_Raise})
		assert.Contains(t, []string{holdemtable.Action_Call, holdemtable.Action_Fold, holdemtable.Action_Raise}, action)
	}
}
