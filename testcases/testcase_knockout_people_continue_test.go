package testcases

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/weedbox/holdemtable"
	"github.com/weedbox/holdemtable/seat_manager"
)

func TestTableGame_Knockout_People_Continue(t *testing.T) {
	playerIDs := []string{"Fred", "Jeffrey", "Chuck", "Lottie"}
	cmd := NewDefaultCreateTable(200, playerIDs...)
	cmd.Players[0].RedeemChips = 40
	s := newScenario(t, cmd)

	knockedOut := make(map[string]bool)
	for hands := 0; hands < 50; hands++ {
		table := s.table()

		alive := 0
		for _, playerID := range table.PlayerIDs() {
			if table.Chips(playerID) > 0 {
				alive++
			} else {
				knockedOut[playerID] = true
			}
		}
		if alive < 2 {
			break
		}

		table, err := s.manager.StartNewHand(s.ctx, holdemtable.StartNewHand{TableID: s.tableID, Blinds: holdemtable.Blinds{SmallBlind: 10, BigBlind: 20}})
		require.NoError(t, err)

		// 沒有籌碼的玩家不會被發牌
		for _, playerID := range table.CurrentHand.SeatMap {
			if playerID != seat_manager.EmptySeat {
				assert.False(t, knockedOut[playerID], "%s was dealt in", playerID)
			}
		}

		for table.CurrentHand != nil {
			hand := table.CurrentHand
			playerID := hand.ActionOnPlayerID()
			action, raiseToAmount := ShoveOrCall(hand, playerID)
			table, err = s.act(playerID, action, raiseToAmount)
			require.NoError(t, err)
		}
		s.requireChipsConserved(table)
	}

	assert.NotEmpty(t, knockedOut)
	_, err := s.manager.StartNewHand(s.ctx, holdemtable.StartNewHand{TableID: s.tableID, Blinds: holdemtable.Blinds{SmallBlind: 10, BigBlind: 20}})
	assert.ErrorIs(t, err, holdemtable.ErrTableNotEnoughPlayers)
}
