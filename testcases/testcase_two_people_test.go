package testcases

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/weedbox/holdemtable"
	"github.com/weedbox/holdemtable/position"
)

func TestTableGame_Two_People(t *testing.T) {
	playerIDs := []string{"Fred", "Jeffrey"}
	s := newScenario(t, NewDefaultCreateTable(1000, playerIDs...))

	for i := 0; i < 4; i++ {
		table, err := s.manager.StartNewHand(s.ctx, holdemtable.StartNewHand{TableID: s.tableID, Blinds: holdemtable.Blinds{SmallBlind: 10, BigBlind: 20}})
		require.NoError(t, err)

		hand := table.CurrentHand
		dealer := hand.SeatMap[hand.ButtonOnPosition]
		bb := hand.SeatMap[hand.BigBlindPosition]
		bbChips := table.Chips(bb)

		// 兩人桌由莊家下小盲並先行動
		assert.Equal(t, hand.ButtonOnPosition, hand.SmallBlindPosition)
		assert.Equal(t, []string{position.Position_Dealer, position.Position_SB}, hand.Positions[dealer])
		assert.Equal(t, dealer, hand.ActionOnPlayerID())

		table, err = s.manager.PlayerFold(s.ctx, s.tableID, dealer)
		require.NoError(t, err)
		assert.Nil(t, table.CurrentHand)
		assert.Equal(t, bbChips+30, table.Chips(bb))
	}

	s.requireChipsConserved(s.table())
}
