package testcases

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/weedbox/holdemtable"
)

func TestTableGame_Street_Settlement(t *testing.T) {
	streets := map[string]holdemtable.DealerState{
		"flop":  holdemtable.DealerState_FlopDealt,
		"turn":  holdemtable.DealerState_TurnDealt,
		"river": holdemtable.DealerState_RiverDealt,
	}

	for name, street := range streets {
		street := street
		t.Run(name, func(t *testing.T) {
			playerIDs := []string{"Fred", "Jeffrey", "Chuck"}
			s := newScenario(t, NewDefaultCreateTable(1000, playerIDs...))

			table := s.playHand(holdemtable.Blinds{SmallBlind: 10, BigBlind: 20}, BetAndFoldOn(street))

			completed := s.lastCompleted()
			assert.False(t, completed.Showdown)
			if assert.Len(t, completed.Awards, 1) && assert.Len(t, completed.Awards[0].Winners, 1) {
				// 翻牌前底池 60, 其餘玩家棄牌
				winner := completed.Awards[0].Winners[0]
				assert.Equal(t, int64(1040), table.Chips(winner))
			}
		})
	}
}
