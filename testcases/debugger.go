package testcases

import (
	"fmt"
	"strings"
	"testing"

	"github.com/weedbox/holdemtable"
	"github.com/weedbox/holdemtable/seat_manager"
)

func DebugPrintTable(t *testing.T, table *holdemtable.Table) {
	t.Helper()

	lines := []string{
		fmt.Sprintf("---------- 第 (%d) 手 ----------", table.HandsPlayed+1),
		fmt.Sprintf("[Table ID] %s", table.ID),
		fmt.Sprintf("[Version] %d", table.Version),
	}

	for seatID, playerID := range table.SeatMap {
		if playerID == seat_manager.EmptySeat {
			continue
		}
		lines = append(lines, fmt.Sprintf("seat: %d, player: %s, chips: %d", seatID, playerID, table.Chips(playerID)))
	}

	if hand := table.CurrentHand; hand != nil {
		lines = append(lines,
			fmt.Sprintf("[Dealer] %s", hand.DealerState),
			fmt.Sprintf("[Board] %s", strings.Join(hand.CommunityCards(), ",")),
			fmt.Sprintf("[Pot] %d", hand.PotTotal()),
			fmt.Sprintf("[Action On] %s %v", hand.ActionOnPlayerID(), hand.PossibleActionsOf(hand.ActionOnPlayerID())),
		)
	}

	t.Log(strings.Join(lines, "\n"))
}

func DebugPrintHandCompleted(t *testing.T, e holdemtable.HandCompletedEvent) {
	t.Helper()

	lines := []string{fmt.Sprintf("---------- 結算 (showdown: %v) ----------", e.Showdown)}
	for _, award := range e.Awards {
		lines = append(lines, fmt.Sprintf("pot %d: %d -> %v", award.PotIndex, award.Amount, award.Shares))
	}
	t.Log(strings.Join(lines, "\n"))
}
