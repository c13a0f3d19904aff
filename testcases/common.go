package testcases

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/weedbox/holdemtable"
	"go.uber.org/zap"
)

// Policy decides the move of the player whose turn it is.
type Policy func(hand *holdemtable.Hand, playerID string) (action string, raiseToAmount int64)

type scenario struct {
	t       *testing.T
	ctx     context.Context
	manager holdemtable.Manager
	tableID string
	total   int64

	mu        sync.Mutex
	completed []holdemtable.HandCompletedEvent
}

func newScenario(t *testing.T, cmd holdemtable.CreateTable, opts ...holdemtable.ManagerOpt) *scenario {
	s := &scenario{
		t:       t,
		ctx:     context.Background(),
		tableID: cmd.TableID,
	}

	opts = append([]holdemtable.ManagerOpt{
		holdemtable.WithLogger(zap.NewNop()),
		holdemtable.WithPublisher(holdemtable.PublisherFunc(s.record)),
	}, opts...)

	s.manager = holdemtable.NewManager(opts...)
	t.Cleanup(s.manager.Close)

	table, err := s.manager.CreateTable(s.ctx, cmd)
	require.NoError(t, err, "create table failed")

	for _, playerID := range table.PlayerIDs() {
		s.total += table.Chips(playerID)
	}

	return s
}

func (s *scenario) record(ctx context.Context, events []holdemtable.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, e := range events {
		if completed, ok := e.(holdemtable.HandCompletedEvent); ok {
			s.completed = append(s.completed, completed)
		}
	}
	return nil
}

func (s *scenario) lastCompleted() holdemtable.HandCompletedEvent {
	s.mu.Lock()
	defer s.mu.Unlock()

	require.NotEmpty(s.t, s.completed, "no hand completed")
	return s.completed[len(s.completed)-1]
}

func (s *scenario) table() *holdemtable.Table {
	table, err := s.manager.GetTable(s.ctx, s.tableID)
	require.NoError(s.t, err)
	return table
}

// playHand deals one hand and drives it to completion with the policy.
func (s *scenario) playHand(blinds holdemtable.Blinds, policy Policy) *holdemtable.Table {
	table, err := s.manager.StartNewHand(s.ctx, holdemtable.StartNewHand{TableID: s.tableID, Blinds: blinds})
	require.NoError(s.t, err, "start new hand failed")
	DebugPrintTable(s.t, table)

	for table.CurrentHand != nil {
		hand := table.CurrentHand
		playerID := hand.ActionOnPlayerID()
		require.NotEmpty(s.t, playerID, "hand is stuck")

		action, raiseToAmount := policy(hand, playerID)
		table, err = s.act(playerID, action, raiseToAmount)
		require.NoError(s.t, err, "%s %s failed", playerID, action)
	}

	DebugPrintHandCompleted(s.t, s.lastCompleted())
	s.requireChipsConserved(table)
	return table
}

func (s *scenario) act(playerID string, action string, raiseToAmount int64) (*holdemtable.Table, error) {
	switch action {
	case holdemtable.Action_Check:
		return s.manager.PlayerCheck(s.ctx, s.tableID, playerID)
	case holdemtable.Action_Call:
		return s.manager.PlayerCall(s.ctx, s.tableID, playerID)
	case holdemtable.Action_Raise:
		return s.manager.PlayerRaise(s.ctx, s.tableID, playerID, raiseToAmount)
	}
	return s.manager.PlayerFold(s.ctx, s.tableID, playerID)
}

func (s *scenario) requireChipsConserved(table *holdemtable.Table) {
	total := int64(0)
	for _, playerID := range table.PlayerIDs() {
		total += table.Chips(playerID)
	}
	require.Equal(s.t, s.total, total, "chips must be conserved")
}

func can(hand *holdemtable.Hand, playerID string, action string) bool {
	for _, possible := range hand.PossibleActionsOf(playerID) {
		if possible == action {
			return true
		}
	}
	return false
}

// CheckOrCall never folds and never raises.
func CheckOrCall(hand *holdemtable.Hand, playerID string) (string, int64) {
	if can(hand, playerID, holdemtable.Action_Check) {
		return holdemtable.Action_Check, 0
	}
	return holdemtable.Action_Call, 0
}

// FoldToBigBlind folds everyone preflop until the big blind wins the pot.
func FoldToBigBlind(hand *holdemtable.Hand, playerID string) (string, int64) {
	if can(hand, playerID, holdemtable.Action_Check) {
		return holdemtable.Action_Check, 0
	}
	return holdemtable.Action_Fold, 0
}

// ShoveOrCall pushes every chip when possible, otherwise calls.
func ShoveOrCall(hand *holdemtable.Hand, playerID string) (string, int64) {
	if can(hand, playerID, holdemtable.Action_Raise) {
		return holdemtable.Action_Raise, hand.ChipsInFront[playerID] + hand.ChipsInBack[playerID]
	}
	return CheckOrCall(hand, playerID)
}

// BetAndFoldOn plays check/call until the given street, where the first player bets and everyone else folds.
func BetAndFoldOn(street holdemtable.DealerState) Policy {
	bettor := ""
	return func(hand *holdemtable.Hand, playerID string) (string, int64) {
		if hand.DealerState != street {
			return CheckOrCall(hand, playerID)
		}

		if bettor == "" && can(hand, playerID, holdemtable.Action_Raise) {
			bettor = playerID
			return holdemtable.Action_Raise, hand.RaiseToAmounts[playerID]
		}

		if playerID == bettor {
			return CheckOrCall(hand, playerID)
		}
		return holdemtable.Action_Fold, 0
	}
}
