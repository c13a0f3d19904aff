package holdemtable

import (
	"context"
	"sync"
	"time"

	"github.com/thoas/go-funk"
	"github.com/weedbox/timebank"
	"go.uber.org/zap"
)

// actionTimer keeps one pending timeout per table.
type actionTimer struct {
	mu        sync.Mutex
	timebanks map[string]*timebank.TimeBank // key: table id
}

func newActionTimer() *actionTimer {
	return &actionTimer{
		timebanks: make(map[string]*timebank.TimeBank),
	}
}

func (at *actionTimer) schedule(tableID string, timeout time.Duration, fn func()) error {
	at.mu.Lock()
	defer at.mu.Unlock()

	if tb, exist := at.timebanks[tableID]; exist {
		tb.Cancel()
	}

	tb := timebank.NewTimeBank()
	at.timebanks[tableID] = tb
	return tb.NewTask(timeout, func(isCancelled bool) {
		if isCancelled {
			return
		}

		// 在新的 goroutine 執行, 讓 timebank 可被重新排程
		go fn()
	})
}

func (at *actionTimer) cancel(tableID string) {
	at.mu.Lock()
	defer at.mu.Unlock()

	if tb, exist := at.timebanks[tableID]; exist {
		tb.Cancel()
		delete(at.timebanks, tableID)
	}
}

func (at *actionTimer) cancelAll() {
	at.mu.Lock()
	defer at.mu.Unlock()

	for tableID, tb := range at.timebanks {
		tb.Cancel()
		delete(at.timebanks, tableID)
	}
}

// scheduleActionTimeout arms the timeout for whoever holds the action at this version.
func (m *manager) scheduleActionTimeout(t *Table) {
	if m.actionTimeout <= 0 {
		return
	}

	if t.CurrentHand == nil || t.CurrentHand.ActionOnPlayerID() == "" {
		m.actionTimer.cancel(t.ID)
		return
	}

	tableID := t.ID
	version := t.Version
	playerID := t.CurrentHand.ActionOnPlayerID()
	err := m.actionTimer.schedule(tableID, m.actionTimeout, func() {
		m.handleActionTimeout(tableID, version, playerID)
	})
	if err != nil {
		m.logger.Error("failed to schedule action timeout",
			zap.String("table_id", tableID),
			zap.String("player_id", playerID),
			zap.Error(err),
		)
	}
}

/*
handleActionTimeout 行動逾時
  - 桌子版本已改變時不做任何事
  - 可 check 則 check, 否則 fold
*/
func (m *manager) handleActionTimeout(tableID string, version int, playerID string) {
	_, err := m.execute(context.Background(), tableID, false, func(t Table) ([]Event, error) {
		if t.Version != version || t.CurrentHand == nil || t.CurrentHand.ActionOnPlayerID() != playerID {
			return nil, nil
		}

		m.logger.Info("player action timeout",
			zap.String("table_id", tableID),
			zap.String("player_id", playerID),
			zap.Int("version", version),
		)

		if funk.ContainsString(t.CurrentHand.PossibleActionsOf(playerID), Action_Check) {
			return t.Check(playerID)
		}
		return t.Fold(playerID)
	})
	if err != nil {
		m.logger.Warn("action timeout command rejected",
			zap.String("table_id", tableID),
			zap.String("player_id", playerID),
			zap.Error(err),
		)
	}
}
