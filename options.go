package holdemtable

import (
	"math/rand"
	"time"

	"github.com/weedbox/holdemtable/blind"
	"go.uber.org/zap"
)

type ManagerCallbacks struct {
	OnTableUpdated      func(t *Table)
	OnTableErrorUpdated func(t *Table, err error)
}

func NewManagerCallbacks() *ManagerCallbacks {
	return &ManagerCallbacks{
		OnTableUpdated:      func(*Table) {},
		OnTableErrorUpdated: func(*Table, error) {},
	}
}

type ManagerOpt func(*manager)

func WithLogger(logger *zap.Logger) ManagerOpt {
	return func(m *manager) {
		m.logger = logger
	}
}

func WithEventLog(eventLog EventLog) ManagerOpt {
	return func(m *manager) {
		m.eventLog = eventLog
	}
}

func WithPublisher(publisher Publisher) ManagerOpt {
	return func(m *manager) {
		m.publisher = publisher
	}
}

func WithCardSource(cards CardSource) ManagerOpt {
	return func(m *manager) {
		m.cards = cards
	}
}

func WithHandEvaluator(evaluator HandEvaluator) ManagerOpt {
	return func(m *manager) {
		m.evaluator = evaluator
	}
}

// WithRandom seeds button selection, hand ids and random seating.
func WithRandom(r *rand.Rand) ManagerOpt {
	return func(m *manager) {
		m.rng = r
	}
}

func WithBlind(b blind.Blind) ManagerOpt {
	return func(m *manager) {
		m.blind = b
	}
}

func WithCallbacks(callbacks *ManagerCallbacks) ManagerOpt {
	return func(m *manager) {
		if callbacks.OnTableUpdated != nil {
			m.callbacks.OnTableUpdated = callbacks.OnTableUpdated
		}
		if callbacks.OnTableErrorUpdated != nil {
			m.callbacks.OnTableErrorUpdated = callbacks.OnTableErrorUpdated
		}
	}
}

/*
WithActionTimeout 玩家行動逾時
  - 逾時後可 check 則 check, 否則 fold
  - 0 表示不限時
*/
func WithActionTimeout(timeout time.Duration) ManagerOpt {
	return func(m *manager) {
		m.actionTimeout = timeout
	}
}

/*
WithAutoStartNextHand 開桌及每手結束後自動開始下一手
  - 有籌碼的玩家都 ready 後開局
  - readyTimeoutSec 秒後未 ready 的玩家自動 ready, 0 表示一直等待
*/
func WithAutoStartNextHand(readyTimeoutSec int) ManagerOpt {
	return func(m *manager) {
		m.autoStartNextHand = true
		m.readyTimeoutSec = readyTimeoutSec
	}
}
