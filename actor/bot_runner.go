package actor

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/thoas/go-funk"
	"github.com/weedbox/holdemtable"
	"github.com/weedbox/timebank"
	"go.uber.org/zap"
)

type ActionProbability struct {
	Action string
	Weight float64
}

var (
	actionProbabilities = []ActionProbability{
		{Action: holdemtable.Action_Check, Weight: 0.3},
		{Action: holdemtable.Action_Call, Weight: 0.4},
		{Action: holdemtable.Action_Fold, Weight: 0.1},
		{Action: holdemtable.Action_Raise, Weight: 0.2},
	}
)

type BotActionFunc func(tableID, playerID, action string, chips int64)

/*
BotRunner 代替玩家行動
  - 一般模式: 可 check 就 check, 否則 call
  - 擬人模式: 依權重隨機選擇動作, 並隨機思考 0 ~ thinkingTimeSec 秒
  - 牌局之間自動 ready
*/
type BotRunner struct {
	mu              sync.Mutex
	manager         holdemtable.Manager
	logger          *zap.Logger
	tableID         string
	playerID        string
	isHumanized     bool
	thinkingTimeSec int
	lastVersion     int
	r               *rand.Rand
	timebank        *timebank.TimeBank
	onActed         BotActionFunc
}

func NewBotRunner(manager holdemtable.Manager, tableID, playerID string, r *rand.Rand) *BotRunner {
	if r == nil {
		r = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	return &BotRunner{
		manager:  manager,
		logger:   zap.NewNop(),
		tableID:  tableID,
		playerID: playerID,
		r:        r,
		timebank: timebank.NewTimeBank(),
		onActed:  func(string, string, string, int64) {},
	}
}

func (br *BotRunner) PlayerID() string {
	return br.playerID
}

func (br *BotRunner) SetLogger(logger *zap.Logger) {
	br.logger = logger
}

func (br *BotRunner) Humanized(enabled bool, thinkingTimeSec int) {
	br.mu.Lock()
	defer br.mu.Unlock()
	br.isHumanized = enabled
	br.thinkingTimeSec = thinkingTimeSec
}

func (br *BotRunner) OnActed(fn BotActionFunc) {
	br.onActed = fn
}

// UpdateTableState reacts to a committed table snapshot.
func (br *BotRunner) UpdateTableState(t *holdemtable.Table) error {
	if t.ID != br.tableID {
		return nil
	}

	task := br.plan(t)
	if task == nil {
		return nil
	}

	return br.timebank.NewTask(task.delay, func(isCancelled bool) {
		if isCancelled {
			return
		}
		go task.run()
	})
}

type botTask struct {
	delay time.Duration
	run   func()
}

func (br *BotRunner) plan(t *holdemtable.Table) *botTask {
	br.mu.Lock()
	defer br.mu.Unlock()

	// The state remains unchanged or is outdated
	if t.Version <= br.lastVersion {
		return nil
	}
	br.lastVersion = t.Version

	// 牌局之間: 還有籌碼就 ready
	if t.CurrentHand == nil {
		if t.ChipsInBack[br.playerID] <= 0 {
			return nil
		}

		return &botTask{
			delay: 10 * time.Millisecond,
			run: func() {
				// 未開啟 ready gate 時忽略
				_ = br.manager.PlayerReady(context.Background(), br.tableID, br.playerID)
			},
		}
	}

	hand := t.CurrentHand
	if hand.ActionOnPlayerID() != br.playerID {
		return nil
	}

	actions := hand.PossibleActionsOf(br.playerID)
	if len(actions) == 0 {
		return nil
	}

	action := br.calcAction(actions)
	chips := int64(0)
	switch action {
	case holdemtable.Action_Call:
		chips = hand.CallAmounts[br.playerID]
	case holdemtable.Action_Raise:
		chips = br.calcRaiseTo(*hand)
	}

	delay := 10 * time.Millisecond
	if br.isHumanized && br.thinkingTimeSec > 0 {
		delay += time.Duration(br.r.Intn(br.thinkingTimeSec*1000)) * time.Millisecond
	}

	return &botTask{
		delay: delay,
		run: func() {
			if err := br.act(action, chips); err != nil {
				br.logger.Warn("bot action rejected",
					zap.String("table_id", br.tableID),
					zap.String("player_id", br.playerID),
					zap.String("action", action),
					zap.Error(err),
				)
				return
			}
			br.onActed(br.tableID, br.playerID, action, chips)
		},
	}
}

func (br *BotRunner) act(action string, chips int64) error {
	ctx := context.Background()

	var err error
	switch action {
	case holdemtable.Action_Check:
		_, err = br.manager.PlayerCheck(ctx, br.tableID, br.playerID)
	case holdemtable.Action_Call:
		_, err = br.manager.PlayerCall(ctx, br.tableID, br.playerID)
	case holdemtable.Action_Raise:
		_, err = br.manager.PlayerRaise(ctx, br.tableID, br.playerID, chips)
	default:
		_, err = br.manager.PlayerFold(ctx, br.tableID, br.playerID)
	}
	return err
}

func (br *BotRunner) calcAction(actions []string) string {
	if !br.isHumanized {
		if funk.ContainsString(actions, holdemtable.Action_Check) {
			return holdemtable.Action_Check
		}
		return holdemtable.Action_Call
	}

	probabilities := calcActionProbabilities(actions)
	randomNum := br.r.Float64()
	for _, p := range probabilities {
		if randomNum < p.Weight {
			return p.Action
		}
	}

	return actions[len(actions)-1]
}

// calcRaiseTo picks a raise-to between the minimum and the whole stack.
func (br *BotRunner) calcRaiseTo(hand holdemtable.Hand) int64 {
	minRaiseTo := hand.RaiseToAmounts[br.playerID]
	maxRaiseTo := hand.ChipsInFront[br.playerID] + hand.ChipsInBack[br.playerID]
	if maxRaiseTo <= minRaiseTo {
		return maxRaiseTo
	}
	return br.r.Int63n(maxRaiseTo-minRaiseTo+1) + minRaiseTo
}

// calcActionProbabilities returns cumulative weights of the allowed actions, in table order.
func calcActionProbabilities(actions []string) []ActionProbability {
	totalWeight := 0.0
	for _, p := range actionProbabilities {
		if funk.ContainsString(actions, p.Action) {
			totalWeight += p.Weight
		}
	}

	probabilities := make([]ActionProbability, 0, len(actions))
	if totalWeight == 0 {
		return probabilities
	}

	weightLevel := 0.0
	for _, p := range actionProbabilities {
		if !funk.ContainsString(actions, p.Action) {
			continue
		}

		weightLevel += p.Weight / totalWeight
		probabilities = append(probabilities, ActionProbability{
			Action: p.Action,
			Weight: weightLevel,
		})
	}
	return probabilities
}
