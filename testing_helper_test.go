package holdemtable

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func standardDeck() []string {
	deck := make([]string, 0, 52)
	for _, suit := range []string{"C", "D", "H", "S"} {
		for _, rank := range []string{"2", "3", "4", "5", "6", "7", "8", "9", "T", "J", "Q", "K", "A"} {
			deck = append(deck, suit+rank)
		}
	}
	return deck
}

// scriptedCardSource deals fixed pocket cards per player and a fixed board.
type scriptedCardSource struct {
	pocketCards map[string][]string
	board       []string
}

func newScriptedCardSource(playerIDs ...string) *scriptedCardSource {
	deck := standardDeck()
	cs := &scriptedCardSource{
		pocketCards: make(map[string][]string),
		board:       append([]string{}, deck[:5]...),
	}

	next := 5
	for _, playerID := range playerIDs {
		cs.pocketCards[playerID] = append([]string{}, deck[next:next+2]...)
		next += 2
	}
	return cs
}

func (cs *scriptedCardSource) Shuffle(tableID string) ([]string, error) {
	return standardDeck(), nil
}

func (cs *scriptedCardSource) PocketCards(playerID string, tableID string) ([]string, error) {
	return cs.pocketCards[playerID], nil
}

func (cs *scriptedCardSource) Flop(tableID string) ([]string, error) {
	return cs.board[:3], nil
}

func (cs *scriptedCardSource) Turn(tableID string) (string, error) {
	return cs.board[3], nil
}

func (cs *scriptedCardSource) River(tableID string) (string, error) {
	return cs.board[4], nil
}

// fixedEvaluator ranks hands by the first pocket card; unknown cards rank 0.
type fixedEvaluator struct {
	values map[string]int64
}

func newFixedEvaluator(cards *scriptedCardSource, values map[string]int64) *fixedEvaluator {
	e := &fixedEvaluator{values: make(map[string]int64)}
	for playerID, value := range values {
		e.values[cards.pocketCards[playerID][0]] = value
	}
	return e
}

func (e *fixedEvaluator) PossibleHands(communityCards []string) ([]string, error) {
	return []string{HandCategory_HighCard}, nil
}

func (e *fixedEvaluator) Evaluate(communityCards []string, pocketCards []string, possibleHands []string) (HandRank, error) {
	return HandRank{
		Value:       e.values[pocketCards[0]],
		Category:    HandCategory_HighCard,
		Description: "fixed",
	}, nil
}

// tableRecorder applies commands to a table and keeps the full history.
type tableRecorder struct {
	t       *testing.T
	table   *Table
	history []Event
	total   int64
}

func newTableRecorder(t *testing.T, numberOfSeats int, players []JoinPlayer, startingChips int64) *tableRecorder {
	events, err := NewTable("table-1", "game-1", numberOfSeats).CreateNewTableWithPlayers(players, startingChips, nil)
	require.NoError(t, err)

	table, err := NewTable("table-1", "game-1", numberOfSeats).Apply(events...)
	require.NoError(t, err)

	total := int64(0)
	for _, chips := range table.ChipsInBack {
		total += chips
	}

	return &tableRecorder{
		t:       t,
		table:   table,
		history: events,
		total:   total,
	}
}

func (tr *tableRecorder) do(decide func(t Table) ([]Event, error)) []Event {
	events, err := decide(*tr.table)
	require.NoError(tr.t, err)

	next, err := tr.table.Apply(events...)
	require.NoError(tr.t, err)

	tr.table = next
	tr.history = append(tr.history, events...)
	require.Equal(tr.t, tr.total, tr.chipsOnTable(), "chips must be conserved")
	return events
}

func (tr *tableRecorder) startHand(blinds Blinds, cards CardSource, evaluator HandEvaluator, seed int64) []Event {
	return tr.do(func(t Table) ([]Event, error) {
		return t.StartNewHand(blinds, cards, evaluator, rand.New(rand.NewSource(seed)))
	})
}

// chipsOnTable counts stacks plus everything committed to the current hand.
func (tr *tableRecorder) chipsOnTable() int64 {
	total := int64(0)
	if tr.table.CurrentHand == nil {
		for _, chips := range tr.table.ChipsInBack {
			total += chips
		}
		return total
	}

	hand := tr.table.CurrentHand
	for playerID, chips := range tr.table.ChipsInBack {
		if _, inHand := hand.ChipsInBack[playerID]; !inHand {
			total += chips
		}
	}
	for playerID, chips := range hand.ChipsInBack {
		total += chips + hand.Contributions[playerID]
	}
	return total
}

func (tr *tableRecorder) hand() *Hand {
	require.NotNil(tr.t, tr.table.CurrentHand)
	return tr.table.CurrentHand
}

func findLastEvent[T Event](events []Event) (T, bool) {
	var found T
	ok := false
	for _, e := range events {
		if ev, match := e.(T); match {
			found = ev
			ok = true
		}
	}
	return found, ok
}

func newTestRand(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}
