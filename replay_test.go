package holdemtable

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type bogusEvent struct {
	EventHeader
}

func (bogusEvent) Kind() EventKind { return "Bogus" }
func (bogusEvent) isEvent()        {}

func playCheckDownHand(t *testing.T) *tableRecorder {
	playerIDs := []string{"Jeffrey", "Chuck", "Fred"}
	cards := newScriptedCardSource(playerIDs...)
	evaluator := newFixedEvaluator(cards, map[string]int64{"Jeffrey": 1, "Chuck": 2, "Fred": 3})
	tr := newTableRecorder(t, 6, NewJoinPlayers(playerIDs), 1000)
	tr.startHand(Blinds{SmallBlind: 10, BigBlind: 20}, cards, evaluator, 11)

	for tr.table.CurrentHand != nil {
		h := tr.hand()
		playerID := h.ActionOnPlayerID()
		if contains(h.PossibleActionsOf(playerID), Action_Check) {
			tr.do(func(t Table) ([]Event, error) { return t.Check(playerID) })
		} else {
			tr.do(func(t Table) ([]Event, error) { return t.Call(playerID) })
		}
	}
	return tr
}

func TestReplay_Deterministic(t *testing.T) {
	tr := playCheckDownHand(t)

	first, err := Replay(tr.history)
	require.NoError(t, err)

	second, err := Replay(tr.history)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, tr.table, first)
	assert.Equal(t, len(tr.history), first.Version)
	assert.Equal(t, 1, first.HandsPlayed)
	assert.Equal(t, int64(1040), first.Chips("Fred"))

	for v := 1; v <= len(tr.history); v++ {
		partial, err := Replay(tr.history[:v])
		require.NoError(t, err)
		assert.Equal(t, v, partial.Version)
	}
}

func TestReplay_RoundTripThroughCodec(t *testing.T) {
	tr := playCheckDownHand(t)

	decoded := make([]Event, 0, len(tr.history))
	for _, e := range tr.history {
		data, err := MarshalEvent(e)
		require.NoError(t, err)

		var envelope EventEnvelope
		require.NoError(t, json.Unmarshal(data, &envelope))
		assert.Equal(t, e.Kind(), envelope.Kind)
		assert.Equal(t, e.Header().Version, envelope.Version)

		d, err := UnmarshalEvent(data)
		require.NoError(t, err)
		decoded = append(decoded, d)
	}

	replayed, err := Replay(decoded)
	require.NoError(t, err)
	assert.Equal(t, tr.table, replayed)
}

func TestReplay_VersionGap(t *testing.T) {
	tr := playCheckDownHand(t)

	gapped := append(append([]Event{}, tr.history[:2]...), tr.history[3:]...)
	_, err := Replay(gapped)
	assert.ErrorIs(t, err, ErrReplayVersionGap)
	assert.Contains(t, err.Error(), "expected 3 got 4")
}

func TestReplay_TableMismatch(t *testing.T) {
	tr := playCheckDownHand(t)

	other := newTableRecorder(t, 6, NewJoinPlayers([]string{"Jeffrey", "Chuck"}), 1000)
	created := other.history[0].(TableCreatedEvent)
	created.TableID = "table-2"
	created.Version = len(tr.history) + 1

	_, err := Replay(append(append([]Event{}, tr.history...), created))
	assert.ErrorIs(t, err, ErrReplayTableMismatch)
}

func TestReplay_UnknownEvent(t *testing.T) {
	tr := newTableRecorder(t, 6, NewJoinPlayers([]string{"Jeffrey", "Chuck"}), 1000)

	_, err := Replay(append(tr.history, bogusEvent{EventHeader: EventHeader{TableID: "table-1", Version: 2}}))
	assert.ErrorIs(t, err, ErrReplayUnknownEvent)

	_, err = DecodeEvent("Bogus", []byte(`{}`))
	assert.ErrorIs(t, err, ErrReplayUnknownEvent)

	_, err = UnmarshalEvent([]byte(`{"table_id":"table-1","version":2,"kind":"Bogus","payload":{}}`))
	assert.ErrorIs(t, err, ErrReplayUnknownEvent)
}

func TestReplay_HandMismatch(t *testing.T) {
	tr := newTableRecorder(t, 6, NewJoinPlayers([]string{"Jeffrey", "Chuck"}), 1000)

	_, err := Replay(append(tr.history, PlayerCheckedEvent{
		EventHeader: EventHeader{TableID: "table-1", GameID: "game-1", Version: 2},
		HandID:      "missing",
		PlayerID:    "Jeffrey",
	}))
	assert.ErrorIs(t, err, ErrReplayHandMismatch)
}

func TestTable_ApplyLeavesReceiverUntouched(t *testing.T) {
	tr := newTableRecorder(t, 6, NewJoinPlayers([]string{"Jeffrey", "Chuck"}), 1000)
	cards := newScriptedCardSource("Jeffrey", "Chuck")
	evaluator := newFixedEvaluator(cards, nil)

	before, err := tr.table.GetJSON()
	require.NoError(t, err)

	events, err := tr.table.StartNewHand(Blinds{SmallBlind: 10, BigBlind: 20}, cards, evaluator, newTestRand(1))
	require.NoError(t, err)

	next, err := tr.table.Apply(events...)
	require.NoError(t, err)
	assert.NotNil(t, next.CurrentHand)

	after, err := tr.table.GetJSON()
	require.NoError(t, err)
	assert.Equal(t, before, after)
	assert.Nil(t, tr.table.CurrentHand)
}
