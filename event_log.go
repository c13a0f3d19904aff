package holdemtable

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

var (
	ErrEventLogVersionConflict = errors.New("event log: version conflict")
	ErrEventLogMixedTables     = errors.New("event log: events belong to different tables")
)

// EventLog is the ordered, append-only history of every table.
type EventLog interface {
	FetchAll(ctx context.Context, tableID string) ([]Event, error)
	Save(ctx context.Context, events ...Event) error
}

// CheckEventSequence verifies that events continue a history ending at lastVersion
// and all belong to the same table.
func CheckEventSequence(lastVersion int, events []Event) error {
	tableID := ""
	expected := lastVersion + 1
	for _, e := range events {
		header := e.Header()
		if tableID == "" {
			tableID = header.TableID
		} else if header.TableID != tableID {
			return fmt.Errorf("%w: %s and %s", ErrEventLogMixedTables, tableID, header.TableID)
		}

		if header.Version != expected {
			return fmt.Errorf("%w: expected %d got %d", ErrEventLogVersionConflict, expected, header.Version)
		}
		expected++
	}
	return nil
}

// NativeEventLog keeps events in memory.
type NativeEventLog struct {
	mu     sync.RWMutex
	events map[string][]Event // key: table id
}

func NewNativeEventLog() *NativeEventLog {
	return &NativeEventLog{
		events: make(map[string][]Event),
	}
}

func (l *NativeEventLog) FetchAll(ctx context.Context, tableID string) ([]Event, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	l.mu.RLock()
	defer l.mu.RUnlock()

	return append([]Event{}, l.events[tableID]...), nil
}

func (l *NativeEventLog) Save(ctx context.Context, events ...Event) error {
	if len(events) == 0 {
		return nil
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	tableID := events[0].Header().TableID
	if err := CheckEventSequence(len(l.events[tableID]), events); err != nil {
		return err
	}

	l.events[tableID] = append(l.events[tableID], events...)
	return nil
}
