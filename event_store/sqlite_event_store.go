package event_store

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/weedbox/holdemtable"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS table_events (
	table_id    TEXT    NOT NULL,
	version     INTEGER NOT NULL,
	kind        TEXT    NOT NULL,
	payload     BLOB    NOT NULL,
	recorded_at INTEGER NOT NULL,
	PRIMARY KEY (table_id, version)
);`

// SQLiteEventStore is a durable holdemtable.EventLog.
type SQLiteEventStore struct {
	sqlDB *sql.DB
}

func Open(path string) (*SQLiteEventStore, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("event store: path is required")
	}

	dsn := filepath.Clean(path) + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("event store: open sqlite db: %w", err)
	}

	// sqlite 只允許一個 writer
	sqlDB.SetMaxOpenConns(1)

	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("event store: ping sqlite db: %w", err)
	}

	if _, err := sqlDB.Exec(schema); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("event store: create schema: %w", err)
	}

	return &SQLiteEventStore{sqlDB: sqlDB}, nil
}

func (s *SQLiteEventStore) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

func (s *SQLiteEventStore) FetchAll(ctx context.Context, tableID string) ([]holdemtable.Event, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	rows, err := s.sqlDB.QueryContext(ctx,
		`SELECT kind, payload FROM table_events WHERE table_id = ? ORDER BY version ASC`,
		tableID,
	)
	if err != nil {
		return nil, fmt.Errorf("event store: query events: %w", err)
	}
	defer rows.Close()

	events := make([]holdemtable.Event, 0)
	for rows.Next() {
		var kind string
		var payload []byte
		if err := rows.Scan(&kind, &payload); err != nil {
			return nil, fmt.Errorf("event store: scan event: %w", err)
		}

		e, err := holdemtable.DecodeEvent(holdemtable.EventKind(kind), payload)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("event store: iterate events: %w", err)
	}
	return events, nil
}

/*
Save 寫入一批事件
  - 同一個 transaction 內檢查版本必須接續目前最後版本
  - 任一筆失敗整批不寫入
*/
func (s *SQLiteEventStore) Save(ctx context.Context, events ...holdemtable.Event) error {
	if len(events) == 0 {
		return nil
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("event store: begin tx: %w", err)
	}
	defer tx.Rollback()

	tableID := events[0].Header().TableID

	var lastVersion int
	if err := tx.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(version), 0) FROM table_events WHERE table_id = ?`,
		tableID,
	).Scan(&lastVersion); err != nil {
		return fmt.Errorf("event store: read last version: %w", err)
	}

	if err := holdemtable.CheckEventSequence(lastVersion, events); err != nil {
		return err
	}

	recordedAt := time.Now().UTC().UnixMilli()
	for _, e := range events {
		kind, payload, err := holdemtable.EncodeEvent(e)
		if err != nil {
			return err
		}

		if _, err := tx.ExecContext(ctx,
			`INSERT INTO table_events (table_id, version, kind, payload, recorded_at) VALUES (?, ?, ?, ?, ?)`,
			tableID, e.Header().Version, string(kind), payload, recordedAt,
		); err != nil {
			return fmt.Errorf("event store: insert event %d: %w", e.Header().Version, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("event store: commit: %w", err)
	}
	return nil
}
