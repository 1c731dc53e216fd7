package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	sqlitemigrate "github.com/nicklatkovich/ktane-eight/internal/platform/storage/sqlitemigrate"
	"github.com/nicklatkovich/ktane-eight/internal/services/eight/storage"
	"github.com/nicklatkovich/ktane-eight/internal/services/eight/storage/sqlite/migrations"
	_ "modernc.org/sqlite"
)

// Store provides SQLite-backed diagnostic and round persistence.
type Store struct {
	sqlDB *sql.DB
}

// Open opens a puzzle SQLite store and applies migrations.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	cleanPath := filepath.Clean(path)
	dsn := cleanPath + "?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=5000&_synchronous=NORMAL"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}

	store := &Store{sqlDB: sqlDB}
	if err := sqlitemigrate.ApplyMigrations(sqlDB, migrations.FS, ""); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return store, nil
}

// Close releases the SQLite connection.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// AppendDiagnostic persists one diagnostic event.
func (s *Store) AppendDiagnostic(ctx context.Context, evt storage.DiagnosticEvent) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}

	evt.SessionID = strings.TrimSpace(evt.SessionID)
	evt.Kind = strings.TrimSpace(evt.Kind)
	if evt.SessionID == "" {
		return fmt.Errorf("session id is required")
	}
	if evt.Kind == "" {
		return fmt.Errorf("event kind is required")
	}
	if evt.CreatedAt.IsZero() {
		evt.CreatedAt = time.Now().UTC()
	}

	_, err := s.sqlDB.ExecContext(ctx, `
INSERT INTO diagnostic_events (
	session_id,
	module,
	kind,
	slot,
	digits,
	value,
	message,
	created_at
) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
`,
		evt.SessionID,
		evt.Module,
		evt.Kind,
		evt.Slot,
		evt.Digits,
		evt.Value,
		evt.Message,
		evt.CreatedAt.UTC().UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("append diagnostic: %w", err)
	}
	return nil
}

// ListDiagnostics lists a session's diagnostic events in emission order.
func (s *Store) ListDiagnostics(ctx context.Context, sessionID string, limit int) ([]storage.DiagnosticEvent, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}
	if limit <= 0 {
		return nil, fmt.Errorf("limit must be greater than zero")
	}

	rows, err := s.sqlDB.QueryContext(ctx, `
SELECT
	id,
	session_id,
	module,
	kind,
	slot,
	digits,
	value,
	message,
	created_at
FROM diagnostic_events
WHERE session_id = ?
ORDER BY id ASC
LIMIT ?
`, strings.TrimSpace(sessionID), limit)
	if err != nil {
		return nil, fmt.Errorf("list diagnostics: %w", err)
	}
	defer rows.Close()

	events := make([]storage.DiagnosticEvent, 0, limit)
	for rows.Next() {
		var evt storage.DiagnosticEvent
		var createdAt int64
		if err := rows.Scan(
			&evt.ID,
			&evt.SessionID,
			&evt.Module,
			&evt.Kind,
			&evt.Slot,
			&evt.Digits,
			&evt.Value,
			&evt.Message,
			&createdAt,
		); err != nil {
			return nil, fmt.Errorf("scan diagnostic: %w", err)
		}
		evt.CreatedAt = time.UnixMilli(createdAt).UTC()
		events = append(events, evt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate diagnostics: %w", err)
	}
	return events, nil
}

// RecordRound persists one round outcome.
func (s *Store) RecordRound(ctx context.Context, round storage.RoundRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}

	round.SessionID = strings.TrimSpace(round.SessionID)
	round.Verdict = strings.TrimSpace(round.Verdict)
	if round.SessionID == "" {
		return fmt.Errorf("session id is required")
	}
	if round.Verdict == "" {
		return fmt.Errorf("verdict is required")
	}
	if round.NotDisabled <= 0 {
		return fmt.Errorf("not disabled count must be greater than zero")
	}
	if round.CreatedAt.IsZero() {
		round.CreatedAt = time.Now().UTC()
	}

	_, err := s.sqlDB.ExecContext(ctx, `
INSERT INTO rounds (
	session_id,
	module,
	digits,
	stage,
	verdict,
	not_disabled,
	created_at
) VALUES (?, ?, ?, ?, ?, ?, ?)
`,
		round.SessionID,
		round.Module,
		round.Digits,
		round.Stage,
		round.Verdict,
		round.NotDisabled,
		round.CreatedAt.UTC().UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("record round: %w", err)
	}
	return nil
}

// ListRounds lists a session's rounds newest first.
func (s *Store) ListRounds(ctx context.Context, sessionID string, limit int) ([]storage.RoundRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}
	if limit <= 0 {
		return nil, fmt.Errorf("limit must be greater than zero")
	}

	rows, err := s.sqlDB.QueryContext(ctx, `
SELECT
	id,
	session_id,
	module,
	digits,
	stage,
	verdict,
	not_disabled,
	created_at
FROM rounds
WHERE session_id = ?
ORDER BY created_at DESC, id DESC
LIMIT ?
`, strings.TrimSpace(sessionID), limit)
	if err != nil {
		return nil, fmt.Errorf("list rounds: %w", err)
	}
	defer rows.Close()

	rounds := make([]storage.RoundRecord, 0, limit)
	for rows.Next() {
		var round storage.RoundRecord
		var createdAt int64
		if err := rows.Scan(
			&round.ID,
			&round.SessionID,
			&round.Module,
			&round.Digits,
			&round.Stage,
			&round.Verdict,
			&round.NotDisabled,
			&createdAt,
		); err != nil {
			return nil, fmt.Errorf("scan round: %w", err)
		}
		round.CreatedAt = time.UnixMilli(createdAt).UTC()
		rounds = append(rounds, round)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rounds: %w", err)
	}
	return rounds, nil
}

var _ storage.Store = (*Store)(nil)
