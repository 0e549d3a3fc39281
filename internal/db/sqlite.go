// Package db provides SQLite storage implementation.
package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/jfarrow/slotcal/internal/event"
)

// timeLayout is how instants are stored. An absent instant is stored as
// the empty string, never as a zero-formatted timestamp.
const timeLayout = time.RFC3339

// SQLite implements event.Store using SQLite.
type SQLite struct {
	db *sql.DB
}

// New creates a new SQLite store and runs migrations.
func New(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	s := &SQLite{db: db}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Create persists a new event, assigning a fresh ID when the caller
// left it empty.
func (s *SQLite) Create(ctx context.Context, ev *event.Event) error {
	if ev.ID == "" {
		ev.ID = uuid.NewString()
	}
	if ev.CreatedAt.IsZero() {
		ev.CreatedAt = time.Now()
	}

	query := `
		INSERT INTO events (id, title, description, start_date, start_at, end_at, all_day, category, color, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := s.db.ExecContext(ctx, query,
		ev.ID,
		ev.Title,
		ev.Description,
		formatDate(ev.Start),
		formatInstant(ev.Start),
		formatInstant(ev.End),
		boolToInt(ev.AllDay),
		ev.Category,
		ev.Color,
		ev.CreatedAt.Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("inserting event: %w", err)
	}

	return nil
}

// Get retrieves an event by ID.
func (s *SQLite) Get(ctx context.Context, id string) (*event.Event, error) {
	query := selectClause + ` WHERE id = ?`

	ev, err := scanEvent(s.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, event.ErrEventNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying event: %w", err)
	}
	return ev, nil
}

// Update replaces the stored event with the same ID.
func (s *SQLite) Update(ctx context.Context, ev event.Event) error {
	query := `
		UPDATE events
		SET title = ?, description = ?, start_date = ?, start_at = ?, end_at = ?, all_day = ?, category = ?, color = ?
		WHERE id = ?
	`

	result, err := s.db.ExecContext(ctx, query,
		ev.Title,
		ev.Description,
		formatDate(ev.Start),
		formatInstant(ev.Start),
		formatInstant(ev.End),
		boolToInt(ev.AllDay),
		ev.Category,
		ev.Color,
		ev.ID,
	)
	if err != nil {
		return fmt.Errorf("updating event: %w", err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return event.ErrEventNotFound
	}
	return nil
}

// Delete removes an event by ID. Unknown IDs are not an error.
func (s *SQLite) Delete(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM events WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting event: %w", err)
	}
	return nil
}

// List returns all events whose start date falls within the range
// (inclusive), ordered by start instant. Events without a start date
// are excluded; they have no place on a calendar grid.
func (s *SQLite) List(ctx context.Context, start, end time.Time) ([]event.Event, error) {
	query := selectClause + `
		WHERE start_date != '' AND start_date >= ? AND start_date <= ?
		ORDER BY start_at
	`

	rows, err := s.db.QueryContext(ctx, query, start.Format("2006-01-02"), end.Format("2006-01-02"))
	if err != nil {
		return nil, fmt.Errorf("querying events: %w", err)
	}
	return collectEvents(rows)
}

// ListAll returns every stored event, ordered by start instant.
func (s *SQLite) ListAll(ctx context.Context) ([]event.Event, error) {
	rows, err := s.db.QueryContext(ctx, selectClause+` ORDER BY start_at`)
	if err != nil {
		return nil, fmt.Errorf("querying events: %w", err)
	}
	return collectEvents(rows)
}

// Close releases the underlying database handle.
func (s *SQLite) Close() error {
	return s.db.Close()
}

const selectClause = `
	SELECT id, title, description, start_at, end_at, all_day, category, color, created_at
	FROM events
`

// scanner abstracts sql.Row and sql.Rows for scanEvent.
type scanner interface {
	Scan(dest ...any) error
}

func scanEvent(row scanner) (*event.Event, error) {
	var (
		ev        event.Event
		startAt   string
		endAt     string
		allDay    int
		createdAt string
	)

	err := row.Scan(
		&ev.ID,
		&ev.Title,
		&ev.Description,
		&startAt,
		&endAt,
		&allDay,
		&ev.Category,
		&ev.Color,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	if ev.Start, err = parseInstant(startAt); err != nil {
		return nil, fmt.Errorf("parsing start: %w", err)
	}
	if ev.End, err = parseInstant(endAt); err != nil {
		return nil, fmt.Errorf("parsing end: %w", err)
	}
	ev.AllDay = allDay != 0

	// created_at may come from the column default in either format.
	if ev.CreatedAt, err = time.Parse(timeLayout, createdAt); err != nil {
		ev.CreatedAt, _ = time.Parse("2006-01-02 15:04:05", createdAt)
	}

	return &ev, nil
}

func collectEvents(rows *sql.Rows) ([]event.Event, error) {
	defer func() { _ = rows.Close() }()

	var events []event.Event
	for rows.Next() {
		ev, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning event: %w", err)
		}
		events = append(events, *ev)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating events: %w", err)
	}
	return events, nil
}

func formatInstant(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(timeLayout)
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02")
}

func parseInstant(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return time.Parse(timeLayout, s)
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
