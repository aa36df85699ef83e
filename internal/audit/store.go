package audit

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/vk4tech/passbot/internal/db"
)

// Store provides access to the delivery log.
type Store struct {
	db *db.DB
}

// NewStore creates a Store backed by the given database.
func NewStore(database *db.DB) *Store {
	return &Store{db: database}
}

// Log inserts a delivery log entry. If entry.ID is empty a UUID is
// generated; if entry.Timestamp is zero the current time is used.
// Timestamps are stored as RFC3339 UTC so string comparison in SQL orders
// and filters them correctly.
func (s *Store) Log(ctx context.Context, entry Entry) error {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO delivery_log (id, timestamp, sender, intent, outcome, detail)
		VALUES (?, ?, ?, ?, ?, ?)`,
		entry.ID, entry.Timestamp.UTC().Format(time.RFC3339),
		entry.Sender, string(entry.Intent), string(entry.Outcome), entry.Detail,
	)
	if err != nil {
		return fmt.Errorf("inserting delivery log entry: %w", err)
	}
	return nil
}

// QueryFilter controls which delivery log entries are returned by Query.
type QueryFilter struct {
	Sender  string
	Outcome Outcome
	Since   time.Time
	Limit   int
	Offset  int
}

// Query returns delivery log entries matching the filter, newest first.
func (s *Store) Query(ctx context.Context, filter QueryFilter) ([]Entry, error) {
	var (
		clauses []string
		args    []any
	)

	if filter.Sender != "" {
		clauses = append(clauses, "sender = ?")
		args = append(args, filter.Sender)
	}
	if filter.Outcome != "" {
		clauses = append(clauses, "outcome = ?")
		args = append(args, string(filter.Outcome))
	}
	if !filter.Since.IsZero() {
		clauses = append(clauses, "timestamp >= ?")
		args = append(args, filter.Since.UTC().Format(time.RFC3339))
	}

	query := "SELECT id, timestamp, sender, intent, outcome, detail FROM delivery_log"
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += " ORDER BY timestamp DESC, id"

	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", filter.Limit)
	}
	if filter.Offset > 0 {
		query += fmt.Sprintf(" OFFSET %d", filter.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying delivery log: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			e      Entry
			intent string
			outc   string
			ts     string
		)
		if err := rows.Scan(&e.ID, &ts, &e.Sender, &intent, &outc, &e.Detail); err != nil {
			return nil, fmt.Errorf("scanning delivery log entry: %w", err)
		}
		e.Intent = Intent(intent)
		e.Outcome = Outcome(outc)
		e.Timestamp, err = time.Parse(time.RFC3339, ts)
		if err != nil {
			return nil, fmt.Errorf("parsing delivery log timestamp %q: %w", ts, err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
