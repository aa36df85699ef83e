package directory

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/vk4tech/passbot/internal/db"
)

// Directory is the lookup surface the webhook dispatcher depends on.
type Directory interface {
	// FindByPhone returns every record sharing the normalized phone value,
	// possibly none, possibly many.
	FindByPhone(ctx context.Context, phone string) ([]VisitorRecord, error)

	// FindByPhoneAndEmail returns the record whose phone matches exactly and
	// whose email matches case-insensitively, or nil when there is none.
	FindByPhoneAndEmail(ctx context.Context, phone, email string) (*VisitorRecord, error)
}

// Store provides visitor directory access backed by SQLite.
type Store struct {
	db *db.DB
}

// NewStore creates a Store backed by the given database.
func NewStore(database *db.DB) *Store {
	return &Store{db: database}
}

const visitorColumns = "id, name, email, phone, designation, visitor_code, visitor_type, entry_pass_url"

// FindByPhone returns all visitor records registered under the given
// normalized phone number, in registration order.
func (s *Store) FindByPhone(ctx context.Context, phone string) ([]VisitorRecord, error) {
	if phone == "" {
		return nil, nil
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT `+visitorColumns+`
		FROM visitors WHERE phone = ? ORDER BY created_at, id`, phone)
	if err != nil {
		return nil, fmt.Errorf("querying visitors by phone: %w", err)
	}
	defer rows.Close()

	var records []VisitorRecord
	for rows.Next() {
		var rec VisitorRecord
		if err := scanVisitor(rows, &rec); err != nil {
			return nil, fmt.Errorf("scanning visitor: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// FindByPhoneAndEmail performs the exact lookup used when a visitor has
// already picked an email. The email comparison is case-insensitive and
// literal: bound as a parameter, a "." is a period and nothing else.
func (s *Store) FindByPhoneAndEmail(ctx context.Context, phone, email string) (*VisitorRecord, error) {
	if phone == "" || email == "" {
		return nil, nil
	}

	row := s.db.QueryRowContext(ctx, `
		SELECT `+visitorColumns+`
		FROM visitors WHERE phone = ? AND LOWER(email) = LOWER(?)
		ORDER BY created_at, id LIMIT 1`, phone, email)

	var rec VisitorRecord
	if err := scanVisitor(row, &rec); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("querying visitor by phone and email: %w", err)
	}
	return &rec, nil
}

// Insert adds a visitor record. If rec.ID is empty a UUID is generated.
// The phone value is expected to be normalized already.
func (s *Store) Insert(ctx context.Context, rec VisitorRecord) error {
	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO visitors (id, name, email, phone, designation, visitor_code, visitor_type, entry_pass_url)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.Name, rec.Email, rec.Phone, rec.Designation,
		rec.VisitorCode, rec.VisitorType, rec.EntryPassURL,
	)
	if err != nil {
		return fmt.Errorf("inserting visitor: %w", err)
	}
	return nil
}

// scanner is implemented by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanVisitor(sc scanner, rec *VisitorRecord) error {
	return sc.Scan(&rec.ID, &rec.Name, &rec.Email, &rec.Phone,
		&rec.Designation, &rec.VisitorCode, &rec.VisitorType, &rec.EntryPassURL)
}
