package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	_ "modernc.org/sqlite" // registers the "sqlite" database/sql driver

	"github.com/rshade/rosterbot/internal/pager"
	"github.com/rshade/rosterbot/internal/roster"
)

// Store errors.
var (
	// ErrNotFound indicates the requested participant does not exist.
	ErrNotFound = errors.New("participant not found")
)

// Store is the SQLite-backed participant table. It implements source.Source
// for the navigation layer and exposes the CRUD the editing flows use.
type Store struct {
	db     *sql.DB
	logger zerolog.Logger
}

// Open opens (creating if needed) the participant database at path and
// applies the schema. Use ":memory:" for an ephemeral store.
func Open(path string, logger zerolog.Logger) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// database/sql pools connections, but each :memory: connection gets its
	// own database. One connection keeps the schema visible everywhere.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	return &Store{
		db:     db,
		logger: logger.With().Str("component", "store").Logger(),
	}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// whereFor translates a pager filter into a WHERE clause and its arguments.
func whereFor(filter pager.Filter) (string, []any, error) {
	role, err := roster.ParseFilter(filter)
	if err != nil {
		return "", nil, err
	}
	if role == "" {
		return "", nil, nil
	}
	return "WHERE role = ?", []any{string(role)}, nil
}

// Fetch implements source.Source: at most limit participants starting at
// offset in the filter's total order, plus the filtered total at fetch time.
// A zero limit returns the count alone.
func (s *Store) Fetch(ctx context.Context, filter pager.Filter, offset, limit int) ([]pager.Record, int, error) {
	where, args, err := whereFor(filter)
	if err != nil {
		return nil, 0, err
	}

	var total int
	countSQL := "SELECT COUNT(*) FROM participants " + where
	if err := s.db.QueryRowContext(ctx, countSQL, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count participants: %w", err)
	}

	if limit == 0 || offset >= total {
		return nil, total, nil
	}

	querySQL := fmt.Sprintf(
		"SELECT id, first_name, last_name, role, email, phone, table_no, notes FROM participants %s %s LIMIT ? OFFSET ?",
		where, orderClause)
	rows, err := s.db.QueryContext(ctx, querySQL, append(args, limit, offset)...)
	if err != nil {
		return nil, 0, fmt.Errorf("query participants: %w", err)
	}
	defer func() { _ = rows.Close() }()

	records := make([]pager.Record, 0, limit)
	for rows.Next() {
		p := &roster.Participant{}
		var role string
		if err := rows.Scan(&p.ID, &p.FirstName, &p.LastName, &role, &p.Email, &p.Phone, &p.Table, &p.Notes); err != nil {
			return nil, 0, fmt.Errorf("scan participant: %w", err)
		}
		p.Role = roster.Role(role)
		records = append(records, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate participants: %w", err)
	}

	return records, total, nil
}

// Insert stores a new participant and returns its assigned ID.
func (s *Store) Insert(ctx context.Context, p *roster.Participant) (int64, error) {
	if err := p.Validate(); err != nil {
		return 0, err
	}

	res, err := s.db.ExecContext(ctx,
		"INSERT INTO participants (first_name, last_name, role, email, phone, table_no, notes) VALUES (?, ?, ?, ?, ?, ?, ?)",
		p.FirstName, p.LastName, string(p.Role), p.Email, p.Phone, p.Table, p.Notes)
	if err != nil {
		return 0, fmt.Errorf("insert participant: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("insert participant: %w", err)
	}
	p.ID = id

	s.logger.Debug().Int64("id", id).Str("role", string(p.Role)).Msg("participant inserted")
	return id, nil
}

// Update replaces every mutable field of the participant identified by p.ID.
func (s *Store) Update(ctx context.Context, p *roster.Participant) error {
	if err := p.Validate(); err != nil {
		return err
	}

	res, err := s.db.ExecContext(ctx,
		"UPDATE participants SET first_name = ?, last_name = ?, role = ?, email = ?, phone = ?, table_no = ?, notes = ? WHERE id = ?",
		p.FirstName, p.LastName, string(p.Role), p.Email, p.Phone, p.Table, p.Notes, p.ID)
	if err != nil {
		return fmt.Errorf("update participant: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update participant: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: id %d", ErrNotFound, p.ID)
	}
	return nil
}

// Delete removes the participant with the given ID.
func (s *Store) Delete(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM participants WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete participant: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete participant: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: id %d", ErrNotFound, id)
	}

	s.logger.Debug().Int64("id", id).Msg("participant deleted")
	return nil
}

// Get loads one participant by ID.
func (s *Store) Get(ctx context.Context, id int64) (*roster.Participant, error) {
	p := &roster.Participant{}
	var role string
	err := s.db.QueryRowContext(ctx,
		"SELECT id, first_name, last_name, role, email, phone, table_no, notes FROM participants WHERE id = ?",
		id).Scan(&p.ID, &p.FirstName, &p.LastName, &role, &p.Email, &p.Phone, &p.Table, &p.Notes)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: id %d", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("get participant: %w", err)
	}
	p.Role = roster.Role(role)
	return p, nil
}
