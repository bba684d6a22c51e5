package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/footprint-tools/routeshell/internal/domain"
)

// timeLayout is fixed width so started_at sorts lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Record stores a finished invocation. An empty ID is replaced with a new
// UUID and a zero StartedAt with the current time.
func (s *Store) Record(inv domain.Invocation) error {
	if inv.ID == "" {
		inv.ID = uuid.NewString()
	}
	if inv.StartedAt.IsZero() {
		inv.StartedAt = time.Now()
	}

	args, err := json.Marshal(inv.Args)
	if err != nil {
		return fmt.Errorf("encode args: %w", err)
	}

	_, err = s.db.Exec(
		`INSERT INTO invocations
		 (id, command, route, args, exit_status, started_at, duration_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		inv.ID,
		inv.Command,
		inv.Route,
		string(args),
		inv.ExitStatus,
		inv.StartedAt.UTC().Format(timeLayout),
		inv.Duration.Milliseconds(),
	)
	return err
}

// List returns invocations matching filter, newest first.
func (s *Store) List(filter domain.InvocationFilter) ([]domain.Invocation, error) {
	base := `
		SELECT id, command, route, args, exit_status, started_at, duration_ms
		FROM invocations
	`

	var (
		clauses []string
		args    []any
	)

	if filter.Command != "" {
		clauses = append(clauses, "command = ?")
		args = append(args, filter.Command)
	}

	if filter.Since != nil {
		clauses = append(clauses, "started_at >= ?")
		args = append(args, filter.Since.UTC().Format(timeLayout))
	}

	query := base
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += " ORDER BY started_at DESC, rowid DESC"

	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []domain.Invocation
	for rows.Next() {
		inv, err := scanInvocation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, inv)
	}
	return out, rows.Err()
}

// Last returns the most recent invocation of command.
func (s *Store) Last(command string) (domain.Invocation, bool, error) {
	list, err := s.List(domain.InvocationFilter{Command: command, Limit: 1})
	if err != nil {
		return domain.Invocation{}, false, err
	}
	if len(list) == 0 {
		return domain.Invocation{}, false, nil
	}
	return list[0], true, nil
}

// Get returns the invocation with the given ID.
func (s *Store) Get(id string) (domain.Invocation, error) {
	row := s.db.QueryRow(
		`SELECT id, command, route, args, exit_status, started_at, duration_ms
		 FROM invocations WHERE id = ?`, id)

	inv, err := scanInvocation(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Invocation{}, fmt.Errorf("invocation %s: %w", id, err)
	}
	return inv, err
}

// Prune deletes invocations that started before cutoff and returns how
// many were removed.
func (s *Store) Prune(cutoff time.Time) (int64, error) {
	res, err := s.db.Exec(`DELETE FROM invocations WHERE started_at < ?`,
		cutoff.UTC().Format(timeLayout))
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanInvocation(row scanner) (domain.Invocation, error) {
	var (
		inv        domain.Invocation
		args       string
		startedAt  string
		durationMs int64
	)

	if err := row.Scan(&inv.ID, &inv.Command, &inv.Route, &args, &inv.ExitStatus, &startedAt, &durationMs); err != nil {
		return domain.Invocation{}, err
	}

	if err := json.Unmarshal([]byte(args), &inv.Args); err != nil {
		return domain.Invocation{}, fmt.Errorf("decode args of %s: %w", inv.ID, err)
	}

	t, err := time.Parse(time.RFC3339Nano, startedAt)
	if err != nil {
		return domain.Invocation{}, fmt.Errorf("parse started_at of %s: %w", inv.ID, err)
	}
	inv.StartedAt = t
	inv.Duration = time.Duration(durationMs) * time.Millisecond

	return inv, nil
}

var _ domain.InvocationStore = (*Store)(nil)
