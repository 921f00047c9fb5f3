// Package sqlite provides a SQLite-backed submission ledger.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/kakascoaching/site/internal/platform/storage/sqlitemigrate"
	"github.com/kakascoaching/site/internal/storage"
	"github.com/kakascoaching/site/internal/storage/sqlite/migrations"
	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"
)

const defaultListLimit = 50

// Store persists leads in SQLite.
type Store struct {
	sqlDB *sql.DB
}

var _ storage.LeadStore = (*Store)(nil)

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

// Open opens a SQLite ledger and applies embedded migrations.
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
	if _, err := sqlitemigrate.Apply(context.Background(), sqlDB, migrations.FS, ""); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// PutLead inserts one lead record.
func (s *Store) PutLead(ctx context.Context, lead storage.Lead) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	id := strings.TrimSpace(lead.ID)
	form := strings.TrimSpace(lead.Form)
	if id == "" {
		return fmt.Errorf("lead id is required")
	}
	if form == "" {
		return fmt.Errorf("lead form is required")
	}
	if !lead.Status.Valid() {
		return fmt.Errorf("lead status %q is invalid", lead.Status)
	}
	fields := lead.Fields
	if fields == nil {
		fields = map[string]string{}
	}
	fieldsJSON, err := json.Marshal(fields)
	if err != nil {
		return fmt.Errorf("encode lead fields: %w", err)
	}
	createdAt := lead.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	_, err = s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO leads (id, form, template, fields_json, status, error, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		id,
		form,
		strings.TrimSpace(lead.Template),
		string(fieldsJSON),
		string(lead.Status),
		lead.Error,
		toMillis(createdAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return storage.ErrAlreadyExists
		}
		return fmt.Errorf("put lead: %w", err)
	}
	return nil
}

// ListLeads returns the newest leads first.
func (s *Store) ListLeads(ctx context.Context, filter storage.LeadFilter) ([]storage.Lead, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}
	limit := filter.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}

	var (
		clauses []string
		args    []any
	)
	if form := strings.TrimSpace(filter.Form); form != "" {
		clauses = append(clauses, "form = ?")
		args = append(args, form)
	}
	if filter.Status != "" {
		clauses = append(clauses, "status = ?")
		args = append(args, string(filter.Status))
	}
	query := `SELECT id, form, template, fields_json, status, error, created_at FROM leads`
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += " ORDER BY created_at DESC, id DESC LIMIT ?"
	args = append(args, limit)

	rows, err := s.sqlDB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list leads: %w", err)
	}
	defer rows.Close()

	leads := make([]storage.Lead, 0, limit)
	for rows.Next() {
		lead, err := scanLead(rows)
		if err != nil {
			return nil, fmt.Errorf("scan lead: %w", err)
		}
		leads = append(leads, lead)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate leads: %w", err)
	}
	return leads, nil
}

// CountLeads counts leads with status, or all leads when status is empty.
func (s *Store) CountLeads(ctx context.Context, status storage.LeadStatus) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if s == nil || s.sqlDB == nil {
		return 0, fmt.Errorf("storage is not configured")
	}
	var (
		count int
		row   *sql.Row
	)
	if status == "" {
		row = s.sqlDB.QueryRowContext(ctx, `SELECT COUNT(*) FROM leads`)
	} else {
		row = s.sqlDB.QueryRowContext(ctx, `SELECT COUNT(*) FROM leads WHERE status = ?`, string(status))
	}
	if err := row.Scan(&count); err != nil {
		return 0, fmt.Errorf("count leads: %w", err)
	}
	return count, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanLead(row scanner) (storage.Lead, error) {
	var (
		lead       storage.Lead
		fieldsJSON string
		status     string
		createdAt  int64
	)
	if err := row.Scan(&lead.ID, &lead.Form, &lead.Template, &fieldsJSON, &status, &lead.Error, &createdAt); err != nil {
		return storage.Lead{}, err
	}
	if err := json.Unmarshal([]byte(fieldsJSON), &lead.Fields); err != nil {
		return storage.Lead{}, fmt.Errorf("decode lead fields: %w", err)
	}
	lead.Status = storage.LeadStatus(status)
	lead.CreatedAt = fromMillis(createdAt)
	return lead, nil
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	var sqliteErr *msqlite.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code() {
		case sqlite3lib.SQLITE_CONSTRAINT_PRIMARYKEY, sqlite3lib.SQLITE_CONSTRAINT_UNIQUE:
			return true
		}
	}
	return strings.Contains(strings.ToLower(err.Error()), "unique constraint failed")
}
