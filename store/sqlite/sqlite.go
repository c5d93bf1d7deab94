/*
Package sqlite persists employment profiles and calculation history.

PURPOSE:
  The calculators are pure; this package keeps what the user would otherwise
  re-type on every call. A profile holds the employment facts (hire date,
  week type, children, usual gross) that requests can reference by ID. The
  history records every API calculation with its request and response so a
  result can be looked up or re-downloaded later.

KEY TABLES:
  profiles:     Employment profiles, one row per employee
  calculations: Append-mostly history; pruned by age by the scheduler

INDEXES:
  - idx_calculations_created_at: Listing and retention pruning
  - idx_calculations_profile: History for one profile

CONCURRENCY:
  Uses sync.RWMutex for thread-safety. In production with PostgreSQL,
  database-level concurrency control handles this instead.

USAGE:
  store, err := sqlite.New("./data/payroll.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

MIGRATION:
  Schema is auto-migrated on New().

SEE ALSO:
  - api/handlers.go: profile and history endpoints
  - api/scheduler.go: history retention
*/
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"
	"github.com/warp/payroll-engine/generic"
	"github.com/warp/payroll-engine/leave"
)

// timestampLayout sorts lexically in chronological order.
const timestampLayout = "2006-01-02T15:04:05.000000Z"

// Store implements profile and history persistence using SQLite.
type Store struct {
	db  *sql.DB
	mu  sync.RWMutex
	now func() time.Time
}

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if dbPath == ":memory:" {
		// Every connection would get its own empty database.
		db.SetMaxOpenConns(1)
	}

	store := &Store{db: db, now: time.Now}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS profiles (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		hire_date TEXT NOT NULL,
		end_date TEXT,
		week_type TEXT NOT NULL DEFAULT '5',
		children INTEGER NOT NULL DEFAULT 0,
		monthly_gross TEXT NOT NULL DEFAULT '0',
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS calculations (
		id TEXT PRIMARY KEY,
		kind TEXT NOT NULL,
		profile_id TEXT REFERENCES profiles(id) ON DELETE SET NULL,
		request_json TEXT NOT NULL,
		response_json TEXT NOT NULL,
		created_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_calculations_created_at
		ON calculations(created_at);
	CREATE INDEX IF NOT EXISTS idx_calculations_profile
		ON calculations(profile_id, created_at);
	`

	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// PROFILE STORE
// =============================================================================

// Profile is a stored employment profile.
type Profile struct {
	ID           string
	Name         string
	HireDate     generic.Date
	EndDate      *generic.Date
	WeekType     leave.WeekType
	Children     int
	MonthlyGross decimal.Decimal
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// SaveProfile inserts or updates a profile. An empty ID gets a new UUID.
func (s *Store) SaveProfile(ctx context.Context, p Profile) (Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveProfile(ctx, s.db, p)
}

func (s *Store) saveProfile(ctx context.Context, db interface {
	ExecContext(context.Context, string, ...any) (sql.Result, error)
}, p Profile) (Profile, error) {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.WeekType == "" {
		p.WeekType = leave.FiveDayWeek
	}
	now := s.now().UTC()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = now

	query := `
		INSERT INTO profiles (id, name, hire_date, end_date, week_type, children, monthly_gross, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			hire_date = excluded.hire_date,
			end_date = excluded.end_date,
			week_type = excluded.week_type,
			children = excluded.children,
			monthly_gross = excluded.monthly_gross,
			updated_at = excluded.updated_at
	`

	_, err := db.ExecContext(ctx, query,
		p.ID, p.Name, p.HireDate.String(), nullDate(p.EndDate),
		string(p.WeekType), p.Children, p.MonthlyGross.String(),
		p.CreatedAt.Format(timestampLayout), p.UpdatedAt.Format(timestampLayout),
	)
	if err != nil {
		return Profile{}, fmt.Errorf("failed to save profile %s: %w", p.ID, err)
	}
	return p, nil
}

const profileColumns = "id, name, hire_date, end_date, week_type, children, monthly_gross, created_at, updated_at"

// GetProfile retrieves a profile by ID.
func (s *Store) GetProfile(ctx context.Context, id string) (*Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx, "SELECT "+profileColumns+" FROM profiles WHERE id = ?", id)
	p, err := scanProfile(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", generic.ErrProfileNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// ListProfiles returns all profiles ordered by name.
func (s *Store) ListProfiles(ctx context.Context) ([]Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, "SELECT "+profileColumns+" FROM profiles ORDER BY name, id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var profiles []Profile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
	}
	return profiles, rows.Err()
}

// DeleteProfile removes a profile. Its history is kept, detached.
func (s *Store) DeleteProfile(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, "DELETE FROM profiles WHERE id = ?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: %s", generic.ErrProfileNotFound, id)
	}
	return nil
}

// ReplaceProfiles atomically swaps every profile for the given set.
func (s *Store) ReplaceProfiles(ctx context.Context, profiles []Profile) ([]Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM profiles"); err != nil {
		return nil, err
	}
	saved := make([]Profile, 0, len(profiles))
	for _, p := range profiles {
		sp, err := s.saveProfile(ctx, tx, p)
		if err != nil {
			return nil, err
		}
		saved = append(saved, sp)
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return saved, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanProfile(row scanner) (Profile, error) {
	var p Profile
	var hireDate, weekType, gross, createdAt, updatedAt string
	var endDate sql.NullString

	if err := row.Scan(&p.ID, &p.Name, &hireDate, &endDate, &weekType, &p.Children, &gross, &createdAt, &updatedAt); err != nil {
		return Profile{}, err
	}

	var err error
	if p.HireDate, err = generic.ParseDate(hireDate); err != nil {
		return Profile{}, fmt.Errorf("profile %s: %w", p.ID, err)
	}
	if endDate.Valid {
		end, err := generic.ParseDate(endDate.String)
		if err != nil {
			return Profile{}, fmt.Errorf("profile %s: %w", p.ID, err)
		}
		p.EndDate = &end
	}
	p.WeekType = leave.WeekType(weekType)
	p.MonthlyGross, _ = decimal.NewFromString(gross)
	p.CreatedAt, _ = time.Parse(timestampLayout, createdAt)
	p.UpdatedAt, _ = time.Parse(timestampLayout, updatedAt)
	return p, nil
}

// =============================================================================
// CALCULATION HISTORY
// =============================================================================

// Calculation is one recorded API calculation.
type Calculation struct {
	ID           string
	Kind         string
	ProfileID    string
	RequestJSON  string
	ResponseJSON string
	CreatedAt    time.Time
}

// SaveCalculation appends a history record. An empty ID gets a new UUID and
// a zero CreatedAt gets the current time.
func (s *Store) SaveCalculation(ctx context.Context, c Calculation) (Calculation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = s.now()
	}
	c.CreatedAt = c.CreatedAt.UTC()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO calculations (id, kind, profile_id, request_json, response_json, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		c.ID, c.Kind, nullString(c.ProfileID), c.RequestJSON, c.ResponseJSON,
		c.CreatedAt.Format(timestampLayout),
	)
	if err != nil {
		if isForeignKeyError(err) {
			return Calculation{}, fmt.Errorf("%w: %s", generic.ErrProfileNotFound, c.ProfileID)
		}
		return Calculation{}, fmt.Errorf("failed to save calculation: %w", err)
	}
	return c, nil
}

const calculationColumns = "id, kind, profile_id, request_json, response_json, created_at"

// GetCalculation retrieves a history record by ID.
func (s *Store) GetCalculation(ctx context.Context, id string) (*Calculation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx, "SELECT "+calculationColumns+" FROM calculations WHERE id = ?", id)
	c, err := scanCalculation(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", generic.ErrRecordNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// HistoryFilter narrows ListCalculations. Zero values match everything.
type HistoryFilter struct {
	Kind      string
	ProfileID string
	Limit     int
}

// ListCalculations returns history records, newest first.
func (s *Store) ListCalculations(ctx context.Context, f HistoryFilter) ([]Calculation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var where []string
	var args []any
	if f.Kind != "" {
		where = append(where, "kind = ?")
		args = append(args, f.Kind)
	}
	if f.ProfileID != "" {
		where = append(where, "profile_id = ?")
		args = append(args, f.ProfileID)
	}

	query := "SELECT " + calculationColumns + " FROM calculations"
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY created_at DESC, id"
	if f.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, f.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var calcs []Calculation
	for rows.Next() {
		c, err := scanCalculation(rows)
		if err != nil {
			return nil, err
		}
		calcs = append(calcs, c)
	}
	return calcs, rows.Err()
}

// DeleteCalculation removes a history record.
func (s *Store) DeleteCalculation(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, "DELETE FROM calculations WHERE id = ?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: %s", generic.ErrRecordNotFound, id)
	}
	return nil
}

// PruneCalculations deletes history recorded before cutoff and returns the
// number of removed records.
func (s *Store) PruneCalculations(ctx context.Context, cutoff time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx,
		"DELETE FROM calculations WHERE created_at < ?",
		cutoff.UTC().Format(timestampLayout),
	)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func scanCalculation(row scanner) (Calculation, error) {
	var c Calculation
	var profileID sql.NullString
	var createdAt string
	if err := row.Scan(&c.ID, &c.Kind, &profileID, &c.RequestJSON, &c.ResponseJSON, &createdAt); err != nil {
		return Calculation{}, err
	}
	c.ProfileID = profileID.String
	c.CreatedAt, _ = time.Parse(timestampLayout, createdAt)
	return c, nil
}

// =============================================================================
// UTILITIES
// =============================================================================

// Reset clears all data (for testing/demo).
func (s *Store) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, table := range []string{"calculations", "profiles"} {
		if _, err := s.db.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return err
		}
	}
	return nil
}

// Helper functions

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

func nullDate(d *generic.Date) sql.NullString {
	if d == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: d.String(), Valid: true}
}

func isForeignKeyError(err error) bool {
	return err != nil && strings.Contains(err.Error(), "FOREIGN KEY constraint failed")
}
