// Package history keeps a journal of committed configurations so an earlier
// one can be restored.
package history

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/siegfried/desktopclock/internal/config"
)

// FileName is the journal's file name, kept beside the configuration file
const FileName = "history.db"

// DefaultKeep is how many revisions Prune leaves in place
const DefaultKeep = 50

var (
	ErrNotFound  = errors.New("revision not found")
	ErrAmbiguous = errors.New("revision id prefix matches more than one revision")
)

// Saver persists a restored configuration
type Saver interface {
	Save(cfg *config.Config) error
}

// Store manages the revision journal in SQLite
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// OpenBeside opens the journal in the directory holding configPath
func OpenBeside(configPath string) (*Store, error) {
	return Open(filepath.Join(filepath.Dir(configPath), FileName))
}

// Open opens or creates the journal at path
func Open(path string) (*Store, error) {
	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db, now: time.Now}

	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return store, nil
}

// SetClock replaces the time source for new revisions
func (s *Store) SetClock(now func() time.Time) {
	s.now = now
}

// Close closes the database connection
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *Store) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS revisions (
		seq INTEGER PRIMARY KEY AUTOINCREMENT,
		id TEXT NOT NULL UNIQUE,
		saved_at INTEGER NOT NULL,
		source TEXT NOT NULL,
		config TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_revisions_saved_at ON revisions(saved_at);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Record journals cfg. A configuration equal to the latest revision is not
// recorded again; the latest revision is returned instead.
func (s *Store) Record(cfg *config.Config, source string) (*Revision, error) {
	if latest, err := s.Latest(); err == nil && latest.Config.Equal(cfg) {
		return latest, nil
	} else if err != nil && !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	data, err := json.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}

	rev := &Revision{
		ID:      uuid.NewString(),
		SavedAt: s.now(),
		Source:  source,
		Config:  cfg.Clone(),
	}
	_, err = s.db.Exec(
		"INSERT INTO revisions (id, saved_at, source, config) VALUES (?, ?, ?, ?)",
		rev.ID,
		rev.SavedAt.UnixNano(),
		rev.Source,
		string(data),
	)
	if err != nil {
		return nil, err
	}
	return rev, nil
}

// List returns up to limit revisions, newest first. limit <= 0 means all.
func (s *Store) List(limit int) ([]Revision, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := s.db.Query(
		`SELECT id, saved_at, source, config
		 FROM revisions
		 ORDER BY seq DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var revs []Revision
	for rows.Next() {
		rev, err := scanRevision(rows)
		if err != nil {
			return nil, err
		}
		revs = append(revs, *rev)
	}
	return revs, rows.Err()
}

// Latest returns the newest revision
func (s *Store) Latest() (*Revision, error) {
	row := s.db.QueryRow(
		`SELECT id, saved_at, source, config
		 FROM revisions
		 ORDER BY seq DESC
		 LIMIT 1`,
	)
	rev, err := scanRevision(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	return rev, err
}

// Get finds a revision by id or by a unique id prefix
func (s *Store) Get(id string) (*Revision, error) {
	if id == "" {
		return nil, ErrNotFound
	}
	rows, err := s.db.Query(
		`SELECT id, saved_at, source, config
		 FROM revisions
		 WHERE id = ? OR substr(id, 1, ?) = ?
		 ORDER BY seq DESC
		 LIMIT 2`,
		id, len(id), id,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var found []*Revision
	for rows.Next() {
		rev, err := scanRevision(rows)
		if err != nil {
			return nil, err
		}
		if rev.ID == id {
			return rev, nil
		}
		found = append(found, rev)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	switch len(found) {
	case 0:
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	case 1:
		return found[0], nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrAmbiguous, id)
	}
}

// Restore saves the revision's configuration through to and journals it
func (s *Store) Restore(id string, to Saver) (*Revision, error) {
	rev, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if err := to.Save(rev.Config.Clone()); err != nil {
		return nil, fmt.Errorf("failed to restore revision %s: %w", rev.ShortID(), err)
	}
	if _, err := s.Record(rev.Config, SourceRestore); err != nil {
		return nil, err
	}
	return rev, nil
}

// Prune deletes all but the newest keep revisions
func (s *Store) Prune(keep int) (int64, error) {
	if keep < 0 {
		keep = 0
	}
	result, err := s.db.Exec(
		`DELETE FROM revisions
		 WHERE seq NOT IN (SELECT seq FROM revisions ORDER BY seq DESC LIMIT ?)`,
		keep,
	)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRevision(row scanner) (*Revision, error) {
	var (
		rev     Revision
		savedAt int64
		data    string
	)
	if err := row.Scan(&rev.ID, &savedAt, &rev.Source, &data); err != nil {
		return nil, err
	}
	rev.SavedAt = time.Unix(0, savedAt)

	rev.Config = config.DefaultConfig()
	if err := json.Unmarshal([]byte(data), rev.Config); err != nil {
		return nil, fmt.Errorf("failed to decode revision %s: %w", rev.ID, err)
	}
	return &rev, nil
}
