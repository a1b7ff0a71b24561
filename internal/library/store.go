// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package library persists saved resumes in a local SQLite database.
package library

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/resume-engine/pkg/types"
)

const (
	indexDir  = "index"
	exportDir = "export"
	dbFile    = "resumes.db"

	// timeLayout has a fixed width so saved_at sorts lexically.
	timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

	defaultListLimit = 50
)

var (
	// ErrNotFound is returned for an ID that names no saved resume.
	ErrNotFound = errors.New("resume not found")

	// ErrEmptyName is returned when a resume has neither a name nor a
	// candidate name to fall back on.
	ErrEmptyName = errors.New("resume name is empty")
)

// Store manages the resume library database.
type Store struct {
	db      *sql.DB
	dataDir string
	now     func() time.Time
}

// NewStore opens or creates the library database at
// dataDir/index/resumes.db and creates its schema if needed.
func NewStore(cfg types.LibraryConfig) (*Store, error) {
	dbDir := filepath.Join(cfg.DataDir, indexDir)
	if err := os.MkdirAll(dbDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating index directory: %w", err)
	}

	dbPath := filepath.Join(dbDir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db, dataDir: cfg.DataDir, now: time.Now}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS resumes (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			template TEXT NOT NULL,
			saved_at TEXT NOT NULL,
			full_name TEXT NOT NULL DEFAULT '',
			data TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_resumes_saved_at ON resumes(saved_at)`,
		`CREATE TABLE IF NOT EXISTS resume_skills (
			resume_id TEXT NOT NULL REFERENCES resumes(id) ON DELETE CASCADE,
			skill TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_resume_skills_skill ON resume_skills(skill COLLATE NOCASE)`,
		`CREATE TABLE IF NOT EXISTS ingest_status (
			source TEXT PRIMARY KEY,
			resume_id TEXT NOT NULL REFERENCES resumes(id) ON DELETE CASCADE,
			file_mod_time TEXT NOT NULL
		)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Save stores r as a new library entry. An empty name falls back to the
// candidate's full name; an empty template uses types.DefaultTemplate.
func (s *Store) Save(ctx context.Context, name string, template types.TemplateType, r types.Resume) (types.SavedResume, error) {
	saved := types.SavedResume{
		ID:       uuid.NewString(),
		Name:     name,
		Template: template,
		Data:     r,
	}
	if err := s.write(ctx, &saved, false); err != nil {
		return types.SavedResume{}, err
	}
	return saved, nil
}

// Update replaces the name, template, and data of an existing entry and
// refreshes its saved time. It returns ErrNotFound for an unknown ID.
func (s *Store) Update(ctx context.Context, saved types.SavedResume) (types.SavedResume, error) {
	if err := s.write(ctx, &saved, true); err != nil {
		return types.SavedResume{}, err
	}
	return saved, nil
}

func (s *Store) write(ctx context.Context, saved *types.SavedResume, update bool) error {
	saved.Name = strings.TrimSpace(saved.Name)
	if saved.Name == "" {
		saved.Name = strings.TrimSpace(saved.Data.PersonalInfo.FullName)
	}
	if saved.Name == "" {
		return ErrEmptyName
	}
	if saved.Template == "" {
		saved.Template = types.DefaultTemplate
	}
	if !saved.Template.Valid() {
		return fmt.Errorf("unknown template %q", saved.Template)
	}
	saved.SavedAt = s.now().UTC()

	data, err := json.Marshal(saved.Data)
	if err != nil {
		return fmt.Errorf("marshaling resume: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	args := []any{saved.Name, string(saved.Template), saved.SavedAt.Format(timeLayout),
		saved.Data.PersonalInfo.FullName, string(data), saved.ID}

	if update {
		res, err := tx.ExecContext(ctx,
			`UPDATE resumes SET name = ?, template = ?, saved_at = ?, full_name = ?, data = ?
			 WHERE id = ?`, args...)
		if err != nil {
			return fmt.Errorf("updating resume %s: %w", saved.ID, err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return fmt.Errorf("%w: %s", ErrNotFound, saved.ID)
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM resume_skills WHERE resume_id = ?`, saved.ID); err != nil {
			return fmt.Errorf("clearing skills: %w", err)
		}
	} else {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO resumes (name, template, saved_at, full_name, data, id)
			 VALUES (?, ?, ?, ?, ?, ?)`, args...)
		if err != nil {
			return fmt.Errorf("inserting resume: %w", err)
		}
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO resume_skills (resume_id, skill) VALUES (?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, skill := range saved.Data.Skills {
		if _, err := stmt.ExecContext(ctx, saved.ID, skill); err != nil {
			return fmt.Errorf("inserting skill %q: %w", skill, err)
		}
	}

	return tx.Commit()
}

// Get loads one saved resume.
func (s *Store) Get(ctx context.Context, id string) (types.SavedResume, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, name, template, saved_at, data FROM resumes WHERE id = ?`, id)

	saved, err := scanSaved(row)
	if errors.Is(err, sql.ErrNoRows) {
		return types.SavedResume{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return types.SavedResume{}, fmt.Errorf("loading resume %s: %w", id, err)
	}
	return saved, nil
}

// Delete removes a saved resume. It returns ErrNotFound for an unknown ID.
func (s *Store) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM resumes WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting resume %s: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return nil
}

// ListOptions filters List results.
type ListOptions struct {
	// Query matches the entry name or the candidate's full name, case
	// insensitively.
	Query string

	// Skill keeps entries listing this skill (case insensitive).
	Skill string

	// Template keeps entries using this template.
	Template types.TemplateType

	// Limit caps the result count. Zero uses 50.
	Limit int
}

// List returns saved resumes, most recently saved first.
func (s *Store) List(ctx context.Context, opts ListOptions) ([]types.SavedResume, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}

	var (
		qb   strings.Builder
		args []any
	)
	qb.WriteString(`SELECT r.id, r.name, r.template, r.saved_at, r.data FROM resumes r WHERE 1=1`)

	if opts.Query != "" {
		like := "%" + escapeLike(opts.Query) + "%"
		qb.WriteString(` AND (r.name LIKE ? ESCAPE '\' OR r.full_name LIKE ? ESCAPE '\')`)
		args = append(args, like, like)
	}
	if opts.Skill != "" {
		qb.WriteString(` AND EXISTS (SELECT 1 FROM resume_skills k
			WHERE k.resume_id = r.id AND k.skill = ? COLLATE NOCASE)`)
		args = append(args, opts.Skill)
	}
	if opts.Template != "" {
		qb.WriteString(` AND r.template = ?`)
		args = append(args, string(opts.Template))
	}
	qb.WriteString(` ORDER BY r.saved_at DESC, r.id LIMIT ?`)
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, qb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("querying resumes: %w", err)
	}
	defer rows.Close()

	results := []types.SavedResume{}
	for rows.Next() {
		saved, err := scanSaved(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning resume: %w", err)
		}
		results = append(results, saved)
	}
	return results, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSaved(sc scanner) (types.SavedResume, error) {
	var (
		saved    types.SavedResume
		template string
		savedAt  string
		data     string
	)
	if err := sc.Scan(&saved.ID, &saved.Name, &template, &savedAt, &data); err != nil {
		return types.SavedResume{}, err
	}
	saved.Template = types.TemplateType(template)

	t, err := time.Parse(timeLayout, savedAt)
	if err != nil {
		return types.SavedResume{}, fmt.Errorf("parsing saved_at: %w", err)
	}
	saved.SavedAt = t

	if err := json.Unmarshal([]byte(data), &saved.Data); err != nil {
		return types.SavedResume{}, fmt.Errorf("decoding resume data: %w", err)
	}
	return saved, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
