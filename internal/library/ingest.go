// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package library

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/resume-engine/internal/validate"
	"github.com/pdiddy/resume-engine/pkg/types"
)

// IngestSummary holds counts from one Ingest run.
type IngestSummary struct {
	Added   int
	Updated int
	Skipped int
	Failed  int
}

// Total returns the number of files processed.
func (s IngestSummary) Total() int {
	return s.Added + s.Updated + s.Skipped + s.Failed
}

// Ingest saves every imported resume document (*.json, *.yaml, *.yml) in
// dir to the library. Each file is remembered with its modification time:
// unchanged files are skipped, changed files update the entry they created
// earlier. Documents that fail schema validation are counted as failed.
// Per-file status lines and a summary go to w.
func (s *Store) Ingest(ctx context.Context, dir string, template types.TemplateType, w io.Writer) (IngestSummary, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return IngestSummary{}, fmt.Errorf("reading import directory %s: %w", dir, err)
	}

	var summary IngestSummary
	for _, entry := range entries {
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if entry.IsDir() || (ext != ".json" && ext != ".yaml" && ext != ".yml") {
			continue
		}

		select {
		case <-ctx.Done():
			return summary, ctx.Err()
		default:
		}

		source, err := filepath.Abs(filepath.Join(dir, entry.Name()))
		if err != nil {
			fmt.Fprintf(w, "failed:  %s (%v)\n", entry.Name(), err)
			summary.Failed++
			continue
		}

		info, err := entry.Info()
		if err != nil {
			fmt.Fprintf(w, "failed:  %s (%v)\n", entry.Name(), err)
			summary.Failed++
			continue
		}
		modTime := info.ModTime().UTC().Format(timeLayout)

		var storedID, storedModTime string
		err = s.db.QueryRowContext(ctx,
			`SELECT resume_id, file_mod_time FROM ingest_status WHERE source = ?`, source,
		).Scan(&storedID, &storedModTime)
		switch {
		case err == nil && storedModTime == modTime:
			fmt.Fprintf(w, "skipped: %s (unchanged)\n", entry.Name())
			summary.Skipped++
			continue
		case err != nil && !errors.Is(err, sql.ErrNoRows):
			return summary, fmt.Errorf("checking ingest status: %w", err)
		}

		r, err := ReadDocument(source)
		if err != nil {
			fmt.Fprintf(w, "failed:  %s (%v)\n", entry.Name(), err)
			summary.Failed++
			continue
		}

		name := r.PersonalInfo.FullName
		if name == "" {
			name = strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name()))
		}

		var saved types.SavedResume
		if storedID != "" {
			saved, err = s.Update(ctx, types.SavedResume{ID: storedID, Name: name, Template: template, Data: r})
		} else {
			saved, err = s.Save(ctx, name, template, r)
		}
		if err != nil {
			fmt.Fprintf(w, "failed:  %s (%v)\n", entry.Name(), err)
			summary.Failed++
			continue
		}

		if _, err := s.db.ExecContext(ctx,
			`INSERT INTO ingest_status (source, resume_id, file_mod_time) VALUES (?, ?, ?)
			 ON CONFLICT(source) DO UPDATE SET resume_id=excluded.resume_id, file_mod_time=excluded.file_mod_time`,
			source, saved.ID, modTime,
		); err != nil {
			return summary, fmt.Errorf("updating ingest status: %w", err)
		}

		if storedID != "" {
			fmt.Fprintf(w, "updated: %s (%s)\n", entry.Name(), saved.ID)
			summary.Updated++
		} else {
			fmt.Fprintf(w, "added:   %s (%s)\n", entry.Name(), saved.ID)
			summary.Added++
		}
	}

	fmt.Fprintf(w, "\nadded: %d, updated: %d, skipped: %d, failed: %d\n",
		summary.Added, summary.Updated, summary.Skipped, summary.Failed)
	return summary, nil
}

// ReadDocument decodes a JSON or YAML resume document (chosen by extension)
// and validates it against the resume schema.
func ReadDocument(path string) (types.Resume, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return types.Resume{}, err
	}

	var r types.Resume
	if strings.EqualFold(filepath.Ext(path), ".json") {
		err = json.Unmarshal(data, &r)
	} else {
		err = yaml.Unmarshal(data, &r)
	}
	if err != nil {
		return types.Resume{}, fmt.Errorf("parse error: %w", err)
	}

	if err := validate.Resume(r); err != nil {
		return types.Resume{}, err
	}
	return r, nil
}

