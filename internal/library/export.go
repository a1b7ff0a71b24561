// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package library

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/resume-engine/pkg/types"
)

// exportLimit is the List limit used for exports.
const exportLimit = 100000

// ExportYAML writes every saved resume matching opts to
// dataDir/export/resumes.yaml and returns the file path.
func (s *Store) ExportYAML(ctx context.Context, opts ListOptions) (string, error) {
	entries, err := s.exportEntries(ctx, opts)
	if err != nil {
		return "", err
	}
	data, err := yaml.Marshal(entries)
	if err != nil {
		return "", fmt.Errorf("marshaling YAML: %w", err)
	}
	return s.writeExport("resumes.yaml", data)
}

// ExportJSON writes every saved resume matching opts to
// dataDir/export/resumes.json and returns the file path.
func (s *Store) ExportJSON(ctx context.Context, opts ListOptions) (string, error) {
	entries, err := s.exportEntries(ctx, opts)
	if err != nil {
		return "", err
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshaling JSON: %w", err)
	}
	return s.writeExport("resumes.json", data)
}

func (s *Store) exportEntries(ctx context.Context, opts ListOptions) ([]types.SavedResume, error) {
	opts.Limit = exportLimit
	entries, err := s.List(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("querying for export: %w", err)
	}
	return entries, nil
}

func (s *Store) writeExport(name string, data []byte) (string, error) {
	dir := filepath.Join(s.dataDir, exportDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating export directory: %w", err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("writing %s: %w", path, err)
	}
	return path, nil
}
