// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package library

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/resume-engine/internal/parse"
	"github.com/pdiddy/resume-engine/pkg/types"
)

// --- test helpers ---

func testStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(types.LibraryConfig{DataDir: t.TempDir()})
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	clock := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	store.now = func() time.Time {
		clock = clock.Add(time.Minute)
		return clock
	}
	return store
}

func resumeFor(name string, skills ...string) types.Resume {
	return parse.Parse(name + "\nSKILLS\n" + joinSkills(skills) + "\n\nEXPERIENCE\nEngineer\nAcme Corp\n2019 - Present\n")
}

func joinSkills(skills []string) string {
	return strings.Join(skills, ", ")
}

// --- tests ---

func TestNewStore_CreatesDatabase(t *testing.T) {
	dir := t.TempDir()
	store, err := NewStore(types.LibraryConfig{DataDir: dir})
	require.NoError(t, err)
	defer store.Close()

	assert.FileExists(t, filepath.Join(dir, indexDir, dbFile))

	// Reopening an existing database keeps the schema.
	again, err := NewStore(types.LibraryConfig{DataDir: dir})
	require.NoError(t, err)
	assert.NoError(t, again.Close())
}

func TestSaveAndGet(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()
	r := resumeFor("Jane Doe", "Go", "SQL")

	saved, err := store.Save(ctx, "  Backend CV  ", types.TemplateTechnical, r)
	require.NoError(t, err)
	assert.NotEmpty(t, saved.ID)
	assert.Equal(t, "Backend CV", saved.Name)
	assert.Equal(t, types.TemplateTechnical, saved.Template)

	got, err := store.Get(ctx, saved.ID)
	require.NoError(t, err)
	assert.Equal(t, saved.ID, got.ID)
	assert.Equal(t, "Backend CV", got.Name)
	assert.True(t, saved.SavedAt.Equal(got.SavedAt))
	assert.Equal(t, r, got.Data)
}

func TestSave_Defaults(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	saved, err := store.Save(ctx, "", "", resumeFor("Jane Doe"))
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", saved.Name)
	assert.Equal(t, types.DefaultTemplate, saved.Template)

	_, err = store.Save(ctx, " ", "", types.DefaultResume())
	assert.ErrorIs(t, err, ErrEmptyName)

	_, err = store.Save(ctx, "CV", "neon", types.DefaultResume())
	assert.ErrorContains(t, err, "unknown template")
}

func TestUpdate(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	saved, err := store.Save(ctx, "Draft", types.TemplateModern, resumeFor("Jane Doe", "Go"))
	require.NoError(t, err)

	saved.Name = "Final"
	saved.Template = types.TemplateClassic
	saved.Data = resumeFor("Jane Doe", "Rust")
	updated, err := store.Update(ctx, saved)
	require.NoError(t, err)
	assert.True(t, updated.SavedAt.After(saved.SavedAt) || updated.SavedAt.Equal(saved.SavedAt))

	got, err := store.Get(ctx, saved.ID)
	require.NoError(t, err)
	assert.Equal(t, "Final", got.Name)
	assert.Equal(t, types.TemplateClassic, got.Template)
	assert.Equal(t, []string{"Rust"}, got.Data.Skills)

	list, err := store.List(ctx, ListOptions{Skill: "go"})
	require.NoError(t, err)
	assert.Empty(t, list, "old skills should be replaced")

	_, err = store.Update(ctx, types.SavedResume{ID: "missing", Name: "x"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDelete(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	saved, err := store.Save(ctx, "CV", "", resumeFor("Jane Doe", "Go"))
	require.NoError(t, err)

	require.NoError(t, store.Delete(ctx, saved.ID))

	_, err = store.Get(ctx, saved.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, store.Delete(ctx, saved.ID), ErrNotFound)
}

func TestList(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	_, err := store.Save(ctx, "Platform", types.TemplateModern, resumeFor("Jane Doe", "Go", "Kubernetes"))
	require.NoError(t, err)
	_, err = store.Save(ctx, "Data", types.TemplateCompact, resumeFor("John Smith", "Python", "SQL"))
	require.NoError(t, err)
	_, err = store.Save(ctx, "100% match", types.TemplateModern, resumeFor("Ann Lee", "go"))
	require.NoError(t, err)

	tests := []struct {
		name string
		opts ListOptions
		want []string
	}{
		{"all newest first", ListOptions{}, []string{"100% match", "Data", "Platform"}},
		{"query on name", ListOptions{Query: "plat"}, []string{"Platform"}},
		{"query on full name", ListOptions{Query: "smith"}, []string{"Data"}},
		{"query escapes wildcards", ListOptions{Query: "%"}, []string{"100% match"}},
		{"skill case insensitive", ListOptions{Skill: "GO"}, []string{"100% match", "Platform"}},
		{"template", ListOptions{Template: types.TemplateCompact}, []string{"Data"}},
		{"combined", ListOptions{Skill: "go", Template: types.TemplateModern, Query: "jane"}, []string{"Platform"}},
		{"limit", ListOptions{Limit: 1}, []string{"100% match"}},
		{"no match", ListOptions{Query: "nobody"}, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := store.List(ctx, tt.opts)
			require.NoError(t, err)
			names := []string{}
			for _, s := range got {
				names = append(names, s.Name)
			}
			assert.Equal(t, tt.want, names)
		})
	}
}

func TestExport(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	_, err := store.Save(ctx, "Platform", "", resumeFor("Jane Doe", "Go"))
	require.NoError(t, err)
	_, err = store.Save(ctx, "Data", "", resumeFor("John Smith", "SQL"))
	require.NoError(t, err)

	jsonPath, err := store.ExportJSON(ctx, ListOptions{})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(store.dataDir, exportDir, "resumes.json"), jsonPath)

	data, err := os.ReadFile(jsonPath)
	require.NoError(t, err)
	var fromJSON []types.SavedResume
	require.NoError(t, json.Unmarshal(data, &fromJSON))
	assert.Len(t, fromJSON, 2)

	yamlPath, err := store.ExportYAML(ctx, ListOptions{Skill: "sql"})
	require.NoError(t, err)
	data, err = os.ReadFile(yamlPath)
	require.NoError(t, err)
	var fromYAML []types.SavedResume
	require.NoError(t, yaml.Unmarshal(data, &fromYAML))
	require.Len(t, fromYAML, 1)
	assert.Equal(t, "John Smith", fromYAML[0].Data.PersonalInfo.FullName)
}

func TestIngest(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()
	dir := t.TempDir()

	writeJSON := func(name string, r types.Resume) string {
		data, err := json.Marshal(r)
		require.NoError(t, err)
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, data, 0o644))
		return path
	}

	janePath := writeJSON("jane.json", resumeFor("Jane Doe", "Go"))
	yamlData, err := yaml.Marshal(resumeFor("John Smith", "SQL"))
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "john.yaml"), yamlData, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.json"), []byte(`{"skills": null}`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o644))

	var log bytes.Buffer
	summary, err := store.Ingest(ctx, dir, types.TemplateModern, &log)
	require.NoError(t, err)
	assert.Equal(t, IngestSummary{Added: 2, Failed: 1}, summary)
	assert.Contains(t, log.String(), "added:   jane.json")
	assert.Contains(t, log.String(), "failed:  broken.json")

	// A second run skips unchanged files.
	log.Reset()
	summary, err = store.Ingest(ctx, dir, types.TemplateModern, &log)
	require.NoError(t, err)
	assert.Equal(t, 2, summary.Skipped)
	assert.Equal(t, 1, summary.Failed)

	// A changed file updates the entry it created.
	writeJSON("jane.json", resumeFor("Jane Doe", "Rust"))
	later := time.Now().Add(time.Hour)
	require.NoError(t, os.Chtimes(janePath, later, later))

	log.Reset()
	summary, err = store.Ingest(ctx, dir, types.TemplateModern, &log)
	require.NoError(t, err)
	assert.Equal(t, IngestSummary{Updated: 1, Skipped: 1, Failed: 1}, summary)
	assert.Contains(t, log.String(), "updated: jane.json")

	list, err := store.List(ctx, ListOptions{Query: "jane"})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, []string{"Rust"}, list[0].Data.Skills)

	_, err = store.Ingest(ctx, filepath.Join(dir, "missing"), "", &log)
	assert.Error(t, err)
}
