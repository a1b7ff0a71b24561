// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package importer runs resume files through text extraction, parsing, and
// validation, and writes one structured document per file.
package importer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.yaml.in/yaml/v3"
	"golang.org/x/sync/errgroup"

	"github.com/pdiddy/resume-engine/internal/convert"
	"github.com/pdiddy/resume-engine/internal/parse"
	"github.com/pdiddy/resume-engine/internal/validate"
	"github.com/pdiddy/resume-engine/pkg/types"
)

const (
	// DefaultOutputDir receives imported documents when none is configured.
	DefaultOutputDir = "imported"

	// DefaultJobs is the batch concurrency used when none is configured.
	DefaultJobs = 4
)

// Status is the outcome of importing one file.
type Status int

const (
	StatusImported Status = iota
	StatusSkipped
	StatusFailed
)

// Result describes one imported file.
type Result struct {
	Source string
	Output string
	Status Status
	Err    error
}

// BatchResult holds the outcome of a batch import run.
type BatchResult struct {
	Imported int
	Skipped  int
	Failed   int

	// Results lists every file in input order.
	Results []Result
}

// Total returns the total number of files processed.
func (r BatchResult) Total() int {
	return r.Imported + r.Skipped + r.Failed
}

// HasFailures reports whether any file failed to import.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// Extract converts the file at path to text and parses it into a complete,
// schema-valid resume. Files of an unsupported type or above maxSize are
// rejected before conversion.
func Extract(conv convert.Converter, path string, maxSize int64) (types.Resume, error) {
	if _, err := convert.DetectFileType(path, ""); err != nil {
		return types.Resume{}, err
	}
	if err := convert.CheckSize(path, maxSize); err != nil {
		return types.Resume{}, err
	}

	text, err := conv.Convert(path)
	if err != nil {
		return types.Resume{}, err
	}

	r := parse.Parse(text)
	if err := validate.Resume(r); err != nil {
		return types.Resume{}, err
	}
	return r, nil
}

// Marshal serializes r in the given format. An empty format means JSON.
func Marshal(r types.Resume, format types.OutputFormat) ([]byte, error) {
	switch format {
	case "", types.OutputJSON:
		data, err := json.MarshalIndent(r, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(data, '\n'), nil
	case types.OutputYAML:
		return yaml.Marshal(r)
	default:
		return nil, fmt.Errorf("unknown output format %q", format)
	}
}

// OutputPath returns where the document for source is written.
func OutputPath(source string, cfg types.ImportConfig) string {
	dir := cfg.OutputDir
	if dir == "" {
		dir = DefaultOutputDir
	}
	ext := ".json"
	if cfg.Format == types.OutputYAML {
		ext = ".yaml"
	}
	base := strings.TrimSuffix(filepath.Base(source), filepath.Ext(source))
	return filepath.Join(dir, base+ext)
}

// ImportFile imports a single resume file and writes a status line to w.
// An existing output is left alone unless cfg.Overwrite is set.
func ImportFile(ctx context.Context, conv convert.Converter, path string, cfg types.ImportConfig, w io.Writer) Result {
	out := OutputPath(path, cfg)
	name := filepath.Base(path)
	res := Result{Source: path, Output: out}

	fail := func(err error) Result {
		fmt.Fprintf(w, "failed:   %s (%v)\n", name, err)
		res.Status = StatusFailed
		res.Err = err
		return res
	}

	if err := ctx.Err(); err != nil {
		return fail(err)
	}

	if !cfg.Overwrite {
		if _, err := os.Stat(out); err == nil {
			fmt.Fprintf(w, "skipped:  %s (already exists)\n", name)
			res.Status = StatusSkipped
			return res
		}
	}

	r, err := Extract(conv, path, cfg.MaxFileSize)
	if err != nil {
		return fail(err)
	}

	data, err := Marshal(r, cfg.Format)
	if err != nil {
		return fail(err)
	}
	if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
		return fail(err)
	}
	if err := os.WriteFile(out, data, 0o644); err != nil {
		return fail(err)
	}

	fmt.Fprintf(w, "imported: %s -> %s\n", name, out)
	res.Status = StatusImported
	return res
}

// ImportBatch imports paths with at most cfg.Jobs files in flight. Status
// lines are written to w in input order, followed by a summary. A failed
// file does not stop the batch; a cancelled context fails the files not yet
// started.
func ImportBatch(ctx context.Context, conv convert.Converter, paths []string, cfg types.ImportConfig, w io.Writer) BatchResult {
	jobs := cfg.Jobs
	if jobs <= 0 {
		jobs = DefaultJobs
	}

	results := make([]Result, len(paths))
	logs := make([]bytes.Buffer, len(paths))

	var g errgroup.Group
	g.SetLimit(jobs)
	for i, p := range paths {
		g.Go(func() error {
			results[i] = ImportFile(ctx, conv, p, cfg, &logs[i])
			return nil
		})
	}
	g.Wait()

	batch := BatchResult{Results: results}
	for i, res := range results {
		w.Write(logs[i].Bytes())
		switch res.Status {
		case StatusImported:
			batch.Imported++
		case StatusSkipped:
			batch.Skipped++
		case StatusFailed:
			batch.Failed++
		}
	}

	fmt.Fprintf(w, "\nBatch summary: %d imported, %d skipped, %d failed (total: %d)\n",
		batch.Imported, batch.Skipped, batch.Failed, batch.Total())
	return batch
}
