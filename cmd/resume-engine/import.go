// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/resume-engine/internal/container"
	"github.com/pdiddy/resume-engine/internal/convert"
	"github.com/pdiddy/resume-engine/internal/importer"
	"github.com/pdiddy/resume-engine/pkg/types"
)

const (
	defaultTimeout   = 60 * time.Second
	defaultUserAgent = "resume-engine/0.1"
)

var importCmd = &cobra.Command{
	Use:   "import [files or URLs...]",
	Short: "Import resume files into structured JSON or YAML documents",
	Long: `Import extracts the text of each resume file, parses it, validates the
result against the resume schema, and writes one document per file to the
output directory. Arguments starting with http:// or https:// are
downloaded first. Files whose output already exists are skipped unless
--overwrite is set.`,
	RunE: runImport,
}

func init() {
	importCmd.Flags().String("backend", string(types.BackendNative), "text extraction backend: native or markitdown")
	importCmd.Flags().String("runtime", "", "container runtime for the markitdown backend: docker or podman (default: auto-detect)")
	importCmd.Flags().String("format", string(types.OutputJSON), "output format: json or yaml")
	importCmd.Flags().String("output-dir", importer.DefaultOutputDir, "directory for imported documents")
	importCmd.Flags().Int("jobs", importer.DefaultJobs, "number of files imported concurrently")
	importCmd.Flags().Bool("overwrite", false, "re-import files whose output already exists")
	importCmd.Flags().Int64("max-file-size", types.DefaultMaxFileSize, "largest accepted file in bytes")
	importCmd.Flags().Duration("timeout", 0, "HTTP request timeout for URL downloads (default 60s)")
	importCmd.Flags().Int("max-retries", 0, "retries on HTTP 429/503 for URL downloads (default 5)")

	bindFlag(importCmd, "import.backend", "backend")
	bindFlag(importCmd, "import.runtime", "runtime")
	bindFlag(importCmd, "import.format", "format")
	bindFlag(importCmd, "import.output_dir", "output-dir")
	bindFlag(importCmd, "import.jobs", "jobs")
	bindFlag(importCmd, "import.max_file_size", "max-file-size")
	bindFlag(importCmd, "import.timeout", "timeout")

	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("provide one or more resume files or URLs")
	}

	cfg := importConfig(cmd)
	conv, err := newConverter(cfg.Backend, viper.GetString("import.runtime"))
	if err != nil {
		return err
	}

	paths, downloadFailed, cleanup, err := resolveInputs(cmd, args, cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	result := importer.ImportBatch(cmd.Context(), conv, paths, cfg, os.Stdout)
	if failed := result.Failed + downloadFailed; failed > 0 {
		return fmt.Errorf("%d file(s) failed import", failed)
	}
	return nil
}

// importConfig assembles the import settings from flags, the config file,
// and the environment.
func importConfig(cmd *cobra.Command) types.ImportConfig {
	timeout := viper.GetDuration("import.timeout")
	if timeout == 0 {
		timeout = defaultTimeout
	}
	userAgent := viper.GetString("import.user_agent")
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	overwrite, _ := cmd.Flags().GetBool("overwrite")
	maxRetries, _ := cmd.Flags().GetInt("max-retries")

	return types.ImportConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:    timeout,
			UserAgent:  userAgent,
			MaxRetries: maxRetries,
		},
		Backend:     types.ConversionBackend(viper.GetString("import.backend")),
		MaxFileSize: viper.GetInt64("import.max_file_size"),
		OutputDir:   viper.GetString("import.output_dir"),
		Format:      types.OutputFormat(viper.GetString("import.format")),
		Jobs:        viper.GetInt("import.jobs"),
		Overwrite:   overwrite,
	}
}

// newConverter builds the text extraction backend. The markitdown backend
// falls back to native extraction for formats the image does not handle.
func newConverter(backend types.ConversionBackend, runtime string) (convert.Converter, error) {
	native := convert.NewNativeConverter()

	switch backend {
	case types.BackendNative, "":
		return native, nil
	case types.BackendMarkitdown:
		rt, err := container.DetectRuntime(runtime)
		if err != nil {
			return nil, err
		}
		conv, err := convert.NewMarkitdownConverter(rt, native)
		if err != nil {
			return nil, err
		}
		return conv, nil
	default:
		return nil, fmt.Errorf("unsupported backend %q: use native or markitdown", backend)
	}
}

// resolveInputs downloads URL arguments into a temporary directory and
// returns local paths in argument order along with the number of failed
// downloads. cleanup removes the downloads.
func resolveInputs(cmd *cobra.Command, args []string, cfg types.ImportConfig) ([]string, int, func(), error) {
	cleanup := func() {}

	var (
		tmpDir string
		failed int
	)
	client := &http.Client{Timeout: cfg.Timeout}
	paths := make([]string, 0, len(args))

	for i, arg := range args {
		if !strings.HasPrefix(arg, "http://") && !strings.HasPrefix(arg, "https://") {
			paths = append(paths, arg)
			continue
		}

		if tmpDir == "" {
			dir, err := os.MkdirTemp("", "resume-engine-")
			if err != nil {
				return nil, 0, cleanup, fmt.Errorf("creating download directory: %w", err)
			}
			tmpDir = dir
			cleanup = func() { os.RemoveAll(dir) }
		}

		// One directory per URL keeps same-named downloads apart.
		dest := filepath.Join(tmpDir, strconv.Itoa(i))
		path, err := convert.Fetch(cmd.Context(), client, arg, dest, cfg.HTTPConfig, cfg.MaxFileSize, os.Stderr)
		if err != nil {
			fmt.Fprintf(os.Stdout, "failed:   %s (%v)\n", arg, err)
			failed++
			continue
		}
		fmt.Fprintf(os.Stderr, "downloaded: %s\n", arg)
		paths = append(paths, path)
	}
	return paths, failed, cleanup, nil
}
