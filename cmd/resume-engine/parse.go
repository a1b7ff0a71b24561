// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/resume-engine/internal/importer"
	"github.com/pdiddy/resume-engine/internal/parse"
	"github.com/pdiddy/resume-engine/internal/validate"
	"github.com/pdiddy/resume-engine/pkg/types"
)

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Parse one resume and print the structured document",
	Long: `Parse extracts the text of a resume file, segments it into a structured
resume, and prints the document to stdout. With no file, or with "-",
plain resume text is read from stdin.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runParse,
}

func init() {
	parseCmd.Flags().String("backend", string(types.BackendNative), "text extraction backend: native or markitdown")
	parseCmd.Flags().String("runtime", "", "container runtime for the markitdown backend: docker or podman")
	parseCmd.Flags().String("format", string(types.OutputJSON), "output format: json or yaml")
	parseCmd.Flags().Int64("max-file-size", types.DefaultMaxFileSize, "largest accepted file in bytes")

	rootCmd.AddCommand(parseCmd)
}

func runParse(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")

	var (
		r   types.Resume
		err error
	)
	if len(args) == 0 || args[0] == "-" {
		r, err = parseStdin(cmd.InOrStdin())
	} else {
		r, err = parseFile(cmd, args[0])
	}
	if err != nil {
		return err
	}

	data, err := importer.Marshal(r, types.OutputFormat(format))
	if err != nil {
		return err
	}
	_, err = os.Stdout.Write(data)
	return err
}

func parseStdin(in io.Reader) (types.Resume, error) {
	text, err := io.ReadAll(in)
	if err != nil {
		return types.Resume{}, fmt.Errorf("reading stdin: %w", err)
	}
	r := parse.Parse(string(text))
	if err := validate.Resume(r); err != nil {
		return types.Resume{}, err
	}
	return r, nil
}

func parseFile(cmd *cobra.Command, path string) (types.Resume, error) {
	backend, _ := cmd.Flags().GetString("backend")
	runtime, _ := cmd.Flags().GetString("runtime")
	maxSize, _ := cmd.Flags().GetInt64("max-file-size")

	conv, err := newConverter(types.ConversionBackend(backend), runtime)
	if err != nil {
		return types.Resume{}, err
	}
	r, err := importer.Extract(conv, path, maxSize)
	if err != nil {
		return types.Resume{}, fmt.Errorf("parsing %s: %w", path, err)
	}
	return r, nil
}
