// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/resume-engine/internal/validate"
)

var validateCmd = &cobra.Command{
	Use:   "validate [documents...]",
	Short: "Check resume documents against the resume schema",
	Long: `Validate checks JSON or YAML resume documents against the resume JSON
Schema and lists every violation. Use --schema to print the schema itself.`,
	RunE: runValidate,
}

func init() {
	validateCmd.Flags().Bool("schema", false, "print the resume JSON Schema and exit")

	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	if printSchema, _ := cmd.Flags().GetBool("schema"); printSchema {
		_, err := os.Stdout.Write(validate.Schema())
		return err
	}
	if len(args) == 0 {
		return fmt.Errorf("provide one or more resume documents")
	}

	var failed int
	for _, path := range args {
		if err := validateFile(path); err != nil {
			fmt.Fprintf(os.Stdout, "invalid: %s\n", path)
			var verr *validate.Error
			if errors.As(err, &verr) {
				for _, v := range verr.Violations {
					fmt.Fprintf(os.Stdout, "  - %s\n", v)
				}
			} else {
				fmt.Fprintf(os.Stdout, "  %v\n", err)
			}
			failed++
			continue
		}
		fmt.Fprintf(os.Stdout, "valid:   %s\n", path)
	}

	if failed > 0 {
		return fmt.Errorf("%d document(s) failed validation", failed)
	}
	return nil
}

// validateFile checks one document. YAML is converted to JSON first so both
// formats go through the same schema.
func validateFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		var doc any
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return fmt.Errorf("parse error: %w", err)
		}
		if data, err = json.Marshal(doc); err != nil {
			return fmt.Errorf("converting to JSON: %w", err)
		}
	}
	return validate.Document(data)
}
