// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/resume-engine/internal/library"
	"github.com/pdiddy/resume-engine/pkg/types"
)

var libraryCmd = &cobra.Command{
	Use:   "library",
	Short: "Manage saved resumes (save, list, show, delete, export, ingest)",
	Long: `Library keeps saved resumes in a local SQLite database under the data
directory (index/resumes.db). Each entry has a name, a template, the time it
was saved, and the full resume document.`,
}

// --- save subcommand ---

var librarySaveCmd = &cobra.Command{
	Use:   "save <document>",
	Short: "Save an imported resume document to the library",
	Long: `Save reads a JSON or YAML resume document, validates it, and stores it as
a new library entry. Without --name the candidate's full name is used. With
--id the existing entry is replaced instead.`,
	Args: cobra.ExactArgs(1),
	RunE: runLibrarySave,
}

func runLibrarySave(cmd *cobra.Command, args []string) error {
	name, _ := cmd.Flags().GetString("name")
	template, _ := cmd.Flags().GetString("template")
	id, _ := cmd.Flags().GetString("id")

	r, err := library.ReadDocument(args[0])
	if err != nil {
		return fmt.Errorf("reading %s: %w", args[0], err)
	}

	store, err := openLibrary()
	if err != nil {
		return err
	}
	defer store.Close()

	var saved types.SavedResume
	if id != "" {
		saved, err = store.Update(cmd.Context(), types.SavedResume{
			ID:       id,
			Name:     name,
			Template: types.TemplateType(template),
			Data:     r,
		})
	} else {
		saved, err = store.Save(cmd.Context(), name, types.TemplateType(template), r)
	}
	if err != nil {
		return err
	}

	fmt.Printf("saved: %s (%s)\n", saved.Name, saved.ID)
	return nil
}

// --- list subcommand ---

var libraryListCmd = &cobra.Command{
	Use:   "list [query]",
	Short: "List saved resumes, most recent first",
	Long: `List prints saved resumes, most recently saved first. A query matches the
entry name or the candidate's name; --skill and --template filter further.`,
	RunE: runLibraryList,
}

func runLibraryList(cmd *cobra.Command, args []string) error {
	store, err := openLibrary()
	if err != nil {
		return err
	}
	defer store.Close()

	results, err := store.List(cmd.Context(), listOptsFromFlags(cmd, args))
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	return formatListOutput(results, jsonOutput)
}

func formatListOutput(results []types.SavedResume, jsonOutput bool) error {
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}

	if len(results) == 0 {
		fmt.Println("No saved resumes.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-36s  %-30s  %-10s  %s\n", "ID", "Name", "Template", "Saved")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 100))

	for _, s := range results {
		name := s.Name
		if len(name) > 30 {
			name = name[:27] + "..."
		}
		fmt.Fprintf(os.Stdout, "%-36s  %-30s  %-10s  %s\n",
			s.ID, name, s.Template, s.SavedAt.Local().Format("2006-01-02 15:04"))
	}

	fmt.Fprintf(os.Stdout, "\n%d resumes\n", len(results))
	return nil
}

// --- show subcommand ---

var libraryShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Print one saved resume",
	Args:  cobra.ExactArgs(1),
	RunE:  runLibraryShow,
}

func runLibraryShow(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")

	store, err := openLibrary()
	if err != nil {
		return err
	}
	defer store.Close()

	saved, err := store.Get(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	switch format {
	case "json", "":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(saved)
	case "yaml":
		enc := yaml.NewEncoder(os.Stdout)
		defer enc.Close()
		return enc.Encode(saved)
	default:
		return fmt.Errorf("unsupported format %q: use json or yaml", format)
	}
}

// --- delete subcommand ---

var libraryDeleteCmd = &cobra.Command{
	Use:   "delete <id>...",
	Short: "Delete saved resumes",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runLibraryDelete,
}

func runLibraryDelete(cmd *cobra.Command, args []string) error {
	store, err := openLibrary()
	if err != nil {
		return err
	}
	defer store.Close()

	for _, id := range args {
		if err := store.Delete(cmd.Context(), id); err != nil {
			return err
		}
		fmt.Printf("deleted: %s\n", id)
	}
	return nil
}

// --- export subcommand ---

var libraryExportCmd = &cobra.Command{
	Use:   "export [query]",
	Short: "Export the library to YAML or JSON",
	Long: `Export writes every saved resume (or a filtered subset) to
export/resumes.yaml or export/resumes.json under the data directory.
Supports the same filters as list.`,
	RunE: runLibraryExport,
}

func runLibraryExport(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")

	store, err := openLibrary()
	if err != nil {
		return err
	}
	defer store.Close()

	opts := listOptsFromFlags(cmd, args)

	var path string
	switch format {
	case "yaml", "":
		path, err = store.ExportYAML(cmd.Context(), opts)
	case "json":
		path, err = store.ExportJSON(cmd.Context(), opts)
	default:
		return fmt.Errorf("unsupported format %q: use yaml or json", format)
	}
	if err != nil {
		return err
	}

	fmt.Println("Exported to", path)
	return nil
}

// --- ingest subcommand ---

var libraryIngestCmd = &cobra.Command{
	Use:   "ingest <dir>",
	Short: "Save every imported document in a directory to the library",
	Long: `Ingest reads the JSON and YAML documents written by import and saves each
one to the library. Files are tracked by path and modification time:
unchanged files are skipped on later runs and changed files update the
entry they created.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runLibraryIngest,
}

func runLibraryIngest(cmd *cobra.Command, args []string) error {
	template, _ := cmd.Flags().GetString("template")
	dir := viper.GetString("import.output_dir")
	if len(args) > 0 {
		dir = args[0]
	}
	if dir == "" {
		return fmt.Errorf("provide a directory of imported documents")
	}

	store, err := openLibrary()
	if err != nil {
		return err
	}
	defer store.Close()

	summary, err := store.Ingest(cmd.Context(), dir, types.TemplateType(template), os.Stdout)
	if err != nil {
		return err
	}
	if summary.Failed > 0 {
		return fmt.Errorf("%d document(s) failed ingest", summary.Failed)
	}
	return nil
}

// --- shared helpers ---

func openLibrary() (*library.Store, error) {
	dataDir := viper.GetString("library.data_dir")
	if dataDir == "" {
		dataDir = "library"
	}
	return library.NewStore(types.LibraryConfig{DataDir: dataDir})
}

func listOptsFromFlags(cmd *cobra.Command, args []string) library.ListOptions {
	query, _ := cmd.Flags().GetString("query")
	if query == "" && len(args) > 0 {
		query = strings.Join(args, " ")
	}
	skill, _ := cmd.Flags().GetString("skill")
	template, _ := cmd.Flags().GetString("template")
	limit, _ := cmd.Flags().GetInt("limit")

	return library.ListOptions{
		Query:    query,
		Skill:    skill,
		Template: types.TemplateType(template),
		Limit:    limit,
	}
}

func init() {
	// Shared flags on the parent command, inherited by subcommands.
	libraryCmd.PersistentFlags().String("data-dir", "library", "base directory for the library (contains index/, export/)")
	if err := viper.BindPFlag("library.data_dir", libraryCmd.PersistentFlags().Lookup("data-dir")); err != nil {
		panic(err)
	}

	// Save flags.
	librarySaveCmd.Flags().String("name", "", "entry name (default: the candidate's full name)")
	librarySaveCmd.Flags().String("template", string(types.DefaultTemplate), "template: "+templateNames())
	librarySaveCmd.Flags().String("id", "", "replace the entry with this ID")

	// List and export filters.
	for _, c := range []*cobra.Command{libraryListCmd, libraryExportCmd} {
		c.Flags().String("query", "", "match the entry name or candidate name")
		c.Flags().String("skill", "", "filter by skill")
		c.Flags().String("template", "", "filter by template")
	}
	libraryListCmd.Flags().Int("limit", 0, "maximum results (0 = use default)")
	libraryListCmd.Flags().Bool("json", false, "output results as JSON")
	libraryExportCmd.Flags().String("format", "yaml", "export format: yaml or json")

	// Show flags.
	libraryShowCmd.Flags().String("format", "json", "output format: json or yaml")

	// Ingest flags.
	libraryIngestCmd.Flags().String("template", string(types.DefaultTemplate), "template for new entries")

	// Wire subcommands.
	libraryCmd.AddCommand(librarySaveCmd)
	libraryCmd.AddCommand(libraryListCmd)
	libraryCmd.AddCommand(libraryShowCmd)
	libraryCmd.AddCommand(libraryDeleteCmd)
	libraryCmd.AddCommand(libraryExportCmd)
	libraryCmd.AddCommand(libraryIngestCmd)

	rootCmd.AddCommand(libraryCmd)
}

func templateNames() string {
	names := make([]string, len(types.Templates))
	for i, t := range types.Templates {
		names[i] = string(t)
	}
	return strings.Join(names, ", ")
}
