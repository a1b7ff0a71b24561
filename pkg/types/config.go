package types

import "time"

// HTTPConfig holds shared HTTP settings used when fetching resumes by URL.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "resume-engine/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`

	// MaxRetries bounds the retries on HTTP 429 (0 uses the default of 5).
	MaxRetries int `json:"max_retries" yaml:"max_retries"`
}

// ConversionBackend identifies the tool that extracts text from a file.
type ConversionBackend string

const (
	// BackendNative extracts text in-process with Go libraries.
	BackendNative ConversionBackend = "native"
	// BackendMarkitdown pipes files through the markitdown container image.
	BackendMarkitdown ConversionBackend = "markitdown"
)

// DefaultMaxFileSize is the upload limit applied when none is configured (5 MB).
const DefaultMaxFileSize int64 = 5 * 1024 * 1024

// OutputFormat selects the serialization of imported resumes.
type OutputFormat string

const (
	OutputJSON OutputFormat = "json"
	OutputYAML OutputFormat = "yaml"
)

// ImportConfig holds settings for the import stage.
type ImportConfig struct {
	HTTPConfig `yaml:",inline"`

	// Backend selects the text extraction tool: native or markitdown.
	Backend ConversionBackend `json:"backend" yaml:"backend"`

	// MaxFileSize is the largest accepted upload in bytes (default 5 MB).
	MaxFileSize int64 `json:"max_file_size" yaml:"max_file_size"`

	// OutputDir receives one structured document per imported file.
	OutputDir string `json:"output_dir" yaml:"output_dir"`

	// Format selects json or yaml output.
	Format OutputFormat `json:"format" yaml:"format"`

	// Jobs bounds how many files are imported concurrently (default 4).
	Jobs int `json:"jobs" yaml:"jobs"`

	// Overwrite re-imports files whose output already exists.
	Overwrite bool `json:"overwrite" yaml:"overwrite"`
}

// LibraryConfig holds settings for the saved-resume library.
type LibraryConfig struct {
	// DataDir is the base directory for the library (contains index/, export/).
	DataDir string `json:"data_dir" yaml:"data_dir"`
}

// FileType is a resume file format accepted for import.
type FileType string

const (
	FilePDF  FileType = "pdf"
	FileDOCX FileType = "docx"
	FileDOC  FileType = "doc"
	FileODT  FileType = "odt"
	FileTXT  FileType = "txt"
	FileRTF  FileType = "rtf"
	FileHTML FileType = "html"
)
