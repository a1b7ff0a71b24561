// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert turns uploaded resume files into the plain text the
// parser consumes. Text extraction is pluggable: NativeConverter works
// in-process, MarkitdownConverter delegates to a container image.
package convert

import (
	"errors"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/resume-engine/pkg/types"
)

var (
	// ErrUnsupportedType is returned for files that are not a resume
	// format accepted for import.
	ErrUnsupportedType = errors.New("unsupported file type")

	// ErrFileTooLarge is returned for files above the configured size limit.
	ErrFileTooLarge = errors.New("file too large")
)

// Converter extracts the text layer of a resume file.
type Converter interface {
	// Convert reads the file at path and returns its text.
	Convert(path string) (string, error)
}

var byExtension = map[string]types.FileType{
	".pdf":  types.FilePDF,
	".docx": types.FileDOCX,
	".doc":  types.FileDOC,
	".odt":  types.FileODT,
	".txt":  types.FileTXT,
	".text": types.FileTXT,
	".rtf":  types.FileRTF,
	".html": types.FileHTML,
	".htm":  types.FileHTML,
}

func fileTypeForMIME(mt string) (types.FileType, bool) {
	switch strings.ToLower(mt) {
	case "application/pdf":
		return types.FilePDF, true
	case "application/vnd.openxmlformats-officedocument.wordprocessingml.document":
		return types.FileDOCX, true
	case "application/msword":
		return types.FileDOC, true
	case "application/vnd.oasis.opendocument.text":
		return types.FileODT, true
	case "text/plain":
		return types.FileTXT, true
	case "application/rtf", "text/rtf":
		return types.FileRTF, true
	case "text/html":
		return types.FileHTML, true
	}
	return "", false
}

// DetectFileType classifies a file by its extension, falling back to the
// MIME type when the extension is missing or unknown. mimeType may be
// empty or carry parameters ("text/html; charset=utf-8").
func DetectFileType(name, mimeType string) (types.FileType, error) {
	if ft, ok := byExtension[strings.ToLower(filepath.Ext(name))]; ok {
		return ft, nil
	}
	if mt, _, err := mime.ParseMediaType(mimeType); err == nil {
		if ft, ok := fileTypeForMIME(mt); ok {
			return ft, nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrUnsupportedType, name)
}

// Extension returns the canonical file extension for ft, including the dot.
func Extension(ft types.FileType) string {
	return "." + string(ft)
}

// CheckSize returns ErrFileTooLarge when the file at path exceeds limit
// bytes. A limit of zero or less applies types.DefaultMaxFileSize.
func CheckSize(path string, limit int64) error {
	if limit <= 0 {
		limit = types.DefaultMaxFileSize
	}
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("checking %s: %w", path, err)
	}
	if info.Size() > limit {
		return fmt.Errorf("%w: %s is %d bytes (limit %d)", ErrFileTooLarge, filepath.Base(path), info.Size(), limit)
	}
	return nil
}
