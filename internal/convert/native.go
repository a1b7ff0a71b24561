// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"fmt"
	"os"
	"strings"

	"code.sajari.com/docconv"
	"github.com/ledongthuc/pdf"

	"github.com/pdiddy/resume-engine/pkg/types"
)

// NativeConverter extracts text in-process. PDF text layers are read page
// by page, DOCX and ODT through docconv, HTML through the html tokenizer,
// and DOC, RTF, and TXT files are read as text.
type NativeConverter struct{}

// NewNativeConverter returns a converter that needs no external tools.
func NewNativeConverter() *NativeConverter {
	return &NativeConverter{}
}

// Convert dispatches on the file extension of path.
func (n *NativeConverter) Convert(path string) (string, error) {
	ft, err := DetectFileType(path, "")
	if err != nil {
		return "", err
	}

	switch ft {
	case types.FilePDF:
		return pdfText(path)
	case types.FileDOCX, types.FileODT:
		return officeText(path)
	case types.FileHTML:
		return htmlFileText(path)
	default:
		return plainText(path)
	}
}

// pdfText joins the plain text of every page with newlines. Pages without
// content are skipped. Scanned PDFs have no text layer and yield "".
func pdfText(path string) (string, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("opening PDF %s: %w", path, err)
	}
	defer f.Close()

	pages := make([]string, 0, r.NumPage())
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("reading page %d of %s: %w", i, path, err)
		}
		pages = append(pages, text)
	}
	return strings.Join(pages, "\n"), nil
}

func officeText(path string) (string, error) {
	res, err := docconv.ConvertPath(path)
	if err != nil {
		return "", fmt.Errorf("extracting text from %s: %w", path, err)
	}
	return res.Body, nil
}

func htmlFileText(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	text, err := HTMLText(f)
	if err != nil {
		return "", fmt.Errorf("parsing HTML %s: %w", path, err)
	}
	return text, nil
}

func plainText(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	return string(data), nil
}
