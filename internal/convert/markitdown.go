// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/pdiddy/resume-engine/internal/container"
	"github.com/pdiddy/resume-engine/pkg/types"
)

const (
	imageMarkitdown = "markitdown:latest"

	// markitdownTimeout bounds a single container run.
	markitdownTimeout = 2 * time.Minute
)

// markitdownTypes are the formats the markitdown image reads from stdin.
var markitdownTypes = map[types.FileType]bool{
	types.FilePDF:  true,
	types.FileDOCX: true,
	types.FileHTML: true,
	types.FileTXT:  true,
}

// MarkitdownConverter pipes resumes through the markitdown container image
// and returns its Markdown output. Headings come back as "# Heading" and
// list items as "- item", both of which the parser accepts. Formats the
// image does not read are handed to the fallback converter.
type MarkitdownConverter struct {
	runtime  container.Runtime
	fallback Converter
}

// NewMarkitdownConverter verifies that the markitdown image exists in rt.
// fallback handles DOC, ODT, and RTF files.
func NewMarkitdownConverter(rt container.Runtime, fallback Converter) (*MarkitdownConverter, error) {
	if err := rt.ImageExists(imageMarkitdown); err != nil {
		return nil, fmt.Errorf("markitdown image not available in %s: %w", rt.Name(), err)
	}
	return &MarkitdownConverter{runtime: rt, fallback: fallback}, nil
}

// Convert streams the file at path into the container, passing its type as
// the extension hint.
func (m *MarkitdownConverter) Convert(path string) (string, error) {
	ft, err := DetectFileType(path, "")
	if err != nil {
		return "", err
	}
	if !markitdownTypes[ft] {
		if m.fallback == nil {
			return "", fmt.Errorf("%w for markitdown: %s", ErrUnsupportedType, path)
		}
		return m.fallback.Convert(path)
	}

	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	ctx, cancel := context.WithTimeout(context.Background(), markitdownTimeout)
	defer cancel()

	var out bytes.Buffer
	if err := m.runtime.Run(ctx, imageMarkitdown, []string{"-x", string(ft)}, f, &out); err != nil {
		return "", fmt.Errorf("converting %s with markitdown: %w", path, err)
	}
	if strings.TrimSpace(out.String()) == "" {
		return "", fmt.Errorf("markitdown produced empty output for %s", path)
	}
	return out.String(), nil
}
