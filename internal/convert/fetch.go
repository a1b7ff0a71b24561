// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/pdiddy/resume-engine/internal/httputil"
	"github.com/pdiddy/resume-engine/pkg/types"
)

// defaultFetchName is used when the URL path carries no file name.
const defaultFetchName = "resume"

// Fetch downloads the resume at rawURL into dir and returns the local path.
// The file type comes from the URL extension or the Content-Type header;
// downloads of other types fail with ErrUnsupportedType and downloads over
// maxSize bytes fail with ErrFileTooLarge. The body is written to a temp
// file and renamed into place, so a failed download leaves nothing behind.
func Fetch(ctx context.Context, client *http.Client, rawURL, dir string, cfg types.HTTPConfig, maxSize int64, log io.Writer) (string, error) {
	if maxSize <= 0 {
		maxSize = types.DefaultMaxFileSize
	}

	u, err := url.Parse(rawURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return "", fmt.Errorf("invalid resume URL %q", rawURL)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	if cfg.UserAgent != "" {
		req.Header.Set("User-Agent", cfg.UserAgent)
	}

	resp, err := httputil.DoWithRetry(ctx, client, req, cfg.MaxRetries, log)
	if err != nil {
		return "", fmt.Errorf("HTTP request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("HTTP %d from %s", resp.StatusCode, rawURL)
	}

	name := fetchName(u)
	ft, err := DetectFileType(name, resp.Header.Get("Content-Type"))
	if err != nil {
		return "", err
	}
	if _, known := byExtension[strings.ToLower(filepath.Ext(name))]; !known {
		name += Extension(ft)
	}

	if resp.ContentLength > maxSize {
		return "", fmt.Errorf("%w: %s is %d bytes (limit %d)", ErrFileTooLarge, name, resp.ContentLength, maxSize)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating %s: %w", dir, err)
	}
	tmpFile, err := os.CreateTemp(dir, ".fetch-*.tmp")
	if err != nil {
		return "", fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	n, copyErr := io.Copy(tmpFile, io.LimitReader(resp.Body, maxSize+1))
	closeErr := tmpFile.Close()
	switch {
	case copyErr != nil:
		os.Remove(tmpPath)
		return "", fmt.Errorf("writing download: %w", copyErr)
	case closeErr != nil:
		os.Remove(tmpPath)
		return "", fmt.Errorf("closing temp file: %w", closeErr)
	case n > maxSize:
		os.Remove(tmpPath)
		return "", fmt.Errorf("%w: %s exceeds %d bytes", ErrFileTooLarge, name, maxSize)
	}

	dest := filepath.Join(dir, name)
	if err := os.Rename(tmpPath, dest); err != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("renaming temp file: %w", err)
	}
	return dest, nil
}

// fetchName derives a safe local file name from the last URL path segment.
func fetchName(u *url.URL) string {
	name := path.Base(u.Path)
	if name == "." || name == "/" || name == "" {
		return defaultFetchName
	}
	return filepath.Base(filepath.Clean(name))
}
