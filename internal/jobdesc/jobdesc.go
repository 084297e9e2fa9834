// Package jobdesc resolves the job description text from a flag value, a
// file or a job posting URL.
package jobdesc

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
)

// StdinPath is the File value that reads the job description from Stdin.
const StdinPath = "-"

// Source describes how to load a job description.
type Source struct {
	// Name is used in error messages to give more context about the source.
	Name string
	// Value is inline text provided via configuration or flags.
	Value string
	// File points to a file containing the text. When set it takes precedence
	// over URL and Value.
	File string
	// URL points to a job posting. When set it takes precedence over Value.
	URL string
	// Fetcher downloads URL. Required when URL is set.
	Fetcher *Fetcher
	// Stdin is read when File is StdinPath. Defaults to os.Stdin.
	Stdin io.Reader
}

// Load returns the resolved job description from File, URL or Value, in that
// order of precedence. The result is trimmed. An empty description is not an
// error: the caller decides how to report missing input.
func Load(ctx context.Context, src Source) (string, error) {
	name := strings.TrimSpace(src.Name)
	if name == "" {
		name = "job description"
	}

	file := strings.TrimSpace(src.File)
	link := strings.TrimSpace(src.URL)
	switch {
	case file == "" && link != "":
		if src.Fetcher == nil {
			return "", fmt.Errorf("fetching %s: no fetcher configured", name)
		}
		text, err := src.Fetcher.Fetch(ctx, link)
		if err != nil {
			return "", fmt.Errorf("fetching %s from %q: %w", name, link, err)
		}
		src.Value = text
	case file == "":
	case file == StdinPath:
		r := src.Stdin
		if r == nil {
			r = os.Stdin
		}
		data, err := io.ReadAll(r)
		if err != nil {
			return "", fmt.Errorf("reading %s from stdin: %w", name, err)
		}
		src.Value = string(data)
	default:
		data, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("reading %s from file %q: %w", name, file, err)
		}
		src.Value = string(data)
	}

	return strings.TrimSpace(src.Value), nil
}
