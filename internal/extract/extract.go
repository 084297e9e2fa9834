// Package extract turns resume files into plain text documents.
package extract

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/spigell/resume-screener/internal/logger"
	"github.com/spigell/resume-screener/internal/similarity"
)

const (
	mimePDF  = "application/pdf"
	mimeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	mimeHTML = "text/html"
)

// DefaultExtensions are the file types accepted when none are configured.
var DefaultExtensions = []string{".pdf", ".docx", ".txt", ".md", ".html", ".htm"}

// Config controls which files are read and how.
type Config struct {
	Extensions []string `mapstructure:"extensions"`
	Workers    int      `mapstructure:"workers" validate:"gte=0"`
	PDFToText  string   `mapstructure:"pdftotext"`
}

// Extractor reads resume files concurrently.
type Extractor struct {
	extensions []string
	workers    int
	pdf        *pdfReader
	logger     *zap.Logger
}

// New creates an Extractor. runner may be nil to use the host pdftotext;
// without it PDFs are read in-process.
func New(cfg Config, runner CommandRunner, log *zap.Logger) *Extractor {
	exts := cfg.Extensions
	if len(exts) == 0 {
		exts = DefaultExtensions
	}
	normalized := make([]string, 0, len(exts))
	for _, ext := range exts {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		normalized = append(normalized, ext)
	}

	workers := cfg.Workers
	if workers <= 0 {
		workers = 4
	}

	log = logger.WithFields(log)
	return &Extractor{
		extensions: normalized,
		workers:    workers,
		pdf:        newPDFReader(cfg.PDFToText, runner, log),
		logger:     log,
	}
}

// Supported reports whether path has an accepted extension.
func (e *Extractor) Supported(path string) bool {
	return slices.Contains(e.extensions, strings.ToLower(filepath.Ext(path)))
}

// Collect expands directories into the supported files they contain and
// drops unsupported files. Order follows the arguments, then lexical order
// inside each directory.
func (e *Extractor) Collect(paths []string) ([]string, error) {
	var out []string
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, fmt.Errorf("stat %q: %w", p, err)
		}
		if !info.IsDir() {
			if e.Supported(p) {
				out = append(out, p)
			} else {
				e.logger.Warn("skipping unsupported file", zap.String(logger.FieldDocument, p))
			}
			continue
		}

		err = filepath.WalkDir(p, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && e.Supported(path) {
				out = append(out, path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walking %q: %w", p, err)
		}
	}
	return out, nil
}

// Load reads every path and returns one document per path in the same order.
// A file that cannot be read yields a document with empty text, which the
// scoring engine later skips.
func (e *Extractor) Load(ctx context.Context, paths []string) []similarity.Document {
	docs := make([]similarity.Document, len(paths))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)
	for i, path := range paths {
		docs[i].ID = path
		g.Go(func() error {
			text, err := e.read(gCtx, path)
			if err != nil {
				e.logger.Warn("could not extract text",
					zap.String(logger.FieldDocument, path),
					zap.Error(err),
				)
				return nil
			}
			docs[i].Text = text
			return nil
		})
	}
	// Workers never return errors.
	_ = g.Wait()

	return docs
}

func (e *Extractor) read(ctx context.Context, path string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading file: %w", err)
	}

	mtype := mimetype.Detect(data)
	ext := strings.ToLower(filepath.Ext(path))
	e.logger.Debug("detected content type",
		zap.String(logger.FieldDocument, path),
		zap.String("mime", mtype.String()),
	)

	switch {
	case mtype.Is(mimePDF) || ext == ".pdf":
		return e.pdf.text(ctx, path, data)
	case mtype.Is(mimeDOCX) || ext == ".docx":
		return docxText(data)
	case mtype.Is(mimeHTML) || ext == ".html" || ext == ".htm":
		return HTMLText(data)
	case strings.HasPrefix(mtype.String(), "text/"):
		return string(data), nil
	default:
		return "", fmt.Errorf("unsupported content type %s", mtype.String())
	}
}
