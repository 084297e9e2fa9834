package extract

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"

	"github.com/ledongthuc/pdf"
	"go.uber.org/zap"

	"github.com/spigell/resume-screener/internal/logger"
)

const defaultPDFToText = "pdftotext"

// ErrPDFToolNotFound is returned by a CommandRunner when the pdftotext binary
// is not installed. PDFs are then read with the built-in parser.
var ErrPDFToolNotFound = errors.New("pdftotext not found in PATH")

// CommandRunner runs an external command and returns its stdout.
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

type execRunner struct{}

func (execRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	if _, err := exec.LookPath(name); err != nil {
		return nil, ErrPDFToolNotFound
	}
	return exec.CommandContext(ctx, name, args...).Output()
}

type pdfReader struct {
	tool   string
	runner CommandRunner
	logger *zap.Logger
}

func newPDFReader(tool string, runner CommandRunner, log *zap.Logger) *pdfReader {
	if strings.TrimSpace(tool) == "" {
		tool = defaultPDFToText
	}
	if runner == nil {
		runner = execRunner{}
	}
	return &pdfReader{tool: tool, runner: runner, logger: log}
}

// text prefers pdftotext for its layout handling and falls back to the
// in-process parser when the tool is missing.
func (r *pdfReader) text(ctx context.Context, path string, data []byte) (string, error) {
	out, err := r.runner.Run(ctx, r.tool, "-layout", "-enc", "UTF-8", path, "-")
	if err == nil {
		return strings.TrimSpace(string(out)), nil
	}
	if !errors.Is(err, ErrPDFToolNotFound) {
		return "", fmt.Errorf("pdftotext failed: %w", err)
	}

	r.logger.Debug("pdftotext is not installed, using the built-in pdf parser",
		zap.String(logger.FieldDocument, path),
	)
	return nativePDFText(data)
}

func nativePDFText(data []byte) (text string, err error) {
	// The parser panics on some malformed cross-reference tables.
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("parsing pdf: %v", rec)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("parsing pdf: %w", err)
	}
	plain, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("reading pdf text: %w", err)
	}

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return "", fmt.Errorf("reading pdf text: %w", err)
	}
	return strings.TrimSpace(buf.String()), nil
}
