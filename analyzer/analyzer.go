// Package analyzer applies a set of requested imports to every JavaScript and
// TypeScript file under a directory.
package analyzer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/dustin/go-humanize"

	"github.com/hannajonsd/addimports/addimports"
	"github.com/hannajonsd/addimports/config"
	"github.com/hannajonsd/addimports/jsast"
	"github.com/hannajonsd/addimports/parser"
	"github.com/hannajonsd/addimports/printer"
)

// ErrNoStatements is returned by Run when nothing was requested.
var ErrNoStatements = errors.New("no statements to add")

// Runner merges requested statements into the files of a directory tree.
type Runner struct {
	extensions  []string
	skipDirs    []string
	maxFileSize uint64
	printer     *printer.Printer
	logger      *slog.Logger
}

// New creates a runner from the batch section of cfg.
func New(cfg *config.Config, p *printer.Printer, logger *slog.Logger) (*Runner, error) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if p == nil {
		p = printer.New(cfg.PrinterConfig())
	}

	maxFileSize, err := cfg.MaxFileSizeBytes()
	if err != nil {
		return nil, err
	}

	extensions := cfg.Batch.Extensions
	if len(extensions) == 0 {
		extensions = parser.SupportedExtensions
	}

	return &Runner{
		extensions:  extensions,
		skipDirs:    cfg.Batch.SkipDirs,
		maxFileSize: maxFileSize,
		printer:     p,
		logger:      logger,
	}, nil
}

// Run processes every matching file under root. Per-file failures are
// recorded in the report; the returned error is reserved for walk failures
// and cancellation. Changed files are saved only when write is set.
func (r *Runner) Run(ctx context.Context, root string, statements []jsast.Statement, write bool) (*Report, error) {
	if len(statements) == 0 {
		return nil, ErrNoStatements
	}

	files, err := findSourceFiles(ctx, root, r.extensions, r.skipDirs)
	if err != nil {
		return nil, fmt.Errorf("failed to find source files: %w", err)
	}
	r.logger.Debug("found source files", "root", root, "count", len(files))

	report := &Report{Root: root}
	for _, path := range files {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return report, ctxErr
		}

		result := r.processFile(ctx, path, statements, write)
		if result.Err != nil {
			result.Error = result.Err.Error()
			r.logger.Warn("failed to process file", "path", path, "error", result.Err)
		}
		report.Files = append(report.Files, result)
	}

	return report, nil
}

// ProcessSource merges statements into source and returns the printed
// program. path selects the grammar by extension.
func (r *Runner) ProcessSource(ctx context.Context, path string, source []byte, statements []jsast.Statement) (string, map[string]string, error) {
	fileParser, err := parser.CreateParser(path)
	if err != nil {
		return "", nil, err
	}
	defer fileParser.Close()

	parseResult, err := fileParser.Parse(ctx, source)
	if err != nil {
		return "", nil, fmt.Errorf("failed to parse file %s: %w", path, err)
	}
	r.logger.Debug("parsed file", "path", path, "language", fileParser.GetLanguage(), "statements", len(parseResult.Program.Body))
	if parseResult.HasErrors {
		r.logger.Debug("source has syntax errors, affected statements kept verbatim", "path", path)
	}

	requested := make([]jsast.Statement, len(statements))
	for i, stmt := range statements {
		requested[i] = jsast.CloneStatement(stmt)
	}

	bindings, err := addimports.AddImportsWithOptions(ctx, parseResult.Program, addimports.Options{
		Logger:  r.logger.With("path", path),
		Printer: r.printer,
	}, requested...)
	if err != nil {
		return "", bindings, err
	}

	return r.printer.String(parseResult.Program), bindings, nil
}

func (r *Runner) processFile(ctx context.Context, path string, statements []jsast.Statement, write bool) FileResult {
	result := FileResult{Path: path}

	info, err := os.Stat(path)
	if err != nil {
		result.Err = err
		return result
	}
	result.Size = info.Size()

	if r.maxFileSize > 0 && uint64(info.Size()) > r.maxFileSize {
		result.Skipped = fmt.Sprintf("larger than %s", humanize.Bytes(r.maxFileSize))
		return result
	}

	source, err := os.ReadFile(path)
	if err != nil {
		result.Err = fmt.Errorf("failed to read file %s: %w", path, err)
		return result
	}

	out, bindings, err := r.ProcessSource(ctx, path, source, statements)
	result.Bindings = bindings
	if err != nil {
		result.Err = err
		return result
	}

	if out == string(source) {
		return result
	}
	result.Changed = true
	result.Before = string(source)
	result.After = out

	if write {
		if err := os.WriteFile(path, []byte(out), info.Mode().Perm()); err != nil {
			result.Err = fmt.Errorf("failed to write file %s: %w", path, err)
			return result
		}
		result.Written = true
	}

	return result
}
