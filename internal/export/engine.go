// Package export writes record sets to CSV or spreadsheet files.
package export

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/faizmokh/sugarlog/internal/files"
	"github.com/faizmokh/sugarlog/internal/record"
)

// Options controls one export.
type Options struct {
	Format Format
	Path   string
	// IncludeStatistics adds a statistics sheet. CSV output ignores it.
	IncludeStatistics bool
}

// Result describes a written export.
type Result struct {
	Path   string
	Format Format
	Rows   int
}

// Engine renders and writes exports.
type Engine struct {
	logger *zap.Logger
	sheets SheetWriter
}

// NewEngine returns an engine with the excelize spreadsheet backend.
func NewEngine(logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{logger: logger, sheets: Workbook{}}
}

// Export writes one row per record to opts.Path, replacing any existing
// file. The records are copied before rendering, so later changes by the
// caller never leak into the output.
func (e *Engine) Export(ctx context.Context, records []record.Record, opts Options) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	if opts.Path == "" {
		return Result{}, ErrMissingPath
	}

	snapshot := make([]record.Record, len(records))
	for i, r := range records {
		snapshot[i] = r.Clone()
	}

	var (
		data []byte
		err  error
	)
	switch opts.Format {
	case FormatCSV:
		data, err = renderCSV(snapshot)
	case FormatXLSX:
		if e.sheets == nil {
			return Result{}, &DependencyError{
				Backend: "spreadsheet",
				Hint:    "export to csv instead, or build with the excelize backend enabled",
			}
		}
		data, err = e.sheets.Render(snapshot, opts.IncludeStatistics)
	default:
		return Result{}, fmt.Errorf("%w: %q", ErrUnknownFormat, opts.Format)
	}
	if err != nil {
		return Result{}, fmt.Errorf("render %s: %w", opts.Format, err)
	}

	if err := files.WriteFileAtomic(opts.Path, data); err != nil {
		return Result{}, err
	}

	res := Result{Path: opts.Path, Format: opts.Format, Rows: len(snapshot)}
	e.logger.Info("exported records",
		zap.String("format", string(res.Format)),
		zap.Int("rows", res.Rows),
		zap.String("path", res.Path),
		zap.Bool("statistics", opts.IncludeStatistics),
	)
	return res, nil
}
