// Package report writes biographical lineage reports: one section per
// individual on the path from an ancestor to a descendant.
package report

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/JeremyMcCormick/genaialogy/pkg/familytree"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency bounds in-flight biography requests.
const DefaultConcurrency = 4

// Biographer produces the biography text for one individual.
type Biographer interface {
	Biography(ctx context.Context, info *familytree.Info) (string, error)
}

// Writer generates lineage reports from a family tree.
type Writer struct {
	tree        *familytree.Tree
	biographer  Biographer
	concurrency int
	logger      *zap.Logger
}

// Option configures a Writer.
type Option func(*Writer)

// WithConcurrency sets how many biographies are requested at once.
// Values below 1 are ignored.
func WithConcurrency(n int) Option {
	return func(w *Writer) {
		if n >= 1 {
			w.concurrency = n
		}
	}
}

// WithLogger sets the logger for progress messages.
func WithLogger(logger *zap.Logger) Option {
	return func(w *Writer) {
		if logger != nil {
			w.logger = logger
		}
	}
}

// New creates a report writer.
func New(tree *familytree.Tree, biographer Biographer, opts ...Option) *Writer {
	w := &Writer{
		tree:        tree,
		biographer:  biographer,
		concurrency: DefaultConcurrency,
		logger:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Header returns the report's first line.
func Header(ancestorName, descendantName string) string {
	return fmt.Sprintf("Biographical Lineage Report for %s from %s", descendantName, ancestorName)
}

// WriteLineage finds the path from ancestor to descendant and writes a
// report with one biography per individual, ancestor first.
//
// Biographies are requested concurrently but the report is only written
// once all of them succeed, so a failure leaves out untouched. Lookup
// failures are the familytree NotFoundError and PathNotFoundError.
func (w *Writer) WriteLineage(ctx context.Context, out io.Writer, ancestorName, descendantName string) error {
	path, err := w.tree.Lineage(ancestorName, descendantName)
	if err != nil {
		return err
	}

	bios, err := w.biographies(ctx, path)
	if err != nil {
		return err
	}

	bw := bufio.NewWriter(out)
	fmt.Fprintf(bw, "%s\n\n", Header(ancestorName, descendantName))
	for i, ind := range path {
		writeSection(bw, ind.DisplayName(), bios[i])
	}
	return bw.Flush()
}

// biographies fetches one biography per individual, preserving path order.
func (w *Writer) biographies(ctx context.Context, path familytree.Path) ([]string, error) {
	bios := make([]string, len(path))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(w.concurrency)

	for i, ind := range path {
		i, ind := i, ind
		g.Go(func() error {
			name := ind.DisplayName()
			w.logger.Debug("Generating biography", zap.String("name", name), zap.Int("position", i))

			bio, err := w.biographer.Biography(gctx, w.tree.AggregateInfo(ind))
			if err != nil {
				return fmt.Errorf("failed to generate biography for %s: %w", name, err)
			}
			bios[i] = bio
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	w.logger.Debug("Biographies complete", zap.Int("count", len(bios)))
	return bios, nil
}

// writeSection writes a name, a dash underline of the same width, a blank
// line, the biography and a trailing blank line.
func writeSection(out io.Writer, name, bio string) {
	fmt.Fprintf(out, "%s\n%s\n\n%s\n\n", name, strings.Repeat("-", utf8.RuneCountInString(name)), bio)
}
