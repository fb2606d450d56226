package extract

import (
	"context"
	"log/slog"
	"net/url"

	"golang.org/x/sync/errgroup"

	"github.com/nao1215/pagescan/internal/dom"
	"github.com/nao1215/pagescan/internal/model"
)

// Engine extracts contact and media signals from HTML pages.
// An Engine holds no per-page state and is safe for concurrent use.
type Engine struct {
	logger     *slog.Logger
	concurrent bool
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger used for debug output.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithConcurrentSteps runs the extraction steps in parallel.
// The result is identical to a sequential run.
func WithConcurrentSteps(concurrent bool) Option {
	return func(e *Engine) {
		e.concurrent = concurrent
	}
}

// New creates an Engine.
func New(opts ...Option) *Engine {
	e := &Engine{}
	for _, opt := range opts {
		opt(e)
	}
	if e.logger == nil {
		e.logger = slog.Default()
	}
	return e
}

// Extract decodes body, parses it as HTML and runs every extraction step.
//
// baseURL is the final URL of the page after redirects; relative links are
// resolved against it. contentType is the raw Content-Type header and is
// only consulted for a charset parameter.
//
// Extract always returns a non-nil result. When no document tree can be
// built the result has empty collections.
func (e *Engine) Extract(ctx context.Context, body []byte, baseURL, contentType string) *model.ExtractionResult {
	result := model.NewExtractionResult()

	text := decode(body, contentType)
	doc, err := dom.Parse(text)
	if err != nil {
		e.logger.Warn("failed to build document tree", "url", baseURL, "error", err)
		return result
	}

	base, err := url.Parse(baseURL)
	if err != nil {
		e.logger.Debug("invalid base URL, links stay relative", "url", baseURL, "error", err)
		base = &url.URL{}
	}

	p := &page{text: text, tree: doc, base: base}

	if e.concurrent {
		e.runConcurrent(ctx, p, result)
	} else {
		e.runSequential(ctx, p, result)
	}

	return result
}

func (e *Engine) runSequential(ctx context.Context, p *page, result *model.ExtractionResult) {
	for _, s := range steps {
		if err := ctx.Err(); err != nil {
			e.logger.Debug("extraction cancelled", "step", s.name, "error", err)
			return
		}
		s.run(p, result)
		e.logger.Debug("extraction step completed", "step", s.name)
	}
}

func (e *Engine) runConcurrent(ctx context.Context, p *page, result *model.ExtractionResult) {
	g, gctx := errgroup.WithContext(ctx)
	for _, s := range steps {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			s.run(p, result)
			e.logger.Debug("extraction step completed", "step", s.name)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		e.logger.Debug("extraction cancelled", "error", err)
	}
}
