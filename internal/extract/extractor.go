// Package extract holds the side-effect-free field extractors that turn a
// normalized page into company signals.
package extract

import (
	"context"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/d-kavinraja/caprae-ai-readiness-leadgen-challenge/internal/markup"
)

// Signals is the raw output of every extractor for one document.
type Signals struct {
	Name         string
	Description  string
	Industry     string
	Emails       []string
	Phones       []string
	SocialLinks  map[string]string
	Technologies []string
	TeamSize     string
	FundingStage string
}

// Extractor runs all field extractors over a document in parallel.
type Extractor struct {
	region string
	logger *zap.Logger
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithLogger overrides the global logger.
func WithLogger(logger *zap.Logger) Option {
	return func(e *Extractor) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// New builds an Extractor that normalises phone numbers for region.
func New(region string, opts ...Option) *Extractor {
	if region == "" {
		region = DefaultPhoneRegion
	}
	e := &Extractor{region: region, logger: zap.L()}
	for _, opt := range opts {
		opt(e)
	}
	e.logger = e.logger.Named("extract")
	return e
}

// Run executes every extractor concurrently and joins them. Each task writes a
// distinct field so no locking is needed. A panicking extractor leaves its field
// at the zero value, which the assembler replaces with the field default.
func (e *Extractor) Run(ctx context.Context, doc *markup.Document) (Signals, error) {
	if doc == nil {
		return Signals{}, eris.New("extract: nil document")
	}

	var s Signals
	g, _ := errgroup.WithContext(ctx)

	e.spawn(g, "name", func() { s.Name = Name(doc) })
	e.spawn(g, "description", func() { s.Description = Description(doc) })
	e.spawn(g, "industry", func() { s.Industry = Industry(doc.Text) })
	e.spawn(g, "emails", func() { s.Emails = Emails(doc) })
	e.spawn(g, "phones", func() { s.Phones = Phones(doc, e.region) })
	e.spawn(g, "social", func() { s.SocialLinks = SocialLinks(doc) })
	e.spawn(g, "technologies", func() { s.Technologies = Technologies(doc) })
	e.spawn(g, "team_size", func() { s.TeamSize = TeamSize(doc.Text) })
	e.spawn(g, "funding", func() { s.FundingStage = FundingStage(doc.Text) })

	if err := g.Wait(); err != nil {
		return Signals{}, err
	}
	return s, ctx.Err()
}

func (e *Extractor) spawn(g *errgroup.Group, name string, fn func()) {
	g.Go(func() error {
		defer func() {
			if r := recover(); r != nil {
				e.logger.Warn("extractor panicked", zap.String("extractor", name), zap.Any("panic", r))
			}
		}()
		fn()
		return nil
	})
}
