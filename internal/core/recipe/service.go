package recipe

import (
	"context"
	"errors"
	"strings"

	"ranna-banna/internal/core/ai/provider"
	"ranna-banna/internal/pkg/common"

	"go.uber.org/zap"
)

// Options model selection for the recipe service. Empty values defer to the generators.
type Options struct {
	TextModel  string
	ImageModel string
}

// Service recipe search and translation
type Service struct {
	fetcher    *Fetcher
	enricher   *Enricher
	translator *Translator
	tracker    *Tracker
}

// NewService creates the recipe service
func NewService(text provider.TextGenerator, images provider.ImageGenerator, encoder ImageEncoder, tracker *Tracker, opts Options) *Service {
	if tracker == nil {
		tracker = NewTracker()
	}
	return &Service{
		fetcher:    NewFetcher(text, opts.TextModel),
		enricher:   NewEnricher(images, encoder, opts.ImageModel),
		translator: NewTranslator(text, opts.TextModel),
		tracker:    tracker,
	}
}

// Search runs query through fetch, enrichment and filtering. When session is set, a newer
// search for the same session supersedes this one and it fails with ErrSuperseded.
func (s *Service) Search(ctx context.Context, session, query string) ([]Recipe, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, common.ErrEmptyQuery
	}

	ctx, ticket := s.tracker.Begin(ctx, session)
	defer ticket.Done()

	raw, err := s.fetcher.Fetch(ctx, query)
	if err != nil {
		return nil, s.abort(ctx, ticket, query, err)
	}
	if len(raw) == 0 {
		return []Recipe{}, nil
	}

	enriched := s.enricher.Enrich(ctx, raw)
	if !ticket.Current() || ctx.Err() != nil {
		return nil, s.abort(ctx, ticket, query, ctx.Err())
	}

	recipes, err := FilterEnriched(enriched)
	if err != nil {
		common.LogError("All image generations failed",
			zap.String("query", query),
			zap.Int("raw_count", len(raw)),
		)
		return nil, err
	}

	common.LogInfo("Finished generating all recipe assets",
		zap.String("query", query),
		zap.Int("raw_count", len(raw)),
		zap.Int("recipe_count", len(recipes)),
	)
	return recipes, nil
}

// abort maps a failed or interrupted search onto the error reported to the caller
func (s *Service) abort(ctx context.Context, ticket *Ticket, query string, err error) error {
	if !ticket.Current() {
		common.LogInfo("Search superseded",
			zap.String("query", query),
			zap.Uint64("seq", ticket.Seq()),
		)
		return common.ErrSuperseded
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		if errors.Is(ctxErr, context.DeadlineExceeded) {
			return common.ErrGatewayTimeout.Wrap(ctxErr)
		}
		return common.ErrClientClosed.Wrap(ctxErr)
	}
	return err
}

// Translate returns a translation overlay for r
func (s *Service) Translate(ctx context.Context, r Recipe, lang string) (*TranslatedRecipe, error) {
	return s.translator.Translate(ctx, r, lang)
}
