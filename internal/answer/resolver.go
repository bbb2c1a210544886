// Package answer decides whether a language-model answer can be returned as-is
// or must be replaced by an answer derived from a live web search.
package answer

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"quickanswer/internal/gateway"
	"quickanswer/internal/models"
)

// Sentinel answers substituted when a remote source fails.
const (
	SentinelNoAnswer        = "Could not process the question."
	SentinelSearchStatus    = "Sorry, I couldn't retrieve information at the moment."
	SentinelSearchTransport = "Error retrieving real-time information."
)

const (
	defaultModelTimeout  = 30 * time.Second
	defaultSearchTimeout = 10 * time.Second
)

// ModelGateway answers a question with generated text.
type ModelGateway interface {
	Ask(ctx context.Context, question string) (string, error)
}

// SearchGateway returns ranked text snippets for a query.
type SearchGateway interface {
	Search(ctx context.Context, query string) ([]string, error)
}

// Result is the terminal output of one resolution.
type Result struct {
	Answer  string
	Outcome string
	Elapsed time.Duration
}

// Answered reports whether a source produced an answer, as opposed to the
// no-answer sentinel substituted after an empty search.
func (r Result) Answered() bool {
	return r.Answer != "" && r.Outcome != models.OutcomeSearchEmpty
}

// Resolver orchestrates the model call, the fallback decision and the search fallback.
type Resolver struct {
	model         ModelGateway
	search        SearchGateway
	indicators    IndicatorSet
	keywords      KeywordSet
	modelTimeout  time.Duration
	searchTimeout time.Duration
	logger        *zap.Logger
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithIndicators replaces the default indicator set.
func WithIndicators(set IndicatorSet) Option {
	return func(r *Resolver) { r.indicators = set }
}

// WithKeywords replaces the default keyword set.
func WithKeywords(set KeywordSet) Option {
	return func(r *Resolver) { r.keywords = set }
}

// WithTimeouts bounds each outbound call. Non-positive values keep the defaults.
func WithTimeouts(model, search time.Duration) Option {
	return func(r *Resolver) {
		if model > 0 {
			r.modelTimeout = model
		}
		if search > 0 {
			r.searchTimeout = search
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(r *Resolver) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// NewResolver creates a resolver over the two gateways.
func NewResolver(model ModelGateway, search SearchGateway, opts ...Option) *Resolver {
	r := &Resolver{
		model:         model,
		search:        search,
		indicators:    DefaultIndicators(),
		keywords:      DefaultKeywords(),
		modelTimeout:  defaultModelTimeout,
		searchTimeout: defaultSearchTimeout,
		logger:        zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// RequiresFallback reports whether a model answer must be replaced by a search answer.
func (r *Resolver) RequiresFallback(answer string) bool {
	return r.indicators.RequiresFallback(answer)
}

// Resolve produces exactly one non-empty answer for question. Remote failures
// are absorbed into sentinel answers and never returned as errors. Caller
// cancellation is not propagated; each outbound call has its own timeout.
func (r *Resolver) Resolve(ctx context.Context, question string) Result {
	start := time.Now()
	ctx = context.WithoutCancel(ctx)

	modelAnswer, err := r.askModel(ctx, question)
	if err != nil {
		r.logger.Warn("model gateway failed", zap.Error(err))
	}

	var result Result
	switch {
	case modelAnswer == "":
		r.logger.Info("no model answer, falling back to search")
		result = r.fallback(ctx, question)
	case r.RequiresFallback(modelAnswer):
		r.logger.Info("model answer lacks real-time knowledge, falling back to search")
		result = r.fallback(ctx, question)
	default:
		result = Result{Answer: modelAnswer, Outcome: models.OutcomeModel}
	}

	result.Elapsed = time.Since(start)
	r.logger.Debug("question resolved",
		zap.String("outcome", result.Outcome),
		zap.Duration("elapsed", result.Elapsed),
	)
	return result
}

func (r *Resolver) askModel(ctx context.Context, question string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, r.modelTimeout)
	defer cancel()
	return r.model.Ask(ctx, question)
}

func (r *Resolver) fallback(ctx context.Context, question string) Result {
	ctx, cancel := context.WithTimeout(ctx, r.searchTimeout)
	defer cancel()

	snippets, err := r.search.Search(ctx, question)
	if err != nil {
		var statusErr *gateway.StatusError
		if errors.As(err, &statusErr) {
			r.logger.Warn("search gateway returned error status",
				zap.Int("status", statusErr.Code),
				zap.String("body", statusErr.Body),
			)
			return Result{Answer: SentinelSearchStatus, Outcome: models.OutcomeSearchStatusError}
		}
		r.logger.Warn("search gateway request failed", zap.Error(err))
		return Result{Answer: SentinelSearchTransport, Outcome: models.OutcomeSearchTransportError}
	}

	reduced := r.keywords.RankAndReduce(snippets)
	if reduced == "" {
		return Result{Answer: SentinelNoAnswer, Outcome: models.OutcomeSearchEmpty}
	}
	return Result{Answer: reduced, Outcome: models.OutcomeSearch}
}
