package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/askdesk/askdesk/internal/api/metrics"
	"github.com/askdesk/askdesk/internal/core/domain"
	"github.com/askdesk/askdesk/internal/core/ports"
)

// NoDataAnswer is returned without calling the LLM when no retriever produced
// any snippet.
const NoDataAnswer = "No relevant information found."

const defaultAskTimeout = 10 * time.Second

// AnswerSynthesizer is the part of Synthesizer the orchestrator depends on.
type AnswerSynthesizer interface {
	Synthesize(ctx context.Context, question string, snippets []domain.Snippet) (string, error)
}

type askService struct {
	registry    ports.RetrieverRegistry
	synthesizer AnswerSynthesizer
	timeout     time.Duration
	log         zerolog.Logger
}

// NewAskService returns the ask orchestrator. timeout bounds a whole request;
// zero selects the default.
func NewAskService(registry ports.RetrieverRegistry, synthesizer AnswerSynthesizer, timeout time.Duration, log zerolog.Logger) ports.AskService {
	if timeout <= 0 {
		timeout = defaultAskTimeout
	}
	return &askService{registry: registry, synthesizer: synthesizer, timeout: timeout, log: log}
}

// Ask validates the question, fans out to the resolved retrievers and
// synthesizes an answer from whatever they returned.
func (s *askService) Ask(ctx context.Context, in ports.AskInput) (*ports.AskResult, error) {
	question := strings.TrimSpace(in.Question)
	if question == "" {
		metrics.AskRequestsTotal.WithLabelValues("bad_input").Inc()
		return nil, domain.ErrInvalidQuestion
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	retrievers := s.registry.Resolve(in.Sources)
	snippets, failed := s.retrieveAll(ctx, retrievers, question)

	if len(snippets) == 0 {
		metrics.AskRequestsTotal.WithLabelValues("no_data").Inc()
		s.log.Info().
			Str("subject", in.Subject).
			Int("retrievers", len(retrievers)).
			Strs("failed_sources", failed).
			Msg("no snippets retrieved, skipping synthesis")
		return &ports.AskResult{Answer: NoDataAnswer, Sources: []domain.Snippet{}, FailedSources: failed}, nil
	}

	answer, err := s.synthesizer.Synthesize(ctx, question, snippets)
	if err != nil {
		metrics.AskRequestsTotal.WithLabelValues("synthesis_failed").Inc()
		// Timeouts and completer faults alike: no answer can be produced.
		if !errors.Is(err, domain.ErrUpstreamUnavailable) {
			err = fmt.Errorf("%w: %w", domain.ErrUpstreamUnavailable, err)
		}
		return nil, err
	}

	metrics.AskRequestsTotal.WithLabelValues("answered").Inc()
	s.log.Info().
		Str("subject", in.Subject).
		Int("retrievers", len(retrievers)).
		Int("snippets", len(snippets)).
		Strs("failed_sources", failed).
		Msg("question answered")

	return &ports.AskResult{Answer: answer, Sources: snippets, FailedSources: failed}, nil
}

// retrieveAll queries every retriever concurrently and reassembles results in
// resolution order. A failing retriever contributes nothing and is reported
// by name; it never cancels its siblings.
func (s *askService) retrieveAll(ctx context.Context, retrievers []ports.NamedRetriever, query string) ([]domain.Snippet, []string) {
	results := make([][]domain.Snippet, len(retrievers))
	errs := make([]error, len(retrievers))

	var g errgroup.Group
	for i, nr := range retrievers {
		g.Go(func() error {
			start := time.Now()
			res, err := nr.Retriever.Retrieve(ctx, query)
			metrics.RetrievalDuration.WithLabelValues(nr.Name).Observe(time.Since(start).Seconds())
			if err != nil {
				errs[i] = err
				return nil
			}
			results[i] = res
			return nil
		})
	}
	_ = g.Wait()

	var (
		snippets = make([]domain.Snippet, 0)
		failed   []string
	)
	for i, nr := range retrievers {
		if errs[i] != nil {
			metrics.RetrievalErrorsTotal.WithLabelValues(nr.Name).Inc()
			s.log.Warn().Err(errs[i]).Str("retriever", nr.Name).Msg("retrieval failed, dropping backend")
			failed = append(failed, nr.Name)
			continue
		}
		metrics.RetrievedSnippetsTotal.WithLabelValues(nr.Name).Add(float64(len(results[i])))
		snippets = append(snippets, results[i]...)
	}
	return snippets, failed
}
