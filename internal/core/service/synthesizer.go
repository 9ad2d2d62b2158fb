package service

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/askdesk/askdesk/internal/api/metrics"
	"github.com/askdesk/askdesk/internal/core/domain"
	"github.com/askdesk/askdesk/internal/core/ports"
)

//go:embed explain_prompt.txt
var explainTemplate string

// Synthesizer turns retrieved context into prompts for the completion
// collaborator.
type Synthesizer struct {
	completer ports.Completer
}

func NewSynthesizer(completer ports.Completer) *Synthesizer {
	return &Synthesizer{completer: completer}
}

// Synthesize answers question using snippets as context, in the order given.
func (s *Synthesizer) Synthesize(ctx context.Context, question string, snippets []domain.Snippet) (string, error) {
	start := time.Now()
	answer, err := s.complete(ctx, BuildAnswerPrompt(question, snippets))
	metrics.SynthesisDuration.WithLabelValues(outcome(err)).Observe(time.Since(start).Seconds())
	if err != nil {
		return "", fmt.Errorf("synthesize answer: %w", err)
	}
	return answer, nil
}

// Explain asks for a short justification of why match fits jobDescription.
func (s *Synthesizer) Explain(ctx context.Context, jobDescription string, match domain.Match) (string, error) {
	explanation, err := s.complete(ctx, BuildExplainPrompt(jobDescription, match))
	if err != nil {
		return "", fmt.Errorf("explain %s %q: %w", match.Kind, match.Label(), err)
	}
	return explanation, nil
}

func (s *Synthesizer) complete(ctx context.Context, prompt string) (string, error) {
	out, err := s.completer.Complete(ctx, prompt)
	if err != nil {
		if errors.Is(err, domain.ErrUpstreamUnavailable) {
			return "", err
		}
		return "", fmt.Errorf("%w: %v", domain.ErrUpstreamUnavailable, err)
	}
	return strings.TrimSpace(out), nil
}

// BuildAnswerPrompt concatenates snippet texts, newline-joined, followed by
// the question.
func BuildAnswerPrompt(question string, snippets []domain.Snippet) string {
	texts := make([]string, len(snippets))
	for i, sn := range snippets {
		texts[i] = sn.Text
	}
	return fmt.Sprintf("Context:\n%s\n\nQuestion: %s", strings.Join(texts, "\n"), question)
}

func BuildExplainPrompt(jobDescription string, match domain.Match) string {
	r := strings.NewReplacer(
		"{{JOB_DESCRIPTION}}", strings.TrimSpace(jobDescription),
		"{{KIND}}", string(match.Kind),
		"{{MATCH_SUMMARY}}", matchSummary(match),
	)
	return r.Replace(explainTemplate)
}

func matchSummary(m domain.Match) string {
	var b strings.Builder
	switch m.Kind {
	case domain.MatchSkill:
		fmt.Fprintf(&b, "- skill: %s\n", m.Name)
	case domain.MatchExperience:
		fmt.Fprintf(&b, "- title: %s\n- employer: %s\n", m.Title, m.Employer)
	case domain.MatchProject:
		fmt.Fprintf(&b, "- project: %s\n", m.Name)
	}
	fmt.Fprintf(&b, "- reason: %s", m.Reason)
	return b.String()
}

func outcome(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
