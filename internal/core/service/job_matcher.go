package service

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/askdesk/askdesk/internal/api/metrics"
	"github.com/askdesk/askdesk/internal/core/domain"
	"github.com/askdesk/askdesk/internal/core/ports"
)

// recentExperienceWindow is how long after an experience ends it still
// earns the higher score.
const recentExperienceWindow = 3 * 365 * 24 * time.Hour

const (
	baseSkillScore        = 2
	recentExperienceScore = 3
	olderExperienceScore  = 2
	projectScore          = 2
)

type jobMatcher struct {
	source    ports.ResumeSource
	explainer ports.Explainer
	runner    ports.TaskRunner
	now       func() time.Time
	log       zerolog.Logger
}

func NewJobMatcher(source ports.ResumeSource, explainer ports.Explainer, runner ports.TaskRunner, log zerolog.Logger) ports.JobMatcher {
	return &jobMatcher{
		source:    source,
		explainer: explainer,
		runner:    runner,
		now:       time.Now,
		log:       log,
	}
}

// Intake matches the resume dataset against jobDescription and attaches an
// explanation to every match. Explanation failures degrade the match, they
// never fail the request.
func (m *jobMatcher) Intake(ctx context.Context, jobDescription string) ([]domain.Match, error) {
	if strings.TrimSpace(jobDescription) == "" {
		return nil, domain.ErrInvalidJobDescription
	}

	ds, err := m.source.Dataset()
	if err != nil {
		return nil, fmt.Errorf("job intake: %w", err)
	}

	matches := FindMatches(ds, jobDescription, m.now())
	for _, mt := range matches {
		metrics.JobMatchesTotal.WithLabelValues(string(mt.Kind)).Inc()
	}

	m.explainAll(ctx, jobDescription, matches)

	m.log.Info().Int("matches", len(matches)).Msg("job description matched")
	return matches, nil
}

func (m *jobMatcher) explainAll(ctx context.Context, jobDescription string, matches []domain.Match) {
	for i := range matches {
		matches[i].ExplanationDegraded = true
	}

	m.runner.Run(ctx, len(matches), func(ctx context.Context, i int) {
		explanation, err := m.explainer.Explain(ctx, jobDescription, matches[i])
		if err != nil {
			metrics.ExplanationFailuresTotal.Inc()
			m.log.Warn().Err(err).
				Str("kind", string(matches[i].Kind)).
				Str("entity", matches[i].Label()).
				Msg("explanation failed, returning degraded match")
			return
		}
		matches[i].Explanation = explanation
		matches[i].ExplanationDegraded = false
	})
}

// FindMatches scans skills, experiences and projects (in that order) for
// case-insensitive keyword containment in jobDescription. Each entity matches
// at most once. The result is sorted by descending score; ties keep
// encounter order.
func FindMatches(ds *domain.ResumeDataset, jobDescription string, now time.Time) []domain.Match {
	jd := strings.ToLower(jobDescription)
	seen := make(map[string]struct{})
	var matches []domain.Match

	add := func(mt domain.Match) {
		key := string(mt.Kind) + ":" + strings.ToLower(mt.Label())
		if _, dup := seen[key]; dup {
			return
		}
		seen[key] = struct{}{}
		matches = append(matches, mt)
	}

	for _, sk := range ds.Skills {
		if !containsKeyword(jd, sk.Name) {
			continue
		}
		add(domain.Match{
			Kind:   domain.MatchSkill,
			Name:   sk.Name,
			Reason: fmt.Sprintf("Skill '%s' found in job description", sk.Name),
			Score:  baseSkillScore + len(sk.Evidence),
		})
	}

	for _, exp := range ds.Experiences {
		kw, ok := firstKeyword(jd, exp.Skills)
		if !ok {
			continue
		}
		add(domain.Match{
			Kind:     domain.MatchExperience,
			ID:       exp.ID,
			Title:    exp.Title,
			Employer: exp.Employer,
			Reason:   fmt.Sprintf("Experience uses '%s', mentioned in job description", kw),
			Score:    experienceScore(exp, now),
		})
	}

	for _, p := range ds.Projects {
		kw, ok := firstKeyword(jd, p.TechStack)
		if !ok {
			continue
		}
		add(domain.Match{
			Kind:   domain.MatchProject,
			ID:     p.ID,
			Name:   p.Name,
			Reason: fmt.Sprintf("Project uses '%s', mentioned in job description", kw),
			Score:  projectScore,
		})
	}

	slices.SortStableFunc(matches, func(a, b domain.Match) int {
		return b.Score - a.Score
	})
	return matches
}

func experienceScore(exp domain.Experience, now time.Time) int {
	if exp.Ongoing() {
		return recentExperienceScore
	}
	ended, ok := exp.Ended()
	if !ok {
		// unparseable end date: no evidence the role is recent
		return olderExperienceScore
	}
	if now.Sub(ended) < recentExperienceWindow {
		return recentExperienceScore
	}
	return olderExperienceScore
}

func containsKeyword(lowerText, keyword string) bool {
	kw := strings.ToLower(strings.TrimSpace(keyword))
	return kw != "" && strings.Contains(lowerText, kw)
}

func firstKeyword(lowerText string, keywords []string) (string, bool) {
	for _, kw := range keywords {
		if containsKeyword(lowerText, kw) {
			return kw, true
		}
	}
	return "", false
}
