package handler

import (
	"github.com/askdesk/askdesk/internal/core/domain"
	"github.com/askdesk/askdesk/internal/core/ports"
)

type askRequest struct {
	Question string   `json:"question" validate:"required"`
	Sources  []string `json:"sources,omitempty"`
}

type sourceResponse struct {
	Type    string `json:"type"`
	ID      string `json:"id,omitempty"`
	Title   string `json:"title,omitempty"`
	Snippet string `json:"snippet"`
	URL     string `json:"url,omitempty"`
}

type askResponse struct {
	Answer        string           `json:"answer"`
	Sources       []sourceResponse `json:"sources"`
	FailedSources []string         `json:"failed_sources,omitempty"`
}

func toAskResponse(res *ports.AskResult) askResponse {
	sources := make([]sourceResponse, 0, len(res.Sources))
	for _, s := range res.Sources {
		sources = append(sources, toSourceResponse(s))
	}
	return askResponse{
		Answer:        res.Answer,
		Sources:       sources,
		FailedSources: res.FailedSources,
	}
}

func toSourceResponse(s domain.Snippet) sourceResponse {
	return sourceResponse{
		Type:    string(s.Kind),
		ID:      s.ID,
		Title:   s.Title,
		Snippet: s.Text,
		URL:     s.URL,
	}
}
