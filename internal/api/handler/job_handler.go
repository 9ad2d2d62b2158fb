package handler

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/askdesk/askdesk/internal/core/domain"
	"github.com/askdesk/askdesk/internal/core/ports"
)

type JobHandler struct {
	matcher ports.JobMatcher
	resumes ports.ResumeSource
}

func NewJobHandler(matcher ports.JobMatcher, resumes ports.ResumeSource) *JobHandler {
	return &JobHandler{matcher: matcher, resumes: resumes}
}

type jobIntakeRequest struct {
	JobDescription string `json:"job_description" validate:"required"`
}

type matchResponse struct {
	Type                string `json:"type"`
	ID                  string `json:"id,omitempty"`
	Name                string `json:"name,omitempty"`
	Title               string `json:"title,omitempty"`
	Employer            string `json:"employer,omitempty"`
	Reason              string `json:"reason"`
	Score               int    `json:"score"`
	Explanation         string `json:"explanation"`
	ExplanationDegraded bool   `json:"explanation_degraded"`
}

type jobIntakeResponse struct {
	Matches        []matchResponse `json:"matches"`
	JobDescription string          `json:"job_description"`
}

// Intake matches the resume dataset against a job description.
//
// @Summary      Match resume against a job description
// @Tags         job
// @Accept       json
// @Produce      json
// @Param        body  body      jobIntakeRequest  true  "Job description"
// @Success      200   {object}  jobIntakeResponse
// @Failure      422   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /job/intake [post]
func (h *JobHandler) Intake(c echo.Context) error {
	var req jobIntakeRequest
	if err := c.Bind(&req); err != nil {
		return domain.ErrInvalidPayload
	}
	if err := c.Validate(&req); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidJobDescription, err)
	}

	matches, err := h.matcher.Intake(c.Request().Context(), req.JobDescription)
	if err != nil {
		return err
	}

	out := make([]matchResponse, 0, len(matches))
	for _, m := range matches {
		out = append(out, matchResponse{
			Type:                string(m.Kind),
			ID:                  m.ID,
			Name:                m.Name,
			Title:               m.Title,
			Employer:            m.Employer,
			Reason:              m.Reason,
			Score:               m.Score,
			Explanation:         m.Explanation,
			ExplanationDegraded: m.ExplanationDegraded,
		})
	}

	return c.JSON(http.StatusOK, jobIntakeResponse{Matches: out, JobDescription: req.JobDescription})
}

// ResumeSource returns the loaded resume dataset.
//
// @Summary      Resume dataset
// @Tags         job
// @Produce      json
// @Success      200  {object}  domain.ResumeDataset
// @Failure      500  {object}  map[string]string
// @Router       /resume/source [get]
func (h *JobHandler) ResumeSource(c echo.Context) error {
	ds, err := h.resumes.Dataset()
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ds)
}
