package domain

import (
	"strings"
	"time"
)

// Experience is a single role held by the candidate.
type Experience struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Employer    string   `json:"employer"`
	StartDate   string   `json:"start_date"` // YYYY-MM
	EndDate     string   `json:"end_date"`   // YYYY-MM or "present"
	Description string   `json:"description"`
	Skills      []string `json:"skills"`
	Projects    []string `json:"projects"`
	Outcomes    []string `json:"outcomes"`
}

// Ongoing reports whether the role has no end date yet.
func (e Experience) Ongoing() bool {
	end := strings.TrimSpace(e.EndDate)
	return end == "" || strings.EqualFold(end, "present") || strings.EqualFold(end, "current")
}

// Ended returns the first day of the end month, or ok=false when the role is
// ongoing or the date cannot be parsed.
func (e Experience) Ended() (t time.Time, ok bool) {
	if e.Ongoing() {
		return time.Time{}, false
	}
	t, err := time.Parse("2006-01", strings.TrimSpace(e.EndDate))
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

type Project struct {
	ID                string   `json:"id"`
	Name              string   `json:"name"`
	Summary           string   `json:"summary"`
	TechStack         []string `json:"tech_stack"`
	Outcomes          []string `json:"outcomes"`
	RelatedExperience string   `json:"related_experience,omitempty"`
}

type Skill struct {
	Name        string   `json:"name"`
	Type        string   `json:"type"` // language, framework, tool, ...
	Proficiency string   `json:"proficiency"`
	Evidence    []string `json:"evidence"` // experience/project IDs
}

type Certification struct {
	Name      string `json:"name"`
	Authority string `json:"authority"`
	Date      string `json:"date"`
}

type Education struct {
	Degree      string `json:"degree"`
	Institution string `json:"institution"`
	Date        string `json:"date"`
}

// ResumeDataset is the static seed loaded once at startup and never mutated.
type ResumeDataset struct {
	Experiences    []Experience    `json:"experiences"`
	Projects       []Project       `json:"projects"`
	Skills         []Skill         `json:"skills"`
	Certifications []Certification `json:"certifications"`
	Education      []Education     `json:"education"`
}
