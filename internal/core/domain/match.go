package domain

// MatchKind is the resume entity type a match refers to.
type MatchKind string

const (
	MatchSkill      MatchKind = "skill"
	MatchExperience MatchKind = "experience"
	MatchProject    MatchKind = "project"
)

// Match is a single resume entity found relevant to a job description.
// Which identifying fields are set depends on Kind:
//   - skill:      Name
//   - experience: ID, Title, Employer
//   - project:    ID, Name
type Match struct {
	Kind     MatchKind
	ID       string
	Name     string
	Title    string
	Employer string
	Reason   string
	Score    int

	Explanation         string
	ExplanationDegraded bool
}

// Label is the name or title the match is known by.
func (m Match) Label() string {
	if m.Kind == MatchExperience {
		return m.Title
	}
	return m.Name
}
