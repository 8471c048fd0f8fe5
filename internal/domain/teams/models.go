package teams

import "strings"

// Team represents the normalized team shape for use inside games.
type Team struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	FullName     string `json:"fullName"`
	Abbreviation string `json:"abbreviation"`
	City         string `json:"city"`
	League       string `json:"league"`
	Division     string `json:"division"`
}

// Display returns the best human-readable label for the team.
func (t Team) Display() string {
	switch {
	case t.FullName != "":
		return t.FullName
	case t.Name != "":
		return t.Name
	default:
		return t.Abbreviation
	}
}

// Matches reports whether code refers to this team by abbreviation or statsapi id.
func (t Team) Matches(code string) bool {
	code = strings.TrimSpace(code)
	if code == "" {
		return false
	}
	return strings.EqualFold(t.Abbreviation, code) || t.ID == code
}
