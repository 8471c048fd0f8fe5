package teams

import "strings"

// Statsapi team ids keyed to the canonical club record.
var directory = []Team{
	{ID: "108", Abbreviation: "LAA", Name: "Angels", City: "Los Angeles", FullName: "Los Angeles Angels", League: "AL", Division: "West"},
	{ID: "109", Abbreviation: "AZ", Name: "D-backs", City: "Arizona", FullName: "Arizona Diamondbacks", League: "NL", Division: "West"},
	{ID: "110", Abbreviation: "BAL", Name: "Orioles", City: "Baltimore", FullName: "Baltimore Orioles", League: "AL", Division: "East"},
	{ID: "111", Abbreviation: "BOS", Name: "Red Sox", City: "Boston", FullName: "Boston Red Sox", League: "AL", Division: "East"},
	{ID: "112", Abbreviation: "CHC", Name: "Cubs", City: "Chicago", FullName: "Chicago Cubs", League: "NL", Division: "Central"},
	{ID: "113", Abbreviation: "CIN", Name: "Reds", City: "Cincinnati", FullName: "Cincinnati Reds", League: "NL", Division: "Central"},
	{ID: "114", Abbreviation: "CLE", Name: "Guardians", City: "Cleveland", FullName: "Cleveland Guardians", League: "AL", Division: "Central"},
	{ID: "115", Abbreviation: "COL", Name: "Rockies", City: "Colorado", FullName: "Colorado Rockies", League: "NL", Division: "West"},
	{ID: "116", Abbreviation: "DET", Name: "Tigers", City: "Detroit", FullName: "Detroit Tigers", League: "AL", Division: "Central"},
	{ID: "117", Abbreviation: "HOU", Name: "Astros", City: "Houston", FullName: "Houston Astros", League: "AL", Division: "West"},
	{ID: "118", Abbreviation: "KC", Name: "Royals", City: "Kansas City", FullName: "Kansas City Royals", League: "AL", Division: "Central"},
	{ID: "119", Abbreviation: "LAD", Name: "Dodgers", City: "Los Angeles", FullName: "Los Angeles Dodgers", League: "NL", Division: "West"},
	{ID: "120", Abbreviation: "WSH", Name: "Nationals", City: "Washington", FullName: "Washington Nationals", League: "NL", Division: "East"},
	{ID: "121", Abbreviation: "NYM", Name: "Mets", City: "New York", FullName: "New York Mets", League: "NL", Division: "East"},
	{ID: "133", Abbreviation: "ATH", Name: "Athletics", City: "Sacramento", FullName: "Athletics", League: "AL", Division: "West"},
	{ID: "134", Abbreviation: "PIT", Name: "Pirates", City: "Pittsburgh", FullName: "Pittsburgh Pirates", League: "NL", Division: "Central"},
	{ID: "135", Abbreviation: "SD", Name: "Padres", City: "San Diego", FullName: "San Diego Padres", League: "NL", Division: "West"},
	{ID: "136", Abbreviation: "SEA", Name: "Mariners", City: "Seattle", FullName: "Seattle Mariners", League: "AL", Division: "West"},
	{ID: "137", Abbreviation: "SF", Name: "Giants", City: "San Francisco", FullName: "San Francisco Giants", League: "NL", Division: "West"},
	{ID: "138", Abbreviation: "STL", Name: "Cardinals", City: "St. Louis", FullName: "St. Louis Cardinals", League: "NL", Division: "Central"},
	{ID: "139", Abbreviation: "TB", Name: "Rays", City: "Tampa Bay", FullName: "Tampa Bay Rays", League: "AL", Division: "East"},
	{ID: "140", Abbreviation: "TEX", Name: "Rangers", City: "Texas", FullName: "Texas Rangers", League: "AL", Division: "West"},
	{ID: "141", Abbreviation: "TOR", Name: "Blue Jays", City: "Toronto", FullName: "Toronto Blue Jays", League: "AL", Division: "East"},
	{ID: "142", Abbreviation: "MIN", Name: "Twins", City: "Minnesota", FullName: "Minnesota Twins", League: "AL", Division: "Central"},
	{ID: "143", Abbreviation: "PHI", Name: "Phillies", City: "Philadelphia", FullName: "Philadelphia Phillies", League: "NL", Division: "East"},
	{ID: "144", Abbreviation: "ATL", Name: "Braves", City: "Atlanta", FullName: "Atlanta Braves", League: "NL", Division: "East"},
	{ID: "145", Abbreviation: "CWS", Name: "White Sox", City: "Chicago", FullName: "Chicago White Sox", League: "AL", Division: "Central"},
	{ID: "146", Abbreviation: "MIA", Name: "Marlins", City: "Miami", FullName: "Miami Marlins", League: "NL", Division: "East"},
	{ID: "147", Abbreviation: "NYY", Name: "Yankees", City: "New York", FullName: "New York Yankees", League: "AL", Division: "East"},
	{ID: "158", Abbreviation: "MIL", Name: "Brewers", City: "Milwaukee", FullName: "Milwaukee Brewers", League: "NL", Division: "Central"},
}

// Legacy and alternate codes seen in upstream feeds.
var aliases = map[string]string{
	"ARI": "AZ",
	"OAK": "ATH",
	"CHW": "CWS",
	"WAS": "WSH",
	"KCR": "KC",
	"SDP": "SD",
	"SFG": "SF",
	"TBR": "TB",
}

// All returns a copy of the club directory.
func All() []Team {
	out := make([]Team, len(directory))
	copy(out, directory)
	return out
}

// ByID finds a club by statsapi team id.
func ByID(id string) (Team, bool) {
	for _, t := range directory {
		if t.ID == id {
			return t, true
		}
	}
	return Team{}, false
}

// ByCode finds a club by abbreviation, accepting legacy aliases.
func ByCode(code string) (Team, bool) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if alias, ok := aliases[code]; ok {
		code = alias
	}
	for _, t := range directory {
		if t.Abbreviation == code {
			return t, true
		}
	}
	return Team{}, false
}

// Enrich fills blank fields on t from the directory, matching by id first and then abbreviation.
func Enrich(t Team) Team {
	known, ok := ByID(t.ID)
	if !ok {
		known, ok = ByCode(t.Abbreviation)
	}
	if !ok {
		return t
	}
	if t.ID == "" {
		t.ID = known.ID
	}
	if t.Abbreviation == "" {
		t.Abbreviation = known.Abbreviation
	}
	if t.Name == "" {
		t.Name = known.Name
	}
	if t.FullName == "" {
		t.FullName = known.FullName
	}
	if t.City == "" {
		t.City = known.City
	}
	if t.League == "" {
		t.League = known.League
	}
	if t.Division == "" {
		t.Division = known.Division
	}
	return t
}
