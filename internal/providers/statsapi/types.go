package statsapi

type scheduleResponse struct {
	Dates []struct {
		Date  string         `json:"date"`
		Games []gameResponse `json:"games"`
	} `json:"dates"`
}

type gameResponse struct {
	GamePk       int    `json:"gamePk"`
	GameDate     string `json:"gameDate"`
	OfficialDate string `json:"officialDate"`
	Status       struct {
		AbstractGameState string `json:"abstractGameState"`
		DetailedState     string `json:"detailedState"`
		CodedGameState    string `json:"codedGameState"`
	} `json:"status"`
	Teams struct {
		Away sideResponse `json:"away"`
		Home sideResponse `json:"home"`
	} `json:"teams"`
	Linescore *linescoreResponse `json:"linescore"`
	Venue     struct {
		Name string `json:"name"`
	} `json:"venue"`
}

type sideResponse struct {
	Score *int         `json:"score"`
	Team  teamResponse `json:"team"`
}

type teamResponse struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	Abbreviation string `json:"abbreviation"`
	TeamName     string `json:"teamName"`
	LocationName string `json:"locationName"`
}

type linescoreResponse struct {
	CurrentInning int    `json:"currentInning"`
	InningState   string `json:"inningState"`
	Teams         struct {
		Home struct {
			Runs int `json:"runs"`
		} `json:"home"`
		Away struct {
			Runs int `json:"runs"`
		} `json:"away"`
	} `json:"teams"`
}

// playsEnvelope covers the three shapes play lists arrive in: top-level allPlays
// (playByPlay), plays.allPlays, and liveData.plays.allPlays (feed/live).
type playsEnvelope struct {
	AllPlays []playResponse `json:"allPlays"`
	Plays    *struct {
		AllPlays []playResponse `json:"allPlays"`
	} `json:"plays"`
	LiveData *struct {
		Plays struct {
			AllPlays []playResponse `json:"allPlays"`
		} `json:"plays"`
	} `json:"liveData"`
}

func (e playsEnvelope) plays() ([]playResponse, bool) {
	switch {
	case e.AllPlays != nil:
		return e.AllPlays, true
	case e.LiveData != nil && e.LiveData.Plays.AllPlays != nil:
		return e.LiveData.Plays.AllPlays, true
	case e.Plays != nil && e.Plays.AllPlays != nil:
		return e.Plays.AllPlays, true
	}
	return nil, false
}

type playResponse struct {
	Result struct {
		Type        string `json:"type"`
		Event       string `json:"event"`
		EventType   string `json:"eventType"`
		Description string `json:"description"`
		RBI         int    `json:"rbi"`
		AwayScore   *int   `json:"awayScore"`
		HomeScore   *int   `json:"homeScore"`
	} `json:"result"`
	About struct {
		AtBatIndex    *int   `json:"atBatIndex"`
		HalfInning    string `json:"halfInning"`
		IsTopInning   *bool  `json:"isTopInning"`
		Inning        int    `json:"inning"`
		IsComplete    bool   `json:"isComplete"`
		IsScoringPlay bool   `json:"isScoringPlay"`
		AwayScore     *int   `json:"awayScore"`
		HomeScore     *int   `json:"homeScore"`
	} `json:"about"`
	Count struct {
		Outs int `json:"outs"`
	} `json:"count"`
	Matchup struct {
		Batter  personResponse `json:"batter"`
		Pitcher personResponse `json:"pitcher"`
	} `json:"matchup"`
	Runners []struct {
		Movement struct {
			End string `json:"end"`
		} `json:"movement"`
		Details struct {
			IsScoringEvent bool `json:"isScoringEvent"`
		} `json:"details"`
	} `json:"runners"`
	LeverageIndex         *float64 `json:"leverageIndex"`
	WinProbabilityAdded   *float64 `json:"winProbabilityAdded"`
	WinProbabilityRemoved *float64 `json:"winProbabilityRemoved"`
}

type personResponse struct {
	ID       int    `json:"id"`
	FullName string `json:"fullName"`
}
