package savant

import (
	"strconv"
	"strings"
)

// gfResponse is the subset of the /gf game feed used for matching.
type gfResponse struct {
	TeamHome []pitchResponse `json:"team_home"`
	TeamAway []pitchResponse `json:"team_away"`
}

type pitchResponse struct {
	PlayID      string  `json:"play_id"`
	Inning      flexInt `json:"inning"`
	BatterName  string  `json:"batter_name"`
	PitcherName string  `json:"pitcher_name"`
	PitchCall   string  `json:"pitch_call"`
	Call        string  `json:"call"`
	Events      string  `json:"events"`
	Description string  `json:"des"`
	HitSpeed    any     `json:"hit_speed"`
	HitDistance any     `json:"hit_distance"`
}

func (r gfResponse) pitches() []pitchResponse {
	out := make([]pitchResponse, 0, len(r.TeamHome)+len(r.TeamAway))
	out = append(out, r.TeamHome...)
	out = append(out, r.TeamAway...)
	return out
}

func (p pitchResponse) isContact() bool {
	return p.PitchCall == "hit_into_play" || p.Call == "X"
}

func (p pitchResponse) hasHitData() bool {
	return present(p.HitSpeed) || present(p.HitDistance)
}

func present(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case string:
		return strings.TrimSpace(t) != ""
	case float64:
		return t != 0
	default:
		return true
	}
}

// flexInt decodes numbers that the feed sometimes sends as strings.
type flexInt int

func (f *flexInt) UnmarshalJSON(data []byte) error {
	raw := strings.Trim(strings.TrimSpace(string(data)), `"`)
	if raw == "" || raw == "null" {
		*f = 0
		return nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		// Unparseable innings never match; keep decoding the rest of the feed.
		*f = 0
		return nil
	}
	*f = flexInt(n)
	return nil
}
