package savant

import (
	"sort"
	"strings"
	"unicode"

	"github.com/preston-bernstein/mlb-gif-service/internal/video"
)

type candidate struct {
	pitch pitchResponse
	score int
}

// rankCandidates scores every pitch to the play's batter in the play's inning
// and returns those at or above minScore, best first.
func rankCandidates(q video.Query, pitches []pitchResponse, minScore int) []candidate {
	out := make([]candidate, 0)
	for _, p := range pitches {
		if p.PlayID == "" || int(p.Inning) != q.Inning {
			continue
		}
		if q.Batter != "" && !batterMatches(q.Batter, p.BatterName) {
			continue
		}
		score := scorePitch(q, p)
		if score < minScore {
			continue
		}
		out = append(out, candidate{pitch: p, score: score})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].score > out[j].score })
	return out
}

func scorePitch(q video.Query, p pitchResponse) int {
	event := normalizeEvent(firstNonEmpty(q.Event, q.EventType))
	desc := strings.ToLower(p.Description)
	events := normalizeEvent(p.Events)

	score := 0
	if batterMatches(q.Batter, p.BatterName) {
		score += weightBatter
	}
	if p.decides(event) {
		score += weightDeciding
	}
	if event != "" {
		if containsLoose(desc, event) {
			score += weightDescEvent
		}
		if containsLoose(events, event) {
			score += weightEventsField
		}
		if events == event {
			score += weightExactEvent
		}
	}
	if event == "home run" {
		if strings.Contains(desc, "homer") || strings.Contains(desc, "home run") {
			score += weightHomerDesc
		}
		if strings.Contains(events, "homer") || strings.Contains(events, "home run") {
			score += weightHomerEvents
		}
		if p.hasHitData() {
			score += weightHomerHitData
		}
	}
	if jaccard(tokens(q.Description), tokens(p.Description)) >= similarityThreshold {
		score += weightSimilarDesc
	}
	return score
}

// Events that end a plate appearance without a ball in play.
var noContactEvents = []string{"strikeout", "walk", "intent walk", "hit by pitch", "catcher interf"}

// decides reports whether p is the pitch that settled the play: the ball put in play,
// or for strikeouts and walks the final pitch, which carries the event.
func (p pitchResponse) decides(event string) bool {
	for _, e := range noContactEvents {
		if strings.HasPrefix(event, e) {
			return strings.TrimSpace(p.Events) != ""
		}
	}
	return p.isContact()
}

// batterMatches compares the play's batter against the feed's display name by
// last name first, then by any distinctive name token.
func batterMatches(want, got string) bool {
	want = strings.TrimSpace(want)
	got = strings.ToLower(got)
	if want == "" || got == "" {
		return false
	}
	parts := strings.Fields(strings.ToLower(want))
	last := strings.Trim(parts[len(parts)-1], ".")
	if last == "jr" || last == "sr" || last == "ii" || last == "iii" {
		if len(parts) > 1 {
			last = parts[len(parts)-2]
		}
	}
	if strings.Contains(got, last) {
		return true
	}
	for _, part := range parts {
		if len(part) >= 3 && strings.Contains(got, part) {
			return true
		}
	}
	return false
}

func normalizeEvent(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.Join(strings.Fields(strings.ReplaceAll(s, "_", " ")), " ")
}

func containsLoose(haystack, needle string) bool {
	if strings.Contains(haystack, needle) {
		return true
	}
	squash := func(s string) string { return strings.ReplaceAll(s, " ", "") }
	return strings.Contains(squash(haystack), squash(needle))
}

func tokens(s string) map[string]struct{} {
	out := make(map[string]struct{})
	for _, f := range strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	}) {
		out[f] = struct{}{}
	}
	return out
}

func jaccard(a, b map[string]struct{}) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	shared := 0
	for k := range a {
		if _, ok := b[k]; ok {
			shared++
		}
	}
	union := len(a) + len(b) - shared
	return float64(shared) / float64(union)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
