package savant

import "testing"

func TestExtractVideoURLsFromMarkupAndScripts(t *testing.T) {
	page := []byte(`<html><body>
		<video id="sporty" data-src="https://sporty-clips.mlb.com/abc/clip-1.mp4">
			<source src="https://sporty-clips.mlb.com/abc/clip-1.mp4" type="video/mp4">
		</video>
		<a href="https://cdn.example.com/alt.mp4?x=1">download</a>
		<a href="https://example.com/page.html">other</a>
		<script>var cfg = {"url": "https://sporty-clips.mlb.com/def/clip-2.mp4"};</script>
	</body></html>`)

	got := extractVideoURLs(page)
	want := []string{
		"https://sporty-clips.mlb.com/abc/clip-1.mp4",
		"https://cdn.example.com/alt.mp4?x=1",
		"https://sporty-clips.mlb.com/def/clip-2.mp4",
	}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("url %d: expected %s, got %s", i, want[i], got[i])
		}
	}
}

func TestExtractVideoURLsEmptyPage(t *testing.T) {
	if got := extractVideoURLs([]byte(`<html><body>No video</body></html>`)); len(got) != 0 {
		t.Fatalf("expected no urls, got %v", got)
	}
}
