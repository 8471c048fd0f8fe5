package providers

import "testing"

func TestResolveTimezone(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"UTC", "UTC"},
		{" America/New_York ", "America/New_York"},
		{"America/Los_Angeles", "America/Los_Angeles"},
		{"Not/AZone", ""},
		{"", ""},
	}
	for _, tc := range cases {
		loc := ResolveTimezone(tc.in)
		if tc.want == "" {
			if loc != nil {
				t.Fatalf("%q: expected nil location, got %v", tc.in, loc)
			}
			continue
		}
		if loc == nil || loc.String() != tc.want {
			t.Fatalf("%q: expected %s, got %v", tc.in, tc.want, loc)
		}
	}
}
