package config

import "testing"

func TestBoolEnvOrDefault(t *testing.T) {
	t.Setenv("BOOL_TEST", "")
	if got := boolEnvOrDefault("BOOL_TEST", true); !got {
		t.Fatalf("expected default true when unset")
	}

	cases := []struct {
		val      string
		expected bool
	}{
		{"true", true},
		{"TRUE", true},
		{"1", true},
		{"yes", true},
		{"false", false},
		{"FALSE", false},
		{"0", false},
		{"no", false},
		{"maybe", true}, // falls back to default on unknown
	}

	for _, tc := range cases {
		t.Setenv("BOOL_TEST", tc.val)
		if got := boolEnvOrDefault("BOOL_TEST", true); got != tc.expected {
			t.Fatalf("expected %v for %s, got %v", tc.expected, tc.val, got)
		}
	}
}

func TestListEnvOrDefault(t *testing.T) {
	t.Setenv("LIST_TEST", "")
	if got := listEnvOrDefault("LIST_TEST", []string{"x"}); len(got) != 1 || got[0] != "x" {
		t.Fatalf("expected default list, got %v", got)
	}
	t.Setenv("LIST_TEST", " a, ,b ")
	if got := listEnvOrDefault("LIST_TEST", nil); len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Fatalf("expected trimmed list, got %v", got)
	}
}

func TestInt64EnvOrDefault(t *testing.T) {
	t.Setenv("INT64_TEST", "-5")
	if got := int64EnvOrDefault("INT64_TEST", 7); got != 7 {
		t.Fatalf("expected default on negative, got %d", got)
	}
	t.Setenv("INT64_TEST", "52428800")
	if got := int64EnvOrDefault("INT64_TEST", 7); got != 52428800 {
		t.Fatalf("expected parsed value, got %d", got)
	}
}

func TestFirstNonZero(t *testing.T) {
	if got := firstNonZero("", "b", "c"); got != "b" {
		t.Fatalf("expected b, got %s", got)
	}
	if got := firstNonZero(0, 0); got != 0 {
		t.Fatalf("expected zero, got %d", got)
	}
}
