package teams

import (
	"reflect"
	"testing"
)

func TestTeamJSONTags(t *testing.T) {
	type fieldCheck struct {
		name string
		tag  string
	}
	teamType := reflect.TypeOf(Team{})
	fields := []fieldCheck{
		{"ID", "id"},
		{"Name", "name"},
		{"FullName", "fullName"},
		{"Abbreviation", "abbreviation"},
		{"City", "city"},
		{"League", "league"},
		{"Division", "division"},
	}
	for _, fc := range fields {
		f, ok := teamType.FieldByName(fc.name)
		if !ok {
			t.Fatalf("missing field %s", fc.name)
		}
		if tag := f.Tag.Get("json"); tag != fc.tag {
			t.Fatalf("field %s expected tag %s, got %s", fc.name, fc.tag, tag)
		}
	}
}

func TestDirectoryHasThirtyUniqueClubs(t *testing.T) {
	all := All()
	if len(all) != 30 {
		t.Fatalf("expected 30 clubs, got %d", len(all))
	}
	seen := map[string]bool{}
	for _, team := range all {
		if seen[team.Abbreviation] || seen[team.ID] {
			t.Fatalf("duplicate club entry %+v", team)
		}
		seen[team.Abbreviation] = true
		seen[team.ID] = true
	}
}

func TestByCodeAcceptsAliases(t *testing.T) {
	team, ok := ByCode("oak")
	if !ok || team.ID != "133" {
		t.Fatalf("expected alias OAK to resolve to Athletics, got %+v (%v)", team, ok)
	}
	if _, ok := ByCode("XYZ"); ok {
		t.Fatal("expected unknown code to miss")
	}
}

func TestEnrichFillsBlanks(t *testing.T) {
	got := Enrich(Team{ID: "121"})
	if got.Abbreviation != "NYM" || got.FullName != "New York Mets" {
		t.Fatalf("expected Mets to be enriched, got %+v", got)
	}
	kept := Enrich(Team{ID: "121", Name: "Amazins"})
	if kept.Name != "Amazins" {
		t.Fatalf("expected existing name preserved, got %q", kept.Name)
	}
	unknown := Enrich(Team{ID: "999", Name: "Nobody"})
	if unknown.Abbreviation != "" {
		t.Fatalf("expected unknown team untouched, got %+v", unknown)
	}
}

func TestMatchesByCodeOrID(t *testing.T) {
	mets, _ := ByCode("NYM")
	if !mets.Matches("nym") || !mets.Matches("121") {
		t.Fatal("expected match by code and id")
	}
	if mets.Matches("") || mets.Matches("NYY") {
		t.Fatal("expected no match for blank or other club")
	}
	if mets.Display() != "New York Mets" {
		t.Fatalf("unexpected display %q", mets.Display())
	}
}
