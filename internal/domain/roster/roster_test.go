package roster

import (
	"sort"
	"testing"

	"github.com/gamedayhq/gameday/internal/domain/sport"
)

func flatPayload() []any {
	return []any{
		map[string]any{
			"id": "1", "displayName": "Alpha Guard",
			"position": map[string]any{"abbreviation": "PG"},
			"jersey":   "1", "starter": true,
			"experience": map[string]any{"years": float64(3)},
		},
		map[string]any{
			"id": "2", "displayName": "Beta Center",
			"position": map[string]any{"abbreviation": "C"},
			"starter":  false,
			"injuries": []any{map[string]any{"status": "Out"}},
		},
	}
}

func groupedPayload() []any {
	return []any{
		map[string]any{
			"position": "PG",
			"items": []any{
				map[string]any{
					"id": "1", "displayName": "Alpha Guard",
					"jersey": "1", "starter": true,
					"experience": map[string]any{"years": float64(3)},
				},
			},
		},
		map[string]any{
			"position": "C",
			"athletes": []any{
				map[string]any{
					"id": "2", "displayName": "Beta Center",
					"injuries": []any{map[string]any{"status": "Out"}},
				},
			},
		},
	}
}

func TestNormalizeFlatPayload(t *testing.T) {
	entries := Normalize(flatPayload())
	if len(entries) != 2 {
		t.Fatalf("unexpected entry count: %d", len(entries))
	}

	first := entries[0]
	if first.Name != "Alpha Guard" || first.Position != "PG" || first.Experience != 3 || !first.Starter {
		t.Fatalf("unexpected first entry: %+v", first)
	}
	if entries[1].Status != "Out" {
		t.Fatalf("injury status lost: %+v", entries[1])
	}
	if first.Status != StatusActive {
		t.Fatalf("missing status must default to Active, got %q", first.Status)
	}
}

func TestNormalizeGroupedMatchesFlat(t *testing.T) {
	flat := Normalize(flatPayload())
	grouped := Normalize(groupedPayload())
	if len(flat) != len(grouped) {
		t.Fatalf("encodings disagree on count: flat=%d grouped=%d", len(flat), len(grouped))
	}

	byID := func(entries []Entry) map[string]Entry {
		m := make(map[string]Entry, len(entries))
		for _, e := range entries {
			m[e.ID] = e
		}
		return m
	}
	flatByID, groupedByID := byID(flat), byID(grouped)
	for id, want := range flatByID {
		if got := groupedByID[id]; got != want {
			t.Fatalf("entry %s differs between encodings:\n flat=%+v\n grouped=%+v", id, want, got)
		}
	}
}

func TestNormalizeGroupAttributesPositionLabel(t *testing.T) {
	entries := Normalize(groupedPayload())
	for _, e := range entries {
		if e.Position == "" {
			t.Fatalf("group position not attributed: %+v", e)
		}
	}
}

func TestNormalizeUnknownShapeIsEmpty(t *testing.T) {
	cases := [][]any{
		nil,
		{"just-a-string"},
		{map[string]any{"something": "else"}},
	}
	for _, payload := range cases {
		if got := Normalize(payload); len(got) != 0 {
			t.Fatalf("expected empty roster for %v, got %d entries", payload, len(got))
		}
	}
}

func basketball() sport.Strategy {
	s, _ := sport.Lookup("nba")
	return s
}

func football() sport.Strategy {
	s, _ := sport.Lookup("nfl")
	return s
}

func TestSortBasketballStartersThenBench(t *testing.T) {
	entries := []Entry{
		{ID: "bench-rookie", Position: "SG", Experience: 1},
		{ID: "starter-center", Position: "C", Starter: true},
		{ID: "bench-vet", Position: "SF", Experience: 11},
		{ID: "starter-guard", Position: "PG", Starter: true},
	}
	SortBySport(entries, basketball())

	wantOrder := []string{"starter-guard", "starter-center", "bench-vet", "bench-rookie"}
	for i, want := range wantOrder {
		if entries[i].ID != want {
			t.Fatalf("position %d: got=%q want=%q", i, entries[i].ID, want)
		}
	}
}

func TestSortIsTotalPartition(t *testing.T) {
	entries := []Entry{
		{ID: "a", Position: "PG", Starter: true},
		{ID: "b", Position: "C"},
		{ID: "c", Position: "XX"},
		{ID: "d", Position: "SG", Starter: true},
		{ID: "e", Position: "F", Experience: 5},
	}
	before := len(entries)
	SortBySport(entries, basketball())

	if len(entries) != before {
		t.Fatalf("sorter changed entry count: %d != %d", len(entries), before)
	}
	seen := make(map[string]bool, len(entries))
	for _, e := range entries {
		if seen[e.ID] {
			t.Fatalf("duplicate entry after sort: %q", e.ID)
		}
		seen[e.ID] = true
	}
}

func TestSortFootballByPositionPriority(t *testing.T) {
	entries := []Entry{
		{ID: "k", Position: "K"},
		{ID: "qb", Position: "QB"},
		{ID: "wr", Position: "WR"},
		{ID: "dt", Position: "DT"},
	}
	SortBySport(entries, football())

	wantOrder := []string{"qb", "wr", "dt", "k"}
	for i, want := range wantOrder {
		if entries[i].ID != want {
			t.Fatalf("position %d: got=%q want=%q", i, entries[i].ID, want)
		}
	}
}

func TestSortBaseballPitchersLast(t *testing.T) {
	s, _ := sport.Lookup("mlb")
	entries := []Entry{
		{ID: "closer", Position: "CP"},
		{ID: "catcher", Position: "C"},
		{ID: "ace", Position: "SP"},
		{ID: "shortstop", Position: "SS"},
	}
	SortBySport(entries, s)

	if entries[0].ID != "ace" {
		t.Fatalf("starting pitcher should lead, got %q", entries[0].ID)
	}
	if entries[len(entries)-1].ID != "closer" {
		t.Fatalf("closer should trail, got %q", entries[len(entries)-1].ID)
	}
}

func TestSortUnknownSportPassthrough(t *testing.T) {
	entries := []Entry{
		{ID: "z", Position: "Z"},
		{ID: "a", Position: "A"},
	}
	SortBySport(entries, sport.Strategy{RosterOrdering: sport.OrderPassthrough})

	if entries[0].ID != "z" || entries[1].ID != "a" {
		t.Fatal("passthrough must not reorder")
	}
}

func TestUnlistedPositionSortsLast(t *testing.T) {
	s := football()
	priorities := []int{s.Priority("QB"), s.Priority("???")}
	if !sort.IntsAreSorted(priorities) || priorities[1] != sport.UnlistedPositionPriority {
		t.Fatalf("unexpected priorities: %v", priorities)
	}
}
