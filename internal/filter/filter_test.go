package filter

import (
	"errors"
	"reflect"
	"testing"

	"github.com/poku-e/championdex/internal/champion"
)

func sample() []champion.Champion {
	return []champion.Champion{
		{Name: "Ana", Rarity: "Mythique", Rank: "S"},
		{Name: "Bob", Rarity: "Légendaire", Rank: "A"},
		{Name: "Éanor", Rarity: "Légendaire", Rank: "B"},
		{Name: "Dana", Rarity: "Mythique", Rank: "A"},
	}
}

func names(list []champion.Champion) []string {
	out := make([]string, len(list))
	for i, ch := range list {
		out[i] = ch.Name
	}
	return out
}

func isSubsequence(sub, full []champion.Champion) bool {
	j := 0
	for _, ch := range full {
		if j < len(sub) && reflect.DeepEqual(sub[j], ch) {
			j++
		}
	}
	return j == len(sub)
}

func testDomain() Domain {
	return NewDomain([]string{"Mythique", "Légendaire"}, []string{"S", "A", "B", "C", "D"}, sample())
}

func TestApplyEmptyCriteriaReturnsAll(t *testing.T) {
	list := sample()
	got := Apply(list, NewSingle().Criteria())
	if !reflect.DeepEqual(got, list) {
		t.Fatalf("want full list, got %v", names(got))
	}
	got = Apply(list, NewMulti().Criteria())
	if !reflect.DeepEqual(got, list) {
		t.Fatalf("want full list, got %v", names(got))
	}
}

func TestApplySearchScenario(t *testing.T) {
	list := sample()[:2]
	got := Apply(list, Criteria{Search: "an"})
	if want := []string{"Ana"}; !reflect.DeepEqual(names(got), want) {
		t.Fatalf("want %v, got %v", want, names(got))
	}
	got = Apply(list, Criteria{Search: ""})
	if want := []string{"Ana", "Bob"}; !reflect.DeepEqual(names(got), want) {
		t.Fatalf("want %v, got %v", want, names(got))
	}
}

func TestApplyDiacriticInsensitive(t *testing.T) {
	got := Apply(sample(), Criteria{Search: "EA"})
	if want := []string{"Éanor"}; !reflect.DeepEqual(names(got), want) {
		t.Fatalf("want %v, got %v", want, names(got))
	}
}

func TestApplyIsSubsequence(t *testing.T) {
	list := sample()
	all := []Criteria{
		{Search: "a"},
		{Rarities: []string{"Mythique"}},
		{Ranks: []string{"A", "B"}},
		{Search: "n", Rarities: []string{"Légendaire"}, Ranks: []string{"B"}},
		{Search: "zzz"},
	}
	for _, c := range all {
		got := Apply(list, c)
		if len(got) > len(list) || !isSubsequence(got, list) {
			t.Fatalf("criteria %+v: result %v is not a sub-sequence", c, names(got))
		}
	}
}

func TestApplyRarityAndRank(t *testing.T) {
	got := Apply(sample(), Criteria{Rarities: []string{"Mythique"}, Ranks: []string{"A"}})
	if want := []string{"Dana"}; !reflect.DeepEqual(names(got), want) {
		t.Fatalf("want %v, got %v", want, names(got))
	}
}

func TestSingleWithRarity(t *testing.T) {
	d := testDomain()
	s, err := NewSingle().WithRarity(d, "Légendaire")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := []string{"Bob", "Éanor"}; !reflect.DeepEqual(names(Apply(sample(), s.Criteria())), want) {
		t.Fatalf("unexpected filter result")
	}
	back, err := s.WithRarity(d, "")
	if err != nil || back.Rarity != All {
		t.Fatalf("expected reset to all, got %+v (%v)", back, err)
	}
	same, err := s.WithRarity(d, "Commune")
	if !errors.Is(err, ErrUnknownValue) {
		t.Fatalf("expected ErrUnknownValue, got %v", err)
	}
	if same != s {
		t.Fatalf("state changed on error: %+v", same)
	}
}

func TestMultiToggleTwiceRestores(t *testing.T) {
	d := testDomain()
	start := NewMulti().WithSearch("a")
	for _, tc := range []struct {
		axis  Axis
		value string
	}{{AxisRarity, "Mythique"}, {AxisRank, "C"}} {
		once, err := start.Toggle(d, tc.axis, tc.value)
		if err != nil {
			t.Fatalf("toggle: %v", err)
		}
		if once.AllActive() {
			t.Fatalf("selecting %q must deactivate all", tc.value)
		}
		twice, err := once.Toggle(d, tc.axis, tc.value)
		if err != nil {
			t.Fatalf("toggle: %v", err)
		}
		if !reflect.DeepEqual(twice, start) {
			t.Fatalf("want %+v, got %+v", start, twice)
		}
		if !twice.AllActive() {
			t.Fatalf("clearing last value must reactivate all")
		}
	}
}

func TestMultiToggleAllClears(t *testing.T) {
	d := testDomain()
	m, _ := NewMulti().Toggle(d, AxisRarity, "Mythique")
	m, _ = m.Toggle(d, AxisRank, "S")
	m = m.WithSearch("x")
	if want := []string{"Mythique", "S"}; !reflect.DeepEqual(m.Active(), want) {
		t.Fatalf("want active %v, got %v", want, m.Active())
	}
	cleared, err := m.Toggle(d, AxisRank, All)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !cleared.AllActive() || cleared.Search != "x" {
		t.Fatalf("unexpected state after all: %+v", cleared)
	}
	if want := []string{All}; !reflect.DeepEqual(cleared.Active(), want) {
		t.Fatalf("want active %v, got %v", want, cleared.Active())
	}
}

func TestMultiToggleKeepsDomainOrderAndImmutability(t *testing.T) {
	d := testDomain()
	a, _ := NewMulti().Toggle(d, AxisRank, "B")
	b, _ := a.Toggle(d, AxisRank, "S")
	if want := []string{"S", "B"}; !reflect.DeepEqual(b.Ranks, want) {
		t.Fatalf("want %v, got %v", want, b.Ranks)
	}
	if want := []string{"B"}; !reflect.DeepEqual(a.Ranks, want) {
		t.Fatalf("previous state mutated: %v", a.Ranks)
	}
}

func TestMultiToggleRejectsUnknown(t *testing.T) {
	d := testDomain()
	m := NewMulti()
	if _, err := m.Toggle(d, AxisRank, "Z"); !errors.Is(err, ErrUnknownValue) {
		t.Fatalf("expected ErrUnknownValue, got %v", err)
	}
	if _, err := m.Toggle(d, Axis("faction"), "Nord"); !errors.Is(err, ErrUnknownAxis) {
		t.Fatalf("expected ErrUnknownAxis, got %v", err)
	}
}

func TestNewDomainMergesCatalogue(t *testing.T) {
	list := append(sample(), champion.Champion{Name: "Eve", Rarity: "Épique", Rank: "E"})
	d := NewDomain([]string{"Mythique", "Légendaire"}, []string{"S", "A"}, list)
	if want := []string{"Mythique", "Légendaire", "Épique"}; !reflect.DeepEqual(d.Rarities, want) {
		t.Fatalf("want %v, got %v", want, d.Rarities)
	}
	if want := []string{"S", "A", "B", "E"}; !reflect.DeepEqual(d.Ranks, want) {
		t.Fatalf("want %v, got %v", want, d.Ranks)
	}
}
