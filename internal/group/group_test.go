package group

import (
	"reflect"
	"testing"

	"github.com/poku-e/championdex/internal/champion"
)

func names(list []champion.Champion) []string {
	out := make([]string, len(list))
	for i, ch := range list {
		out[i] = ch.Name
	}
	return out
}

func rarities(r Result) []string {
	out := make([]string, len(r.Groups))
	for i, g := range r.Groups {
		out[i] = g.Rarity
	}
	return out
}

func TestByRarityOrderAndRankSort(t *testing.T) {
	list := []champion.Champion{
		{Name: "Bob", Rarity: "Légendaire", Rank: "A"},
		{Name: "Cid", Rarity: "Mythique", Rank: "C"},
		{Name: "Ana", Rarity: "Mythique", Rank: "S"},
		{Name: "Dan", Rarity: "Mythique", Rank: "?"},
		{Name: "Eve", Rarity: "Mythique", Rank: "C"},
		{Name: "Fox", Rarity: "Mythique", Rank: ""},
	}
	res := ByRarity(list, DefaultPolicy())
	if want := []string{"Mythique", "Légendaire"}; !reflect.DeepEqual(rarities(res), want) {
		t.Fatalf("want %v, got %v", want, rarities(res))
	}
	if want := []string{"Ana", "Cid", "Eve", "Dan", "Fox"}; !reflect.DeepEqual(names(res.Groups[0].Champions), want) {
		t.Fatalf("want %v, got %v", want, names(res.Groups[0].Champions))
	}
	if list[0].Name != "Bob" || list[1].Name != "Cid" {
		t.Fatalf("input list was reordered")
	}
}

func TestByRarityDropsUnlisted(t *testing.T) {
	list := []champion.Champion{
		{Name: "Ana", Rarity: "Mythique", Rank: "S"},
		{Name: "Rex", Rarity: "Rare", Rank: "B"},
		{Name: "Bob", Rarity: "Légendaire", Rank: "A"},
		{Name: "Zed", Rarity: "Épique", Rank: "A"},
		{Name: "Roy", Rarity: "Rare", Rank: "S"},
	}
	res := ByRarity(list, DefaultPolicy())
	if res.Len() != 2 || res.Dropped != 3 {
		t.Fatalf("want 2 kept and 3 dropped, got %d/%d", res.Len(), res.Dropped)
	}

	p := DefaultPolicy()
	p.IncludeUnlisted = true
	res = ByRarity(list, p)
	if want := []string{"Mythique", "Légendaire", "Rare", "Épique"}; !reflect.DeepEqual(rarities(res), want) {
		t.Fatalf("want %v, got %v", want, rarities(res))
	}
	if res.Dropped != 0 || res.Len() != len(list) {
		t.Fatalf("nothing should be dropped: %+v", res)
	}
	if want := []string{"Roy", "Rex"}; !reflect.DeepEqual(names(res.Groups[2].Champions), want) {
		t.Fatalf("want %v, got %v", want, names(res.Groups[2].Champions))
	}
}

func TestByRarityNeverDropsListed(t *testing.T) {
	var list []champion.Champion
	for _, rarity := range DefaultRarities {
		for _, rank := range []string{"D", "S", "X"} {
			list = append(list, champion.Champion{Name: rarity + rank, Rarity: rarity, Rank: rank})
		}
	}
	for _, res := range []Result{ByRarity(list, DefaultPolicy()), ByRarityRank(list, DefaultPolicy())} {
		if res.Len() != len(list) || res.Dropped != 0 {
			t.Fatalf("listed rarities must never be dropped: %+v", res)
		}
	}
}

func TestByRarityRank(t *testing.T) {
	list := []champion.Champion{
		{Name: "Bob", Rarity: "Légendaire", Rank: "A"},
		{Name: "Cid", Rarity: "Mythique", Rank: "B"},
		{Name: "Ana", Rarity: "Mythique", Rank: "S"},
		{Name: "Odd", Rarity: "Mythique", Rank: "Z"},
		{Name: "Dan", Rarity: "Mythique", Rank: "B"},
	}
	res := ByRarityRank(list, DefaultPolicy())
	if want := []string{"Mythique", "Légendaire"}; !reflect.DeepEqual(rarities(res), want) {
		t.Fatalf("want %v, got %v", want, rarities(res))
	}
	myth := res.Groups[0]
	var ranks []string
	for _, rg := range myth.Ranks {
		ranks = append(ranks, rg.Rank)
	}
	if want := []string{"S", "B", "Z"}; !reflect.DeepEqual(ranks, want) {
		t.Fatalf("want ranks %v, got %v", want, ranks)
	}
	if want := []string{"Cid", "Dan"}; !reflect.DeepEqual(names(myth.Ranks[1].Champions), want) {
		t.Fatalf("want %v, got %v", want, names(myth.Ranks[1].Champions))
	}
	if want := []string{"Ana", "Cid", "Dan", "Odd"}; !reflect.DeepEqual(names(myth.Champions), want) {
		t.Fatalf("want %v, got %v", want, names(myth.Champions))
	}
}

func TestEmptyInput(t *testing.T) {
	res := ByRarity(nil, DefaultPolicy())
	if len(res.Groups) != 0 || res.Len() != 0 {
		t.Fatalf("expected no groups, got %+v", res)
	}
}

func TestRankPriority(t *testing.T) {
	p := DefaultPolicy()
	if p.RankPriority("S") != 0 || p.RankPriority("D") != 4 || p.RankPriority("Q") != 5 {
		t.Fatalf("unexpected priorities")
	}
}
