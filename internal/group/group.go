// Package group partitions filtered champions into ordered rarity and rank
// sections.
package group

import (
	"slices"

	"github.com/poku-e/championdex/internal/champion"
)

var (
	DefaultRarities = []string{"Mythique", "Légendaire"}
	DefaultRanks    = []string{"S", "A", "B", "C", "D"}
)

// Policy fixes the emission order. Rarities outside Rarities are dropped
// unless IncludeUnlisted is set, in which case they follow the listed ones
// in first-seen order. Ranks outside Ranks always sort after the listed
// ones.
type Policy struct {
	Rarities        []string
	Ranks           []string
	IncludeUnlisted bool
}

func DefaultPolicy() Policy {
	return Policy{
		Rarities: slices.Clone(DefaultRarities),
		Ranks:    slices.Clone(DefaultRanks),
	}
}

// RankPriority returns the sort key of rank: its index in p.Ranks, or
// len(p.Ranks) for any unknown rank.
func (p Policy) RankPriority(rank string) int {
	if i := slices.Index(p.Ranks, rank); i >= 0 {
		return i
	}
	return len(p.Ranks)
}

type RankGroup struct {
	Rank      string
	Champions []champion.Champion
}

type RarityGroup struct {
	Rarity    string
	Champions []champion.Champion
	Ranks     []RankGroup
}

// Result is the grouped view of one filtered list.
type Result struct {
	Groups  []RarityGroup
	Dropped int
}

// Len is the number of champions across all emitted groups.
func (r Result) Len() int {
	n := 0
	for _, g := range r.Groups {
		n += len(g.Champions)
	}
	return n
}

// ByRarity groups list by rarity in policy order and sorts each group by
// rank priority. The sort is stable so champions of equal rank keep their
// catalogue order.
func ByRarity(list []champion.Champion, p Policy) Result {
	res := partition(list, p)
	for i := range res.Groups {
		slices.SortStableFunc(res.Groups[i].Champions, func(a, b champion.Champion) int {
			return p.RankPriority(a.Rank) - p.RankPriority(b.Rank)
		})
	}
	return res
}

// ByRarityRank groups list by rarity, then by rank. Champions inside a rank
// group keep their catalogue order; Champions on each rarity group lists
// them rank group by rank group.
func ByRarityRank(list []champion.Champion, p Policy) Result {
	res := partition(list, p)
	for i := range res.Groups {
		g := &res.Groups[i]
		var order []string
		buckets := map[string][]champion.Champion{}
		for _, ch := range g.Champions {
			if _, ok := buckets[ch.Rank]; !ok {
				order = append(order, ch.Rank)
			}
			buckets[ch.Rank] = append(buckets[ch.Rank], ch)
		}
		slices.SortStableFunc(order, func(a, b string) int {
			return p.RankPriority(a) - p.RankPriority(b)
		})
		g.Champions = g.Champions[:0]
		for _, rank := range order {
			g.Ranks = append(g.Ranks, RankGroup{Rank: rank, Champions: buckets[rank]})
			g.Champions = append(g.Champions, buckets[rank]...)
		}
	}
	return res
}

func partition(list []champion.Champion, p Policy) Result {
	buckets := map[string][]champion.Champion{}
	var unlisted []string
	for _, ch := range list {
		if _, ok := buckets[ch.Rarity]; !ok && !slices.Contains(p.Rarities, ch.Rarity) {
			unlisted = append(unlisted, ch.Rarity)
		}
		buckets[ch.Rarity] = append(buckets[ch.Rarity], ch)
	}

	var res Result
	emit := func(rarity string) {
		if champs := buckets[rarity]; len(champs) > 0 {
			res.Groups = append(res.Groups, RarityGroup{Rarity: rarity, Champions: champs})
		}
	}
	for _, rarity := range p.Rarities {
		emit(rarity)
	}
	for _, rarity := range unlisted {
		if p.IncludeUnlisted {
			emit(rarity)
			continue
		}
		res.Dropped += len(buckets[rarity])
	}
	return res
}
