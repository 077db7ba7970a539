// Package champion holds the catalogue records and their loaders.
package champion

import "errors"

// ---------- Data model ----------

type Skill struct {
	Name string `json:"name,omitempty" yaml:"name,omitempty"`
	Icon string `json:"icon,omitempty" yaml:"icon,omitempty"`
}

type Champion struct {
	Name    string  `json:"name" yaml:"name"`
	Rarity  string  `json:"rarity" yaml:"rarity"`
	Rank    string  `json:"rank" yaml:"rank"`
	Faction string  `json:"faction,omitempty" yaml:"faction,omitempty"`
	URL     string  `json:"url" yaml:"url"`
	Skills  []Skill `json:"skills,omitempty" yaml:"skills,omitempty"`
}

var ErrMissingName = errors.New("champion name required")

// Catalog is the read-only list every request filters. Records keep the
// order of the data file.
type Catalog struct {
	Champions []Champion
	Source    string
}

// Names returns champion names in catalogue order.
func (c *Catalog) Names() []string {
	out := make([]string, len(c.Champions))
	for i, ch := range c.Champions {
		out[i] = ch.Name
	}
	return out
}

// Stats are the header counters of the page: the full catalogue, not the
// filtered view.
type Stats struct {
	Total    int            `json:"total"`
	ByRarity map[string]int `json:"by_rarity"`
}

func (c *Catalog) Stats() Stats {
	s := Stats{Total: len(c.Champions), ByRarity: map[string]int{}}
	for _, ch := range c.Champions {
		s.ByRarity[ch.Rarity]++
	}
	return s
}

// Count returns the number of champions of the given rarity.
func (s Stats) Count(rarity string) int {
	return s.ByRarity[rarity]
}
