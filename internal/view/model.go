// Package view turns grouped champions into a view-model and renders it as
// HTML fragments and pages.
package view

import (
	"fmt"
	"io/fs"
	"path"
	"regexp"
	"strings"

	"github.com/poku-e/championdex/internal/champion"
	"github.com/poku-e/championdex/internal/group"
	"github.com/poku-e/championdex/internal/textnorm"
)

// Variant selects the filter UI and grouping depth.
type Variant string

const (
	// Single: rarity dropdown, rarity groups sorted by rank.
	Single Variant = "single"
	// Multi: rarity and rank toggles, rarity groups split by rank.
	Multi Variant = "multi"
)

const (
	DefaultFaction   = "Faction inconnue"
	DefaultSkillIcon = "S"
	DefaultSkillName = "Compétence"
	NoSkillsText     = "Compétences à venir"
	EmptyText        = "Aucun champion trouvé"
	PlaceholderGlyph = "?"

	ColorAlert = "#ff4757"
	ColorOK    = "#26de81"
)

// ---------- View-model ----------

type Skill struct {
	Icon  string
	Title string
}

type Card struct {
	Name        string
	Faction     string
	Rarity      string
	RarityClass string
	Rank        string
	Icon        string
	Placeholder bool
	Skills      []Skill
	URL         string
}

type RankSection struct {
	Rank  string
	Count int
	Cards []Card
}

type Section struct {
	Rarity string
	Class  string
	Count  int
	Cards  []Card
	Ranks  []RankSection
}

// IndicatorState is the colour state of the result counter.
type IndicatorState string

const (
	StateAlert IndicatorState = "alert"
	StateOK    IndicatorState = "ok"
)

type Indicator struct {
	Count int            `json:"count"`
	Text  string         `json:"text"`
	State IndicatorState `json:"state"`
	Color string         `json:"color"`
}

// NewIndicator maps a result count to its label and colour.
func NewIndicator(n int) Indicator {
	switch {
	case n <= 0:
		return Indicator{Count: 0, Text: "Aucun résultat", State: StateAlert, Color: ColorAlert}
	case n == 1:
		return Indicator{Count: 1, Text: "1 résultat", State: StateOK, Color: ColorOK}
	default:
		return Indicator{Count: n, Text: fmt.Sprintf("%d résultats", n), State: StateOK, Color: ColorOK}
	}
}

// Page is everything the fragment template needs.
type Page struct {
	Variant    Variant
	Sections   []Section
	Count      Indicator
	Empty      bool
	Suggestion string
	Dropped    int
}

// ---------- Assets ----------

// Assets locates champion icons. FS is optional; when set, missing icons
// are replaced by the placeholder at build time instead of in the browser.
type Assets struct {
	Dir string
	Ext string
	FS  fs.FS
}

func DefaultAssets() Assets {
	return Assets{Dir: "champion_icons", Ext: "jpg"}
}

var (
	unsafeFilename = regexp.MustCompile(`[<>:"/\\|?*]`)
	spaceRun       = regexp.MustCompile(`\s+`)
)

// SanitizeFilename replaces path-unsafe characters with '-' and collapses
// whitespace runs.
func SanitizeFilename(name string) string {
	name = unsafeFilename.ReplaceAllString(name, "-")
	return strings.TrimSpace(spaceRun.ReplaceAllString(name, " "))
}

// File is the icon file name relative to Dir.
func (a Assets) File(name string) string {
	ext := strings.TrimPrefix(a.Ext, ".")
	if ext == "" {
		ext = "jpg"
	}
	return SanitizeFilename(name) + "." + ext
}

// Path is the icon URL path used in the page.
func (a Assets) Path(name string) string {
	return path.Join(a.Dir, a.File(name))
}

// Missing reports whether the icon is known to be absent.
func (a Assets) Missing(name string) bool {
	if a.FS == nil {
		return false
	}
	_, err := fs.Stat(a.FS, a.File(name))
	return err != nil
}

// ---------- Build ----------

type Options struct {
	Variant    Variant
	Assets     Assets
	Suggestion string
}

// Build converts grouped champions into a Page. The counter reports the
// number of rendered cards.
func Build(res group.Result, opts Options) Page {
	if opts.Variant == "" {
		opts.Variant = Single
	}
	p := Page{Variant: opts.Variant, Dropped: res.Dropped}
	total := 0
	for _, g := range res.Groups {
		sec := Section{
			Rarity: g.Rarity,
			Class:  ClassName(g.Rarity),
			Count:  len(g.Champions),
		}
		if opts.Variant == Multi && len(g.Ranks) > 0 {
			for _, rg := range g.Ranks {
				sec.Ranks = append(sec.Ranks, RankSection{
					Rank:  rg.Rank,
					Count: len(rg.Champions),
					Cards: cards(rg.Champions, opts.Assets),
				})
			}
		} else {
			sec.Cards = cards(g.Champions, opts.Assets)
		}
		total += sec.Count
		p.Sections = append(p.Sections, sec)
	}
	p.Count = NewIndicator(total)
	p.Empty = total == 0
	if p.Empty {
		p.Suggestion = opts.Suggestion
	}
	return p
}

func cards(list []champion.Champion, a Assets) []Card {
	out := make([]Card, 0, len(list))
	for _, ch := range list {
		out = append(out, NewCard(ch, a))
	}
	return out
}

// NewCard fills the documented defaults for absent optional fields.
func NewCard(ch champion.Champion, a Assets) Card {
	c := Card{
		Name:        ch.Name,
		Faction:     ch.Faction,
		Rarity:      ch.Rarity,
		RarityClass: ClassName(ch.Rarity),
		Rank:        ch.Rank,
		Icon:        a.Path(ch.Name),
		Placeholder: a.Missing(ch.Name),
		URL:         ch.URL,
	}
	if c.Faction == "" {
		c.Faction = DefaultFaction
	}
	for _, s := range ch.Skills {
		sk := Skill{Icon: s.Icon, Title: s.Name}
		if sk.Icon == "" {
			sk.Icon = DefaultSkillIcon
		}
		if sk.Title == "" {
			sk.Title = DefaultSkillName
		}
		c.Skills = append(c.Skills, sk)
	}
	return c
}

// ClassName turns a rarity into a CSS class ("Légendaire" -> "legendaire").
func ClassName(s string) string {
	s = textnorm.Normalize(s)
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ' || r == '-' || r == '_':
			b.WriteByte('-')
		}
	}
	return b.String()
}
