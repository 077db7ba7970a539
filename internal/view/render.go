package view

import (
	"bytes"
	"embed"
	"html/template"
	"io"

	"github.com/poku-e/championdex/internal/champion"
)

//go:embed templates/*.html
var tmplFS embed.FS

var tmpl = template.Must(template.ParseFS(tmplFS, "templates/*.html"))

// RenderFragment writes the champions container content for p.
func RenderFragment(w io.Writer, p Page) error {
	return tmpl.ExecuteTemplate(w, "fragment", p)
}

// FragmentString renders p into a string, for JSON responses.
func FragmentString(p Page) (string, error) {
	var buf bytes.Buffer
	if err := RenderFragment(&buf, p); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// ---------- Full page ----------

type Option struct {
	Value    string
	Label    string
	Selected bool
}

type Toggle struct {
	Value     string
	Axis      string
	Label     string
	Active    bool
	Separator bool
}

type StatItem struct {
	ID    string
	Label string
	Count int
}

type PageData struct {
	Title      string
	Variant    Variant
	Search     string
	Stats      champion.Stats
	StatItems  []StatItem
	Options    []Option
	Toggles    []Toggle
	RankLegend []string
	Result     Page
}

// NewStatItems lists per-rarity counters in the given order.
func NewStatItems(stats champion.Stats, rarities []string) []StatItem {
	out := make([]StatItem, 0, len(rarities))
	for _, r := range rarities {
		out = append(out, StatItem{ID: "count-" + ClassName(r), Label: r, Count: stats.Count(r)})
	}
	return out
}

// SelectOptions builds the dropdown of the single variant.
func SelectOptions(rarities []string, selected string) []Option {
	out := []Option{{Value: "all", Label: "Toutes les raretés", Selected: selected == "" || selected == "all"}}
	for _, r := range rarities {
		out = append(out, Option{Value: r, Label: r, Selected: r == selected})
	}
	return out
}

// Toggles builds the button row of the multi variant: "all", rarities, a
// separator, then ranks. active holds the lit data-filter values.
func Toggles(rarities, ranks, active []string) []Toggle {
	lit := map[string]bool{}
	for _, v := range active {
		lit[v] = true
	}
	out := []Toggle{{Value: "all", Axis: "rarity", Label: "Tous", Active: lit["all"]}}
	for _, r := range rarities {
		out = append(out, Toggle{Value: r, Axis: "rarity", Label: r, Active: lit[r]})
	}
	out = append(out, Toggle{Separator: true})
	for _, r := range ranks {
		out = append(out, Toggle{Value: r, Axis: "rank", Label: "Rang " + r, Active: lit[r]})
	}
	return out
}

// RenderPage writes the complete HTML document.
func RenderPage(w io.Writer, d PageData) error {
	return tmpl.ExecuteTemplate(w, "page", d)
}
