package scrape

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/poku-e/championdex/internal/champion"
	"github.com/poku-e/championdex/internal/config"
)

var spaceRe = regexp.MustCompile(`\s+`)

func textCondense(s string) string {
	return strings.TrimSpace(spaceRe.ReplaceAllString(s, " "))
}

func resolve(base *url.URL, ref string) string {
	if ref == "" || base == nil {
		return ref
	}
	ru, err := url.Parse(ref)
	if err != nil {
		return ref
	}
	return base.ResolveReference(ru).String()
}

func first(sel *goquery.Selection) string {
	if sel.Length() == 0 {
		return ""
	}
	return textCondense(sel.First().Text())
}

// field reads the text under selector, falling back to the card's data-attr.
func field(card *goquery.Selection, selector, attr string) string {
	if selector != "" {
		if v := first(card.Find(selector)); v != "" {
			return v
		}
	}
	v, _ := card.Attr("data-" + attr)
	return textCondense(v)
}

// ParseList extracts one champion per card. Cards without a name are
// skipped.
func ParseList(html string, base *url.URL, sel config.Selectors) ([]champion.Champion, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, err
	}
	cards := doc.Find(sel.Card)
	if cards.Length() == 0 {
		return nil, fmt.Errorf("no cards found with selector %q", sel.Card)
	}

	var out []champion.Champion
	cards.Each(func(_ int, card *goquery.Selection) {
		ch := champion.Champion{
			Name:    field(card, sel.Name, "name"),
			Rarity:  field(card, sel.Rarity, "rarity"),
			Rank:    strings.ToUpper(field(card, sel.Rank, "rank")),
			Faction: field(card, sel.Faction, "faction"),
		}
		if ch.Name == "" {
			return
		}
		href, ok := card.Attr("href")
		if !ok && sel.Link != "" {
			href, _ = card.Find(sel.Link).First().Attr("href")
		}
		ch.URL = resolve(base, strings.TrimSpace(href))
		ch.Skills = skillsFrom(card, sel.Skill)
		out = append(out, ch)
	})
	return out, nil
}

// ParseSkills reads the skills of a champion guide page.
func ParseSkills(html string, selector string) ([]champion.Skill, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, err
	}
	return skillsFrom(doc.Selection, selector), nil
}

func skillsFrom(root *goquery.Selection, selector string) []champion.Skill {
	if selector == "" {
		return nil
	}
	var out []champion.Skill
	root.Find(selector).Each(func(_ int, s *goquery.Selection) {
		sk := champion.Skill{Icon: first(s.Find(".skill-icon"))}
		if t, ok := s.Attr("title"); ok {
			sk.Name = textCondense(t)
		}
		if sk.Name == "" {
			sk.Name = first(s.Find(".skill-name"))
		}
		if sk.Name == "" && sk.Icon == "" {
			sk.Name = textCondense(s.Text())
		}
		if sk.Name != "" || sk.Icon != "" {
			out = append(out, sk)
		}
	})
	return out
}
