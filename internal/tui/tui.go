// Package tui is a terminal browser over the catalogue with the dropdown
// variant's behaviour.
package tui

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/poku-e/championdex/internal/champion"
	"github.com/poku-e/championdex/internal/filter"
	"github.com/poku-e/championdex/internal/group"
	"github.com/poku-e/championdex/internal/view"
)

const helpText = " [black:gold]tab[-:-] focus  [black:gold]esc[-:-] vider la recherche  [black:gold]ctrl+c[-:-] quitter "

type UI struct {
	app     *tview.Application
	search  *tview.InputField
	rarity  *tview.DropDown
	results *tview.TextView
	status  *tview.TextView

	catalog *champion.Catalog
	policy  group.Policy
	domain  filter.Domain
	state   filter.Single
	focus   []tview.Primitive
}

func New(cat *champion.Catalog, p group.Policy) *UI {
	dom := filter.NewDomain(p.Rarities, p.Ranks, cat.Champions)
	if !p.IncludeUnlisted {
		dom.Rarities = append([]string(nil), p.Rarities...)
	}
	ui := &UI{
		app:     tview.NewApplication(),
		catalog: cat,
		policy:  p,
		domain:  dom,
		state:   filter.NewSingle(),
	}
	ui.build()
	return ui
}

// Run blocks until the user quits.
func (ui *UI) Run() error {
	tview.Styles.PrimitiveBackgroundColor = tcell.ColorBlack
	tview.Styles.BorderColor = tcell.ColorGold
	tview.Styles.TitleColor = tcell.ColorGold
	ui.refresh()
	return ui.app.EnableMouse(true).Run()
}

func (ui *UI) build() {
	ui.search = tview.NewInputField().SetLabel(" Rechercher ").SetFieldWidth(0).SetPlaceholder("nom du champion...")
	ui.search.SetChangedFunc(func(text string) {
		ui.state = ui.state.WithSearch(text)
		ui.refresh()
	})
	ui.search.SetDoneFunc(func(key tcell.Key) {
		if key == tcell.KeyEscape {
			ui.search.SetText("")
		}
	})

	opts := view.SelectOptions(ui.domain.Rarities, filter.All)
	labels := make([]string, len(opts))
	for i, o := range opts {
		labels[i] = o.Label
	}
	ui.rarity = tview.NewDropDown().SetLabel(" Rareté ")
	ui.rarity.SetFieldBackgroundColor(tcell.ColorBlack)
	ui.rarity.SetFieldTextColor(tcell.ColorWhite)
	ui.rarity.SetListStyles(
		tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorBlack),
		tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorGold),
	)
	ui.rarity.SetOptions(labels, func(_ string, i int) {
		if i < 0 || i >= len(opts) {
			return
		}
		if next, err := ui.state.WithRarity(ui.domain, opts[i].Value); err == nil {
			ui.state = next
		}
		ui.refresh()
	})

	ui.results = tview.NewTextView().SetDynamicColors(true).SetWrap(true)
	ui.results.SetBorder(true).SetTitle(fmt.Sprintf(" Champions (%d) ", len(ui.catalog.Champions)))

	ui.status = tview.NewTextView().SetDynamicColors(true)
	ui.rarity.SetCurrentOption(0)

	filters := tview.NewFlex().SetDirection(tview.FlexColumn).
		AddItem(ui.search, 0, 2, true).
		AddItem(ui.rarity, 0, 1, false)
	root := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(filters, 1, 0, true).
		AddItem(ui.results, 0, 1, false).
		AddItem(ui.status, 1, 0, false)

	ui.focus = []tview.Primitive{ui.search, ui.rarity, ui.results}
	root.SetInputCapture(func(ev *tcell.EventKey) *tcell.EventKey {
		switch ev.Key() {
		case tcell.KeyTab:
			ui.cycleFocus(1)
			return nil
		case tcell.KeyBacktab:
			ui.cycleFocus(-1)
			return nil
		}
		return ev
	})
	ui.app.SetRoot(root, true).SetFocus(ui.search)
}

func (ui *UI) cycleFocus(step int) {
	cur := ui.app.GetFocus()
	idx := 0
	for i, p := range ui.focus {
		if p == cur {
			idx = i
			break
		}
	}
	idx = (idx + step + len(ui.focus)) % len(ui.focus)
	ui.app.SetFocus(ui.focus[idx])
}

func (ui *UI) refresh() {
	page := Build(ui.catalog.Champions, ui.state, ui.policy)
	ui.results.SetText(Format(page))
	ui.results.ScrollToBeginning()
	ui.status.SetText(StatusLine(page.Count) + helpText)
}

// Build runs the filter and grouping pipeline for a dropdown state.
func Build(list []champion.Champion, st filter.Single, p group.Policy) view.Page {
	res := group.ByRarity(filter.Apply(list, st.Criteria()), p)
	return view.Build(res, view.Options{Variant: view.Single})
}

// Format renders a page as tview-tagged text.
func Format(p view.Page) string {
	if p.Empty {
		return "[" + view.ColorAlert + "]" + view.EmptyText + "[-]"
	}
	var b strings.Builder
	for i, sec := range p.Sections {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "[gold::b]%s[-::-] [gray](%d champions)[-]\n", tview.Escape(sec.Rarity), sec.Count)
		for _, c := range sec.Cards {
			fmt.Fprintf(&b, "  [aqua]%-2s[-] %s [gray]%s[-]", tview.Escape(c.Rank), tview.Escape(c.Name), tview.Escape(c.Faction))
			if len(c.Skills) == 0 {
				fmt.Fprintf(&b, "  [darkgray]%s[-]", view.NoSkillsText)
			}
			for _, s := range c.Skills {
				fmt.Fprintf(&b, "  %s %s", tview.Escape(s.Icon), tview.Escape(s.Title))
			}
			b.WriteString("\n")
		}
	}
	return b.String()
}

// StatusLine colours the count the same way the web indicator does.
func StatusLine(ind view.Indicator) string {
	return fmt.Sprintf(" [%s]%s[-] ", ind.Color, ind.Text)
}
