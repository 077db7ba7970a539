package champion

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestDecodeYAMLDocumentAndList(t *testing.T) {
	doc := `
champions:
  - name: Ana
    rarity: Mythique
    rank: s
    skills:
      - name: Frappe
        icon: F
  - name: Bob
    rarity: Légendaire
    rank: A
    faction: Nord
`
	got, err := DecodeYAML(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 champions, got %d", len(got))
	}
	if got[0].Rank != "S" {
		t.Fatalf("expected rank upper-cased, got %q", got[0].Rank)
	}
	if len(got[0].Skills) != 1 || got[0].Skills[0].Icon != "F" {
		t.Fatalf("unexpected skills: %+v", got[0].Skills)
	}

	list := "- name: Cid\n  rarity: Mythique\n  rank: B\n"
	got, err = DecodeYAML(strings.NewReader(list))
	if err != nil {
		t.Fatalf("decode list failed: %v", err)
	}
	if len(got) != 1 || got[0].Name != "Cid" {
		t.Fatalf("unexpected list decode: %+v", got)
	}
}

func TestDecodeJSON(t *testing.T) {
	got, err := DecodeJSON(strings.NewReader(`[{"name":"Ana","rarity":"Mythique","rank":"S","url":"https://x/ana"}]`))
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if len(got) != 1 || got[0].URL != "https://x/ana" {
		t.Fatalf("unexpected decode: %+v", got)
	}
	got, err = DecodeJSON(strings.NewReader(`{"champions":[{"name":"Bob","rarity":"Légendaire","rank":"A"}]}`))
	if err != nil {
		t.Fatalf("decode doc failed: %v", err)
	}
	if len(got) != 1 || got[0].Name != "Bob" {
		t.Fatalf("unexpected decode: %+v", got)
	}
}

func TestDecodeCSV(t *testing.T) {
	in := "Name,Rarity,Rank,Faction,URL,Skills\n" +
		"Ana,Mythique,S,,https://x/ana,Frappe|F;Garde\n" +
		"\n" +
		"Bob,Légendaire,A,Nord,https://x/bob,\n"
	got, err := DecodeCSV(strings.NewReader(in))
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(got))
	}
	want := []Skill{{Name: "Frappe", Icon: "F"}, {Name: "Garde"}}
	if len(got[0].Skills) != 2 || got[0].Skills[0] != want[0] || got[0].Skills[1] != want[1] {
		t.Fatalf("unexpected skills: %+v", got[0].Skills)
	}
	if got[1].Faction != "Nord" || got[1].Skills != nil {
		t.Fatalf("unexpected second row: %+v", got[1])
	}
}

func TestDecodeCSVMissingColumn(t *testing.T) {
	_, err := DecodeCSV(strings.NewReader("name,rank\nAna,S\n"))
	if err == nil || !strings.Contains(err.Error(), "rarity") {
		t.Fatalf("expected missing rarity column error, got %v", err)
	}
}

func TestMissingNameRejected(t *testing.T) {
	_, err := DecodeJSON(strings.NewReader(`[{"name":"  ","rarity":"Mythique","rank":"S"}]`))
	if !errors.Is(err, ErrMissingName) {
		t.Fatalf("expected ErrMissingName, got %v", err)
	}
}

func TestSkillsRoundTripCell(t *testing.T) {
	skills := []Skill{{Name: "Frappe", Icon: "F"}, {Name: "Garde"}}
	if got := FormatSkills(skills); got != "Frappe|F;Garde" {
		t.Fatalf("unexpected cell: %q", got)
	}
	if ParseSkills("  ") != nil {
		t.Fatalf("expected nil skills for blank cell")
	}
}

func TestSkillsWithSeparatorsInNames(t *testing.T) {
	skills := []Skill{
		{Name: "Coup;double|x", Icon: "icons/coup|1.png"},
		{Name: `Barre\oblique`},
		{Name: `Fin\`, Icon: "F"},
	}
	cell := FormatSkills(skills)
	if got := ParseSkills(cell); !reflect.DeepEqual(got, skills) {
		t.Fatalf("cell %q decoded to %+v", cell, got)
	}

	// Cells written before escaping existed keep their meaning.
	legacy := ParseSkills(`Frappe|icons\frappe.png; Garde ;`)
	want := []Skill{{Name: "Frappe", Icon: `icons\frappe.png`}, {Name: "Garde"}}
	if !reflect.DeepEqual(legacy, want) {
		t.Fatalf("want %+v, got %+v", want, legacy)
	}
}

func TestLoadByExtension(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "champions.yml")
	if err := os.WriteFile(path, []byte("- name: Ana\n  rarity: Mythique\n  rank: S\n"), 0o644); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	cat, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cat.Source != path || len(cat.Champions) != 1 {
		t.Fatalf("unexpected catalogue: %+v", cat)
	}

	if _, err := Load(filepath.Join(dir, "champions.txt")); err == nil {
		t.Fatalf("expected error for missing file")
	}
	bad := filepath.Join(dir, "champions.toml")
	if err := os.WriteFile(bad, nil, 0o644); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	if _, err := Load(bad); err == nil || !strings.Contains(err.Error(), "unsupported") {
		t.Fatalf("expected unsupported format error, got %v", err)
	}
}

func TestStats(t *testing.T) {
	cat := &Catalog{Champions: []Champion{
		{Name: "Ana", Rarity: "Mythique"},
		{Name: "Bob", Rarity: "Légendaire"},
		{Name: "Cid", Rarity: "Mythique"},
	}}
	s := cat.Stats()
	if s.Total != 3 || s.Count("Mythique") != 2 || s.Count("Légendaire") != 1 || s.Count("Rare") != 0 {
		t.Fatalf("unexpected stats: %+v", s)
	}
	if names := cat.Names(); strings.Join(names, ",") != "Ana,Bob,Cid" {
		t.Fatalf("unexpected names: %v", names)
	}
}
