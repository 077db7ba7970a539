package export

import (
	"bytes"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/poku-e/championdex/internal/champion"
)

var sample = []champion.Champion{
	{Name: "Ana", Rarity: "Mythique", Rank: "S", Faction: "Nord", URL: "https://example.com/ana",
		Skills: []champion.Skill{{Name: "Frappe", Icon: "F"}, {Name: "Garde"}}},
	{Name: "Bob", Rarity: "Légendaire", Rank: "A"},
}

func TestCSVDecodesBack(t *testing.T) {
	var buf bytes.Buffer
	if err := CSV(&buf, sample); err != nil {
		t.Fatalf("csv: %v", err)
	}
	got, err := champion.DecodeCSV(&buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !reflect.DeepEqual(got, sample) {
		t.Fatalf("want %+v, got %+v", sample, got)
	}
}

func TestYAMLAndJSONDecodeBack(t *testing.T) {
	var y, j bytes.Buffer
	if err := YAML(&y, sample); err != nil {
		t.Fatalf("yaml: %v", err)
	}
	if err := JSON(&j, sample); err != nil {
		t.Fatalf("json: %v", err)
	}
	fromYAML, err := champion.DecodeYAML(&y)
	if err != nil {
		t.Fatalf("decode yaml: %v", err)
	}
	fromJSON, err := champion.DecodeJSON(&j)
	if err != nil {
		t.Fatalf("decode json: %v", err)
	}
	if len(fromYAML) != 2 || fromYAML[0].Skills[0].Icon != "F" {
		t.Fatalf("unexpected yaml round trip %+v", fromYAML)
	}
	if !reflect.DeepEqual(fromYAML, fromJSON) {
		t.Fatalf("yaml and json disagree: %+v vs %+v", fromYAML, fromJSON)
	}
}

func TestWriteXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "champions.xlsx")
	if err := Write(path, sample); err != nil {
		t.Fatalf("write: %v", err)
	}
	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()
	rows, err := f.GetRows(Sheet)
	if err != nil {
		t.Fatalf("rows: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("want 3 rows, got %d", len(rows))
	}
	if rows[0][0] != "name" || rows[1][0] != "Ana" || rows[1][5] != "Frappe|F;Garde" || rows[2][1] != "Légendaire" {
		t.Fatalf("unexpected rows %v", rows)
	}
}

func TestWriteRejectsUnknownExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "champions.txt")
	if err := Write(path, sample); err == nil {
		t.Fatalf("expected error for .txt")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("no file should be created, stat err = %v", err)
	}
}
