package champion

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ---------- Load ----------

// Load reads a catalogue from path, picking the decoder from the file
// extension (.yaml, .yml, .json, .csv).
func Load(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalogue: %w", err)
	}
	defer func(f *os.File) {
		if cerr := f.Close(); cerr != nil {
			fmt.Fprintf(os.Stderr, "error closing file: %v\n", cerr)
		}
	}(f)

	var list []Champion
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		list, err = DecodeYAML(f)
	case ".json":
		list, err = DecodeJSON(f)
	case ".csv":
		list, err = DecodeCSV(f)
	default:
		return nil, fmt.Errorf("unsupported catalogue format %q", ext)
	}
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return &Catalog{Champions: list, Source: path}, nil
}

// yamlFile accepts both a bare list and a {champions: [...]} document.
type yamlFile struct {
	Champions []Champion `yaml:"champions" json:"champions"`
}

func DecodeYAML(r io.Reader) ([]Champion, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	var doc yamlFile
	if err := yaml.Unmarshal(b, &doc); err != nil || doc.Champions == nil {
		var list []Champion
		if lerr := yaml.Unmarshal(b, &list); lerr != nil {
			if err != nil {
				return nil, err
			}
			return nil, lerr
		}
		doc.Champions = list
	}
	return clean(doc.Champions)
}

func DecodeJSON(r io.Reader) ([]Champion, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	trimmed := strings.TrimSpace(string(b))
	var list []Champion
	if strings.HasPrefix(trimmed, "{") {
		var doc yamlFile
		if err := json.Unmarshal(b, &doc); err != nil {
			return nil, err
		}
		list = doc.Champions
	} else if err := json.Unmarshal(b, &list); err != nil {
		return nil, err
	}
	return clean(list)
}

// CSVHeader is the column layout written by the exporter and read back here.
var CSVHeader = []string{"name", "rarity", "rank", "faction", "url", "skills"}

// DecodeCSV reads name,rarity,rank,faction,url,skills rows. Skills are
// "name|icon" pairs separated by ';'.
func DecodeCSV(r io.Reader) ([]Champion, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("csv has no rows")
	}

	headers := map[string]int{}
	for i, h := range records[0] {
		headers[strings.TrimSpace(strings.ToLower(h))] = i
	}
	col := func(row []string, name string) string {
		i, ok := headers[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}
	for _, req := range []string{"name", "rarity", "rank"} {
		if _, ok := headers[req]; !ok {
			return nil, fmt.Errorf("missing required column: %s", req)
		}
	}

	var list []Champion
	for r := 1; r < len(records); r++ {
		row := records[r]
		if len(row) == 0 || (len(row) == 1 && strings.TrimSpace(row[0]) == "") {
			continue
		}
		list = append(list, Champion{
			Name:    col(row, "name"),
			Rarity:  col(row, "rarity"),
			Rank:    col(row, "rank"),
			Faction: col(row, "faction"),
			URL:     col(row, "url"),
			Skills:  ParseSkills(col(row, "skills")),
		})
	}
	return clean(list)
}

// ParseSkills decodes the CSV skills cell: skills separated by ';', each
// "name" or "name|icon". A backslash before one of `\;|` escapes it; before
// anything else it is kept.
func ParseSkills(cell string) []Skill {
	if strings.TrimSpace(cell) == "" {
		return nil
	}
	var (
		out    []Skill
		field  strings.Builder
		name   string
		inIcon bool
	)
	flush := func() {
		if inIcon {
			out = append(out, Skill{Name: strings.TrimSpace(name), Icon: strings.TrimSpace(field.String())})
		} else if n := strings.TrimSpace(field.String()); n != "" {
			out = append(out, Skill{Name: n})
		}
		field.Reset()
		name, inIcon = "", false
	}
	for i := 0; i < len(cell); i++ {
		c := cell[i]
		switch {
		case c == '\\' && i+1 < len(cell) && strings.IndexByte(skillSpecials, cell[i+1]) >= 0:
			i++
			field.WriteByte(cell[i])
		case c == ';':
			flush()
		case c == '|' && !inIcon:
			name, inIcon = field.String(), true
			field.Reset()
		default:
			field.WriteByte(c)
		}
	}
	flush()
	return out
}

const skillSpecials = `\;|`

var skillEscaper = strings.NewReplacer(`\`, `\\`, `;`, `\;`, `|`, `\|`)

// FormatSkills is the inverse of ParseSkills.
func FormatSkills(skills []Skill) string {
	parts := make([]string, 0, len(skills))
	for _, s := range skills {
		if s.Icon == "" {
			parts = append(parts, skillEscaper.Replace(s.Name))
			continue
		}
		parts = append(parts, skillEscaper.Replace(s.Name)+"|"+skillEscaper.Replace(s.Icon))
	}
	return strings.Join(parts, ";")
}

func clean(list []Champion) ([]Champion, error) {
	for i := range list {
		list[i].Name = strings.TrimSpace(list[i].Name)
		list[i].Rarity = strings.TrimSpace(list[i].Rarity)
		list[i].Rank = strings.ToUpper(strings.TrimSpace(list[i].Rank))
		list[i].Faction = strings.TrimSpace(list[i].Faction)
		list[i].URL = strings.TrimSpace(list[i].URL)
		if list[i].Name == "" {
			return nil, fmt.Errorf("record %d: %w", i+1, ErrMissingName)
		}
	}
	return list, nil
}
