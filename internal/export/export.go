// Package export writes a champion list as CSV, XLSX, YAML or JSON.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
	"gopkg.in/yaml.v3"

	"github.com/poku-e/championdex/internal/champion"
)

const Sheet = "Champions"

// Write picks the encoder from the extension of path.
func Write(path string, list []champion.Champion) error {
	enc, err := encoderFor(path)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := enc(f, list); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}

func encoderFor(path string) (func(io.Writer, []champion.Champion) error, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".csv":
		return CSV, nil
	case ".xlsx":
		return XLSX, nil
	case ".yaml", ".yml":
		return YAML, nil
	case ".json":
		return JSON, nil
	default:
		return nil, fmt.Errorf("unsupported output format %q (want .csv, .xlsx, .yaml or .json)", ext)
	}
}

func record(ch champion.Champion) []string {
	return []string{ch.Name, ch.Rarity, ch.Rank, ch.Faction, ch.URL, champion.FormatSkills(ch.Skills)}
}

func CSV(w io.Writer, list []champion.Champion) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(champion.CSVHeader); err != nil {
		return err
	}
	for _, ch := range list {
		if err := cw.Write(record(ch)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// XLSX streams the rows into a single sheet.
func XLSX(w io.Writer, list []champion.Champion) error {
	f := excelize.NewFile()
	defer f.Close()
	if err := f.SetSheetName("Sheet1", Sheet); err != nil {
		return err
	}
	sw, err := f.NewStreamWriter(Sheet)
	if err != nil {
		return err
	}
	header := make([]any, len(champion.CSVHeader))
	for i, h := range champion.CSVHeader {
		header[i] = h
	}
	if err := sw.SetRow("A1", header); err != nil {
		return err
	}
	for i, ch := range list {
		rec := record(ch)
		row := make([]any, len(rec))
		for j, v := range rec {
			row[j] = v
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := sw.SetRow(cell, row); err != nil {
			return err
		}
	}
	if err := sw.Flush(); err != nil {
		return err
	}
	_, err = f.WriteTo(w)
	return err
}

type document struct {
	Champions []champion.Champion `yaml:"champions" json:"champions"`
}

func YAML(w io.Writer, list []champion.Champion) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(document{Champions: list}); err != nil {
		return err
	}
	return enc.Close()
}

func JSON(w io.Writer, list []champion.Champion) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(document{Champions: list})
}
