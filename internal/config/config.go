package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Data    DataConfig    `yaml:"data"`
	Assets  AssetsConfig  `yaml:"assets"`
	Catalog CatalogConfig `yaml:"catalog"`
	Session SessionConfig `yaml:"session"`
	Log     LogConfig     `yaml:"log"`
	Scrape  ScrapeConfig  `yaml:"scrape"`
}

type ServerConfig struct {
	Addr  string `yaml:"addr"`
	Title string `yaml:"title"`
	// Release switches gin to release mode.
	Release bool `yaml:"release"`
}

type DataConfig struct {
	Path string `yaml:"path"`
}

type AssetsConfig struct {
	Dir string `yaml:"dir"`
	Ext string `yaml:"ext"`
	// Check makes the server stat icon files and render the placeholder
	// for missing ones instead of leaving it to the browser.
	Check bool `yaml:"check"`
}

type CatalogConfig struct {
	Rarities        []string `yaml:"rarities"`
	Ranks           []string `yaml:"ranks"`
	IncludeUnlisted bool     `yaml:"includeUnlisted"`
}

type SessionConfig struct {
	TTL           time.Duration `yaml:"ttl"`
	SweepInterval time.Duration `yaml:"sweepInterval"`
	Cookie        string        `yaml:"cookie"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	File   string `yaml:"file"`
}

type ScrapeConfig struct {
	URL         string        `yaml:"url"`
	Timeout     time.Duration `yaml:"timeout"`
	Details     bool          `yaml:"details"`
	Concurrency int           `yaml:"concurrency"`
	Selectors   Selectors     `yaml:"selectors"`
}

// Selectors are the CSS selectors the scraper uses on the guide pages.
type Selectors struct {
	Card    string `yaml:"card"`
	Name    string `yaml:"name"`
	Rarity  string `yaml:"rarity"`
	Rank    string `yaml:"rank"`
	Faction string `yaml:"faction"`
	Link    string `yaml:"link"`
	Skill   string `yaml:"skill"`
}

func Default() Config {
	return Config{
		Server: ServerConfig{Addr: ":8080", Title: "Champions"},
		Data:   DataConfig{Path: "data/champions.yaml"},
		Assets: AssetsConfig{Dir: "champion_icons", Ext: "jpg"},
		Catalog: CatalogConfig{
			Rarities: []string{"Mythique", "Légendaire"},
			Ranks:    []string{"S", "A", "B", "C", "D"},
		},
		Session: SessionConfig{TTL: 2 * time.Hour, SweepInterval: 10 * time.Minute, Cookie: "championdex_session"},
		Log:     LogConfig{Level: "info", Format: "console"},
		Scrape: ScrapeConfig{
			Timeout:     60 * time.Second,
			Concurrency: 4,
			Selectors: Selectors{
				Card:    ".champion-card",
				Name:    ".champion-name",
				Rarity:  ".champion-rarity",
				Rank:    ".champion-rank",
				Faction: ".champion-faction",
				Link:    "a",
				Skill:   ".skill",
			},
		},
	}
}

// Load reads path over the defaults. A missing file is an error.
func Load(path string) (Config, error) {
	cfg := Default()
	b, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.normalize(); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// LoadOptional is Load, except a missing file yields the defaults.
func LoadOptional(path string) (Config, error) {
	if strings.TrimSpace(path) == "" {
		return Default(), nil
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	return Load(path)
}

func (c *Config) normalize() error {
	def := Default()
	if strings.TrimSpace(c.Server.Addr) == "" {
		c.Server.Addr = def.Server.Addr
	}
	if strings.TrimSpace(c.Data.Path) == "" {
		return errors.New("missing data.path")
	}
	if strings.TrimSpace(c.Assets.Ext) == "" {
		c.Assets.Ext = def.Assets.Ext
	}
	c.Assets.Ext = strings.TrimPrefix(c.Assets.Ext, ".")
	c.Catalog.Rarities = dedupe(c.Catalog.Rarities)
	c.Catalog.Ranks = dedupe(c.Catalog.Ranks)
	if len(c.Catalog.Rarities) == 0 {
		c.Catalog.Rarities = def.Catalog.Rarities
	}
	if len(c.Catalog.Ranks) == 0 {
		c.Catalog.Ranks = def.Catalog.Ranks
	}
	if c.Session.TTL < 0 {
		return fmt.Errorf("session.ttl must not be negative, got %s", c.Session.TTL)
	}
	if strings.TrimSpace(c.Session.Cookie) == "" {
		c.Session.Cookie = def.Session.Cookie
	}
	if c.Scrape.Concurrency <= 0 {
		c.Scrape.Concurrency = 1
	}
	return nil
}

func dedupe(in []string) []string {
	var out []string
	for _, v := range in {
		v = strings.TrimSpace(v)
		if v != "" && !slices.Contains(out, v) {
			out = append(out, v)
		}
	}
	return out
}
