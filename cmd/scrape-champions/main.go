// Command scrape-champions builds a catalogue file from a guide site.
//
// Usage examples:
//
//	go run ./cmd/scrape-champions --url "https://guides.example/champions" --out data/champions.yaml
//	go run ./cmd/scrape-champions --url "https://guides.example/champions" --out champions.xlsx --details
//	go run ./cmd/scrape-champions --config config.yaml --out champions.csv
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"github.com/poku-e/championdex/internal/champion"
	"github.com/poku-e/championdex/internal/config"
	"github.com/poku-e/championdex/internal/export"
	"github.com/poku-e/championdex/internal/logging"
	"github.com/poku-e/championdex/internal/scrape"
)

func main() {
	var (
		cfgPath string
		pageURL string
		outPath string
		card    string
		details bool
	)
	flag.StringVar(&cfgPath, "config", "config.yaml", "Path to the YAML config (optional)")
	flag.StringVar(&pageURL, "url", "", "Listing page URL, overrides scrape.url")
	flag.StringVar(&outPath, "out", "", "Output file (.yaml, .json, .csv or .xlsx) (required)")
	flag.StringVar(&card, "selector", "", "CSS selector for one champion card, overrides scrape.selectors.card")
	flag.BoolVar(&details, "details", false, "Also visit every guide page to collect skills")
	flag.Parse()

	cfg, err := config.LoadOptional(cfgPath)
	if err != nil {
		fatal(err)
	}
	if pageURL != "" {
		cfg.Scrape.URL = pageURL
	}
	if card != "" {
		cfg.Scrape.Selectors.Card = card
	}
	if details {
		cfg.Scrape.Details = true
	}
	if cfg.Scrape.URL == "" || outPath == "" {
		flag.Usage()
		os.Exit(2)
	}

	log, closer, err := logging.New(cfg.Log, "scrape")
	if err != nil {
		fatal(err)
	}
	defer closer.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	s := scrape.New(cfg.Scrape)
	s.OnDetailError = func(ch champion.Champion, err error) {
		log.Warn().Str("champion", ch.Name).Str("url", ch.URL).Err(err).Msg("guide page skipped")
	}

	list, err := s.Run(ctx, cfg.Scrape.URL, cfg.Scrape.Details)
	if err != nil {
		fatal(err)
	}
	if err := export.Write(outPath, list); err != nil {
		fatal(err)
	}
	log.Info().Int("champions", len(list)).Str("out", outPath).Msg("done")
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
	os.Exit(1)
}
