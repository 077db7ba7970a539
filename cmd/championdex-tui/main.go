package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/poku-e/championdex/internal/champion"
	"github.com/poku-e/championdex/internal/config"
	"github.com/poku-e/championdex/internal/group"
	"github.com/poku-e/championdex/internal/tui"
)

func main() {
	var cfgPath, dataPath string
	flag.StringVar(&cfgPath, "config", "config.yaml", "Path to the YAML config (optional)")
	flag.StringVar(&dataPath, "data", "", "Catalogue file, overrides data.path")
	flag.Parse()

	cfg, err := config.LoadOptional(cfgPath)
	if err != nil {
		fatal(err)
	}
	if dataPath != "" {
		cfg.Data.Path = dataPath
	}
	cat, err := champion.Load(cfg.Data.Path)
	if err != nil {
		fatal(err)
	}

	ui := tui.New(cat, group.Policy{
		Rarities:        cfg.Catalog.Rarities,
		Ranks:           cfg.Catalog.Ranks,
		IncludeUnlisted: cfg.Catalog.IncludeUnlisted,
	})
	if err := ui.Run(); err != nil {
		fatal(err)
	}
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
	os.Exit(1)
}
