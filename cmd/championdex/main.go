package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/poku-e/championdex/internal/champion"
	"github.com/poku-e/championdex/internal/config"
	"github.com/poku-e/championdex/internal/group"
	"github.com/poku-e/championdex/internal/logging"
	"github.com/poku-e/championdex/internal/session"
	"github.com/poku-e/championdex/internal/view"
	"github.com/poku-e/championdex/internal/web"
)

func main() {
	var (
		cfgPath  string
		addr     string
		dataPath string
	)
	flag.StringVar(&cfgPath, "config", "config.yaml", "Path to the YAML config (optional)")
	flag.StringVar(&addr, "addr", "", "Listen address, overrides server.addr")
	flag.StringVar(&dataPath, "data", "", "Catalogue file (.yaml, .json, .csv), overrides data.path")
	flag.Parse()

	cfg, err := config.LoadOptional(cfgPath)
	if err != nil {
		fatal(err)
	}
	if addr != "" {
		cfg.Server.Addr = addr
	}
	if dataPath != "" {
		cfg.Data.Path = dataPath
	}

	log, closer, err := logging.New(cfg.Log, "championdex")
	if err != nil {
		fatal(err)
	}
	defer closer.Close()

	if err := run(cfg, log); err != nil {
		log.Error().Err(err).Msg("server stopped")
		closer.Close()
		os.Exit(1)
	}
}

func run(cfg config.Config, log zerolog.Logger) error {
	cat, err := champion.Load(cfg.Data.Path)
	if err != nil {
		return err
	}
	log.Info().Str("source", cat.Source).Int("champions", len(cat.Champions)).Msg("catalogue loaded")

	assets := view.Assets{Dir: web.IconPrefix, Ext: cfg.Assets.Ext}
	if cfg.Assets.Check {
		assets.FS = os.DirFS(cfg.Assets.Dir)
	}
	if _, err := os.Stat(cfg.Assets.Dir); err != nil {
		log.Warn().Str("dir", cfg.Assets.Dir).Msg("icon directory missing, cards fall back to placeholders")
	}

	sessions := session.NewStore()
	srv := web.NewServer(web.Deps{
		Catalog:  cat,
		Sessions: sessions,
		Policy: group.Policy{
			Rarities:        cfg.Catalog.Rarities,
			Ranks:           cfg.Catalog.Ranks,
			IncludeUnlisted: cfg.Catalog.IncludeUnlisted,
		},
		Assets:  assets,
		IconDir: cfg.Assets.Dir,
		Title:   cfg.Server.Title,
		Cookie:  cfg.Session.Cookie,
		Log:     log,
		Release: cfg.Server.Release,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go sessions.Janitor(ctx, cfg.Session.TTL, cfg.Session.SweepInterval, func(n int) {
		log.Debug().Int("sessions", n).Msg("swept idle sessions")
	})

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start(cfg.Server.Addr) }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
	os.Exit(1)
}
