package scrape

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/poku-e/championdex/internal/champion"
	"github.com/poku-e/championdex/internal/config"
)

var ErrNoChampions = errors.New("parsed 0 champions; check selectors or that the page is server-rendered")

type Scraper struct {
	Fetcher   *Fetcher
	Selectors config.Selectors
	// Concurrency bounds detail page fetches.
	Concurrency int
	// OnDetailError is told about guide pages that could not be read. Those
	// champions keep the skills found on the listing, if any. It may be called
	// from several goroutines at once.
	OnDetailError func(ch champion.Champion, err error)
}

func New(cfg config.ScrapeConfig) *Scraper {
	return &Scraper{
		Fetcher:     NewFetcher(cfg.Timeout),
		Selectors:   cfg.Selectors,
		Concurrency: cfg.Concurrency,
	}
}

// Run scrapes the listing at pageURL. With details set it also visits every
// champion guide to collect skills.
func (s *Scraper) Run(ctx context.Context, pageURL string, details bool) ([]champion.Champion, error) {
	html, base, err := s.Fetcher.Fetch(ctx, pageURL)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", pageURL, err)
	}
	list, err := ParseList(html, base, s.Selectors)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, ErrNoChampions
	}
	if details {
		if err := s.Details(ctx, list); err != nil {
			return nil, err
		}
	}
	return list, nil
}

// Details fills Skills from each champion's guide page in place. Only
// cancellation aborts the run.
func (s *Scraper) Details(ctx context.Context, list []champion.Champion) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(s.Concurrency, 1))
	for i := range list {
		if list[i].URL == "" {
			continue
		}
		g.Go(func() error {
			html, _, err := s.Fetcher.Fetch(ctx, list[i].URL)
			if err == nil {
				var skills []champion.Skill
				if skills, err = ParseSkills(html, s.Selectors.Skill); err == nil && len(skills) > 0 {
					list[i].Skills = skills
				}
			}
			if err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				if s.OnDetailError != nil {
					s.OnDetailError(list[i], err)
				}
			}
			return nil
		})
	}
	return g.Wait()
}
