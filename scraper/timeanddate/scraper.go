package timeanddate

import (
	"context"
	"fmt"
	"strings"
	"time"

	"demand-forecaster/config"
	"demand-forecaster/models"
	"demand-forecaster/utils"

	"github.com/chromedp/chromedp"
)

const (
	daySelector   = `a[href*="/hourly?hd="]`
	tableSelector = `#wt-hbh`

	scrapeTimeout = 15 * time.Minute
)

// Scraper collects hourly forecast rows for every day the weather site
// links from its hourly page
type Scraper struct {
	cfg    *config.Config
	logger *utils.Logger

	ctx    context.Context
	cancel context.CancelFunc
}

// New starts one headless browser for the whole scrape
func New(cfg *config.Config, logger *utils.Logger) *Scraper {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-blink-features", "AutomationControlled"),
		chromedp.Flag("log-level", "3"), // suppress Chrome logs
		chromedp.UserAgent("Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"),
		chromedp.WindowSize(1280, 900),
	)

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(context.Background(), opts...)
	ctx, cancelCtx := chromedp.NewContext(allocCtx, chromedp.WithLogf(func(string, ...interface{}) {}))

	return &Scraper{
		cfg:    cfg,
		logger: logger,
		ctx:    ctx,
		cancel: func() {
			cancelCtx()
			cancelAlloc()
		},
	}
}

// Close shuts the browser down
func (s *Scraper) Close() {
	s.cancel()
}

// Scrape visits each linked day in page order and returns its hourly rows.
// A day whose table never appears is logged and skipped.
func (s *Scraper) Scrape(ctx context.Context) ([]models.RawObservation, error) {
	s.logger.Info("Loading hourly forecast: %s", s.cfg.WeatherURL)

	// Browser actions run on the browser context; the caller's ctx still
	// cancels them.
	bctx, stop := s.browserContext(ctx)
	defer stop()

	bctx, cancelTimeout := context.WithTimeout(bctx, scrapeTimeout)
	defer cancelTimeout()

	days, err := s.discoverDays(bctx)
	if err != nil {
		return nil, fmt.Errorf("day discovery failed: %w", err)
	}
	if len(days) == 0 {
		return nil, fmt.Errorf("no day links found on %s", s.cfg.WeatherURL)
	}
	s.logger.Info("Found %d forecast days", len(days))

	var all []models.RawObservation
	for _, hd := range days {
		if err := ctx.Err(); err != nil {
			return all, err
		}
		obs, err := s.scrapeDay(bctx, hd)
		if err != nil {
			s.logger.Warn("Skipping day %s: %v", hd, err)
			continue
		}
		all = append(all, obs...)
		s.logger.Info("Day %s: collected %d hours (total so far: %d)", hd, len(obs), len(all))
	}

	s.logger.Info("Scraping complete. Total observations: %d", len(all))
	return all, nil
}

func (s *Scraper) browserContext(ctx context.Context) (context.Context, context.CancelFunc) {
	bctx, cancel := context.WithCancel(s.ctx)
	go func() {
		select {
		case <-ctx.Done():
			cancel()
		case <-bctx.Done():
		}
	}()
	return bctx, cancel
}

// discoverDays returns the unique hd values linked from the landing page in
// document order
func (s *Scraper) discoverDays(ctx context.Context) ([]string, error) {
	var hrefs []string
	err := chromedp.Run(ctx,
		chromedp.Navigate(s.cfg.WeatherURL),
		chromedp.Evaluate(fmt.Sprintf(`
			Array.from(document.querySelectorAll('%s')).map(function(a) { return a.href; })
		`, daySelector), &hrefs),
	)
	if err != nil {
		return nil, err
	}

	tracker := utils.NewLinkTracker()
	for _, href := range hrefs {
		hd, ok := DateParam(href)
		if !ok {
			continue
		}
		if !tracker.Add(hd) {
			s.logger.Debug("Duplicate day link %s", hd)
		}
	}
	return tracker.Keys(), nil
}

func (s *Scraper) scrapeDay(ctx context.Context, hd string) ([]models.RawObservation, error) {
	date, err := ParseHD(hd)
	if err != nil {
		return nil, err
	}

	pageURL := s.dayURL(hd)
	if err := chromedp.Run(ctx, chromedp.Navigate(pageURL)); err != nil {
		return nil, fmt.Errorf("navigate failed: %w", err)
	}

	waitCtx, cancel := context.WithTimeout(ctx, s.cfg.PageWait)
	defer cancel()
	if err := chromedp.Run(waitCtx, chromedp.WaitReady(tableSelector, chromedp.ByQuery)); err != nil {
		return nil, fmt.Errorf("waited %s: %w", s.cfg.PageWait, err)
	}

	var rows [][]string
	err = chromedp.Run(ctx, chromedp.Evaluate(fmt.Sprintf(`
		(function() {
			var table = document.querySelector('%s');
			if (!table) return [];
			return Array.from(table.querySelectorAll('tr')).map(function(tr) {
				var cells = Array.from(tr.querySelectorAll('th')).concat(Array.from(tr.querySelectorAll('td')));
				return cells.map(function(c) { return c.innerText.trim(); });
			});
		})()
	`, tableSelector), &rows))
	if err != nil {
		return nil, fmt.Errorf("table JS failed: %w", err)
	}

	return TableToObservations(hd, date, rows, func(row int, err error) {
		s.logger.Warn("  %s row %d skipped: %v", hd, row, err)
	}), nil
}

func (s *Scraper) dayURL(hd string) string {
	base := s.cfg.WeatherURL
	if i := strings.Index(base, "?"); i >= 0 {
		base = base[:i]
	}
	return base + "?hd=" + hd
}
