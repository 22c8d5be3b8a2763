// Package sheetsync pulls the flight log from its source of truth, a
// published Google Sheets CSV export, validates it, and swaps the
// result into the in-memory dataset store.
package sheetsync

import (
	"context"
	"encoding/csv"
	"fmt"
	"net/http"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/jszwec/csvutil"
	"github.com/robfig/cron/v3"

	"github.com/robert-bryson/rsmb.tv/config"
	"github.com/robert-bryson/rsmb.tv/flightdata"
	"github.com/robert-bryson/rsmb.tv/pkg/logger"
)

// Row is one line of the sheet export.
type Row struct {
	Date        string `csv:"Date"`
	Airline     string `csv:"Airline"`
	Origin      string `csv:"Origin"`
	Destination string `csv:"Destination"`
}

// RowError records why one sheet row was rejected.
type RowError struct {
	Row    int    `json:"row"` // 1-based data row number
	Reason string `json:"reason"`
}

// Report summarizes one sync run.
type Report struct {
	FetchedRows int           `json:"fetchedRows"`
	Accepted    int           `json:"accepted"`
	Rejected    int           `json:"rejected"`
	Errors      []RowError    `json:"errors,omitempty"`
	Duration    time.Duration `json:"duration"`
}

// Service fetches and applies sheet syncs.
type Service struct {
	cfg    config.SyncConfig
	store  *flightdata.Store
	client *retryablehttp.Client
	onSwap func() // invoked after a successful swap, e.g. to clear response caches
}

// New creates a sync service. onSwap may be nil.
func New(cfg config.SyncConfig, store *flightdata.Store, onSwap func()) *Service {
	client := retryablehttp.NewClient()
	client.RetryMax = cfg.MaxRetries
	client.HTTPClient.Timeout = cfg.FetchTimeout
	client.Logger = nil

	return &Service{
		cfg:    cfg,
		store:  store,
		client: client,
		onSwap: onSwap,
	}
}

// Run performs one fetch-validate-swap cycle. Rejected rows are
// reported, not fatal; the swap happens whenever at least the fetch and
// parse succeed, mirroring how the sheet itself is curated by hand.
func (s *Service) Run(ctx context.Context) (*Report, error) {
	start := time.Now()

	if s.cfg.SheetCSVURL == "" {
		return nil, fmt.Errorf("sheet sync: no CSV URL configured")
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, s.cfg.SheetCSVURL, nil)
	if err != nil {
		return nil, fmt.Errorf("sheet sync: building request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("sheet sync: fetching sheet: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("sheet sync: unexpected status %d", resp.StatusCode)
	}

	dec, err := csvutil.NewDecoder(csv.NewReader(resp.Body))
	if err != nil {
		return nil, fmt.Errorf("sheet sync: reading CSV header: %w", err)
	}
	var rows []Row
	if err := dec.Decode(&rows); err != nil {
		return nil, fmt.Errorf("sheet sync: decoding CSV: %w", err)
	}

	catalog, _, _ := s.store.Snapshot()
	flights, report := Validate(rows, catalog)
	report.Duration = time.Since(start)

	if err := s.store.ReplaceFlights(flights); err != nil {
		return nil, fmt.Errorf("sheet sync: swapping dataset: %w", err)
	}
	if s.onSwap != nil {
		s.onSwap()
	}

	logger.WithFields(map[string]interface{}{
		"fetched":  report.FetchedRows,
		"accepted": report.Accepted,
		"rejected": report.Rejected,
		"duration": report.Duration,
	}).Info("Sheet sync complete")

	return report, nil
}

// Schedule registers the sync on the given cron runner.
func (s *Service) Schedule(c *cron.Cron) (cron.EntryID, error) {
	return c.AddFunc(s.cfg.CronSchedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*s.cfg.FetchTimeout)
		defer cancel()
		if _, err := s.Run(ctx); err != nil {
			logger.Error(err, "Scheduled sheet sync failed")
		}
	})
}
