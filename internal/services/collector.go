package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/j-veylop/hackatime-wrapped/internal/db"
	"github.com/j-veylop/hackatime-wrapped/internal/logger"
	"github.com/j-veylop/hackatime-wrapped/internal/models"
	"github.com/j-veylop/hackatime-wrapped/internal/services/hackatime"
)

// ProgressFunc receives the number of finished fetches out of total.
// Calls are serialized and done never decreases.
type ProgressFunc func(done, total int)

// Collector fetches a range of days into the session store.
type Collector struct {
	fetcher   hackatime.DayFetcher
	store     *db.DB
	batchSize int
}

// NewCollector creates a collector. batchSize below 1 is treated as 1.
func NewCollector(fetcher hackatime.DayFetcher, store *db.DB, batchSize int) *Collector {
	return &Collector{
		fetcher:   fetcher,
		store:     store,
		batchSize: max(batchSize, 1),
	}
}

// Collect fetches every day in days and returns them as a record store.
// Batches run one after another and the fetches inside a batch run in
// parallel. A failed or empty fetch becomes a zero record; only storage
// errors and cancellation abort the run.
func (c *Collector) Collect(ctx context.Context, userID string, days []time.Time, progress ProgressFunc) (models.RecordStore, error) {
	if err := c.store.ResetDays(ctx); err != nil {
		return models.RecordStore{}, err
	}

	loc := time.Local
	if len(days) > 0 {
		loc = days[0].Location()
	}

	var (
		mu    sync.Mutex
		done  int
		total = len(days)
	)
	report := func() {
		mu.Lock()
		defer mu.Unlock()
		done++
		if progress != nil {
			progress(done, total)
		}
	}

	for start := 0; start < total; start += c.batchSize {
		if err := ctx.Err(); err != nil {
			return models.RecordStore{}, fmt.Errorf("collection cancelled: %w", err)
		}

		end := min(start+c.batchSize, total)
		var g errgroup.Group
		for _, day := range days[start:end] {
			g.Go(func() error {
				rec := c.fetchOne(ctx, userID, day)
				if err := c.store.InsertDay(ctx, rec); err != nil {
					return err
				}
				report()
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return models.RecordStore{}, fmt.Errorf("failed to store batch: %w", err)
		}
	}

	records, err := c.store.Days(ctx, loc)
	if err != nil {
		return models.RecordStore{}, err
	}
	return models.NewRecordStore(records)
}

func (c *Collector) fetchOne(ctx context.Context, userID string, day time.Time) models.DailyRecord {
	stats, err := c.fetcher.FetchDay(ctx, userID, day)
	if err != nil {
		logger.Warn("failed to fetch day, using zero activity",
			"day", day.Format(time.DateOnly), "error", err)
		return models.ZeroRecord(day)
	}
	if stats == nil {
		logger.Debug("no stats for day", "day", day.Format(time.DateOnly))
		return models.ZeroRecord(day)
	}
	logger.Debug("fetched day", "day", day.Format(time.DateOnly), "seconds", stats.TotalSeconds)
	return models.DailyRecord{Date: day, Stats: *stats, Fetched: true}
}
