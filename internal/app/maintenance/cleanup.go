package maintenance

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/charlesng35/codeshelf/internal/models"
	"github.com/charlesng35/codeshelf/internal/services"
	"github.com/charlesng35/codeshelf/pkg/logger"
	"github.com/charlesng35/codeshelf/pkg/metrics"
)

const defaultDedupeSpec = "@daily"

// SnippetStore is the subset of the snippet service the cleaner needs.
type SnippetStore interface {
	List(ctx context.Context, opts services.ListSnippetsOptions) ([]models.Snippet, error)
	DeleteMany(ctx context.Context, ids []uint) error
}

// Cleaner removes duplicate snippets on a schedule.
type Cleaner struct {
	snippets SnippetStore
	cron     *cron.Cron
	log      *zap.Logger
	schedule string
	strategy Strategy
	dryRun   bool

	mu      sync.RWMutex
	lastRun time.Time
	lastErr error
}

// Option customises the Cleaner.
type Option func(*Cleaner)

// WithCron injects a preconfigured cron instance, primarily for testing.
func WithCron(c *cron.Cron) Option {
	return func(cleaner *Cleaner) {
		if c != nil {
			cleaner.cron = c
		}
	}
}

// WithSchedule overrides the cron specification for the dedupe job.
func WithSchedule(spec string) Option {
	return func(cleaner *Cleaner) {
		if spec != "" {
			cleaner.schedule = spec
		}
	}
}

// WithStrategy selects how the surviving snippet of a group is chosen.
func WithStrategy(strategy Strategy) Option {
	return func(cleaner *Cleaner) {
		if strategy != "" {
			cleaner.strategy = strategy
		}
	}
}

// WithDryRun logs the plan without deleting anything.
func WithDryRun(dryRun bool) Option {
	return func(cleaner *Cleaner) {
		cleaner.dryRun = dryRun
	}
}

// WithLogger replaces the module logger.
func WithLogger(log *zap.Logger) Option {
	return func(cleaner *Cleaner) {
		if log != nil {
			cleaner.log = log
		}
	}
}

// NewCleaner constructs a Cleaner with sensible defaults.
func NewCleaner(snippets SnippetStore, opts ...Option) *Cleaner {
	cleaner := &Cleaner{
		snippets: snippets,
		schedule: defaultDedupeSpec,
		strategy: StrategyQuality,
		log:      logger.WithModule("maintenance"),
	}

	for _, opt := range opts {
		opt(cleaner)
	}

	if cleaner.cron == nil {
		cleaner.cron = cron.New(cron.WithLogger(cron.DiscardLogger))
	}

	return cleaner
}

// Start registers the dedupe job with the cron scheduler and launches it.
func (c *Cleaner) Start() error {
	if c.snippets == nil {
		return nil
	}

	if _, err := c.cron.AddFunc(c.schedule, func() {
		if _, err := c.RunOnce(context.Background()); err != nil {
			c.log.Warn("duplicate cleanup failed", zap.Error(err))
		}
	}); err != nil {
		return err
	}

	c.cron.Start()
	return nil
}

// Stop halts the underlying scheduler, waiting for any running jobs to complete.
func (c *Cleaner) Stop() context.Context {
	if c.cron == nil {
		return context.Background()
	}
	return c.cron.Stop()
}

// LastRun reports when the dedupe job last finished and the error it returned, if any.
func (c *Cleaner) LastRun() (time.Time, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lastRun, c.lastErr
}

func (c *Cleaner) recordRun(err error) {
	c.mu.Lock()
	c.lastRun = time.Now()
	c.lastErr = err
	c.mu.Unlock()
}

// Stats summarises a dedupe run.
type Stats struct {
	Groups  int
	Removed int
	DryRun  bool
}

// RunOnce plans and applies one dedupe pass. A failing group does not stop the others; every
// failure is reported in the returned error.
func (c *Cleaner) RunOnce(ctx context.Context) (stats Stats, err error) {
	defer func() { c.recordRun(err) }()

	if ctx == nil {
		ctx = context.Background()
	}
	if c.snippets == nil {
		return Stats{}, errors.New("dedupe: snippet store is required")
	}

	all, err := c.snippets.List(ctx, services.ListSnippetsOptions{})
	if err != nil {
		return Stats{}, err
	}

	groups := PlanDuplicates(all, c.strategy)
	stats = Stats{Groups: len(groups), DryRun: c.dryRun}

	var errs error
	for _, group := range groups {
		fields := []zap.Field{
			zap.String("title", group.Title),
			zap.Uint("keep_id", group.Keep.ID),
			zap.Uints("remove_ids", group.RemoveIDs()),
		}
		if c.dryRun {
			c.log.Info("duplicate snippets found", fields...)
			continue
		}

		if err := c.snippets.DeleteMany(ctx, group.RemoveIDs()); err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		stats.Removed += len(group.Remove)
		metrics.DuplicateSnippetsRemoved.Add(float64(len(group.Remove)))
		c.log.Info("duplicate snippets removed", fields...)
	}

	return stats, errs
}
