package scheduler

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/aurumdent/goldbuy/internal/domain/model"
)

// GoldFacade exposes the subset of application functionality required by the scheduler.
type GoldFacade interface {
	EnsureTodayPrice(ctx context.Context) (*model.PriceTable, bool, error)
}

// PriceSync seeds the daily price row on a cron schedule so the first
// quotation of the day never waits on the market feed.
type PriceSync struct {
	facade   GoldFacade
	schedule string
	logger   *slog.Logger

	cron   *cron.Cron
	cancel context.CancelFunc
	mu     sync.Mutex
}

// NewPriceSync constructs the daily price synchronizer.
func NewPriceSync(facade GoldFacade, schedule string, logger *slog.Logger) *PriceSync {
	if schedule == "" {
		schedule = "0 6 * * *"
	}
	return &PriceSync{
		facade:   facade,
		schedule: schedule,
		logger:   logger,
	}
}

// Start runs one synchronization immediately and then follows the schedule.
func (p *PriceSync) Start(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	runCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	p.cancel = cancel

	p.cron = cron.New()
	if _, err := p.cron.AddFunc(p.schedule, func() {
		p.sync(runCtx)
	}); err != nil {
		cancel()
		return err
	}

	go p.sync(runCtx)
	p.cron.Start()
	return nil
}

// Stop halts the schedule and waits for a running job to finish.
func (p *PriceSync) Stop() {
	p.mu.Lock()
	c := p.cron
	cancel := p.cancel
	p.cron = nil
	p.cancel = nil
	p.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	if c != nil {
		<-c.Stop().Done()
	}
}

func (p *PriceSync) sync(ctx context.Context) {
	syncCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	table, created, err := p.facade.EnsureTodayPrice(syncCtx)
	if err != nil {
		p.logger.Error("price sync failed", slog.String("error", err.Error()))
		return
	}
	if created {
		p.logger.Info("price table seeded",
			slog.String("date", table.Date.Format("2006-01-02")),
			slog.Int64("porcelain", table.Porcelain),
		)
		return
	}
	p.logger.Debug("price table already present", slog.String("date", table.Date.Format("2006-01-02")))
}
