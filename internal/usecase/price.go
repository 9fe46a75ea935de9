package usecase

import (
	"context"
	"errors"
	"time"

	domainErrors "github.com/aurumdent/goldbuy/internal/domain/errors"
	"github.com/aurumdent/goldbuy/internal/domain/model"
	"github.com/aurumdent/goldbuy/internal/domain/repository"
	"github.com/aurumdent/goldbuy/internal/pkg/retry"
)

// quoteDiscountPercent is the fixed buy-back margin applied to the raw
// per-unit sum. The result is floored to an integer currency amount.
const quoteDiscountPercent = 85

// defaultHistoryLimit bounds price history listings.
const defaultHistoryLimit = 30

// MarketFeed supplies externally quoted prices used to seed today's row.
type MarketFeed interface {
	Fetch(ctx context.Context) (*model.PriceTable, error)
}

// PriceUseCase manages the daily price table and quotations.
type PriceUseCase struct {
	prices repository.PriceRepository
	feed   MarketFeed
	clock  func() time.Time
}

// NewPriceUseCase constructs PriceUseCase. feed may be nil when no market
// feed is configured.
func NewPriceUseCase(prices repository.PriceRepository, feed MarketFeed) *PriceUseCase {
	return &PriceUseCase{prices: prices, feed: feed, clock: time.Now}
}

// Estimate computes the quoted buy-back total for the submitted items
// against the given price table. Pure: no side effects, deterministic.
func Estimate(items []model.GoldItem, table *model.PriceTable) (int64, error) {
	var sum int64
	for _, item := range items {
		if item.Quantity <= 0 {
			return 0, domainErrors.ErrInvalidQuantity
		}
		price, ok := table.Price(item.Category)
		if !ok {
			return 0, domainErrors.ErrUnknownCategory
		}
		sum += price * int64(item.Quantity)
	}
	return sum * quoteDiscountPercent / 100, nil
}

func today(clock func() time.Time) time.Time {
	y, m, d := clock().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Current returns the effective price table: the most recent stored row
// with date <= today, or the built-in defaults when storage has no row or
// is unreachable. The source tells callers which one they got.
func (u *PriceUseCase) Current(ctx context.Context) (*model.PriceTable, model.PriceSource) {
	var table *model.PriceTable
	err := retry.Do(ctx, retry.Options{}, func(ctx context.Context) error {
		var innerErr error
		table, innerErr = u.prices.Current(ctx, today(u.clock))
		return innerErr
	})
	if err != nil {
		fallback := model.DefaultPriceTable()
		fallback.Date = today(u.clock)
		return &fallback, model.PriceSourceDefault
	}
	return table, model.PriceSourceTable
}

// Quote estimates the submitted items against the current table.
func (u *PriceUseCase) Quote(ctx context.Context, items []model.GoldItem) (int64, error) {
	table, _ := u.Current(ctx)
	return Estimate(items, table)
}

// Upsert stores the table row for its date after validation.
func (u *PriceUseCase) Upsert(ctx context.Context, table *model.PriceTable) (*model.PriceTable, error) {
	if !table.Valid() {
		return nil, domainErrors.ErrInvalidPrice
	}
	if table.Date.IsZero() {
		table.Date = today(u.clock)
	}
	return u.prices.Upsert(ctx, table)
}

// History returns recent rows, newest first.
func (u *PriceUseCase) History(ctx context.Context, limit int) ([]model.PriceTable, error) {
	if limit <= 0 || limit > defaultHistoryLimit {
		limit = defaultHistoryLimit
	}
	var rows []model.PriceTable
	err := retry.Do(ctx, retry.Options{}, func(ctx context.Context) error {
		var innerErr error
		rows, innerErr = u.prices.History(ctx, limit)
		return innerErr
	})
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return rows, nil
}

// EnsureToday makes sure a row exists for today's date. Idempotent: when
// today's row is already present it is returned unchanged. Otherwise the
// row is seeded from the market feed when available, else carried forward
// from the latest stored row, else the defaults. Returns whether a row
// was written.
func (u *PriceUseCase) EnsureToday(ctx context.Context) (*model.PriceTable, bool, error) {
	day := today(u.clock)

	existing, err := u.prices.GetByDate(ctx, day)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, domainErrors.ErrNotFound) {
		return nil, false, err
	}

	seed := u.seedTable(ctx, day)
	stored, err := u.prices.Upsert(ctx, seed)
	if err != nil {
		return nil, false, err
	}
	return stored, true, nil
}

func (u *PriceUseCase) seedTable(ctx context.Context, day time.Time) *model.PriceTable {
	if u.feed != nil {
		if fetched, err := u.feed.Fetch(ctx); err == nil && fetched.Valid() {
			fetched.Date = day
			return fetched
		}
	}

	if latest, err := u.prices.Current(ctx, day); err == nil {
		carried := *latest
		carried.ID = 0
		carried.Date = day
		return &carried
	}

	fallback := model.DefaultPriceTable()
	fallback.Date = day
	return &fallback
}
