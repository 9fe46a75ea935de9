package repository

import (
	"context"
	"time"

	"github.com/aurumdent/goldbuy/internal/domain/model"
)

// PriceRepository manages daily price table rows.
type PriceRepository interface {
	// Current returns the most recent row with date <= the given day.
	Current(ctx context.Context, day time.Time) (*model.PriceTable, error)
	GetByDate(ctx context.Context, day time.Time) (*model.PriceTable, error)
	Upsert(ctx context.Context, table *model.PriceTable) (*model.PriceTable, error)
	History(ctx context.Context, limit int) ([]model.PriceTable, error)
}
