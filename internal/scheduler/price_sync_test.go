package scheduler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/aurumdent/goldbuy/internal/domain/model"
)

type facadeStub struct {
	calls    int32
	ensureFn func(ctx context.Context) (*model.PriceTable, bool, error)
}

func (s *facadeStub) EnsureTodayPrice(ctx context.Context) (*model.PriceTable, bool, error) {
	atomic.AddInt32(&s.calls, 1)
	if s.ensureFn != nil {
		return s.ensureFn(ctx)
	}
	table := model.DefaultPriceTable()
	table.Date = time.Now()
	return &table, true, nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func TestPriceSyncRunsImmediatelyOnStart(t *testing.T) {
	facade := &facadeStub{}
	sync := NewPriceSync(facade, "0 6 * * *", testLogger())

	if err := sync.Start(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer sync.Stop()

	deadline := time.After(time.Second)
	for atomic.LoadInt32(&facade.calls) == 0 {
		select {
		case <-deadline:
			t.Fatal("timeout waiting for initial sync")
		case <-time.After(10 * time.Millisecond):
		}
	}
}

func TestPriceSyncRejectsBadSchedule(t *testing.T) {
	sync := NewPriceSync(&facadeStub{}, "not a schedule", testLogger())
	if err := sync.Start(context.Background()); err == nil {
		sync.Stop()
		t.Fatal("expected error for invalid schedule")
	}
}

func TestPriceSyncDefaultsSchedule(t *testing.T) {
	sync := NewPriceSync(&facadeStub{}, "", testLogger())
	if sync.schedule != "0 6 * * *" {
		t.Fatalf("unexpected default schedule %q", sync.schedule)
	}
}

func TestPriceSyncSurvivesFacadeErrors(t *testing.T) {
	facade := &facadeStub{ensureFn: func(ctx context.Context) (*model.PriceTable, bool, error) {
		return nil, false, errors.New("feed down")
	}}
	sync := NewPriceSync(facade, "0 6 * * *", testLogger())

	if err := sync.Start(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	deadline := time.After(time.Second)
	for atomic.LoadInt32(&facade.calls) == 0 {
		select {
		case <-deadline:
			t.Fatal("timeout waiting for sync attempt")
		case <-time.After(10 * time.Millisecond):
		}
	}
	sync.Stop()
}
