package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	domainErrors "github.com/aurumdent/goldbuy/internal/domain/errors"
	"github.com/aurumdent/goldbuy/internal/domain/model"
	"github.com/aurumdent/goldbuy/internal/test"
	"github.com/aurumdent/goldbuy/internal/usecase"
)

func fixedClock(day string) func() time.Time {
	t, _ := time.Parse("2006-01-02", day)
	return func() time.Time { return t }
}

func testTable(date string) *model.PriceTable {
	table := model.DefaultPriceTable()
	if date != "" {
		table.Date, _ = time.Parse("2006-01-02", date)
	}
	return &table
}

func TestEstimateEmptyItemsIsZero(t *testing.T) {
	total, err := usecase.Estimate(nil, testTable(""))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total != 0 {
		t.Fatalf("expected 0, got %d", total)
	}
}

func TestEstimateAppliesDiscount(t *testing.T) {
	table := &model.PriceTable{
		Porcelain: 1, InlaySmall: 1, Inlay: 100000,
		CrownPlatinum: 1, CrownStandard: 1, CrownAlloy: 1,
	}
	items := []model.GoldItem{{Category: model.CategoryInlay, Quantity: 2}}

	total, err := usecase.Estimate(items, table)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total != 170000 {
		t.Fatalf("expected 170000, got %d", total)
	}
}

func TestEstimateFloorsToInteger(t *testing.T) {
	table := testTable("")
	items := []model.GoldItem{{Category: model.CategoryPorcelain, Quantity: 1}}

	// 55000 * 85 / 100 = 46750 exactly; 30001-style sums must floor.
	total, err := usecase.Estimate(items, table)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total != 46750 {
		t.Fatalf("expected 46750, got %d", total)
	}

	odd := &model.PriceTable{
		Porcelain: 3, InlaySmall: 1, Inlay: 1,
		CrownPlatinum: 1, CrownStandard: 1, CrownAlloy: 1,
	}
	total, err = usecase.Estimate(items, odd)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// 3 * 85 / 100 = 2.55, floored.
	if total != 2 {
		t.Fatalf("expected 2, got %d", total)
	}
}

func TestEstimateDeterministic(t *testing.T) {
	table := testTable("")
	items := []model.GoldItem{
		{Category: model.CategoryInlay, Quantity: 2},
		{Category: model.CategoryCrownAlloy, Quantity: 3},
	}
	first, err := usecase.Estimate(items, table)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := 0; i < 10; i++ {
		again, err := usecase.Estimate(items, table)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if again != first {
			t.Fatalf("expected %d every time, got %d", first, again)
		}
	}
}

func TestEstimateValidation(t *testing.T) {
	table := testTable("")

	if _, err := usecase.Estimate([]model.GoldItem{{Category: "scrap", Quantity: 1}}, table); !errors.Is(err, domainErrors.ErrUnknownCategory) {
		t.Fatalf("expected unknown category, got %v", err)
	}
	if _, err := usecase.Estimate([]model.GoldItem{{Category: model.CategoryInlay, Quantity: 0}}, table); !errors.Is(err, domainErrors.ErrInvalidQuantity) {
		t.Fatalf("expected invalid quantity, got %v", err)
	}
	if _, err := usecase.Estimate([]model.GoldItem{{Category: model.CategoryInlay, Quantity: -2}}, table); !errors.Is(err, domainErrors.ErrInvalidQuantity) {
		t.Fatalf("expected invalid quantity, got %v", err)
	}
}

func TestCurrentPrefersStoredTable(t *testing.T) {
	repo := test.NewPriceRepositoryStub()
	stored, _ := repo.Upsert(context.Background(), testTable("2026-08-29"))

	uc := usecase.NewPriceUseCase(repo, nil)
	uc.SetClock(fixedClock("2026-08-30"))

	table, source := uc.Current(context.Background())
	if source != model.PriceSourceTable {
		t.Fatalf("expected table source, got %s", source)
	}
	if table.ID != stored.ID {
		t.Fatalf("expected stored row, got %+v", table)
	}
}

func TestCurrentFallsBackToDefaults(t *testing.T) {
	repo := test.NewPriceRepositoryStub()
	uc := usecase.NewPriceUseCase(repo, nil)
	uc.SetClock(fixedClock("2026-08-30"))

	table, source := uc.Current(context.Background())
	if source != model.PriceSourceDefault {
		t.Fatalf("expected default source, got %s", source)
	}
	defaults := model.DefaultPriceTable()
	if table.Porcelain != defaults.Porcelain || table.CrownAlloy != defaults.CrownAlloy {
		t.Fatalf("expected default prices, got %+v", table)
	}
}

func TestCurrentIgnoresFutureRows(t *testing.T) {
	repo := test.NewPriceRepositoryStub()
	if _, err := repo.Upsert(context.Background(), testTable("2026-09-05")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	uc := usecase.NewPriceUseCase(repo, nil)
	uc.SetClock(fixedClock("2026-08-30"))

	_, source := uc.Current(context.Background())
	if source != model.PriceSourceDefault {
		t.Fatalf("expected default source for future-only rows, got %s", source)
	}
}

func TestUpsertRejectsNonPositivePrices(t *testing.T) {
	repo := test.NewPriceRepositoryStub()
	uc := usecase.NewPriceUseCase(repo, nil)

	bad := testTable("2026-08-30")
	bad.Inlay = 0
	if _, err := uc.Upsert(context.Background(), bad); !errors.Is(err, domainErrors.ErrInvalidPrice) {
		t.Fatalf("expected invalid price, got %v", err)
	}

	negative := testTable("2026-08-30")
	negative.Porcelain = -5
	if _, err := uc.Upsert(context.Background(), negative); !errors.Is(err, domainErrors.ErrInvalidPrice) {
		t.Fatalf("expected invalid price, got %v", err)
	}
}

func TestUpsertDefaultsDateToToday(t *testing.T) {
	repo := test.NewPriceRepositoryStub()
	uc := usecase.NewPriceUseCase(repo, nil)
	uc.SetClock(fixedClock("2026-08-30"))

	stored, err := uc.Upsert(context.Background(), testTable(""))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stored.Date.Format("2006-01-02") != "2026-08-30" {
		t.Fatalf("unexpected date %v", stored.Date)
	}
}

func TestHistoryNewestFirst(t *testing.T) {
	repo := test.NewPriceRepositoryStub()
	uc := usecase.NewPriceUseCase(repo, nil)
	for _, day := range []string{"2026-08-27", "2026-08-29", "2026-08-28"} {
		if _, err := repo.Upsert(context.Background(), testTable(day)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	rows, err := uc.History(context.Background(), 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0].Date.Before(rows[1].Date) {
		t.Fatalf("expected newest first, got %v then %v", rows[0].Date, rows[1].Date)
	}
}

func TestEnsureTodayIdempotent(t *testing.T) {
	repo := test.NewPriceRepositoryStub()
	uc := usecase.NewPriceUseCase(repo, nil)
	uc.SetClock(fixedClock("2026-08-30"))

	first, created, err := uc.EnsureToday(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !created {
		t.Fatal("expected first call to create the row")
	}

	second, created, err := uc.EnsureToday(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created {
		t.Fatal("expected second call to be a no-op")
	}
	if second.ID != first.ID {
		t.Fatalf("expected same row, got %d and %d", first.ID, second.ID)
	}
	if len(repo.Rows) != 1 {
		t.Fatalf("expected exactly one row, got %d", len(repo.Rows))
	}
}

func TestEnsureTodayPrefersFeed(t *testing.T) {
	repo := test.NewPriceRepositoryStub()
	quoted := testTable("")
	quoted.Porcelain = 58000
	uc := usecase.NewPriceUseCase(repo, test.MarketFeedStub{Table: quoted})
	uc.SetClock(fixedClock("2026-08-30"))

	table, created, err := uc.EnsureToday(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !created {
		t.Fatal("expected row to be created")
	}
	if table.Porcelain != 58000 {
		t.Fatalf("expected feed price, got %d", table.Porcelain)
	}
	if table.Date.Format("2006-01-02") != "2026-08-30" {
		t.Fatalf("unexpected date %v", table.Date)
	}
}

func TestEnsureTodayCarriesForwardOnFeedFailure(t *testing.T) {
	repo := test.NewPriceRepositoryStub()
	yesterday := testTable("2026-08-29")
	yesterday.Inlay = 61500
	if _, err := repo.Upsert(context.Background(), yesterday); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	uc := usecase.NewPriceUseCase(repo, test.MarketFeedStub{Err: errors.New("feed down")})
	uc.SetClock(fixedClock("2026-08-30"))

	table, created, err := uc.EnsureToday(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !created {
		t.Fatal("expected row to be created")
	}
	if table.Inlay != 61500 {
		t.Fatalf("expected carried-forward price, got %d", table.Inlay)
	}
}

func TestQuoteUsesCurrentTable(t *testing.T) {
	repo := test.NewPriceRepositoryStub()
	table := testTable("2026-08-30")
	table.Inlay = 100000
	if _, err := repo.Upsert(context.Background(), table); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	uc := usecase.NewPriceUseCase(repo, nil)
	uc.SetClock(fixedClock("2026-08-30"))

	total, err := uc.Quote(context.Background(), []model.GoldItem{{Category: model.CategoryInlay, Quantity: 2}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total != 170000 {
		t.Fatalf("expected 170000, got %d", total)
	}
}
