package model

import "time"

// GoldCategory is one of the six fixed dental-alloy classifications used as pricing key.
type GoldCategory string

const (
	CategoryPorcelain     GoldCategory = "porcelain"
	CategoryInlaySmall    GoldCategory = "inlay_small"
	CategoryInlay         GoldCategory = "inlay"
	CategoryCrownPlatinum GoldCategory = "crown_platinum"
	CategoryCrownStandard GoldCategory = "crown_standard"
	CategoryCrownAlloy    GoldCategory = "crown_alloy"
)

// Categories lists all pricing categories in display order.
func Categories() []GoldCategory {
	return []GoldCategory{
		CategoryPorcelain,
		CategoryInlaySmall,
		CategoryInlay,
		CategoryCrownPlatinum,
		CategoryCrownStandard,
		CategoryCrownAlloy,
	}
}

// ParseCategory validates a raw category tag.
func ParseCategory(raw string) (GoldCategory, bool) {
	switch GoldCategory(raw) {
	case CategoryPorcelain, CategoryInlaySmall, CategoryInlay,
		CategoryCrownPlatinum, CategoryCrownStandard, CategoryCrownAlloy:
		return GoldCategory(raw), true
	}
	return "", false
}

// PriceSource tells callers whether a price table came from storage or
// from the built-in defaults.
type PriceSource string

const (
	PriceSourceTable   PriceSource = "table"
	PriceSourceDefault PriceSource = "default"
)

// PriceTable holds per-category unit prices for one calendar date.
// Amounts are integer currency units per declared item unit.
type PriceTable struct {
	ID            int64
	Date          time.Time
	Porcelain     int64
	InlaySmall    int64
	Inlay         int64
	CrownPlatinum int64
	CrownStandard int64
	CrownAlloy    int64
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Price returns the unit price for a category.
func (t *PriceTable) Price(category GoldCategory) (int64, bool) {
	switch category {
	case CategoryPorcelain:
		return t.Porcelain, true
	case CategoryInlaySmall:
		return t.InlaySmall, true
	case CategoryInlay:
		return t.Inlay, true
	case CategoryCrownPlatinum:
		return t.CrownPlatinum, true
	case CategoryCrownStandard:
		return t.CrownStandard, true
	case CategoryCrownAlloy:
		return t.CrownAlloy, true
	}
	return 0, false
}

// Valid reports whether every category price is positive.
func (t *PriceTable) Valid() bool {
	for _, c := range Categories() {
		if p, _ := t.Price(c); p <= 0 {
			return false
		}
	}
	return true
}

// DefaultPriceTable is the fallback used when no stored table is reachable.
func DefaultPriceTable() PriceTable {
	return PriceTable{
		Porcelain:     55000,
		InlaySmall:    30000,
		Inlay:         60000,
		CrownPlatinum: 75000,
		CrownStandard: 65000,
		CrownAlloy:    45000,
	}
}
