package model

import "testing"

func TestNormalizeStatus(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want RequestStatus
		ok   bool
	}{
		{"canonical", "pending", StatusPending, true},
		{"evaluating", "evaluating", StatusEvaluating, true},
		{"cancelled", "cancelled", StatusCancelled, true},
		{"alias approved", "approved", StatusConfirmed, true},
		{"alias deposited", "deposited", StatusPaid, true},
		{"unknown", "archived", "", false},
		{"empty", "", "", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := NormalizeStatus(tc.raw)
			if ok != tc.ok || got != tc.want {
				t.Fatalf("NormalizeStatus(%q) = %q, %v; want %q, %v", tc.raw, got, ok, tc.want, tc.ok)
			}
		})
	}
}

func TestStatusTransitions(t *testing.T) {
	forward := []RequestStatus{
		StatusPending, StatusShipped, StatusReceived, StatusEvaluating,
		StatusEvaluated, StatusConfirmed, StatusPaid,
	}

	for i := 0; i < len(forward)-1; i++ {
		if !forward[i].CanTransitionTo(forward[i+1]) {
			t.Fatalf("expected %s -> %s to be allowed", forward[i], forward[i+1])
		}
	}

	// no skipping and no backward moves
	if StatusPending.CanTransitionTo(StatusReceived) {
		t.Fatal("pending must not skip to received")
	}
	if StatusEvaluated.CanTransitionTo(StatusEvaluating) {
		t.Fatal("backward transition must be rejected")
	}

	// cancellation from every non-terminal state
	for _, s := range forward[:len(forward)-1] {
		if !s.CanTransitionTo(StatusCancelled) {
			t.Fatalf("expected %s -> cancelled to be allowed", s)
		}
	}
}

func TestTerminalStatusesAcceptNothing(t *testing.T) {
	all := []RequestStatus{
		StatusPending, StatusShipped, StatusReceived, StatusEvaluating,
		StatusEvaluated, StatusConfirmed, StatusPaid, StatusCancelled,
	}
	for _, terminal := range []RequestStatus{StatusPaid, StatusCancelled} {
		if !terminal.Terminal() {
			t.Fatalf("expected %s to be terminal", terminal)
		}
		for _, next := range all {
			if terminal.CanTransitionTo(next) {
				t.Fatalf("terminal %s must not transition to %s", terminal, next)
			}
		}
	}
}

func TestPriceTableLookup(t *testing.T) {
	table := PriceTable{
		Porcelain:     1,
		InlaySmall:    2,
		Inlay:         3,
		CrownPlatinum: 4,
		CrownStandard: 5,
		CrownAlloy:    6,
	}
	want := map[GoldCategory]int64{
		CategoryPorcelain:     1,
		CategoryInlaySmall:    2,
		CategoryInlay:         3,
		CategoryCrownPlatinum: 4,
		CategoryCrownStandard: 5,
		CategoryCrownAlloy:    6,
	}
	for cat, price := range want {
		got, ok := table.Price(cat)
		if !ok || got != price {
			t.Fatalf("Price(%s) = %d, %v; want %d", cat, got, ok, price)
		}
	}
	if _, ok := table.Price("silver"); ok {
		t.Fatal("unknown category must not resolve")
	}
}

func TestPriceTableValid(t *testing.T) {
	table := DefaultPriceTable()
	if !table.Valid() {
		t.Fatal("default table must be valid")
	}
	table.Inlay = 0
	if table.Valid() {
		t.Fatal("zero price must invalidate table")
	}
}

func TestParseCategory(t *testing.T) {
	for _, c := range Categories() {
		if got, ok := ParseCategory(string(c)); !ok || got != c {
			t.Fatalf("ParseCategory(%s) failed", c)
		}
	}
	if _, ok := ParseCategory("bridge"); ok {
		t.Fatal("unknown category accepted")
	}
}

func TestPaymentStatusAdvance(t *testing.T) {
	cases := []struct {
		from, to PaymentStatus
		want     bool
	}{
		{PaymentPending, PaymentProcessing, true},
		{PaymentPending, PaymentFailed, true},
		{PaymentPending, PaymentCompleted, false},
		{PaymentProcessing, PaymentCompleted, true},
		{PaymentProcessing, PaymentFailed, true},
		{PaymentCompleted, PaymentProcessing, false},
		{PaymentFailed, PaymentProcessing, false},
	}
	for _, tc := range cases {
		if got := tc.from.CanAdvanceTo(tc.to); got != tc.want {
			t.Fatalf("%s -> %s = %v, want %v", tc.from, tc.to, got, tc.want)
		}
	}
}
