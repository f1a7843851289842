package prizeService

import (
	"testing"

	"megaDeOuro/models"
)

func assertEqual(t *testing.T, expected, actual interface{}, msg string) {
	t.Helper()
	if expected != actual {
		t.Errorf("%s: expected %v, got %v", msg, expected, actual)
	}
}

func TestSchedulesSumToOneHundred(t *testing.T) {
	for _, s := range []Schedule{ThreeTier, FiveTier} {
		if err := s.Validate(); err != nil {
			t.Errorf("schedule %s failed validation: %v", s.Name, err)
		}
	}
}

func TestByName(t *testing.T) {
	s, err := ByName("")
	if err != nil {
		t.Fatalf("default schedule: %v", err)
	}
	assertEqual(t, ThreeTier.Name, s.Name, "empty name defaults to three_tier")

	s, err = ByName("five_tier")
	if err != nil {
		t.Fatalf("five_tier: %v", err)
	}
	assertEqual(t, FiveTier.Name, s.Name, "five_tier resolved")

	if _, err = ByName("six_tier"); err == nil {
		t.Error("expected error for unknown schedule")
	}
}

func TestSplit(t *testing.T) {
	tests := []struct {
		name          string
		totalCents    int64
		feePct        int64
		wantOrganizer int64
		wantRemaining int64
		wantTiers     []int64
	}{
		{
			name:          "round split",
			totalCents:    1000,
			feePct:        10,
			wantOrganizer: 100,
			wantRemaining: 900,
			wantTiers:     []int64{630, 90, 180},
		},
		{
			name:          "three paid entries at R$50",
			totalCents:    15000,
			feePct:        10,
			wantOrganizer: 1500,
			wantRemaining: 13500,
			wantTiers:     []int64{9450, 1350, 2700},
		},
		{
			name:          "truncation remainder goes to top tier",
			totalCents:    1010,
			feePct:        10,
			wantOrganizer: 101,
			wantRemaining: 909,
			wantTiers:     []int64{638, 90, 181}, // 636+90+181=907, +2 cents to top
		},
		{
			name:          "zero fee",
			totalCents:    1000,
			feePct:        0,
			wantOrganizer: 0,
			wantRemaining: 1000,
			wantTiers:     []int64{700, 100, 200},
		},
		{
			name:          "empty pool",
			totalCents:    0,
			feePct:        10,
			wantOrganizer: 0,
			wantRemaining: 0,
			wantTiers:     []int64{0, 0, 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Split(tt.totalCents, tt.feePct, ThreeTier)
			assertEqual(t, tt.wantOrganizer, got.OrganizerCents, "organizer share")
			assertEqual(t, tt.wantRemaining, got.RemainingCents, "remaining pool")

			var sum int64
			for i, want := range tt.wantTiers {
				assertEqual(t, want, got.TierCents[i], ThreeTier.Tiers[i].Label)
				sum += got.TierCents[i]
			}
			assertEqual(t, tt.wantRemaining, sum, "tiers reconcile to remaining pool")
		})
	}
}

func TestSplitFiveTierReconciles(t *testing.T) {
	got := Split(123457, 10, FiveTier)

	var sum int64
	for _, c := range got.TierCents {
		sum += c
	}
	assertEqual(t, got.RemainingCents, sum, "five-tier reconciliation")
	assertEqual(t, got.TotalCents-got.OrganizerCents, got.RemainingCents, "remaining definition")
}

func TestPerWinner(t *testing.T) {
	tests := []struct {
		name      string
		tierCents int64
		winners   int
		wantEach  int64
		wantFirst int64
	}{
		{name: "single winner takes all", tierCents: 9450, winners: 1, wantEach: 9450, wantFirst: 9450},
		{name: "even division", tierCents: 900, winners: 3, wantEach: 300, wantFirst: 300},
		{name: "remainder to first winner", tierCents: 1000, winners: 3, wantEach: 333, wantFirst: 334},
		{name: "no winners", tierCents: 1000, winners: 0, wantEach: 0, wantFirst: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			each, first := PerWinner(tt.tierCents, tt.winners)
			assertEqual(t, tt.wantEach, each, "per-winner share")
			assertEqual(t, tt.wantFirst, first, "first-winner share")

			if tt.winners > 0 {
				total := first + each*int64(tt.winners-1)
				assertEqual(t, tt.tierCents, total, "shares reconcile to tier amount")
			}
		})
	}
}

func TestTierFor(t *testing.T) {
	tests := []struct {
		name     string
		matches  int
		fewest   int
		schedule Schedule
		want     int
	}{
		{name: "full match tops three_tier", matches: 6, fewest: 1, schedule: ThreeTier, want: 0},
		{name: "five matches", matches: 5, fewest: 1, schedule: ThreeTier, want: 1},
		{name: "fewest bracket", matches: 1, fewest: 1, schedule: ThreeTier, want: 2},
		{name: "middle count pays nothing", matches: 3, fewest: 1, schedule: ThreeTier, want: -1},
		{name: "full match outranks fewest when everyone hits", matches: 6, fewest: 6, schedule: ThreeTier, want: 0},
		{name: "two matches in five_tier", matches: 2, fewest: 0, schedule: FiveTier, want: 4},
		{name: "one match in five_tier pays nothing", matches: 1, fewest: 0, schedule: FiveTier, want: -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertEqual(t, tt.want, TierFor(tt.matches, tt.fewest, tt.schedule), "tier index")
		})
	}
}

func TestMatchCount(t *testing.T) {
	result := models.NumberSet{4, 12, 23, 33, 48, 60}

	tests := []struct {
		name  string
		entry models.NumberSet
		want  int
	}{
		{name: "no matches", entry: models.NumberSet{1, 2, 3, 5, 6, 7, 8, 9, 10, 11}, want: 0},
		{name: "all six", entry: models.NumberSet{4, 12, 23, 33, 48, 60, 1, 2, 3, 5}, want: 6},
		{name: "partial", entry: models.NumberSet{4, 12, 20, 21, 22, 24, 25, 26, 27, 28}, want: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertEqual(t, tt.want, MatchCount(tt.entry, result), "match count")
		})
	}
}
