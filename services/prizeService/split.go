package prizeService

import (
	"errors"
	"fmt"

	"megaDeOuro/models"
)

// HitsFewest marks the bracket paid to whichever paid entries ended up with
// the fewest matches, regardless of the count itself.
const HitsFewest = -1

var ErrUnknownSchedule = errors.New("tabela de premiação desconhecida")

// Tier is one prize bracket of a schedule.
type Tier struct {
	Label   string
	Hits    int // exact match count, or HitsFewest
	Percent int64
}

// Schedule is an ordered list of brackets; Tiers[0] is the top prize and
// receives any truncation remainder.
type Schedule struct {
	Name  string
	Tiers []Tier
}

// ThreeTier is the participant-facing breakdown: full match on the six drawn
// numbers, five matches, and a consolation bracket for the fewest matches.
var ThreeTier = Schedule{
	Name: "three_tier",
	Tiers: []Tier{
		{Label: "6 acertos", Hits: models.ResultSize, Percent: 70},
		{Label: "5 acertos", Hits: models.ResultSize - 1, Percent: 10},
		{Label: "menos acertos", Hits: HitsFewest, Percent: 20},
	},
}

// FiveTier ranks the top five match counts.
var FiveTier = Schedule{
	Name: "five_tier",
	Tiers: []Tier{
		{Label: "campeão", Hits: 6, Percent: 60},
		{Label: "vice", Hits: 5, Percent: 20},
		{Label: "terceiro", Hits: 4, Percent: 10},
		{Label: "quarto", Hits: 3, Percent: 7},
		{Label: "quinto", Hits: 2, Percent: 3},
	},
}

// ByName resolves a schedule from configuration.
func ByName(name string) (Schedule, error) {
	switch name {
	case "", ThreeTier.Name:
		return ThreeTier, nil
	case FiveTier.Name:
		return FiveTier, nil
	}
	return Schedule{}, fmt.Errorf("%w: %q", ErrUnknownSchedule, name)
}

// Validate rejects schedules whose percentages do not sum to exactly 100.
func (s Schedule) Validate() error {
	var sum int64
	for _, t := range s.Tiers {
		if t.Percent < 0 {
			return fmt.Errorf("tabela %s: percentual negativo em %q", s.Name, t.Label)
		}
		sum += t.Percent
	}
	if sum != 100 {
		return fmt.Errorf("tabela %s: percentuais somam %d%%, esperado 100%%", s.Name, sum)
	}
	return nil
}

// Breakdown is the money split for a pool: organizer fee off the top, the
// rest divided across the schedule's tiers. All values are integer cents.
type Breakdown struct {
	TotalCents     int64
	OrganizerCents int64
	RemainingCents int64
	TierCents      []int64
}

// Split computes the breakdown. Tier shares are truncated to whole cents and
// the remainder is assigned to the top tier so the tiers always reconcile to
// the remaining pool exactly.
func Split(totalCents int64, feePct int64, s Schedule) Breakdown {
	organizer := totalCents * feePct / 100
	remaining := totalCents - organizer

	tiers := make([]int64, len(s.Tiers))
	var distributed int64
	for i, t := range s.Tiers {
		tiers[i] = remaining * t.Percent / 100
		distributed += tiers[i]
	}
	if len(tiers) > 0 {
		tiers[0] += remaining - distributed
	}

	return Breakdown{
		TotalCents:     totalCents,
		OrganizerCents: organizer,
		RemainingCents: remaining,
		TierCents:      tiers,
	}
}

// PerWinner divides a tier's amount equally; the first winner absorbs the
// division remainder.
func PerWinner(tierCents int64, winnerCount int) (each int64, first int64) {
	if winnerCount <= 0 {
		return 0, 0
	}
	each = tierCents / int64(winnerCount)
	first = tierCents - each*int64(winnerCount-1)
	return each, first
}

// TierFor maps a match count to its tier index, resolving the fewest-matches
// bracket against the pool's observed minimum. Each count lands in at most
// one tier; -1 means the count pays nothing.
func TierFor(matches, fewest int, s Schedule) int {
	for i, t := range s.Tiers {
		want := t.Hits
		if want == HitsFewest {
			want = fewest
		}
		if matches == want {
			return i
		}
	}
	return -1
}

// MatchCount is the size of the intersection between an entry's numbers and
// the drawn result.
func MatchCount(entry, result models.NumberSet) int {
	count := 0
	for _, n := range entry {
		if result.Contains(n) {
			count++
		}
	}
	return count
}
