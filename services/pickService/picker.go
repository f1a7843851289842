package pickService

import (
	"errors"
	"math/rand"
	"sort"

	"megaDeOuro/models"
	"megaDeOuro/services/common"
)

var (
	ErrOutOfRange   = errors.New("número fora do intervalo permitido")
	ErrNotEnough    = errors.New("não há números disponíveis suficientes")
	ErrInvalidCount = errors.New("quantidade inválida")
)

// RandomNumbers draws count distinct numbers uniformly from [1, max] minus
// exclude, using a shrinking candidate list. The result is sorted ascending.
func RandomNumbers(count, max int, exclude []int) ([]int, error) {
	if count < 0 {
		return nil, ErrInvalidCount
	}

	candidates := make([]int, 0, max)
	for n := 1; n <= max; n++ {
		if !common.Contains(exclude, n) {
			candidates = append(candidates, n)
		}
	}
	if count > len(candidates) {
		return nil, ErrNotEnough
	}

	picked := make([]int, 0, count)
	for i := 0; i < count; i++ {
		idx := rand.Intn(len(candidates))
		picked = append(picked, candidates[idx])
		candidates = append(candidates[:idx], candidates[idx+1:]...)
	}

	sort.Ints(picked)
	return picked, nil
}

// Picker builds a bet interactively: manual toggles plus random completion.
// The selection is always kept sorted ascending and capped at
// models.NumbersPerEntry members.
type Picker struct {
	selected models.NumberSet
}

func NewPicker() *Picker {
	return &Picker{}
}

// Toggle removes n when selected, adds it when there is room, and is a no-op
// on a full selection.
func (p *Picker) Toggle(n int) error {
	if n < models.MinNumber || n > models.MaxNumber {
		return ErrOutOfRange
	}

	if p.selected.Contains(n) {
		out := make(models.NumberSet, 0, len(p.selected)-1)
		for _, v := range p.selected {
			if v != n {
				out = append(out, v)
			}
		}
		p.selected = out
		return nil
	}

	if len(p.selected) >= models.NumbersPerEntry {
		return nil
	}
	p.selected = models.NormalizeNumbers(append(p.selected, n))
	return nil
}

// FillRandom completes the selection up to models.NumbersPerEntry with
// numbers not already selected.
func (p *Picker) FillRandom() error {
	missing := models.NumbersPerEntry - len(p.selected)
	if missing <= 0 {
		return nil
	}

	extra, err := RandomNumbers(missing, models.MaxNumber, p.selected)
	if err != nil {
		return err
	}
	p.selected = models.NormalizeNumbers(append(p.selected, extra...))
	return nil
}

func (p *Picker) Clear() {
	p.selected = nil
}

// Complete reports whether the selection is submittable: exactly
// models.NumbersPerEntry members.
func (p *Picker) Complete() bool {
	return len(p.selected) == models.NumbersPerEntry
}

// Selected returns a copy of the current selection.
func (p *Picker) Selected() models.NumberSet {
	out := make(models.NumberSet, len(p.selected))
	copy(out, p.selected)
	return out
}
