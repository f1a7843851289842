package external

import (
	"testing"
	"time"
)

func TestNumbersParsesZeroPaddedDezenas(t *testing.T) {
	res := MegaSenaResult{Dezenas: []string{"04", "12", "23", "33", "48", "60"}}

	numbers, err := res.Numbers()
	if err != nil {
		t.Fatalf("parsing dezenas: %v", err)
	}
	want := []int{4, 12, 23, 33, 48, 60}
	for i, n := range numbers {
		if n != want[i] {
			t.Errorf("position %d: expected %d, got %d", i, want[i], n)
		}
	}

	res.Dezenas = []string{"04", "xx"}
	if _, err := res.Numbers(); err == nil {
		t.Error("expected error for non-numeric dezena")
	}
}

func TestDrawDate(t *testing.T) {
	res := MegaSenaResult{Data: "14/03/2026"}
	want := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
	if got := res.DrawDate(); !got.Equal(want) {
		t.Errorf("expected %v, got %v", want, got)
	}

	res.Data = "2026-03-14"
	if got := res.DrawDate(); !got.IsZero() {
		t.Errorf("expected zero time for bad format, got %v", got)
	}
}

func TestPrizeEstimateCentsRounds(t *testing.T) {
	tests := []struct {
		name  string
		value float64
		want  int64
	}{
		{name: "whole reais", value: 65000000.0, want: 6500000000},
		{name: "half real", value: 65000000.50, want: 6500000050},
		// 123.45 is not exactly representable; truncation would give 12344.
		{name: "binary float cents", value: 123.45, want: 12345},
		{name: "zero", value: 0, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := MegaSenaResult{ValorAcumulado: tt.value}
			if got := res.PrizeEstimateCents(); got != tt.want {
				t.Errorf("expected %d cents, got %d", tt.want, got)
			}
		})
	}
}
