package external

import (
	"math"
	"strconv"
	"time"
)

// MegaSenaResult mirrors one contest as returned by the public
// loterias-caixa API (https://loteriascaixa-api.herokuapp.com).
type MegaSenaResult struct {
	Concurso            int      `json:"concurso"`
	Data                string   `json:"data"`
	Dezenas             []string `json:"dezenas"`
	Acumulou            bool     `json:"acumulou"`
	ValorAcumulado      float64  `json:"valorAcumuladoProximoConcurso"`
	DataProximoConcurso string   `json:"dataProximoConcurso"`
}

// Numbers parses the zero-padded dezenas into ints.
func (r *MegaSenaResult) Numbers() ([]int, error) {
	out := make([]int, 0, len(r.Dezenas))
	for _, d := range r.Dezenas {
		v, err := strconv.Atoi(d)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// DrawDate parses the feed's dd/mm/yyyy date. Zero time on failure.
func (r *MegaSenaResult) DrawDate() time.Time {
	t, err := time.Parse("02/01/2006", r.Data)
	if err != nil {
		return time.Time{}
	}
	return t
}

// PrizeEstimateCents converts the feed's decimal prize value to minor units,
// rounding so binary-float products like 123.45*100 land on the right cent.
func (r *MegaSenaResult) PrizeEstimateCents() int64 {
	return int64(math.Round(r.ValorAcumulado * 100))
}
