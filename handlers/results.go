package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"megaDeOuro/models/external"
)

// Clock hook for tests.
var timeNow = time.Now

func resultJSON(res *external.MegaSenaResult) gin.H {
	numbers, _ := res.Numbers()
	return gin.H{
		"concurso":        res.Concurso,
		"data":            res.Data,
		"dezenas":         res.Dezenas,
		"numeros":         numbers,
		"acumulou":        res.Acumulou,
		"valorAcumulado":  res.PrizeEstimateCents(),
		"proximoConcurso": res.Concurso + 1,
		"dataProximo":     res.DataProximoConcurso,
	}
}

// GetLatestResult proxies the public feed's most recent contest.
func (h *HTTPHandler) GetLatestResult(c *gin.Context) {
	res := h.results.Latest()
	if res == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "resultado indisponível"})
		return
	}
	c.JSON(http.StatusOK, resultJSON(res))
}

// GetResultByContest proxies one contest by number.
func (h *HTTPHandler) GetResultByContest(c *gin.Context) {
	contest, err := strconv.Atoi(c.Param("concurso"))
	if err != nil || contest <= 0 {
		badRequest(c, "concurso inválido")
		return
	}

	res := h.results.ByContest(contest)
	if res == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "resultado indisponível"})
		return
	}
	c.JSON(http.StatusOK, resultJSON(res))
}
