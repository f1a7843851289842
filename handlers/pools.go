package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"megaDeOuro/models"
	"megaDeOuro/services/common"
	"megaDeOuro/services/entryService"
	"megaDeOuro/services/poolService"
	"megaDeOuro/services/prizeService"
)

func poolJSON(pool *models.Pool) gin.H {
	return gin.H{
		"id":              pool.ID,
		"nome":            pool.Name,
		"concurso":        pool.Contest,
		"dataSorteio":     pool.DrawDate,
		"valorJogo":       pool.EntryPriceCents,
		"valorFormatado":  common.FormatMoney(pool.EntryPriceCents),
		"taxaOrganizador": pool.OrganizerFeePct,
		"status":          pool.Status,
		"criadoEm":        pool.CreatedAt,
	}
}

type poolRequest struct {
	Nome            string    `json:"nome"`
	Concurso        string    `json:"concurso"`
	DataSorteio     time.Time `json:"dataSorteio"`
	ValorJogo       int64     `json:"valorJogo"` // cents
	TaxaOrganizador int64     `json:"taxaOrganizador"`
}

// GetActivePool returns the pool currently accepting entries.
func (h *HTTPHandler) GetActivePool(c *gin.Context) {
	pool, err := poolService.ActivePool(h.db)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, poolJSON(pool))
}

func (h *HTTPHandler) GetPool(c *gin.Context) {
	pool, err := poolService.GetPool(h.db, c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, poolJSON(pool))
}

func (h *HTTPHandler) ListPools(c *gin.Context) {
	pools, err := poolService.ListPools(h.db)
	if err != nil {
		h.fail(c, err)
		return
	}

	out := make([]gin.H, len(pools))
	for i := range pools {
		out[i] = poolJSON(&pools[i])
	}
	c.JSON(http.StatusOK, gin.H{"boloes": out})
}

func (h *HTTPHandler) CreatePool(c *gin.Context) {
	var req poolRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "corpo da requisição inválido")
		return
	}

	pool, err := poolService.CreatePool(h.db, poolService.CreatePoolInput{
		Name:            req.Nome,
		Contest:         req.Concurso,
		DrawDate:        req.DataSorteio,
		EntryPriceCents: req.ValorJogo,
		OrganizerFeePct: req.TaxaOrganizador,
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, poolJSON(pool))
}

type poolUpdateRequest struct {
	Nome            *string    `json:"nome"`
	Concurso        *string    `json:"concurso"`
	DataSorteio     *time.Time `json:"dataSorteio"`
	ValorJogo       *int64     `json:"valorJogo"`
	TaxaOrganizador *int64     `json:"taxaOrganizador"`
}

func (h *HTTPHandler) UpdatePool(c *gin.Context) {
	var req poolUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "corpo da requisição inválido")
		return
	}

	pool, err := poolService.UpdatePool(h.db, c.Param("id"), poolService.UpdatePoolInput{
		Name:            req.Nome,
		Contest:         req.Concurso,
		DrawDate:        req.DataSorteio,
		EntryPriceCents: req.ValorJogo,
		OrganizerFeePct: req.TaxaOrganizador,
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, poolJSON(pool))
}

func (h *HTTPHandler) CancelPool(c *gin.Context) {
	pool, err := poolService.CancelPool(h.db, c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, poolJSON(pool))
}

type closePoolRequest struct {
	Numeros []int `json:"numeros"`
}

// ClosePool records the official draw and returns the settlement: match
// counts, tier winners and per-winner shares.
func (h *HTTPHandler) ClosePool(c *gin.Context) {
	var req closePoolRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "corpo da requisição inválido")
		return
	}

	settlement, err := poolService.ClosePool(h.db, c.Param("id"), req.Numeros, h.schedule)
	if err != nil {
		h.fail(c, err)
		return
	}

	tiers := make([]gin.H, len(settlement.Tiers))
	for i, tier := range settlement.Tiers {
		winners := make([]gin.H, len(tier.Winners))
		for wi, w := range tier.Winners {
			winners[wi] = gin.H{
				"jogoId":          w.EntryID,
				"nome":            w.Name,
				"whatsapp":        common.FormatPhone(w.Phone),
				"acertos":         w.Matches,
				"premio":          w.ShareCents,
				"premioFormatado": common.FormatMoney(w.ShareCents),
			}
		}
		tiers[i] = gin.H{
			"faixa":          tier.Label,
			"percentual":     tier.Percent,
			"valor":          tier.AmountCents,
			"valorFormatado": common.FormatMoney(tier.AmountCents),
			"ganhadores":     winners,
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"bolao":               poolJSON(settlement.Pool),
		"resultado":           settlement.Result,
		"jogosPagos":          settlement.PaidEntries,
		"arrecadado":          settlement.TotalCents,
		"taxaOrganizador":     settlement.OrganizerCents,
		"premiacao":           settlement.RemainingCents,
		"arrecadadoFormatado": common.FormatMoney(settlement.TotalCents),
		"faixas":              tiers,
	})
}

// ListParticipants is the public participant list. Numbers stay hidden until
// the pool closes or the draw date passes.
func (h *HTTPHandler) ListParticipants(c *gin.Context) {
	pool, err := poolService.GetPool(h.db, c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}

	entries, err := entryService.ListPaidByPool(h.db, pool.ID)
	if err != nil {
		h.fail(c, err)
		return
	}

	visible := poolService.NumbersVisible(pool, timeNow())
	out := make([]gin.H, len(entries))
	for i, e := range entries {
		item := gin.H{
			"nome":     e.Name,
			"status":   e.Status,
			"criadoEm": e.CreatedAt,
		}
		if visible {
			item["numeros"] = e.Numbers
		}
		out[i] = item
	}

	c.JSON(http.StatusOK, gin.H{
		"bolao":           poolJSON(pool),
		"numerosVisiveis": visible,
		"jogos":           out,
	})
}

// GetPrizeBreakdown previews the split over the value collected so far.
func (h *HTTPHandler) GetPrizeBreakdown(c *gin.Context) {
	pool, err := poolService.GetPool(h.db, c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}

	stats, err := entryService.PoolStats(h.db, pool.ID)
	if err != nil {
		h.fail(c, err)
		return
	}

	breakdown := prizeService.Split(stats.CollectedCents, pool.OrganizerFeePct, h.schedule)

	tiers := make([]gin.H, len(h.schedule.Tiers))
	for i, tier := range h.schedule.Tiers {
		tiers[i] = gin.H{
			"faixa":          tier.Label,
			"percentual":     tier.Percent,
			"valor":          breakdown.TierCents[i],
			"valorFormatado": common.FormatMoney(breakdown.TierCents[i]),
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"tabela":                   h.schedule.Name,
		"arrecadado":               breakdown.TotalCents,
		"arrecadadoFormatado":      common.FormatMoney(breakdown.TotalCents),
		"taxaOrganizador":          breakdown.OrganizerCents,
		"taxaOrganizadorFormatada": common.FormatMoney(breakdown.OrganizerCents),
		"premiacao":                breakdown.RemainingCents,
		"faixas":                   tiers,
	})
}

func (h *HTTPHandler) GetPoolStats(c *gin.Context) {
	pool, err := poolService.GetPool(h.db, c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}

	stats, err := entryService.PoolStats(h.db, pool.ID)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"total":               stats.Total,
		"validados":           stats.Paid,
		"pendentes":           stats.Pending,
		"cancelados":          stats.Canceled,
		"arrecadado":          stats.CollectedCents,
		"arrecadadoFormatado": common.FormatMoney(stats.CollectedCents),
	})
}
