package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"megaDeOuro/models"
	"megaDeOuro/services/common"
	"megaDeOuro/services/entryService"
	"megaDeOuro/services/pickService"
	"megaDeOuro/services/pixService"
)

type createEntryRequest struct {
	BolaoID  string `json:"bolaoId"`
	Nome     string `json:"nome"`
	Whatsapp string `json:"whatsapp"`
	Numeros  []int  `json:"numeros"`
	Valor    int64  `json:"valor"` // cents; 0 uses the pool's price
}

// CreateEntry registers a bet and returns the PIX payment descriptor the
// checkout screen renders.
func (h *HTTPHandler) CreateEntry(c *gin.Context) {
	var req createEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "corpo da requisição inválido")
		return
	}

	entry, err := entryService.CreateEntry(h.db, entryService.CreateEntryInput{
		PoolID:     req.BolaoID,
		Name:       req.Nome,
		Phone:      req.Whatsapp,
		Numbers:    req.Numeros,
		PriceCents: req.Valor,
	})
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":  true,
		"jogoId":   entry.ID,
		"pix":      pixService.Build(h.pixKey, entry.PriceCents, entry.ID),
		"expiraEm": pixService.ExpiresAt(entry.CreatedAt),
	})
}

func entryJSON(entry *models.Entry) gin.H {
	out := gin.H{
		"id":             entry.ID,
		"nome":           entry.Name,
		"whatsapp":       common.FormatPhone(entry.Phone),
		"numeros":        entry.Numbers,
		"valor":          entry.PriceCents,
		"valorFormatado": common.FormatMoney(entry.PriceCents),
		"status":         entry.Status,
		"criadoEm":       entry.CreatedAt,
	}
	if entry.PaidAt != nil {
		out["pagoEm"] = entry.PaidAt
	}
	if entry.Pool.ID != "" {
		out["bolao"] = gin.H{
			"id":       entry.Pool.ID,
			"nome":     entry.Pool.Name,
			"concurso": entry.Pool.Contest,
			"status":   entry.Pool.Status,
		}
	}
	return out
}

// GetEntry returns the entry with its payment descriptor and advisory
// expiry, the payload behind the payment/confirmation screens.
func (h *HTTPHandler) GetEntry(c *gin.Context) {
	entry, err := entryService.GetEntry(h.db, c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}

	out := entryJSON(entry)
	out["pix"] = pixService.Build(h.pixKey, entry.PriceCents, entry.ID)
	out["expiraEm"] = pixService.ExpiresAt(entry.CreatedAt)
	c.JSON(http.StatusOK, out)
}

// GetEntryQR serves the payment code as a scannable PNG.
func (h *HTTPHandler) GetEntryQR(c *gin.Context) {
	entry, err := entryService.GetEntry(h.db, c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}

	png, err := pixService.QRPNG(h.pixKey, entry.PriceCents, entry.ID)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.Data(http.StatusOK, "image/png", png)
}

// ConfirmPayment is the self-service and webhook-facing confirmation path.
// Safe under provider retries: repeats report alreadyConfirmed.
func (h *HTTPHandler) ConfirmPayment(c *gin.Context) {
	result, err := entryService.ConfirmPayment(h.db, c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}

	msg := "Pagamento confirmado com sucesso!"
	if result.AlreadyConfirmed {
		msg = "Pagamento já havia sido confirmado."
	}
	c.JSON(http.StatusOK, gin.H{
		"success":          true,
		"message":          msg,
		"alreadyConfirmed": result.AlreadyConfirmed,
		"status":           result.Entry.Status,
	})
}

type webhookRequest struct {
	JogoID string `json:"jogoId"`
}

// PaymentWebhook maps an inbound provider callback to the idempotent
// confirmation path. No signature verification: suitable for demo flows
// only.
func (h *HTTPHandler) PaymentWebhook(c *gin.Context) {
	var req webhookRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.JogoID == "" {
		badRequest(c, "jogoId não informado")
		return
	}

	result, err := entryService.ConfirmPayment(h.db, req.JogoID)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":          "Webhook processado",
		"alreadyConfirmed": result.AlreadyConfirmed,
	})
}

type setStatusRequest struct {
	Status string `json:"status"`
}

// SetEntryStatus is the admin override used for manual validation and
// cancellation.
func (h *HTTPHandler) SetEntryStatus(c *gin.Context) {
	var req setStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "corpo da requisição inválido")
		return
	}

	entry, err := entryService.SetStatus(h.db, c.Param("id"), models.EntryStatus(req.Status))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, entryJSON(entry))
}

// ListEntriesByPhone is the "meus jogos" lookup. Knowing the phone number is
// the trust model here, so the caller always sees their own numbers.
func (h *HTTPHandler) ListEntriesByPhone(c *gin.Context) {
	phone := c.Query("whatsapp")
	if phone == "" {
		badRequest(c, "informe o whatsapp")
		return
	}

	entries, err := entryService.ListByPhone(h.db, phone)
	if err != nil {
		h.fail(c, err)
		return
	}

	out := make([]gin.H, len(entries))
	for i := range entries {
		out[i] = entryJSON(&entries[i])
	}
	c.JSON(http.StatusOK, gin.H{"jogos": out})
}

type randomNumbersRequest struct {
	Quantidade int   `json:"quantidade"`
	Excluir    []int `json:"excluir"`
}

// RandomNumbers backs the "surpresinha" button: server-side uniform fill.
func (h *HTTPHandler) RandomNumbers(c *gin.Context) {
	req := randomNumbersRequest{Quantidade: models.NumbersPerEntry}
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "corpo da requisição inválido")
			return
		}
		if req.Quantidade == 0 {
			req.Quantidade = models.NumbersPerEntry
		}
	}

	numbers, err := pickService.RandomNumbers(req.Quantidade, models.MaxNumber, req.Excluir)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"numeros": numbers})
}
