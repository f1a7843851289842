package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/logger"
	"gorm.io/gorm"

	"megaDeOuro/services/common"
	"megaDeOuro/services/entryService"
	"megaDeOuro/services/extService"
	"megaDeOuro/services/pickService"
	"megaDeOuro/services/poolService"
	"megaDeOuro/services/prizeService"
)

// HTTPHandler holds the dependencies for the API handlers.
type HTTPHandler struct {
	db         *gorm.DB
	results    *extService.Client
	schedule   prizeService.Schedule
	pixKey     string
	adminToken string
}

func NewHTTPHandler(db *gorm.DB, results *extService.Client, schedule prizeService.Schedule, pixKey, adminToken string) *HTTPHandler {
	return &HTTPHandler{
		db:         db,
		results:    results,
		schedule:   schedule,
		pixKey:     pixKey,
		adminToken: adminToken,
	}
}

// RegisterRoutes registers the public and admin API routes.
func (h *HTTPHandler) RegisterRoutes(router *gin.Engine) {
	api := router.Group("/api")

	api.GET("/bolao/ativo", h.GetActivePool)
	api.GET("/bolao/:id", h.GetPool)
	api.GET("/bolao/:id/participantes", h.ListParticipants)
	api.GET("/bolao/:id/premiacao", h.GetPrizeBreakdown)

	api.POST("/jogo", h.CreateEntry)
	api.GET("/jogo/:id", h.GetEntry)
	api.GET("/jogo/:id/qrcode.png", h.GetEntryQR)
	api.POST("/jogo/:id/confirmar", h.ConfirmPayment)
	api.GET("/jogos", h.ListEntriesByPhone)

	api.POST("/pagamento/webhook", h.PaymentWebhook)
	api.POST("/numeros/surpresinha", h.RandomNumbers)

	api.GET("/sorteios/ultimo", h.GetLatestResult)
	api.GET("/sorteios/:concurso", h.GetResultByContest)

	admin := api.Group("/")
	admin.Use(h.AdminRequired())
	admin.GET("/boloes", h.ListPools)
	admin.POST("/bolao", h.CreatePool)
	admin.PUT("/bolao/:id", h.UpdatePool)
	admin.POST("/bolao/:id/encerrar", h.ClosePool)
	admin.POST("/bolao/:id/cancelar", h.CancelPool)
	admin.GET("/bolao/:id/estatisticas", h.GetPoolStats)
	admin.PATCH("/jogo/:id/status", h.SetEntryStatus)
}

// AdminRequired gates organizer routes behind a static token. With no token
// configured every admin call is rejected.
func (h *HTTPHandler) AdminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if h.adminToken == "" || c.GetHeader("X-Admin-Token") != h.adminToken {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "não autorizado"})
			return
		}
		c.Next()
	}
}

var notFoundErrors = []error{
	poolService.ErrPoolNotFound,
	poolService.ErrNoActivePool,
	entryService.ErrEntryNotFound,
}

var validationErrors = []error{
	poolService.ErrActivePoolExists,
	poolService.ErrPoolNotActive,
	poolService.ErrInvalidPoolName,
	poolService.ErrInvalidPrice,
	poolService.ErrInvalidFee,
	poolService.ErrPastDrawDate,
	poolService.ErrInvalidResult,
	poolService.ErrStatusTransition,
	entryService.ErrPoolNotOpen,
	entryService.ErrInvalidName,
	entryService.ErrInvalidPhone,
	entryService.ErrInvalidNumbers,
	entryService.ErrEntryCanceled,
	entryService.ErrBadStatus,
	pickService.ErrOutOfRange,
	pickService.ErrNotEnough,
	pickService.ErrInvalidCount,
}

// fail maps service errors to responses: validation failures become 400s
// with their own message, unknown ids 404s, everything else a logged 500.
func (h *HTTPHandler) fail(c *gin.Context, err error) {
	for _, known := range notFoundErrors {
		if errors.Is(err, known) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
	}
	for _, known := range validationErrors {
		if errors.Is(err, known) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	common.LogError(h.db, "http", err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "erro interno do servidor"})
}

func badRequest(c *gin.Context, msg string) {
	logger.Infof("requisição inválida: %s", msg)
	c.JSON(http.StatusBadRequest, gin.H{"error": msg})
}
