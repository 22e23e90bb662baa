package http

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/kanso-habit-engine/internal/adapters/handler/http/middleware"
	"github.com/comitanigiacomo/kanso-habit-engine/internal/core/domain"
	"github.com/comitanigiacomo/kanso-habit-engine/internal/core/services"
)

// maxImportBytes caps backup payload size. A full export of a heavy
// multi-year account stays well under a megabyte.
const maxImportBytes = 10 << 20

type ExchangeHandler struct {
	svc *services.ExchangeService
}

func NewExchangeHandler(svc *services.ExchangeService) *ExchangeHandler {
	return &ExchangeHandler{
		svc: svc,
	}
}

func (h *ExchangeHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/export", h.Export)
	router.POST("/import", h.Import)
}

func (h *ExchangeHandler) Export(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	doc, err := h.svc.Export(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="kanso-backup.json"`)
	c.JSON(http.StatusOK, doc)
}

func (h *ExchangeHandler) Import(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	payload, err := io.ReadAll(io.LimitReader(c.Request.Body, maxImportBytes))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not read request body"})
		return
	}

	count, err := h.svc.Import(c.Request.Context(), userID, payload)
	if err != nil {
		if errors.Is(err, domain.ErrImportFormat) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"imported": count})
}
