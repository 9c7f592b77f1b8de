package handler

import (
	"net/http"

	"github.com/Omc12/StockSimple/internal/service"

	"github.com/gin-gonic/gin"
)

type DashboardHandler struct{ svc service.LedgerService }

func NewDashboardHandler(svc service.LedgerService) *DashboardHandler {
	return &DashboardHandler{svc: svc}
}

// Alerts returns all products at or below their reorder point, lowest first.
func (h *DashboardHandler) Alerts(c *gin.Context) {
	resp, err := h.svc.Alerts(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
