package handler

import (
	"net/http"

	"github.com/Omc12/StockSimple/internal/infra"
	"github.com/Omc12/StockSimple/internal/service"

	"github.com/gin-gonic/gin"
)

type ReportsHandler struct {
	svc         service.LedgerService
	storagePath string
}

func NewReportsHandler(svc service.LedgerService, storagePath string) *ReportsHandler {
	return &ReportsHandler{svc: svc, storagePath: storagePath}
}

const reportSize = 5

func (h *ReportsHandler) TopLow(c *gin.Context) {
	resp, err := h.svc.TopLowStock(c.Request.Context(), reportSize)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// TopLowPDF renders the same report as a downloadable PDF.
func (h *ReportsHandler) TopLowPDF(c *gin.Context) {
	resp, err := h.svc.TopLowStock(c.Request.Context(), reportSize)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	path, err := infra.GenerateStockReportPDF(resp.TopStock, resp.LowStock, h.storagePath)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="stock_report.pdf"`)
	c.Header("Content-Type", "application/pdf")
	c.Status(http.StatusOK)
	c.File(path)
}
