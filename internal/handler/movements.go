package handler

import (
	"net/http"

	"github.com/Omc12/StockSimple/internal/apierror"
	"github.com/Omc12/StockSimple/internal/dto"
	"github.com/Omc12/StockSimple/internal/middleware"
	"github.com/Omc12/StockSimple/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type MovementsHandler struct{ svc service.LedgerService }

func NewMovementsHandler(svc service.LedgerService) *MovementsHandler {
	return &MovementsHandler{svc: svc}
}

// Record godoc
// @Summary Record a stock movement
// @Tags movements
// @Accept json
// @Produce json
// @Param body body dto.RecordMovementRequest true "Movement"
// @Success 201 {object} dto.RecordMovementResponse
// @Failure 404 {object} apierror.APIError
// @Router /movements [post]
func (h *MovementsHandler) Record(c *gin.Context) {
	var req dto.RecordMovementRequest
	if !bindAndValidate(c, &req) {
		return
	}

	claims := middleware.GetClaims(c)
	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, apierror.New("invalid or expired token"))
		return
	}

	resp, err := h.svc.RecordMovement(c.Request.Context(), userID, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *MovementsHandler) List(c *gin.Context) {
	resp, err := h.svc.ListMovements(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
