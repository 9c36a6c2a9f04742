package handler

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/stayparse/reservation-import/dto"
	"github.com/stayparse/reservation-import/service"
)

type ApplyHandler struct {
	importService *service.ImportService
}

func NewApplyHandler(importService *service.ImportService) *ApplyHandler {
	return &ApplyHandler{
		importService: importService,
	}
}

// Apply handles POST /api/v1/reservations/apply. It merges a parsed
// reservation into the caller's current form values and returns the result;
// the client performs the actual form write.
func (h *ApplyHandler) Apply(c *gin.Context) {
	var request dto.ApplyRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		sendError(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid apply payload", err)
		return
	}

	log.Printf("Apply request: provider=%s conf=%s",
		request.Reservation.Provider, request.Reservation.ConfirmationNumber)

	merged := h.importService.Apply(&request)
	c.JSON(http.StatusOK, merged)
}
