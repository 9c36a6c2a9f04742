package handler

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/stayparse/reservation-import/service"
)

type PreviewHandler struct {
	importService *service.ImportService
}

func NewPreviewHandler(importService *service.ImportService) *PreviewHandler {
	return &PreviewHandler{
		importService: importService,
	}
}

// Preview handles POST /api/v1/reservations/preview. It always returns the
// diagnostics view: the raw reconstructed text plus every parser's result.
func (h *PreviewHandler) Preview(c *gin.Context) {
	request, ok := bindUpload(c)
	if !ok {
		return
	}

	log.Printf("Preview request: file=%s context=%s", request.File.Filename, request.Context)

	response, err := h.importService.Preview(request)
	if err != nil {
		sendServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}
