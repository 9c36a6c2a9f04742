package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/stayparse/reservation-import/dto"
	"github.com/stayparse/reservation-import/service"
)

type ImportHandler struct {
	importService *service.ImportService
}

func NewImportHandler(importService *service.ImportService) *ImportHandler {
	return &ImportHandler{
		importService: importService,
	}
}

// Import handles POST /api/v1/reservations/import
func (h *ImportHandler) Import(c *gin.Context) {
	request, ok := bindUpload(c)
	if !ok {
		return
	}

	log.Printf("Import request: file=%s provider=%s context=%s",
		request.File.Filename, request.Provider, request.Context)

	response, err := h.importService.Import(request)
	if err != nil {
		sendServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// bindUpload reads the multipart upload fields shared by the import and
// preview endpoints and validates them.
func bindUpload(c *gin.Context) (*dto.ImportRequest, bool) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		sendError(c, http.StatusBadRequest, "INVALID_REQUEST", "No file provided", err)
		return nil, false
	}

	request := &dto.ImportRequest{
		File:     fileHeader,
		Provider: dto.Provider(c.PostForm("provider")),
		Context:  c.PostForm("context"),
	}
	if err := request.Validate(); err != nil {
		sendError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error(), err)
		return nil, false
	}
	return request, true
}

// sendServiceError maps service errors onto the HTTP surface: busy contexts
// are 409, unreadable text is 422, everything else is a 500.
func sendServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, dto.ErrImportBusy):
		sendError(c, http.StatusConflict, "IMPORT_BUSY", err.Error(), err)
	case errors.Is(err, dto.ErrTextTooShort), errors.Is(err, dto.ErrNoText):
		sendError(c, http.StatusUnprocessableEntity, "TEXT_TOO_SHORT", err.Error(), err)
	default:
		sendError(c, http.StatusInternalServerError, "IMPORT_FAILED", "Failed to import reservation", err)
	}
}

// sendError sends a structured error response
func sendError(c *gin.Context, statusCode int, code, message string, err error) {
	if err != nil {
		log.Printf("Error: %s - %v", message, err)
	}

	c.JSON(statusCode, dto.ErrorResponse{
		Error:   code,
		Message: message,
		Code:    statusCode,
	})
}
