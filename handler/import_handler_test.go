package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stayparse/reservation-import/config"
	"github.com/stayparse/reservation-import/dto"
	"github.com/stayparse/reservation-import/service"
)

// stubProcessor stands in for the PDF boundary so handler tests exercise the
// HTTP surface without real PDF bytes.
type stubProcessor struct {
	text      string
	pageCount int
	err       error
}

func (s *stubProcessor) ExtractText(pdfData []byte) (string, int, error) {
	return s.text, s.pageCount, s.err
}

func bookingFixtureText() string {
	return fmt.Sprintf(`Hotel Playa Sol

NÚMERO DE CONFIRMACIÓN: 1234.567.890
DIRECCIÓN: Calle Mayor 1, 28013 Madrid
ENTRADA
viernes, 31 enero %d
de 15:00 a 00:00
SALIDA
domingo, 8 febrero
de 00:00 a 11:00
`, time.Now().Year()+1)
}

func newTestRouter(text string) (*gin.Engine, *service.SessionRegistry) {
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{MinTextLength: 40, RawTextPreviewLimit: 2000}
	sessions := service.NewSessionRegistry()
	svc := service.NewImportService(&stubProcessor{text: text, pageCount: 1}, sessions, cfg)

	router := gin.New()
	api := router.Group("/api/v1/reservations")
	api.POST("/import", NewImportHandler(svc).Import)
	api.POST("/preview", NewPreviewHandler(svc).Preview)
	api.POST("/apply", NewApplyHandler(svc).Apply)
	return router, sessions
}

// uploadRequest builds the multipart POST body the UI sends.
func uploadRequest(t *testing.T, path, filename, provider, context string) *http.Request {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write([]byte("%PDF-1.4 stub"))
	require.NoError(t, err)
	if provider != "" {
		require.NoError(t, writer.WriteField("provider", provider))
	}
	if context != "" {
		require.NoError(t, writer.WriteField("context", context))
	}
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, path, &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func TestImportEndpointRobustParse(t *testing.T) {
	router, _ := newTestRouter(bookingFixtureText())

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, uploadRequest(t, "/api/v1/reservations/import", "conf.pdf", "", ""))

	require.Equal(t, http.StatusOK, recorder.Code)
	var response dto.ImportResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))
	assert.Equal(t, dto.StatusParsed, response.Status)
	assert.Equal(t, dto.ProviderBooking, response.Provider)
	assert.Equal(t, "1234.567.890", response.Reservation.ConfirmationNumber)
	assert.NotEmpty(t, response.ImportID)
}

func TestImportEndpointMissingFile(t *testing.T) {
	router, _ := newTestRouter(bookingFixtureText())

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	require.NoError(t, writer.WriteField("provider", "auto"))
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/reservations/import", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	var response dto.ErrorResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))
	assert.Equal(t, "INVALID_REQUEST", response.Error)
}

func TestImportEndpointRejectsNonPDF(t *testing.T) {
	router, _ := newTestRouter(bookingFixtureText())

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, uploadRequest(t, "/api/v1/reservations/import", "conf.txt", "", ""))

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestImportEndpointRejectsUnknownProvider(t *testing.T) {
	router, _ := newTestRouter(bookingFixtureText())

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, uploadRequest(t, "/api/v1/reservations/import", "conf.pdf", "expedia", ""))

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestImportEndpointShortText(t *testing.T) {
	router, _ := newTestRouter("too short")

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, uploadRequest(t, "/api/v1/reservations/import", "scan.pdf", "", ""))

	require.Equal(t, http.StatusUnprocessableEntity, recorder.Code)
	var response dto.ErrorResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))
	assert.Equal(t, "TEXT_TOO_SHORT", response.Error)
}

func TestImportEndpointBusyContext(t *testing.T) {
	router, sessions := newTestRouter(bookingFixtureText())
	session := sessions.Get("edit-9")
	require.True(t, session.TryAcquire())
	defer session.Release()

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, uploadRequest(t, "/api/v1/reservations/import", "conf.pdf", "", "edit-9"))

	require.Equal(t, http.StatusConflict, recorder.Code)
	var response dto.ErrorResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))
	assert.Equal(t, "IMPORT_BUSY", response.Error)
}

func TestPreviewEndpoint(t *testing.T) {
	router, _ := newTestRouter(bookingFixtureText())

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, uploadRequest(t, "/api/v1/reservations/preview", "conf.pdf", "", ""))

	require.Equal(t, http.StatusOK, recorder.Code)
	var response dto.PreviewResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))
	assert.Len(t, response.Parses, 3)
	assert.Len(t, response.Scores, 3)
	assert.Contains(t, response.RawText, "Hotel Playa Sol")
}

func TestApplyEndpoint(t *testing.T) {
	router, _ := newTestRouter(bookingFixtureText())

	payload := dto.ApplyRequest{
		Reservation: dto.ParsedReservation{
			Provider:           dto.ProviderBooking,
			ConfirmationNumber: "1234.567.890",
			NotesAppend:        "PIN: 4321",
			Hotel:              dto.HotelDetails{Name: "Hotel Playa Sol", CheckInTime: "15:00"},
		},
		Form: dto.FormValues{HotelName: "My name", CheckInTime: "14:00", Notes: "Bring towels"},
	}
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/reservations/apply", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	require.Equal(t, http.StatusOK, recorder.Code)
	var merged dto.FormValues
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &merged))
	assert.Equal(t, "My name", merged.HotelName, "user input wins")
	assert.Equal(t, "1234.567.890", merged.ConfirmationNumber)
	assert.Equal(t, "15:00", merged.CheckInTime, "time fields always overwritten")
	assert.Equal(t, "Bring towels\nPIN: 4321", merged.Notes)
}

func TestApplyEndpointBadPayload(t *testing.T) {
	router, _ := newTestRouter(bookingFixtureText())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/reservations/apply", bytes.NewReader([]byte("not json")))
	req.Header.Set("Content-Type", "application/json")

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}
