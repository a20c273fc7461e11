package v1

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"offer-form-backend/config"
	"offer-form-backend/internal/delivery/http/response"
	"offer-form-backend/internal/domain"
	"offer-form-backend/pkg/apperror"
	"offer-form-backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	logger.Init()
	os.Exit(m.Run())
}

type MockOfferUsecase struct {
	mock.Mock
}

func (m *MockOfferUsecase) SubmitOffer(ctx context.Context, q *domain.Quote) error {
	args := m.Called(ctx, q)
	return args.Error(0)
}

func testRouter(uc domain.OfferUsecase) *gin.Engine {
	cfg := &config.Config{
		StaticDir:                "web/static",
		UploadDir:                os.TempDir(),
		PricePerSqm:              55,
		SpecialShapeSurcharge:    0.2,
		RateLimitWindowSeconds:   60,
		RateLimitOfferThreshold:  1000,
		RateLimitGlobalThreshold: 10000,
	}
	return NewRouter(RouterDeps{OfferUC: uc, Config: cfg})
}

func multipartRequest(t *testing.T, fields map[string]string) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for key, value := range fields {
		require.NoError(t, writer.WriteField(key, value))
	}
	require.NoError(t, writer.Close())

	req := httptest.NewRequest("POST", "/v1/send-offer", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func parseResponse(t *testing.T, rec *httptest.ResponseRecorder) response.Response {
	t.Helper()
	var resp response.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestSendOfferSuccess(t *testing.T) {
	uc := new(MockOfferUsecase)
	uc.On("SubmitOffer", mock.Anything, mock.MatchedBy(func(q *domain.Quote) bool {
		return q.Customer.Email == "max@example.com" && len(q.Items) == 1
	})).Return(nil)

	rec := httptest.NewRecorder()
	testRouter(uc).ServeHTTP(rec, multipartRequest(t, validFields()))

	assert.Equal(t, http.StatusOK, rec.Code)
	resp := parseResponse(t, rec)
	assert.True(t, resp.Success)
	assert.Equal(t, "E-Mail gesendet", resp.Message)
	assert.NotEmpty(t, resp.RequestID)
	uc.AssertExpectations(t)
}

func TestSendOfferMalformedField(t *testing.T) {
	uc := new(MockOfferUsecase)

	fields := validFields()
	fields["doorMats[0][length]"] = "zwanzig"

	rec := httptest.NewRecorder()
	testRouter(uc).ServeHTTP(rec, multipartRequest(t, fields))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	resp := parseResponse(t, rec)
	assert.False(t, resp.Success)
	uc.AssertNotCalled(t, "SubmitOffer", mock.Anything, mock.Anything)
}

func TestSendOfferUsecaseError(t *testing.T) {
	uc := new(MockOfferUsecase)
	uc.On("SubmitOffer", mock.Anything, mock.Anything).
		Return(apperror.BadRequest("Nur JPG und PNG erlaubt"))

	rec := httptest.NewRecorder()
	testRouter(uc).ServeHTTP(rec, multipartRequest(t, validFields()))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	resp := parseResponse(t, rec)
	assert.False(t, resp.Success)
	assert.Equal(t, "Nur JPG und PNG erlaubt", resp.Message)
}

func TestSendOfferNotMultipart(t *testing.T) {
	uc := new(MockOfferUsecase)

	req := httptest.NewRequest("POST", "/v1/send-offer", bytes.NewBufferString(`{"firstName":"Max"}`))
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	testRouter(uc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	uc.AssertNotCalled(t, "SubmitOffer", mock.Anything, mock.Anything)
}

func TestOfferConfig(t *testing.T) {
	uc := new(MockOfferUsecase)

	req := httptest.NewRequest("GET", "/v1/offer/config", nil)
	rec := httptest.NewRecorder()
	testRouter(uc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	resp := parseResponse(t, rec)
	require.True(t, resp.Success)

	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, 55.0, data["pricePerSqm"])
	assert.Equal(t, 0.2, data["specialShapeSurcharge"])
}

func TestHealthEndpoint(t *testing.T) {
	req := httptest.NewRequest("GET", "/v1/health", nil)
	rec := httptest.NewRecorder()
	testRouter(new(MockOfferUsecase)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}
