package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/andresuchdata/shrinkguard/backend-go/internal/domain"
	"github.com/andresuchdata/shrinkguard/backend-go/internal/ingest"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubService struct {
	lastFilter      domain.AssessmentFilter
	lastSampleCount int
	items           []domain.InventoryItem
	summary         *domain.AssessmentSummary
	uploadErr       error
}

func (s *stubService) AssessUpload(ctx context.Context, filename string, data []byte) (*domain.AssessmentBatch, []domain.InventoryItem, error) {
	if s.uploadErr != nil {
		return nil, nil, s.uploadErr
	}
	batch := &domain.AssessmentBatch{ID: "batch-1", Source: domain.BatchSourceUpload, ItemCount: len(s.items)}
	return batch, s.items, nil
}

func (s *stubService) AssessSample(ctx context.Context, numItems int) (*domain.AssessmentBatch, []domain.InventoryItem, error) {
	s.lastSampleCount = numItems
	batch := &domain.AssessmentBatch{ID: "batch-2", Source: domain.BatchSourceSample, ItemCount: numItems}
	return batch, s.items, nil
}

func (s *stubService) AssessItems(ctx context.Context, source string, items []domain.InventoryItem) (*domain.AssessmentBatch, []domain.InventoryItem, error) {
	return &domain.AssessmentBatch{ID: "batch-3", Source: source, ItemCount: len(items)}, items, nil
}

func (s *stubService) GetItems(ctx context.Context, filter domain.AssessmentFilter) ([]domain.InventoryItem, int, error) {
	s.lastFilter = filter
	return s.items, len(s.items), nil
}

func (s *stubService) GetSummary(ctx context.Context, filter domain.AssessmentFilter) (*domain.AssessmentSummary, error) {
	s.lastFilter = filter
	return s.summary, nil
}

func (s *stubService) ListBatches(ctx context.Context, limit int) ([]domain.AssessmentBatch, error) {
	return []domain.AssessmentBatch{{ID: "batch-1"}}, nil
}

func newTestRouter(svc *stubService) *gin.Engine {
	return newTestRouterWithBatchSize(svc, 0)
}

func newTestRouterWithBatchSize(svc *stubService, sampleBatchSize int) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	h := NewAssessmentHandler(svc, sampleBatchSize)
	router.POST("/assessments/upload", h.UploadBatch)
	router.POST("/assessments/sample", h.GenerateSample)
	router.GET("/items", h.GetItems)
	router.GET("/summary", h.GetSummary)
	router.GET("/batches", h.ListBatches)

	return router
}

func TestGetItemsParsesFilter(t *testing.T) {
	svc := &stubService{items: []domain.InventoryItem{{SKU: "FRES_001"}}}
	router := newTestRouter(svc)

	req := httptest.NewRequest("GET",
		"/items?risk_level=HIGH,critical&category=Fresh%20Food&store=store_b&recommendation=MARKDOWN&page=2&page_size=10", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []domain.RiskLevel{domain.RiskHigh, domain.RiskCritical}, svc.lastFilter.RiskLevels)
	assert.Equal(t, []domain.Category{domain.CategoryFreshFood}, svc.lastFilter.Categories)
	assert.Equal(t, []domain.StoreLocation{domain.StoreB}, svc.lastFilter.Stores)
	assert.Equal(t, []domain.Strategy{domain.StrategyMarkdown}, svc.lastFilter.Recommendations)
	assert.Equal(t, 2, svc.lastFilter.Page)
	assert.Equal(t, 10, svc.lastFilter.PageSize)

	var body struct {
		Items []domain.InventoryItem `json:"items"`
		Total int                    `json:"total"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, 1, body.Total)
}

func TestGetItemsIgnoresUnknownFilterValues(t *testing.T) {
	svc := &stubService{}
	router := newTestRouter(svc)

	req := httptest.NewRequest("GET", "/items?risk_level=EXTREME&category=Toys", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, svc.lastFilter.RiskLevels)
	assert.Empty(t, svc.lastFilter.Categories)
}

func TestGetSummary(t *testing.T) {
	svc := &stubService{summary: &domain.AssessmentSummary{TotalItems: 5, CriticalItems: 2}}
	router := newTestRouter(svc)

	req := httptest.NewRequest("GET", "/summary?batch_id=abc", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "abc", svc.lastFilter.BatchID)

	var summary domain.AssessmentSummary
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &summary))
	assert.Equal(t, 5, summary.TotalItems)
}

func TestGenerateSampleValidatesCount(t *testing.T) {
	router := newTestRouter(&stubService{})

	req := httptest.NewRequest("POST", "/assessments/sample", strings.NewReader(`{"num_items": -1}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGenerateSampleDefaultsCount(t *testing.T) {
	svc := &stubService{}
	router := newTestRouter(svc)

	req := httptest.NewRequest("POST", "/assessments/sample", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, 20, svc.lastSampleCount)
}

func TestGenerateSampleUsesConfiguredBatchSize(t *testing.T) {
	svc := &stubService{}
	router := newTestRouterWithBatchSize(svc, 35)

	req := httptest.NewRequest("POST", "/assessments/sample", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, 35, svc.lastSampleCount)

	// An explicit request body still wins over the configured size.
	req = httptest.NewRequest("POST", "/assessments/sample", strings.NewReader(`{"num_items": 5}`))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, 5, svc.lastSampleCount)
}

func multipartBody(t *testing.T, filename, content string) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	return &buf, writer.FormDataContentType()
}

func TestUploadBatch(t *testing.T) {
	svc := &stubService{items: []domain.InventoryItem{{SKU: "FRES_001"}}}
	router := newTestRouter(svc)

	body, contentType := multipartBody(t, "inventory.csv", "sku,product_name\n")
	req := httptest.NewRequest("POST", "/assessments/upload", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestUploadBatchMissingColumns(t *testing.T) {
	svc := &stubService{uploadErr: &ingest.ValidationError{MissingColumns: []string{"quantity", "sku"}}}
	router := newTestRouter(svc)

	body, contentType := multipartBody(t, "inventory.csv", "bad\n")
	req := httptest.NewRequest("POST", "/assessments/upload", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp struct {
		Error          string   `json:"error"`
		MissingColumns []string `json:"missing_columns"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, []string{"quantity", "sku"}, resp.MissingColumns)
}

func TestUploadBatchRequiresFile(t *testing.T) {
	router := newTestRouter(&stubService{})

	req := httptest.NewRequest("POST", "/assessments/upload", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
