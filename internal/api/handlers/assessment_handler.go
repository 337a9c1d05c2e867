package handlers

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/andresuchdata/shrinkguard/backend-go/internal/domain"
	"github.com/andresuchdata/shrinkguard/backend-go/internal/ingest"
	"github.com/andresuchdata/shrinkguard/backend-go/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

const (
	maxUploadBytes    = 10 << 20 // 10 MB
	fallbackBatchSize = 20
)

type AssessmentHandler struct {
	service         service.AssessmentService
	sampleBatchSize int
}

func NewAssessmentHandler(service service.AssessmentService, sampleBatchSize int) *AssessmentHandler {
	if sampleBatchSize <= 0 {
		sampleBatchSize = fallbackBatchSize
	}

	return &AssessmentHandler{
		service:         service,
		sampleBatchSize: sampleBatchSize,
	}
}

func (h *AssessmentHandler) parseFilter(c *gin.Context) domain.AssessmentFilter {
	filter := domain.AssessmentFilter{
		Page:     1,
		PageSize: 50,
	}

	if page, err := strconv.Atoi(c.DefaultQuery("page", "1")); err == nil && page > 0 {
		filter.Page = page
	}

	if size, err := strconv.Atoi(c.DefaultQuery("page_size", "50")); err == nil && size > 0 {
		filter.PageSize = size
	}

	if batchID := strings.TrimSpace(c.Query("batch_id")); batchID != "" {
		filter.BatchID = batchID
	}

	for _, raw := range queryList(c, "risk_level") {
		if level, ok := domain.ParseRiskLevel(raw); ok {
			filter.RiskLevels = append(filter.RiskLevels, level)
		}
	}

	for _, raw := range queryList(c, "category") {
		if category, ok := domain.ParseCategory(raw); ok {
			filter.Categories = append(filter.Categories, category)
		}
	}

	for _, raw := range queryList(c, "store") {
		if store, ok := domain.ParseStoreLocation(raw); ok {
			filter.Stores = append(filter.Stores, store)
		}
	}

	for _, raw := range queryList(c, "recommendation") {
		if strategy, ok := domain.ParseStrategy(raw); ok {
			filter.Recommendations = append(filter.Recommendations, strategy)
		}
	}

	return filter
}

// queryList accepts both repeated params and comma-separated values:
//
//	?risk_level=HIGH&risk_level=CRITICAL
//	?risk_level=HIGH,CRITICAL
func queryList(c *gin.Context, param string) []string {
	raw := c.QueryArray(param)
	if len(raw) == 0 {
		if single := strings.TrimSpace(c.Query(param + "s")); single != "" {
			raw = []string{single}
		}
	}

	var values []string
	for _, v := range raw {
		for _, part := range strings.Split(v, ",") {
			part = strings.TrimSpace(part)
			if part != "" {
				values = append(values, part)
			}
		}
	}

	return values
}

// UploadBatch accepts a multipart CSV upload, assesses it, and returns the
// stored batch with its assessed items.
func (h *AssessmentHandler) UploadBatch(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		errorResponse(c, http.StatusBadRequest, "missing file upload")
		return
	}

	if fileHeader.Size > maxUploadBytes {
		errorResponse(c, http.StatusRequestEntityTooLarge, "file too large")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		errorResponse(c, http.StatusBadRequest, "could not open uploaded file")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxUploadBytes))
	if err != nil {
		errorResponse(c, http.StatusBadRequest, "could not read uploaded file")
		return
	}

	batch, items, err := h.service.AssessUpload(c.Request.Context(), fileHeader.Filename, data)
	if err != nil {
		var verr *ingest.ValidationError
		if errors.As(err, &verr) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":           verr.Error(),
				"missing_columns": verr.MissingColumns,
			})
			return
		}
		log.Error().Err(err).Msg("failed to assess uploaded batch")
		errorResponse(c, http.StatusInternalServerError, "failed to assess batch")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"batch": batch,
		"items": items,
	})
}

type sampleRequest struct {
	NumItems int `json:"num_items"`
}

// GenerateSample assesses a generated demo batch. The configured batch size
// applies when the request does not name one.
func (h *AssessmentHandler) GenerateSample(c *gin.Context) {
	req := sampleRequest{NumItems: h.sampleBatchSize}
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			errorResponse(c, http.StatusBadRequest, "invalid request body")
			return
		}
	}

	if req.NumItems <= 0 || req.NumItems > 1000 {
		errorResponse(c, http.StatusBadRequest, "num_items must be between 1 and 1000")
		return
	}

	batch, items, err := h.service.AssessSample(c.Request.Context(), req.NumItems)
	if err != nil {
		log.Error().Err(err).Msg("failed to assess sample batch")
		errorResponse(c, http.StatusInternalServerError, "failed to generate sample batch")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"batch": batch,
		"items": items,
	})
}

func (h *AssessmentHandler) GetItems(c *gin.Context) {
	filter := h.parseFilter(c)

	items, total, err := h.service.GetItems(c.Request.Context(), filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get items")
		errorResponse(c, http.StatusInternalServerError, "failed to get items")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"items":     items,
		"total":     total,
		"page":      filter.Page,
		"page_size": filter.PageSize,
	})
}

func (h *AssessmentHandler) GetSummary(c *gin.Context) {
	filter := h.parseFilter(c)

	summary, err := h.service.GetSummary(c.Request.Context(), filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get summary")
		errorResponse(c, http.StatusInternalServerError, "failed to get summary")
		return
	}

	c.JSON(http.StatusOK, summary)
}

func (h *AssessmentHandler) ListBatches(c *gin.Context) {
	limit := 30
	if v, err := strconv.Atoi(c.DefaultQuery("limit", "30")); err == nil && v > 0 {
		limit = v
	}

	batches, err := h.service.ListBatches(c.Request.Context(), limit)
	if err != nil {
		log.Error().Err(err).Msg("failed to list batches")
		errorResponse(c, http.StatusInternalServerError, "failed to list batches")
		return
	}

	c.JSON(http.StatusOK, gin.H{"batches": batches})
}

func errorResponse(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, gin.H{"error": message})
}
