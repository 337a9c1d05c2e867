// internal/api/api.go
package api

import (
	"strings"
	"time"

	"github.com/andresuchdata/shrinkguard/backend-go/internal/api/handlers"
	"github.com/andresuchdata/shrinkguard/backend-go/internal/api/middleware"
	"github.com/andresuchdata/shrinkguard/backend-go/internal/service"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

type Services struct {
	AssessmentService service.AssessmentService
	SampleBatchSize   int
}

func NewRouter(services *Services, allowedOrigins []string) *gin.Engine {
	router := gin.New()

	// Add middleware
	router.Use(middleware.Logger())
	router.Use(middleware.Recovery())
	defaultOrigins := []string{"http://localhost:3000", "http://127.0.0.1:3000"}
	corsConfig := cors.Config{
		AllowOrigins:     defaultOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(allowedOrigins) > 0 {
		normalizedOrigins, allowAll := normalizeAllowedOrigins(allowedOrigins)
		if allowAll {
			corsConfig.AllowOrigins = nil
			corsConfig.AllowOriginFunc = func(origin string) bool { return true }
		} else if len(normalizedOrigins) > 0 {
			corsConfig.AllowOrigins = normalizedOrigins
		}
	}
	router.Use(cors.New(corsConfig))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	apiGroup := router.Group("/api/v1")

	if services != nil && services.AssessmentService != nil {
		assessmentHandler := handlers.NewAssessmentHandler(services.AssessmentService, services.SampleBatchSize)
		shrinkageGroup := apiGroup.Group("/shrinkage")
		{
			shrinkageGroup.POST("/assessments/upload", assessmentHandler.UploadBatch)
			shrinkageGroup.POST("/assessments/sample", assessmentHandler.GenerateSample)
			shrinkageGroup.GET("/items", assessmentHandler.GetItems)
			shrinkageGroup.GET("/summary", assessmentHandler.GetSummary)
			shrinkageGroup.GET("/batches", assessmentHandler.ListBatches)
		}
	}

	return router
}

func normalizeAllowedOrigins(origins []string) ([]string, bool) {
	var (
		parsed   []string
		allowAll bool
	)
	for _, origin := range origins {
		parts := strings.Split(origin, ",")
		for _, part := range parts {
			trimmed := strings.TrimSpace(part)
			if trimmed == "" {
				continue
			}
			if trimmed == "*" {
				allowAll = true
				continue
			}
			parsed = append(parsed, trimmed)
		}
	}
	return parsed, allowAll
}
