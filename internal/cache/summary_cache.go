package cache

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/andresuchdata/shrinkguard/backend-go/internal/config"
	"github.com/andresuchdata/shrinkguard/backend-go/internal/domain"
	"github.com/redis/go-redis/v9"
)

const (
	summaryKeyPrefix     = "shrinkage:summary"
	summaryScanBatchSize = 100
)

// SummaryCache caches assessment summaries per filter.
type SummaryCache interface {
	GetSummary(ctx context.Context, filter domain.AssessmentFilter) (*domain.AssessmentSummary, bool, error)
	SetSummary(ctx context.Context, filter domain.AssessmentFilter, summary *domain.AssessmentSummary) error
	InvalidateAll(ctx context.Context) error
}

type redisSummaryCache struct {
	client *redis.Client
	ttl    time.Duration
}

type noopSummaryCache struct{}

func NewSummaryCache(cfg config.CacheConfig) (SummaryCache, error) {
	if !cfg.Enabled {
		return &noopSummaryCache{}, nil
	}

	client, ttl, err := newRedisClient(cfg)
	if err != nil {
		return nil, err
	}

	return &redisSummaryCache{
		client: client,
		ttl:    ttl,
	}, nil
}

func NewNoopSummaryCache() SummaryCache {
	return &noopSummaryCache{}
}

func (c *redisSummaryCache) GetSummary(ctx context.Context, filter domain.AssessmentFilter) (*domain.AssessmentSummary, bool, error) {
	key := buildSummaryKey(filter)

	payload, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get failed: %w", err)
	}

	var summary domain.AssessmentSummary
	if err := json.Unmarshal(payload, &summary); err != nil {
		return nil, false, fmt.Errorf("decode summary cache: %w", err)
	}

	return &summary, true, nil
}

func (c *redisSummaryCache) SetSummary(ctx context.Context, filter domain.AssessmentFilter, summary *domain.AssessmentSummary) error {
	key := buildSummaryKey(filter)
	payload, err := json.Marshal(summary)
	if err != nil {
		return fmt.Errorf("encode summary cache: %w", err)
	}

	if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (c *redisSummaryCache) InvalidateAll(ctx context.Context) error {
	return deleteKeysWithPrefix(ctx, c.client, summaryKeyPrefix, summaryScanBatchSize)
}

func (n *noopSummaryCache) GetSummary(ctx context.Context, filter domain.AssessmentFilter) (*domain.AssessmentSummary, bool, error) {
	return nil, false, nil
}

func (n *noopSummaryCache) SetSummary(ctx context.Context, filter domain.AssessmentFilter, summary *domain.AssessmentSummary) error {
	return nil
}

func (n *noopSummaryCache) InvalidateAll(ctx context.Context) error {
	return nil
}

func buildSummaryKey(filter domain.AssessmentFilter) string {
	return fmt.Sprintf("%s:%s", summaryKeyPrefix, summaryFilterHash(filter))
}

func summaryFilterHash(filter domain.AssessmentFilter) string {
	parts := []string{}

	if filter.BatchID != "" {
		parts = append(parts, "batch_id="+strings.TrimSpace(filter.BatchID))
	}
	if len(filter.RiskLevels) > 0 {
		parts = append(parts, "risk_levels="+joinEnum(filter.RiskLevels))
	}
	if len(filter.Categories) > 0 {
		parts = append(parts, "categories="+joinEnum(filter.Categories))
	}
	if len(filter.Stores) > 0 {
		parts = append(parts, "stores="+joinEnum(filter.Stores))
	}
	if len(filter.Recommendations) > 0 {
		parts = append(parts, "recommendations="+joinEnum(filter.Recommendations))
	}

	if len(parts) == 0 {
		return "default"
	}

	sort.Strings(parts)
	raw := strings.Join(parts, "|")
	sum := sha1.Sum([]byte(raw))
	return hex.EncodeToString(sum[:])
}

func joinEnum[T ~string](values []T) string {
	c := make([]string, len(values))
	for i, v := range values {
		c[i] = strings.ToLower(string(v))
	}
	sort.Strings(c)
	return strings.Join(c, ",")
}
