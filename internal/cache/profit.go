package cache

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aquatrack/backend-go/internal/config"
	"github.com/aquatrack/backend-go/internal/report"
	"github.com/redis/go-redis/v9"
)

const (
	profitKeyPrefix  = "profit"
	defaultProfitTTL = time.Minute
)

// ProfitCache memoizes the profit aggregates, which are recomputed from the
// full sale/batch snapshot on every request otherwise. Writes to sales or
// stock invalidate everything under the prefix.
type ProfitCache interface {
	GetDaily(ctx context.Context, date string) (*report.DailySummary, bool, error)
	SetDaily(ctx context.Context, date string, summary *report.DailySummary) error
	GetMonthly(ctx context.Context) ([]report.MonthlyRow, bool, error)
	SetMonthly(ctx context.Context, rows []report.MonthlyRow) error
	InvalidateAll(ctx context.Context) error
}

type redisProfitCache struct {
	client *redis.Client
	ttl    time.Duration
}

type noopProfitCache struct{}

func NewProfitCache(cfg config.CacheConfig) (ProfitCache, error) {
	if !cfg.Enabled {
		return &noopProfitCache{}, nil
	}

	client, err := newRedisClient(cfg)
	if err != nil {
		return nil, err
	}

	ttl := time.Duration(cfg.ProfitTTLSeconds) * time.Second
	if ttl <= 0 {
		ttl = defaultProfitTTL
	}

	return &redisProfitCache{client: client, ttl: ttl}, nil
}

func NewNoopProfitCache() ProfitCache {
	return &noopProfitCache{}
}

func (c *redisProfitCache) GetDaily(ctx context.Context, date string) (*report.DailySummary, bool, error) {
	var summary report.DailySummary
	ok, err := c.get(ctx, dailyKey(date), &summary)
	if !ok || err != nil {
		return nil, false, err
	}
	return &summary, true, nil
}

func (c *redisProfitCache) SetDaily(ctx context.Context, date string, summary *report.DailySummary) error {
	return c.set(ctx, dailyKey(date), summary)
}

func (c *redisProfitCache) GetMonthly(ctx context.Context) ([]report.MonthlyRow, bool, error) {
	var rows []report.MonthlyRow
	ok, err := c.get(ctx, profitKeyPrefix+":monthly", &rows)
	if !ok || err != nil {
		return nil, false, err
	}
	return rows, true, nil
}

func (c *redisProfitCache) SetMonthly(ctx context.Context, rows []report.MonthlyRow) error {
	return c.set(ctx, profitKeyPrefix+":monthly", rows)
}

func (c *redisProfitCache) InvalidateAll(ctx context.Context) error {
	return deleteKeysWithPrefix(ctx, c.client, profitKeyPrefix+":", scanBatchSize)
}

func (c *redisProfitCache) get(ctx context.Context, key string, out any) (bool, error) {
	payload, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("redis get failed: %w", err)
	}
	if err := json.Unmarshal(payload, out); err != nil {
		return false, fmt.Errorf("decode profit cache: %w", err)
	}
	return true, nil
}

func (c *redisProfitCache) set(ctx context.Context, key string, value any) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode profit cache: %w", err)
	}
	if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func dailyKey(date string) string {
	hash := sha1.Sum([]byte(date))
	return fmt.Sprintf("%s:daily:%s", profitKeyPrefix, hex.EncodeToString(hash[:]))
}

func (n *noopProfitCache) GetDaily(ctx context.Context, date string) (*report.DailySummary, bool, error) {
	return nil, false, nil
}

func (n *noopProfitCache) SetDaily(ctx context.Context, date string, summary *report.DailySummary) error {
	return nil
}

func (n *noopProfitCache) GetMonthly(ctx context.Context) ([]report.MonthlyRow, bool, error) {
	return nil, false, nil
}

func (n *noopProfitCache) SetMonthly(ctx context.Context, rows []report.MonthlyRow) error {
	return nil
}

func (n *noopProfitCache) InvalidateAll(ctx context.Context) error {
	return nil
}
