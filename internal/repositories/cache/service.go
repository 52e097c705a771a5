package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"sentra/internal/models"

	"github.com/redis/go-redis/v9"
)

type CacheService struct {
	client *redis.Client
	ttl    time.Duration
}

func NewCacheService(client *redis.Client, defaultTTL time.Duration) *CacheService {
	return &CacheService{
		client: client,
		ttl:    defaultTTL,
	}
}

// Base operations
func (s *CacheService) Set(ctx context.Context, key string, value interface{}) error {
	return s.SetWithTTL(ctx, key, value, s.ttl)
}

func (s *CacheService) SetWithTTL(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal cache value: %w", err)
	}
	return s.client.Set(ctx, key, data, ttl).Err()
}

func (s *CacheService) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	data, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return false, nil
		}
		return false, fmt.Errorf("failed to get cache value: %w", err)
	}

	if err := json.Unmarshal(data, dest); err != nil {
		return false, fmt.Errorf("failed to unmarshal cache value: %w", err)
	}
	return true, nil
}

func (s *CacheService) Delete(ctx context.Context, keys ...string) error {
	return s.client.Del(ctx, keys...).Err()
}

// Key generation
func (s *CacheService) GenerateKey(kind, keyType string, value interface{}) string {
	return fmt.Sprintf("%s:%s:%v", kind, keyType, value)
}

// Risk score caching. Assessments are recomputed on demand but reads
// (dashboards, network overlays) vastly outnumber writes.
func (s *CacheService) CacheRiskScore(ctx context.Context, score *models.RiskScore) error {
	if score == nil {
		return errors.New("cannot cache nil risk score")
	}
	key := s.GenerateKey("risk_score", "entity", score.EntityID)
	return s.Set(ctx, key, score)
}

func (s *CacheService) GetRiskScore(ctx context.Context, entityID uint) (*models.RiskScore, error) {
	key := s.GenerateKey("risk_score", "entity", entityID)
	var score models.RiskScore
	found, err := s.Get(ctx, key, &score)
	if err != nil || !found {
		return nil, err
	}
	return &score, nil
}

func (s *CacheService) InvalidateRiskScore(ctx context.Context, entityID uint) error {
	return s.Delete(ctx, s.GenerateKey("risk_score", "entity", entityID))
}

// Entity caching
func (s *CacheService) CacheEntity(ctx context.Context, entity *models.Entity) error {
	if entity == nil {
		return errors.New("cannot cache nil entity")
	}
	key := s.GenerateKey("entity", "id", entity.ID)
	return s.Set(ctx, key, entity)
}

func (s *CacheService) GetEntity(ctx context.Context, entityID uint) (*models.Entity, error) {
	key := s.GenerateKey("entity", "id", entityID)
	var entity models.Entity
	found, err := s.Get(ctx, key, &entity)
	if err != nil || !found {
		return nil, err
	}
	return &entity, nil
}

func (s *CacheService) InvalidateEntity(ctx context.Context, entityID uint) error {
	return s.Delete(ctx,
		s.GenerateKey("entity", "id", entityID),
		s.GenerateKey("risk_score", "entity", entityID),
		s.GenerateKey("report", "entity", entityID),
	)
}

// Report caching
func (s *CacheService) CacheReport(ctx context.Context, report *models.Report) error {
	if report == nil {
		return errors.New("cannot cache nil report")
	}
	key := s.GenerateKey("report", "entity", report.EntityID)
	return s.SetWithTTL(ctx, key, report, time.Hour)
}

func (s *CacheService) GetReport(ctx context.Context, entityID uint) (*models.Report, error) {
	key := s.GenerateKey("report", "entity", entityID)
	var report models.Report
	found, err := s.Get(ctx, key, &report)
	if err != nil || !found {
		return nil, err
	}
	return &report, nil
}

func (s *CacheService) FlushAll(ctx context.Context) error {
	return s.client.FlushDB(ctx).Err()
}

func (s *CacheService) HealthCheck(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis connection failed: %w", err)
	}
	return nil
}

func (s *CacheService) GetStats(ctx context.Context) *redis.PoolStats {
	return s.client.PoolStats()
}

func (s *CacheService) Close() error {
	return s.client.Close()
}
