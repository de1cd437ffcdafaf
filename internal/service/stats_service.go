package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/campus-suite/records-portal/internal/domain"
	"github.com/campus-suite/records-portal/internal/repository"
)

const (
	statsCacheKey = "stats:requests"
	statsCacheTTL = 60 * time.Second
)

// RequestStats summarizes document requests by status for the dashboard.
type RequestStats struct {
	Pending    int `json:"pending"`
	Processing int `json:"processing"`
	Completed  int `json:"completed"`
	Rejected   int `json:"rejected"`
	Total      int `json:"total"`
}

// StatsService serves dashboard counters, cached in redis with a short TTL.
// Redis being unavailable degrades to hitting the database every time.
type StatsService struct {
	requests repository.RequestRepository
	cache    *redis.Client
	logger   *zap.Logger
}

// NewStatsService constructs the service. cache may be nil.
func NewStatsService(requests repository.RequestRepository, cache *redis.Client, logger *zap.Logger) *StatsService {
	return &StatsService{requests: requests, cache: cache, logger: logger}
}

// RequestStats returns per-status counts, preferring the cached copy.
func (s *StatsService) RequestStats(ctx context.Context) (*RequestStats, error) {
	if s.cache != nil {
		cached, err := s.cache.Get(ctx, statsCacheKey).Bytes()
		if err == nil {
			var stats RequestStats
			if jsonErr := json.Unmarshal(cached, &stats); jsonErr == nil {
				return &stats, nil
			}
		} else if err != redis.Nil {
			s.logger.Warn("stats cache read failed", zap.Error(err))
		}
	}

	counts, err := s.requests.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}
	stats := &RequestStats{
		Pending:    counts[domain.RequestStatusPending],
		Processing: counts[domain.RequestStatusProcessing],
		Completed:  counts[domain.RequestStatusCompleted],
		Rejected:   counts[domain.RequestStatusRejected],
	}
	stats.Total = stats.Pending + stats.Processing + stats.Completed + stats.Rejected

	if s.cache != nil {
		if payload, jsonErr := json.Marshal(stats); jsonErr == nil {
			if err := s.cache.Set(ctx, statsCacheKey, payload, statsCacheTTL).Err(); err != nil {
				s.logger.Warn("stats cache write failed", zap.Error(err))
			}
		}
	}
	return stats, nil
}
