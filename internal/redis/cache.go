package redis

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

// CacheStore handles entity caching in Redis.
type CacheStore struct {
	client *redis.Client
}

// NewCacheStore creates a new CacheStore.
func NewCacheStore(client *redis.Client) *CacheStore {
	return &CacheStore{client: client}
}

// Cache TTL constants
const (
	HelicopterCacheTTL = 60 * time.Second // Fleet status changes on booking/maintenance events
	ExperienceCacheTTL = 5 * time.Minute  // Catalog changes rarely
)

// Key prefixes
const (
	helicopterCachePrefix = "cache:helicopter:"
	experienceCacheKey    = "cache:experiences:active"
)

// CachedHelicopter represents a cached helicopter entity.
type CachedHelicopter struct {
	ID            string  `json:"id"`
	Registration  string  `json:"registration"`
	Model         string  `json:"model"`
	Capacity      int     `json:"capacity"`
	CruiseSpeedKm float64 `json:"cruise_speed_km"`
	Status        string  `json:"status"`
}

// GetHelicopter retrieves a helicopter from cache.
func (s *CacheStore) GetHelicopter(ctx context.Context, id string) (*CachedHelicopter, error) {
	key := helicopterCachePrefix + id
	data, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // Cache miss
		}
		return nil, err
	}

	var h CachedHelicopter
	if err := json.Unmarshal(data, &h); err != nil {
		return nil, err
	}
	return &h, nil
}

// SetHelicopter stores a helicopter in cache.
func (s *CacheStore) SetHelicopter(ctx context.Context, h *CachedHelicopter) error {
	key := helicopterCachePrefix + h.ID
	data, err := json.Marshal(h)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, key, data, HelicopterCacheTTL).Err()
}

// InvalidateHelicopter removes a helicopter from cache.
func (s *CacheStore) InvalidateHelicopter(ctx context.Context, id string) error {
	key := helicopterCachePrefix + id
	return s.client.Del(ctx, key).Err()
}

// CachedExperience represents a cached experience entry.
type CachedExperience struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	Description     string  `json:"description"`
	DestinationCode string  `json:"destination_code"`
	DurationMinutes int     `json:"duration_minutes"`
	PricePerSeat    float64 `json:"price_per_seat"`
}

// GetActiveExperiences retrieves the active-experience listing from cache.
func (s *CacheStore) GetActiveExperiences(ctx context.Context) ([]CachedExperience, error) {
	data, err := s.client.Get(ctx, experienceCacheKey).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // Cache miss
		}
		return nil, err
	}

	var exps []CachedExperience
	if err := json.Unmarshal(data, &exps); err != nil {
		return nil, err
	}
	return exps, nil
}

// SetActiveExperiences stores the active-experience listing in cache.
func (s *CacheStore) SetActiveExperiences(ctx context.Context, exps []CachedExperience) error {
	data, err := json.Marshal(exps)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, experienceCacheKey, data, ExperienceCacheTTL).Err()
}

// InvalidateActiveExperiences drops the active-experience listing.
func (s *CacheStore) InvalidateActiveExperiences(ctx context.Context) error {
	return s.client.Del(ctx, experienceCacheKey).Err()
}
