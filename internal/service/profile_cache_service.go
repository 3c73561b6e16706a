package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"health-program-registry/internal/delivery/dto"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// Redis key prefix for cached external client profiles
const profileCacheKeyPrefix = "external:client:"

// ProfileCacheService caches external client profile projections in Redis.
// The redis client may be nil, in which case every lookup is a miss and
// writes are no-ops: the service degrades to uncached reads.
type ProfileCacheService struct {
	redisClient *redis.Client
	ttl         time.Duration
	log         *logrus.Logger
}

func NewProfileCacheService(redisClient *redis.Client, ttl time.Duration, log *logrus.Logger) *ProfileCacheService {
	return &ProfileCacheService{
		redisClient: redisClient,
		ttl:         ttl,
		log:         log,
	}
}

// Get returns the cached projection for the client, or nil on a miss.
// Cache failures are logged and treated as misses, never surfaced.
func (s *ProfileCacheService) Get(ctx context.Context, clientID uuid.UUID) *dto.ExternalClientProfile {
	if s.redisClient == nil {
		return nil
	}

	raw, err := s.redisClient.Get(ctx, profileCacheKey(clientID)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			s.log.Warnf("Failed to read cached profile for client %s (non-fatal): %+v", clientID, err)
		}
		return nil
	}

	var profile dto.ExternalClientProfile
	if err := json.Unmarshal(raw, &profile); err != nil {
		s.log.Warnf("Failed to decode cached profile for client %s (non-fatal): %+v", clientID, err)
		return nil
	}
	return &profile
}

// Set stores the projection with the configured TTL
func (s *ProfileCacheService) Set(ctx context.Context, clientID uuid.UUID, profile *dto.ExternalClientProfile) {
	if s.redisClient == nil || profile == nil {
		return
	}

	raw, err := json.Marshal(profile)
	if err != nil {
		s.log.Warnf("Failed to encode profile for client %s (non-fatal): %+v", clientID, err)
		return
	}

	if err := s.redisClient.Set(ctx, profileCacheKey(clientID), raw, s.ttl).Err(); err != nil {
		s.log.Warnf("Failed to cache profile for client %s (non-fatal): %+v", clientID, err)
	}
}

// Invalidate drops the cached projection after a write touching the client
// or any of its enrollments
func (s *ProfileCacheService) Invalidate(ctx context.Context, clientID uuid.UUID) {
	if s.redisClient == nil {
		return
	}

	if err := s.redisClient.Del(ctx, profileCacheKey(clientID)).Err(); err != nil {
		s.log.Warnf("Failed to invalidate cached profile for client %s (non-fatal): %+v", clientID, err)
	}
}

func profileCacheKey(clientID uuid.UUID) string {
	return profileCacheKeyPrefix + clientID.String()
}
