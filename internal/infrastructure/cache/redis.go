// Package cache provides the Redis-backed video document cache.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/hszk-dev/vidtube/internal/domain/model"
	"github.com/hszk-dev/vidtube/internal/infrastructure/metrics"
)

// Compile-time check that RedisVideoCache implements VideoCache.
var _ VideoCache = (*RedisVideoCache)(nil)

// RedisVideoCache caches video documents in Redis as JSON.
type RedisVideoCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisVideoCache creates a cache backed by the given Redis client.
func NewRedisVideoCache(client *redis.Client, ttl time.Duration) *RedisVideoCache {
	return &RedisVideoCache{
		client: client,
		ttl:    ttl,
	}
}

// videoJSON is the cached representation of a video document.
type videoJSON struct {
	ID              uuid.UUID `json:"id"`
	OwnerID         uuid.UUID `json:"owner_id"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	VideoURL        string    `json:"video_url"`
	ThumbnailURL    string    `json:"thumbnail_url"`
	DurationSeconds float64   `json:"duration_seconds"`
	IsPublished     bool      `json:"is_published"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
	OwnerUsername   string    `json:"owner_username"`
	OwnerAvatarURL  string    `json:"owner_avatar_url"`
}

func cacheKey(videoID uuid.UUID) string {
	return "video:" + videoID.String()
}

// Get returns the cached document, or (nil, nil) on a cache miss.
func (c *RedisVideoCache) Get(ctx context.Context, videoID uuid.UUID) (*model.VideoWithOwner, error) {
	data, err := c.client.Get(ctx, cacheKey(videoID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			metrics.CacheOperationsTotal.WithLabelValues(metrics.CacheOpGet, metrics.CacheStatusMiss, metrics.CacheTypeRedis).Inc()
			return nil, nil
		}
		metrics.CacheOperationsTotal.WithLabelValues(metrics.CacheOpGet, metrics.CacheStatusError, metrics.CacheTypeRedis).Inc()
		return nil, fmt.Errorf("failed to get video from cache: %w", err)
	}

	var v videoJSON
	if err := json.Unmarshal(data, &v); err != nil {
		metrics.CacheOperationsTotal.WithLabelValues(metrics.CacheOpGet, metrics.CacheStatusError, metrics.CacheTypeRedis).Inc()
		return nil, fmt.Errorf("failed to unmarshal cached video: %w", err)
	}

	metrics.CacheOperationsTotal.WithLabelValues(metrics.CacheOpGet, metrics.CacheStatusHit, metrics.CacheTypeRedis).Inc()
	return &model.VideoWithOwner{
		Video: model.Video{
			ID:              v.ID,
			OwnerID:         v.OwnerID,
			Title:           v.Title,
			Description:     v.Description,
			VideoURL:        v.VideoURL,
			ThumbnailURL:    v.ThumbnailURL,
			DurationSeconds: v.DurationSeconds,
			IsPublished:     v.IsPublished,
			CreatedAt:       v.CreatedAt,
			UpdatedAt:       v.UpdatedAt,
		},
		Owner: model.Owner{
			Username:  v.OwnerUsername,
			AvatarURL: v.OwnerAvatarURL,
		},
	}, nil
}

// Set stores a document with the configured TTL.
func (c *RedisVideoCache) Set(ctx context.Context, video *model.VideoWithOwner) error {
	v := videoJSON{
		ID:              video.ID,
		OwnerID:         video.OwnerID,
		Title:           video.Title,
		Description:     video.Description,
		VideoURL:        video.VideoURL,
		ThumbnailURL:    video.ThumbnailURL,
		DurationSeconds: video.DurationSeconds,
		IsPublished:     video.IsPublished,
		CreatedAt:       video.CreatedAt,
		UpdatedAt:       video.UpdatedAt,
		OwnerUsername:   video.Owner.Username,
		OwnerAvatarURL:  video.Owner.AvatarURL,
	}

	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal video for cache: %w", err)
	}

	if err := c.client.Set(ctx, cacheKey(video.ID), data, c.ttl).Err(); err != nil {
		metrics.CacheOperationsTotal.WithLabelValues(metrics.CacheOpSet, metrics.CacheStatusError, metrics.CacheTypeRedis).Inc()
		return fmt.Errorf("failed to set video in cache: %w", err)
	}

	metrics.CacheOperationsTotal.WithLabelValues(metrics.CacheOpSet, metrics.CacheStatusSuccess, metrics.CacheTypeRedis).Inc()
	return nil
}

// Delete removes a document from the cache.
func (c *RedisVideoCache) Delete(ctx context.Context, videoID uuid.UUID) error {
	if err := c.client.Del(ctx, cacheKey(videoID)).Err(); err != nil {
		metrics.CacheOperationsTotal.WithLabelValues(metrics.CacheOpDelete, metrics.CacheStatusError, metrics.CacheTypeRedis).Inc()
		return fmt.Errorf("failed to delete video from cache: %w", err)
	}

	metrics.CacheOperationsTotal.WithLabelValues(metrics.CacheOpDelete, metrics.CacheStatusSuccess, metrics.CacheTypeRedis).Inc()
	return nil
}
