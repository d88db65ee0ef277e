package usecase

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/hszk-dev/vidtube/internal/domain/apperr"
	"github.com/hszk-dev/vidtube/internal/domain/model"
	"github.com/hszk-dev/vidtube/internal/domain/repository"
	"github.com/hszk-dev/vidtube/internal/infrastructure/cache"
	"github.com/hszk-dev/vidtube/internal/infrastructure/metrics"
)

// cachedVideoService wraps VideoService with a cache-aside read path for
// single video lookups. Only published documents are ever cached: their
// visibility does not depend on the caller, so a cached entry is safe to
// serve to anyone. Unpublished videos always go through the delegate,
// which enforces the owner-only rule.
type cachedVideoService struct {
	delegate VideoService
	cache    cache.VideoCache
	sfGroup  singleflight.Group
}

// NewCachedVideoService creates a caching decorator around the provided
// VideoService.
func NewCachedVideoService(delegate VideoService, videoCache cache.VideoCache) VideoService {
	return &cachedVideoService{
		delegate: delegate,
		cache:    videoCache,
	}
}

// PublishVideo delegates to the underlying service. The fresh video is
// returned directly; nothing to cache yet.
func (s *cachedVideoService) PublishVideo(ctx context.Context, input PublishVideoInput) (*model.Video, error) {
	return s.delegate.PublishVideo(ctx, input)
}

// GetVideo retrieves a video with caching. Concurrent requests for the
// same video are coalesced with singleflight to prevent a cache stampede.
func (s *cachedVideoService) GetVideo(ctx context.Context, videoID, principalID uuid.UUID) (*model.VideoWithOwner, error) {
	cached, err := s.cache.Get(ctx, videoID)
	if err != nil {
		slog.Warn("cache get failed, falling back to database",
			"video_id", videoID,
			"error", err,
		)
	}
	if cached != nil {
		// Cached entries are always published, so visible to any caller.
		return cached, nil
	}

	result, err, shared := s.sfGroup.Do(videoID.String(), func() (any, error) {
		return s.fetchAndCache(ctx, videoID, principalID)
	})

	if shared {
		metrics.SingleflightRequestsTotal.WithLabelValues(metrics.SingleflightShared).Inc()
	} else {
		metrics.SingleflightRequestsTotal.WithLabelValues(metrics.SingleflightInitiated).Inc()
	}

	if err != nil {
		// A shared 403 was decided against the initiating caller's
		// principal, not ours; resolve visibility for this caller.
		if shared && isAuthorization(err) {
			return s.delegate.GetVideo(ctx, videoID, principalID)
		}
		return nil, err
	}

	// The flight is keyed by video id alone, so a shared result may have
	// been fetched on behalf of a different principal. Unpublished videos
	// stay owner-only regardless of which caller initiated the flight.
	video := result.(*model.VideoWithOwner)
	if !video.IsPublished && video.OwnerID != principalID {
		return nil, apperr.Authorization("this video is not published")
	}

	return video, nil
}

func isAuthorization(err error) bool {
	var appErr *apperr.Error
	return errors.As(err, &appErr) && appErr.Status == http.StatusForbidden
}

// fetchAndCache loads a video from the delegate and caches it when it is
// published. Cache write failures are logged, not propagated.
func (s *cachedVideoService) fetchAndCache(ctx context.Context, videoID, principalID uuid.UUID) (*model.VideoWithOwner, error) {
	video, err := s.delegate.GetVideo(ctx, videoID, principalID)
	if err != nil {
		return nil, err
	}

	if video.IsPublished {
		if err := s.cache.Set(ctx, video); err != nil {
			slog.Warn("failed to cache video",
				"video_id", videoID,
				"error", err,
			)
		}
	}

	return video, nil
}

// ListVideos delegates to the underlying service. Listings are not cached.
func (s *cachedVideoService) ListVideos(ctx context.Context, input ListVideosInput) (*repository.Page[model.VideoWithOwner], error) {
	return s.delegate.ListVideos(ctx, input)
}

// UpdateVideo delegates and invalidates the cached document afterwards.
func (s *cachedVideoService) UpdateVideo(ctx context.Context, videoID, principalID uuid.UUID, input UpdateVideoInput) (*model.Video, error) {
	video, err := s.delegate.UpdateVideo(ctx, videoID, principalID, input)
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx, videoID)
	return video, nil
}

// DeleteVideo delegates and invalidates the cached document afterwards.
func (s *cachedVideoService) DeleteVideo(ctx context.Context, videoID, principalID uuid.UUID) error {
	if err := s.delegate.DeleteVideo(ctx, videoID, principalID); err != nil {
		return err
	}

	s.invalidate(ctx, videoID)
	return nil
}

// TogglePublish delegates and invalidates the cached document afterwards.
// Invalidation matters most on the publish-to-unpublish flip: a stale
// cached entry would keep serving a now-hidden video.
func (s *cachedVideoService) TogglePublish(ctx context.Context, videoID, principalID uuid.UUID) (bool, error) {
	published, err := s.delegate.TogglePublish(ctx, videoID, principalID)
	if err != nil {
		return false, err
	}

	s.invalidate(ctx, videoID)
	return published, nil
}

func (s *cachedVideoService) invalidate(ctx context.Context, videoID uuid.UUID) {
	if err := s.cache.Delete(ctx, videoID); err != nil {
		slog.Warn("failed to invalidate video cache",
			"video_id", videoID,
			"error", err,
		)
	}
}
