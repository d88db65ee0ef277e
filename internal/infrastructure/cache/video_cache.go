package cache

import (
	"context"

	"github.com/google/uuid"

	"github.com/hszk-dev/vidtube/internal/domain/model"
)

// VideoCache caches published video documents, joined with their owner,
// keyed by video id. Like counts are never cached; they are always
// counted live.
type VideoCache interface {
	// Get returns the cached document, or (nil, nil) on a cache miss.
	Get(ctx context.Context, videoID uuid.UUID) (*model.VideoWithOwner, error)

	// Set stores a document with the configured TTL.
	Set(ctx context.Context, video *model.VideoWithOwner) error

	// Delete removes a document from the cache. Deleting a missing key
	// is not an error.
	Delete(ctx context.Context, videoID uuid.UUID) error
}
