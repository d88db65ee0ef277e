package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/hszk-dev/vidtube/internal/domain/model"
)

// VideoFilter describes the public listing filter: a case-insensitive
// contains match over title and description, and the sort key.
type VideoFilter struct {
	Query    string
	SortBy   string // one of: created_at, updated_at, title, duration_seconds
	SortDesc bool
}

// VideoRepository defines persistence operations for videos.
// Implementations are provided by the infrastructure layer.
type VideoRepository interface {
	// Create persists a new video entity.
	Create(ctx context.Context, video *model.Video) error

	// GetByID retrieves a video by id.
	// Returns ErrVideoNotFound if the video does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Video, error)

	// GetWithOwner retrieves a video with its owner reduced to the
	// {username, avatar_url} projection.
	// Returns ErrVideoNotFound if the video does not exist.
	GetWithOwner(ctx context.Context, id uuid.UUID) (*model.VideoWithOwner, error)

	// ListPublished returns a page of published videos matching the
	// filter, owner-joined, deterministically ordered.
	ListPublished(ctx context.Context, filter VideoFilter, page PageRequest) (*Page[model.VideoWithOwner], error)

	// Update persists changes to an existing video.
	// Returns ErrVideoNotFound if the video does not exist.
	Update(ctx context.Context, video *model.Video) error

	// Delete removes a video row.
	// Returns ErrVideoNotFound if the video does not exist.
	Delete(ctx context.Context, id uuid.UUID) error
}
