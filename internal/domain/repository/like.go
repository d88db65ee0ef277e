package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/hszk-dev/vidtube/internal/domain/model"
)

// LikeRepository defines persistence operations for likes. A like's
// presence is the sole record of the liked state; counts are always live
// queries over the rows.
type LikeRepository interface {
	// Create persists a like. Returns ErrAlreadyLiked if the
	// (subject, user) pair already exists.
	Create(ctx context.Context, like *model.Like) error

	// FindBySubject returns the like for the unique (subject, user) pair.
	// Returns ErrLikeNotFound when the pair is absent.
	FindBySubject(ctx context.Context, subject model.Subject, userID uuid.UUID) (*model.Like, error)

	// Delete removes a like by id.
	// Returns ErrLikeNotFound if the like does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// CountBySubject counts likes on a subject.
	CountBySubject(ctx context.Context, subject model.Subject) (int, error)

	// ListLikedVideos returns a page of the videos a user has liked,
	// most recently liked first.
	ListLikedVideos(ctx context.Context, userID uuid.UUID, page PageRequest) (*Page[model.Video], error)
}
