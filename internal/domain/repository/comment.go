package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/hszk-dev/vidtube/internal/domain/model"
)

// CommentRepository defines persistence operations for comments.
type CommentRepository interface {
	Create(ctx context.Context, comment *model.Comment) error

	// GetByID returns ErrCommentNotFound if the comment does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Comment, error)

	// ListByVideo returns a page of a video's comments, owner-joined,
	// newest first. An empty page is a valid result.
	ListByVideo(ctx context.Context, videoID uuid.UUID, page PageRequest) (*Page[model.CommentWithOwner], error)

	// Update returns ErrCommentNotFound if the comment does not exist.
	Update(ctx context.Context, comment *model.Comment) error

	// Delete returns ErrCommentNotFound if the comment does not exist.
	Delete(ctx context.Context, id uuid.UUID) error
}
