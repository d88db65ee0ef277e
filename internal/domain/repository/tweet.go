package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/hszk-dev/vidtube/internal/domain/model"
)

// TweetRepository defines persistence operations for tweets.
type TweetRepository interface {
	Create(ctx context.Context, tweet *model.Tweet) error

	// GetByID returns ErrTweetNotFound if the tweet does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Tweet, error)

	// List returns a page of all tweets, newest first.
	List(ctx context.Context, page PageRequest) (*Page[model.Tweet], error)

	// ListByOwner returns a page of a user's tweets, newest first.
	ListByOwner(ctx context.Context, ownerID uuid.UUID, page PageRequest) (*Page[model.Tweet], error)

	// Update returns ErrTweetNotFound if the tweet does not exist.
	Update(ctx context.Context, tweet *model.Tweet) error

	// Delete returns ErrTweetNotFound if the tweet does not exist.
	Delete(ctx context.Context, id uuid.UUID) error
}
