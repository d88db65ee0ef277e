package usecase

import (
	"context"

	"github.com/google/uuid"

	"github.com/hszk-dev/vidtube/internal/domain/apperr"
	"github.com/hszk-dev/vidtube/internal/domain/model"
	"github.com/hszk-dev/vidtube/internal/domain/repository"
)

const defaultTweetPageLimit = 20

// TweetService defines the interface for tweet business logic operations.
type TweetService interface {
	// AddTweet creates a tweet for the principal.
	AddTweet(ctx context.Context, principalID uuid.UUID, content string) (*model.Tweet, error)

	// ListTweets returns a page of all tweets, newest first.
	ListTweets(ctx context.Context, page repository.PageRequest) (*repository.Page[model.Tweet], error)

	// ListUserTweets returns a page of one user's tweets, newest first. A
	// user with no tweets yields a valid empty page.
	ListUserTweets(ctx context.Context, ownerID uuid.UUID, page repository.PageRequest) (*repository.Page[model.Tweet], error)

	// UpdateTweet replaces the content of a tweet owned by the principal.
	UpdateTweet(ctx context.Context, tweetID, principalID uuid.UUID, content string) (*model.Tweet, error)

	// DeleteTweet removes a tweet owned by the principal.
	DeleteTweet(ctx context.Context, tweetID, principalID uuid.UUID) error
}

type tweetService struct {
	repo repository.TweetRepository
}

// NewTweetService creates a new TweetService instance.
func NewTweetService(repo repository.TweetRepository) TweetService {
	return &tweetService{repo: repo}
}

func (s *tweetService) AddTweet(ctx context.Context, principalID uuid.UUID, content string) (*model.Tweet, error) {
	if principalID == uuid.Nil {
		return nil, apperr.Unauthenticated("authentication required")
	}

	tweet, err := model.NewTweet(principalID, content)
	if err != nil {
		return nil, validationErr(err)
	}

	if err := s.repo.Create(ctx, tweet); err != nil {
		return nil, apperr.Internal("failed to create tweet", err)
	}

	return tweet, nil
}

func (s *tweetService) ListTweets(ctx context.Context, page repository.PageRequest) (*repository.Page[model.Tweet], error) {
	result, err := s.repo.List(ctx, page.Normalize(defaultTweetPageLimit, maxPageLimit))
	if err != nil {
		return nil, apperr.Internal("failed to list tweets", err)
	}

	return result, nil
}

func (s *tweetService) ListUserTweets(ctx context.Context, ownerID uuid.UUID, page repository.PageRequest) (*repository.Page[model.Tweet], error) {
	result, err := s.repo.ListByOwner(ctx, ownerID, page.Normalize(defaultTweetPageLimit, maxPageLimit))
	if err != nil {
		return nil, apperr.Internal("failed to list tweets", err)
	}

	return result, nil
}

func (s *tweetService) UpdateTweet(ctx context.Context, tweetID, principalID uuid.UUID, content string) (*model.Tweet, error) {
	tweet, err := s.repo.GetByID(ctx, tweetID)
	if err != nil {
		return nil, lookupErr(err, "tweet")
	}

	if err := requireOwner(tweet.OwnerID, principalID); err != nil {
		return nil, err
	}

	if err := tweet.SetContent(content); err != nil {
		return nil, validationErr(err)
	}

	if err := s.repo.Update(ctx, tweet); err != nil {
		return nil, lookupErr(err, "tweet")
	}

	return tweet, nil
}

func (s *tweetService) DeleteTweet(ctx context.Context, tweetID, principalID uuid.UUID) error {
	tweet, err := s.repo.GetByID(ctx, tweetID)
	if err != nil {
		return lookupErr(err, "tweet")
	}

	if err := requireOwner(tweet.OwnerID, principalID); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, tweetID); err != nil {
		return lookupErr(err, "tweet")
	}

	return nil
}
