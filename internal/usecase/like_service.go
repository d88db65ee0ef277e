package usecase

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/hszk-dev/vidtube/internal/domain/apperr"
	"github.com/hszk-dev/vidtube/internal/domain/model"
	"github.com/hszk-dev/vidtube/internal/domain/repository"
)

// LikeService defines the interface for like business logic operations.
type LikeService interface {
	// Toggle flips the principal's like on a subject and returns whether
	// the subject is liked after the call.
	Toggle(ctx context.Context, subject model.Subject, principalID uuid.UUID) (bool, error)

	// CountVideoLikes returns the live like count for a video.
	CountVideoLikes(ctx context.Context, videoID uuid.UUID) (int, error)

	// ListLikedVideos returns a page of videos the principal has liked,
	// most recently liked first.
	ListLikedVideos(ctx context.Context, principalID uuid.UUID, page repository.PageRequest) (*repository.Page[model.Video], error)
}

type likeService struct {
	repo     repository.LikeRepository
	videos   repository.VideoRepository
	comments repository.CommentRepository
	tweets   repository.TweetRepository
}

// NewLikeService creates a new LikeService instance.
func NewLikeService(
	repo repository.LikeRepository,
	videos repository.VideoRepository,
	comments repository.CommentRepository,
	tweets repository.TweetRepository,
) LikeService {
	return &likeService{
		repo:     repo,
		videos:   videos,
		comments: comments,
		tweets:   tweets,
	}
}

// Toggle removes the like when one exists and creates it otherwise. A
// concurrent duplicate insert is absorbed: the unique constraint reports
// it and the subject is simply liked.
func (s *likeService) Toggle(ctx context.Context, subject model.Subject, principalID uuid.UUID) (bool, error) {
	if principalID == uuid.Nil {
		return false, apperr.Unauthenticated("authentication required")
	}

	if err := s.checkSubjectExists(ctx, subject); err != nil {
		return false, err
	}

	existing, err := s.repo.FindBySubject(ctx, subject, principalID)
	if err == nil {
		if err := s.repo.Delete(ctx, existing.ID); err != nil && !errors.Is(err, repository.ErrNotFound) {
			return false, apperr.Internal("failed to remove like", err)
		}
		return false, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return false, apperr.Internal("failed to look up like", err)
	}

	like, err := model.NewLike(subject, principalID)
	if err != nil {
		return false, validationErr(err)
	}

	if err := s.repo.Create(ctx, like); err != nil {
		if errors.Is(err, repository.ErrAlreadyLiked) {
			return true, nil
		}
		return false, apperr.Internal("failed to create like", err)
	}

	return true, nil
}

// CountVideoLikes counts likes on a video directly from storage.
func (s *likeService) CountVideoLikes(ctx context.Context, videoID uuid.UUID) (int, error) {
	subject, err := model.VideoSubject(videoID)
	if err != nil {
		return 0, validationErr(err)
	}

	if _, err := s.videos.GetByID(ctx, videoID); err != nil {
		return 0, lookupErr(err, "video")
	}

	count, err := s.repo.CountBySubject(ctx, subject)
	if err != nil {
		return 0, apperr.Internal("failed to count likes", err)
	}

	return count, nil
}

// ListLikedVideos returns a page of the principal's liked videos.
func (s *likeService) ListLikedVideos(ctx context.Context, principalID uuid.UUID, page repository.PageRequest) (*repository.Page[model.Video], error) {
	if principalID == uuid.Nil {
		return nil, apperr.Unauthenticated("authentication required")
	}

	result, err := s.repo.ListLikedVideos(ctx, principalID, page.Normalize(defaultVideoPageLimit, maxPageLimit))
	if err != nil {
		return nil, apperr.Internal("failed to list liked videos", err)
	}

	return result, nil
}

// checkSubjectExists verifies the liked entity is present before a like is
// written against it.
func (s *likeService) checkSubjectExists(ctx context.Context, subject model.Subject) error {
	switch subject.Kind() {
	case model.SubjectVideo:
		if _, err := s.videos.GetByID(ctx, subject.ID()); err != nil {
			return lookupErr(err, "video")
		}
	case model.SubjectComment:
		if _, err := s.comments.GetByID(ctx, subject.ID()); err != nil {
			return lookupErr(err, "comment")
		}
	case model.SubjectTweet:
		if _, err := s.tweets.GetByID(ctx, subject.ID()); err != nil {
			return lookupErr(err, "tweet")
		}
	default:
		return apperr.Validation("unknown like subject")
	}

	return nil
}
