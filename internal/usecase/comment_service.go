package usecase

import (
	"context"

	"github.com/google/uuid"

	"github.com/hszk-dev/vidtube/internal/domain/apperr"
	"github.com/hszk-dev/vidtube/internal/domain/model"
	"github.com/hszk-dev/vidtube/internal/domain/repository"
)

const defaultCommentPageLimit = 20

// CommentService defines the interface for comment business logic operations.
type CommentService interface {
	// AddComment creates a comment on a video.
	AddComment(ctx context.Context, videoID, principalID uuid.UUID, content string) (*model.Comment, error)

	// ListComments returns a page of a video's comments, newest first,
	// each joined with its author.
	ListComments(ctx context.Context, videoID uuid.UUID, page repository.PageRequest) (*repository.Page[model.CommentWithOwner], error)

	// UpdateComment replaces the content of a comment owned by the principal.
	UpdateComment(ctx context.Context, commentID, principalID uuid.UUID, content string) (*model.Comment, error)

	// DeleteComment removes a comment owned by the principal.
	DeleteComment(ctx context.Context, commentID, principalID uuid.UUID) error
}

type commentService struct {
	repo   repository.CommentRepository
	videos repository.VideoRepository
}

// NewCommentService creates a new CommentService instance.
func NewCommentService(repo repository.CommentRepository, videos repository.VideoRepository) CommentService {
	return &commentService{
		repo:   repo,
		videos: videos,
	}
}

// AddComment validates the target video exists before creating the comment.
func (s *commentService) AddComment(ctx context.Context, videoID, principalID uuid.UUID, content string) (*model.Comment, error) {
	if principalID == uuid.Nil {
		return nil, apperr.Unauthenticated("authentication required")
	}

	if _, err := s.videos.GetByID(ctx, videoID); err != nil {
		return nil, lookupErr(err, "video")
	}

	comment, err := model.NewComment(videoID, principalID, content)
	if err != nil {
		return nil, validationErr(err)
	}

	if err := s.repo.Create(ctx, comment); err != nil {
		return nil, apperr.Internal("failed to create comment", err)
	}

	return comment, nil
}

// ListComments returns a page of comments for a video. A video with no
// comments yields a valid empty page.
func (s *commentService) ListComments(ctx context.Context, videoID uuid.UUID, page repository.PageRequest) (*repository.Page[model.CommentWithOwner], error) {
	if _, err := s.videos.GetByID(ctx, videoID); err != nil {
		return nil, lookupErr(err, "video")
	}

	result, err := s.repo.ListByVideo(ctx, videoID, page.Normalize(defaultCommentPageLimit, maxPageLimit))
	if err != nil {
		return nil, apperr.Internal("failed to list comments", err)
	}

	return result, nil
}

// UpdateComment replaces the comment content after an ownership check.
func (s *commentService) UpdateComment(ctx context.Context, commentID, principalID uuid.UUID, content string) (*model.Comment, error) {
	comment, err := s.repo.GetByID(ctx, commentID)
	if err != nil {
		return nil, lookupErr(err, "comment")
	}

	if err := requireOwner(comment.OwnerID, principalID); err != nil {
		return nil, err
	}

	if err := comment.SetContent(content); err != nil {
		return nil, validationErr(err)
	}

	if err := s.repo.Update(ctx, comment); err != nil {
		return nil, lookupErr(err, "comment")
	}

	return comment, nil
}

// DeleteComment removes a comment after an ownership check.
func (s *commentService) DeleteComment(ctx context.Context, commentID, principalID uuid.UUID) error {
	comment, err := s.repo.GetByID(ctx, commentID)
	if err != nil {
		return lookupErr(err, "comment")
	}

	if err := requireOwner(comment.OwnerID, principalID); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, commentID); err != nil {
		return lookupErr(err, "comment")
	}

	return nil
}
