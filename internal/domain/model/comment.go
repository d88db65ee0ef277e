package model

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Comment represents a comment on a video.
type Comment struct {
	ID        uuid.UUID
	VideoID   uuid.UUID
	OwnerID   uuid.UUID
	Content   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

var (
	ErrEmptyContent   = errors.New("content cannot be empty")
	ErrInvalidVideoID = errors.New("video ID cannot be nil")
)

// NewComment creates a Comment on the given video. The caller is
// responsible for verifying the video exists before persisting.
func NewComment(videoID, ownerID uuid.UUID, content string) (*Comment, error) {
	if videoID == uuid.Nil {
		return nil, ErrInvalidVideoID
	}
	if ownerID == uuid.Nil {
		return nil, ErrInvalidOwnerID
	}
	if content == "" {
		return nil, ErrEmptyContent
	}

	now := time.Now()
	return &Comment{
		ID:        uuid.New(),
		VideoID:   videoID,
		OwnerID:   ownerID,
		Content:   content,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// SetContent replaces the comment text.
func (c *Comment) SetContent(content string) error {
	if content == "" {
		return ErrEmptyContent
	}
	c.Content = content
	c.UpdatedAt = time.Now()
	return nil
}

// CommentWithOwner is a comment document with its owner collapsed to the
// reduced projection.
type CommentWithOwner struct {
	Comment
	Owner Owner
}
