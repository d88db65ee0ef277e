package model

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Tweet represents a short text post.
type Tweet struct {
	ID        uuid.UUID
	OwnerID   uuid.UUID
	Content   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

var ErrContentTooLong = errors.New("content exceeds maximum length of 280 characters")

const maxTweetLength = 280

// NewTweet creates a Tweet owned by ownerID.
func NewTweet(ownerID uuid.UUID, content string) (*Tweet, error) {
	if ownerID == uuid.Nil {
		return nil, ErrInvalidOwnerID
	}
	if content == "" {
		return nil, ErrEmptyContent
	}
	if len(content) > maxTweetLength {
		return nil, ErrContentTooLong
	}

	now := time.Now()
	return &Tweet{
		ID:        uuid.New(),
		OwnerID:   ownerID,
		Content:   content,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// SetContent replaces the tweet text.
func (t *Tweet) SetContent(content string) error {
	if content == "" {
		return ErrEmptyContent
	}
	if len(content) > maxTweetLength {
		return ErrContentTooLong
	}
	t.Content = content
	t.UpdatedAt = time.Now()
	return nil
}
