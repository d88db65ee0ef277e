package model

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Video represents a published or draft video entity in the domain.
type Video struct {
	ID              uuid.UUID
	OwnerID         uuid.UUID
	Title           string
	Description     string
	VideoURL        string
	ThumbnailURL    string
	DurationSeconds float64
	IsPublished     bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

var (
	ErrEmptyTitle       = errors.New("title cannot be empty")
	ErrEmptyDescription = errors.New("description cannot be empty")
	ErrTitleTooLong     = errors.New("title exceeds maximum length of 255 characters")
	ErrInvalidOwnerID   = errors.New("owner ID cannot be nil")
	ErrNothingToUpdate  = errors.New("no fields to update")
)

const maxTitleLength = 255

// NewVideo creates a Video owned by ownerID. Videos start published;
// the owner can unpublish via TogglePublish.
func NewVideo(ownerID uuid.UUID, title, description, videoURL, thumbnailURL string, durationSeconds float64) (*Video, error) {
	if ownerID == uuid.Nil {
		return nil, ErrInvalidOwnerID
	}
	if title == "" {
		return nil, ErrEmptyTitle
	}
	if len(title) > maxTitleLength {
		return nil, ErrTitleTooLong
	}
	if description == "" {
		return nil, ErrEmptyDescription
	}

	now := time.Now()
	return &Video{
		ID:              uuid.New(),
		OwnerID:         ownerID,
		Title:           title,
		Description:     description,
		VideoURL:        videoURL,
		ThumbnailURL:    thumbnailURL,
		DurationSeconds: durationSeconds,
		IsPublished:     true,
		CreatedAt:       now,
		UpdatedAt:       now,
	}, nil
}

// UpdateDetails applies the non-empty fields. At least one field must be
// provided.
func (v *Video) UpdateDetails(title, description, thumbnailURL string) error {
	if title == "" && description == "" && thumbnailURL == "" {
		return ErrNothingToUpdate
	}
	if len(title) > maxTitleLength {
		return ErrTitleTooLong
	}
	if title != "" {
		v.Title = title
	}
	if description != "" {
		v.Description = description
	}
	if thumbnailURL != "" {
		v.ThumbnailURL = thumbnailURL
	}
	v.UpdatedAt = time.Now()
	return nil
}

// TogglePublish flips the publish flag and returns the new state.
func (v *Video) TogglePublish() bool {
	v.IsPublished = !v.IsPublished
	v.UpdatedAt = time.Now()
	return v.IsPublished
}

// Owner is the reduced projection of a user exposed on joined documents.
// Full user documents are never embedded in resource responses.
type Owner struct {
	Username  string
	AvatarURL string
}

// VideoWithOwner is a video document with its owner collapsed to the
// reduced projection.
type VideoWithOwner struct {
	Video
	Owner Owner
}
