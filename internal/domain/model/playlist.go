package model

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Playlist is a named, ordered collection of videos.
type Playlist struct {
	ID          uuid.UUID
	OwnerID     uuid.UUID
	Name        string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

var ErrEmptyName = errors.New("name cannot be empty")

// NewPlaylist creates an empty playlist owned by ownerID.
func NewPlaylist(ownerID uuid.UUID, name, description string) (*Playlist, error) {
	if ownerID == uuid.Nil {
		return nil, ErrInvalidOwnerID
	}
	if name == "" {
		return nil, ErrEmptyName
	}
	if description == "" {
		return nil, ErrEmptyDescription
	}

	now := time.Now()
	return &Playlist{
		ID:          uuid.New(),
		OwnerID:     ownerID,
		Name:        name,
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// UpdateDetails applies the non-empty fields. At least one field must be
// provided.
func (p *Playlist) UpdateDetails(name, description string) error {
	if name == "" && description == "" {
		return ErrNothingToUpdate
	}
	if name != "" {
		p.Name = name
	}
	if description != "" {
		p.Description = description
	}
	p.UpdatedAt = time.Now()
	return nil
}

// PlaylistWithVideos is a playlist document with its videos resolved, in
// playlist order. A reference to a since-deleted video simply does not
// resolve and is absent from Videos.
type PlaylistWithVideos struct {
	Playlist
	Videos []Video
}
