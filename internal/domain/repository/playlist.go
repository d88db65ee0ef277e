package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/hszk-dev/vidtube/internal/domain/model"
)

// PlaylistRepository defines persistence operations for playlists and
// their video membership.
type PlaylistRepository interface {
	Create(ctx context.Context, playlist *model.Playlist) error

	// GetByID returns ErrPlaylistNotFound if the playlist does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Playlist, error)

	// GetWithVideos retrieves a playlist with its videos resolved in
	// playlist order. Returns ErrPlaylistNotFound if the playlist does
	// not exist; an empty video list is a valid result.
	GetWithVideos(ctx context.Context, id uuid.UUID) (*model.PlaylistWithVideos, error)

	// ListByOwner returns a page of a user's playlists with videos
	// resolved, newest-updated first.
	ListByOwner(ctx context.Context, ownerID uuid.UUID, page PageRequest) (*Page[model.PlaylistWithVideos], error)

	// Update returns ErrPlaylistNotFound if the playlist does not exist.
	Update(ctx context.Context, playlist *model.Playlist) error

	// Delete returns ErrPlaylistNotFound if the playlist does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// AddVideo appends a video to the playlist.
	// Returns ErrVideoAlreadyInPlaylist on a duplicate entry.
	AddVideo(ctx context.Context, playlistID, videoID uuid.UUID) error

	// RemoveVideo removes a video from the playlist.
	// Returns ErrVideoNotInPlaylist when the entry is absent.
	RemoveVideo(ctx context.Context, playlistID, videoID uuid.UUID) error
}
