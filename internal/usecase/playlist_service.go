package usecase

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/hszk-dev/vidtube/internal/domain/apperr"
	"github.com/hszk-dev/vidtube/internal/domain/model"
	"github.com/hszk-dev/vidtube/internal/domain/repository"
)

const defaultPlaylistPageLimit = 10

// PlaylistService defines the interface for playlist business logic
// operations.
type PlaylistService interface {
	// CreatePlaylist creates an empty playlist for the principal.
	CreatePlaylist(ctx context.Context, principalID uuid.UUID, name, description string) (*model.Playlist, error)

	// GetPlaylist retrieves a playlist with its videos in playlist order.
	GetPlaylist(ctx context.Context, playlistID uuid.UUID) (*model.PlaylistWithVideos, error)

	// ListUserPlaylists returns a page of a user's playlists with videos
	// resolved. A user with no playlists yields a valid empty page.
	ListUserPlaylists(ctx context.Context, ownerID uuid.UUID, page repository.PageRequest) (*repository.Page[model.PlaylistWithVideos], error)

	// UpdatePlaylist applies a partial update to a playlist owned by the
	// principal.
	UpdatePlaylist(ctx context.Context, playlistID, principalID uuid.UUID, name, description string) (*model.Playlist, error)

	// DeletePlaylist removes a playlist owned by the principal. Videos in
	// the playlist are untouched.
	DeletePlaylist(ctx context.Context, playlistID, principalID uuid.UUID) error

	// AddVideo appends a video to a playlist owned by the principal.
	// Returns added=false when the video was already in the playlist.
	AddVideo(ctx context.Context, playlistID, videoID, principalID uuid.UUID) (added bool, err error)

	// RemoveVideo removes a video from a playlist owned by the principal.
	RemoveVideo(ctx context.Context, playlistID, videoID, principalID uuid.UUID) error
}

type playlistService struct {
	repo   repository.PlaylistRepository
	videos repository.VideoRepository
}

// NewPlaylistService creates a new PlaylistService instance.
func NewPlaylistService(repo repository.PlaylistRepository, videos repository.VideoRepository) PlaylistService {
	return &playlistService{
		repo:   repo,
		videos: videos,
	}
}

func (s *playlistService) CreatePlaylist(ctx context.Context, principalID uuid.UUID, name, description string) (*model.Playlist, error) {
	if principalID == uuid.Nil {
		return nil, apperr.Unauthenticated("authentication required")
	}

	playlist, err := model.NewPlaylist(principalID, name, description)
	if err != nil {
		return nil, validationErr(err)
	}

	if err := s.repo.Create(ctx, playlist); err != nil {
		return nil, apperr.Internal("failed to create playlist", err)
	}

	return playlist, nil
}

func (s *playlistService) GetPlaylist(ctx context.Context, playlistID uuid.UUID) (*model.PlaylistWithVideos, error) {
	playlist, err := s.repo.GetWithVideos(ctx, playlistID)
	if err != nil {
		return nil, lookupErr(err, "playlist")
	}

	return playlist, nil
}

func (s *playlistService) ListUserPlaylists(ctx context.Context, ownerID uuid.UUID, page repository.PageRequest) (*repository.Page[model.PlaylistWithVideos], error) {
	result, err := s.repo.ListByOwner(ctx, ownerID, page.Normalize(defaultPlaylistPageLimit, maxPageLimit))
	if err != nil {
		return nil, apperr.Internal("failed to list playlists", err)
	}

	return result, nil
}

func (s *playlistService) UpdatePlaylist(ctx context.Context, playlistID, principalID uuid.UUID, name, description string) (*model.Playlist, error) {
	playlist, err := s.repo.GetByID(ctx, playlistID)
	if err != nil {
		return nil, lookupErr(err, "playlist")
	}

	if err := requireOwner(playlist.OwnerID, principalID); err != nil {
		return nil, err
	}

	if err := playlist.UpdateDetails(name, description); err != nil {
		return nil, validationErr(err)
	}

	if err := s.repo.Update(ctx, playlist); err != nil {
		return nil, lookupErr(err, "playlist")
	}

	return playlist, nil
}

func (s *playlistService) DeletePlaylist(ctx context.Context, playlistID, principalID uuid.UUID) error {
	playlist, err := s.repo.GetByID(ctx, playlistID)
	if err != nil {
		return lookupErr(err, "playlist")
	}

	if err := requireOwner(playlist.OwnerID, principalID); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, playlistID); err != nil {
		return lookupErr(err, "playlist")
	}

	return nil
}

// AddVideo appends a video after checking both entities exist and the
// principal owns the playlist. Adding a video that is already present is
// not an error; the call reports added=false.
func (s *playlistService) AddVideo(ctx context.Context, playlistID, videoID, principalID uuid.UUID) (bool, error) {
	playlist, err := s.repo.GetByID(ctx, playlistID)
	if err != nil {
		return false, lookupErr(err, "playlist")
	}

	if err := requireOwner(playlist.OwnerID, principalID); err != nil {
		return false, err
	}

	if _, err := s.videos.GetByID(ctx, videoID); err != nil {
		return false, lookupErr(err, "video")
	}

	if err := s.repo.AddVideo(ctx, playlistID, videoID); err != nil {
		if errors.Is(err, repository.ErrVideoAlreadyInPlaylist) {
			return false, nil
		}
		return false, apperr.Internal("failed to add video to playlist", err)
	}

	return true, nil
}

func (s *playlistService) RemoveVideo(ctx context.Context, playlistID, videoID, principalID uuid.UUID) error {
	playlist, err := s.repo.GetByID(ctx, playlistID)
	if err != nil {
		return lookupErr(err, "playlist")
	}

	if err := requireOwner(playlist.OwnerID, principalID); err != nil {
		return err
	}

	if err := s.repo.RemoveVideo(ctx, playlistID, videoID); err != nil {
		if errors.Is(err, repository.ErrVideoNotInPlaylist) {
			return apperr.NotFound("video in playlist")
		}
		return apperr.Internal("failed to remove video from playlist", err)
	}

	return nil
}
