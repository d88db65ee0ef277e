package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/hszk-dev/vidtube/internal/domain/model"
	"github.com/hszk-dev/vidtube/internal/domain/repository"
)

// PlaylistRepository implements repository.PlaylistRepository using
// PostgreSQL. Video membership lives in the playlist_videos junction
// table; a deleted video's junction row cascades away, so playlists never
// carry permanently dead references.
type PlaylistRepository struct {
	db DBTX
}

// NewPlaylistRepository creates a new PlaylistRepository instance.
func NewPlaylistRepository(db DBTX) *PlaylistRepository {
	return &PlaylistRepository{db: db}
}

// Create persists a new playlist.
func (r *PlaylistRepository) Create(ctx context.Context, playlist *model.Playlist) error {
	const query = `
		INSERT INTO playlists (id, owner_id, name, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.Exec(ctx, query,
		playlist.ID,
		playlist.OwnerID,
		playlist.Name,
		playlist.Description,
		playlist.CreatedAt,
		playlist.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create playlist: %w", err)
	}

	return nil
}

// GetByID retrieves a playlist by its unique identifier.
func (r *PlaylistRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Playlist, error) {
	const query = `
		SELECT id, owner_id, name, description, created_at, updated_at
		FROM playlists
		WHERE id = $1
	`

	var p model.Playlist
	err := r.db.QueryRow(ctx, query, id).Scan(
		&p.ID,
		&p.OwnerID,
		&p.Name,
		&p.Description,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrPlaylistNotFound
		}
		return nil, fmt.Errorf("failed to get playlist by ID: %w", err)
	}

	return &p, nil
}

// GetWithVideos retrieves a playlist with its videos resolved in playlist
// order.
func (r *PlaylistRepository) GetWithVideos(ctx context.Context, id uuid.UUID) (*model.PlaylistWithVideos, error) {
	playlist, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	videosByPlaylist, err := r.loadVideos(ctx, []uuid.UUID{id})
	if err != nil {
		return nil, err
	}

	return &model.PlaylistWithVideos{
		Playlist: *playlist,
		Videos:   videosByPlaylist[id],
	}, nil
}

// ListByOwner returns a page of a user's playlists with videos resolved,
// newest-updated first.
func (r *PlaylistRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID, page repository.PageRequest) (*repository.Page[model.PlaylistWithVideos], error) {
	p := NewPipeline("playlists p").
		Select("p.id", "p.owner_id", "p.name", "p.description", "p.created_at", "p.updated_at").
		Where("p.owner_id = ?", ownerID).
		OrderBy("p.updated_at DESC")

	result, err := Paginate(ctx, r.db, p, page, func(rows pgx.Rows) (model.PlaylistWithVideos, error) {
		var pl model.PlaylistWithVideos
		err := rows.Scan(&pl.ID, &pl.OwnerID, &pl.Name, &pl.Description, &pl.CreatedAt, &pl.UpdatedAt)
		return pl, err
	})
	if err != nil {
		return nil, err
	}

	if len(result.Docs) == 0 {
		return result, nil
	}

	ids := make([]uuid.UUID, len(result.Docs))
	for i, pl := range result.Docs {
		ids[i] = pl.ID
	}

	videosByPlaylist, err := r.loadVideos(ctx, ids)
	if err != nil {
		return nil, err
	}

	for i := range result.Docs {
		result.Docs[i].Videos = videosByPlaylist[result.Docs[i].ID]
	}

	return result, nil
}

// Update persists changes to an existing playlist.
func (r *PlaylistRepository) Update(ctx context.Context, playlist *model.Playlist) error {
	const query = `
		UPDATE playlists
		SET name = $2, description = $3, updated_at = $4
		WHERE id = $1
	`

	tag, err := r.db.Exec(ctx, query,
		playlist.ID,
		playlist.Name,
		playlist.Description,
		playlist.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update playlist: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return repository.ErrPlaylistNotFound
	}

	return nil
}

// Delete removes a playlist row; junction rows cascade.
func (r *PlaylistRepository) Delete(ctx context.Context, id uuid.UUID) error {
	const query = `DELETE FROM playlists WHERE id = $1`

	tag, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete playlist: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return repository.ErrPlaylistNotFound
	}

	return nil
}

// AddVideo appends a video at the end of the playlist. A duplicate entry
// hits the junction primary key and reports ErrVideoAlreadyInPlaylist
// without mutating anything.
func (r *PlaylistRepository) AddVideo(ctx context.Context, playlistID, videoID uuid.UUID) error {
	const query = `
		INSERT INTO playlist_videos (playlist_id, video_id, position, added_at)
		SELECT $1, $2, COALESCE(MAX(position) + 1, 0), now()
		FROM playlist_videos
		WHERE playlist_id = $1
		ON CONFLICT (playlist_id, video_id) DO NOTHING
	`

	tag, err := r.db.Exec(ctx, query, playlistID, videoID)
	if err != nil {
		return fmt.Errorf("failed to add video to playlist: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return repository.ErrVideoAlreadyInPlaylist
	}

	return nil
}

// RemoveVideo removes a video from the playlist.
func (r *PlaylistRepository) RemoveVideo(ctx context.Context, playlistID, videoID uuid.UUID) error {
	const query = `
		DELETE FROM playlist_videos
		WHERE playlist_id = $1 AND video_id = $2
	`

	tag, err := r.db.Exec(ctx, query, playlistID, videoID)
	if err != nil {
		return fmt.Errorf("failed to remove video from playlist: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return repository.ErrVideoNotInPlaylist
	}

	return nil
}

// loadVideos resolves playlist membership for a batch of playlists in one
// query, preserving playlist order.
func (r *PlaylistRepository) loadVideos(ctx context.Context, playlistIDs []uuid.UUID) (map[uuid.UUID][]model.Video, error) {
	const query = `
		SELECT pv.playlist_id,
		       v.id, v.owner_id, v.title, v.description,
		       v.video_url, v.thumbnail_url, v.duration_seconds,
		       v.is_published, v.created_at, v.updated_at
		FROM playlist_videos pv
		JOIN videos v ON v.id = pv.video_id
		WHERE pv.playlist_id = ANY($1)
		ORDER BY pv.playlist_id, pv.position
	`

	rows, err := r.db.Query(ctx, query, playlistIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query playlist videos: %w", err)
	}
	defer rows.Close()

	videos := make(map[uuid.UUID][]model.Video)
	for rows.Next() {
		var (
			playlistID uuid.UUID
			v          model.Video
		)
		err := rows.Scan(
			&playlistID,
			&v.ID,
			&v.OwnerID,
			&v.Title,
			&v.Description,
			&v.VideoURL,
			&v.ThumbnailURL,
			&v.DurationSeconds,
			&v.IsPublished,
			&v.CreatedAt,
			&v.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan playlist video: %w", err)
		}
		videos[playlistID] = append(videos[playlistID], v)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating playlist videos: %w", err)
	}

	return videos, nil
}

// Compile-time verification that PlaylistRepository implements repository.PlaylistRepository.
var _ repository.PlaylistRepository = (*PlaylistRepository)(nil)
