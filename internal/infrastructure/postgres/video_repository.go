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

// videoSortKeys whitelists the sortable columns for the public listing.
var videoSortKeys = map[string]string{
	"created_at":       "v.created_at",
	"updated_at":       "v.updated_at",
	"title":            "v.title",
	"duration_seconds": "v.duration_seconds",
}

// VideoRepository implements repository.VideoRepository using PostgreSQL.
type VideoRepository struct {
	db DBTX
}

// NewVideoRepository creates a new VideoRepository instance.
func NewVideoRepository(db DBTX) *VideoRepository {
	return &VideoRepository{db: db}
}

// Create persists a new video entity.
func (r *VideoRepository) Create(ctx context.Context, video *model.Video) error {
	const query = `
		INSERT INTO videos (id, owner_id, title, description, video_url, thumbnail_url, duration_seconds, is_published, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.db.Exec(ctx, query,
		video.ID,
		video.OwnerID,
		video.Title,
		video.Description,
		video.VideoURL,
		video.ThumbnailURL,
		video.DurationSeconds,
		video.IsPublished,
		video.CreatedAt,
		video.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create video: %w", err)
	}

	return nil
}

// GetByID retrieves a video by its unique identifier.
func (r *VideoRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Video, error) {
	const query = `
		SELECT id, owner_id, title, description, video_url, thumbnail_url, duration_seconds, is_published, created_at, updated_at
		FROM videos
		WHERE id = $1
	`

	var v model.Video
	err := r.db.QueryRow(ctx, query, id).Scan(
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
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrVideoNotFound
		}
		return nil, fmt.Errorf("failed to get video by ID: %w", err)
	}

	return &v, nil
}

// GetWithOwner retrieves a video with its owner reduced to the
// {username, avatar_url} projection.
func (r *VideoRepository) GetWithOwner(ctx context.Context, id uuid.UUID) (*model.VideoWithOwner, error) {
	query, args := r.ownerJoinedPipeline().Where("v.id = ?", id).SQL()

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get video with owner: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("failed to get video with owner: %w", err)
		}
		return nil, repository.ErrVideoNotFound
	}

	v, err := scanVideoWithOwner(rows)
	if err != nil {
		return nil, fmt.Errorf("failed to scan video with owner: %w", err)
	}

	return &v, nil
}

// ListPublished returns a page of published videos matching the filter,
// owner-joined, ordered by the requested key with created_at as tiebreak.
func (r *VideoRepository) ListPublished(ctx context.Context, filter repository.VideoFilter, page repository.PageRequest) (*repository.Page[model.VideoWithOwner], error) {
	p := r.ownerJoinedPipeline().Where("v.is_published = ?", true)

	if filter.Query != "" {
		pattern := "%" + filter.Query + "%"
		p.Where("(v.title ILIKE ? OR v.description ILIKE ?)", pattern, pattern)
	}

	sortCol, ok := videoSortKeys[filter.SortBy]
	if !ok {
		sortCol = "v.created_at"
	}
	dir := "ASC"
	if filter.SortDesc {
		dir = "DESC"
	}
	p.OrderBy(sortCol+" "+dir, "v.created_at DESC")

	return Paginate(ctx, r.db, p, page, scanVideoWithOwner)
}

// Update persists changes to an existing video entity.
func (r *VideoRepository) Update(ctx context.Context, video *model.Video) error {
	const query = `
		UPDATE videos
		SET title = $2, description = $3, thumbnail_url = $4, is_published = $5, updated_at = $6
		WHERE id = $1
	`

	tag, err := r.db.Exec(ctx, query,
		video.ID,
		video.Title,
		video.Description,
		video.ThumbnailURL,
		video.IsPublished,
		video.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update video: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return repository.ErrVideoNotFound
	}

	return nil
}

// Delete removes a video row.
func (r *VideoRepository) Delete(ctx context.Context, id uuid.UUID) error {
	const query = `DELETE FROM videos WHERE id = $1`

	tag, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete video: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return repository.ErrVideoNotFound
	}

	return nil
}

// ownerJoinedPipeline is the shared match/join/reshape description for
// owner-joined video documents.
func (r *VideoRepository) ownerJoinedPipeline() *Pipeline {
	return NewPipeline("videos v").
		Select(
			"v.id", "v.owner_id", "v.title", "v.description",
			"v.video_url", "v.thumbnail_url", "v.duration_seconds",
			"v.is_published", "v.created_at", "v.updated_at",
			"u.username", "u.avatar_url",
		).
		Join("JOIN users u ON u.id = v.owner_id")
}

// scanVideoWithOwner scans one owner-joined row.
func scanVideoWithOwner(rows pgx.Rows) (model.VideoWithOwner, error) {
	var v model.VideoWithOwner
	err := rows.Scan(
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
		&v.Owner.Username,
		&v.Owner.AvatarURL,
	)
	return v, err
}

// Compile-time verification that VideoRepository implements repository.VideoRepository.
var _ repository.VideoRepository = (*VideoRepository)(nil)
