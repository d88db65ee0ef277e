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

// CommentRepository implements repository.CommentRepository using PostgreSQL.
type CommentRepository struct {
	db DBTX
}

// NewCommentRepository creates a new CommentRepository instance.
func NewCommentRepository(db DBTX) *CommentRepository {
	return &CommentRepository{db: db}
}

// Create persists a new comment.
func (r *CommentRepository) Create(ctx context.Context, comment *model.Comment) error {
	const query = `
		INSERT INTO comments (id, video_id, owner_id, content, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.Exec(ctx, query,
		comment.ID,
		comment.VideoID,
		comment.OwnerID,
		comment.Content,
		comment.CreatedAt,
		comment.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create comment: %w", err)
	}

	return nil
}

// GetByID retrieves a comment by its unique identifier.
func (r *CommentRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Comment, error) {
	const query = `
		SELECT id, video_id, owner_id, content, created_at, updated_at
		FROM comments
		WHERE id = $1
	`

	var c model.Comment
	err := r.db.QueryRow(ctx, query, id).Scan(
		&c.ID,
		&c.VideoID,
		&c.OwnerID,
		&c.Content,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrCommentNotFound
		}
		return nil, fmt.Errorf("failed to get comment by ID: %w", err)
	}

	return &c, nil
}

// ListByVideo returns a page of a video's comments, owner-joined, newest
// first.
func (r *CommentRepository) ListByVideo(ctx context.Context, videoID uuid.UUID, page repository.PageRequest) (*repository.Page[model.CommentWithOwner], error) {
	p := NewPipeline("comments c").
		Select(
			"c.id", "c.video_id", "c.owner_id", "c.content",
			"c.created_at", "c.updated_at",
			"u.username", "u.avatar_url",
		).
		Join("JOIN users u ON u.id = c.owner_id").
		Where("c.video_id = ?", videoID).
		OrderBy("c.created_at DESC")

	return Paginate(ctx, r.db, p, page, scanCommentWithOwner)
}

// Update persists changes to an existing comment.
func (r *CommentRepository) Update(ctx context.Context, comment *model.Comment) error {
	const query = `
		UPDATE comments
		SET content = $2, updated_at = $3
		WHERE id = $1
	`

	tag, err := r.db.Exec(ctx, query, comment.ID, comment.Content, comment.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to update comment: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return repository.ErrCommentNotFound
	}

	return nil
}

// Delete removes a comment row.
func (r *CommentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	const query = `DELETE FROM comments WHERE id = $1`

	tag, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return repository.ErrCommentNotFound
	}

	return nil
}

// scanCommentWithOwner scans one owner-joined row.
func scanCommentWithOwner(rows pgx.Rows) (model.CommentWithOwner, error) {
	var c model.CommentWithOwner
	err := rows.Scan(
		&c.ID,
		&c.VideoID,
		&c.OwnerID,
		&c.Content,
		&c.CreatedAt,
		&c.UpdatedAt,
		&c.Owner.Username,
		&c.Owner.AvatarURL,
	)
	return c, err
}

// Compile-time verification that CommentRepository implements repository.CommentRepository.
var _ repository.CommentRepository = (*CommentRepository)(nil)
