package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/hszk-dev/vidtube/internal/domain/model"
	"github.com/hszk-dev/vidtube/internal/domain/repository"
)

// subjectColumns maps a subject kind to its likes column. The tagged
// union is stored as three nullable FK columns with a CHECK that exactly
// one is set.
var subjectColumns = map[model.SubjectKind]string{
	model.SubjectVideo:   "video_id",
	model.SubjectComment: "comment_id",
	model.SubjectTweet:   "tweet_id",
}

// LikeRepository implements repository.LikeRepository using PostgreSQL.
type LikeRepository struct {
	db DBTX
}

// NewLikeRepository creates a new LikeRepository instance.
func NewLikeRepository(db DBTX) *LikeRepository {
	return &LikeRepository{db: db}
}

// Create persists a like. The partial unique indexes on
// (subject, liked_by) turn a concurrent duplicate into ErrAlreadyLiked.
func (r *LikeRepository) Create(ctx context.Context, like *model.Like) error {
	const query = `
		INSERT INTO likes (id, video_id, comment_id, tweet_id, liked_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	videoID, commentID, tweetID := subjectValues(like.Subject)

	_, err := r.db.Exec(ctx, query,
		like.ID,
		videoID,
		commentID,
		tweetID,
		like.LikedBy,
		like.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return repository.ErrAlreadyLiked
		}
		return fmt.Errorf("failed to create like: %w", err)
	}

	return nil
}

// FindBySubject returns the like for the unique (subject, user) pair.
func (r *LikeRepository) FindBySubject(ctx context.Context, subject model.Subject, userID uuid.UUID) (*model.Like, error) {
	col, ok := subjectColumns[subject.Kind()]
	if !ok {
		return nil, model.ErrInvalidSubjectKind
	}

	query := fmt.Sprintf(`SELECT id, created_at FROM likes WHERE %s = $1 AND liked_by = $2`, col)

	like := model.Like{Subject: subject, LikedBy: userID}
	err := r.db.QueryRow(ctx, query, subject.ID(), userID).Scan(&like.ID, &like.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrLikeNotFound
		}
		return nil, fmt.Errorf("failed to find like: %w", err)
	}

	return &like, nil
}

// Delete removes a like by id.
func (r *LikeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	const query = `DELETE FROM likes WHERE id = $1`

	tag, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete like: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return repository.ErrLikeNotFound
	}

	return nil
}

// CountBySubject counts likes on a subject. Always a live query; no
// denormalized counter exists.
func (r *LikeRepository) CountBySubject(ctx context.Context, subject model.Subject) (int, error) {
	col, ok := subjectColumns[subject.Kind()]
	if !ok {
		return 0, model.ErrInvalidSubjectKind
	}

	query := fmt.Sprintf(`SELECT count(*) FROM likes WHERE %s = $1`, col)

	var count int
	if err := r.db.QueryRow(ctx, query, subject.ID()).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count likes: %w", err)
	}

	return count, nil
}

// ListLikedVideos returns a page of the videos a user has liked, most
// recently liked first. The one-row video join is collapsed into the
// video document itself.
func (r *LikeRepository) ListLikedVideos(ctx context.Context, userID uuid.UUID, page repository.PageRequest) (*repository.Page[model.Video], error) {
	p := NewPipeline("likes l").
		Select(
			"v.id", "v.owner_id", "v.title", "v.description",
			"v.video_url", "v.thumbnail_url", "v.duration_seconds",
			"v.is_published", "v.created_at", "v.updated_at",
		).
		Join("JOIN videos v ON v.id = l.video_id").
		Where("l.liked_by = ?", userID).
		Where("l.video_id IS NOT NULL").
		OrderBy("l.created_at DESC")

	return Paginate(ctx, r.db, p, page, scanVideo)
}

// subjectValues expands the tagged union into the nullable columns.
func subjectValues(subject model.Subject) (videoID, commentID, tweetID *uuid.UUID) {
	id := subject.ID()
	switch subject.Kind() {
	case model.SubjectVideo:
		videoID = &id
	case model.SubjectComment:
		commentID = &id
	case model.SubjectTweet:
		tweetID = &id
	}
	return videoID, commentID, tweetID
}

func scanVideo(rows pgx.Rows) (model.Video, error) {
	var v model.Video
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
	)
	return v, err
}

// Compile-time verification that LikeRepository implements repository.LikeRepository.
var _ repository.LikeRepository = (*LikeRepository)(nil)
