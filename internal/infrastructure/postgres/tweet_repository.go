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

// TweetRepository implements repository.TweetRepository using PostgreSQL.
type TweetRepository struct {
	db DBTX
}

// NewTweetRepository creates a new TweetRepository instance.
func NewTweetRepository(db DBTX) *TweetRepository {
	return &TweetRepository{db: db}
}

// Create persists a new tweet.
func (r *TweetRepository) Create(ctx context.Context, tweet *model.Tweet) error {
	const query = `
		INSERT INTO tweets (id, owner_id, content, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.db.Exec(ctx, query,
		tweet.ID,
		tweet.OwnerID,
		tweet.Content,
		tweet.CreatedAt,
		tweet.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create tweet: %w", err)
	}

	return nil
}

// GetByID retrieves a tweet by its unique identifier.
func (r *TweetRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Tweet, error) {
	const query = `
		SELECT id, owner_id, content, created_at, updated_at
		FROM tweets
		WHERE id = $1
	`

	var t model.Tweet
	err := r.db.QueryRow(ctx, query, id).Scan(
		&t.ID,
		&t.OwnerID,
		&t.Content,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrTweetNotFound
		}
		return nil, fmt.Errorf("failed to get tweet by ID: %w", err)
	}

	return &t, nil
}

// List returns a page of all tweets, newest first.
func (r *TweetRepository) List(ctx context.Context, page repository.PageRequest) (*repository.Page[model.Tweet], error) {
	p := tweetPipeline().OrderBy("t.created_at DESC")
	return Paginate(ctx, r.db, p, page, scanTweet)
}

// ListByOwner returns a page of a user's tweets, newest first.
func (r *TweetRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID, page repository.PageRequest) (*repository.Page[model.Tweet], error) {
	p := tweetPipeline().
		Where("t.owner_id = ?", ownerID).
		OrderBy("t.created_at DESC")
	return Paginate(ctx, r.db, p, page, scanTweet)
}

// Update persists changes to an existing tweet.
func (r *TweetRepository) Update(ctx context.Context, tweet *model.Tweet) error {
	const query = `
		UPDATE tweets
		SET content = $2, updated_at = $3
		WHERE id = $1
	`

	tag, err := r.db.Exec(ctx, query, tweet.ID, tweet.Content, tweet.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to update tweet: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return repository.ErrTweetNotFound
	}

	return nil
}

// Delete removes a tweet row.
func (r *TweetRepository) Delete(ctx context.Context, id uuid.UUID) error {
	const query = `DELETE FROM tweets WHERE id = $1`

	tag, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete tweet: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return repository.ErrTweetNotFound
	}

	return nil
}

func tweetPipeline() *Pipeline {
	return NewPipeline("tweets t").
		Select("t.id", "t.owner_id", "t.content", "t.created_at", "t.updated_at")
}

func scanTweet(rows pgx.Rows) (model.Tweet, error) {
	var t model.Tweet
	err := rows.Scan(&t.ID, &t.OwnerID, &t.Content, &t.CreatedAt, &t.UpdatedAt)
	return t, err
}

// Compile-time verification that TweetRepository implements repository.TweetRepository.
var _ repository.TweetRepository = (*TweetRepository)(nil)
