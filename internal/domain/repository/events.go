package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Video lifecycle event types.
const (
	EventVideoPublished = "video.published"
	EventVideoDeleted   = "video.deleted"
)

// VideoEvent is published when a video becomes visible or disappears, for
// downstream collaborators (feed fanout, blob garbage collection).
type VideoEvent struct {
	Type       string    `json:"type"`
	VideoID    uuid.UUID `json:"video_id"`
	OwnerID    uuid.UUID `json:"owner_id"`
	OccurredAt time.Time `json:"occurred_at"`
}

// EventPublisher defines the interface for emitting lifecycle events.
// Publishing is best-effort; callers log failures and never fail the
// request on them.
type EventPublisher interface {
	PublishVideoEvent(ctx context.Context, event VideoEvent) error

	// Close gracefully closes the underlying connection.
	Close() error
}
