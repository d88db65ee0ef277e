package model

import (
	"time"

	"github.com/google/uuid"
)

// User is the read-side projection of an account. Account management is
// owned by the identity service; this backend only joins against it.
type User struct {
	ID        uuid.UUID
	Username  string
	AvatarURL string
	CreatedAt time.Time
}
