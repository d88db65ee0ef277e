package usecase

import (
	"github.com/google/uuid"

	"github.com/hszk-dev/vidtube/internal/domain/apperr"
)

// requireOwner enforces the uniform mutation rule: only the resource owner
// may modify or delete it. Callers run this after loading the resource and
// before any state change.
func requireOwner(ownerID, principalID uuid.UUID) error {
	if principalID == uuid.Nil {
		return apperr.Unauthenticated("authentication required")
	}
	if ownerID != principalID {
		return apperr.Authorization("you do not own this resource")
	}
	return nil
}
