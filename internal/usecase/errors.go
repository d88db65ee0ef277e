// Package usecase implements the application services sitting between the
// HTTP handlers and the repositories. Each service validates input, checks
// ownership, and maps repository errors into client-facing ones.
package usecase

import (
	"errors"

	"github.com/hszk-dev/vidtube/internal/domain/apperr"
	"github.com/hszk-dev/vidtube/internal/domain/repository"
)

// lookupErr maps a repository read error into a client-facing error:
// not-found sentinels become 404s named after the resource, anything
// else is reported as an internal error.
func lookupErr(err error, resource string) error {
	if errors.Is(err, repository.ErrNotFound) {
		return apperr.NotFound(resource)
	}
	return apperr.Internal("failed to load "+resource, err)
}

// validationErr wraps a domain model validation failure as a 400.
func validationErr(err error) error {
	return apperr.Validation(err.Error())
}
