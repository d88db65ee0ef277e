// Package handler implements the HTTP controllers. Every response uses the
// same envelope: status_code, the payload under data, and a human-readable
// message.
package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/hszk-dev/vidtube/internal/api/middleware"
	"github.com/hszk-dev/vidtube/internal/domain/apperr"
	"github.com/hszk-dev/vidtube/internal/domain/repository"
)

// Envelope is the uniform response shape for success and failure alike.
// Errors carry a null data field; mutations without a payload carry an
// empty object.
type Envelope struct {
	StatusCode int    `json:"status_code"`
	Data       any    `json:"data"`
	Message    string `json:"message"`
}

// emptyDoc is the data payload for successful mutations that return no
// document (deletes, removals).
var emptyDoc = struct{}{}

// JSON writes a success envelope.
func JSON(w http.ResponseWriter, status int, data any, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(Envelope{
		StatusCode: status,
		Data:       data,
		Message:    message,
	}); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// Error writes a failure envelope derived from the error taxonomy. Internal
// causes are logged, never sent to the client.
func Error(w http.ResponseWriter, err error) {
	appErr := apperr.From(err)
	if appErr.Status >= http.StatusInternalServerError {
		slog.Error("request failed", "error", appErr)
	}
	JSON(w, appErr.Status, nil, appErr.Message)
}

// PageResponse is the serialized form of a result page.
type PageResponse[T any] struct {
	Docs       []T `json:"docs"`
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	TotalDocs  int `json:"total_docs"`
	TotalPages int `json:"total_pages"`
}

// newPageResponse maps a domain page into its response shape, converting
// each doc with fn.
func newPageResponse[T, R any](page *repository.Page[T], fn func(T) R) PageResponse[R] {
	docs := make([]R, 0, len(page.Docs))
	for _, doc := range page.Docs {
		docs = append(docs, fn(doc))
	}
	return PageResponse[R]{
		Docs:       docs,
		Page:       page.Page,
		Limit:      page.Limit,
		TotalDocs:  page.TotalDocs,
		TotalPages: page.TotalPages,
	}
}

// parsePageRequest reads page and limit query parameters. Absent or
// malformed values are left zero; the services normalize them.
func parsePageRequest(r *http.Request) repository.PageRequest {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	return repository.PageRequest{Page: page, Limit: limit}
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// principalID reads the authenticated principal from the request context,
// uuid.Nil when the request is anonymous.
func principalID(r *http.Request) uuid.UUID {
	return middleware.GetPrincipalID(r.Context())
}
