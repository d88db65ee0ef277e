package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hszk-dev/vidtube/internal/domain/apperr"
	"github.com/hszk-dev/vidtube/internal/domain/model"
	"github.com/hszk-dev/vidtube/internal/usecase"
)

type CommentResponse struct {
	ID        string         `json:"id"`
	VideoID   string         `json:"video_id"`
	OwnerID   string         `json:"owner_id"`
	Content   string         `json:"content"`
	CreatedAt string         `json:"created_at"`
	UpdatedAt string         `json:"updated_at"`
	Owner     *OwnerResponse `json:"owner,omitempty"`
}

type commentRequest struct {
	Content string `json:"content"`
}

// CommentHandler handles comment-related HTTP requests.
type CommentHandler struct {
	svc usecase.CommentService
}

// NewCommentHandler creates a new CommentHandler.
func NewCommentHandler(svc usecase.CommentService) *CommentHandler {
	return &CommentHandler{svc: svc}
}

// Create handles POST /videos/{id}/comments.
func (h *CommentHandler) Create(w http.ResponseWriter, r *http.Request) {
	videoID, err := apperr.ParseID(chi.URLParam(r, "id"), "video id")
	if err != nil {
		Error(w, err)
		return
	}

	var req commentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		Error(w, apperr.Validation("invalid JSON body"))
		return
	}

	comment, err := h.svc.AddComment(r.Context(), videoID, principalID(r), req.Content)
	if err != nil {
		Error(w, err)
		return
	}

	JSON(w, http.StatusCreated, toCommentResponse(comment), "comment added successfully")
}

// List handles GET /videos/{id}/comments.
func (h *CommentHandler) List(w http.ResponseWriter, r *http.Request) {
	videoID, err := apperr.ParseID(chi.URLParam(r, "id"), "video id")
	if err != nil {
		Error(w, err)
		return
	}

	page, err := h.svc.ListComments(r.Context(), videoID, parsePageRequest(r))
	if err != nil {
		Error(w, err)
		return
	}

	JSON(w, http.StatusOK, newPageResponse(page, toCommentWithOwnerResponse), "comments fetched successfully")
}

// Update handles PATCH /comments/{id}.
func (h *CommentHandler) Update(w http.ResponseWriter, r *http.Request) {
	commentID, err := apperr.ParseID(chi.URLParam(r, "id"), "comment id")
	if err != nil {
		Error(w, err)
		return
	}

	var req commentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		Error(w, apperr.Validation("invalid JSON body"))
		return
	}

	comment, err := h.svc.UpdateComment(r.Context(), commentID, principalID(r), req.Content)
	if err != nil {
		Error(w, err)
		return
	}

	JSON(w, http.StatusOK, toCommentResponse(comment), "comment updated successfully")
}

// Delete handles DELETE /comments/{id}.
func (h *CommentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	commentID, err := apperr.ParseID(chi.URLParam(r, "id"), "comment id")
	if err != nil {
		Error(w, err)
		return
	}

	if err := h.svc.DeleteComment(r.Context(), commentID, principalID(r)); err != nil {
		Error(w, err)
		return
	}

	JSON(w, http.StatusOK, emptyDoc, "comment deleted successfully")
}

func toCommentResponse(c *model.Comment) CommentResponse {
	return CommentResponse{
		ID:        c.ID.String(),
		VideoID:   c.VideoID.String(),
		OwnerID:   c.OwnerID.String(),
		Content:   c.Content,
		CreatedAt: formatTime(c.CreatedAt),
		UpdatedAt: formatTime(c.UpdatedAt),
	}
}

func toCommentWithOwnerResponse(c model.CommentWithOwner) CommentResponse {
	resp := toCommentResponse(&c.Comment)
	resp.Owner = &OwnerResponse{
		Username:  c.Owner.Username,
		AvatarURL: c.Owner.AvatarURL,
	}
	return resp
}
