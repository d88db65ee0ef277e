package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hszk-dev/vidtube/internal/domain/apperr"
	"github.com/hszk-dev/vidtube/internal/domain/model"
	"github.com/hszk-dev/vidtube/internal/usecase"
)

// LikeHandler handles like-related HTTP requests.
type LikeHandler struct {
	svc usecase.LikeService
}

// NewLikeHandler creates a new LikeHandler.
func NewLikeHandler(svc usecase.LikeService) *LikeHandler {
	return &LikeHandler{svc: svc}
}

// toggle runs the like toggle for one subject kind. The route carries the
// subject id under {id}.
func (h *LikeHandler) toggle(w http.ResponseWriter, r *http.Request, kind model.SubjectKind) {
	id, err := apperr.ParseID(chi.URLParam(r, "id"), kind.String()+" id")
	if err != nil {
		Error(w, err)
		return
	}

	subject, err := model.NewSubject(kind, id)
	if err != nil {
		Error(w, apperr.Validation(err.Error()))
		return
	}

	liked, err := h.svc.Toggle(r.Context(), subject, principalID(r))
	if err != nil {
		Error(w, err)
		return
	}

	message := "like removed"
	if liked {
		message = "like added"
	}
	JSON(w, http.StatusOK, map[string]bool{"liked": liked}, message)
}

// ToggleVideo handles POST /likes/videos/{id}.
func (h *LikeHandler) ToggleVideo(w http.ResponseWriter, r *http.Request) {
	h.toggle(w, r, model.SubjectVideo)
}

// ToggleComment handles POST /likes/comments/{id}.
func (h *LikeHandler) ToggleComment(w http.ResponseWriter, r *http.Request) {
	h.toggle(w, r, model.SubjectComment)
}

// ToggleTweet handles POST /likes/tweets/{id}.
func (h *LikeHandler) ToggleTweet(w http.ResponseWriter, r *http.Request) {
	h.toggle(w, r, model.SubjectTweet)
}

// CountVideoLikes handles GET /videos/{id}/likes.
func (h *LikeHandler) CountVideoLikes(w http.ResponseWriter, r *http.Request) {
	videoID, err := apperr.ParseID(chi.URLParam(r, "id"), "video id")
	if err != nil {
		Error(w, err)
		return
	}

	count, err := h.svc.CountVideoLikes(r.Context(), videoID)
	if err != nil {
		Error(w, err)
		return
	}

	JSON(w, http.StatusOK, map[string]int{"likes": count}, "like count fetched successfully")
}

// ListLikedVideos handles GET /likes/videos.
func (h *LikeHandler) ListLikedVideos(w http.ResponseWriter, r *http.Request) {
	page, err := h.svc.ListLikedVideos(r.Context(), principalID(r), parsePageRequest(r))
	if err != nil {
		Error(w, err)
		return
	}

	JSON(w, http.StatusOK, newPageResponse(page, toVideoDocResponse), "liked videos fetched successfully")
}

func toVideoDocResponse(v model.Video) VideoResponse {
	return toVideoResponse(&v)
}
