package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hszk-dev/vidtube/internal/domain/apperr"
	"github.com/hszk-dev/vidtube/internal/domain/model"
	"github.com/hszk-dev/vidtube/internal/usecase"
)

type TweetResponse struct {
	ID        string `json:"id"`
	OwnerID   string `json:"owner_id"`
	Content   string `json:"content"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

type tweetRequest struct {
	Content string `json:"content"`
}

// TweetHandler handles tweet-related HTTP requests.
type TweetHandler struct {
	svc usecase.TweetService
}

// NewTweetHandler creates a new TweetHandler.
func NewTweetHandler(svc usecase.TweetService) *TweetHandler {
	return &TweetHandler{svc: svc}
}

// Create handles POST /tweets.
func (h *TweetHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req tweetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		Error(w, apperr.Validation("invalid JSON body"))
		return
	}

	tweet, err := h.svc.AddTweet(r.Context(), principalID(r), req.Content)
	if err != nil {
		Error(w, err)
		return
	}

	JSON(w, http.StatusCreated, toTweetResponse(tweet), "tweet created successfully")
}

// List handles GET /tweets.
func (h *TweetHandler) List(w http.ResponseWriter, r *http.Request) {
	page, err := h.svc.ListTweets(r.Context(), parsePageRequest(r))
	if err != nil {
		Error(w, err)
		return
	}

	JSON(w, http.StatusOK, newPageResponse(page, toTweetDocResponse), "tweets fetched successfully")
}

// ListByUser handles GET /users/{id}/tweets.
func (h *TweetHandler) ListByUser(w http.ResponseWriter, r *http.Request) {
	ownerID, err := apperr.ParseID(chi.URLParam(r, "id"), "user id")
	if err != nil {
		Error(w, err)
		return
	}

	page, err := h.svc.ListUserTweets(r.Context(), ownerID, parsePageRequest(r))
	if err != nil {
		Error(w, err)
		return
	}

	JSON(w, http.StatusOK, newPageResponse(page, toTweetDocResponse), "tweets fetched successfully")
}

// Update handles PATCH /tweets/{id}.
func (h *TweetHandler) Update(w http.ResponseWriter, r *http.Request) {
	tweetID, err := apperr.ParseID(chi.URLParam(r, "id"), "tweet id")
	if err != nil {
		Error(w, err)
		return
	}

	var req tweetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		Error(w, apperr.Validation("invalid JSON body"))
		return
	}

	tweet, err := h.svc.UpdateTweet(r.Context(), tweetID, principalID(r), req.Content)
	if err != nil {
		Error(w, err)
		return
	}

	JSON(w, http.StatusOK, toTweetResponse(tweet), "tweet updated successfully")
}

// Delete handles DELETE /tweets/{id}.
func (h *TweetHandler) Delete(w http.ResponseWriter, r *http.Request) {
	tweetID, err := apperr.ParseID(chi.URLParam(r, "id"), "tweet id")
	if err != nil {
		Error(w, err)
		return
	}

	if err := h.svc.DeleteTweet(r.Context(), tweetID, principalID(r)); err != nil {
		Error(w, err)
		return
	}

	JSON(w, http.StatusOK, emptyDoc, "tweet deleted successfully")
}

func toTweetResponse(t *model.Tweet) TweetResponse {
	return TweetResponse{
		ID:        t.ID.String(),
		OwnerID:   t.OwnerID.String(),
		Content:   t.Content,
		CreatedAt: formatTime(t.CreatedAt),
		UpdatedAt: formatTime(t.UpdatedAt),
	}
}

func toTweetDocResponse(t model.Tweet) TweetResponse {
	return toTweetResponse(&t)
}
