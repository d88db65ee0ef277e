package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/hszk-dev/vidtube/internal/domain/apperr"
	"github.com/hszk-dev/vidtube/internal/domain/model"
	"github.com/hszk-dev/vidtube/internal/usecase"
)

type PlaylistResponse struct {
	ID          string          `json:"id"`
	OwnerID     string          `json:"owner_id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	CreatedAt   string          `json:"created_at"`
	UpdatedAt   string          `json:"updated_at"`
	Videos      []VideoResponse `json:"videos,omitempty"`
}

type playlistRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// PlaylistHandler handles playlist-related HTTP requests.
type PlaylistHandler struct {
	svc usecase.PlaylistService
}

// NewPlaylistHandler creates a new PlaylistHandler.
func NewPlaylistHandler(svc usecase.PlaylistService) *PlaylistHandler {
	return &PlaylistHandler{svc: svc}
}

// Create handles POST /playlists.
func (h *PlaylistHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req playlistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		Error(w, apperr.Validation("invalid JSON body"))
		return
	}

	playlist, err := h.svc.CreatePlaylist(r.Context(), principalID(r), req.Name, req.Description)
	if err != nil {
		Error(w, err)
		return
	}

	JSON(w, http.StatusCreated, toPlaylistResponse(playlist), "playlist created successfully")
}

// Get handles GET /playlists/{id}.
func (h *PlaylistHandler) Get(w http.ResponseWriter, r *http.Request) {
	playlistID, err := apperr.ParseID(chi.URLParam(r, "id"), "playlist id")
	if err != nil {
		Error(w, err)
		return
	}

	playlist, err := h.svc.GetPlaylist(r.Context(), playlistID)
	if err != nil {
		Error(w, err)
		return
	}

	JSON(w, http.StatusOK, toPlaylistWithVideosResponse(*playlist), "playlist fetched successfully")
}

// List handles GET /playlists, the principal's own playlists.
func (h *PlaylistHandler) List(w http.ResponseWriter, r *http.Request) {
	page, err := h.svc.ListUserPlaylists(r.Context(), principalID(r), parsePageRequest(r))
	if err != nil {
		Error(w, err)
		return
	}

	JSON(w, http.StatusOK, newPageResponse(page, toPlaylistWithVideosResponse), "playlists fetched successfully")
}

// Update handles PATCH /playlists/{id}.
func (h *PlaylistHandler) Update(w http.ResponseWriter, r *http.Request) {
	playlistID, err := apperr.ParseID(chi.URLParam(r, "id"), "playlist id")
	if err != nil {
		Error(w, err)
		return
	}

	var req playlistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		Error(w, apperr.Validation("invalid JSON body"))
		return
	}

	playlist, err := h.svc.UpdatePlaylist(r.Context(), playlistID, principalID(r), req.Name, req.Description)
	if err != nil {
		Error(w, err)
		return
	}

	JSON(w, http.StatusOK, toPlaylistResponse(playlist), "playlist updated successfully")
}

// Delete handles DELETE /playlists/{id}.
func (h *PlaylistHandler) Delete(w http.ResponseWriter, r *http.Request) {
	playlistID, err := apperr.ParseID(chi.URLParam(r, "id"), "playlist id")
	if err != nil {
		Error(w, err)
		return
	}

	if err := h.svc.DeletePlaylist(r.Context(), playlistID, principalID(r)); err != nil {
		Error(w, err)
		return
	}

	JSON(w, http.StatusOK, emptyDoc, "playlist deleted successfully")
}

// AddVideo handles POST /playlists/{id}/videos/{videoID}. Adding a video
// already in the playlist succeeds with a distinct message.
func (h *PlaylistHandler) AddVideo(w http.ResponseWriter, r *http.Request) {
	playlistID, videoID, err := playlistVideoIDs(r)
	if err != nil {
		Error(w, err)
		return
	}

	added, err := h.svc.AddVideo(r.Context(), playlistID, videoID, principalID(r))
	if err != nil {
		Error(w, err)
		return
	}

	message := "video already in playlist"
	if added {
		message = "video added to playlist"
	}
	JSON(w, http.StatusOK, map[string]bool{"added": added}, message)
}

// RemoveVideo handles DELETE /playlists/{id}/videos/{videoID}.
func (h *PlaylistHandler) RemoveVideo(w http.ResponseWriter, r *http.Request) {
	playlistID, videoID, err := playlistVideoIDs(r)
	if err != nil {
		Error(w, err)
		return
	}

	if err := h.svc.RemoveVideo(r.Context(), playlistID, videoID, principalID(r)); err != nil {
		Error(w, err)
		return
	}

	JSON(w, http.StatusOK, emptyDoc, "video removed from playlist")
}

func playlistVideoIDs(r *http.Request) (playlistID, videoID uuid.UUID, err error) {
	playlistID, err = apperr.ParseID(chi.URLParam(r, "id"), "playlist id")
	if err != nil {
		return
	}
	videoID, err = apperr.ParseID(chi.URLParam(r, "videoID"), "video id")
	return
}

func toPlaylistResponse(p *model.Playlist) PlaylistResponse {
	return PlaylistResponse{
		ID:          p.ID.String(),
		OwnerID:     p.OwnerID.String(),
		Name:        p.Name,
		Description: p.Description,
		CreatedAt:   formatTime(p.CreatedAt),
		UpdatedAt:   formatTime(p.UpdatedAt),
	}
}

func toPlaylistWithVideosResponse(p model.PlaylistWithVideos) PlaylistResponse {
	resp := toPlaylistResponse(&p.Playlist)
	resp.Videos = make([]VideoResponse, 0, len(p.Videos))
	for _, v := range p.Videos {
		resp.Videos = append(resp.Videos, toVideoDocResponse(v))
	}
	return resp
}
