package handler

import (
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"
	"os"
	"path/filepath"

	"github.com/go-chi/chi/v5"

	"github.com/hszk-dev/vidtube/internal/domain/apperr"
	"github.com/hszk-dev/vidtube/internal/domain/model"
	"github.com/hszk-dev/vidtube/internal/usecase"
)

// multipartMemoryLimit caps how much of a parsed form is held in memory;
// larger parts spill to disk.
const multipartMemoryLimit = 32 << 20

type OwnerResponse struct {
	Username  string `json:"username"`
	AvatarURL string `json:"avatar_url,omitempty"`
}

type VideoResponse struct {
	ID              string         `json:"id"`
	OwnerID         string         `json:"owner_id"`
	Title           string         `json:"title"`
	Description     string         `json:"description"`
	VideoURL        string         `json:"video_url"`
	ThumbnailURL    string         `json:"thumbnail_url"`
	DurationSeconds float64        `json:"duration_seconds"`
	IsPublished     bool           `json:"is_published"`
	CreatedAt       string         `json:"created_at"`
	UpdatedAt       string         `json:"updated_at"`
	Owner           *OwnerResponse `json:"owner,omitempty"`
}

// VideoHandler handles video-related HTTP requests.
type VideoHandler struct {
	svc     usecase.VideoService
	tempDir string
}

// NewVideoHandler creates a new VideoHandler. Uploaded files are staged
// under tempDir before the service moves them to blob storage.
func NewVideoHandler(svc usecase.VideoService, tempDir string) *VideoHandler {
	return &VideoHandler{
		svc:     svc,
		tempDir: tempDir,
	}
}

// Create handles POST /videos. The request is a multipart form carrying
// title and description fields plus videoFile and thumbnail files.
func (h *VideoHandler) Create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(multipartMemoryLimit); err != nil {
		Error(w, apperr.Validation("request must be a multipart form"))
		return
	}

	videoPath, err := h.saveUpload(r, "videoFile")
	if err != nil {
		Error(w, err)
		return
	}
	thumbnailPath, err := h.saveUpload(r, "thumbnail")
	if err != nil {
		removeStaged(videoPath)
		Error(w, err)
		return
	}

	video, err := h.svc.PublishVideo(r.Context(), usecase.PublishVideoInput{
		OwnerID:       principalID(r),
		Title:         r.FormValue("title"),
		Description:   r.FormValue("description"),
		VideoPath:     videoPath,
		ThumbnailPath: thumbnailPath,
	})
	if err != nil {
		removeStaged(videoPath, thumbnailPath)
		Error(w, err)
		return
	}

	JSON(w, http.StatusCreated, toVideoResponse(video), "video published successfully")
}

// List handles GET /videos with query, sort_by, sort_dir, page and limit
// query parameters.
func (h *VideoHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	page, err := h.svc.ListVideos(r.Context(), usecase.ListVideosInput{
		Query:    q.Get("query"),
		SortBy:   q.Get("sort_by"),
		SortDesc: q.Get("sort_dir") != "asc",
		Page:     parsePageRequest(r),
	})
	if err != nil {
		Error(w, err)
		return
	}

	JSON(w, http.StatusOK, newPageResponse(page, toVideoWithOwnerResponse), "videos fetched successfully")
}

// Get handles GET /videos/{id}.
func (h *VideoHandler) Get(w http.ResponseWriter, r *http.Request) {
	videoID, err := apperr.ParseID(chi.URLParam(r, "id"), "video id")
	if err != nil {
		Error(w, err)
		return
	}

	video, err := h.svc.GetVideo(r.Context(), videoID, principalID(r))
	if err != nil {
		Error(w, err)
		return
	}

	JSON(w, http.StatusOK, toVideoWithOwnerResponse(*video), "video fetched successfully")
}

type updateVideoRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Update handles PATCH /videos/{id}. It accepts either a JSON body with
// title and description, or a multipart form that may also carry a
// replacement thumbnail file.
func (h *VideoHandler) Update(w http.ResponseWriter, r *http.Request) {
	videoID, err := apperr.ParseID(chi.URLParam(r, "id"), "video id")
	if err != nil {
		Error(w, err)
		return
	}

	input := usecase.UpdateVideoInput{}

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "multipart/form-data" {
		if err := r.ParseMultipartForm(multipartMemoryLimit); err != nil {
			Error(w, apperr.Validation("malformed multipart form"))
			return
		}
		thumbnailPath, err := h.saveUpload(r, "thumbnail")
		if err != nil {
			Error(w, err)
			return
		}
		input.Title = r.FormValue("title")
		input.Description = r.FormValue("description")
		input.ThumbnailPath = thumbnailPath
	} else {
		var req updateVideoRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			Error(w, apperr.Validation("invalid JSON body"))
			return
		}
		input.Title = req.Title
		input.Description = req.Description
	}

	video, err := h.svc.UpdateVideo(r.Context(), videoID, principalID(r), input)
	if err != nil {
		removeStaged(input.ThumbnailPath)
		Error(w, err)
		return
	}

	JSON(w, http.StatusOK, toVideoResponse(video), "video updated successfully")
}

// Delete handles DELETE /videos/{id}.
func (h *VideoHandler) Delete(w http.ResponseWriter, r *http.Request) {
	videoID, err := apperr.ParseID(chi.URLParam(r, "id"), "video id")
	if err != nil {
		Error(w, err)
		return
	}

	if err := h.svc.DeleteVideo(r.Context(), videoID, principalID(r)); err != nil {
		Error(w, err)
		return
	}

	JSON(w, http.StatusOK, emptyDoc, "video deleted successfully")
}

// TogglePublish handles POST /videos/{id}/toggle-publish.
func (h *VideoHandler) TogglePublish(w http.ResponseWriter, r *http.Request) {
	videoID, err := apperr.ParseID(chi.URLParam(r, "id"), "video id")
	if err != nil {
		Error(w, err)
		return
	}

	published, err := h.svc.TogglePublish(r.Context(), videoID, principalID(r))
	if err != nil {
		Error(w, err)
		return
	}

	JSON(w, http.StatusOK, map[string]bool{"is_published": published}, "publish status toggled")
}

// saveUpload stages a multipart file part into the temp dir and returns
// its path. A missing part yields an empty path and no error; the service
// decides whether the file was required.
func (h *VideoHandler) saveUpload(r *http.Request, field string) (string, error) {
	file, header, err := r.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return "", nil
		}
		return "", apperr.Validation("failed to read " + field + " upload")
	}
	defer file.Close()

	tmp, err := os.CreateTemp(h.tempDir, "upload-*"+filepath.Ext(header.Filename))
	if err != nil {
		return "", apperr.Internal("failed to stage upload", err)
	}
	defer tmp.Close()

	if _, err := io.Copy(tmp, file); err != nil {
		removeStaged(tmp.Name())
		return "", apperr.Internal("failed to stage upload", err)
	}

	return tmp.Name(), nil
}

// removeStaged cleans up staged files after a failed request. Paths the
// service already consumed are gone; missing files are ignored.
func removeStaged(paths ...string) {
	for _, p := range paths {
		if p != "" {
			_ = os.Remove(p)
		}
	}
}

func toVideoResponse(v *model.Video) VideoResponse {
	return VideoResponse{
		ID:              v.ID.String(),
		OwnerID:         v.OwnerID.String(),
		Title:           v.Title,
		Description:     v.Description,
		VideoURL:        v.VideoURL,
		ThumbnailURL:    v.ThumbnailURL,
		DurationSeconds: v.DurationSeconds,
		IsPublished:     v.IsPublished,
		CreatedAt:       formatTime(v.CreatedAt),
		UpdatedAt:       formatTime(v.UpdatedAt),
	}
}

func toVideoWithOwnerResponse(v model.VideoWithOwner) VideoResponse {
	resp := toVideoResponse(&v.Video)
	resp.Owner = &OwnerResponse{
		Username:  v.Owner.Username,
		AvatarURL: v.Owner.AvatarURL,
	}
	return resp
}
