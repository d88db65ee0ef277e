package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/hszk-dev/vidtube/internal/domain/apperr"
	"github.com/hszk-dev/vidtube/internal/domain/model"
	"github.com/hszk-dev/vidtube/internal/domain/repository"
	"github.com/hszk-dev/vidtube/internal/usecase"
)

func publishedVideo() *model.Video {
	return &model.Video{
		ID:              uuid.New(),
		OwnerID:         uuid.New(),
		Title:           "Test Video",
		Description:     "A test video",
		VideoURL:        "http://blob/videos/test.mp4",
		ThumbnailURL:    "http://blob/thumbnails/test.jpg",
		DurationSeconds: 42.5,
		IsPublished:     true,
		CreatedAt:       time.Now().UTC(),
		UpdatedAt:       time.Now().UTC(),
	}
}

// multipartBody builds a multipart form with the given fields and one
// dummy file per entry in files.
func multipartBody(t *testing.T, fields map[string]string, files map[string]string) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for field, value := range fields {
		if err := mw.WriteField(field, value); err != nil {
			t.Fatalf("failed to write field %s: %v", field, err)
		}
	}
	for field, filename := range files {
		fw, err := mw.CreateFormFile(field, filename)
		if err != nil {
			t.Fatalf("failed to create file part %s: %v", field, err)
		}
		if _, err := fw.Write([]byte("dummy content")); err != nil {
			t.Fatalf("failed to write file part %s: %v", field, err)
		}
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("failed to close multipart writer: %v", err)
	}
	return &buf, mw.FormDataContentType()
}

func TestVideoHandler_Create(t *testing.T) {
	t.Run("successful publish", func(t *testing.T) {
		var gotInput usecase.PublishVideoInput
		mock := &mockVideoService{
			publishVideoFn: func(ctx context.Context, input usecase.PublishVideoInput) (*model.Video, error) {
				gotInput = input
				v := publishedVideo()
				v.Title = input.Title
				return v, nil
			},
		}
		h := NewVideoHandler(mock, t.TempDir())

		body, contentType := multipartBody(t,
			map[string]string{"title": "My Upload", "description": "first one"},
			map[string]string{"videoFile": "clip.mp4", "thumbnail": "cover.jpg"},
		)
		req := httptest.NewRequest(http.MethodPost, "/v1/videos", body)
		req.Header.Set("Content-Type", contentType)
		rec := httptest.NewRecorder()

		h.Create(rec, req)

		if rec.Code != http.StatusCreated {
			t.Fatalf("status = %d, want %d, body %s", rec.Code, http.StatusCreated, rec.Body.String())
		}

		env := decodeEnvelope(t, rec.Body.Bytes())
		if env.Message != "video published successfully" {
			t.Errorf("message = %q, want %q", env.Message, "video published successfully")
		}

		var resp VideoResponse
		if err := json.Unmarshal(env.Data, &resp); err != nil {
			t.Fatalf("failed to unmarshal data: %v", err)
		}
		if resp.Title != "My Upload" {
			t.Errorf("title = %q, want %q", resp.Title, "My Upload")
		}

		if gotInput.Title != "My Upload" {
			t.Errorf("input title = %q, want %q", gotInput.Title, "My Upload")
		}
		if gotInput.VideoPath == "" || gotInput.ThumbnailPath == "" {
			t.Error("expected staged file paths to be passed to the service")
		}
		if !strings.Contains(gotInput.VideoPath, "upload-") {
			t.Errorf("video path %q is not a staged upload", gotInput.VideoPath)
		}
	})

	t.Run("not multipart", func(t *testing.T) {
		h := NewVideoHandler(&mockVideoService{}, t.TempDir())

		req := httptest.NewRequest(http.MethodPost, "/v1/videos", strings.NewReader(`{"title":"x"}`))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()

		h.Create(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
		}
	})

	t.Run("service rejects input", func(t *testing.T) {
		mock := &mockVideoService{
			publishVideoFn: func(ctx context.Context, input usecase.PublishVideoInput) (*model.Video, error) {
				return nil, apperr.Validation("video file is required")
			},
		}
		h := NewVideoHandler(mock, t.TempDir())

		body, contentType := multipartBody(t,
			map[string]string{"title": "My Upload"},
			map[string]string{"thumbnail": "cover.jpg"},
		)
		req := httptest.NewRequest(http.MethodPost, "/v1/videos", body)
		req.Header.Set("Content-Type", contentType)
		rec := httptest.NewRecorder()

		h.Create(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
		}

		env := decodeEnvelope(t, rec.Body.Bytes())
		if env.Message != "video file is required" {
			t.Errorf("message = %q, want %q", env.Message, "video file is required")
		}
	})

	t.Run("staged files removed on failure", func(t *testing.T) {
		tempDir := t.TempDir()
		mock := &mockVideoService{
			publishVideoFn: func(ctx context.Context, input usecase.PublishVideoInput) (*model.Video, error) {
				return nil, apperr.Internal("upload failed", nil)
			},
		}
		h := NewVideoHandler(mock, tempDir)

		body, contentType := multipartBody(t,
			map[string]string{"title": "My Upload"},
			map[string]string{"videoFile": "clip.mp4", "thumbnail": "cover.jpg"},
		)
		req := httptest.NewRequest(http.MethodPost, "/v1/videos", body)
		req.Header.Set("Content-Type", contentType)
		rec := httptest.NewRecorder()

		h.Create(rec, req)

		if rec.Code != http.StatusInternalServerError {
			t.Fatalf("status = %d, want %d", rec.Code, http.StatusInternalServerError)
		}

		entries, err := os.ReadDir(tempDir)
		if err != nil {
			t.Fatalf("failed to read temp dir: %v", err)
		}
		if len(entries) != 0 {
			t.Errorf("expected staged files to be removed, found %d entries", len(entries))
		}
	})
}

func TestVideoHandler_Get(t *testing.T) {
	videoID := uuid.New()

	tests := []struct {
		name           string
		videoID        string
		setupMock      func(m *mockVideoService)
		wantStatusCode int
	}{
		{
			name:    "successful get",
			videoID: videoID.String(),
			setupMock: func(m *mockVideoService) {
				m.getVideoFn = func(ctx context.Context, id, principalID uuid.UUID) (*model.VideoWithOwner, error) {
					if id != videoID {
						t.Errorf("video id = %v, want %v", id, videoID)
					}
					return &model.VideoWithOwner{
						Video: *publishedVideo(),
						Owner: model.Owner{Username: "alice", AvatarURL: "http://blob/avatars/alice.png"},
					}, nil
				}
			},
			wantStatusCode: http.StatusOK,
		},
		{
			name:           "invalid video ID",
			videoID:        "not-a-uuid",
			setupMock:      func(m *mockVideoService) {},
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name:    "video not found",
			videoID: uuid.New().String(),
			setupMock: func(m *mockVideoService) {
				m.getVideoFn = func(ctx context.Context, id, principalID uuid.UUID) (*model.VideoWithOwner, error) {
					return nil, apperr.NotFound("video")
				}
			},
			wantStatusCode: http.StatusNotFound,
		},
		{
			name:    "unpublished video hidden from others",
			videoID: uuid.New().String(),
			setupMock: func(m *mockVideoService) {
				m.getVideoFn = func(ctx context.Context, id, principalID uuid.UUID) (*model.VideoWithOwner, error) {
					return nil, apperr.Authorization("this video is not published")
				}
			},
			wantStatusCode: http.StatusForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := &mockVideoService{}
			tt.setupMock(mock)
			h := NewVideoHandler(mock, t.TempDir())

			r := chi.NewRouter()
			r.Get("/v1/videos/{id}", h.Get)

			req := httptest.NewRequest(http.MethodGet, "/v1/videos/"+tt.videoID, nil)
			rec := httptest.NewRecorder()

			r.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatusCode {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatusCode)
			}

			if tt.wantStatusCode == http.StatusOK {
				env := decodeEnvelope(t, rec.Body.Bytes())
				var resp VideoResponse
				if err := json.Unmarshal(env.Data, &resp); err != nil {
					t.Fatalf("failed to unmarshal data: %v", err)
				}
				if resp.Owner == nil || resp.Owner.Username != "alice" {
					t.Errorf("owner = %+v, want username alice", resp.Owner)
				}
			}
		})
	}
}

func TestVideoHandler_List(t *testing.T) {
	var gotInput usecase.ListVideosInput
	mock := &mockVideoService{
		listVideosFn: func(ctx context.Context, input usecase.ListVideosInput) (*repository.Page[model.VideoWithOwner], error) {
			gotInput = input
			docs := []model.VideoWithOwner{
				{Video: *publishedVideo(), Owner: model.Owner{Username: "alice"}},
				{Video: *publishedVideo(), Owner: model.Owner{Username: "bob"}},
			}
			return repository.NewPage(docs, repository.PageRequest{Page: 2, Limit: 10}, 25), nil
		},
	}
	h := NewVideoHandler(mock, t.TempDir())

	req := httptest.NewRequest(http.MethodGet, "/v1/videos?query=golang&sort_by=title&sort_dir=asc&page=2&limit=10", nil)
	rec := httptest.NewRecorder()

	h.List(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	if gotInput.Query != "golang" {
		t.Errorf("query = %q, want %q", gotInput.Query, "golang")
	}
	if gotInput.SortBy != "title" {
		t.Errorf("sort_by = %q, want %q", gotInput.SortBy, "title")
	}
	if gotInput.SortDesc {
		t.Error("SortDesc = true, want false for sort_dir=asc")
	}
	if gotInput.Page.Page != 2 || gotInput.Page.Limit != 10 {
		t.Errorf("page request = %+v, want page 2 limit 10", gotInput.Page)
	}

	env := decodeEnvelope(t, rec.Body.Bytes())
	var resp PageResponse[VideoResponse]
	if err := json.Unmarshal(env.Data, &resp); err != nil {
		t.Fatalf("failed to unmarshal data: %v", err)
	}
	if len(resp.Docs) != 2 {
		t.Errorf("docs = %d, want 2", len(resp.Docs))
	}
	if resp.TotalDocs != 25 {
		t.Errorf("total_docs = %d, want 25", resp.TotalDocs)
	}
	if resp.TotalPages != 3 {
		t.Errorf("total_pages = %d, want 3", resp.TotalPages)
	}
}

func TestVideoHandler_List_DefaultSortIsDescending(t *testing.T) {
	var gotInput usecase.ListVideosInput
	mock := &mockVideoService{
		listVideosFn: func(ctx context.Context, input usecase.ListVideosInput) (*repository.Page[model.VideoWithOwner], error) {
			gotInput = input
			return repository.NewPage([]model.VideoWithOwner{}, repository.PageRequest{Page: 1, Limit: 10}, 0), nil
		},
	}
	h := NewVideoHandler(mock, t.TempDir())

	req := httptest.NewRequest(http.MethodGet, "/v1/videos", nil)
	rec := httptest.NewRecorder()

	h.List(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if !gotInput.SortDesc {
		t.Error("SortDesc = false, want true when sort_dir is absent")
	}
}

func TestVideoHandler_Update(t *testing.T) {
	videoID := uuid.New()

	t.Run("JSON body", func(t *testing.T) {
		var gotInput usecase.UpdateVideoInput
		mock := &mockVideoService{
			updateVideoFn: func(ctx context.Context, id, principalID uuid.UUID, input usecase.UpdateVideoInput) (*model.Video, error) {
				gotInput = input
				v := publishedVideo()
				v.Title = input.Title
				return v, nil
			},
		}
		h := NewVideoHandler(mock, t.TempDir())

		r := chi.NewRouter()
		r.Patch("/v1/videos/{id}", h.Update)

		body := strings.NewReader(`{"title":"Renamed","description":"new words"}`)
		req := httptest.NewRequest(http.MethodPatch, "/v1/videos/"+videoID.String(), body)
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()

		r.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want %d, body %s", rec.Code, http.StatusOK, rec.Body.String())
		}
		if gotInput.Title != "Renamed" || gotInput.Description != "new words" {
			t.Errorf("input = %+v, want title Renamed description new words", gotInput)
		}
		if gotInput.ThumbnailPath != "" {
			t.Errorf("thumbnail path = %q, want empty for JSON update", gotInput.ThumbnailPath)
		}
	})

	t.Run("multipart with thumbnail", func(t *testing.T) {
		var gotInput usecase.UpdateVideoInput
		mock := &mockVideoService{
			updateVideoFn: func(ctx context.Context, id, principalID uuid.UUID, input usecase.UpdateVideoInput) (*model.Video, error) {
				gotInput = input
				return publishedVideo(), nil
			},
		}
		h := NewVideoHandler(mock, t.TempDir())

		r := chi.NewRouter()
		r.Patch("/v1/videos/{id}", h.Update)

		body, contentType := multipartBody(t,
			map[string]string{"title": "Renamed"},
			map[string]string{"thumbnail": "new-cover.jpg"},
		)
		req := httptest.NewRequest(http.MethodPatch, "/v1/videos/"+videoID.String(), body)
		req.Header.Set("Content-Type", contentType)
		rec := httptest.NewRecorder()

		r.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want %d, body %s", rec.Code, http.StatusOK, rec.Body.String())
		}
		if gotInput.ThumbnailPath == "" {
			t.Error("expected staged thumbnail path")
		}
	})

	t.Run("invalid JSON body", func(t *testing.T) {
		h := NewVideoHandler(&mockVideoService{}, t.TempDir())

		r := chi.NewRouter()
		r.Patch("/v1/videos/{id}", h.Update)

		req := httptest.NewRequest(http.MethodPatch, "/v1/videos/"+videoID.String(), strings.NewReader("not json"))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()

		r.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
		}
	})

	t.Run("non-owner forbidden", func(t *testing.T) {
		mock := &mockVideoService{
			updateVideoFn: func(ctx context.Context, id, principalID uuid.UUID, input usecase.UpdateVideoInput) (*model.Video, error) {
				return nil, apperr.Authorization("you do not own this video")
			},
		}
		h := NewVideoHandler(mock, t.TempDir())

		r := chi.NewRouter()
		r.Patch("/v1/videos/{id}", h.Update)

		req := httptest.NewRequest(http.MethodPatch, "/v1/videos/"+videoID.String(), strings.NewReader(`{"title":"x"}`))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()

		r.ServeHTTP(rec, req)

		if rec.Code != http.StatusForbidden {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusForbidden)
		}
	})
}

func TestVideoHandler_Delete(t *testing.T) {
	tests := []struct {
		name           string
		setupMock      func(m *mockVideoService)
		wantStatusCode int
	}{
		{
			name:           "successful delete",
			setupMock:      func(m *mockVideoService) {},
			wantStatusCode: http.StatusOK,
		},
		{
			name: "video not found",
			setupMock: func(m *mockVideoService) {
				m.deleteVideoFn = func(ctx context.Context, videoID, principalID uuid.UUID) error {
					return apperr.NotFound("video")
				}
			},
			wantStatusCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := &mockVideoService{}
			tt.setupMock(mock)
			h := NewVideoHandler(mock, t.TempDir())

			r := chi.NewRouter()
			r.Delete("/v1/videos/{id}", h.Delete)

			req := httptest.NewRequest(http.MethodDelete, "/v1/videos/"+uuid.New().String(), nil)
			rec := httptest.NewRecorder()

			r.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatusCode {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatusCode)
			}
		})
	}
}

func TestVideoHandler_TogglePublish(t *testing.T) {
	mock := &mockVideoService{
		togglePublishFn: func(ctx context.Context, videoID, principalID uuid.UUID) (bool, error) {
			return true, nil
		},
	}
	h := NewVideoHandler(mock, t.TempDir())

	r := chi.NewRouter()
	r.Post("/v1/videos/{id}/toggle-publish", h.TogglePublish)

	req := httptest.NewRequest(http.MethodPost, "/v1/videos/"+uuid.New().String()+"/toggle-publish", nil)
	rec := httptest.NewRecorder()

	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	env := decodeEnvelope(t, rec.Body.Bytes())
	var resp map[string]bool
	if err := json.Unmarshal(env.Data, &resp); err != nil {
		t.Fatalf("failed to unmarshal data: %v", err)
	}
	if !resp["is_published"] {
		t.Error("is_published = false, want true")
	}
}
