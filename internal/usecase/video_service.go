package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/hszk-dev/vidtube/internal/domain/apperr"
	"github.com/hszk-dev/vidtube/internal/domain/model"
	"github.com/hszk-dev/vidtube/internal/domain/repository"
)

const (
	defaultVideoPageLimit = 10
	maxPageLimit          = 100
)

// PublishVideoInput contains the input parameters for publishing a video.
// The file paths point at temporary local files already written by the
// HTTP layer; the service owns uploading them to blob storage.
type PublishVideoInput struct {
	OwnerID       uuid.UUID
	Title         string
	Description   string
	VideoPath     string
	ThumbnailPath string
}

// UpdateVideoInput contains the optional fields of a video update. Empty
// fields are left unchanged; ThumbnailPath, when set, replaces the stored
// thumbnail.
type UpdateVideoInput struct {
	Title         string
	Description   string
	ThumbnailPath string
}

// ListVideosInput contains the filter and pagination parameters for the
// published video listing.
type ListVideosInput struct {
	Query    string
	SortBy   string
	SortDesc bool
	Page     repository.PageRequest
}

// VideoService defines the interface for video business logic operations.
type VideoService interface {
	// PublishVideo uploads the video file and thumbnail to blob storage and
	// creates the video record, published immediately.
	PublishVideo(ctx context.Context, input PublishVideoInput) (*model.Video, error)

	// GetVideo retrieves a video joined with its owner. Unpublished videos
	// are visible only to their owner; principalID is uuid.Nil for
	// anonymous callers.
	GetVideo(ctx context.Context, videoID, principalID uuid.UUID) (*model.VideoWithOwner, error)

	// ListVideos returns a page of published videos matching the filter.
	ListVideos(ctx context.Context, input ListVideosInput) (*repository.Page[model.VideoWithOwner], error)

	// UpdateVideo applies a partial update to a video owned by the principal.
	UpdateVideo(ctx context.Context, videoID, principalID uuid.UUID, input UpdateVideoInput) (*model.Video, error)

	// DeleteVideo removes a video owned by the principal along with its
	// stored blobs.
	DeleteVideo(ctx context.Context, videoID, principalID uuid.UUID) error

	// TogglePublish flips the publish flag and returns the new state.
	TogglePublish(ctx context.Context, videoID, principalID uuid.UUID) (bool, error)
}

type videoService struct {
	repo   repository.VideoRepository
	blobs  repository.BlobStorage
	events repository.EventPublisher
}

// NewVideoService creates a new VideoService instance.
func NewVideoService(
	repo repository.VideoRepository,
	blobs repository.BlobStorage,
	events repository.EventPublisher,
) VideoService {
	return &videoService{
		repo:   repo,
		blobs:  blobs,
		events: events,
	}
}

// PublishVideo uploads both blobs, then persists the record. The video
// file upload also yields the probed duration.
func (s *videoService) PublishVideo(ctx context.Context, input PublishVideoInput) (*model.Video, error) {
	if err := apperr.RequireText(input.Title, "title"); err != nil {
		return nil, err
	}
	if err := apperr.RequireText(input.Description, "description"); err != nil {
		return nil, err
	}
	if input.VideoPath == "" {
		return nil, apperr.Validation("video file is required")
	}
	if input.ThumbnailPath == "" {
		return nil, apperr.Validation("thumbnail file is required")
	}

	videoUpload, err := s.blobs.Upload(ctx, input.VideoPath, repository.BlobVideo)
	if err != nil {
		return nil, apperr.Internal("failed to upload video file", err)
	}

	thumbUpload, err := s.blobs.Upload(ctx, input.ThumbnailPath, repository.BlobImage)
	if err != nil {
		return nil, apperr.Internal("failed to upload thumbnail", err)
	}

	video, err := model.NewVideo(
		input.OwnerID,
		input.Title,
		input.Description,
		videoUpload.URL,
		thumbUpload.URL,
		videoUpload.DurationSeconds,
	)
	if err != nil {
		return nil, validationErr(err)
	}

	if err := s.repo.Create(ctx, video); err != nil {
		return nil, apperr.Internal("failed to create video", err)
	}

	s.publishEvent(ctx, repository.EventVideoPublished, video)

	return video, nil
}

// GetVideo retrieves a video with its owner, enforcing the visibility rule
// for unpublished videos.
func (s *videoService) GetVideo(ctx context.Context, videoID, principalID uuid.UUID) (*model.VideoWithOwner, error) {
	video, err := s.repo.GetWithOwner(ctx, videoID)
	if err != nil {
		return nil, lookupErr(err, "video")
	}

	if !video.IsPublished && video.OwnerID != principalID {
		return nil, apperr.Authorization("this video is not published")
	}

	return video, nil
}

// ListVideos returns a page of published videos. An empty page past the end
// of the result set is a valid response, not an error.
func (s *videoService) ListVideos(ctx context.Context, input ListVideosInput) (*repository.Page[model.VideoWithOwner], error) {
	page := input.Page.Normalize(defaultVideoPageLimit, maxPageLimit)

	filter := repository.VideoFilter{
		Query:    input.Query,
		SortBy:   input.SortBy,
		SortDesc: input.SortDesc,
	}

	result, err := s.repo.ListPublished(ctx, filter, page)
	if err != nil {
		return nil, apperr.Internal("failed to list videos", err)
	}

	return result, nil
}

// UpdateVideo applies the partial update. When a new thumbnail is supplied
// it is uploaded first and the old blob removed after the record is saved.
func (s *videoService) UpdateVideo(ctx context.Context, videoID, principalID uuid.UUID, input UpdateVideoInput) (*model.Video, error) {
	video, err := s.repo.GetByID(ctx, videoID)
	if err != nil {
		return nil, lookupErr(err, "video")
	}

	if err := requireOwner(video.OwnerID, principalID); err != nil {
		return nil, err
	}

	oldThumbnailURL := ""
	thumbnailURL := ""
	if input.ThumbnailPath != "" {
		upload, err := s.blobs.Upload(ctx, input.ThumbnailPath, repository.BlobImage)
		if err != nil {
			return nil, apperr.Internal("failed to upload thumbnail", err)
		}
		oldThumbnailURL = video.ThumbnailURL
		thumbnailURL = upload.URL
	}

	if err := video.UpdateDetails(input.Title, input.Description, thumbnailURL); err != nil {
		return nil, validationErr(err)
	}

	if err := s.repo.Update(ctx, video); err != nil {
		return nil, lookupErr(err, "video")
	}

	if oldThumbnailURL != "" {
		if err := s.blobs.Delete(ctx, oldThumbnailURL, repository.BlobImage); err != nil {
			slog.Warn("failed to delete replaced thumbnail",
				"video_id", videoID,
				"url", oldThumbnailURL,
				"error", err,
			)
		}
	}

	return video, nil
}

// DeleteVideo removes the record, then its blobs: one delete for the video
// file and one for the thumbnail. Blob deletion failures are logged, not
// surfaced; the record is already gone.
func (s *videoService) DeleteVideo(ctx context.Context, videoID, principalID uuid.UUID) error {
	video, err := s.repo.GetByID(ctx, videoID)
	if err != nil {
		return lookupErr(err, "video")
	}

	if err := requireOwner(video.OwnerID, principalID); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, videoID); err != nil {
		return lookupErr(err, "video")
	}

	if err := s.blobs.Delete(ctx, video.VideoURL, repository.BlobVideo); err != nil {
		slog.Warn("failed to delete video blob",
			"video_id", videoID,
			"url", video.VideoURL,
			"error", err,
		)
	}
	if err := s.blobs.Delete(ctx, video.ThumbnailURL, repository.BlobImage); err != nil {
		slog.Warn("failed to delete thumbnail blob",
			"video_id", videoID,
			"url", video.ThumbnailURL,
			"error", err,
		)
	}

	s.publishEvent(ctx, repository.EventVideoDeleted, video)

	return nil
}

// TogglePublish flips the publish flag for a video owned by the principal.
func (s *videoService) TogglePublish(ctx context.Context, videoID, principalID uuid.UUID) (bool, error) {
	video, err := s.repo.GetByID(ctx, videoID)
	if err != nil {
		return false, lookupErr(err, "video")
	}

	if err := requireOwner(video.OwnerID, principalID); err != nil {
		return false, err
	}

	published := video.TogglePublish()

	if err := s.repo.Update(ctx, video); err != nil {
		return false, lookupErr(err, "video")
	}

	if published {
		s.publishEvent(ctx, repository.EventVideoPublished, video)
	}

	return published, nil
}

// publishEvent emits a lifecycle event. Delivery is best effort; the state
// change has already been committed.
func (s *videoService) publishEvent(ctx context.Context, eventType string, video *model.Video) {
	event := repository.VideoEvent{
		Type:       eventType,
		VideoID:    video.ID,
		OwnerID:    video.OwnerID,
		OccurredAt: time.Now().UTC(),
	}

	if err := s.events.PublishVideoEvent(ctx, event); err != nil {
		slog.Warn("failed to publish video event",
			"event_type", eventType,
			"video_id", video.ID,
			"error", err,
		)
	}
}
