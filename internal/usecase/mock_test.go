package usecase

import (
	"context"

	"github.com/google/uuid"

	"github.com/hszk-dev/vidtube/internal/domain/model"
	"github.com/hszk-dev/vidtube/internal/domain/repository"
)

// mockVideoRepository provides a configurable mock for VideoRepository.
type mockVideoRepository struct {
	createFn        func(ctx context.Context, video *model.Video) error
	getByIDFn       func(ctx context.Context, id uuid.UUID) (*model.Video, error)
	getWithOwnerFn  func(ctx context.Context, id uuid.UUID) (*model.VideoWithOwner, error)
	listPublishedFn func(ctx context.Context, filter repository.VideoFilter, page repository.PageRequest) (*repository.Page[model.VideoWithOwner], error)
	updateFn        func(ctx context.Context, video *model.Video) error
	deleteFn        func(ctx context.Context, id uuid.UUID) error
}

func (m *mockVideoRepository) Create(ctx context.Context, video *model.Video) error {
	if m.createFn != nil {
		return m.createFn(ctx, video)
	}
	return nil
}

func (m *mockVideoRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Video, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, repository.ErrVideoNotFound
}

func (m *mockVideoRepository) GetWithOwner(ctx context.Context, id uuid.UUID) (*model.VideoWithOwner, error) {
	if m.getWithOwnerFn != nil {
		return m.getWithOwnerFn(ctx, id)
	}
	return nil, repository.ErrVideoNotFound
}

func (m *mockVideoRepository) ListPublished(ctx context.Context, filter repository.VideoFilter, page repository.PageRequest) (*repository.Page[model.VideoWithOwner], error) {
	if m.listPublishedFn != nil {
		return m.listPublishedFn(ctx, filter, page)
	}
	return repository.NewPage[model.VideoWithOwner](nil, page, 0), nil
}

func (m *mockVideoRepository) Update(ctx context.Context, video *model.Video) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, video)
	}
	return nil
}

func (m *mockVideoRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

// mockCommentRepository provides a configurable mock for CommentRepository.
type mockCommentRepository struct {
	createFn      func(ctx context.Context, comment *model.Comment) error
	getByIDFn     func(ctx context.Context, id uuid.UUID) (*model.Comment, error)
	listByVideoFn func(ctx context.Context, videoID uuid.UUID, page repository.PageRequest) (*repository.Page[model.CommentWithOwner], error)
	updateFn      func(ctx context.Context, comment *model.Comment) error
	deleteFn      func(ctx context.Context, id uuid.UUID) error
}

func (m *mockCommentRepository) Create(ctx context.Context, comment *model.Comment) error {
	if m.createFn != nil {
		return m.createFn(ctx, comment)
	}
	return nil
}

func (m *mockCommentRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Comment, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, repository.ErrCommentNotFound
}

func (m *mockCommentRepository) ListByVideo(ctx context.Context, videoID uuid.UUID, page repository.PageRequest) (*repository.Page[model.CommentWithOwner], error) {
	if m.listByVideoFn != nil {
		return m.listByVideoFn(ctx, videoID, page)
	}
	return repository.NewPage[model.CommentWithOwner](nil, page, 0), nil
}

func (m *mockCommentRepository) Update(ctx context.Context, comment *model.Comment) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, comment)
	}
	return nil
}

func (m *mockCommentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

// mockTweetRepository provides a configurable mock for TweetRepository.
type mockTweetRepository struct {
	createFn      func(ctx context.Context, tweet *model.Tweet) error
	getByIDFn     func(ctx context.Context, id uuid.UUID) (*model.Tweet, error)
	listFn        func(ctx context.Context, page repository.PageRequest) (*repository.Page[model.Tweet], error)
	listByOwnerFn func(ctx context.Context, ownerID uuid.UUID, page repository.PageRequest) (*repository.Page[model.Tweet], error)
	updateFn      func(ctx context.Context, tweet *model.Tweet) error
	deleteFn      func(ctx context.Context, id uuid.UUID) error
}

func (m *mockTweetRepository) Create(ctx context.Context, tweet *model.Tweet) error {
	if m.createFn != nil {
		return m.createFn(ctx, tweet)
	}
	return nil
}

func (m *mockTweetRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Tweet, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, repository.ErrTweetNotFound
}

func (m *mockTweetRepository) List(ctx context.Context, page repository.PageRequest) (*repository.Page[model.Tweet], error) {
	if m.listFn != nil {
		return m.listFn(ctx, page)
	}
	return repository.NewPage[model.Tweet](nil, page, 0), nil
}

func (m *mockTweetRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID, page repository.PageRequest) (*repository.Page[model.Tweet], error) {
	if m.listByOwnerFn != nil {
		return m.listByOwnerFn(ctx, ownerID, page)
	}
	return repository.NewPage[model.Tweet](nil, page, 0), nil
}

func (m *mockTweetRepository) Update(ctx context.Context, tweet *model.Tweet) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, tweet)
	}
	return nil
}

func (m *mockTweetRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

// mockLikeRepository provides a configurable mock for LikeRepository.
type mockLikeRepository struct {
	createFn          func(ctx context.Context, like *model.Like) error
	findBySubjectFn   func(ctx context.Context, subject model.Subject, userID uuid.UUID) (*model.Like, error)
	deleteFn          func(ctx context.Context, id uuid.UUID) error
	countBySubjectFn  func(ctx context.Context, subject model.Subject) (int, error)
	listLikedVideosFn func(ctx context.Context, userID uuid.UUID, page repository.PageRequest) (*repository.Page[model.Video], error)
}

func (m *mockLikeRepository) Create(ctx context.Context, like *model.Like) error {
	if m.createFn != nil {
		return m.createFn(ctx, like)
	}
	return nil
}

func (m *mockLikeRepository) FindBySubject(ctx context.Context, subject model.Subject, userID uuid.UUID) (*model.Like, error) {
	if m.findBySubjectFn != nil {
		return m.findBySubjectFn(ctx, subject, userID)
	}
	return nil, repository.ErrLikeNotFound
}

func (m *mockLikeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

func (m *mockLikeRepository) CountBySubject(ctx context.Context, subject model.Subject) (int, error) {
	if m.countBySubjectFn != nil {
		return m.countBySubjectFn(ctx, subject)
	}
	return 0, nil
}

func (m *mockLikeRepository) ListLikedVideos(ctx context.Context, userID uuid.UUID, page repository.PageRequest) (*repository.Page[model.Video], error) {
	if m.listLikedVideosFn != nil {
		return m.listLikedVideosFn(ctx, userID, page)
	}
	return repository.NewPage[model.Video](nil, page, 0), nil
}

// mockPlaylistRepository provides a configurable mock for PlaylistRepository.
type mockPlaylistRepository struct {
	createFn        func(ctx context.Context, playlist *model.Playlist) error
	getByIDFn       func(ctx context.Context, id uuid.UUID) (*model.Playlist, error)
	getWithVideosFn func(ctx context.Context, id uuid.UUID) (*model.PlaylistWithVideos, error)
	listByOwnerFn   func(ctx context.Context, ownerID uuid.UUID, page repository.PageRequest) (*repository.Page[model.PlaylistWithVideos], error)
	updateFn        func(ctx context.Context, playlist *model.Playlist) error
	deleteFn        func(ctx context.Context, id uuid.UUID) error
	addVideoFn      func(ctx context.Context, playlistID, videoID uuid.UUID) error
	removeVideoFn   func(ctx context.Context, playlistID, videoID uuid.UUID) error
}

func (m *mockPlaylistRepository) Create(ctx context.Context, playlist *model.Playlist) error {
	if m.createFn != nil {
		return m.createFn(ctx, playlist)
	}
	return nil
}

func (m *mockPlaylistRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Playlist, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, repository.ErrPlaylistNotFound
}

func (m *mockPlaylistRepository) GetWithVideos(ctx context.Context, id uuid.UUID) (*model.PlaylistWithVideos, error) {
	if m.getWithVideosFn != nil {
		return m.getWithVideosFn(ctx, id)
	}
	return nil, repository.ErrPlaylistNotFound
}

func (m *mockPlaylistRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID, page repository.PageRequest) (*repository.Page[model.PlaylistWithVideos], error) {
	if m.listByOwnerFn != nil {
		return m.listByOwnerFn(ctx, ownerID, page)
	}
	return repository.NewPage[model.PlaylistWithVideos](nil, page, 0), nil
}

func (m *mockPlaylistRepository) Update(ctx context.Context, playlist *model.Playlist) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, playlist)
	}
	return nil
}

func (m *mockPlaylistRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

func (m *mockPlaylistRepository) AddVideo(ctx context.Context, playlistID, videoID uuid.UUID) error {
	if m.addVideoFn != nil {
		return m.addVideoFn(ctx, playlistID, videoID)
	}
	return nil
}

func (m *mockPlaylistRepository) RemoveVideo(ctx context.Context, playlistID, videoID uuid.UUID) error {
	if m.removeVideoFn != nil {
		return m.removeVideoFn(ctx, playlistID, videoID)
	}
	return nil
}

// mockBlobStorage provides a configurable mock for BlobStorage.
type mockBlobStorage struct {
	uploadFn func(ctx context.Context, localPath string, kind repository.BlobKind) (*repository.UploadResult, error)
	deleteFn func(ctx context.Context, blobURL string, kind repository.BlobKind) error
}

func (m *mockBlobStorage) Upload(ctx context.Context, localPath string, kind repository.BlobKind) (*repository.UploadResult, error) {
	if m.uploadFn != nil {
		return m.uploadFn(ctx, localPath, kind)
	}
	return &repository.UploadResult{URL: "http://blob/" + string(kind) + "s/test"}, nil
}

func (m *mockBlobStorage) Delete(ctx context.Context, blobURL string, kind repository.BlobKind) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, blobURL, kind)
	}
	return nil
}

// mockEventPublisher provides a configurable mock for EventPublisher.
type mockEventPublisher struct {
	publishFn func(ctx context.Context, event repository.VideoEvent) error
	events    []repository.VideoEvent
}

func (m *mockEventPublisher) PublishVideoEvent(ctx context.Context, event repository.VideoEvent) error {
	m.events = append(m.events, event)
	if m.publishFn != nil {
		return m.publishFn(ctx, event)
	}
	return nil
}

func (m *mockEventPublisher) Close() error {
	return nil
}

// mockVideoCache provides a configurable mock for cache.VideoCache.
type mockVideoCache struct {
	getFn    func(ctx context.Context, videoID uuid.UUID) (*model.VideoWithOwner, error)
	setFn    func(ctx context.Context, video *model.VideoWithOwner) error
	deleteFn func(ctx context.Context, videoID uuid.UUID) error
}

func (m *mockVideoCache) Get(ctx context.Context, videoID uuid.UUID) (*model.VideoWithOwner, error) {
	if m.getFn != nil {
		return m.getFn(ctx, videoID)
	}
	return nil, nil
}

func (m *mockVideoCache) Set(ctx context.Context, video *model.VideoWithOwner) error {
	if m.setFn != nil {
		return m.setFn(ctx, video)
	}
	return nil
}

func (m *mockVideoCache) Delete(ctx context.Context, videoID uuid.UUID) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, videoID)
	}
	return nil
}
