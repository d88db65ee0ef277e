package handler

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/google/uuid"

	"github.com/hszk-dev/vidtube/internal/domain/model"
	"github.com/hszk-dev/vidtube/internal/domain/repository"
	"github.com/hszk-dev/vidtube/internal/usecase"
)

// Mock VideoService

type mockVideoService struct {
	publishVideoFn  func(ctx context.Context, input usecase.PublishVideoInput) (*model.Video, error)
	getVideoFn      func(ctx context.Context, videoID, principalID uuid.UUID) (*model.VideoWithOwner, error)
	listVideosFn    func(ctx context.Context, input usecase.ListVideosInput) (*repository.Page[model.VideoWithOwner], error)
	updateVideoFn   func(ctx context.Context, videoID, principalID uuid.UUID, input usecase.UpdateVideoInput) (*model.Video, error)
	deleteVideoFn   func(ctx context.Context, videoID, principalID uuid.UUID) error
	togglePublishFn func(ctx context.Context, videoID, principalID uuid.UUID) (bool, error)
}

func (m *mockVideoService) PublishVideo(ctx context.Context, input usecase.PublishVideoInput) (*model.Video, error) {
	if m.publishVideoFn != nil {
		return m.publishVideoFn(ctx, input)
	}
	return &model.Video{}, nil
}

func (m *mockVideoService) GetVideo(ctx context.Context, videoID, principalID uuid.UUID) (*model.VideoWithOwner, error) {
	if m.getVideoFn != nil {
		return m.getVideoFn(ctx, videoID, principalID)
	}
	return &model.VideoWithOwner{}, nil
}

func (m *mockVideoService) ListVideos(ctx context.Context, input usecase.ListVideosInput) (*repository.Page[model.VideoWithOwner], error) {
	if m.listVideosFn != nil {
		return m.listVideosFn(ctx, input)
	}
	return repository.NewPage([]model.VideoWithOwner{}, repository.PageRequest{Page: 1, Limit: 10}, 0), nil
}

func (m *mockVideoService) UpdateVideo(ctx context.Context, videoID, principalID uuid.UUID, input usecase.UpdateVideoInput) (*model.Video, error) {
	if m.updateVideoFn != nil {
		return m.updateVideoFn(ctx, videoID, principalID, input)
	}
	return &model.Video{}, nil
}

func (m *mockVideoService) DeleteVideo(ctx context.Context, videoID, principalID uuid.UUID) error {
	if m.deleteVideoFn != nil {
		return m.deleteVideoFn(ctx, videoID, principalID)
	}
	return nil
}

func (m *mockVideoService) TogglePublish(ctx context.Context, videoID, principalID uuid.UUID) (bool, error) {
	if m.togglePublishFn != nil {
		return m.togglePublishFn(ctx, videoID, principalID)
	}
	return false, nil
}

// Mock CommentService

type mockCommentService struct {
	addCommentFn    func(ctx context.Context, videoID, principalID uuid.UUID, content string) (*model.Comment, error)
	listCommentsFn  func(ctx context.Context, videoID uuid.UUID, page repository.PageRequest) (*repository.Page[model.CommentWithOwner], error)
	updateCommentFn func(ctx context.Context, commentID, principalID uuid.UUID, content string) (*model.Comment, error)
	deleteCommentFn func(ctx context.Context, commentID, principalID uuid.UUID) error
}

func (m *mockCommentService) AddComment(ctx context.Context, videoID, principalID uuid.UUID, content string) (*model.Comment, error) {
	if m.addCommentFn != nil {
		return m.addCommentFn(ctx, videoID, principalID, content)
	}
	return &model.Comment{}, nil
}

func (m *mockCommentService) ListComments(ctx context.Context, videoID uuid.UUID, page repository.PageRequest) (*repository.Page[model.CommentWithOwner], error) {
	if m.listCommentsFn != nil {
		return m.listCommentsFn(ctx, videoID, page)
	}
	return repository.NewPage([]model.CommentWithOwner{}, repository.PageRequest{Page: 1, Limit: 20}, 0), nil
}

func (m *mockCommentService) UpdateComment(ctx context.Context, commentID, principalID uuid.UUID, content string) (*model.Comment, error) {
	if m.updateCommentFn != nil {
		return m.updateCommentFn(ctx, commentID, principalID, content)
	}
	return &model.Comment{}, nil
}

func (m *mockCommentService) DeleteComment(ctx context.Context, commentID, principalID uuid.UUID) error {
	if m.deleteCommentFn != nil {
		return m.deleteCommentFn(ctx, commentID, principalID)
	}
	return nil
}

// Mock TweetService

type mockTweetService struct {
	addTweetFn       func(ctx context.Context, principalID uuid.UUID, content string) (*model.Tweet, error)
	listTweetsFn     func(ctx context.Context, page repository.PageRequest) (*repository.Page[model.Tweet], error)
	listUserTweetsFn func(ctx context.Context, ownerID uuid.UUID, page repository.PageRequest) (*repository.Page[model.Tweet], error)
	updateTweetFn    func(ctx context.Context, tweetID, principalID uuid.UUID, content string) (*model.Tweet, error)
	deleteTweetFn    func(ctx context.Context, tweetID, principalID uuid.UUID) error
}

func (m *mockTweetService) AddTweet(ctx context.Context, principalID uuid.UUID, content string) (*model.Tweet, error) {
	if m.addTweetFn != nil {
		return m.addTweetFn(ctx, principalID, content)
	}
	return &model.Tweet{}, nil
}

func (m *mockTweetService) ListTweets(ctx context.Context, page repository.PageRequest) (*repository.Page[model.Tweet], error) {
	if m.listTweetsFn != nil {
		return m.listTweetsFn(ctx, page)
	}
	return repository.NewPage([]model.Tweet{}, repository.PageRequest{Page: 1, Limit: 20}, 0), nil
}

func (m *mockTweetService) ListUserTweets(ctx context.Context, ownerID uuid.UUID, page repository.PageRequest) (*repository.Page[model.Tweet], error) {
	if m.listUserTweetsFn != nil {
		return m.listUserTweetsFn(ctx, ownerID, page)
	}
	return repository.NewPage([]model.Tweet{}, repository.PageRequest{Page: 1, Limit: 20}, 0), nil
}

func (m *mockTweetService) UpdateTweet(ctx context.Context, tweetID, principalID uuid.UUID, content string) (*model.Tweet, error) {
	if m.updateTweetFn != nil {
		return m.updateTweetFn(ctx, tweetID, principalID, content)
	}
	return &model.Tweet{}, nil
}

func (m *mockTweetService) DeleteTweet(ctx context.Context, tweetID, principalID uuid.UUID) error {
	if m.deleteTweetFn != nil {
		return m.deleteTweetFn(ctx, tweetID, principalID)
	}
	return nil
}

// Mock LikeService

type mockLikeService struct {
	toggleFn          func(ctx context.Context, subject model.Subject, principalID uuid.UUID) (bool, error)
	countVideoLikesFn func(ctx context.Context, videoID uuid.UUID) (int, error)
	listLikedVideosFn func(ctx context.Context, principalID uuid.UUID, page repository.PageRequest) (*repository.Page[model.Video], error)
}

func (m *mockLikeService) Toggle(ctx context.Context, subject model.Subject, principalID uuid.UUID) (bool, error) {
	if m.toggleFn != nil {
		return m.toggleFn(ctx, subject, principalID)
	}
	return false, nil
}

func (m *mockLikeService) CountVideoLikes(ctx context.Context, videoID uuid.UUID) (int, error) {
	if m.countVideoLikesFn != nil {
		return m.countVideoLikesFn(ctx, videoID)
	}
	return 0, nil
}

func (m *mockLikeService) ListLikedVideos(ctx context.Context, principalID uuid.UUID, page repository.PageRequest) (*repository.Page[model.Video], error) {
	if m.listLikedVideosFn != nil {
		return m.listLikedVideosFn(ctx, principalID, page)
	}
	return repository.NewPage([]model.Video{}, repository.PageRequest{Page: 1, Limit: 10}, 0), nil
}

// Mock PlaylistService

type mockPlaylistService struct {
	createPlaylistFn    func(ctx context.Context, principalID uuid.UUID, name, description string) (*model.Playlist, error)
	getPlaylistFn       func(ctx context.Context, playlistID uuid.UUID) (*model.PlaylistWithVideos, error)
	listUserPlaylistsFn func(ctx context.Context, ownerID uuid.UUID, page repository.PageRequest) (*repository.Page[model.PlaylistWithVideos], error)
	updatePlaylistFn    func(ctx context.Context, playlistID, principalID uuid.UUID, name, description string) (*model.Playlist, error)
	deletePlaylistFn    func(ctx context.Context, playlistID, principalID uuid.UUID) error
	addVideoFn          func(ctx context.Context, playlistID, videoID, principalID uuid.UUID) (bool, error)
	removeVideoFn       func(ctx context.Context, playlistID, videoID, principalID uuid.UUID) error
}

func (m *mockPlaylistService) CreatePlaylist(ctx context.Context, principalID uuid.UUID, name, description string) (*model.Playlist, error) {
	if m.createPlaylistFn != nil {
		return m.createPlaylistFn(ctx, principalID, name, description)
	}
	return &model.Playlist{}, nil
}

func (m *mockPlaylistService) GetPlaylist(ctx context.Context, playlistID uuid.UUID) (*model.PlaylistWithVideos, error) {
	if m.getPlaylistFn != nil {
		return m.getPlaylistFn(ctx, playlistID)
	}
	return &model.PlaylistWithVideos{}, nil
}

func (m *mockPlaylistService) ListUserPlaylists(ctx context.Context, ownerID uuid.UUID, page repository.PageRequest) (*repository.Page[model.PlaylistWithVideos], error) {
	if m.listUserPlaylistsFn != nil {
		return m.listUserPlaylistsFn(ctx, ownerID, page)
	}
	return repository.NewPage([]model.PlaylistWithVideos{}, repository.PageRequest{Page: 1, Limit: 10}, 0), nil
}

func (m *mockPlaylistService) UpdatePlaylist(ctx context.Context, playlistID, principalID uuid.UUID, name, description string) (*model.Playlist, error) {
	if m.updatePlaylistFn != nil {
		return m.updatePlaylistFn(ctx, playlistID, principalID, name, description)
	}
	return &model.Playlist{}, nil
}

func (m *mockPlaylistService) DeletePlaylist(ctx context.Context, playlistID, principalID uuid.UUID) error {
	if m.deletePlaylistFn != nil {
		return m.deletePlaylistFn(ctx, playlistID, principalID)
	}
	return nil
}

func (m *mockPlaylistService) AddVideo(ctx context.Context, playlistID, videoID, principalID uuid.UUID) (bool, error) {
	if m.addVideoFn != nil {
		return m.addVideoFn(ctx, playlistID, videoID, principalID)
	}
	return false, nil
}

func (m *mockPlaylistService) RemoveVideo(ctx context.Context, playlistID, videoID, principalID uuid.UUID) error {
	if m.removeVideoFn != nil {
		return m.removeVideoFn(ctx, playlistID, videoID, principalID)
	}
	return nil
}

// envelope mirrors Envelope with the payload left raw so tests can decode
// it into the expected response type.
type envelope struct {
	StatusCode int             `json:"status_code"`
	Data       json.RawMessage `json:"data"`
	Message    string          `json:"message"`
}

func decodeEnvelope(t *testing.T, body []byte) envelope {
	t.Helper()

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		t.Fatalf("failed to unmarshal envelope: %v", err)
	}
	return env
}
