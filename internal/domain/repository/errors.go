package repository

import (
	"errors"
	"fmt"
)

// ErrNotFound is the generic miss sentinel; the per-resource sentinels
// wrap it so callers can match either the specific or the generic form.
var ErrNotFound = errors.New("not found")

var (
	ErrVideoNotFound    = fmt.Errorf("video %w", ErrNotFound)
	ErrCommentNotFound  = fmt.Errorf("comment %w", ErrNotFound)
	ErrTweetNotFound    = fmt.Errorf("tweet %w", ErrNotFound)
	ErrLikeNotFound     = fmt.Errorf("like %w", ErrNotFound)
	ErrPlaylistNotFound = fmt.Errorf("playlist %w", ErrNotFound)
	ErrUserNotFound     = fmt.Errorf("user %w", ErrNotFound)

	// ErrAlreadyLiked is returned when the unique (subject, user) pair
	// already exists. Concurrent toggles surface here instead of
	// producing duplicate rows.
	ErrAlreadyLiked = errors.New("subject already liked by user")

	// ErrVideoAlreadyInPlaylist is returned on a duplicate playlist entry.
	ErrVideoAlreadyInPlaylist = errors.New("video already in playlist")

	// ErrVideoNotInPlaylist is returned when removing a video that is not
	// in the playlist.
	ErrVideoNotInPlaylist = errors.New("video not in playlist")

	// ErrBucketNotFound is returned when the blob storage bucket does not exist.
	ErrBucketNotFound = errors.New("bucket not found")

	// ErrObjectNotFound is returned when a blob does not exist.
	ErrObjectNotFound = errors.New("object not found")
)
