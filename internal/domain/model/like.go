package model

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// SubjectKind discriminates what a like refers to.
type SubjectKind string

const (
	SubjectVideo   SubjectKind = "video"
	SubjectComment SubjectKind = "comment"
	SubjectTweet   SubjectKind = "tweet"
)

func (k SubjectKind) IsValid() bool {
	switch k {
	case SubjectVideo, SubjectComment, SubjectTweet:
		return true
	default:
		return false
	}
}

func (k SubjectKind) String() string {
	return string(k)
}

var (
	ErrInvalidSubjectKind = errors.New("invalid like subject kind")
	ErrInvalidSubjectID   = errors.New("subject ID cannot be nil")
	ErrInvalidLikedBy     = errors.New("liked-by user ID cannot be nil")
)

// Subject is the tagged union of entities that can be liked: exactly one
// of video, comment or tweet. The zero value is invalid; construct via
// NewSubject or the per-kind helpers.
type Subject struct {
	kind SubjectKind
	id   uuid.UUID
}

// NewSubject builds a validated like subject.
func NewSubject(kind SubjectKind, id uuid.UUID) (Subject, error) {
	if !kind.IsValid() {
		return Subject{}, ErrInvalidSubjectKind
	}
	if id == uuid.Nil {
		return Subject{}, ErrInvalidSubjectID
	}
	return Subject{kind: kind, id: id}, nil
}

func VideoSubject(id uuid.UUID) (Subject, error)   { return NewSubject(SubjectVideo, id) }
func CommentSubject(id uuid.UUID) (Subject, error) { return NewSubject(SubjectComment, id) }
func TweetSubject(id uuid.UUID) (Subject, error)   { return NewSubject(SubjectTweet, id) }

func (s Subject) Kind() SubjectKind { return s.kind }
func (s Subject) ID() uuid.UUID     { return s.id }

// Like records that a user liked a subject. Presence of the row means
// "liked"; there is no separate counter.
type Like struct {
	ID        uuid.UUID
	Subject   Subject
	LikedBy   uuid.UUID
	CreatedAt time.Time
}

// NewLike creates a Like for the given (subject, user) pair.
func NewLike(subject Subject, likedBy uuid.UUID) (*Like, error) {
	if !subject.kind.IsValid() || subject.id == uuid.Nil {
		return nil, ErrInvalidSubjectKind
	}
	if likedBy == uuid.Nil {
		return nil, ErrInvalidLikedBy
	}
	return &Like{
		ID:        uuid.New(),
		Subject:   subject,
		LikedBy:   likedBy,
		CreatedAt: time.Now(),
	}, nil
}
