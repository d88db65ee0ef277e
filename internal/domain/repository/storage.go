package repository

import "context"

// BlobKind distinguishes image and video blobs; delete routing and
// duration probing depend on it.
type BlobKind string

const (
	BlobImage BlobKind = "image"
	BlobVideo BlobKind = "video"
)

// UploadResult describes a stored blob. DurationSeconds is zero for
// images.
type UploadResult struct {
	URL             string
	DurationSeconds float64
}

// BlobStorage is the blob storage collaborator. Implementations must
// remove the local temp file after an upload attempt regardless of
// outcome.
type BlobStorage interface {
	// Upload stores the file at localPath and returns its public locator.
	Upload(ctx context.Context, localPath string, kind BlobKind) (*UploadResult, error)

	// Delete removes the blob addressed by url. Callers treat failures as
	// best-effort cleanup.
	Delete(ctx context.Context, url string, kind BlobKind) error
}
