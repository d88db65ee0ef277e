package storage

import (
	"context"
	"fmt"
	"mime"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/hszk-dev/vidtube/internal/domain/repository"
)

// minioClient defines the interface for MinIO operations.
// This abstraction allows for easier unit testing with mocks.
type minioClient interface {
	BucketExists(ctx context.Context, bucketName string) (bool, error)
	FPutObject(ctx context.Context, bucketName, objectName, filePath string, opts minio.PutObjectOptions) (minio.UploadInfo, error)
	RemoveObject(ctx context.Context, bucketName, objectName string, opts minio.RemoveObjectOptions) error
}

// DurationProber extracts the duration of a local media file. Implemented
// by mediaprobe.FFprobe.
type DurationProber interface {
	Duration(ctx context.Context, inputPath string) (float64, error)
}

// ClientConfig holds configuration for the MinIO-backed blob storage.
type ClientConfig struct {
	Endpoint  string
	PublicURL string // External base URL blobs are served from
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// Client implements repository.BlobStorage on MinIO. Credentials are
// passed in once at construction; nothing reads the environment from
// inside the storage layer.
type Client struct {
	client    minioClient
	prober    DurationProber
	bucket    string
	publicURL string
}

// Compile-time verification that Client implements repository.BlobStorage.
var _ repository.BlobStorage = (*Client)(nil)

// NewClient creates a new MinIO-backed blob storage client.
// It verifies the bucket exists during initialization to fail fast on
// misconfiguration.
func NewClient(ctx context.Context, cfg ClientConfig, prober DurationProber) (*Client, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	return newClientWithMinioClient(ctx, client, prober, cfg)
}

// newClientWithMinioClient creates a Client with a given minioClient
// implementation. This is used for dependency injection in tests.
func newClientWithMinioClient(ctx context.Context, client minioClient, prober DurationProber, cfg ClientConfig) (*Client, error) {
	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: %s", repository.ErrBucketNotFound, cfg.Bucket)
	}

	return &Client{
		client:    client,
		prober:    prober,
		bucket:    cfg.Bucket,
		publicURL: strings.TrimRight(cfg.PublicURL, "/"),
	}, nil
}

// Upload stores the file at localPath under a fresh object key and returns
// its public locator. The local temp file is removed after the attempt
// regardless of outcome. For video blobs the duration is probed before
// upload; a probe failure fails the upload.
func (c *Client) Upload(ctx context.Context, localPath string, kind repository.BlobKind) (*repository.UploadResult, error) {
	defer func() {
		_ = os.Remove(localPath)
	}()

	var duration float64
	if kind == repository.BlobVideo {
		d, err := c.prober.Duration(ctx, localPath)
		if err != nil {
			return nil, fmt.Errorf("failed to probe video duration: %w", err)
		}
		duration = d
	}

	key := c.objectKey(localPath, kind)

	_, err := c.client.FPutObject(ctx, c.bucket, key, localPath, minio.PutObjectOptions{
		ContentType: contentTypeOf(localPath),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upload object: %w", err)
	}

	return &repository.UploadResult{
		URL:             c.publicURL + "/" + path.Join(c.bucket, key),
		DurationSeconds: duration,
	}, nil
}

// Delete removes the blob addressed by blobURL.
func (c *Client) Delete(ctx context.Context, blobURL string, kind repository.BlobKind) error {
	key, err := c.keyFromURL(blobURL)
	if err != nil {
		return err
	}

	if err := c.client.RemoveObject(ctx, c.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("failed to delete %s object: %w", kind, err)
	}

	return nil
}

// Ping verifies the MinIO connection is alive by checking bucket access.
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.client.BucketExists(ctx, c.bucket)
	if err != nil {
		return fmt.Errorf("failed to ping minio: %w", err)
	}
	return nil
}

// objectKey builds the storage key for a new blob.
// Format: {kind}s/{random}{ext}, e.g. videos/8f14….mp4
func (c *Client) objectKey(localPath string, kind repository.BlobKind) string {
	return path.Join(string(kind)+"s", uuid.NewString()+filepath.Ext(localPath))
}

// keyFromURL recovers the object key from a public blob locator.
func (c *Client) keyFromURL(blobURL string) (string, error) {
	u, err := url.Parse(blobURL)
	if err != nil {
		return "", fmt.Errorf("invalid blob URL %q: %w", blobURL, err)
	}

	key, ok := strings.CutPrefix(strings.TrimPrefix(u.Path, "/"), c.bucket+"/")
	if !ok || key == "" {
		return "", fmt.Errorf("blob URL %q does not address bucket %s", blobURL, c.bucket)
	}

	return key, nil
}

func contentTypeOf(localPath string) string {
	if ct := mime.TypeByExtension(filepath.Ext(localPath)); ct != "" {
		return ct
	}
	return "application/octet-stream"
}
