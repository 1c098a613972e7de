// Package storage implements the object store gateway for tour images.
// Images are uploaded under a derived unique name so the original filename
// never leaks into the shared bucket and concurrent uploads cannot collide.
package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/travelworld/tour-admin/internal/domain"
)

// MaxImageSize is the upload size ceiling in bytes. Files at or above this
// size are rejected before any network call is made.
const MaxImageSize = 2 << 20 // 2 MiB

// cacheControl is the caching hint attached to every stored image.
const cacheControl = "max-age=3600"

// allowedImageTypes is the fixed content-type allow-set for tour images.
var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
}

// ImageFile is a binary blob handed to the uploader: the original name is
// used only to recover the extension, never as the stored key.
type ImageFile struct {
	Name        string
	ContentType string
	Size        int64
	Body        io.Reader
}

// ValidateImage checks a prospective upload against the allow-set and size
// ceiling. It is shared by the form layer (attachment pre-check) and the
// uploader itself, so a disallowed file is rejected in both places without
// touching the network. Returned errors wrap domain.ErrValidation.
func ValidateImage(contentType string, size int64) error {
	if !allowedImageTypes[contentType] {
		return fmt.Errorf("%w: only JPG/PNG images are allowed", domain.ErrValidation)
	}
	if size >= MaxImageSize {
		return fmt.Errorf("%w: image must be smaller than 2MB", domain.ErrValidation)
	}
	return nil
}

// ImageStore defines the blob upload operation the service layer depends on.
type ImageStore interface {
	// Upload validates the file, stores it under a freshly derived unique
	// name, and returns the stored path. It never overwrites an existing
	// object: a name collision fails the upload rather than replacing the blob.
	Upload(ctx context.Context, file ImageFile) (domain.UploadResult, error)
}

// s3API is the narrow slice of the S3 client the store uses.
// Unit tests implement it with a fake; production passes *s3.Client.
type s3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// s3ImageStore is the S3 implementation of ImageStore.
type s3ImageStore struct {
	client s3API
	bucket string
}

// NewImageStore constructs an ImageStore writing into the given bucket.
// In production pass an *s3.Client; in tests pass a fake s3API.
func NewImageStore(client s3API, bucket string) ImageStore {
	return &s3ImageStore{client: client, bucket: bucket}
}

// Upload stores the image and returns its path within the store.
func (s *s3ImageStore) Upload(ctx context.Context, file ImageFile) (domain.UploadResult, error) {
	if err := ValidateImage(file.ContentType, file.Size); err != nil {
		return domain.UploadResult{}, fmt.Errorf("storage.ImageStore.Upload: %w", err)
	}

	name := deriveName(file.Name)

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(name),
		Body:          file.Body,
		ContentType:   aws.String(file.ContentType),
		ContentLength: aws.Int64(file.Size),
		CacheControl:  aws.String(cacheControl),
		// Conditional write: fail if an object with this key already exists.
		IfNoneMatch: aws.String("*"),
	})
	if err != nil {
		return domain.UploadResult{}, fmt.Errorf("storage.ImageStore.Upload: %w: %v", domain.ErrUpload, err)
	}

	return domain.UploadResult{
		Path:     path.Join(s.bucket, name),
		FileName: name,
	}, nil
}

// deriveName builds a globally unique object key from a random UUID plus the
// original file's extension. The original base name is discarded.
func deriveName(original string) string {
	ext := strings.ToLower(path.Ext(original))
	return uuid.NewString() + ext
}
