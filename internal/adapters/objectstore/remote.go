// Package objectstore mirrors campaign documents to an S3-compatible bucket.
package objectstore

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/example/rpgdash/internal/ports/secondary"
)

// Options configures the bucket connection.
type Options struct {
	Endpoint  string
	Bucket    string
	Prefix    string
	AccessKey string
	SecretKey string
	UseSSL    bool
	Region    string
}

// RemoteStore implements secondary.RemoteStore with one object per user at
// <prefix>/<user_id>.json.
type RemoteStore struct {
	client *minio.Client
	bucket string
	prefix string
}

// Ensure RemoteStore implements the interface
var _ secondary.RemoteStore = (*RemoteStore)(nil)

// New connects to the bucket described by opts.
func New(opts Options) (*RemoteStore, error) {
	if opts.Endpoint == "" || opts.Bucket == "" {
		return nil, fmt.Errorf("s3 endpoint and bucket are required")
	}
	client, err := minio.New(opts.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(opts.AccessKey, opts.SecretKey, ""),
		Secure: opts.UseSSL,
		Region: opts.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create s3 client: %w", err)
	}
	return &RemoteStore{client: client, bucket: opts.Bucket, prefix: opts.Prefix}, nil
}

// ObjectKey returns the object key holding userID's document.
func ObjectKey(prefix, userID string) string {
	name := url.PathEscape(userID) + ".json"
	prefix = strings.Trim(prefix, "/")
	if prefix == "" {
		return name
	}
	return path.Join(prefix, name)
}

// Select downloads the document stored for userID.
func (s *RemoteStore) Select(ctx context.Context, userID string) ([]byte, bool, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, ObjectKey(s.prefix, userID), minio.GetObjectOptions{})
	if err != nil {
		if isNotFound(err) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to get remote document: %w", err)
	}
	defer func() {
		_ = obj.Close()
	}()

	// GetObject is lazy: a missing key surfaces on the first read.
	data, err := io.ReadAll(obj)
	if err != nil {
		if isNotFound(err) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to read remote document: %w", err)
	}
	return data, true, nil
}

// Upsert uploads doc for userID, replacing the previous object.
func (s *RemoteStore) Upsert(ctx context.Context, userID string, doc []byte) error {
	_, err := s.client.PutObject(
		ctx,
		s.bucket,
		ObjectKey(s.prefix, userID),
		bytes.NewReader(doc),
		int64(len(doc)),
		minio.PutObjectOptions{
			ContentType: "application/json",
		},
	)
	if err != nil {
		return fmt.Errorf("failed to put remote document: %w", err)
	}
	return nil
}

// UpdatedAt returns the last-modified time of userID's document.
func (s *RemoteStore) UpdatedAt(ctx context.Context, userID string) (time.Time, error) {
	info, err := s.client.StatObject(ctx, s.bucket, ObjectKey(s.prefix, userID), minio.StatObjectOptions{})
	if err != nil {
		if isNotFound(err) {
			return time.Time{}, secondary.ErrNotFound
		}
		return time.Time{}, fmt.Errorf("failed to stat remote document: %w", err)
	}
	return info.LastModified, nil
}

func isNotFound(err error) bool {
	code := minio.ToErrorResponse(err).Code
	return code == "NoSuchKey" || code == "NotFound"
}
