// Package blob provides the opaque file stores backing submission and
// material uploads: Backblaze B2 for deployments, an in-memory store for
// local runtime and tests.
package blob

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/kurin/blazer/b2"
)

// B2Store keeps blobs in a Backblaze B2 bucket, one object per ref.
type B2Store struct {
	client *b2.Client
	bucket *b2.Bucket
}

// NewB2Store dials B2 and binds the bucket.
func NewB2Store(ctx context.Context, accountID string, appKey string, bucketName string) (*B2Store, error) {
	client, err := b2.NewClient(ctx, accountID, appKey)
	if err != nil {
		return nil, fmt.Errorf("create b2 client: %w", err)
	}
	bucket, err := client.Bucket(ctx, bucketName)
	if err != nil {
		return nil, fmt.Errorf("open b2 bucket %q: %w", bucketName, err)
	}
	return &B2Store{client: client, bucket: bucket}, nil
}

func (s *B2Store) Store(ctx context.Context, data []byte) (string, error) {
	ref := uuid.NewString()
	w := s.bucket.Object(ref).NewWriter(ctx)
	if _, err := io.Copy(w, bytes.NewReader(data)); err != nil {
		w.Close()
		return "", fmt.Errorf("write b2 object %q: %w", ref, err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("close b2 object %q: %w", ref, err)
	}
	return ref, nil
}

func (s *B2Store) Fetch(ctx context.Context, ref string) ([]byte, bool, error) {
	r := s.bucket.Object(ref).NewReader(ctx)
	defer r.Close()

	data, err := io.ReadAll(r)
	if err != nil {
		if b2.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("read b2 object %q: %w", ref, err)
	}
	return data, true, nil
}

// Delete is a no-op when the ref is already gone, so cascade deletes can be
// re-run after a partial failure.
func (s *B2Store) Delete(ctx context.Context, ref string) error {
	if err := s.bucket.Object(ref).Delete(ctx); err != nil {
		if b2.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("delete b2 object %q: %w", ref, err)
	}
	return nil
}
