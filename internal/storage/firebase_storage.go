package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	gcs "cloud.google.com/go/storage"
	firebase "firebase.google.com/go/v4"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
)

// FirebaseStorageService implements document storage on a Firebase Storage
// (GCS) bucket.
type FirebaseStorageService struct {
	bucket *gcs.BucketHandle
}

func NewFirebaseStorageService(ctx context.Context, bucketName, credentialsFile string) (*FirebaseStorageService, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}

	app, err := firebase.NewApp(ctx, &firebase.Config{StorageBucket: bucketName}, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize firebase app: %w", err)
	}
	client, err := app.Storage(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize firebase storage client: %w", err)
	}
	bucket, err := client.DefaultBucket()
	if err != nil {
		return nil, fmt.Errorf("failed to open storage bucket: %w", err)
	}

	return &FirebaseStorageService{bucket: bucket}, nil
}

func (f *FirebaseStorageService) GeneratePresignedUploadURL(ctx context.Context, key string, contentType string, expiresIn time.Duration) (string, error) {
	return f.bucket.SignedURL(key, &gcs.SignedURLOptions{
		Scheme:      gcs.SigningSchemeV4,
		Method:      "PUT",
		ContentType: contentType,
		Expires:     time.Now().Add(expiresIn),
	})
}

func (f *FirebaseStorageService) GeneratePresignedDownloadURL(ctx context.Context, key string, expiresIn time.Duration) (string, error) {
	return f.bucket.SignedURL(key, &gcs.SignedURLOptions{
		Scheme:  gcs.SigningSchemeV4,
		Method:  "GET",
		Expires: time.Now().Add(expiresIn),
	})
}

func (f *FirebaseStorageService) FileExists(ctx context.Context, key string) (bool, int64, error) {
	attrs, err := f.bucket.Object(key).Attrs(ctx)
	if err != nil {
		if errors.Is(err, gcs.ErrObjectNotExist) {
			return false, 0, nil
		}
		return false, 0, err
	}
	return true, attrs.Size, nil
}

func (f *FirebaseStorageService) DeleteFile(ctx context.Context, key string) error {
	err := f.bucket.Object(key).Delete(ctx)
	if err != nil && !errors.Is(err, gcs.ErrObjectNotExist) {
		return fmt.Errorf("failed to delete object %s: %w", key, err)
	}
	return nil
}

func (f *FirebaseStorageService) ListKeys(ctx context.Context) ([]string, error) {
	var keys []string
	it := f.bucket.Objects(ctx, nil)
	for {
		attrs, err := it.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, err
		}
		keys = append(keys, attrs.Name)
	}
	return keys, nil
}

// SaveFile and ReadFile exist for the mock storage HTTP handlers; on the
// firebase backend clients talk to the bucket directly via signed URLs, but
// the implementations are still functional for tooling.
func (f *FirebaseStorageService) SaveFile(key string, reader io.Reader) error {
	w := f.bucket.Object(key).NewWriter(context.Background())
	if _, err := io.Copy(w, reader); err != nil {
		w.Close()
		return err
	}
	return w.Close()
}

func (f *FirebaseStorageService) ReadFile(key string) (io.ReadCloser, error) {
	return f.bucket.Object(key).NewReader(context.Background())
}
