package utils

import (
	"context"
	"fmt"
	"path/filepath"

	"cloud.google.com/go/storage"

	"gstinvoice/config"
)

// GCSUploader writes invoices to a Cloud Storage bucket using application default credentials.
type GCSUploader struct {
	client     *storage.Client
	bucket     string
	publicBase string
}

func NewGCSUploader(ctx context.Context, cfg *config.Config) (*GCSUploader, error) {
	if cfg.GCSBucket == "" {
		return nil, fmt.Errorf("missing GCS bucket")
	}
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("create storage client: %w", err)
	}
	return &GCSUploader{
		client:     client,
		bucket:     cfg.GCSBucket,
		publicBase: publicObjectURL(cfg.GCSPublicURL, cfg.GCSBucket),
	}, nil
}

func (u *GCSUploader) Upload(ctx context.Context, filename string, data []byte) (string, error) {
	key := filepath.Base(filename)
	w := u.client.Bucket(u.bucket).Object(key).NewWriter(ctx)
	w.ContentType = pdfContentType
	if _, err := w.Write(data); err != nil {
		w.Close()
		return "", external("gcs", "upload", err)
	}
	if err := w.Close(); err != nil {
		return "", external("gcs", "upload", err)
	}
	return publicObjectURL(u.publicBase, key), nil
}

func (u *GCSUploader) Close() error {
	return u.client.Close()
}
