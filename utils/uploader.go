package utils

import (
	"context"
	"fmt"
	"io"

	"golang.org/x/oauth2"

	"gstinvoice/config"
)

const pdfContentType = "application/pdf"

// Uploader stores a finished PDF and returns a link to it.
type Uploader interface {
	Upload(ctx context.Context, filename string, data []byte) (string, error)
}

// DriveUploaderFunc builds a Drive uploader for one user's OAuth token.
type DriveUploaderFunc func(ctx context.Context, tok *oauth2.Token) (Uploader, error)

// NewStaticUploader returns the uploader for backends that need no user consent.
// It returns nil for "drive" and "none".
func NewStaticUploader(ctx context.Context, cfg *config.Config) (Uploader, error) {
	switch cfg.UploadBackend {
	case "r2":
		u, err := NewR2Uploader(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return u, nil
	case "gcs":
		u, err := NewGCSUploader(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return u, nil
	case "drive", "none":
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown upload backend %q", cfg.UploadBackend)
	}
}

// CloseUploader releases clients held by uploaders that own one, such as GCS.
func CloseUploader(u Uploader) error {
	if c, ok := u.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
