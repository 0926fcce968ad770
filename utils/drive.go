package utils

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

// LoadOAuthConfig reads the Google client secrets file for the Drive consent flow.
func LoadOAuthConfig(secretsPath, redirectURL string) (*oauth2.Config, error) {
	b, err := os.ReadFile(secretsPath)
	if err != nil {
		return nil, fmt.Errorf("read client secrets: %w", err)
	}
	conf, err := google.ConfigFromJSON(b, drive.DriveFileScope)
	if err != nil {
		return nil, fmt.Errorf("parse client secrets: %w", err)
	}
	if redirectURL != "" {
		conf.RedirectURL = redirectURL
	}
	return conf, nil
}

// AuthCodeURL asks for offline access so the token can be refreshed.
func AuthCodeURL(conf *oauth2.Config, state string) string {
	return conf.AuthCodeURL(state,
		oauth2.AccessTypeOffline,
		oauth2.SetAuthURLParam("include_granted_scopes", "true"),
	)
}

// DriveUploader creates files in the consenting user's Drive.
type DriveUploader struct {
	srv      *drive.Service
	folderID string
}

func NewDriveUploader(ctx context.Context, ts oauth2.TokenSource, folderID string) (*DriveUploader, error) {
	srv, err := drive.NewService(ctx, option.WithTokenSource(ts))
	if err != nil {
		return nil, external("drive", "connect", err)
	}
	return &DriveUploader{srv: srv, folderID: folderID}, nil
}

// DriveUploaderFactory binds the OAuth config so handlers only supply a token.
func DriveUploaderFactory(conf *oauth2.Config, folderID string) DriveUploaderFunc {
	return func(ctx context.Context, tok *oauth2.Token) (Uploader, error) {
		u, err := NewDriveUploader(ctx, conf.TokenSource(ctx, tok), folderID)
		if err != nil {
			return nil, err
		}
		return u, nil
	}
}

func (u *DriveUploader) Upload(ctx context.Context, filename string, data []byte) (string, error) {
	meta := &drive.File{Name: filename, MimeType: pdfContentType}
	if u.folderID != "" {
		meta.Parents = []string{u.folderID}
	}
	f, err := u.srv.Files.Create(meta).
		Media(bytes.NewReader(data), googleapi.ContentType(pdfContentType)).
		Fields("id, webViewLink").
		Context(ctx).
		Do()
	if err != nil {
		return "", external("drive", "upload", err)
	}
	if f.WebViewLink != "" {
		return f.WebViewLink, nil
	}
	return "https://drive.google.com/file/d/" + f.Id + "/view", nil
}
