package mediahost

import (
	"context"
	"fmt"
	"io"

	"day-diary/config"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
)

// DriveHost stores media in a single Google Drive folder. Auth uses an
// offline refresh token from config; the token source refreshes access
// tokens on its own.
type DriveHost struct {
	service  *drive.Service
	folderID string
}

// NewDriveHost builds the Drive client and resolves (or creates) the app
// folder. Extra options are appended after the OAuth client, so tests can
// override the endpoint.
func NewDriveHost(ctx context.Context, cfg *config.Config, opts ...option.ClientOption) (*DriveHost, error) {
	oauthConfig := &oauth2.Config{
		ClientID:     cfg.GoogleClientID,
		ClientSecret: cfg.GoogleClientSecret,
		Scopes:       []string{drive.DriveFileScope},
		Endpoint:     google.Endpoint,
	}

	tokenSource := oauthConfig.TokenSource(ctx, &oauth2.Token{RefreshToken: cfg.GoogleRefreshToken})
	httpClient := oauth2.NewClient(ctx, tokenSource)

	clientOpts := append([]option.ClientOption{option.WithHTTPClient(httpClient)}, opts...)
	srv, err := drive.NewService(ctx, clientOpts...)
	if err != nil {
		return nil, err
	}

	h := &DriveHost{service: srv}
	if h.folderID, err = h.getOrCreateFolder(cfg.DriveFolder); err != nil {
		return nil, fmt.Errorf("failed to resolve media folder: %w", err)
	}

	return h, nil
}

func (h *DriveHost) getOrCreateFolder(name string) (string, error) {
	query := fmt.Sprintf("name='%s' and mimeType='application/vnd.google-apps.folder' and trashed=false", name)
	fileList, err := h.service.Files.List().Q(query).Fields("files(id, name)").Do()
	if err != nil {
		return "", err
	}
	if len(fileList.Files) > 0 {
		return fileList.Files[0].Id, nil
	}

	folder, err := h.service.Files.Create(&drive.File{
		Name:     name,
		MimeType: "application/vnd.google-apps.folder",
	}).Fields("id").Do()
	if err != nil {
		return "", err
	}
	return folder.Id, nil
}

// Upload stores the content in the app folder and returns a direct-download
// URL whose trailing path segment is the Drive file id.
func (h *DriveHost) Upload(ctx context.Context, name, mimeType string, content io.Reader) (string, error) {
	fileMetadata := &drive.File{
		Name:     name,
		Parents:  []string{h.folderID},
		MimeType: mimeType,
	}

	file, err := h.service.Files.Create(fileMetadata).
		Media(content).
		Fields("id").
		Context(ctx).
		Do()
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("https://www.googleapis.com/drive/v3/files/%s?alt=media", file.Id), nil
}

// Delete removes the remote object by Drive file id.
func (h *DriveHost) Delete(ctx context.Context, objectID string) error {
	return h.service.Files.Delete(objectID).Context(ctx).Do()
}
