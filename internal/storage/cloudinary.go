package storage

import (
	"bytes"
	"context"
	"fmt"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/taskplatform/task-platform-api/internal/config"
)

// CloudinaryStore uploads file bytes to Cloudinary's tasks folder.
type CloudinaryStore struct {
	client *cloudinary.Cloudinary
}

// NewCloudinaryStore builds a store from either CLOUDINARY_URL or the
// cloud-name/key/secret triple.
func NewCloudinaryStore(cfg *config.Config) (*CloudinaryStore, error) {
	var (
		client *cloudinary.Cloudinary
		err    error
	)
	if cfg.CloudinaryURL != "" {
		client, err = cloudinary.NewFromURL(cfg.CloudinaryURL)
	} else {
		client, err = cloudinary.NewFromParams(cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to configure cloudinary: %w", err)
	}
	return &CloudinaryStore{client: client}, nil
}

func (s *CloudinaryStore) Save(ctx context.Context, originalName string, data []byte) (*StoredFile, error) {
	result, err := s.client.Upload.Upload(ctx, bytes.NewReader(data), uploader.UploadParams{
		Folder:       "tasks",
		ResourceType: "auto",
	})
	if err != nil {
		return nil, fmt.Errorf("cloudinary upload failed: %w", err)
	}

	return &StoredFile{
		Filename: originalName,
		URL:      result.SecureURL,
		PublicID: result.PublicID,
		Provider: "cloudinary",
	}, nil
}

func (s *CloudinaryStore) Remove(ctx context.Context, ref StoredFile) error {
	if ref.PublicID == "" {
		return nil
	}
	_, err := s.client.Upload.Destroy(ctx, uploader.DestroyParams{
		PublicID:     ref.PublicID,
		ResourceType: "auto",
	})
	if err != nil {
		return fmt.Errorf("cloudinary destroy failed: %w", err)
	}
	return nil
}
