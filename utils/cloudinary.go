package utils

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/meinhoongagan/booking-marketplace/config"
)

// Resize profile pictures to thumbnails on upload.
const profileTransformation = "c_thumb,w_200,h_200"

// CloudinaryUploader stores provider profile pictures in Cloudinary.
type CloudinaryUploader struct {
	cld    *cloudinary.Cloudinary
	folder string
	preset string
}

func NewCloudinaryUploader(cfg config.CloudinaryConfig) (*CloudinaryUploader, error) {
	cld, err := cloudinary.NewFromParams(cfg.CloudName, cfg.APIKey, cfg.APISecret)
	if err != nil {
		return nil, fmt.Errorf("init cloudinary: %w", err)
	}
	return &CloudinaryUploader{cld: cld, folder: cfg.Folder, preset: cfg.UploadPreset}, nil
}

// Upload uploads the image and returns its secure URL.
func (u *CloudinaryUploader) Upload(ctx context.Context, file io.Reader, publicID string) (string, error) {
	resp, err := u.cld.Upload.Upload(ctx, file, u.params(publicID))
	if err != nil {
		return "", err
	}
	if resp.Error.Message != "" {
		return "", errors.New(resp.Error.Message)
	}
	return resp.SecureURL, nil
}

func (u *CloudinaryUploader) params(publicID string) uploader.UploadParams {
	return uploader.UploadParams{
		PublicID:       publicID,
		Folder:         u.folder,
		UploadPreset:   u.preset,
		Transformation: profileTransformation,
	}
}
