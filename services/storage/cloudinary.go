package storage

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"go.uber.org/zap"
)

// CourtImageFolder is where court images are uploaded.
const CourtImageFolder = "courtbook/courts"

// CloudinaryImageStore implements ImageStore on Cloudinary.
type CloudinaryImageStore struct {
	cld    *cloudinary.Cloudinary
	folder string
	logger *zap.Logger
}

// NewCloudinaryImageStore creates a store for the given account credentials.
func NewCloudinaryImageStore(cloudName, apiKey, apiSecret string, logger *zap.Logger) (*CloudinaryImageStore, error) {
	if cloudName == "" || apiKey == "" || apiSecret == "" {
		return nil, fmt.Errorf("cloudinary credentials not set in configuration")
	}
	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Cloudinary: %w", err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	logger.Info("Cloudinary image store ready", zap.String("cloud", cloudName))
	return &CloudinaryImageStore{cld: cld, folder: CourtImageFolder, logger: logger}, nil
}

// UploadImage uploads file and returns its secure URL.
func (s *CloudinaryImageStore) UploadImage(ctx context.Context, file io.Reader, filename string) (*UploadedImage, error) {
	params := uploader.UploadParams{
		Folder:       s.folder,
		PublicID:     publicIDFor(filename),
		ResourceType: "image",
	}
	result, err := s.cld.Upload.Upload(ctx, file, params)
	if err != nil {
		return nil, fmt.Errorf("failed to upload image: %w", err)
	}
	if result.Error.Message != "" {
		return nil, fmt.Errorf("failed to upload image: %s", result.Error.Message)
	}
	if result.SecureURL == "" {
		return nil, fmt.Errorf("no secure URL returned")
	}
	s.logger.Info("Court image uploaded", zap.String("publicId", result.PublicID))
	return &UploadedImage{PublicID: result.PublicID, URL: result.SecureURL}, nil
}

func (s *CloudinaryImageStore) DeleteImage(ctx context.Context, publicID string) error {
	if _, err := s.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID}); err != nil {
		return fmt.Errorf("failed to delete image: %w", err)
	}
	return nil
}

// publicIDFor derives a public id from the uploaded file name, or "" to let
// Cloudinary pick one.
func publicIDFor(filename string) string {
	base := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	base = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		case r == ' ' || r == '.':
			return '_'
		default:
			return -1
		}
	}, base)
	if base == "" || base == "_" {
		return ""
	}
	return base
}
