package storage

import (
	"context"
	"io"
)

// ImageStore keeps court images and hands back public URLs for them.
type ImageStore interface {
	UploadImage(ctx context.Context, file io.Reader, filename string) (*UploadedImage, error)
	DeleteImage(ctx context.Context, publicID string) error
}

type UploadedImage struct {
	PublicID string `json:"publicId"`
	URL      string `json:"url"`
}
