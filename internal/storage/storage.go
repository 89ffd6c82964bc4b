package storage

import (
	"context"
	"errors"
	"io"
)

// MaxImageBytes caps the size of an uploaded header image.
const MaxImageBytes = 10 << 20

var (
	// ErrNotImage is returned when an upload is not a recognised image type.
	ErrNotImage = errors.New("uploaded file is not an image")
	// ErrTooLarge is returned when an upload exceeds MaxImageBytes.
	ErrTooLarge = errors.New("uploaded file is too large")
)

// Service stores post header images in remote object storage.
type Service interface {
	// PutImage stores the image and returns the public URL to use as a post's img_url.
	PutImage(ctx context.Context, body io.Reader) (string, error)
	// DeleteImage removes an image previously returned by PutImage. URLs that
	// do not point into this store are ignored.
	DeleteImage(ctx context.Context, url string) error
}
