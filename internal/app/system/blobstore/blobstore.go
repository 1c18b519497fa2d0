// Package blobstore abstracts the object storage that card attachment
// files live in. Handlers talk to the Store interface; the S3 backend
// is wired in at startup.
package blobstore

import (
	"context"
	"io"
	"strings"
)

// Category groups attachments by how the client renders them.
type Category string

const (
	CategoryImage Category = "image"
	CategoryVideo Category = "video"
	CategoryRaw   Category = "raw"
)

// CategoryForMIME classifies a MIME type. Anything that is not an
// image or a video is stored and served as an opaque file.
func CategoryForMIME(mimeType string) Category {
	switch {
	case strings.HasPrefix(mimeType, "image/"):
		return CategoryImage
	case strings.HasPrefix(mimeType, "video/"):
		return CategoryVideo
	default:
		return CategoryRaw
	}
}

// Store is the operations attachment handling needs from object
// storage.
type Store interface {
	// Put uploads the blob under key and returns its public URL.
	Put(ctx context.Context, key, contentType string, body io.Reader, size int64) (string, error)

	// Delete removes the blob under key. Deleting a key that does not
	// exist is not an error.
	Delete(ctx context.Context, key string) error
}
