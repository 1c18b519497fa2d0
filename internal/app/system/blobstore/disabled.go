// internal/app/system/blobstore/disabled.go
package blobstore

import (
	"context"
	"errors"
	"io"
)

// ErrNotConfigured is returned by the disabled store when no object
// storage backend was configured at startup.
var ErrNotConfigured = errors.New("object storage is not configured")

// Disabled returns a Store whose operations fail with ErrNotConfigured.
// It stands in when no bucket is configured so upload paths surface a
// storage fault instead of dereferencing a nil Store.
func Disabled() Store { return disabledStore{} }

type disabledStore struct{}

func (disabledStore) Put(context.Context, string, string, io.Reader, int64) (string, error) {
	return "", ErrNotConfigured
}

func (disabledStore) Delete(context.Context, string) error {
	return ErrNotConfigured
}
