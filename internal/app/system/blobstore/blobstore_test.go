package blobstore

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestCategoryForMIME(t *testing.T) {
	cases := []struct {
		mime string
		want Category
	}{
		{"image/png", CategoryImage},
		{"image/svg+xml", CategoryImage},
		{"video/mp4", CategoryVideo},
		{"video/quicktime", CategoryVideo},
		{"application/pdf", CategoryRaw},
		{"text/plain", CategoryRaw},
		{"application/zip", CategoryRaw},
		{"", CategoryRaw},
	}
	for _, tc := range cases {
		if got := CategoryForMIME(tc.mime); got != tc.want {
			t.Errorf("CategoryForMIME(%q) = %q, want %q", tc.mime, got, tc.want)
		}
	}
}

func TestDisabledStore(t *testing.T) {
	ctx := context.Background()
	store := Disabled()

	_, err := store.Put(ctx, "attachments/raw/x", "text/plain", strings.NewReader("x"), 1)
	if !errors.Is(err, ErrNotConfigured) {
		t.Errorf("Put error = %v, want ErrNotConfigured", err)
	}
	if err := store.Delete(ctx, "attachments/raw/x"); !errors.Is(err, ErrNotConfigured) {
		t.Errorf("Delete error = %v, want ErrNotConfigured", err)
	}
}
