package storage

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newTestStorage(t *testing.T) *LocalStorage {
	s, err := NewLocalStorage(Config{
		BasePath: t.TempDir(),
		BaseURL:  "/uploadImage/",
	})
	assert.NoError(t, err)
	return s
}

func TestLocalStorage_SaveGetDelete(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	err := s.Save(ctx, "pic.jpg", strings.NewReader("image-bytes"))
	assert.NoError(t, err)

	exists, err := s.Exists(ctx, "pic.jpg")
	assert.NoError(t, err)
	assert.True(t, exists)

	rc, err := s.Get(ctx, "pic.jpg")
	assert.NoError(t, err)
	data, err := io.ReadAll(rc)
	rc.Close()
	assert.NoError(t, err)
	assert.Equal(t, "image-bytes", string(data))

	assert.NoError(t, s.Delete(ctx, "pic.jpg"))
	exists, err = s.Exists(ctx, "pic.jpg")
	assert.NoError(t, err)
	assert.False(t, exists)

	// Deleting a missing file is not an error
	assert.NoError(t, s.Delete(ctx, "pic.jpg"))
}

func TestLocalStorage_GetURL(t *testing.T) {
	s := newTestStorage(t)

	// Trailing and leading slashes normalize to a single separator
	assert.Equal(t, "/uploadImage/pic.jpg", s.GetURL("pic.jpg"))
	assert.Equal(t, "/uploadImage/pic.jpg", s.GetURL("/pic.jpg"))
}
