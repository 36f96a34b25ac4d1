package storage

import (
	"context"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewKey(t *testing.T) {
	tests := []struct {
		name     string
		folder   string
		filename string
		prefix   string
		ext      string
	}{
		{"pdf document", "documents/acme", "Dossier.PDF", "documents/acme/", ".pdf"},
		{"trimmed folder", "/banners/", "logo.png", "banners/", ".png"},
		{"windows path", "posters", `C:\tmp\poster.jpg`, "posters/", ".jpg"},
		{"no extension", "documents", "README", "documents/", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key := NewKey(tt.folder, tt.filename)
			assert.True(t, strings.HasPrefix(key, tt.prefix), key)
			assert.True(t, strings.HasSuffix(key, tt.ext), key)
			assert.NotContains(t, key, "Dossier")
		})
	}

	assert.NotEqual(t, NewKey("a", "x.png"), NewKey("a", "x.png"))
}

func TestS3Store_URL(t *testing.T) {
	store, err := NewS3Store(context.Background(), S3Config{
		Bucket:     "jobfair",
		Region:     "us-east-1",
		Endpoint:   "http://localhost:9000",
		AccessKey:  "minio",
		SecretKey:  "minio-secret",
		PresignTTL: 5 * time.Minute,
	})
	require.NoError(t, err)

	raw, err := store.URL(context.Background(), "banners/abc.png")
	require.NoError(t, err)

	u, err := url.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "localhost:9000", u.Host)
	assert.Equal(t, "/jobfair/banners/abc.png", u.Path)
	assert.Equal(t, "300", u.Query().Get("X-Amz-Expires"))
	assert.NotEmpty(t, u.Query().Get("X-Amz-Signature"))

	_, err = store.URL(context.Background(), "")
	assert.ErrorIs(t, err, ErrEmptyKey)
}

func TestNewS3Store_RequiresBucket(t *testing.T) {
	_, err := NewS3Store(context.Background(), S3Config{Region: "us-east-1"})
	assert.Error(t, err)
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore("http://files.local")

	require.NoError(t, store.Put(ctx, "posters/a b.png", "image/png", strings.NewReader("png")))
	obj, ok := store.Get("posters/a b.png")
	require.True(t, ok)
	assert.Equal(t, "image/png", obj.ContentType)
	assert.Equal(t, []byte("png"), obj.Data)

	link, err := store.URL(ctx, "posters/a b.png")
	require.NoError(t, err)
	assert.Equal(t, "http://files.local/posters/a%20b.png", link)

	require.NoError(t, store.Delete(ctx, "posters/a b.png"))
	assert.Equal(t, 0, store.Len())
	assert.ErrorIs(t, store.Put(ctx, "", "", strings.NewReader("")), ErrEmptyKey)
}
