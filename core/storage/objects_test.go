package storage_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"store-inventory/core/storage"
	"store-inventory/core/storage/mocks"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func listing(infos ...minio.ObjectInfo) <-chan minio.ObjectInfo {
	ch := make(chan minio.ObjectInfo, len(infos))
	for _, info := range infos {
		ch <- info
	}
	close(ch)
	return ch
}

func TestListKeys(t *testing.T) {
	ctx := context.Background()

	t.Run("FiltersAndSorts", func(t *testing.T) {
		m := new(mocks.Client)
		m.On("ListObjects", ctx, "inventory", minio.ListObjectsOptions{Prefix: "snapshots/", Recursive: true}).
			Return(listing(
				minio.ObjectInfo{Key: "snapshots/b.json"},
				minio.ObjectInfo{Key: "snapshots/notes.txt"},
				minio.ObjectInfo{Key: "snapshots/a.json"},
			))

		keys, err := storage.ListKeys(ctx, m, "inventory", "snapshots/", ".json")
		require.NoError(t, err)
		assert.Equal(t, []string{"snapshots/a.json", "snapshots/b.json"}, keys)
	})

	t.Run("ListingError", func(t *testing.T) {
		m := new(mocks.Client)
		m.On("ListObjects", ctx, "inventory", mock.Anything).
			Return(listing(minio.ObjectInfo{Err: errors.New("access denied")}))

		_, err := storage.ListKeys(ctx, m, "inventory", "snapshots/", ".json")
		assert.ErrorContains(t, err, "access denied")
	})
}

func TestPutJSON(t *testing.T) {
	ctx := context.Background()
	m := new(mocks.Client)

	var body []byte
	m.On("PutObject", ctx, "inventory", "k.json", mock.Anything, int64(len(`{"a":1}`)), minio.PutObjectOptions{ContentType: "application/json"}).
		Run(func(args mock.Arguments) {
			body, _ = io.ReadAll(args.Get(3).(io.Reader))
		}).
		Return(minio.UploadInfo{Key: "k.json", Size: 7}, nil)

	info, err := storage.PutJSON(ctx, m, "inventory", "k.json", map[string]int{"a": 1})
	require.NoError(t, err)
	assert.EqualValues(t, 7, info.Size)
	assert.JSONEq(t, `{"a":1}`, string(body))
}

func TestGetJSON(t *testing.T) {
	ctx := context.Background()

	t.Run("Decodes", func(t *testing.T) {
		m := new(mocks.Client)
		m.On("GetObject", ctx, "inventory", "k.json", mock.Anything).
			Return(io.NopCloser(bytes.NewReader([]byte(`{"a":1}`))), nil)

		var got map[string]int
		require.NoError(t, storage.GetJSON(ctx, m, "inventory", "k.json", &got))
		assert.Equal(t, 1, got["a"])
	})

	t.Run("Malformed", func(t *testing.T) {
		m := new(mocks.Client)
		m.On("GetObject", ctx, "inventory", "k.json", mock.Anything).
			Return(io.NopCloser(bytes.NewReader([]byte(`{`))), nil)

		var got map[string]int
		assert.ErrorContains(t, storage.GetJSON(ctx, m, "inventory", "k.json", &got), "failed to decode")
	})
}
