package checks

import (
	"context"
	"errors"
	"testing"

	"store-inventory/core/storage/mocks"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCheckStorage(t *testing.T) {
	ctx := context.Background()

	t.Run("Exists", func(t *testing.T) {
		client := new(mocks.Client)
		ch := make(chan minio.ObjectInfo, 2)
		ch <- minio.ObjectInfo{Key: "snapshots/a.json"}
		ch <- minio.ObjectInfo{Key: "snapshots/b.json"}
		close(ch)
		client.On("BucketExists", mock.Anything, "inventory").Return(true, nil)
		client.On("ListObjects", mock.Anything, "inventory", mock.Anything).Return((<-chan minio.ObjectInfo)(ch))

		report, err := CheckStorage(ctx, client, "inventory", "snapshots/")
		require.NoError(t, err)
		assert.True(t, report.Exists)
		assert.Equal(t, 2, report.Snapshots)
		assert.Equal(t, "snapshots/b.json", report.Latest)
	})

	t.Run("Missing", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BucketExists", mock.Anything, "inventory").Return(false, nil)

		report, err := CheckStorage(ctx, client, "inventory", "snapshots/")
		require.NoError(t, err)
		assert.False(t, report.Exists)
		client.AssertNotCalled(t, "ListObjects", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Unreachable", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BucketExists", mock.Anything, "inventory").Return(false, errors.New("dial tcp"))

		_, err := CheckStorage(ctx, client, "inventory", "snapshots/")
		assert.ErrorContains(t, err, "dial tcp")
	})
}
