package checks

import (
	"context"
	"fmt"

	"store-inventory/core/storage"
)

// StorageReport describes the snapshot bucket.
type StorageReport struct {
	Bucket    string `json:"bucket"`
	Exists    bool   `json:"exists"`
	Snapshots int    `json:"snapshots"`
	Latest    string `json:"latest,omitempty"`
}

// CheckStorage verifies the snapshot bucket and counts the stored snapshots.
func CheckStorage(ctx context.Context, client storage.Client, bucket, prefix string) (*StorageReport, error) {
	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket existence: %w", err)
	}
	report := &StorageReport{Bucket: bucket, Exists: exists}
	if !exists {
		return report, nil
	}

	keys, err := storage.ListKeys(ctx, client, bucket, prefix, ".json")
	if err != nil {
		return nil, err
	}
	report.Snapshots = len(keys)
	if len(keys) > 0 {
		report.Latest = keys[len(keys)-1]
	}
	return report, nil
}
