package snapshot

import (
	"context"
	"fmt"
	"time"

	"store-inventory/core/apperr"
	"store-inventory/core/reconcile"
	"store-inventory/core/storage"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const keyLayout = "20060102T150405.000000000Z"

// Document is the stored snapshot body.
type Document struct {
	GeneratedAt time.Time         `json:"generated_at"`
	Summary     reconcile.Summary `json:"summary"`
	State       reconcile.State   `json:"state"`
}

// Result describes one export.
type Result struct {
	Key      string   `json:"key"`
	Size     int64    `json:"size"`
	Items    int      `json:"items"`
	Requests int      `json:"requests"`
	Entries  int      `json:"entries"`
	Pruned   []string `json:"pruned"`
}

// Options configures where snapshots go.
type Options struct {
	Bucket    string
	Region    string
	Prefix    string
	Retention int
}

// Service exports and reads snapshots.
type Service struct {
	engine *reconcile.Engine
	client storage.Client
	opts   Options
	logger *zap.Logger
	group  singleflight.Group
	now    func() time.Time
}

// NewService creates a new snapshot service.
func NewService(engine *reconcile.Engine, client storage.Client, opts Options, logger *zap.Logger) *Service {
	return &Service{
		engine: engine,
		client: client,
		opts:   opts,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// Export uploads the current state. Callers that arrive while an export is running
// receive that export's result.
func (s *Service) Export(ctx context.Context) (Result, error) {
	v, err, shared := s.group.Do("export", func() (any, error) {
		return s.export(ctx)
	})
	if err != nil {
		return Result{}, err
	}
	if shared {
		s.logger.Debug("snapshot export shared with concurrent caller")
	}
	return v.(Result), nil
}

func (s *Service) export(ctx context.Context) (Result, error) {
	doc := Document{
		GeneratedAt: s.now(),
		Summary:     s.engine.VerifyAll(),
		State:       s.engine.State(),
	}

	if err := storage.EnsureBucket(ctx, s.client, s.opts.Bucket, s.opts.Region); err != nil {
		return Result{}, err
	}

	key := s.opts.Prefix + doc.GeneratedAt.Format(keyLayout) + ".json"
	info, err := storage.PutJSON(ctx, s.client, s.opts.Bucket, key, doc)
	if err != nil {
		return Result{}, err
	}

	res := Result{
		Key:      key,
		Size:     info.Size,
		Items:    len(doc.State.Items),
		Requests: len(doc.State.Requests),
		Entries:  len(doc.State.Entries),
	}

	pruned, err := s.prune(ctx)
	if err != nil {
		// The snapshot itself is stored; pruning is retried on the next export.
		s.logger.Warn("snapshot pruning failed", zap.Error(err))
	}
	res.Pruned = pruned

	s.logger.Info("snapshot exported",
		zap.String("key", key),
		zap.Int64("size", res.Size),
		zap.Int("pruned", len(pruned)),
	)
	return res, nil
}

// List returns the stored snapshot keys, oldest first.
func (s *Service) List(ctx context.Context) ([]string, error) {
	return storage.ListKeys(ctx, s.client, s.opts.Bucket, s.opts.Prefix, ".json")
}

// Latest returns the newest snapshot document.
func (s *Service) Latest(ctx context.Context) (string, Document, error) {
	keys, err := s.List(ctx)
	if err != nil {
		return "", Document{}, err
	}
	if len(keys) == 0 {
		return "", Document{}, fmt.Errorf("no snapshot under %q: %w", s.opts.Prefix, apperr.ErrNotFound)
	}
	key := keys[len(keys)-1]

	var doc Document
	if err := storage.GetJSON(ctx, s.client, s.opts.Bucket, key, &doc); err != nil {
		return "", Document{}, err
	}
	return key, doc, nil
}

// prune deletes the oldest snapshots beyond the retention count.
func (s *Service) prune(ctx context.Context) ([]string, error) {
	if s.opts.Retention <= 0 {
		return nil, nil
	}
	keys, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(keys) <= s.opts.Retention {
		return nil, nil
	}

	var pruned []string
	for _, key := range keys[:len(keys)-s.opts.Retention] {
		if err := s.client.RemoveObject(ctx, s.opts.Bucket, key, minio.RemoveObjectOptions{}); err != nil {
			return pruned, fmt.Errorf("failed to remove snapshot %s: %w", key, err)
		}
		pruned = append(pruned, key)
	}
	return pruned, nil
}
