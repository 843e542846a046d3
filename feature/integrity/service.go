package integrity

import (
	"context"
	"errors"

	"store-inventory/core/reconcile"
	"store-inventory/core/storage"
	"store-inventory/feature/integrity/checks"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	ErrNoDatabase = errors.New("no database configured")
	ErrNoStorage  = errors.New("no object storage configured")
)

// FailureCounter reports writes that could not be persisted.
type FailureCounter interface {
	Failed() int64
}

// Service handles integrity checks.
type Service struct {
	engine  *reconcile.Engine
	db      *gorm.DB
	client  storage.Client
	bucket  string
	region  string
	prefix  string
	journal FailureCounter
	logger  *zap.Logger
}

// Options lists the optional collaborators of the integrity checks.
type Options struct {
	DB      *gorm.DB
	Client  storage.Client
	Bucket  string
	Region  string
	Prefix  string
	Journal FailureCounter
}

// NewService creates a new integrity service.
func NewService(engine *reconcile.Engine, opts Options, logger *zap.Logger) *Service {
	return &Service{
		engine:  engine,
		db:      opts.DB,
		client:  opts.Client,
		bucket:  opts.Bucket,
		region:  opts.Region,
		prefix:  opts.Prefix,
		journal: opts.Journal,
		logger:  logger,
	}
}

// CheckConservation audits every item.
func (s *Service) CheckConservation() *checks.ConservationReport {
	return checks.CheckConservation(s.engine)
}

// CheckSchema verifies the database schema.
func (s *Service) CheckSchema() (*checks.SchemaReport, error) {
	if s.db == nil {
		return nil, ErrNoDatabase
	}
	return checks.CheckSchema(s.db)
}

// CheckStorage verifies the snapshot bucket.
func (s *Service) CheckStorage(ctx context.Context) (*checks.StorageReport, error) {
	if s.client == nil {
		return nil, ErrNoStorage
	}
	return checks.CheckStorage(ctx, s.client, s.bucket, s.prefix)
}

// FixStorage creates the snapshot bucket.
func (s *Service) FixStorage(ctx context.Context) error {
	if s.client == nil {
		return ErrNoStorage
	}
	return storage.EnsureBucket(ctx, s.client, s.bucket, s.region)
}

// JournalFailures returns the failed journal writes, or -1 without a journal.
func (s *Service) JournalFailures() int64 {
	if s.journal == nil {
		return -1
	}
	return s.journal.Failed()
}
