package telemetry

import (
	"context"

	"codeberg.org/witka/biosensord/internal/errors"
	"codeberg.org/witka/biosensord/internal/logger"
)

type service struct {
	repo Repository
	cfg  Config
}

// No-op implementation used when archiving is disabled.
type noopCollector struct{}

// NewService returns a Collector for the given configuration, or a no-op
// collector when archiving is disabled.
func NewService(cfg Config) (Collector, error) {
	errFactory := errors.New()

	if err := cfg.Validate(); err != nil {
		return nil, errFactory.Wrap(ErrInvalidConfig, err)
	}

	if !cfg.Enabled {
		logger.Debug().Msg("Telemetry archive disabled, using no-op collector")
		return &noopCollector{}, nil
	}

	repo, err := NewRepository(cfg)
	if err != nil {
		return nil, err
	}

	return &service{
		repo: repo,
		cfg:  cfg,
	}, nil
}

func (s *service) Record(ctx context.Context, r *Record) error {
	errFactory := errors.New()

	if r == nil {
		return errFactory.New(ErrInvalidRecord)
	}

	select {
	case <-ctx.Done():
		return errFactory.Wrap(ErrOperationAbort, ctx.Err())
	default:
		if err := s.repo.Store(r); err != nil {
			return errFactory.Wrap(ErrRecordArchive, err)
		}
	}

	return nil
}

func (s *service) Close() error {
	errFactory := errors.New()

	if err := s.repo.Close(); err != nil {
		return errFactory.Wrap(ErrServiceShutdown, err)
	}
	return nil
}

func (*noopCollector) Record(_ context.Context, _ *Record) error {
	return nil
}

func (*noopCollector) Close() error {
	return nil
}
