package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/archivo-digital/apiserver/internal/mq"
	"github.com/archivo-digital/apiserver/internal/store"
	"github.com/archivo-digital/apiserver/types"
)

// MetricRepository defines persistence operations for access metrics.
type MetricRepository interface {
	Create(ctx context.Context, metric types.Metric) (types.Metric, error)
	List(ctx context.Context) ([]types.MetricEntry, error)
}

// MetricService records and reports file access events.
type MetricService struct {
	users   UserRepository
	files   FileRepository
	metrics MetricRepository
	events  EventPublisher
	logger  *slog.Logger
}

func NewMetricService(
	users UserRepository,
	files FileRepository,
	metrics MetricRepository,
	events EventPublisher,
	logger *slog.Logger,
) *MetricService {
	return &MetricService{
		users:   users,
		files:   files,
		metrics: metrics,
		events:  events,
		logger:  loggerOrDefault(logger),
	}
}

// Record logs that the user with email accessed fileID. The lookups and the
// insert are separate statements; the insert still fails cleanly if a
// reference disappears in between.
func (s *MetricService) Record(ctx context.Context, email string, fileID int) (types.Metric, error) {
	user, err := s.users.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return types.Metric{}, clientError(ErrNotFound, "user not found")
		}
		return types.Metric{}, err
	}

	if _, err := s.files.Get(ctx, fileID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return types.Metric{}, clientError(ErrNotFound, "file not found")
		}
		return types.Metric{}, err
	}

	metric, err := s.metrics.Create(ctx, types.Metric{UserID: user.ID, FileID: fileID})
	if err != nil {
		if errors.Is(err, store.ErrReferenceNotFound) {
			return types.Metric{}, clientError(ErrNotFound, "file not found")
		}
		return types.Metric{}, err
	}

	publishEvent(ctx, s.logger, s.events, mq.ChannelMetricRecorded, metric)
	return metric, nil
}

// List returns every recorded metric, oldest first. An empty log is reported
// as ErrNotFound.
func (s *MetricService) List(ctx context.Context) ([]types.MetricEntry, error) {
	entries, err := s.metrics.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, clientError(ErrNotFound, "no metrics found")
	}
	return entries, nil
}
