package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/archivo-digital/apiserver/types"
)

// MetricRepository handles persistence for file access metrics.
type MetricRepository struct {
	db *sql.DB
}

func NewMetricRepository(db *sql.DB) *MetricRepository {
	return &MetricRepository{db: db}
}

func (r *MetricRepository) Create(ctx context.Context, metric types.Metric) (types.Metric, error) {
	metric.CreatedAt = time.Now()

	const query = `
		INSERT INTO metrics (user_id, file_id, created_at)
		VALUES ($1, $2, $3)
		RETURNING id`
	err := r.db.QueryRowContext(ctx, query, metric.UserID, metric.FileID, metric.CreatedAt).Scan(&metric.ID)
	if err != nil {
		return types.Metric{}, classify(err)
	}
	return metric, nil
}

// List returns every metric joined with its user and file, oldest first.
func (r *MetricRepository) List(ctx context.Context) ([]types.MetricEntry, error) {
	const query = `
		SELECT users.email, files.name, files.src, metrics.created_at
		FROM metrics
		JOIN users ON metrics.user_id = users.id
		JOIN files ON metrics.file_id = files.id
		ORDER BY metrics.id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]types.MetricEntry, 0)
	for rows.Next() {
		var entry types.MetricEntry
		if err := rows.Scan(&entry.Email, &entry.Name, &entry.Src, &entry.CreatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}
