package report

import (
	"context"
	"time"
)

// Repository defines the aggregation queries behind the delivery report.
type Repository interface {
	Generate(ctx context.Context, start, end time.Time, granularity Granularity) (*Report, error)
}
