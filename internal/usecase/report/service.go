package report

import (
	"context"
	"time"

	domainReport "delivery-tracker/internal/domain/report"
	"delivery-tracker/internal/logger"
	appErrors "delivery-tracker/pkg/errors"

	"go.uber.org/zap"
)

const dateLayout = "2006-01-02"

// Service implements report generation use cases.
type Service struct {
	reportRepo domainReport.Repository
}

func NewService(reportRepo domainReport.Repository) *Service {
	return &Service{reportRepo: reportRepo}
}

// Generate parses the requested window and produces the delivery report.
// Defaults are the last 30 days up to now, in UTC; an explicit end date is
// expanded to the end of that day so the range is inclusive.
func (s *Service) Generate(ctx context.Context, req *ReportRequest) (*domainReport.Report, error) {
	now := time.Now().UTC()

	start := now.AddDate(0, 0, -30)
	if req.StartDate != "" {
		parsed, err := time.Parse(dateLayout, req.StartDate)
		if err != nil {
			return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid start_date", err)
		}
		start = parsed.UTC()
	}

	end := now
	if req.EndDate != "" {
		parsed, err := time.Parse(dateLayout, req.EndDate)
		if err != nil {
			return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid end_date", err)
		}
		end = time.Date(parsed.Year(), parsed.Month(), parsed.Day(), 23, 59, 59, 0, time.UTC)
	}

	granularity := domainReport.ParseGranularity(req.ReportType)

	rep, err := s.reportRepo.Generate(ctx, start, end, granularity)
	if err != nil {
		return nil, err
	}

	logger.Debug("Delivery report generated",
		zap.Time("start", start),
		zap.Time("end", end),
		zap.String("granularity", string(granularity)),
		zap.Int64("total", rep.Summary.Total),
	)

	return rep, nil
}
