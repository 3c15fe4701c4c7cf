package report

// ReportRequest carries the raw query parameters for report generation.
// Dates use the YYYY-MM-DD calendar format; report_type selects the date
// bucketing granularity.
type ReportRequest struct {
	StartDate  string `form:"start_date"`
	EndDate    string `form:"end_date"`
	ReportType string `form:"report_type"`
}
