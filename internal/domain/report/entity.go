package report

// Granularity is the time-bucket size for the date-grouped report section.
type Granularity string

const (
	GranularityDaily   Granularity = "daily"
	GranularityWeekly  Granularity = "weekly"
	GranularityMonthly Granularity = "monthly"
)

// ParseGranularity maps a report_type query value to a Granularity. An absent
// value means daily; unrecognized non-empty values fall back to weekly.
func ParseGranularity(s string) Granularity {
	switch s {
	case "", "daily":
		return GranularityDaily
	case "monthly":
		return GranularityMonthly
	default:
		return GranularityWeekly
	}
}

type StatusCount struct {
	StatusName string `json:"status_name"`
	Count      int64  `json:"count"`
}

type TransportStat struct {
	TransportModelName string  `json:"transport_model_name"`
	Count              int64   `json:"count"`
	TotalDistance      float64 `json:"total_distance"`
	AvgDistance        float64 `json:"avg_distance"`
}

type ServiceCount struct {
	ServiceName string `json:"service_name"`
	Count       int64  `json:"count"`
}

type DateCount struct {
	Bucket string `json:"bucket"`
	Count  int64  `json:"count"`
}

type Summary struct {
	Total         int64   `json:"total"`
	TotalDistance float64 `json:"total_distance"`
	AvgDistance   float64 `json:"avg_distance"`
	MinDistance   float64 `json:"min_distance"`
	MaxDistance   float64 `json:"max_distance"`
}

// Report is the multi-section aggregate over deliveries departing within a
// date range. Each section is computed independently over the same base set.
type Report struct {
	StatusReport    []StatusCount   `json:"status_report"`
	TransportReport []TransportStat `json:"transport_report"`
	ServiceReport   []ServiceCount  `json:"service_report"`
	DateReport      []DateCount     `json:"date_report"`
	Summary         Summary         `json:"summary"`
}
