package report

import "time"

// TruncateBucket truncates t to the start of its bucket in UTC: the calendar
// date for daily, the Monday of the week for weekly, the first of the month
// for monthly.
func TruncateBucket(g Granularity, t time.Time) time.Time {
	t = t.UTC()
	switch g {
	case GranularityDaily:
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	case GranularityMonthly:
		return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	default:
		day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
		// time.Weekday numbers Sunday as 0; shift so weeks start on Monday.
		offset := (int(day.Weekday()) + 6) % 7
		return day.AddDate(0, 0, -offset)
	}
}

// BucketLabel renders a bucket start as the calendar-date label used in the
// date_report section.
func BucketLabel(t time.Time) string {
	return t.Format("2006-01-02")
}
