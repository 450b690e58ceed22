package report

import (
	"context"
	"time"
)

// ReportService aggregates over the attendance ledger and employee directory.
// All operations are read-only.
type ReportService interface {
	DailySummary(ctx context.Context, date time.Time) (DailySummary, error)
	DepartmentStats(ctx context.Context, department string, rng DateRange) (DepartmentStats, error)
	PunctualityRanking(ctx context.Context, rng DateRange, limit int) (PunctualityRanking, error)
	MonthlySummary(ctx context.Context, employeeCode string, year int, month time.Month) (MonthlySummary, error)

	// MonthlyRecords flattens every active employee's records for a month
	// into export rows, grouped by employee code and ordered by date.
	MonthlyRecords(ctx context.Context, year int, month time.Month) ([]MonthlyCSVRow, error)
}
