package attendance

import (
	"context"
	"time"
)

type AttendanceService interface {
	CheckIn(ctx context.Context, req CheckInRequest) (RecordResponse, error)
	CheckOut(ctx context.Context, req CheckOutRequest) (RecordResponse, error)
	MarkAbsent(ctx context.Context, req MarkAbsentRequest) (RecordResponse, error)
	List(ctx context.Context, filter ListFilter) ([]RecordResponse, error)

	// SynthesizeOnLeave materializes ON_LEAVE records for every date in the
	// inclusive range that has no record yet. Called by the leave workflow on
	// approval; dates with existing records are reported as skipped.
	SynthesizeOnLeave(ctx context.Context, employeeID string, start, end time.Time) (SynthesisResult, error)
}
