package attendance

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/attendly-hq/attendance-backend-go/internal/domain/attendance"
	"github.com/attendly-hq/attendance-backend-go/internal/domain/employee"
	"github.com/attendly-hq/attendance-backend-go/internal/repository/memory"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAttendanceService(t *testing.T) (attendance.AttendanceService, *memory.Store) {
	store := memory.NewStore()
	svc, err := NewAttendanceService(store.Attendance, store.Employees, "09:00")
	require.NoError(t, err)
	return svc, store
}

func seedEmployee(t *testing.T, store *memory.Store, code string) employee.Employee {
	emp, err := store.Employees.Create(context.Background(), employee.Employee{
		ID:         uuid.NewString(),
		Code:       code,
		FullName:   "Test Employee " + code,
		Email:      code + "@example.com",
		Department: employee.DepartmentIT,
		Position:   "Engineer",
		HireDate:   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	return emp
}

func strPtr(s string) *string { return &s }

func TestCheckIn_BeforeCutoffIsPresent(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestAttendanceService(t)
	seedEmployee(t, store, "EMP001")

	rec, err := svc.CheckIn(ctx, attendance.CheckInRequest{
		EmployeeCode: "EMP001",
		At:           strPtr("2025-12-01T08:55:00Z"),
	})
	require.NoError(t, err)

	assert.Equal(t, string(attendance.StatusPresent), rec.Status)
	assert.Equal(t, "2025-12-01", rec.Date)
	require.NotNil(t, rec.CheckIn)
	assert.Equal(t, "2025-12-01T08:55:00Z", *rec.CheckIn)
	assert.Nil(t, rec.CheckOut)
	assert.Nil(t, rec.WorkingHours)
}

func TestCheckIn_AfterCutoffIsLate(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestAttendanceService(t)
	seedEmployee(t, store, "EMP001")

	rec, err := svc.CheckIn(ctx, attendance.CheckInRequest{
		EmployeeCode: "EMP001",
		At:           strPtr("2025-12-01T09:15:00Z"),
	})
	require.NoError(t, err)
	assert.Equal(t, string(attendance.StatusLate), rec.Status)
}

func TestCheckIn_AtCutoffExactlyIsPresent(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestAttendanceService(t)
	seedEmployee(t, store, "EMP001")

	rec, err := svc.CheckIn(ctx, attendance.CheckInRequest{
		EmployeeCode: "EMP001",
		At:           strPtr("2025-12-01T09:00:00Z"),
	})
	require.NoError(t, err)
	assert.Equal(t, string(attendance.StatusPresent), rec.Status)
}

func TestCheckIn_TwiceSameDayConflicts(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestAttendanceService(t)
	seedEmployee(t, store, "EMP001")

	_, err := svc.CheckIn(ctx, attendance.CheckInRequest{
		EmployeeCode: "EMP001",
		At:           strPtr("2025-12-01T08:30:00Z"),
	})
	require.NoError(t, err)

	_, err = svc.CheckIn(ctx, attendance.CheckInRequest{
		EmployeeCode: "EMP001",
		At:           strPtr("2025-12-01T10:00:00Z"),
	})
	assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedIn)
}

func TestCheckIn_UnknownEmployee(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestAttendanceService(t)

	_, err := svc.CheckIn(ctx, attendance.CheckInRequest{
		EmployeeCode: "EMP404",
		At:           strPtr("2025-12-01T08:30:00Z"),
	})
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestCheckIn_DeactivatedEmployee(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestAttendanceService(t)
	emp := seedEmployee(t, store, "EMP001")

	emp.Deactivated = true
	require.NoError(t, store.Employees.Update(ctx, emp))

	_, err := svc.CheckIn(ctx, attendance.CheckInRequest{
		EmployeeCode: "EMP001",
		At:           strPtr("2025-12-01T08:30:00Z"),
	})
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestCheckOut_ComputesWorkingHours(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestAttendanceService(t)
	seedEmployee(t, store, "EMP001")

	_, err := svc.CheckIn(ctx, attendance.CheckInRequest{
		EmployeeCode: "EMP001",
		At:           strPtr("2025-12-01T08:55:00Z"),
	})
	require.NoError(t, err)

	rec, err := svc.CheckOut(ctx, attendance.CheckOutRequest{
		EmployeeCode: "EMP001",
		At:           strPtr("2025-12-01T17:30:00Z"),
	})
	require.NoError(t, err)

	// 8h35m rounded to two decimals.
	require.NotNil(t, rec.WorkingHours)
	assert.Equal(t, 8.58, *rec.WorkingHours)
	// Check-out never revises the check-in status.
	assert.Equal(t, string(attendance.StatusPresent), rec.Status)
}

func TestCheckOut_WithoutOpenCheckIn(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestAttendanceService(t)
	seedEmployee(t, store, "EMP001")

	_, err := svc.CheckOut(ctx, attendance.CheckOutRequest{
		EmployeeCode: "EMP001",
		At:           strPtr("2025-12-01T17:30:00Z"),
	})
	assert.ErrorIs(t, err, attendance.ErrNotCheckedIn)
}

func TestCheckOut_Twice(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestAttendanceService(t)
	seedEmployee(t, store, "EMP001")

	_, err := svc.CheckIn(ctx, attendance.CheckInRequest{
		EmployeeCode: "EMP001",
		At:           strPtr("2025-12-01T08:55:00Z"),
	})
	require.NoError(t, err)

	_, err = svc.CheckOut(ctx, attendance.CheckOutRequest{
		EmployeeCode: "EMP001",
		At:           strPtr("2025-12-01T17:00:00Z"),
	})
	require.NoError(t, err)

	_, err = svc.CheckOut(ctx, attendance.CheckOutRequest{
		EmployeeCode: "EMP001",
		At:           strPtr("2025-12-01T18:00:00Z"),
	})
	assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedOut)
}

func TestCheckOut_BeforeCheckIn(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestAttendanceService(t)
	seedEmployee(t, store, "EMP001")

	_, err := svc.CheckIn(ctx, attendance.CheckInRequest{
		EmployeeCode: "EMP001",
		At:           strPtr("2025-12-01T09:30:00Z"),
	})
	require.NoError(t, err)

	_, err = svc.CheckOut(ctx, attendance.CheckOutRequest{
		EmployeeCode: "EMP001",
		At:           strPtr("2025-12-01T09:00:00Z"),
	})
	assert.ErrorIs(t, err, attendance.ErrCheckOutBeforeCheckIn)
}

func TestMarkAbsent(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestAttendanceService(t)
	seedEmployee(t, store, "EMP001")

	rec, err := svc.MarkAbsent(ctx, attendance.MarkAbsentRequest{
		EmployeeCode: "EMP001",
		Date:         "2025-12-01",
	})
	require.NoError(t, err)
	assert.Equal(t, string(attendance.StatusAbsent), rec.Status)
	assert.Nil(t, rec.CheckIn)
	assert.Nil(t, rec.WorkingHours)
}

func TestMarkAbsent_IsIdempotent(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestAttendanceService(t)
	seedEmployee(t, store, "EMP001")

	first, err := svc.MarkAbsent(ctx, attendance.MarkAbsentRequest{
		EmployeeCode: "EMP001",
		Date:         "2025-12-01",
	})
	require.NoError(t, err)

	second, err := svc.MarkAbsent(ctx, attendance.MarkAbsentRequest{
		EmployeeCode: "EMP001",
		Date:         "2025-12-01",
	})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
}

func TestMarkAbsent_OverExistingRecordConflicts(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestAttendanceService(t)
	seedEmployee(t, store, "EMP001")

	_, err := svc.CheckIn(ctx, attendance.CheckInRequest{
		EmployeeCode: "EMP001",
		At:           strPtr("2025-12-01T08:30:00Z"),
	})
	require.NoError(t, err)

	_, err = svc.MarkAbsent(ctx, attendance.MarkAbsentRequest{
		EmployeeCode: "EMP001",
		Date:         "2025-12-01",
	})
	assert.ErrorIs(t, err, attendance.ErrRecordExists)
}

func TestSynthesizeOnLeave_SkipsExistingDates(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestAttendanceService(t)
	emp := seedEmployee(t, store, "EMP001")

	_, err := svc.CheckIn(ctx, attendance.CheckInRequest{
		EmployeeCode: "EMP001",
		At:           strPtr("2025-12-21T08:30:00Z"),
	})
	require.NoError(t, err)

	result, err := svc.SynthesizeOnLeave(ctx, emp.ID,
		time.Date(2025, 12, 20, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 12, 22, 0, 0, 0, 0, time.UTC),
	)
	require.NoError(t, err)

	assert.Equal(t, []string{"2025-12-20", "2025-12-22"}, result.Applied)
	assert.Equal(t, []string{"2025-12-21"}, result.Skipped)
}

func TestCheckIn_ConcurrentSameDayExactlyOneWins(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestAttendanceService(t)
	seedEmployee(t, store, "EMP001")

	const attempts = 8
	var wg sync.WaitGroup
	errs := make([]error, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.CheckIn(ctx, attendance.CheckInRequest{
				EmployeeCode: "EMP001",
				At:           strPtr("2025-12-01T08:30:00Z"),
			})
		}(i)
	}
	wg.Wait()

	successes := 0
	for _, err := range errs {
		if err == nil {
			successes++
		} else {
			assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedIn)
		}
	}
	assert.Equal(t, 1, successes)
}
