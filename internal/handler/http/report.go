package http

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/attendly-hq/attendance-backend-go/internal/domain/report"
	"github.com/attendly-hq/attendance-backend-go/internal/handler/http/response"
	"github.com/attendly-hq/attendance-backend-go/internal/pkg/validator"
	"github.com/go-chi/chi/v5"
)

const defaultRankingLimit = 10

type ReportHandler interface {
	DailySummary(w http.ResponseWriter, r *http.Request)
	DepartmentStats(w http.ResponseWriter, r *http.Request)
	PunctualityRanking(w http.ResponseWriter, r *http.Request)
	MonthlySummary(w http.ResponseWriter, r *http.Request)
	MonthlyCSV(w http.ResponseWriter, r *http.Request)
}

type reportHandlerImpl struct {
	reportService report.ReportService
}

func NewReportHandler(reportService report.ReportService) ReportHandler {
	return &reportHandlerImpl{
		reportService: reportService,
	}
}

// DailySummary implements ReportHandler
func (h *reportHandlerImpl) DailySummary(w http.ResponseWriter, r *http.Request) {
	dateParam := r.URL.Query().Get("date")
	if dateParam == "" {
		response.BadRequest(w, "Query parameter 'date' is required", nil)
		return
	}
	date, ok := validator.IsValidDate(dateParam)
	if !ok {
		response.BadRequest(w, "date must be in format YYYY-MM-DD", nil)
		return
	}

	result, err := h.reportService.DailySummary(r.Context(), date)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// DepartmentStats implements ReportHandler
func (h *reportHandlerImpl) DepartmentStats(w http.ResponseWriter, r *http.Request) {
	department := chi.URLParam(r, "department")
	if department == "" {
		response.BadRequest(w, "Department is required", nil)
		return
	}

	rng, ok := dateRangeFromQuery(w, r)
	if !ok {
		return
	}

	result, err := h.reportService.DepartmentStats(r.Context(), department, rng)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// PunctualityRanking implements ReportHandler
func (h *reportHandlerImpl) PunctualityRanking(w http.ResponseWriter, r *http.Request) {
	rng, ok := dateRangeFromQuery(w, r)
	if !ok {
		return
	}

	limit := defaultRankingLimit
	if l := r.URL.Query().Get("limit"); l != "" {
		parsed, err := strconv.Atoi(l)
		if err != nil {
			response.ValidationError(w, map[string]string{
				"limit": "limit must be an integer",
			})
			return
		}
		limit = parsed
	}

	result, err := h.reportService.PunctualityRanking(r.Context(), rng, limit)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// MonthlySummary implements ReportHandler
func (h *reportHandlerImpl) MonthlySummary(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")
	if code == "" {
		response.BadRequest(w, "Employee code is required", nil)
		return
	}

	year, month, ok := yearMonthFromQuery(w, r)
	if !ok {
		return
	}

	result, err := h.reportService.MonthlySummary(r.Context(), code, year, month)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// MonthlyCSV implements ReportHandler
func (h *reportHandlerImpl) MonthlyCSV(w http.ResponseWriter, r *http.Request) {
	year, month, ok := yearMonthFromQuery(w, r)
	if !ok {
		return
	}

	rows, err := h.reportService.MonthlyRecords(r.Context(), year, month)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=attendance_%d_%02d.csv", year, int(month)))

	writer := csv.NewWriter(w)
	_ = writer.Write([]string{"Employee Code", "Name", "Date", "Check In", "Check Out", "Hours", "Status"})
	for _, row := range rows {
		_ = writer.Write([]string{
			row.EmployeeCode,
			row.EmployeeName,
			row.Date,
			row.CheckIn,
			row.CheckOut,
			row.Hours,
			row.Status,
		})
	}
	writer.Flush()
}

// yearMonthFromQuery reads year/month query parameters, defaulting to the
// current month.
func yearMonthFromQuery(w http.ResponseWriter, r *http.Request) (int, time.Month, bool) {
	now := time.Now().UTC()
	year := now.Year()
	month := now.Month()

	query := r.URL.Query()
	if y := query.Get("year"); y != "" {
		parsed, err := strconv.Atoi(y)
		if err != nil {
			response.ValidationError(w, map[string]string{
				"year": "year must be an integer",
			})
			return 0, 0, false
		}
		year = parsed
	}
	if m := query.Get("month"); m != "" {
		parsed, err := strconv.Atoi(m)
		if err != nil || parsed < 1 || parsed > 12 {
			response.ValidationError(w, map[string]string{
				"month": "month must be an integer between 1 and 12",
			})
			return 0, 0, false
		}
		month = time.Month(parsed)
	}

	return year, month, true
}

func dateRangeFromQuery(w http.ResponseWriter, r *http.Request) (report.DateRange, bool) {
	query := r.URL.Query()

	fromParam := query.Get("date_from")
	toParam := query.Get("date_to")
	if fromParam == "" || toParam == "" {
		response.BadRequest(w, "Query parameters 'date_from' and 'date_to' are required", nil)
		return report.DateRange{}, false
	}

	from, ok := validator.IsValidDate(fromParam)
	if !ok {
		response.BadRequest(w, "date_from must be in format YYYY-MM-DD", nil)
		return report.DateRange{}, false
	}
	to, ok := validator.IsValidDate(toParam)
	if !ok {
		response.BadRequest(w, "date_to must be in format YYYY-MM-DD", nil)
		return report.DateRange{}, false
	}

	return report.DateRange{From: from, To: to}, true
}
