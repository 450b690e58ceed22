package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
)

func NewRouter(
	env string,
	employeeHandler EmployeeHandler,
	attendanceHandler AttendanceHandler,
	leaveHandler LeaveHandler,
	reportHandler ReportHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "attendance-backend"),
		slog.String("version", "v1.0.0"),
		slog.String("env", env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/employees", func(r chi.Router) {
			r.Get("/", employeeHandler.ListEmployees)
			r.Post("/", employeeHandler.CreateEmployee)
			r.Route("/{code}", func(r chi.Router) {
				r.Get("/", employeeHandler.GetEmployee)
				r.Put("/", employeeHandler.UpdateEmployee)
				r.Patch("/deactivate", employeeHandler.DeactivateEmployee)
			})
		})

		r.Route("/attendance", func(r chi.Router) {
			r.Get("/", attendanceHandler.ListRecords)
			r.Post("/check-in", attendanceHandler.CheckIn)
			r.Patch("/check-out", attendanceHandler.CheckOut)
			r.Post("/mark-absent", attendanceHandler.MarkAbsent)
		})

		r.Route("/leaves", func(r chi.Router) {
			r.Get("/", leaveHandler.ListLeaves)
			r.Post("/", leaveHandler.SubmitLeave)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", leaveHandler.GetLeave)
				r.Delete("/", leaveHandler.DeleteLeave)
				r.Patch("/approve", leaveHandler.ApproveLeave)
				r.Patch("/reject", leaveHandler.RejectLeave)
			})
		})

		r.Route("/reports", func(r chi.Router) {
			r.Get("/daily-summary", reportHandler.DailySummary)
			r.Get("/department/{department}/attendance", reportHandler.DepartmentStats)
			r.Get("/punctuality-ranking", reportHandler.PunctualityRanking)
			r.Get("/employee/{code}/monthly-summary", reportHandler.MonthlySummary)
			r.Get("/monthly-csv", reportHandler.MonthlyCSV)
		})
	})
	return r
}
