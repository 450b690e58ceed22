package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/attendly-hq/attendance-backend-go/internal/config"
	appHTTP "github.com/attendly-hq/attendance-backend-go/internal/handler/http"
	"github.com/attendly-hq/attendance-backend-go/internal/pkg/database"
	"github.com/attendly-hq/attendance-backend-go/internal/repository/postgresql"
	attendanceService "github.com/attendly-hq/attendance-backend-go/internal/service/attendance"
	employeeService "github.com/attendly-hq/attendance-backend-go/internal/service/employee"
	leaveService "github.com/attendly-hq/attendance-backend-go/internal/service/leave"
	reportService "github.com/attendly-hq/attendance-backend-go/internal/service/report"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	dsn := cfg.DatabaseURL()
	db, err := database.NewPostgreSQLDB(dsn, cfg.Database.MaxConns, cfg.Database.MinConns)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	employeeRepo := postgresql.NewEmployeeRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	leaveRequestRepo := postgresql.NewLeaveRequestRepository(db)
	txManager := postgresql.NewTransactionManager(db)

	employeeSvc := employeeService.NewEmployeeService(employeeRepo)
	attendanceSvc, err := attendanceService.NewAttendanceService(
		attendanceRepo,
		employeeRepo,
		cfg.Attendance.Cutoff,
	)
	if err != nil {
		log.Fatal("Failed to initialize attendance service:", err)
	}
	leaveSvc := leaveService.NewLeaveService(leaveRequestRepo, employeeRepo, attendanceSvc, txManager)
	reportSvc := reportService.NewReportService(
		attendanceRepo,
		employeeRepo,
		cfg.Attendance.ExcludeWeekends,
	)

	employeeHandler := appHTTP.NewEmployeeHandler(employeeSvc)
	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc)
	leaveHandler := appHTTP.NewLeaveHandler(leaveSvc)
	reportHandler := appHTTP.NewReportHandler(reportSvc)

	router := appHTTP.NewRouter(
		cfg.App.Env,
		employeeHandler,
		attendanceHandler,
		leaveHandler,
		reportHandler,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
