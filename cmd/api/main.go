package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/clockwise-hr/timeclock-backend-go/internal/config"
	appHTTP "github.com/clockwise-hr/timeclock-backend-go/internal/handler/http"
	"github.com/clockwise-hr/timeclock-backend-go/internal/pkg/cron"
	"github.com/clockwise-hr/timeclock-backend-go/internal/pkg/database"
	"github.com/clockwise-hr/timeclock-backend-go/internal/pkg/jwt"
	"github.com/clockwise-hr/timeclock-backend-go/internal/pkg/leaveapi"
	"github.com/clockwise-hr/timeclock-backend-go/internal/repository/postgresql"
	attendanceService "github.com/clockwise-hr/timeclock-backend-go/internal/service/attendance"
	employeeService "github.com/clockwise-hr/timeclock-backend-go/internal/service/employee"
	punchService "github.com/clockwise-hr/timeclock-backend-go/internal/service/punch"
	reportService "github.com/clockwise-hr/timeclock-backend-go/internal/service/report"
	scheduleService "github.com/clockwise-hr/timeclock-backend-go/internal/service/schedule"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	var logLevel slog.Level
	if err := logLevel.UnmarshalText([]byte(cfg.App.LogLevel)); err != nil {
		logLevel = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})).With(
		slog.String("app", "timeclock-backend"),
	)

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}
	defer db.Close()

	location, err := time.LoadLocation(cfg.App.Timezone)
	if err != nil {
		fmt.Println("Error loading timezone:", err)
		return
	}

	employeeRepo := postgresql.NewEmployeeRepository(db)
	templateRepo := postgresql.NewScheduleTemplateRepository(db)
	segmentRepo := postgresql.NewSegmentRepository(db)
	assignmentRepo := postgresql.NewScheduleAssignmentRepository(db)
	holidayRepo := postgresql.NewHolidayRepository(db)
	punchRepo := postgresql.NewPunchRepository(db)
	dailyRecordRepo := postgresql.NewDailyRecordRepository(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	justificationOracle := leaveapi.NewClient(cfg.Justification)

	scheduleSvc := scheduleService.NewScheduleService(templateRepo, segmentRepo, assignmentRepo, holidayRepo)
	attendanceSvc := attendanceService.NewAttendanceService(
		dailyRecordRepo,
		punchRepo,
		employeeRepo,
		scheduleSvc,
		holidayRepo,
		justificationOracle,
		logger,
		cfg.Recompute.Workers,
	)
	reportSvc := reportService.NewReportService(dailyRecordRepo, employeeRepo, attendanceSvc, scheduleSvc, logger)
	employeeSvc := employeeService.NewEmployeeService(employeeRepo)
	punchSvc := punchService.NewPunchService(punchRepo)

	authHandler := appHTTP.NewAuthHandler(jwtService, cfg.JWT.APIKeyHash)
	employeeHandler := appHTTP.NewEmployeeHandler(employeeSvc)
	punchHandler := appHTTP.NewPunchHandler(punchSvc)
	scheduleHandler := appHTTP.NewScheduleHandler(scheduleSvc)
	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc)
	reportHandler := appHTTP.NewReportHandler(reportSvc)

	router := appHTTP.NewRouter(
		cfg,
		jwtService,
		authHandler,
		employeeHandler,
		punchHandler,
		scheduleHandler,
		attendanceHandler,
		reportHandler,
	)

	scheduler := cron.NewScheduler()
	cron.NewAttendanceJobs(attendanceSvc, location).RegisterJobs(scheduler)
	scheduler.Start()
	defer scheduler.Stop()

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
