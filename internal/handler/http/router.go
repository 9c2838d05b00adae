package http

import (
	"log/slog"
	"os"

	"github.com/clockwise-hr/timeclock-backend-go/internal/config"
	"github.com/clockwise-hr/timeclock-backend-go/internal/handler/http/middleware"
	"github.com/clockwise-hr/timeclock-backend-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

func NewRouter(
	cfg *config.Config,
	jwtService jwt.Service,
	authHandler AuthHandler,
	employeeHandler EmployeeHandler,
	punchHandler PunchHandler,
	scheduleHandler ScheduleHandler,
	attendanceHandler AttendanceHandler,
	reportHandler ReportHandler,
) *chi.Mux {
	r := chi.NewRouter()

	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "timeclock-backend"),
		slog.String("env", cfg.App.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
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
	r.Use(chiMiddleware.Heartbeat("/health"))

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/token", authHandler.Token)
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Route("/employees", func(r chi.Router) {
				r.Post("/", employeeHandler.Create)
				r.Get("/", employeeHandler.List)
				r.Get("/{id}", employeeHandler.Get)
				r.Get("/{employeeID}/assignments", scheduleHandler.ListAssignments)
				r.Get("/{employeeID}/attendance", attendanceHandler.ListRange)
				r.Get("/{employeeID}/attendance/{date}", attendanceHandler.GetDailyRecord)
			})

			r.Route("/punches", func(r chi.Router) {
				r.Post("/", punchHandler.Ingest)
				r.Get("/", punchHandler.List)
			})

			r.Route("/schedules", func(r chi.Router) {
				r.Post("/", scheduleHandler.CreateTemplate)
				r.Get("/", scheduleHandler.ListTemplates)
				r.Get("/{id}", scheduleHandler.GetTemplate)
				r.Delete("/{id}", scheduleHandler.DeleteTemplate)
				r.Post("/{id}/segments", scheduleHandler.AddSegments)
				r.Delete("/segments/{segmentID}", scheduleHandler.DeleteSegment)
			})

			r.Route("/assignments", func(r chi.Router) {
				r.Post("/", scheduleHandler.AssignSchedule)
				r.Delete("/{id}", scheduleHandler.DeleteAssignment)
			})

			r.Route("/holidays", func(r chi.Router) {
				r.Post("/", scheduleHandler.CreateHoliday)
				r.Get("/", scheduleHandler.ListHolidays)
				r.Delete("/{id}", scheduleHandler.DeleteHoliday)
			})

			r.Route("/attendance", func(r chi.Router) {
				r.Post("/recompute", attendanceHandler.RecomputeRange)
			})

			r.Route("/reports", func(r chi.Router) {
				r.Get("/matrix", reportHandler.MonthlyMatrix)
			})
		})
	})

	return r
}
