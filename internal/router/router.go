package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"cms/internal/auth"
	"cms/internal/config"
	"cms/internal/handler"
	"cms/internal/identity"
	"cms/internal/model"
	"cms/internal/policy"
	"cms/internal/repository"
)

// Handlers bundles the HTTP handlers the router wires up.
type Handlers struct {
	Auth         *handler.AuthHandler
	User         *handler.UserHandler
	Attendance   *handler.AttendanceHandler
	Timetable    *handler.TimetableHandler
	Exam         *handler.ExamHandler
	Result       *handler.ResultHandler
	Assignment   *handler.AssignmentHandler
	Notification *handler.NotificationHandler
	Leave        *handler.LeaveHandler
	Dashboard    *handler.DashboardHandler
}

// Register wires routes and middleware.
func Register(e *echo.Echo, cfg *config.Config, users repository.UserRepository, h Handlers) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{cfg.FrontendURL},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete},
	}))

	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// Public routes
	api.POST("/auth/register", h.Auth.Register)
	api.POST("/auth/login", h.Auth.Login)
	api.POST("/auth/admin/login", h.Auth.AdminLogin)

	// Secured routes: token validation, identity resolution, then the
	// account status gate. Role gates attach per route.
	secured := api.Group("",
		echojwt.WithConfig(echojwt.Config{
			SigningKey: []byte(cfg.JWTSecret),
			NewClaimsFunc: func(c echo.Context) jwt.Claims {
				return new(auth.Claims)
			},
			ErrorHandler: identity.JWTErrorHandler,
		}),
		identity.Middleware(users),
		policy.StatusGate(),
	)

	adminOnly := policy.RoleGate(model.RoleAdmin)
	staff := policy.RoleGate(model.RoleTeacher, model.RoleHOD, model.RoleAdmin)
	hodAdmin := policy.RoleGate(model.RoleHOD, model.RoleAdmin)

	secured.GET("/auth/me", h.Auth.Me)
	secured.POST("/auth/change-password", h.Auth.ChangePassword)

	// User routes
	secured.GET("/users/profile", h.User.Profile)
	secured.PUT("/users/profile", h.User.UpdateProfile)
	secured.GET("/users/by-role", h.User.ByRole)
	secured.GET("/users", h.User.List, adminOnly)
	secured.GET("/users/pending", h.User.Pending, adminOnly)
	secured.PATCH("/users/:id/status", h.User.UpdateStatus, adminOnly)

	// Attendance routes
	secured.POST("/attendance", h.Attendance.Mark, staff)
	secured.GET("/attendance", h.Attendance.List)
	secured.GET("/attendance/stats", h.Attendance.Stats)

	// Timetable routes
	secured.POST("/timetable", h.Timetable.Upsert, hodAdmin)
	secured.GET("/timetable", h.Timetable.List)
	secured.DELETE("/timetable/:id", h.Timetable.Delete, hodAdmin)

	// Exam routes
	secured.POST("/exams", h.Exam.Create, staff)
	secured.GET("/exams", h.Exam.List)
	secured.GET("/exams/:id", h.Exam.Get)
	secured.PUT("/exams/:id", h.Exam.Update, staff)
	secured.DELETE("/exams/:id", h.Exam.Delete, hodAdmin)

	// Result routes
	secured.POST("/results", h.Result.Add, staff)
	secured.GET("/results", h.Result.List)
	secured.GET("/results/:id", h.Result.Get)
	secured.DELETE("/results/:id", h.Result.Delete, hodAdmin)

	// Assignment routes
	secured.POST("/assignments", h.Assignment.Create, staff)
	secured.GET("/assignments", h.Assignment.List)
	secured.GET("/assignments/:id", h.Assignment.Get)
	secured.PUT("/assignments/:id", h.Assignment.Update, staff)
	secured.DELETE("/assignments/:id", h.Assignment.Delete, hodAdmin)

	// Notification routes
	secured.POST("/notifications", h.Notification.Create, hodAdmin)
	secured.GET("/notifications", h.Notification.List)
	secured.GET("/notifications/:id", h.Notification.Get)
	secured.PUT("/notifications/:id", h.Notification.Update, hodAdmin)
	secured.DELETE("/notifications/:id", h.Notification.Delete, hodAdmin)

	// Leave routes
	secured.POST("/leaves", h.Leave.Create)
	secured.GET("/leaves", h.Leave.List)
	secured.GET("/leaves/my", h.Leave.Mine)
	secured.GET("/leaves/:id", h.Leave.Get)
	secured.PATCH("/leaves/:id/review", h.Leave.Review, hodAdmin)
	secured.DELETE("/leaves/:id", h.Leave.Delete)

	// Dashboard
	secured.GET("/dashboard", h.Dashboard.Stats)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
