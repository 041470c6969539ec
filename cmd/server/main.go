package main

import (
	"log"
	"net/http"

	_ "cms/docs" // swagger docs

	"github.com/labstack/echo/v4"

	"cms/internal/auth"
	"cms/internal/cache"
	"cms/internal/config"
	"cms/internal/db"
	"cms/internal/errors"
	"cms/internal/handler"
	"cms/internal/model"
	"cms/internal/repository"
	"cms/internal/router"
	"cms/internal/service"
)

// @title College Management API
// @version 1.0
// @description Role-based academic administration API with department-scoped access control.
// @host localhost:5000
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()
	for _, warning := range cfg.Warnings() {
		log.Printf("config: %s", warning)
	}

	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = errors.HTTPErrorHandler

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Attendance{},
		&model.Exam{},
		&model.ExamSubject{},
		&model.Result{},
		&model.Assignment{},
		&model.Notification{},
		&model.TimetableEntry{},
		&model.LeaveRequest{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	attendanceRepo := repository.NewAttendanceRepository(gormDB)
	examRepo := repository.NewExamRepository(gormDB)
	resultRepo := repository.NewResultRepository(gormDB)
	assignmentRepo := repository.NewAssignmentRepository(gormDB)
	notificationRepo := repository.NewNotificationRepository(gormDB)
	timetableRepo := repository.NewTimetableRepository(gormDB)
	leaveRepo := repository.NewLeaveRepository(gormDB)

	// Initialize services
	jwtService := auth.NewJWTService(cfg.JWTSecret)
	attribution := service.NewAttributionResolver(userRepo, cacheClient)

	authService := service.NewAuthService(userRepo, jwtService, cfg.AdminUsername, cfg.AdminPassword)
	userService := service.NewUserService(userRepo, attribution)
	attendanceService := service.NewAttendanceService(attendanceRepo, userRepo, attribution)
	timetableService := service.NewTimetableService(timetableRepo, attribution)
	examService := service.NewExamService(examRepo, attribution)
	resultService := service.NewResultService(resultRepo, userRepo, examRepo, attribution)
	assignmentService := service.NewAssignmentService(assignmentRepo, attribution)
	notificationService := service.NewNotificationService(notificationRepo, attribution)
	leaveService := service.NewLeaveService(leaveRepo, attribution)
	dashboardService := service.NewDashboardService(
		userRepo, examRepo, assignmentRepo, notificationRepo, leaveRepo, attendanceRepo, resultRepo, cacheClient,
	)

	// Register routes
	router.Register(e, cfg, userRepo, router.Handlers{
		Auth:         handler.NewAuthHandler(authService),
		User:         handler.NewUserHandler(userService),
		Attendance:   handler.NewAttendanceHandler(attendanceService),
		Timetable:    handler.NewTimetableHandler(timetableService),
		Exam:         handler.NewExamHandler(examService),
		Result:       handler.NewResultHandler(resultService),
		Assignment:   handler.NewAssignmentHandler(assignmentService),
		Notification: handler.NewNotificationHandler(notificationService),
		Leave:        handler.NewLeaveHandler(leaveService),
		Dashboard:    handler.NewDashboardHandler(dashboardService),
	})

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
