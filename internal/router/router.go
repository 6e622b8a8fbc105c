package router

import (
	"database/sql"

	"tripdesk_backend/internal/handlers"
	"tripdesk_backend/internal/middleware"
	"tripdesk_backend/internal/repositories"
	"tripdesk_backend/internal/services"

	"github.com/gin-gonic/gin"
)

// Setup wires repositories, services, and handlers, and registers all routes
// under /api/v1.
func Setup(engine *gin.Engine, db *sql.DB) {
	// Repositories
	authRepo := repositories.NewAuthRepository(db)
	shiftRepo := repositories.NewShiftRepository(db)
	leaveRepo := repositories.NewLeaveRepository(db)
	reservationRepo := repositories.NewReservationRepository(db)
	navigationRepo := repositories.NewNavigationRepository(db)
	settingRepo := repositories.NewSettingRepository(db)
	txManager := repositories.NewTxManager(db)

	// Services
	authService := services.NewAuthService(authRepo, db)
	settingService := services.NewSettingService(settingRepo, db)
	shiftService := services.NewShiftService(shiftRepo, settingService, db)
	leaveService := services.NewLeaveService(leaveRepo, db)
	attendanceService := services.NewAttendanceService(shiftRepo, leaveRepo, settingService)
	reservationService := services.NewReservationService(reservationRepo, txManager)
	navigationService := services.NewNavigationService(navigationRepo)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	shiftHandler := handlers.NewShiftHandler(shiftService)
	leaveHandler := handlers.NewLeaveHandler(leaveService)
	attendanceHandler := handlers.NewAttendanceHandler(attendanceService)
	reservationHandler := handlers.NewReservationHandler(reservationService)
	navigationHandler := handlers.NewNavigationHandler(navigationService)
	settingHandler := handlers.NewSettingHandler(settingService)

	apiV1 := engine.Group("/api/v1")

	SetupAuthRoutes(apiV1, authHandler)

	authenticated := apiV1.Group("")
	authenticated.Use(middleware.AuthMiddleware())
	{
		SetupShiftRoutes(authenticated, shiftHandler)
		SetupLeaveRoutes(authenticated, leaveHandler)
		SetupAttendanceRoutes(authenticated, attendanceHandler)
		SetupReservationRoutes(authenticated, reservationHandler)
		SetupNavigationRoutes(authenticated, navigationHandler)
		SetupSettingRoutes(authenticated, settingHandler)
	}
}
