package router

import (
	"tripdesk_backend/internal/handlers"
	"tripdesk_backend/internal/middleware"
	"tripdesk_backend/internal/models"

	"github.com/gin-gonic/gin"
)

// SetupAuthRoutes sets up the authentication routes. Register, login, and
// refresh are public; profile requires a token.
func SetupAuthRoutes(apiGroup *gin.RouterGroup, authHandler *handlers.AuthHandler) {
	authRoutes := apiGroup.Group("/auth")
	{
		authRoutes.POST("/register", authHandler.Register)
		authRoutes.POST("/login", authHandler.Login)
		authRoutes.POST("/refresh-token", authHandler.Refresh)

		authRequired := authRoutes.Group("")
		authRequired.Use(middleware.AuthMiddleware())
		{
			authRequired.GET("/me", authHandler.Profile)
		}
	}
}

// SetupShiftRoutes sets up the shift and break routes. The clock-in/out and
// break endpoints act on the caller's own shift; record-level CRUD is for
// admins and managers.
func SetupShiftRoutes(authenticatedGroup *gin.RouterGroup, shiftHandler *handlers.ShiftHandler) {
	shiftRoutes := authenticatedGroup.Group("/shifts")
	{
		shiftRoutes.POST("/start", shiftHandler.StartShift)
		shiftRoutes.POST("/end", shiftHandler.EndShift)
		shiftRoutes.GET("/status", shiftHandler.ShiftStatus)

		adminRoutes := shiftRoutes.Group("")
		adminRoutes.Use(middleware.RoleAuthMiddleware(models.RoleAdmin, models.RoleManager))
		{
			adminRoutes.POST("", shiftHandler.CreateShiftRecord)
			adminRoutes.GET("", shiftHandler.GetShifts)
			adminRoutes.GET("/:id", shiftHandler.GetShiftByID)
			adminRoutes.PUT("/:id", shiftHandler.UpdateShift)
			adminRoutes.DELETE("/:id", shiftHandler.DeleteShift)
		}
	}

	breakRoutes := authenticatedGroup.Group("/breaks")
	{
		breakRoutes.POST("/start", shiftHandler.StartBreak)
		breakRoutes.POST("/end", shiftHandler.EndBreak)
		breakRoutes.POST("/:id/end", shiftHandler.EndBreakByID)
	}
}

// SetupLeaveRoutes sets up the leave request routes. Anyone may file and list;
// review requires admin or manager; delete requires admin.
func SetupLeaveRoutes(authenticatedGroup *gin.RouterGroup, leaveHandler *handlers.LeaveHandler) {
	leaveRoutes := authenticatedGroup.Group("/leave-requests")
	{
		leaveRoutes.POST("", leaveHandler.CreateLeave)
		leaveRoutes.GET("", leaveHandler.GetLeaves)
		leaveRoutes.GET("/:id", leaveHandler.GetLeaveByID)
		leaveRoutes.PUT("/:id", middleware.RoleAuthMiddleware(models.RoleAdmin, models.RoleManager), leaveHandler.ReviewLeave)
		leaveRoutes.DELETE("/:id", middleware.RoleAuthMiddleware(models.RoleAdmin), leaveHandler.DeleteLeave)
	}

	// Approved leaves in range, consumed by the attendance calendar view.
	authenticatedGroup.GET("/get_leaves", leaveHandler.GetApprovedLeaves)
}

// SetupAttendanceRoutes sets up the attendance calendar route.
func SetupAttendanceRoutes(authenticatedGroup *gin.RouterGroup, attendanceHandler *handlers.AttendanceHandler) {
	authenticatedGroup.GET("/attendance", attendanceHandler.GetAttendance)
}

// SetupReservationRoutes sets up the reservation routes. Reservations are
// managed by admins and managers.
func SetupReservationRoutes(authenticatedGroup *gin.RouterGroup, reservationHandler *handlers.ReservationHandler) {
	reservationRoutes := authenticatedGroup.Group("/reservations")
	reservationRoutes.Use(middleware.RoleAuthMiddleware(models.RoleAdmin, models.RoleManager))
	{
		reservationRoutes.POST("", reservationHandler.CreateReservation)
		reservationRoutes.GET("", reservationHandler.GetReservations)
		reservationRoutes.GET("/:id", reservationHandler.GetReservationByID)
		reservationRoutes.PUT("/:id", reservationHandler.UpdateReservation)
		reservationRoutes.DELETE("/:id", reservationHandler.DeleteReservation)
	}
}

// SetupNavigationRoutes sets up the navigation tree route.
func SetupNavigationRoutes(authenticatedGroup *gin.RouterGroup, navigationHandler *handlers.NavigationHandler) {
	authenticatedGroup.GET("/navigation", navigationHandler.GetNavigation)
}

// SetupSettingRoutes sets up the application settings routes. Reads of the
// effective attendance policy are open to all authenticated users; raw
// settings CRUD is admin only.
func SetupSettingRoutes(authenticatedGroup *gin.RouterGroup, settingHandler *handlers.SettingHandler) {
	authenticatedGroup.GET("/settings/attendance-policy", settingHandler.GetAttendancePolicy)

	settingRoutes := authenticatedGroup.Group("/settings")
	settingRoutes.Use(middleware.RoleAuthMiddleware(models.RoleAdmin))
	{
		settingRoutes.GET("", settingHandler.GetSettings)
		settingRoutes.GET("/:key", settingHandler.GetSettingByKey)
		settingRoutes.POST("", settingHandler.UpsertSetting)
		settingRoutes.DELETE("/:key", settingHandler.DeleteSetting)
	}
}
