package router

import (
	"staffdesk_backend/internal/handlers"

	"github.com/gin-gonic/gin"
)

// SetupStaffRoutes sets up the staff directory routes.
func SetupStaffRoutes(apiGroup *gin.RouterGroup, staffHandler *handlers.StaffHandler) {
	staffRoutes := apiGroup.Group("/staff")
	{
		staffRoutes.POST("", staffHandler.CreateStaff)
		staffRoutes.GET("", staffHandler.GetStaff)
		staffRoutes.GET("/:id", staffHandler.GetStaffByID)
		staffRoutes.PUT("/:id", staffHandler.UpdateStaff)
		staffRoutes.PATCH("/:id/favourite", staffHandler.SetFavourite)
		staffRoutes.DELETE("/:id", staffHandler.DeleteStaff)
	}
}

// SetupScheduleRoutes sets up the schedule and week-grid routes.
func SetupScheduleRoutes(apiGroup *gin.RouterGroup, scheduleHandler *handlers.ScheduleHandler) {
	scheduleRoutes := apiGroup.Group("/schedules")
	{
		scheduleRoutes.POST("", scheduleHandler.CreateSchedule)
		scheduleRoutes.GET("", scheduleHandler.GetSchedules)
		scheduleRoutes.GET("/week", scheduleHandler.GetWeekGrid)
		scheduleRoutes.GET("/:id", scheduleHandler.GetScheduleByID)
		scheduleRoutes.PUT("/:id", scheduleHandler.UpdateSchedule)
		scheduleRoutes.DELETE("/:id", scheduleHandler.DeleteSchedule)
	}
}

// SetupDashboardRoutes sets up the dashboard routes.
func SetupDashboardRoutes(apiGroup *gin.RouterGroup, dashboardHandler *handlers.DashboardHandler) {
	dashboardRoutes := apiGroup.Group("/dashboard")
	{
		dashboardRoutes.GET("/summary", dashboardHandler.GetSummary)
	}
}
