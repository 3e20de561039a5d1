package router

import (
	"database/sql"

	"staffdesk_backend/internal/handlers"
	"staffdesk_backend/internal/repositories"
	"staffdesk_backend/internal/services"

	"github.com/gin-gonic/gin"
)

// Setup initializes the routing for the application.
func Setup(engine *gin.Engine, db *sql.DB) {
	// Initialize Repositories
	staffRepo := repositories.NewStaffRepository(db)
	scheduleRepo := repositories.NewScheduleRepository(db)
	dashboardRepo := repositories.NewDashboardRepository(db)

	// Initialize Services
	staffService := services.NewStaffService(staffRepo, db)
	scheduleService := services.NewScheduleService(scheduleRepo, staffRepo, db)
	calendarService := services.NewCalendarService(scheduleRepo, staffRepo)
	dashboardService := services.NewDashboardService(dashboardRepo)

	// Initialize Handlers
	staffHandler := handlers.NewStaffHandler(staffService)
	scheduleHandler := handlers.NewScheduleHandler(scheduleService, calendarService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)

	apiV1 := engine.Group("/api/v1")
	{
		SetupStaffRoutes(apiV1, staffHandler)
		SetupScheduleRoutes(apiV1, scheduleHandler)
		SetupDashboardRoutes(apiV1, dashboardHandler)
	}
}
