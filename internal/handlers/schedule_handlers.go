package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"staffdesk_backend/internal/models"
	"staffdesk_backend/internal/services"
	"staffdesk_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// ScheduleHandler holds the schedule and calendar services.
type ScheduleHandler struct {
	scheduleService services.ScheduleService
	calendarService services.CalendarService
}

// NewScheduleHandler creates a new ScheduleHandler.
func NewScheduleHandler(scs services.ScheduleService, cs services.CalendarService) *ScheduleHandler {
	return &ScheduleHandler{scheduleService: scs, calendarService: cs}
}

func respondScheduleMutationError(c *gin.Context, err error, action string) {
	switch {
	case errors.Is(err, services.ErrScheduleValidation), errors.Is(err, services.ErrScheduleTimeFormat):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Validation failed: "+err.Error(), err.Error()))
	case errors.Is(err, services.ErrStaffForScheduleNotFound):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeBadRequest, "Staff member for schedule not found.", err.Error()))
	case errors.Is(err, services.ErrScheduleConflict):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, "This staff member already has a shift scheduled during this time period.", err.Error()))
	case errors.Is(err, services.ErrScheduleNotFound):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Schedule not found.", err.Error()))
	default:
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to "+action+" schedule.", "Internal error"))
	}
}

// CreateSchedule handles the creation of a new shift schedule.
func (h *ScheduleHandler) CreateSchedule(c *gin.Context) {
	var req services.CreateScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError(err, "CreateSchedule: Failed to bind JSON")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	schedule, err := h.scheduleService.CreateSchedule(req)
	if err != nil {
		utils.LogError(err, "CreateSchedule: Error from scheduleService.CreateSchedule")
		respondScheduleMutationError(c, err, "create")
		return
	}
	c.JSON(http.StatusCreated, schedule)
}

// GetSchedules handles fetching schedules with pagination and filters.
func (h *ScheduleHandler) GetSchedules(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 10
	}

	filters := models.ScheduleFilters{Page: page, PageSize: pageSize}
	if search := c.Query("search"); search != "" {
		filters.Search = &search
	}
	if staffIDStr := c.Query("staff_id"); staffIDStr != "" {
		staffID, err := utils.StrToInt64(staffIDStr)
		if err != nil {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid staff_id format.", err.Error()))
			return
		}
		filters.StaffID = &staffID
	}

	schedules, totalCount, err := h.scheduleService.GetSchedules(filters)
	if err != nil {
		utils.LogError(err, "GetSchedules: Error from scheduleService.GetSchedules")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch schedules.", "Internal error"))
		return
	}

	if schedules == nil {
		schedules = []models.Schedule{}
	}

	c.JSON(http.StatusOK, gin.H{
		"data": schedules,
		"meta": models.NewPaginationMeta(totalCount, page, pageSize),
	})
}

// GetScheduleByID handles fetching a single schedule by ID.
func (h *ScheduleHandler) GetScheduleByID(c *gin.Context) {
	scheduleID, ok := parseIDParam(c)
	if !ok {
		return
	}

	schedule, err := h.scheduleService.GetScheduleByID(scheduleID)
	if err != nil {
		utils.LogError(err, "GetScheduleByID: Error from scheduleService.GetScheduleByID")
		if errors.Is(err, services.ErrScheduleNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Schedule not found.", err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch schedule.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, schedule)
}

// UpdateSchedule handles updating a schedule.
func (h *ScheduleHandler) UpdateSchedule(c *gin.Context) {
	scheduleID, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req services.UpdateScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError(err, "UpdateSchedule: Failed to bind JSON")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	schedule, err := h.scheduleService.UpdateSchedule(scheduleID, req)
	if err != nil {
		utils.LogError(err, "UpdateSchedule: Error from scheduleService.UpdateSchedule")
		respondScheduleMutationError(c, err, "update")
		return
	}
	c.JSON(http.StatusOK, schedule)
}

// DeleteSchedule handles deleting a schedule.
func (h *ScheduleHandler) DeleteSchedule(c *gin.Context) {
	scheduleID, ok := parseIDParam(c)
	if !ok {
		return
	}

	err := h.scheduleService.DeleteSchedule(scheduleID)
	if err != nil {
		utils.LogError(err, "DeleteSchedule: Error from scheduleService.DeleteSchedule")
		if errors.Is(err, services.ErrScheduleNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Failed to delete schedule. It may have already been removed.", err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to delete schedule.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Schedule deleted successfully"})
}

// GetWeekGrid handles the weekly scheduler view. The date query parameter
// anchors the week; it is snapped back to Monday.
func (h *ScheduleHandler) GetWeekGrid(c *gin.Context) {
	grid, err := h.calendarService.GetWeekGrid(c.Query("date"))
	if err != nil {
		utils.LogError(err, "GetWeekGrid: Error from calendarService.GetWeekGrid")
		if errors.Is(err, services.ErrGridDateFormat) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid date format, please use YYYY-MM-DD.", err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to build week grid.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, grid)
}
