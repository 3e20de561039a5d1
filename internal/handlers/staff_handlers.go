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

// StaffHandler holds the staff service.
type StaffHandler struct {
	staffService services.StaffService
}

// NewStaffHandler creates a new StaffHandler.
func NewStaffHandler(ss services.StaffService) *StaffHandler {
	return &StaffHandler{staffService: ss}
}

func parseIDParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid ID format.", err.Error()))
		return 0, false
	}
	return id, true
}

// CreateStaff handles the creation of a new staff member.
func (h *StaffHandler) CreateStaff(c *gin.Context) {
	var req services.CreateStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError(err, "CreateStaff: Failed to bind JSON")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	staff, err := h.staffService.CreateStaff(req)
	if err != nil {
		utils.LogError(err, "CreateStaff: Error from staffService.CreateStaff")
		if errors.Is(err, services.ErrStaffDataValidation) || errors.Is(err, services.ErrDOBFormat) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Validation failed: "+err.Error(), err.Error()))
		} else if errors.Is(err, services.ErrStaffDuplicate) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, "Duplicate value exists.", err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to create staff member.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusCreated, staff)
}

// GetStaff handles fetching the staff directory with pagination, search and
// status filtering.
func (h *StaffHandler) GetStaff(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 10
	}

	filters := models.StaffFilters{Page: page, PageSize: pageSize}
	if search := c.Query("search"); search != "" {
		filters.Search = &search
	}
	if status := c.Query("status"); status != "" {
		filters.Status = &status
	}

	staffList, totalCount, err := h.staffService.GetStaff(filters)
	if err != nil {
		utils.LogError(err, "GetStaff: Error from staffService.GetStaff")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch staff members.", "Internal error"))
		return
	}

	if staffList == nil {
		staffList = []models.Staff{}
	}

	c.JSON(http.StatusOK, gin.H{
		"data": staffList,
		"meta": models.NewPaginationMeta(totalCount, page, pageSize),
	})
}

// GetStaffByID handles fetching a single staff member by ID.
func (h *StaffHandler) GetStaffByID(c *gin.Context) {
	staffID, ok := parseIDParam(c)
	if !ok {
		return
	}

	staff, err := h.staffService.GetStaffByID(staffID)
	if err != nil {
		utils.LogError(err, "GetStaffByID: Error from staffService.GetStaffByID")
		if errors.Is(err, services.ErrStaffNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Staff member not found.", err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch staff member.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, staff)
}

// UpdateStaff handles updating a staff member.
func (h *StaffHandler) UpdateStaff(c *gin.Context) {
	staffID, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req services.UpdateStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError(err, "UpdateStaff: Failed to bind JSON")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	staff, err := h.staffService.UpdateStaff(staffID, req)
	if err != nil {
		utils.LogError(err, "UpdateStaff: Error from staffService.UpdateStaff")
		if errors.Is(err, services.ErrStaffNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Staff member not found to update.", err.Error()))
		} else if errors.Is(err, services.ErrStaffDataValidation) || errors.Is(err, services.ErrDOBFormat) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Validation failed: "+err.Error(), err.Error()))
		} else if errors.Is(err, services.ErrStaffDuplicate) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, "Duplicate value exists.", err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to update staff member.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, staff)
}

// SetFavourite handles toggling the favourite flag on a staff member.
func (h *StaffHandler) SetFavourite(c *gin.Context) {
	staffID, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req struct {
		IsFavourite *bool `json:"is_favourite" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: is_favourite is required.", err.Error()))
		return
	}

	staff, err := h.staffService.SetFavourite(staffID, *req.IsFavourite)
	if err != nil {
		utils.LogError(err, "SetFavourite: Error from staffService.SetFavourite")
		if errors.Is(err, services.ErrStaffNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Staff member not found.", err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to update favourite flag.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, staff)
}

// DeleteStaff handles deleting a staff member.
func (h *StaffHandler) DeleteStaff(c *gin.Context) {
	staffID, ok := parseIDParam(c)
	if !ok {
		return
	}

	err := h.staffService.DeleteStaff(staffID)
	if err != nil {
		utils.LogError(err, "DeleteStaff: Error from staffService.DeleteStaff")
		if errors.Is(err, services.ErrStaffNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Staff member not found to delete.", err.Error()))
		} else if errors.Is(err, services.ErrStaffInUse) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, "Staff member cannot be deleted while schedules reference them.", err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to delete staff member.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Staff member deleted successfully"})
}
