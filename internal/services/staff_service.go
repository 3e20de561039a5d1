package services

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"staffdesk_backend/internal/models"
	"staffdesk_backend/internal/repositories"
	"staffdesk_backend/pkg/utils"
)

// --- Custom Service Errors for Staff ---
var (
	ErrStaffNotFound       = errors.New("staff member not found")
	ErrStaffDataValidation = errors.New("staff data validation error")
	ErrStaffDuplicate      = errors.New("a staff member with this value already exists")
	ErrStaffInUse          = errors.New("staff member cannot be deleted while schedules reference them")
	ErrDOBFormat           = errors.New("invalid date of birth format, please use YYYY-MM-DD")
)

// --- Staff DTOs ---
type CreateStaffRequest struct {
	FullName    string  `json:"full_name" binding:"required"`
	JobTitle    string  `json:"job_title" binding:"required"`
	Gender      string  `json:"gender" binding:"required"`
	DateOfBirth *string `json:"dob"`
	Phone       string  `json:"phone" binding:"required"`
	Email       string  `json:"email" binding:"required"`
	Address     *string `json:"address"`
	Nationality *string `json:"nationality"`
	IsActive    *bool   `json:"is_active"`
	IsFavourite *bool   `json:"is_favourite"`
}

type UpdateStaffRequest struct {
	FullName    *string `json:"full_name"`
	JobTitle    *string `json:"job_title"`
	Gender      *string `json:"gender"`
	DateOfBirth *string `json:"dob"`
	Phone       *string `json:"phone"`
	Email       *string `json:"email"`
	Address     *string `json:"address"`
	Nationality *string `json:"nationality"`
	IsActive    *bool   `json:"is_active"`
	IsFavourite *bool   `json:"is_favourite"`
	Status      *string `json:"status"`
}

// --- StaffService Interface ---
type StaffService interface {
	CreateStaff(req CreateStaffRequest) (*models.Staff, error)
	GetStaffByID(staffID int64) (*models.Staff, error)
	GetStaff(filters models.StaffFilters) ([]models.Staff, int, error)
	UpdateStaff(staffID int64, req UpdateStaffRequest) (*models.Staff, error)
	SetFavourite(staffID int64, favourite bool) (*models.Staff, error)
	DeleteStaff(staffID int64) error
}

// --- staffService Implementation ---
type staffService struct {
	staffRepo repositories.StaffRepository
	db        *sql.DB
}

// NewStaffService creates a new instance of StaffService.
func NewStaffService(sr repositories.StaffRepository, db *sql.DB) StaffService {
	return &staffService{staffRepo: sr, db: db}
}

func parseDate(dateStrPointer *string, format string, errorToReturn error) (*string, error) {
	if dateStrPointer == nil || strings.TrimSpace(*dateStrPointer) == "" {
		return nil, nil
	}
	dateStr := strings.TrimSpace(*dateStrPointer)
	if _, err := time.Parse(format, dateStr); err != nil {
		return nil, errorToReturn
	}
	return &dateStr, nil
}

func validateStaffFields(fullName, jobTitle, gender, phone, email string) error {
	if utils.IsEmpty(fullName) {
		return fmt.Errorf("%w: full name cannot be empty", ErrStaffDataValidation)
	}
	if utils.IsEmpty(jobTitle) {
		return fmt.Errorf("%w: job title cannot be empty", ErrStaffDataValidation)
	}
	if !models.IsValidGender(gender) {
		return fmt.Errorf("%w: invalid gender '%s'", ErrStaffDataValidation, gender)
	}
	if !utils.IsValidPhone(phone) {
		return fmt.Errorf("%w: invalid phone number format", ErrStaffDataValidation)
	}
	if !utils.IsValidEmail(email) {
		return fmt.Errorf("%w: invalid email address", ErrStaffDataValidation)
	}
	return nil
}

func (s *staffService) CreateStaff(req CreateStaffRequest) (*models.Staff, error) {
	if err := validateStaffFields(req.FullName, req.JobTitle, req.Gender, req.Phone, req.Email); err != nil {
		return nil, err
	}

	dobPtr, err := parseDate(req.DateOfBirth, "2006-01-02", ErrDOBFormat)
	if err != nil {
		return nil, err
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}
	isFavourite := false
	if req.IsFavourite != nil {
		isFavourite = *req.IsFavourite
	}

	staff := &models.Staff{
		FullName:    strings.TrimSpace(req.FullName),
		JobTitle:    strings.TrimSpace(req.JobTitle),
		Gender:      req.Gender,
		DateOfBirth: dobPtr,
		Phone:       strings.TrimSpace(req.Phone),
		Email:       strings.TrimSpace(req.Email),
		Address:     req.Address,
		Nationality: req.Nationality,
		IsActive:    isActive,
		IsFavourite: isFavourite,
		Status:      models.StaffStatusActive,
	}

	created, err := s.staffRepo.CreateStaff(s.db, staff)
	if err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, fmt.Errorf("%w: %v", ErrStaffDuplicate, err)
		}
		return nil, fmt.Errorf("failed to create staff member in repository: %w", err)
	}
	return created, nil
}

func (s *staffService) GetStaffByID(staffID int64) (*models.Staff, error) {
	staff, err := s.staffRepo.GetStaffByID(staffID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrStaffNotFound
		}
		return nil, fmt.Errorf("failed to get staff member by ID: %w", err)
	}
	return staff, nil
}

func (s *staffService) GetStaff(filters models.StaffFilters) ([]models.Staff, int, error) {
	if filters.Page <= 0 {
		filters.Page = 1
	}
	if filters.PageSize <= 0 {
		filters.PageSize = 10
	}

	staffList, totalCount, err := s.staffRepo.GetStaff(filters)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get staff members: %w", err)
	}
	return staffList, totalCount, nil
}

func (s *staffService) UpdateStaff(staffID int64, req UpdateStaffRequest) (*models.Staff, error) {
	staff, err := s.staffRepo.GetStaffByID(staffID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrStaffNotFound
		}
		return nil, fmt.Errorf("failed to find staff member for update: %w", err)
	}

	if req.FullName != nil {
		staff.FullName = strings.TrimSpace(*req.FullName)
	}
	if req.JobTitle != nil {
		staff.JobTitle = strings.TrimSpace(*req.JobTitle)
	}
	if req.Gender != nil {
		staff.Gender = *req.Gender
	}
	if req.DateOfBirth != nil {
		dobPtr, parseErr := parseDate(req.DateOfBirth, "2006-01-02", ErrDOBFormat)
		if parseErr != nil {
			return nil, parseErr
		}
		staff.DateOfBirth = dobPtr
	}
	if req.Phone != nil {
		staff.Phone = strings.TrimSpace(*req.Phone)
	}
	if req.Email != nil {
		staff.Email = strings.TrimSpace(*req.Email)
	}
	if req.Address != nil {
		staff.Address = req.Address
	}
	if req.Nationality != nil {
		staff.Nationality = req.Nationality
	}
	if req.IsActive != nil {
		staff.IsActive = *req.IsActive
	}
	if req.IsFavourite != nil {
		staff.IsFavourite = *req.IsFavourite
	}
	if req.Status != nil {
		if utils.IsEmpty(*req.Status) {
			return nil, fmt.Errorf("%w: status cannot be empty if provided", ErrStaffDataValidation)
		}
		staff.Status = strings.TrimSpace(*req.Status)
	}

	if err = validateStaffFields(staff.FullName, staff.JobTitle, staff.Gender, staff.Phone, staff.Email); err != nil {
		return nil, err
	}

	updated, err := s.staffRepo.UpdateStaff(s.db, staff)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrStaffNotFound
		}
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, fmt.Errorf("%w: %v", ErrStaffDuplicate, err)
		}
		return nil, fmt.Errorf("failed to update staff member in repository: %w", err)
	}
	return updated, nil
}

// SetFavourite flips the favourite flag and returns the fresh record, giving
// optimistic UI toggles an authoritative value to confirm or roll back with.
func (s *staffService) SetFavourite(staffID int64, favourite bool) (*models.Staff, error) {
	err := s.staffRepo.SetFavourite(s.db, staffID, favourite)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrStaffNotFound
		}
		return nil, fmt.Errorf("failed to set favourite flag: %w", err)
	}
	return s.staffRepo.GetStaffByID(staffID)
}

func (s *staffService) DeleteStaff(staffID int64) error {
	err := s.staffRepo.DeleteStaff(s.db, staffID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrStaffNotFound
		}
		if errors.Is(err, repositories.ErrForeignKeyViolation) {
			return ErrStaffInUse
		}
		return fmt.Errorf("failed to delete staff member: %w", err)
	}
	return nil
}
