package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"staffdesk_backend/internal/models"
	"staffdesk_backend/internal/repositories"

	"github.com/shopspring/decimal"
)

// --- Custom Service Errors for Schedules ---
var (
	ErrScheduleNotFound         = errors.New("schedule not found")
	ErrScheduleValidation       = errors.New("schedule validation error")
	ErrScheduleConflict         = errors.New("schedule conflicts with an existing shift for this staff member")
	ErrScheduleTimeFormat       = errors.New("invalid time format for schedule, please use RFC3339 like format")
	ErrStaffForScheduleNotFound = errors.New("staff member specified for schedule not found")
)

const minServiceAddressLength = 5

// --- Schedule DTOs ---
type CreateScheduleRequest struct {
	StaffID    int64            `json:"staff_id" binding:"required"`
	ClientName string           `json:"client_name" binding:"required"`
	StartTime  string           `json:"start_time" binding:"required"`
	EndTime    string           `json:"end_time" binding:"required"`
	Address    string           `json:"address" binding:"required"`
	ShiftBonus *decimal.Decimal `json:"shift_bonus"`
	Remarks    *string          `json:"remarks"`
}

// UpdateScheduleRequest carries the same payload shape as create; updates
// replace all mutable fields of the record.
type UpdateScheduleRequest = CreateScheduleRequest

// --- ScheduleService Interface ---
type ScheduleService interface {
	CreateSchedule(req CreateScheduleRequest) (*models.Schedule, error)
	GetScheduleByID(scheduleID int64) (*models.Schedule, error)
	GetSchedules(filters models.ScheduleFilters) ([]models.Schedule, int, error)
	UpdateSchedule(scheduleID int64, req UpdateScheduleRequest) (*models.Schedule, error)
	DeleteSchedule(scheduleID int64) error
}

// --- scheduleService Implementation ---
type scheduleService struct {
	scheduleRepo repositories.ScheduleRepository
	staffRepo    repositories.StaffRepository
	db           repositories.SQLExecutor
	txBeginner   repositories.TxBeginner
}

// NewScheduleService creates a new instance of ScheduleService.
func NewScheduleService(scr repositories.ScheduleRepository, str repositories.StaffRepository, db *sql.DB) ScheduleService {
	return &scheduleService{
		scheduleRepo: scr,
		staffRepo:    str,
		db:           db,
		txBeginner:   repositories.NewTxBeginner(db),
	}
}

func parseDateTime(dateTimeStr string, errorToReturn error) (time.Time, error) {
	parsedTime, err := time.Parse(time.RFC3339, dateTimeStr)
	if err != nil {
		// Clients without timezone handling send local time strings.
		parsedTime, err = time.Parse("2006-01-02T15:04:05", dateTimeStr)
		if err != nil {
			return time.Time{}, errorToReturn
		}
	}
	return parsedTime, nil
}

// validateScheduleRequest checks the field-level rules and parses the time
// range. It runs before any store access.
func validateScheduleRequest(req CreateScheduleRequest) (time.Time, time.Time, decimal.Decimal, error) {
	var zero time.Time

	if req.StaffID <= 0 {
		return zero, zero, decimal.Zero, fmt.Errorf("%w: a valid staff ID is required", ErrScheduleValidation)
	}
	if strings.TrimSpace(req.ClientName) == "" {
		return zero, zero, decimal.Zero, fmt.Errorf("%w: client name is required", ErrScheduleValidation)
	}
	if len(strings.TrimSpace(req.Address)) < minServiceAddressLength {
		return zero, zero, decimal.Zero, fmt.Errorf("%w: service address is required", ErrScheduleValidation)
	}

	startTime, err := parseDateTime(req.StartTime, ErrScheduleTimeFormat)
	if err != nil {
		return zero, zero, decimal.Zero, fmt.Errorf("start_time: %w", err)
	}
	endTime, err := parseDateTime(req.EndTime, ErrScheduleTimeFormat)
	if err != nil {
		return zero, zero, decimal.Zero, fmt.Errorf("end_time: %w", err)
	}
	if !endTime.After(startTime) {
		return zero, zero, decimal.Zero, fmt.Errorf("%w: end time must be after the start time", ErrScheduleValidation)
	}

	bonus := decimal.Zero
	if req.ShiftBonus != nil {
		if req.ShiftBonus.IsNegative() {
			return zero, zero, decimal.Zero, fmt.Errorf("%w: shift bonus cannot be negative", ErrScheduleValidation)
		}
		bonus = *req.ShiftBonus
	}

	return startTime, endTime, bonus, nil
}

// mutateWithConflictCheck runs the overlap check and the write inside a single
// serializable transaction, so two concurrent requests cannot both pass the
// check before either write commits. Retries once on a serialization failure.
func (s *scheduleService) mutateWithConflictCheck(staffID int64, startTime, endTime time.Time, excludeID *int64, write func(tx repositories.Tx) error) error {
	for attempt := 0; attempt < 2; attempt++ {
		err := s.runConflictCheckedTx(staffID, startTime, endTime, excludeID, write)
		if err != nil && repositories.IsSerializationFailure(err) && attempt == 0 {
			continue
		}
		return err
	}
	return nil
}

func (s *scheduleService) runConflictCheckedTx(staffID int64, startTime, endTime time.Time, excludeID *int64, write func(tx repositories.Tx) error) error {
	tx, err := s.txBeginner.BeginSerializable(context.Background())
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	overlap, err := s.scheduleRepo.FindOverlapping(tx, staffID, startTime, endTime, excludeID)
	if err != nil && !errors.Is(err, repositories.ErrNotFound) {
		return fmt.Errorf("failed to check for overlapping schedules: %w", err)
	}
	if overlap != nil {
		return fmt.Errorf("%w: Conflict with %s", ErrScheduleConflict, overlap.ClientName)
	}

	if err = write(tx); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit schedule transaction: %w", err)
	}
	return nil
}

func (s *scheduleService) CreateSchedule(req CreateScheduleRequest) (*models.Schedule, error) {
	startTime, endTime, bonus, err := validateScheduleRequest(req)
	if err != nil {
		return nil, err
	}

	_, err = s.staffRepo.GetStaffByID(req.StaffID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("%w: ID %d", ErrStaffForScheduleNotFound, req.StaffID)
		}
		return nil, fmt.Errorf("failed to validate staff for schedule: %w", err)
	}

	schedule := &models.Schedule{
		StaffID:    req.StaffID,
		ClientName: strings.TrimSpace(req.ClientName),
		Address:    strings.TrimSpace(req.Address),
		StartTime:  startTime,
		EndTime:    endTime,
		ShiftBonus: bonus,
		Remarks:    req.Remarks,
	}

	err = s.mutateWithConflictCheck(req.StaffID, startTime, endTime, nil, func(tx repositories.Tx) error {
		created, createErr := s.scheduleRepo.CreateSchedule(tx, schedule)
		if createErr != nil {
			return fmt.Errorf("failed to create schedule in repository: %w", createErr)
		}
		schedule = created
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.scheduleRepo.GetScheduleByID(schedule.ID) // Fetch with staff projection
}

func (s *scheduleService) GetScheduleByID(scheduleID int64) (*models.Schedule, error) {
	schedule, err := s.scheduleRepo.GetScheduleByID(scheduleID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrScheduleNotFound
		}
		return nil, fmt.Errorf("failed to get schedule by ID: %w", err)
	}
	return schedule, nil
}

func (s *scheduleService) GetSchedules(filters models.ScheduleFilters) ([]models.Schedule, int, error) {
	if filters.Page <= 0 {
		filters.Page = 1
	}
	if filters.PageSize <= 0 {
		filters.PageSize = 10
	}

	schedules, totalCount, err := s.scheduleRepo.GetSchedules(filters)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get schedules: %w", err)
	}
	return schedules, totalCount, nil
}

func (s *scheduleService) UpdateSchedule(scheduleID int64, req UpdateScheduleRequest) (*models.Schedule, error) {
	startTime, endTime, bonus, err := validateScheduleRequest(req)
	if err != nil {
		return nil, err
	}

	schedule, err := s.scheduleRepo.GetScheduleByID(scheduleID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrScheduleNotFound
		}
		return nil, fmt.Errorf("failed to find schedule for update: %w", err)
	}

	if req.StaffID != schedule.StaffID {
		_, err = s.staffRepo.GetStaffByID(req.StaffID)
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return nil, fmt.Errorf("%w: ID %d", ErrStaffForScheduleNotFound, req.StaffID)
			}
			return nil, fmt.Errorf("failed to validate staff for schedule: %w", err)
		}
	}

	schedule.StaffID = req.StaffID
	schedule.ClientName = strings.TrimSpace(req.ClientName)
	schedule.Address = strings.TrimSpace(req.Address)
	schedule.StartTime = startTime
	schedule.EndTime = endTime
	schedule.ShiftBonus = bonus
	schedule.Remarks = req.Remarks

	// The record's own prior range must not count as a conflict.
	err = s.mutateWithConflictCheck(req.StaffID, startTime, endTime, &scheduleID, func(tx repositories.Tx) error {
		_, updateErr := s.scheduleRepo.UpdateSchedule(tx, schedule)
		if updateErr != nil {
			if errors.Is(updateErr, repositories.ErrNotFound) {
				return ErrScheduleNotFound
			}
			return fmt.Errorf("failed to update schedule in repository: %w", updateErr)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.scheduleRepo.GetScheduleByID(scheduleID)
}

func (s *scheduleService) DeleteSchedule(scheduleID int64) error {
	err := s.scheduleRepo.DeleteSchedule(s.db, scheduleID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrScheduleNotFound
		}
		return fmt.Errorf("failed to delete schedule: %w", err)
	}
	return nil
}
