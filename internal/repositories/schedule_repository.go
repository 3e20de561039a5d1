package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"staffdesk_backend/internal/models"

	"github.com/lib/pq" // For pq.Error
)

// ScheduleRepository defines the database operations for shift schedules.
// Mutating methods take an SQLExecutor so the service layer can run the
// conflict check and the write inside a single transaction.
type ScheduleRepository interface {
	CreateSchedule(executor SQLExecutor, schedule *models.Schedule) (*models.Schedule, error)
	GetScheduleByID(id int64) (*models.Schedule, error)
	GetSchedules(filters models.ScheduleFilters) ([]models.Schedule, int, error)
	GetSchedulesForRange(from time.Time, to time.Time) ([]models.Schedule, error)
	UpdateSchedule(executor SQLExecutor, schedule *models.Schedule) (*models.Schedule, error)
	DeleteSchedule(executor SQLExecutor, id int64) error
	FindOverlapping(executor SQLExecutor, staffID int64, startTime time.Time, endTime time.Time, excludeID *int64) (*models.Schedule, error)
}

type scheduleRepository struct {
	db *sql.DB
}

// NewScheduleRepository creates a new instance of ScheduleRepository.
func NewScheduleRepository(db *sql.DB) ScheduleRepository {
	return &scheduleRepository{db: db}
}

const selectScheduleFields = `
	sc.id, sc.staff_id, sc.client_name, sc.address, sc.start_time, sc.end_time,
	sc.shift_bonus, sc.remarks, sc.created_at, sc.updated_at,
	COALESCE(st.full_name, ''), COALESCE(st.job_title, ''), COALESCE(st.status, '')
`

const scheduleJoins = `
	FROM schedules sc
	JOIN staff st ON sc.staff_id = st.id
`

// scanScheduleRow scans one schedule row with its joined staff projection.
func scanScheduleRow(row scanner, isList bool) (*models.Schedule, int, error) {
	var schedule models.Schedule
	var staff models.StaffSummary
	var remarks sql.NullString
	var totalCount int

	scanDest := []interface{}{
		&schedule.ID, &schedule.StaffID, &schedule.ClientName, &schedule.Address,
		&schedule.StartTime, &schedule.EndTime, &schedule.ShiftBonus, &remarks,
		&schedule.CreatedAt, &schedule.UpdatedAt,
		&staff.FullName, &staff.JobTitle, &staff.Status,
	}
	if isList {
		scanDest = append(scanDest, &totalCount)
	}

	err := row.Scan(scanDest...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, 0, ErrNotFound
		}
		return nil, 0, fmt.Errorf("%w: scanning schedule with staff details: %v", ErrDatabaseError, err)
	}

	if remarks.Valid {
		schedule.Remarks = &remarks.String
	}
	schedule.Staff = &staff
	return &schedule, totalCount, nil
}

func (r *scheduleRepository) CreateSchedule(executor SQLExecutor, schedule *models.Schedule) (*models.Schedule, error) {
	query := `INSERT INTO schedules
	            (staff_id, client_name, address, start_time, end_time, shift_bonus, remarks, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	          RETURNING id, created_at, updated_at`

	currentTime := time.Now()
	schedule.CreatedAt = currentTime
	schedule.UpdatedAt = currentTime

	err := executor.QueryRow(query,
		schedule.StaffID, schedule.ClientName, schedule.Address,
		schedule.StartTime, schedule.EndTime, schedule.ShiftBonus, schedule.Remarks,
		schedule.CreatedAt, schedule.UpdatedAt,
	).Scan(&schedule.ID, &schedule.CreatedAt, &schedule.UpdatedAt)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "foreign_key_violation" {
			return nil, fmt.Errorf("%w: staff member with ID %d not found", ErrNotFound, schedule.StaffID)
		}
		return nil, fmt.Errorf("%w: creating schedule: %w", ErrDatabaseError, err)
	}
	return schedule, nil
}

func (r *scheduleRepository) GetScheduleByID(id int64) (*models.Schedule, error) {
	query := "SELECT " + selectScheduleFields + scheduleJoins + " WHERE sc.id = $1"
	schedule, _, err := scanScheduleRow(r.db.QueryRow(query, id), false)
	return schedule, err
}

func (r *scheduleRepository) GetSchedules(filters models.ScheduleFilters) ([]models.Schedule, int, error) {
	schedules := []models.Schedule{}
	var totalCount int

	var queryBuilder strings.Builder
	queryBuilder.WriteString("SELECT " + selectScheduleFields + ", COUNT(*) OVER() as total_count " + scheduleJoins)

	var conditions []string
	var args []interface{}
	argCount := 1

	if filters.Search != nil && *filters.Search != "" {
		conditions = append(conditions, fmt.Sprintf("sc.client_name ILIKE $%d", argCount))
		args = append(args, "%"+*filters.Search+"%")
		argCount++
	}
	if filters.StaffID != nil {
		conditions = append(conditions, fmt.Sprintf("sc.staff_id = $%d", argCount))
		args = append(args, *filters.StaffID)
		argCount++
	}

	if len(conditions) > 0 {
		queryBuilder.WriteString(" WHERE " + strings.Join(conditions, " AND "))
	}
	queryBuilder.WriteString(" ORDER BY sc.start_time DESC")

	filterArgs := args
	if filters.PageSize > 0 {
		queryBuilder.WriteString(fmt.Sprintf(" LIMIT $%d", argCount))
		args = append(args, filters.PageSize)
		argCount++
		if filters.Page > 0 {
			offset := (filters.Page - 1) * filters.PageSize
			queryBuilder.WriteString(fmt.Sprintf(" OFFSET $%d", argCount))
			args = append(args, offset)
		}
	}

	rows, err := r.db.Query(queryBuilder.String(), args...)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: querying schedules: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		schedule, scannedTotalCount, scanErr := scanScheduleRow(rows, true)
		if scanErr != nil {
			return nil, 0, scanErr
		}
		schedules = append(schedules, *schedule)
		totalCount = scannedTotalCount
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%w: iterating schedule rows: %v", ErrDatabaseError, err)
	}
	// A page past the last row yields no rows, so the window count above never
	// ran; fetch the total separately to keep the pagination meta truthful.
	if len(schedules) == 0 {
		countQuery := "SELECT COUNT(*) FROM schedules sc"
		if len(conditions) > 0 {
			countQuery += " WHERE " + strings.Join(conditions, " AND ")
		}
		if err = r.db.QueryRow(countQuery, filterArgs...).Scan(&totalCount); err != nil {
			return nil, 0, fmt.Errorf("%w: counting schedules: %v", ErrDatabaseError, err)
		}
	}
	return schedules, totalCount, nil
}

// GetSchedulesForRange returns every schedule whose start time falls in
// [from, to), joined with the staff projection. Used to populate the week grid,
// which buckets shifts by the day they start on.
func (r *scheduleRepository) GetSchedulesForRange(from time.Time, to time.Time) ([]models.Schedule, error) {
	query := "SELECT " + selectScheduleFields + scheduleJoins +
		" WHERE sc.start_time >= $1 AND sc.start_time < $2 ORDER BY sc.start_time ASC"

	rows, err := r.db.Query(query, from, to)
	if err != nil {
		return nil, fmt.Errorf("%w: querying schedules for range: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	schedules := []models.Schedule{}
	for rows.Next() {
		schedule, _, scanErr := scanScheduleRow(rows, false)
		if scanErr != nil {
			return nil, scanErr
		}
		schedules = append(schedules, *schedule)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating schedule rows: %v", ErrDatabaseError, err)
	}
	return schedules, nil
}

func (r *scheduleRepository) UpdateSchedule(executor SQLExecutor, schedule *models.Schedule) (*models.Schedule, error) {
	query := `UPDATE schedules SET
	            staff_id = $1, client_name = $2, address = $3, start_time = $4,
	            end_time = $5, shift_bonus = $6, remarks = $7, updated_at = $8
	          WHERE id = $9
	          RETURNING updated_at`

	schedule.UpdatedAt = time.Now()

	err := executor.QueryRow(query,
		schedule.StaffID, schedule.ClientName, schedule.Address,
		schedule.StartTime, schedule.EndTime, schedule.ShiftBonus, schedule.Remarks,
		schedule.UpdatedAt, schedule.ID,
	).Scan(&schedule.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "foreign_key_violation" {
			return nil, fmt.Errorf("%w: staff member with ID %d not found", ErrNotFound, schedule.StaffID)
		}
		return nil, fmt.Errorf("%w: updating schedule ID %d: %w", ErrDatabaseError, schedule.ID, err)
	}
	return schedule, nil
}

func (r *scheduleRepository) DeleteSchedule(executor SQLExecutor, id int64) error {
	query := `DELETE FROM schedules WHERE id = $1`
	result, err := executor.Exec(query, id)
	if err != nil {
		return fmt.Errorf("%w: deleting schedule ID %d: %v", ErrDatabaseError, id, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// FindOverlapping returns the earliest schedule for staffID whose [start, end)
// range intersects [startTime, endTime), or ErrNotFound when there is none.
// Intervals are half-open: two ranges overlap iff a.start < b.end AND
// a.end > b.start, so back-to-back shifts never collide. excludeID skips the
// record being updated.
func (r *scheduleRepository) FindOverlapping(executor SQLExecutor, staffID int64, startTime time.Time, endTime time.Time, excludeID *int64) (*models.Schedule, error) {
	query := `SELECT id, staff_id, client_name, address, start_time, end_time,
	            shift_bonus, remarks, created_at, updated_at
	          FROM schedules
	          WHERE staff_id = $1 AND start_time < $3 AND end_time > $2`
	args := []interface{}{staffID, startTime, endTime}

	if excludeID != nil {
		query += " AND id != $4"
		args = append(args, *excludeID)
	}
	query += " ORDER BY start_time ASC LIMIT 1"

	var schedule models.Schedule
	var remarks sql.NullString
	err := executor.QueryRow(query, args...).Scan(
		&schedule.ID, &schedule.StaffID, &schedule.ClientName, &schedule.Address,
		&schedule.StartTime, &schedule.EndTime, &schedule.ShiftBonus, &remarks,
		&schedule.CreatedAt, &schedule.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: checking schedule overlap: %w", ErrDatabaseError, err)
	}
	if remarks.Valid {
		schedule.Remarks = &remarks.String
	}
	return &schedule, nil
}

// IsSerializationFailure reports whether err is a Postgres serialization
// failure (SQLSTATE 40001), which the caller may retry.
func IsSerializationFailure(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && string(pqErr.Code) == "40001"
}
