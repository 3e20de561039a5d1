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

// StaffRepository defines the database operations for the staff directory.
type StaffRepository interface {
	CreateStaff(executor SQLExecutor, staff *models.Staff) (*models.Staff, error)
	GetStaffByID(id int64) (*models.Staff, error)
	GetStaff(filters models.StaffFilters) ([]models.Staff, int, error)
	GetActiveStaff() ([]models.Staff, error)
	UpdateStaff(executor SQLExecutor, staff *models.Staff) (*models.Staff, error)
	SetFavourite(executor SQLExecutor, id int64, favourite bool) error
	DeleteStaff(executor SQLExecutor, id int64) error
}

type staffRepository struct {
	db *sql.DB
}

// NewStaffRepository creates a new instance of StaffRepository.
func NewStaffRepository(db *sql.DB) StaffRepository {
	return &staffRepository{db: db}
}

const staffColumns = `id, full_name, job_title, gender, dob, phone, email, address,
	nationality, is_active, is_favourite, status, created_at, updated_at`

func scanStaffRow(row scanner) (*models.Staff, error) {
	var staff models.Staff
	var dob sql.NullTime
	var address, nationality sql.NullString

	err := row.Scan(
		&staff.ID, &staff.FullName, &staff.JobTitle, &staff.Gender, &dob,
		&staff.Phone, &staff.Email, &address, &nationality,
		&staff.IsActive, &staff.IsFavourite, &staff.Status,
		&staff.CreatedAt, &staff.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: scanning staff row: %v", ErrDatabaseError, err)
	}

	if dob.Valid {
		dateStr := dob.Time.Format("2006-01-02")
		staff.DateOfBirth = &dateStr
	}
	if address.Valid {
		staff.Address = &address.String
	}
	if nationality.Valid {
		staff.Nationality = &nationality.String
	}
	return &staff, nil
}

func mapStaffConstraintError(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code.Name() {
		case "unique_violation":
			return fmt.Errorf("%w: %s", ErrDuplicateKey, pqErr.Constraint)
		case "foreign_key_violation":
			return fmt.Errorf("%w: %s", ErrForeignKeyViolation, pqErr.Constraint)
		}
	}
	return nil
}

func (r *staffRepository) CreateStaff(executor SQLExecutor, staff *models.Staff) (*models.Staff, error) {
	query := `INSERT INTO staff
	            (full_name, job_title, gender, dob, phone, email, address, nationality,
	             is_active, is_favourite, status, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	          RETURNING id, created_at, updated_at`

	currentTime := time.Now()
	staff.CreatedAt = currentTime
	staff.UpdatedAt = currentTime

	var dob sql.NullString
	if staff.DateOfBirth != nil {
		dob = sql.NullString{String: *staff.DateOfBirth, Valid: true}
	}

	err := executor.QueryRow(query,
		staff.FullName, staff.JobTitle, staff.Gender, dob, staff.Phone, staff.Email,
		staff.Address, staff.Nationality, staff.IsActive, staff.IsFavourite, staff.Status,
		staff.CreatedAt, staff.UpdatedAt,
	).Scan(&staff.ID, &staff.CreatedAt, &staff.UpdatedAt)

	if err != nil {
		if mapped := mapStaffConstraintError(err); mapped != nil {
			return nil, mapped
		}
		return nil, fmt.Errorf("%w: creating staff member: %v", ErrDatabaseError, err)
	}
	return staff, nil
}

func (r *staffRepository) GetStaffByID(id int64) (*models.Staff, error) {
	query := "SELECT " + staffColumns + " FROM staff WHERE id = $1"
	return scanStaffRow(r.db.QueryRow(query, id))
}

func (r *staffRepository) GetStaff(filters models.StaffFilters) ([]models.Staff, int, error) {
	staffList := []models.Staff{}
	var totalCount int

	var queryBuilder strings.Builder
	queryBuilder.WriteString("SELECT " + staffColumns + ", COUNT(*) OVER() as total_count FROM staff")

	var conditions []string
	var args []interface{}
	argCount := 1

	if filters.Search != nil && *filters.Search != "" {
		conditions = append(conditions, fmt.Sprintf(
			"(full_name ILIKE $%d OR phone ILIKE $%d OR email ILIKE $%d)",
			argCount, argCount, argCount))
		args = append(args, "%"+*filters.Search+"%")
		argCount++
	}
	if filters.Status != nil && *filters.Status != "" {
		conditions = append(conditions, fmt.Sprintf("status = $%d", argCount))
		args = append(args, *filters.Status)
		argCount++
	}

	if len(conditions) > 0 {
		queryBuilder.WriteString(" WHERE " + strings.Join(conditions, " AND "))
	}
	queryBuilder.WriteString(" ORDER BY full_name ASC")

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
		return nil, 0, fmt.Errorf("%w: querying staff: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		var staff models.Staff
		var dob sql.NullTime
		var address, nationality sql.NullString

		err = rows.Scan(
			&staff.ID, &staff.FullName, &staff.JobTitle, &staff.Gender, &dob,
			&staff.Phone, &staff.Email, &address, &nationality,
			&staff.IsActive, &staff.IsFavourite, &staff.Status,
			&staff.CreatedAt, &staff.UpdatedAt, &totalCount,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("%w: scanning staff row: %v", ErrDatabaseError, err)
		}
		if dob.Valid {
			dateStr := dob.Time.Format("2006-01-02")
			staff.DateOfBirth = &dateStr
		}
		if address.Valid {
			staff.Address = &address.String
		}
		if nationality.Valid {
			staff.Nationality = &nationality.String
		}
		staffList = append(staffList, staff)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%w: iterating staff rows: %v", ErrDatabaseError, err)
	}
	// A page past the last row yields no rows, so the window count above never
	// ran; fetch the total separately to keep the pagination meta truthful.
	if len(staffList) == 0 {
		countQuery := "SELECT COUNT(*) FROM staff"
		if len(conditions) > 0 {
			countQuery += " WHERE " + strings.Join(conditions, " AND ")
		}
		if err = r.db.QueryRow(countQuery, filterArgs...).Scan(&totalCount); err != nil {
			return nil, 0, fmt.Errorf("%w: counting staff: %v", ErrDatabaseError, err)
		}
	}
	return staffList, totalCount, nil
}

// GetActiveStaff returns every staff member with status 'active', ordered by
// name. Used to build the week-grid rows.
func (r *staffRepository) GetActiveStaff() ([]models.Staff, error) {
	query := "SELECT " + staffColumns + " FROM staff WHERE status = $1 ORDER BY full_name ASC"

	rows, err := r.db.Query(query, models.StaffStatusActive)
	if err != nil {
		return nil, fmt.Errorf("%w: querying active staff: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	staffList := []models.Staff{}
	for rows.Next() {
		staff, scanErr := scanStaffRow(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		staffList = append(staffList, *staff)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating active staff rows: %v", ErrDatabaseError, err)
	}
	return staffList, nil
}

func (r *staffRepository) UpdateStaff(executor SQLExecutor, staff *models.Staff) (*models.Staff, error) {
	query := `UPDATE staff SET
	            full_name = $1, job_title = $2, gender = $3, dob = $4, phone = $5,
	            email = $6, address = $7, nationality = $8, is_active = $9,
	            is_favourite = $10, status = $11, updated_at = $12
	          WHERE id = $13
	          RETURNING updated_at`

	staff.UpdatedAt = time.Now()

	var dob sql.NullString
	if staff.DateOfBirth != nil {
		dob = sql.NullString{String: *staff.DateOfBirth, Valid: true}
	}

	err := executor.QueryRow(query,
		staff.FullName, staff.JobTitle, staff.Gender, dob, staff.Phone, staff.Email,
		staff.Address, staff.Nationality, staff.IsActive, staff.IsFavourite, staff.Status,
		staff.UpdatedAt, staff.ID,
	).Scan(&staff.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		if mapped := mapStaffConstraintError(err); mapped != nil {
			return nil, mapped
		}
		return nil, fmt.Errorf("%w: updating staff member ID %d: %v", ErrDatabaseError, staff.ID, err)
	}
	return staff, nil
}

func (r *staffRepository) SetFavourite(executor SQLExecutor, id int64, favourite bool) error {
	query := `UPDATE staff SET is_favourite = $1, updated_at = $2 WHERE id = $3`
	result, err := executor.Exec(query, favourite, time.Now(), id)
	if err != nil {
		return fmt.Errorf("%w: setting favourite for staff ID %d: %v", ErrDatabaseError, id, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *staffRepository) DeleteStaff(executor SQLExecutor, id int64) error {
	query := `DELETE FROM staff WHERE id = $1`
	result, err := executor.Exec(query, id)
	if err != nil {
		if mapped := mapStaffConstraintError(err); mapped != nil {
			return mapped
		}
		return fmt.Errorf("%w: deleting staff member ID %d: %v", ErrDatabaseError, id, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
