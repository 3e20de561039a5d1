package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"staffdesk_backend/internal/models"
)

// DashboardRepository provides the aggregate queries behind the summary page.
type DashboardRepository interface {
	CountStaff() (int, error)
	CountFavouriteStaff() (int, error)
	CountActiveSchedules(now time.Time) (int, error)
	GetRecentAssignments(limit int) ([]models.DashboardActivity, error)
}

type dashboardRepository struct {
	db *sql.DB
}

// NewDashboardRepository creates a new instance of DashboardRepository.
func NewDashboardRepository(db *sql.DB) DashboardRepository {
	return &dashboardRepository{db: db}
}

func (r *dashboardRepository) CountStaff() (int, error) {
	var count int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM staff`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("%w: counting staff: %v", ErrDatabaseError, err)
	}
	return count, nil
}

func (r *dashboardRepository) CountFavouriteStaff() (int, error) {
	var count int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM staff WHERE is_favourite = true`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("%w: counting favourite staff: %v", ErrDatabaseError, err)
	}
	return count, nil
}

// CountActiveSchedules counts schedules that are ongoing or in the future.
func (r *dashboardRepository) CountActiveSchedules(now time.Time) (int, error) {
	var count int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM schedules WHERE end_time >= $1`, now).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("%w: counting active schedules: %v", ErrDatabaseError, err)
	}
	return count, nil
}

// GetRecentAssignments returns the latest schedule assignments for the
// activity feed, newest first.
func (r *dashboardRepository) GetRecentAssignments(limit int) ([]models.DashboardActivity, error) {
	query := `SELECT sc.id, COALESCE(st.full_name, ''), sc.client_name
	          FROM schedules sc
	          JOIN staff st ON sc.staff_id = st.id
	          ORDER BY sc.id DESC
	          LIMIT $1`

	rows, err := r.db.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: querying recent assignments: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	entries := []models.DashboardActivity{}
	for rows.Next() {
		var entry models.DashboardActivity
		var clientName string
		if err = rows.Scan(&entry.ScheduleID, &entry.StaffName, &clientName); err != nil {
			return nil, fmt.Errorf("%w: scanning recent assignment: %v", ErrDatabaseError, err)
		}
		entry.Action = "Assigned to " + clientName
		entries = append(entries, entry)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating recent assignments: %v", ErrDatabaseError, err)
	}
	return entries, nil
}
