package repositories

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"staffdesk_backend/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
)

func TestIsSerializationFailureSeesThroughWrapping(t *testing.T) {
	driverErr := &pq.Error{Code: "40001"}
	wrapped := fmt.Errorf("%w: checking schedule overlap: %w", ErrDatabaseError, driverErr)

	if !IsSerializationFailure(wrapped) {
		t.Fatalf("expected a wrapped SQLSTATE 40001 to be detected")
	}
	if IsSerializationFailure(errors.New("plain failure")) {
		t.Fatalf("expected a non-driver error not to be detected")
	}
	if IsSerializationFailure(&pq.Error{Code: "23505"}) {
		t.Fatalf("expected a unique violation not to be detected")
	}
}

func TestFindOverlappingKeepsSerializationFailureDetectable(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to open sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT (.+) FROM schedules").WillReturnError(&pq.Error{Code: "40001"})

	repo := NewScheduleRepository(db)
	start := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	end := start.Add(8 * time.Hour)

	_, err = repo.FindOverlapping(db, 1, start, end, nil)
	if err == nil {
		t.Fatalf("expected the driver error to surface")
	}
	if !IsSerializationFailure(err) {
		t.Fatalf("expected the serialization failure to stay detectable through wrapping, got %v", err)
	}
	if err = mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestGetSchedulesReportsTotalForOutOfRangePage(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to open sqlmock: %v", err)
	}
	defer db.Close()

	listColumns := []string{
		"id", "staff_id", "client_name", "address", "start_time", "end_time",
		"shift_bonus", "remarks", "created_at", "updated_at",
		"full_name", "job_title", "status", "total_count",
	}
	mock.ExpectQuery("SELECT (.+) FROM schedules").WillReturnRows(sqlmock.NewRows(listColumns))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM schedules`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(25))

	repo := NewScheduleRepository(db)
	schedules, total, err := repo.GetSchedules(models.ScheduleFilters{Page: 9, PageSize: 10})
	if err != nil {
		t.Fatalf("expected list to succeed, got %v", err)
	}
	if len(schedules) != 0 {
		t.Fatalf("expected an empty page, got %d rows", len(schedules))
	}
	if total != 25 {
		t.Fatalf("expected total 25 for a page past the last row, got %d", total)
	}
	if err = mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
