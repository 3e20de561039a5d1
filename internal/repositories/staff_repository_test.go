package repositories

import (
	"testing"

	"staffdesk_backend/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestGetStaffReportsTotalForOutOfRangePage(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to open sqlmock: %v", err)
	}
	defer db.Close()

	listColumns := []string{
		"id", "full_name", "job_title", "gender", "dob", "phone", "email",
		"address", "nationality", "is_active", "is_favourite", "status",
		"created_at", "updated_at", "total_count",
	}
	mock.ExpectQuery("SELECT (.+) FROM staff").WillReturnRows(sqlmock.NewRows(listColumns))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM staff`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(25))

	repo := NewStaffRepository(db)
	staffList, total, err := repo.GetStaff(models.StaffFilters{Page: 4, PageSize: 10})
	if err != nil {
		t.Fatalf("expected list to succeed, got %v", err)
	}
	if len(staffList) != 0 {
		t.Fatalf("expected an empty page, got %d rows", len(staffList))
	}
	if total != 25 {
		t.Fatalf("expected total 25 for a page past the last row, got %d", total)
	}
	if err = mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestGetStaffSearchFilterCountsOnlyMatches(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to open sqlmock: %v", err)
	}
	defer db.Close()

	listColumns := []string{
		"id", "full_name", "job_title", "gender", "dob", "phone", "email",
		"address", "nationality", "is_active", "is_favourite", "status",
		"created_at", "updated_at", "total_count",
	}
	mock.ExpectQuery("SELECT (.+) FROM staff WHERE (.+) ILIKE (.+)").
		WithArgs("%amira%", 10, 10).
		WillReturnRows(sqlmock.NewRows(listColumns))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM staff WHERE`).
		WithArgs("%amira%").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	search := "amira"
	repo := NewStaffRepository(db)
	_, total, err := repo.GetStaff(models.StaffFilters{Search: &search, Page: 2, PageSize: 10})
	if err != nil {
		t.Fatalf("expected list to succeed, got %v", err)
	}
	if total != 1 {
		t.Fatalf("expected the fallback count to honor the search filter, got %d", total)
	}
	if err = mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
