package services

import (
	"errors"
	"testing"

	"staffdesk_backend/internal/models"
	"staffdesk_backend/internal/repositories"
)

// fakeStaffRepository is an in-memory StaffRepository for service tests. The
// executor argument is ignored; transaction behavior is owned by the real
// repository.
type fakeStaffRepository struct {
	byID         map[int64]*models.Staff
	createErr    error
	updateErr    error
	deleteErr    error
	favouriteErr error
	lastFilters  models.StaffFilters
}

func newFakeStaffRepository() *fakeStaffRepository {
	return &fakeStaffRepository{byID: map[int64]*models.Staff{}}
}

func (f *fakeStaffRepository) CreateStaff(_ repositories.SQLExecutor, staff *models.Staff) (*models.Staff, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	staff.ID = int64(len(f.byID) + 1)
	f.byID[staff.ID] = staff
	return staff, nil
}

func (f *fakeStaffRepository) GetStaffByID(id int64) (*models.Staff, error) {
	staff, ok := f.byID[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return staff, nil
}

func (f *fakeStaffRepository) GetStaff(filters models.StaffFilters) ([]models.Staff, int, error) {
	f.lastFilters = filters
	return []models.Staff{}, 0, nil
}

func (f *fakeStaffRepository) GetActiveStaff() ([]models.Staff, error) {
	return []models.Staff{}, nil
}

func (f *fakeStaffRepository) UpdateStaff(_ repositories.SQLExecutor, staff *models.Staff) (*models.Staff, error) {
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	if _, ok := f.byID[staff.ID]; !ok {
		return nil, repositories.ErrNotFound
	}
	f.byID[staff.ID] = staff
	return staff, nil
}

func (f *fakeStaffRepository) SetFavourite(_ repositories.SQLExecutor, id int64, favourite bool) error {
	if f.favouriteErr != nil {
		return f.favouriteErr
	}
	staff, ok := f.byID[id]
	if !ok {
		return repositories.ErrNotFound
	}
	staff.IsFavourite = favourite
	return nil
}

func (f *fakeStaffRepository) DeleteStaff(_ repositories.SQLExecutor, id int64) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	if _, ok := f.byID[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

func validCreateStaffRequest() CreateStaffRequest {
	return CreateStaffRequest{
		FullName: "Amira Hassan",
		JobTitle: "Care Assistant",
		Gender:   models.GenderFemale,
		Phone:    "+441234567890",
		Email:    "amira@example.com",
	}
}

func TestCreateStaffAppliesDefaults(t *testing.T) {
	repo := newFakeStaffRepository()
	svc := NewStaffService(repo, nil)

	staff, err := svc.CreateStaff(validCreateStaffRequest())
	if err != nil {
		t.Fatalf("expected create to succeed, got %v", err)
	}
	if !staff.IsActive {
		t.Fatalf("expected new staff to be active by default")
	}
	if staff.IsFavourite {
		t.Fatalf("expected new staff not to be favourite by default")
	}
	if staff.Status != models.StaffStatusActive {
		t.Fatalf("expected status %q, got %q", models.StaffStatusActive, staff.Status)
	}
}

func TestCreateStaffValidationFailures(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*CreateStaffRequest)
	}{
		{"empty full name", func(r *CreateStaffRequest) { r.FullName = "  " }},
		{"empty job title", func(r *CreateStaffRequest) { r.JobTitle = "" }},
		{"unknown gender", func(r *CreateStaffRequest) { r.Gender = "other" }},
		{"invalid email", func(r *CreateStaffRequest) { r.Email = "not-an-email" }},
		{"invalid phone", func(r *CreateStaffRequest) { r.Phone = "call me" }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := newFakeStaffRepository()
			svc := NewStaffService(repo, nil)

			req := validCreateStaffRequest()
			tc.mutate(&req)

			_, err := svc.CreateStaff(req)
			if !errors.Is(err, ErrStaffDataValidation) {
				t.Fatalf("expected ErrStaffDataValidation, got %v", err)
			}
			if len(repo.byID) != 0 {
				t.Fatalf("expected no record written on validation failure")
			}
		})
	}
}

func TestCreateStaffRejectsMalformedDateOfBirth(t *testing.T) {
	repo := newFakeStaffRepository()
	svc := NewStaffService(repo, nil)

	req := validCreateStaffRequest()
	dob := "13/01/1990"
	req.DateOfBirth = &dob

	_, err := svc.CreateStaff(req)
	if !errors.Is(err, ErrDOBFormat) {
		t.Fatalf("expected ErrDOBFormat, got %v", err)
	}
}

func TestCreateStaffMapsDuplicateKey(t *testing.T) {
	repo := newFakeStaffRepository()
	repo.createErr = repositories.ErrDuplicateKey
	svc := NewStaffService(repo, nil)

	_, err := svc.CreateStaff(validCreateStaffRequest())
	if !errors.Is(err, ErrStaffDuplicate) {
		t.Fatalf("expected ErrStaffDuplicate, got %v", err)
	}
}

func TestUpdateStaffNotFound(t *testing.T) {
	repo := newFakeStaffRepository()
	svc := NewStaffService(repo, nil)

	name := "New Name"
	_, err := svc.UpdateStaff(42, UpdateStaffRequest{FullName: &name})
	if !errors.Is(err, ErrStaffNotFound) {
		t.Fatalf("expected ErrStaffNotFound, got %v", err)
	}
}

func TestUpdateStaffRejectsEmptyStatus(t *testing.T) {
	repo := newFakeStaffRepository()
	svc := NewStaffService(repo, nil)
	created, err := svc.CreateStaff(validCreateStaffRequest())
	if err != nil {
		t.Fatalf("setup create failed: %v", err)
	}

	empty := "  "
	_, err = svc.UpdateStaff(created.ID, UpdateStaffRequest{Status: &empty})
	if !errors.Is(err, ErrStaffDataValidation) {
		t.Fatalf("expected ErrStaffDataValidation, got %v", err)
	}
}

func TestSetFavouriteTogglesFlag(t *testing.T) {
	repo := newFakeStaffRepository()
	svc := NewStaffService(repo, nil)
	created, err := svc.CreateStaff(validCreateStaffRequest())
	if err != nil {
		t.Fatalf("setup create failed: %v", err)
	}

	staff, err := svc.SetFavourite(created.ID, true)
	if err != nil {
		t.Fatalf("expected favourite toggle to succeed, got %v", err)
	}
	if !staff.IsFavourite {
		t.Fatalf("expected favourite flag to be set")
	}
}

func TestSetFavouriteNotFound(t *testing.T) {
	repo := newFakeStaffRepository()
	svc := NewStaffService(repo, nil)

	_, err := svc.SetFavourite(42, true)
	if !errors.Is(err, ErrStaffNotFound) {
		t.Fatalf("expected ErrStaffNotFound, got %v", err)
	}
}

func TestDeleteStaffNotFound(t *testing.T) {
	repo := newFakeStaffRepository()
	svc := NewStaffService(repo, nil)

	if err := svc.DeleteStaff(42); !errors.Is(err, ErrStaffNotFound) {
		t.Fatalf("expected ErrStaffNotFound, got %v", err)
	}
}

func TestDeleteStaffMapsForeignKeyViolationToInUse(t *testing.T) {
	repo := newFakeStaffRepository()
	repo.deleteErr = repositories.ErrForeignKeyViolation
	svc := NewStaffService(repo, nil)

	if err := svc.DeleteStaff(1); !errors.Is(err, ErrStaffInUse) {
		t.Fatalf("expected ErrStaffInUse, got %v", err)
	}
}

func TestGetStaffDefaultsPagination(t *testing.T) {
	repo := newFakeStaffRepository()
	svc := NewStaffService(repo, nil)

	_, _, err := svc.GetStaff(models.StaffFilters{Page: -3, PageSize: 0})
	if err != nil {
		t.Fatalf("expected list to succeed, got %v", err)
	}
	if repo.lastFilters.Page != 1 || repo.lastFilters.PageSize != 10 {
		t.Fatalf("expected defaults page=1 page_size=10, got page=%d page_size=%d",
			repo.lastFilters.Page, repo.lastFilters.PageSize)
	}
}
