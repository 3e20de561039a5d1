package models

import "time"

// Gender values accepted for a staff member.
const (
	GenderMale      = "male"
	GenderFemale    = "female"
	GenderNonBinary = "nonBinary"
)

// IsValidGender reports whether g is one of the known gender values.
func IsValidGender(g string) bool {
	switch g {
	case GenderMale, GenderFemale, GenderNonBinary:
		return true
	}
	return false
}

// Staff status values. Status is free text in the store; these are the values
// the application itself writes.
const (
	StaffStatusActive     = "active"
	StaffStatusInactive   = "inactive"
	StaffStatusTerminated = "terminated"
)

// Staff represents an employee in the directory.
type Staff struct {
	ID          int64     `json:"id" db:"id"`
	FullName    string    `json:"full_name" db:"full_name"`
	JobTitle    string    `json:"job_title" db:"job_title"`
	Gender      string    `json:"gender" db:"gender"`
	DateOfBirth *string   `json:"dob,omitempty" db:"dob"` // YYYY-MM-DD
	Phone       string    `json:"phone" db:"phone"`
	Email       string    `json:"email" db:"email"`
	Address     *string   `json:"address,omitempty" db:"address"`
	Nationality *string   `json:"nationality,omitempty" db:"nationality"`
	IsActive    bool      `json:"is_active" db:"is_active"`
	IsFavourite bool      `json:"is_favourite" db:"is_favourite"`
	Status      string    `json:"status" db:"status"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// StaffSummary is the display projection joined onto schedules. It is
// intentionally not a full Staff record.
type StaffSummary struct {
	FullName string `json:"full_name"`
	JobTitle string `json:"job_title"`
	Status   string `json:"status"`
}

// StaffFilters carries the list query parameters for the staff directory.
type StaffFilters struct {
	Search   *string
	Status   *string
	Page     int
	PageSize int
}
