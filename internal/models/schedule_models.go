package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Schedule represents one assignment of a staff member to a client engagement
// over a contiguous time range. The range is half-open: [StartTime, EndTime).
type Schedule struct {
	ID         int64           `json:"id" db:"id"`
	StaffID    int64           `json:"staff_id" db:"staff_id"`
	ClientName string          `json:"client_name" db:"client_name"`
	Address    string          `json:"address" db:"address"`
	StartTime  time.Time       `json:"start_time" db:"start_time"`
	EndTime    time.Time       `json:"end_time" db:"end_time"`
	ShiftBonus decimal.Decimal `json:"shift_bonus" db:"shift_bonus"`
	Remarks    *string         `json:"remarks,omitempty" db:"remarks"`
	CreatedAt  time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at" db:"updated_at"`
	Staff      *StaffSummary   `json:"staff,omitempty"`
}

// ScheduleFilters carries the list query parameters for schedules.
type ScheduleFilters struct {
	Search   *string // substring match against client_name
	StaffID  *int64
	Page     int
	PageSize int
}

// PaginationMeta is returned alongside every paginated list.
type PaginationMeta struct {
	Total      int `json:"total"`
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalPages int `json:"total_pages"`
}

// NewPaginationMeta computes the page count for a result set.
func NewPaginationMeta(total, page, pageSize int) PaginationMeta {
	totalPages := 0
	if pageSize > 0 {
		totalPages = (total + pageSize - 1) / pageSize
	}
	return PaginationMeta{Total: total, Page: page, PageSize: pageSize, TotalPages: totalPages}
}
