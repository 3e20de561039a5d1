package models

import "time"

// WeekGrid is the 7-day by N-staff presentation matrix for the scheduler view.
type WeekGrid struct {
	WeekStart time.Time     `json:"week_start"`
	Days      []time.Time   `json:"days"` // 7 entries, weekStart .. weekStart+6
	Rows      []WeekGridRow `json:"rows"`
}

// WeekGridRow holds one staff member's cells for the week.
type WeekGridRow struct {
	StaffID  int64          `json:"staff_id"`
	FullName string         `json:"full_name"`
	JobTitle string         `json:"job_title"`
	Cells    []WeekGridCell `json:"cells"` // 7 entries, aligned with WeekGrid.Days
}

// WeekGridCell holds the shifts starting on one calendar day, sorted by start
// time ascending.
type WeekGridCell struct {
	Shifts []GridShift `json:"shifts"`
}

// GridShift is a schedule decorated with the presentation-side conflict flag.
// HasConflict is set when the shift overlaps its immediate predecessor in the
// cell; it is a visual warning only, not the authoritative check.
type GridShift struct {
	Schedule
	HasConflict bool `json:"has_conflict"`
}
