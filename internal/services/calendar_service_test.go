package services

import (
	"testing"
	"time"

	"staffdesk_backend/internal/models"
)

func gridStaff(id int64, name, title string) models.Staff {
	return models.Staff{ID: id, FullName: name, JobTitle: title, Status: models.StaffStatusActive}
}

func gridSchedule(t *testing.T, id, staffID int64, client, start, end string) models.Schedule {
	t.Helper()
	return models.Schedule{
		ID:         id,
		StaffID:    staffID,
		ClientName: client,
		StartTime:  mustTime(t, start),
		EndTime:    mustTime(t, end),
	}
}

func TestWeekStartSnapsToMonday(t *testing.T) {
	// 2025-03-13 is a Thursday; its week starts Monday 2025-03-10.
	thursday := mustTime(t, "2025-03-13T15:30:00")
	weekStart := WeekStart(thursday)

	if weekStart.Weekday() != time.Monday {
		t.Fatalf("expected Monday, got %v", weekStart.Weekday())
	}
	if weekStart.Format("2006-01-02") != "2025-03-10" {
		t.Fatalf("expected week start 2025-03-10, got %s", weekStart.Format("2006-01-02"))
	}
	if weekStart.Hour() != 0 || weekStart.Minute() != 0 {
		t.Fatalf("expected week start at midnight, got %v", weekStart)
	}
}

func TestWeekStartIsIdempotentOnMonday(t *testing.T) {
	monday := mustTime(t, "2025-03-10T00:00:00")
	if got := WeekStart(monday); !got.Equal(monday) {
		t.Fatalf("expected Monday to snap to itself, got %v", got)
	}
}

func TestBuildWeekGridBucketsShiftsByStartDay(t *testing.T) {
	weekStart := mustTime(t, "2025-03-10T00:00:00")
	staff := []models.Staff{gridStaff(1, "Amira Hassan", "Care Assistant")}
	schedules := []models.Schedule{
		gridSchedule(t, 1, 1, "Acme Ltd", "2025-03-10T09:00:00", "2025-03-10T17:00:00"),
		gridSchedule(t, 2, 1, "Globex", "2025-03-12T09:00:00", "2025-03-12T17:00:00"),
	}

	grid := BuildWeekGrid(weekStart, staff, schedules)

	if len(grid.Days) != 7 {
		t.Fatalf("expected 7 days, got %d", len(grid.Days))
	}
	if len(grid.Rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(grid.Rows))
	}
	row := grid.Rows[0]
	if len(row.Cells[0].Shifts) != 1 || row.Cells[0].Shifts[0].ClientName != "Acme Ltd" {
		t.Fatalf("expected Monday cell to hold the Acme shift, got %+v", row.Cells[0])
	}
	if len(row.Cells[2].Shifts) != 1 || row.Cells[2].Shifts[0].ClientName != "Globex" {
		t.Fatalf("expected Wednesday cell to hold the Globex shift, got %+v", row.Cells[2])
	}
	for _, idx := range []int{1, 3, 4, 5, 6} {
		if len(row.Cells[idx].Shifts) != 0 {
			t.Fatalf("expected cell %d to be empty, got %d shifts", idx, len(row.Cells[idx].Shifts))
		}
	}
}

func TestBuildWeekGridSortsCellShiftsByStartTime(t *testing.T) {
	weekStart := mustTime(t, "2025-03-10T00:00:00")
	staff := []models.Staff{gridStaff(1, "Amira Hassan", "Care Assistant")}
	schedules := []models.Schedule{
		gridSchedule(t, 1, 1, "Afternoon", "2025-03-10T13:00:00", "2025-03-10T17:00:00"),
		gridSchedule(t, 2, 1, "Morning", "2025-03-10T08:00:00", "2025-03-10T12:00:00"),
	}

	grid := BuildWeekGrid(weekStart, staff, schedules)

	shifts := grid.Rows[0].Cells[0].Shifts
	if len(shifts) != 2 {
		t.Fatalf("expected 2 shifts in Monday cell, got %d", len(shifts))
	}
	if shifts[0].ClientName != "Morning" || shifts[1].ClientName != "Afternoon" {
		t.Fatalf("expected chronological order, got %s then %s", shifts[0].ClientName, shifts[1].ClientName)
	}
}

func TestBuildWeekGridFlagsOnlyTheLaterOfAnOverlappingPair(t *testing.T) {
	weekStart := mustTime(t, "2025-03-10T00:00:00")
	staff := []models.Staff{gridStaff(1, "Amira Hassan", "Care Assistant")}
	schedules := []models.Schedule{
		gridSchedule(t, 1, 1, "First", "2025-03-10T09:00:00", "2025-03-10T10:00:00"),
		gridSchedule(t, 2, 1, "Second", "2025-03-10T09:30:00", "2025-03-10T11:00:00"),
	}

	grid := BuildWeekGrid(weekStart, staff, schedules)

	shifts := grid.Rows[0].Cells[0].Shifts
	if shifts[0].HasConflict {
		t.Fatalf("expected the earlier shift not to be flagged")
	}
	if !shifts[1].HasConflict {
		t.Fatalf("expected the later-starting shift to be flagged")
	}
}

func TestBuildWeekGridDoesNotFlagBackToBackShifts(t *testing.T) {
	weekStart := mustTime(t, "2025-03-10T00:00:00")
	staff := []models.Staff{gridStaff(1, "Amira Hassan", "Care Assistant")}
	schedules := []models.Schedule{
		gridSchedule(t, 1, 1, "First", "2025-03-10T09:00:00", "2025-03-10T10:00:00"),
		gridSchedule(t, 2, 1, "Second", "2025-03-10T10:00:00", "2025-03-10T11:00:00"),
	}

	grid := BuildWeekGrid(weekStart, staff, schedules)

	for _, shift := range grid.Rows[0].Cells[0].Shifts {
		if shift.HasConflict {
			t.Fatalf("expected no conflict flag on back-to-back shifts, %s was flagged", shift.ClientName)
		}
	}
}

func TestBuildWeekGridKeepsStaffRowsSeparate(t *testing.T) {
	weekStart := mustTime(t, "2025-03-10T00:00:00")
	staff := []models.Staff{
		gridStaff(1, "Amira Hassan", "Care Assistant"),
		gridStaff(2, "Ben Okafor", "Nurse"),
	}
	// Identical time ranges on different staff must never conflict.
	schedules := []models.Schedule{
		gridSchedule(t, 1, 1, "Acme Ltd", "2025-03-10T09:00:00", "2025-03-10T17:00:00"),
		gridSchedule(t, 2, 2, "Acme Ltd", "2025-03-10T09:00:00", "2025-03-10T17:00:00"),
	}

	grid := BuildWeekGrid(weekStart, staff, schedules)

	for _, row := range grid.Rows {
		shifts := row.Cells[0].Shifts
		if len(shifts) != 1 {
			t.Fatalf("expected one shift per staff row, got %d for staff %d", len(shifts), row.StaffID)
		}
		if shifts[0].HasConflict {
			t.Fatalf("expected no conflict across staff members, staff %d was flagged", row.StaffID)
		}
	}
}

func TestBuildWeekGridMidnightSpanningShiftStaysInStartDay(t *testing.T) {
	weekStart := mustTime(t, "2025-03-10T00:00:00")
	staff := []models.Staff{gridStaff(1, "Amira Hassan", "Care Assistant")}
	schedules := []models.Schedule{
		gridSchedule(t, 1, 1, "Night Shift", "2025-03-10T22:00:00", "2025-03-11T06:00:00"),
	}

	grid := BuildWeekGrid(weekStart, staff, schedules)

	row := grid.Rows[0]
	if len(row.Cells[0].Shifts) != 1 {
		t.Fatalf("expected the night shift in its start day cell, got %d shifts", len(row.Cells[0].Shifts))
	}
	if len(row.Cells[1].Shifts) != 0 {
		t.Fatalf("expected the night shift not to be split into the next day")
	}
}

func TestBuildWeekGridToleratesMissingJobTitle(t *testing.T) {
	weekStart := mustTime(t, "2025-03-10T00:00:00")
	staff := []models.Staff{gridStaff(1, "Amira Hassan", "")}

	grid := BuildWeekGrid(weekStart, staff, nil)

	if grid.Rows[0].JobTitle != "" {
		t.Fatalf("expected empty job title to render as empty string, got %q", grid.Rows[0].JobTitle)
	}
	for i, cell := range grid.Rows[0].Cells {
		if cell.Shifts == nil {
			t.Fatalf("expected cell %d to hold an empty slice, got nil", i)
		}
	}
}
