package services

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"staffdesk_backend/internal/models"
	"staffdesk_backend/internal/repositories"
)

// ErrGridDateFormat is returned when the week date parameter cannot be parsed.
var ErrGridDateFormat = errors.New("invalid date format for week grid, please use YYYY-MM-DD")

const daysPerWeek = 7

// CalendarService builds the weekly scheduler view.
type CalendarService interface {
	GetWeekGrid(dateStr string) (*models.WeekGrid, error)
}

type calendarService struct {
	scheduleRepo repositories.ScheduleRepository
	staffRepo    repositories.StaffRepository
}

// NewCalendarService creates a new instance of CalendarService.
func NewCalendarService(scr repositories.ScheduleRepository, str repositories.StaffRepository) CalendarService {
	return &calendarService{scheduleRepo: scr, staffRepo: str}
}

// WeekStart snaps t back to the Monday of its week, at midnight in t's
// location.
func WeekStart(t time.Time) time.Time {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	offset := (int(day.Weekday()) + 6) % 7 // Monday = 0
	return day.AddDate(0, 0, -offset)
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}

// BuildWeekGrid lays out one row per staff member and one cell per calendar
// day. A shift lands in the cell of the day it starts on; a shift spanning
// midnight is not split across cells. Within a cell shifts are sorted by start
// time, and each one is flagged when it overlaps its immediate predecessor.
// The flags are a visual warning for data that slipped past the authoritative
// check and never cross day boundaries.
func BuildWeekGrid(weekStart time.Time, staffList []models.Staff, schedules []models.Schedule) *models.WeekGrid {
	days := make([]time.Time, daysPerWeek)
	for i := range days {
		days[i] = weekStart.AddDate(0, 0, i)
	}

	rows := make([]models.WeekGridRow, 0, len(staffList))
	for _, member := range staffList {
		row := models.WeekGridRow{
			StaffID:  member.ID,
			FullName: member.FullName,
			JobTitle: member.JobTitle,
			Cells:    make([]models.WeekGridCell, daysPerWeek),
		}

		for dayIdx, day := range days {
			cellShifts := []models.GridShift{}
			for _, schedule := range schedules {
				if schedule.StaffID == member.ID && sameDay(schedule.StartTime, day) {
					cellShifts = append(cellShifts, models.GridShift{Schedule: schedule})
				}
			}
			sort.Slice(cellShifts, func(i, j int) bool {
				return cellShifts[i].StartTime.Before(cellShifts[j].StartTime)
			})
			for i := 1; i < len(cellShifts); i++ {
				prev := cellShifts[i-1]
				cellShifts[i].HasConflict = IntervalsOverlap(
					prev.StartTime, prev.EndTime,
					cellShifts[i].StartTime, cellShifts[i].EndTime,
				)
			}
			row.Cells[dayIdx] = models.WeekGridCell{Shifts: cellShifts}
		}
		rows = append(rows, row)
	}

	return &models.WeekGrid{WeekStart: weekStart, Days: days, Rows: rows}
}

func (s *calendarService) GetWeekGrid(dateStr string) (*models.WeekGrid, error) {
	anchor := time.Now()
	if dateStr != "" {
		parsed, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			return nil, ErrGridDateFormat
		}
		anchor = parsed
	}
	weekStart := WeekStart(anchor)
	weekEnd := weekStart.AddDate(0, 0, daysPerWeek)

	staffList, err := s.staffRepo.GetActiveStaff()
	if err != nil {
		return nil, fmt.Errorf("failed to get staff for week grid: %w", err)
	}

	schedules, err := s.scheduleRepo.GetSchedulesForRange(weekStart, weekEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to get schedules for week grid: %w", err)
	}

	return BuildWeekGrid(weekStart, staffList, schedules), nil
}
