package models

// DashboardSummary aggregates the headline numbers for the landing page.
type DashboardSummary struct {
	TotalStaff      int                 `json:"total_staff"`
	ActiveSchedules int                 `json:"active_schedules"`
	FavouriteStaff  int                 `json:"favourite_staff"`
	RecentActivity  []DashboardActivity `json:"recent_activity"`
}

// DashboardActivity is one entry in the recent-assignments feed.
type DashboardActivity struct {
	ScheduleID int64  `json:"schedule_id"`
	StaffName  string `json:"staff_name"`
	Action     string `json:"action"`
}
