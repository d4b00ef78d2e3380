package dashboard

// Overview is the role-scoped management dashboard payload.
type Overview struct {
	TotalEmployees  int `json:"total_employees"`
	TotalBranches   int `json:"total_branches"`
	TotalGroups     int `json:"total_groups"`
	CheckInsToday   int `json:"checkins_today"`
	PresentToday    int `json:"present_today"`
	LateToday       int `json:"late_today"`
	InvalidToday    int `json:"invalid_today"`
	ActivePeriods   int `json:"active_periods"`
	PendingCheckOut int `json:"pending_checkout"`
}

// EmployeeOverview is the employee's own dashboard payload.
type EmployeeOverview struct {
	CheckedInToday   bool     `json:"checked_in_today"`
	CheckedOutToday  bool     `json:"checked_out_today"`
	WeekDaysPresent  int      `json:"week_days_present"`
	WeekDaysLate     int      `json:"week_days_late"`
	MonthDaysPresent int      `json:"month_days_present"`
	MonthDaysLate    int      `json:"month_days_late"`
	MonthMinutes     int      `json:"month_minutes"`
	AvgDailyMinutes  float64  `json:"avg_daily_minutes"`
	GroupNames       []string `json:"group_names"`
}
