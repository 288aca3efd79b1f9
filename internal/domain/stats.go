package domain

// OrgStats are organisation-wide counters for managers.
type OrgStats struct {
	TotalEmployees  int
	ActiveEmployees int
	Departments     int
	PendingLeaves   int
	PresentToday    int
	OpenJobs        int
	OpenTasks       int
}

// EmployeeStats are counters scoped to one employee.
type EmployeeStats struct {
	PendingLeaves     int
	OpenTasks         int
	DaysPresentMonth  int
	ApprovedLeaveDays int
}
