package dto

import "github.com/emsworks/employment-service/internal/domain"

// OrgStatsResponse organisation counters.
type OrgStatsResponse struct {
	TotalEmployees  int `json:"total_employees"`
	ActiveEmployees int `json:"active_employees"`
	Departments     int `json:"departments"`
	PendingLeaves   int `json:"pending_leaves"`
	PresentToday    int `json:"present_today"`
	OpenJobs        int `json:"open_jobs"`
	OpenTasks       int `json:"open_tasks"`
}

// EmployeeStatsResponse personal counters.
type EmployeeStatsResponse struct {
	PendingLeaves     int `json:"pending_leaves"`
	OpenTasks         int `json:"open_tasks"`
	DaysPresentMonth  int `json:"days_present_this_month"`
	ApprovedLeaveDays int `json:"approved_leave_days_this_month"`
}

// DashboardResponse body of GET /dashboard/stats.
type DashboardResponse struct {
	Organisation *OrgStatsResponse      `json:"organisation,omitempty"`
	Self         *EmployeeStatsResponse `json:"self,omitempty"`
}

// NewDashboardResponse maps dashboard counters.
func NewDashboardResponse(org *domain.OrgStats, self *domain.EmployeeStats) DashboardResponse {
	var resp DashboardResponse
	if org != nil {
		resp.Organisation = &OrgStatsResponse{
			TotalEmployees:  org.TotalEmployees,
			ActiveEmployees: org.ActiveEmployees,
			Departments:     org.Departments,
			PendingLeaves:   org.PendingLeaves,
			PresentToday:    org.PresentToday,
			OpenJobs:        org.OpenJobs,
			OpenTasks:       org.OpenTasks,
		}
	}
	if self != nil {
		resp.Self = &EmployeeStatsResponse{
			PendingLeaves:     self.PendingLeaves,
			OpenTasks:         self.OpenTasks,
			DaysPresentMonth:  self.DaysPresentMonth,
			ApprovedLeaveDays: self.ApprovedLeaveDays,
		}
	}
	return resp
}
