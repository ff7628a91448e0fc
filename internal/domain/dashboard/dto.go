package dashboard

import "github.com/dayflow-hr/hrms-backend-go/internal/domain/user"

// ========== COMBINED DASHBOARD ==========

// DashboardResponse is the combined response for the admin dashboard endpoint
type DashboardResponse struct {
	EmployeeSummary   EmployeeSummaryResponse   `json:"employee_summary"`
	AttendanceStats   AttendanceStatsResponse   `json:"attendance_stats"`
	MonthlyAttendance MonthlyAttendanceResponse `json:"monthly_attendance"`
	PendingLeaves     int64                     `json:"pending_leaves"`
	Departments       []user.DepartmentCount    `json:"departments"`
	RecentEmployees   []user.UserResponse       `json:"recent_employees"`
	LiveConnections   int                       `json:"live_connections"`
}

// ========== EMPLOYEE SUMMARY ==========

// EmployeeSummaryResponse counts approved employees and their payroll
type EmployeeSummaryResponse struct {
	TotalEmployee   int64  `json:"total_employee"`
	NewEmployee     int64  `json:"new_employee"` // joined within 30 days
	PendingApproval int64  `json:"pending_approval"`
	TotalPayroll    int64  `json:"total_payroll"`
	UpdatedAt       string `json:"updated_at"`
}

// ========== DAILY ATTENDANCE STATS ==========

// AttendanceStatsResponse represents today's attendance across approved employees.
// Absent counts everyone without a record of another kind.
type AttendanceStatsResponse struct {
	OnTime         int64   `json:"on_time"`
	Late           int64   `json:"late"`
	HalfDay        int64   `json:"half_day"`
	OnLeave        int64   `json:"on_leave"`
	Absent         int64   `json:"absent"`
	Total          int64   `json:"total"`
	PresentPercent float64 `json:"present_percent"`
	OnTimePercent  float64 `json:"on_time_percent"`
	LatePercent    float64 `json:"late_percent"`
	AbsentPercent  float64 `json:"absent_percent"`
	Date           string  `json:"date"` // Format: "YYYY-MM-DD"
}

// ========== MONTHLY ATTENDANCE ==========

// MonthlyAttendanceResponse represents monthly attendance summary with latest records
type MonthlyAttendanceResponse struct {
	OnTime         int64                  `json:"on_time"`
	Late           int64                  `json:"late"`
	HalfDay        int64                  `json:"half_day"`
	OnLeave        int64                  `json:"on_leave"`
	Absent         int64                  `json:"absent"`
	AttendanceRate float64                `json:"attendance_rate"`
	Records        []AttendanceRecordItem `json:"records"` // Latest 10 records
	Month          string                 `json:"month"`   // Format: "YYYY-MM"
}

// AttendanceRecordItem represents a single attendance record in the list
type AttendanceRecordItem struct {
	No           int     `json:"no"`
	EmployeeID   string  `json:"employee_id"`
	EmployeeName string  `json:"employee_name"`
	Date         string  `json:"date"`
	Status       string  `json:"status"`
	CheckIn      *string `json:"check_in,omitempty"` // Format: "HH:MM"
}
