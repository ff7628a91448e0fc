package dashboard

import "context"

// DashboardService defines the interface for dashboard operations
type DashboardService interface {
	// GetDashboard returns the combined dashboard. month (YYYY-MM) selects the
	// monthly attendance section and defaults to the current month.
	GetDashboard(ctx context.Context, month string) (*DashboardResponse, error)
}
