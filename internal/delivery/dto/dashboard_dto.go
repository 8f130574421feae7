package dto

// DashboardResponse aggregates the admin overview counters
type DashboardResponse struct {
	TotalUsers          int64             `json:"total_users"`
	TotalClients        int64             `json:"total_clients"`
	ActiveWorkers       int64             `json:"active_workers"`
	ActiveServices      int64             `json:"active_services"`
	TotalBookings       int64             `json:"total_bookings"`
	PendingPayments     int64             `json:"pending_payments"`
	AdminActions        int64             `json:"admin_actions"`
	BookingStatusCounts map[string]int64  `json:"booking_status_counts"`
	RecentBookings      []BookingResponse `json:"recent_bookings"`
	RecentReviews       []ReviewResponse  `json:"recent_reviews"`
}
