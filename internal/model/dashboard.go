package model

// DashboardStats are the per-doctor aggregates shown on the dashboard.
type DashboardStats struct {
	TodayAppointments   int64 `db:"today_appointments"`
	TotalPatients       int64 `db:"total_patients"`
	PendingLabResults   int64 `db:"pending_lab_results"`
	ActivePrescriptions int64 `db:"active_prescriptions"`
}

// ProfileStats are the per-doctor counters shown on the profile page.
type ProfileStats struct {
	TotalAppointments  int64 `db:"total_appointments"`
	DistinctPatients   int64 `db:"distinct_patients"`
	TotalPrescriptions int64 `db:"total_prescriptions"`
}
