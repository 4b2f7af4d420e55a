package repository

// DashboardStats agrega los contadores que alimentan los tableros.
type DashboardStats struct {
	JobsByStatus      map[string]int
	PendingInvoices   int
	OpenSubstitutions int
}

// DashboardRepository define el puerto de consultas agregadas para los tableros.
type DashboardRepository interface {
	Stats() (*DashboardStats, error)
}
