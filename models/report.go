package models

// AvailabilityReport partitions room ids by occupancy, each list ascending.
type AvailabilityReport struct {
	Occupied      []int `json:"occupied"`
	Vacant        []int `json:"vacant"`
	OccupiedCount int   `json:"occupied_count"`
	VacantCount   int   `json:"vacant_count"`
}

// CategorySummary aggregates the rooms of one category.
type CategorySummary struct {
	Category string  `json:"category"`
	Total    int     `json:"total"`
	Vacant   int     `json:"vacant"`
	MinCost  float64 `json:"min_cost"`
}
