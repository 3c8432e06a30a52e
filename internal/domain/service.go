package domain

import "time"

// Service represents an entry of the shop's service catalog
type Service struct {
	ID              int64
	Name            string
	Description     string
	Price           float64
	DurationMinutes int
	CreatedAt       time.Time
}

// DefaultServices catalog seeded into an empty database
var DefaultServices = []Service{
	{Name: "Classic Haircut", Description: "Traditional barbershop haircut", Price: 30.00, DurationMinutes: 30},
	{Name: "Beard Trim", Description: "Professional beard grooming", Price: 20.00, DurationMinutes: 30},
	{Name: "Hair & Beard Combo", Description: "Complete grooming package", Price: 45.00, DurationMinutes: 60},
	{Name: "Hot Towel Shave", Description: "Traditional straight razor shave", Price: 35.00, DurationMinutes: 45},
}
