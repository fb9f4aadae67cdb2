package entity

import "time"

// Estados de una vacunación programada.
const (
	VaccinationStatusScheduled = "scheduled"
	VaccinationStatusCompleted = "completed"
	VaccinationStatusCancelled = "cancelled"
)

// Vaccination representa una vacunación programada para un lote de aves.
// El motor de alertas solo la lee; su CRUD vive en el módulo de lotes.
type Vaccination struct {
	ID            string
	UserID        string
	FlockID       string
	VaccineName   string
	ScheduledDate time.Time
	Status        string
	CreatedAt     time.Time
}
