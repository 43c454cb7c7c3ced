package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/DentalLab-BookingService/pkg/types"
)

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	StatusPending   AppointmentStatus = "pending"
	StatusConfirmed AppointmentStatus = "confirmed"
	StatusCompleted AppointmentStatus = "completed"
	StatusCancelled AppointmentStatus = "cancelled"
	StatusNoShow    AppointmentStatus = "no_show"
)

// Appointment is a persisted booking of a lab service by a patient
type Appointment struct {
	ID              uuid.UUID
	Date            time.Time // calendar day, midnight in clinic location
	StartTime       types.TimeString
	DurationMinutes int
	Status          AppointmentStatus

	// Denormalized from the service catalog at booking time
	ServiceKey  string
	ServiceName string

	PatientName string
	Phone       string
	Email       *string
	Notes       *string

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the appointment still occupies its time slot
func (a *Appointment) IsActive() bool {
	return a.Status != StatusCancelled && a.Status != StatusNoShow
}

// CanBeCancelled returns true if the appointment can be cancelled
func (a *Appointment) CanBeCancelled() bool {
	return a.Status == StatusPending || a.Status == StatusConfirmed
}

// CanTransitionTo reports whether a back-office status change is allowed.
// Cancellation has its own operation and is not a transition here.
func (a *Appointment) CanTransitionTo(next AppointmentStatus) bool {
	switch a.Status {
	case StatusPending:
		return next == StatusConfirmed || next == StatusNoShow
	case StatusConfirmed:
		return next == StatusCompleted || next == StatusNoShow
	default:
		return false
	}
}

// ParseStatus validates a status name
func ParseStatus(s string) (AppointmentStatus, bool) {
	switch status := AppointmentStatus(s); status {
	case StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled, StatusNoShow:
		return status, true
	default:
		return "", false
	}
}

// EndTime returns start + duration; invalid values yield an empty TimeString
func (a *Appointment) EndTime() types.TimeString {
	end, err := a.StartTime.AddMinutes(a.DurationMinutes)
	if err != nil {
		return ""
	}
	return end
}

// DayAppointmentsFilter selects the appointments of one day
type DayAppointmentsFilter struct {
	Date            time.Time
	Status          *AppointmentStatus
	IncludeInactive bool // include cancelled and no-show
}
