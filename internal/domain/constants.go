package domain

// Default calendar policy values
const (
	DefaultStartHour       = 8
	DefaultEndHour         = 18
	DefaultSlotStepMinutes = 30
	DefaultMinAdvanceHours = 24
	DefaultMaxAdvanceDays  = 90
)

// Business validation constants
const (
	MaxNotesLength              = 500
	MaxPatientNameLength        = 200
	MaxCancellationReasonLength = 500
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// InactiveStatuses statuses that no longer occupy a time slot
var InactiveStatuses = []AppointmentStatus{
	StatusCancelled,
	StatusNoShow,
}

// ActiveStatuses statuses that occupy a time slot
var ActiveStatuses = []AppointmentStatus{
	StatusPending,
	StatusConfirmed,
	StatusCompleted,
}
