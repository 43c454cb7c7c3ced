package domain

// ValidationResult is the verdict of the booking validator.
// Rejections are expected user-input outcomes, not errors.
type ValidationResult string

const (
	ValidationAccepted                     ValidationResult = "accepted"
	ValidationRejectedUnknownService       ValidationResult = "unknown_service"
	ValidationRejectedExcludedDate         ValidationResult = "excluded_date"
	ValidationRejectedOutsideBusinessHours ValidationResult = "outside_business_hours"
	ValidationRejectedOutsideAdvanceWindow ValidationResult = "outside_advance_window"
	ValidationRejectedConflict             ValidationResult = "conflict"
)

func (r ValidationResult) IsAccepted() bool {
	return r == ValidationAccepted
}

func (r ValidationResult) String() string {
	return string(r)
}
