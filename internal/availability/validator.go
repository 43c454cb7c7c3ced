package availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/DentalLab-BookingService/internal/domain"
	"github.com/m04kA/DentalLab-BookingService/pkg/types"
)

// ErrFetchAppointments wraps failures of the appointment source
var ErrFetchAppointments = errors.New("availability: failed to fetch appointments")

// AppointmentFetcher returns a consistent snapshot of the active appointments of a day
type AppointmentFetcher interface {
	FetchAppointmentsForDate(ctx context.Context, date time.Time) ([]domain.ExistingAppointment, error)
}

// Request is a (date, time, service) triple to check
type Request struct {
	Date       time.Time
	StartTime  types.TimeString
	ServiceKey string
}

// Validator decides whether a request is bookable.
// It does not lock anything: an Accepted verdict only reflects the snapshot it was given.
type Validator struct {
	policy  *CalendarPolicy
	catalog *ServiceCatalog
	fetcher AppointmentFetcher
}

func NewValidator(policy *CalendarPolicy, catalog *ServiceCatalog, fetcher AppointmentFetcher) *Validator {
	return &Validator{
		policy:  policy,
		catalog: catalog,
		fetcher: fetcher,
	}
}

func (v *Validator) Policy() *CalendarPolicy {
	return v.policy
}

func (v *Validator) Catalog() *ServiceCatalog {
	return v.catalog
}

// Evaluate applies the rules in order against the given snapshot:
// unknown service, excluded date, business hours, advance window, conflict.
func (v *Validator) Evaluate(req Request, existing []domain.ExistingAppointment, now time.Time) domain.ValidationResult {
	service, ok := v.catalog.Lookup(req.ServiceKey)
	if !ok {
		return domain.ValidationRejectedUnknownService
	}

	date := v.policy.Day(req.Date)
	if !v.policy.IsBookableDate(date) {
		return domain.ValidationRejectedExcludedDate
	}

	if !v.policy.IsWithinBusinessHours(req.StartTime, service.DurationMinutes) {
		return domain.ValidationRejectedOutsideBusinessHours
	}

	slot := domain.TimeSlot{Date: date, StartTime: req.StartTime}
	if !v.policy.IsWithinAdvanceWindow(slot.StartAt(), now) {
		return domain.ValidationRejectedOutsideAdvanceWindow
	}

	if HasConflict(slot, service.DurationMinutes, existing) {
		return domain.ValidationRejectedConflict
	}

	return domain.ValidationAccepted
}

// Validate fetches the current appointments of the requested day and evaluates the request.
// The fetch is skipped when the request is rejected before the conflict rule.
// Call it with the transaction context of the write that persists the appointment.
func (v *Validator) Validate(ctx context.Context, req Request, now time.Time) (domain.ValidationResult, error) {
	if result := v.Evaluate(req, nil, now); !result.IsAccepted() {
		return result, nil
	}

	existing, err := v.fetcher.FetchAppointmentsForDate(ctx, v.policy.Day(req.Date))
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrFetchAppointments, err)
	}

	return v.Evaluate(req, existing, now), nil
}
