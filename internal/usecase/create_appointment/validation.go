package create_appointment

import (
	"fmt"
	"net/mail"
	"strings"
	"unicode/utf8"

	"github.com/m04kA/DentalLab-BookingService/internal/domain"
)

const (
	minPhoneDigits = 7
	maxPhoneDigits = 15
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	// Проверяем, что дата не является нулевой
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	// Проверяем, что время начала указано
	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}

	// Валидируем формат времени
	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}

	if strings.TrimSpace(req.ServiceKey) == "" {
		return fmt.Errorf("%w: serviceKey is required", ErrInvalidInput)
	}

	name := strings.TrimSpace(req.PatientName)
	if name == "" {
		return fmt.Errorf("%w: patientName is required", ErrInvalidInput)
	}
	if utf8.RuneCountInString(name) > domain.MaxPatientNameLength {
		return fmt.Errorf("%w: patientName must be at most %d characters", ErrInvalidInput, domain.MaxPatientNameLength)
	}

	if err := validatePhone(req.Phone); err != nil {
		return err
	}

	if req.Email != nil && strings.TrimSpace(*req.Email) != "" {
		if _, err := mail.ParseAddress(strings.TrimSpace(*req.Email)); err != nil {
			return fmt.Errorf("%w: invalid email", ErrInvalidInput)
		}
	}

	if req.Notes != nil && utf8.RuneCountInString(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes must be at most %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	return nil
}

// validatePhone допускает цифры, пробелы, скобки, дефисы и ведущий плюс
func validatePhone(phone string) error {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return fmt.Errorf("%w: phone is required", ErrInvalidInput)
	}

	digits := 0
	for i, r := range phone {
		switch {
		case r >= '0' && r <= '9':
			digits++
		case r == '+' && i == 0:
		case r == ' ' || r == '-' || r == '(' || r == ')':
		default:
			return fmt.Errorf("%w: phone contains invalid character %q", ErrInvalidInput, r)
		}
	}

	if digits < minPhoneDigits || digits > maxPhoneDigits {
		return fmt.Errorf("%w: phone must contain %d-%d digits", ErrInvalidInput, minPhoneDigits, maxPhoneDigits)
	}

	return nil
}

// rejectionError переводит отказ валидатора в ошибку usecase
func rejectionError(result domain.ValidationResult) error {
	switch result {
	case domain.ValidationRejectedUnknownService:
		return ErrUnknownService
	case domain.ValidationRejectedExcludedDate:
		return ErrExcludedDate
	case domain.ValidationRejectedOutsideBusinessHours:
		return ErrOutsideBusinessHours
	case domain.ValidationRejectedOutsideAdvanceWindow:
		return ErrOutsideAdvanceWindow
	case domain.ValidationRejectedConflict:
		return ErrSlotNotAvailable
	default:
		return fmt.Errorf("%w: unexpected validation result %q", ErrInternal, result)
	}
}

// normalizeOptional обрезает пробелы и превращает пустую строку в nil
func normalizeOptional(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
