package domain

import "errors"

// Storage-independent errors returned by every appointment store
var (
	ErrAppointmentNotFound = errors.New("domain: appointment not found")
	ErrSlotTaken           = errors.New("domain: time slot already taken")
)
