package availability

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/m04kA/DentalLab-BookingService/internal/domain"
)

var (
	// ErrEmptyCatalog is returned when no bookable service is configured
	ErrEmptyCatalog = errors.New("availability: service catalog is empty")

	// ErrInvalidService is returned for entries with an empty key or non-positive duration
	ErrInvalidService = errors.New("availability: invalid service catalog entry")

	// ErrDuplicateService is returned when two entries share a key
	ErrDuplicateService = errors.New("availability: duplicate service key")
)

// ServiceCatalog is the immutable set of bookable services, keyed by service key
type ServiceCatalog struct {
	byKey   map[string]domain.ServiceCatalogEntry
	ordered []domain.ServiceCatalogEntry
}

func NewServiceCatalog(entries []domain.ServiceCatalogEntry) (*ServiceCatalog, error) {
	if len(entries) == 0 {
		return nil, ErrEmptyCatalog
	}

	byKey := make(map[string]domain.ServiceCatalogEntry, len(entries))
	for _, e := range entries {
		e.Key = strings.TrimSpace(e.Key)
		if e.Key == "" {
			return nil, fmt.Errorf("%w: empty key (name %q)", ErrInvalidService, e.Name)
		}
		if e.DurationMinutes <= 0 {
			return nil, fmt.Errorf("%w: %s has duration %d", ErrInvalidService, e.Key, e.DurationMinutes)
		}
		if _, exists := byKey[e.Key]; exists {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateService, e.Key)
		}
		if e.Name == "" {
			e.Name = e.Key
		}
		byKey[e.Key] = e
	}

	ordered := make([]domain.ServiceCatalogEntry, 0, len(byKey))
	for _, e := range byKey {
		ordered = append(ordered, e)
	}
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].Key < ordered[j].Key })

	return &ServiceCatalog{byKey: byKey, ordered: ordered}, nil
}

// Lookup finds a service by key; surrounding whitespace is ignored as in NewServiceCatalog
func (c *ServiceCatalog) Lookup(key string) (domain.ServiceCatalogEntry, bool) {
	e, ok := c.byKey[strings.TrimSpace(key)]
	return e, ok
}

// All returns a copy of the entries ordered by key
func (c *ServiceCatalog) All() []domain.ServiceCatalogEntry {
	return append([]domain.ServiceCatalogEntry(nil), c.ordered...)
}

func (c *ServiceCatalog) Len() int {
	return len(c.ordered)
}

// MergeEntries returns base with overrides applied; an override replaces the base entry with the same key
func MergeEntries(base, overrides []domain.ServiceCatalogEntry) []domain.ServiceCatalogEntry {
	index := make(map[string]int, len(base))
	merged := make([]domain.ServiceCatalogEntry, 0, len(base)+len(overrides))
	for _, e := range base {
		e.Key = strings.TrimSpace(e.Key)
		index[e.Key] = len(merged)
		merged = append(merged, e)
	}
	for _, e := range overrides {
		e.Key = strings.TrimSpace(e.Key)
		if i, ok := index[e.Key]; ok {
			merged[i] = e
			continue
		}
		index[e.Key] = len(merged)
		merged = append(merged, e)
	}
	return merged
}
