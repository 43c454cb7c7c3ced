package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordValidation(t *testing.T) {
	m := NewWithRegistry("dentallab", prometheus.NewRegistry())

	m.RecordValidation("accepted")
	m.RecordValidation("accepted")
	m.RecordValidation("conflict")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.ValidationResults.WithLabelValues("dentallab", "accepted")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ValidationResults.WithLabelValues("dentallab", "conflict")))
}

func TestNilMetricsAreNoop(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.RecordValidation("accepted")
		m.RecordRateLimited("/api/v1/appointments")
	})
}
