package get_available_slots

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/DentalLab-BookingService/internal/domain"
	getAvailableSlots "github.com/m04kA/DentalLab-BookingService/internal/usecase/get_available_slots"
	"github.com/m04kA/DentalLab-BookingService/pkg/logger"
	"github.com/m04kA/DentalLab-BookingService/pkg/types"
)

type fakeUseCase struct {
	resp    *getAvailableSlots.Response
	err     error
	lastReq *getAvailableSlots.Request
}

func (f *fakeUseCase) Execute(ctx context.Context, req *getAvailableSlots.Request) (*getAvailableSlots.Response, error) {
	f.lastReq = req
	return f.resp, f.err
}

func serve(t *testing.T, uc *fakeUseCase, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	NewHandler(uc, logger.NewNop()).Handle(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestHandle_OK(t *testing.T) {
	uc := &fakeUseCase{resp: &getAvailableSlots.Response{
		Date:            time.Date(2024, 12, 21, 0, 0, 0, 0, time.UTC),
		ServiceKey:      "consultation",
		ServiceName:     "Consultation",
		DurationMinutes: 30,
		Slots: []getAvailableSlots.Slot{
			{StartTime: types.MustTimeString("09:00"), EndTime: types.MustTimeString("09:30"), DurationMinutes: 30, Available: true},
			{StartTime: types.MustTimeString("09:30"), EndTime: types.MustTimeString("10:00"), DurationMinutes: 30, Reason: domain.ValidationRejectedConflict},
		},
	}}

	rec := serve(t, uc, "/api/v1/available-slots?service=consultation&date=2024-12-21")
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, "consultation", uc.lastReq.ServiceKey)
	assert.Equal(t, 21, uc.lastReq.Date.Day())

	var body SlotsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "2024-12-21", body.Date)
	assert.Equal(t, 1, body.AvailableCount)
	require.Len(t, body.Slots, 2)
	assert.Nil(t, body.Slots[0].Reason)
	require.NotNil(t, body.Slots[1].Reason)
	assert.Equal(t, "conflict", *body.Slots[1].Reason)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name       string
		target     string
		ucErr      error
		wantStatus int
	}{
		{"missing service", "/api/v1/available-slots?date=2024-12-21", nil, http.StatusBadRequest},
		{"missing date", "/api/v1/available-slots?service=consultation", nil, http.StatusBadRequest},
		{"bad date", "/api/v1/available-slots?service=consultation&date=21.12.2024", nil, http.StatusBadRequest},
		{"unknown service", "/api/v1/available-slots?service=x&date=2024-12-21", getAvailableSlots.ErrServiceNotFound, http.StatusNotFound},
		{"past date", "/api/v1/available-slots?service=x&date=2024-12-21", getAvailableSlots.ErrInvalidDate, http.StatusBadRequest},
		{"too far", "/api/v1/available-slots?service=x&date=2024-12-21", getAvailableSlots.ErrDateTooFarInFuture, http.StatusBadRequest},
		{"internal", "/api/v1/available-slots?service=x&date=2024-12-21", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(t, &fakeUseCase{err: tt.ucErr}, tt.target)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
