package get_available_slots

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"slices"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/servihogar-turnos/internal/domain"
	getAvailableSlots "github.com/m04kA/servihogar-turnos/internal/usecase/get_available_slots"
	"github.com/m04kA/servihogar-turnos/pkg/logger"
)

type stubUseCase struct {
	got  *getAvailableSlots.Request
	resp *getAvailableSlots.Response
	err  error
}

func (s *stubUseCase) Execute(_ context.Context, req *getAvailableSlots.Request) (*getAvailableSlots.Response, error) {
	s.got = req
	return s.resp, s.err
}

func serve(h *Handler, url string) *httptest.ResponseRecorder {
	router := mux.NewRouter()
	router.HandleFunc("/professionals/{professionalId}/available-slots", h.Handle)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, url, nil))
	return rec
}

func TestHandle_ListsSlots(t *testing.T) {
	monday := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	uc := &stubUseCase{resp: &getAvailableSlots.Response{
		ProfessionalID:  7,
		ServiceID:       10,
		FromDate:        monday,
		HorizonDays:     1,
		DurationMinutes: 90,
		Slots: slices.Values([]domain.Slot{
			{Date: monday, StartTime: "09:00", DurationMinutes: 90},
			{Date: monday, StartTime: "10:00", DurationMinutes: 90},
			{Date: monday, StartTime: "11:00", DurationMinutes: 90},
		}),
	}}

	rec := serve(NewHandler(uc, logger.NewNop()), "/professionals/7/available-slots?serviceId=10&from=2025-06-02&days=1")
	require.Equal(t, http.StatusOK, rec.Code)

	var body AvailableSlotsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, []SlotResponse{
		{Date: "2025-06-02", StartTime: "09:00"},
		{Date: "2025-06-02", StartTime: "10:00"},
		{Date: "2025-06-02", StartTime: "11:00"},
	}, body.Slots)

	assert.Equal(t, int64(7), uc.got.ProfessionalID)
	assert.Equal(t, 1, uc.got.HorizonDays)
	assert.True(t, uc.got.FromDate.Equal(monday))
}

func TestHandle_BadQuery(t *testing.T) {
	h := NewHandler(&stubUseCase{}, logger.NewNop())

	for _, url := range []string{
		"/professionals/x/available-slots?serviceId=10",
		"/professionals/7/available-slots",
		"/professionals/7/available-slots?serviceId=abc",
		"/professionals/7/available-slots?serviceId=10&from=tomorrow",
		"/professionals/7/available-slots?serviceId=10&days=0",
	} {
		assert.Equal(t, http.StatusBadRequest, serve(h, url).Code, url)
	}
}

func TestHandle_NotFound(t *testing.T) {
	uc := &stubUseCase{err: fmt.Errorf("%w: service 10", domain.ErrNotFound)}

	rec := serve(NewHandler(uc, logger.NewNop()), "/professionals/7/available-slots?serviceId=10")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
