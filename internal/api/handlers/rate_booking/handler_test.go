package rate_booking

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/servihogar-turnos/internal/api/middleware"
	"github.com/m04kA/servihogar-turnos/internal/domain"
	rateBooking "github.com/m04kA/servihogar-turnos/internal/usecase/rate_booking"
	"github.com/m04kA/servihogar-turnos/pkg/logger"
)

type stubUseCase struct {
	got  *rateBooking.Request
	resp *rateBooking.Response
	err  error
}

func (s *stubUseCase) Execute(_ context.Context, req *rateBooking.Request) (*rateBooking.Response, error) {
	s.got = req
	return s.resp, s.err
}

func post(h *Handler, path, body string) *httptest.ResponseRecorder {
	router := mux.NewRouter()
	router.HandleFunc("/turnos/{turnoId}/rating", h.Handle)

	r := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	r = r.WithContext(middleware.WithActor(r.Context(), domain.Actor{UserID: 3, Role: domain.RoleClient}))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, r)
	return rec
}

func TestHandle_Created(t *testing.T) {
	uc := &stubUseCase{resp: &rateBooking.Response{
		Rating:             &domain.Rating{ID: 1, TurnoID: 5, ClientID: 3, Score: 5},
		ProfessionalRating: &domain.ProfessionalRating{ProfessionalID: 7, Average: decimal.RequireFromString("4.5"), Count: 2},
	}}

	rec := post(NewHandler(uc, logger.NewNop()), "/turnos/5/rating", `{"score": 5, "comment": "excelente"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	var body RatingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "4.50", body.AverageRating)
	assert.Equal(t, 2, body.RatingsCount)
	assert.Equal(t, int64(5), uc.got.TurnoID)
	assert.Equal(t, "excelente", *uc.got.Comment)
}

func TestHandle_ErrorMapping(t *testing.T) {
	tests := []struct {
		err    error
		status int
	}{
		{fmt.Errorf("%w: score must be between 1 and 5", domain.ErrValidation), http.StatusBadRequest},
		{fmt.Errorf("%w: turno 5", domain.ErrAlreadyRated), http.StatusConflict},
		{fmt.Errorf("%w: turno 5 is confirmed", domain.ErrNotCompleted), http.StatusConflict},
		{fmt.Errorf("%w: only the client can rate", domain.ErrPermissionDenied), http.StatusForbidden},
		{rateBooking.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		rec := post(NewHandler(&stubUseCase{err: tt.err}, logger.NewNop()), "/turnos/5/rating", `{"score": 6}`)
		assert.Equal(t, tt.status, rec.Code, tt.err.Error())
	}
}

func TestHandle_InvalidBody(t *testing.T) {
	uc := &stubUseCase{}

	rec := post(NewHandler(uc, logger.NewNop()), "/turnos/5/rating", `{"score": "five"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Nil(t, uc.got)
}
