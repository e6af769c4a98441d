package create_booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/servihogar-turnos/internal/domain"
	"github.com/m04kA/servihogar-turnos/internal/infra/storage/turno/turnotest"
	"github.com/m04kA/servihogar-turnos/internal/integrations/catalogservice"
	"github.com/m04kA/servihogar-turnos/internal/integrations/events"
	"github.com/m04kA/servihogar-turnos/internal/service/pricing"
	"github.com/m04kA/servihogar-turnos/pkg/logger"
	"github.com/m04kA/servihogar-turnos/pkg/metrics"
	"github.com/m04kA/servihogar-turnos/pkg/ptr"
	"github.com/m04kA/servihogar-turnos/pkg/txmanager"
)

// 2025-06-02 - понедельник
var monday = time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

type fixedTime struct{ t time.Time }

func (f fixedTime) Now() time.Time { return f.t }

type fakeCatalog struct {
	service      *domain.Service
	professional *domain.Professional
}

func (c *fakeCatalog) GetService(_ context.Context, id int64) (*domain.Service, error) {
	if c.service == nil || c.service.ID != id {
		return nil, catalogservice.ErrServiceNotFound
	}
	return c.service, nil
}

func (c *fakeCatalog) GetProfessional(_ context.Context, id int64) (*domain.Professional, error) {
	if c.professional == nil || c.professional.ID != id {
		return nil, catalogservice.ErrProfessionalNotFound
	}
	return c.professional, nil
}

type fakeWindows []*domain.AvailabilityWindow

func (f fakeWindows) GetByProfessional(context.Context, int64) ([]*domain.AvailabilityWindow, error) {
	return f, nil
}

// flatPricing скидка 200 на все услуги, промокод "MAL" дает предупреждение
type flatPricing struct{}

func (flatPricing) Compute(_ context.Context, s *domain.Service, _ time.Time, _ *int64, code *string) (*pricing.Result, error) {
	discount := decimal.NewFromInt(200)
	res := &pricing.Result{
		Base:      s.BasePrice,
		Discount:  discount,
		Final:     s.BasePrice.Sub(discount),
		Promotion: &domain.Promotion{ID: 2},
		Source:    pricing.SourceAuto,
	}
	if code != nil && *code == "MAL" {
		res.Warnings = append(res.Warnings, domain.ErrPromotionCodeInvalid)
	}
	return res, nil
}

type inlineTx struct {
	commitErr error
}

func (tx inlineTx) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	if err := fn(ctx); err != nil {
		return err
	}
	return tx.commitErr
}

type recordedEvent struct {
	kind  events.Type
	turno int64
}

type recorder struct {
	events []recordedEvent
}

func (r *recorder) Emit(_ context.Context, t events.Type, turno *domain.Turno, _ *int64) {
	r.events = append(r.events, recordedEvent{kind: t, turno: turno.ID})
}

type fixture struct {
	uc      *UseCase
	store   *turnotest.Store
	catalog *fakeCatalog
	events  *recorder
}

func newFixture(tx TransactionManager) *fixture {
	f := &fixture{
		store: turnotest.NewStore(),
		catalog: &fakeCatalog{
			service: &domain.Service{
				ID: 10, CategoryID: 3, BasePrice: decimal.RequireFromString("1000.00"),
				DurationMinutes: 60, Active: true, CategoryActive: true,
			},
			professional: &domain.Professional{ID: 7, Active: true, ServiceIDs: []int64{10}},
		},
		events: &recorder{},
	}
	if tx == nil {
		tx = inlineTx{}
	}

	f.uc = NewUseCase(
		f.store,
		fakeWindows{{ProfessionalID: 7, DayOfWeek: 0, StartTime: "09:00", EndTime: "12:00"}},
		f.catalog,
		flatPricing{},
		tx,
		f.events,
		(*metrics.Metrics)(nil),
		time.UTC,
		logger.NewNop(),
	)
	f.uc.timeProvider = fixedTime{t: monday.Add(-24 * time.Hour)}
	return f
}

func clientRequest() *Request {
	return &Request{
		Actor:          domain.Actor{UserID: 3, Role: domain.RoleClient},
		ClientID:       3,
		ProfessionalID: 7,
		ServiceID:      10,
		Date:           monday,
		Time:           "10:00",
		Address:        "Av. Corrientes 1234",
	}
}

func TestExecute_CreatesPendingWithPriceSnapshot(t *testing.T) {
	f := newFixture(nil)

	resp, err := f.uc.Execute(context.Background(), clientRequest())
	require.NoError(t, err)

	turno := resp.Turno
	assert.NotZero(t, turno.ID)
	assert.Equal(t, domain.StatusPending, turno.Status)
	assert.Equal(t, "800.00", turno.FinalPrice.StringFixed(2))
	assert.True(t, turno.FinalPrice.Equal(turno.BasePrice.Sub(turno.Discount)))
	assert.Equal(t, int64(2), *turno.PromotionID)
	assert.Empty(t, resp.Warnings)

	require.Len(t, f.events.events, 1)
	assert.Equal(t, events.TurnoCreated, f.events.events[0].kind)
}

func TestExecute_SlotLifecycle(t *testing.T) {
	f := newFixture(nil)
	ctx := context.Background()

	first, err := f.uc.Execute(ctx, clientRequest())
	require.NoError(t, err)

	other := clientRequest()
	other.Actor = domain.Actor{UserID: 4, Role: domain.RoleClient}
	other.ClientID = 4
	_, err = f.uc.Execute(ctx, other)
	assert.ErrorIs(t, err, domain.ErrSlotUnavailable)

	require.NoError(t, f.store.Cancel(ctx, first.Turno.ID, domain.StatusPending, 3, nil))

	again, err := f.uc.Execute(ctx, other)
	require.NoError(t, err)
	assert.NotEqual(t, first.Turno.ID, again.Turno.ID)
}

func TestExecute_SerializationFailureAtCommitIsSlotUnavailable(t *testing.T) {
	f := newFixture(inlineTx{commitErr: fmtCommitErr(&pq.Error{Code: "40001"})})

	_, err := f.uc.Execute(context.Background(), clientRequest())
	assert.ErrorIs(t, err, domain.ErrSlotUnavailable)
	assert.Empty(t, f.events.events)
}

func fmtCommitErr(err error) error {
	return errors.Join(txmanager.ErrCommitTx, err)
}

func TestExecute_Validation(t *testing.T) {
	f := newFixture(nil)
	ctx := context.Background()

	tests := []struct {
		name   string
		mutate func(r *Request)
	}{
		{name: "empty address", mutate: func(r *Request) { r.Address = "  " }},
		{name: "bad time", mutate: func(r *Request) { r.Time = "25:00" }},
		{name: "no date", mutate: func(r *Request) { r.Date = time.Time{} }},
		{name: "half coordinates", mutate: func(r *Request) { r.Latitude = ptr.Ptr(-34.6) }},
		{name: "past slot", mutate: func(r *Request) { r.Date = monday.AddDate(0, 0, -7) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := clientRequest()
			tt.mutate(req)
			_, err := f.uc.Execute(ctx, req)
			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}
}

func TestExecute_OutsideWindow(t *testing.T) {
	f := newFixture(nil)

	req := clientRequest()
	req.Time = "12:00"
	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, domain.ErrSlotUnavailable)

	req = clientRequest()
	req.Date = monday.AddDate(0, 0, 1)
	_, err = f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, domain.ErrSlotUnavailable)
}

func TestExecute_ServiceUnavailable(t *testing.T) {
	ctx := context.Background()

	f := newFixture(nil)
	f.catalog.service.CategoryActive = false
	_, err := f.uc.Execute(ctx, clientRequest())
	assert.ErrorIs(t, err, domain.ErrServiceUnavailable)

	f = newFixture(nil)
	f.catalog.professional.Active = false
	_, err = f.uc.Execute(ctx, clientRequest())
	assert.ErrorIs(t, err, domain.ErrServiceUnavailable)

	f = newFixture(nil)
	f.catalog.professional.ServiceIDs = []int64{11}
	_, err = f.uc.Execute(ctx, clientRequest())
	assert.ErrorIs(t, err, domain.ErrServiceUnavailable)
}

func TestExecute_Permission(t *testing.T) {
	f := newFixture(nil)

	req := clientRequest()
	req.Actor = domain.Actor{UserID: 99, Role: domain.RoleClient}
	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, domain.ErrPermissionDenied)

	req.Actor = domain.Actor{UserID: 7, Role: domain.RoleProfessional}
	_, err = f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, domain.ErrPermissionDenied)

	req.Actor = domain.Actor{UserID: 1, Role: domain.RoleAdmin}
	_, err = f.uc.Execute(context.Background(), req)
	assert.NoError(t, err)
}

func TestExecute_PromoWarningDoesNotFail(t *testing.T) {
	f := newFixture(nil)

	req := clientRequest()
	req.PromoCode = ptr.Ptr("MAL")
	resp, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Len(t, resp.Warnings, 1)
}
