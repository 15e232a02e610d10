package booking

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"barbershop/internal/domain"
	"barbershop/internal/notification"
	"barbershop/internal/repository"
)

type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) CreateIfFree(ctx context.Context, b *domain.Booking) error {
	args := m.Called(ctx, b)
	if b != nil {
		b.ID = 999
	}
	return args.Error(0)
}

func (m *MockBookingRepository) GetByRef(ctx context.Context, ref string) (*domain.Booking, error) {
	args := m.Called(ctx, ref)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) List(ctx context.Context, f repository.BookingFilters) ([]domain.Booking, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) UpdateStatus(ctx context.Context, ref string, status domain.BookingStatus) error {
	args := m.Called(ctx, ref, status)
	return args.Error(0)
}

func (m *MockBookingRepository) Delete(ctx context.Context, ref string) error {
	args := m.Called(ctx, ref)
	return args.Error(0)
}

func (m *MockBookingRepository) GetStats(ctx context.Context, today, weekStart, weekEnd string) (repository.Stats, error) {
	args := m.Called(ctx, today, weekStart, weekEnd)
	return args.Get(0).(repository.Stats), args.Error(1)
}

type MockCatalog struct {
	mock.Mock
}

func (m *MockCatalog) GetByName(ctx context.Context, name string) (*domain.Service, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Service), args.Error(1)
}

func (m *MockCatalog) List(ctx context.Context) ([]domain.Service, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Service), args.Error(1)
}

type MockChecker struct {
	mock.Mock
}

func (m *MockChecker) CheckAvailability(ctx context.Context, date, clock string, duration int) (bool, error) {
	args := m.Called(ctx, date, clock, duration)
	return args.Bool(0), args.Error(1)
}

type MockSettings struct {
	mock.Mock
}

func (m *MockSettings) Load(ctx context.Context) (domain.Settings, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.Settings), args.Error(1)
}

type StubNotifier struct {
	events []notification.Event
}

func (s *StubNotifier) Broadcast(ev notification.Event) {
	s.events = append(s.events, ev)
}

func validRequest() CreateBookingRequest {
	return CreateBookingRequest{
		Name:    "Rui Costa",
		Phone:   "912 345 678",
		Service: "Corte de Cabelo",
		Date:    "2026-03-10",
		Time:    "10:00",
	}
}

func haircut() *domain.Service {
	return &domain.Service{ID: 1, Name: "Corte de Cabelo", Price: 11, Duration: 30}
}

func newService(repo *MockBookingRepository, catalog *MockCatalog, checker *MockChecker, settings *MockSettings, notifs NotificationSender) *Service {
	svc := NewService(repo, catalog, checker, settings, notifs)
	svc.now = func() time.Time {
		return time.Date(2026, 3, 10, 12, 0, 0, 0, time.Local)
	}
	return svc
}

func TestCreate_Public(t *testing.T) {
	repo := new(MockBookingRepository)
	catalog := new(MockCatalog)
	checker := new(MockChecker)
	settings := new(MockSettings)
	notifs := &StubNotifier{}
	svc := newService(repo, catalog, checker, settings, notifs)

	catalog.On("GetByName", mock.Anything, "Corte de Cabelo").Return(haircut(), nil)
	checker.On("CheckAvailability", mock.Anything, "2026-03-10", "10:00", 30).Return(true, nil)
	repo.On("CreateIfFree", mock.Anything, mock.Anything).Return(nil)
	settings.On("Load", mock.Anything).Return(domain.DefaultSettings(), nil)

	resp, err := svc.Create(context.Background(), validRequest(), OriginPublic)
	require.NoError(t, err)

	b := resp.Booking
	assert.True(t, strings.HasPrefix(b.Ref, "BK_"))
	assert.Equal(t, "912345678", b.Phone)
	assert.Equal(t, 11.0, b.Price)
	assert.Equal(t, 30, b.Duration)
	assert.Equal(t, domain.BookingPending, b.Status)
	assert.Empty(t, b.CreatedBy)

	assert.Contains(t, resp.WhatsApp, "https://wa.me/351912345678")
	assert.Contains(t, resp.WhatsApp, "Rui+Costa")

	require.Len(t, notifs.events, 1)
	assert.Equal(t, notification.EventBookingCreated, notifs.events[0].Type)
	assert.Equal(t, b.Ref, notifs.events[0].BookingID)
}

func TestCreate_PublicIgnoresAdminFields(t *testing.T) {
	repo := new(MockBookingRepository)
	catalog := new(MockCatalog)
	checker := new(MockChecker)
	settings := new(MockSettings)
	svc := newService(repo, catalog, checker, settings, nil)

	catalog.On("GetByName", mock.Anything, "Corte de Cabelo").Return(haircut(), nil)
	checker.On("CheckAvailability", mock.Anything, "2026-03-10", "10:00", 30).Return(true, nil)
	repo.On("CreateIfFree", mock.Anything, mock.Anything).Return(nil)
	settings.On("Load", mock.Anything).Return(domain.DefaultSettings(), nil)

	req := validRequest()
	req.Status = "completed"
	req.CreatedBy = "someone"

	resp, err := svc.Create(context.Background(), req, OriginPublic)
	require.NoError(t, err)
	assert.Equal(t, domain.BookingPending, resp.Booking.Status)
	assert.Empty(t, resp.Booking.CreatedBy)
}

func TestCreate_AdminPicksStatus(t *testing.T) {
	repo := new(MockBookingRepository)
	catalog := new(MockCatalog)
	checker := new(MockChecker)
	settings := new(MockSettings)
	svc := newService(repo, catalog, checker, settings, nil)

	catalog.On("GetByName", mock.Anything, "Corte de Cabelo").Return(haircut(), nil)
	checker.On("CheckAvailability", mock.Anything, "2026-03-10", "10:00", 30).Return(true, nil)
	repo.On("CreateIfFree", mock.Anything, mock.Anything).Return(nil)
	settings.On("Load", mock.Anything).Return(domain.DefaultSettings(), nil)

	req := validRequest()
	req.Status = "confirmed"

	resp, err := svc.Create(context.Background(), req, OriginAdmin)
	require.NoError(t, err)
	assert.Equal(t, domain.BookingConfirmed, resp.Booking.Status)
	assert.Equal(t, "admin", resp.Booking.CreatedBy)
}

func TestCreate_ValidationFailures(t *testing.T) {
	svc := newService(new(MockBookingRepository), new(MockCatalog), new(MockChecker), new(MockSettings), nil)

	cases := []struct {
		name   string
		mutate func(*CreateBookingRequest)
	}{
		{"short name", func(r *CreateBookingRequest) { r.Name = "Ab" }},
		{"name with digits", func(r *CreateBookingRequest) { r.Name = "Rui 99" }},
		{"short phone", func(r *CreateBookingRequest) { r.Phone = "91234" }},
		{"bad phone prefix", func(r *CreateBookingRequest) { r.Phone = "112345678" }},
		{"bad date", func(r *CreateBookingRequest) { r.Date = "10/03/2026" }},
		{"bad time", func(r *CreateBookingRequest) { r.Time = "10h00" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := validRequest()
			tc.mutate(&req)
			_, err := svc.Create(context.Background(), req, OriginPublic)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestCreate_UnknownService(t *testing.T) {
	catalog := new(MockCatalog)
	svc := newService(new(MockBookingRepository), catalog, new(MockChecker), new(MockSettings), nil)

	catalog.On("GetByName", mock.Anything, "Corte de Cabelo").Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.Create(context.Background(), validRequest(), OriginPublic)
	assert.ErrorIs(t, err, ErrUnknownService)
}

func TestCreate_SlotUnavailable(t *testing.T) {
	repo := new(MockBookingRepository)
	catalog := new(MockCatalog)
	checker := new(MockChecker)
	svc := newService(repo, catalog, checker, new(MockSettings), nil)

	catalog.On("GetByName", mock.Anything, "Corte de Cabelo").Return(haircut(), nil)
	checker.On("CheckAvailability", mock.Anything, "2026-03-10", "10:00", 30).Return(false, nil)

	_, err := svc.Create(context.Background(), validRequest(), OriginPublic)
	assert.ErrorIs(t, err, ErrSlotUnavailable)
	repo.AssertNotCalled(t, "CreateIfFree", mock.Anything, mock.Anything)
}

func TestCreate_ConflictOnRace(t *testing.T) {
	repo := new(MockBookingRepository)
	catalog := new(MockCatalog)
	checker := new(MockChecker)
	svc := newService(repo, catalog, checker, new(MockSettings), nil)

	catalog.On("GetByName", mock.Anything, "Corte de Cabelo").Return(haircut(), nil)
	checker.On("CheckAvailability", mock.Anything, "2026-03-10", "10:00", 30).Return(true, nil)
	repo.On("CreateIfFree", mock.Anything, mock.Anything).Return(repository.ErrSlotTaken)

	_, err := svc.Create(context.Background(), validRequest(), OriginPublic)
	assert.ErrorIs(t, err, ErrSlotConflict)
}

func TestUpdateStatus_Transitions(t *testing.T) {
	cases := []struct {
		from    domain.BookingStatus
		to      domain.BookingStatus
		allowed bool
	}{
		{domain.BookingPending, domain.BookingConfirmed, true},
		{domain.BookingConfirmed, domain.BookingCompleted, true},
		{domain.BookingPending, domain.BookingCancelled, true},
		{domain.BookingConfirmed, domain.BookingCancelled, true},
		{domain.BookingPending, domain.BookingCompleted, false},
		{domain.BookingCompleted, domain.BookingCancelled, false},
		{domain.BookingCancelled, domain.BookingConfirmed, false},
	}
	for _, tc := range cases {
		t.Run(string(tc.from)+"_to_"+string(tc.to), func(t *testing.T) {
			repo := new(MockBookingRepository)
			notifs := &StubNotifier{}
			svc := newService(repo, new(MockCatalog), new(MockChecker), new(MockSettings), notifs)

			repo.On("GetByRef", mock.Anything, "BK_1").Return(&domain.Booking{Ref: "BK_1", Status: tc.from}, nil)
			repo.On("UpdateStatus", mock.Anything, "BK_1", tc.to).Return(nil)

			b, err := svc.UpdateStatus(context.Background(), "BK_1", tc.to)
			if tc.allowed {
				require.NoError(t, err)
				assert.Equal(t, tc.to, b.Status)
				require.Len(t, notifs.events, 1)
				assert.Equal(t, notification.EventBookingStatus, notifs.events[0].Type)
			} else {
				assert.ErrorIs(t, err, ErrInvalidTransition)
				repo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
			}
		})
	}
}

func TestUpdateStatus_UnknownStatus(t *testing.T) {
	svc := newService(new(MockBookingRepository), new(MockCatalog), new(MockChecker), new(MockSettings), nil)
	_, err := svc.UpdateStatus(context.Background(), "BK_1", "archived")
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestGet_NotFound(t *testing.T) {
	repo := new(MockBookingRepository)
	svc := newService(repo, new(MockCatalog), new(MockChecker), new(MockSettings), nil)

	repo.On("GetByRef", mock.Anything, "BK_missing").Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.Get(context.Background(), "BK_missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestList_RejectsUnknownStatusFilter(t *testing.T) {
	svc := newService(new(MockBookingRepository), new(MockCatalog), new(MockChecker), new(MockSettings), nil)
	_, err := svc.List(context.Background(), ListFilters{Status: "weird"})
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestStats_WeekWindow(t *testing.T) {
	repo := new(MockBookingRepository)
	svc := newService(repo, new(MockCatalog), new(MockChecker), new(MockSettings), nil)

	// now is Tuesday 2026-03-10; the week runs Monday 03-09 .. Sunday 03-15
	repo.On("GetStats", mock.Anything, "2026-03-10", "2026-03-09", "2026-03-15").
		Return(repository.Stats{Today: 2, Week: 5, Pending: 1, Revenue: 55}, nil)

	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(5), stats.Week)
	repo.AssertExpectations(t)
}

func TestCalendar_RendersInvite(t *testing.T) {
	repo := new(MockBookingRepository)
	svc := newService(repo, new(MockCatalog), new(MockChecker), new(MockSettings), nil)

	repo.On("GetByRef", mock.Anything, "BK_1").Return(&domain.Booking{
		Ref: "BK_1", Name: "Rui Costa", Service: "Barba",
		Date: "2026-03-10", Time: "10:00", Duration: 20,
	}, nil)

	body, err := svc.Calendar(context.Background(), "BK_1")
	require.NoError(t, err)
	assert.Contains(t, body, "BEGIN:VCALENDAR")
	assert.Contains(t, body, "UID:BK_1@barbearia-joaoangeiras")
	assert.Contains(t, body, "DTSTART:20260310T100000")
}
