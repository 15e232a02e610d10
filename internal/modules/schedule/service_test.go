package schedule

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"barbershop/internal/domain"
)

// 2026-03-09 is a Monday, 2026-03-10 a Tuesday (default working days are Tue-Sat).
const (
	monday  = "2026-03-09"
	tuesday = "2026-03-10"
)

type MockBookingReader struct {
	mock.Mock
}

func (m *MockBookingReader) ListByDate(ctx context.Context, date string) ([]domain.Booking, error) {
	args := m.Called(ctx, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Booking), args.Error(1)
}

type MockBlockedDateRepo struct {
	mock.Mock
}

func (m *MockBlockedDateRepo) List(ctx context.Context) ([]domain.BlockedDate, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BlockedDate), args.Error(1)
}

func (m *MockBlockedDateRepo) Create(ctx context.Context, b *domain.BlockedDate) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *MockBlockedDateRepo) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockSettingsReader struct {
	mock.Mock
}

func (m *MockSettingsReader) Load(ctx context.Context) (domain.Settings, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.Settings), args.Error(1)
}

type MockOverrideRepo struct {
	mock.Mock
}

func (m *MockOverrideRepo) BlockedTimes(ctx context.Context, date string) ([]string, error) {
	args := m.Called(ctx, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockOverrideRepo) Replace(ctx context.Context, date string, times []string) error {
	args := m.Called(ctx, date, times)
	return args.Error(0)
}

type fixture struct {
	svc       *Service
	bookings  *MockBookingReader
	blocked   *MockBlockedDateRepo
	settings  *MockSettingsReader
	overrides *MockOverrideRepo
}

func newFixture() *fixture {
	f := &fixture{
		bookings:  new(MockBookingReader),
		blocked:   new(MockBlockedDateRepo),
		settings:  new(MockSettingsReader),
		overrides: new(MockOverrideRepo),
	}
	f.svc = NewService(f.bookings, f.blocked, f.settings, f.overrides)
	// fixed clock far from the test dates, so no slot counts as "today"
	f.svc.now = func() time.Time {
		return time.Date(2026, 1, 2, 12, 0, 0, 0, time.Local)
	}
	return f
}

func (f *fixture) withDefaults() *fixture {
	f.settings.On("Load", mock.Anything).Return(domain.DefaultSettings(), nil)
	return f
}

func (f *fixture) withEmptyDay(date string) *fixture {
	f.bookings.On("ListByDate", mock.Anything, date).Return([]domain.Booking{}, nil)
	f.overrides.On("BlockedTimes", mock.Anything, date).Return([]string{}, nil)
	return f
}

func slotByTime(t *testing.T, slots []Slot, clock string) Slot {
	t.Helper()
	for _, s := range slots {
		if s.Time == clock {
			return s
		}
	}
	t.Fatalf("slot %s not found", clock)
	return Slot{}
}

func TestDaySchedule_NormalWorkingDay(t *testing.T) {
	f := newFixture().withDefaults().withEmptyDay(tuesday)
	f.blocked.On("List", mock.Anything).Return([]domain.BlockedDate{}, nil)

	sched, err := f.svc.DaySchedule(context.Background(), tuesday)
	require.NoError(t, err)

	assert.Equal(t, DayOpen, sched.Status)
	assert.Equal(t, "09:00", sched.Open)
	assert.Equal(t, "19:00", sched.Close)
	require.Len(t, sched.Slots, 20)

	assert.True(t, slotByTime(t, sched.Slots, "09:00").Available)
	assert.True(t, slotByTime(t, sched.Slots, "18:30").Available)
	for _, clock := range []string{"12:00", "12:30", "13:00", "13:30"} {
		s := slotByTime(t, sched.Slots, clock)
		assert.False(t, s.Available, clock)
		assert.Equal(t, ReasonBreak, s.Reason, clock)
	}
}

func TestDaySchedule_ClosedWeekday(t *testing.T) {
	f := newFixture().withDefaults()
	f.blocked.On("List", mock.Anything).Return([]domain.BlockedDate{}, nil)

	sched, err := f.svc.DaySchedule(context.Background(), monday)
	require.NoError(t, err)

	assert.Equal(t, DayClosed, sched.Status)
	assert.Empty(t, sched.Slots)
}

func TestDaySchedule_BlockedWinsOverOpenException(t *testing.T) {
	f := newFixture().withDefaults()
	f.blocked.On("List", mock.Anything).Return([]domain.BlockedDate{
		{Type: domain.BlockTypeOpenException, StartDate: tuesday, OpenStart: "10:00", OpenEnd: "16:00"},
		{Type: domain.BlockTypeBlocked, StartDate: tuesday},
	}, nil)

	sched, err := f.svc.DaySchedule(context.Background(), tuesday)
	require.NoError(t, err)
	assert.Equal(t, DayClosed, sched.Status)
}

func TestDaySchedule_OpenExceptionFlipsOnlyThatDate(t *testing.T) {
	f := newFixture().withDefaults().withEmptyDay(monday)
	f.blocked.On("List", mock.Anything).Return([]domain.BlockedDate{
		{Type: domain.BlockTypeOpenException, StartDate: monday, OpenStart: "10:00", OpenEnd: "16:00"},
	}, nil)

	sched, err := f.svc.DaySchedule(context.Background(), monday)
	require.NoError(t, err)
	assert.Equal(t, DayOpen, sched.Status)
	assert.Equal(t, "10:00", sched.Open)
	assert.Equal(t, "16:00", sched.Close)
	require.Len(t, sched.Slots, 12)

	// the following Monday keeps the weekday closure
	nextMonday := "2026-03-16"
	sched, err = f.svc.DaySchedule(context.Background(), nextMonday)
	require.NoError(t, err)
	assert.Equal(t, DayClosed, sched.Status)
}

func TestDaySchedule_RangeBlocksEveryCoveredDay(t *testing.T) {
	f := newFixture().withDefaults()
	f.blocked.On("List", mock.Anything).Return([]domain.BlockedDate{
		{Type: domain.BlockTypeBlocked, StartDate: "2026-03-10", EndDate: "2026-03-12"},
	}, nil)
	f.withEmptyDay("2026-03-13")

	for _, date := range []string{"2026-03-10", "2026-03-11", "2026-03-12"} {
		sched, err := f.svc.DaySchedule(context.Background(), date)
		require.NoError(t, err)
		assert.Equal(t, DayClosed, sched.Status, date)
	}

	sched, err := f.svc.DaySchedule(context.Background(), "2026-03-13")
	require.NoError(t, err)
	assert.Equal(t, DayOpen, sched.Status)
}

func TestDaySchedule_BreakOverride(t *testing.T) {
	t.Run("removed break frees the lunch slots", func(t *testing.T) {
		f := newFixture().withDefaults().withEmptyDay(tuesday)
		f.blocked.On("List", mock.Anything).Return([]domain.BlockedDate{
			{Type: domain.BlockTypeBreakOverride, StartDate: tuesday, BreakStart: domain.BreakRemoved, BreakEnd: domain.BreakRemoved},
		}, nil)

		sched, err := f.svc.DaySchedule(context.Background(), tuesday)
		require.NoError(t, err)
		assert.Equal(t, DayOpen, sched.Status)
		assert.True(t, slotByTime(t, sched.Slots, "12:00").Available)
		assert.True(t, slotByTime(t, sched.Slots, "13:30").Available)
	})

	t.Run("moved break shifts the blocked window", func(t *testing.T) {
		f := newFixture().withDefaults().withEmptyDay(tuesday)
		f.blocked.On("List", mock.Anything).Return([]domain.BlockedDate{
			{Type: domain.BlockTypeBreakOverride, StartDate: tuesday, BreakStart: "15:00", BreakEnd: "16:00"},
		}, nil)

		sched, err := f.svc.DaySchedule(context.Background(), tuesday)
		require.NoError(t, err)
		assert.True(t, slotByTime(t, sched.Slots, "12:00").Available)
		assert.Equal(t, ReasonBreak, slotByTime(t, sched.Slots, "15:00").Reason)
		assert.Equal(t, ReasonBreak, slotByTime(t, sched.Slots, "15:30").Reason)
		assert.True(t, slotByTime(t, sched.Slots, "16:00").Available)
	})
}

func TestDaySchedule_BookedBeatsOverride(t *testing.T) {
	f := newFixture().withDefaults()
	f.blocked.On("List", mock.Anything).Return([]domain.BlockedDate{}, nil)
	f.bookings.On("ListByDate", mock.Anything, tuesday).Return([]domain.Booking{
		{Date: tuesday, Time: "10:00", Duration: 50, Status: domain.BookingConfirmed},
	}, nil)
	f.overrides.On("BlockedTimes", mock.Anything, tuesday).Return([]string{"10:00", "15:00"}, nil)

	sched, err := f.svc.DaySchedule(context.Background(), tuesday)
	require.NoError(t, err)

	// the 50-minute booking covers both half-hour slots
	assert.Equal(t, ReasonBooked, slotByTime(t, sched.Slots, "10:00").Reason)
	assert.Equal(t, ReasonBooked, slotByTime(t, sched.Slots, "10:30").Reason)
	assert.Equal(t, ReasonBlocked, slotByTime(t, sched.Slots, "15:00").Reason)
	assert.True(t, slotByTime(t, sched.Slots, "11:00").Available)
}

func TestDaySchedule_TodayCutoff(t *testing.T) {
	f := newFixture().withDefaults().withEmptyDay(tuesday)
	f.blocked.On("List", mock.Anything).Return([]domain.BlockedDate{}, nil)
	f.svc.now = func() time.Time {
		return time.Date(2026, 3, 10, 10, 25, 0, 0, time.Local)
	}

	sched, err := f.svc.DaySchedule(context.Background(), tuesday)
	require.NoError(t, err)

	// cutoff is 10:35, so 10:30 is gone but 11:00 survives
	assert.Equal(t, ReasonPast, slotByTime(t, sched.Slots, "09:00").Reason)
	assert.Equal(t, ReasonPast, slotByTime(t, sched.Slots, "10:30").Reason)
	assert.True(t, slotByTime(t, sched.Slots, "11:00").Available)

	// a future date is untouched by the clock
	f.withEmptyDay("2026-03-11")
	sched, err = f.svc.DaySchedule(context.Background(), "2026-03-11")
	require.NoError(t, err)
	assert.True(t, slotByTime(t, sched.Slots, "09:00").Available)
}

func TestAvailableSlots_FiltersUnavailable(t *testing.T) {
	f := newFixture().withDefaults()
	f.blocked.On("List", mock.Anything).Return([]domain.BlockedDate{}, nil)
	f.bookings.On("ListByDate", mock.Anything, tuesday).Return([]domain.Booking{
		{Date: tuesday, Time: "09:00", Duration: 30, Status: domain.BookingPending},
	}, nil)
	f.overrides.On("BlockedTimes", mock.Anything, tuesday).Return([]string{"18:30"}, nil)

	slots, err := f.svc.AvailableSlots(context.Background(), tuesday)
	require.NoError(t, err)

	// 20 grid entries minus 4 break, 1 booked, 1 overridden
	assert.Len(t, slots, 14)
	assert.NotContains(t, slots, "09:00")
	assert.NotContains(t, slots, "12:00")
	assert.NotContains(t, slots, "18:30")
	assert.Contains(t, slots, "09:30")
}

func TestCheckAvailability(t *testing.T) {
	newArranged := func() *fixture {
		f := newFixture().withDefaults()
		f.blocked.On("List", mock.Anything).Return([]domain.BlockedDate{}, nil)
		f.bookings.On("ListByDate", mock.Anything, tuesday).Return([]domain.Booking{
			{Date: tuesday, Time: "10:00", Duration: 50, Status: domain.BookingConfirmed},
		}, nil)
		f.overrides.On("BlockedTimes", mock.Anything, tuesday).Return([]string{"16:00"}, nil)
		return f
	}

	cases := []struct {
		name     string
		time     string
		duration int
		want     bool
	}{
		{"free slot", "09:00", 30, true},
		{"before opening", "08:30", 30, false},
		{"runs past closing", "18:30", 50, false},
		{"ends exactly at closing", "18:30", 30, true},
		{"inside break", "12:30", 30, false},
		{"duration reaches into break", "11:30", 50, false},
		{"overlaps existing booking", "10:30", 30, false},
		{"touches booking end", "11:00", 30, true},
		{"overridden slot", "16:00", 30, false},
		{"duration reaches override", "15:30", 50, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newArranged()
			ok, err := f.svc.CheckAvailability(context.Background(), tuesday, tc.time, tc.duration)
			require.NoError(t, err)
			assert.Equal(t, tc.want, ok)
		})
	}

	t.Run("closed day", func(t *testing.T) {
		f := newFixture().withDefaults()
		f.blocked.On("List", mock.Anything).Return([]domain.BlockedDate{}, nil)
		ok, err := f.svc.CheckAvailability(context.Background(), monday, "10:00", 30)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("invalid inputs", func(t *testing.T) {
		f := newFixture()
		_, err := f.svc.CheckAvailability(context.Background(), "10-03-2026", "10:00", 30)
		assert.ErrorIs(t, err, ErrInvalidDate)
		_, err = f.svc.CheckAvailability(context.Background(), tuesday, "25:99", 30)
		assert.ErrorIs(t, err, ErrInvalidTime)
	})
}

func TestSetOverrides(t *testing.T) {
	t.Run("booked slot rejected", func(t *testing.T) {
		f := newFixture()
		f.bookings.On("ListByDate", mock.Anything, tuesday).Return([]domain.Booking{
			{Date: tuesday, Time: "10:00", Duration: 30, Status: domain.BookingPending},
		}, nil)

		err := f.svc.SetOverrides(context.Background(), tuesday, []string{"09:00", "10:00"})
		assert.ErrorIs(t, err, ErrSlotBooked)
		f.overrides.AssertNotCalled(t, "Replace", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("free slots stored", func(t *testing.T) {
		f := newFixture()
		f.bookings.On("ListByDate", mock.Anything, tuesday).Return([]domain.Booking{}, nil)
		f.overrides.On("Replace", mock.Anything, tuesday, []string{"09:00"}).Return(nil)

		require.NoError(t, f.svc.SetOverrides(context.Background(), tuesday, []string{"09:00"}))
		f.overrides.AssertExpectations(t)
	})
}

func TestAddBlockedDate_Validation(t *testing.T) {
	f := newFixture()

	cases := []struct {
		name string
		req  CreateBlockedDateRequest
	}{
		{"bad start date", CreateBlockedDateRequest{Description: "x", Type: "blocked", StartDate: "nope"}},
		{"end before start", CreateBlockedDateRequest{Description: "x", Type: "blocked", StartDate: "2026-03-10", EndDate: "2026-03-09"}},
		{"open exception inverted hours", CreateBlockedDateRequest{Description: "x", Type: "open_exception", StartDate: "2026-03-09", OpenStart: "16:00", OpenEnd: "10:00"}},
		{"break override missing window", CreateBlockedDateRequest{Description: "x", Type: "break_override", StartDate: "2026-03-10"}},
		{"unknown type", CreateBlockedDateRequest{Description: "x", Type: "holiday", StartDate: "2026-03-10"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.svc.AddBlockedDate(context.Background(), tc.req)
			assert.ErrorIs(t, err, ErrInvalidEntry)
		})
	}

	t.Run("break removal stores the sentinel", func(t *testing.T) {
		f := newFixture()
		f.blocked.On("Create", mock.Anything, mock.MatchedBy(func(b *domain.BlockedDate) bool {
			return b.BreakStart == domain.BreakRemoved
		})).Return(nil)

		entry, err := f.svc.AddBlockedDate(context.Background(), CreateBlockedDateRequest{
			Description: "Sem pausa",
			Type:        "break_override",
			StartDate:   "2026-03-10",
			BreakStart:  domain.BreakRemoved,
		})
		require.NoError(t, err)
		assert.Equal(t, domain.BreakRemoved, entry.BreakEnd)
	})
}
