package schedule

import (
	"context"
	"time"

	"barbershop/internal/domain"
	"barbershop/internal/metrics"
	"barbershop/internal/pkg/timeslot"
)

// cutoffBuffer keeps same-day bookings at least this far in the future.
const cutoffBuffer = 10 * time.Minute

type Service struct {
	bookings  BookingReader
	blocked   BlockedDateRepository
	settings  SettingsReader
	overrides OverrideRepository
	now       func() time.Time
}

func NewService(
	bookings BookingReader,
	blocked BlockedDateRepository,
	settings SettingsReader,
	overrides OverrideRepository,
) *Service {
	return &Service{
		bookings:  bookings,
		blocked:   blocked,
		settings:  settings,
		overrides: overrides,
		now:       time.Now,
	}
}

// dayPlan is the resolved working window for one date, in minutes since
// midnight. breakStart == -1 means no break that day.
type dayPlan struct {
	open       bool
	openMin    int
	closeMin   int
	breakStart int
	breakEnd   int
}

// resolveDay classifies a date. Explicit blocks win over open exceptions,
// which win over the weekday closure from settings. A break override only
// changes the lunch window, never whether the day is open.
func (s *Service) resolveDay(ctx context.Context, date string, day time.Time) (dayPlan, error) {
	settings, err := s.settings.Load(ctx)
	if err != nil {
		return dayPlan{}, err
	}
	entries, err := s.blocked.List(ctx)
	if err != nil {
		return dayPlan{}, err
	}

	var openException, breakOverride *domain.BlockedDate
	for i := range entries {
		e := entries[i]
		if !e.Covers(date) {
			continue
		}
		switch e.Type {
		case domain.BlockTypeBlocked:
			return dayPlan{open: false}, nil
		case domain.BlockTypeOpenException:
			if openException == nil {
				openException = &entries[i]
			}
		case domain.BlockTypeBreakOverride:
			if breakOverride == nil {
				breakOverride = &entries[i]
			}
		}
	}

	wh := settings.WorkingHours
	plan := dayPlan{breakStart: -1, breakEnd: -1}

	if openException != nil {
		plan.open = true
		openClock, closeClock := openException.OpenStart, openException.OpenEnd
		if openClock == "" || closeClock == "" {
			openClock, closeClock = wh.Open, wh.Close
		}
		if plan.openMin, err = timeslot.ParseClock(openClock); err != nil {
			return dayPlan{}, ErrInvalidEntry
		}
		if plan.closeMin, err = timeslot.ParseClock(closeClock); err != nil {
			return dayPlan{}, ErrInvalidEntry
		}
	} else {
		if !wh.IsWorkingDay(day.Weekday()) {
			return dayPlan{open: false}, nil
		}
		plan.open = true
		if plan.openMin, err = timeslot.ParseClock(wh.Open); err != nil {
			return dayPlan{}, err
		}
		if plan.closeMin, err = timeslot.ParseClock(wh.Close); err != nil {
			return dayPlan{}, err
		}
	}

	switch {
	case breakOverride != nil:
		if breakOverride.BreakStart == domain.BreakRemoved {
			break
		}
		bs, err1 := timeslot.ParseClock(breakOverride.BreakStart)
		be, err2 := timeslot.ParseClock(breakOverride.BreakEnd)
		if err1 != nil || err2 != nil {
			return dayPlan{}, ErrInvalidEntry
		}
		plan.breakStart, plan.breakEnd = bs, be
	case wh.EnableBreak:
		bs, err1 := timeslot.ParseClock(wh.BreakStart)
		be, err2 := timeslot.ParseClock(wh.BreakEnd)
		if err1 == nil && err2 == nil {
			plan.breakStart, plan.breakEnd = bs, be
		}
	}

	return plan, nil
}

// cutoffMin returns the minutes-since-midnight threshold for same-day
// bookings, or -1 when the date is not today.
func (s *Service) cutoffMin(date string) int {
	now := s.now()
	if timeslot.Day(now) != date {
		return -1
	}
	c := now.Add(cutoffBuffer)
	return c.Hour()*60 + c.Minute()
}

// DaySchedule returns the full slot grid for a date with per-slot reasons.
func (s *Service) DaySchedule(ctx context.Context, date string) (*DayScheduleResponse, error) {
	day, err := timeslot.ParseDay(date)
	if err != nil {
		metrics.SlotQueries.WithLabelValues("invalid").Inc()
		return nil, ErrInvalidDate
	}

	plan, err := s.resolveDay(ctx, date, day)
	if err != nil {
		return nil, err
	}
	if !plan.open {
		metrics.SlotQueries.WithLabelValues("closed").Inc()
		return &DayScheduleResponse{Date: date, Status: DayClosed, Slots: []Slot{}}, nil
	}
	metrics.SlotQueries.WithLabelValues("open").Inc()

	booked, err := s.bookings.ListByDate(ctx, date)
	if err != nil {
		return nil, err
	}
	overridden, err := s.overrides.BlockedTimes(ctx, date)
	if err != nil {
		return nil, err
	}
	overrideSet := make(map[string]bool, len(overridden))
	for _, t := range overridden {
		overrideSet[t] = true
	}

	cutoff := s.cutoffMin(date)
	grid := timeslot.Grid(timeslot.FormatClock(plan.openMin), timeslot.FormatClock(plan.closeMin), timeslot.DefaultStep)

	slots := make([]Slot, 0, len(grid))
	for _, t := range grid {
		start, _ := timeslot.ParseClock(t)
		end := start + timeslot.DefaultStep
		slot := Slot{Time: t, Available: true}

		switch {
		case overlapsBooking(booked, start, end):
			slot.Available, slot.Reason = false, ReasonBooked
		case plan.breakStart >= 0 && timeslot.Overlaps(start, end, plan.breakStart, plan.breakEnd):
			slot.Available, slot.Reason = false, ReasonBreak
		case overrideSet[t]:
			slot.Available, slot.Reason = false, ReasonBlocked
		case cutoff >= 0 && start <= cutoff:
			slot.Available, slot.Reason = false, ReasonPast
		}
		slots = append(slots, slot)
	}

	return &DayScheduleResponse{
		Date:   date,
		Status: DayOpen,
		Open:   timeslot.FormatClock(plan.openMin),
		Close:  timeslot.FormatClock(plan.closeMin),
		Slots:  slots,
	}, nil
}

// AvailableSlots returns only the bookable times for a date, the shape
// the public widget consumes.
func (s *Service) AvailableSlots(ctx context.Context, date string) ([]string, error) {
	sched, err := s.DaySchedule(ctx, date)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(sched.Slots))
	for _, slot := range sched.Slots {
		if slot.Available {
			out = append(out, slot.Time)
		}
	}
	return out, nil
}

// CheckAvailability reports whether a booking of the given duration can
// start at date/time. Duration <= 0 falls back to one slot.
func (s *Service) CheckAvailability(ctx context.Context, date, clock string, duration int) (bool, error) {
	day, err := timeslot.ParseDay(date)
	if err != nil {
		return false, ErrInvalidDate
	}
	start, err := timeslot.ParseClock(clock)
	if err != nil {
		return false, ErrInvalidTime
	}
	if duration <= 0 {
		duration = timeslot.DefaultStep
	}
	end := start + duration

	plan, err := s.resolveDay(ctx, date, day)
	if err != nil {
		return false, err
	}
	if !plan.open {
		return false, nil
	}
	if start < plan.openMin || end > plan.closeMin {
		return false, nil
	}
	if plan.breakStart >= 0 && timeslot.Overlaps(start, end, plan.breakStart, plan.breakEnd) {
		return false, nil
	}
	if cutoff := s.cutoffMin(date); cutoff >= 0 && start <= cutoff {
		return false, nil
	}

	booked, err := s.bookings.ListByDate(ctx, date)
	if err != nil {
		return false, err
	}
	if overlapsBooking(booked, start, end) {
		return false, nil
	}

	overridden, err := s.overrides.BlockedTimes(ctx, date)
	if err != nil {
		return false, err
	}
	for _, t := range overridden {
		o, err := timeslot.ParseClock(t)
		if err != nil {
			continue
		}
		if timeslot.Overlaps(start, end, o, o+timeslot.DefaultStep) {
			return false, nil
		}
	}
	return true, nil
}

func (s *Service) BlockedDates(ctx context.Context) ([]domain.BlockedDate, error) {
	return s.blocked.List(ctx)
}

func (s *Service) AddBlockedDate(ctx context.Context, req CreateBlockedDateRequest) (*domain.BlockedDate, error) {
	if _, err := timeslot.ParseDay(req.StartDate); err != nil {
		return nil, ErrInvalidEntry
	}
	if req.EndDate != "" {
		if _, err := timeslot.ParseDay(req.EndDate); err != nil {
			return nil, ErrInvalidEntry
		}
		if req.EndDate < req.StartDate {
			return nil, ErrInvalidEntry
		}
	}

	entry := &domain.BlockedDate{
		Description: req.Description,
		Type:        domain.BlockedDateType(req.Type),
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
	}

	switch entry.Type {
	case domain.BlockTypeBlocked:
		// nothing extra to validate

	case domain.BlockTypeOpenException:
		if req.OpenStart != "" || req.OpenEnd != "" {
			os, err1 := timeslot.ParseClock(req.OpenStart)
			oe, err2 := timeslot.ParseClock(req.OpenEnd)
			if err1 != nil || err2 != nil || oe <= os {
				return nil, ErrInvalidEntry
			}
			entry.OpenStart, entry.OpenEnd = req.OpenStart, req.OpenEnd
		}

	case domain.BlockTypeBreakOverride:
		if req.BreakStart == domain.BreakRemoved {
			entry.BreakStart, entry.BreakEnd = domain.BreakRemoved, domain.BreakRemoved
			break
		}
		bs, err1 := timeslot.ParseClock(req.BreakStart)
		be, err2 := timeslot.ParseClock(req.BreakEnd)
		if err1 != nil || err2 != nil || be <= bs {
			return nil, ErrInvalidEntry
		}
		entry.BreakStart, entry.BreakEnd = req.BreakStart, req.BreakEnd

	default:
		return nil, ErrInvalidEntry
	}

	if err := s.blocked.Create(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *Service) RemoveBlockedDate(ctx context.Context, id int64) error {
	return s.blocked.Delete(ctx, id)
}

func (s *Service) Overrides(ctx context.Context, date string) ([]string, error) {
	if _, err := timeslot.ParseDay(date); err != nil {
		return nil, ErrInvalidDate
	}
	return s.overrides.BlockedTimes(ctx, date)
}

// SetOverrides replaces a day's manual blocks. A time covered by a
// non-cancelled booking cannot be overridden.
func (s *Service) SetOverrides(ctx context.Context, date string, times []string) error {
	if _, err := timeslot.ParseDay(date); err != nil {
		return ErrInvalidDate
	}
	booked, err := s.bookings.ListByDate(ctx, date)
	if err != nil {
		return err
	}
	for _, t := range times {
		start, err := timeslot.ParseClock(t)
		if err != nil {
			return ErrInvalidTime
		}
		if overlapsBooking(booked, start, start+timeslot.DefaultStep) {
			return ErrSlotBooked
		}
	}
	return s.overrides.Replace(ctx, date, times)
}

func overlapsBooking(bookings []domain.Booking, start, end int) bool {
	for _, b := range bookings {
		bs, be := b.StartMinutes(), b.EndMinutes()
		if bs < 0 {
			continue
		}
		if timeslot.Overlaps(start, end, bs, be) {
			return true
		}
	}
	return false
}
