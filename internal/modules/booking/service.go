package booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"barbershop/internal/domain"
	"barbershop/internal/metrics"
	"barbershop/internal/notification"
	"barbershop/internal/pkg/ics"
	"barbershop/internal/pkg/timeslot"
	"barbershop/internal/pkg/validate"
	"barbershop/internal/pkg/whatsapp"
	"barbershop/internal/repository"
)

const (
	OriginPublic = "public"
	OriginAdmin  = "admin"
)

// countryPrefix is prepended to the 9-digit national number for wa.me links.
const countryPrefix = "351"

type Service struct {
	bookings BookingRepository
	catalog  ServiceCatalog
	checker  AvailabilityChecker
	settings SettingsReader
	notifs   NotificationSender
	now      func() time.Time
}

func NewService(
	bookings BookingRepository,
	catalog ServiceCatalog,
	checker AvailabilityChecker,
	settings SettingsReader,
	notifs NotificationSender,
) *Service {
	return &Service{
		bookings: bookings,
		catalog:  catalog,
		checker:  checker,
		settings: settings,
		notifs:   notifs,
		now:      time.Now,
	}
}

func newRef() string {
	return "BK_" + strings.ToUpper(uuid.New().String()[:8])
}

// Create validates and stores a booking. Origin distinguishes the public
// widget from the admin panel: only the latter may pick a status and is
// recorded as the creator.
func (s *Service) Create(ctx context.Context, req CreateBookingRequest, origin string) (*CreateBookingResponse, error) {
	name := strings.TrimSpace(req.Name)
	if err := validate.Name(name); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrValidation, err)
	}
	phone := validate.CleanPhone(req.Phone)
	if err := validate.Phone(phone); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrValidation, err)
	}
	if _, err := timeslot.ParseDay(req.Date); err != nil {
		return nil, fmt.Errorf("%w: invalid date", ErrValidation)
	}
	if _, err := timeslot.ParseClock(req.Time); err != nil {
		return nil, fmt.Errorf("%w: invalid time", ErrValidation)
	}

	svc, err := s.catalog.GetByName(ctx, req.Service)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUnknownService
		}
		return nil, err
	}

	ok, err := s.checker.CheckAvailability(ctx, req.Date, req.Time, svc.Duration)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrSlotUnavailable
	}

	status := domain.BookingPending
	createdBy := ""
	if origin == OriginAdmin {
		createdBy = OriginAdmin
		if req.CreatedBy != "" {
			createdBy = req.CreatedBy
		}
		if req.Status != "" {
			status = domain.BookingStatus(req.Status)
			if !domain.ValidStatus(status) {
				return nil, ErrInvalidStatus
			}
		}
	}

	b := &domain.Booking{
		Ref:       newRef(),
		Name:      name,
		Phone:     phone,
		Service:   svc.Name,
		Price:     svc.Price,
		Duration:  svc.Duration,
		Date:      req.Date,
		Time:      req.Time,
		Status:    status,
		Notes:     req.Notes,
		CreatedBy: createdBy,
	}

	if err := s.bookings.CreateIfFree(ctx, b); err != nil {
		if errors.Is(err, repository.ErrSlotTaken) {
			metrics.BookingConflicts.Inc()
			return nil, ErrSlotConflict
		}
		return nil, err
	}

	metrics.BookingsCreated.WithLabelValues(origin).Inc()
	if s.notifs != nil {
		s.notifs.Broadcast(notification.Event{
			Type:      notification.EventBookingCreated,
			BookingID: b.Ref,
			Name:      b.Name,
			Service:   b.Service,
			Date:      b.Date,
			Time:      b.Time,
			Status:    string(b.Status),
			Message:   fmt.Sprintf("Nova marcação: %s, %s às %s", b.Name, b.Date, b.Time),
		})
	}

	resp := &CreateBookingResponse{Booking: b}
	if settings, err := s.settings.Load(ctx); err == nil {
		msg := whatsapp.Message(settings.WhatsApp.Message, b.Name)
		resp.WhatsApp = whatsapp.Link(countryPrefix+b.Phone, msg)
	}
	return resp, nil
}

func (s *Service) List(ctx context.Context, f ListFilters) ([]domain.Booking, error) {
	filters := repository.BookingFilters{Date: f.Date}
	if f.Status != "" {
		status := domain.BookingStatus(f.Status)
		if !domain.ValidStatus(status) {
			return nil, ErrInvalidStatus
		}
		filters.Status = status
	}
	return s.bookings.List(ctx, filters)
}

func (s *Service) Get(ctx context.Context, ref string) (*domain.Booking, error) {
	b, err := s.bookings.GetByRef(ctx, ref)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return b, nil
}

// UpdateStatus moves a booking along pending -> confirmed -> completed,
// or cancels it while it is not yet final.
func (s *Service) UpdateStatus(ctx context.Context, ref string, status domain.BookingStatus) (*domain.Booking, error) {
	if !domain.ValidStatus(status) {
		return nil, ErrInvalidStatus
	}

	b, err := s.Get(ctx, ref)
	if err != nil {
		return nil, err
	}
	if !domain.CanTransition(b.Status, status) {
		return nil, ErrInvalidTransition
	}

	if err := s.bookings.UpdateStatus(ctx, ref, status); err != nil {
		return nil, err
	}
	b.Status = status
	metrics.StatusTransitions.WithLabelValues(string(status)).Inc()

	if s.notifs != nil {
		s.notifs.Broadcast(notification.Event{
			Type:      notification.EventBookingStatus,
			BookingID: b.Ref,
			Name:      b.Name,
			Date:      b.Date,
			Time:      b.Time,
			Status:    string(status),
			Message:   fmt.Sprintf("Marcação %s: %s", status, b.Name),
		})
	}
	return b, nil
}

func (s *Service) Delete(ctx context.Context, ref string) error {
	b, err := s.Get(ctx, ref)
	if err != nil {
		return err
	}
	if err := s.bookings.Delete(ctx, ref); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if s.notifs != nil {
		s.notifs.Broadcast(notification.Event{
			Type:      notification.EventBookingDeleted,
			BookingID: b.Ref,
			Name:      b.Name,
			Date:      b.Date,
			Time:      b.Time,
			Message:   fmt.Sprintf("Marcação removida: %s", b.Name),
		})
	}
	return nil
}

// Stats aggregates the dashboard counters for the current Monday-start week.
func (s *Service) Stats(ctx context.Context) (repository.Stats, error) {
	now := s.now()
	weekStart := timeslot.WeekStart(now)
	weekEnd := weekStart.AddDate(0, 0, 6)
	return s.bookings.GetStats(ctx, timeslot.Day(now), timeslot.Day(weekStart), timeslot.Day(weekEnd))
}

// Calendar renders the booking as an iCalendar document.
func (s *Service) Calendar(ctx context.Context, ref string) (string, error) {
	b, err := s.Get(ctx, ref)
	if err != nil {
		return "", err
	}
	return ics.Render(ics.Event{
		Ref:      b.Ref,
		Name:     b.Name,
		Service:  b.Service,
		Price:    b.Price,
		Date:     b.Date,
		Time:     b.Time,
		Duration: b.Duration,
	})
}

func (s *Service) Services(ctx context.Context) ([]domain.Service, error) {
	return s.catalog.List(ctx)
}
