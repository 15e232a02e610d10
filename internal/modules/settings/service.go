package settings

import (
	"context"
	"errors"

	"barbershop/internal/domain"
	"barbershop/internal/pkg/timeslot"
)

var ErrValidation = errors.New("invalid settings")

type Repository interface {
	Load(ctx context.Context) (domain.Settings, error)
	Save(ctx context.Context, s domain.Settings) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Get(ctx context.Context) (domain.Settings, error) {
	return s.repo.Load(ctx)
}

// UpdateWorkingHours replaces the hours block, leaving whatsapp untouched.
func (s *Service) UpdateWorkingHours(ctx context.Context, wh domain.WorkingHours) (domain.Settings, error) {
	if err := validateWorkingHours(wh); err != nil {
		return domain.Settings{}, err
	}
	current, err := s.repo.Load(ctx)
	if err != nil {
		return domain.Settings{}, err
	}
	current.WorkingHours = wh
	if err := s.repo.Save(ctx, current); err != nil {
		return domain.Settings{}, err
	}
	return current, nil
}

// UpdateWhatsApp replaces the contact block, leaving working hours untouched.
func (s *Service) UpdateWhatsApp(ctx context.Context, wa domain.WhatsApp) (domain.Settings, error) {
	if wa.Number == "" {
		return domain.Settings{}, ErrValidation
	}
	current, err := s.repo.Load(ctx)
	if err != nil {
		return domain.Settings{}, err
	}
	current.WhatsApp = wa
	if err := s.repo.Save(ctx, current); err != nil {
		return domain.Settings{}, err
	}
	return current, nil
}

func validateWorkingHours(wh domain.WorkingHours) error {
	open, err := timeslot.ParseClock(wh.Open)
	if err != nil {
		return ErrValidation
	}
	close, err := timeslot.ParseClock(wh.Close)
	if err != nil {
		return ErrValidation
	}
	if close <= open {
		return ErrValidation
	}

	if wh.EnableBreak {
		bs, err := timeslot.ParseClock(wh.BreakStart)
		if err != nil {
			return ErrValidation
		}
		be, err := timeslot.ParseClock(wh.BreakEnd)
		if err != nil {
			return ErrValidation
		}
		if be <= bs || bs < open || be > close {
			return ErrValidation
		}
	}

	if len(wh.WorkingDays) == 0 {
		return ErrValidation
	}
	for _, d := range wh.WorkingDays {
		if d < 0 || d > 6 {
			return ErrValidation
		}
	}
	return nil
}
