package holiday

import (
	"context"

	"github.com/crewpay/crewpay-backend-go/internal/domain/holiday"
	"github.com/crewpay/crewpay-backend-go/internal/pkg/validator"
)

type HolidayServiceImpl struct {
	holiday.HolidayRepository
}

func NewHolidayService(holidayRepository holiday.HolidayRepository) holiday.HolidayService {
	return &HolidayServiceImpl{
		HolidayRepository: holidayRepository,
	}
}

// Upsert implements holiday.HolidayService.
func (s *HolidayServiceImpl) Upsert(ctx context.Context, req holiday.UpsertHolidayRequest) (holiday.HolidayResponse, error) {
	if err := req.Validate(); err != nil {
		return holiday.HolidayResponse{}, err
	}

	date, _ := validator.IsValidDate(req.Date)
	h, err := s.HolidayRepository.Upsert(ctx, holiday.Holiday{
		Date: date,
		Name: req.Name,
	})
	if err != nil {
		return holiday.HolidayResponse{}, err
	}

	return holiday.ToResponse(h), nil
}

// Delete implements holiday.HolidayService. Removing a calendar entry does not
// rewrite attendance entries already stored for that date.
func (s *HolidayServiceImpl) Delete(ctx context.Context, date string) error {
	parsed, ok := validator.IsValidDate(date)
	if !ok {
		return validator.ValidationErrors{{Field: "date", Message: "must be in YYYY-MM-DD format"}}
	}
	return s.HolidayRepository.Delete(ctx, parsed)
}

// List implements holiday.HolidayService.
func (s *HolidayServiceImpl) List(ctx context.Context, start, end string) ([]holiday.HolidayResponse, error) {
	var errs validator.ValidationErrors
	s0, ok := validator.IsValidDate(start)
	if !ok {
		errs = append(errs, validator.ValidationError{Field: "start", Message: "must be in YYYY-MM-DD format"})
	}
	e0, ok := validator.IsValidDate(end)
	if !ok {
		errs = append(errs, validator.ValidationError{Field: "end", Message: "must be in YYYY-MM-DD format"})
	}
	if len(errs) > 0 {
		return nil, errs
	}

	holidays, err := s.HolidayRepository.List(ctx, s0, e0)
	if err != nil {
		return nil, err
	}

	responses := make([]holiday.HolidayResponse, 0, len(holidays))
	for _, h := range holidays {
		responses = append(responses, holiday.ToResponse(h))
	}
	return responses, nil
}
