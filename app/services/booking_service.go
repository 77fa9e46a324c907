package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/thedosaspot/dosaspot/app/calendar"
	"github.com/thedosaspot/dosaspot/app/models"
	"github.com/thedosaspot/dosaspot/app/repositories"
	"github.com/thedosaspot/dosaspot/pkg/apperr"
	"github.com/thedosaspot/dosaspot/pkg/auth"
	"github.com/thedosaspot/dosaspot/pkg/event"
	"github.com/thedosaspot/dosaspot/pkg/logger"
	"github.com/thedosaspot/dosaspot/pkg/validate"
)

// BookingRequest is the public booking form. booking_type picks the variant;
// optional fields outside that variant are dropped. Any status or id the
// client sends has no field here and is ignored.
type BookingRequest struct {
	Name        string `json:"name"         validate:"required,max=255"`
	Email       string `json:"email"        validate:"required,email,max=255"`
	Phone       string `json:"phone"        validate:"required,max=50"`
	Date        string `json:"date"         validate:"required,date"`
	Time        string `json:"time"         validate:"required,max=20"`
	Guests      int    `json:"guests"       validate:"min=1"`
	BookingType string `json:"booking_type" validate:"nullable,in=table,private_event,catering"`

	EventType       *string `json:"event_type"       validate:"nullable,max=255"`
	Duration        *string `json:"duration"         validate:"nullable,max=100"`
	Venue           *string `json:"venue"            validate:"nullable,max=255"`
	Budget          *string `json:"budget"           validate:"nullable,max=100"`
	SpecialRequests *string `json:"special_requests" validate:"nullable,max=2000"`
}

// variant lists the optional fields each booking type keeps.
type variant struct {
	eventType, duration, venue, budget bool
}

var variants = map[models.BookingType]variant{
	models.BookingTable:        {},
	models.BookingPrivateEvent: {eventType: true, duration: true, budget: true},
	models.BookingCatering:     {eventType: true, venue: true, budget: true},
}

// Booking builds the pending record for this request.
func (r BookingRequest) Booking() (models.Booking, error) {
	if err := check(r); err != nil {
		return models.Booking{}, err
	}
	bt, ok := models.ParseBookingType(r.BookingType)
	if !ok {
		return models.Booking{}, apperr.Field("booking_type", "The selected booking_type is invalid.")
	}

	v := variants[bt]
	return models.Booking{
		Name:            strings.TrimSpace(r.Name),
		Email:           strings.TrimSpace(r.Email),
		Phone:           strings.TrimSpace(r.Phone),
		Date:            r.Date,
		Time:            strings.TrimSpace(r.Time),
		Guests:          r.Guests,
		BookingType:     bt,
		Status:          models.StatusPending,
		EventType:       keep(v.eventType, r.EventType),
		Duration:        keep(v.duration, r.Duration),
		Venue:           keep(v.venue, r.Venue),
		Budget:          keep(v.budget, r.Budget),
		SpecialRequests: keep(true, r.SpecialRequests),
	}, nil
}

// keep returns a trimmed copy of s when the variant allows it; blanks are
// stored as NULL.
func keep(allowed bool, s *string) *string {
	if !allowed || s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	if t == "" {
		return nil
	}
	return &t
}

// BookingQuery filters List. Empty fields do not filter.
type BookingQuery struct {
	Status string
	Date   string
}

// StatusChange is the payload of booking.status_changed.
type StatusChange struct {
	Booking models.Booking
	From    models.BookingStatus
}

// BookingService runs intake, approval and the calendar.
type BookingService struct {
	bookings *repositories.BookingRepository
	gate     *auth.Gate
	events   *event.Bus
}

func NewBookingService(store *repositories.Store, gate *auth.Gate, events *event.Bus) *BookingService {
	return &BookingService{bookings: store.Bookings, gate: gate, events: events}
}

// Create stores a new booking. The result is always pending.
func (s *BookingService) Create(ctx context.Context, req BookingRequest) (models.Booking, error) {
	b, err := req.Booking()
	if err != nil {
		return models.Booking{}, err
	}
	if err := s.bookings.Create(ctx, &b); err != nil {
		return models.Booking{}, err
	}

	s.events.Fire(ctx, EventBookingCreated, b)
	return b, nil
}

// List returns bookings in insertion order.
func (s *BookingService) List(ctx context.Context, q BookingQuery) ([]models.Booking, error) {
	var f repositories.BookingFilter
	fields := map[string]string{}

	if q.Status != "" {
		st, ok := models.ParseStatus(q.Status)
		if !ok {
			fields["status"] = "The status must be pending, confirmed or rejected."
		}
		f.Status = st
	}
	if q.Date != "" {
		if !isDate(q.Date) {
			fields["date"] = "The date must be a date in YYYY-MM-DD format."
		}
		f.Date = q.Date
	}
	if len(fields) > 0 {
		return nil, apperr.Validation("Invalid filter", fields)
	}
	return s.bookings.List(ctx, f)
}

// Get returns booking id.
func (s *BookingService) Get(ctx context.Context, id uint) (models.Booking, error) {
	return s.bookings.FindByID(ctx, id)
}

// UpdateStatus moves a pending booking to confirmed or rejected. The password
// is checked before anything is read. Asking for the status a booking already
// has returns it unchanged; any other move out of a final status is refused.
func (s *BookingService) UpdateStatus(ctx context.Context, id uint, status, password string) (models.Booking, error) {
	if err := s.gate.Check(password); err != nil {
		logger.WithCtx(ctx).Warn("booking status change refused", "booking_id", id)
		return models.Booking{}, err
	}

	to, ok := models.ParseStatus(status)
	if !ok || to == models.StatusPending {
		return models.Booking{}, apperr.Field("status", "The status must be confirmed or rejected.")
	}

	current, err := s.bookings.FindByID(ctx, id)
	if err != nil {
		return models.Booking{}, err
	}

	for {
		if current.Status == to {
			return current, nil
		}
		if !models.CanTransition(current.Status, to) {
			return models.Booking{}, apperr.Field("status",
				fmt.Sprintf("Booking %d is already %s.", id, current.Status))
		}

		swapped, err := s.bookings.CompareAndSetStatus(ctx, id, current.Status, to)
		if err != nil {
			return models.Booking{}, err
		}
		if swapped {
			break
		}
		// another approval got there first; judge against what it wrote
		if current, err = s.bookings.FindByID(ctx, id); err != nil {
			return models.Booking{}, err
		}
	}

	from := current.Status
	current.Status = to
	s.events.Fire(ctx, EventBookingStatusChanged, StatusChange{Booking: current, From: from})
	return current, nil
}

// Delete removes booking id.
func (s *BookingService) Delete(ctx context.Context, id uint, password string) error {
	if err := s.gate.Check(password); err != nil {
		return err
	}
	if err := s.bookings.Delete(ctx, id); err != nil {
		return err
	}
	logger.WithCtx(ctx).Info("booking deleted", "booking_id", id)
	return nil
}

// Calendar projects the month's confirmed bookings onto a grid.
func (s *BookingService) Calendar(ctx context.Context, year, month int) (calendar.Month, error) {
	if err := calendar.Validate(year, month); err != nil {
		return calendar.Month{}, err
	}
	confirmed, err := s.bookings.List(ctx, repositories.BookingFilter{
		Status: models.StatusConfirmed,
		Month:  fmt.Sprintf("%04d-%02d", year, month),
	})
	if err != nil {
		return calendar.Month{}, err
	}
	return calendar.Project(confirmed, year, month)
}

func isDate(s string) bool {
	_, err := time.Parse(validate.DateLayout, s)
	return err == nil
}
