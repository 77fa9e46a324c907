package controllers

import (
	"strconv"
	"time"

	"github.com/thedosaspot/dosaspot/app/services"
	"github.com/thedosaspot/dosaspot/pkg/apperr"
	"github.com/thedosaspot/dosaspot/pkg/ctx"
)

type BookingController struct {
	bookings *services.BookingService
	now      func() time.Time
}

func NewBookingController(s *services.BookingService) *BookingController {
	return &BookingController{bookings: s, now: time.Now}
}

// Store accepts the public booking form.
func (h *BookingController) Store(c *ctx.Context) {
	var req services.BookingRequest
	if !c.BindJSON(&req) {
		return
	}

	b, err := h.bookings.Create(c.Context(), req)
	if err != nil {
		c.Fail(err)
		return
	}
	c.Created(b)
}

// Index lists bookings, optionally filtered by ?status= and ?date=.
func (h *BookingController) Index(c *ctx.Context) {
	list, err := h.bookings.List(c.Context(), services.BookingQuery{
		Status: c.Query("status"),
		Date:   c.Query("date"),
	})
	if err != nil {
		c.Fail(err)
		return
	}
	c.Success(list)
}

// Calendar renders ?year=&month=, defaulting to the current month.
func (h *BookingController) Calendar(c *ctx.Context) {
	now := h.now()
	fields := map[string]string{}

	year, ok := intQuery(c, "year", now.Year())
	if !ok {
		fields["year"] = "The year must be a number."
	}
	month, ok := intQuery(c, "month", int(now.Month()))
	if !ok {
		fields["month"] = "The month must be a number."
	}
	if len(fields) > 0 {
		c.Fail(apperr.Validation("Invalid calendar month", fields))
		return
	}

	grid, err := h.bookings.Calendar(c.Context(), year, month)
	if err != nil {
		c.Fail(err)
		return
	}
	c.Success(grid)
}

func (h *BookingController) Show(c *ctx.Context) {
	id, ok := c.ParamID("id")
	if !ok {
		return
	}
	b, err := h.bookings.Get(c.Context(), id)
	if err != nil {
		c.Fail(err)
		return
	}
	c.Success(b)
}

// UpdateStatus approves or rejects a pending booking: {status,password}.
func (h *BookingController) UpdateStatus(c *ctx.Context) {
	id, ok := c.ParamID("id")
	if !ok {
		return
	}
	var body struct {
		Status   string `json:"status"`
		Password string `json:"password"`
	}
	if !c.BindJSON(&body) {
		return
	}

	b, err := h.bookings.UpdateStatus(c.Context(), id, body.Status, body.Password)
	if err != nil {
		c.Fail(err)
		return
	}
	c.Success(b)
}

func (h *BookingController) Destroy(c *ctx.Context) {
	id, ok := c.ParamID("id")
	if !ok {
		return
	}
	if err := h.bookings.Delete(c.Context(), id, c.AdminPassword()); err != nil {
		c.Fail(err)
		return
	}
	c.Message("Booking deleted")
}

func intQuery(c *ctx.Context, key string, def int) (int, bool) {
	raw := c.Query(key)
	if raw == "" {
		return def, true
	}
	n, err := strconv.Atoi(raw)
	return n, err == nil
}
