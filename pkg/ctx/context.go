// Package ctx provides the request context every handler receives.
//
// Instead of (http.ResponseWriter, *http.Request), handlers take a single
// *Context with helpers for params, binding, and the JSON envelope:
//
//	func (h *BookingController) Show(c *ctx.Context) {
//	    id, ok := c.ParamID("id")
//	    if !ok {
//	        return
//	    }
//	    b, err := h.bookings.Get(c.Context(), id)
//	    if err != nil {
//	        c.Fail(err)
//	        return
//	    }
//	    c.Success(b)
//	}
//
//	router.Get("/reservations/{id}", "reservations.show", ctx.Wrap(h.Show))
package ctx

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"sync"

	"github.com/go-chi/chi/v5"

	"github.com/thedosaspot/dosaspot/pkg/apperr"
	"github.com/thedosaspot/dosaspot/pkg/bind"
	"github.com/thedosaspot/dosaspot/pkg/logger"
	"github.com/thedosaspot/dosaspot/pkg/response"
	"github.com/thedosaspot/dosaspot/pkg/validate"
)

// AdminPasswordHeader may carry the shared secret on requests without a body.
const AdminPasswordHeader = "X-Admin-Password"

// HandlerFunc is the context-aware handler signature.
type HandlerFunc func(c *Context)

// Wrap converts a HandlerFunc to a standard http.HandlerFunc.
func Wrap(h HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := acquire(w, r)
		defer release(c)
		h(c)
	}
}

// ─── Context ──────────────────────────────────────────────────────────────────

// Context wraps a request/response pair.
type Context struct {
	W      http.ResponseWriter
	R      *http.Request
	status int // written status code (0 = not written yet)
}

var pool = sync.Pool{
	New: func() any { return &Context{} },
}

func acquire(w http.ResponseWriter, r *http.Request) *Context {
	c := pool.Get().(*Context)
	c.W = w
	c.R = r
	c.status = 0
	return c
}

func release(c *Context) {
	c.W = nil
	c.R = nil
	pool.Put(c)
}

// ─── Request helpers ──────────────────────────────────────────────────────────

// Param returns a URL path parameter (e.g. "/banners/{id}" → c.Param("id")).
func (c *Context) Param(key string) string {
	return chi.URLParam(c.R, key)
}

// ParamID parses a positive integer path parameter. On failure it writes a
// 404, since no record can have that id, and returns false.
func (c *Context) ParamID(key string) (uint, bool) {
	raw := c.Param(key)
	n, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || n == 0 {
		c.NotFound("No record with id " + strconv.Quote(raw))
		return 0, false
	}
	return uint(n), true
}

// Query returns a query-string value. Returns "" if not present.
func (c *Context) Query(key string) string {
	return c.R.URL.Query().Get(key)
}

// DefaultQuery returns a query-string value, or def if it is empty.
func (c *Context) DefaultQuery(key, def string) string {
	if v := c.Query(key); v != "" {
		return v
	}
	return def
}

func (c *Context) Header(key string) string {
	return c.R.Header.Get(key)
}

// AdminPassword returns the shared secret sent on a body-less request, from
// the ?password= query parameter or the X-Admin-Password header.
func (c *Context) AdminPassword() string {
	if p := c.Query("password"); p != "" {
		return p
	}
	return c.Header(AdminPasswordHeader)
}

// Context returns the underlying request context.
func (c *Context) Context() context.Context { return c.R.Context() }

// ─── Binding / Validation ─────────────────────────────────────────────────────

// BindJSON decodes the JSON body into dest and runs validation.
// On validation failure it sends a 422; on a decode error a 400.
// Returns true only when dest is valid and ready to use.
func (c *Context) BindJSON(dest any) bool {
	errs, err := bind.JSON(c.W, c.R, dest)
	if err != nil {
		c.Error(http.StatusBadRequest, err.Error())
		return false
	}
	if validate.HasErrors(errs) {
		c.ValidationError(errs)
		return false
	}
	return true
}

// ─── Response helpers ─────────────────────────────────────────────────────────

// JSON writes an envelope with the given status code.
func (c *Context) JSON(code int, body Envelope) {
	c.status = code
	response.Write(c.W, code, body)
}

// Raw writes v without the envelope.
func (c *Context) Raw(code int, v any) {
	c.status = code
	response.JSON(c.W, code, v)
}

// Success sends a 200 JSON envelope: {"status":200,"data":...}
func (c *Context) Success(data any) {
	c.JSON(http.StatusOK, Envelope{Status: http.StatusOK, Data: data})
}

// Message sends a 200 envelope carrying only a message.
func (c *Context) Message(message string) {
	c.JSON(http.StatusOK, Envelope{Status: http.StatusOK, Message: message})
}

func (c *Context) Created(data any) {
	c.JSON(http.StatusCreated, Envelope{Status: http.StatusCreated, Data: data})
}

func (c *Context) Error(code int, message string) {
	c.JSON(code, Envelope{Status: code, Message: message})
}

// ValidationError sends a 422 Unprocessable Entity with field-level errors.
func (c *Context) ValidationError(errs map[string]string) {
	c.JSON(http.StatusUnprocessableEntity, Envelope{
		Status:  http.StatusUnprocessableEntity,
		Message: "Validation failed",
		Errors:  errs,
	})
}

func (c *Context) Unauthorized(message ...string) {
	msg := "Unauthorized"
	if len(message) > 0 {
		msg = message[0]
	}
	c.Error(http.StatusUnauthorized, msg)
}

func (c *Context) NotFound(message ...string) {
	msg := "Not found"
	if len(message) > 0 {
		msg = message[0]
	}
	c.Error(http.StatusNotFound, msg)
}

// Fail writes the envelope matching err's apperr kind. Unclassified errors
// are logged with the request id and reported as a bare 500.
func (c *Context) Fail(err error) {
	var ae *apperr.Error
	if !errors.As(err, &ae) {
		logger.WithCtx(c.Context()).Error("request failed",
			"method", c.R.Method,
			"path", c.R.URL.Path,
			"error", err,
		)
		c.Error(http.StatusInternalServerError, "Internal Server Error")
		return
	}

	code := ae.Kind.HTTPStatus()
	c.JSON(code, Envelope{Status: code, Message: ae.Message, Errors: fieldsOrNil(ae.Fields)})
}

func fieldsOrNil(f map[string]string) any {
	if len(f) == 0 {
		return nil
	}
	return f
}

// WrittenStatus returns the status code written so far, or 0.
func (c *Context) WrittenStatus() int { return c.status }

// Envelope is the body shape of every JSON response.
type Envelope = response.Envelope
