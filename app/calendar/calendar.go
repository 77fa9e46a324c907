// Package calendar projects confirmed bookings onto a Sunday-first month grid.
package calendar

import (
	"fmt"
	"time"

	"github.com/thedosaspot/dosaspot/app/models"
	"github.com/thedosaspot/dosaspot/pkg/apperr"
)

// Day is one real day of the month and the confirmed bookings on it.
type Day struct {
	Day      int              `json:"day"`
	Date     string           `json:"date"` // YYYY-MM-DD
	Bookings []models.Booking `json:"bookings"`
}

// Month is the grid for one month. Cells starts with LeadingBlanks nil
// entries so that cell i falls in weekday column i%7, Sunday first.
type Month struct {
	Year          int    `json:"year"`
	Month         int    `json:"month"`
	Name          string `json:"name"`
	LeadingBlanks int    `json:"leading_blanks"`
	DaysInMonth   int    `json:"days_in_month"`
	Cells         []*Day `json:"cells"`
}

// Days returns only the real day cells.
func (m Month) Days() []*Day {
	return m.Cells[m.LeadingBlanks:]
}

// Total counts the bookings placed on the grid.
func (m Month) Total() int {
	n := 0
	for _, d := range m.Days() {
		n += len(d.Bookings)
	}
	return n
}

// Validate rejects months outside 1..12 and years outside 1..9999.
func Validate(year, month int) error {
	fields := map[string]string{}
	if year < 1 || year > 9999 {
		fields["year"] = "The year must be between 1 and 9999."
	}
	if month < 1 || month > 12 {
		fields["month"] = "The month must be between 1 and 12."
	}
	if len(fields) > 0 {
		return apperr.Validation("Invalid calendar month", fields)
	}
	return nil
}

// Project builds the grid for year/month. A day's bookings are those in
// bookings with status confirmed whose date equals that day's YYYY-MM-DD
// string, kept in input order. bookings is not modified.
func Project(bookings []models.Booking, year, month int) (Month, error) {
	if err := Validate(year, month); err != nil {
		return Month{}, err
	}

	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	days := first.AddDate(0, 1, -1).Day()
	blanks := int(first.Weekday()) // Sunday == 0

	m := Month{
		Year:          year,
		Month:         month,
		Name:          first.Month().String(),
		LeadingBlanks: blanks,
		DaysInMonth:   days,
		Cells:         make([]*Day, blanks, blanks+days),
	}

	byDate := make(map[string]*Day, days)
	for d := 1; d <= days; d++ {
		cell := &Day{
			Day:      d,
			Date:     fmt.Sprintf("%04d-%02d-%02d", year, month, d),
			Bookings: []models.Booking{},
		}
		byDate[cell.Date] = cell
		m.Cells = append(m.Cells, cell)
	}

	for _, b := range bookings {
		if b.Status != models.StatusConfirmed {
			continue
		}
		if cell, ok := byDate[b.Date]; ok {
			cell.Bookings = append(cell.Bookings, b)
		}
	}
	return m, nil
}
