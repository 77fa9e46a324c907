package models

import "time"

// BookingType selects which optional fields a booking carries.
type BookingType string

const (
	BookingTable        BookingType = "table"
	BookingPrivateEvent BookingType = "private_event"
	BookingCatering     BookingType = "catering"
)

// BookingTypes lists every accepted type, in display order.
var BookingTypes = []BookingType{BookingTable, BookingPrivateEvent, BookingCatering}

// ParseBookingType maps "" to table and rejects anything unknown.
func ParseBookingType(s string) (BookingType, bool) {
	if s == "" {
		return BookingTable, true
	}
	for _, t := range BookingTypes {
		if string(t) == s {
			return t, true
		}
	}
	return "", false
}

// BookingStatus is where a booking sits in the approval workflow.
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusRejected  BookingStatus = "rejected"
)

// ParseStatus accepts exactly pending, confirmed or rejected.
func ParseStatus(s string) (BookingStatus, bool) {
	switch st := BookingStatus(s); st {
	case StatusPending, StatusConfirmed, StatusRejected:
		return st, true
	}
	return "", false
}

// pending is the only state with a way out; confirmed and rejected are final.
var allowedTransitions = map[BookingStatus]map[BookingStatus]bool{
	StatusPending: {
		StatusConfirmed: true,
		StatusRejected:  true,
	},
}

// CanTransition reports whether a booking may move from one status to another.
func CanTransition(from, to BookingStatus) bool {
	return allowedTransitions[from][to]
}

// Terminal reports whether no further transition is possible.
func (s BookingStatus) Terminal() bool {
	return len(allowedTransitions[s]) == 0
}

// Booking is a table, private event or catering request.
type Booking struct {
	ID          uint          `gorm:"primaryKey"                        json:"id"`
	Name        string        `gorm:"size:255;not null"                 json:"name"`
	Email       string        `gorm:"size:255;not null"                 json:"email"`
	Phone       string        `gorm:"size:50;not null"                  json:"phone"`
	Date        string        `gorm:"size:10;not null;index"            json:"date"` // YYYY-MM-DD
	Time        string        `gorm:"size:20;not null"                  json:"time"`
	Guests      int           `gorm:"not null"                          json:"guests"`
	BookingType BookingType   `gorm:"size:20;not null;default:table"    json:"booking_type"`
	Status      BookingStatus `gorm:"size:20;not null;default:pending;index" json:"status"`

	EventType       *string `gorm:"size:255" json:"event_type"`
	Duration        *string `gorm:"size:100" json:"duration"`
	Venue           *string `gorm:"size:255" json:"venue"`
	Budget          *string `gorm:"size:100" json:"budget"`
	SpecialRequests *string `gorm:"type:text" json:"special_requests"`

	CreatedAt time.Time `json:"created_at"`
}
