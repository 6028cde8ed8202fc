package model

import (
	"time"

	"atoll/shared/model"
)

const (
	TableName  = "bookings"
	EntityName = "booking"

	FieldID             = "id"
	FieldPropertyID     = "property_id"
	FieldCustomerID     = "customer_id"
	FieldCustomerEmail  = "customer_email"
	FieldCheckInDate    = "check_in_date"
	FieldCheckOutDate   = "check_out_date"
	FieldStatus         = "status"
	FieldTotalPrice     = "total_price"
	FieldNumberOfGuests = "number_of_guests"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
	StatusCompleted Status = "completed"
)

// ActiveStatuses are the statuses that hold the dates of a booking.
var ActiveStatuses = []string{string(StatusPending), string(StatusConfirmed)}

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted:
		return true
	default:
		return false
	}
}

func (s Status) IsActive() bool {
	return s == StatusPending || s == StatusConfirmed
}

type Booking struct {
	ID              string    `db:"id"`
	PropertyID      string    `db:"property_id"`
	PropertyName    string    `column:"name"             db:"property_name"  table:"properties"`
	PropertyImage   *string   `column:"images[1]"        db:"property_image" table:"properties"`
	CustomerID      *string   `db:"customer_id"`
	CustomerName    string    `db:"customer_name"`
	CustomerEmail   string    `db:"customer_email"`
	CustomerPhone   string    `db:"customer_phone"`
	CheckInDate     time.Time `db:"check_in_date"`
	CheckOutDate    time.Time `db:"check_out_date"`
	NumberOfGuests  int       `db:"number_of_guests"`
	TotalPrice      float64   `db:"total_price"`
	Status          Status    `db:"status"`
	SpecialRequests string    `db:"special_requests"`
	model.Metadata
}

func (Booking) GetJoinQuery() string {
	return "JOIN properties ON properties.id = bookings.property_id"
}

// Summary holds booking counters for the staff dashboard.
type Summary struct {
	Total     int     `db:"total"`
	Pending   int     `db:"pending"`
	Confirmed int     `db:"confirmed"`
	Cancelled int     `db:"cancelled"`
	Completed int     `db:"completed"`
	Recent    int     `db:"recent"`
	Revenue   float64 `db:"revenue"`
}

// Event is the payload published for booking lifecycle changes.
type Event struct {
	Type           string  `json:"type"`
	BookingID      string  `json:"booking_id"`
	PropertyID     string  `json:"property_id"`
	CustomerEmail  string  `json:"customer_email"`
	CheckInDate    string  `json:"check_in_date"`
	CheckOutDate   string  `json:"check_out_date"`
	Status         string  `json:"status"`
	PreviousStatus string  `json:"previous_status,omitempty"`
	TotalPrice     float64 `json:"total_price"`
	OccurredAt     string  `json:"occurred_at"`
}

const (
	EventCreated       = "booking.created"
	EventStatusChanged = "booking.status_changed"
)
