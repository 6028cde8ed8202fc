package dto

import (
	"time"

	"atoll/internal/domains/booking/model"
	"atoll/shared"
	gDto "atoll/shared/dto"
	gModel "atoll/shared/model"
	"atoll/shared/timezone"

	"github.com/google/uuid"
)

type CheckAvailabilityRequest struct {
	PropertyID string
	CheckIn    string `json:"check_in"`
	CheckOut   string `json:"check_out"`
}

type CheckAvailabilityResponse struct {
	PropertyID    string  `json:"property_id"`
	PropertyName  string  `json:"property_name"`
	CheckIn       string  `json:"check_in"`
	CheckOut      string  `json:"check_out"`
	Nights        int     `json:"nights"`
	IsAvailable   bool    `json:"is_available"`
	PricePerNight float64 `json:"price_per_night"`
	TotalPrice    float64 `json:"total_price"`
	Currency      string  `json:"currency"`
}

type CreateBookingRequest struct {
	PropertyID      string `json:"property_id"      validate:"required,uuid"`
	CustomerName    string `json:"customer_name"    validate:"required,max=200"`
	CustomerEmail   string `json:"customer_email"   validate:"required,email,max=254"`
	CustomerPhone   string `json:"customer_phone"   validate:"omitempty,max=20"`
	CheckInDate     string `json:"check_in_date"    validate:"required,date"`
	CheckOutDate    string `json:"check_out_date"   validate:"required,date"`
	NumberOfGuests  int    `json:"number_of_guests" validate:"omitempty,gte=1"`
	SpecialRequests string `json:"special_requests" validate:"omitempty,max=2000"`
}

// ToModel builds a pending booking; the price is always computed by the caller.
func (c *CreateBookingRequest) ToModel(user string, checkIn, checkOut time.Time, totalPrice float64) model.Booking {
	guests := c.NumberOfGuests
	if guests == 0 {
		guests = 1
	}

	var customerID *string
	if user != "" {
		customerID = &user
	}

	return model.Booking{
		ID:              uuid.NewString(),
		PropertyID:      c.PropertyID,
		CustomerID:      customerID,
		CustomerName:    c.CustomerName,
		CustomerEmail:   c.CustomerEmail,
		CustomerPhone:   c.CustomerPhone,
		CheckInDate:     checkIn,
		CheckOutDate:    checkOut,
		NumberOfGuests:  guests,
		TotalPrice:      totalPrice,
		Status:          model.StatusPending,
		SpecialRequests: c.SpecialRequests,
		Metadata:        gModel.NewMetadata(timezone.Now(), user),
	}
}

type UpdateStatusRequest struct {
	Status model.Status `json:"status" validate:"required,enum"`
}

type BookingProperty struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Image *string `json:"image"`
}

type BookingResponse struct {
	ID              string          `json:"id"`
	Property        BookingProperty `json:"property"`
	CustomerID      *string         `json:"customer_id"`
	CustomerName    string          `json:"customer_name"`
	CustomerEmail   string          `json:"customer_email"`
	CustomerPhone   string          `json:"customer_phone"`
	CheckInDate     string          `json:"check_in_date"`
	CheckOutDate    string          `json:"check_out_date"`
	Nights          int             `json:"nights"`
	NumberOfGuests  int             `json:"number_of_guests"`
	TotalPrice      float64         `json:"total_price"`
	Status          model.Status    `json:"status"`
	SpecialRequests string          `json:"special_requests"`
	gDto.Metadata
}

func (r *BookingResponse) FromModel(model model.Booking) {
	r.ID = model.ID
	r.Property = BookingProperty{
		ID:    model.PropertyID,
		Name:  model.PropertyName,
		Image: model.PropertyImage,
	}
	r.CustomerID = model.CustomerID
	r.CustomerName = model.CustomerName
	r.CustomerEmail = model.CustomerEmail
	r.CustomerPhone = model.CustomerPhone
	r.CheckInDate = timezone.FormatDate(model.CheckInDate)
	r.CheckOutDate = timezone.FormatDate(model.CheckOutDate)
	r.Nights = timezone.DaysBetween(model.CheckInDate, model.CheckOutDate)
	r.NumberOfGuests = model.NumberOfGuests
	r.TotalPrice = model.TotalPrice
	r.Status = model.Status
	r.SpecialRequests = model.SpecialRequests
	r.Metadata.FromModel(model.Metadata)
}

type GetBookingsResponse struct {
	Bookings  []BookingResponse `json:"bookings"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetBookingsResponse) FromModels(models []model.Booking, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Bookings = make([]BookingResponse, len(models))
	for i, mod := range models {
		r.Bookings[i].FromModel(mod)
	}
}

type SummaryResponse struct {
	TotalBookings     int     `json:"total_bookings"`
	PendingBookings   int     `json:"pending_bookings"`
	ConfirmedBookings int     `json:"confirmed_bookings"`
	CompletedBookings int     `json:"completed_bookings"`
	CancelledBookings int     `json:"cancelled_bookings"`
	RecentBookings    int     `json:"recent_bookings"`
	TotalRevenue      float64 `json:"total_revenue"`
	LastUpdated       string  `json:"last_updated"`
}

func (r *SummaryResponse) FromModel(summary model.Summary, now time.Time) {
	r.TotalBookings = summary.Total
	r.PendingBookings = summary.Pending
	r.ConfirmedBookings = summary.Confirmed
	r.CompletedBookings = summary.Completed
	r.CancelledBookings = summary.Cancelled
	r.RecentBookings = summary.Recent
	r.TotalRevenue = summary.Revenue
	r.LastUpdated = timezone.Format(now, time.RFC3339)
}
