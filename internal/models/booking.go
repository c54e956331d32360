package models

import "time"

// Booking is one completed reservation. Bookings form an append-only ledger;
// rows are never updated or deleted.
type Booking struct {
	ID             int64     `json:"booking_id" db:"booking_id"`
	RoomID         int64     `json:"room_id" db:"room_id"`
	RoomNumber     int       `json:"room_number" db:"room_number"`
	GuestName      string    `json:"guest_name" db:"guest_name"`
	CheckIn        string    `json:"check_in_date" db:"check_in_date"`
	CheckOut       string    `json:"check_out_date" db:"check_out_date"`
	FinalPrice     float64   `json:"total_amount" db:"total_amount"`
	DiscountAmount float64   `json:"discount_amount" db:"discount_amount"`
	Occasion       string    `json:"special_occasion,omitempty" db:"special_occasion"`
	CreatedAt      time.Time `json:"booking_date" db:"booking_date"`
}

// BookingRequest carries the caller-supplied fields for a booking attempt.
// Dates are calendar strings (YYYY-MM-DD); ordering is not validated.
type BookingRequest struct {
	RoomID    int64  `json:"room_id"`
	GuestName string `json:"guest_name"`
	CheckIn   string `json:"check_in_date"`
	CheckOut  string `json:"check_out_date"`
	Occasion  string `json:"special_occasion,omitempty"`
}

// BookingResult is the outcome of a successful booking.
type BookingResult struct {
	BookingID       int64   `json:"booking_id"`
	RoomID          int64   `json:"room_id"`
	FinalPrice      float64 `json:"final_price"`
	DiscountAmount  float64 `json:"discount_amount"`
	DiscountPercent float64 `json:"discount_percentage"`
}
