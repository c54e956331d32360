// Package models defines core data structures for rooms, bookings, and meeting files.
package models

import "time"

// Room represents one hotel room. PriceFloor and PriceCeiling bound the final
// price a booking may produce; occupancy fields are only set while Occupied.
type Room struct {
	ID              int64     `json:"room_id" db:"room_id"`
	Number          int       `json:"room_number" db:"room_number"`
	Type            string    `json:"room_type" db:"room_type"`
	PriceFloor      float64   `json:"price_min" db:"price_min"`
	PriceCeiling    float64   `json:"price_max" db:"price_max"`
	Occupied        bool      `json:"is_occupied" db:"is_occupied"`
	GuestName       string    `json:"guest_name,omitempty" db:"guest_name"`
	CheckIn         string    `json:"check_in_date,omitempty" db:"check_in_date"`
	CheckOut        string    `json:"check_out_date,omitempty" db:"check_out_date"`
	Occasion        string    `json:"special_occasion,omitempty" db:"special_occasion"`
	DiscountPercent float64   `json:"discount_percentage" db:"discount_percentage"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
}

// RoomTypeSummary aggregates all rooms of one type.
type RoomTypeSummary struct {
	Type         string  `json:"room_type"`
	Total        int     `json:"total_rooms"`
	Available    int     `json:"available_rooms"`
	PriceFloor   float64 `json:"min_price"`
	PriceCeiling float64 `json:"max_price"`
}

// InventorySummary is an occupancy snapshot across the whole hotel.
type InventorySummary struct {
	TotalRooms    int               `json:"total_rooms"`
	Available     int               `json:"available_rooms"`
	Occupied      int               `json:"occupied_rooms"`
	OccupancyRate float64           `json:"occupancy_rate"`
	RoomTypes     []RoomTypeSummary `json:"room_types"`
}

// RoomSuggestion is one suggested room type for an occasion/budget query.
type RoomSuggestion struct {
	Type         string  `json:"room_type"`
	PriceCeiling float64 `json:"max_price"`
	Available    int     `json:"available_rooms"`
	SuitableFor  string  `json:"suitable_for"`
}
