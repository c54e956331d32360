package agent

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/grandplaza/concierge/internal/discount"
	"github.com/grandplaza/concierge/internal/inventory"
	"github.com/grandplaza/concierge/internal/models"
)

// Payload is a structured tool result. Every tool response carries a "success"
// key; failures carry "error" text instead of raw Go errors.
type Payload map[string]interface{}

// Summarizer turns the current meeting transcript into an archived summary.
// Implemented by the transcript package.
type Summarizer interface {
	Summarize(ctx context.Context) (string, error)
}

// ToolFunc executes one named tool over JSON-encoded arguments.
type ToolFunc func(ctx context.Context, args json.RawMessage) Payload

// Registry maps tool names to handlers over the booking stores.
type Registry struct {
	inventory  *inventory.Store
	summarizer Summarizer
	logger     *zap.Logger
	tools      map[string]ToolFunc
}

// NewRegistry builds the tool registry. summarizer may be nil; convert_to_pdf
// then reports an error payload.
func NewRegistry(inv *inventory.Store, summarizer Summarizer, logger *zap.Logger) *Registry {
	r := &Registry{inventory: inv, summarizer: summarizer, logger: logger}
	r.tools = map[string]ToolFunc{
		"search_available_rooms":    r.searchAvailableRooms,
		"check_room_availability":   r.checkRoomAvailability,
		"get_room_pricing":          r.getRoomPricing,
		"book_room":                 r.bookRoom,
		"get_room_details":          r.getRoomDetails,
		"suggest_room_for_occasion": r.suggestRoomForOccasion,
		"calculate_discount":        r.calculateDiscount,
		"get_booking_summary":       r.getBookingSummary,
		"convert_to_pdf":            r.convertToPDF,
	}
	return r
}

// Names returns the registered tool names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.tools))
	for name := range r.tools {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Call dispatches a tool by name. Unknown names produce an error payload.
func (r *Registry) Call(ctx context.Context, name string, args json.RawMessage) Payload {
	tool, ok := r.tools[name]
	if !ok {
		return Payload{"success": false, "error": fmt.Sprintf("unknown tool '%s'", name)}
	}
	r.logger.Info("tool call", zap.String("tool", name))
	return tool(ctx, args)
}

func errPayload(format string, a ...interface{}) Payload {
	return Payload{"success": false, "error": fmt.Sprintf(format, a...)}
}

func (r *Registry) searchAvailableRooms(ctx context.Context, args json.RawMessage) Payload {
	var req struct {
		RoomType string `json:"room_type"`
	}
	if err := unmarshalArgs(args, &req); err != nil {
		return errPayload("invalid arguments: %v", err)
	}

	if req.RoomType != "" {
		rooms, err := r.inventory.ListAvailable(ctx, req.RoomType)
		if err != nil {
			return errPayload("failed to search rooms")
		}
		return Payload{
			"success":         true,
			"room_type":       req.RoomType,
			"available_count": len(rooms),
			"rooms":           roomsOrEmpty(rooms),
		}
	}

	types, err := r.inventory.ListRoomTypes(ctx)
	if err != nil {
		return errPayload("failed to list room types")
	}
	return Payload{
		"success":          true,
		"total_room_types": len(types),
		"room_types":       types,
	}
}

func (r *Registry) checkRoomAvailability(ctx context.Context, args json.RawMessage) Payload {
	var req struct {
		RoomType string `json:"room_type"`
	}
	if err := unmarshalArgs(args, &req); err != nil {
		return errPayload("invalid arguments: %v", err)
	}
	if req.RoomType == "" {
		return errPayload("room_type is required")
	}

	rooms, err := r.inventory.ListAvailable(ctx, req.RoomType)
	if err != nil {
		return errPayload("failed to check availability")
	}
	return Payload{
		"success":         true,
		"room_type":       req.RoomType,
		"is_available":    len(rooms) > 0,
		"available_count": len(rooms),
		"rooms":           roomsOrEmpty(rooms),
	}
}

func (r *Registry) getRoomPricing(ctx context.Context, args json.RawMessage) Payload {
	var req struct {
		RoomType string `json:"room_type"`
	}
	if err := unmarshalArgs(args, &req); err != nil {
		return errPayload("invalid arguments: %v", err)
	}

	ts, err := r.findRoomType(ctx, req.RoomType)
	if err != nil {
		return errPayload("room type '%s' not found", req.RoomType)
	}
	return Payload{
		"success":         true,
		"room_type":       ts.Type,
		"min_price":       ts.PriceFloor,
		"max_price":       ts.PriceCeiling,
		"available_rooms": ts.Available,
	}
}

func (r *Registry) bookRoom(ctx context.Context, args json.RawMessage) Payload {
	var req models.BookingRequest
	if err := unmarshalArgs(args, &req); err != nil {
		return errPayload("invalid arguments: %v", err)
	}

	result, err := r.inventory.Book(ctx, &req)
	switch {
	case errors.Is(err, inventory.ErrRoomNotFound):
		return Payload{"success": false, "message": "Room not found", "final_price": 0.0}
	case errors.Is(err, inventory.ErrRoomOccupied):
		return Payload{"success": false, "message": "Room is already occupied", "final_price": 0.0}
	case err != nil:
		return Payload{"success": false, "message": fmt.Sprintf("Error booking room: %v", err), "final_price": 0.0}
	}

	return Payload{
		"success":     true,
		"message":     fmt.Sprintf("Room %d booked successfully! Final price: $%.2f", result.RoomID, result.FinalPrice),
		"final_price": result.FinalPrice,
		"room_id":     result.RoomID,
		"guest_name":  req.GuestName,
	}
}

func (r *Registry) getRoomDetails(ctx context.Context, args json.RawMessage) Payload {
	var req struct {
		RoomID int64 `json:"room_id"`
	}
	if err := unmarshalArgs(args, &req); err != nil {
		return errPayload("invalid arguments: %v", err)
	}

	room, err := r.inventory.GetRoom(ctx, req.RoomID)
	if err != nil {
		return errPayload("room %d not found", req.RoomID)
	}
	return Payload{"success": true, "room": room}
}

func (r *Registry) suggestRoomForOccasion(ctx context.Context, args json.RawMessage) Payload {
	var req struct {
		Occasion string  `json:"occasion"`
		Budget   float64 `json:"budget"`
	}
	if err := unmarshalArgs(args, &req); err != nil {
		return errPayload("invalid arguments: %v", err)
	}

	suggestions, err := r.inventory.SuggestForOccasion(ctx, req.Occasion, req.Budget)
	if err != nil {
		return errPayload("failed to suggest rooms")
	}
	if suggestions == nil {
		suggestions = []*models.RoomSuggestion{}
	}
	return Payload{
		"success":     true,
		"occasion":    req.Occasion,
		"budget":      req.Budget,
		"suggestions": suggestions,
	}
}

func (r *Registry) calculateDiscount(ctx context.Context, args json.RawMessage) Payload {
	var req struct {
		RoomType string `json:"room_type"`
		Occasion string `json:"occasion"`
	}
	if err := unmarshalArgs(args, &req); err != nil {
		return errPayload("invalid arguments: %v", err)
	}

	ts, err := r.findRoomType(ctx, req.RoomType)
	if err != nil {
		return errPayload("room type '%s' not found", req.RoomType)
	}

	quote := discount.Preview(ts.PriceCeiling, req.Occasion)
	return Payload{
		"success":             true,
		"room_type":           ts.Type,
		"original_price":      ts.PriceCeiling,
		"discount_percentage": quote.Percent,
		"discount_amount":     quote.Amount,
		"final_price":         quote.FinalPrice,
		"occasion":            req.Occasion,
	}
}

func (r *Registry) getBookingSummary(ctx context.Context, _ json.RawMessage) Payload {
	sum, err := r.inventory.Summary(ctx)
	if err != nil {
		return errPayload("failed to load booking summary")
	}
	return Payload{
		"success": true,
		"summary": map[string]interface{}{
			"total_rooms":     sum.TotalRooms,
			"available_rooms": sum.Available,
			"occupied_rooms":  sum.Occupied,
			"occupancy_rate":  sum.OccupancyRate,
		},
		"room_types": sum.RoomTypes,
	}
}

func (r *Registry) convertToPDF(ctx context.Context, _ json.RawMessage) Payload {
	if r.summarizer == nil {
		return errPayload("meeting summarizer not configured")
	}
	path, err := r.summarizer.Summarize(ctx)
	if err != nil {
		r.logger.Error("meeting summary failed", zap.Error(err))
		return errPayload("failed to summarize meeting")
	}
	return Payload{"success": true, "summary_path": path}
}

func (r *Registry) findRoomType(ctx context.Context, roomType string) (*models.RoomTypeSummary, error) {
	types, err := r.inventory.ListRoomTypes(ctx)
	if err != nil {
		return nil, err
	}
	for _, ts := range types {
		if strings.EqualFold(ts.Type, roomType) {
			return ts, nil
		}
	}
	return nil, fmt.Errorf("room type %q not found", roomType)
}

func unmarshalArgs(args json.RawMessage, v interface{}) error {
	if len(args) == 0 {
		return nil
	}
	return json.Unmarshal(args, v)
}

func roomsOrEmpty(rooms []*models.Room) []*models.Room {
	if rooms == nil {
		return []*models.Room{}
	}
	return rooms
}
