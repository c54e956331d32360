package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"testing"

	"go.uber.org/zap"

	"github.com/grandplaza/concierge/internal/inventory"
)

type stubSummarizer struct {
	path string
	err  error
}

func (s *stubSummarizer) Summarize(context.Context) (string, error) { return s.path, s.err }

func newTestRegistry(t *testing.T) (*Registry, *inventory.Store) {
	t.Helper()
	store, err := inventory.NewStore(filepath.Join(t.TempDir(), "hotel.db"), zap.NewNop())
	if err != nil {
		t.Fatalf("failed to create inventory store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return NewRegistry(store, &stubSummarizer{path: "summary.pdf"}, zap.NewNop()), store
}

func TestRegistryNames(t *testing.T) {
	r, _ := newTestRegistry(t)
	names := r.Names()
	if len(names) != 9 {
		t.Fatalf("expected 9 tools, got %d: %v", len(names), names)
	}
	for _, want := range []string{"book_room", "convert_to_pdf", "get_booking_summary"} {
		found := false
		for _, name := range names {
			if name == want {
				found = true
			}
		}
		if !found {
			t.Errorf("missing tool %q", want)
		}
	}
}

func TestCallUnknownTool(t *testing.T) {
	r, _ := newTestRegistry(t)
	p := r.Call(context.Background(), "open_pod_bay_doors", nil)
	if p["success"] != false {
		t.Errorf("expected failure payload, got %v", p)
	}
}

func TestSearchAvailableRooms(t *testing.T) {
	r, _ := newTestRegistry(t)
	ctx := context.Background()

	p := r.Call(ctx, "search_available_rooms", nil)
	if p["success"] != true || p["total_room_types"] != 8 {
		t.Errorf("unexpected payload: %v", p)
	}

	p = r.Call(ctx, "search_available_rooms", json.RawMessage(`{"room_type":"Luxury"}`))
	if p["success"] != true || p["available_count"] != 3 {
		t.Errorf("unexpected payload: %v", p)
	}
}

func TestCheckRoomAvailability(t *testing.T) {
	r, _ := newTestRegistry(t)
	ctx := context.Background()

	p := r.Call(ctx, "check_room_availability", json.RawMessage(`{"room_type":"Couple"}`))
	if p["is_available"] != true {
		t.Errorf("unexpected payload: %v", p)
	}

	p = r.Call(ctx, "check_room_availability", json.RawMessage(`{"room_type":"Igloo"}`))
	if p["success"] != true || p["is_available"] != false {
		t.Errorf("unknown type should report unavailable, got %v", p)
	}
}

func TestGetRoomPricing(t *testing.T) {
	r, _ := newTestRegistry(t)
	ctx := context.Background()

	p := r.Call(ctx, "get_room_pricing", json.RawMessage(`{"room_type":"honeymoon"}`))
	if p["success"] != true {
		t.Fatalf("unexpected payload: %v", p)
	}
	if p["min_price"] != 200.0 || p["max_price"] != 300.0 {
		t.Errorf("unexpected pricing: %v", p)
	}

	p = r.Call(ctx, "get_room_pricing", json.RawMessage(`{"room_type":"Igloo"}`))
	if p["success"] != false {
		t.Errorf("expected failure for unknown type, got %v", p)
	}
}

func TestBookRoomTool(t *testing.T) {
	r, store := newTestRegistry(t)
	ctx := context.Background()

	rooms, _ := store.ListAvailable(ctx, "Honeymoon")
	args := fmt.Sprintf(`{"room_id":%d,"guest_name":"Alice","check_in_date":"2026-09-01","check_out_date":"2026-09-05","special_occasion":"honeymoon"}`, rooms[0].ID)

	p := r.Call(ctx, "book_room", json.RawMessage(args))
	if p["success"] != true {
		t.Fatalf("unexpected payload: %v", p)
	}
	if p["final_price"] != 255.0 {
		t.Errorf("final price = %v, want 255", p["final_price"])
	}

	// Booking the same room again must fail without raw error leakage.
	p = r.Call(ctx, "book_room", json.RawMessage(args))
	if p["success"] != false || p["message"] != "Room is already occupied" {
		t.Errorf("unexpected repeat payload: %v", p)
	}

	p = r.Call(ctx, "book_room", json.RawMessage(`{"room_id":9999,"guest_name":"Bob"}`))
	if p["success"] != false || p["message"] != "Room not found" {
		t.Errorf("unexpected missing-room payload: %v", p)
	}
}

func TestGetRoomDetails(t *testing.T) {
	r, store := newTestRegistry(t)
	ctx := context.Background()

	rooms, _ := store.ListRooms(ctx)
	p := r.Call(ctx, "get_room_details", json.RawMessage(fmt.Sprintf(`{"room_id":%d}`, rooms[0].ID)))
	if p["success"] != true || p["room"] == nil {
		t.Errorf("unexpected payload: %v", p)
	}

	p = r.Call(ctx, "get_room_details", json.RawMessage(`{"room_id":9999}`))
	if p["success"] != false {
		t.Errorf("expected failure, got %v", p)
	}
}

func TestSuggestRoomForOccasion(t *testing.T) {
	r, _ := newTestRegistry(t)
	p := r.Call(context.Background(), "suggest_room_for_occasion",
		json.RawMessage(`{"occasion":"anniversary","budget":150}`))
	if p["success"] != true {
		t.Fatalf("unexpected payload: %v", p)
	}
	if p["occasion"] != "anniversary" {
		t.Errorf("occasion echo = %v", p["occasion"])
	}
}

func TestCalculateDiscountTool(t *testing.T) {
	r, _ := newTestRegistry(t)
	p := r.Call(context.Background(), "calculate_discount",
		json.RawMessage(`{"room_type":"Honeymoon","occasion":"honeymoon"}`))
	if p["success"] != true {
		t.Fatalf("unexpected payload: %v", p)
	}
	if p["discount_percentage"] != 15.0 || p["final_price"] != 255.0 {
		t.Errorf("unexpected quote: %v", p)
	}
}

func TestGetBookingSummaryTool(t *testing.T) {
	r, _ := newTestRegistry(t)
	p := r.Call(context.Background(), "get_booking_summary", nil)
	if p["success"] != true {
		t.Fatalf("unexpected payload: %v", p)
	}
	sum, ok := p["summary"].(map[string]interface{})
	if !ok || sum["total_rooms"] != 24 {
		t.Errorf("unexpected summary: %v", p["summary"])
	}
}

func TestConvertToPDFTool(t *testing.T) {
	r, _ := newTestRegistry(t)
	p := r.Call(context.Background(), "convert_to_pdf", nil)
	if p["success"] != true || p["summary_path"] != "summary.pdf" {
		t.Errorf("unexpected payload: %v", p)
	}
}
