// Package integration provides end-to-end tests (requires real storage and indices).
package integration

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/grandplaza/concierge/internal/agent"
	"github.com/grandplaza/concierge/internal/embedding"
	"github.com/grandplaza/concierge/internal/export"
	"github.com/grandplaza/concierge/internal/inventory"
	"github.com/grandplaza/concierge/internal/llm"
	"github.com/grandplaza/concierge/internal/meetings"
)

func TestIntegration_BookingFlow(t *testing.T) {
	dir := t.TempDir()
	logger := zap.NewNop()

	inv, err := inventory.NewStore(filepath.Join(dir, "hotel.db"), logger)
	if err != nil {
		t.Fatal(err)
	}
	defer inv.Close()

	exportPath := filepath.Join(dir, "bookings.xlsx")
	exporter := export.NewExporter(inv, exportPath, logger)
	inv.OnBooked(exporter.OnBooked)

	tools := agent.NewRegistry(inv, nil, logger)
	ctx := context.Background()

	// Agent-style tool flow: look up the type, then book by room id.
	payload := tools.Call(ctx, "search_available_rooms", []byte(`{"room_type":"Honeymoon"}`))
	if payload["success"] != true {
		t.Fatalf("search_available_rooms failed: %v", payload)
	}

	rooms, err := inv.ListAvailable(ctx, "Honeymoon")
	if err != nil {
		t.Fatal(err)
	}
	args := fmt.Sprintf(`{"room_id":%d,"guest_name":"Alice","check_in_date":"2026-09-01","check_out_date":"2026-09-05","special_occasion":"honeymoon"}`, rooms[0].ID)
	payload = tools.Call(ctx, "book_room", []byte(args))
	if payload["success"] != true {
		t.Fatalf("book_room failed: %v", payload)
	}
	if payload["final_price"] != 255.0 {
		t.Errorf("final price = %v, want 255", payload["final_price"])
	}

	// The booked hook exports asynchronously; the workbook must appear.
	waitForFile(t, exportPath)
	wb, err := excelize.OpenFile(exportPath)
	if err != nil {
		t.Fatal(err)
	}
	defer wb.Close()
	rows, err := wb.GetRows("Bookings")
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 2 {
		t.Fatalf("workbook booking rows = %d, want header + 1", len(rows))
	}
}

func TestIntegration_MeetingAssistant(t *testing.T) {
	dir := t.TempDir()
	logger := zap.NewNop()

	kw, err := meetings.NewKeywordIndex(filepath.Join(dir, "meetings.bleve"))
	if err != nil {
		t.Fatal(err)
	}
	defer kw.Close()

	store, err := meetings.NewStore(filepath.Join(dir, "meetings.db"),
		embedding.NewHashEmbedder(64), kw, logger)
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	ag := agent.New(store, &llm.MockClient{Reply: "Certainly!"}, logger)
	ctx := context.Background()

	reply := ag.HandleMessage(ctx, "add meeting file filename: standup.txt content: discussed the quarterly roadmap")
	if !strings.Contains(reply, "added successfully") {
		t.Fatalf("add reply = %q", reply)
	}

	reply = ag.HandleMessage(ctx, "search meeting notes about quarterly roadmap")
	if !strings.Contains(reply, "standup.txt") {
		t.Errorf("search reply = %q", reply)
	}

	hits, err := store.KeywordSearch(ctx, "roadmap", 5)
	if err != nil {
		t.Fatal(err)
	}
	if len(hits) != 1 {
		t.Errorf("keyword hits = %d, want 1", len(hits))
	}

	reply = ag.HandleMessage(ctx, "get meeting file filename: standup.txt")
	if !strings.Contains(reply, "quarterly roadmap") {
		t.Errorf("retrieve reply = %q", reply)
	}

	reply = ag.HandleMessage(ctx, "delete all meeting files")
	if !strings.Contains(reply, "deleted successfully") {
		t.Errorf("purge reply = %q", reply)
	}
	count, err := store.Count(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if count != 0 {
		t.Errorf("count after purge = %d, want 0", count)
	}
}

func waitForFile(t *testing.T, path string) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if _, err := os.Stat(path); err == nil {
			return
		}
		time.Sleep(20 * time.Millisecond)
	}
	t.Fatalf("file %s never appeared", path)
}
