package agent

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/grandplaza/concierge/internal/embedding"
	"github.com/grandplaza/concierge/internal/llm"
	"github.com/grandplaza/concierge/internal/meetings"
)

func newTestAgent(t *testing.T, client llm.Client) (*Agent, *meetings.Store) {
	t.Helper()
	store, err := meetings.NewStore(filepath.Join(t.TempDir(), "meetings.db"),
		embedding.NewHashEmbedder(64), nil, zap.NewNop())
	if err != nil {
		t.Fatalf("failed to create meeting store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return New(store, client, zap.NewNop()), store
}

func TestHandleAddAndRetrieve(t *testing.T) {
	a, _ := newTestAgent(t, &llm.MockClient{})
	ctx := context.Background()

	reply := a.HandleMessage(ctx, "add meeting file filename: standup.txt content: roadmap discussion")
	if !strings.Contains(reply, "added successfully") {
		t.Fatalf("unexpected add reply: %q", reply)
	}

	reply = a.HandleMessage(ctx, "get the meeting file filename: standup.txt")
	if reply != "roadmap discussion" {
		t.Errorf("retrieve reply = %q", reply)
	}
}

func TestHandleAddMissingFields(t *testing.T) {
	a, _ := newTestAgent(t, &llm.MockClient{})
	reply := a.HandleMessage(context.Background(), "add meeting file filename: only.txt")
	if !strings.Contains(reply, "'filename:...' and 'content:...'") {
		t.Errorf("expected clarification prompt, got %q", reply)
	}
}

func TestHandleRetrieveMissing(t *testing.T) {
	a, _ := newTestAgent(t, &llm.MockClient{})
	ctx := context.Background()

	reply := a.HandleMessage(ctx, "retrieve the meeting transcript")
	if !strings.Contains(reply, "filename:<filename>") {
		t.Errorf("expected filename prompt, got %q", reply)
	}

	reply = a.HandleMessage(ctx, "get meeting file filename: nope.txt")
	if !strings.Contains(reply, "No meeting file found") {
		t.Errorf("expected not-found reply, got %q", reply)
	}
}

func TestHandleSearchReplyFormat(t *testing.T) {
	a, _ := newTestAgent(t, &llm.MockClient{})
	ctx := context.Background()

	long := strings.Repeat("budget planning details ", 20)
	a.HandleMessage(ctx, "add meeting file filename: budget.txt content: "+long)

	reply := a.HandleMessage(ctx, "search meeting notes about budget planning")
	if !strings.Contains(reply, "Meeting files matching your query") {
		t.Fatalf("unexpected search reply: %q", reply)
	}
	if !strings.Contains(reply, "**budget.txt**") {
		t.Errorf("reply missing filename: %q", reply)
	}
	if !strings.Contains(reply, "Similarity: ") {
		t.Errorf("reply missing similarity: %q", reply)
	}
	// Snippets are capped at 200 characters plus the ellipsis.
	for _, line := range strings.Split(reply, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasSuffix(trimmed, "...") && len(trimmed) > snippetLength+3 {
			t.Errorf("snippet too long (%d chars): %q", len(trimmed), trimmed)
		}
	}
}

func TestHandleSearchNoResults(t *testing.T) {
	a, _ := newTestAgent(t, &llm.MockClient{})
	reply := a.HandleMessage(context.Background(), "search meeting notes about anything")
	if !strings.Contains(reply, "No meeting files found") {
		t.Errorf("unexpected reply: %q", reply)
	}
}

func TestHandlePurge(t *testing.T) {
	a, store := newTestAgent(t, &llm.MockClient{})
	ctx := context.Background()

	a.HandleMessage(ctx, "add meeting file filename: a.txt content: alpha")
	reply := a.HandleMessage(ctx, "delete all meeting files")
	if !strings.Contains(reply, "deleted successfully") {
		t.Fatalf("unexpected purge reply: %q", reply)
	}
	count, _ := store.Count(ctx)
	if count != 0 {
		t.Errorf("count after purge = %d", count)
	}
}

func TestHandleIngestPDFPrompts(t *testing.T) {
	a, _ := newTestAgent(t, &llm.MockClient{})
	ctx := context.Background()

	reply := a.HandleMessage(ctx, "add the pdf")
	if !strings.Contains(reply, "'file: yourfile.pdf'") {
		t.Errorf("expected path prompt, got %q", reply)
	}

	reply = a.HandleMessage(ctx, "add pdf file: missing.pdf")
	if !strings.Contains(reply, "Failed to ingest") {
		t.Errorf("expected ingest failure, got %q", reply)
	}
}

func TestHandleIngestTextFileAsPDFCommand(t *testing.T) {
	a, _ := newTestAgent(t, &llm.MockClient{})
	ctx := context.Background()

	dir := t.TempDir()
	path := filepath.Join(dir, "notes.txt.pdf")
	// Corrupt PDF content should fail extraction, not panic.
	if err := os.WriteFile(path, []byte("plain text"), 0644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	reply := a.HandleMessage(ctx, "add pdf file: "+path)
	if !strings.Contains(reply, "Failed to ingest") {
		t.Errorf("expected failure for corrupt pdf, got %q", reply)
	}
}

func TestHandleChatFallback(t *testing.T) {
	a, _ := newTestAgent(t, &llm.MockClient{Err: errors.New("model offline")})
	reply := a.HandleMessage(context.Background(), "do you have rooms tonight?")
	if reply != FallbackMessage {
		t.Errorf("expected fallback message, got %q", reply)
	}
}

func TestHandleChatSuccess(t *testing.T) {
	mock := &llm.MockClient{Reply: "Welcome to the Grand Plaza Hotel!"}
	a, _ := newTestAgent(t, mock)

	reply := a.HandleMessage(context.Background(), "hello there")
	if reply != "Welcome to the Grand Plaza Hotel!" {
		t.Errorf("unexpected reply: %q", reply)
	}
	if len(mock.Calls) != 1 {
		t.Fatalf("expected one chat call, got %d", len(mock.Calls))
	}
	if mock.Calls[0][0].Role != "system" || !strings.Contains(mock.Calls[0][0].Content, "Grand Plaza Hotel") {
		t.Errorf("system prompt not sent: %+v", mock.Calls[0][0])
	}
}

func TestHandleRetrieveStoreFailure(t *testing.T) {
	a, store := newTestAgent(t, &llm.MockClient{})
	ctx := context.Background()

	if reply := a.HandleMessage(ctx, "add meeting file filename: notes.txt content: sync notes"); !strings.Contains(reply, "added successfully") {
		t.Fatalf("unexpected add reply: %q", reply)
	}

	// A backend failure must not masquerade as "file not found".
	store.Close()
	reply := a.HandleMessage(ctx, "get meeting file filename: notes.txt")
	if strings.Contains(reply, "No meeting file found") {
		t.Fatalf("store failure reported as missing file: %q", reply)
	}
	if !strings.Contains(reply, "Failed to read meeting file 'notes.txt'") {
		t.Errorf("unexpected failure reply: %q", reply)
	}
}
