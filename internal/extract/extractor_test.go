package extract

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, name string, content []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, content, 0644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

func TestExtractPlainText(t *testing.T) {
	path := writeFile(t, "notes.txt", []byte("meeting notes\nline two"))

	e := NewExtractor()
	text, err := e.Extract(path)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if text != "meeting notes\nline two" {
		t.Errorf("unexpected text: %q", text)
	}
}

func TestExtractUnknownExtensionFallsBackToPlain(t *testing.T) {
	path := writeFile(t, "notes.log", []byte("plain content"))

	text, err := NewExtractor().Extract(path)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if text != "plain content" {
		t.Errorf("unexpected text: %q", text)
	}
}

func TestExtractInvalidUTF8(t *testing.T) {
	path := writeFile(t, "bad.txt", []byte{'o', 'k', 0xff, 0xfe, '!'})

	text, err := NewExtractor().Extract(path)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if text == "" {
		t.Fatal("expected sanitized text, got empty")
	}
}

func TestExtractEmptyDocument(t *testing.T) {
	path := writeFile(t, "empty.txt", []byte("   \n\t "))

	if _, err := NewExtractor().Extract(path); !errors.Is(err, ErrEmptyDocument) {
		t.Fatalf("expected ErrEmptyDocument, got %v", err)
	}
}

func TestExtractMissingFile(t *testing.T) {
	if _, err := NewExtractor().Extract(filepath.Join(t.TempDir(), "nope.txt")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestExtractCorruptPDF(t *testing.T) {
	path := writeFile(t, "broken.pdf", []byte("not a pdf"))

	if _, err := NewExtractor().Extract(path); err == nil {
		t.Fatal("expected error for corrupt PDF")
	}
}
