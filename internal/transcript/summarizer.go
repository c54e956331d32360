package transcript

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/grandplaza/concierge/internal/llm"
	"github.com/grandplaza/concierge/internal/meetings"
)

// summaryPrompt instructs the model to render the transcript as a structured
// HTML meeting summary. Missing data is shown as "Not provided".
const summaryPrompt = `You are a professional meeting summarizer. Convert the following transcript into a concise, structured meeting summary in valid HTML only.

Required HTML structure and fields:
- <h1>Meeting Summary</h1>
- Date (Month DD, YYYY)
- Time (start - end with timezone if present)
- Location
- Attendees (ul)
- Agenda (ol)
- Discussion Points (ul)
- Decisions Made (ol)
- Action Items (table with Owner, Task, Due Date, Notes)
- Next Meeting

Rules:
- Output only HTML, no commentary or extra text.
- If data is missing, show "Not provided".
- Dates normalized to "Month DD, YYYY". Times to 12-hour AM/PM.
- Action item missing a due date: "TBD".
- Keep bullets one short sentence (8-20 words).
- Make the HTML semantic and readable; minimal inline CSS allowed.`

// Summarizer turns a recorded transcript into an HTML summary, optionally
// renders it to PDF through the external renderer, and archives the result in
// the meeting store.
type Summarizer struct {
	recorder    *Recorder
	llm         llm.Client
	store       *meetings.Store
	rendererURL string
	client      *http.Client
	logger      *zap.Logger
}

// NewSummarizer creates a Summarizer. rendererURL may be empty to skip PDF
// rendering; store may be nil to skip archiving.
func NewSummarizer(recorder *Recorder, client llm.Client, store *meetings.Store, rendererURL string, logger *zap.Logger) *Summarizer {
	return &Summarizer{
		recorder:    recorder,
		llm:         client,
		store:       store,
		rendererURL: rendererURL,
		client:      &http.Client{Timeout: 60 * time.Second},
		logger:      logger,
	}
}

// Summarize reads the transcript, writes the HTML summary next to the log, and
// returns the path of the archived artifact (PDF when the renderer succeeds,
// HTML otherwise). Renderer failures are logged once and do not fail the
// summary.
func (s *Summarizer) Summarize(ctx context.Context) (string, error) {
	transcript, err := s.recorder.Read()
	if err != nil {
		return "", fmt.Errorf("failed to read transcript: %w", err)
	}
	if strings.TrimSpace(transcript) == "" {
		return "", fmt.Errorf("transcript is empty, nothing to summarize")
	}

	html, err := s.llm.Chat(ctx, []llm.Message{
		{Role: "system", Content: summaryPrompt},
		{Role: "user", Content: transcript},
	})
	if err != nil {
		return "", fmt.Errorf("failed to generate summary: %w", err)
	}
	html = stripCodeFences(html)

	htmlPath := strings.TrimSuffix(s.recorder.Path(), ".txt") + ".html"
	if err := os.WriteFile(htmlPath, []byte(html), 0644); err != nil {
		return "", fmt.Errorf("failed to write summary HTML: %w", err)
	}
	s.logger.Info("wrote meeting summary", zap.String("path", htmlPath))

	if s.rendererURL == "" {
		return htmlPath, nil
	}

	pdfPath := strings.TrimSuffix(htmlPath, ".html") + ".pdf"
	if err := s.renderPDF(ctx, html, pdfPath); err != nil {
		s.logger.Error("pdf rendering failed, keeping HTML summary",
			zap.String("html", htmlPath), zap.Error(err))
		return htmlPath, nil
	}

	if s.store != nil {
		if _, err := s.store.IngestFile(ctx, pdfPath); err != nil {
			s.logger.Warn("failed to archive meeting summary", zap.Error(err))
		}
	}
	return pdfPath, nil
}

// renderPDF posts the HTML to the renderer endpoint and writes the PDF bytes.
func (s *Summarizer) renderPDF(ctx context.Context, html, pdfPath string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.rendererURL,
		strings.NewReader(html))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "text/html")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("renderer request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("renderer returned %d", resp.StatusCode)
	}

	pdf, err := io.ReadAll(io.LimitReader(resp.Body, 32<<20))
	if err != nil {
		return fmt.Errorf("failed to read rendered PDF: %w", err)
	}
	if !bytes.HasPrefix(pdf, []byte("%PDF")) {
		return fmt.Errorf("renderer response is not a PDF")
	}
	return os.WriteFile(pdfPath, pdf, 0644)
}

// stripCodeFences removes markdown code fences the model sometimes wraps
// around HTML output.
func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```html")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
