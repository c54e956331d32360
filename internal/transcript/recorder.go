// Package transcript records meeting speech and produces archived summaries.
package transcript

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Recorder appends timestamped speech lines to a per-meeting log file.
// Each Recorder owns one meeting; the meeting ID is assigned at construction.
type Recorder struct {
	mu        sync.Mutex
	meetingID string
	path      string
	logger    *zap.Logger
}

// NewRecorder creates a recorder writing to logDir. The meeting ID is
// uuid-derived so concurrent sessions never share a log file.
func NewRecorder(logDir string, logger *zap.Logger) (*Recorder, error) {
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create transcript directory: %w", err)
	}

	meetingID := strings.Split(uuid.New().String(), "-")[0]
	path := filepath.Join(logDir, fmt.Sprintf("user_speech_log_%s.txt", meetingID))

	logger.Info("transcript recorder ready",
		zap.String("meeting_id", meetingID),
		zap.String("path", path))
	return &Recorder{meetingID: meetingID, path: path, logger: logger}, nil
}

// MeetingID returns the meeting identifier for this recorder.
func (r *Recorder) MeetingID() string {
	return r.meetingID
}

// Path returns the log file path. The file may not exist before the first Append.
func (r *Recorder) Path() string {
	return r.path
}

// Append writes one "[timestamp] text" line to the log.
func (r *Recorder) Append(text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return fmt.Errorf("transcript text is empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	f, err := os.OpenFile(r.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open transcript log: %w", err)
	}
	defer f.Close()

	line := fmt.Sprintf("[%s] %s\n", time.Now().Format("2006-01-02 15:04:05"), text)
	if _, err := f.WriteString(line); err != nil {
		return fmt.Errorf("failed to append transcript line: %w", err)
	}
	return nil
}

// Read returns the full transcript recorded so far.
func (r *Recorder) Read() (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	data, err := os.ReadFile(r.path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", err
	}
	return string(data), nil
}
