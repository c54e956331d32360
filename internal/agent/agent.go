// Package agent routes chat messages between the meeting store, the booking
// tools, and the conversational model.
package agent

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/grandplaza/concierge/internal/llm"
	"github.com/grandplaza/concierge/internal/meetings"
	"github.com/grandplaza/concierge/pkg/utils"
)

// FallbackMessage is returned when the conversational model is unavailable.
const FallbackMessage = "Sorry, I'm having trouble generating a response right now. " +
	"However, I'm still here to help! You can ask me about:\n\n" +
	"- Room reservations and availability\n" +
	"- Meeting file management\n" +
	"- Transcript searches\n" +
	"- Room pricing and special discounts\n\n" +
	"What would you like to know?"

// Clarification prompts for commands missing required fields.
const (
	promptPDFPath     = "Please specify the PDF file path ('file: yourfile.pdf') to ingest."
	promptAddFields   = "Please specify your 'filename:...' and 'content:...' to add a meeting file."
	promptGetFilename = "Please specify the filename with 'filename:<filename>'."
)

const snippetLength = 200

// Agent is the conversational router.
type Agent struct {
	meetings *meetings.Store
	llm      llm.Client
	logger   *zap.Logger
}

// New creates an Agent over the meeting store and chat client.
func New(store *meetings.Store, client llm.Client, logger *zap.Logger) *Agent {
	return &Agent{meetings: store, llm: client, logger: logger}
}

// HandleMessage routes one chat message and always returns user-facing text.
// Store and model failures are reported conversationally, never as raw errors.
func (a *Agent) HandleMessage(ctx context.Context, message string) string {
	cmd := ParseCommand(message)
	a.logger.Info("routing chat message",
		zap.Int("kind", int(cmd.Kind)),
		zap.String("message", utils.Snippet(message, 80)))

	switch cmd.Kind {
	case KindIngestPDF:
		if cmd.Path == "" {
			return promptPDFPath
		}
		if _, err := a.meetings.IngestFile(ctx, cmd.Path); err != nil {
			a.logger.Warn("pdf ingestion failed", zap.String("path", cmd.Path), zap.Error(err))
			return fmt.Sprintf("Failed to ingest '%s'.", cmd.Path)
		}
		return fmt.Sprintf("PDF '%s' ingested for retrieval.", cmd.Path)

	case KindAddFile:
		if cmd.Filename == "" || cmd.Content == "" {
			return promptAddFields
		}
		if _, err := a.meetings.AddFile(ctx, cmd.Filename, cmd.Content); err != nil {
			a.logger.Warn("add meeting file failed", zap.String("filename", cmd.Filename), zap.Error(err))
			return fmt.Sprintf("Failed to add meeting file '%s'.", cmd.Filename)
		}
		return fmt.Sprintf("Meeting file '%s' added successfully.", cmd.Filename)

	case KindSearch:
		return a.searchReply(ctx, cmd.Query)

	case KindRetrieve:
		if cmd.Filename == "" {
			return promptGetFilename
		}
		content, err := a.meetings.GetContent(ctx, cmd.Filename)
		if errors.Is(err, meetings.ErrFileNotFound) {
			return fmt.Sprintf("No meeting file found with filename '%s'.", cmd.Filename)
		}
		if err != nil {
			a.logger.Error("get meeting file failed", zap.String("filename", cmd.Filename), zap.Error(err))
			return fmt.Sprintf("Failed to read meeting file '%s'. Please try again.", cmd.Filename)
		}
		return content

	case KindPurge:
		if err := a.meetings.PurgeAll(ctx); err != nil {
			a.logger.Error("purge failed", zap.Error(err))
			return "Failed to delete meeting files. Please try again."
		}
		return "All meeting files have been deleted successfully."

	default:
		return a.chatReply(ctx, message)
	}
}

func (a *Agent) searchReply(ctx context.Context, query string) string {
	results, err := a.meetings.Search(ctx, query, meetings.DefaultTopK)
	if err != nil {
		a.logger.Error("meeting search failed", zap.Error(err))
		return "Failed to search meeting files. Please try again."
	}
	if len(results) == 0 {
		return "No meeting files found matching your query. Would you like to add a new meeting file?"
	}

	var b strings.Builder
	b.WriteString("Meeting files matching your query:\n\n")
	for _, r := range results {
		fmt.Fprintf(&b, "- **%s** (Similarity: %.3f, Date: %s)\n  %s\n\n",
			r.Filename, r.Score, r.CreatedAt.Format("2006-01-02"),
			utils.Snippet(r.Content, snippetLength))
	}
	return b.String()
}

func (a *Agent) chatReply(ctx context.Context, message string) string {
	system := llm.SystemPrompt + "\n\n" + llm.RoomTypesInfo + "\n\n" + llm.MeetingInstructions
	reply, err := a.llm.Chat(ctx, []llm.Message{
		{Role: "system", Content: system},
		{Role: "user", Content: message},
	})
	if err != nil {
		a.logger.Warn("chat model unavailable", zap.Error(err))
		return FallbackMessage
	}
	return reply
}
