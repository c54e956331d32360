package agent

import (
	"regexp"
	"strings"
)

// CommandKind identifies which operation a chat message maps to.
type CommandKind int

const (
	// KindChat falls through to the conversational model.
	KindChat CommandKind = iota
	// KindIngestPDF ingests a PDF from a path into the meeting store.
	KindIngestPDF
	// KindAddFile adds an inline meeting file.
	KindAddFile
	// KindSearch runs a semantic search over meeting files.
	KindSearch
	// KindRetrieve fetches a meeting file's content by filename.
	KindRetrieve
	// KindPurge deletes all meeting files.
	KindPurge
)

// Command is the structured form of a routed chat message. Required fields
// that could not be captured are left empty; the agent turns those into
// clarification prompts.
type Command struct {
	Kind     CommandKind
	Path     string
	Filename string
	Content  string
	Query    string
	Message  string
}

var (
	pdfPathRe    = regexp.MustCompile(`(?i)(?:path|file(?:name)?|file):\s*([^\s]+\.pdf)`)
	filenameRe   = regexp.MustCompile(`(?i)filename\s*[:=]\s*(\S+)`)
	contentRe    = regexp.MustCompile(`(?is)content\s*[:=]\s*(.+)`)
	searchVerbRe = regexp.MustCompile(`\b(search|find|lookup|show)\b.*\b(meeting file|meeting|transcript|notes)\b`)
	queryRe      = regexp.MustCompile(`(?:about|for|on|:)\s*(.*)`)
	getVerbRe    = regexp.MustCompile(`\b(get|show|retrieve|read)\b.*\b(meeting file|transcript|meeting)\b`)
	purgeVerbRe  = regexp.MustCompile(`\b(delete|remove|truncate|clear)\b.*(meeting files|transcripts|meetings|database)\b`)
)

// ParseCommand classifies a chat message. Rules are checked in order; the
// first match wins and anything unmatched is a plain chat turn.
func ParseCommand(message string) Command {
	text := strings.ToLower(strings.TrimSpace(message))
	cmd := Command{Kind: KindChat, Message: message}

	switch {
	case strings.Contains(text, "add") && strings.Contains(text, "pdf"):
		cmd.Kind = KindIngestPDF
		if m := pdfPathRe.FindStringSubmatch(message); m != nil {
			cmd.Path = m[1]
		}

	case strings.Contains(text, "add") && strings.Contains(text, "meeting file"):
		cmd.Kind = KindAddFile
		if m := filenameRe.FindStringSubmatch(message); m != nil {
			cmd.Filename = m[1]
		}
		if m := contentRe.FindStringSubmatch(message); m != nil {
			cmd.Content = m[1]
		}

	case searchVerbRe.MatchString(text):
		cmd.Kind = KindSearch
		if m := queryRe.FindStringSubmatch(text); m != nil {
			cmd.Query = m[1]
		} else {
			cmd.Query = message
		}

	case getVerbRe.MatchString(text):
		cmd.Kind = KindRetrieve
		if m := filenameRe.FindStringSubmatch(message); m != nil {
			cmd.Filename = m[1]
		}

	case purgeVerbRe.MatchString(text):
		cmd.Kind = KindPurge
	}

	return cmd
}
