package llm

import "context"

// MockClient is a Client for tests with a scripted reply or error.
type MockClient struct {
	Reply string
	Err   error
	// Calls records every message slice passed to Chat.
	Calls [][]Message
}

// Chat returns the scripted reply or error.
func (m *MockClient) Chat(_ context.Context, messages []Message) (string, error) {
	m.Calls = append(m.Calls, messages)
	if m.Err != nil {
		return "", m.Err
	}
	return m.Reply, nil
}
