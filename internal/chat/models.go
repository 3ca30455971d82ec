package chat

import (
	"strings"
	"time"

	"github.com/polarbear333/rag-llm-based-recommender/internal/product"
)

const (
	SenderUser = "user"
	SenderAI   = "ai"
)

const (
	defaultTitle = "New Chat"
	greetingText = "Hello! How can I assist you with your shopping today?"

	maxTitleRunes = 40
)

// Message is immutable once appended; ids are unique and strictly
// increasing within a session.
type Message struct {
	ID                     int                      `json:"id"`
	Text                   string                   `json:"text"`
	Sender                 string                   `json:"sender"`
	ProductRecommendations []product.Recommendation `json:"productRecommendations,omitempty"`
}

type Session struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Messages      []Message `json:"messages"`
	CreatedAt     time.Time `json:"createdAt"`
	LastMessageAt time.Time `json:"lastMessageAt"`
}

// SessionSummary is the list-view shape of a session.
type SessionSummary struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	MessageCount  int       `json:"message_count"`
	CreatedAt     time.Time `json:"createdAt"`
	LastMessageAt time.Time `json:"lastMessageAt"`
}

// State is one visitor's persisted chat state: the exact blob layout is
// {currentSessionId, sessions, messageCounter}. Transient UI flags live in
// Flags, stored separately.
type State struct {
	CurrentSessionID string     `json:"currentSessionId"`
	Sessions         []*Session `json:"sessions"`
	MessageCounter   int        `json:"messageCounter"`
}

// Flags are the pending-input and loading indicators. They are not part of
// the session blob; a reload keeps sessions but drops in-flight UI state.
type Flags struct {
	Input   string `json:"input"`
	Loading bool   `json:"loading"`
}

func (st *State) currentSession() *Session {
	if st.CurrentSessionID == "" {
		return nil
	}
	for _, s := range st.Sessions {
		if s.ID == st.CurrentSessionID {
			return s
		}
	}
	return nil
}

func (st *State) findSession(id string) *Session {
	for _, s := range st.Sessions {
		if s.ID == id {
			return s
		}
	}
	return nil
}

func maxMessageID(s *Session) int {
	max := 0
	for _, m := range s.Messages {
		if m.ID > max {
			max = m.ID
		}
	}
	return max
}

// deriveTitle builds a session title from its first user message, truncated
// to 40 runes with an ellipsis.
func deriveTitle(msgs []Message) string {
	for _, m := range msgs {
		if m.Sender != SenderUser {
			continue
		}
		title := strings.TrimSpace(m.Text)
		runes := []rune(title)
		if len(runes) > maxTitleRunes {
			return string(runes[:maxTitleRunes]) + "..."
		}
		return title
	}
	return defaultTitle
}
