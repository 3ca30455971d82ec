package chat

import (
	"context"
	"time"

	"github.com/polarbear333/rag-llm-based-recommender/internal/common"
	"github.com/polarbear333/rag-llm-based-recommender/internal/product"
)

// Store is the state container for one visitor's chat sessions. It holds no
// state of its own: every operation loads the blob, mutates it, and writes
// it back through the injected Persister.
type Store struct {
	persist   Persister
	visitorID string
}

func NewStore(p Persister, visitorID string) *Store {
	return &Store{persist: p, visitorID: visitorID}
}

func newSession() (*Session, error) {
	id, err := common.NewULID()
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	return &Session{
		ID:    id,
		Title: defaultTitle,
		Messages: []Message{
			{ID: 1, Text: greetingText, Sender: SenderAI},
		},
		CreatedAt:     now,
		LastMessageAt: now,
	}, nil
}

func (s *Store) load(ctx context.Context) (State, error) {
	st, _, err := s.persist.Load(ctx, s.visitorID)
	return st, err
}

func (s *Store) save(ctx context.Context, st State) error {
	return s.persist.Save(ctx, s.visitorID, st)
}

// CreateSession prepends a fresh session with the seeded greeting, makes it
// current, resets the message counter to 2 and clears the UI flags.
func (s *Store) CreateSession(ctx context.Context) (string, error) {
	st, err := s.load(ctx)
	if err != nil {
		return "", err
	}

	sess, err := newSession()
	if err != nil {
		return "", err
	}

	st.Sessions = append([]*Session{sess}, st.Sessions...)
	st.CurrentSessionID = sess.ID
	st.MessageCounter = 2
	if err := s.save(ctx, st); err != nil {
		return "", err
	}
	if err := s.persist.SaveFlags(ctx, s.visitorID, Flags{}); err != nil {
		return "", err
	}
	return sess.ID, nil
}

// Ensure guarantees the visitor has a current session, creating one when the
// store is empty or the current pointer is stale.
func (s *Store) Ensure(ctx context.Context) error {
	st, err := s.load(ctx)
	if err != nil {
		return err
	}
	if len(st.Sessions) > 0 && st.currentSession() != nil {
		return nil
	}
	_, err = s.CreateSession(ctx)
	return err
}

// SwitchTo makes the given session current and recomputes the message
// counter. An unknown id is a silent no-op.
func (s *Store) SwitchTo(ctx context.Context, sessionID string) error {
	st, err := s.load(ctx)
	if err != nil {
		return err
	}

	sess := st.findSession(sessionID)
	if sess == nil {
		return nil
	}

	st.CurrentSessionID = sessionID
	st.MessageCounter = maxMessageID(sess) + 1
	if err := s.save(ctx, st); err != nil {
		return err
	}
	return s.persist.SaveFlags(ctx, s.visitorID, Flags{})
}

// AppendMessage appends to the current session only. Returns appended=false
// when there is no current session. The first user message of a session
// fixes its title.
func (s *Store) AppendMessage(ctx context.Context, sender, text string, recs []product.Recommendation) (Message, bool, error) {
	st, err := s.load(ctx)
	if err != nil {
		return Message{}, false, err
	}

	sess := st.currentSession()
	if sess == nil {
		return Message{}, false, nil
	}

	if st.MessageCounter <= maxMessageID(sess) {
		st.MessageCounter = maxMessageID(sess) + 1
	}

	msg := Message{
		ID:                     st.MessageCounter,
		Text:                   text,
		Sender:                 sender,
		ProductRecommendations: recs,
	}

	firstUserMessage := len(sess.Messages) == 1 && sender == SenderUser

	sess.Messages = append(sess.Messages, msg)
	sess.LastMessageAt = time.Now().UTC()
	if firstUserMessage {
		sess.Title = deriveTitle(sess.Messages)
	}
	st.MessageCounter++

	if err := s.save(ctx, st); err != nil {
		return Message{}, false, err
	}
	return msg, true, nil
}

// DeleteSession removes a session. Deleting the current session switches to
// the next one in list order, or creates a fresh session so the store is
// never left empty. An unknown id is a no-op.
func (s *Store) DeleteSession(ctx context.Context, sessionID string) error {
	st, err := s.load(ctx)
	if err != nil {
		return err
	}

	kept := st.Sessions[:0]
	removed := false
	for _, sess := range st.Sessions {
		if sess.ID == sessionID {
			removed = true
			continue
		}
		kept = append(kept, sess)
	}
	if !removed {
		return nil
	}
	st.Sessions = kept

	if st.CurrentSessionID == sessionID {
		if len(st.Sessions) > 0 {
			next := st.Sessions[0]
			st.CurrentSessionID = next.ID
			st.MessageCounter = maxMessageID(next) + 1
		} else {
			sess, err := newSession()
			if err != nil {
				return err
			}
			st.Sessions = []*Session{sess}
			st.CurrentSessionID = sess.ID
			st.MessageCounter = 2
		}
	}

	return s.save(ctx, st)
}

// CurrentMessages returns the current session's messages in append order,
// or an empty slice when there is no current session.
func (s *Store) CurrentMessages(ctx context.Context) ([]Message, error) {
	st, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	sess := st.currentSession()
	if sess == nil {
		return []Message{}, nil
	}
	return sess.Messages, nil
}

func (s *Store) CurrentSession(ctx context.Context) (*Session, error) {
	st, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return st.currentSession(), nil
}

// Summaries lists sessions in store order.
func (s *Store) Summaries(ctx context.Context) ([]SessionSummary, string, error) {
	st, err := s.load(ctx)
	if err != nil {
		return nil, "", err
	}
	out := make([]SessionSummary, 0, len(st.Sessions))
	for _, sess := range st.Sessions {
		out = append(out, SessionSummary{
			ID:            sess.ID,
			Title:         sess.Title,
			MessageCount:  len(sess.Messages),
			CreatedAt:     sess.CreatedAt,
			LastMessageAt: sess.LastMessageAt,
		})
	}
	return out, st.CurrentSessionID, nil
}

func (s *Store) SetInput(ctx context.Context, input string) error {
	f, err := s.persist.LoadFlags(ctx, s.visitorID)
	if err != nil {
		return err
	}
	f.Input = input
	return s.persist.SaveFlags(ctx, s.visitorID, f)
}

func (s *Store) SetLoading(ctx context.Context, loading bool) error {
	f, err := s.persist.LoadFlags(ctx, s.visitorID)
	if err != nil {
		return err
	}
	f.Loading = loading
	return s.persist.SaveFlags(ctx, s.visitorID, f)
}

func (s *Store) UIFlags(ctx context.Context) (Flags, error) {
	return s.persist.LoadFlags(ctx, s.visitorID)
}
