package chat

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/polarbear333/rag-llm-based-recommender/internal/common"
	"github.com/polarbear333/rag-llm-based-recommender/internal/product"
)

const (
	resultsLeadIn   = "Here's what I found for you:"
	searchFailedMsg = "Something went wrong while searching. Please try again shortly."
)

var ErrAsyncDisabled = errors.New("async search is not configured")

// Searcher is the external recommendation engine, one call per query.
type Searcher interface {
	Search(ctx context.Context, query string) ([]product.Recommendation, error)
}

// JobPublisher enqueues a search job id for the worker.
type JobPublisher interface {
	PublishJob(ctx context.Context, jobID string) error
}

// Service orchestrates a user query: append the user message, run the
// search, append the AI response. Search failures never propagate; they
// become a synthetic AI message.
type Service struct {
	persist Persister
	search  Searcher
	jobs    *Repo
	pub     JobPublisher
	log     *zap.Logger
}

// NewService wires the action layer. jobs and pub may be nil when the async
// path is not deployed.
func NewService(p Persister, search Searcher, jobs *Repo, pub JobPublisher, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{persist: p, search: search, jobs: jobs, pub: pub, log: log}
}

func (s *Service) StoreFor(visitorID string) *Store {
	return NewStore(s.persist, visitorID)
}

// SendMessage runs the synchronous send pipeline. Whitespace-only input is
// ignored without any side effect. The returned slice holds the appended
// messages (user first, AI second); it is empty for ignored input.
func (s *Service) SendMessage(ctx context.Context, visitorID, raw string) ([]Message, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, nil
	}

	st := s.StoreFor(visitorID)
	if err := st.Ensure(ctx); err != nil {
		return nil, err
	}

	userMsg, _, err := st.AppendMessage(ctx, SenderUser, trimmed, nil)
	if err != nil {
		return nil, err
	}
	if err := st.SetInput(ctx, ""); err != nil {
		return nil, err
	}
	if err := st.SetLoading(ctx, true); err != nil {
		return nil, err
	}
	defer func() {
		if lerr := st.SetLoading(ctx, false); lerr != nil {
			s.log.Warn("clear loading flag", zap.String("visitor_id", visitorID), zap.Error(lerr))
		}
	}()

	recs, searchErr := s.search.Search(ctx, trimmed)
	if searchErr != nil {
		s.log.Warn("search failed",
			zap.String("visitor_id", visitorID),
			zap.String("query", trimmed),
			zap.Error(searchErr),
		)
		// The response attaches to whichever session is current now.
		aiMsg, _, err := st.AppendMessage(ctx, SenderAI, searchFailedMsg, nil)
		if err != nil {
			return nil, err
		}
		return []Message{userMsg, aiMsg}, nil
	}

	aiMsg, _, err := st.AppendMessage(ctx, SenderAI, resultsLeadIn, recs)
	if err != nil {
		return nil, err
	}
	return []Message{userMsg, aiMsg}, nil
}

// EnqueueSearch runs the async variant of the send pipeline: the user
// message is appended immediately, the search itself is handed to the
// worker. Returns the job id, or "" for ignored (empty) input.
func (s *Service) EnqueueSearch(ctx context.Context, visitorID, raw string) (string, error) {
	if s.jobs == nil || s.pub == nil {
		return "", ErrAsyncDisabled
	}

	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", nil
	}

	st := s.StoreFor(visitorID)
	if err := st.Ensure(ctx); err != nil {
		return "", err
	}
	if _, _, err := st.AppendMessage(ctx, SenderUser, trimmed, nil); err != nil {
		return "", err
	}
	if err := st.SetInput(ctx, ""); err != nil {
		return "", err
	}
	if err := st.SetLoading(ctx, true); err != nil {
		return "", err
	}

	jobID, err := common.NewULID()
	if err != nil {
		return "", err
	}
	job := &SearchJob{
		ID:        jobID,
		VisitorID: visitorID,
		Query:     trimmed,
		Status:    JobQueued,
	}
	if err := s.jobs.CreateJob(ctx, job); err != nil {
		return "", err
	}

	if err := s.pub.PublishJob(ctx, jobID); err != nil {
		_ = s.jobs.MarkJobFailed(ctx, jobID, err.Error())
		_ = st.SetLoading(ctx, false)
		return "", err
	}
	return jobID, nil
}

// RunJob executes one queued search. Called by the worker. The AI message is
// appended to whichever session is current when the response resolves.
func (s *Service) RunJob(ctx context.Context, jobID string) error {
	if s.jobs == nil {
		return ErrAsyncDisabled
	}

	_ = s.jobs.UpdateJobStatusRunning(ctx, jobID)

	j, err := s.jobs.GetJobByID(ctx, jobID)
	if err != nil {
		return err
	}

	st := s.StoreFor(j.VisitorID)
	if err := st.Ensure(ctx); err != nil {
		return err
	}
	defer func() {
		if lerr := st.SetLoading(ctx, false); lerr != nil {
			s.log.Warn("clear loading flag", zap.String("visitor_id", j.VisitorID), zap.Error(lerr))
		}
	}()

	recs, searchErr := s.search.Search(ctx, j.Query)
	if searchErr != nil {
		s.log.Warn("search job failed",
			zap.String("job_id", jobID),
			zap.String("query", j.Query),
			zap.Error(searchErr),
		)
		if _, _, err := st.AppendMessage(ctx, SenderAI, searchFailedMsg, nil); err != nil {
			return err
		}
		return s.jobs.MarkJobFailed(ctx, jobID, searchErr.Error())
	}

	aiMsg, _, err := st.AppendMessage(ctx, SenderAI, resultsLeadIn, recs)
	if err != nil {
		return err
	}
	return s.jobs.MarkJobSucceeded(ctx, jobID, aiMsg.ID)
}

func (s *Service) GetJob(ctx context.Context, jobID string) (*SearchJob, error) {
	if s.jobs == nil {
		return nil, ErrAsyncDisabled
	}
	return s.jobs.GetJobByID(ctx, jobID)
}
