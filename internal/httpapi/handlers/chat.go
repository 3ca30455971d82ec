package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/polarbear333/rag-llm-based-recommender/internal/chat"
	"github.com/polarbear333/rag-llm-based-recommender/internal/common"
	"github.com/polarbear333/rag-llm-based-recommender/internal/product"
)

// messageView is a Message plus the derived card view models for its
// recommendations, so clients never normalize raw payloads themselves.
type messageView struct {
	chat.Message
	Cards []product.Card `json:"cards,omitempty"`
}

func toMessageViews(msgs []chat.Message) []messageView {
	out := make([]messageView, 0, len(msgs))
	for _, m := range msgs {
		mv := messageView{Message: m}
		if len(m.ProductRecommendations) > 0 {
			mv.Cards = product.BuildCards(m.ProductRecommendations)
		}
		out = append(out, mv)
	}
	return out
}

func (h *Handler) CreateChatSession(c *gin.Context) {
	vid, ok := visitorIDFromContext(c)
	if !ok {
		common.Fail(c, http.StatusUnauthorized, 40101, "unauthorized")
		return
	}

	sessionID, err := h.ChatSvc.StoreFor(vid).CreateSession(c.Request.Context())
	if err != nil {
		common.Fail(c, http.StatusInternalServerError, 50010, "failed to create session")
		return
	}
	common.OK(c, gin.H{"session_id": sessionID})
}

func (h *Handler) ListChatSessions(c *gin.Context) {
	vid, ok := visitorIDFromContext(c)
	if !ok {
		common.Fail(c, http.StatusUnauthorized, 40101, "unauthorized")
		return
	}

	st := h.ChatSvc.StoreFor(vid)
	if err := st.Ensure(c.Request.Context()); err != nil {
		common.Fail(c, http.StatusInternalServerError, 50011, "failed to load sessions")
		return
	}

	sessions, currentID, err := st.Summaries(c.Request.Context())
	if err != nil {
		common.Fail(c, http.StatusInternalServerError, 50011, "failed to load sessions")
		return
	}
	flags, err := st.UIFlags(c.Request.Context())
	if err != nil {
		common.Fail(c, http.StatusInternalServerError, 50011, "failed to load sessions")
		return
	}

	common.OK(c, gin.H{
		"current_session_id": currentID,
		"sessions":           sessions,
		"loading":            flags.Loading,
		"input":              flags.Input,
	})
}

// SwitchChatSession silently ignores unknown ids; the response always
// reports the session that is current afterwards.
func (h *Handler) SwitchChatSession(c *gin.Context) {
	vid, ok := visitorIDFromContext(c)
	if !ok {
		common.Fail(c, http.StatusUnauthorized, 40101, "unauthorized")
		return
	}

	st := h.ChatSvc.StoreFor(vid)
	ctx := c.Request.Context()
	if err := st.SwitchTo(ctx, c.Param("session_id")); err != nil {
		common.Fail(c, http.StatusInternalServerError, 50012, "failed to switch session")
		return
	}

	sess, err := st.CurrentSession(ctx)
	if err != nil {
		common.Fail(c, http.StatusInternalServerError, 50012, "failed to switch session")
		return
	}
	var currentID string
	if sess != nil {
		currentID = sess.ID
	}
	common.OK(c, gin.H{"current_session_id": currentID})
}

func (h *Handler) DeleteChatSession(c *gin.Context) {
	vid, ok := visitorIDFromContext(c)
	if !ok {
		common.Fail(c, http.StatusUnauthorized, 40101, "unauthorized")
		return
	}

	st := h.ChatSvc.StoreFor(vid)
	ctx := c.Request.Context()
	if err := st.DeleteSession(ctx, c.Param("session_id")); err != nil {
		common.Fail(c, http.StatusInternalServerError, 50013, "failed to delete session")
		return
	}

	sess, err := st.CurrentSession(ctx)
	if err != nil {
		common.Fail(c, http.StatusInternalServerError, 50013, "failed to delete session")
		return
	}
	var currentID string
	if sess != nil {
		currentID = sess.ID
	}
	common.OK(c, gin.H{"current_session_id": currentID})
}

func (h *Handler) ListCurrentMessages(c *gin.Context) {
	vid, ok := visitorIDFromContext(c)
	if !ok {
		common.Fail(c, http.StatusUnauthorized, 40101, "unauthorized")
		return
	}

	st := h.ChatSvc.StoreFor(vid)
	ctx := c.Request.Context()
	if err := st.Ensure(ctx); err != nil {
		common.Fail(c, http.StatusInternalServerError, 50014, "failed to load messages")
		return
	}

	msgs, err := st.CurrentMessages(ctx)
	if err != nil {
		common.Fail(c, http.StatusInternalServerError, 50014, "failed to load messages")
		return
	}
	common.OK(c, gin.H{"messages": toMessageViews(msgs)})
}

type sendMessageReq struct {
	Message string `json:"message"`
}

// SendChatMessage runs the synchronous send pipeline. Search failures do not
// fail the request; they surface as an AI error message in the reply.
func (h *Handler) SendChatMessage(c *gin.Context) {
	vid, ok := visitorIDFromContext(c)
	if !ok {
		common.Fail(c, http.StatusUnauthorized, 40101, "unauthorized")
		return
	}

	var req sendMessageReq
	if err := c.ShouldBindJSON(&req); err != nil {
		common.Fail(c, http.StatusBadRequest, 10001, "invalid json")
		return
	}

	msgs, err := h.ChatSvc.SendMessage(c.Request.Context(), vid, req.Message)
	if err != nil {
		common.Fail(c, http.StatusInternalServerError, 50015, "failed to send message")
		return
	}

	// Empty input is ignored, not an error.
	common.OK(c, gin.H{"messages": toMessageViews(msgs)})
}

// SendChatMessageAsync queues the search and returns a job id to poll. An
// ignored (empty) message yields a null job_id.
func (h *Handler) SendChatMessageAsync(c *gin.Context) {
	vid, ok := visitorIDFromContext(c)
	if !ok {
		common.Fail(c, http.StatusUnauthorized, 40101, "unauthorized")
		return
	}

	var req sendMessageReq
	if err := c.ShouldBindJSON(&req); err != nil {
		common.Fail(c, http.StatusBadRequest, 10001, "invalid json")
		return
	}

	jobID, err := h.ChatSvc.EnqueueSearch(c.Request.Context(), vid, req.Message)
	if err != nil {
		if errors.Is(err, chat.ErrAsyncDisabled) {
			common.Fail(c, http.StatusServiceUnavailable, 50301, "async search disabled")
			return
		}
		common.Fail(c, http.StatusInternalServerError, 50016, "failed to enqueue search")
		return
	}

	if jobID == "" {
		common.OK(c, gin.H{"job_id": nil})
		return
	}
	common.OK(c, gin.H{"job_id": jobID})
}

func (h *Handler) GetSearchJob(c *gin.Context) {
	vid, ok := visitorIDFromContext(c)
	if !ok {
		common.Fail(c, http.StatusUnauthorized, 40101, "unauthorized")
		return
	}

	jobID := c.Param("job_id")
	if jobID == "" {
		common.Fail(c, http.StatusBadRequest, 10002, "job_id required")
		return
	}

	j, err := h.ChatSvc.GetJob(c.Request.Context(), jobID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			common.Fail(c, http.StatusNotFound, 40402, "job not found")
			return
		}
		if errors.Is(err, chat.ErrAsyncDisabled) {
			common.Fail(c, http.StatusServiceUnavailable, 50301, "async search disabled")
			return
		}
		common.Fail(c, http.StatusInternalServerError, 50017, "internal error")
		return
	}
	if j.VisitorID != vid {
		// hide existence
		common.Fail(c, http.StatusNotFound, 40402, "job not found")
		return
	}

	common.OK(c, gin.H{
		"job": gin.H{
			"id":                j.ID,
			"status":            j.Status,
			"result_message_id": j.ResultMessageID,
			"error":             j.Error,
			"created_at":        j.CreatedAt,
			"updated_at":        j.UpdatedAt,
		},
	})
}
