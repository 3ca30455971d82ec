package handlers

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/polarbear333/rag-llm-based-recommender/internal/catalog"
	"github.com/polarbear333/rag-llm-based-recommender/internal/chat"
	"github.com/polarbear333/rag-llm-based-recommender/internal/common"
	"github.com/polarbear333/rag-llm-based-recommender/internal/config"
	"github.com/polarbear333/rag-llm-based-recommender/internal/httpapi/middleware"
)

type Handler struct {
	Cfg     config.Config
	Log     *zap.Logger
	ChatSvc *chat.Service
	Catalog *catalog.Repo
}

func NewHandler(cfg config.Config, log *zap.Logger, chatSvc *chat.Service, cat *catalog.Repo) *Handler {
	return &Handler{Cfg: cfg, Log: log, ChatSvc: chatSvc, Catalog: cat}
}

func (h *Handler) Ping(c *gin.Context) {
	common.OK(c, gin.H{"pong": true})
}

func visitorIDFromContext(c *gin.Context) (string, bool) {
	v, ok := c.Get(middleware.VisitorIDKey)
	if !ok {
		return "", false
	}
	id, ok := v.(string)
	return id, ok && id != ""
}
