package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/polarbear333/rag-llm-based-recommender/internal/auth"
	"github.com/polarbear333/rag-llm-based-recommender/internal/common"
)

// CreateVisitor mints an anonymous visitor identity. The token scopes the
// visitor's chat state; there are no accounts or credentials.
func (h *Handler) CreateVisitor(c *gin.Context) {
	visitorID, err := common.NewULID()
	if err != nil {
		common.Fail(c, http.StatusInternalServerError, 50001, "failed to allocate visitor id")
		return
	}

	token, err := auth.SignVisitorToken(visitorID, h.Cfg.JWTSecret, 24*time.Hour)
	if err != nil {
		common.Fail(c, http.StatusInternalServerError, 50002, "failed to sign token")
		return
	}

	common.OK(c, gin.H{
		"visitor_id": visitorID,
		"token":      token,
	})
}
