package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/polarbear333/rag-llm-based-recommender/internal/common"
	"github.com/polarbear333/rag-llm-based-recommender/internal/config"
	"github.com/polarbear333/rag-llm-based-recommender/internal/httpapi/handlers"
	"github.com/polarbear333/rag-llm-based-recommender/internal/httpapi/middleware"
)

func NewRouter(h *handlers.Handler, cfg config.Config, log *zap.Logger) *gin.Engine {
	r := gin.New()
	r.HandleMethodNotAllowed = true
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLog(log))
	r.Use(middleware.Recovery(log))

	r.NoRoute(func(c *gin.Context) {
		common.Fail(c, http.StatusNotFound, 40400, "route not found")
	})
	r.NoMethod(func(c *gin.Context) {
		common.Fail(c, http.StatusMethodNotAllowed, 40500, "method not allowed")
	})

	r.GET("/ping", h.Ping)

	api := r.Group("/api")
	{
		api.POST("/visitor", h.CreateVisitor)

		// storefront grid
		api.GET("/products", h.ListProducts)
		api.GET("/products/featured", h.FeaturedProducts)
		api.GET("/categories", h.ListCategories)
		api.GET("/products/:asin/image", h.ProductImage)

		// chat (visitor token required)
		chatGroup := api.Group("/chat")
		chatGroup.Use(middleware.VisitorAuth(cfg.JWTSecret))
		{
			chatGroup.POST("/sessions", h.CreateChatSession)
			chatGroup.GET("/sessions", h.ListChatSessions)
			chatGroup.POST("/sessions/:session_id/switch", h.SwitchChatSession)
			chatGroup.DELETE("/sessions/:session_id", h.DeleteChatSession)

			chatGroup.GET("/messages", h.ListCurrentMessages)
			chatGroup.POST("/messages", h.SendChatMessage)
			chatGroup.POST("/messages/async", h.SendChatMessageAsync)
			chatGroup.GET("/jobs/:job_id", h.GetSearchJob)
		}
	}

	return r
}
