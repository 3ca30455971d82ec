package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/polarbear333/rag-llm-based-recommender/internal/common"
)

func (h *Handler) ListProducts(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))

	products, err := h.Catalog.ListProducts(c.Request.Context(), c.Query("category"), limit)
	if err != nil {
		common.Fail(c, http.StatusInternalServerError, 50020, "failed to list products")
		return
	}
	common.OK(c, gin.H{"products": products})
}

func (h *Handler) FeaturedProducts(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))

	products, err := h.Catalog.Featured(c.Request.Context(), limit)
	if err != nil {
		common.Fail(c, http.StatusInternalServerError, 50020, "failed to list products")
		return
	}
	common.OK(c, gin.H{"products": products})
}

func (h *Handler) ListCategories(c *gin.Context) {
	cats, err := h.Catalog.ListCategories(c.Request.Context())
	if err != nil {
		common.Fail(c, http.StatusInternalServerError, 50021, "failed to list categories")
		return
	}
	common.OK(c, gin.H{"categories": cats})
}

// ProductImage is the legacy scrape endpoint. The scraper was removed; the
// route stays for old clients and always reports Gone.
func (h *Handler) ProductImage(c *gin.Context) {
	c.JSON(http.StatusGone, gin.H{"error": "image scraping endpoint removed"})
}
