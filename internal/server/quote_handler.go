package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"podpricer/internal/canvas"
	"podpricer/internal/pricing"
	"podpricer/internal/storage"
)

// QuoteRequest carries a designer document snapshot plus the order
// quantity used for tiered methods. Persist stores the result and fires
// the admin notification; plain recomputations from the designer UI leave
// it off.
type QuoteRequest struct {
	Design   json.RawMessage `json:"design" binding:"required"`
	Quantity int             `json:"quantity"`
	Persist  bool            `json:"persist,omitempty"`
}

// QuoteResponse wraps a pricing summary and, for persisted quotes, the
// stored quote id.
type QuoteResponse struct {
	QuoteID int64           `json:"quoteId,omitempty"`
	Summary pricing.Summary `json:"summary"`
}

func (s *Server) handleCreateQuote(c *gin.Context) {
	var req QuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	design, err := canvas.ParseDesign(req.Design)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Quantity < 1 {
		req.Quantity = 1
	}

	s.fillSideDimensions(c, &design)

	cacheKey := pricing.CacheKey(design, req.Quantity)
	if !req.Persist {
		var cached pricing.Summary
		if err := s.cache.GetJSON(c.Request.Context(), cacheKey, &cached); err == nil {
			c.JSON(http.StatusOK, QuoteResponse{Summary: cached})
			return
		}
	}

	summary := s.engine.Quote(design, req.Quantity)

	if err := s.cache.SaveJSON(c.Request.Context(), cacheKey, summary); err != nil {
		s.logger.Warn("Failed to cache quote summary",
			zap.String("cache_key", cacheKey),
			zap.Error(err))
	}

	resp := QuoteResponse{Summary: summary}
	if req.Persist {
		breakdown, err := json.Marshal(summary)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to encode summary"})
			return
		}

		quote := storage.Quote{
			DesignID:  design.ID,
			ProductID: design.ProductID,
			Quantity:  req.Quantity,
			Currency:  summary.Currency,
			Total:     summary.Total,
			Breakdown: breakdown,
		}

		quoteID, err := s.storage.SaveQuote(c.Request.Context(), quote)
		if err != nil {
			s.logger.Error("Failed to persist quote",
				zap.String("design_id", design.ID),
				zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save quote"})
			return
		}

		quote.ID = quoteID
		resp.QuoteID = quoteID
		s.notifier.QuoteSaved(quote, summary)
	}

	c.JSON(http.StatusOK, resp)
}

// fillSideDimensions backfills real-world side dimensions from the catalog
// when the submitted design references a product but carries none. Catalog
// failures degrade to the fallback ratio instead of failing the quote.
func (s *Server) fillSideDimensions(c *gin.Context, design *canvas.Design) {
	if s.catalog == nil || design.ProductID == "" {
		return
	}

	missing := false
	for _, side := range design.Sides {
		if side.WidthMM <= 0 {
			missing = true
			break
		}
	}
	if !missing {
		return
	}

	sides, err := s.catalog.GetProductSides(c.Request.Context(), design.ProductID)
	if err != nil {
		s.logger.Warn("Failed to fetch product sides from catalog, using fallback ratio",
			zap.String("product_id", design.ProductID),
			zap.Error(err))
		return
	}

	byID := make(map[string]struct{ w, h float64 }, len(sides))
	for _, ps := range sides {
		byID[ps.ID] = struct{ w, h float64 }{ps.WidthMM, ps.HeightMM}
	}

	for i := range design.Sides {
		if design.Sides[i].WidthMM > 0 {
			continue
		}
		if dims, ok := byID[design.Sides[i].ID]; ok {
			design.Sides[i].WidthMM = dims.w
			design.Sides[i].HeightMM = dims.h
		}
	}
}

func (s *Server) handleGetQuote(c *gin.Context) {
	quoteID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid quote id"})
		return
	}

	quote, err := s.storage.GetQuoteByID(c.Request.Context(), quoteID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "quote not found"})
			return
		}
		s.logger.Error("Failed to load quote", zap.Int64("quote_id", quoteID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load quote"})
		return
	}

	c.JSON(http.StatusOK, quote)
}

func (s *Server) handleQuoteStats(c *gin.Context) {
	stats, err := s.storage.GetQuoteStatistics(c.Request.Context())
	if err != nil {
		s.logger.Error("Failed to load quote statistics", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load statistics"})
		return
	}

	c.JSON(http.StatusOK, stats)
}

func (s *Server) handlePricingTable(c *gin.Context) {
	c.JSON(http.StatusOK, s.engine.Table())
}
