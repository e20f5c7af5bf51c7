package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"podpricer/internal/canvas"
	"podpricer/internal/storage"
)

func (s *Server) handleSaveDesign(c *gin.Context) {
	var raw json.RawMessage
	if err := c.ShouldBindJSON(&raw); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	design, err := canvas.ParseDesign(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err = s.storage.SaveDesign(c.Request.Context(), storage.Design{
		ID:        design.ID,
		ProductID: design.ProductID,
		Version:   design.Version,
		Doc:       raw,
	})
	if err != nil {
		s.logger.Error("Failed to save design", zap.String("design_id", design.ID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save design"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": design.ID, "version": design.Version})
}

func (s *Server) handleGetDesign(c *gin.Context) {
	design, err := s.storage.GetDesign(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "design not found"})
			return
		}
		s.logger.Error("Failed to load design", zap.String("design_id", c.Param("id")), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load design"})
		return
	}

	c.JSON(http.StatusOK, design)
}

func (s *Server) handleListDesignQuotes(c *gin.Context) {
	quotes, err := s.storage.ListQuotesByDesign(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.logger.Error("Failed to list design quotes", zap.String("design_id", c.Param("id")), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list quotes"})
		return
	}

	c.JSON(http.StatusOK, quotes)
}
