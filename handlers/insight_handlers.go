package handlers

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Loganbn2/Simula-Data-Dash/insights"
	"github.com/Loganbn2/Simula-Data-Dash/models"
	"github.com/Loganbn2/Simula-Data-Dash/store"
)

type InsightRequest struct {
	Question string                `json:"question" binding:"required"`
	Filters  models.FilterCriteria `json:"filters"`
}

type InsightHandlers struct {
	ChatLogStore *store.ChatLogStore
	Insights     *insights.Service
}

func NewInsightHandlers(s *store.ChatLogStore, svc *insights.Service) *InsightHandlers {
	return &InsightHandlers{
		ChatLogStore: s,
		Insights:     svc,
	}
}

// AskInsight summarizes the currently filtered data and asks the
// insight service the posted question. External failures degrade to the
// fallback answer, so the only error paths here are bad input and the
// store itself.
func (h *InsightHandlers) AskInsight(c *gin.Context) {
	var req InsightRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 30*time.Second)
	defer cancel()

	summary, err := h.ChatLogStore.SummarizeChatLogs(ctx, req.Filters)
	if err != nil {
		log.Printf("Error summarizing chat logs for insight: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve data for insight"})
		return
	}

	answer, usedFallback := h.Insights.Ask(ctx, req.Question, summary)

	c.JSON(http.StatusOK, gin.H{
		"question": req.Question,
		"answer":   answer,
		"fallback": usedFallback,
	})
}
