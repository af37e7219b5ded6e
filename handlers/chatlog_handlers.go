// api/handlers/chatlog_handlers.go
package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Loganbn2/Simula-Data-Dash/models"
	"github.com/Loganbn2/Simula-Data-Dash/pipeline"
	"github.com/Loganbn2/Simula-Data-Dash/store"
	"github.com/Loganbn2/Simula-Data-Dash/utils"
)

type ChatLogHandlers struct {
	Pipeline     *pipeline.Pipeline
	ChatLogStore *store.ChatLogStore
}

func NewChatLogHandlers(p *pipeline.Pipeline, s *store.ChatLogStore) *ChatLogHandlers {
	return &ChatLogHandlers{
		Pipeline:     p,
		ChatLogStore: s,
	}
}

// decodeConversationPayload accepts either one conversation object or
// an array of them, returning a slice either way.
func decodeConversationPayload(body []byte) ([]models.ConversationInput, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("empty request body")
	}

	if trimmed[0] == '[' {
		var convs []models.ConversationInput
		if err := json.Unmarshal(trimmed, &convs); err != nil {
			return nil, fmt.Errorf("invalid conversation array: %w", err)
		}
		return convs, nil
	}

	var conv models.ConversationInput
	if err := json.Unmarshal(trimmed, &conv); err != nil {
		return nil, fmt.Errorf("invalid conversation object: %w", err)
	}
	return []models.ConversationInput{conv}, nil
}

// IngestConversations runs the ingestion pipeline over the posted
// conversation(s). Per-record failures come back in the 200 response;
// only a store-level fault produces an error status.
func (h *ChatLogHandlers) IngestConversations(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read request body"})
		return
	}

	convs, err := decodeConversationPayload(body)
	if err != nil {
		log.Printf("Error decoding ingestion payload: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 30*time.Second)
	defer cancel()

	result, err := h.Pipeline.IngestBatch(ctx, convs)
	if err != nil {
		log.Printf("Error ingesting conversations: %v", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error":   "Analytics store unavailable",
			"partial": result,
		})
		return
	}

	c.JSON(http.StatusOK, result)
}

// parseFilterQuery maps query parameters onto FilterCriteria. Set-valued
// filters take comma-separated values; times use RFC3339. A missing
// parameter leaves its field unset, which means no constraint.
func parseFilterQuery(values url.Values) (models.FilterCriteria, error) {
	f := models.FilterCriteria{
		Search:     values.Get("search"),
		Sentiments: splitCSV(values.Get("sentiment")),
		Categories: splitCSV(values.Get("category")),
		Countries:  splitCSV(values.Get("country")),
		Devices:    splitCSV(values.Get("device")),
	}

	if v := values.Get("ad_clicked"); v != "" {
		clicked, err := strconv.ParseBool(v)
		if err != nil {
			return f, fmt.Errorf("invalid 'ad_clicked' parameter, expected true or false")
		}
		f.AdClicked = &clicked
	}

	if v := values.Get("start"); v != "" {
		start, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return f, fmt.Errorf("invalid 'start' timestamp format, use RFC3339 (e.g. 2006-01-02T15:04:05Z)")
		}
		f.Start = &start
	}
	if v := values.Get("end"); v != "" {
		end, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return f, fmt.Errorf("invalid 'end' timestamp format, use RFC3339 (e.g. 2006-01-02T15:04:05Z)")
		}
		f.End = &end
	}

	if v := values.Get("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil || limit < 0 {
			return f, fmt.Errorf("invalid 'limit' parameter, must be a non-negative integer")
		}
		f.Limit = limit
	}
	if v := values.Get("offset"); v != "" {
		offset, err := strconv.Atoi(v)
		if err != nil || offset < 0 {
			return f, fmt.Errorf("invalid 'offset' parameter, must be a non-negative integer")
		}
		f.Offset = offset
	}

	return f, nil
}

func splitCSV(v string) []string {
	if v == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// GetChatLogs returns the filtered rows, newest first.
func (h *ChatLogHandlers) GetChatLogs(c *gin.Context) {
	criteria, err := parseFilterQuery(c.Request.URL.Query())
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	logs, err := h.ChatLogStore.QueryChatLogs(ctx, criteria)
	if err != nil {
		log.Printf("Error querying chat logs: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve chat logs"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"count": len(logs),
		"logs":  logs,
	})
}

// GetFilterOptions returns the closed label sets the frontend offers as
// filter dropdowns.
func (h *ChatLogHandlers) GetFilterOptions(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"sentiments": utils.KnownSentiments(),
		"categories": utils.KnownCategories(),
	})
}

// GetChatLogSummary returns the grouped aggregation over the same
// filter parameters the listing endpoint takes.
func (h *ChatLogHandlers) GetChatLogSummary(c *gin.Context) {
	criteria, err := parseFilterQuery(c.Request.URL.Query())
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	summary, err := h.ChatLogStore.SummarizeChatLogs(ctx, criteria)
	if err != nil {
		log.Printf("Error summarizing chat logs: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve chat log summary"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"groups":  len(summary),
		"summary": summary,
	})
}
