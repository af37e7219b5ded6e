// api/internal/store/chatlog_store.go
package store

import (
	"context"
	"fmt"
	"log"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Loganbn2/Simula-Data-Dash/database"
	"github.com/Loganbn2/Simula-Data-Dash/models"
	"github.com/Loganbn2/Simula-Data-Dash/utils"
)

const defaultQueryLimit = 100

// chatLogColumns is the column order shared by inserts and selects.
// Must match the chat_logs table schema exactly.
const chatLogColumns = `id, user_message, assistant_message, device_type, country, user_sentiment,
	ad_message, ad_category, ad_clicked, conversation_category, timestamp, created_at`

type ChatLogStore struct {
	DB *database.ClickHouseClient
}

func NewChatLogStore(chClient *database.ClickHouseClient) *ChatLogStore {
	return &ChatLogStore{
		DB: chClient,
	}
}

// validateChatLog enforces the persisted-field constraints before the
// row ever reaches the database, so constraint violations surface as
// *models.ValidationError instead of driver errors.
func validateChatLog(rec models.ChatLog) error {
	if rec.UserMessage == "" {
		return &models.ValidationError{Field: "user_message", Reason: "must not be empty"}
	}
	if rec.AssistantMessage == "" {
		return &models.ValidationError{Field: "assistant_message", Reason: "must not be empty"}
	}
	if !utils.IsValidSentiment(rec.UserSentiment) {
		return &models.ValidationError{Field: "user_sentiment", Reason: fmt.Sprintf("%q is not one of Positive, Neutral, Negative", rec.UserSentiment)}
	}
	if rec.ConversationCategory == "" {
		return &models.ValidationError{Field: "conversation_category", Reason: "must not be empty"}
	}
	return nil
}

// InsertChatLog persists one row and returns its generated id. Each call
// is a single independent atomic insert; batch ingestion deliberately
// calls this per record so one bad row cannot poison its neighbors.
func (s *ChatLogStore) InsertChatLog(ctx context.Context, rec models.ChatLog) (string, error) {
	if err := validateChatLog(rec); err != nil {
		return "", err
	}

	rec.ID = uuid.New().String()
	now := time.Now().UTC()
	if rec.Timestamp.IsZero() {
		rec.Timestamp = now
	}
	rec.CreatedAt = now

	batch, err := s.DB.Conn.PrepareBatch(ctx, fmt.Sprintf(`
		INSERT INTO chat_logs (%s) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, chatLogColumns))
	if err != nil {
		return "", fmt.Errorf("failed to prepare chat log insert: %w", err)
	}

	if err := batch.Append(
		rec.ID,
		rec.UserMessage,
		rec.AssistantMessage,
		rec.DeviceType,
		rec.Country,
		rec.UserSentiment,
		rec.AdMessage,
		rec.AdCategory,
		rec.AdClicked,
		rec.ConversationCategory,
		rec.Timestamp,
		rec.CreatedAt,
	); err != nil {
		return "", fmt.Errorf("failed to append chat log row: %w", err)
	}

	if err := batch.Send(); err != nil {
		return "", fmt.Errorf("failed to insert chat log: %w", err)
	}

	return rec.ID, nil
}

// buildFilterClause translates FilterCriteria into a WHERE clause and
// its arguments. An unset field contributes nothing, so an all-absent
// criteria produces an empty clause matching every row. Criteria AND
// together; membership inside one set is an IN list.
func buildFilterClause(f models.FilterCriteria) (string, []interface{}) {
	var conds []string
	var args []interface{}

	if f.Search != "" {
		pattern := "%" + f.Search + "%"
		conds = append(conds, "(user_message ILIKE ? OR assistant_message ILIKE ? OR ad_message ILIKE ?)")
		args = append(args, pattern, pattern, pattern)
	}
	conds, args = appendSetCondition(conds, args, "user_sentiment", f.Sentiments)
	conds, args = appendSetCondition(conds, args, "conversation_category", f.Categories)
	conds, args = appendSetCondition(conds, args, "country", f.Countries)
	conds, args = appendSetCondition(conds, args, "device_type", f.Devices)
	if f.AdClicked != nil {
		conds = append(conds, "ad_clicked = ?")
		args = append(args, *f.AdClicked)
	}
	if f.Start != nil {
		conds = append(conds, "timestamp >= ?")
		args = append(args, *f.Start)
	}
	if f.End != nil {
		conds = append(conds, "timestamp <= ?")
		args = append(args, *f.End)
	}

	if len(conds) == 0 {
		return "", nil
	}
	return "WHERE " + strings.Join(conds, " AND "), args
}

func appendSetCondition(conds []string, args []interface{}, column string, values []string) ([]string, []interface{}) {
	if len(values) == 0 {
		return conds, args
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(values)), ", ")
	conds = append(conds, fmt.Sprintf("%s IN (%s)", column, placeholders))
	for _, v := range values {
		args = append(args, v)
	}
	return conds, args
}

// QueryChatLogs returns the rows matching the criteria ordered by
// timestamp descending, sliced by limit/offset.
func (s *ChatLogStore) QueryChatLogs(ctx context.Context, f models.FilterCriteria) ([]models.ChatLog, error) {
	whereClause, args := buildFilterClause(f)

	limit := f.Limit
	if limit <= 0 {
		limit = defaultQueryLimit
	}
	offset := f.Offset
	if offset < 0 {
		offset = 0
	}
	args = append(args, limit, offset)

	query := fmt.Sprintf(`
		SELECT %s
		FROM chat_logs
		%s
		ORDER BY timestamp DESC
		LIMIT ? OFFSET ?
	`, chatLogColumns, whereClause)

	rows, err := s.DB.Conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query chat logs: %w", err)
	}
	defer rows.Close()

	var results []models.ChatLog
	for rows.Next() {
		var rec models.ChatLog
		if err := rows.Scan(
			&rec.ID,
			&rec.UserMessage,
			&rec.AssistantMessage,
			&rec.DeviceType,
			&rec.Country,
			&rec.UserSentiment,
			&rec.AdMessage,
			&rec.AdCategory,
			&rec.AdClicked,
			&rec.ConversationCategory,
			&rec.Timestamp,
			&rec.CreatedAt,
		); err != nil {
			log.Printf("Error scanning chat log row: %v", err)
			continue
		}
		results = append(results, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row error during chat log query: %w", err)
	}

	return results, nil
}

// SummarizeChatLogs groups the matching rows by day, category,
// sentiment, country, device, and ad category, returning counts, ad
// clicks, and the click-through rate per group.
func (s *ChatLogStore) SummarizeChatLogs(ctx context.Context, f models.FilterCriteria) ([]models.SummaryRow, error) {
	whereClause, args := buildFilterClause(f)

	query := fmt.Sprintf(`
		SELECT
			toStartOfDay(timestamp) AS day,
			conversation_category,
			user_sentiment,
			country,
			device_type,
			ad_category,
			count() AS message_count,
			countIf(ad_clicked) AS ad_clicks
		FROM chat_logs
		%s
		GROUP BY day, conversation_category, user_sentiment, country, device_type, ad_category
		ORDER BY day DESC, message_count DESC
	`, whereClause)

	rows, err := s.DB.Conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query chat log summary: %w", err)
	}
	defer rows.Close()

	var results []models.SummaryRow
	for rows.Next() {
		var row models.SummaryRow
		if err := rows.Scan(
			&row.Day,
			&row.ConversationCategory,
			&row.UserSentiment,
			&row.Country,
			&row.DeviceType,
			&row.AdCategory,
			&row.MessageCount,
			&row.AdClicks,
		); err != nil {
			log.Printf("Error scanning summary row: %v", err)
			continue
		}
		row.CTRPercentage = CTRPercentage(row.AdClicks, row.MessageCount)
		results = append(results, row)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row error during chat log summary query: %w", err)
	}

	return results, nil
}

// CTRPercentage is clicks over count as a percentage rounded to two
// decimal places. Groups always derive from existing rows so count is
// never zero in practice, but a zero count still yields 0 rather than
// NaN.
func CTRPercentage(clicks, count uint64) float64 {
	if count == 0 {
		return 0
	}
	return math.Round(float64(clicks)/float64(count)*100*100) / 100
}
