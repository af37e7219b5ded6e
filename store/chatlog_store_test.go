package store

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/Loganbn2/Simula-Data-Dash/models"
)

func TestBuildFilterClause_AllAbsentMatchesEverything(t *testing.T) {
	t.Parallel()

	clause, args := buildFilterClause(models.FilterCriteria{})
	if clause != "" {
		t.Fatalf("clause=%q, want empty for all-absent criteria", clause)
	}
	if len(args) != 0 {
		t.Fatalf("args=%v, want none", args)
	}
}

func TestBuildFilterClause_SearchSpansThreeColumns(t *testing.T) {
	t.Parallel()

	clause, args := buildFilterClause(models.FilterCriteria{Search: "refund"})
	if !strings.Contains(clause, "user_message ILIKE ?") ||
		!strings.Contains(clause, "assistant_message ILIKE ?") ||
		!strings.Contains(clause, "ad_message ILIKE ?") {
		t.Fatalf("clause=%q, want ILIKE over all three text columns", clause)
	}
	if len(args) != 3 {
		t.Fatalf("args=%v, want 3 patterns", args)
	}
	for _, a := range args {
		if a != "%refund%" {
			t.Fatalf("arg=%v, want %%refund%%", a)
		}
	}
}

func TestBuildFilterClause_SetsCombineWithANDAcrossORWithin(t *testing.T) {
	t.Parallel()

	clicked := true
	start := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	end := start.Add(7 * 24 * time.Hour)

	clause, args := buildFilterClause(models.FilterCriteria{
		Sentiments: []string{models.SentimentPositive, models.SentimentNegative},
		Categories: []string{models.CategoryBillingQuestion},
		AdClicked:  &clicked,
		Start:      &start,
		End:        &end,
	})

	if !strings.HasPrefix(clause, "WHERE ") {
		t.Fatalf("clause=%q, want WHERE prefix", clause)
	}
	if !strings.Contains(clause, "user_sentiment IN (?, ?)") {
		t.Fatalf("clause=%q, want two-element sentiment IN list", clause)
	}
	if !strings.Contains(clause, "conversation_category IN (?)") {
		t.Fatalf("clause=%q, want one-element category IN list", clause)
	}
	if !strings.Contains(clause, "ad_clicked = ?") {
		t.Fatalf("clause=%q, want ad_clicked condition", clause)
	}
	if !strings.Contains(clause, "timestamp >= ?") || !strings.Contains(clause, "timestamp <= ?") {
		t.Fatalf("clause=%q, want time range conditions", clause)
	}
	if got := strings.Count(clause, " AND "); got != 4 {
		t.Fatalf("clause=%q has %d ANDs, want 4 (five conditions)", clause, got)
	}
	if len(args) != 6 {
		t.Fatalf("args=%v, want 6", args)
	}
}

func TestBuildFilterClause_FalseAdClickedStillConstrains(t *testing.T) {
	t.Parallel()

	// ad_clicked=false must filter to non-clicked rows, not be treated
	// as "unset".
	clicked := false
	clause, args := buildFilterClause(models.FilterCriteria{AdClicked: &clicked})
	if !strings.Contains(clause, "ad_clicked = ?") {
		t.Fatalf("clause=%q, want ad_clicked condition for explicit false", clause)
	}
	if len(args) != 1 || args[0] != false {
		t.Fatalf("args=%v, want [false]", args)
	}
}

func TestValidateChatLog(t *testing.T) {
	t.Parallel()

	valid := models.ChatLog{
		UserMessage:          "hello",
		AssistantMessage:     "hi",
		UserSentiment:        models.SentimentNeutral,
		ConversationCategory: models.CategoryGeneralInformation,
	}
	if err := validateChatLog(valid); err != nil {
		t.Fatalf("valid record rejected: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*models.ChatLog)
		field  string
	}{
		{name: "empty user message", mutate: func(r *models.ChatLog) { r.UserMessage = "" }, field: "user_message"},
		{name: "empty assistant message", mutate: func(r *models.ChatLog) { r.AssistantMessage = "" }, field: "assistant_message"},
		{name: "sentiment outside closed set", mutate: func(r *models.ChatLog) { r.UserSentiment = "Ecstatic" }, field: "user_sentiment"},
		{name: "empty category", mutate: func(r *models.ChatLog) { r.ConversationCategory = "" }, field: "conversation_category"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			rec := valid
			tt.mutate(&rec)
			err := validateChatLog(rec)
			var ve *models.ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("err=%v, want *models.ValidationError", err)
			}
			if ve.Field != tt.field {
				t.Fatalf("field=%q, want %q", ve.Field, tt.field)
			}
		})
	}
}

func TestCTRPercentage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		clicks uint64
		count  uint64
		want   float64
	}{
		{clicks: 3, count: 10, want: 30.00},
		{clicks: 0, count: 10, want: 0},
		{clicks: 10, count: 10, want: 100},
		{clicks: 1, count: 3, want: 33.33},
		{clicks: 2, count: 3, want: 66.67},
		{clicks: 0, count: 0, want: 0},
	}

	for _, tt := range tests {
		if got := CTRPercentage(tt.clicks, tt.count); got != tt.want {
			t.Fatalf("CTRPercentage(%d, %d)=%v, want %v", tt.clicks, tt.count, got, tt.want)
		}
	}
}
