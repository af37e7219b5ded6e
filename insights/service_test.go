package insights

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/Loganbn2/Simula-Data-Dash/models"
)

func sampleRows() []models.SummaryRow {
	day := time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC)
	return []models.SummaryRow{
		{
			Day:                  day,
			ConversationCategory: models.CategoryTechnicalSupport,
			UserSentiment:        models.SentimentNegative,
			Country:              "United States",
			DeviceType:           "Web Browser",
			AdCategory:           "AI Tools",
			MessageCount:         6,
			AdClicks:             1,
		},
		{
			Day:                  day,
			ConversationCategory: models.CategoryGeneralInformation,
			UserSentiment:        models.SentimentPositive,
			Country:              "United States",
			DeviceType:           "Web Browser",
			AdCategory:           "AI Tools",
			MessageCount:         4,
			AdClicks:             3,
		},
	}
}

func TestAsk_NoClientUsesFallback(t *testing.T) {
	t.Parallel()

	svc := NewService("")
	answer, usedFallback := svc.Ask(context.Background(), "what is the overall ctr?", sampleRows())
	if !usedFallback {
		t.Fatalf("usedFallback=false, want fallback without a client")
	}
	if !strings.Contains(answer, "40.00%") {
		t.Fatalf("answer=%q, want overall CTR 40.00%% (4 clicks / 10 records)", answer)
	}
}

func TestFallbackAnswer_RoutesByQuestion(t *testing.T) {
	t.Parallel()

	rows := sampleRows()

	sentiment := fallbackAnswer("How is user sentiment trending?", rows)
	if !strings.Contains(sentiment, models.SentimentNegative) || !strings.Contains(sentiment, "60.0%") {
		t.Fatalf("sentiment answer=%q, want Negative at 60.0%%", sentiment)
	}

	category := fallbackAnswer("What are the most common topics?", rows)
	if !strings.Contains(category, models.CategoryTechnicalSupport) {
		t.Fatalf("category answer=%q, want Technical Support as top category", category)
	}

	overview := fallbackAnswer("tell me something interesting", rows)
	if !strings.Contains(overview, "10 total interactions") {
		t.Fatalf("overview answer=%q, want total of 10", overview)
	}
}

func TestFallbackAnswer_NoData(t *testing.T) {
	t.Parallel()

	answer := fallbackAnswer("anything", nil)
	if answer != "No data available for analysis." {
		t.Fatalf("answer=%q", answer)
	}
}

func TestRenderDataSummary(t *testing.T) {
	t.Parallel()

	if got := RenderDataSummary(nil); got != "No data available for analysis." {
		t.Fatalf("empty summary=%q", got)
	}

	summary := RenderDataSummary(sampleRows())
	for _, want := range []string{
		"Total records: 10",
		"Overall CTR: 40.00%",
		models.SentimentNegative,
		models.CategoryTechnicalSupport,
		"United States",
		"Web Browser",
	} {
		if !strings.Contains(summary, want) {
			t.Fatalf("summary missing %q:\n%s", want, summary)
		}
	}
}
