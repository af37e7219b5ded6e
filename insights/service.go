// Package insights answers natural-language questions about the
// currently filtered chat analytics. When the external LLM is
// unavailable it degrades to a locally computed answer; it never
// returns an error to the caller.
package insights

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/Loganbn2/Simula-Data-Dash/models"
)

const systemPrompt = `You are a data analyst expert specializing in AI chat analytics and ad performance.
You analyze chat logs with sentiment analysis, user behavior, and advertisement click-through rates.
Provide clear, actionable insights based on the data provided. Focus on sentiment patterns,
user behavior trends, ad performance, category-specific insights, and geographic and
device-based patterns. Keep responses concise, insightful, and actionable.`

type Service struct {
	client *openai.Client
	model  openai.ChatModel
}

// NewService builds an insight service. With an empty API key the
// service runs in fallback-only mode.
func NewService(apiKey string) *Service {
	if apiKey == "" {
		log.Println("OPENAI_API_KEY not set; insights will use fallback mode")
		return &Service{}
	}
	client := openai.NewClient(option.WithAPIKey(apiKey))
	return &Service{
		client: &client,
		model:  openai.ChatModelGPT3_5Turbo,
	}
}

// Ask answers the question over the given summary rows. The second
// return value reports whether the locally computed fallback was used
// instead of the external model.
func (s *Service) Ask(ctx context.Context, question string, rows []models.SummaryRow) (string, bool) {
	if s.client == nil {
		return fallbackAnswer(question, rows), true
	}

	dataSummary := RenderDataSummary(rows)
	userPrompt := fmt.Sprintf(
		"Here's the current dataset summary:\n%s\n\nUser question: %s\n\nPlease provide insights based on this data. Be specific and include relevant numbers when possible.",
		dataSummary, question,
	)

	resp, err := s.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: s.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(userPrompt),
		},
		MaxTokens:   openai.Int(500),
		Temperature: openai.Float(0.7),
	})
	if err != nil {
		log.Printf("Insight request to OpenAI failed, using fallback: %v", err)
		return fallbackAnswer(question, rows), true
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		log.Println("Insight request returned an empty completion, using fallback")
		return fallbackAnswer(question, rows), true
	}

	return resp.Choices[0].Message.Content, false
}

// aggregate totals used by both the prompt summary and the fallback.
type rollup struct {
	total        uint64
	clicks       uint64
	bySentiment  map[string]uint64
	byCategory   map[string]uint64
	byCountry    map[string]uint64
	byDevice     map[string]uint64
	clicksBySent map[string]uint64
}

func rollUp(rows []models.SummaryRow) rollup {
	r := rollup{
		bySentiment:  make(map[string]uint64),
		byCategory:   make(map[string]uint64),
		byCountry:    make(map[string]uint64),
		byDevice:     make(map[string]uint64),
		clicksBySent: make(map[string]uint64),
	}
	for _, row := range rows {
		r.total += row.MessageCount
		r.clicks += row.AdClicks
		r.bySentiment[row.UserSentiment] += row.MessageCount
		r.byCategory[row.ConversationCategory] += row.MessageCount
		r.byCountry[row.Country] += row.MessageCount
		r.byDevice[row.DeviceType] += row.MessageCount
		r.clicksBySent[row.UserSentiment] += row.AdClicks
	}
	return r
}

// RenderDataSummary serializes the filtered aggregation into the plain
// text block handed to the model as context.
func RenderDataSummary(rows []models.SummaryRow) string {
	if len(rows) == 0 {
		return "No data available for analysis."
	}
	r := rollUp(rows)

	var b strings.Builder
	fmt.Fprintf(&b, "Data Summary:\n")
	fmt.Fprintf(&b, "- Total records: %d\n", r.total)
	fmt.Fprintf(&b, "- Overall CTR: %.2f%% (%d clicks / %d impressions)\n", percentage(r.clicks, r.total), r.clicks, r.total)

	fmt.Fprintf(&b, "\nSentiment Distribution:\n")
	for _, entry := range sortedCounts(r.bySentiment) {
		fmt.Fprintf(&b, "- %s: %d (%.1f%%)\n", entry.label, entry.count, percentage(entry.count, r.total))
	}

	fmt.Fprintf(&b, "\nTop Categories:\n")
	for i, entry := range sortedCounts(r.byCategory) {
		if i >= 5 {
			break
		}
		fmt.Fprintf(&b, "- %s: %d\n", entry.label, entry.count)
	}

	fmt.Fprintf(&b, "\nTop Locations:\n")
	for i, entry := range sortedCounts(r.byCountry) {
		if i >= 5 {
			break
		}
		fmt.Fprintf(&b, "- %s: %d\n", entry.label, entry.count)
	}

	fmt.Fprintf(&b, "\nTop Devices:\n")
	for i, entry := range sortedCounts(r.byDevice) {
		if i >= 5 {
			break
		}
		fmt.Fprintf(&b, "- %s: %d\n", entry.label, entry.count)
	}

	return b.String()
}

// fallbackAnswer routes the question through simple keyword checks and
// answers from the aggregates alone.
func fallbackAnswer(question string, rows []models.SummaryRow) string {
	if len(rows) == 0 {
		return "No data available for analysis."
	}
	r := rollUp(rows)
	q := strings.ToLower(question)

	switch {
	case containsAny(q, "sentiment", "mood", "feeling", "emotion"):
		var parts []string
		for _, entry := range sortedCounts(r.bySentiment) {
			parts = append(parts, fmt.Sprintf("%s: %.1f%%", entry.label, percentage(entry.count, r.total)))
		}
		return fmt.Sprintf("Sentiment analysis: %s.", strings.Join(parts, ", "))

	case containsAny(q, "ctr", "click", "ad", "conversion"):
		var parts []string
		for _, entry := range sortedCounts(r.bySentiment) {
			parts = append(parts, fmt.Sprintf("%s: %.1f%%", entry.label, percentage(r.clicksBySent[entry.label], entry.count)))
		}
		return fmt.Sprintf("Overall CTR: %.2f%%. CTR by sentiment: %s.", percentage(r.clicks, r.total), strings.Join(parts, ", "))

	case containsAny(q, "category", "topic", "use case", "common"):
		top := sortedCounts(r.byCategory)
		var parts []string
		for i, entry := range top {
			if i >= 5 {
				break
			}
			parts = append(parts, fmt.Sprintf("%s (%d messages)", entry.label, entry.count))
		}
		return fmt.Sprintf("Top categories: %s. The most common use case is %s.", strings.Join(parts, ", "), top[0].label)

	case containsAny(q, "location", "geographic", "region", "country"):
		top := sortedCounts(r.byCountry)
		return fmt.Sprintf("Top location: %s with %d interactions.", top[0].label, top[0].count)

	case containsAny(q, "device", "mobile", "desktop", "platform"):
		top := sortedCounts(r.byDevice)
		return fmt.Sprintf("Top device: %s with %d interactions.", top[0].label, top[0].count)

	default:
		topCategory := sortedCounts(r.byCategory)[0]
		topSentiment := sortedCounts(r.bySentiment)[0]
		return fmt.Sprintf(
			"Data overview: %d total interactions. Most common category: %s (%d). Dominant sentiment: %s. Overall CTR: %.2f%%.",
			r.total, topCategory.label, topCategory.count, topSentiment.label, percentage(r.clicks, r.total),
		)
	}
}

type labelCount struct {
	label string
	count uint64
}

func sortedCounts(m map[string]uint64) []labelCount {
	entries := make([]labelCount, 0, len(m))
	for label, count := range m {
		entries = append(entries, labelCount{label: label, count: count})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].count == entries[j].count {
			return entries[i].label < entries[j].label
		}
		return entries[i].count > entries[j].count
	})
	return entries
}

func percentage(part, total uint64) float64 {
	if total == 0 {
		return 0
	}
	return float64(part) / float64(total) * 100
}

func containsAny(s string, keywords ...string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}
