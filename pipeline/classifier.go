package pipeline

import (
	"strings"

	"github.com/Loganbn2/Simula-Data-Dash/models"
)

// Classifier maps user text to sentiment and category labels. It is the
// swap point for a future statistical classifier; the pipeline only
// depends on this interface.
type Classifier interface {
	Classify(text string) (sentiment, category string)
}

type keywordRule struct {
	keywords []string
	label    string
}

// Ordered rules, first match wins. Matching is case-insensitive
// substring containment, no scoring.
var categoryRules = []keywordRule{
	{keywords: []string{"error", "bug", "problem"}, label: models.CategoryTechnicalSupport},
	{keywords: []string{"price", "cost", "billing"}, label: models.CategoryBillingQuestion},
	{keywords: []string{"how", "what", "help"}, label: models.CategoryGeneralInformation},
	{keywords: []string{"api", "integration", "code"}, label: models.CategoryAPIQuestions},
}

var sentimentRules = []keywordRule{
	{keywords: []string{"great", "good", "excellent", "thanks"}, label: models.SentimentPositive},
	{keywords: []string{"bad", "terrible", "awful", "hate"}, label: models.SentimentNegative},
}

// KeywordClassifier is the deterministic rule-based classifier. Same
// text always yields the same labels; sentiment and category rules are
// evaluated independently over the same text.
type KeywordClassifier struct{}

func (KeywordClassifier) Classify(text string) (string, string) {
	lower := strings.ToLower(text)
	sentiment := matchFirst(sentimentRules, lower, models.SentimentNeutral)
	category := matchFirst(categoryRules, lower, models.CategoryGeneralInformation)
	return sentiment, category
}

func matchFirst(rules []keywordRule, lower, fallback string) string {
	for _, rule := range rules {
		for _, kw := range rule.keywords {
			if strings.Contains(lower, kw) {
				return rule.label
			}
		}
	}
	return fallback
}
