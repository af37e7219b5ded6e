package utils

import "github.com/Loganbn2/Simula-Data-Dash/models"

// IsValidSentiment reports whether s belongs to the closed sentiment
// set the chat_logs table accepts.
func IsValidSentiment(s string) bool {
	switch s {
	case models.SentimentPositive, models.SentimentNeutral, models.SentimentNegative:
		return true
	default:
		return false
	}
}

// KnownSentiments lists the closed sentiment set in display order.
func KnownSentiments() []string {
	return []string{
		models.SentimentPositive,
		models.SentimentNeutral,
		models.SentimentNegative,
	}
}

// KnownCategories lists the labels the classifier can assign. The
// conversation_category column itself is free text, so stored data may
// contain more than these in exceptional cases.
func KnownCategories() []string {
	return []string{
		models.CategoryTechnicalSupport,
		models.CategoryBillingQuestion,
		models.CategoryGeneralInformation,
		models.CategoryAPIQuestions,
	}
}
