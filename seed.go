package main

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/Loganbn2/Simula-Data-Dash/models"
	"github.com/Loganbn2/Simula-Data-Dash/pipeline"
)

// Canned question/answer pairs chosen so seeded data spreads across the
// classifier's categories and sentiments.
var sampleExchanges = []struct {
	question string
	answer   string
}{
	{
		question: "I keep getting an error when I try to log in, can you help?",
		answer:   "Sorry about that! Please clear your browser cache and try again. If the error persists, send us the exact message shown.",
	},
	{
		question: "What are your pricing plans and how much does the pro tier cost?",
		answer:   "We offer a free tier, a Pro plan at $20/month, and custom enterprise pricing. The Pro plan includes unlimited conversations.",
	},
	{
		question: "How do I export my conversation history?",
		answer:   "Open Settings, choose Data, and click Export. You'll receive a JSON file with all your conversations.",
	},
	{
		question: "Can you help me integrate your API into my application?",
		answer:   "Absolutely. Grab an API key from the developer console and follow the quickstart guide; most integrations take under an hour.",
	},
	{
		question: "This is great, thanks for the quick response!",
		answer:   "You're very welcome! Let us know if there's anything else we can do.",
	},
	{
		question: "The billing page shows the wrong amount, this is terrible.",
		answer:   "Apologies for the confusion. We've flagged your account for a billing review and will follow up within one business day.",
	},
	{
		question: "Is there a bug in the dashboard charts? The totals look off.",
		answer:   "We shipped a fix for a chart aggregation issue this morning. Please refresh and let us know if the totals still look wrong.",
	},
	{
		question: "Excellent support, the integration code sample worked perfectly.",
		answer:   "Glad to hear it! The sample repository also includes examples for batch uploads if you need them later.",
	},
}

func generateSampleConversations(n int) []models.ConversationInput {
	rng := rand.New(rand.NewSource(42))

	convs := make([]models.ConversationInput, 0, n)
	for i := 0; i < n; i++ {
		exchange := sampleExchanges[rng.Intn(len(sampleExchanges))]
		convs = append(convs, models.ConversationInput{
			ID: uuid.New().String(),
			Messages: []models.ConversationMessage{
				{Role: models.RoleUser, Content: exchange.question},
				{Role: models.RoleAssistant, Content: exchange.answer},
			},
		})
	}
	return convs
}

// seedSampleData pushes generated conversations through the real
// ingestion pipeline so seeded rows get the same classification and
// enrichment as live traffic.
func seedSampleData(p *pipeline.Pipeline, n int) error {
	log.Printf("Seeding %d sample conversations...", n)

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	result, err := p.IngestBatch(ctx, generateSampleConversations(n))
	if err != nil {
		return fmt.Errorf("seeding aborted: %w", err)
	}

	log.Printf("Seeding complete: %d succeeded, %d failed of %d attempted", result.Succeeded, result.Failed, result.Attempted)
	return nil
}
