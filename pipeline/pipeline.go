package pipeline

import (
	"context"
	"errors"
	"fmt"

	"github.com/Loganbn2/Simula-Data-Dash/models"
)

// RecordWriter is the slice of the chat log store the pipeline needs:
// one atomic insert returning the generated id. Validation failures come
// back as *models.ValidationError; anything else is treated as the store
// being unavailable.
type RecordWriter interface {
	InsertChatLog(ctx context.Context, rec models.ChatLog) (string, error)
}

// Pipeline turns raw conversations into persisted chat log rows:
// normalize, classify, enrich, insert.
type Pipeline struct {
	classifier Classifier
	enricher   Enricher
	writer     RecordWriter
}

func New(classifier Classifier, enricher Enricher, writer RecordWriter) *Pipeline {
	return &Pipeline{
		classifier: classifier,
		enricher:   enricher,
		writer:     writer,
	}
}

// IngestOne processes a single conversation into one persisted row and
// returns the row as stored (with its generated id).
func (p *Pipeline) IngestOne(ctx context.Context, conv models.ConversationInput) (models.ChatLog, error) {
	userText, assistantText, err := Normalize(conv)
	if err != nil {
		return models.ChatLog{}, err
	}

	sentiment, category := p.classifier.Classify(userText)
	enrichment := p.enricher.Enrich()

	rec := models.ChatLog{
		UserMessage:          userText,
		AssistantMessage:     assistantText,
		DeviceType:           enrichment.DeviceType,
		Country:              enrichment.Country,
		UserSentiment:        sentiment,
		AdMessage:            enrichment.AdMessage,
		AdCategory:           enrichment.AdCategory,
		AdClicked:            enrichment.AdClicked,
		ConversationCategory: category,
	}

	id, err := p.writer.InsertChatLog(ctx, rec)
	if err != nil {
		return models.ChatLog{}, err
	}
	rec.ID = id
	return rec, nil
}

// IngestBatch processes conversations independently: per-record failures
// (malformed input, validation at persistence) are collected in the
// result and never abort the rest of the batch. Only a store-level error
// stops processing, returned alongside the outcomes accumulated so far.
// There is no batch transaction; partial success is the expected outcome.
func (p *Pipeline) IngestBatch(ctx context.Context, convs []models.ConversationInput) (models.BatchResult, error) {
	result := models.BatchResult{Attempted: len(convs)}

	for i, conv := range convs {
		_, err := p.IngestOne(ctx, conv)
		if err == nil {
			result.Succeeded++
			continue
		}

		var ve *models.ValidationError
		if errors.Is(err, ErrMalformedConversation) || errors.As(err, &ve) {
			result.Failed++
			result.Failures = append(result.Failures, models.RecordFailure{
				Index:          i,
				ConversationID: conv.ID,
				Reason:         err.Error(),
			})
			continue
		}

		// Infrastructure fault: records past this point have an unknown
		// outcome and are not counted either way.
		return result, fmt.Errorf("ingestion aborted at record %d: %w", i, err)
	}

	return result, nil
}
