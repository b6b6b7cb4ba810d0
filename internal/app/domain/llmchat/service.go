package llmchat

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"

	"github.com/FACorreiaa/wanderai/internal/app/models"
	"github.com/FACorreiaa/wanderai/internal/app/observability/metrics"
)

const providerName = "gemini"

const (
	opItinerary    = "itinerary"
	opChat         = "chat"
	opPlaceDetails = "place_details"
	opPlaces       = "places"
	opQuickFacts   = "quick_facts"
)

var (
	itineraryOptions    = GenerateOptions{Operation: opItinerary, Temperature: 0.7, MaxOutputTokens: 8192}
	chatOptions         = GenerateOptions{Operation: opChat, Temperature: 0.8, MaxOutputTokens: 600}
	placeDetailsOptions = GenerateOptions{Operation: opPlaceDetails, Temperature: 0.6, MaxOutputTokens: 1024}
	placesOptions       = GenerateOptions{Operation: opPlaces, Temperature: 0.5, MaxOutputTokens: 4096}
	quickFactsOptions   = GenerateOptions{Operation: opQuickFacts, Temperature: 0.7, MaxOutputTokens: 512}
)

// Service turns travel requests into prompts and model output into typed
// results. Every operation makes exactly one model call and never retries.
type Service struct {
	gen    Generator
	logger *zap.Logger
}

func NewService(gen Generator, logger *zap.Logger) *Service {
	return &Service{gen: gen, logger: logger}
}

func providerError(message string, err error) error {
	return &models.ProviderError{Provider: providerName, Message: message, Err: err}
}

func (s *Service) recordParseFailure(ctx context.Context, op string, err error) {
	var pe *ParseError
	if errors.As(err, &pe) {
		s.logger.Warn("Could not extract JSON from model response",
			zap.String("operation", op),
			zap.String("raw", pe.Raw),
			zap.Error(pe.Err))
	}
	metrics.Get().ExtractionFailuresTotal.Add(ctx, 1,
		metric.WithAttributes(attribute.String("operation", op)))
}

// GenerateItinerary asks the model for a day-by-day plan and validates it.
func (s *Service) GenerateItinerary(ctx context.Context, req models.ItineraryRequest) (*models.Itinerary, error) {
	req.Destination = strings.TrimSpace(req.Destination)
	if req.Destination == "" {
		return nil, fmt.Errorf("%w: destination is required", models.ErrBadRequest)
	}
	if req.Days < 1 {
		return nil, fmt.Errorf("%w: days must be at least 1", models.ErrBadRequest)
	}
	if len(req.Interests) == 0 {
		req.Interests = []string{defaultInterest}
	}
	if strings.TrimSpace(req.TravelStyle) == "" {
		req.TravelStyle = defaultTravelStyle
	} else {
		req.TravelStyle = titleLabel(req.TravelStyle)
	}

	text, err := s.gen.Generate(ctx, getItineraryPrompt(req), itineraryOptions)
	if err != nil {
		return nil, providerError("Failed to generate itinerary. Please try again.", err)
	}

	itinerary, err := Extract[models.Itinerary](text)
	if err != nil {
		s.recordParseFailure(ctx, opItinerary, err)
		return nil, err
	}
	if err := ValidateItinerary(&itinerary, req.Days); err != nil {
		s.logger.Warn("Model returned an invalid itinerary",
			zap.String("destination", req.Destination),
			zap.Error(err))
		return nil, err
	}

	s.logger.Info("Itinerary generated",
		zap.String("destination", itinerary.Destination),
		zap.Int("days", len(itinerary.Itinerary)))
	return &itinerary, nil
}

// Chat answers the last message of a conversation. Earlier messages are sent
// as history; a leading assistant message such as the greeting is dropped
// because the model expects the history to open with a user turn.
func (s *Service) Chat(ctx context.Context, messages []models.ChatMessage, destination, country string) (string, error) {
	if len(messages) == 0 {
		return "", fmt.Errorf("%w: at least one message is required", models.ErrBadRequest)
	}
	last := messages[len(messages)-1]
	if last.Role != models.RoleUser || strings.TrimSpace(last.Content) == "" {
		return "", fmt.Errorf("%w: the last message must be a non-empty user message", models.ErrBadRequest)
	}
	for i, m := range messages {
		if !m.Role.Valid() {
			return "", fmt.Errorf("%w: message %d has unknown role %q", models.ErrBadRequest, i, m.Role)
		}
	}

	history := chatHistory(messages)
	opts := chatOptions
	opts.SystemInstruction = getChatSystemInstruction(destination, country)

	reply, err := s.gen.Chat(ctx, history, last.Content, opts)
	if err != nil {
		return "", providerError("Chat unavailable. Please try again.", err)
	}
	if strings.TrimSpace(reply) == "" {
		return "", providerError("Chat unavailable. Please try again.", errors.New("empty reply"))
	}
	return reply, nil
}

// chatHistory returns every message but the last, without a leading
// assistant message.
func chatHistory(messages []models.ChatMessage) []models.ChatMessage {
	history := messages[:len(messages)-1]
	if len(history) > 0 && history[0].Role != models.RoleUser {
		history = history[1:]
	}
	out := make([]models.ChatMessage, len(history))
	copy(out, history)
	return out
}

// GetPlaceDetails describes a single well-known place.
func (s *Service) GetPlaceDetails(ctx context.Context, name, category string) (*models.PlaceDetail, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: place name is required", models.ErrBadRequest)
	}

	text, err := s.gen.Generate(ctx, getPlaceDetailsPrompt(name, category), placeDetailsOptions)
	if err != nil {
		return nil, providerError("Failed to load place details. Please try again.", err)
	}

	detail, err := Extract[models.PlaceDetail](text)
	if err != nil {
		s.recordParseFailure(ctx, opPlaceDetails, err)
		return nil, err
	}
	if err := ValidatePlaceDetail(&detail); err != nil {
		return nil, err
	}
	return &detail, nil
}

// ListPlaces lists famous places of a category, optionally within a region.
// Each result carries the requested category.
func (s *Service) ListPlaces(ctx context.Context, category, region string) ([]models.PlaceSummary, error) {
	category = strings.TrimSpace(category)
	if category == "" {
		return nil, fmt.Errorf("%w: category is required", models.ErrBadRequest)
	}

	text, err := s.gen.Generate(ctx, getPlacesPrompt(category, region), placesOptions)
	if err != nil {
		return nil, providerError("Failed to load places. Please try again.", err)
	}

	places, err := Extract[[]models.PlaceSummary](text)
	if err != nil {
		s.recordParseFailure(ctx, opPlaces, err)
		return nil, err
	}
	for i := range places {
		places[i].Category = category
	}
	return places, nil
}

// QuickFacts returns short travel facts about a destination. It never fails:
// any provider or parse problem yields an empty list.
func (s *Service) QuickFacts(ctx context.Context, destination, country string) []string {
	text, err := s.gen.Generate(ctx, getQuickFactsPrompt(destination, country), quickFactsOptions)
	if err != nil {
		s.logger.Warn("Quick facts unavailable",
			zap.String("destination", destination),
			zap.Error(err))
		return []string{}
	}

	facts, err := Extract[[]string](text)
	if err != nil {
		s.recordParseFailure(ctx, opQuickFacts, err)
		return []string{}
	}
	if facts == nil {
		return []string{}
	}
	return facts
}
