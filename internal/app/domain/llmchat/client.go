package llmchat

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/FACorreiaa/wanderai/internal/app/models"
	"github.com/FACorreiaa/wanderai/internal/app/observability/metrics"
)

const DefaultModel = "gemini-1.5-flash"

// GenerateOptions are the per-call sampling settings.
type GenerateOptions struct {
	Operation         string
	Temperature       float32
	MaxOutputTokens   int32
	SystemInstruction string
}

// Generator is the text generation capability the service depends on.
type Generator interface {
	// Generate sends a single prompt and returns the response text.
	Generate(ctx context.Context, prompt string, opts GenerateOptions) (string, error)
	// Chat replays history as prior turns and sends message as the new turn.
	Chat(ctx context.Context, history []models.ChatMessage, message string, opts GenerateOptions) (string, error)
}

// LLMClient is a Generator backed by the Gemini API.
type LLMClient struct {
	client *genai.Client
	model  string
	logger *zap.Logger
}

var _ Generator = (*LLMClient)(nil)

func NewLLMClient(ctx context.Context, apiKey, model string, logger *zap.Logger) (*LLMClient, error) {
	ctx, span := otel.Tracer("GenerativeAI").Start(ctx, "NewLLMClient")
	defer span.End()

	if apiKey == "" {
		err := errors.New("gemini API key is not set")
		span.RecordError(err)
		span.SetStatus(codes.Error, "API key not set")
		return nil, err
	}
	if model == "" {
		model = DefaultModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to create Gemini client")
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	span.SetStatus(codes.Ok, "AI client created successfully")
	return &LLMClient{client: client, model: model, logger: logger}, nil
}

func (c *LLMClient) config(opts GenerateOptions) *genai.GenerateContentConfig {
	cfg := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(opts.Temperature),
		MaxOutputTokens: opts.MaxOutputTokens,
	}
	if opts.SystemInstruction != "" {
		cfg.SystemInstruction = genai.NewContentFromText(opts.SystemInstruction, genai.RoleUser)
	}
	return cfg
}

func (c *LLMClient) Generate(ctx context.Context, prompt string, opts GenerateOptions) (text string, err error) {
	ctx, span := otel.Tracer("GenerativeAI").Start(ctx, "GenerateContent", trace.WithAttributes(
		attribute.Int("prompt.length", len(prompt)),
		attribute.String("model", c.model),
		attribute.String("operation", opts.Operation),
	))
	defer span.End()
	defer c.observe(ctx, span, opts.Operation, time.Now(), &err)

	result, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), c.config(opts))
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}

	text = result.Text()
	span.SetAttributes(attribute.Int("response.length", len(text)))
	return text, nil
}

func (c *LLMClient) Chat(ctx context.Context, history []models.ChatMessage, message string, opts GenerateOptions) (text string, err error) {
	ctx, span := otel.Tracer("GenerativeAI").Start(ctx, "SendMessage", trace.WithAttributes(
		attribute.Int("message.length", len(message)),
		attribute.Int("history.length", len(history)),
		attribute.String("model", c.model),
		attribute.String("operation", opts.Operation),
	))
	defer span.End()
	defer c.observe(ctx, span, opts.Operation, time.Now(), &err)

	chat, err := c.client.Chats.Create(ctx, c.model, c.config(opts), toContents(history))
	if err != nil {
		return "", fmt.Errorf("create chat: %w", err)
	}

	result, err := chat.SendMessage(ctx, genai.Part{Text: message})
	if err != nil {
		return "", fmt.Errorf("send message: %w", err)
	}

	text = result.Text()
	span.SetAttributes(attribute.Int("response.length", len(text)))
	return text, nil
}

func (c *LLMClient) observe(ctx context.Context, span trace.Span, operation string, start time.Time, errp *error) {
	outcome := "success"
	if err := *errp; err != nil {
		outcome = "error"
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		c.logger.Warn("Model call failed", zap.String("operation", operation), zap.Error(err))
	} else {
		span.SetStatus(codes.Ok, "Content generated successfully")
	}
	attrs := metric.WithAttributes(
		attribute.String("operation", operation),
		attribute.String("outcome", outcome),
	)
	m := metrics.Get()
	m.LLMRequestsTotal.Add(ctx, 1, attrs)
	m.LLMRequestDuration.Record(ctx, time.Since(start).Seconds(), attrs)
}

// toContents maps chat messages onto the model's two roles: user turns stay
// user, assistant turns become model.
func toContents(history []models.ChatMessage) []*genai.Content {
	contents := make([]*genai.Content, 0, len(history))
	for _, m := range history {
		role := genai.Role(genai.RoleModel)
		if m.Role == models.RoleUser {
			role = genai.Role(genai.RoleUser)
		}
		contents = append(contents, genai.NewContentFromText(m.Content, role))
	}
	return contents
}
