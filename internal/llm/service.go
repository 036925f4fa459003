// Package llm wraps the OpenAI chat completions API behind the two call
// shapes the agent needs, with OpenTelemetry instrumentation on every call.
package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/shared"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"zorkagent/internal/debug"
	"zorkagent/internal/observability"
)

// Context keys for operation tracing
type contextKey string

const (
	operationTypeKey contextKey = "operation_type"
	agentContextKey  contextKey = "agent_context"
)

const defaultModel = "gpt-5-2025-08-07"

type Service struct {
	client *openai.Client
	model  string
	debug  *debug.Logger
	tracer trace.Tracer
}

func NewService(apiKey string, dbg *debug.Logger) *Service {
	client := openai.NewClient(option.WithAPIKey(apiKey))
	return &Service{
		client: &client,
		model:  defaultModel,
		debug:  dbg,
		tracer: otel.Tracer("llm-service"),
	}
}

type TextCompletionRequest struct {
	SystemPrompt    string
	UserPrompt      string
	MaxTokens       int
	Model           string // optional override
	ReasoningEffort string // optional: minimal, low, medium, high
}

type JSONCompletionRequest struct {
	SystemPrompt    string
	UserPrompt      string
	MaxTokens       int
	Model           string // optional override
	ReasoningEffort string // optional: minimal, low, medium, high
}

func (s *Service) CompleteText(ctx context.Context, req TextCompletionRequest) (string, error) {
	return s.complete(ctx, completion{
		defaultOperation: "text_completion",
		systemPrompt:     req.SystemPrompt,
		userPrompt:       req.UserPrompt,
		maxTokens:        req.MaxTokens,
		model:            req.Model,
		reasoningEffort:  req.ReasoningEffort,
		format:           "text",
	})
}

func (s *Service) CompleteJSON(ctx context.Context, req JSONCompletionRequest) (string, error) {
	return s.complete(ctx, completion{
		defaultOperation: "json_completion",
		systemPrompt:     req.SystemPrompt,
		userPrompt:       req.UserPrompt,
		maxTokens:        req.MaxTokens,
		model:            req.Model,
		reasoningEffort:  req.ReasoningEffort,
		format:           "json",
	})
}

type completion struct {
	defaultOperation string
	systemPrompt     string
	userPrompt       string
	maxTokens        int
	model            string
	reasoningEffort  string
	format           string // "text" or "json"
}

func (s *Service) complete(ctx context.Context, c completion) (string, error) {
	operationType := c.defaultOperation
	if opType := getOperationType(ctx); opType != "" {
		operationType = opType
	}

	sc := trace.SpanFromContext(ctx).SpanContext()
	if s.debug != nil {
		if !sc.IsValid() {
			s.debug.Printf("NO PARENT: ctx missing active span for %s", operationType)
		} else {
			s.debug.Printf("complete trace=%s parentSpan=%s op=%s", sc.TraceID(), sc.SpanID(), operationType)
		}
	}

	model := s.model
	if strings.TrimSpace(c.model) != "" {
		model = c.model
	}

	ctx, span := s.tracer.Start(ctx, operationType,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			observability.CreateGenAIAttributes("openai", model)...,
		),
	)
	defer span.End()

	attrs := []attribute.KeyValue{
		attribute.Int("gen_ai.request.max_tokens", c.maxTokens),
		attribute.String("langfuse.observation.type", "generation"),
		attribute.String("response_format", c.format),
		attribute.String("agent.operation_type", operationType),
	}
	if sessionID := getSessionID(ctx); sessionID != "" {
		attrs = append(attrs,
			attribute.String("langfuse.session.id", sessionID),
			attribute.String("session.id", sessionID),
		)
	}
	attrs = append(attrs, agentContextAttributes(ctx)...)
	span.SetAttributes(attrs...)

	span.AddEvent("gen_ai.user.message", trace.WithAttributes(
		attribute.String("gen_ai.system", "openai"),
		attribute.String("content", c.userPrompt),
	))

	openaiReq := openai.ChatCompletionNewParams{
		Model: shared.ChatModel(model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(c.systemPrompt),
			openai.UserMessage(c.userPrompt),
		},
		MaxCompletionTokens: openai.Int(int64(c.maxTokens)),
	}
	if c.format == "json" {
		openaiReq.ResponseFormat = openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONObject: func() *shared.ResponseFormatJSONObjectParam {
				p := shared.NewResponseFormatJSONObjectParam()
				return &p
			}(),
		}
	}
	if c.reasoningEffort != "" {
		openaiReq.ReasoningEffort = shared.ReasoningEffort(c.reasoningEffort)
	}

	if s.debug != nil {
		s.debug.Printf("LLM %s - MaxTokens: %d, SystemPrompt length: %d", operationType, c.maxTokens, len(c.systemPrompt))
	}

	startTime := time.Now()
	resp, err := s.client.Chat.Completions.New(ctx, openaiReq)
	if err != nil {
		span.SetAttributes(attribute.String("error.type", "llm_completion_error"))
		span.RecordError(err)
		if s.debug != nil {
			s.debug.Printf("LLM %s error: %v", operationType, err)
		}
		return "", fmt.Errorf("%s failed: %w", operationType, err)
	}

	if len(resp.Choices) == 0 {
		err := fmt.Errorf("no completion choices returned")
		span.RecordError(err)
		return "", err
	}

	content := resp.Choices[0].Message.Content
	duration := time.Since(startTime)

	if s.debug != nil {
		s.debug.Printf("LLM %s response: content=%q, finish_reason=%s, tokens: %d/%d, duration: %v",
			operationType, content, resp.Choices[0].FinishReason,
			resp.Usage.PromptTokens, resp.Usage.CompletionTokens, duration)
	}

	span.SetAttributes(
		attribute.Int64("gen_ai.usage.input_tokens", resp.Usage.PromptTokens),
		attribute.Int64("gen_ai.usage.output_tokens", resp.Usage.CompletionTokens),
		attribute.Int64("response_time_ms", duration.Milliseconds()),
		attribute.String("langfuse.observation.input", c.systemPrompt+"\n\n"+c.userPrompt),
		attribute.String("langfuse.observation.output", content),
		attribute.String("langfuse.observation.output_format", c.format),
		attribute.String("langfuse.observation.model.name", model),
	)
	span.AddEvent("gen_ai.choice", trace.WithAttributes(
		attribute.String("gen_ai.system", "openai"),
		attribute.String("content", content),
	))

	return content, nil
}

func WithOperationType(ctx context.Context, opType string) context.Context {
	return context.WithValue(ctx, operationTypeKey, opType)
}

// WithAgentContext attaches key/value pairs that every span under this
// context will carry as "agent."-prefixed attributes. Merges with any
// existing agent context instead of overwriting.
func WithAgentContext(ctx context.Context, agentCtx map[string]interface{}) context.Context {
	if existing, ok := ctx.Value(agentContextKey).(map[string]interface{}); ok && existing != nil {
		merged := make(map[string]interface{}, len(existing)+len(agentCtx))
		for k, v := range existing {
			merged[k] = v
		}
		for k, v := range agentCtx {
			merged[k] = v
		}
		return context.WithValue(ctx, agentContextKey, merged)
	}
	return context.WithValue(ctx, agentContextKey, agentCtx)
}

func WithSessionID(ctx context.Context, sessionID string) context.Context {
	return context.WithValue(ctx, observability.GetSessionIDKey(), sessionID)
}

func getOperationType(ctx context.Context) string {
	if opType, ok := ctx.Value(operationTypeKey).(string); ok {
		return opType
	}
	return ""
}

func getSessionID(ctx context.Context) string {
	return observability.GetSessionIDFromContext(ctx)
}

func agentContextAttributes(ctx context.Context) []attribute.KeyValue {
	agentCtx, ok := ctx.Value(agentContextKey).(map[string]interface{})
	if !ok || agentCtx == nil {
		return nil
	}
	var attrs []attribute.KeyValue
	for k, v := range agentCtx {
		switch val := v.(type) {
		case string:
			attrs = append(attrs, attribute.String("agent."+k, val))
		case int:
			attrs = append(attrs, attribute.Int("agent."+k, val))
		case []string:
			attrs = append(attrs, attribute.StringSlice("agent."+k, val))
		}
	}
	return attrs
}
