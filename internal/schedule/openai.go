package schedule

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

// Extractor turns multimodal content into a RawEvent. One attempt, no
// retries; transient upstream failures propagate to the caller.
type Extractor interface {
	Extract(ctx context.Context, parts []Part, currentTime string) (RawEvent, error)
}

// The system turn pins the current time, the assistant persona, the exact
// field set, the date format, and the leave-blank-don't-guess rule.
const systemInstructionFormat = "The current time is %s. " +
	"You are a scheduling assistant. Extract event details from the user's text or image. " +
	"Respond with a single JSON object with exactly these fields: " +
	"summary, location, description, start_time, end_time. " +
	"Dates use ISO 8601 format (YYYY-MM-DDTHH:MM:SS). " +
	"Leave fields you cannot determine as empty strings; never guess."

// AzureExtractorConfig configures the Azure OpenAI chat-completions client.
type AzureExtractorConfig struct {
	Endpoint   string
	APIKey     string
	Deployment string
	APIVersion string
	MaxTokens  int
}

// AzureExtractor calls an Azure OpenAI vision deployment with a JSON-object
// response constraint.
type AzureExtractor struct {
	client     *openai.Client
	deployment string
	maxTokens  int
}

func NewAzureExtractor(cfg AzureExtractorConfig) *AzureExtractor {
	clientCfg := openai.DefaultAzureConfig(cfg.APIKey, cfg.Endpoint)
	if cfg.APIVersion != "" {
		clientCfg.APIVersion = cfg.APIVersion
	}
	deployment := cfg.Deployment
	clientCfg.AzureModelMapperFunc = func(string) string { return deployment }

	return &AzureExtractor{
		client:     openai.NewClientWithConfig(clientCfg),
		deployment: cfg.Deployment,
		maxTokens:  cfg.MaxTokens,
	}
}

// Extract sends one system turn plus one user turn carrying the parts in
// order, and parses the constrained JSON answer.
func (e *AzureExtractor) Extract(ctx context.Context, parts []Part, currentTime string) (RawEvent, error) {
	content := make([]openai.ChatMessagePart, 0, len(parts))
	for _, part := range parts {
		if part.InlineData != nil {
			content = append(content, openai.ChatMessagePart{
				Type: openai.ChatMessagePartTypeImageURL,
				ImageURL: &openai.ChatMessageImageURL{
					URL: fmt.Sprintf("data:%s;base64,%s", part.InlineData.MimeType, part.InlineData.Data),
				},
			})
			continue
		}
		content = append(content, openai.ChatMessagePart{
			Type: openai.ChatMessagePartTypeText,
			Text: part.Text,
		})
	}

	resp, err := e.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: e.deployment,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: fmt.Sprintf(systemInstructionFormat, currentTime),
			},
			{
				Role:         openai.ChatMessageRoleUser,
				MultiContent: content,
			},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		MaxTokens: e.maxTokens,
	})
	if err != nil {
		return RawEvent{}, fmt.Errorf("%w: chat completion: %v", ErrUpstream, err)
	}
	if len(resp.Choices) == 0 {
		return RawEvent{}, fmt.Errorf("%w: completion returned no choices", ErrMalformedExtraction)
	}

	var raw RawEvent
	answer := strings.TrimSpace(resp.Choices[0].Message.Content)
	if err := json.Unmarshal([]byte(answer), &raw); err != nil {
		return RawEvent{}, fmt.Errorf("%w: %v", ErrMalformedExtraction, err)
	}
	return raw, nil
}
