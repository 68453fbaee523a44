package infrastructure

import (
	"context"
	"os"

	openai "github.com/sashabaranov/go-openai"
	"github.com/sirupsen/logrus"
)

const (
	defaultLLMModel = "llama-3.1-8b-instant"
	groqBaseURL     = "https://api.groq.com/openai/v1"

	// Low temperature keeps structuring output close to deterministic.
	llmTemperature = 0.1
	llmMaxTokens   = 3000
)

// GroqClient talks to the Groq OpenAI-compatible completion endpoint. It is
// an unreliable dependency: slow, occasionally malformed despite JSON mode,
// and rate-limited. Callers own throttling and error policy.
type GroqClient struct {
	client *openai.Client
	model  string
}

// NewGroqClient reads GROQ_API_KEY (and optionally GROQ_MODEL, GROQ_BASE_URL)
// from the environment.
func NewGroqClient() *GroqClient {
	apiKey := os.Getenv("GROQ_API_KEY")
	if apiKey == "" {
		logrus.Fatal("GROQ_API_KEY is not set in environment")
	}

	cfg := openai.DefaultConfig(apiKey)
	cfg.BaseURL = groqBaseURL
	if base := os.Getenv("GROQ_BASE_URL"); base != "" {
		cfg.BaseURL = base
	}

	model := os.Getenv("GROQ_MODEL")
	if model == "" {
		model = defaultLLMModel
	}

	return &GroqClient{client: openai.NewClientWithConfig(cfg), model: model}
}

// Complete sends one chat completion. With jsonMode the provider is asked for
// a strict JSON object, though the response may still need repair.
func (g *GroqClient) Complete(ctx context.Context, systemPrompt, userPrompt string, jsonMode bool) (string, error) {
	req := openai.ChatCompletionRequest{
		Model:       g.model,
		Temperature: llmTemperature,
		MaxTokens:   llmMaxTokens,
	}
	if jsonMode {
		req.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		}
	}
	if systemPrompt != "" {
		req.Messages = append(req.Messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: systemPrompt,
		})
	}
	req.Messages = append(req.Messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: userPrompt,
	})

	resp, err := g.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", &openai.APIError{Message: "empty response from model"}
	}

	logrus.WithFields(logrus.Fields{
		"model":             g.model,
		"prompt_tokens":     resp.Usage.PromptTokens,
		"completion_tokens": resp.Usage.CompletionTokens,
	}).Debug("LLM call")

	return resp.Choices[0].Message.Content, nil
}
