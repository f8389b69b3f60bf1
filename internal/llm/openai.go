package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"

	"echolens/internal/logger"
	"echolens/internal/models"
)

const (
	defaultModel   = "gpt-4.1"
	requestTimeout = 60 * time.Second
)

const systemPrompt = "You are the mission narrator of an exoplanet hunting console. " +
	"Write a short, vivid mission briefing in markdown for the candidate described by the user. " +
	"Start with a level-one heading, keep it under 200 words, quote the numbers you are given " +
	"and never invent measurements."

// OpenAIClient writes mission briefings with the chat completion API
type OpenAIClient struct {
	client *openai.Client
	model  string
	log    *logger.Logger
}

// NewOpenAIClient creates a new OpenAI client
func NewOpenAIClient(apiKey, model string) *OpenAIClient {
	return NewOpenAIClientWithConfig(openai.DefaultConfig(apiKey), model)
}

// NewOpenAIClientWithConfig creates a client for a custom endpoint
func NewOpenAIClientWithConfig(cfg openai.ClientConfig, model string) *OpenAIClient {
	if model == "" {
		model = defaultModel
	}
	return &OpenAIClient{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
		log:    logger.GetGlobalLogger().WithComponent("llm"),
	}
}

// Briefing generates the markdown briefing for a hunt
func (c *OpenAIClient) Briefing(ctx context.Context, rec models.HuntRecord) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: BuildPrompt(rec)},
		},
		MaxTokens:   600,
		Temperature: 0.7,
	})
	if err != nil {
		return "", fmt.Errorf("OpenAI API error: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response from OpenAI")
	}

	briefing := strings.TrimSpace(resp.Choices[0].Message.Content)
	if briefing == "" {
		return "", fmt.Errorf("empty response from OpenAI")
	}
	c.log.Infof("Generated briefing for %s with %d characters", rec.SystemID, len(briefing))
	return briefing, nil
}

// BuildPrompt lays out the request parameters and the classifier result as JSON
func BuildPrompt(rec models.HuntRecord) string {
	var b strings.Builder
	fmt.Fprintf(&b, "## Hunt for %s (%s)\n\n", rec.Request.Name, rec.Timestamp.UTC().Format("2006-01-02 15:04 UTC"))

	b.WriteString("### Star system parameters\n```json\n")
	if data, err := json.MarshalIndent(rec.Request, "", "  "); err == nil {
		b.Write(data)
	}
	b.WriteString("\n```\n\n")

	// the light curve is long and adds nothing a narrator can use
	result := rec.Result
	result.LightCurve = nil
	b.WriteString("### Classifier result\n```json\n")
	if data, err := json.MarshalIndent(result, "", "  "); err == nil {
		b.Write(data)
	}
	b.WriteString("\n```\n")

	return b.String()
}
