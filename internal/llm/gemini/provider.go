package gemini

import (
	"context"
	"fmt"

	"github.com/google/generative-ai-go/genai"
	"github.com/nmehta6/shopassist/internal/llm"
	"google.golang.org/api/option"
)

const defaultModel = "gemini-2.0-flash"

// Provider talks to Google Gemini
type Provider struct {
	apiKey string
	model  string
}

// NewProvider creates a Gemini provider. An empty model selects the default.
func NewProvider(apiKey, model string) *Provider {
	return &Provider{apiKey: apiKey, model: model}
}

func (p *Provider) Name() string {
	return "gemini"
}

func (p *Provider) IsConfigured() bool {
	return p.apiKey != ""
}

// Chat submits the conversation history and the new message to Gemini and
// returns the raw response text.
func (p *Provider) Chat(ctx context.Context, history []llm.Message, message string) (string, error) {
	if !p.IsConfigured() {
		return "", fmt.Errorf("gemini provider is not configured (missing API key)")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(p.apiKey))
	if err != nil {
		return "", fmt.Errorf("failed to create gemini client: %w", err)
	}
	defer client.Close()

	name := p.model
	if name == "" {
		name = defaultModel
	}

	model := client.GenerativeModel(name)
	var temperature float32 = 0.7
	model.Temperature = &temperature
	var maxTokens int32 = 1000
	model.MaxOutputTokens = &maxTokens

	chat := model.StartChat()
	chat.History = make([]*genai.Content, 0, len(history))
	for _, msg := range history {
		chat.History = append(chat.History, &genai.Content{
			Role:  msg.Role,
			Parts: []genai.Part{genai.Text(msg.Content)},
		})
	}

	resp, err := chat.SendMessage(ctx, genai.Text(message))
	if err != nil {
		return "", fmt.Errorf("gemini generation error: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("empty response from gemini")
	}

	var output string
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			output += string(text)
		}
	}

	return output, nil
}
