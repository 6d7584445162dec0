package translate

import (
	"context"
	"fmt"
	"os"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

const translatePrompt = "You are a Norwegian-to-English dictionary. " +
	"Reply with only the English translation of the given Norwegian word, nothing else."

// OpenAIRemote resolves glosses through an OpenAI-compatible chat API.
type OpenAIRemote struct {
	client *openai.Client
	model  string
}

// NewOpenAIRemote creates the chat-backed remote.
func NewOpenAIRemote(apiKey, baseURL, model string) (*OpenAIRemote, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("openai API key is required")
	}
	config := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = baseURL
	}
	if model == "" {
		model = openai.GPT4oMini
	}
	return &OpenAIRemote{
		client: openai.NewClientWithConfig(config),
		model:  model,
	}, nil
}

func (o *OpenAIRemote) Lookup(ctx context.Context, word string) (string, error) {
	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: o.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: translatePrompt},
			{Role: openai.ChatMessageRoleUser, Content: word},
		},
		MaxTokens:   32,
		Temperature: 0,
	})
	if err != nil {
		return "", fmt.Errorf("chat translate: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("chat translate: empty response")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// NewRemoteFromEnv picks a remote backend from the environment:
// DIKTAT_OPENAI_API_KEY selects the chat backend, otherwise the keyless
// gtx endpoint is used. DIKTAT_OFFLINE=1 disables remote lookups.
func NewRemoteFromEnv() Remote {
	if os.Getenv("DIKTAT_OFFLINE") == "1" {
		return nil
	}
	if key := os.Getenv("DIKTAT_OPENAI_API_KEY"); key != "" {
		remote, err := NewOpenAIRemote(key, os.Getenv("DIKTAT_OPENAI_BASE_URL"), os.Getenv("DIKTAT_OPENAI_MODEL"))
		if err == nil {
			return remote
		}
	}
	return NewGoogleRemote()
}
