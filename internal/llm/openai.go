package llm

import (
	"context"

	"github.com/pkg/errors"
	openai "github.com/sashabaranov/go-openai"
)

// Generation limits applied to every request. Deliberately not configurable
// per call.
const (
	maxOutputTokens = 1024
	topP            = 0.95
)

// OpenAIClient implements Client against an OpenAI-compatible completion API.
type OpenAIClient struct {
	client *openai.Client
	model  string
}

// NewOpenAIClient instantiates and returns a new client.
func NewOpenAIClient(apiKey, apiHost, model string) *OpenAIClient {
	openAIConfig := openai.DefaultConfig(apiKey)
	if apiHost != "" {
		openAIConfig.BaseURL = apiHost
	}
	return &OpenAIClient{
		client: openai.NewClientWithConfig(openAIConfig),
		model:  model,
	}
}

// CreateTextGeneration sends the ordered message history and returns the
// reply text. Network failure, an API error payload and a malformed reply all
// surface as a single wrapped error.
func (c *OpenAIClient) CreateTextGeneration(ctx context.Context, request *CreateTextGenerationRequest) (string, error) {
	messages := make([]openai.ChatCompletionMessage, 0, len(request.Messages))
	for _, message := range request.Messages {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    externalRole(message.Role),
			Content: message.Content,
		})
	}
	openAIRequest := openai.ChatCompletionRequest{
		Model:       c.model,
		Messages:    messages,
		Temperature: request.Temperature,
		TopP:        topP,
		MaxTokens:   maxOutputTokens,
	}
	response, err := c.client.CreateChatCompletion(ctx, openAIRequest)
	if err != nil {
		return "", errors.Wrap(err, "creating chat completion")
	}
	if len(response.Choices) == 0 {
		return "", errors.Errorf("chat completion returned no choice: %+v", response)
	}
	content := response.Choices[0].Message.Content
	if content == "" {
		return "", errors.New("chat completion returned an empty message")
	}
	return content, nil
}

// externalRole maps an internal role to the provider's label.
func externalRole(role string) string {
	switch role {
	case RoleAssistant:
		return openai.ChatMessageRoleAssistant
	default:
		return openai.ChatMessageRoleUser
	}
}
