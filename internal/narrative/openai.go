package narrative

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/shared"
)

// OpenAILLM implements the LLM interface against any OpenAI-compatible chat
// completions endpoint.
type OpenAILLM struct {
	client openai.Client
	config LLMConfig
}

// NewOpenAILLM creates an OpenAI-backed LLM implementation.
// The API key must be supplied in config; the environment is not consulted.
func NewOpenAILLM(config LLMConfig) (*OpenAILLM, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	opts := []option.RequestOption{
		option.WithAPIKey(config.APIKey),
		// Failures are reported to the user per question.
		option.WithMaxRetries(0),
	}
	if url := config.endpoint(); url != "" {
		opts = append(opts, option.WithBaseURL(url))
	}

	return &OpenAILLM{
		client: openai.NewClient(opts...),
		config: config,
	}, nil
}

// Generate sends the prompt and returns the generated text.
func (o *OpenAILLM) Generate(ctx context.Context, prompt string) (string, error) {
	if prompt == "" {
		return "", errors.Wrap(ErrInvalidConfig, "prompt cannot be empty")
	}

	params := openai.ChatCompletionNewParams{
		Model: shared.ChatModel(o.config.Model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
	}

	if o.config.Temperature > 0 {
		params.Temperature = openai.Float(float64(o.config.Temperature))
	}
	if o.config.MaxTokens > 0 {
		params.MaxTokens = openai.Int(int64(o.config.MaxTokens))
	}

	completion, err := o.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", errors.Mark(errors.Wrap(err, ErrLLMFailed.Error()), ErrLLMFailed)
	}

	if len(completion.Choices) == 0 {
		return "", errors.Wrap(ErrLLMFailed, "no response generated")
	}

	return completion.Choices[0].Message.Content, nil
}
