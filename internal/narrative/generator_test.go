package narrative

import (
	"context"
	"strings"
	"testing"

	"github.com/cockroachdb/errors"

	"github.com/Yates-Labs/historian/internal/history"
)

func moonLanding() history.Record {
	return history.Record{
		Event:       "Moon Landing",
		Year:        "1969",
		Description: "Apollo 11 landed on the moon.",
		KeyFigures:  []string{"Neil Armstrong", "Buzz Aldrin"},
	}
}

func TestGenerator_Generate_Success(t *testing.T) {
	mockLLM := NewMockLLM("Two astronauts walked on the moon in July 1969.")
	config := DefaultLLMConfig()
	config.Model = "test-model"

	gen := NewGenerator(mockLLM, config)

	prompt, err := AssemblePrompt(moonLanding(), "moon landing")
	if err != nil {
		t.Fatalf("unexpected prompt assembly error: %v", err)
	}

	narrative, err := gen.Generate(context.Background(), "Moon Landing", prompt)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if narrative == nil {
		t.Fatal("narrative is nil")
	}
	if narrative.Event != "Moon Landing" {
		t.Errorf("expected event Moon Landing, got %s", narrative.Event)
	}
	if narrative.Text != "Two astronauts walked on the moon in July 1969." {
		t.Errorf("unexpected narrative text: %s", narrative.Text)
	}
	if narrative.Model != "test-model" {
		t.Errorf("expected model test-model, got %s", narrative.Model)
	}
	if narrative.GeneratedAt.IsZero() {
		t.Error("generated timestamp is zero")
	}

	// Verify mock received the prompt
	if mockLLM.LastPrompt != prompt {
		t.Error("mock LLM did not receive the assembled prompt")
	}
	if mockLLM.Calls != 1 {
		t.Errorf("expected one LLM call, got %d", mockLLM.Calls)
	}
}

func TestGenerator_Generate_EmptyPrompt(t *testing.T) {
	mockLLM := NewMockLLM("test")
	gen := NewGenerator(mockLLM, DefaultLLMConfig())

	_, err := gen.Generate(context.Background(), "Moon Landing", "")
	if !errors.Is(err, ErrGenerationFailed) {
		t.Fatalf("expected ErrGenerationFailed, got %v", err)
	}
	if mockLLM.Calls != 0 {
		t.Error("LLM should not be called without a prompt")
	}
}

func TestGenerator_Generate_NilLLM(t *testing.T) {
	gen := NewGenerator(nil, DefaultLLMConfig())

	_, err := gen.Generate(context.Background(), "E", "prompt")
	if !errors.Is(err, ErrGenerationFailed) {
		t.Fatalf("expected ErrGenerationFailed, got %v", err)
	}
}

func TestGenerator_Generate_LLMError(t *testing.T) {
	llmErr := errors.New("API rate limit exceeded")
	gen := NewGenerator(NewMockLLMWithError(llmErr), DefaultLLMConfig())

	_, err := gen.Generate(context.Background(), "Moon Landing", "some prompt")
	if err == nil {
		t.Fatal("expected error from LLM")
	}
	if !errors.Is(err, ErrGenerationFailed) {
		t.Errorf("expected ErrGenerationFailed, got %v", err)
	}
	if !strings.Contains(err.Error(), "API rate limit exceeded") {
		t.Errorf("expected cause in message, got %v", err)
	}
}

func TestMockLLM_Generate(t *testing.T) {
	prompt, err := AssemblePrompt(moonLanding(), "moon landing")
	if err != nil {
		t.Fatalf("unexpected prompt assembly error: %v", err)
	}

	tests := []struct {
		name     string
		mock     *MockLLM
		prompt   string
		wantErr  bool
		wantText string
	}{
		{
			name:     "fixed response",
			mock:     NewMockLLM("Fixed narrative text"),
			prompt:   "Any prompt",
			wantText: "Fixed narrative text",
		},
		{
			name:    "error response",
			mock:    NewMockLLMWithError(errors.New("mock error")),
			prompt:  "Any prompt",
			wantErr: true,
		},
		{
			name:     "auto-generated response",
			mock:     &MockLLM{},
			prompt:   prompt,
			wantText: "Moon Landing happened in 1969 and involved 2 key figures.",
		},
		{
			name:     "auto-generated without fields",
			mock:     &MockLLM{},
			prompt:   "tell me something",
			wantText: "an unknown event happened in an unknown year and involved 0 key figures.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text, err := tt.mock.Generate(context.Background(), tt.prompt)

			if tt.wantErr {
				if err == nil {
					t.Error("expected error but got none")
				}
				return
			}

			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}

			if tt.wantText != "" && !strings.Contains(text, tt.wantText) {
				t.Errorf("expected text to contain %q, got %q", tt.wantText, text)
			}

			// Verify LastPrompt is stored
			if tt.mock.LastPrompt != tt.prompt {
				t.Errorf("expected LastPrompt to be %q, got %q", tt.prompt, tt.mock.LastPrompt)
			}
		})
	}
}

func TestNewGenerator(t *testing.T) {
	mockLLM := NewMockLLM("test")
	config := LLMConfig{
		Model:       "gpt-4o",
		Temperature: 0.5,
		MaxTokens:   1000,
	}

	gen := NewGenerator(mockLLM, config)

	if gen == nil {
		t.Fatal("generator is nil")
	}
	if gen.llm != mockLLM {
		t.Error("LLM not set correctly")
	}
	if gen.config.Model != "gpt-4o" {
		t.Errorf("expected model gpt-4o, got %s", gen.config.Model)
	}
}

func TestLLMConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		config  LLMConfig
		wantErr bool
	}{
		{"gemini", LLMConfig{Provider: ProviderGemini, Model: "gemini-2.0-flash", APIKey: "k"}, false},
		{"openai", LLMConfig{Provider: ProviderOpenAI, Model: "gpt-4o", APIKey: "k"}, false},
		{"custom endpoint", LLMConfig{Provider: "local", BaseURL: "http://localhost:11434/v1", Model: "llama3", APIKey: "k"}, false},
		{"unknown provider", LLMConfig{Provider: "local", Model: "llama3", APIKey: "k"}, true},
		{"no provider or url", LLMConfig{Model: "m", APIKey: "k"}, true},
		{"missing key", LLMConfig{Provider: ProviderGemini, Model: "m"}, true},
		{"missing model", LLMConfig{Provider: ProviderGemini, APIKey: "k"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidConfig) {
					t.Fatalf("expected ErrInvalidConfig, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestLLMConfig_Endpoint(t *testing.T) {
	if got := (LLMConfig{Provider: ProviderGemini}).endpoint(); got != GeminiBaseURL {
		t.Errorf("unexpected gemini endpoint: %s", got)
	}
	if got := (LLMConfig{Provider: ProviderOpenAI}).endpoint(); got != "" {
		t.Errorf("expected SDK default for openai, got %s", got)
	}
	if got := (LLMConfig{Provider: ProviderOpenAI, BaseURL: "http://x"}).endpoint(); got != "http://x" {
		t.Errorf("expected override, got %s", got)
	}
}

func TestNewOpenAILLM_RequiresKey(t *testing.T) {
	config := DefaultLLMConfig()
	t.Setenv("OPENAI_API_KEY", "from-env")

	if _, err := NewOpenAILLM(config); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig without an explicit key, got %v", err)
	}

	config.APIKey = "explicit"
	llm, err := NewOpenAILLM(config)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if llm.config.APIKey != "explicit" {
		t.Error("API key not carried into client config")
	}
}
