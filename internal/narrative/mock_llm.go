package narrative

import (
	"context"
	"fmt"
	"strings"
)

// MockLLM is a deterministic LLM implementation for testing.
// It returns predictable responses based on prompt content.
type MockLLM struct {
	// Response is the fixed text returned by Generate.
	// If empty, a default response is generated from the prompt.
	Response string

	// Error, if set, is returned by Generate instead of a response.
	Error error

	// LastPrompt stores the most recent prompt passed to Generate.
	LastPrompt string

	// Calls counts Generate invocations.
	Calls int
}

// NewMockLLM creates a mock LLM with the given fixed response.
func NewMockLLM(response string) *MockLLM {
	return &MockLLM{Response: response}
}

// NewMockLLMWithError creates a mock LLM that always returns an error.
func NewMockLLMWithError(err error) *MockLLM {
	return &MockLLM{Error: err}
}

// Generate returns the configured response or generates a deterministic one.
func (m *MockLLM) Generate(ctx context.Context, prompt string) (string, error) {
	m.LastPrompt = prompt
	m.Calls++

	if m.Error != nil {
		return "", m.Error
	}

	if m.Response != "" {
		return m.Response, nil
	}

	return generateMockResponse(prompt), nil
}

// generateMockResponse echoes the labelled fields of a historian prompt.
func generateMockResponse(prompt string) string {
	event := labelValue(prompt, "Event:")
	year := labelValue(prompt, "Year:")
	if event == "" {
		event = "an unknown event"
	}
	if year == "" {
		year = "an unknown year"
	}

	figures := labelValue(prompt, "Key Figures:")
	count := 0
	if figures != "" {
		count = len(strings.Split(figures, ", "))
	}

	return fmt.Sprintf("%s happened in %s and involved %d key figures. It remains a turning point worth remembering.",
		event, year, count)
}

// labelValue returns the trimmed text after label on the first line containing it.
func labelValue(prompt, label string) string {
	for _, line := range strings.Split(prompt, "\n") {
		if idx := strings.Index(line, label); idx >= 0 {
			return strings.TrimSpace(line[idx+len(label):])
		}
	}
	return ""
}
