package narrative

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"
)

var (
	ErrGenerationFailed = errors.New("narrative generation failed")
)

// Narrative is a generated answer about one historical event.
type Narrative struct {
	// Event is the title of the record the answer is grounded on
	Event string `json:"event"`

	// Text is the generated answer
	Text string `json:"text"`

	// GeneratedAt is when this narrative was created
	GeneratedAt time.Time `json:"generated_at"`

	// Model is the LLM model used to generate this narrative
	Model string `json:"model"`
}

// Generator invokes an LLM on an already-assembled prompt.
type Generator struct {
	llm    LLM
	config LLMConfig
}

// NewGenerator creates a narrative generator with the given LLM implementation.
func NewGenerator(llm LLM, config LLMConfig) *Generator {
	return &Generator{
		llm:    llm,
		config: config,
	}
}

// Generate asks the LLM to answer prompt, which concerns event.
// It must not perform retrieval or prompt construction.
func (g *Generator) Generate(ctx context.Context, event string, prompt string) (*Narrative, error) {
	if g.llm == nil {
		return nil, errors.Wrap(ErrGenerationFailed, "LLM is required")
	}
	if prompt == "" {
		return nil, errors.Wrap(ErrGenerationFailed, "prompt is required")
	}

	text, err := g.llm.Generate(ctx, prompt)
	if err != nil {
		return nil, errors.Mark(errors.Wrap(err, "LLM invocation failed"), ErrGenerationFailed)
	}

	return &Narrative{
		Event:       event,
		Text:        text,
		GeneratedAt: time.Now(),
		Model:       g.config.Model,
	}, nil
}
