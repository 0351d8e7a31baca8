// Package orchestrator wires retrieval, prompt assembly and generation into
// the question-answering pipeline used by the CLI and the interactive session.
package orchestrator

import (
	"context"
	"time"

	"github.com/Yates-Labs/historian/internal/history"
	"github.com/Yates-Labs/historian/internal/narrative"
	"github.com/Yates-Labs/historian/internal/rag"
	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
)

// PipelineConfig holds tuning for the question-answering pipeline.
type PipelineConfig struct {
	// RequestTimeout bounds each model call (0 = no timeout)
	RequestTimeout time.Duration
}

// Answer is the outcome of asking one question.
type Answer struct {
	// Question is the user's input, verbatim
	Question string

	// Found reports whether a record matched the question
	Found bool

	// Record is the matched record; zero when Found is false
	Record history.Record

	// Fields are the prompt values that were sent to the model
	Fields narrative.PromptFields

	// Narrative is the generated answer; nil when Found is false
	Narrative *narrative.Narrative
}

// Pipeline answers questions against a fixed store.
type Pipeline struct {
	config    PipelineConfig
	store     *history.Store
	retriever *rag.Retriever
	generator *narrative.Generator
	log       *zap.SugaredLogger
}

// NewPipeline creates a pipeline. A nil log discards stage logging.
func NewPipeline(
	config PipelineConfig,
	store *history.Store,
	retriever *rag.Retriever,
	generator *narrative.Generator,
	log *zap.SugaredLogger,
) *Pipeline {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	if store == nil {
		store = history.NewStore(nil)
	}
	return &Pipeline{
		config:    config,
		store:     store,
		retriever: retriever,
		generator: generator,
		log:       log,
	}
}

// Store returns the dataset the pipeline answers from.
func (p *Pipeline) Store() *history.Store {
	return p.store
}

// Retrieve finds the record a question refers to.
func (p *Pipeline) Retrieve(question string) (history.Record, bool) {
	entry, score, ok := p.retriever.Explain(question, p.store)
	if !ok {
		p.log.Debugw("No matching record", "records", p.store.Len())
		return history.Record{}, false
	}
	p.log.Debugw("Matched record",
		"event", entry.Record.Event,
		"key", entry.Kind,
		"score", score)
	return entry.Record, true
}

// Generate asks the model about record on behalf of question.
func (p *Pipeline) Generate(ctx context.Context, record history.Record, question string) (*narrative.Narrative, error) {
	fields := narrative.BuildFields(record, question)

	prompt, err := narrative.RenderPrompt(fields)
	if err != nil {
		return nil, errors.Wrap(err, "prompt assembly failed")
	}
	p.log.Debugw("Assembled prompt", "event", fields.Event, "characters", len(prompt))

	if p.config.RequestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.config.RequestTimeout)
		defer cancel()
	}

	start := time.Now()
	narr, err := p.generator.Generate(ctx, fields.Event, prompt)
	if err != nil {
		p.log.Debugw("Generation failed", "event", fields.Event, "error", err.Error())
		return nil, err
	}
	p.log.Debugw("Generated answer",
		"event", fields.Event,
		"characters", len(narr.Text),
		"elapsed", time.Since(start))

	return narr, nil
}

// Ask runs retrieval and, on a match, generation for a single question.
// An unmatched question is not an error: the answer reports Found=false.
func (p *Pipeline) Ask(ctx context.Context, question string) (*Answer, error) {
	answer := &Answer{Question: question}

	record, ok := p.Retrieve(question)
	if !ok {
		return answer, nil
	}

	answer.Found = true
	answer.Record = record
	answer.Fields = narrative.BuildFields(record, question)

	narr, err := p.Generate(ctx, record, question)
	if err != nil {
		return answer, err
	}
	answer.Narrative = narr
	return answer, nil
}
