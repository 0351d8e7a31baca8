package cmd

import (
	"github.com/Yates-Labs/historian/internal/config"
	"github.com/Yates-Labs/historian/internal/history"
	"github.com/Yates-Labs/historian/internal/logging"
	"github.com/Yates-Labs/historian/internal/narrative"
	"github.com/Yates-Labs/historian/internal/orchestrator"
	"github.com/Yates-Labs/historian/internal/rag"
	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// app holds everything a command needs, built once per invocation.
type app struct {
	cfg      *config.Config
	log      *zap.SugaredLogger
	store    *history.Store
	pipeline *orchestrator.Pipeline
}

// newApp resolves configuration, loads the dataset and, when withModel is
// set, connects the question-answering pipeline to the model.
func newApp(cmd *cobra.Command, withModel bool) (*app, error) {
	v, err := config.NewViper(cmd.Flags())
	if err != nil {
		return nil, err
	}
	cfg, err := config.Load(v, configFile)
	if err != nil {
		return nil, err
	}

	log, err := logging.New(cfg.LogFormat, cfg.Verbose, cmd.ErrOrStderr())
	if err != nil {
		return nil, err
	}
	log.Debugw("Resolved configuration", cfg.LogFields()...)

	a := &app{cfg: cfg, log: log}

	if cfg.Strict {
		store, err := history.Load(cfg.DataFile)
		if err != nil {
			return nil, errors.WithHint(err, "fix the dataset or run without --strict")
		}
		a.store = store
	} else {
		a.store = history.LoadLenient(cfg.DataFile, log)
	}

	if !withModel {
		return a, nil
	}

	sim, err := rag.SimilarityByName(cfg.Similarity)
	if err != nil {
		return nil, err
	}

	if err := cfg.RequireAPIKey(); err != nil {
		return nil, err
	}
	llmConfig := cfg.LLMConfig()
	llm, err := narrative.NewOpenAILLM(llmConfig)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create model client")
	}

	a.pipeline = orchestrator.NewPipeline(
		orchestrator.PipelineConfig{RequestTimeout: cfg.RequestTimeout},
		a.store,
		rag.NewRetriever(sim),
		narrative.NewGenerator(llm, llmConfig),
		log,
	)
	return a, nil
}

func (a *app) close() {
	// Sync reports an error for stderr on most terminals.
	_ = a.log.Sync()
}
