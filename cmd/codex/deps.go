package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/ersonp/legends-codex/internal/application/handlers"
	"github.com/ersonp/legends-codex/internal/domain/services"
	"github.com/ersonp/legends-codex/internal/infrastructure/config"
	embedder "github.com/ersonp/legends-codex/internal/infrastructure/embedder/openai"
	llm "github.com/ersonp/legends-codex/internal/infrastructure/llm/openai"
	"github.com/ersonp/legends-codex/internal/infrastructure/logging"
	"github.com/ersonp/legends-codex/internal/infrastructure/relationaldb/sqlite"
	"github.com/ersonp/legends-codex/internal/infrastructure/vectordb/qdrant"
)

// Deps holds what every command needs: the resolved config and a logger.
// Backends are opened on demand by the with* helpers.
type Deps struct {
	Config   *config.Config
	BasePath string
	Logger   *zap.Logger
}

// withDeps loads config, applies global flags and builds the logger, then
// calls the provided function.
func withDeps(fn func(*Deps) error) error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting current directory: %w", err)
	}

	cfg, err := config.LoadOrDefault(cwd)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	applyGlobalFlags(cfg)

	logger, err := logging.New(cfg.Log.Level)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	return fn(&Deps{
		Config:   cfg,
		BasePath: cwd,
		Logger:   logger,
	})
}

// applyGlobalFlags lets persistent flags override the loaded config.
func applyGlobalFlags(cfg *config.Config) {
	if globalWorld != "" {
		cfg.World.Name = globalWorld
	}
	if globalSource != "" {
		cfg.Source.Path = globalSource
	}
	if globalLogLevel != "" {
		cfg.Log.Level = globalLogLevel
	}
}

// anthologyService wires the pipeline services. gen may be nil for
// commands that never generate.
func (d *Deps) anthologyService(gen *services.GenerationService) *services.AnthologyService {
	return services.NewAnthologyService(
		services.NewCatalogService(d.Logger),
		services.NewPersonaService(d.Logger),
		gen,
		d.Logger,
	)
}

// generationService connects to the configured language model.
func (d *Deps) generationService() (*services.GenerationService, error) {
	client, err := llm.NewClient(d.Config.LLM)
	if err != nil {
		return nil, fmt.Errorf("creating llm client: %w", err)
	}

	opts := services.GenerationOptions{
		Concurrency: d.Config.Generation.Concurrency,
		Timeout:     d.Config.Generation.Timeout,
	}
	return services.NewGenerationService(client, opts, d.Logger), nil
}

// catalogHandler returns a handler that reads exports without generating.
func (d *Deps) catalogHandler() *handlers.CatalogHandler {
	return handlers.NewCatalogHandler(d.anthologyService(nil))
}

// withArchive opens the world's run archive, creating it on first use.
func (d *Deps) withArchive(ctx context.Context, fn func(*sqlite.Repository) error) error {
	path := d.Config.ArchivePath(d.BasePath)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating archive directory: %w", err)
	}

	repo, err := sqlite.NewRepository(config.SQLiteConfig{Path: path})
	if err != nil {
		return fmt.Errorf("creating sqlite repository: %w", err)
	}
	defer repo.Close()

	if err := repo.EnsureSchema(ctx); err != nil {
		return fmt.Errorf("ensuring sqlite schema: %w", err)
	}

	return fn(repo)
}

// withFormIndex connects the embedder and the world's Qdrant collection.
func (d *Deps) withFormIndex(fn func(*handlers.FormIndexHandler) error) error {
	qdrantCfg := d.Config.Qdrant
	qdrantCfg.Collection = d.Config.FormCollection()

	repo, err := qdrant.NewRepository(qdrantCfg)
	if err != nil {
		return fmt.Errorf("creating qdrant repository: %w", err)
	}
	defer repo.Close()

	emb, err := embedder.NewEmbedder(d.Config.Embedder)
	if err != nil {
		return fmt.Errorf("creating embedder: %w", err)
	}

	index := services.NewFormIndexService(emb, repo, d.Config.World.Name, d.Logger)
	return fn(handlers.NewFormIndexHandler(services.NewCatalogService(d.Logger), index))
}
