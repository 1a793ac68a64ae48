// Package handlers contains application use case handlers.
package handlers

import (
	"fmt"

	"github.com/ersonp/legends-codex/internal/infrastructure/config"
)

// InitHandler handles workspace initialization.
type InitHandler struct{}

// NewInitHandler creates a new init handler.
func NewInitHandler() *InitHandler {
	return &InitHandler{}
}

// InitResult contains the result of initialization.
type InitResult struct {
	ConfigPath     string
	World          string
	ArchivePath    string
	CollectionName string
}

// Handle writes the default configuration under basePath. A non-empty
// world replaces the default world name.
func (h *InitHandler) Handle(basePath, world string) (*InitResult, error) {
	if config.Exists(basePath) {
		return nil, fmt.Errorf("codex already initialized in %s", basePath)
	}

	cfg := config.Default()
	if world == "" {
		if err := config.WriteDefault(basePath); err != nil {
			return nil, fmt.Errorf("writing default config: %w", err)
		}
	} else {
		cfg.World.Name = world
		if err := config.Write(basePath, cfg); err != nil {
			return nil, fmt.Errorf("writing config: %w", err)
		}
	}

	return &InitResult{
		ConfigPath:     config.ConfigFilePath(basePath),
		World:          cfg.World.Name,
		ArchivePath:    cfg.ArchivePath(basePath),
		CollectionName: cfg.FormCollection(),
	}, nil
}
