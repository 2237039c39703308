package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/desertthunder/abook/internal/models"
	"github.com/desertthunder/abook/internal/shared"
	"github.com/urfave/cli/v3"
)

// Setup creates the config file when missing and initialises the configured store.
//
// For SQLite, opening the store runs the migrations. For JSONL an empty book is written.
func (r *Runner) Setup(ctx context.Context, cmd *cli.Command) error {
	configPath := r.configPath
	if configPath == "" {
		configPath = "config.toml"
	}

	if _, err := os.Stat(configPath); err == nil {
		r.logger.Info("using existing config file", "path", configPath)
	} else {
		r.logger.Info("config file not found, creating from template", "path", configPath)
		if err := shared.CreateConfigFile(configPath); err != nil {
			return fmt.Errorf("failed to create config file: %w", err)
		}

		config, err := shared.LoadConfig(configPath)
		if err != nil {
			return fmt.Errorf("failed to load created config: %w", err)
		}
		r.config = config
		r.logger.Info("config file created", "path", configPath)
	}

	storePath := r.config.ResolveStorePath(r.storePath)
	r.logger.Info("initializing store", "backend", r.config.Storage.Backend, "path", storePath)

	store, err := r.openStore()
	if err != nil {
		return err
	}

	book, err := store.Restore()
	switch {
	case errors.Is(err, shared.ErrStoreNotFound):
		if err := store.Save(models.NewAddressBook(r.config.Book.PageSize)); err != nil {
			return fmt.Errorf("failed to initialise store: %w", err)
		}
		book = models.NewAddressBook(r.config.Book.PageSize)
	case err != nil:
		return fmt.Errorf("failed to read store: %w", err)
	}

	r.logger.Infof("setup complete for store: %v", storePath)
	return r.writePlain("✓ Config: %s\n✓ Store (%s): %s, %d contacts\n\nRun 'abook' to start the contact shell\n",
		configPath, r.config.Storage.Backend, storePath, book.Len())
}
