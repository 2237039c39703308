package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/benbjohnson/clock"
	"github.com/charmbracelet/log"
	"github.com/desertthunder/abook/internal/models"
	"github.com/desertthunder/abook/internal/repositories"
	"github.com/desertthunder/abook/internal/shared"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config     *shared.Config
	configPath string
	storePath  string
	store      models.Store
	ownsStore  bool
	logger     *log.Logger
	output     io.Writer
	input      io.Reader
	clock      clock.Clock
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config     *shared.Config
	ConfigPath string
	Store      models.Store
	Logger     *log.Logger
	Output     io.Writer
	Input      io.Reader
	Clock      clock.Clock
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.Input == nil {
		opts.Input = os.Stdin
	}
	if opts.Clock == nil {
		opts.Clock = clock.New()
	}

	return &Runner{
		config:     opts.Config,
		configPath: opts.ConfigPath,
		store:      opts.Store,
		logger:     opts.Logger,
		output:     opts.Output,
		input:      opts.Input,
		clock:      opts.Clock,
	}
}

// SetLogger replaces the logger used by the runner.
func (r *Runner) SetLogger(l *log.Logger) {
	r.logger = l
}

// app builds the root command. Without a subcommand it starts the interactive shell.
func (r *Runner) app() *cli.Command {
	return &cli.Command{
		Name:     "abook",
		Usage:    "Keep contacts with phone numbers and birthdays",
		Version:  "0.1.0",
		Flags:    globalFlags(),
		Before:   r.Before,
		After:    r.After,
		Action:   r.REPL,
		Commands: r.register(),
	}
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		replCommand, showCommand, searchCommand, exportCommand, importCommand, setupCommand, tuiCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// Before loads the configuration file named by --config when it exists and applies the global flags.
func (r *Runner) Before(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	if path := cmd.String("config"); path != "" {
		r.configPath = path
	}

	if r.configPath != "" {
		config, err := shared.LoadConfig(r.configPath)
		switch {
		case errors.Is(err, shared.ErrMissingConfig):
			r.logger.Debug("config file not found, using defaults", "path", r.configPath)
		case err != nil:
			return ctx, fmt.Errorf("failed to load config %s: %w", r.configPath, err)
		default:
			r.config = config
			r.logger.Debug("config loaded", "path", r.configPath)
		}
	}

	level := r.config.Log.Level
	if flag := cmd.String("log-level"); flag != "" {
		level = flag
	}
	if err := shared.SetLogLevel(r.logger, level); err != nil {
		return ctx, err
	}

	r.storePath = cmd.String("store")
	return ctx, nil
}

// After closes a store opened by the runner.
func (r *Runner) After(ctx context.Context, cmd *cli.Command) error {
	if r.store == nil || !r.ownsStore {
		return nil
	}
	if err := r.store.Close(); err != nil {
		return fmt.Errorf("failed to close store: %w", err)
	}
	r.store = nil
	r.ownsStore = false
	return nil
}

// openStore returns the injected store or opens the configured one.
func (r *Runner) openStore() (models.Store, error) {
	if r.store != nil {
		return r.store, nil
	}

	path := r.config.ResolveStorePath(r.storePath)
	r.logger.Debug("opening store", "backend", r.config.Storage.Backend, "path", path)

	store, err := repositories.Open(r.config, path)
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}
	r.store = store
	r.ownsStore = true
	return store, nil
}

// loadBook restores the persisted book. A store that does not exist yet yields an empty book.
func (r *Runner) loadBook() (*models.AddressBook, error) {
	store, err := r.openStore()
	if err != nil {
		return nil, err
	}

	book, err := store.Restore()
	switch {
	case errors.Is(err, shared.ErrStoreNotFound):
		r.logger.Warn("no saved contacts, starting with an empty book", "path", r.config.ResolveStorePath(r.storePath))
		return models.NewAddressBook(r.config.Book.PageSize), nil
	case err != nil:
		return nil, fmt.Errorf("failed to restore contacts: %w", err)
	default:
		r.logger.Debug("contacts restored", "count", book.Len())
		return book, nil
	}
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
