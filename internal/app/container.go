// Package app provides dependency injection container for the application
package app

import (
	"fmt"

	"github.com/aki/mknote/internal/core/command"
	"github.com/aki/mknote/internal/core/config"
	"github.com/aki/mknote/internal/core/events"
	"github.com/aki/mknote/internal/core/favourites"
	"github.com/aki/mknote/internal/core/git"
	"github.com/aki/mknote/internal/core/listing"
	"github.com/aki/mknote/internal/core/logger"
	"github.com/aki/mknote/internal/core/notes"
	"github.com/aki/mknote/internal/core/ordering"
	"github.com/aki/mknote/internal/filemanager"
)

// Options configure a Container
type Options struct {
	// ConfigPath overrides the configuration file location
	ConfigPath string
	Logger     logger.Logger
	// Reporter shows progress for long-running commands; nil disables it
	Reporter command.Reporter
	// Prompter asks for confirmations; nil answers yes
	Prompter notes.Prompter
}

// Container holds all manager instances and their dependencies
type Container struct {
	Logger logger.Logger
	Events *events.Bus

	// Core managers
	ConfigManager *config.Manager
	FS            filemanager.FS
	Ordering      *ordering.Store
	Engine        *listing.Engine
	Favourites    *favourites.Store
	Explorer      *notes.Explorer
	Syncer        *git.Syncer
	Commands      *command.Registry

	prompter notes.Prompter
	reporter command.Reporter
}

// NewContainer creates a new container with all managers initialized in dependency order
func NewContainer(opts Options) (*Container, error) {
	log := opts.Logger
	if log == nil {
		log = logger.Default()
	}
	path := opts.ConfigPath
	if path == "" {
		var err error
		if path, err = config.DefaultPath(); err != nil {
			return nil, err
		}
	}

	c := &Container{
		Logger:   log,
		Events:   events.NewBus(),
		prompter: opts.Prompter,
		reporter: opts.Reporter,
	}
	if c.prompter == nil {
		c.prompter = notes.AlwaysYes{}
	}

	// Initialize config manager (no dependencies besides the bus)
	c.ConfigManager = config.NewManager(path, c.Events, log)
	cfg, err := c.ConfigManager.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	// Filesystem and sidecar stores
	c.FS = filemanager.NewOSFS()
	c.Ordering = ordering.NewStore(c.FS, log)
	c.Engine, err = listing.NewEngine(c.FS, c.Ordering, log,
		listing.WithIgnore(cfg.Ignore...),
		listing.WithLocale(cfg.LanguageTag()),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create listing engine: %w", err)
	}
	c.Favourites = favourites.NewStore(c.FS, c.ConfigManager, log)

	// Mutations (depend on everything above)
	c.Explorer = notes.NewExplorer(notes.Deps{
		FS:         c.FS,
		Engine:     c.Engine,
		Ordering:   c.Ordering,
		Favourites: c.Favourites,
		Location:   c.ConfigManager,
		Events:     c.Events,
		Logger:     log,
	})

	c.Syncer = git.NewSyncer(c.ConfigManager, func() git.Settings {
		cfg := c.ConfigManager.Config()
		return git.Settings{
			AuthorName:  cfg.Git.AuthorName,
			AuthorEmail: cfg.Git.AuthorEmail,
			Remote:      cfg.Git.Remote,
		}
	}, log)

	c.Commands = command.NewRegistry(log)
	c.registerCommands()

	return c, nil
}

// Location returns the configured workspace root
func (c *Container) Location() string {
	return c.ConfigManager.Location()
}

// Close releases the event bus
func (c *Container) Close() {
	c.Events.Close()
}
