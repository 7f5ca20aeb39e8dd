// Package wire provides dependency injection for entitygen.
// It creates the process-wide container with lazy initialization.
package wire

import (
	"database/sql"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/example/entitygen/internal/adapters/api"
	cliadapter "github.com/example/entitygen/internal/adapters/cli"
	"github.com/example/entitygen/internal/adapters/filesystem"
	"github.com/example/entitygen/internal/adapters/introspect"
	"github.com/example/entitygen/internal/adapters/sqlite"
	"github.com/example/entitygen/internal/app"
	"github.com/example/entitygen/internal/config"
	"github.com/example/entitygen/internal/db"
	"github.com/example/entitygen/internal/logger"
	"github.com/example/entitygen/internal/ports/primary"
	"github.com/example/entitygen/internal/ports/secondary"
)

// Options are the global command line settings.
type Options struct {
	ProjectDir string
	ConfigFile string
	LogLevel   string
}

// Container holds the shared dependencies of one process.
type Container struct {
	Settings     *config.Settings
	Logger       *zap.Logger
	Store        *config.Store
	Introspector *introspect.Introspector

	projectFS   *filesystem.ProjectFileSystem
	executor    *app.DefaultEffectExecutor
	database    *sql.DB
	historyRepo secondary.HistoryRepository
}

var (
	options   Options
	container *Container
	initErr   error
	once      sync.Once
)

// Configure sets the options used by the first call to Get.
func Configure(opts Options) {
	options = opts
}

// Get returns the singleton container, building it on first use.
func Get() (*Container, error) {
	once.Do(func() {
		container, initErr = New(options)
	})
	return container, initErr
}

// Shutdown closes the singleton container if it was built.
func Shutdown() error {
	if container == nil {
		return nil
	}
	return container.Close()
}

// New builds a container for opts. History is optional: when its database
// cannot be opened the failure is logged and generation runs unrecorded.
func New(opts Options) (*Container, error) {
	settings, err := config.LoadSettings(afero.NewOsFs(), opts.ConfigFile)
	if err != nil {
		return nil, err
	}
	if opts.LogLevel != "" {
		settings.Log.Level = opts.LogLevel
	}

	log, err := logger.New(&logger.Config{
		Level:  settings.Log.Level,
		Format: settings.Log.Format,
		Output: settings.Log.Output,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	projectDir := opts.ProjectDir
	if projectDir == "" {
		if projectDir, err = os.Getwd(); err != nil {
			return nil, fmt.Errorf("failed to get working directory: %w", err)
		}
	}
	projectFS, err := filesystem.NewOsProjectFileSystem(projectDir)
	if err != nil {
		return nil, err
	}

	c := &Container{
		Settings:     settings,
		Logger:       log,
		Store:        config.NewStore(projectFS.Fs(), log),
		Introspector: introspect.NewIntrospector(afero.NewOsFs()),
		projectFS:    projectFS,
		executor:     app.NewEffectExecutor(projectFS, log),
	}

	if settings.History.Enabled {
		database, err := db.Open(settings.History.Path)
		if err != nil {
			log.Warn("generation history disabled",
				zap.String("path", settings.History.Path), zap.Error(err))
		} else {
			c.database = database
			c.historyRepo = sqlite.NewHistoryRepository(database)
		}
	}

	return c, nil
}

// Close releases the history database and flushes the logger.
func (c *Container) Close() error {
	_ = logger.Sync(c.Logger)
	if c.database != nil {
		return c.database.Close()
	}
	return nil
}

// FileSystem returns the project-rooted file system port.
func (c *Container) FileSystem() secondary.FileSystem {
	return c.projectFS
}

// GenerationService returns a generation service asking confirmer before
// overwrites. A nil confirmer suits the silent policy only.
func (c *Container) GenerationService(confirmer secondary.Confirmer) primary.GenerationService {
	placement := app.NewPlacementService(c.projectFS, confirmer, c.executor, c.Logger)
	return app.NewGenerationService(placement, c.projectFS, c.historyRepo, c.Logger)
}

// HistoryService returns the history service, or nil when history is
// disabled.
func (c *Container) HistoryService() primary.HistoryService {
	if c.historyRepo == nil {
		return nil
	}
	return app.NewHistoryService(c.historyRepo)
}

// GenerationAdapter returns a new GenerationAdapter writing to out.
// Each call creates a new adapter (adapters are stateless translators).
func (c *Container) GenerationAdapter(out io.Writer, confirmer secondary.Confirmer) *cliadapter.GenerationAdapter {
	return cliadapter.NewGenerationAdapter(c.GenerationService(confirmer), out)
}

// HistoryAdapter returns a new HistoryAdapter writing to out.
func (c *Container) HistoryAdapter(out io.Writer) (*cliadapter.HistoryAdapter, error) {
	svc := c.HistoryService()
	if svc == nil {
		return nil, fmt.Errorf("generation history is disabled")
	}
	return cliadapter.NewHistoryAdapter(svc, out), nil
}

// APIHandler returns the HTTP handler. Overwrites over HTTP are silent.
func (c *Container) APIHandler() *api.Handler {
	return api.NewHandler(c.GenerationService(nil), c.HistoryService(), c.Store, c.Settings.Generate.Structure)
}
