// Package app wires the room editor together: configuration, logging,
// the persistence store, the object catalog, and the tab manager. It
// owns component lifecycles and exposes the operations the CLI and UI
// layers call.
package app

import (
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/dshills/roomstorm/internal/config"
	"github.com/dshills/roomstorm/internal/engine"
	"github.com/dshills/roomstorm/internal/engine/document"
	"github.com/dshills/roomstorm/internal/export"
	"github.com/dshills/roomstorm/internal/logging"
	"github.com/dshills/roomstorm/internal/session"
	"github.com/dshills/roomstorm/internal/store"
	"github.com/dshills/roomstorm/internal/tileset"
)

// Options configures the application.
type Options struct {
	// ConfigPath is the path to the configuration file.
	ConfigPath string

	// LogLevel overrides the configured logging verbosity.
	LogLevel string

	// StoreDriver overrides the configured persistence backend.
	StoreDriver string

	// StorePath overrides the configured store location.
	StorePath string

	// Watch enables live reload of the configuration file.
	Watch bool
}

// Application is the central coordinator for the room editor.
type Application struct {
	config  *config.Config
	log     *logrus.Logger
	kv      store.Store
	rooms   *store.RoomStore
	tabs    *session.Manager
	catalog *tileset.Catalog
	objects export.Catalog
	watcher *config.Watcher

	opts Options
}

// New creates an Application with the given options.
func New(opts Options) (*Application, error) {
	app := &Application{opts: opts, objects: export.Catalog{}}
	if err := app.bootstrap(); err != nil {
		return nil, err
	}
	return app, nil
}

// bootstrap initializes components in dependency order.
func (app *Application) bootstrap() error {
	cfg, err := config.Load(app.opts.ConfigPath)
	if err != nil {
		return &InitError{Component: "config", Err: err}
	}
	if app.opts.LogLevel != "" {
		cfg.Log.Level = app.opts.LogLevel
	}
	if app.opts.StoreDriver != "" {
		cfg.Storage.Driver = app.opts.StoreDriver
	}
	if app.opts.StorePath != "" {
		cfg.Storage.Path = app.opts.StorePath
	}
	app.config = cfg

	app.log = logging.New(cfg.Log.Level, cfg.Log.Format)

	kv, err := store.Open(store.Driver(cfg.Storage.Driver), cfg.Storage.Path)
	if err != nil {
		return &InitError{Component: "store", Err: err}
	}
	app.kv = kv
	app.rooms = store.NewRoomStore(kv)
	app.tabs = session.NewManager()
	app.catalog = tileset.NewCatalog()

	if app.opts.Watch && app.opts.ConfigPath != "" {
		w, err := config.Watch(app.opts.ConfigPath, app.onConfigReload)
		if err != nil {
			return &InitError{Component: "config watcher", Err: err}
		}
		app.watcher = w
	}

	logging.WithComponent(app.log, "app").
		WithFields(logrus.Fields{"driver": cfg.Storage.Driver, "path": cfg.Storage.Path}).
		Debug("bootstrapped")
	return nil
}

func (app *Application) onConfigReload(cfg *config.Config) {
	app.config = cfg
	app.log.SetLevel(parseLevel(cfg.Log.Level))
	logging.WithComponent(app.log, "app").Info("configuration reloaded")
}

func parseLevel(level string) logrus.Level {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return logrus.InfoLevel
	}
	return lvl
}

// Config returns the active configuration.
func (app *Application) Config() *config.Config { return app.config }

// Log returns the application logger.
func (app *Application) Log() *logrus.Logger { return app.log }

// Tabs returns the tab manager.
func (app *Application) Tabs() *session.Manager { return app.tabs }

// Rooms returns the room store.
func (app *Application) Rooms() *store.RoomStore { return app.rooms }

// Tilesets returns the texture catalog.
func (app *Application) Tilesets() *tileset.Catalog { return app.catalog }

// Objects returns the object definition catalog used for export.
func (app *Application) Objects() export.Catalog { return app.objects }

// engineOptions derives engine settings from configuration.
func (app *Application) engineOptions() []engine.Option {
	return []engine.Option{
		engine.WithTileSize(app.config.Editor.TileSize),
		engine.WithObjectGrid(app.config.Editor.ObjectGrid),
		engine.WithMaxUndoEntries(app.config.Editor.MaxUndo),
	}
}

// NewRoom creates and persists an empty room and opens it in a tab.
// Fails if a room with that name is already stored.
func (app *Application) NewRoom(name string, width, height int) (*session.Tab, error) {
	if _, err := app.rooms.Load(name); err == nil {
		return nil, ErrRoomExists
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}

	r := document.New(name, width, height)
	if err := app.rooms.Save(r); err != nil {
		return nil, err
	}
	logging.WithComponent(app.log, "app").
		WithFields(logrus.Fields{"room": name, "width": width, "height": height}).
		Info("room created")
	return app.tabs.Open(r, app.engineOptions()...), nil
}

// OpenRoom loads a stored room into a tab. If a tab already edits the
// room, it is activated instead.
func (app *Application) OpenRoom(name string) (*session.Tab, error) {
	if tab, ok := app.tabs.ByName(name); ok {
		if err := app.tabs.Switch(tab.ID, tab.View); err != nil {
			return nil, err
		}
		return tab, nil
	}
	r, err := app.rooms.Load(name)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrRoomNotFound
	}
	if err != nil {
		return nil, err
	}
	return app.tabs.Open(r, app.engineOptions()...), nil
}

// SaveActive persists the active tab's room.
func (app *Application) SaveActive() error {
	tab := app.tabs.Active()
	if tab == nil {
		return ErrNoActiveTab
	}
	if err := app.rooms.Save(tab.Engine.Snapshot()); err != nil {
		return err
	}
	tab.SetModified(false)
	logging.WithComponent(app.log, "app").WithField("room", tab.Name()).Info("room saved")
	return nil
}

// SaveAll persists every open tab's room.
func (app *Application) SaveAll() error {
	for _, tab := range app.tabs.All() {
		if err := app.rooms.Save(tab.Engine.Snapshot()); err != nil {
			return err
		}
		tab.SetModified(false)
	}
	return nil
}

// ExportRoom renders a stored room against the object catalog.
func (app *Application) ExportRoom(name string) ([]byte, error) {
	r, err := app.rooms.Load(name)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrRoomNotFound
	}
	if err != nil {
		return nil, err
	}
	doc, err := export.Export(r, app.objects)
	if err != nil {
		return nil, err
	}
	return export.Marshal(doc)
}

// Shutdown releases resources. Safe to call more than once.
func (app *Application) Shutdown() {
	if app.watcher != nil {
		_ = app.watcher.Close()
		app.watcher = nil
	}
	if app.kv != nil {
		_ = app.kv.Close()
		app.kv = nil
	}
}
