// Package signlib is a local catalog manager for video clips.
//
// A Library owns the catalog store, the persistence adapter, the import
// pipeline and the notification surfaces. Every front end (the CLI, the HTTP
// server and the terminal browser) drives the same Library.
//
// Example usage:
//
//	lib, err := signlib.New(ctx, signlib.WithStorage(storage.NewMemory()))
//	if err != nil {
//	    return err
//	}
//	defer lib.Close()
//
//	v, err := lib.AddSingle(ctx, importer.SingleInput{Title: "Hello", Category: "Greetings"})
//	lib.ToggleFavorite(ctx, v.ID)
//	for _, v := range lib.Query(query.Query{Category: query.CategoryFavorites}) {
//	    fmt.Println(v.Title)
//	}
package signlib

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/agentstation/signlib/pkg/catalogs"
	"github.com/agentstation/signlib/pkg/constants"
	"github.com/agentstation/signlib/pkg/errors"
	"github.com/agentstation/signlib/pkg/importer"
	"github.com/agentstation/signlib/pkg/notify"
	"github.com/agentstation/signlib/pkg/query"
	"github.com/agentstation/signlib/pkg/storage"
)

// Library is the explicit state container for one user's catalog.
// Mutations are serialized; each runs to completion, persists, and then
// notifies hooks outside the lock.
type Library struct {
	mu        sync.Mutex
	catalog   *catalogs.Catalog
	store     *storage.Store
	importer  *importer.Importer
	ids       *catalogs.IDGenerator
	clock     catalogs.Clock
	notifier  notify.Notifier
	confirmer notify.Confirmer
	hooks     *hooks
	logger    *zerolog.Logger
	ownsKV    bool
}

// New creates a Library and loads persisted state. A failure to save the
// demo seed is reported as a storage warning, not an error.
func New(ctx context.Context, opts ...Option) (*Library, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, errors.WrapValidation("option", err)
		}
	}
	return newLibrary(ctx, cfg)
}

// Open opens the configured storage substrate and creates a Library over it.
// The Library closes the substrate on Close.
func Open(ctx context.Context, sc storage.Config, opts ...Option) (*Library, error) {
	kv, err := storage.Open(ctx, sc)
	if err != nil {
		return nil, err
	}
	lib, err := New(ctx, append(opts, WithStorage(kv))...)
	if err != nil {
		_ = kv.Close()
		return nil, err
	}
	lib.ownsKV = true
	return lib, nil
}

func newLibrary(ctx context.Context, cfg *config) (*Library, error) {
	if cfg.kv == nil {
		cfg.kv = storage.NewMemory()
	}

	ids := catalogs.NewIDGenerator(cfg.clock)
	lib := &Library{
		catalog:   catalogs.New(),
		ids:       ids,
		clock:     cfg.clock,
		notifier:  cfg.notifier,
		confirmer: cfg.confirmer,
		hooks:     newHooks(),
		logger:    cfg.logger,
		store: storage.NewStore(cfg.kv,
			storage.WithKeys(cfg.catalogKey, cfg.favoritesKey),
			storage.WithDemoSeed(cfg.seedDemo),
			storage.WithClock(cfg.clock),
			storage.WithLogger(cfg.logger),
		),
		importer: importer.New(
			importer.WithClassifier(cfg.classifier),
			importer.WithIDGenerator(ids),
			importer.WithOnError(cfg.onError),
			importer.WithLogger(cfg.logger),
		),
	}

	state, err := lib.store.Load(ctx)
	lib.catalog.Reset(state.Videos, state.Favorites)
	for _, v := range state.Videos {
		ids.Observe(v.CreatedAt)
	}

	lib.logger.Debug().
		Int("videos", len(state.Videos)).
		Int("favorites", len(state.Favorites)).
		Bool("seeded", state.Seeded).
		Msg("Loaded catalog")

	if err != nil {
		lib.logger.Warn().Err(err).Msg("Saving demo catalog failed")
		lib.notify(ctx, notify.LevelWarn, constants.MsgStorageFull)
	}
	return lib, nil
}

// Close releases the storage substrate when the Library opened it.
func (l *Library) Close() error {
	if !l.ownsKV {
		return nil
	}
	return l.store.KV().Close()
}

// Catalog returns the underlying catalog store for read access.
func (l *Library) Catalog() catalogs.Reader { return l.catalog }

// Importer returns the import pipeline.
func (l *Library) Importer() *importer.Importer { return l.importer }

// Revision returns the current catalog revision.
func (l *Library) Revision() uint64 { return l.catalog.Revision() }

// Videos returns every record in catalog order.
func (l *Library) Videos() []*catalogs.Video {
	return l.catalog.Videos().List()
}

// Video returns a record by id.
func (l *Library) Video(id string) (*catalogs.Video, error) {
	return l.catalog.Video(id)
}

// IsFavorite reports whether id is a favorite.
func (l *Library) IsFavorite(id string) bool {
	return l.catalog.IsFavorite(id)
}

// Query returns the visible records for q.
func (l *Library) Query(q query.Query) []*catalogs.Video {
	l.mu.Lock()
	videos := l.catalog.Videos().List()
	favs := query.Set(l.catalog.Favorites().Set())
	l.mu.Unlock()
	return query.Apply(videos, favs, q)
}

// Summary returns the sidebar counts.
func (l *Library) Summary() query.Summary {
	l.mu.Lock()
	defer l.mu.Unlock()
	return query.Count(l.catalog.Videos().List(), l.catalog.Favorites())
}

// Folder returns the linked folder's name and the number of live handles.
func (l *Library) Folder() (name string, files int) {
	reg := l.catalog.FolderFiles()
	return reg.Folder(), reg.Len()
}

// Categories returns the classifier's category labels in table order.
func (l *Library) Categories() []string {
	return l.importer.Classifier().Categories()
}

func (l *Library) notify(ctx context.Context, level notify.Level, msg string) {
	l.notifier.Notify(ctx, notify.Notice{Level: level, Message: msg, Time: l.now()})
}
