package storage

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rs/zerolog"

	"github.com/agentstation/signlib/pkg/catalogs"
	"github.com/agentstation/signlib/pkg/constants"
	"github.com/agentstation/signlib/pkg/errors"
	"github.com/agentstation/signlib/pkg/logging"
)

// State is the result of a load.
type State struct {
	Videos    []*catalogs.Video
	Favorites []string
	// Seeded reports that the catalog was empty and the demo seed was installed.
	Seeded bool
}

// Store encodes the catalog and favorites as two independently keyed JSON blobs.
type Store struct {
	kv           KV
	catalogKey   string
	favoritesKey string
	seed         bool
	clock        catalogs.Clock
	logger       *zerolog.Logger
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithKeys overrides the catalog and favorites keys. Empty values keep the defaults.
func WithKeys(catalogKey, favoritesKey string) StoreOption {
	return func(s *Store) {
		if catalogKey != "" {
			s.catalogKey = catalogKey
		}
		if favoritesKey != "" {
			s.favoritesKey = favoritesKey
		}
	}
}

// WithDemoSeed enables or disables seeding an empty catalog.
func WithDemoSeed(enabled bool) StoreOption {
	return func(s *Store) {
		s.seed = enabled
	}
}

// WithClock sets the clock used to date the demo seed.
func WithClock(clock catalogs.Clock) StoreOption {
	return func(s *Store) {
		if clock != nil {
			s.clock = clock
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *zerolog.Logger) StoreOption {
	return func(s *Store) {
		s.logger = logger
	}
}

// NewStore creates a Store over kv.
func NewStore(kv KV, opts ...StoreOption) *Store {
	s := &Store{
		kv:           kv,
		catalogKey:   constants.CatalogKey,
		favoritesKey: constants.FavoritesKey,
		seed:         true,
		clock:        time.Now,
		logger:       logging.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// KV returns the underlying substrate.
func (s *Store) KV() KV { return s.kv }

// Keys returns the catalog and favorites keys.
func (s *Store) Keys() (catalogKey, favoritesKey string) {
	return s.catalogKey, s.favoritesKey
}

// Load reads both blobs. A missing, unreadable or undecodable blob resets
// that piece to empty without affecting the other. When the catalog ends up
// empty and seeding is enabled, the demo seed is installed and saved.
//
// The returned State is always usable. A non-nil error only reports that
// saving the seed failed.
func (s *Store) Load(ctx context.Context) (State, error) {
	var state State

	if err := s.read(ctx, s.catalogKey, &state.Videos); err != nil {
		state.Videos = nil
	}
	if err := s.read(ctx, s.favoritesKey, &state.Favorites); err != nil {
		state.Favorites = nil
	}
	state.Videos = compact(state.Videos)
	if state.Favorites == nil {
		state.Favorites = []string{}
	}

	if len(state.Videos) == 0 && s.seed {
		state.Videos = catalogs.DemoSeed(s.clock())
		state.Seeded = true
		s.logger.Info().Int("videos", len(state.Videos)).Msg("Installed demo catalog")
		return state, s.Save(ctx, state.Videos, state.Favorites)
	}
	return state, nil
}

// Save writes the catalog blob, then the favorites blob. The first failure
// stops the write and is returned; the caller keeps its in-memory state.
func (s *Store) Save(ctx context.Context, videos []*catalogs.Video, favorites []string) error {
	if videos == nil {
		videos = []*catalogs.Video{}
	}
	if favorites == nil {
		favorites = []string{}
	}

	data, err := json.Marshal(videos)
	if err != nil {
		return errors.WrapParse("json", s.catalogKey, err)
	}
	if err := s.kv.Set(ctx, s.catalogKey, data); err != nil {
		return errors.WrapResource("save", "catalog", "", err)
	}

	data, err = json.Marshal(favorites)
	if err != nil {
		return errors.WrapParse("json", s.favoritesKey, err)
	}
	if err := s.kv.Set(ctx, s.favoritesKey, data); err != nil {
		return errors.WrapResource("save", "favorites", "", err)
	}
	return nil
}

func (s *Store) read(ctx context.Context, key string, v any) error {
	data, err := s.kv.Get(ctx, key)
	if err != nil {
		if !errors.IsNotFound(err) {
			s.logger.Warn().Err(err).Str("key", key).Msg("Reading stored blob failed, starting empty")
		}
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		s.logger.Debug().Err(err).Str("key", key).Msg("Stored blob is corrupt, starting empty")
		return errors.WrapParse("json", key, err)
	}
	return nil
}

// compact drops null entries and records without an id.
func compact(videos []*catalogs.Video) []*catalogs.Video {
	out := make([]*catalogs.Video, 0, len(videos))
	for _, v := range videos {
		if v != nil && v.ID != "" {
			out = append(out, v)
		}
	}
	return out
}
