package signlib

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/agentstation/signlib/pkg/catalogs"
	"github.com/agentstation/signlib/pkg/classify"
	"github.com/agentstation/signlib/pkg/errors"
	"github.com/agentstation/signlib/pkg/importer"
	"github.com/agentstation/signlib/pkg/logging"
	"github.com/agentstation/signlib/pkg/notify"
	"github.com/agentstation/signlib/pkg/storage"
)

// config holds the Library configuration.
type config struct {
	kv           storage.KV
	catalogKey   string
	favoritesKey string
	seedDemo     bool
	clock        catalogs.Clock
	classifier   *classify.Classifier
	onError      importer.OnError
	notifier     notify.Notifier
	confirmer    notify.Confirmer
	logger       *zerolog.Logger
}

func defaultConfig() *config {
	return &config{
		seedDemo:   true,
		clock:      time.Now,
		classifier: classify.New(),
		onError:    importer.Abort,
		notifier:   notify.Discard,
		confirmer:  notify.AlwaysDecline,
		logger:     logging.Default(),
	}
}

// Option is a function that configures a Library
type Option func(*config) error

// WithStorage sets the storage substrate. The default is an in-memory store.
func WithStorage(kv storage.KV) Option {
	return func(c *config) error {
		if kv == nil {
			return errors.NewValidationError("storage", nil, "substrate is required")
		}
		c.kv = kv
		return nil
	}
}

// WithKeys overrides the catalog and favorites storage keys
func WithKeys(catalogKey, favoritesKey string) Option {
	return func(c *config) error {
		c.catalogKey = catalogKey
		c.favoritesKey = favoritesKey
		return nil
	}
}

// WithDemoSeed configures whether an empty catalog receives the demo records
func WithDemoSeed(enabled bool) Option {
	return func(c *config) error {
		c.seedDemo = enabled
		return nil
	}
}

// WithClock sets the clock used for ids, timestamps and the demo seed.
func WithClock(clock catalogs.Clock) Option {
	return func(c *config) error {
		if clock == nil {
			return errors.NewValidationError("clock", nil, "clock is required")
		}
		c.clock = clock
		return nil
	}
}

// WithClassifier replaces the filename classifier
func WithClassifier(cl *classify.Classifier) Option {
	return func(c *config) error {
		c.classifier = cl
		return nil
	}
}

// WithOnError sets the bulk import failure policy
func WithOnError(p importer.OnError) Option {
	return func(c *config) error {
		if p != importer.Abort && p != importer.Skip {
			return errors.NewValidationError("on_error", p, "must be abort or skip")
		}
		c.onError = p
		return nil
	}
}

// WithNotifier sets where notices go. The default drops them.
func WithNotifier(n notify.Notifier) Option {
	return func(c *config) error {
		if n == nil {
			n = notify.Discard
		}
		c.notifier = n
		return nil
	}
}

// WithConfirmer sets who approves destructive requests. The default declines.
func WithConfirmer(cf notify.Confirmer) Option {
	return func(c *config) error {
		if cf == nil {
			cf = notify.AlwaysDecline
		}
		c.confirmer = cf
		return nil
	}
}

// WithLogger sets the logger
func WithLogger(logger *zerolog.Logger) Option {
	return func(c *config) error {
		if logger != nil {
			c.logger = logger
		}
		return nil
	}
}
