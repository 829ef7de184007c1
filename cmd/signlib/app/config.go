package app

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/agentstation/signlib/pkg/constants"
	"github.com/agentstation/signlib/pkg/errors"
	"github.com/agentstation/signlib/pkg/storage"
)

// EnvPrefix prefixes every environment variable read through viper.
const EnvPrefix = "SIGNLIB"

// Config holds the application configuration loaded from various sources
// including config files, environment variables, and .env files.
type Config struct {
	// Global flags
	Verbose bool
	Quiet   bool
	NoColor bool
	Format  string
	Yes     bool

	// Config file
	ConfigFile string

	// Storage
	StorageBackend string
	StoragePath    string
	QuotaBytes     int64
	RedisAddr      string
	RedisPassword  string
	RedisDB        int
	CatalogKey     string
	FavoritesKey   string

	// Library
	SeedDemo bool
	OnError  string

	// Server
	ServerHost     string
	ServerPort     int
	CORSOrigins    []string
	CacheTTL       time.Duration
	MaxUploadBytes int64
	FolderRoot     string

	// Logging. LogLevel is the --log-level flag; EnvLogLevel is LOG_LEVEL.
	LogLevel    string
	EnvLogLevel string
	LogFormat   string
	LogOutput   string
}

// LoadConfig loads configuration from all sources in order of precedence:
// 1. Command-line flags (handled by cobra)
// 2. Environment variables (SIGNLIB_*)
// 3. .env files
// 4. Config file (~/.signlib.yaml or ./.signlib.yaml)
// 5. Defaults
func LoadConfig() (*Config, error) {
	return loadConfig(viper.New(), "")
}

// LoadConfigFile is LoadConfig with an explicit config file.
func LoadConfigFile(path string) (*Config, error) {
	return loadConfig(viper.New(), path)
}

func loadConfig(v *viper.Viper, configFile string) (*Config, error) {
	loadEnvFiles()

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if configFile == "" {
		configFile = os.Getenv(EnvPrefix + "_CONFIG")
	}
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
		v.AddConfigPath(".")
		v.SetConfigType("yaml")
		v.SetConfigName(constants.DefaultConfigName)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, errors.NewConfigError("config", "reading "+configFile, err)
		}
	}

	config := &Config{
		Verbose: v.GetBool("verbose"),
		Quiet:   v.GetBool("quiet"),
		NoColor: v.GetBool("no-color") || os.Getenv("NO_COLOR") != "",
		Format:  v.GetString("format"),
		Yes:     v.GetBool("yes"),

		ConfigFile: v.ConfigFileUsed(),

		StorageBackend: v.GetString("storage.backend"),
		StoragePath:    v.GetString("storage.path"),
		QuotaBytes:     v.GetInt64("storage.quota_bytes"),
		RedisAddr:      v.GetString("storage.redis_addr"),
		RedisPassword:  v.GetString("storage.redis_password"),
		RedisDB:        v.GetInt("storage.redis_db"),
		CatalogKey:     v.GetString("storage.catalog_key"),
		FavoritesKey:   v.GetString("storage.favorites_key"),

		SeedDemo: v.GetBool("seed_demo"),
		OnError:  v.GetString("import.on_error"),

		ServerHost:     v.GetString("server.host"),
		ServerPort:     v.GetInt("server.port"),
		CORSOrigins:    v.GetStringSlice("server.cors_origins"),
		CacheTTL:       v.GetDuration("server.cache_ttl"),
		MaxUploadBytes: v.GetInt64("server.max_upload_bytes"),
		FolderRoot:     v.GetString("server.folder_root"),

		LogLevel:    v.GetString("log.level"),
		EnvLogLevel: os.Getenv("LOG_LEVEL"),
		LogFormat:   getEnvOrDefault("LOG_FORMAT", v.GetString("log.format")),
		LogOutput:   getEnvOrDefault("LOG_OUTPUT", v.GetString("log.output")),
	}

	return config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("storage.backend", string(storage.BackendFile))
	v.SetDefault("storage.path", constants.DefaultDataPath)
	v.SetDefault("storage.quota_bytes", 0)
	v.SetDefault("storage.redis_addr", "localhost:6379")
	v.SetDefault("storage.redis_db", 0)
	v.SetDefault("storage.catalog_key", constants.CatalogKey)
	v.SetDefault("storage.favorites_key", constants.FavoritesKey)
	v.SetDefault("seed_demo", true)
	v.SetDefault("import.on_error", "abort")
	v.SetDefault("server.host", "localhost")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.cors_origins", []string{})
	v.SetDefault("server.cache_ttl", constants.CacheTTL)
	v.SetDefault("server.max_upload_bytes", constants.MaxUploadBytes)
	v.SetDefault("log.format", "auto")
	v.SetDefault("log.output", "stderr")
}

// StorageConfig resolves the storage settings. The path is expanded; the
// sqlite backend stores its database file inside the data directory.
func (c *Config) StorageConfig() (storage.Config, error) {
	backend, err := storage.ParseBackend(c.StorageBackend)
	if err != nil {
		return storage.Config{}, err
	}
	path, err := expandHome(c.StoragePath)
	if err != nil {
		return storage.Config{}, err
	}
	if backend == storage.BackendSQLite && filepath.Ext(path) == "" {
		path = filepath.Join(path, "signlib.db")
	}
	return storage.Config{
		Backend:       backend,
		Path:          path,
		QuotaBytes:    c.QuotaBytes,
		RedisAddr:     c.RedisAddr,
		RedisPassword: c.RedisPassword,
		RedisDB:       c.RedisDB,
	}, nil
}

// loadEnvFiles loads environment variables from .env files.
// .env.local overrides .env.
func loadEnvFiles() {
	for _, envFile := range []string{".env.local", ".env"} {
		_ = godotenv.Load(envFile)
	}
}

func expandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.NewConfigError("config", "resolving home directory", err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}

// getEnvOrDefault returns the environment variable value or the default if not set.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
