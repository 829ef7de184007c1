// Package constants provides shared constants used throughout the signlib codebase.
// This includes storage keys, file permissions, server timeouts and other values
// that should be consistent across the application.
package constants

import "time"

// Storage key constants name the two persisted blobs.
// A format change requires a new key; the catalog key already carries a version suffix.
const (
	// CatalogKey holds the JSON array of video records
	CatalogKey = "signlib_v4"

	// FavoritesKey holds the JSON array of favorite video ids
	FavoritesKey = "signlib_favs_v1"
)

// File permission constants define standard Unix file permissions
const (
	// DirPermissions is the default permission for created directories (rwxr-xr-x)
	DirPermissions = 0755

	// FilePermissions is the default permission for created files (rw-r--r--)
	FilePermissions = 0644

	// SecureFilePermissions is for the persisted library files (rw-------)
	SecureFilePermissions = 0600
)

// Timeout constants define various timeout durations used in the application
const (
	// DefaultTimeout is the standard timeout for storage round trips
	DefaultTimeout = 10 * time.Second

	// ServerReadTimeout bounds reading an HTTP request, uploads included
	ServerReadTimeout = 5 * time.Minute

	// ServerWriteTimeout bounds writing an HTTP response, streams excluded
	ServerWriteTimeout = 5 * time.Minute

	// ServerIdleTimeout closes idle keep-alive connections
	ServerIdleTimeout = 2 * time.Minute

	// ShutdownTimeout is the grace period for in-flight requests on shutdown
	ShutdownTimeout = 10 * time.Second

	// WebSocketPingInterval is how often idle websocket clients are pinged
	WebSocketPingInterval = 30 * time.Second
)

// Limit constants define various limits and capacities
const (
	// ChannelBufferSize is the default buffer size for event channels
	ChannelBufferSize = 64

	// MaxUploadBytes bounds a single multipart upload request (512 MiB)
	MaxUploadBytes = 512 << 20
)

// Cache constants
const (
	// CacheTTL is the default time-to-live for cached query results
	CacheTTL = 5 * time.Minute

	// CacheCleanupInterval is how often to clean expired cache entries
	CacheCleanupInterval = 10 * time.Minute
)

// Path constants
const (
	// DefaultDataPath is the default directory for the file and sqlite backends
	DefaultDataPath = "~/.signlib"

	// DefaultConfigName is the config file name searched in home and working directory
	DefaultConfigName = ".signlib"
)

// Format constants
const (
	// TimeFormatHuman is a human-readable time format
	TimeFormatHuman = "Jan 2, 2006 at 3:04pm"

	// TimeFormatDate is the short date shown in tables
	TimeFormatDate = "2006-01-02"
)

// Message constants carry user-facing texts shared by every front end
const (
	// MsgStorageFull is surfaced when a save is rejected by the storage substrate
	MsgStorageFull = "Storage almost full — large video files may not save"

	// MsgRelinkFolder is surfaced when a folder record has no live file
	MsgRelinkFolder = "Re-link your folder to watch this video"
)
