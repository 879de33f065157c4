package config

import "time"

const (
	DefaultHTTPPort          = "8080"
	DefaultShutdownTimeout   = 10 * time.Second
	DefaultFetchTimeout      = 10 * time.Second
	DefaultSessionStaleAfter = 30 * time.Minute
	DefaultSessionNamespace  = "bluetec:products-cache"
	DefaultPreloadConcurrent = 4
	DefaultPreloadTimeout    = 5 * time.Second
	DefaultProviderTimeout   = 8 * time.Second
	DefaultPGMaxConns        = 5
	DefaultPGMinConns        = 1
)
