package config

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"
)

// ListScope controls whether ticket listing returns the full set or only the
// caller's own tickets for non-admin accounts.
type ListScope string

const (
	ListScopeAll   ListScope = "all"
	ListScopeOwner ListScope = "owner"
)

// Config holds application level configuration loaded from environment and flags.
type Config struct {
	RunAddress      string
	DatabaseURI     string
	JWTSecret       string
	TokenTTL        time.Duration
	ShutdownTimeout time.Duration
	MonitorInterval time.Duration
	NotifyAddress   string
	TicketListScope ListScope
	SeedUsers       bool
}

const (
	defaultRunAddress      = ":4000"
	defaultJWTSecret       = "dev_secret_change_me"
	defaultTokenTTL        = 2 * time.Hour
	defaultShutdownTimeout = 10 * time.Second
	defaultMonitorInterval = time.Minute
)

// Load parses configuration from flags and environment variables.
func Load() (*Config, error) {
	return load(os.Args[1:], os.LookupEnv)
}

type envLookup func(string) (string, bool)

func load(args []string, lookup envLookup) (*Config, error) {
	cfg := &Config{
		RunAddress:      getString(lookup, "RUN_ADDRESS", defaultRunAddress),
		DatabaseURI:     getString(lookup, "DATABASE_URI", ""),
		JWTSecret:       getString(lookup, "JWT_SECRET", defaultJWTSecret),
		TokenTTL:        getDuration(lookup, "TOKEN_TTL", defaultTokenTTL),
		ShutdownTimeout: getDuration(lookup, "SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
		MonitorInterval: getDuration(lookup, "MONITOR_INTERVAL", defaultMonitorInterval),
		NotifyAddress:   getString(lookup, "NOTIFY_ADDRESS", ""),
		TicketListScope: ListScope(getString(lookup, "TICKET_LIST_SCOPE", string(ListScopeAll))),
		SeedUsers:       getBool(lookup, "SEED_USERS", true),
	}

	fs := flag.NewFlagSet("ticketgate", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		tokenTTLStr        = cfg.TokenTTL.String()
		shutdownTimeoutStr = cfg.ShutdownTimeout.String()
		monitorIntervalStr = cfg.MonitorInterval.String()
		listScopeStr       = string(cfg.TicketListScope)
	)

	fs.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "HTTP server listen address")
	fs.StringVar(&cfg.DatabaseURI, "d", cfg.DatabaseURI, "PostgreSQL DSN (empty selects the in-memory store)")
	fs.StringVar(&cfg.JWTSecret, "jwt-secret", cfg.JWTSecret, "Secret for signing session tokens")
	fs.StringVar(&tokenTTLStr, "token-ttl", tokenTTLStr, "Session token lifetime")
	fs.StringVar(&shutdownTimeoutStr, "shutdown-timeout", shutdownTimeoutStr, "Graceful shutdown timeout")
	fs.StringVar(&monitorIntervalStr, "monitor-interval", monitorIntervalStr, "Store monitor interval (0 disables)")
	fs.StringVar(&cfg.NotifyAddress, "notify", cfg.NotifyAddress, "Scan notification endpoint (empty disables)")
	fs.StringVar(&listScopeStr, "list-scope", listScopeStr, "Ticket list scope: all or owner")
	fs.BoolVar(&cfg.SeedUsers, "seed", cfg.SeedUsers, "Seed development accounts on startup")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	var err error

	if cfg.TokenTTL, err = time.ParseDuration(tokenTTLStr); err != nil {
		return nil, fmt.Errorf("invalid token ttl: %w", err)
	}

	if cfg.ShutdownTimeout, err = time.ParseDuration(shutdownTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid shutdown timeout: %w", err)
	}

	if cfg.MonitorInterval, err = time.ParseDuration(monitorIntervalStr); err != nil {
		return nil, fmt.Errorf("invalid monitor interval: %w", err)
	}

	if secretFile, ok := lookup("JWT_SECRET_FILE"); ok && secretFile != "" {
		content, err := os.ReadFile(secretFile)
		if err != nil {
			return nil, fmt.Errorf("read jwt secret file: %w", err)
		}
		cfg.JWTSecret = string(content)
	}

	cfg.TicketListScope = ListScope(listScopeStr)
	if cfg.TicketListScope != ListScopeAll && cfg.TicketListScope != ListScopeOwner {
		return nil, fmt.Errorf("invalid ticket list scope %q", listScopeStr)
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("jwt secret must not be empty")
	}

	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = defaultTokenTTL
	}

	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	if cfg.MonitorInterval < 0 {
		cfg.MonitorInterval = 0
	}

	return cfg, nil
}

func getString(lookup envLookup, key, def string) string {
	if v, ok := lookup(key); ok && v != "" {
		return v
	}
	return def
}

func getBool(lookup envLookup, key string, def bool) bool {
	if v, ok := lookup(key); ok && v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

func getDuration(lookup envLookup, key string, def time.Duration) time.Duration {
	if v, ok := lookup(key); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
