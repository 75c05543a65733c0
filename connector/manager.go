package connector

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"
)

type standardConnector struct {
	name     string
	provider Provider
	config   Config
	logger   *slog.Logger
}

var globalManager = &Manager{
	providers: make(map[string]Provider),
}

type Manager struct {
	providers map[string]Provider
	mu        sync.RWMutex
}

func Register(name string, provider Provider) {
	globalManager.mu.Lock()
	defer globalManager.mu.Unlock()
	globalManager.providers[name] = provider
}

// Providers lists the registered provider names in sorted order.
func Providers() []string {
	globalManager.mu.RLock()
	defer globalManager.mu.RUnlock()
	names := make([]string, 0, len(globalManager.providers))
	for name := range globalManager.providers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func New(name string, config Config, opts ...Option) (Connector, error) {
	globalManager.mu.RLock()
	provider, ok := globalManager.providers[name]
	globalManager.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("provider %s not registered", name)
	}
	c := &standardConnector{
		name:     name,
		provider: provider,
		config:   config,
		logger:   slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func (c *standardConnector) Connect(ctx context.Context) (Connection, error) {
	if c.config.ConnectTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.config.ConnectTimeout)
		defer cancel()
	}

	start := time.Now()
	conn, err := c.provider.Connect(ctx, c.config)
	if err != nil {
		c.logger.Error("connect failed", "provider", c.name, "error", err)
		return nil, fmt.Errorf("connect %s: %w", c.name, err)
	}
	c.logger.Info("connected",
		"provider", c.name,
		"connection_id", conn.ID(),
		"dialect", conn.Dialect().Name(),
		"duration", time.Since(start),
	)
	return conn, nil
}

func (c *standardConnector) ConnectWithRetry(ctx context.Context, opts RetryOptions) (Connection, error) {
	return retryConnect(ctx, opts, c.Connect)
}

func (c *standardConnector) Close() error {
	return nil
}
