package archive

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Client provides instance-scoped Redis operations for the lineage archive.
// All keys are automatically namespaced with the instance name.
// The client is safe for concurrent use.
type Client struct {
	rdb          *redis.Client
	instanceName string
	logger       *zap.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the logger used for skipped records and other diagnostics.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewClient creates a new archive client for the specified instance.
//
// Parameters:
//   - redisOpts: Redis connection options (address, password, DB, etc.)
//   - instanceName: archive namespace (must not be empty)
//
// Returns an error if instanceName is empty.
func NewClient(redisOpts *redis.Options, instanceName string, opts ...Option) (*Client, error) {
	if instanceName == "" {
		return nil, fmt.Errorf("instance name cannot be empty")
	}

	c := &Client{
		rdb:          redis.NewClient(redisOpts),
		instanceName: instanceName,
		logger:       zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// NewClientFromURL parses a redis:// URL and creates a client for it.
func NewClientFromURL(redisURL, instanceName string, opts ...Option) (*Client, error) {
	redisOpts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis URL: %w", err)
	}
	return NewClient(redisOpts, instanceName, opts...)
}

// InstanceName returns the namespace this client reads and writes.
func (c *Client) InstanceName() string {
	return c.instanceName
}

// Close closes the Redis connection. Implements io.Closer.
func (c *Client) Close() error {
	return c.rdb.Close()
}

// Ping verifies Redis connectivity.
func (c *Client) Ping(ctx context.Context) error {
	return c.rdb.Ping(ctx).Err()
}

// Save writes a lineage to Redis as a hash at
// genaialogy:{instance}:lineage:{id}. Saving the same lineage twice is safe.
func (c *Client) Save(ctx context.Context, l *Lineage) error {
	if err := l.Validate(); err != nil {
		return fmt.Errorf("invalid lineage: %w", err)
	}

	hash, err := LineageToHash(l)
	if err != nil {
		return fmt.Errorf("failed to serialize lineage: %w", err)
	}

	key := LineageKey(c.instanceName, l.ID)
	if err := c.rdb.HSet(ctx, key, hash).Err(); err != nil {
		return fmt.Errorf("failed to write lineage to Redis: %w", err)
	}

	c.logger.Debug("Lineage saved",
		zap.String("id", l.ID),
		zap.String("key", key),
		zap.Int("generations", l.Generations()))
	return nil
}

// Get retrieves a lineage by ID.
// Returns (nil, redis.Nil) if the lineage doesn't exist; use IsNotFound.
func (c *Client) Get(ctx context.Context, lineageID string) (*Lineage, error) {
	hashData, err := c.rdb.HGetAll(ctx, LineageKey(c.instanceName, lineageID)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read lineage from Redis: %w", err)
	}

	// HGetAll returns an empty map for missing keys
	if len(hashData) == 0 {
		return nil, redis.Nil
	}

	lineage, err := HashToLineage(hashData)
	if err != nil {
		return nil, fmt.Errorf("failed to deserialize lineage: %w", err)
	}
	return lineage, nil
}

// Exists checks if a lineage exists without fetching it.
func (c *Client) Exists(ctx context.Context, lineageID string) (bool, error) {
	n, err := c.rdb.Exists(ctx, LineageKey(c.instanceName, lineageID)).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check lineage existence: %w", err)
	}
	return n > 0, nil
}

// Delete removes a lineage. Returns redis.Nil if nothing was deleted.
func (c *Client) Delete(ctx context.Context, lineageID string) error {
	n, err := c.rdb.Del(ctx, LineageKey(c.instanceName, lineageID)).Result()
	if err != nil {
		return fmt.Errorf("failed to delete lineage: %w", err)
	}
	if n == 0 {
		return redis.Nil
	}
	return nil
}

// ScanIDs returns the IDs of all lineages whose ID starts with idPrefix,
// sorted lexically. It uses SCAN so large archives do not block the server.
func (c *Client) ScanIDs(ctx context.Context, idPrefix string) ([]string, error) {
	keyPrefix := LineageKeyPrefix(c.instanceName)
	iter := c.rdb.Scan(ctx, 0, LineagePattern(c.instanceName, idPrefix), 0).Iterator()

	var ids []string
	for iter.Next(ctx) {
		ids = append(ids, strings.TrimPrefix(iter.Val(), keyPrefix))
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan lineages: %w", err)
	}

	sort.Strings(ids)
	return ids, nil
}

// List returns every lineage in the instance, oldest first. Records that
// cannot be decoded are logged and skipped.
func (c *Client) List(ctx context.Context) ([]*Lineage, error) {
	ids, err := c.ScanIDs(ctx, "")
	if err != nil {
		return nil, err
	}

	lineages := make([]*Lineage, 0, len(ids))
	for _, id := range ids {
		l, err := c.Get(ctx, id)
		if err != nil {
			if IsNotFound(err) {
				// Deleted between SCAN and HGETALL.
				continue
			}
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			c.logger.Warn("Skipping malformed lineage",
				zap.String("key", LineageKey(c.instanceName, id)),
				zap.Error(err))
			continue
		}
		lineages = append(lineages, l)
	}

	sort.SliceStable(lineages, func(i, j int) bool {
		return lineages[i].CreatedAtMs < lineages[j].CreatedAtMs
	})
	return lineages, nil
}

// IsNotFound returns true if the error is a Redis "key not found" error (redis.Nil).
// Use this to check if Get or Delete found nothing.
func IsNotFound(err error) bool {
	return errors.Is(err, redis.Nil)
}
