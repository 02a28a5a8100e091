package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/valkey-io/valkey-go"

	"github.com/rentkit/outreach-console/environments"
	"github.com/rentkit/outreach-console/internal/domain"
	"github.com/rentkit/outreach-console/pkg/logger"
)

type Client struct {
	client valkey.Client
}

const (
	recentSendKeyPrefix = "recent_send:"
	recentSendTTL       = 24 * time.Hour
)

func NewRedisClient(cfg environments.CacheConfig) (*Client, error) {
	client, err := valkey.NewClient(valkey.ClientOption{
		InitAddress: []string{fmt.Sprintf("%s:%s", cfg.Host, cfg.Port)},
		Password:    cfg.Password,
		SelectDB:    cfg.DB,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Valkey client: %w", err)
	}

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
		client.Close()

		return nil, fmt.Errorf("failed to connect to cache: %w", err)
	}

	logger.Infof("Connected to cache (via Valkey client)")

	return &Client{client: client}, nil
}

func recentSendKey(ch domain.Channel, id int64) string {
	return fmt.Sprintf("%s%s:%d", recentSendKeyPrefix, ch, id)
}

// CacheRecentSend records a broadcast send under a TTL key so the console
// can show recent activity without hitting MySQL.
func (c *Client) CacheRecentSend(ctx context.Context, ch domain.Channel, id int64, sentAt time.Time) error {
	entry := domain.RecentSend{
		Channel:   ch,
		MessageID: id,
		SentAt:    sentAt,
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to marshal cache entry: %w", err)
	}

	key := recentSendKey(ch, id)

	err = c.client.Do(ctx, c.client.B().Set().Key(key).Value(string(data)).Ex(recentSendTTL).Build()).Error()
	if err != nil {
		return fmt.Errorf("failed to cache recent send: %w", err)
	}

	logger.Debugf("Cached recent send %s:%d", ch, id)

	return nil
}

// GetRecentSends scans all recent-send keys and returns their entries.
// Entries that fail to load or parse are skipped.
func (c *Client) GetRecentSends(ctx context.Context) ([]domain.RecentSend, error) {
	pattern := fmt.Sprintf("%s*", recentSendKeyPrefix)

	var keys []string
	var cursor uint64
	for {
		result := c.client.Do(ctx, c.client.B().Scan().Cursor(cursor).Match(pattern).Count(100).Build())
		if result.Error() != nil {
			return nil, fmt.Errorf("failed to scan cache keys: %w", result.Error())
		}

		scanResult, err := result.AsScanEntry()
		if err != nil {
			return nil, fmt.Errorf("failed to parse scan result: %w", err)
		}

		keys = append(keys, scanResult.Elements...)
		cursor = scanResult.Cursor

		if cursor == 0 {
			break
		}
	}

	sends := make([]domain.RecentSend, 0, len(keys))

	for _, key := range keys {
		getResult := c.client.Do(ctx, c.client.B().Get().Key(key).Build())
		if getResult.Error() != nil {
			continue
		}

		data, err := getResult.ToString()
		if err != nil {
			continue
		}

		var entry domain.RecentSend
		if err := json.Unmarshal([]byte(data), &entry); err != nil {
			logger.Warnf("failed to parse cached send %q: %v", key, err)
			continue
		}

		sends = append(sends, entry)
	}

	return sends, nil
}

func (c *Client) Close() error {
	c.client.Close()
	return nil
}

func (c *Client) Ping(ctx context.Context) error {
	return c.client.Do(ctx, c.client.B().Ping().Build()).Error()
}
