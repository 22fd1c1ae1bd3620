package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rocketscienceinc/tictactoe-ai/internal/entity"
)

// Message is what subscribers of a session channel receive.
type Message struct {
	SessionID string          `json:"session_id"`
	Game      entity.Snapshot `json:"game"`
	SentAt    time.Time       `json:"sent_at"`
}

// Publisher fans snapshots out over Redis pub/sub. Nothing is stored.
type Publisher struct {
	client *redis.Client
	prefix string
}

// Connect - dials Redis and checks the connection.
func Connect(ctx context.Context, addr string) (*redis.Client, error) {
	conn := redis.NewClient(&redis.Options{
		Addr: addr,
	})

	if _, err := conn.Ping(ctx).Result(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return conn, nil
}

func NewPublisher(client *redis.Client, prefix string) *Publisher {
	return &Publisher{
		client: client,
		prefix: prefix,
	}
}

// Channel returns the pub/sub channel of a session.
func (that *Publisher) Channel(sessionID string) string {
	return that.prefix + sessionID
}

// OnStateChanged - publishes the snapshot on the session channel.
func (that *Publisher) OnStateChanged(ctx context.Context, sessionID string, snapshot entity.Snapshot) error {
	messageJSON, err := json.Marshal(Message{
		SessionID: sessionID,
		Game:      snapshot,
		SentAt:    time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("could not marshal snapshot: %w", err)
	}

	if err = that.client.Publish(ctx, that.Channel(sessionID), messageJSON).Err(); err != nil {
		return fmt.Errorf("failed to publish snapshot: %w", err)
	}

	return nil
}
