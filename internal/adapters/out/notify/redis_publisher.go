package notify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"logistics/internal/core/ports"

	"github.com/redis/go-redis/v9"
)

const (
	channelNamespace = "logistics"
	alertsChannel    = channelNamespace + ":alerts"
)

type RedisOptions struct {
	URL          string
	Address      string
	Password     string
	DB           int
	PoolSize     int
	DialTimeout  time.Duration
	WriteTimeout time.Duration
}

type publisher interface {
	Publish(ctx context.Context, channel string, message any) *redis.IntCmd
}

// RedisPublisher pushes notices to pub/sub channels for live clients.
// Notifications go to logistics:notifications:<user id>, alerts to logistics:alerts.
type RedisPublisher struct {
	client publisher
	raw    *redis.Client
}

// NewRedisPublisher connects and pings the server.
func NewRedisPublisher(ctx context.Context, opts RedisOptions) (*RedisPublisher, error) {
	redisOpts, err := redisOptions(opts)
	if err != nil {
		return nil, err
	}
	raw := redis.NewClient(redisOpts)
	if err := raw.Ping(ctx).Err(); err != nil {
		_ = raw.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return &RedisPublisher{client: raw, raw: raw}, nil
}

func redisOptions(opts RedisOptions) (*redis.Options, error) {
	if opts.URL == "" && opts.Address == "" {
		return nil, errors.New("redis url or address is required")
	}

	var out *redis.Options
	if opts.URL != "" {
		parsed, err := redis.ParseURL(opts.URL)
		if err != nil {
			return nil, fmt.Errorf("parsing redis url: %w", err)
		}
		out = parsed
	} else {
		out = &redis.Options{Addr: opts.Address, Password: opts.Password, DB: opts.DB}
	}
	if out.PoolSize == 0 {
		out.PoolSize = opts.PoolSize
	}
	if out.DialTimeout == 0 {
		out.DialTimeout = opts.DialTimeout
	}
	if out.WriteTimeout == 0 {
		out.WriteTimeout = opts.WriteTimeout
	}
	return out, nil
}

type notificationMessage struct {
	UserID  string    `json:"user_id"`
	Kind    string    `json:"kind"`
	Title   string    `json:"title"`
	Message string    `json:"message"`
	At      time.Time `json:"at"`
}

type alertMessage struct {
	Kind       string    `json:"kind"`
	ShipmentID string    `json:"shipment_id"`
	ActorID    string    `json:"actor_id,omitempty"`
	Message    string    `json:"message"`
	At         time.Time `json:"at"`
}

func NotificationChannel(userID string) string {
	return channelNamespace + ":notifications:" + userID
}

func AlertsChannel() string { return alertsChannel }

func (p *RedisPublisher) SaveNotification(ctx context.Context, n ports.Notification) error {
	return p.publish(ctx, NotificationChannel(n.UserID.String()), notificationMessage{
		UserID:  n.UserID.String(),
		Kind:    string(n.Kind),
		Title:   n.Title,
		Message: n.Message,
		At:      n.At,
	})
}

func (p *RedisPublisher) SaveAlert(ctx context.Context, a ports.SystemAlert) error {
	msg := alertMessage{
		Kind:       string(a.Kind),
		ShipmentID: a.ShipmentID.String(),
		Message:    a.Message,
		At:         a.At,
	}
	if a.ActorID != nil {
		msg.ActorID = a.ActorID.String()
	}
	return p.publish(ctx, alertsChannel, msg)
}

func (p *RedisPublisher) publish(ctx context.Context, channel string, msg any) error {
	if p.client == nil {
		return errors.New("redis publisher not initialized")
	}
	payload, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	return p.client.Publish(ctx, channel, payload).Err()
}

// Ping is used by the health endpoint.
func (p *RedisPublisher) Ping(ctx context.Context) error {
	if p.raw == nil {
		return errors.New("redis publisher not initialized")
	}
	return p.raw.Ping(ctx).Err()
}

func (p *RedisPublisher) Close() error {
	if p.raw == nil {
		return nil
	}
	return p.raw.Close()
}
