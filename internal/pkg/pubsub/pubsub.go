package pubsub

import (
	"context"
	"encoding/json"

	"github.com/go-redis/redis/v8"
)

// EventMessage 埋点事件广播消息
type EventMessage struct {
	Type       string                 `json:"type"`
	UserID     *int64                 `json:"user_id,omitempty"`
	EventType  string                 `json:"event_type"`
	EventProps map[string]interface{} `json:"event_props,omitempty"`
}

// Publisher Redis 发布者
type Publisher struct {
	client  *redis.Client
	channel string
}

// NewPublisher 创建发布者
func NewPublisher(client *redis.Client, channel string) *Publisher {
	return &Publisher{client: client, channel: channel}
}

// PublishEvent 发布事件消息（尽力而为，调用方忽略错误）
func (p *Publisher) PublishEvent(ctx context.Context, msg *EventMessage) error {
	msg.Type = "report_event"

	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	return p.client.Publish(ctx, p.channel, data).Err()
}

// Subscriber Redis 订阅者
type Subscriber struct {
	client  *redis.Client
	channel string
}

// NewSubscriber 创建订阅者
func NewSubscriber(client *redis.Client, channel string) *Subscriber {
	return &Subscriber{client: client, channel: channel}
}

// Listen 订阅事件消息，解析失败的消息丢弃
func (s *Subscriber) Listen(ctx context.Context) (<-chan *EventMessage, func() error) {
	sub := s.client.Subscribe(ctx, s.channel)
	out := make(chan *EventMessage)

	go func() {
		defer close(out)
		for raw := range sub.Channel() {
			var msg EventMessage
			if err := json.Unmarshal([]byte(raw.Payload), &msg); err != nil {
				continue
			}
			select {
			case out <- &msg:
			case <-ctx.Done():
				return
			}
		}
	}()

	return out, sub.Close
}
