package websocket

import (
	"context"

	"memories-chain/internal/events"
)

// RedisBridge relays change events arriving over redis pub/sub into the hub.
// Redis channel names and hub channel names are identical.
type RedisBridge struct {
	subscriber events.Subscriber
	hub        *Hub
}

func NewRedisBridge(subscriber events.Subscriber, hub *Hub) *RedisBridge {
	return &RedisBridge{subscriber: subscriber, hub: hub}
}

func (b *RedisBridge) Run(ctx context.Context) error {
	return b.subscriber.Subscribe(ctx, []string{events.ChannelPattern}, func(channel string, payload []byte) {
		b.hub.Broadcast(channel, payload)
	})
}
