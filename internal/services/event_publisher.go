package services

import (
	"context"
	"encoding/json"
	"time"

	"memories-chain/internal/domain/memory"
	"memories-chain/internal/domain/user"
	"memories-chain/internal/events"
	"memories-chain/pkg/logger"
)

// ChangePublisher fans row changes out to the realtime relay. Publishing is
// best effort: a failed publish never fails the write that produced it.
type ChangePublisher struct {
	pub      events.Publisher
	resolver *events.ChannelResolver
	logger   *logger.Logger
}

func NewChangePublisher(pub events.Publisher, resolver *events.ChannelResolver, l *logger.Logger) *ChangePublisher {
	if resolver == nil {
		resolver = events.NewChannelResolver()
	}
	return &ChangePublisher{pub: pub, resolver: resolver, logger: l}
}

func (p *ChangePublisher) UserCreated(ctx context.Context, u user.User) {
	p.publish(ctx, events.ChangeEvent{
		Table:         events.TableUsers,
		Operation:     events.OpInsert,
		Record:        marshalRecord(u),
		OccurredAt:    time.Now(),
		WalletAddress: u.WalletAddress,
	})
}

func (p *ChangePublisher) FormCreated(ctx context.Context, f memory.MemoryForm) {
	p.publish(ctx, events.ChangeEvent{
		Table:      events.TableMemoryForms,
		Operation:  events.OpInsert,
		Record:     marshalRecord(f),
		OccurredAt: time.Now(),
		CreatorID:  f.CreatedBy.String(),
		FormID:     f.ID.String(),
	})
}

func (p *ChangePublisher) OwnerAdded(ctx context.Context, o memory.FormOwner) {
	p.publish(ctx, events.ChangeEvent{
		Table:      events.TableFormOwners,
		Operation:  events.OpInsert,
		Record:     marshalRecord(o),
		OccurredAt: time.Now(),
		FormID:     o.FormID.String(),
	})

	// An ownership grant does not carry the affected form's content, so the
	// wallet-scoped channel gets a null-record refresh signal instead.
	p.publishTo(ctx, events.WalletChannel(o.WalletAddress), events.ChangeEvent{
		Table:         events.TableFormOwners,
		Operation:     events.OpInsert,
		Record:        nil,
		OccurredAt:    time.Now(),
		FormID:        o.FormID.String(),
		WalletAddress: o.WalletAddress,
	})
}

func (p *ChangePublisher) PhotoAdded(ctx context.Context, ph memory.Photo) {
	p.publish(ctx, events.ChangeEvent{
		Table:      events.TablePhotos,
		Operation:  events.OpInsert,
		Record:     marshalRecord(ph),
		OccurredAt: time.Now(),
		FormID:     ph.FormID.String(),
	})
}

func (p *ChangePublisher) publish(ctx context.Context, e events.ChangeEvent) {
	if p == nil || p.pub == nil {
		return
	}
	for _, channel := range p.resolver.ResolveChannels(e) {
		p.publishTo(ctx, channel, e)
	}
}

func (p *ChangePublisher) publishTo(ctx context.Context, channel string, e events.ChangeEvent) {
	if p == nil || p.pub == nil {
		return
	}
	payload, err := json.Marshal(e)
	if err != nil {
		if p.logger != nil {
			p.logger.Warnf("failed to marshal change event for %s: %s", channel, err)
		}
		return
	}
	if err := p.pub.Publish(ctx, channel, payload); err != nil && p.logger != nil {
		p.logger.Warnf("failed to publish change event to %s: %s", channel, err)
	}
}

func marshalRecord(v any) json.RawMessage {
	data, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	return data
}
