package services

import (
	"context"
	"encoding/json"
	"sync"
	"testing"

	"memories-chain/internal/domain/memory"
	"memories-chain/internal/domain/user"
	"memories-chain/internal/events"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type capturingPublisher struct {
	mu       sync.Mutex
	payloads map[string][]byte
}

func newCapturingPublisher() *capturingPublisher {
	return &capturingPublisher{payloads: make(map[string][]byte)}
}

func (p *capturingPublisher) Publish(ctx context.Context, channel string, payload []byte) error {
	p.mu.Lock()
	p.payloads[channel] = payload
	p.mu.Unlock()
	return nil
}

func (p *capturingPublisher) channels() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.payloads))
	for ch := range p.payloads {
		out = append(out, ch)
	}
	return out
}

func TestChangePublisher_FormCreatedFansOut(t *testing.T) {
	sink := newCapturingPublisher()
	p := NewChangePublisher(sink, nil, nil)

	form := memory.MemoryForm{ID: uuid.New(), Title: "Trip", CreatedBy: uuid.New()}
	p.FormCreated(context.Background(), form)

	assert.ElementsMatch(t, []string{
		"changes:memory_forms",
		"changes:memory_forms:creator:" + form.CreatedBy.String(),
	}, sink.channels())

	var e events.ChangeEvent
	require.NoError(t, json.Unmarshal(sink.payloads["changes:memory_forms"], &e))
	assert.Equal(t, events.TableMemoryForms, e.Table)
	assert.Equal(t, events.OpInsert, e.Operation)
	assert.Equal(t, form.ID.String(), e.FormID)
	assert.NotNil(t, e.Record)
}

func TestChangePublisher_OwnerAddedSignalsWalletRefresh(t *testing.T) {
	sink := newCapturingPublisher()
	p := NewChangePublisher(sink, nil, nil)

	owner := memory.FormOwner{ID: uuid.New(), FormID: uuid.New(), WalletAddress: "0xBBB"}
	p.OwnerAdded(context.Background(), owner)

	assert.ElementsMatch(t, []string{
		"changes:form_owners",
		"changes:form_owners:form:" + owner.FormID.String(),
		"changes:wallet:0xBBB",
	}, sink.channels())

	// The wallet channel gets a refresh signal with no record body.
	var refresh events.ChangeEvent
	require.NoError(t, json.Unmarshal(sink.payloads["changes:wallet:0xBBB"], &refresh))
	assert.Equal(t, "null", string(refresh.Record))
	assert.Equal(t, "0xBBB", refresh.WalletAddress)
}

func TestChangePublisher_NilIsNoOp(t *testing.T) {
	var p *ChangePublisher
	p.UserCreated(context.Background(), user.User{WalletAddress: "0xAAA"})
	p.FormCreated(context.Background(), memory.MemoryForm{})
	p.OwnerAdded(context.Background(), memory.FormOwner{})
	p.PhotoAdded(context.Background(), memory.Photo{})
}
