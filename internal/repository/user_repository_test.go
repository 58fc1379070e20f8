package repository

import (
	"context"
	"testing"

	"memories-chain/internal/domain/user"
	memories_errors "memories-chain/pkg/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestUserRepository_CreateAndGet(t *testing.T) {
	db := newTestDB(t)
	r := NewUserRepository(db)
	ctx := context.Background()

	u := user.User{WalletAddress: "0xAAA"}
	err := r.Create(ctx, &u)
	assert.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, u.ID)

	got, err := r.GetByWallet(ctx, "0xAAA")
	assert.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	byID, err := r.GetByID(ctx, u.ID)
	assert.NoError(t, err)
	assert.Equal(t, "0xAAA", byID.WalletAddress)

	// wallet_address is unique; a second insert must fail
	dup := user.User{WalletAddress: "0xAAA"}
	err = r.Create(ctx, &dup)
	assert.Error(t, err)

	_, err = r.GetByWallet(ctx, "0xNEVER")
	assert.ErrorIs(t, err, memories_errors.ErrNotFound)

	_, err = r.GetByID(ctx, uuid.New())
	assert.ErrorIs(t, err, memories_errors.ErrNotFound)
}

func TestUserRepository_DeleteByWallet(t *testing.T) {
	db := newTestDB(t)
	r := NewUserRepository(db)
	ctx := context.Background()

	u := user.User{WalletAddress: "test_123"}
	assert.NoError(t, r.Create(ctx, &u))

	assert.NoError(t, r.DeleteByWallet(ctx, "test_123"))

	_, err := r.GetByWallet(ctx, "test_123")
	assert.ErrorIs(t, err, memories_errors.ErrNotFound)

	err = r.DeleteByWallet(ctx, "test_123")
	assert.ErrorIs(t, err, memories_errors.ErrNotFound)
}
