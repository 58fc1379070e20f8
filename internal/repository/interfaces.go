package repository

import (
	"context"

	"memories-chain/internal/domain/memory"
	"memories-chain/internal/domain/user"

	"github.com/google/uuid"
)

type UserRepository interface {
	Create(ctx context.Context, u *user.User) error
	GetByID(ctx context.Context, id uuid.UUID) (user.User, error)
	GetByWallet(ctx context.Context, walletAddress string) (user.User, error)
	// DeleteByWallet exists for the diagnostic probe only; the application
	// never deletes users.
	DeleteByWallet(ctx context.Context, walletAddress string) error
}

type MemoryRepository interface {
	CreateForm(ctx context.Context, f *memory.MemoryForm) error
	AddOwners(ctx context.Context, owners []memory.FormOwner) error
	AddPhotos(ctx context.Context, photos []memory.Photo) error
	GetAggregate(ctx context.Context, id uuid.UUID) (memory.MemoryForm, error)
	ListByCreator(ctx context.Context, creatorID uuid.UUID) ([]memory.MemoryForm, error)
	ListByIDs(ctx context.Context, ids []uuid.UUID) ([]memory.MemoryForm, error)
	ListAll(ctx context.Context) ([]memory.MemoryForm, error)
	OwnedFormIDs(ctx context.Context, walletAddress string) ([]uuid.UUID, error)
}
