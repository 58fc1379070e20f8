package repository

import (
	"context"
	"errors"

	"memories-chain/internal/domain/memory"
	memories_errors "memories-chain/pkg/errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PostgresMemoryRepository struct {
	db *gorm.DB
}

func NewMemoryRepository(db *gorm.DB) MemoryRepository {
	return &PostgresMemoryRepository{db: db}
}

func (r *PostgresMemoryRepository) CreateForm(ctx context.Context, f *memory.MemoryForm) error {
	res := r.db.WithContext(ctx).
		Omit("Photos", "Owners", "Creator").
		Create(f)
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrDuplicatedKey) {
			return memories_errors.ErrAlreadyExists
		}
		return res.Error
	}
	return nil
}

func (r *PostgresMemoryRepository) AddOwners(ctx context.Context, owners []memory.FormOwner) error {
	if len(owners) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&owners).Error
}

func (r *PostgresMemoryRepository) AddPhotos(ctx context.Context, photos []memory.Photo) error {
	if len(photos) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&photos).Error
}

func (r *PostgresMemoryRepository) GetAggregate(ctx context.Context, id uuid.UUID) (memory.MemoryForm, error) {
	var f memory.MemoryForm
	err := r.aggregateQuery(ctx).
		Where("id = ?", id).
		First(&f).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return memory.MemoryForm{}, memories_errors.ErrNotFound
		}
		return memory.MemoryForm{}, err
	}
	return f, nil
}

func (r *PostgresMemoryRepository) ListByCreator(ctx context.Context, creatorID uuid.UUID) ([]memory.MemoryForm, error) {
	var forms []memory.MemoryForm
	err := r.aggregateQuery(ctx).
		Where("created_by = ?", creatorID).
		Order("created_at DESC").
		Find(&forms).Error
	if err != nil {
		return nil, err
	}
	return forms, nil
}

func (r *PostgresMemoryRepository) ListByIDs(ctx context.Context, ids []uuid.UUID) ([]memory.MemoryForm, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var forms []memory.MemoryForm
	err := r.aggregateQuery(ctx).
		Where("id IN ?", ids).
		Find(&forms).Error
	if err != nil {
		return nil, err
	}
	return forms, nil
}

func (r *PostgresMemoryRepository) ListAll(ctx context.Context) ([]memory.MemoryForm, error) {
	var forms []memory.MemoryForm
	err := r.aggregateQuery(ctx).
		Order("created_at DESC").
		Find(&forms).Error
	if err != nil {
		return nil, err
	}
	return forms, nil
}

func (r *PostgresMemoryRepository) OwnedFormIDs(ctx context.Context, walletAddress string) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).
		Model(&memory.FormOwner{}).
		Where("wallet_address = ?", walletAddress).
		Pluck("form_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// aggregateQuery preloads the nested owners, photos and creator so callers
// never need a second round trip.
func (r *PostgresMemoryRepository) aggregateQuery(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Model(&memory.MemoryForm{}).
		Preload("Photos").
		Preload("Owners").
		Preload("Creator")
}
