package services

import (
	"context"
	"errors"
	"sort"
	"sync"

	"memories-chain/internal/domain/memory"
	"memories-chain/internal/repository"
	memories_errors "memories-chain/pkg/errors"
	"memories-chain/pkg/logger"

	"github.com/google/uuid"
)

type MemoryService struct {
	repo   repository.MemoryRepository
	users  repository.UserRepository
	events *ChangePublisher
	logger *logger.Logger
}

func NewMemoryService(repo repository.MemoryRepository, users repository.UserRepository, events *ChangePublisher, l *logger.Logger) *MemoryService {
	return &MemoryService{repo: repo, users: users, events: events, logger: l}
}

type PhotoInput struct {
	URL      string
	CID      string
	FileName string
	FileSize int64
	MimeType string
}

type CreateMemoryInput struct {
	Title       string
	Description string
	CreatedBy   uuid.UUID
	Owners      []string
	Photos      []PhotoInput
}

// CreateMemoryResult reports which parts of the aggregate landed. The form
// itself is always persisted on success; owners and photos are best effort
// and callers can retry the degraded parts.
type CreateMemoryResult struct {
	Form          memory.MemoryForm
	OwnersWritten bool
	PhotosWritten bool
}

// Create persists a memory form with its owners and photos as a sequential
// three-phase write, not one transaction. Losing an owner or photo row is
// recoverable by a later edit; losing the form is not, so only the first
// phase can fail the call.
func (s *MemoryService) Create(ctx context.Context, in CreateMemoryInput) (CreateMemoryResult, error) {
	if in.Title == "" || in.CreatedBy == uuid.Nil {
		return CreateMemoryResult{}, memories_errors.ErrInvalidInput
	}

	form := memory.MemoryForm{
		Title:       in.Title,
		Description: in.Description,
		CreatedBy:   in.CreatedBy,
	}
	if err := s.repo.CreateForm(ctx, &form); err != nil {
		return CreateMemoryResult{}, err
	}

	result := CreateMemoryResult{OwnersWritten: true, PhotosWritten: true}

	if len(in.Owners) > 0 {
		owners := make([]memory.FormOwner, 0, len(in.Owners))
		for _, wallet := range in.Owners {
			owners = append(owners, memory.FormOwner{
				FormID:        form.ID,
				WalletAddress: wallet,
			})
		}
		if err := s.repo.AddOwners(ctx, owners); err != nil {
			// Owners can be added later; the form survives.
			result.OwnersWritten = false
			if s.logger != nil {
				s.logger.Errorf("failed to add owners to form %s: %s", form.ID, err)
			}
		} else {
			for _, o := range owners {
				s.events.OwnerAdded(ctx, o)
			}
		}
	}

	if len(in.Photos) > 0 {
		photos := make([]memory.Photo, 0, len(in.Photos))
		for _, p := range in.Photos {
			photos = append(photos, memory.Photo{
				FormID:    form.ID,
				PinataURL: p.URL,
				PinataCID: p.CID,
				FileName:  p.FileName,
				FileSize:  p.FileSize,
				MimeType:  p.MimeType,
			})
		}
		if err := s.repo.AddPhotos(ctx, photos); err != nil {
			result.PhotosWritten = false
			if s.logger != nil {
				s.logger.Errorf("failed to add photos to form %s: %s", form.ID, err)
			}
		} else {
			for _, p := range photos {
				s.events.PhotoAdded(ctx, p)
			}
		}
	}

	aggregate, err := s.repo.GetAggregate(ctx, form.ID)
	if err != nil {
		// The write itself succeeded; degrade to the bare form.
		if s.logger != nil {
			s.logger.Errorf("failed to re-fetch form %s: %s", form.ID, err)
		}
		result.Form = form
	} else {
		result.Form = aggregate
	}

	s.events.FormCreated(ctx, result.Form)
	return result, nil
}

type ListMemoriesFilter struct {
	CreatedBy     uuid.UUID
	WalletAddress string
}

// List resolves the set of memory forms visible under the given filter.
// CreatedBy takes precedence over WalletAddress; with neither set, every form
// is returned. All branches order by created_at descending.
func (s *MemoryService) List(ctx context.Context, filter ListMemoriesFilter) ([]memory.MemoryForm, error) {
	switch {
	case filter.CreatedBy != uuid.Nil:
		return s.repo.ListByCreator(ctx, filter.CreatedBy)
	case filter.WalletAddress != "":
		return s.listForWallet(ctx, filter.WalletAddress)
	default:
		return s.repo.ListAll(ctx)
	}
}

// listForWallet computes the visible set for a wallet: forms it created
// unioned with forms it is granted ownership of, deduplicated by form id.
func (s *MemoryService) listForWallet(ctx context.Context, walletAddress string) ([]memory.MemoryForm, error) {
	u, err := s.users.GetByWallet(ctx, walletAddress)
	if err != nil {
		if errors.Is(err, memories_errors.ErrNotFound) {
			// An unregistered wallet has no memories.
			return []memory.MemoryForm{}, nil
		}
		return nil, err
	}

	// The two reads are independent; issue them together and join before the
	// union step.
	var (
		created    []memory.MemoryForm
		createdErr error
		ownedIDs   []uuid.UUID
		ownedErr   error
	)
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		created, createdErr = s.repo.ListByCreator(ctx, u.ID)
	}()
	go func() {
		defer wg.Done()
		ownedIDs, ownedErr = s.repo.OwnedFormIDs(ctx, walletAddress)
	}()
	wg.Wait()

	if createdErr != nil && ownedErr != nil {
		return nil, createdErr
	}
	if createdErr != nil {
		if s.logger != nil {
			s.logger.Errorf("failed to fetch created forms for %s: %s", walletAddress, createdErr)
		}
		created = nil
	}
	if ownedErr != nil {
		if s.logger != nil {
			s.logger.Errorf("failed to fetch owned form ids for %s: %s", walletAddress, ownedErr)
		}
		ownedIDs = nil
	}

	forms := created
	if len(ownedIDs) > 0 {
		seen := make(map[uuid.UUID]struct{}, len(forms))
		for _, f := range forms {
			seen[f.ID] = struct{}{}
		}
		owned, err := s.repo.ListByIDs(ctx, ownedIDs)
		if err != nil {
			if s.logger != nil {
				s.logger.Errorf("failed to fetch owned forms for %s: %s", walletAddress, err)
			}
		} else {
			for _, f := range owned {
				if _, dup := seen[f.ID]; dup {
					continue
				}
				forms = append(forms, f)
			}
		}
	}

	sort.Slice(forms, func(i, j int) bool {
		return forms[i].CreatedAt.After(forms[j].CreatedAt)
	})

	if forms == nil {
		forms = []memory.MemoryForm{}
	}
	return forms, nil
}
