package services

import (
	"context"
	"errors"

	"memories-chain/internal/domain/user"
	"memories-chain/internal/repository"
	memories_errors "memories-chain/pkg/errors"
	"memories-chain/pkg/logger"
)

type UserService struct {
	repo   repository.UserRepository
	events *ChangePublisher
	logger *logger.Logger
}

func NewUserService(repo repository.UserRepository, events *ChangePublisher, l *logger.Logger) *UserService {
	return &UserService{repo: repo, events: events, logger: l}
}

// GetOrCreate resolves the user behind a wallet address, inserting a row on
// first contact. The returned bool reports whether a row was created.
//
// Two first-time requests for the same wallet may race on the insert; the
// loser hits the unique index on wallet_address and resolves by re-fetch, so
// logical creation is exactly-once and the race never surfaces to callers.
func (s *UserService) GetOrCreate(ctx context.Context, walletAddress string) (user.User, bool, error) {
	if walletAddress == "" {
		return user.User{}, false, memories_errors.ErrInvalidInput
	}

	existing, err := s.repo.GetByWallet(ctx, walletAddress)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, memories_errors.ErrNotFound) {
		return user.User{}, false, err
	}

	u := user.User{WalletAddress: walletAddress}
	if err := s.repo.Create(ctx, &u); err != nil {
		if errors.Is(err, memories_errors.ErrAlreadyExists) {
			winner, ferr := s.repo.GetByWallet(ctx, walletAddress)
			if ferr != nil {
				return user.User{}, false, ferr
			}
			return winner, false, nil
		}
		return user.User{}, false, err
	}

	s.events.UserCreated(ctx, u)
	return u, true, nil
}

// GetByWallet looks a user up by wallet address. Absence is an error here;
// GET /users treats a miss as 404.
func (s *UserService) GetByWallet(ctx context.Context, walletAddress string) (user.User, error) {
	if walletAddress == "" {
		return user.User{}, memories_errors.ErrInvalidInput
	}
	return s.repo.GetByWallet(ctx, walletAddress)
}
