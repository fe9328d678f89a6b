package usecase

import (
	"context"
	"errors"
	"net/http"

	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/apperror"

	"golang.org/x/sync/errgroup"
)

// maxSavedFetches bounds the vaga reads issued concurrently by ListSaved.
const maxSavedFetches = 16

type savedUsecase struct {
	userRepo domain.UserRepository
	vagaRepo domain.VagaRepository
}

func NewSavedUsecase(userRepo domain.UserRepository, vagaRepo domain.VagaRepository) domain.SavedUsecase {
	return &savedUsecase{
		userRepo: userRepo,
		vagaRepo: vagaRepo,
	}
}

func (u *savedUsecase) AddSaved(ctx context.Context, userID, vagaID string) error {
	var user *domain.User

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		user, err = u.userRepo.GetByID(gctx, userID)
		if err != nil {
			return userErr(err)
		}
		return nil
	})
	g.Go(func() error {
		if _, err := u.vagaRepo.GetByID(gctx, vagaID); err != nil {
			return vagaErr(err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return err
	}

	if user.HasSaved(vagaID) {
		return apperror.Conflict(msgAlreadySaved).WithCode(http.StatusBadRequest)
	}

	if err := u.userRepo.AddSaved(ctx, userID, vagaID); err != nil {
		return userErr(err)
	}
	return nil
}

func (u *savedUsecase) RemoveSaved(ctx context.Context, userID, vagaID string) error {
	user, err := u.userRepo.GetByID(ctx, userID)
	if err != nil {
		return userErr(err)
	}

	if !user.HasSaved(vagaID) {
		return apperror.Conflict(msgNotSaved).WithCode(http.StatusBadRequest)
	}

	if err := u.userRepo.RemoveSaved(ctx, userID, vagaID); err != nil {
		return userErr(err)
	}
	return nil
}

func (u *savedUsecase) ListSaved(ctx context.Context, userID string) ([]domain.Vaga, error) {
	user, err := u.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, userErr(err)
	}
	if len(user.Saved) == 0 {
		return []domain.Vaga{}, nil
	}

	found := make([]*domain.Vaga, len(user.Saved))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxSavedFetches)
	for i, vagaID := range user.Saved {
		g.Go(func() error {
			vaga, err := u.vagaRepo.GetByID(gctx, vagaID)
			if errors.Is(err, domain.ErrNotFound) {
				// deleted after being saved
				return nil
			}
			if err != nil {
				return err
			}
			found[i] = vaga
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, apperror.Internal(err)
	}

	vagas := make([]domain.Vaga, 0, len(found))
	for _, v := range found {
		if v != nil {
			vagas = append(vagas, *v)
		}
	}
	return vagas, nil
}
