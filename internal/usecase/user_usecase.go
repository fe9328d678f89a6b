package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/apperror"
	"go-jobboard-backend/pkg/security"
	"go-jobboard-backend/pkg/validation"

	"github.com/go-playground/validator/v10"
)

// PasswordHasher derives and checks credential digests.
type PasswordHasher interface {
	Hash(password string) (string, error)
	// Compare returns security.ErrPasswordMismatch when password is wrong.
	Compare(digest, password string) error
}

type userUsecase struct {
	userRepo domain.UserRepository
	hasher   PasswordHasher
	validate *validator.Validate
}

func NewUserUsecase(userRepo domain.UserRepository, hasher PasswordHasher, validate *validator.Validate) domain.UserUsecase {
	return &userUsecase{
		userRepo: userRepo,
		hasher:   hasher,
		validate: validate,
	}
}

// Register creates an account. The email check and the insert are separate
// store calls, so two concurrent registrations with the same email can both
// succeed.
func (u *userUsecase) Register(ctx context.Context, in domain.RegisterInput) (*domain.PublicUser, error) {
	if err := u.validate.Struct(in); err != nil {
		return nil, apperror.Validation(msgRequiredFields, validation.FormatValidationErrors(err)...)
	}

	_, err := u.userRepo.FindByEmail(ctx, in.Email)
	switch {
	case err == nil:
		return nil, apperror.Conflict(msgEmailTaken)
	case !errors.Is(err, domain.ErrNotFound):
		return nil, apperror.Internal(err)
	}

	digest, err := u.hashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Name:     in.Name,
		Email:    in.Email,
		Course:   in.Course,
		Password: digest,
		Saved:    []string{},
	}
	if err := u.userRepo.Create(ctx, user); err != nil {
		return nil, apperror.Internal(err)
	}

	pub := user.Public()
	return &pub, nil
}

// Authenticate verifies credentials. An unknown email is a NotFound error
// answered with 401, a wrong password an Unauthorized error.
func (u *userUsecase) Authenticate(ctx context.Context, in domain.LoginInput) (*domain.PublicUser, error) {
	if err := u.validate.Struct(in); err != nil {
		return nil, apperror.Validation(msgLoginRequired, validation.FormatValidationErrors(err)...)
	}

	user, err := u.userRepo.FindByEmail(ctx, in.Email)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, apperror.NotFound(msgUserNotFound).WithCode(http.StatusUnauthorized)
	}
	if err != nil {
		return nil, apperror.Internal(err)
	}

	if err := u.hasher.Compare(user.Password, in.Password); err != nil {
		if errors.Is(err, security.ErrPasswordMismatch) {
			return nil, apperror.Unauthorized(msgWrongPassword)
		}
		return nil, apperror.Internal(err)
	}

	pub := user.Public()
	return &pub, nil
}

func (u *userUsecase) GetByID(ctx context.Context, id string) (*domain.PublicUser, error) {
	user, err := u.find(ctx, id)
	if err != nil {
		return nil, err
	}
	pub := user.Public()
	return &pub, nil
}

func (u *userUsecase) ListAll(ctx context.Context) ([]domain.PublicUser, error) {
	users, err := u.userRepo.List(ctx)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return domain.PublicUsers(users), nil
}

// Update overwrites every field present in in. Present fields must not be
// blank. Email uniqueness is not re-checked.
func (u *userUsecase) Update(ctx context.Context, id string, in domain.UpdateUserInput) (*domain.PublicUser, error) {
	if err := u.validate.Struct(in); err != nil {
		return nil, apperror.Validation(msgBlankFields, validation.FormatValidationErrors(err)...)
	}
	if _, err := u.find(ctx, id); err != nil {
		return nil, err
	}

	patch := domain.UserPatch{
		Name:   in.Name,
		Email:  in.Email,
		Course: in.Course,
	}
	if in.Password != nil {
		digest, err := u.hashPassword(*in.Password)
		if err != nil {
			return nil, err
		}
		patch.Password = &digest
	}

	if err := u.userRepo.Update(ctx, id, patch); err != nil {
		return nil, userErr(err)
	}
	return u.GetByID(ctx, id)
}

func (u *userUsecase) Delete(ctx context.Context, id string) error {
	if _, err := u.find(ctx, id); err != nil {
		return err
	}
	if err := u.userRepo.Delete(ctx, id); err != nil {
		return userErr(err)
	}
	return nil
}

func (u *userUsecase) find(ctx context.Context, id string) (*domain.User, error) {
	user, err := u.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, userErr(err)
	}
	return user, nil
}

func userErr(err error) error {
	if errors.Is(err, domain.ErrNotFound) {
		return apperror.NotFound(msgUserNotFound)
	}
	return apperror.Internal(err)
}

func vagaErr(err error) error {
	if errors.Is(err, domain.ErrNotFound) {
		return apperror.NotFound(msgVagaNotFound)
	}
	return apperror.Internal(err)
}

// hashPassword maps an over-long password to a validation error instead of a
// server fault.
func (u *userUsecase) hashPassword(password string) (string, error) {
	digest, err := u.hasher.Hash(password)
	if errors.Is(err, security.ErrPasswordTooLong) {
		return "", apperror.Validation(msgPasswordLong,
			fmt.Sprintf("Senha: Máximo de %d bytes", security.MaxPasswordBytes))
	}
	if err != nil {
		return "", apperror.Internal(err)
	}
	return digest, nil
}
