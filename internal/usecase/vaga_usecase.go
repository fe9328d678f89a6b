package usecase

import (
	"context"

	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/apperror"
	"go-jobboard-backend/pkg/validation"

	"github.com/go-playground/validator/v10"
)

type vagaUsecase struct {
	vagaRepo domain.VagaRepository
	validate *validator.Validate
}

func NewVagaUsecase(vagaRepo domain.VagaRepository, validate *validator.Validate) domain.VagaUsecase {
	return &vagaUsecase{
		vagaRepo: vagaRepo,
		validate: validate,
	}
}

func (u *vagaUsecase) Create(ctx context.Context, in domain.VagaInput) (*domain.Vaga, error) {
	if err := u.validate.Struct(in); err != nil {
		return nil, apperror.Validation(msgRequiredFields, validation.FormatValidationErrors(err)...)
	}

	vaga := &domain.Vaga{
		Titulo:       in.Titulo,
		Empresa:      in.Empresa,
		Descricao:    in.Descricao,
		Requisitos:   in.Requisitos,
		Salario:      in.Salario,
		Localizacao:  in.Localizacao,
		TipoContrato: in.TipoContrato,
		Curso:        in.Curso,
	}
	if err := u.vagaRepo.Create(ctx, vaga); err != nil {
		return nil, apperror.Internal(err)
	}
	return vaga, nil
}

func (u *vagaUsecase) GetByID(ctx context.Context, id string) (*domain.Vaga, error) {
	vaga, err := u.vagaRepo.GetByID(ctx, id)
	if err != nil {
		return nil, vagaErr(err)
	}
	return vaga, nil
}

func (u *vagaUsecase) List(ctx context.Context) ([]domain.Vaga, error) {
	vagas, err := u.vagaRepo.List(ctx)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return vagas, nil
}

func (u *vagaUsecase) Update(ctx context.Context, id string, patch domain.VagaPatch) (*domain.Vaga, error) {
	if err := u.validate.Struct(patch); err != nil {
		return nil, apperror.Validation(msgBlankFields, validation.FormatValidationErrors(err)...)
	}

	if err := u.vagaRepo.Update(ctx, id, patch); err != nil {
		return nil, vagaErr(err)
	}
	return u.GetByID(ctx, id)
}

// Delete does not touch users' saved lists; stale ids are dropped by ListSaved.
func (u *vagaUsecase) Delete(ctx context.Context, id string) error {
	if err := u.vagaRepo.Delete(ctx, id); err != nil {
		return vagaErr(err)
	}
	return nil
}
