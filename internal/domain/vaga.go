package domain

import (
	"context"
	"time"
)

// Vaga is a job posting.
type Vaga struct {
	ID           string    `json:"id"`
	Titulo       string    `json:"titulo"`
	Empresa      string    `json:"empresa"`
	Descricao    string    `json:"descricao"`
	Requisitos   string    `json:"requisitos"`
	Salario      string    `json:"salario"`
	Localizacao  string    `json:"localizacao"`
	TipoContrato string    `json:"tipo_contrato"`
	Curso        *string   `json:"curso"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

type VagaInput struct {
	Titulo       string  `json:"titulo" validate:"required,notblank"`
	Empresa      string  `json:"empresa" validate:"required,notblank"`
	Descricao    string  `json:"descricao" validate:"required,notblank"`
	Requisitos   string  `json:"requisitos" validate:"required,notblank"`
	Salario      string  `json:"salario" validate:"required,notblank"`
	Localizacao  string  `json:"localizacao" validate:"required,notblank"`
	TipoContrato string  `json:"tipo_contrato" validate:"required,notblank"`
	Curso        *string `json:"curso"`
}

// VagaPatch is a partial update. Present fields must not be blank.
type VagaPatch struct {
	Titulo       *string `json:"titulo" validate:"omitempty,notblank"`
	Empresa      *string `json:"empresa" validate:"omitempty,notblank"`
	Descricao    *string `json:"descricao" validate:"omitempty,notblank"`
	Requisitos   *string `json:"requisitos" validate:"omitempty,notblank"`
	Salario      *string `json:"salario" validate:"omitempty,notblank"`
	Localizacao  *string `json:"localizacao" validate:"omitempty,notblank"`
	TipoContrato *string `json:"tipo_contrato" validate:"omitempty,notblank"`
	Curso        *string `json:"curso"`
}

type VagaRepository interface {
	Create(ctx context.Context, vaga *Vaga) error
	GetByID(ctx context.Context, id string) (*Vaga, error)
	List(ctx context.Context) ([]Vaga, error)
	Update(ctx context.Context, id string, patch VagaPatch) error
	Delete(ctx context.Context, id string) error
}

type VagaUsecase interface {
	Create(ctx context.Context, in VagaInput) (*Vaga, error)
	GetByID(ctx context.Context, id string) (*Vaga, error)
	List(ctx context.Context) ([]Vaga, error)
	Update(ctx context.Context, id string, patch VagaPatch) (*Vaga, error)
	Delete(ctx context.Context, id string) error
}

// SavedUsecase maintains the saved relation between users and vagas.
type SavedUsecase interface {
	AddSaved(ctx context.Context, userID, vagaID string) error
	RemoveSaved(ctx context.Context, userID, vagaID string) error
	// ListSaved resolves saved ids into vagas. Ids whose vaga no longer exists
	// are dropped. Order is not guaranteed.
	ListSaved(ctx context.Context, userID string) ([]Vaga, error)
}
