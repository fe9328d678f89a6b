package document

import (
	"context"
	"fmt"

	"go-jobboard-backend/internal/docstore"
	"go-jobboard-backend/internal/domain"
)

const vagasCollection = "vagas"

type vagaRepo struct {
	store docstore.Store
}

func NewVagaRepository(store docstore.Store) domain.VagaRepository {
	return &vagaRepo{store: store}
}

func (r *vagaRepo) Create(ctx context.Context, vaga *domain.Vaga) error {
	var curso any
	if vaga.Curso != nil {
		curso = *vaga.Curso
	}

	id, err := r.store.Add(ctx, vagasCollection, map[string]any{
		"titulo":        vaga.Titulo,
		"empresa":       vaga.Empresa,
		"descricao":     vaga.Descricao,
		"requisitos":    vaga.Requisitos,
		"salario":       vaga.Salario,
		"localizacao":   vaga.Localizacao,
		"tipo_contrato": vaga.TipoContrato,
		"curso":         curso,
		"createdAt":     docstore.ServerTimestamp,
		"updatedAt":     docstore.ServerTimestamp,
	})
	if err != nil {
		return fmt.Errorf("create vaga: %w", err)
	}

	stored, err := r.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("reload vaga %s: %w", id, err)
	}
	*vaga = *stored
	return nil
}

func (r *vagaRepo) GetByID(ctx context.Context, id string) (*domain.Vaga, error) {
	doc, err := r.store.Get(ctx, vagasCollection, id)
	if err != nil {
		return nil, mapErr(err)
	}
	return toVaga(doc), nil
}

func (r *vagaRepo) List(ctx context.Context) ([]domain.Vaga, error) {
	docs, err := r.store.All(ctx, vagasCollection)
	if err != nil {
		return nil, fmt.Errorf("list vagas: %w", err)
	}
	vagas := make([]domain.Vaga, 0, len(docs))
	for _, doc := range docs {
		vagas = append(vagas, *toVaga(doc))
	}
	return vagas, nil
}

func (r *vagaRepo) Update(ctx context.Context, id string, patch domain.VagaPatch) error {
	fields := map[string]any{"updatedAt": docstore.ServerTimestamp}
	setIf(fields, "titulo", patch.Titulo)
	setIf(fields, "empresa", patch.Empresa)
	setIf(fields, "descricao", patch.Descricao)
	setIf(fields, "requisitos", patch.Requisitos)
	setIf(fields, "salario", patch.Salario)
	setIf(fields, "localizacao", patch.Localizacao)
	setIf(fields, "tipo_contrato", patch.TipoContrato)
	setIf(fields, "curso", patch.Curso)

	return mapErr(r.store.Update(ctx, vagasCollection, id, fields))
}

func (r *vagaRepo) Delete(ctx context.Context, id string) error {
	return mapErr(r.store.Delete(ctx, vagasCollection, id))
}

func toVaga(doc docstore.Document) *domain.Vaga {
	return &domain.Vaga{
		ID:           doc.ID,
		Titulo:       docstore.String(doc.Data, "titulo"),
		Empresa:      docstore.String(doc.Data, "empresa"),
		Descricao:    docstore.String(doc.Data, "descricao"),
		Requisitos:   docstore.String(doc.Data, "requisitos"),
		Salario:      docstore.String(doc.Data, "salario"),
		Localizacao:  docstore.String(doc.Data, "localizacao"),
		TipoContrato: docstore.String(doc.Data, "tipo_contrato"),
		Curso:        docstore.OptionalString(doc.Data, "curso"),
		CreatedAt:    docstore.Time(doc.Data, "createdAt"),
		UpdatedAt:    docstore.Time(doc.Data, "updatedAt"),
	}
}
