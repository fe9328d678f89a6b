package document_test

import (
	"context"
	"testing"
	"time"

	"go-jobboard-backend/internal/docstore/memory"
	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/internal/repository/document"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(s string) *string { return &s }

type tickingClock struct {
	now time.Time
}

func (c *tickingClock) Now() time.Time {
	c.now = c.now.Add(time.Second)
	return c.now
}

func TestUserRepository(t *testing.T) {
	ctx := context.Background()
	clock := &tickingClock{now: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}
	repo := document.NewUserRepository(memory.New(memory.WithClock(clock.Now)))

	user := &domain.User{Name: "Ana", Email: "a@x.com", Course: "CS", Password: "digest"}
	require.NoError(t, repo.Create(ctx, user))
	require.NotEmpty(t, user.ID)
	assert.Equal(t, []string{}, user.Saved)
	assert.False(t, user.CreatedAt.IsZero())

	t.Run("find by email", func(t *testing.T) {
		found, err := repo.FindByEmail(ctx, "a@x.com")
		require.NoError(t, err)
		assert.Equal(t, user.ID, found.ID)
		assert.Equal(t, "digest", found.Password)

		_, err = repo.FindByEmail(ctx, "b@x.com")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("partial update keeps other fields", func(t *testing.T) {
		require.NoError(t, repo.Update(ctx, user.ID, domain.UserPatch{Course: ptr("Math")}))

		got, err := repo.GetByID(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, "Ana", got.Name)
		assert.Equal(t, "a@x.com", got.Email)
		assert.Equal(t, "digest", got.Password)
		assert.Equal(t, "Math", got.Course)
		assert.True(t, got.UpdatedAt.After(user.UpdatedAt))
	})

	t.Run("saved add and remove", func(t *testing.T) {
		require.NoError(t, repo.AddSaved(ctx, user.ID, "v1"))
		require.NoError(t, repo.AddSaved(ctx, user.ID, "v2"))
		require.NoError(t, repo.RemoveSaved(ctx, user.ID, "v1"))

		got, err := repo.GetByID(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, []string{"v2"}, got.Saved)
	})

	t.Run("missing user", func(t *testing.T) {
		_, err := repo.GetByID(ctx, "nope")
		assert.ErrorIs(t, err, domain.ErrNotFound)
		assert.ErrorIs(t, repo.Update(ctx, "nope", domain.UserPatch{}), domain.ErrNotFound)
		assert.ErrorIs(t, repo.AddSaved(ctx, "nope", "v1"), domain.ErrNotFound)
	})

	t.Run("list and delete", func(t *testing.T) {
		users, err := repo.List(ctx)
		require.NoError(t, err)
		assert.Len(t, users, 1)

		require.NoError(t, repo.Delete(ctx, user.ID))
		assert.ErrorIs(t, repo.Delete(ctx, user.ID), domain.ErrNotFound)

		users, err = repo.List(ctx)
		require.NoError(t, err)
		assert.Empty(t, users)
	})
}

func TestVagaRepository(t *testing.T) {
	ctx := context.Background()
	repo := document.NewVagaRepository(memory.New())

	vaga := &domain.Vaga{
		Titulo:       "Backend Go",
		Empresa:      "Acme",
		Descricao:    "APIs",
		Requisitos:   "Go",
		Salario:      "5000",
		Localizacao:  "Remoto",
		TipoContrato: "CLT",
	}
	require.NoError(t, repo.Create(ctx, vaga))
	require.NotEmpty(t, vaga.ID)
	assert.Nil(t, vaga.Curso)

	require.NoError(t, repo.Update(ctx, vaga.ID, domain.VagaPatch{Salario: ptr("6000"), Curso: ptr("CS")}))

	got, err := repo.GetByID(ctx, vaga.ID)
	require.NoError(t, err)
	assert.Equal(t, "6000", got.Salario)
	assert.Equal(t, "Backend Go", got.Titulo)
	require.NotNil(t, got.Curso)
	assert.Equal(t, "CS", *got.Curso)

	vagas, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, vagas, 1)

	require.NoError(t, repo.Delete(ctx, vaga.ID))
	_, err = repo.GetByID(ctx, vaga.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
