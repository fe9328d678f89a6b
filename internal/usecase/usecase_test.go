package usecase_test

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/internal/usecase"
	"go-jobboard-backend/pkg/apperror"
	"go-jobboard-backend/pkg/security"
	"go-jobboard-backend/pkg/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// Mock Repositories
type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, user *domain.User) error {
	return m.Called(ctx, user).Error(0)
}
func (m *MockUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) List(ctx context.Context) ([]domain.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}
func (m *MockUserRepo) Update(ctx context.Context, id string, patch domain.UserPatch) error {
	return m.Called(ctx, id, patch).Error(0)
}
func (m *MockUserRepo) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}
func (m *MockUserRepo) AddSaved(ctx context.Context, userID, vagaID string) error {
	return m.Called(ctx, userID, vagaID).Error(0)
}
func (m *MockUserRepo) RemoveSaved(ctx context.Context, userID, vagaID string) error {
	return m.Called(ctx, userID, vagaID).Error(0)
}

type MockVagaRepo struct {
	mock.Mock
}

func (m *MockVagaRepo) Create(ctx context.Context, vaga *domain.Vaga) error {
	return m.Called(ctx, vaga).Error(0)
}
func (m *MockVagaRepo) GetByID(ctx context.Context, id string) (*domain.Vaga, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Vaga), args.Error(1)
}
func (m *MockVagaRepo) List(ctx context.Context) ([]domain.Vaga, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Vaga), args.Error(1)
}
func (m *MockVagaRepo) Update(ctx context.Context, id string, patch domain.VagaPatch) error {
	return m.Called(ctx, id, patch).Error(0)
}
func (m *MockVagaRepo) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type MockHasher struct {
	mock.Mock
}

func (m *MockHasher) Hash(password string) (string, error) {
	args := m.Called(password)
	return args.String(0), args.Error(1)
}
func (m *MockHasher) Compare(digest, password string) error {
	return m.Called(digest, password).Error(0)
}

func ptr(s string) *string { return &s }

func assertAppError(t *testing.T, err error, kind apperror.Kind, code int, message string) {
	t.Helper()
	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, kind, appErr.Kind)
	assert.Equal(t, code, appErr.Code)
	assert.Equal(t, message, appErr.Message)
}

func TestRegister(t *testing.T) {
	ctx := context.Background()
	valid := domain.RegisterInput{Name: "Ana", Email: "a@x.com", Course: "CS", Password: "pw1"}

	t.Run("Should reject blank fields with details", func(t *testing.T) {
		uc := usecase.NewUserUsecase(new(MockUserRepo), new(MockHasher), validation.New())

		_, err := uc.Register(ctx, domain.RegisterInput{Name: "Ana", Email: "  "})
		assertAppError(t, err, apperror.KindValidation, http.StatusBadRequest, "Todos os campos são obrigatórios")

		var appErr *apperror.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Contains(t, appErr.Details, "Email: Campo obrigatório")
		assert.Contains(t, appErr.Details, "Senha: Campo obrigatório")
	})

	t.Run("Should reject duplicate email", func(t *testing.T) {
		repo := new(MockUserRepo)
		repo.On("FindByEmail", ctx, "a@x.com").Return(&domain.User{ID: "u1"}, nil)
		uc := usecase.NewUserUsecase(repo, new(MockHasher), validation.New())

		_, err := uc.Register(ctx, valid)
		assertAppError(t, err, apperror.KindConflict, http.StatusConflict, "Email já cadastrado")
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Should store the digest and strip it from the result", func(t *testing.T) {
		repo := new(MockUserRepo)
		hasher := new(MockHasher)
		repo.On("FindByEmail", ctx, "a@x.com").Return(nil, domain.ErrNotFound)
		hasher.On("Hash", "pw1").Return("digest", nil)
		repo.On("Create", ctx, mock.AnythingOfType("*domain.User")).Return(nil).Run(func(args mock.Arguments) {
			u := args.Get(1).(*domain.User)
			assert.Equal(t, "digest", u.Password)
			assert.Equal(t, []string{}, u.Saved)
			u.ID = "u1"
		})
		uc := usecase.NewUserUsecase(repo, hasher, validation.New())

		pub, err := uc.Register(ctx, valid)
		require.NoError(t, err)
		assert.Equal(t, "u1", pub.ID)
		assert.Equal(t, []string{}, pub.Saved)
	})

	t.Run("Should hide store failures", func(t *testing.T) {
		repo := new(MockUserRepo)
		repo.On("FindByEmail", ctx, "a@x.com").Return(nil, errors.New("connection reset"))
		uc := usecase.NewUserUsecase(repo, new(MockHasher), validation.New())

		_, err := uc.Register(ctx, valid)
		assertAppError(t, err, apperror.KindInternal, http.StatusInternalServerError, "Erro interno do servidor")
	})
}

func TestAuthenticate(t *testing.T) {
	ctx := context.Background()
	stored := &domain.User{ID: "u1", Email: "a@x.com", Password: "digest"}

	t.Run("Should require both fields", func(t *testing.T) {
		uc := usecase.NewUserUsecase(new(MockUserRepo), new(MockHasher), validation.New())
		_, err := uc.Authenticate(ctx, domain.LoginInput{Email: "a@x.com"})
		assertAppError(t, err, apperror.KindValidation, http.StatusBadRequest, "Email e senha são obrigatórios")
	})

	t.Run("Should answer unknown email with 401", func(t *testing.T) {
		repo := new(MockUserRepo)
		repo.On("FindByEmail", ctx, "b@x.com").Return(nil, domain.ErrNotFound)
		uc := usecase.NewUserUsecase(repo, new(MockHasher), validation.New())

		_, err := uc.Authenticate(ctx, domain.LoginInput{Email: "b@x.com", Password: "pw"})
		assertAppError(t, err, apperror.KindNotFound, http.StatusUnauthorized, "Usuário não encontrado")
	})

	t.Run("Should reject wrong password", func(t *testing.T) {
		repo := new(MockUserRepo)
		hasher := new(MockHasher)
		repo.On("FindByEmail", ctx, "a@x.com").Return(stored, nil)
		hasher.On("Compare", "digest", "wrong").Return(security.ErrPasswordMismatch)
		uc := usecase.NewUserUsecase(repo, hasher, validation.New())

		_, err := uc.Authenticate(ctx, domain.LoginInput{Email: "a@x.com", Password: "wrong"})
		assertAppError(t, err, apperror.KindUnauthorized, http.StatusUnauthorized, "Senha incorreta")
	})

	t.Run("Should treat malformed digests as internal", func(t *testing.T) {
		repo := new(MockUserRepo)
		hasher := new(MockHasher)
		repo.On("FindByEmail", ctx, "a@x.com").Return(stored, nil)
		hasher.On("Compare", "digest", "pw").Return(errors.New("bad digest"))
		uc := usecase.NewUserUsecase(repo, hasher, validation.New())

		_, err := uc.Authenticate(ctx, domain.LoginInput{Email: "a@x.com", Password: "pw"})
		assert.True(t, apperror.IsKind(err, apperror.KindInternal))
	})
}

func TestUpdateUser(t *testing.T) {
	ctx := context.Background()

	t.Run("Should patch present fields and hash the password", func(t *testing.T) {
		repo := new(MockUserRepo)
		hasher := new(MockHasher)
		repo.On("GetByID", ctx, "u1").Return(&domain.User{ID: "u1", Name: "Ana"}, nil)
		hasher.On("Hash", "new").Return("new-digest", nil)
		repo.On("Update", ctx, "u1", domain.UserPatch{Course: ptr("Math"), Password: ptr("new-digest")}).Return(nil)
		uc := usecase.NewUserUsecase(repo, hasher, validation.New())

		_, err := uc.Update(ctx, "u1", domain.UpdateUserInput{Course: ptr("Math"), Password: ptr("new")})
		require.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("Should reject present blank fields", func(t *testing.T) {
		repo := new(MockUserRepo)
		uc := usecase.NewUserUsecase(repo, new(MockHasher), validation.New())

		_, err := uc.Update(ctx, "u1", domain.UpdateUserInput{Name: ptr(" "), Course: ptr("Math")})
		assertAppError(t, err, apperror.KindValidation, http.StatusBadRequest, "Os campos informados não podem estar vazios")

		var appErr *apperror.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, []string{"Nome: Campo obrigatório"}, appErr.Details)
		repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Should reject a password bcrypt cannot hash", func(t *testing.T) {
		repo := new(MockUserRepo)
		hasher := new(MockHasher)
		long := strings.Repeat("a", security.MaxPasswordBytes+1)
		repo.On("GetByID", ctx, "u1").Return(&domain.User{ID: "u1"}, nil)
		hasher.On("Hash", long).Return("", security.ErrPasswordTooLong)
		uc := usecase.NewUserUsecase(repo, hasher, validation.New())

		_, err := uc.Update(ctx, "u1", domain.UpdateUserInput{Password: ptr(long)})
		assertAppError(t, err, apperror.KindValidation, http.StatusBadRequest, "Senha muito longa")
		repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Should 404 on missing user", func(t *testing.T) {
		repo := new(MockUserRepo)
		repo.On("GetByID", ctx, "nope").Return(nil, domain.ErrNotFound)
		uc := usecase.NewUserUsecase(repo, new(MockHasher), validation.New())

		_, err := uc.Update(ctx, "nope", domain.UpdateUserInput{Name: ptr("x")})
		assertAppError(t, err, apperror.KindNotFound, http.StatusNotFound, "Usuário não encontrado")
	})
}

func TestAddSavedReportsMissingSide(t *testing.T) {
	ctx := context.Background()

	t.Run("Should name the missing vaga", func(t *testing.T) {
		users := new(MockUserRepo)
		vagas := new(MockVagaRepo)
		users.On("GetByID", mock.Anything, "u1").Return(&domain.User{ID: "u1"}, nil)
		vagas.On("GetByID", mock.Anything, "v404").Return(nil, domain.ErrNotFound)
		uc := usecase.NewSavedUsecase(users, vagas)

		err := uc.AddSaved(ctx, "u1", "v404")
		assertAppError(t, err, apperror.KindNotFound, http.StatusNotFound, "Vaga não encontrada")
		users.AssertNotCalled(t, "AddSaved", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Should name the missing user", func(t *testing.T) {
		users := new(MockUserRepo)
		vagas := new(MockVagaRepo)
		users.On("GetByID", mock.Anything, "u404").Return(nil, domain.ErrNotFound)
		vagas.On("GetByID", mock.Anything, "v1").Return(&domain.Vaga{ID: "v1"}, nil).Maybe()
		uc := usecase.NewSavedUsecase(users, vagas)

		err := uc.AddSaved(ctx, "u404", "v1")
		assertAppError(t, err, apperror.KindNotFound, http.StatusNotFound, "Usuário não encontrado")
	})
}

func TestListSavedFailsOnStoreError(t *testing.T) {
	ctx := context.Background()
	users := new(MockUserRepo)
	vagas := new(MockVagaRepo)
	users.On("GetByID", ctx, "u1").Return(&domain.User{ID: "u1", Saved: []string{"v1", "v2"}}, nil)
	vagas.On("GetByID", mock.Anything, "v1").Return(&domain.Vaga{ID: "v1"}, nil).Maybe()
	vagas.On("GetByID", mock.Anything, "v2").Return(nil, errors.New("timeout"))
	uc := usecase.NewSavedUsecase(users, vagas)

	_, err := uc.ListSaved(ctx, "u1")
	assert.True(t, apperror.IsKind(err, apperror.KindInternal))
}

func TestListSavedSkipsStoreForEmptyList(t *testing.T) {
	ctx := context.Background()
	users := new(MockUserRepo)
	vagas := new(MockVagaRepo)
	users.On("GetByID", ctx, "u1").Return(&domain.User{ID: "u1", Saved: []string{}}, nil)
	uc := usecase.NewSavedUsecase(users, vagas)

	got, err := uc.ListSaved(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, got)
	vagas.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestVagaUpdateRejectsBlankFields(t *testing.T) {
	repo := new(MockVagaRepo)
	uc := usecase.NewVagaUsecase(repo, validation.New())

	_, err := uc.Update(context.Background(), "v1", domain.VagaPatch{Titulo: ptr(" ")})
	assertAppError(t, err, apperror.KindValidation, http.StatusBadRequest, "Os campos informados não podem estar vazios")
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

type fakePinger struct{ err error }

func (f fakePinger) Ping(context.Context) error { return f.err }

func TestHealthCheck(t *testing.T) {
	uc := usecase.NewHealthUsecase(map[string]usecase.Pinger{
		"docstore": fakePinger{},
		"redis":    usecase.PingFunc(func(context.Context) error { return errors.New("down") }),
		"skipped":  nil,
	})

	status, healthy := uc.Check(context.Background())
	assert.False(t, healthy)
	assert.Equal(t, map[string]string{"docstore": "ok", "redis": "unavailable", "status": "degraded"}, status)
}
