package document

import (
	"context"
	"errors"
	"fmt"

	"go-jobboard-backend/internal/docstore"
	"go-jobboard-backend/internal/domain"
)

const usersCollection = "users"

type userRepo struct {
	store docstore.Store
}

func NewUserRepository(store docstore.Store) domain.UserRepository {
	return &userRepo{store: store}
}

func (r *userRepo) Create(ctx context.Context, user *domain.User) error {
	saved := user.Saved
	if saved == nil {
		saved = []string{}
	}

	id, err := r.store.Add(ctx, usersCollection, map[string]any{
		"name":      user.Name,
		"email":     user.Email,
		"course":    user.Course,
		"password":  user.Password,
		"saved":     saved,
		"createdAt": docstore.ServerTimestamp,
		"updatedAt": docstore.ServerTimestamp,
	})
	if err != nil {
		return fmt.Errorf("create user: %w", err)
	}

	// Read back to pick up the server-assigned timestamps.
	stored, err := r.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("reload user %s: %w", id, err)
	}
	*user = *stored
	return nil
}

func (r *userRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	doc, err := r.store.Get(ctx, usersCollection, id)
	if err != nil {
		return nil, mapErr(err)
	}
	return toUser(doc), nil
}

// FindByEmail returns the first user with the given email. Uniqueness is not
// enforced by the store, so more than one may exist.
func (r *userRepo) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	docs, err := r.store.Where(ctx, usersCollection, "email", email)
	if err != nil {
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	if len(docs) == 0 {
		return nil, domain.ErrNotFound
	}
	return toUser(docs[0]), nil
}

func (r *userRepo) List(ctx context.Context) ([]domain.User, error) {
	docs, err := r.store.All(ctx, usersCollection)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	users := make([]domain.User, 0, len(docs))
	for _, doc := range docs {
		users = append(users, *toUser(doc))
	}
	return users, nil
}

func (r *userRepo) Update(ctx context.Context, id string, patch domain.UserPatch) error {
	fields := map[string]any{"updatedAt": docstore.ServerTimestamp}
	setIf(fields, "name", patch.Name)
	setIf(fields, "email", patch.Email)
	setIf(fields, "course", patch.Course)
	setIf(fields, "password", patch.Password)

	return mapErr(r.store.Update(ctx, usersCollection, id, fields))
}

func (r *userRepo) Delete(ctx context.Context, id string) error {
	return mapErr(r.store.Delete(ctx, usersCollection, id))
}

func (r *userRepo) AddSaved(ctx context.Context, userID, vagaID string) error {
	return mapErr(r.store.Update(ctx, usersCollection, userID, map[string]any{
		"saved":     docstore.ArrayUnion(vagaID),
		"updatedAt": docstore.ServerTimestamp,
	}))
}

func (r *userRepo) RemoveSaved(ctx context.Context, userID, vagaID string) error {
	return mapErr(r.store.Update(ctx, usersCollection, userID, map[string]any{
		"saved":     docstore.ArrayRemove(vagaID),
		"updatedAt": docstore.ServerTimestamp,
	}))
}

func toUser(doc docstore.Document) *domain.User {
	return &domain.User{
		ID:        doc.ID,
		Name:      docstore.String(doc.Data, "name"),
		Email:     docstore.String(doc.Data, "email"),
		Course:    docstore.String(doc.Data, "course"),
		Password:  docstore.String(doc.Data, "password"),
		Saved:     docstore.Strings(doc.Data, "saved"),
		CreatedAt: docstore.Time(doc.Data, "createdAt"),
		UpdatedAt: docstore.Time(doc.Data, "updatedAt"),
	}
}

func setIf(fields map[string]any, key string, v *string) {
	if v != nil {
		fields[key] = *v
	}
}

func mapErr(err error) error {
	if errors.Is(err, docstore.ErrNotFound) {
		return domain.ErrNotFound
	}
	return err
}
