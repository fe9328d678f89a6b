package domain

import (
	"context"
	"time"
)

// User is the full stored record. Password holds the bcrypt digest and must
// never leave the process; use Public for every outward representation.
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Course    string    `json:"course"`
	Password  string    `json:"-"`
	Saved     []string  `json:"saved"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// PublicUser is the credential-free projection of a User.
type PublicUser struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Course    string    `json:"course"`
	Saved     []string  `json:"saved"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (u *User) Public() PublicUser {
	saved := make([]string, len(u.Saved))
	copy(saved, u.Saved)
	return PublicUser{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Course:    u.Course,
		Saved:     saved,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// HasSaved reports whether vagaID is in the user's saved list.
func (u *User) HasSaved(vagaID string) bool {
	for _, id := range u.Saved {
		if id == vagaID {
			return true
		}
	}
	return false
}

func PublicUsers(users []User) []PublicUser {
	out := make([]PublicUser, 0, len(users))
	for i := range users {
		out = append(out, users[i].Public())
	}
	return out
}

type RegisterInput struct {
	Name     string `json:"name" validate:"required,notblank"`
	Email    string `json:"email" validate:"required,notblank"`
	Course   string `json:"course" validate:"required,notblank"`
	Password string `json:"password" validate:"required,notblank"`
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,notblank"`
	Password string `json:"password" validate:"required,notblank"`
}

// UpdateUserInput is a partial update. Absent fields are left untouched and
// present fields must not be blank.
type UpdateUserInput struct {
	Name     *string `json:"name" validate:"omitempty,notblank"`
	Email    *string `json:"email" validate:"omitempty,notblank"`
	Course   *string `json:"course" validate:"omitempty,notblank"`
	Password *string `json:"password" validate:"omitempty,notblank"`
}

// UserPatch is the set of stored fields to overwrite. Password, when set, is
// already a digest.
type UserPatch struct {
	Name     *string
	Email    *string
	Course   *string
	Password *string
}

type UserRepository interface {
	// Create stores user and fills in its ID and server timestamps.
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	List(ctx context.Context) ([]User, error)
	// Update applies patch and refreshes updatedAt.
	Update(ctx context.Context, id string, patch UserPatch) error
	Delete(ctx context.Context, id string) error
	AddSaved(ctx context.Context, userID, vagaID string) error
	RemoveSaved(ctx context.Context, userID, vagaID string) error
}

type UserUsecase interface {
	Register(ctx context.Context, in RegisterInput) (*PublicUser, error)
	Authenticate(ctx context.Context, in LoginInput) (*PublicUser, error)
	GetByID(ctx context.Context, id string) (*PublicUser, error)
	ListAll(ctx context.Context) ([]PublicUser, error)
	Update(ctx context.Context, id string, in UpdateUserInput) (*PublicUser, error)
	Delete(ctx context.Context, id string) error
}
