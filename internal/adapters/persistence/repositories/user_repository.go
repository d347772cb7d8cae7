package repositories

import (
	"io"
	"path/filepath"

	"aquamarket/internal/adapters/persistence/csvstore"
	"aquamarket/internal/core/domain"
)

// UsersSchema is the fixed column layout of the users collection.
var UsersSchema = []string{"Email", "Credential", "Role", "Status"}

// userRepository implements UserRepository over a CSV store.
// Corruption of the users collection is fatal to the requesting operation
// and is surfaced, never recovered locally.
type userRepository struct {
	store *csvstore.Store[domain.User]
}

// NewUserRepository creates a user repository backed by users.csv in dataDir.
func NewUserRepository(dataDir string) UserRepository {
	return &userRepository{
		store: csvstore.New(
			filepath.Join(dataDir, "users.csv"),
			UsersSchema,
			encodeUser,
			decodeUser,
		),
	}
}

func encodeUser(u domain.User) []string {
	return []string{u.Email, u.Credential, string(u.Role), string(u.Status)}
}

func decodeUser(row []string) (domain.User, error) {
	return domain.User{
		Email:      row[0],
		Credential: row[1],
		Role:       domain.Role(row[2]),
		Status:     domain.Status(row[3]),
	}, nil
}

func (r *userRepository) All() ([]domain.User, error) {
	return r.store.Load()
}

func (r *userRepository) FindByEmail(email string) (*domain.User, error) {
	email = domain.NormalizeEmail(email)
	users, err := r.store.Load()
	if err != nil {
		return nil, err
	}
	for i := range users {
		if domain.NormalizeEmail(users[i].Email) == email {
			return &users[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

// Create appends a new user. The duplicate check and the append happen under
// the store's write lock so two racing registrations cannot both pass.
func (r *userRepository) Create(user domain.User) error {
	user.Email = domain.NormalizeEmail(user.Email)
	return r.store.Update(func(users []domain.User) ([]domain.User, bool, error) {
		for _, u := range users {
			if domain.NormalizeEmail(u.Email) == user.Email {
				return nil, false, domain.ErrDuplicateIdentity
			}
		}
		return append(users, user), true, nil
	})
}

// UpdateStatus is the only in-place mutation in the system: a serialized
// load-modify-rewrite of the whole collection.
func (r *userRepository) UpdateStatus(email string, status domain.Status) error {
	email = domain.NormalizeEmail(email)
	return r.store.Update(func(users []domain.User) ([]domain.User, bool, error) {
		for i := range users {
			if domain.NormalizeEmail(users[i].Email) == email {
				users[i].Status = status
				return users, true, nil
			}
		}
		return nil, false, domain.ErrNotFound
	})
}

func (r *userRepository) Pending() ([]domain.User, error) {
	return r.store.Scan(func(u domain.User) bool {
		return u.Status == domain.StatusPending
	})
}

// EnsureAdmin seeds the bootstrap administrator account if no user with the
// given email exists yet. The seeded account is approved immediately.
func (r *userRepository) EnsureAdmin(email, credentialHash string) error {
	email = domain.NormalizeEmail(email)
	return r.store.Update(func(users []domain.User) ([]domain.User, bool, error) {
		for _, u := range users {
			if domain.NormalizeEmail(u.Email) == email {
				return nil, false, nil
			}
		}
		admin := domain.User{
			Email:      email,
			Credential: credentialHash,
			Role:       domain.RoleAdmin,
			Status:     domain.StatusApproved,
		}
		return append(users, admin), true, nil
	})
}

func (r *userRepository) Name() string { return r.store.Name() }

func (r *userRepository) Export(w io.Writer) error { return r.store.Export(w) }
