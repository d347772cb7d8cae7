package services

import (
	"errors"
	"log"

	"aquamarket/internal/adapters/persistence/repositories"
	"aquamarket/internal/core/domain"
	"aquamarket/internal/pkg/password"
)

// IdentityService handles registration, authentication and account approval
type IdentityService struct {
	userRepo repositories.UserRepository
}

// NewIdentityService creates a new identity service
func NewIdentityService(userRepo repositories.UserRepository) *IdentityService {
	return &IdentityService{userRepo: userRepo}
}

// RegisterInput represents registration input
type RegisterInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Role     string `json:"role" validate:"required"`
}

// Register creates a new account with status Pending. Only operator and
// buyer roles may self-register; administrators exist through the bootstrap
// seed only.
func (s *IdentityService) Register(input *RegisterInput) (*domain.User, error) {
	role := domain.Role(input.Role)
	if role != domain.RoleOperator && role != domain.RoleBuyer {
		return nil, domain.ErrInvalidInput
	}

	hash, err := password.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	user := domain.User{
		Email:      domain.NormalizeEmail(input.Email),
		Credential: hash,
		Role:       role,
		Status:     domain.StatusPending,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Authenticate verifies an (email, credential) pair. Unknown email and wrong
// password both return ErrNotFound so callers cannot enumerate accounts. A
// matching but unapproved account returns ErrPendingApproval.
func (s *IdentityService) Authenticate(email, plainPassword string) (*domain.User, error) {
	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if !password.Verify(plainPassword, user.Credential) {
		return nil, domain.ErrNotFound
	}
	if user.Status != domain.StatusApproved {
		return nil, domain.ErrPendingApproval
	}
	return user, nil
}

// Approve transitions a pending account to Approved. Only an administrator
// caller may approve; identity and role always arrive as explicit
// parameters, never from ambient session state.
func (s *IdentityService) Approve(callerRole domain.Role, email string) error {
	if callerRole != domain.RoleAdmin {
		return domain.ErrForbidden
	}
	return s.userRepo.UpdateStatus(email, domain.StatusApproved)
}

// PendingUsers lists accounts awaiting approval, for the administrator.
func (s *IdentityService) PendingUsers(callerRole domain.Role) ([]domain.User, error) {
	if callerRole != domain.RoleAdmin {
		return nil, domain.ErrForbidden
	}
	return s.userRepo.Pending()
}

// SeedAdmin ensures the bootstrap administrator account exists and is
// approved. Called once at startup.
func (s *IdentityService) SeedAdmin(email, plainPassword string) error {
	hash, err := password.Hash(plainPassword)
	if err != nil {
		return err
	}
	if err := s.userRepo.EnsureAdmin(email, hash); err != nil {
		return err
	}
	log.Printf("admin account ensured: %s", domain.NormalizeEmail(email))
	return nil
}
