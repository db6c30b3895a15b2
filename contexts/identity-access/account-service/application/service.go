package application

import (
	"context"
	"log/slog"
	"sort"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"campus/contexts/identity-access/account-service/domain/entities"
	domainerrors "campus/contexts/identity-access/account-service/domain/errors"
	"campus/contexts/identity-access/account-service/ports"
	authzentities "campus/contexts/identity-access/authorization-service/domain/entities"
)

// dummyHash keeps login timing flat when the email is unknown.
var dummyHash = []byte("$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy")

// Service implements account management: registration, login, deletion with
// the last-admin invariant, and the first-admin bootstrap.
type Service struct {
	Repo        ports.Repository
	Cleanup     ports.StudentCleanup
	Tokens      ports.TokenIssuer
	Clock       ports.Clock
	IDGenerator ports.IDGenerator
	BcryptCost  int
	Logger      *slog.Logger
}

// RegisterInput carries a new account request.
type RegisterInput struct {
	Email    string
	FullName string
	Password string
	Role     authzentities.Role
}

// LoginResult pairs the issued credential with the account it belongs to.
type LoginResult struct {
	Token string
	User  entities.User
}

// Register creates an account with the given role. Caller authorization
// (admin-only) is the route guard's job; this method owns field and
// uniqueness rules only.
func (s Service) Register(ctx context.Context, input RegisterInput) (entities.User, error) {
	email := normalizeEmail(input.Email)
	if email == "" || strings.TrimSpace(input.FullName) == "" || input.Password == "" {
		return entities.User{}, domainerrors.ErrInvalidRequest
	}
	if !input.Role.Valid() {
		return entities.User{}, domainerrors.ErrInvalidRequest
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), s.bcryptCost())
	if err != nil {
		return entities.User{}, err
	}
	id, err := s.IDGenerator.NewID(ctx)
	if err != nil {
		return entities.User{}, err
	}

	user := entities.User{
		ID:           id,
		Email:        email,
		FullName:     strings.TrimSpace(input.FullName),
		PasswordHash: string(hash),
		Role:         input.Role,
		CreatedAt:    s.Clock.Now(),
	}
	if err := s.Repo.CreateUser(ctx, user); err != nil {
		return entities.User{}, err
	}

	s.logger().Info("account created",
		"event", "account_created",
		"module", "identity-access/account-service",
		"layer", "application",
		"user_id", user.ID,
		"role", string(user.Role),
	)
	return user, nil
}

// Setup creates the first admin account. It is the only unauthenticated
// account mutation and refuses to run once any admin exists.
func (s Service) Setup(ctx context.Context, input RegisterInput) (entities.User, error) {
	admins, err := s.Repo.CountAdmins(ctx)
	if err != nil {
		return entities.User{}, err
	}
	if admins > 0 {
		return entities.User{}, domainerrors.ErrAdminExists
	}
	input.Role = authzentities.RoleAdmin
	return s.Register(ctx, input)
}

// Login verifies the password and issues a bearer token with the account
// email as subject. Unknown email and wrong password return the same error.
func (s Service) Login(ctx context.Context, email string, password string) (LoginResult, error) {
	user, found, err := s.Repo.GetUserByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return LoginResult{}, err
	}
	if !found {
		// Burn a comparison anyway so the miss costs the same as a mismatch.
		_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
		return LoginResult{}, domainerrors.ErrInvalidLogin
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return LoginResult{}, domainerrors.ErrInvalidLogin
	}

	token, err := s.Tokens.Issue(user.Email)
	if err != nil {
		return LoginResult{}, err
	}

	s.logger().Info("login succeeded",
		"event", "account_login",
		"module", "identity-access/account-service",
		"layer", "application",
		"user_id", user.ID,
	)
	return LoginResult{Token: token, User: user}, nil
}

// Get returns one account.
func (s Service) Get(ctx context.Context, userID string) (entities.User, error) {
	user, found, err := s.Repo.GetUser(ctx, userID)
	if err != nil {
		return entities.User{}, err
	}
	if !found {
		return entities.User{}, domainerrors.ErrUserNotFound
	}
	return user, nil
}

// List returns all accounts ordered by creation time then id.
func (s Service) List(ctx context.Context) ([]entities.User, error) {
	users, err := s.Repo.ListUsers(ctx)
	if err != nil {
		return nil, err
	}
	sort.Slice(users, func(i, j int) bool {
		if users[i].CreatedAt.Equal(users[j].CreatedAt) {
			return users[i].ID < users[j].ID
		}
		return users[i].CreatedAt.Before(users[j].CreatedAt)
	})
	return users, nil
}

// Delete removes an account. Deleting an admin is guarded against emptying
// the admin set; deleting a student pulls the student from every classroom
// roster and removes their submissions.
func (s Service) Delete(ctx context.Context, userID string) error {
	user, found, err := s.Repo.GetUser(ctx, userID)
	if err != nil {
		return err
	}
	if !found {
		return domainerrors.ErrUserNotFound
	}

	switch user.Role {
	case authzentities.RoleAdmin:
		deleted, lastAdmin, err := s.Repo.DeleteAdminGuarded(ctx, userID)
		if err != nil {
			return err
		}
		if lastAdmin {
			return domainerrors.ErrLastAdmin
		}
		if !deleted {
			return domainerrors.ErrUserNotFound
		}

	case authzentities.RoleStudent:
		deleted, err := s.Repo.DeleteUser(ctx, userID)
		if err != nil {
			return err
		}
		if !deleted {
			return domainerrors.ErrUserNotFound
		}
		if s.Cleanup != nil {
			if err := s.Cleanup.RemoveStudentFromAllClassrooms(ctx, userID); err != nil {
				return err
			}
			if err := s.Cleanup.DeleteSubmissionsByStudent(ctx, userID); err != nil {
				return err
			}
		}

	default:
		deleted, err := s.Repo.DeleteUser(ctx, userID)
		if err != nil {
			return err
		}
		if !deleted {
			return domainerrors.ErrUserNotFound
		}
	}

	s.logger().Info("account deleted",
		"event", "account_deleted",
		"module", "identity-access/account-service",
		"layer", "application",
		"user_id", userID,
		"role", string(user.Role),
	)
	return nil
}

func (s Service) bcryptCost() int {
	if s.BcryptCost <= 0 {
		return bcrypt.DefaultCost
	}
	return s.BcryptCost
}

func (s Service) logger() *slog.Logger {
	if s.Logger == nil {
		return slog.Default()
	}
	return s.Logger
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
