package ports

import (
	"context"
	"time"

	"campus/contexts/identity-access/account-service/domain/entities"
)

// Clock abstracts current time for deterministic tests.
type Clock interface {
	Now() time.Time
}

// IDGenerator abstracts UUID generation.
type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}

// Repository is the account persistence boundary.
type Repository interface {
	CreateUser(ctx context.Context, user entities.User) error
	GetUser(ctx context.Context, userID string) (entities.User, bool, error)
	GetUserByEmail(ctx context.Context, email string) (entities.User, bool, error)
	ListUsers(ctx context.Context) ([]entities.User, error)
	// DeleteUser removes a non-admin account.
	DeleteUser(ctx context.Context, userID string) (bool, error)
	// DeleteAdminGuarded removes an admin account only if at least one other
	// admin remains. The count check and the delete execute as one atomic
	// operation so two concurrent deletes cannot both observe count > 1.
	DeleteAdminGuarded(ctx context.Context, userID string) (deleted bool, lastAdmin bool, err error)
	CountAdmins(ctx context.Context) (int, error)
}

// TokenIssuer mints a bearer credential for a verified login.
type TokenIssuer interface {
	Issue(subject string) (string, error)
}

// StudentCleanup removes a deleted student's traces from shared resources:
// classroom rosters (single set-pull across all classrooms) and submissions.
type StudentCleanup interface {
	RemoveStudentFromAllClassrooms(ctx context.Context, studentID string) error
	DeleteSubmissionsByStudent(ctx context.Context, studentID string) error
}
