package entities

import (
	"time"

	authzentities "campus/contexts/identity-access/authorization-service/domain/entities"
)

// User is a platform account. Role is fixed at creation; the password hash is
// opaque to everything but the login flow.
type User struct {
	ID           string
	Email        string
	FullName     string
	PasswordHash string
	Role         authzentities.Role
	CreatedAt    time.Time
}
