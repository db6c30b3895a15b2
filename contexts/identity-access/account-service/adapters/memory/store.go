package memory

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"campus/contexts/identity-access/account-service/domain/entities"
	domainerrors "campus/contexts/identity-access/account-service/domain/errors"
	authzentities "campus/contexts/identity-access/authorization-service/domain/entities"
)

// Store is an in-memory account repository for local runtime and tests. It
// also implements ports.Clock and ports.IDGenerator so a module can run with
// no external adapters at all.
type Store struct {
	mu       sync.RWMutex
	users    map[string]entities.User
	byEmail  map[string]string
	sequence uint64
}

func NewStore() *Store {
	return &Store{
		users:   make(map[string]entities.User),
		byEmail: make(map[string]string),
	}
}

func (s *Store) CreateUser(_ context.Context, user entities.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, taken := s.byEmail[user.Email]; taken {
		return domainerrors.ErrEmailTaken
	}
	s.users[user.ID] = user
	s.byEmail[user.Email] = user.ID
	return nil
}

func (s *Store) GetUser(_ context.Context, userID string) (entities.User, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.users[userID]
	return user, ok, nil
}

func (s *Store) GetUserByEmail(_ context.Context, email string) (entities.User, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.byEmail[email]
	if !ok {
		return entities.User{}, false, nil
	}
	user, ok := s.users[id]
	return user, ok, nil
}

func (s *Store) ListUsers(_ context.Context) ([]entities.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	users := make([]entities.User, 0, len(s.users))
	for _, user := range s.users {
		users = append(users, user)
	}
	return users, nil
}

func (s *Store) DeleteUser(_ context.Context, userID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.deleteLocked(userID), nil
}

// DeleteAdminGuarded holds the lock across the count check and the delete, so
// two concurrent deletes of the last two admins cannot both succeed.
func (s *Store) DeleteAdminGuarded(_ context.Context, userID string) (bool, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[userID]
	if !ok || user.Role != authzentities.RoleAdmin {
		return false, false, nil
	}
	if s.countAdminsLocked() <= 1 {
		return false, true, nil
	}
	return s.deleteLocked(userID), false, nil
}

func (s *Store) CountAdmins(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.countAdminsLocked(), nil
}

func (s *Store) Now() time.Time { return time.Now().UTC() }

func (s *Store) NewID(_ context.Context) (string, error) {
	return fmt.Sprintf("user-%d", atomic.AddUint64(&s.sequence, 1)), nil
}

func (s *Store) deleteLocked(userID string) bool {
	user, ok := s.users[userID]
	if !ok {
		return false
	}
	delete(s.users, userID)
	delete(s.byEmail, user.Email)
	return true
}

func (s *Store) countAdminsLocked() int {
	count := 0
	for _, user := range s.users {
		if user.Role == authzentities.RoleAdmin {
			count++
		}
	}
	return count
}
